package model

// CommitmentLevel is how much time a ministry asks of a volunteer
type CommitmentLevel string

const (
	CommitmentLow    CommitmentLevel = "Low"
	CommitmentMedium CommitmentLevel = "Medium"
	CommitmentHigh   CommitmentLevel = "High"
)

// Ordinal returns the sort rank of the level (Low=1, Medium=2, High=3, unknown=0)
func (c CommitmentLevel) Ordinal() int {
	switch c {
	case CommitmentLow:
		return 1
	case CommitmentMedium:
		return 2
	case CommitmentHigh:
		return 3
	}
	return 0
}

// IsValid reports whether c is a known level
func (c CommitmentLevel) IsValid() bool {
	return c.Ordinal() > 0
}

// RecommendedTraits is the trait profile a ministry looks for
type RecommendedTraits struct {
	PersonalityTypes    []string `json:"personality_types,omitempty"`
	SpiritualGifts      []string `json:"spiritual_gifts,omitempty"`
	SkillTypes          []string `json:"skill_types,omitempty"`
	PassionGroups       []string `json:"passion_groups,omitempty"`
	RelevantExperiences []string `json:"relevant_experiences,omitempty"`
}

// Ministry is a volunteer opportunity in the catalog
type Ministry struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	CommitmentLevel   CommitmentLevel   `json:"commitment_level"`
	TeamSize          string            `json:"team_size,omitempty"`
	Schedule          string            `json:"schedule,omitempty"`
	ContactName       string            `json:"contact_name,omitempty"`
	ContactEmail      string            `json:"contact_email,omitempty"`
	Requirements      []string          `json:"requirements,omitempty"`
	RecommendedTraits RecommendedTraits `json:"recommended_traits"`
}

// Dimension is one of the five trait axes compared during matching
type Dimension string

const (
	DimensionPersonality Dimension = "personality"
	DimensionGifts       Dimension = "gifts"
	DimensionSkills      Dimension = "skills"
	DimensionPassion     Dimension = "passion"
	DimensionExperience  Dimension = "experience"
)

// AllDimensions in weighting order
var AllDimensions = []Dimension{
	DimensionPersonality,
	DimensionGifts,
	DimensionSkills,
	DimensionPassion,
	DimensionExperience,
}

// TestType returns the assessment that feeds a dimension
func (d Dimension) TestType() TestType {
	return TestType(d)
}

// MatchReasonLowCompatibility marks the reason emitted when nothing overlaps
const MatchReasonLowCompatibility = "low_compatibility"

// MatchReason explains one contribution to a match
type MatchReason struct {
	Type        string   `json:"type"` // a Dimension or low_compatibility
	Description string   `json:"description"`
	Traits      []string `json:"traits,omitempty"`
}

// ComponentScores are the per-dimension overlap percentages (0-100)
type ComponentScores struct {
	PersonalityScore float64 `json:"personality_score"`
	GiftsScore       float64 `json:"gifts_score"`
	SkillsScore      float64 `json:"skills_score"`
	PassionScore     float64 `json:"passion_score"`
	ExperienceScore  float64 `json:"experience_score"`
}

// MatchResult is a computed view of one ministry for one member
type MatchResult struct {
	Ministry           Ministry        `json:"ministry"`
	CompatibilityScore int             `json:"compatibility_score"`
	Label              string          `json:"label"`
	MatchReasons       []MatchReason   `json:"match_reasons"`
	ComponentScores    ComponentScores `json:"component_scores"`
	// SkippedDimensions are dimensions whose assessment the member has not completed
	SkippedDimensions []Dimension `json:"skipped_dimensions"`
	// EmptyDimensions are dimensions for which the ministry lists no traits
	EmptyDimensions []Dimension `json:"empty_dimensions"`
}
