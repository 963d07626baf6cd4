package model

import (
	"fmt"
	"time"
)

// PersonalityScores are net DISC tallies ("most" minus "least")
type PersonalityScores struct {
	D int `json:"D"`
	I int `json:"I"`
	S int `json:"S"`
	C int `json:"C"`
}

// Get returns the score for a DISC letter
func (p PersonalityScores) Get(letter string) int {
	switch letter {
	case DISCDominance:
		return p.D
	case DISCInfluence:
		return p.I
	case DISCSteadiness:
		return p.S
	case DISCConscientiousness:
		return p.C
	}
	return 0
}

// Map returns the scores keyed by letter
func (p PersonalityScores) Map() map[string]int {
	return map[string]int{
		DISCDominance:         p.D,
		DISCInfluence:         p.I,
		DISCSteadiness:        p.S,
		DISCConscientiousness: p.C,
	}
}

// GiftScores are Likert sums keyed by gift
type GiftScores map[string]int

// SkillScores are Likert sums keyed by RIASEC letter
type SkillScores struct {
	R int `json:"R"`
	I int `json:"I"`
	A int `json:"A"`
	S int `json:"S"`
	E int `json:"E"`
	C int `json:"C"`
}

// Map returns the scores keyed by letter
func (s SkillScores) Map() map[string]int {
	return map[string]int{
		SkillRealistic:     s.R,
		SkillInvestigative: s.I,
		SkillArtistic:      s.A,
		SkillSocial:        s.S,
		SkillEnterprising:  s.E,
		SkillConventional:  s.C,
	}
}

// PassionResult is the completed passion selection
type PassionResult struct {
	SelectedGroups   []string `json:"selected_groups"`
	TopFiveGroups    []string `json:"top_five_groups"`
	SelectedPassions []string `json:"selected_passions"`
	TopThreePassions []string `json:"top_three_passions"`
}

// ExperienceResult is the completed experience survey
type ExperienceResult struct {
	ExperienceTypes     []string `json:"experience_types"`
	SignificantEvents   []string `json:"significant_events"`
	PositiveExperiences []string `json:"positive_experiences"`
	PainfulExperiences  []string `json:"painful_experiences"`
	OtherPainful        string   `json:"other_painful,omitempty"`
	LessonsLearned      string   `json:"lessons_learned"`
	ImpactOnMinistry    string   `json:"impact_on_ministry"`
	TopTwoExperiences   []string `json:"top_two_experiences"`
}

// ScoreRecord is the scored outcome of one assessment. Exactly one variant
// is set, the one matching TestType.
type ScoreRecord struct {
	TestType    TestType           `json:"test_type"`
	Personality *PersonalityScores `json:"personality,omitempty"`
	Gifts       GiftScores         `json:"gifts,omitempty"`
	Skills      *SkillScores       `json:"skills,omitempty"`
	Passion     *PassionResult     `json:"passion,omitempty"`
	Experience  *ExperienceResult  `json:"experience,omitempty"`
}

// Validate checks that the record carries exactly its own variant and that
// every category is present and in range
func (r *ScoreRecord) Validate() error {
	set := 0
	if r.Personality != nil {
		set++
	}
	if r.Gifts != nil {
		set++
	}
	if r.Skills != nil {
		set++
	}
	if r.Passion != nil {
		set++
	}
	if r.Experience != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("%s record must carry exactly one score variant, found %d", r.TestType, set)
	}

	const minSum = QuestionsPerCategory * MinLikertValue
	const maxSum = QuestionsPerCategory * MaxLikertValue

	switch r.TestType {
	case TestTypePersonality:
		if r.Personality == nil {
			return fmt.Errorf("personality record is missing DISC scores")
		}
		n := len(DISCWordGroups)
		for letter, v := range r.Personality.Map() {
			if v < -n || v > n {
				return fmt.Errorf("DISC score %s=%d outside [-%d, %d]", letter, v, n, n)
			}
		}
	case TestTypeGifts:
		if r.Gifts == nil {
			return fmt.Errorf("gifts record is missing gift scores")
		}
		if len(r.Gifts) != len(GiftKeys) {
			return fmt.Errorf("gifts record has %d gifts, want %d", len(r.Gifts), len(GiftKeys))
		}
		for _, key := range GiftKeys {
			v, ok := r.Gifts[key]
			if !ok {
				return fmt.Errorf("gifts record is missing %s", key)
			}
			if v < minSum || v > maxSum {
				return fmt.Errorf("gift score %s=%d outside [%d, %d]", key, v, minSum, maxSum)
			}
		}
	case TestTypeSkills:
		if r.Skills == nil {
			return fmt.Errorf("skills record is missing RIASEC scores")
		}
		for letter, v := range r.Skills.Map() {
			if v < minSum || v > maxSum {
				return fmt.Errorf("skill score %s=%d outside [%d, %d]", letter, v, minSum, maxSum)
			}
		}
	case TestTypePassion:
		if r.Passion == nil {
			return fmt.Errorf("passion record is missing selections")
		}
		if len(r.Passion.TopFiveGroups) != TopPassionGroupsCount {
			return fmt.Errorf("passion record has %d top groups, want %d", len(r.Passion.TopFiveGroups), TopPassionGroupsCount)
		}
		if len(r.Passion.TopThreePassions) != TopPassionsCount {
			return fmt.Errorf("passion record has %d top passions, want %d", len(r.Passion.TopThreePassions), TopPassionsCount)
		}
	case TestTypeExperience:
		if r.Experience == nil {
			return fmt.Errorf("experience record is missing survey")
		}
		if len(r.Experience.TopTwoExperiences) != TopExperiencesCount {
			return fmt.Errorf("experience record has %d top experiences, want %d", len(r.Experience.TopTwoExperiences), TopExperiencesCount)
		}
	default:
		return fmt.Errorf("unknown test type %q", r.TestType)
	}
	return nil
}

// AssessmentResult is a persisted score record for one member
type AssessmentResult struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	TestType    TestType    `json:"test_type"`
	Record      ScoreRecord `json:"record"`
	CompletedOn time.Time   `json:"completed_on"`
	UpdatedOn   time.Time   `json:"updated_on"`
}

// UserRecords indexes a member's completed records by test type
type UserRecords map[TestType]*ScoreRecord

// RecordsFromResults builds the index from persisted results
func RecordsFromResults(results []*AssessmentResult) UserRecords {
	records := make(UserRecords, len(results))
	for _, r := range results {
		rec := r.Record
		records[r.TestType] = &rec
	}
	return records
}
