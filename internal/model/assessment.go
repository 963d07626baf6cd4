package model

import "time"

// TestType identifies one of the self-assessment questionnaires
type TestType string

const (
	TestTypePersonality TestType = "personality" // DISC word groups
	TestTypeGifts       TestType = "gifts"       // 16 spiritual gifts, Likert
	TestTypeSkills      TestType = "skills"      // RIASEC, Likert
	TestTypePassion     TestType = "passion"     // four-step narrowing selection
	TestTypeExperience  TestType = "experience"  // life experience survey
)

// AllTestTypes lists every assessment in the order members are expected to take them
var AllTestTypes = []TestType{
	TestTypePersonality,
	TestTypeGifts,
	TestTypeSkills,
	TestTypePassion,
	TestTypeExperience,
}

// IsValid reports whether t is a known assessment
func (t TestType) IsValid() bool {
	for _, known := range AllTestTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Likert answer bounds
const (
	MinLikertValue = 1
	MaxLikertValue = 5
)

// Selection cardinalities for the narrowing steps
const (
	TopPassionGroupsCount = 5
	TopPassionsCount      = 3
	TopExperiencesCount   = 2
)

// DISCChoice is a member's pick for one word group
type DISCChoice struct {
	Most  string `json:"most"`  // word that is "most like me"
	Least string `json:"least"` // word that is "least like me"
}

// PassionAnswers holds the four narrowing steps of the passion assessment
type PassionAnswers struct {
	SelectedGroups   []string `json:"selected_groups"`
	TopFiveGroups    []string `json:"top_five_groups"`
	SelectedPassions []string `json:"selected_passions"`
	TopThreePassions []string `json:"top_three_passions"`
}

// ExperienceAnswers holds the life experience survey
type ExperienceAnswers struct {
	ExperienceTypes     []string `json:"experience_types"`
	SignificantEvents   []string `json:"significant_events"`
	PositiveExperiences []string `json:"positive_experiences"`
	PainfulExperiences  []string `json:"painful_experiences"`
	// OtherPainful is a free-text painful experience not in the list
	OtherPainful      string   `json:"other_painful,omitempty"`
	LessonsLearned    string   `json:"lessons_learned"`
	ImpactOnMinistry  string   `json:"impact_on_ministry"`
	TopTwoExperiences []string `json:"top_two_experiences"`
}

// Answers is the serializable answer set submitted for one assessment.
// Only the field matching the assessment type is read:
//   - personality: DISC keyed by word-group number (1-28)
//   - gifts, skills: Likert keyed by question number
//   - passion: Passion
//   - experience: Experience
type Answers struct {
	Likert     map[int]int        `json:"likert,omitempty"`
	DISC       map[int]DISCChoice `json:"disc,omitempty"`
	Passion    *PassionAnswers    `json:"passion,omitempty"`
	Experience *ExperienceAnswers `json:"experience,omitempty"`
}

// SubmitAnswersRequest is the body of POST /v1/assessments/{testType}/submit
type SubmitAnswersRequest struct {
	Answers Answers `json:"answers"`
}

// TestProgress reports completion state for one assessment
type TestProgress struct {
	TestType    TestType   `json:"test_type"`
	Completed   bool       `json:"completed"`
	CompletedOn *time.Time `json:"completed_on,omitempty"`
}

// ProgressSummary is a member's completion state across all assessments
type ProgressSummary struct {
	Tests          []TestProgress `json:"tests"`
	CompletedCount int            `json:"completed_count"`
	TotalCount     int            `json:"total_count"`
	CanMatch       bool           `json:"can_match"` // at least one assessment completed
}

// AssessmentInfo describes an assessment for the test picker
type AssessmentInfo struct {
	Type          TestType `json:"type"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	QuestionCount int      `json:"question_count"`
}

// GetAssessments returns display info for every assessment
func GetAssessments() []AssessmentInfo {
	return []AssessmentInfo{
		{
			Type:          TestTypePersonality,
			Title:         "Personalidad (DISC)",
			Description:   "Choose the word most and least like you in each group",
			QuestionCount: len(DISCWordGroups),
		},
		{
			Type:          TestTypeGifts,
			Title:         "Dones Espirituales",
			Description:   "Rate how true each statement is of you",
			QuestionCount: GiftQuestionCount,
		},
		{
			Type:          TestTypeSkills,
			Title:         "Habilidades (RIASEC)",
			Description:   "Rate how much you enjoy each activity",
			QuestionCount: SkillQuestionCount,
		},
		{
			Type:          TestTypePassion,
			Title:         "Pasión",
			Description:   "Narrow down the people and causes you care about most",
			QuestionCount: 4,
		},
		{
			Type:          TestTypeExperience,
			Title:         "Experiencia",
			Description:   "Reflect on the experiences that shaped you",
			QuestionCount: 7,
		},
	}
}
