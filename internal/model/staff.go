package model

// MemberSummary is the staff view of one member's completed assessments
type MemberSummary struct {
	User             *User      `json:"user"`
	CompletedTests   []TestType `json:"completed_tests"`
	TopPersonality   []string   `json:"top_personality,omitempty"`
	TopGifts         []string   `json:"top_gifts,omitempty"`
	TopSkills        []string   `json:"top_skills,omitempty"`
	TopPassionGroups []string   `json:"top_passion_groups,omitempty"`
	TopExperiences   []string   `json:"top_experiences,omitempty"`
}

// CongregationSummary aggregates results across all members
type CongregationSummary struct {
	Members         []*MemberSummary `json:"members"`
	MemberCount     int              `json:"member_count"`
	CompletedByTest map[TestType]int `json:"completed_by_test"`
	// Distributions count how many members have each trait among their top traits
	PersonalityDistribution map[string]int `json:"personality_distribution"`
	GiftDistribution        map[string]int `json:"gift_distribution"`
	SkillDistribution       map[string]int `json:"skill_distribution"`
	PassionDistribution     map[string]int `json:"passion_distribution"`
}
