package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/shepherd/api/internal/model"
)

// ============================================================================
// Fixtures
// ============================================================================

// giftRecord scores the given gifts 35 down to 31 and everything else 7
func giftRecord(top ...string) *model.ScoreRecord {
	scores := make(model.GiftScores, len(model.GiftKeys))
	for _, k := range model.GiftKeys {
		scores[k] = 7
	}
	for i, k := range top {
		scores[k] = 35 - i
	}
	return &model.ScoreRecord{TestType: model.TestTypeGifts, Gifts: scores}
}

func ministry(id, name string, level model.CommitmentLevel, rt model.RecommendedTraits) model.Ministry {
	return model.Ministry{
		ID:                id,
		Name:              name,
		Description:       name + " ministry",
		CommitmentLevel:   level,
		RecommendedTraits: rt,
	}
}

func testCatalog() []model.Ministry {
	return []model.Ministry{
		ministry("kids", "Kids Church", model.CommitmentMedium, model.RecommendedTraits{
			PersonalityTypes: []string{"I", "S"},
			SpiritualGifts:   []string{"ensenanza", "pastoreo", "servicio"},
			SkillTypes:       []string{"S", "A"},
			PassionGroups:    []string{"Children", "Families"},
		}),
		ministry("welcome", "Welcome Team", model.CommitmentLow, model.RecommendedTraits{
			PersonalityTypes: []string{"I"},
			SpiritualGifts:   []string{"hospitalidad", "servicio"},
			SkillTypes:       []string{"S"},
			PassionGroups:    []string{"New Believers"},
		}),
		ministry("elders", "Elder Board", model.CommitmentHigh, model.RecommendedTraits{
			PersonalityTypes: []string{"D", "C"},
			SpiritualGifts:   []string{"liderazgo", "sabiduria", "pastoreo", "discernimiento"},
			SkillTypes:       []string{"E"},
		}),
	}
}

// ============================================================================
// TopKeys Tests
// ============================================================================

func TestTopKeys_ScoreDescendingThenKeyAscending(t *testing.T) {
	t.Parallel()

	scores := map[string]int{"S": 4, "C": 9, "I": 4, "D": 9}

	assert.Equal(t, []string{"C", "D"}, TopKeys(scores, 2))
	assert.Equal(t, []string{"C", "D", "I", "S"}, TopKeys(scores, 10))
}

func TestTopTraits_DerivesPerDimension(t *testing.T) {
	t.Parallel()

	records := model.UserRecords{
		model.TestTypePersonality: {TestType: model.TestTypePersonality, Personality: &model.PersonalityScores{D: 5, I: 8, S: -3, C: 5}},
		model.TestTypeGifts:       giftRecord("liderazgo", "ensenanza", "pastoreo", "fe", "dar", "servicio"),
		model.TestTypeSkills:      {TestType: model.TestTypeSkills, Skills: &model.SkillScores{R: 10, I: 20, A: 30, S: 30, E: 7, C: 7}},
		model.TestTypePassion: {TestType: model.TestTypePassion, Passion: &model.PassionResult{
			TopFiveGroups:    []string{"Children", "Youth", "Families", "Widows", "Orphans"},
			TopThreePassions: []string{"Teaching", "Caring", "Serving"},
		}},
	}

	traits := TopTraits(records)

	assert.Equal(t, []string{"I", "C"}, traits[model.DimensionPersonality])
	assert.Equal(t, []string{"liderazgo", "ensenanza", "pastoreo", "fe", "dar"}, traits[model.DimensionGifts])
	assert.Equal(t, []string{"A", "S", "I"}, traits[model.DimensionSkills])
	assert.Len(t, traits[model.DimensionPassion], 8)
	assert.False(t, traits.Completed(model.DimensionExperience))
}

// ============================================================================
// Evaluate Tests
// ============================================================================

func TestEvaluate_GiftsOnlyHalfOverlapRoundsUp(t *testing.T) {
	t.Parallel()

	traits := TopTraits(model.UserRecords{
		model.TestTypeGifts: giftRecord("liderazgo", "ensenanza", "pastoreo", "fe", "dar"),
	})
	m := ministry("teach", "Teaching Team", model.CommitmentMedium, model.RecommendedTraits{
		SpiritualGifts: []string{"liderazgo", "ensenanza", "evangelismo", "misericordia"},
	})

	result := Evaluate(traits, m)

	assert.Equal(t, 50.0, result.ComponentScores.GiftsScore)
	assert.Equal(t, 18, result.CompatibilityScore)
	assert.Equal(t, "Consider Exploring", result.Label)
	require.Len(t, result.MatchReasons, 1)
	assert.Equal(t, string(model.DimensionGifts), result.MatchReasons[0].Type)
	assert.Equal(t, []string{"liderazgo", "ensenanza"}, result.MatchReasons[0].Traits)
	assert.Contains(t, result.MatchReasons[0].Description, "Liderazgo")
}

func TestEvaluate_FullOverlapIsHundred(t *testing.T) {
	t.Parallel()

	records := model.UserRecords{
		model.TestTypePersonality: {TestType: model.TestTypePersonality, Personality: &model.PersonalityScores{D: 10, C: 8}},
		model.TestTypeGifts:       giftRecord("liderazgo", "sabiduria", "pastoreo", "discernimiento", "fe"),
		model.TestTypeSkills:      {TestType: model.TestTypeSkills, Skills: &model.SkillScores{R: 7, I: 7, A: 7, S: 20, E: 35, C: 30}},
		model.TestTypePassion: {TestType: model.TestTypePassion, Passion: &model.PassionResult{
			TopFiveGroups:    []string{"Families", "Youth", "Children", "Widows", "Orphans"},
			TopThreePassions: []string{"Leading", "Teaching", "Praying"},
		}},
		model.TestTypeExperience: {TestType: model.TestTypeExperience, Experience: &model.ExperienceResult{
			TopTwoExperiences: []string{"Church planting", "Business owner"},
		}},
	}
	m := ministry("elders", "Elder Board", model.CommitmentHigh, model.RecommendedTraits{
		PersonalityTypes:    []string{"D", "C"},
		SpiritualGifts:      []string{"liderazgo", "sabiduria"},
		SkillTypes:          []string{"E"},
		PassionGroups:       []string{"families"},
		RelevantExperiences: []string{"Church planting"},
	})

	result := Evaluate(TopTraits(records), m)

	assert.Equal(t, 100, result.CompatibilityScore)
	assert.Equal(t, "Excellent Match", result.Label)
	assert.Empty(t, result.SkippedDimensions)
	assert.Empty(t, result.EmptyDimensions)
	assert.Len(t, result.MatchReasons, 5)
}

func TestEvaluate_ZeroOverlapStillScored(t *testing.T) {
	t.Parallel()

	traits := TopTraits(model.UserRecords{
		model.TestTypeGifts: giftRecord("artesania", "dar", "fe", "conocimiento", "intercesion"),
	})
	m := testCatalog()[0]

	result := Evaluate(traits, m)

	assert.Equal(t, 0, result.CompatibilityScore)
	require.Len(t, result.MatchReasons, 1)
	assert.Equal(t, model.MatchReasonLowCompatibility, result.MatchReasons[0].Type)
}

func TestEvaluate_ReportsSkippedAndEmptyDimensions(t *testing.T) {
	t.Parallel()

	traits := TopTraits(model.UserRecords{
		model.TestTypeGifts: giftRecord("liderazgo"),
	})
	m := ministry("x", "Sound Booth", model.CommitmentLow, model.RecommendedTraits{
		SpiritualGifts: []string{"servicio"},
		SkillTypes:     []string{"R"},
	})

	result := Evaluate(traits, m)

	assert.Equal(t, []model.Dimension{
		model.DimensionPersonality, model.DimensionSkills, model.DimensionPassion, model.DimensionExperience,
	}, result.SkippedDimensions)
	assert.Equal(t, []model.Dimension{
		model.DimensionPersonality, model.DimensionPassion, model.DimensionExperience,
	}, result.EmptyDimensions)
}

func TestEvaluate_DuplicateRequiredTraitsCountOnce(t *testing.T) {
	t.Parallel()

	traits := TopTraits(model.UserRecords{
		model.TestTypeGifts: giftRecord("servicio"),
	})
	m := ministry("x", "Setup", model.CommitmentLow, model.RecommendedTraits{
		SpiritualGifts: []string{"servicio", "servicio", "misericordia"},
	})

	result := Evaluate(traits, m)

	assert.Equal(t, 50.0, result.ComponentScores.GiftsScore)
}

func TestEvaluate_ScoreAlwaysInBounds(t *testing.T) {
	t.Parallel()

	records := model.UserRecords{
		model.TestTypePersonality: {TestType: model.TestTypePersonality, Personality: &model.PersonalityScores{I: 10, S: 9}},
		model.TestTypeGifts:       giftRecord("ensenanza", "pastoreo", "servicio", "hospitalidad", "fe"),
		model.TestTypeSkills:      {TestType: model.TestTypeSkills, Skills: &model.SkillScores{R: 7, I: 7, A: 30, S: 35, E: 7, C: 7}},
	}
	traits := TopTraits(records)

	for _, m := range testCatalog() {
		result := Evaluate(traits, m)
		assert.GreaterOrEqual(t, result.CompatibilityScore, 0, m.ID)
		assert.LessOrEqual(t, result.CompatibilityScore, 100, m.ID)
	}
}

// ============================================================================
// Label Tests
// ============================================================================

func TestLabel_Thresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score int
		want  string
	}{
		{100, "Excellent Match"},
		{80, "Excellent Match"},
		{79, "Good Match"},
		{60, "Good Match"},
		{59, "Moderate Match"},
		{40, "Moderate Match"},
		{39, "Consider Exploring"},
		{0, "Consider Exploring"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Label(tt.score), "score %d", tt.score)
	}
}

// ============================================================================
// Match Tests
// ============================================================================

func TestMatch_NoCompletedAssessments(t *testing.T) {
	t.Parallel()

	_, err := Match(model.UserRecords{}, testCatalog(), Options{})
	assert.ErrorIs(t, err, ErrNoCompletedAssessments)

	_, err = Match(nil, testCatalog(), Options{})
	assert.ErrorIs(t, err, ErrNoCompletedAssessments)
}

func TestMatch_KeepsZeroOverlapMinistries(t *testing.T) {
	t.Parallel()

	records := model.UserRecords{
		model.TestTypeGifts: giftRecord("hospitalidad", "servicio"),
	}

	results, err := Match(records, testCatalog(), Options{})

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "welcome", results[0].Ministry.ID)
	assert.Equal(t, "elders", results[2].Ministry.ID)
	assert.Equal(t, 0, results[2].CompatibilityScore)
}

func TestMatch_SortByCommitmentUsesOrdinal(t *testing.T) {
	t.Parallel()

	records := model.UserRecords{model.TestTypeGifts: giftRecord("servicio")}

	asc, err := Match(records, testCatalog(), Options{Sort: SortCommitment, Order: OrderAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"welcome", "kids", "elders"}, ids(asc))

	desc, err := Match(records, testCatalog(), Options{Sort: SortCommitment, Order: OrderDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"elders", "kids", "welcome"}, ids(desc))
}

func TestMatch_SortByName(t *testing.T) {
	t.Parallel()

	records := model.UserRecords{model.TestTypeGifts: giftRecord("servicio")}

	results, err := Match(records, testCatalog(), Options{Sort: SortName, Order: OrderAsc})

	require.NoError(t, err)
	assert.Equal(t, []string{"elders", "kids", "welcome"}, ids(results))
}

func TestMatch_TiesBreakByNameThenID(t *testing.T) {
	t.Parallel()

	catalog := []model.Ministry{
		ministry("b", "Parking", model.CommitmentLow, model.RecommendedTraits{}),
		ministry("a", "Parking", model.CommitmentLow, model.RecommendedTraits{}),
		ministry("c", "Coffee", model.CommitmentLow, model.RecommendedTraits{}),
	}
	records := model.UserRecords{model.TestTypeGifts: giftRecord("servicio")}

	results, err := Match(records, catalog, Options{})

	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids(results))
}

// ============================================================================
// Filter Tests
// ============================================================================

func TestFilters_PassionSubstringIgnoresCase(t *testing.T) {
	t.Parallel()

	exact := ministry("a", "Kids", model.CommitmentLow, model.RecommendedTraits{PassionGroups: []string{"Children"}})
	longer := ministry("b", "Nursery", model.CommitmentLow, model.RecommendedTraits{PassionGroups: []string{"children ministries"}})
	other := ministry("c", "Seniors", model.CommitmentLow, model.RecommendedTraits{PassionGroups: []string{"Seniors"}})

	f := Filters{PassionGroups: []string{"Children"}}

	assert.True(t, f.Matches(exact))
	assert.True(t, f.Matches(longer))
	assert.False(t, f.Matches(other))
}

func TestFilters_ExactCategoriesAreCaseSensitive(t *testing.T) {
	t.Parallel()

	m := testCatalog()[0]

	assert.True(t, Filters{Gifts: []string{"pastoreo"}}.Matches(m))
	assert.False(t, Filters{Gifts: []string{"Pastoreo"}}.Matches(m))
}

func TestFilters_OrWithinAndAcross(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()

	f := Filters{PersonalityTypes: []string{"D", "S"}}
	assert.Equal(t, []string{"kids", "elders"}, filteredIDs(f, catalog))

	f = Filters{
		PersonalityTypes: []string{"D", "S"},
		CommitmentLevels: []model.CommitmentLevel{model.CommitmentHigh},
	}
	assert.Equal(t, []string{"elders"}, filteredIDs(f, catalog))

	f = Filters{Skills: []string{"S"}, Gifts: []string{"liderazgo"}}
	assert.Empty(t, filteredIDs(f, catalog))
}

func TestFilters_SearchNameOrDescription(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()
	catalog[1].Description = "Greet guests at the DOOR"

	assert.Equal(t, []string{"kids"}, filteredIDs(Filters{Search: "church"}, catalog))
	assert.Equal(t, []string{"welcome"}, filteredIDs(Filters{Search: "door"}, catalog))
	assert.Len(t, filteredIDs(Filters{Search: "  "}, catalog), 3)
}

func TestMatch_AppliesFilters(t *testing.T) {
	t.Parallel()

	records := model.UserRecords{model.TestTypeGifts: giftRecord("servicio")}

	results, err := Match(records, testCatalog(), Options{
		Filters: Filters{CommitmentLevels: []model.CommitmentLevel{model.CommitmentLow, model.CommitmentMedium}},
	})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"kids", "welcome"}, ids(results))
}

// ============================================================================
// ParseSort Tests
// ============================================================================

func TestParseSort(t *testing.T) {
	t.Parallel()

	f, o, err := ParseSort("", "")
	require.NoError(t, err)
	assert.Equal(t, SortCompatibility, f)
	assert.Equal(t, OrderDesc, o)

	f, o, err = ParseSort("Name", "ASC")
	require.NoError(t, err)
	assert.Equal(t, SortName, f)
	assert.Equal(t, OrderAsc, o)

	_, _, err = ParseSort("popularity", "")
	assert.ErrorIs(t, err, ErrInvalidSort)

	_, _, err = ParseSort("name", "up")
	assert.ErrorIs(t, err, ErrInvalidSort)
}

func ids(results []model.MatchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Ministry.ID
	}
	return out
}

func filteredIDs(f Filters, catalog []model.Ministry) []string {
	var out []string
	for _, m := range catalog {
		if f.Matches(m) {
			out = append(out, m.ID)
		}
	}
	return out
}
