package matching

import (
	"sort"

	"github.com/forgo/shepherd/api/internal/model"
)

// How many top traits each scored assessment contributes
const (
	TopPersonalityCount = 2
	TopGiftsCount       = 5
	TopSkillsCount      = 3
)

// Traits are a member's top traits per dimension. A dimension is absent from
// the map when the member has not completed its assessment.
type Traits map[model.Dimension][]string

// Completed reports whether the member completed the assessment behind d
func (t Traits) Completed(d model.Dimension) bool {
	_, ok := t[d]
	return ok
}

// TopTraits derives the traits used for matching from completed records
func TopTraits(records model.UserRecords) Traits {
	traits := make(Traits)

	if rec := records[model.TestTypePersonality]; rec != nil && rec.Personality != nil {
		traits[model.DimensionPersonality] = TopKeys(rec.Personality.Map(), TopPersonalityCount)
	}
	if rec := records[model.TestTypeGifts]; rec != nil && rec.Gifts != nil {
		traits[model.DimensionGifts] = TopKeys(rec.Gifts, TopGiftsCount)
	}
	if rec := records[model.TestTypeSkills]; rec != nil && rec.Skills != nil {
		traits[model.DimensionSkills] = TopKeys(rec.Skills.Map(), TopSkillsCount)
	}
	if rec := records[model.TestTypePassion]; rec != nil && rec.Passion != nil {
		passion := make([]string, 0, len(rec.Passion.TopFiveGroups)+len(rec.Passion.TopThreePassions))
		passion = append(passion, rec.Passion.TopFiveGroups...)
		passion = append(passion, rec.Passion.TopThreePassions...)
		traits[model.DimensionPassion] = passion
	}
	if rec := records[model.TestTypeExperience]; rec != nil && rec.Experience != nil {
		traits[model.DimensionExperience] = append([]string(nil), rec.Experience.TopTwoExperiences...)
	}

	return traits
}

// TopKeys returns the n highest-scoring keys, score descending then key
// ascending
func TopKeys(scores map[string]int, n int) []string {
	keys := make([]string, 0, len(scores))
	for k := range scores {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if scores[keys[i]] != scores[keys[j]] {
			return scores[keys[i]] > scores[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
