package matching

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/forgo/shepherd/api/internal/model"
)

var ErrNoCompletedAssessments = errors.New("at least one completed assessment is required")

// Dimension weights, in percent
const (
	WeightPersonality = 15
	WeightGifts       = 35
	WeightSkills      = 20
	WeightPassion     = 20
	WeightExperience  = 10
)

var weights = map[model.Dimension]float64{
	model.DimensionPersonality: WeightPersonality,
	model.DimensionGifts:       WeightGifts,
	model.DimensionSkills:      WeightSkills,
	model.DimensionPassion:     WeightPassion,
	model.DimensionExperience:  WeightExperience,
}

// Label thresholds
const (
	ExcellentThreshold = 80
	GoodThreshold      = 60
	ModerateThreshold  = 40
)

// Label returns the display label for a compatibility score
func Label(score int) string {
	switch {
	case score >= ExcellentThreshold:
		return "Excellent Match"
	case score >= GoodThreshold:
		return "Good Match"
	case score >= ModerateThreshold:
		return "Moderate Match"
	default:
		return "Consider Exploring"
	}
}

// Match scores every ministry in the catalog against the member's records,
// then filters and sorts the results
func Match(records model.UserRecords, catalog []model.Ministry, opts Options) ([]model.MatchResult, error) {
	traits := TopTraits(records)
	if len(traits) == 0 {
		return nil, ErrNoCompletedAssessments
	}

	results := make([]model.MatchResult, 0, len(catalog))
	for _, m := range catalog {
		if !opts.Filters.Matches(m) {
			continue
		}
		results = append(results, Evaluate(traits, m))
	}

	Sort(results, opts.Sort, opts.Order)
	return results, nil
}

// Evaluate computes the match of one ministry against a member's traits
func Evaluate(traits Traits, m model.Ministry) model.MatchResult {
	result := model.MatchResult{
		Ministry:          m,
		MatchReasons:      []model.MatchReason{},
		SkippedDimensions: []model.Dimension{},
		EmptyDimensions:   []model.Dimension{},
	}

	var weighted float64
	for _, d := range model.AllDimensions {
		required := requiredTraits(m.RecommendedTraits, d)
		if len(required) == 0 {
			result.EmptyDimensions = append(result.EmptyDimensions, d)
		}
		if !traits.Completed(d) {
			result.SkippedDimensions = append(result.SkippedDimensions, d)
		}

		overlap := intersect(traits[d], required)
		score := dimensionScore(len(overlap), len(required))
		setComponent(&result.ComponentScores, d, score)
		weighted += score * weights[d]

		if len(overlap) > 0 {
			result.MatchReasons = append(result.MatchReasons, reasonFor(d, overlap))
		}
	}

	result.CompatibilityScore = int(math.Round(weighted / 100))
	result.Label = Label(result.CompatibilityScore)

	if len(result.MatchReasons) == 0 {
		result.MatchReasons = append(result.MatchReasons, model.MatchReason{
			Type:        model.MatchReasonLowCompatibility,
			Description: "Low compatibility: none of your top traits overlap with what this ministry looks for",
		})
	}

	return result
}

// dimensionScore is the overlap share as a percentage; an empty required
// list contributes zero
func dimensionScore(overlap, required int) float64 {
	if required == 0 {
		return 0
	}
	return float64(overlap) / float64(required) * 100
}

func requiredTraits(rt model.RecommendedTraits, d model.Dimension) []string {
	var traits []string
	switch d {
	case model.DimensionPersonality:
		traits = rt.PersonalityTypes
	case model.DimensionGifts:
		traits = rt.SpiritualGifts
	case model.DimensionSkills:
		traits = rt.SkillTypes
	case model.DimensionPassion:
		traits = rt.PassionGroups
	case model.DimensionExperience:
		traits = rt.RelevantExperiences
	}
	return distinct(traits)
}

func setComponent(cs *model.ComponentScores, d model.Dimension, score float64) {
	switch d {
	case model.DimensionPersonality:
		cs.PersonalityScore = score
	case model.DimensionGifts:
		cs.GiftsScore = score
	case model.DimensionSkills:
		cs.SkillsScore = score
	case model.DimensionPassion:
		cs.PassionScore = score
	case model.DimensionExperience:
		cs.ExperienceScore = score
	}
}

// intersect returns the required traits the member has, in required order.
// Comparison ignores case.
func intersect(have, required []string) []string {
	var out []string
	for _, r := range required {
		for _, h := range have {
			if strings.EqualFold(h, r) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func distinct(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

func reasonFor(d model.Dimension, overlap []string) model.MatchReason {
	names := make([]string, len(overlap))
	for i, t := range overlap {
		names[i] = displayName(d, t)
	}
	list := strings.Join(names, ", ")

	var desc string
	switch d {
	case model.DimensionPersonality:
		desc = fmt.Sprintf("Your personality style (%s) fits this ministry", list)
	case model.DimensionGifts:
		desc = fmt.Sprintf("Your spiritual gifts match: %s", list)
	case model.DimensionSkills:
		desc = fmt.Sprintf("Your skills match: %s", list)
	case model.DimensionPassion:
		desc = fmt.Sprintf("Your passion aligns: %s", list)
	case model.DimensionExperience:
		desc = fmt.Sprintf("Your experience is relevant: %s", list)
	}

	return model.MatchReason{Type: string(d), Description: desc, Traits: overlap}
}

func displayName(d model.Dimension, trait string) string {
	switch d {
	case model.DimensionGifts:
		if label, ok := model.GiftLabels[trait]; ok {
			return label
		}
	case model.DimensionSkills:
		if label, ok := model.SkillLabels[trait]; ok {
			return label
		}
	}
	return trait
}
