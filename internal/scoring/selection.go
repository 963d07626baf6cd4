package scoring

import (
	"strings"

	"github.com/forgo/shepherd/api/internal/model"
)

// ScorePassion checks the four narrowing steps. Top picks must be distinct
// and drawn from the step before; counts are never truncated or padded.
func ScorePassion(answers *model.PassionAnswers) (*model.PassionResult, error) {
	const tt = model.TestTypePassion
	if answers == nil {
		return nil, incomplete(tt, "passion", "passion answers are missing")
	}

	if err := checkPicks(tt, "passion.selected_groups", answers.SelectedGroups, model.PassionGroups); err != nil {
		return nil, err
	}
	if err := checkNarrowed(tt, "passion.top_five_groups", answers.TopFiveGroups, answers.SelectedGroups, model.TopPassionGroupsCount); err != nil {
		return nil, err
	}
	if err := checkPicks(tt, "passion.selected_passions", answers.SelectedPassions, model.PassionTypes); err != nil {
		return nil, err
	}
	if err := checkNarrowed(tt, "passion.top_three_passions", answers.TopThreePassions, answers.SelectedPassions, model.TopPassionsCount); err != nil {
		return nil, err
	}

	return &model.PassionResult{
		SelectedGroups:   clone(answers.SelectedGroups),
		TopFiveGroups:    trimmed(answers.TopFiveGroups),
		SelectedPassions: clone(answers.SelectedPassions),
		TopThreePassions: trimmed(answers.TopThreePassions),
	}, nil
}

// ScoreExperience checks the life experience survey. Significant, positive
// and painful experiences are picked from model.ExperienceEvents; only
// OtherPainful is free text. The top two must come from the pool of all four;
// a pool smaller than two blocks completion.
func ScoreExperience(answers *model.ExperienceAnswers) (*model.ExperienceResult, error) {
	const tt = model.TestTypeExperience
	if answers == nil {
		return nil, incomplete(tt, "experience", "experience answers are missing")
	}

	if err := checkPicks(tt, "experience.experience_types", answers.ExperienceTypes, model.ExperienceTypes); err != nil {
		return nil, err
	}
	for _, list := range []struct {
		field string
		picks []string
	}{
		{"experience.significant_events", answers.SignificantEvents},
		{"experience.positive_experiences", answers.PositiveExperiences},
		{"experience.painful_experiences", answers.PainfulExperiences},
	} {
		if err := checkOptions(tt, list.field, list.picks, model.ExperienceEvents); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(answers.LessonsLearned) == "" {
		return nil, incomplete(tt, "experience.lessons_learned", "lessons learned is required")
	}
	if strings.TrimSpace(answers.ImpactOnMinistry) == "" {
		return nil, incomplete(tt, "experience.impact_on_ministry", "impact on ministry is required")
	}

	pool := ExperiencePool(answers)
	if len(pool) < model.TopExperiencesCount {
		return nil, cardinality(tt, "experience.top_two_experiences", model.TopExperiencesCount, len(pool))
	}
	if err := checkNarrowed(tt, "experience.top_two_experiences", answers.TopTwoExperiences, pool, model.TopExperiencesCount); err != nil {
		return nil, err
	}

	return &model.ExperienceResult{
		ExperienceTypes:     clone(answers.ExperienceTypes),
		SignificantEvents:   clone(answers.SignificantEvents),
		PositiveExperiences: clone(answers.PositiveExperiences),
		PainfulExperiences:  clone(answers.PainfulExperiences),
		OtherPainful:        strings.TrimSpace(answers.OtherPainful),
		LessonsLearned:      strings.TrimSpace(answers.LessonsLearned),
		ImpactOnMinistry:    strings.TrimSpace(answers.ImpactOnMinistry),
		TopTwoExperiences:   trimmed(answers.TopTwoExperiences),
	}, nil
}

// ExperiencePool returns the distinct experiences a member may pick as top
// two, in the order they were entered
func ExperiencePool(answers *model.ExperienceAnswers) []string {
	var pool []string
	seen := make(map[string]bool)
	add := func(items ...string) {
		for _, item := range items {
			item = strings.TrimSpace(item)
			if item == "" || seen[item] {
				continue
			}
			seen[item] = true
			pool = append(pool, item)
		}
	}
	add(answers.SignificantEvents...)
	add(answers.PositiveExperiences...)
	add(answers.PainfulExperiences...)
	add(answers.OtherPainful)
	return pool
}

// checkPicks requires at least one distinct pick, each from options
func checkPicks(tt model.TestType, field string, picks, options []string) error {
	if len(picks) == 0 {
		return incomplete(tt, field, "select at least one option")
	}
	return checkOptions(tt, field, picks, options)
}

// checkOptions requires every pick to be a distinct entry of options. An empty
// list passes.
func checkOptions(tt model.TestType, field string, picks, options []string) error {
	seen := make(map[string]bool, len(picks))
	for _, p := range picks {
		if !model.Contains(options, p) {
			return invalid(tt, field, "%q is not an option", p)
		}
		if seen[p] {
			return invalid(tt, field, "%q is selected twice", p)
		}
		seen[p] = true
	}
	return nil
}

// checkNarrowed requires exactly want distinct picks drawn from from
func checkNarrowed(tt model.TestType, field string, picks, from []string, want int) error {
	if len(picks) == 0 {
		return incomplete(tt, field, "select your top %d", want)
	}
	if len(picks) != want {
		return cardinality(tt, field, want, len(picks))
	}
	seen := make(map[string]bool, len(picks))
	for _, p := range picks {
		if !model.Contains(from, strings.TrimSpace(p)) {
			return invalid(tt, field, "%q was not chosen in the previous step", p)
		}
		if seen[strings.TrimSpace(p)] {
			return invalid(tt, field, "%q is selected twice", p)
		}
		seen[strings.TrimSpace(p)] = true
	}
	return nil
}

func trimmed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func clone(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
