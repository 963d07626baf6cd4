package scoring

import (
	"sort"

	"github.com/forgo/shepherd/api/internal/model"
)

// discTally accumulates "most" and "least" picks per letter
type discTally struct {
	plus  map[string]int
	minus map[string]int
}

func newDISCTally() *discTally {
	return &discTally{plus: make(map[string]int), minus: make(map[string]int)}
}

func (t *discTally) add(mostLetter, leastLetter string) {
	t.plus[mostLetter]++
	t.minus[leastLetter]++
}

// net returns plus minus minus per letter; letters never picked score 0
func (t *discTally) net() *model.PersonalityScores {
	return &model.PersonalityScores{
		D: t.plus[model.DISCDominance] - t.minus[model.DISCDominance],
		I: t.plus[model.DISCInfluence] - t.minus[model.DISCInfluence],
		S: t.plus[model.DISCSteadiness] - t.minus[model.DISCSteadiness],
		C: t.plus[model.DISCConscientiousness] - t.minus[model.DISCConscientiousness],
	}
}

// ScorePersonality scores the DISC word groups. Every group needs a "most"
// and a different "least" word from that group.
func ScorePersonality(choices map[int]model.DISCChoice) (*model.PersonalityScores, error) {
	const tt = model.TestTypePersonality
	groups := len(model.DISCWordGroups)

	if err := checkKeys(tt, "disc", choices, groups); err != nil {
		return nil, err
	}

	tally := newDISCTally()
	for n := 1; n <= groups; n++ {
		choice, ok := choices[n]
		if !ok {
			return nil, incomplete(tt, fieldFor("disc", n), "word group %d is unanswered", n)
		}
		if choice.Most == "" || choice.Least == "" {
			return nil, incomplete(tt, fieldFor("disc", n), "word group %d needs a most and a least word", n)
		}
		if choice.Most == choice.Least {
			return nil, invalid(tt, fieldFor("disc", n), "%q cannot be both most and least", choice.Most)
		}
		most, ok := model.DISCLetterFor(n, choice.Most)
		if !ok {
			return nil, invalid(tt, fieldFor("disc", n), "%q is not in word group %d", choice.Most, n)
		}
		least, ok := model.DISCLetterFor(n, choice.Least)
		if !ok {
			return nil, invalid(tt, fieldFor("disc", n), "%q is not in word group %d", choice.Least, n)
		}
		tally.add(most, least)
	}

	return tally.net(), nil
}

// checkKeys rejects question numbers outside 1..count, lowest first
func checkKeys[V any](tt model.TestType, field string, answers map[int]V, count int) error {
	var unknown []int
	for q := range answers {
		if q < 1 || q > count {
			unknown = append(unknown, q)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Ints(unknown)
	return invalid(tt, fieldFor(field, unknown[0]), "question %d does not exist", unknown[0])
}
