package scoring

import (
	"fmt"

	"github.com/forgo/shepherd/api/internal/model"
)

// ScoreGifts sums the 112 gift answers into 16 gifts
func ScoreGifts(answers map[int]int) (model.GiftScores, error) {
	sums, err := sumLikert(model.TestTypeGifts, answers, model.GiftQuestionCount, model.GiftForQuestion)
	if err != nil {
		return nil, err
	}
	return model.GiftScores(sums), nil
}

// ScoreSkills sums the 42 skill answers into the six RIASEC letters
func ScoreSkills(answers map[int]int) (*model.SkillScores, error) {
	sums, err := sumLikert(model.TestTypeSkills, answers, model.SkillQuestionCount, model.SkillForQuestion)
	if err != nil {
		return nil, err
	}
	return &model.SkillScores{
		R: sums[model.SkillRealistic],
		I: sums[model.SkillInvestigative],
		A: sums[model.SkillArtistic],
		S: sums[model.SkillSocial],
		E: sums[model.SkillEnterprising],
		C: sums[model.SkillConventional],
	}, nil
}

// sumLikert adds each answer to the category its question maps to. Sums are
// raw, so each category lands in [7, 35].
func sumLikert(tt model.TestType, answers map[int]int, count int, category func(int) (string, bool)) (map[string]int, error) {
	if err := checkKeys(tt, "likert", answers, count); err != nil {
		return nil, err
	}

	sums := make(map[string]int)
	for q := 1; q <= count; q++ {
		v, ok := answers[q]
		if !ok {
			return nil, incomplete(tt, fieldFor("likert", q), "question %d is unanswered", q)
		}
		if v < model.MinLikertValue || v > model.MaxLikertValue {
			return nil, invalid(tt, fieldFor("likert", q), "answer %d is outside %d-%d", v, model.MinLikertValue, model.MaxLikertValue)
		}
		key, _ := category(q)
		sums[key] += v
	}
	return sums, nil
}

func fieldFor(field string, q int) string {
	return fmt.Sprintf("%s.%d", field, q)
}
