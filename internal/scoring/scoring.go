package scoring

import (
	"fmt"

	"github.com/forgo/shepherd/api/internal/model"
)

// Score scores a complete answer set for one assessment
func Score(testType model.TestType, answers model.Answers) (*model.ScoreRecord, error) {
	record := &model.ScoreRecord{TestType: testType}

	switch testType {
	case model.TestTypePersonality:
		scores, err := ScorePersonality(answers.DISC)
		if err != nil {
			return nil, err
		}
		record.Personality = scores
	case model.TestTypeGifts:
		scores, err := ScoreGifts(answers.Likert)
		if err != nil {
			return nil, err
		}
		record.Gifts = scores
	case model.TestTypeSkills:
		scores, err := ScoreSkills(answers.Likert)
		if err != nil {
			return nil, err
		}
		record.Skills = scores
	case model.TestTypePassion:
		result, err := ScorePassion(answers.Passion)
		if err != nil {
			return nil, err
		}
		record.Passion = result
	case model.TestTypeExperience:
		result, err := ScoreExperience(answers.Experience)
		if err != nil {
			return nil, err
		}
		record.Experience = result
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTestType, testType)
	}

	return record, nil
}
