package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/shepherd/api/internal/metrics"
	"github.com/forgo/shepherd/api/internal/model"
	"github.com/forgo/shepherd/api/internal/scoring"
)

func newAssessmentService(repo *mockResultRepo) *AssessmentService {
	return NewAssessmentService(AssessmentServiceConfig{Results: repo, Metrics: metrics.New()})
}

// ============================================================================
// Submit
// ============================================================================

func TestSubmit_ScoresAndSaves(t *testing.T) {
	t.Parallel()

	var saved *model.ScoreRecord
	repo := &mockResultRepo{}
	repo.saveFunc = func(ctx context.Context, userID string, record *model.ScoreRecord) (*model.AssessmentResult, error) {
		saved = record
		return &model.AssessmentResult{UserID: userID, TestType: record.TestType, Record: *record}, nil
	}
	svc := newAssessmentService(repo)

	res, err := svc.Submit(context.Background(), "user:1", model.TestTypeSkills, model.Answers{
		Likert: likertAnswers(model.SkillQuestionCount, 4),
	})
	require.NoError(t, err)

	require.NotNil(t, saved)
	require.NotNil(t, saved.Skills)
	assert.Equal(t, 4*model.QuestionsPerCategory, saved.Skills.R)
	assert.Equal(t, 4*model.QuestionsPerCategory, saved.Skills.C)
	assert.Equal(t, "user:1", res.UserID)
	assert.Equal(t, model.TestTypeSkills, res.TestType)
}

func TestSubmit_RejectedAnswersAreNotSaved(t *testing.T) {
	t.Parallel()

	repo := &mockResultRepo{}
	repo.saveFunc = func(ctx context.Context, userID string, record *model.ScoreRecord) (*model.AssessmentResult, error) {
		t.Fatal("rejected answers must not be saved")
		return nil, nil
	}
	svc := newAssessmentService(repo)

	answers := likertAnswers(model.GiftQuestionCount, 3)
	delete(answers, 17)

	_, err := svc.Submit(context.Background(), "user:1", model.TestTypeGifts, model.Answers{Likert: answers})
	require.Error(t, err)
	assert.ErrorIs(t, err, scoring.ErrIncompleteAnswers)

	var answerErr *scoring.AnswerError
	assert.True(t, errors.As(err, &answerErr))
}

func TestSubmit_UnknownTestType(t *testing.T) {
	t.Parallel()

	svc := newAssessmentService(&mockResultRepo{})
	_, err := svc.Submit(context.Background(), "user:1", "astrology", model.Answers{})
	assert.ErrorIs(t, err, ErrUnknownTestType)
}

func TestSubmit_SaveError(t *testing.T) {
	t.Parallel()

	repo := &mockResultRepo{}
	repo.saveFunc = func(ctx context.Context, userID string, record *model.ScoreRecord) (*model.AssessmentResult, error) {
		return nil, errors.New("db down")
	}
	svc := newAssessmentService(repo)

	_, err := svc.Submit(context.Background(), "user:1", model.TestTypeGifts, model.Answers{
		Likert: likertAnswers(model.GiftQuestionCount, 2),
	})
	assert.ErrorContains(t, err, "db down")
}

// ============================================================================
// Get / Reset
// ============================================================================

func TestGetResult_NotFound(t *testing.T) {
	t.Parallel()

	svc := newAssessmentService(&mockResultRepo{})
	_, err := svc.Get(context.Background(), "user:1", model.TestTypeGifts)
	assert.ErrorIs(t, err, ErrResultNotFound)

	_, err = svc.Get(context.Background(), "user:1", "unknown")
	assert.ErrorIs(t, err, ErrUnknownTestType)
}

func TestReset(t *testing.T) {
	t.Parallel()

	deleted := map[model.TestType]bool{model.TestTypeGifts: true}
	repo := &mockResultRepo{
		deleteFunc: func(ctx context.Context, userID string, testType model.TestType) (bool, error) {
			return deleted[testType], nil
		},
	}
	svc := newAssessmentService(repo)

	assert.NoError(t, svc.Reset(context.Background(), "user:1", model.TestTypeGifts))
	assert.ErrorIs(t, svc.Reset(context.Background(), "user:1", model.TestTypeSkills), ErrResultNotFound)
	assert.ErrorIs(t, svc.Reset(context.Background(), "user:1", "bogus"), ErrUnknownTestType)
}

// ============================================================================
// Progress / Records
// ============================================================================

func TestProgress(t *testing.T) {
	t.Parallel()

	repo := &mockResultRepo{
		listByUserFunc: func(ctx context.Context, userID string) ([]*model.AssessmentResult, error) {
			return []*model.AssessmentResult{result(userID, giftRecord(nil))}, nil
		},
	}
	svc := newAssessmentService(repo)

	p, err := svc.Progress(context.Background(), "user:1")
	require.NoError(t, err)

	assert.Equal(t, 1, p.CompletedCount)
	assert.Equal(t, len(model.AllTestTypes), p.TotalCount)
	assert.True(t, p.CanMatch)
	require.Len(t, p.Tests, len(model.AllTestTypes))
	for _, tp := range p.Tests {
		if tp.TestType == model.TestTypeGifts {
			assert.True(t, tp.Completed)
			assert.NotNil(t, tp.CompletedOn)
		} else {
			assert.False(t, tp.Completed)
			assert.Nil(t, tp.CompletedOn)
		}
	}
}

func TestProgress_NothingCompleted(t *testing.T) {
	t.Parallel()

	svc := newAssessmentService(&mockResultRepo{})
	p, err := svc.Progress(context.Background(), "user:1")
	require.NoError(t, err)
	assert.Zero(t, p.CompletedCount)
	assert.False(t, p.CanMatch)
}

func TestRecords_IndexesByTestType(t *testing.T) {
	t.Parallel()

	repo := &mockResultRepo{
		listByUserFunc: func(ctx context.Context, userID string) ([]*model.AssessmentResult, error) {
			return []*model.AssessmentResult{result(userID, giftRecord(map[string]int{"ensenanza": 35}))}, nil
		},
	}
	svc := newAssessmentService(repo)

	records, err := svc.Records(context.Background(), "user:1")
	require.NoError(t, err)
	require.Contains(t, records, model.TestTypeGifts)
	assert.NotContains(t, records, model.TestTypeSkills)
}
