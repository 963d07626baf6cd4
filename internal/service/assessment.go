package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgo/shepherd/api/internal/metrics"
	"github.com/forgo/shepherd/api/internal/model"
	"github.com/forgo/shepherd/api/internal/scoring"
)

// ResultRepository defines the interface for assessment result storage
type ResultRepository interface {
	Save(ctx context.Context, userID string, record *model.ScoreRecord) (*model.AssessmentResult, error)
	Get(ctx context.Context, userID string, testType model.TestType) (*model.AssessmentResult, error)
	ListByUser(ctx context.Context, userID string) ([]*model.AssessmentResult, error)
	ListAll(ctx context.Context) ([]*model.AssessmentResult, error)
	Delete(ctx context.Context, userID string, testType model.TestType) (bool, error)
}

// AssessmentService scores submissions and manages members' results
type AssessmentService struct {
	results ResultRepository
	metrics *metrics.Metrics
}

// AssessmentServiceConfig holds configuration for the assessment service
type AssessmentServiceConfig struct {
	Results ResultRepository
	Metrics *metrics.Metrics
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(cfg AssessmentServiceConfig) *AssessmentService {
	return &AssessmentService{
		results: cfg.Results,
		metrics: cfg.Metrics,
	}
}

// Submit scores a complete answer set and stores it, replacing any earlier
// result for the same test. Rejected answers leave stored results untouched.
func (s *AssessmentService) Submit(ctx context.Context, userID string, testType model.TestType, answers model.Answers) (*model.AssessmentResult, error) {
	if !testType.IsValid() {
		return nil, ErrUnknownTestType
	}

	record, err := scoring.Score(testType, answers)
	if err != nil {
		s.metrics.AssessmentScored(string(testType), metrics.OutcomeRejected)
		slog.Debug("assessment rejected",
			slog.String("user_id", userID),
			slog.String("test_type", string(testType)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if err := record.Validate(); err != nil {
		s.metrics.AssessmentScored(string(testType), metrics.OutcomeError)
		return nil, fmt.Errorf("scored record failed validation: %w", err)
	}

	result, err := s.results.Save(ctx, userID, record)
	if err != nil {
		s.metrics.AssessmentScored(string(testType), metrics.OutcomeError)
		return nil, fmt.Errorf("save result: %w", err)
	}

	s.metrics.AssessmentScored(string(testType), metrics.OutcomeSuccess)
	slog.Info("assessment completed",
		slog.String("user_id", userID),
		slog.String("test_type", string(testType)),
	)
	return result, nil
}

// Get returns one stored result
func (s *AssessmentService) Get(ctx context.Context, userID string, testType model.TestType) (*model.AssessmentResult, error) {
	if !testType.IsValid() {
		return nil, ErrUnknownTestType
	}
	result, err := s.results.Get(ctx, userID, testType)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrResultNotFound
	}
	return result, nil
}

// List returns every stored result of a member
func (s *AssessmentService) List(ctx context.Context, userID string) ([]*model.AssessmentResult, error) {
	return s.results.ListByUser(ctx, userID)
}

// Records returns a member's completed records keyed by test type
func (s *AssessmentService) Records(ctx context.Context, userID string) (model.UserRecords, error) {
	results, err := s.results.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return model.RecordsFromResults(results), nil
}

// Progress reports which assessments a member has completed
func (s *AssessmentService) Progress(ctx context.Context, userID string) (*model.ProgressSummary, error) {
	results, err := s.results.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byType := make(map[model.TestType]*model.AssessmentResult, len(results))
	for _, r := range results {
		byType[r.TestType] = r
	}

	summary := &model.ProgressSummary{
		Tests:      make([]model.TestProgress, 0, len(model.AllTestTypes)),
		TotalCount: len(model.AllTestTypes),
	}
	for _, tt := range model.AllTestTypes {
		p := model.TestProgress{TestType: tt}
		if r, ok := byType[tt]; ok {
			completed := r.CompletedOn
			p.Completed = true
			p.CompletedOn = &completed
			summary.CompletedCount++
		}
		summary.Tests = append(summary.Tests, p)
	}
	summary.CanMatch = summary.CompletedCount > 0
	return summary, nil
}

// Reset deletes a stored result so the member can start over
func (s *AssessmentService) Reset(ctx context.Context, userID string, testType model.TestType) error {
	if !testType.IsValid() {
		return ErrUnknownTestType
	}
	deleted, err := s.results.Delete(ctx, userID, testType)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrResultNotFound
	}
	slog.Info("assessment reset",
		slog.String("user_id", userID),
		slog.String("test_type", string(testType)),
	)
	return nil
}
