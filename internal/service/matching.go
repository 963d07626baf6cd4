package service

import (
	"context"
	"errors"

	"github.com/forgo/shepherd/api/internal/catalog"
	"github.com/forgo/shepherd/api/internal/matching"
	"github.com/forgo/shepherd/api/internal/metrics"
	"github.com/forgo/shepherd/api/internal/model"
)

// MinistryCatalog is the read-only ministry source
type MinistryCatalog interface {
	All() []model.Ministry
	Get(id string) (model.Ministry, error)
}

// RecordSource loads a member's completed records
type RecordSource interface {
	Records(ctx context.Context, userID string) (model.UserRecords, error)
}

// MatchingService ranks catalog ministries for a member
type MatchingService struct {
	records RecordSource
	catalog MinistryCatalog
	metrics *metrics.Metrics
}

// MatchingServiceConfig holds configuration for the matching service
type MatchingServiceConfig struct {
	Records RecordSource
	Catalog MinistryCatalog
	Metrics *metrics.Metrics
}

// NewMatchingService creates a new matching service
func NewMatchingService(cfg MatchingServiceConfig) *MatchingService {
	return &MatchingService{
		records: cfg.Records,
		catalog: cfg.Catalog,
		metrics: cfg.Metrics,
	}
}

// Matches scores every ministry that passes the filters against the member's
// completed assessments
func (s *MatchingService) Matches(ctx context.Context, userID string, opts matching.Options) ([]model.MatchResult, error) {
	records, err := s.records.Records(ctx, userID)
	if err != nil {
		s.metrics.MatchComputed(metrics.OutcomeError)
		return nil, err
	}

	results, err := matching.Match(records, s.catalog.All(), opts)
	if err != nil {
		if errors.Is(err, matching.ErrNoCompletedAssessments) {
			s.metrics.MatchComputed(metrics.OutcomeRejected)
		} else {
			s.metrics.MatchComputed(metrics.OutcomeError)
		}
		return nil, err
	}

	s.metrics.MatchComputed(metrics.OutcomeSuccess)
	return results, nil
}

// Ministries returns the catalog
func (s *MatchingService) Ministries() []model.Ministry {
	return s.catalog.All()
}

// Ministry returns one catalog entry
func (s *MatchingService) Ministry(id string) (*model.Ministry, error) {
	m, err := s.catalog.Get(id)
	if err != nil {
		if errors.Is(err, catalog.ErrMinistryNotFound) {
			return nil, ErrMinistryNotFound
		}
		return nil, err
	}
	return &m, nil
}
