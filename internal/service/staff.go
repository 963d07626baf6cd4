package service

import (
	"context"
	"log/slog"

	"github.com/forgo/shepherd/api/internal/matching"
	"github.com/forgo/shepherd/api/internal/model"
)

// Per-member trait counts shown in the staff overview
const (
	summaryPassionGroups = 5
	summaryExperiences   = 2
)

// TokenRevoker ends a user's sessions
type TokenRevoker interface {
	RevokeAllUserTokens(ctx context.Context, userID string) error
}

// StaffService exposes congregation-wide results to staff
type StaffService struct {
	users   UserRepository
	results ResultRepository
	tokens  TokenRevoker
}

// StaffServiceConfig holds configuration for the staff service
type StaffServiceConfig struct {
	Users   UserRepository
	Results ResultRepository
	Tokens  TokenRevoker
}

// NewStaffService creates a new staff service
func NewStaffService(cfg StaffServiceConfig) *StaffService {
	return &StaffService{
		users:   cfg.Users,
		results: cfg.Results,
		tokens:  cfg.Tokens,
	}
}

// Summary aggregates every user's completed assessments
func (s *StaffService) Summary(ctx context.Context) (*model.CongregationSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.results.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string][]*model.AssessmentResult)
	for _, r := range all {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}

	summary := &model.CongregationSummary{
		Members:                 make([]*model.MemberSummary, 0, len(users)),
		MemberCount:             len(users),
		CompletedByTest:         make(map[model.TestType]int, len(model.AllTestTypes)),
		PersonalityDistribution: make(map[string]int),
		GiftDistribution:        make(map[string]int),
		SkillDistribution:       make(map[string]int),
		PassionDistribution:     make(map[string]int),
	}
	for _, tt := range model.AllTestTypes {
		summary.CompletedByTest[tt] = 0
	}

	for _, u := range users {
		member := memberSummary(u, model.RecordsFromResults(byUser[u.ID]))
		summary.Members = append(summary.Members, member)

		for _, tt := range member.CompletedTests {
			summary.CompletedByTest[tt]++
		}
		if len(member.TopPersonality) > 0 {
			summary.PersonalityDistribution[member.TopPersonality[0]]++
		}
		for _, g := range member.TopGifts {
			summary.GiftDistribution[g]++
		}
		for _, sk := range member.TopSkills {
			summary.SkillDistribution[sk]++
		}
		for _, p := range member.TopPassionGroups {
			summary.PassionDistribution[p]++
		}
	}
	return summary, nil
}

// User returns one account
func (s *StaffService) User(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UserResults returns the stored results of one user
func (s *StaffService) UserResults(ctx context.Context, userID string) ([]*model.AssessmentResult, error) {
	if _, err := s.User(ctx, userID); err != nil {
		return nil, err
	}
	return s.results.ListByUser(ctx, userID)
}

// UpdateRole changes a user's role. Only admins may do this and never on
// themselves. Existing sessions are revoked so the new role takes effect.
func (s *StaffService) UpdateRole(ctx context.Context, actor Actor, userID string, role model.UserRole) (*model.User, error) {
	if actor.Role != model.UserRoleAdmin {
		return nil, ErrForbidden
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	if actor.ID == userID {
		return nil, ErrCannotChangeOwnRole
	}

	user, err := s.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}

	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	if s.tokens != nil {
		if err := s.tokens.RevokeAllUserTokens(ctx, userID); err != nil {
			slog.Warn("failed to revoke sessions after role change",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}

	slog.Info("user role changed",
		slog.String("user_id", userID),
		slog.String("from", string(user.Role)),
		slog.String("to", string(role)),
		slog.String("changed_by", actor.ID),
	)
	user.Role = role
	return user, nil
}

func memberSummary(u *model.User, records model.UserRecords) *model.MemberSummary {
	m := &model.MemberSummary{User: u, CompletedTests: []model.TestType{}}
	for _, tt := range model.AllTestTypes {
		if records[tt] != nil {
			m.CompletedTests = append(m.CompletedTests, tt)
		}
	}

	traits := matching.TopTraits(records)
	m.TopPersonality = traits[model.DimensionPersonality]
	m.TopGifts = traits[model.DimensionGifts]
	m.TopSkills = traits[model.DimensionSkills]

	if rec := records[model.TestTypePassion]; rec != nil && rec.Passion != nil {
		m.TopPassionGroups = firstN(rec.Passion.TopFiveGroups, summaryPassionGroups)
	}
	if rec := records[model.TestTypeExperience]; rec != nil && rec.Experience != nil {
		m.TopExperiences = firstN(rec.Experience.TopTwoExperiences, summaryExperiences)
	}
	return m
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		s = s[:n]
	}
	return append([]string(nil), s...)
}
