package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/shepherd/api/internal/model"
)

func newStaffFixture(results []*model.AssessmentResult) (*StaffService, *mockUserRepo, *[]string) {
	users := newMockUserRepo()
	users.add(&model.User{ID: "user:1", Email: "maria@example.org", Role: model.UserRoleMember})
	users.add(&model.User{ID: "user:2", Email: "juan@example.org", Role: model.UserRoleMember})
	users.add(&model.User{ID: "user:admin", Email: "pastor@example.org", Role: model.UserRoleAdmin})

	byUser := func(userID string) []*model.AssessmentResult {
		var out []*model.AssessmentResult
		for _, r := range results {
			if r.UserID == userID {
				out = append(out, r)
			}
		}
		return out
	}

	var revoked []string
	svc := NewStaffService(StaffServiceConfig{
		Users: users,
		Results: &mockResultRepo{
			listAllFunc: func(ctx context.Context) ([]*model.AssessmentResult, error) {
				return results, nil
			},
			listByUserFunc: func(ctx context.Context, userID string) ([]*model.AssessmentResult, error) {
				return byUser(userID), nil
			},
		},
		Tokens: &mockTokenRepo{
			revokeAllUserTokensFunc: func(ctx context.Context, userID string) error {
				revoked = append(revoked, userID)
				return nil
			},
		},
	})
	return svc, users, &revoked
}

func personalityRecord(d, i, s, c int) *model.ScoreRecord {
	return &model.ScoreRecord{
		TestType:    model.TestTypePersonality,
		Personality: &model.PersonalityScores{D: d, I: i, S: s, C: c},
	}
}

func passionRecord() *model.ScoreRecord {
	return &model.ScoreRecord{
		TestType: model.TestTypePassion,
		Passion: &model.PassionResult{
			SelectedGroups:   []string{"Children", "Youth", "Families", "The Poor", "Immigrants", "Seniors"},
			TopFiveGroups:    []string{"Children", "Youth", "Families", "The Poor", "Immigrants"},
			SelectedPassions: []string{"Teaching", "Serving", "Caring"},
			TopThreePassions: []string{"Teaching", "Serving", "Caring"},
		},
	}
}

// ============================================================================
// Summary
// ============================================================================

func TestSummary_AggregatesCongregation(t *testing.T) {
	t.Parallel()

	results := []*model.AssessmentResult{
		result("user:1", personalityRecord(10, 4, -6, -8)),
		result("user:1", giftRecord(map[string]int{model.GiftEnsenanza: 35})),
		result("user:1", passionRecord()),
		result("user:2", personalityRecord(-2, 12, 3, -13)),
		result("user:2", giftRecord(map[string]int{model.GiftEnsenanza: 30, model.GiftServicio: 33})),
	}
	svc, _, _ := newStaffFixture(results)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.MemberCount)
	require.Len(t, summary.Members, 3)
	assert.Equal(t, 2, summary.CompletedByTest[model.TestTypePersonality])
	assert.Equal(t, 2, summary.CompletedByTest[model.TestTypeGifts])
	assert.Equal(t, 1, summary.CompletedByTest[model.TestTypePassion])
	assert.Equal(t, 0, summary.CompletedByTest[model.TestTypeSkills])

	assert.Equal(t, map[string]int{"D": 1, "I": 1}, summary.PersonalityDistribution)
	assert.Equal(t, 2, summary.GiftDistribution[model.GiftEnsenanza])
	assert.Equal(t, 1, summary.GiftDistribution[model.GiftServicio])
	assert.Equal(t, 1, summary.PassionDistribution["Children"])
	assert.Empty(t, summary.SkillDistribution)

	var maria *model.MemberSummary
	for _, m := range summary.Members {
		if m.User.ID == "user:1" {
			maria = m
		}
	}
	require.NotNil(t, maria)
	assert.Equal(t, []model.TestType{model.TestTypePersonality, model.TestTypeGifts, model.TestTypePassion}, maria.CompletedTests)
	assert.Equal(t, []string{"D", "I"}, maria.TopPersonality)
	require.Len(t, maria.TopGifts, 5)
	assert.Equal(t, model.GiftEnsenanza, maria.TopGifts[0])
	assert.Len(t, maria.TopPassionGroups, 5)
	assert.Empty(t, maria.TopSkills)
	assert.Empty(t, maria.TopExperiences)
}

func TestSummary_NoResults(t *testing.T) {
	t.Parallel()

	svc, _, _ := newStaffFixture(nil)
	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.MemberCount)
	for _, m := range summary.Members {
		assert.Empty(t, m.CompletedTests)
	}
	assert.Len(t, summary.CompletedByTest, len(model.AllTestTypes))
}

// ============================================================================
// UserResults
// ============================================================================

func TestUserResults(t *testing.T) {
	t.Parallel()

	svc, _, _ := newStaffFixture([]*model.AssessmentResult{
		result("user:1", giftRecord(nil)),
		result("user:2", giftRecord(nil)),
	})

	got, err := svc.UserResults(context.Background(), "user:1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "user:1", got[0].UserID)

	_, err = svc.UserResults(context.Background(), "user:404")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// ============================================================================
// UpdateRole
// ============================================================================

func TestUpdateRole(t *testing.T) {
	t.Parallel()

	admin := Actor{ID: "user:admin", Role: model.UserRoleAdmin}

	t.Run("admin promotes member and revokes sessions", func(t *testing.T) {
		svc, users, revoked := newStaffFixture(nil)

		user, err := svc.UpdateRole(context.Background(), admin, "user:1", model.UserRoleStaff)
		require.NoError(t, err)
		assert.Equal(t, model.UserRoleStaff, user.Role)

		stored, _ := users.GetByID(context.Background(), "user:1")
		assert.Equal(t, model.UserRoleStaff, stored.Role)
		assert.Equal(t, []string{"user:1"}, *revoked)
	})

	t.Run("same role is a no-op", func(t *testing.T) {
		svc, _, revoked := newStaffFixture(nil)

		_, err := svc.UpdateRole(context.Background(), admin, "user:1", model.UserRoleMember)
		require.NoError(t, err)
		assert.Empty(t, *revoked)
	})

	t.Run("staff cannot change roles", func(t *testing.T) {
		svc, _, _ := newStaffFixture(nil)

		_, err := svc.UpdateRole(context.Background(), Actor{ID: "user:2", Role: model.UserRoleStaff}, "user:1", model.UserRoleStaff)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin cannot change own role", func(t *testing.T) {
		svc, _, _ := newStaffFixture(nil)

		_, err := svc.UpdateRole(context.Background(), admin, "user:admin", model.UserRoleMember)
		assert.ErrorIs(t, err, ErrCannotChangeOwnRole)
	})

	t.Run("invalid role", func(t *testing.T) {
		svc, _, _ := newStaffFixture(nil)

		_, err := svc.UpdateRole(context.Background(), admin, "user:1", "bishop")
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _, _ := newStaffFixture(nil)

		_, err := svc.UpdateRole(context.Background(), admin, "user:404", model.UserRoleStaff)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
