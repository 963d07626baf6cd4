package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/shepherd/api/internal/model"
	"github.com/forgo/shepherd/api/internal/testing/fixtures"
	"github.com/forgo/shepherd/api/internal/testing/helpers"
	"github.com/forgo/shepherd/api/internal/testing/testdb"
)

// ============================================================================
// Users
// ============================================================================

func TestUserRepository_Integration(t *testing.T) {
	tdb := testdb.New(t)
	f := fixtures.New(tdb.DB)

	maria := f.CreateUser(t, fixtures.WithEmail("Maria@Example.org"))
	assert.NotEmpty(t, maria.ID)
	assert.Equal(t, model.UserRoleMember, maria.Role)

	got, err := f.Users.GetByEmail(tdb.Ctx(), "maria@example.org")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, maria.ID, got.ID)
	require.NotNil(t, got.Hash)

	missing, err := f.Users.GetByID(tdb.Ctx(), "user:nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	session := f.CreateRefreshToken(t, maria, time.Hour)
	require.NoError(t, f.Users.UpdateRole(tdb.Ctx(), maria.ID, model.UserRoleStaff))
	got, err = f.Users.GetByID(tdb.Ctx(), maria.ID)
	require.NoError(t, err)
	assert.Equal(t, model.UserRoleStaff, got.Role)

	token, err := f.Tokens.GetRefreshTokenByHash(tdb.Ctx(), fixtures.Hash(session))
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.NotNil(t, token.RevokedOn)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	tdb := testdb.New(t)
	f := fixtures.New(tdb.DB)

	f.CreateUser(t, fixtures.WithEmail("luis@example.org"))

	hash := "x"
	err := f.Users.Create(tdb.Ctx(), &model.User{Email: "luis@example.org", Hash: &hash})
	assert.Error(t, err)
	assert.Equal(t, 1, helpers.CountRows(t, tdb.DB, "user", "", nil))
}

// ============================================================================
// Refresh tokens
// ============================================================================

func TestTokenRepository_Integration(t *testing.T) {
	tdb := testdb.New(t)
	f := fixtures.New(tdb.DB)
	user := f.CreateUser(t)

	live := f.CreateRefreshToken(t, user, time.Hour)
	f.CreateRefreshToken(t, user, -time.Hour)

	token, err := f.Tokens.GetRefreshTokenByHash(tdb.Ctx(), fixtures.Hash(live))
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, user.ID, token.UserID)
	assert.Nil(t, token.RevokedOn)

	n, err := f.Tokens.DeleteExpiredTokens(tdb.Ctx())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, f.Tokens.RevokeAllUserTokens(tdb.Ctx(), user.ID))
	token, err = f.Tokens.GetRefreshTokenByHash(tdb.Ctx(), fixtures.Hash(live))
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.NotNil(t, token.RevokedOn)
}

// ============================================================================
// Invitations
// ============================================================================

func TestInvitationRepository_Integration(t *testing.T) {
	tdb := testdb.New(t)
	f := fixtures.New(tdb.DB)
	staff := f.CreateStaff(t)

	inv, raw := f.CreateInvitation(t, staff, "ana@example.org", model.UserRoleMember, time.Hour)
	assert.Equal(t, model.InvitationStatusPending, inv.Status)

	got, err := f.Invitations.GetByTokenHash(tdb.Ctx(), fixtures.Hash(raw))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, staff.ID, got.InvitedBy)

	ok, err := f.Invitations.MarkAccepted(tdb.Ctx(), inv.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Single use
	ok, err = f.Invitations.MarkAccepted(tdb.Ctx(), inv.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// Accepted invitations cannot be revoked
	ok, err = f.Invitations.Revoke(tdb.Ctx(), inv.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInvitationRepository_Expiry(t *testing.T) {
	tdb := testdb.New(t)
	f := fixtures.New(tdb.DB)
	staff := f.CreateStaff(t)

	expired, _ := f.CreateInvitation(t, staff, "old@example.org", model.UserRoleMember, -time.Hour)
	f.CreateInvitation(t, staff, "new@example.org", model.UserRoleMember, time.Hour)

	ok, err := f.Invitations.MarkAccepted(tdb.Ctx(), expired.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := f.Invitations.DeleteExpired(tdb.Ctx())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, helpers.CountRows(t, tdb.DB, "invitation", "", nil))
}

// ============================================================================
// Assessment results
// ============================================================================

func TestResultRepository_Integration(t *testing.T) {
	tdb := testdb.New(t)
	f := fixtures.New(tdb.DB)
	maria := f.CreateUser(t)
	luis := f.CreateUser(t)

	first := f.SaveGifts(t, maria, 2)
	assert.Equal(t, model.TestTypeGifts, first.TestType)
	assert.Equal(t, maria.ID, first.UserID)

	// A retake replaces the earlier record
	retake := f.SaveGifts(t, maria, 5)
	assert.Equal(t, first.ID, retake.ID)
	assert.Equal(t, 1, helpers.CountRows(t, tdb.DB, "assessment_result", "", nil))

	got, err := f.Results.Get(tdb.Ctx(), maria.ID, model.TestTypeGifts)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 35, got.Record.Gifts[model.GiftFe])

	f.SaveSkills(t, maria, 3)
	f.SaveSkills(t, luis, 4)

	mine, err := f.Results.ListByUser(tdb.Ctx(), maria.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := f.Results.ListAll(tdb.Ctx())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	deleted, err := f.Results.Delete(tdb.Ctx(), maria.ID, model.TestTypeGifts)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = f.Results.Delete(tdb.Ctx(), maria.ID, model.TestTypeGifts)
	require.NoError(t, err)
	assert.False(t, deleted)
}
