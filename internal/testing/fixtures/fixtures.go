package fixtures

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/shepherd/api/internal/database"
	"github.com/forgo/shepherd/api/internal/model"
	"github.com/forgo/shepherd/api/internal/repository"
	"github.com/forgo/shepherd/api/internal/scoring"
)

// DefaultPassword is the password of every fixture user
const DefaultPassword = "testpass123"

// Factory creates test entities in the database through the repositories
type Factory struct {
	Users       *repository.UserRepository
	Tokens      *repository.TokenRepository
	Results     *repository.ResultRepository
	Invitations *repository.InvitationRepository
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{
		Users:       repository.NewUserRepository(db),
		Tokens:      repository.NewTokenRepository(db),
		Results:     repository.NewResultRepository(db),
		Invitations: repository.NewInvitationRepository(db),
	}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// ============================================================================
// Users
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Email     string
	Firstname string
	Password  string
	Role      model.UserRole
}

// WithEmail sets the user's email
func WithEmail(email string) func(*UserOpts) {
	return func(o *UserOpts) { o.Email = email }
}

// WithRole sets the user's role
func WithRole(role model.UserRole) func(*UserOpts) {
	return func(o *UserOpts) { o.Role = role }
}

// CreateUser creates a member with a random email unless overridden
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	id := randomID()
	o := &UserOpts{
		Email:     fmt.Sprintf("user_%s@test.local", id),
		Firstname: "Member " + id[:4],
		Password:  DefaultPassword,
		Role:      model.UserRoleMember,
	}
	for _, fn := range opts {
		fn(o)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}
	hashStr := string(hash)

	user := &model.User{
		Email:     strings.ToLower(o.Email),
		Hash:      &hashStr,
		Firstname: &o.Firstname,
		Role:      o.Role,
	}
	if err := f.Users.Create(ctx(t), user); err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}
	user.Hash = nil
	return user
}

// CreateStaff creates a staff user
func (f *Factory) CreateStaff(t *testing.T) *model.User {
	return f.CreateUser(t, WithRole(model.UserRoleStaff))
}

// CreateAdmin creates an admin user
func (f *Factory) CreateAdmin(t *testing.T) *model.User {
	return f.CreateUser(t, WithRole(model.UserRoleAdmin))
}

// ============================================================================
// Refresh tokens
// ============================================================================

// CreateRefreshToken stores a refresh token for user expiring after ttl
// (negative for an already expired token) and returns the raw token
func (f *Factory) CreateRefreshToken(t *testing.T, user *model.User, ttl time.Duration) string {
	t.Helper()

	raw := randomID() + randomID()
	token := &model.RefreshToken{
		UserID:    user.ID,
		TokenHash: Hash(raw),
		ExpiresOn: time.Now().Add(ttl),
	}
	if err := f.Tokens.CreateRefreshToken(ctx(t), token); err != nil {
		t.Fatalf("fixtures: failed to create refresh token: %v", err)
	}
	return raw
}

// ============================================================================
// Invitations
// ============================================================================

// CreateInvitation stores a pending invitation from inviter and returns it
// with the raw token
func (f *Factory) CreateInvitation(t *testing.T, inviter *model.User, email string, role model.UserRole, ttl time.Duration) (*model.Invitation, string) {
	t.Helper()

	raw := randomID() + randomID()
	inv := &model.Invitation{
		Email:     strings.ToLower(email),
		Role:      role,
		TokenHash: Hash(raw),
		InvitedBy: inviter.ID,
		ExpiresOn: time.Now().Add(ttl),
	}
	if err := f.Invitations.Create(ctx(t), inv); err != nil {
		t.Fatalf("fixtures: failed to create invitation: %v", err)
	}
	return inv, raw
}

// ============================================================================
// Assessment results
// ============================================================================

// Likert answers every question 1..count with value
func Likert(count, value int) model.Answers {
	answers := make(map[int]int, count)
	for q := 1; q <= count; q++ {
		answers[q] = value
	}
	return model.Answers{Likert: answers}
}

// SaveResult scores answers and stores the result for user
func (f *Factory) SaveResult(t *testing.T, user *model.User, testType model.TestType, answers model.Answers) *model.AssessmentResult {
	t.Helper()

	record, err := scoring.Score(testType, answers)
	if err != nil {
		t.Fatalf("fixtures: failed to score %s answers: %v", testType, err)
	}
	result, err := f.Results.Save(ctx(t), user.ID, record)
	if err != nil {
		t.Fatalf("fixtures: failed to save %s result: %v", testType, err)
	}
	return result
}

// SaveGifts stores a gifts result with every answer set to value
func (f *Factory) SaveGifts(t *testing.T, user *model.User, value int) *model.AssessmentResult {
	return f.SaveResult(t, user, model.TestTypeGifts, Likert(model.GiftQuestionCount, value))
}

// SaveSkills stores a skills result with every answer set to value
func (f *Factory) SaveSkills(t *testing.T, user *model.User, value int) *model.AssessmentResult {
	return f.SaveResult(t, user, model.TestTypeSkills, Likert(model.SkillQuestionCount, value))
}

// Hash returns the stored form of a raw token
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
