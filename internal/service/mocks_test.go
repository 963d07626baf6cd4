package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/forgo/shepherd/api/internal/email"
	"github.com/forgo/shepherd/api/internal/model"
	"github.com/forgo/shepherd/api/pkg/jwt"
)

// ============================================================================
// User repository
// ============================================================================

type mockUserRepo struct {
	mu         sync.Mutex
	users      map[string]*model.User
	emailIndex map[string]*model.User
	createErr  error
	getErr     error
	logins     int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:      make(map[string]*model.User),
		emailIndex: make(map[string]*model.User),
	}
}

func (m *mockUserRepo) add(u *model.User) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	m.emailIndex[u.Email] = u
	return u
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = "user:" + user.Email
	user.CreatedOn = time.Now()
	user.UpdatedOn = user.CreatedOn
	m.users[user.ID] = user
	m.emailIndex[user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.emailIndex[email], nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, userID string, role model.UserRole) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return fmt.Errorf("no user %s", userID)
	}
	u.Role = role
	return nil
}

func (m *mockUserRepo) TouchLogin(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logins++
	return nil
}

// ============================================================================
// Token repository
// ============================================================================

type mockTokenRepo struct {
	createRefreshTokenFunc    func(ctx context.Context, token *model.RefreshToken) error
	getRefreshTokenByHashFunc func(ctx context.Context, hash string) (*model.RefreshToken, error)
	revokeRefreshTokenFunc    func(ctx context.Context, hash string) error
	revokeAllUserTokensFunc   func(ctx context.Context, userID string) error
	deleteExpiredTokensFunc   func(ctx context.Context) (int, error)
}

func (m *mockTokenRepo) CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	if m.createRefreshTokenFunc != nil {
		return m.createRefreshTokenFunc(ctx, token)
	}
	return nil
}

func (m *mockTokenRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	if m.getRefreshTokenByHashFunc != nil {
		return m.getRefreshTokenByHashFunc(ctx, hash)
	}
	return nil, nil
}

func (m *mockTokenRepo) RevokeRefreshToken(ctx context.Context, hash string) error {
	if m.revokeRefreshTokenFunc != nil {
		return m.revokeRefreshTokenFunc(ctx, hash)
	}
	return nil
}

func (m *mockTokenRepo) RevokeAllUserTokens(ctx context.Context, userID string) error {
	if m.revokeAllUserTokensFunc != nil {
		return m.revokeAllUserTokensFunc(ctx, userID)
	}
	return nil
}

func (m *mockTokenRepo) DeleteExpiredTokens(ctx context.Context) (int, error) {
	if m.deleteExpiredTokensFunc != nil {
		return m.deleteExpiredTokensFunc(ctx)
	}
	return 0, nil
}

// memTokenRepo keeps refresh tokens in memory, keyed by hash
type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*model.RefreshToken
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]*model.RefreshToken)}
}

func (m *memTokenRepo) CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	token.ID = "refresh_token:" + token.TokenHash[:8]
	token.CreatedOn = time.Now()
	m.tokens[token.TokenHash] = token
	return nil
}

func (m *memTokenRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[hash]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memTokenRepo) RevokeRefreshToken(ctx context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tokens[hash]; ok && t.RevokedOn == nil {
		now := time.Now()
		t.RevokedOn = &now
	}
	return nil
}

func (m *memTokenRepo) RevokeAllUserTokens(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for _, t := range m.tokens {
		if t.UserID == userID && t.RevokedOn == nil {
			t.RevokedOn = &now
		}
	}
	return nil
}

func (m *memTokenRepo) DeleteExpiredTokens(ctx context.Context) (int, error) {
	return 0, nil
}

func (m *memTokenRepo) live(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tokens {
		if t.UserID == userID && t.RevokedOn == nil {
			n++
		}
	}
	return n
}

// ============================================================================
// Invitation repository
// ============================================================================

type memInvitationRepo struct {
	mu          sync.Mutex
	byID        map[string]*model.Invitation
	seq         int
	createErr   error
	revokeCalls int
}

func newMemInvitationRepo() *memInvitationRepo {
	return &memInvitationRepo{byID: make(map[string]*model.Invitation)}
}

func (m *memInvitationRepo) Create(ctx context.Context, inv *model.Invitation) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	inv.ID = fmt.Sprintf("invitation:%d", m.seq)
	inv.Status = model.InvitationStatusPending
	inv.CreatedOn = time.Now()
	m.byID[inv.ID] = inv
	return nil
}

func (m *memInvitationRepo) GetByTokenHash(ctx context.Context, hash string) (*model.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range m.byID {
		if inv.TokenHash == hash {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memInvitationRepo) GetByID(ctx context.Context, id string) (*model.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (m *memInvitationRepo) List(ctx context.Context) ([]*model.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Invitation, 0, len(m.byID))
	for _, inv := range m.byID {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memInvitationRepo) MarkAccepted(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.byID[id]
	if !ok || inv.Status != model.InvitationStatusPending || !time.Now().Before(inv.ExpiresOn) {
		return false, nil
	}
	now := time.Now()
	inv.Status = model.InvitationStatusAccepted
	inv.AcceptedOn = &now
	return true, nil
}

func (m *memInvitationRepo) Revoke(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revokeCalls++
	inv, ok := m.byID[id]
	if !ok || inv.Status != model.InvitationStatusPending {
		return false, nil
	}
	inv.Status = model.InvitationStatusRevoked
	return true, nil
}

func (m *memInvitationRepo) DeleteExpired(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, inv := range m.byID {
		if inv.Status == model.InvitationStatusPending && !time.Now().Before(inv.ExpiresOn) {
			delete(m.byID, id)
			n++
		}
	}
	return n, nil
}

func (m *memInvitationRepo) get(id string) *model.Invitation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id]
}

// ============================================================================
// Result repository
// ============================================================================

type mockResultRepo struct {
	saveFunc       func(ctx context.Context, userID string, record *model.ScoreRecord) (*model.AssessmentResult, error)
	getFunc        func(ctx context.Context, userID string, testType model.TestType) (*model.AssessmentResult, error)
	listByUserFunc func(ctx context.Context, userID string) ([]*model.AssessmentResult, error)
	listAllFunc    func(ctx context.Context) ([]*model.AssessmentResult, error)
	deleteFunc     func(ctx context.Context, userID string, testType model.TestType) (bool, error)
}

func (m *mockResultRepo) Save(ctx context.Context, userID string, record *model.ScoreRecord) (*model.AssessmentResult, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, userID, record)
	}
	now := time.Now()
	return &model.AssessmentResult{
		ID:          "assessment_result:" + userID + "/" + string(record.TestType),
		UserID:      userID,
		TestType:    record.TestType,
		Record:      *record,
		CompletedOn: now,
		UpdatedOn:   now,
	}, nil
}

func (m *mockResultRepo) Get(ctx context.Context, userID string, testType model.TestType) (*model.AssessmentResult, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, testType)
	}
	return nil, nil
}

func (m *mockResultRepo) ListByUser(ctx context.Context, userID string) ([]*model.AssessmentResult, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockResultRepo) ListAll(ctx context.Context) ([]*model.AssessmentResult, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockResultRepo) Delete(ctx context.Context, userID string, testType model.TestType) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, testType)
	}
	return false, nil
}

// ============================================================================
// Mailer
// ============================================================================

type mockMailer struct {
	mu      sync.Mutex
	sent    []email.Message
	sendErr error
}

func (m *mockMailer) Send(ctx context.Context, msg email.Message) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

var (
	testKeyOnce sync.Once
	testKey     *rsa.PrivateKey
)

func createTestJWTService(t *testing.T) *jwt.Service {
	t.Helper()
	testKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		testKey = key
	})
	return jwt.NewServiceWithKey(testKey, "test-issuer", time.Hour)
}

func strPtr(s string) *string { return &s }

func likertAnswers(count, value int) map[int]int {
	answers := make(map[int]int, count)
	for q := 1; q <= count; q++ {
		answers[q] = value
	}
	return answers
}

func giftRecord(scores map[string]int) *model.ScoreRecord {
	gifts := make(model.GiftScores, len(model.GiftKeys))
	for _, k := range model.GiftKeys {
		gifts[k] = model.QuestionsPerCategory
	}
	for k, v := range scores {
		gifts[k] = v
	}
	return &model.ScoreRecord{TestType: model.TestTypeGifts, Gifts: gifts}
}

func result(userID string, rec *model.ScoreRecord) *model.AssessmentResult {
	return &model.AssessmentResult{
		ID:          "assessment_result:" + userID + "/" + string(rec.TestType),
		UserID:      userID,
		TestType:    rec.TestType,
		Record:      *rec,
		CompletedOn: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}
