package handler

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/forgo/shepherd/api/internal/catalog"
	"github.com/forgo/shepherd/api/internal/email"
	"github.com/forgo/shepherd/api/internal/model"
	"github.com/forgo/shepherd/api/internal/service"
	"github.com/forgo/shepherd/api/pkg/jwt"
)

// ============================================================================
// In-memory stores
// ============================================================================

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*model.User
	seq  int
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[string]*model.User)}
}

func (m *memUsers) add(u *model.User) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == "" {
		m.seq++
		u.ID = fmt.Sprintf("user:seed%d", m.seq)
	}
	m.byID[u.ID] = u
	return u
}

func (m *memUsers) Create(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	user.ID = fmt.Sprintf("user:%d", m.seq)
	user.CreatedOn = time.Now()
	user.UpdatedOn = user.CreatedOn
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(ctx context.Context, addr string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == addr {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) List(ctx context.Context) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.User, 0, len(m.byID))
	for _, u := range m.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memUsers) UpdateRole(ctx context.Context, userID string, role model.UserRole) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[userID]; ok {
		u.Role = role
	}
	return nil
}

func (m *memUsers) TouchLogin(ctx context.Context, userID string) error {
	return nil
}

type memTokens struct {
	mu     sync.Mutex
	byHash map[string]*model.RefreshToken
}

func newMemTokens() *memTokens {
	return &memTokens{byHash: make(map[string]*model.RefreshToken)}
}

func (m *memTokens) CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	token.ID = fmt.Sprintf("refresh_token:%d", len(m.byHash)+1)
	cp := *token
	m.byHash[token.TokenHash] = &cp
	return nil
}

func (m *memTokens) GetRefreshTokenByHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byHash[hash]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memTokens) RevokeRefreshToken(ctx context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.byHash[hash]; ok && t.RevokedOn == nil {
		now := time.Now()
		t.RevokedOn = &now
	}
	return nil
}

func (m *memTokens) RevokeAllUserTokens(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for _, t := range m.byHash {
		if t.UserID == userID && t.RevokedOn == nil {
			t.RevokedOn = &now
		}
	}
	return nil
}

func (m *memTokens) DeleteExpiredTokens(ctx context.Context) (int, error) {
	return 0, nil
}

type memResults struct {
	mu      sync.Mutex
	results map[string]*model.AssessmentResult
}

func newMemResults() *memResults {
	return &memResults{results: make(map[string]*model.AssessmentResult)}
}

func resultKey(userID string, tt model.TestType) string {
	return userID + "/" + string(tt)
}

func (m *memResults) Save(ctx context.Context, userID string, record *model.ScoreRecord) (*model.AssessmentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	res := &model.AssessmentResult{
		ID:          "assessment_result:" + resultKey(userID, record.TestType),
		UserID:      userID,
		TestType:    record.TestType,
		Record:      *record,
		CompletedOn: now,
		UpdatedOn:   now,
	}
	m.results[resultKey(userID, record.TestType)] = res
	return res, nil
}

func (m *memResults) Get(ctx context.Context, userID string, tt model.TestType) (*model.AssessmentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.results[resultKey(userID, tt)], nil
}

func (m *memResults) ListByUser(ctx context.Context, userID string) ([]*model.AssessmentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.AssessmentResult
	for _, tt := range model.AllTestTypes {
		if r, ok := m.results[resultKey(userID, tt)]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memResults) ListAll(ctx context.Context) ([]*model.AssessmentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.AssessmentResult, 0, len(m.results))
	for _, r := range m.results {
		out = append(out, r)
	}
	return out, nil
}

func (m *memResults) Delete(ctx context.Context, userID string, tt model.TestType) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := resultKey(userID, tt)
	_, ok := m.results[key]
	delete(m.results, key)
	return ok, nil
}

type memInvitations struct {
	mu   sync.Mutex
	byID map[string]*model.Invitation
	seq  int
}

func newMemInvitations() *memInvitations {
	return &memInvitations{byID: make(map[string]*model.Invitation)}
}

func (m *memInvitations) Create(ctx context.Context, inv *model.Invitation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	inv.ID = fmt.Sprintf("invitation:%d", m.seq)
	inv.Status = model.InvitationStatusPending
	inv.CreatedOn = time.Now()
	cp := *inv
	m.byID[inv.ID] = &cp
	return nil
}

func (m *memInvitations) GetByTokenHash(ctx context.Context, hash string) (*model.Invitation, error) {
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

func (m *memInvitations) GetByID(ctx context.Context, id string) (*model.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (m *memInvitations) List(ctx context.Context) ([]*model.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Invitation, 0, len(m.byID))
	for _, inv := range m.byID {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memInvitations) transition(id string, to model.InvitationStatus) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.byID[id]
	if !ok || inv.Status != model.InvitationStatusPending {
		return false
	}
	inv.Status = to
	return true
}

func (m *memInvitations) MarkAccepted(ctx context.Context, id string) (bool, error) {
	return m.transition(id, model.InvitationStatusAccepted), nil
}

func (m *memInvitations) Revoke(ctx context.Context, id string) (bool, error) {
	return m.transition(id, model.InvitationStatusRevoked), nil
}

func (m *memInvitations) DeleteExpired(ctx context.Context) (int, error) {
	return 0, nil
}

type captureMailer struct {
	mu      sync.Mutex
	sent    []email.Message
	sendErr error
}

func (m *captureMailer) Send(ctx context.Context, msg email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

// ============================================================================
// Test server
// ============================================================================

var (
	testKeyOnce sync.Once
	testKey     *rsa.PrivateKey
)

type testServer struct {
	handler     http.Handler
	jwt         *jwt.Service
	users       *memUsers
	results     *memResults
	invitations *memInvitations
	mailer      *captureMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	testKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		testKey = key
	})

	ts := &testServer{
		jwt:         jwt.NewServiceWithKey(testKey, "shepherd-test", time.Hour),
		users:       newMemUsers(),
		results:     newMemResults(),
		invitations: newMemInvitations(),
		mailer:      &captureMailer{},
	}

	cat, err := catalog.Default()
	require.NoError(t, err)

	tokenSvc := service.NewTokenService(service.TokenServiceConfig{JWTService: ts.jwt, TokenRepo: newMemTokens()})
	invitationSvc := service.NewInvitationService(service.InvitationServiceConfig{
		Repo:      ts.invitations,
		Users:     ts.users,
		Mailer:    ts.mailer,
		AcceptURL: "https://app.example.org/register",
		Church:    "Iglesia Central",
	})
	authSvc := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:          ts.users,
		TokenService:      tokenSvc,
		Invitations:       invitationSvc,
		RequireInvitation: true,
	})
	assessmentSvc := service.NewAssessmentService(service.AssessmentServiceConfig{Results: ts.results})
	matchingSvc := service.NewMatchingService(service.MatchingServiceConfig{Records: assessmentSvc, Catalog: cat})
	staffSvc := service.NewStaffService(service.StaffServiceConfig{Users: ts.users, Results: ts.results, Tokens: tokenSvc})

	ts.handler = NewRouter(RouterConfig{
		Validator:   tokenSvc,
		Health:      NewHealthHandler(nil, "test"),
		Auth:        NewAuthHandler(authSvc, invitationSvc),
		Assessments: NewAssessmentHandler(assessmentSvc),
		Matching:    NewMatchingHandler(matchingSvc, staffSvc),
		Staff:       NewStaffHandler(staffSvc, invitationSvc),
	})
	return ts
}

// seed stores a user and returns a bearer token for it
func (ts *testServer) seed(t *testing.T, id string, role model.UserRole) string {
	t.Helper()
	u := ts.users.add(&model.User{
		ID:        id,
		Email:     id[len("user:"):] + "@example.org",
		Firstname: strPtr(id[len("user:"):]),
		Role:      role,
	})
	token, err := ts.jwt.Sign(jwt.Claims{
		Subject: u.ID,
		Email:   u.Email,
		Name:    u.DisplayName(),
		Role:    string(role),
	})
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// ============================================================================
// Helpers
// ============================================================================

func strPtr(s string) *string {
	return &s
}

// decodeData unmarshals the data member of a success envelope into v
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope), rr.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, v))
}

func parseProblem(t *testing.T, rr *httptest.ResponseRecorder) *model.ProblemDetails {
	t.Helper()
	var problem model.ProblemDetails
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &problem), rr.Body.String())
	return &problem
}

// likert answers every question 1..count with value
func likert(count, value int) model.Answers {
	answers := make(map[int]int, count)
	for q := 1; q <= count; q++ {
		answers[q] = value
	}
	return model.Answers{Likert: answers}
}
