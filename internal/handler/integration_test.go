package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/shepherd/api/internal/catalog"
	"github.com/forgo/shepherd/api/internal/email"
	"github.com/forgo/shepherd/api/internal/handler"
	"github.com/forgo/shepherd/api/internal/model"
	"github.com/forgo/shepherd/api/internal/service"
	"github.com/forgo/shepherd/api/internal/testing/fixtures"
	"github.com/forgo/shepherd/api/internal/testing/helpers"
	"github.com/forgo/shepherd/api/internal/testing/testdb"
)

// newIntegrationRouter wires the API against a real database
func newIntegrationRouter(t *testing.T) (http.Handler, *fixtures.Factory, *helpers.JWTHelper) {
	t.Helper()

	tdb := testdb.New(t)
	f := fixtures.New(tdb.DB)
	jwtHelper := helpers.NewJWTHelper(t)

	cat, err := catalog.Default()
	require.NoError(t, err)

	tokenSvc := service.NewTokenService(service.TokenServiceConfig{JWTService: jwtHelper.Service, TokenRepo: f.Tokens})
	invitationSvc := service.NewInvitationService(service.InvitationServiceConfig{
		Repo:      f.Invitations,
		Users:     f.Users,
		Mailer:    email.NewLogMailer(slog.New(slog.NewTextHandler(io.Discard, nil))),
		AcceptURL: "https://app.example.org/register",
		Church:    "Iglesia Central",
	})
	authSvc := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:          f.Users,
		TokenService:      tokenSvc,
		Invitations:       invitationSvc,
		RequireInvitation: true,
	})
	assessmentSvc := service.NewAssessmentService(service.AssessmentServiceConfig{Results: f.Results})
	matchingSvc := service.NewMatchingService(service.MatchingServiceConfig{Records: assessmentSvc, Catalog: cat})
	staffSvc := service.NewStaffService(service.StaffServiceConfig{Users: f.Users, Results: f.Results, Tokens: tokenSvc})

	router := handler.NewRouter(handler.RouterConfig{
		Validator:   tokenSvc,
		Health:      handler.NewHealthHandler(tdb.DB, "integration"),
		Auth:        handler.NewAuthHandler(authSvc, invitationSvc),
		Assessments: handler.NewAssessmentHandler(assessmentSvc),
		Matching:    handler.NewMatchingHandler(matchingSvc, staffSvc),
		Staff:       handler.NewStaffHandler(staffSvc, invitationSvc),
	})
	return router, f, jwtHelper
}

func TestIntegration_Health(t *testing.T) {
	router, _, _ := newIntegrationRouter(t)

	rr := helpers.NewRequest(t, http.MethodGet, "/health").Do(router)
	helpers.AssertStatus(t, rr, http.StatusOK)
	assert.Contains(t, rr.Body.String(), `"database":"ok"`)
}

func TestIntegration_InvitationToMatches(t *testing.T) {
	router, f, jwtHelper := newIntegrationRouter(t)
	staff := f.CreateStaff(t)

	// Staff invites a member
	rr := helpers.NewRequest(t, http.MethodPost, "/v1/staff/invitations").
		WithAuth(jwtHelper, staff).
		WithBody(model.CreateInvitationRequest{Email: "maria@example.org"}).
		Do(router)
	helpers.AssertStatus(t, rr, http.StatusCreated)
	var created service.CreatedInvitation
	helpers.DecodeData(t, rr, &created)
	link, err := url.Parse(created.AcceptURL)
	require.NoError(t, err)

	// The member registers with the emailed token
	rr = helpers.NewRequest(t, http.MethodPost, "/v1/auth/register").
		WithBody(model.RegisterRequest{
			Email:           "maria@example.org",
			Password:        "correct horse battery",
			InvitationToken: link.Query().Get("invitation"),
		}).
		Do(router)
	helpers.AssertStatus(t, rr, http.StatusCreated)
	var auth model.AuthResponse
	helpers.DecodeData(t, rr, &auth)
	require.NotNil(t, auth.Tokens)

	require.NotNil(t, auth.User)
	member := auth.User
	rr = helpers.NewRequest(t, http.MethodPost, "/v1/assessments/gifts/submit").
		WithAuth(jwtHelper, member).
		WithBody(model.SubmitAnswersRequest{Answers: fixtures.Likert(model.GiftQuestionCount, 4)}).
		Do(router)
	helpers.AssertStatus(t, rr, http.StatusCreated)

	rr = helpers.NewRequest(t, http.MethodGet, "/v1/profile/matches").
		WithAuth(jwtHelper, member).
		Do(router)
	helpers.AssertStatus(t, rr, http.StatusOK)
	var matches []model.MatchResult
	helpers.DecodeData(t, rr, &matches)
	assert.NotEmpty(t, matches)

	// Staff sees the completion
	rr = helpers.NewRequest(t, http.MethodGet, "/v1/staff/results").
		WithAuth(jwtHelper, staff).
		Do(router)
	helpers.AssertStatus(t, rr, http.StatusOK)
	var summary model.CongregationSummary
	helpers.DecodeData(t, rr, &summary)
	assert.Equal(t, 1, summary.CompletedByTest[model.TestTypeGifts])
}

func TestIntegration_Errors(t *testing.T) {
	router, f, jwtHelper := newIntegrationRouter(t)
	member := f.CreateUser(t)

	rr := helpers.NewRequest(t, http.MethodGet, "/v1/profile/results").
		WithHeader("Authorization", "Bearer "+jwtHelper.GenerateExpiredToken(t, member)).
		Do(router)
	helpers.AssertStatus(t, rr, http.StatusUnauthorized)

	rr = helpers.NewRequest(t, http.MethodGet, "/v1/profile/matches").
		WithAuth(jwtHelper, member).
		Do(router)
	helpers.AssertProblemDetails(t, rr, http.StatusUnprocessableEntity, model.ErrCodeNoAssessments)
	helpers.AssertValidationError(t, rr, "assessments")

	rr = helpers.NewRequest(t, http.MethodGet, "/v1/staff/results").
		WithAuth(jwtHelper, member).
		Do(router)
	helpers.AssertProblemDetails(t, rr, http.StatusForbidden, 0)
}

func TestIntegration_RefreshTokenExpiry(t *testing.T) {
	router, f, _ := newIntegrationRouter(t)
	member := f.CreateUser(t)
	expired := f.CreateRefreshToken(t, member, -time.Minute)

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/auth/refresh").
		WithBody(model.RefreshRequest{RefreshToken: expired}).
		Do(router)
	helpers.AssertStatus(t, rr, http.StatusUnauthorized)
}
