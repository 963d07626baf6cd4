package handler

import (
	"net/http"

	"github.com/forgo/shepherd/api/internal/middleware"
)

// RouterConfig holds the handlers mounted by NewRouter
type RouterConfig struct {
	Validator   middleware.TokenValidator
	Health      *HealthHandler
	Auth        *AuthHandler
	Assessments *AssessmentHandler
	Matching    *MatchingHandler
	Staff       *StaffHandler
	// Metrics serves /metrics when set
	Metrics http.Handler
}

// NewRouter registers every API route on a new ServeMux
func NewRouter(cfg RouterConfig) *http.ServeMux {
	authMiddleware := middleware.Auth(cfg.Validator)
	member := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}
	staff := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, authMiddleware, middleware.RequireStaff())
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, authMiddleware, middleware.RequireAdmin())
	}

	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("GET /health", cfg.Health.Health)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/register", cfg.Auth.Register)
	mux.HandleFunc("POST /v1/auth/login", cfg.Auth.Login)
	mux.HandleFunc("POST /v1/auth/refresh", cfg.Auth.Refresh)
	mux.HandleFunc("GET /v1/invitations/{token}", cfg.Auth.CheckInvitation)

	// Auth endpoints (protected)
	mux.Handle("POST /v1/auth/logout", member(cfg.Auth.Logout))
	mux.Handle("GET /v1/auth/me", member(cfg.Auth.Me))

	// Assessments (question banks are public)
	mux.HandleFunc("GET /v1/assessments", cfg.Assessments.List)
	mux.HandleFunc("GET /v1/assessments/{testType}", cfg.Assessments.Get)
	mux.Handle("POST /v1/assessments/{testType}/submit", member(cfg.Assessments.Submit))

	// Profile
	mux.Handle("GET /v1/profile/results", member(cfg.Assessments.Results))
	mux.Handle("GET /v1/profile/results/{testType}", member(cfg.Assessments.Result))
	mux.Handle("DELETE /v1/profile/results/{testType}", member(cfg.Assessments.Reset))
	mux.Handle("GET /v1/profile/progress", member(cfg.Assessments.Progress))
	mux.Handle("GET /v1/profile/matches", member(cfg.Matching.Matches))

	// Ministry catalog
	mux.Handle("GET /v1/ministries", member(cfg.Matching.Ministries))
	mux.Handle("GET /v1/ministries/{ministryId}", member(cfg.Matching.Ministry))

	// Staff console
	mux.Handle("POST /v1/staff/invitations", staff(cfg.Staff.CreateInvitation))
	mux.Handle("GET /v1/staff/invitations", staff(cfg.Staff.ListInvitations))
	mux.Handle("DELETE /v1/staff/invitations/{invitationId}", staff(cfg.Staff.RevokeInvitation))
	mux.Handle("GET /v1/staff/results", staff(cfg.Staff.Results))
	mux.Handle("GET /v1/staff/users/{userId}/results", staff(cfg.Staff.UserResults))
	mux.Handle("GET /v1/staff/users/{userId}/matches", staff(cfg.Matching.UserMatches))

	// Admin
	mux.Handle("PATCH /v1/staff/users/{userId}/role", admin(cfg.Staff.UpdateRole))

	return mux
}
