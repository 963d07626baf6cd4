package handler

import (
	"net/http"

	"github.com/forgo/shepherd/api/internal/middleware"
	"github.com/forgo/shepherd/api/internal/model"
	"github.com/forgo/shepherd/api/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService       *service.AuthService
	invitationService *service.InvitationService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, invitationService *service.InvitationService) *AuthHandler {
	return &AuthHandler{
		authService:       authService,
		invitationService: invitationService,
	}
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	result, err := h.authService.Register(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "registration"))
		return
	}

	WriteData(w, http.StatusCreated, result, map[string]string{
		"self": "/v1/auth/me",
	})
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "credentials", Message: "email and password are required"},
		}))
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "login"))
		return
	}

	WriteData(w, http.StatusOK, result, nil)
}

// Refresh handles POST /v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if req.RefreshToken == "" {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "refresh_token", Message: "refresh_token is required"},
		}))
		return
	}

	tokens, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, tokens, nil)
}

// Logout handles POST /v1/auth/logout. Without a body every session of the
// user is revoked.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.RefreshRequest
	if r.ContentLength != 0 {
		if err := DecodeJSON(r, &req); err != nil {
			WriteError(w, model.NewBadRequestError("invalid request body"))
			return
		}
	}

	if err := h.authService.Logout(r.Context(), userID, req.RefreshToken); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	user, err := h.authService.Me(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user, map[string]string{
		"self":     "/v1/auth/me",
		"progress": "/v1/profile/progress",
	})
}

// CheckInvitation handles GET /v1/invitations/{token}
func (h *AuthHandler) CheckInvitation(w http.ResponseWriter, r *http.Request) {
	check, err := h.invitationService.Check(r.Context(), r.PathValue("token"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, check, map[string]string{
		"register": "/v1/auth/register",
	})
}

// actorFrom builds the service actor from the authenticated claims
func actorFrom(r *http.Request) (service.Actor, bool) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		return service.Actor{}, false
	}
	return service.Actor{
		ID:   claims.Subject,
		Name: claims.Name,
		Role: model.UserRole(claims.Role),
	}, true
}
