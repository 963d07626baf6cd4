package handler

import (
	"net/http"

	"github.com/forgo/shepherd/api/internal/model"
	"github.com/forgo/shepherd/api/internal/service"
)

// StaffHandler handles the staff console: invitations, congregation results
// and role management
type StaffHandler struct {
	staff       *service.StaffService
	invitations *service.InvitationService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staff *service.StaffService, invitations *service.InvitationService) *StaffHandler {
	return &StaffHandler{staff: staff, invitations: invitations}
}

// CreateInvitation handles POST /v1/staff/invitations
func (h *StaffHandler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateInvitationRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	created, err := h.invitations.Create(r.Context(), actor, req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create invitation"))
		return
	}

	WriteData(w, http.StatusCreated, created, map[string]string{
		"revoke": "/v1/staff/invitations/" + created.Invitation.ID,
	})
}

// ListInvitations handles GET /v1/staff/invitations
func (h *StaffHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	invitations, err := h.invitations.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if invitations == nil {
		invitations = []*model.Invitation{}
	}

	WriteCollection(w, http.StatusOK, invitations, nil)
}

// RevokeInvitation handles DELETE /v1/staff/invitations/{invitationId}
func (h *StaffHandler) RevokeInvitation(w http.ResponseWriter, r *http.Request) {
	if err := h.invitations.Revoke(r.Context(), r.PathValue("invitationId")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Results handles GET /v1/staff/results
func (h *StaffHandler) Results(w http.ResponseWriter, r *http.Request) {
	summary, err := h.staff.Summary(r.Context())
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "summarize results"))
		return
	}

	WriteData(w, http.StatusOK, summary, nil)
}

// UserResults handles GET /v1/staff/users/{userId}/results
func (h *StaffHandler) UserResults(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	results, err := h.staff.UserResults(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if results == nil {
		results = []*model.AssessmentResult{}
	}

	WriteCollection(w, http.StatusOK, results, map[string]string{
		"matches": "/v1/staff/users/" + userID + "/matches",
	})
}

// UpdateRole handles PATCH /v1/staff/users/{userId}/role
func (h *StaffHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.UpdateRoleRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	user, err := h.staff.UpdateRole(r.Context(), actor, r.PathValue("userId"), req.Role)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user, nil)
}
