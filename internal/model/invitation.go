package model

import (
	"strings"
	"time"
)

// InvitationStatus is the lifecycle state of an invitation
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRevoked  InvitationStatus = "revoked"
	InvitationStatusExpired  InvitationStatus = "expired"
)

// Invitation lets staff onboard a member by email. Only the hash of the
// token is stored; the raw token is shown once, in the email link.
type Invitation struct {
	ID         string           `json:"id"`
	Email      string           `json:"email"`
	Role       UserRole         `json:"role"`
	TokenHash  string           `json:"-"`
	InvitedBy  string           `json:"invited_by"`
	Status     InvitationStatus `json:"status"`
	ExpiresOn  time.Time        `json:"expires_on"`
	AcceptedOn *time.Time       `json:"accepted_on,omitempty"`
	CreatedOn  time.Time        `json:"created_on"`
}

// EffectiveStatus reports expired for pending invitations past their expiry
func (i *Invitation) EffectiveStatus(now time.Time) InvitationStatus {
	if i.Status == InvitationStatusPending && !now.Before(i.ExpiresOn) {
		return InvitationStatusExpired
	}
	return i.Status
}

// CreateInvitationRequest is the body of POST /v1/staff/invitations
type CreateInvitationRequest struct {
	Email string   `json:"email"`
	Role  UserRole `json:"role,omitempty"` // defaults to member
	Name  string   `json:"name,omitempty"` // used in the greeting
}

// Validate validates the invitation request
func (r *CreateInvitationRequest) Validate() []FieldError {
	var errors []FieldError
	if r.Email == "" {
		errors = append(errors, FieldError{Field: "email", Message: "email is required"})
	} else if !strings.Contains(r.Email, "@") {
		errors = append(errors, FieldError{Field: "email", Message: "email must be a valid address"})
	}
	if r.Role != "" && !r.Role.IsValid() {
		errors = append(errors, FieldError{Field: "role", Message: "role must be member, staff, or admin"})
	}
	if len(r.Name) > MaxNameLength {
		errors = append(errors, FieldError{Field: "name", Message: "name must be 100 characters or less"})
	}
	return errors
}

// InvitationCheck is the public view returned when validating a token
type InvitationCheck struct {
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	ExpiresOn time.Time `json:"expires_on"`
}
