package model

import (
	"strings"
	"time"
)

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleMember UserRole = "member" // Default role, takes assessments
	UserRoleStaff  UserRole = "staff"  // Invites members, reviews results
	UserRoleAdmin  UserRole = "admin"  // Full access including role changes
)

// IsValid reports whether r is a known role
func (r UserRole) IsValid() bool {
	return r == UserRoleMember || r == UserRoleStaff || r == UserRoleAdmin
}

// User represents a user account
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Hash      *string    `json:"-"` // Never expose password hash
	Firstname *string    `json:"firstname,omitempty"`
	Lastname  *string    `json:"lastname,omitempty"`
	Role      UserRole   `json:"role"`
	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn time.Time  `json:"updated_on"`
	LoginOn   *time.Time `json:"login_on,omitempty"`
}

// IsAdmin returns true if the user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// IsStaff returns true if the user has staff or admin role
func (u *User) IsStaff() bool {
	return u.Role == UserRoleStaff || u.Role == UserRoleAdmin
}

// DisplayName returns "First Last" or the email when no name is set
func (u *User) DisplayName() string {
	var parts []string
	if u.Firstname != nil && *u.Firstname != "" {
		parts = append(parts, *u.Firstname)
	}
	if u.Lastname != nil && *u.Lastname != "" {
		parts = append(parts, *u.Lastname)
	}
	if len(parts) == 0 {
		return u.Email
	}
	return strings.Join(parts, " ")
}

// Validation constants
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxNameLength     = 100
)

// RegisterRequest is the body of POST /v1/auth/register
type RegisterRequest struct {
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	Firstname       *string `json:"firstname,omitempty"`
	Lastname        *string `json:"lastname,omitempty"`
	InvitationToken string  `json:"invitation_token,omitempty"`
}

// Validate validates the register request
func (r *RegisterRequest) Validate() []FieldError {
	var errors []FieldError
	if r.Email == "" {
		errors = append(errors, FieldError{Field: "email", Message: "email is required"})
	} else if !strings.Contains(r.Email, "@") {
		errors = append(errors, FieldError{Field: "email", Message: "email must be a valid address"})
	}
	if len(r.Password) < MinPasswordLength {
		errors = append(errors, FieldError{Field: "password", Message: "password must be at least 8 characters"})
	} else if len(r.Password) > MaxPasswordLength {
		errors = append(errors, FieldError{Field: "password", Message: "password must be 128 characters or less"})
	}
	if r.Firstname != nil && len(*r.Firstname) > MaxNameLength {
		errors = append(errors, FieldError{Field: "firstname", Message: "firstname must be 100 characters or less"})
	}
	if r.Lastname != nil && len(*r.Lastname) > MaxNameLength {
		errors = append(errors, FieldError{Field: "lastname", Message: "lastname must be 100 characters or less"})
	}
	return errors
}

// LoginRequest is the body of POST /v1/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /v1/auth/refresh and /v1/auth/logout
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UpdateRoleRequest is the body of PATCH /v1/staff/users/{userId}/role
type UpdateRoleRequest struct {
	Role UserRole `json:"role"`
}

// Validate validates the role change
func (r *UpdateRoleRequest) Validate() []FieldError {
	if !r.Role.IsValid() {
		return []FieldError{{Field: "role", Message: "role must be member, staff, or admin"}}
	}
	return nil
}

// TokenPair is returned after login, register and refresh
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User   *User      `json:"user"`
	Tokens *TokenPair `json:"tokens"`
}

// RefreshToken is a persisted, hashed refresh token
type RefreshToken struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	TokenHash string     `json:"-"`
	ExpiresOn time.Time  `json:"expires_on"`
	RevokedOn *time.Time `json:"revoked_on,omitempty"`
	CreatedOn time.Time  `json:"created_on"`
}

// IsValid reports whether the token is usable at now
func (t *RefreshToken) IsValid(now time.Time) bool {
	return t.RevokedOn == nil && now.Before(t.ExpiresOn)
}
