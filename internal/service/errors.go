package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
)

// ===== Token Errors =====
var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
)

// ===== Authorization Errors =====
var (
	ErrForbidden           = errors.New("not allowed to perform this action")
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
)

// ===== Invitation Errors =====
var (
	ErrInvitationRequired = errors.New("an invitation is required to register")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationExpired  = errors.New("invitation expired")
	ErrInvitationUsed     = errors.New("invitation already used")
	ErrInvitationRevoked  = errors.New("invitation revoked")
	ErrInvitationEmail    = errors.New("email does not match the invitation")
	ErrInvalidRole        = errors.New("invalid role")
	ErrEmailDelivery      = errors.New("email delivery failed")
)

// ===== Assessment Errors =====
var (
	ErrUnknownTestType = errors.New("unknown assessment")
	ErrResultNotFound  = errors.New("assessment result not found")
)

// ===== Matching Errors =====
var (
	ErrMinistryNotFound = errors.New("ministry not found")
)
