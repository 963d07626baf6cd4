package handler

import (
	"errors"
	"log/slog"

	"github.com/forgo/shepherd/api/internal/matching"
	"github.com/forgo/shepherd/api/internal/model"
	"github.com/forgo/shepherd/api/internal/scoring"
	"github.com/forgo/shepherd/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// Rejected answers carry the test and the offending field
	var answerErr *scoring.AnswerError
	if errors.As(err, &answerErr) {
		return model.NewAssessmentError(
			string(answerErr.TestType),
			answerErr.Err.Error(),
			[]model.FieldError{{Field: answerErr.Field, Message: answerErr.Message}},
		)
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())
	case errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrRefreshTokenExpired),
		errors.Is(err, service.ErrRefreshTokenRevoked):
		return model.NewUnauthorizedError(err.Error())

	// ===== Invitation Errors → 400 =====
	case errors.Is(err, service.ErrInvitationRequired),
		errors.Is(err, service.ErrInvitationExpired),
		errors.Is(err, service.ErrInvitationUsed),
		errors.Is(err, service.ErrInvitationRevoked),
		errors.Is(err, service.ErrInvitationEmail):
		return model.NewInvitationError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrCannotChangeOwnRole):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrInvitationNotFound):
		return model.NewNotFoundError("invitation")
	case errors.Is(err, service.ErrUnknownTestType),
		errors.Is(err, scoring.ErrUnknownTestType):
		return model.NewNotFoundError("assessment")
	case errors.Is(err, service.ErrResultNotFound):
		return model.NewNotFoundError("assessment result")
	case errors.Is(err, service.ErrMinistryNotFound):
		return model.NewNotFoundError("ministry")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidEmail):
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: err.Error()}})
	case errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "password", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidRole):
		return model.NewValidationError([]model.FieldError{{Field: "role", Message: err.Error()}})
	case errors.Is(err, matching.ErrNoCompletedAssessments):
		return model.NewNoAssessmentsError()

	// ===== Bad Request → 400 =====
	case errors.Is(err, matching.ErrInvalidSort):
		return model.NewBadRequestError(err.Error())

	// ===== Provider/External Errors → 502 =====
	case errors.Is(err, service.ErrEmailDelivery):
		return model.NewExternalServiceError("the invitation email could not be delivered")

	// ===== Default → 500 =====
	default:
		slog.Error("unhandled service error", slog.String("error", err.Error()))
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
