// Package service implements the business logic layer for the Shepherd API.
//
// Services sit between HTTP handlers and repositories. They run the scoring
// engine on submitted answers, drive the compatibility matcher, and own the
// account, invitation and staff workflows.
//
// # Service Pattern
//
//   - Constructor function (NewXxxService) accepts a config struct with its dependencies
//   - Repository interfaces are declared here, next to the service that uses them
//   - Errors are sentinel values from errors.go, or wrapped errors for context
//
// # Example Usage
//
//	assessments := NewAssessmentService(AssessmentServiceConfig{
//	    Results: resultRepository,
//	    Metrics: m,
//	})
//	result, err := assessments.Submit(ctx, userID, model.TestTypeGifts, answers)
package service
