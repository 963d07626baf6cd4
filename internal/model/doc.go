// Package model defines domain entities and data structures for the Shepherd API.
//
// The model package contains all struct definitions for domain objects, request/response
// types, and error definitions. Models are used across all layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - User: Church member or staff account with authentication credentials
//   - Invitation: Single-use, expiring onboarding link sent by staff
//   - ScoreRecord: Scored outcome of one assessment (DISC, gifts, skills, passion, experience)
//   - AssessmentResult: A ScoreRecord persisted for one member
//   - Ministry: Volunteer opportunity with the trait profile it looks for
//   - MatchResult: Computed compatibility between a member and a ministry
//
// # Question Banks
//
// question_bank.go holds the static question tables. Question numbers are
// stable identifiers; the scoring engine maps them to categories:
//
//	gift, _ := model.GiftForQuestion(17) // "administracion"
//	skill, _ := model.SkillForQuestion(8) // "I"
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
