// Package handler provides HTTP request handlers for the Shepherd API.
//
// Handlers are grouped by area: authentication and invitations, assessments,
// ministry matching, and the staff console. Each handler struct holds the
// services it needs and its methods serve one endpoint each.
//
// # Response Format
//
// Handlers use standardized response functions:
//
//   - WriteData: Single resource with optional HATEOAS links
//   - WriteCollection: List of resources
//   - WriteJSON: Raw JSON response
//   - WriteError: RFC 9457 Problem Details error response
//
// Service errors go through MapServiceError so every endpoint reports the
// same status and code for the same failure.
//
// # Routing
//
// NewRouter registers every route on a ServeMux and applies the per-route
// auth middleware:
//
//	mux := handler.NewRouter(handler.RouterConfig{
//	    Validator: tokenService,
//	    Auth:      handler.NewAuthHandler(authService, invitationService),
//	    ...
//	})
package handler
