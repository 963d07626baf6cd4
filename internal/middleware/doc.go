// Package middleware provides HTTP middleware for the Shepherd API.
//
// Every middleware has the signature func(http.Handler) http.Handler and is
// composed with Chain, outermost first:
//
//	handler := middleware.Chain(mux,
//		middleware.RequestID,
//		middleware.Logger,
//		middleware.Recovery,
//	)
//
// # Authentication
//
// Auth validates a bearer access token and stores its claims in the request
// context. RequireStaff and RequireAdmin must run after Auth:
//
//	staffOnly := middleware.Chain(h, middleware.Auth(jwtService), middleware.RequireStaff())
//
// Handlers read the caller with GetUserID, GetUserRole and GetClaims.
//
// # Rate limiting and idempotency
//
// RateLimit keeps a token bucket per user, falling back to the client
// address for anonymous requests. Idempotency replays the stored response for
// a repeated Idempotency-Key on POST and PATCH, backed by process memory or
// Redis.
//
// # Metrics
//
// Metrics labels requests by the mux route pattern, so it must wrap the
// ServeMux directly.
package middleware
