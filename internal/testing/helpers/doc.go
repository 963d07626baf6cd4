// Package helpers provides request builders and assertions for integration
// tests that drive the HTTP API.
//
//	jwt := helpers.NewJWTHelper(t)
//	rr := helpers.NewRequest(t, http.MethodGet, "/v1/profile/results").
//	    WithAuth(jwt, user).
//	    Do(router)
//	helpers.AssertStatus(t, rr, http.StatusOK)
//
// Tokens are signed with a key shared by the whole test binary. Services
// under test must validate with JWTHelper.Service.
package helpers
