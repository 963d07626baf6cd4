// Package jwt signs and validates RS256 access tokens for the Shepherd API.
//
// Tokens carry the user record id as the subject plus email, display name and
// role. Roles are ordered member < staff < admin, so HasRole(RoleStaff) is
// true for staff and admin tokens.
//
//	svc, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "keys/private.pem",
//	    Issuer:         "shepherd-api",
//	    ExpirationMins: 15,
//	})
//
//	token, err := svc.Sign(jwt.Claims{Subject: user.ID, Role: jwt.RoleMember})
//	claims, err := svc.Validate(token)
package jwt
