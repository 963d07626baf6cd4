// Package fixtures provides test data factories for integration tests.
//
// A Factory writes through the real repositories, so fixtures exercise the
// same queries the API runs:
//
//	tdb := testdb.New(t)
//	f := fixtures.New(tdb.DB)
//
//	staff := f.CreateStaff(t)
//	maria := f.CreateUser(t, fixtures.WithEmail("maria@example.org"))
//	f.SaveGifts(t, maria, 4)
//	inv, token := f.CreateInvitation(t, staff, "luis@example.org", model.UserRoleMember, time.Hour)
//
// Emails and names are random unless overridden. Every user's password is
// DefaultPassword.
package fixtures
