// Package jobs implements background maintenance for the Shepherd API.
//
// Jobs run independently of HTTP request handling. The Sweeper deletes
// expired refresh tokens and invitations on a fixed interval:
//
//	sweeper := jobs.NewSweeper(jobs.SweeperConfig{
//	    Cleaners: map[string]jobs.Cleaner{
//	        "refresh_tokens": tokenService,
//	        "invitations":    invitationService,
//	    },
//	    Interval: time.Hour,
//	})
//	sweeper.Start()
//	defer sweeper.Stop()
//
// Jobs log errors but don't crash the application.
package jobs
