package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/forgo/shepherd/api/internal/model"
	"github.com/forgo/shepherd/api/pkg/jwt"
)

type tokenOptions struct {
	keyPath    string
	issuer     string
	userID     string
	email      string
	name       string
	role       string
	expMins    int
	outputJSON bool
}

func newTokenCommand() *cobra.Command {
	opts := &tokenOptions{}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.keyPath, "key", "./keys/private.pem", "Path to JWT private key")
	f.StringVar(&opts.issuer, "issuer", "shepherd.forgo.software", "JWT issuer")
	f.StringVar(&opts.userID, "user", "user:admin", "User record id for the token subject")
	f.StringVar(&opts.email, "email", "admin@shepherd.dev", "Email for the token")
	f.StringVar(&opts.name, "name", "Admin", "Display name for the token")
	f.StringVar(&opts.role, "role", string(model.UserRoleAdmin), "Role: member, staff or admin")
	f.IntVar(&opts.expMins, "exp", 60*24*7, "Token expiration in minutes (default: 7 days)")
	f.BoolVar(&opts.outputJSON, "json", false, "Output as JSON")
	return cmd
}

func runToken(cmd *cobra.Command, opts *tokenOptions) error {
	if !model.UserRole(opts.role).IsValid() {
		return fmt.Errorf("unknown role %q", opts.role)
	}
	if opts.expMins <= 0 {
		return fmt.Errorf("--exp must be positive")
	}

	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: opts.keyPath,
		Issuer:         opts.issuer,
		ExpirationMins: opts.expMins,
	})
	if err != nil {
		return fmt.Errorf("%w (generate keys with: shepherdctl keys generate)", err)
	}

	token, err := jwtService.Sign(jwt.Claims{
		Subject: opts.userID,
		Email:   opts.email,
		Name:    opts.name,
		Role:    opts.role,
	})
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	out := cmd.OutOrStdout()
	if opts.outputJSON {
		return writeJSON(out, map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   opts.expMins * 60,
			"user_id":      opts.userID,
			"email":        opts.email,
			"role":         opts.role,
		})
	}

	expTime := time.Now().Add(time.Duration(opts.expMins) * time.Minute)
	fmt.Fprintln(out, "Token Generated")
	fmt.Fprintln(out, "===============")
	fmt.Fprintf(out, "User ID:  %s\n", opts.userID)
	fmt.Fprintf(out, "Email:    %s\n", opts.email)
	fmt.Fprintf(out, "Role:     %s\n", opts.role)
	fmt.Fprintf(out, "Expires:  %s\n", expTime.Format(time.RFC3339))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Token:")
	fmt.Fprintln(out, token)
	return nil
}
