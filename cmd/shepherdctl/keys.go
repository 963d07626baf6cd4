package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgo/shepherd/api/pkg/jwt"
)

func newKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "JWT signing key management",
	}

	var privatePath, publicPath string
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate an RS256 key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := jwt.WriteKeyPair(privatePath, publicPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s\n", privatePath, publicPath)
			return nil
		},
	}
	generate.Flags().StringVar(&privatePath, "private", "./keys/private.pem", "Private key output path")
	generate.Flags().StringVar(&publicPath, "public", "./keys/public.pem", "Public key output path")

	cmd.AddCommand(generate)
	return cmd
}
