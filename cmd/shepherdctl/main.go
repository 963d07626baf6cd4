// Command shepherdctl is the operator tool for the Shepherd API: it creates
// signing keys and tokens, scores answer files offline, runs the matcher
// against a catalog and validates catalog files.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newRootCommand creates the root cobra command
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "shepherdctl",
		Short:         "Shepherd operator tool",
		Long:          "Manage signing keys and tokens, score assessments and run ministry matching offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newKeysCommand(),
		newTokenCommand(),
		newScoreCommand(),
		newMatchCommand(),
		newCatalogCommand(),
	)
	return root
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
