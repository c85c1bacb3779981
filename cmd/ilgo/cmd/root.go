// Package cmd implements the ilgo command-line interface: a cobra root
// command with subcommands for running the transform and inspecting the
// framework stub catalog.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ilgo",
	Short: "IL-to-Go AST transformer",
	Long: `ilgo transforms a pre-produced, type-annotated intermediate-language
(IL) AST into a Go AST file object: structs with embedded bases for
inheritance, receiver-bound methods, and the framework scaffolding
(enums, helper records, helper functions) the emitted code depends on.

The IL is assumed already parsed and type-inferred by an upstream front
end; ilgo never parses source text itself.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
