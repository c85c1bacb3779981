package cmd

import (
	"fmt"
	"os"

	"github.com/hawkynt/ilgo/pkg/iltransform"
	"github.com/spf13/cobra"
)

var (
	stubsPkgName   string
	stubsNamespace string
)

var stubsCmd = &cobra.Command{
	Use:   "stubs",
	Short: "Print the full framework-stub catalog",
	Long: `Print every declaration the Framework Stub Generator can
emit, independent of any IL input: every algorithm base, instance base,
enum family, helper record, and helper function in the closed catalog.

Useful for inspecting the fixed scaffolding a real transform run selects
from.`,
	RunE: runStubs,
}

func init() {
	rootCmd.AddCommand(stubsCmd)
	stubsCmd.Flags().StringVar(&stubsPkgName, "package", "cipher", "emitted package name")
	stubsCmd.Flags().StringVar(&stubsNamespace, "namespace", "", "alias for --package")
}

func runStubs(_ *cobra.Command, _ []string) error {
	if stubsNamespace != "" {
		stubsPkgName = stubsNamespace
	}
	t := iltransform.New(iltransform.WithPackageName(stubsPkgName))
	src, err := t.StubsFile().Render()
	if err != nil {
		return fmt.Errorf("failed to render stub catalog: %w", err)
	}
	fmt.Fprint(os.Stdout, string(src))
	return nil
}
