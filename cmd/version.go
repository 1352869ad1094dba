package cmd

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"shellmorph.dev/pkg/shellmorph/internal/domain"
	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the shellmorph build version, the Go version and the registered mutators per kind.",
		Run: func(cmd *cobra.Command, _ []string) {
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
				cmd.Println("shellmorph version\t", info.Main.Version)
				cmd.Println("go version\t", info.GoVersion)
			} else {
				cmd.Println("version: unknown")
			}

			if catalog != nil {
				cmd.Println("mutators\t", catalogSummary(catalog))
			}
		},
	}
}

// catalogSummary renders "16 (command 2, string 4, ...)".
func catalogSummary(c *domain.Catalog) string {
	parts := make([]string, 0, len(m.Kinds))
	for _, kind := range m.Kinds {
		parts = append(parts, fmt.Sprintf("%s %d", kind, len(c.Mutators(kind))))
	}

	return fmt.Sprintf("%d (%s)", len(c.All()), strings.Join(parts, ", "))
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
