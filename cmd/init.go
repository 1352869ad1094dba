package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var initForceFlag bool

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a shellmorph.yaml with the current defaults",
		Long: `Create a shellmorph.yaml in the current working directory holding the
generate, mangling, output and logging settings currently in effect, so they
can be edited and picked up by later runs.

An existing file is kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeConfigFile(cmd, filepath.Join(configFolderPath, configFileName), initForceFlag)
		},
	}

	cmd.Flags().BoolVar(&initForceFlag, forceFlagName, false, "overwrite an existing config file")

	return cmd
}

func writeConfigFile(cmd *cobra.Command, path string, force bool) error {
	write := viper.SafeWriteConfigAs
	if force {
		write = viper.WriteConfigAs
	}

	if err := write(path); err != nil {
		return fmt.Errorf("write config file %s: %w", path, err)
	}

	slog.Info("Wrote config file", "path", path, "force", force)
	cmd.PrintErrln("Wrote", path)

	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
