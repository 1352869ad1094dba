// Package cmd provides the root command and CLI setup for shellmorph.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"shellmorph.dev/pkg/shellmorph/internal/adapter"
	"shellmorph.dev/pkg/shellmorph/internal/controller"
	"shellmorph.dev/pkg/shellmorph/internal/domain"
	"shellmorph.dev/pkg/shellmorph/internal/domain/mutators"
)

var fsAdapter adapter.SourceFSAdapter
var syntaxAdapter adapter.ShellSyntaxAdapter
var runnerAdapter adapter.ShellRunnerAdapter
var clipboardAdapter adapter.ClipboardAdapter
var catalog *domain.Catalog
var obfuscator domain.Obfuscator
var workflow domain.Workflow
var ui controller.UI

// verboseFlag switches the log level to debug.
var verboseFlag bool

// logFileFlag overrides the rotating log file path.
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	var err error

	catalog, err = domain.NewCatalog(mutators.Registry{})
	cobra.CheckErr(err)

	ui = controller.NewSimpleUI(rootCmd)
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	syntaxAdapter = adapter.NewLocalShellSyntaxAdapter()
	runnerAdapter = adapter.NewLocalShellRunnerAdapter()
	clipboardAdapter = adapter.NewSystemClipboardAdapter()
	obfuscator = domain.NewObfuscator(catalog, syntaxAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		runnerAdapter,
		clipboardAdapter,
		ui,
		obfuscator,
		catalog,
	)
}

const rootLongDescription = `Shellmorph turns a bash command into a behaviorally equivalent but
obfuscated payload by nesting randomly chosen mutators (command, string and
token rewrites, encoders and compressors) and mangling the result.

Running the payload with bash produces the same output, errors and exit code
as running the original command.`

const generateLongDescription = `Generate one or more obfuscated payloads for a command.

Give the input with exactly one of --command, --file or --stdin. Without
--order, mutators are chosen at random, weighted toward the requested
--payload-size and --execution-time (1 = smallest/fastest, 4 = largest/slowest).
With --order, the listed mutators are applied in order, one per layer:

  shellmorph generate -c 'echo hi' --order token/char_split --order command/reverse:bash_loop`

const listLongDescription = `List the available mutators, their ratings, required binaries and stubs.

Use the kind/name[:stub] form shown here with generate --order.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "shellmorph",
		Short:        "Bash command obfuscator",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd returns a fresh root command with its persistent flags, for
// callers that must not share state with rootCmd.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// An interrupt cancels the running generation.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}
