package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shellmorph.dev/pkg/shellmorph/internal/domain"
	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

// generateFlags holds the generate flags that are not backed by config keys.
type generateFlags struct {
	command         string
	file            string
	stdin           bool
	includeBinaries []string
	excludeBinaries []string
	order           []string
	seed            uint64
	outfile         string
	clip            bool
	quiet           bool
	test            bool
	count           int

	noMangling    bool
	noBinary      bool
	noInteger     bool
	noIntBases    bool
	noWhitespace  bool
	noInsertChars bool
	noTerminators bool

	// Bound to config keys; read back through viper.
	payloadSize     int
	executionTime   int
	layers          int
	noFileWrite     bool
	writeDir        string
	strictRatings   bool
	binaryPercent   int
	whitespaceRange string
	insertRange     string
	shebang         bool
	parallel        int
}

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate an obfuscated payload",
		Long:    generateLongDescription,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := buildGenerateArgs(cmd, flags)
			if err != nil {
				return err
			}

			return workflow.Generate(cmd.Context(), args)
		},
	}

	configureGenerateFlags(cmd, flags)

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func configureGenerateFlags(cmd *cobra.Command, flags *generateFlags) {
	f := cmd.Flags()

	f.StringVarP(&flags.command, commandFlagName, "c", "", "command to obfuscate")
	f.StringVarP(&flags.file, fileFlagName, "f", "", "read the command from a file")
	f.BoolVar(&flags.stdin, stdinFlagName, false, "read the command from standard input")
	cmd.MarkFlagsMutuallyExclusive(commandFlagName, fileFlagName, stdinFlagName)

	f.IntVarP(&flags.payloadSize, payloadSizeFlagName, "s", viper.GetInt(payloadSizeKey), "desired payload size, 1 (smallest) to 4")
	bindFlagToConfig(f.Lookup(payloadSizeFlagName), payloadSizeKey)

	f.IntVarP(&flags.executionTime, executionTimeFlagName, "t", viper.GetInt(executionTimeKey), "desired execution time, 1 (fastest) to 4")
	bindFlagToConfig(f.Lookup(executionTimeFlagName), executionTimeKey)

	f.IntVar(&flags.layers, layersFlagName, viper.GetInt(layersKey), "number of layers (0 = 2, or the --order length)")
	bindFlagToConfig(f.Lookup(layersFlagName), layersKey)

	f.StringSliceVar(&flags.includeBinaries, includeBinariesFlagName, nil, "only use these binaries")
	f.StringSliceVar(&flags.excludeBinaries, excludeBinariesFlagName, nil, "never use these binaries")
	cmd.MarkFlagsMutuallyExclusive(includeBinariesFlagName, excludeBinariesFlagName)

	f.BoolVar(&flags.noFileWrite, noFileWriteFlagName, viper.GetBool(noFileWriteKey), "never use mutators that write files")
	bindFlagToConfig(f.Lookup(noFileWriteFlagName), noFileWriteKey)

	f.StringVar(&flags.writeDir, writeDirFlagName, viper.GetString(writeDirKey), "directory file-writing mutators use")
	bindFlagToConfig(f.Lookup(writeDirFlagName), writeDirKey)

	f.BoolVar(&flags.strictRatings, strictRatingsFlagName, viper.GetBool(strictRatingsKey), "treat size and time as ceilings")
	bindFlagToConfig(f.Lookup(strictRatingsFlagName), strictRatingsKey)

	f.StringArrayVar(&flags.order, orderFlagName, nil, "apply kind/name[:stub] in order (can be repeated)")

	f.BoolVar(&flags.noMangling, noManglingFlagName, false, "disable the whole mangling pass")
	f.BoolVar(&flags.noBinary, noBinaryFlagName, false, "do not quote characters of binary names")

	f.IntVar(&flags.binaryPercent, binaryPercentFlagName, viper.GetInt(binaryPercentKey), "percent of binary name characters to quote")
	bindFlagToConfig(f.Lookup(binaryPercentFlagName), binaryPercentKey)

	f.BoolVar(&flags.noInteger, noIntegerFlagName, false, "do not rewrite integers as arithmetic")
	f.BoolVar(&flags.noIntBases, noIntegerBasesFlagName, false, "only use decimal integers in arithmetic")
	f.BoolVar(&flags.noWhitespace, noWhitespaceFlagName, false, "do not randomize whitespace")

	f.StringVar(&flags.whitespaceRange, whitespaceRangeFlagName, viper.GetString(whitespaceRangeKey), "random whitespace range as low,high")
	bindFlagToConfig(f.Lookup(whitespaceRangeFlagName), whitespaceRangeKey)

	f.BoolVar(&flags.noInsertChars, noInsertFlagName, false, "do not insert no-op statements")

	f.StringVar(&flags.insertRange, insertRangeFlagName, viper.GetString(insertRangeKey), "inserted filler length range as low,high")
	bindFlagToConfig(f.Lookup(insertRangeFlagName), insertRangeKey)

	f.BoolVar(&flags.noTerminators, noTerminatorsFlagName, false, "always terminate statements with ';'")

	f.Uint64Var(&flags.seed, seedFlagName, 0, "seed for reproducible output")
	f.StringVarP(&flags.outfile, outfileFlagName, "o", "", "write the payload to a file")

	f.BoolVar(&flags.shebang, shebangFlagName, viper.GetBool(shebangKey), "prepend #!/bin/bash to written files and make them executable")
	bindFlagToConfig(f.Lookup(shebangFlagName), shebangKey)

	f.BoolVar(&flags.clip, clipFlagName, false, "copy the payload to the clipboard")
	f.BoolVarP(&flags.quiet, quietFlagName, "q", false, "do not print the payload or the usage table")
	f.BoolVar(&flags.test, testFlagName, false, "run the original and the payload with bash and compare them")
	f.IntVar(&flags.count, countFlagName, 1, "number of payloads to generate")

	f.IntVarP(&flags.parallel, parallelFlagName, "p", viper.GetInt(parallelKey), "maximum concurrent generations with --count")
	bindFlagToConfig(f.Lookup(parallelFlagName), parallelKey)
}

// buildGenerateArgs turns flags and config into workflow arguments. Config
// backed values are read through viper so files and env vars apply.
func buildGenerateArgs(cmd *cobra.Command, flags *generateFlags) (domain.GenerateArgs, error) {
	req := m.NewRequest("")
	req.PayloadSize = viper.GetInt(payloadSizeKey)
	req.ExecutionTime = viper.GetInt(executionTimeKey)
	req.Layers = viper.GetInt(layersKey)
	req.FileWrite = !viper.GetBool(noFileWriteKey)
	req.WriteDir = viper.GetString(writeDirKey)
	req.StrictRatings = viper.GetBool(strictRatingsKey)

	switch {
	case len(flags.includeBinaries) > 0:
		req.Binaries = m.IncludeBinaries(flags.includeBinaries...)
	case len(flags.excludeBinaries) > 0:
		req.Binaries = m.ExcludeBinaries(flags.excludeBinaries...)
	}

	for _, value := range flags.order {
		tok, err := m.ParseOrderToken(value)
		if err != nil {
			return domain.GenerateArgs{}, err
		}

		req.Order = append(req.Order, tok)
	}

	mangling, err := buildMangling(flags)
	if err != nil {
		return domain.GenerateArgs{}, err
	}

	req.Mangling = mangling

	if flags.count < 1 {
		return domain.GenerateArgs{}, m.Invalid(countFlagName, "must be at least 1, got %d", flags.count)
	}

	return domain.GenerateArgs{
		Source: domain.SourceArgs{
			Command: flags.command,
			File:    m.Path(flags.file),
			Stdin:   flags.stdin,
		},
		Request:  req,
		Seed:     flags.seed,
		Seeded:   cmd.Flags().Changed(seedFlagName),
		Count:    flags.count,
		Parallel: viper.GetInt(parallelKey),
		Outfile:  m.Path(flags.outfile),
		Shebang:  viper.GetBool(shebangKey),
		Clip:     flags.clip,
		Quiet:    flags.quiet,
		Test:     flags.test,
	}, nil
}

// buildMangling only parses the ranges of enabled categories, so a stale
// range in the config does not break a run that turned the category off.
func buildMangling(flags *generateFlags) (m.Mangling, error) {
	opts := m.Mangling{
		Disabled:          flags.noMangling,
		NoBinaryMangling:  flags.noBinary,
		BinaryPercent:     viper.GetInt(binaryPercentKey),
		NoIntegerMangling: flags.noInteger,
		NoIntegerBases:    flags.noIntBases,
		NoWhitespace:      flags.noWhitespace,
		NoInsertChars:     flags.noInsertChars,
		NoTerminators:     flags.noTerminators,
	}

	if opts.Disabled {
		return opts, nil
	}

	var err error

	if !opts.NoWhitespace {
		if opts.Whitespace, err = m.ParseRange(whitespaceRangeFlagName, viper.GetString(whitespaceRangeKey)); err != nil {
			return m.Mangling{}, err
		}
	}

	if !opts.NoInsertChars {
		if opts.InsertChars, err = m.ParseRange(insertRangeFlagName, viper.GetString(insertRangeKey)); err != nil {
			return m.Mangling{}, err
		}
	}

	return opts, nil
}
