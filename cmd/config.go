package cmd

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "shellmorph"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	envPrefix = "SHELLMORPH"

	verboseFlagName = "verbose"
	logFileFlagName = "log-file"

	commandFlagName         = "command"
	fileFlagName            = "file"
	stdinFlagName           = "stdin"
	payloadSizeFlagName     = "payload-size"
	executionTimeFlagName   = "execution-time"
	layersFlagName          = "layers"
	includeBinariesFlagName = "include-binaries"
	excludeBinariesFlagName = "exclude-binaries"
	noFileWriteFlagName     = "no-file-write"
	writeDirFlagName        = "write-dir"
	strictRatingsFlagName   = "strict-ratings"
	orderFlagName           = "order"
	noManglingFlagName      = "no-mangling"
	noBinaryFlagName        = "no-binary-mangling"
	binaryPercentFlagName   = "binary-mangle-percent"
	noIntegerFlagName       = "no-integer-mangling"
	noIntegerBasesFlagName  = "no-integer-base-randomization"
	noWhitespaceFlagName    = "no-random-whitespace"
	whitespaceRangeFlagName = "whitespace-range"
	noInsertFlagName        = "no-insert-chars"
	insertRangeFlagName     = "insert-range"
	noTerminatorsFlagName   = "no-terminator-randomization"
	seedFlagName            = "seed"
	outfileFlagName         = "outfile"
	shebangFlagName         = "shebang"
	clipFlagName            = "clip"
	quietFlagName           = "quiet"
	testFlagName            = "test"
	countFlagName           = "count"
	parallelFlagName        = "parallel"

	kindFlagName   = "kind"
	formatFlagName = "format"
	forceFlagName  = "force"

	payloadSizeKey     = "generate.payload_size"
	executionTimeKey   = "generate.execution_time"
	layersKey          = "generate.layers"
	noFileWriteKey     = "generate.no_file_write"
	writeDirKey        = "generate.write_dir"
	strictRatingsKey   = "generate.strict_ratings"
	binaryPercentKey   = "mangling.binary_percent"
	whitespaceRangeKey = "mangling.whitespace_range"
	insertRangeKey     = "mangling.insert_range"
	shebangKey         = "output.shebang"
	parallelKey        = "output.parallel"
	listFormatKey      = "list.format"

	defaultParallel   = 4
	defaultListFormat = "table"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logStderrKey     = "log.stderr"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".shellmorph.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogStderr     = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)

	viper.SetDefault(payloadSizeKey, m.DefaultRating)
	viper.SetDefault(executionTimeKey, m.DefaultRating)
	viper.SetDefault(layersKey, 0)
	viper.SetDefault(noFileWriteKey, false)
	viper.SetDefault(writeDirKey, m.DefaultWriteDir)
	viper.SetDefault(strictRatingsKey, false)
	viper.SetDefault(binaryPercentKey, m.DefaultBinaryPercent)
	viper.SetDefault(whitespaceRangeKey, m.DefaultWhitespace.String())
	viper.SetDefault(insertRangeKey, m.DefaultInsertChars.String())
	viper.SetDefault(shebangKey, false)
	viper.SetDefault(parallelKey, defaultParallel)
	viper.SetDefault(listFormatKey, defaultListFormat)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logStderrKey, defaultLogStderr)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return
		}

		slog.Warn("Failed to read config file", "file", viper.ConfigFileUsed(), "error", err)
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// Logs go to a rotating file at Info, or Debug when verbose. With log.stderr
// set they go to standard error instead, leaving standard output to payloads.
func configureLogger(logPath string, verbose bool) {
	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	slog.SetDefault(slog.New(newLogHandler(logPath, logLevel)))
}

func newLogHandler(logPath string, level slog.Level) slog.Handler {
	if viper.GetBool(logStderrKey) {
		return log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: level <= slog.LevelDebug,
			Level:           log.Level(level),
		})
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	return slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})
}
