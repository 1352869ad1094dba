package cmd

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "shellmorph", configBaseName)
	assert.Equal(t, "shellmorph.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "SHELLMORPH", envPrefix)
	assert.Equal(t, "generate.payload_size", payloadSizeKey)
	assert.Equal(t, "mangling.whitespace_range", whitespaceRangeKey)
	assert.Equal(t, 4, defaultParallel)
	assert.Equal(t, ".shellmorph.log", defaultLogFilename)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestConfigDefaults(t *testing.T) {
	assert.Equal(t, 2, viper.GetInt(payloadSizeKey))
	assert.Equal(t, 2, viper.GetInt(executionTimeKey))
	assert.Equal(t, "/tmp", viper.GetString(writeDirKey))
	assert.Equal(t, 50, viper.GetInt(binaryPercentKey))
	assert.Equal(t, "0,2", viper.GetString(whitespaceRangeKey))
	assert.Equal(t, "1,3", viper.GetString(insertRangeKey))
	assert.Equal(t, "table", viper.GetString(listFormatKey))
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestNewLogHandler(t *testing.T) {
	t.Run("rotating file", func(t *testing.T) {
		handler := newLogHandler(filepath.Join(t.TempDir(), "x.log"), slog.LevelInfo)

		_, ok := handler.(*slog.TextHandler)
		assert.True(t, ok, "got %T", handler)
	})

	t.Run("stderr", func(t *testing.T) {
		viper.Set(logStderrKey, true)
		t.Cleanup(func() { viper.Set(logStderrKey, false) })

		handler := newLogHandler("", slog.LevelDebug)

		_, ok := handler.(*log.Logger)
		assert.True(t, ok, "got %T", handler)
	})
}
