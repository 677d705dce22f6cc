package obslog_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/bxj/internal/obslog"
)

func TestGetLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    slog.Level
		expectError bool
	}{
		"error level":    {input: "error", expected: slog.LevelError},
		"warn level":     {input: "warn", expected: slog.LevelWarn},
		"warning level":  {input: "warning", expected: slog.LevelWarn},
		"info level":     {input: "info", expected: slog.LevelInfo},
		"debug level":    {input: "debug", expected: slog.LevelDebug},
		"case insensitive": {input: "INFO", expected: slog.LevelInfo},
		"unknown level":  {input: "unknown", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			lvl, err := obslog.GetLevel(tc.input)
			if tc.expectError {
				require.Error(t, err)
				require.ErrorIs(t, err, obslog.ErrUnknownLogLevel)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, lvl)
		})
	}
}

func TestGetFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    obslog.Format
		expectError bool
	}{
		"json format":      {input: "json", expected: obslog.FormatJSON},
		"logfmt format":    {input: "logfmt", expected: obslog.FormatLogfmt},
		"case insensitive": {input: "JSON", expected: obslog.FormatJSON},
		"unknown format":   {input: "unknown", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f, err := obslog.GetFormat(tc.input)
			if tc.expectError {
				require.Error(t, err)
				require.ErrorIs(t, err, obslog.ErrUnknownLogFormat)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, f)
		})
	}
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		checkFunc func(*testing.T, []byte)
		format    obslog.Format
	}{
		"json handler": {
			format: obslog.FormatJSON,
			checkFunc: func(t *testing.T, output []byte) {
				t.Helper()

				var logEntry map[string]any
				require.NoError(t, json.Unmarshal(output, &logEntry))
				assert.Equal(t, "test message", logEntry["msg"])
				assert.Equal(t, "INFO", logEntry["level"])
			},
		},
		"logfmt handler": {
			format: obslog.FormatLogfmt,
			checkFunc: func(t *testing.T, output []byte) {
				t.Helper()

				assert.Contains(t, string(output), "level=INFO")
				assert.Contains(t, string(output), `msg="test message"`)
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			handler := obslog.NewHandler(&buf, slog.LevelInfo, tc.format)
			require.NotNil(t, handler)

			slog.New(handler).Info("test message")

			tc.checkFunc(t, buf.Bytes())
		})
	}
}

func TestNewHandlerFromStringsRejectsInvalidArguments(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	_, err := obslog.NewHandlerFromStrings(&buf, "bogus", "json")
	require.Error(t, err)
	assert.ErrorIs(t, err, obslog.ErrInvalidArgument)

	_, err = obslog.NewHandlerFromStrings(&buf, "info", "bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, obslog.ErrInvalidArgument)
}

func TestLogLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	handler := obslog.NewHandler(&buf, slog.LevelError, obslog.FormatJSON)
	logger := slog.New(handler)

	logger.Info("suppressed")
	assert.Empty(t, buf.String())

	logger.Error("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestConfigRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := obslog.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cfg.RegisterCompletions(cmd))

	tcs := map[string]struct {
		flag string
		want []string
	}{
		"log-level":  {flag: "log-level", want: obslog.AllLevelStrings()},
		"log-format": {flag: "log-format", want: obslog.AllFormatStrings()},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			completionFn, ok := cmd.GetFlagCompletionFunc(tc.flag)
			require.True(t, ok)

			values, directive := completionFn(cmd, nil, "")
			assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
			assert.Equal(t, tc.want, values)
		})
	}
}
