package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	cfg, shouldExit, err := Parse(nil, &bytes.Buffer{})

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, "beanbridge", cfg.DefaultDomain)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 5, cfg.Converter.MaxDepth)
	assert.False(t, cfg.Dump)
}

func TestParse_FlagsOverrideConfigFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "beanbridge.hcl")
	content := `
default_domain   = "svc"
log_level        = "debug"
healthcheck_port = 8080
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	args := []string{"-config", path, "-log-level", "WARN", "-dump"}

	// --- Act ---
	cfg, shouldExit, err := Parse(args, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, "svc", cfg.DefaultDomain, "file value is kept when the flag is not set")
	assert.Equal(t, 8080, cfg.HealthcheckPort)
	assert.Equal(t, "warn", cfg.LogLevel, "explicit flag wins over the file")
	assert.True(t, cfg.Dump)
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"-h"}, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "-dump")
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown flag", args: []string{"-workers", "3"}, wantErr: "flag provided but not defined"},
		{name: "positional argument", args: []string{"grid.hcl"}, wantErr: `unexpected argument "grid.hcl"`},
		{name: "bad format", args: []string{"-log-format", "xml"}, wantErr: "invalid log format"},
		{name: "bad level", args: []string{"-log-level", "verbose"}, wantErr: "invalid log level"},
		{name: "missing config file", args: []string{"-config", "does-not-exist.hcl"}, wantErr: "failed to read config"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Parse(tc.args, &bytes.Buffer{})

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr), "expected an ExitError, got %v", err)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantErr)
		})
	}
}
