package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_InvalidConfigFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// An unterminated block is a syntax error reported before the app starts.
	path := filepath.Join(t.TempDir(), "beanbridge.hcl")
	require.NoError(t, os.WriteFile(path, []byte("converter {\n  max_depth = 3\n"), 0600))
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, []string{"-config", path})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse config file")
}

func TestRun_Dump(t *testing.T) {
	// --- Arrange ---
	// Dump mode registers the built-in beans on the process-wide platform
	// registry and removes them again on Close.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, []string{"-dump", "-default-domain", "maintest", "-log-level", "error"})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "maintest:type=Runtime")
	require.Contains(t, out.String(), "maintest:type=Environment")
}
