package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/stepmill/internal/cli"
)

const validModelHCL = `
model "growth" {
  time {
    first = 2000
    step  = 5
    last  = 2020
  }
}

component "emissions" {
  kind = "core.source"
}

input "base" {
  value = 10.0
}

connect "feed" {
  to    = "emissions.value"
  input = "base"
}
`

func writeModelFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRun_Success(t *testing.T) {
	t.Parallel()

	path := writeModelFile(t, validModelHCL)
	out := &bytes.Buffer{}

	err := run(out, []string{"-log-level", "error", path})
	require.NoError(t, err)
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-log-format", "xml", "model.hcl"})
	require.Error(t, err)

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	// An unparseable model file fails during app construction, not at run
	// time.
	path := writeModelFile(t, `model "broken" { time {`)
	out := &bytes.Buffer{}

	err := run(out, []string{"-log-level", "error", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
