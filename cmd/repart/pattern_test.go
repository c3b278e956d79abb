package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modularizer/repart-go/pkg/repart"
)

func writePatternFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildPattern_Inline(t *testing.T) {
	p, err := buildPattern(`(?<word>\w+)`, "gi", "", "")
	require.NoError(t, err)
	assert.True(t, p.Flags().Has(repart.Global|repart.IgnoreCase))
	assert.Equal(t, `(?<word>\w+)`, p.Source())
}

func TestBuildPattern_InlineBadFlags(t *testing.T) {
	_, err := buildPattern(`x`, "gz", "", "")
	assert.Error(t, err)
}

func TestBuildPattern_FromFileByID(t *testing.T) {
	path := writePatternFile(t, `version: 1
patterns:
  - id: words
    regex: '(?<word>\w+)'
    flags: g
  - id: number
    regex: '(?<n>\d+)'
    transforms:
      n: int
`)

	p, err := buildPattern("", "", path, "number")
	require.NoError(t, err)

	v, err := p.Extract("answer: 42")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"n": 42}, v)
}

func TestBuildPattern_SingleEntryFileNeedsNoID(t *testing.T) {
	path := writePatternFile(t, `version: 1
patterns:
  - id: words
    regex: '(?<word>\w+)'
`)

	p, err := buildPattern("", "", path, "")
	require.NoError(t, err)
	assert.Equal(t, `(?<word>\w+)`, p.Source())
}

func TestBuildPattern_Errors(t *testing.T) {
	path := writePatternFile(t, `version: 1
patterns:
  - id: a
    regex: x
  - id: b
    regex: y
`)

	_, err := buildPattern("", "", "", "")
	assert.Error(t, err, "no source at all")

	_, err = buildPattern("x", "", path, "")
	assert.Error(t, err, "inline and file are mutually exclusive")

	_, err = buildPattern("", "g", path, "a")
	assert.Error(t, err, "flags only apply to inline patterns")

	_, err = buildPattern("", "", path, "")
	assert.Error(t, err, "multi-entry file needs --id")

	_, err = buildPattern("", "", path, "missing")
	assert.Error(t, err, "unknown id")
}
