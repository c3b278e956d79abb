package repart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modularizer/repart-go/pkg/repart"
)

func TestMatch_Basic(t *testing.T) {
	p := repart.MustCompile(`name: (?<name>\w+)`)

	m, err := p.Match("name: John")
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, "name: John", m.Text)
	assert.Equal(t, 0, m.Start)
	assert.Equal(t, 10, m.End)
	assert.Equal(t, 0, m.Offset)

	require.Contains(t, m.Groups, "name")
	g := m.Groups["name"]
	assert.Equal(t, "name", g.Name)
	assert.Equal(t, "John", g.Text)
	assert.Equal(t, 6, g.Start)
	assert.Equal(t, 10, g.End)
}

func TestMatch_NoMatchIsNilNotError(t *testing.T) {
	p := repart.MustCompile(`\d+`)
	m, err := p.Match("no digits here")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestMatch_AbsentOptionalGroup(t *testing.T) {
	p := repart.MustCompile(`(?<a>x)(?<b>y)?`)
	m, err := p.Match("x")
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Contains(t, m.Groups, "a")
	assert.NotContains(t, m.Groups, "b")
}

func TestMatch_RuneOffsets(t *testing.T) {
	p := repart.MustCompile(`(?<d>\d)`)
	m, err := p.Match("héllo 1")
	require.NoError(t, err)
	require.NotNil(t, m)

	// "é" counts as one position: offsets are rune-based, not byte-based.
	assert.Equal(t, 6, m.Groups["d"].Start)
}

func TestMatchAll(t *testing.T) {
	p := repart.MustCompile(`(?<word>\w+)`)

	ms, err := p.MatchAll("hello world test")
	require.NoError(t, err)
	require.Len(t, ms, 3)
	assert.Equal(t, "hello", ms[0].Text)
	assert.Equal(t, "world", ms[1].Text)
	assert.Equal(t, "test", ms[2].Text)
	assert.Equal(t, 6, ms[1].Start)
}

func TestMatchAll_NoMatchesIsEmpty(t *testing.T) {
	p := repart.MustCompile(`\d+`)
	ms, err := p.MatchAll("none")
	require.NoError(t, err)
	assert.Empty(t, ms)
}

func TestMatchAll_MaxMatches(t *testing.T) {
	p := repart.MustCompile(`(?<word>\w+)`)
	ms, err := p.MatchAll("hello world test", repart.MaxMatches(2))
	require.NoError(t, err)
	assert.Len(t, ms, 2)
}

func TestMatch_GlobalPatternStillReturnsFirst(t *testing.T) {
	p := repart.MustCompile(`(?<word>\w+)`, repart.WithFlags(repart.Global))
	m, err := p.Match("hello world")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "hello", m.Text)
}

func TestMatchAll_StallGuardOnZeroWidthMatch(t *testing.T) {
	// A zero-width pattern would otherwise loop forever at one cursor
	// position; iteration must terminate with at most one result.
	p := repart.MustCompile(`(?=h)`)
	ms, err := p.MatchAll("hello")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(ms), 1)

	p = repart.MustCompile(`x*`)
	ms, err = p.MatchAll("abc")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(ms), 1)
}

func TestMatch_Sticky(t *testing.T) {
	p := repart.MustCompile(`\d+`, repart.WithFlags(repart.Sticky))

	// The first match sits at position 3, not at the cursor: sticky
	// matching reports no match.
	m, err := p.Match("abc123")
	require.NoError(t, err)
	assert.Nil(t, m)

	m, err = p.Match("abc123", repart.StartAt(3))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "123", m.Text)
}

func TestMatch_StartAt(t *testing.T) {
	p := repart.MustCompile(`(?<word>\w+)`)
	m, err := p.Match("hello world", repart.StartAt(6))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "world", m.Text)
}

func TestMatch_OffsetRebasesAbsolutePositions(t *testing.T) {
	p := repart.MustCompile(`name: (?<name>\w+)`)
	m, err := p.Match("name: John", repart.Offset(100))
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, 0, m.Start, "Start stays input-relative")
	assert.Equal(t, 100, m.Offset)
	assert.Equal(t, 106, m.Groups["name"].Offset)
}

func TestMatch_CacheInput(t *testing.T) {
	p := repart.MustCompile(`(?<word>\w+)`)

	m, err := p.Match("hello", repart.CacheInput())
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "hello", m.Input)
	assert.Equal(t, "hello", m.Groups["word"].Input)

	m, err = p.Match("hello")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Empty(t, m.Input)
}

func TestMatch_FlagOverride(t *testing.T) {
	p := repart.MustCompile(`hello`)

	m, err := p.Match("HELLO", repart.FlagOverride(repart.IgnoreCase))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "HELLO", m.Text)

	// The override is call-scoped; the pattern itself is unchanged.
	m, err = p.Match("HELLO")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestMatch_LastCaptureWinsForRepeatedGroup(t *testing.T) {
	p := repart.MustCompile(`(?:(?<ch>\w) ?)+`)
	m, err := p.Match("a b c")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "c", m.Groups["ch"].Text)
}
