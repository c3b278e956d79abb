package repart_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modularizer/repart-go/pkg/repart"
)

func TestBuildIndex_FlatNamedGroups(t *testing.T) {
	ix, err := repart.BuildIndex(`name: (?<name>\w+), age: (?<age>\d+)`)
	require.NoError(t, err)

	named := ix.Named()
	require.Len(t, named, 2)
	assert.Equal(t, "name", named[0].Name)
	assert.Equal(t, "age", named[1].Name)

	// Capture numbers are assigned in source order, strictly increasing.
	assert.Equal(t, 1, named[0].CaptureNumber)
	assert.Equal(t, 2, named[1].CaptureNumber)
	assert.Equal(t, 0, named[0].Level)
	assert.Equal(t, 0, named[1].Level)
}

func TestBuildIndex_Kinds(t *testing.T) {
	ix, err := repart.BuildIndex(`(a)(?:b)(?=c)(?!d)(?<=e)(?<!f)(?<g>h)`)
	require.NoError(t, err)
	require.Equal(t, 7, ix.Len())

	wantKinds := []repart.GroupKind{
		repart.KindCapturing,
		repart.KindNonCapturing,
		repart.KindLookahead,
		repart.KindNegativeLookahead,
		repart.KindLookbehind,
		repart.KindNegativeLookbehind,
		repart.KindNamed,
	}
	for i, want := range wantKinds {
		assert.Equal(t, want, ix.Group(i).Kind, "group %d", i)
	}

	// Only capturing and named groups get capture numbers.
	assert.Equal(t, 1, ix.Group(0).CaptureNumber)
	assert.Equal(t, 0, ix.Group(1).CaptureNumber)
	assert.Equal(t, 2, ix.Group(6).CaptureNumber)
	assert.Equal(t, "g", ix.Group(6).Name)
}

func TestBuildIndex_PStyleNamedGroup(t *testing.T) {
	ix, err := repart.BuildIndex(`(?P<word>\w+)`)
	require.NoError(t, err)

	g, ok := ix.ByName("word")
	require.True(t, ok)
	assert.Equal(t, repart.KindNamed, g.Kind)
	assert.Equal(t, 1, g.CaptureNumber)
}

func TestBuildIndex_EscapedParens(t *testing.T) {
	// Escaped parentheses are literal text, not groups.
	ix, err := repart.BuildIndex(`\(literal\) (?<x>a)`)
	require.NoError(t, err)
	assert.Equal(t, 1, ix.Len())

	// A double backslash does not escape the parenthesis.
	ix, err = repart.BuildIndex(`\\(?<x>a)`)
	require.NoError(t, err)
	assert.Equal(t, 1, ix.Len())
	assert.Equal(t, "x", ix.Group(0).Name)
}

func TestBuildIndex_Nesting(t *testing.T) {
	ix, err := repart.BuildIndex(`(?<outer>a(?<inner>b(?<core>c)))(?<top>d)`)
	require.NoError(t, err)
	require.Equal(t, 4, ix.Len())

	outer := ix.Group(0)
	inner := ix.Group(1)
	core := ix.Group(2)
	top := ix.Group(3)

	assert.Equal(t, "outer", outer.Name)
	assert.Empty(t, outer.Parents)
	assert.Equal(t, 0, outer.Level)

	assert.Equal(t, "inner", inner.Name)
	assert.Equal(t, []int{0}, inner.Parents)
	assert.Equal(t, []int{0}, inner.NamedParents)
	assert.Equal(t, 1, inner.Level)

	assert.Equal(t, "core", core.Name)
	assert.Equal(t, []int{0, 1}, core.Parents)
	assert.Equal(t, []int{0, 1}, core.NamedParents)
	assert.Equal(t, 2, core.Level)

	assert.Equal(t, "top", top.Name)
	assert.Empty(t, top.Parents)
	assert.Equal(t, 0, top.Level)

	// Direct children of outer: just inner.
	assert.Equal(t, []int{1}, ix.ChildrenOf(0))
	assert.Equal(t, []int{2}, ix.ChildrenOf(1))
}

func TestBuildIndex_LevelOfUnnamedGroups(t *testing.T) {
	ix, err := repart.BuildIndex(`(?<o>a(b))`)
	require.NoError(t, err)
	require.Equal(t, 2, ix.Len())

	// Unnamed groups sit one level below their named-ancestor count.
	inner := ix.Group(1)
	assert.Equal(t, repart.KindCapturing, inner.Kind)
	assert.Equal(t, []int{0}, inner.NamedParents)
	assert.Equal(t, 0, inner.Level)
}

func TestBuildIndex_Quantifiers(t *testing.T) {
	tests := []struct {
		source  string
		min     int
		max     int
		qEndLen int // QuantifiedEnd - End of the first group
	}{
		{`(a)`, 1, 1, 0},
		{`(a)?`, 0, 1, 1},
		{`(a)*`, 0, -1, 1},
		{`(a)+`, 1, -1, 1},
		{`(a)+?`, 1, -1, 2},
		{`(a){2}`, 2, 2, 3},
		{`(a){3,}`, 3, -1, 4},
		{`(a){2,100}`, 2, 100, 7},
		{`(a){12,345}`, 12, 345, 8},
		{`(a){`, 1, 1, 0}, // literal brace, not a quantifier
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			ix, err := repart.BuildIndex(tt.source)
			require.NoError(t, err)
			g := ix.Group(0)
			assert.Equal(t, tt.min, g.Quantifier.Min)
			assert.Equal(t, tt.max, g.Quantifier.Max)
			assert.Equal(t, tt.qEndLen, g.QuantifiedEnd-g.End)
		})
	}
}

func TestBuildIndex_StructureErrors(t *testing.T) {
	for _, source := range []string{`)`, `(a))`, `(a`, `((b)`} {
		t.Run(source, func(t *testing.T) {
			_, err := repart.BuildIndex(source)
			require.Error(t, err)
			var structErr *repart.StructureError
			assert.True(t, errors.As(err, &structErr))
		})
	}
}

func TestBuildIndex_FormatErrors(t *testing.T) {
	for _, source := range []string{`(a){2`, `(a){2,`, `(a){2,5`, `(?<x`, `(?<>a)`} {
		t.Run(source, func(t *testing.T) {
			_, err := repart.BuildIndex(source)
			require.Error(t, err)
			var formatErr *repart.FormatError
			assert.True(t, errors.As(err, &formatErr))
		})
	}
}

func TestGroupIndex_Slicing(t *testing.T) {
	source := `x(?<pair>(?<k>\w+)=(?<v>\w+))+y`
	ix, err := repart.BuildIndex(source)
	require.NoError(t, err)

	pair, ok := ix.ByName("pair")
	require.True(t, ok)
	assert.Equal(t, `(?<pair>(?<k>\w+)=(?<v>\w+))`, ix.GroupSource(pair))
	assert.Equal(t, `(?<k>\w+)=(?<v>\w+)`, ix.InnerSource(pair))
	assert.Equal(t, repart.Quantifier{Min: 1, Max: -1}, pair.Quantifier)

	_, ok = ix.ByName("missing")
	assert.False(t, ok)
}

func TestGroupIndex_String(t *testing.T) {
	ix, err := repart.BuildIndex(`(?<name>\w+)(?:, (?<age>\d+))?`)
	require.NoError(t, err)

	s := ix.String()
	assert.Contains(t, s, `named "name" #1`)
	assert.Contains(t, s, `named "age" #2`)
	assert.Contains(t, s, "non-capturing")
	assert.Contains(t, s, "x?")
}
