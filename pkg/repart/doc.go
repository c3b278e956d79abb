// Package repart composes regular-expression patterns from reusable
// fragments and converts their matches into structured, typed values.
//
// A [Pattern] bundles a regex source, a set of mode [Flags], and a
// transformation map that tells the extraction pipeline how to turn each
// named capture group into a value. Patterns are immutable: every
// composition or rename operation returns a new Pattern.
//
// # Composition
//
// Patterns are built from ordered fragments of literal text and embedded
// sub-patterns:
//
//	word := repart.MustCompile(`(?<name>\w+)`)
//	age := repart.MustCompile(`(?<age>\d+)`)
//	p, err := repart.Compose(
//	    repart.Text("name: "), repart.Sub(word),
//	    repart.Text(", age: "), repart.Sub(age),
//	)
//
// [Pattern.As] rebinds a whole pattern to a new group name, and
// [Pattern.Nest] embeds a reusable pattern under a fresh key without its
// internal field names leaking into the result.
//
// # Extraction
//
// The match pipeline has three tiers, each usable on its own:
//
//	raw, err := p.Match(input)      // engine match with spans  (*RawMatch)
//	node, err := p.Parse(input)     // transformations resolved (*ParsedNode)
//	value, err := p.Extract(input)  // plain structured value   (any)
//
// With no transformations, Extract yields the named captures as strings:
//
//	v, _ := p.Extract("name: John, age: 25")
//	// map[string]any{"name": "John", "age": "25"}
//
// Attaching a transformation converts individual groups:
//
//	p, _ = p.With(repart.WithTransform("age", repart.Func(patterns.ToInt)))
//	v, _ = p.Extract("name: John, age: 25")
//	// map[string]any{"name": "John", "age": 25}
//
// Absence of a match is nil at every tier, never an error.
//
// # Engine
//
// Matching is delegated to github.com/dlclark/regexp2, which provides
// named groups, lookaround, and per-match spans. All indices reported by
// this package are rune offsets, following the engine's convention.
// Catastrophic backtracking is an engine-level concern; callers can bound
// it with [WithMatchTimeout].
package repart
