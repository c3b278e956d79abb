package repart

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// GroupKind classifies a parenthesized group in a pattern's source text.
type GroupKind int

const (
	KindCapturing GroupKind = iota
	KindNamed
	KindNonCapturing
	KindLookahead
	KindNegativeLookahead
	KindLookbehind
	KindNegativeLookbehind
)

var groupKindNames = map[GroupKind]string{
	KindCapturing:          "capturing",
	KindNamed:              "named",
	KindNonCapturing:       "non-capturing",
	KindLookahead:          "lookahead",
	KindNegativeLookahead:  "negative-lookahead",
	KindLookbehind:         "lookbehind",
	KindNegativeLookbehind: "negative-lookbehind",
}

func (k GroupKind) String() string {
	if n, ok := groupKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("GroupKind(%d)", int(k))
}

// captures reports whether the engine assigns a capture number to groups
// of this kind.
func (k GroupKind) captures() bool {
	return k == KindCapturing || k == KindNamed
}

// Quantifier is the repetition range attached to a group. A group with no
// trailing quantifier occurs exactly once. Max is -1 for an unbounded
// upper limit.
type Quantifier struct {
	Min int
	Max int
}

// String renders the quantifier in regex notation ("" for exactly one).
func (q Quantifier) String() string {
	switch {
	case q.Min == 1 && q.Max == 1:
		return ""
	case q.Min == 0 && q.Max == 1:
		return "?"
	case q.Min == 0 && q.Max == -1:
		return "*"
	case q.Min == 1 && q.Max == -1:
		return "+"
	case q.Max == -1:
		return fmt.Sprintf("{%d,}", q.Min)
	case q.Min == q.Max:
		return fmt.Sprintf("{%d}", q.Min)
	}
	return fmt.Sprintf("{%d,%d}", q.Min, q.Max)
}

// GroupDescriptor describes one group discovered in a pattern's source
// text. All offsets are byte offsets into the source.
type GroupDescriptor struct {
	Start         int // offset of '('
	ContentStart  int // offset just past the group-start sequence
	End           int // offset just past ')'
	QuantifiedEnd int // offset just past the trailing quantifier, if any

	Kind GroupKind
	Name string // named groups only

	// CaptureNumber is the engine's 1-based capture number, assigned to
	// capturing and named groups in source order. Zero for group kinds
	// the engine does not number.
	CaptureNumber int

	// Parents holds the indices (into the sorted group list) of every
	// group whose span strictly encloses this one. CapturingParents and
	// NamedParents are the subsets of capturing-or-named and named kind.
	Parents          []int
	CapturingParents []int
	NamedParents     []int

	// Level is the named-ancestor count for named groups, and one less
	// than that for every other kind.
	Level int

	Quantifier Quantifier
}

// GroupIndex is the ordered, hierarchical index of every group in one
// pattern source. It is stateless with respect to matching: the index is
// rebuilt purely from the source text and can be cached by source string.
type GroupIndex struct {
	source string
	groups []GroupDescriptor
	byName map[string]int
}

// BuildIndex scans source and builds its group index. It fails with a
// StructureError on unmatched parentheses and a FormatError on malformed
// group syntax or brace quantifiers.
func BuildIndex(source string) (*GroupIndex, error) {
	delims, err := scanDelims(source)
	if err != nil {
		return nil, err
	}

	var stack []delim
	var groups []GroupDescriptor
	for _, d := range delims {
		switch d.kind {
		case delimOpen:
			stack = append(stack, d)
		case delimClose:
			if len(stack) == 0 {
				return nil, &StructureError{Pos: d.pos, Message: "unmatched closing parenthesis"}
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			q, qEnd, err := parseQuantifier(source, d.pos+1)
			if err != nil {
				return nil, err
			}
			groups = append(groups, GroupDescriptor{
				Start:         open.pos,
				ContentStart:  open.contentStart,
				End:           d.pos + 1,
				QuantifiedEnd: qEnd,
				Kind:          open.groupKind,
				Name:          open.name,
				Quantifier:    q,
			})
		}
	}
	if len(stack) > 0 {
		return nil, &StructureError{Pos: stack[len(stack)-1].pos, Message: "unmatched opening parenthesis"}
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Start < groups[j].Start })

	byName := make(map[string]int)
	capture := 0
	for i := range groups {
		g := &groups[i]
		if g.Kind.captures() {
			capture++
			g.CaptureNumber = capture
		}
		for j := range groups {
			if groups[j].Start < g.Start && groups[j].End > g.End {
				g.Parents = append(g.Parents, j)
				if groups[j].Kind.captures() {
					g.CapturingParents = append(g.CapturingParents, j)
				}
				if groups[j].Kind == KindNamed {
					g.NamedParents = append(g.NamedParents, j)
				}
			}
		}
		if g.Kind == KindNamed {
			g.Level = len(g.NamedParents)
			if _, seen := byName[g.Name]; !seen {
				byName[g.Name] = i
			}
		} else {
			g.Level = len(g.NamedParents) - 1
		}
	}

	return &GroupIndex{source: source, groups: groups, byName: byName}, nil
}

// parseQuantifier detects a quantifier immediately following a group's
// closing parenthesis at offset pos. It returns the repetition range and
// the offset just past the quantifier (pos when there is none). A brace
// form with digits but no closing brace is a FormatError; a brace not
// followed by a digit is literal text, not a quantifier.
func parseQuantifier(source string, pos int) (Quantifier, int, error) {
	one := Quantifier{Min: 1, Max: 1}
	if pos >= len(source) {
		return one, pos, nil
	}

	var q Quantifier
	end := pos
	switch source[pos] {
	case '?':
		q = Quantifier{Min: 0, Max: 1}
		end = pos + 1
	case '*':
		q = Quantifier{Min: 0, Max: -1}
		end = pos + 1
	case '+':
		q = Quantifier{Min: 1, Max: -1}
		end = pos + 1
	case '{':
		i := pos + 1
		minStart := i
		for i < len(source) && isDigit(source[i]) {
			i++
		}
		if i == minStart {
			return one, pos, nil // literal brace
		}
		min, err := strconv.Atoi(source[minStart:i])
		if err != nil {
			return one, pos, &FormatError{Pos: pos, Message: "invalid quantifier bound"}
		}
		q = Quantifier{Min: min, Max: min}
		if i < len(source) && source[i] == ',' {
			i++
			maxStart := i
			for i < len(source) && isDigit(source[i]) {
				i++
			}
			if i == maxStart {
				q.Max = -1
			} else {
				max, err := strconv.Atoi(source[maxStart:i])
				if err != nil {
					return one, pos, &FormatError{Pos: pos, Message: "invalid quantifier bound"}
				}
				q.Max = max
			}
		}
		if i >= len(source) || source[i] != '}' {
			return one, pos, &FormatError{Pos: pos, Message: "brace quantifier missing closing '}'"}
		}
		end = i + 1
	default:
		return one, pos, nil
	}

	// A trailing '?' makes the quantifier lazy; the repetition range is
	// unchanged but the quantified span grows.
	if end < len(source) && source[end] == '?' {
		end++
	}
	return q, end, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Source returns the pattern source text the index was built from.
func (ix *GroupIndex) Source() string { return ix.source }

// Len returns the number of groups in the index.
func (ix *GroupIndex) Len() int { return len(ix.groups) }

// Groups returns all group descriptors ordered by start offset.
func (ix *GroupIndex) Groups() []GroupDescriptor {
	out := make([]GroupDescriptor, len(ix.groups))
	copy(out, ix.groups)
	return out
}

// Group returns the descriptor at position i in start order.
func (ix *GroupIndex) Group(i int) GroupDescriptor { return ix.groups[i] }

// ByName returns the descriptor of the first group with the given name.
func (ix *GroupIndex) ByName(name string) (GroupDescriptor, bool) {
	i, ok := ix.byName[name]
	if !ok {
		return GroupDescriptor{}, false
	}
	return ix.groups[i], true
}

// Named returns the descriptors of all named groups in source order.
func (ix *GroupIndex) Named() []GroupDescriptor {
	var out []GroupDescriptor
	for _, g := range ix.groups {
		if g.Kind == KindNamed {
			out = append(out, g)
		}
	}
	return out
}

// ChildrenOf returns the indices of the direct children of group i.
func (ix *GroupIndex) ChildrenOf(i int) []int {
	var out []int
	depth := len(ix.groups[i].Parents)
	for j, g := range ix.groups {
		if len(g.Parents) == depth+1 && containsInt(g.Parents, i) {
			out = append(out, j)
		}
	}
	return out
}

// GroupSource returns the unquantified source slice of g, including its
// delimiters.
func (ix *GroupIndex) GroupSource(g GroupDescriptor) string {
	return ix.source[g.Start:g.End]
}

// InnerSource returns the source between g's group-start sequence and its
// closing parenthesis.
func (ix *GroupIndex) InnerSource(g GroupDescriptor) string {
	return ix.source[g.ContentStart : g.End-1]
}

// String renders the index as an indented tree, one group per line. The
// rendering is diagnostic output only; nothing in the pipeline depends
// on it.
func (ix *GroupIndex) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "/%s/ %d group(s)\n", ix.source, len(ix.groups))
	for j, g := range ix.groups {
		if len(g.Parents) == 0 {
			ix.render(&b, j, 0)
		}
	}
	return b.String()
}

func (ix *GroupIndex) render(b *strings.Builder, i, depth int) {
	g := ix.groups[i]
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(g.Kind.String())
	if g.Name != "" {
		fmt.Fprintf(b, " %q", g.Name)
	}
	if g.CaptureNumber > 0 {
		fmt.Fprintf(b, " #%d", g.CaptureNumber)
	}
	fmt.Fprintf(b, " [%d:%d)", g.Start, g.End)
	if q := g.Quantifier.String(); q != "" {
		fmt.Fprintf(b, " x%s", q)
	}
	b.WriteByte('\n')
	for _, c := range ix.ChildrenOf(i) {
		ix.render(b, c, depth+1)
	}
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
