package repart

import (
	"fmt"
	"strconv"

	"github.com/dlclark/regexp2"
)

// RawMatch is one match occurrence as reported by the engine: the whole
// match text with its span, plus every present named capture group nested
// one level below. Start and End are rune offsets within the searched
// input; Offset is the absolute rune offset from the top-level input,
// which differs once cascading sub-pattern matches rebase it.
//
// RawMatch trees are produced fresh per match call and are ephemeral;
// the only persisted artifact of the pipeline is the extracted value.
type RawMatch struct {
	Name   string
	Text   string
	Start  int
	End    int
	Offset int

	// Groups maps present named capture groups to their matches. Nil
	// when the pattern has no named groups or none participated.
	Groups map[string]*RawMatch

	// Input is the original input string, retained for diagnostics only
	// when the match was executed with CacheInput.
	Input string
}

// matchConfig holds per-call executor options.
type matchConfig struct {
	maxMatches int // 0 = derive from flags, -1 = unbounded
	offset     int
	startAt    int
	cacheInput bool
	flags      *Flags
}

// MatchOption configures a single match/parse/extract call.
type MatchOption func(*matchConfig)

// MaxMatches bounds how many matches are collected. Without this option
// one match is collected, or unboundedly many when the pattern is in
// Global mode. n <= 0 means unbounded. An explicit MaxMatches(1) forces
// single-match behavior even on a Global pattern.
func MaxMatches(n int) MatchOption {
	return func(c *matchConfig) {
		if n <= 0 {
			n = -1
		}
		c.maxMatches = n
	}
}

// StartAt sets the initial search cursor (a rune offset into the input).
func StartAt(pos int) MatchOption {
	return func(c *matchConfig) { c.startAt = pos }
}

// Offset rebases all absolute offsets in the result by n. The parser
// resolver uses this to report positions relative to the top-level input
// across cascading matches.
func Offset(n int) MatchOption {
	return func(c *matchConfig) { c.offset = n }
}

// CacheInput retains the input string on every RawMatch for diagnostics.
func CacheInput() MatchOption {
	return func(c *matchConfig) { c.cacheInput = true }
}

// FlagOverride executes the call with the given flags instead of the
// pattern's own. The pattern itself is never mutated; a temporary clone
// is compiled for the call.
func FlagOverride(f Flags) MatchOption {
	return func(c *matchConfig) { c.flags = &f }
}

func applyMatchOptions(opts []MatchOption) *matchConfig {
	cfg := &matchConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// multi reports whether the call is in multi-match mode. An explicit
// match budget decides first: one match is single-match mode even on a
// Global pattern, more than one (or unbounded) is multi-match mode.
// With no budget set, the Global flag (possibly via override) decides.
func (c *matchConfig) multi(p *Pattern) bool {
	switch {
	case c.maxMatches == 1:
		return false
	case c.maxMatches > 1 || c.maxMatches == -1:
		return true
	}
	flags := p.flags
	if c.flags != nil {
		flags = *c.flags
	}
	return flags.Has(Global)
}

// Match runs the pattern against input and returns the first match, or
// nil when the pattern does not match. No-match is never an error.
func (p *Pattern) Match(input string, opts ...MatchOption) (*RawMatch, error) {
	cfg := applyMatchOptions(opts)
	cfg.maxMatches = 1
	ms, err := p.execute(input, cfg)
	if err != nil || len(ms) == 0 {
		return nil, err
	}
	return ms[0], nil
}

// MatchAll runs the pattern against input in multi-match mode and
// returns every match in order. The result is empty, never nil-checked
// as an error, when nothing matches.
func (p *Pattern) MatchAll(input string, opts ...MatchOption) ([]*RawMatch, error) {
	cfg := applyMatchOptions(opts)
	if cfg.maxMatches == 0 {
		cfg.maxMatches = -1
	}
	return p.execute(input, cfg)
}

// execute is the match iteration loop shared by Match and MatchAll.
// It advances the search cursor past each hit and stops on the match
// budget, on no further match, or on the stall guard: a cursor that
// fails to advance (zero-width match) terminates iteration with the
// results collected so far rather than looping.
func (p *Pattern) execute(input string, cfg *matchConfig) ([]*RawMatch, error) {
	re := p.re
	flags := p.flags
	if cfg.flags != nil {
		flags = *cfg.flags
		var err error
		re, err = regexp2.Compile(p.source, flags.engineOptions())
		if err != nil {
			return nil, fmt.Errorf("engine rejected pattern with overridden flags: %w", err)
		}
		if p.timeout > 0 {
			re.MatchTimeout = p.timeout
		}
	}

	var out []*RawMatch
	pos := cfg.startAt
	for {
		m, err := re.FindStringMatchStartingAt(input, pos)
		if err != nil {
			return nil, fmt.Errorf("match failed: %w", err)
		}
		if m == nil {
			break
		}
		if flags.Has(Sticky) && m.Index != pos {
			break
		}
		out = append(out, newRawMatch(m, cfg, input))
		if cfg.maxMatches > 0 && len(out) >= cfg.maxMatches {
			break
		}
		next := m.Index + m.Length
		if next <= pos {
			break // stall guard
		}
		pos = next
	}
	return out, nil
}

// newRawMatch converts an engine match into a RawMatch tree with one
// level of present named-capture children.
func newRawMatch(m *regexp2.Match, cfg *matchConfig, input string) *RawMatch {
	r := &RawMatch{
		Text:   m.String(),
		Start:  m.Index,
		End:    m.Index + m.Length,
		Offset: cfg.offset + m.Index,
	}
	if cfg.cacheInput {
		r.Input = input
	}
	for _, g := range m.Groups() {
		if g.Name == "" || isNumericName(g.Name) {
			continue
		}
		if len(g.Captures) == 0 {
			continue // group did not participate in the match
		}
		c := g.Captures[len(g.Captures)-1]
		child := &RawMatch{
			Name:   g.Name,
			Text:   c.String(),
			Start:  c.Index,
			End:    c.Index + c.Length,
			Offset: cfg.offset + c.Index,
		}
		if cfg.cacheInput {
			child.Input = input
		}
		if r.Groups == nil {
			r.Groups = make(map[string]*RawMatch)
		}
		r.Groups[g.Name] = child
	}
	return r
}

// isNumericName reports whether the engine-assigned group name is a
// plain capture number rather than a user-supplied name.
func isNumericName(name string) bool {
	_, err := strconv.Atoi(name)
	return err == nil
}
