package repart

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// Flags is a bit set of pattern mode flags, written with the usual
// single-letter names: d (indices), g (global), i (ignore case),
// m (multiline), s (dot-all), u (unicode), y (sticky).
//
// IgnoreCase, Multiline, DotAll and Unicode change how the engine
// interprets the pattern source. Global, Sticky and Indices steer the
// match executor: Global switches the default to multi-match iteration,
// Sticky requires each match to begin exactly at the search cursor, and
// Indices is accepted for compatibility (span reporting is always on).
type Flags uint16

const (
	IgnoreCase Flags = 1 << iota // i
	Global                       // g
	Multiline                    // m
	DotAll                       // s
	Unicode                      // u
	Sticky                       // y
	Indices                      // d
)

// flagLetters maps flag bits to letters in canonical "dgimsuy" order.
var flagLetters = []struct {
	flag   Flags
	letter byte
}{
	{Indices, 'd'},
	{Global, 'g'},
	{IgnoreCase, 'i'},
	{Multiline, 'm'},
	{DotAll, 's'},
	{Unicode, 'u'},
	{Sticky, 'y'},
}

// ParseFlags converts a flag string such as "gi" into a Flags value.
// Unknown or repeated letters are an error.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	for i := 0; i < len(s); i++ {
		var bit Flags
		switch s[i] {
		case 'd':
			bit = Indices
		case 'g':
			bit = Global
		case 'i':
			bit = IgnoreCase
		case 'm':
			bit = Multiline
		case 's':
			bit = DotAll
		case 'u':
			bit = Unicode
		case 'y':
			bit = Sticky
		default:
			return 0, fmt.Errorf("unknown pattern flag %q", string(s[i]))
		}
		if f.Has(bit) {
			return 0, fmt.Errorf("repeated pattern flag %q", string(s[i]))
		}
		f |= bit
	}
	return f, nil
}

// Has reports whether all bits of other are set in f.
func (f Flags) Has(other Flags) bool {
	return f&other == other
}

// String returns the flag letters in canonical "dgimsuy" order.
func (f Flags) String() string {
	var b strings.Builder
	for _, fl := range flagLetters {
		if f.Has(fl.flag) {
			b.WriteByte(fl.letter)
		}
	}
	return b.String()
}

// engineOptions maps the engine-relevant flags to regexp2 options.
// Global, Sticky and Indices are handled by the match executor, not the
// engine.
func (f Flags) engineOptions() regexp2.RegexOptions {
	opts := regexp2.None
	if f.Has(IgnoreCase) {
		opts |= regexp2.IgnoreCase
	}
	if f.Has(Multiline) {
		opts |= regexp2.Multiline
	}
	if f.Has(DotAll) {
		opts |= regexp2.Singleline
	}
	if f.Has(Unicode) {
		opts |= regexp2.Unicode
	}
	return opts
}
