package repart

import "strings"

// delimKind distinguishes the two delimiter tokens the scanner emits.
type delimKind int

const (
	delimOpen delimKind = iota
	delimClose
)

// delim is one group delimiter located in a pattern's source text.
// For an opening delimiter the scanner also classifies the group kind,
// captures its name (named groups only), and records where the group's
// content begins.
type delim struct {
	kind         delimKind
	pos          int // byte offset of the parenthesis
	groupKind    GroupKind
	name         string
	contentStart int
}

// scanDelims performs a single escape-aware left-to-right scan over the
// pattern source, locating every unescaped '(' and ')'. A parenthesis is
// unescaped when it is preceded by an even number of consecutive
// backslashes. Character classes are not interpreted; parentheses inside
// a class must be escaped for the pattern to be composable.
func scanDelims(source string) ([]delim, error) {
	var out []delim
	backslashes := 0
	for i := 0; i < len(source); i++ {
		c := source[i]
		if c == '\\' {
			backslashes++
			continue
		}
		escaped := backslashes%2 == 1
		backslashes = 0
		if escaped {
			continue
		}
		switch c {
		case '(':
			d, err := classifyGroup(source, i)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		case ')':
			out = append(out, delim{kind: delimClose, pos: i})
		}
	}
	return out, nil
}

// classifyGroup inspects the characters following an opening parenthesis
// at pos and determines the group kind. Both (?<name>...) and the
// (?P<name>...) spelling are accepted for named groups. Unrecognized
// "(?..." sequences (inline flag groups and the like) are treated as
// non-capturing.
func classifyGroup(source string, pos int) (delim, error) {
	d := delim{kind: delimOpen, pos: pos}
	rest := source[pos+1:]
	switch {
	case strings.HasPrefix(rest, "?<="):
		d.groupKind = KindLookbehind
		d.contentStart = pos + 4
	case strings.HasPrefix(rest, "?<!"):
		d.groupKind = KindNegativeLookbehind
		d.contentStart = pos + 4
	case strings.HasPrefix(rest, "?<"):
		return scanGroupName(source, pos, pos+3)
	case strings.HasPrefix(rest, "?P<"):
		return scanGroupName(source, pos, pos+4)
	case strings.HasPrefix(rest, "?="):
		d.groupKind = KindLookahead
		d.contentStart = pos + 3
	case strings.HasPrefix(rest, "?!"):
		d.groupKind = KindNegativeLookahead
		d.contentStart = pos + 3
	case strings.HasPrefix(rest, "?"):
		// "?:" and anything else starting with "?" captures nothing.
		d.groupKind = KindNonCapturing
		if strings.HasPrefix(rest, "?:") {
			d.contentStart = pos + 3
		} else {
			d.contentStart = pos + 2
		}
	default:
		d.groupKind = KindCapturing
		d.contentStart = pos + 1
	}
	return d, nil
}

// scanGroupName reads a group name starting at nameStart up to the
// closing '>'. pos is the offset of the group's opening parenthesis.
func scanGroupName(source string, pos, nameStart int) (delim, error) {
	end := strings.IndexByte(source[nameStart:], '>')
	if end < 0 {
		return delim{}, &FormatError{Pos: pos, Message: "unterminated group name"}
	}
	name := source[nameStart : nameStart+end]
	if name == "" {
		return delim{}, &FormatError{Pos: pos, Message: "empty group name"}
	}
	return delim{
		kind:         delimOpen,
		pos:          pos,
		groupKind:    KindNamed,
		name:         name,
		contentStart: nameStart + end + 1,
	}, nil
}
