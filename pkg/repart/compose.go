package repart

import (
	"strings"
)

// reservedNames are group names that would collide with result-object
// properties and therefore cannot be introduced by rename or nesting.
var reservedNames = map[string]struct{}{
	"groups":    {},
	"parsed":    {},
	"extracted": {},
	"input":     {},
	"index":     {},
	"offset":    {},
}

// Fragment is one element of a pattern composition: either literal
// pattern text or an embedded sub-pattern.
type Fragment interface {
	fragment()
}

type textFragment struct{ text string }

type subFragment struct{ sub *Pattern }

func (textFragment) fragment() {}
func (subFragment) fragment()  {}

// Text is a literal pattern-source fragment.
func Text(s string) Fragment { return textFragment{text: s} }

// Sub embeds a sub-pattern, carrying its flags, transformations and
// hooks into the composition.
func Sub(p *Pattern) Fragment { return subFragment{sub: p} }

// Compose joins fragments left-to-right into one Pattern. Flags are
// unioned across sub-patterns, and transformation maps and hooks are
// merged with later entries winning on key collision. A Unicode flag is
// added automatically when any fragment contains non-ASCII text, a
// Unicode property escape, or a code-point escape above the ASCII range.
func Compose(frags ...Fragment) (*Pattern, error) {
	var b strings.Builder
	p := &Pattern{
		transforms: make(map[string]Transform),
		hooks:      make(map[string]hook),
	}
	for _, f := range frags {
		switch f := f.(type) {
		case textFragment:
			b.WriteString(f.text)
		case subFragment:
			if f.sub == nil {
				continue
			}
			b.WriteString(f.sub.source)
			p.flags |= f.sub.flags
			for k, t := range f.sub.transforms {
				p.transforms[k] = t
			}
			for k, h := range f.sub.hooks {
				p.hooks[k] = h
			}
			if f.sub.timeout > p.timeout {
				p.timeout = f.sub.timeout
			}
		}
	}
	p.source = b.String()
	if needsUnicode(p.source) {
		p.flags |= Unicode
	}
	if err := p.compile(); err != nil {
		return nil, err
	}
	return p, nil
}

// MustCompose is like Compose but panics on error.
func MustCompose(frags ...Fragment) *Pattern {
	p, err := Compose(frags...)
	if err != nil {
		panic("repart: MustCompose: " + err.Error())
	}
	return p
}

// As binds the whole pattern to a new group name. If the pattern is
// exactly one top-level named group spanning its entire source, only that
// group is renamed (nested groups carrying the old name as a prefix are
// renamed along with it); otherwise the whole source is wrapped in a new
// named group. Transformation-map keys and hooks built from the old name
// are rekeyed, preserving unnest markers and nested-key suffixes.
func (p *Pattern) As(newName string) (*Pattern, error) {
	if err := validateName(newName); err != nil {
		return nil, err
	}

	c := p.clone()
	whole, isRename := p.wholeSourceNamedGroup()
	oldName := whole.Name

	for _, g := range p.index.Named() {
		if g.Name != newName {
			continue
		}
		if isRename && g.Start == whole.Start {
			continue // renaming a group to its current name
		}
		return nil, &NameError{Name: newName, Message: "name already exists in pattern"}
	}

	if isRename {
		c.source = renameGroups(p.source, p.index, func(n string) string {
			return rekeyName(n, oldName, newName)
		})
		c.transforms = make(map[string]Transform, len(p.transforms))
		for k, t := range p.transforms {
			c.transforms[rekeyTransformKey(k, oldName, newName)] = t
		}
		c.hooks = make(map[string]hook, len(p.hooks))
		for k, h := range p.hooks {
			c.hooks[rekeyName(k, oldName, newName)] = h
		}
	} else {
		c.source = "(?<" + newName + ">" + p.source + ")"
	}

	if err := c.compile(); err != nil {
		return nil, err
	}
	return c, nil
}

// Nest embeds the pattern under a fresh key: every named group inside is
// prefixed with newName plus a separator (transformation keys and hooks
// are rewritten identically), and the whole source is wrapped in a group
// named newName. Unless the caller supplies a hook, a default groups
// hook is installed that collapses the nested object down to its single
// inner value when the parent extractor reaches it. The embedded
// pattern's own pattern-level hook, if any, does not survive nesting.
func (p *Pattern) Nest(newName string, hooks ...GroupsHook) (*Pattern, error) {
	if err := validateName(newName); err != nil {
		return nil, err
	}

	c := p.clone()
	prefix := newName + nestSeparator
	inner := renameGroups(p.source, p.index, func(n string) string { return prefix + n })
	c.source = "(?<" + newName + ">" + inner + ")"

	c.transforms = make(map[string]Transform, len(p.transforms))
	for k, t := range p.transforms {
		if rest, ok := strings.CutPrefix(k, UnnestPrefix); ok {
			c.transforms[UnnestPrefix+prefix+rest] = t
		} else {
			c.transforms[prefix+k] = t
		}
	}

	c.hooks = make(map[string]hook, len(p.hooks)+1)
	for k, h := range p.hooks {
		if k == "" {
			continue
		}
		c.hooks[prefix+k] = h
	}
	if len(hooks) > 0 && hooks[0] != nil {
		c.hooks[newName] = hook{fn: hooks[0]}
	} else {
		c.hooks[newName] = hook{} // default collapse, resolved from the key
	}

	if err := c.compile(); err != nil {
		return nil, err
	}
	return c, nil
}

// wholeSourceNamedGroup reports whether the pattern source is exactly one
// top-level named group spanning the entire source, returning that group.
func (p *Pattern) wholeSourceNamedGroup() (GroupDescriptor, bool) {
	for _, g := range p.index.Named() {
		if len(g.Parents) == 0 && g.Start == 0 && g.QuantifiedEnd == len(p.source) {
			return g, true
		}
	}
	return GroupDescriptor{}, false
}

// rekeyName maps a group name (or hook key) from the old naming to the
// new one: the name itself and any nested name carrying it as a prefix.
func rekeyName(n, old, new string) string {
	if n == old {
		return new
	}
	if strings.HasPrefix(n, old+nestSeparator) {
		return new + n[len(old):]
	}
	return n
}

// rekeyTransformKey is rekeyName extended to transformation-map keys,
// which may carry the unnest marker in front of the group name.
func rekeyTransformKey(k, old, new string) string {
	if rest, ok := strings.CutPrefix(k, UnnestPrefix); ok {
		renamed := rekeyName(rest, old, new)
		if renamed != rest {
			return UnnestPrefix + renamed
		}
		return k
	}
	return rekeyName(k, old, new)
}

// renameGroups rewrites the name of every named group in source through
// rename, leaving everything else untouched. Name spans never overlap,
// so a single left-to-right splice suffices.
func renameGroups(source string, ix *GroupIndex, rename func(string) string) string {
	var b strings.Builder
	last := 0
	for _, g := range ix.Named() {
		nameEnd := g.ContentStart - 1 // offset of '>'
		nameStart := nameEnd - len(g.Name)
		newName := rename(g.Name)
		if newName == g.Name {
			continue
		}
		b.WriteString(source[last:nameStart])
		b.WriteString(newName)
		last = nameEnd
	}
	if last == 0 {
		return source
	}
	b.WriteString(source[last:])
	return b.String()
}

// validateName rejects empty, malformed, and reserved group names.
func validateName(name string) error {
	if name == "" {
		return &NameError{Name: name, Message: "name must not be empty"}
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return &NameError{Name: name, Message: "name must not start with a digit"}
			}
		default:
			return &NameError{Name: name, Message: "name may contain only letters, digits and underscores"}
		}
	}
	if _, ok := reservedNames[name]; ok {
		return &NameError{Name: name, Message: "name is reserved"}
	}
	return nil
}

// needsUnicode reports whether pattern source requires Unicode mode:
// non-ASCII text, a Unicode property escape, or a code-point escape
// above the ASCII range.
func needsUnicode(source string) bool {
	for i := 0; i < len(source); i++ {
		c := source[i]
		if c >= 0x80 {
			return true
		}
		if c != '\\' || i+1 >= len(source) {
			continue
		}
		switch source[i+1] {
		case 'p', 'P':
			if i+2 < len(source) && source[i+2] == '{' {
				return true
			}
		case 'u':
			if escapeAboveASCII(source[i+2:], 4) {
				return true
			}
		case 'x':
			if escapeAboveASCII(source[i+2:], 2) {
				return true
			}
		}
		i++ // skip the escaped character
	}
	return false
}

// escapeAboveASCII reports whether a hex escape body (either "{...}" or
// exactly width digits) encodes a code point above 0x7F.
func escapeAboveASCII(s string, width int) bool {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return false
		}
		return hexAbove7F(s[1:end])
	}
	if len(s) < width {
		return false
	}
	return hexAbove7F(s[:width])
}

func hexAbove7F(digits string) bool {
	v := 0
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		switch {
		case c >= '0' && c <= '9':
			v = v<<4 | int(c-'0')
		case c >= 'a' && c <= 'f':
			v = v<<4 | int(c-'a'+10)
		case c >= 'A' && c <= 'F':
			v = v<<4 | int(c-'A'+10)
		default:
			return false
		}
		if v > 0x7F {
			return true
		}
	}
	return false
}
