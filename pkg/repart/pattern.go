package repart

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// UnnestPrefix is the reserved key marker in a transformation map. A
// transformation registered under UnnestPrefix+name applies to group name
// and additionally flags its result for unnesting: at extraction time the
// result is shallow-merged into the parent object instead of being stored
// under the group's own name.
const UnnestPrefix = "_"

// nestSeparator joins a nesting key to the group names it prefixes, both
// in pattern source and in transformation-map keys.
const nestSeparator = "_"

// TransformContext carries positional information into a transformation
// function.
type TransformContext struct {
	// Offset is the group's absolute rune offset from the start of the
	// top-level input, across cascading sub-pattern matches.
	Offset int

	// Name is the group being transformed ("" for a whole match).
	Name string

	// Input is the original input string, present only when the match
	// was executed with CacheInput.
	Input string
}

// TransformFunc converts a group's raw matched text into a value. A
// returned error propagates uncaught to the top-level caller, wrapped in
// a TransformError.
type TransformFunc func(raw string, ctx TransformContext) (any, error)

// GroupsHook post-processes an already-extracted object of sibling group
// values before it is nested or merged into the final result. The hook
// may return the (modified) map or replace it with any other value.
type GroupsHook func(groups map[string]any) (any, error)

// Transform is a transformation rule attached to a group name. The
// variants are closed: [Ignore], [PassThrough], [Func] and [Cascade].
// A group with no transform gets the default behavior: structured-literal
// decoding of the raw text, falling back to the raw text unchanged.
type Transform interface {
	transform()
}

type ignoreTransform struct{}

type passTransform struct{}

type funcTransform struct{ fn TransformFunc }

type cascadeTransform struct{ sub *Pattern }

func (ignoreTransform) transform()  {}
func (passTransform) transform()    {}
func (funcTransform) transform()    {}
func (cascadeTransform) transform() {}

// Ignore drops the group's value from the extracted result entirely.
func Ignore() Transform { return ignoreTransform{} }

// PassThrough keeps the group's raw text as-is, suppressing the default
// structured-literal decoding.
func PassThrough() Transform { return passTransform{} }

// Func applies fn to the group's raw text.
func Func(fn TransformFunc) Transform { return funcTransform{fn: fn} }

// Cascade re-runs the full match→parse pipeline of sub against the
// group's raw text, with all indices rebased to the group's absolute
// offset. This is how independently authored patterns compose
// hierarchically.
func Cascade(sub *Pattern) Transform { return cascadeTransform{sub: sub} }

// hook is the internal hook representation. A nil fn marks the default
// nesting-collapse hook installed by [Pattern.Nest]; it is resolved from
// its map key at extraction time so that renames keep working.
type hook struct {
	fn GroupsHook
}

// Pattern is an immutable composed matcher: regex source text, mode
// flags, a transformation map, and group hooks. All composition and
// rename operations return a new Pattern; a Pattern is never mutated
// after construction and is safe for concurrent use.
type Pattern struct {
	source     string
	flags      Flags
	transforms map[string]Transform
	hooks      map[string]hook
	timeout    time.Duration

	re    *regexp2.Regexp
	index *GroupIndex
}

// Option configures a Pattern at construction time.
type Option func(*Pattern)

// WithFlags adds mode flags to the pattern.
func WithFlags(f Flags) Option {
	return func(p *Pattern) { p.flags |= f }
}

// WithTransform registers a transformation for a group name. Prefixing
// the name with [UnnestPrefix] additionally marks the group's result for
// unnesting into the parent object.
func WithTransform(key string, t Transform) Option {
	return func(p *Pattern) { p.transforms[key] = t }
}

// WithTransforms registers several transformations at once.
func WithTransforms(m map[string]Transform) Option {
	return func(p *Pattern) {
		for k, t := range m {
			p.transforms[k] = t
		}
	}
}

// WithHook installs the pattern-level groups hook, applied to the whole
// extracted object of sibling groups.
func WithHook(h GroupsHook) Option {
	return func(p *Pattern) { p.hooks[""] = hook{fn: h} }
}

// WithGroupHook installs a groups hook scoped to one named group: it runs
// against the extracted sibling object that contains that group.
func WithGroupHook(name string, h GroupsHook) Option {
	return func(p *Pattern) { p.hooks[name] = hook{fn: h} }
}

// WithMatchTimeout bounds a single engine match attempt. Zero (the
// default) leaves matching unbounded; pathological backtracking is
// otherwise the caller's risk.
func WithMatchTimeout(d time.Duration) Option {
	return func(p *Pattern) { p.timeout = d }
}

// Compile builds a Pattern from regex source text. Structural problems in
// the source (unmatched parentheses, malformed quantifier braces) and
// engine rejections surface here, before any matching is attempted.
func Compile(source string, opts ...Option) (*Pattern, error) {
	p := &Pattern{
		source:     source,
		transforms: make(map[string]Transform),
		hooks:      make(map[string]hook),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if err := p.compile(); err != nil {
		return nil, err
	}
	return p, nil
}

// MustCompile is like Compile but panics on error. It is intended for
// package-level pattern variables with known-good sources.
func MustCompile(source string, opts ...Option) *Pattern {
	p, err := Compile(source, opts...)
	if err != nil {
		panic(fmt.Sprintf("repart: MustCompile(%q): %v", source, err))
	}
	return p
}

// compile validates the source structurally and against the engine, and
// caches the group index and compiled regex.
func (p *Pattern) compile() error {
	ix, err := BuildIndex(p.source)
	if err != nil {
		return err
	}
	re, err := regexp2.Compile(p.source, p.flags.engineOptions())
	if err != nil {
		return fmt.Errorf("engine rejected pattern: %w", err)
	}
	if p.timeout > 0 {
		re.MatchTimeout = p.timeout
	}
	p.index = ix
	p.re = re
	return nil
}

// clone copies the pattern without its compiled state. The caller mutates
// the copy and recompiles; the receiver is never changed.
func (p *Pattern) clone() *Pattern {
	c := &Pattern{
		source:     p.source,
		flags:      p.flags,
		timeout:    p.timeout,
		transforms: make(map[string]Transform, len(p.transforms)),
		hooks:      make(map[string]hook, len(p.hooks)),
	}
	for k, t := range p.transforms {
		c.transforms[k] = t
	}
	for k, h := range p.hooks {
		c.hooks[k] = h
	}
	return c
}

// With returns a new Pattern derived from p with the given options
// applied. p itself is unchanged.
func (p *Pattern) With(opts ...Option) (*Pattern, error) {
	c := p.clone()
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if err := c.compile(); err != nil {
		return nil, err
	}
	return c, nil
}

// Source returns the pattern's regex source text.
func (p *Pattern) Source() string { return p.source }

// Flags returns the pattern's mode flags.
func (p *Pattern) Flags() Flags { return p.flags }

// Index returns the pattern's group index, built at compile time.
func (p *Pattern) Index() *GroupIndex { return p.index }

// Transform returns the transformation registered under key, if any.
// The key may carry the unnest marker.
func (p *Pattern) Transform(key string) (Transform, bool) {
	t, ok := p.transforms[key]
	return t, ok
}

// String renders the pattern in /source/flags notation.
func (p *Pattern) String() string {
	return "/" + p.source + "/" + p.flags.String()
}

// lookupTransform resolves the transformation for a group name, checking
// the plain key first and the unnest-marked key second.
func (p *Pattern) lookupTransform(name string) (t Transform, unnest, ok bool) {
	if name == "" {
		return nil, false, false
	}
	if t, ok := p.transforms[name]; ok {
		return t, false, true
	}
	if t, ok := p.transforms[UnnestPrefix+name]; ok {
		return t, true, true
	}
	return nil, false, false
}
