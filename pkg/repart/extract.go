package repart

import (
	"fmt"
	"sort"
	"strings"
)

// Extract runs the full match→parse→extract pipeline and returns a plain
// structured value: a scalar, a map, a slice, or nil when the pattern
// does not match. In multi-match mode (Global flag or a MaxMatches
// option above one) the matches are extracted element-wise and the
// resulting list is collapsed by the array heuristics described on
// [CollapseList].
func (p *Pattern) Extract(input string, opts ...MatchOption) (any, error) {
	cfg := applyMatchOptions(opts)
	if cfg.multi(p) {
		nodes, err := p.ParseAll(input, opts...)
		if err != nil {
			return nil, err
		}
		values := make([]any, 0, len(nodes))
		for _, n := range nodes {
			v, err := extractRoot(n)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return CollapseList(values), nil
	}

	n, err := p.Parse(input, opts...)
	if err != nil || n == nil {
		return nil, err
	}
	return extractRoot(n)
}

// ExtractInto extracts input and stores the result in dest: under key
// when one is given, otherwise shallow-merged into dest (which requires
// the result to be an object). A non-match leaves dest untouched.
func (p *Pattern) ExtractInto(input string, dest map[string]any, key string, opts ...MatchOption) error {
	v, err := p.Extract(input, opts...)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	if key != "" {
		dest[key] = v
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot merge non-object value %T without a destination key", v)
	}
	for k, mv := range m {
		dest[k] = mv
	}
	return nil
}

// extractRoot extracts a whole parsed tree. A named root nests its value
// under its own name; an unnamed (or unnest-flagged) root yields the
// value directly, which lets a pattern with a single anonymous capture
// produce a bare scalar instead of a one-key object.
func extractRoot(n *ParsedNode) (any, error) {
	v, err := extractValue(n)
	if err != nil {
		return nil, err
	}
	if n != nil && n.Raw.Name != "" && !n.Unnest {
		return map[string]any{n.Raw.Name: v}, nil
	}
	return v, nil
}

// extractValue computes the plain value of one parsed node.
func extractValue(n *ParsedNode) (any, error) {
	if n == nil {
		return nil, nil
	}

	// Cascaded sub-pattern results extract as their own trees.
	switch parsed := n.Parsed.(type) {
	case *ParsedNode:
		return extractRoot(parsed)
	case []*ParsedNode:
		values := make([]any, 0, len(parsed))
		for _, sub := range parsed {
			v, err := extractRoot(sub)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return CollapseList(values), nil
	}

	if len(n.Children) == 0 {
		if n.Ignored {
			return nil, nil
		}
		return n.Parsed, nil
	}

	obj := make(map[string]any, len(n.Children))
	for _, name := range sortedChildNames(n.Children) {
		c := n.Children[name]
		if c.Ignored {
			continue
		}
		v, err := extractValue(c)
		if err != nil {
			return nil, err
		}
		if c.Unnest {
			if m, ok := v.(map[string]any); ok {
				for k, mv := range m {
					obj[k] = mv
				}
				continue
			}
			// Non-object unnest results have nothing to merge; they
			// keep the group's own key.
		}
		obj[name] = v
	}

	return applyHooks(n.pattern, obj)
}

// applyHooks runs the pattern's recorded groups hooks over an extracted
// sibling object. Group-scoped hooks run first, deepest nesting first,
// so that inner templated subtrees collapse before outer ones; the
// pattern-level hook runs last. A hook that replaces the object with a
// non-object value short-circuits the chain.
func applyHooks(p *Pattern, obj map[string]any) (any, error) {
	if p == nil || len(p.hooks) == 0 {
		return obj, nil
	}
	for _, key := range sortedHookKeys(p.hooks) {
		v, err := p.hooks[key].apply(key, obj)
		if err != nil {
			return nil, err
		}
		m, ok := v.(map[string]any)
		if !ok {
			return v, nil
		}
		obj = m
	}
	if root, ok := p.hooks[""]; ok && root.fn != nil {
		return root.fn(obj)
	}
	return obj, nil
}

// apply invokes the hook. The default hook (nil fn) is the nesting
// collapse installed by [Pattern.Nest], resolved from its current map
// key so it keeps working after renames.
func (h hook) apply(key string, obj map[string]any) (any, error) {
	if h.fn != nil {
		return h.fn(obj)
	}
	collapseNested(key, obj)
	return obj, nil
}

// collapseNested folds keys prefixed with name plus the separator into
// the entry under name itself: a single inner field collapses to its
// bare value, several inner fields become a nested object.
func collapseNested(name string, obj map[string]any) {
	prefix := name + nestSeparator
	inner := make(map[string]any)
	for k, v := range obj {
		if strings.HasPrefix(k, prefix) && len(k) > len(prefix) {
			inner[k[len(prefix):]] = v
			delete(obj, k)
		}
	}
	switch len(inner) {
	case 0:
	case 1:
		for _, v := range inner {
			obj[name] = v
		}
	default:
		obj[name] = inner
	}
}

// sortedHookKeys orders group-scoped hook keys deepest first (by
// separator count, then length, then lexicographically) and excludes the
// pattern-level "" key, which applyHooks runs last.
func sortedHookKeys(hooks map[string]hook) []string {
	keys := make([]string, 0, len(hooks))
	for k := range hooks {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		di, dj := strings.Count(keys[i], nestSeparator), strings.Count(keys[j], nestSeparator)
		if di != dj {
			return di > dj
		}
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

func sortedChildNames(children map[string]*ParsedNode) []string {
	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CollapseList applies the array-collapsing heuristics to a list of
// extracted values, in precedence order:
//
//  1. Every element is a single-field object sharing the same field
//     name: collapse to the list of field values.
//  2. Every element has exactly the two fields "key" and "value":
//     collapse to one object mapping key to value, later keys winning.
//  3. Every element has a "key" field (plus possibly others): collapse
//     to one object mapping each key to its whole element.
//  4. Otherwise the list is returned unchanged.
//
// The heuristics apply unconditionally to multi-match extraction
// results.
func CollapseList(values []any) any {
	if len(values) == 0 {
		return []any{}
	}

	if name, ok := commonSingleField(values); ok {
		out := make([]any, len(values))
		for i, v := range values {
			out[i] = v.(map[string]any)[name]
		}
		return out
	}

	if allKeyValuePairs(values) {
		out := make(map[string]any, len(values))
		for _, v := range values {
			m := v.(map[string]any)
			out[stringifyKey(m["key"])] = m["value"]
		}
		return out
	}

	if allHaveKeyField(values) {
		out := make(map[string]any, len(values))
		for _, v := range values {
			m := v.(map[string]any)
			out[stringifyKey(m["key"])] = m
		}
		return out
	}

	return values
}

// commonSingleField reports the field name shared by every element when
// all elements are single-field objects with that same field.
func commonSingleField(values []any) (string, bool) {
	name := ""
	for i, v := range values {
		m, ok := v.(map[string]any)
		if !ok || len(m) != 1 {
			return "", false
		}
		for k := range m {
			if i == 0 {
				name = k
			} else if k != name {
				return "", false
			}
		}
	}
	return name, true
}

func allKeyValuePairs(values []any) bool {
	for _, v := range values {
		m, ok := v.(map[string]any)
		if !ok || len(m) != 2 {
			return false
		}
		if _, ok := m["key"]; !ok {
			return false
		}
		if _, ok := m["value"]; !ok {
			return false
		}
	}
	return true
}

func allHaveKeyField(values []any) bool {
	for _, v := range values {
		m, ok := v.(map[string]any)
		if !ok {
			return false
		}
		if _, ok := m["key"]; !ok {
			return false
		}
	}
	return true
}

func stringifyKey(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
