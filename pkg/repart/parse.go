package repart

import (
	"encoding/json"
	"strings"
)

// ParsedNode is one node of a parsed match tree: the raw match plus the
// resolved value of its transformation. Like RawMatch, parsed trees are
// ephemeral; they exist for the duration of one parse call.
type ParsedNode struct {
	// Raw is the match node this parse result was resolved from.
	Raw *RawMatch

	// Parsed is the node's resolved value. For a Cascade transformation
	// it holds the nested *ParsedNode (or []*ParsedNode when the
	// sub-pattern is in Global mode) in place of a scalar.
	Parsed any

	// Children holds the parsed child groups, keyed by group name.
	Children map[string]*ParsedNode

	// Unnest marks a node whose transformation was registered under the
	// unnest key: extraction merges its result into the parent object
	// instead of nesting it under the group's name.
	Unnest bool

	// Ignored marks a node whose transformation is Ignore; extraction
	// drops it.
	Ignored bool

	// pattern is the Pattern whose transformation map resolved this
	// node. The extractor consults it for recorded groups hooks.
	pattern *Pattern
}

// Parse matches the pattern against input and resolves the raw match
// into a parsed tree. Returns nil (and no error) when the pattern does
// not match.
func (p *Pattern) Parse(input string, opts ...MatchOption) (*ParsedNode, error) {
	m, err := p.Match(input, opts...)
	if err != nil || m == nil {
		return nil, err
	}
	return p.Resolve(m)
}

// ParseAll matches the pattern in multi-match mode and resolves every
// match element-wise.
func (p *Pattern) ParseAll(input string, opts ...MatchOption) ([]*ParsedNode, error) {
	ms, err := p.MatchAll(input, opts...)
	if err != nil {
		return nil, err
	}
	nodes := make([]*ParsedNode, 0, len(ms))
	for _, m := range ms {
		n, err := p.Resolve(m)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// Resolve walks a raw match tree top-down, applying the pattern's
// transformation map to every node. Resolve does not run the groups
// hooks; they are recorded on the tree and invoked by extraction.
func (p *Pattern) Resolve(m *RawMatch) (*ParsedNode, error) {
	if m == nil {
		return nil, nil
	}
	n := &ParsedNode{Raw: m, pattern: p}

	t, unnest, ok := p.lookupTransform(m.Name)
	n.Unnest = unnest
	switch {
	case !ok:
		n.Parsed = decodeLiteral(m.Text)
	default:
		if err := n.applyTransform(t); err != nil {
			return nil, err
		}
	}

	for name, child := range m.Groups {
		cn, err := p.Resolve(child)
		if err != nil {
			return nil, err
		}
		if n.Children == nil {
			n.Children = make(map[string]*ParsedNode, len(m.Groups))
		}
		n.Children[name] = cn
	}
	return n, nil
}

// applyTransform resolves one transformation variant against the node's
// raw text.
func (n *ParsedNode) applyTransform(t Transform) error {
	m := n.Raw
	switch t := t.(type) {
	case ignoreTransform:
		n.Ignored = true
	case passTransform:
		n.Parsed = m.Text
	case funcTransform:
		v, err := t.fn(m.Text, TransformContext{Offset: m.Offset, Name: m.Name, Input: m.Input})
		if err != nil {
			return &TransformError{Group: m.Name, Err: err}
		}
		n.Parsed = v
	case cascadeTransform:
		// Re-run match→parse of the sub-pattern against this node's raw
		// text, rebasing all indices to the node's absolute start.
		opts := []MatchOption{Offset(m.Offset)}
		if m.Input != "" {
			opts = append(opts, CacheInput())
		}
		if t.sub.flags.Has(Global) {
			nodes, err := t.sub.ParseAll(m.Text, opts...)
			if err != nil {
				return err
			}
			n.Parsed = nodes
		} else {
			node, err := t.sub.Parse(m.Text, opts...)
			if err != nil {
				return err
			}
			if node != nil {
				n.Parsed = node
			}
		}
	}
	return nil
}

// decodeLiteral is the default transformation: structured text (JSON
// objects, arrays and quoted strings) is decoded, everything else is
// kept as the raw text. Bare words and digits deliberately stay strings;
// converting them is the job of an explicit transformation.
func decodeLiteral(raw string) any {
	t := strings.TrimSpace(raw)
	if t == "" {
		return raw
	}
	switch t[0] {
	case '{', '[', '"':
		var v any
		if err := json.Unmarshal([]byte(t), &v); err == nil {
			return v
		}
	}
	return raw
}
