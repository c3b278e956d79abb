package patterns

import "github.com/modularizer/repart-go/pkg/repart"

// Markdown structural markers. All line-anchored patterns carry the
// Multiline flag so they match inside whole documents.

// Heading matches an ATX heading; the "level" group is transformed to
// its numeric depth.
var Heading = repart.MustCompile(
	`^(?<level>#{1,6})[ \t]+(?<heading>.+?)[ \t]*$`,
	repart.WithFlags(repart.Multiline),
	repart.WithTransform("level", repart.Func(headingLevel)),
)

func headingLevel(raw string, _ repart.TransformContext) (any, error) {
	return len(raw), nil
}

// Link matches an inline markdown link.
var Link = repart.MustCompile(
	`\[(?<text>[^\]]*)\]\((?<href>[^\)]*)\)`,
)

// Bold matches **strong** emphasis.
var Bold = repart.MustCompile(
	`\*\*(?<bold>[^*]+)\*\*`,
)

// ListItem matches one bullet list item; "indent" keeps the leading
// whitespace so callers can reconstruct nesting depth.
var ListItem = repart.MustCompile(
	`^(?<indent>[ \t]*)[-*+][ \t]+(?<item>.+)$`,
	repart.WithFlags(repart.Multiline),
)
