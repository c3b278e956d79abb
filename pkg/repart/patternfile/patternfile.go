// Package patternfile loads pattern definitions from YAML files, so
// extraction rules can be configured without code.
package patternfile

// File represents the structure of a YAML pattern file.
//
// Example YAML file:
//
//	version: 1
//	patterns:
//	  - id: user_line
//	    regex: 'name: (?<name>\w+), age: (?<age>\d+)'
//	    transforms:
//	      age: int
//	  - id: words
//	    regex: '(?<word>\w+)'
//	    flags: g
type File struct {
	// Version is the pattern file format version. Currently only
	// version 1 is supported.
	Version int `yaml:"version"`

	// Patterns is the list of pattern definitions.
	Patterns []Entry `yaml:"patterns"`
}

// Entry is a single pattern definition. The regex may contain named
// capture groups (?<name>...), whose values appear in the extracted
// result; the transforms map attaches a named transformation to a group.
type Entry struct {
	// ID is a unique identifier for this pattern within the file.
	ID string `yaml:"id"`

	// Regex is the pattern source text.
	Regex string `yaml:"regex"`

	// Flags is an optional flag string (e.g. "gi").
	Flags string `yaml:"flags"`

	// Transforms maps a group name to one of the named transformations:
	// int, float, bool, json, trim, lower, upper, pass, ignore. A key
	// prefixed with an underscore marks the group's result for
	// unnesting into the parent object.
	Transforms map[string]string `yaml:"transforms"`
}
