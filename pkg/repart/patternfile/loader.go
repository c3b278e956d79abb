package patternfile

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/modularizer/repart-go/internal/safeio"
	"github.com/modularizer/repart-go/pkg/repart"
	"github.com/modularizer/repart-go/pkg/repart/patterns"
)

const (
	// MaxFileSize is the maximum allowed size for a pattern file (1MB).
	MaxFileSize = 1 * 1024 * 1024

	// MaxPatternLength is the maximum allowed length for a pattern
	// source (512 bytes). This limit helps mitigate ReDoS attacks via
	// excessively complex patterns.
	MaxPatternLength = 512

	// MaxPatternCount is the maximum number of patterns in one file.
	MaxPatternCount = 1000

	// SupportedVersion is the currently supported file format version.
	SupportedVersion = 1
)

// Load reads and parses a pattern file from the given path. The file
// must be a regular file within the size limit; errors are sanitized so
// they do not leak file system paths.
//
// Example:
//
//	pf, err := patternfile.Load("patterns.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ps, err := pf.Compile()
func Load(path string) (*File, error) {
	data, err := safeio.ReadLimited(path, MaxFileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses a pattern file from a byte slice.
func LoadBytes(data []byte) (*File, error) {
	if len(data) == 0 {
		return nil, errors.New("pattern file is empty")
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("pattern file too large: %d bytes (max %d)", len(data), MaxFileSize)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate performs schema-level validation: version, required fields,
// unique IDs, size limits, and known transformation names. It does not
// compile the patterns; that happens in [File.Compile].
func (f *File) Validate() error {
	if f.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", f.Version, SupportedVersion),
		}
	}
	if len(f.Patterns) == 0 {
		return &ValidationError{
			Field:   "patterns",
			Message: "at least one pattern is required",
		}
	}
	if len(f.Patterns) > MaxPatternCount {
		return &ValidationError{
			Field:   "patterns",
			Message: fmt.Sprintf("too many patterns (%d), maximum allowed is %d", len(f.Patterns), MaxPatternCount),
		}
	}

	seenIDs := make(map[string]int, len(f.Patterns))
	for i, e := range f.Patterns {
		if e.ID == "" {
			return &EntryError{Index: i, Field: "id", Message: "id is required"}
		}
		if e.Regex == "" {
			return &EntryError{Index: i, ID: e.ID, Field: "regex", Message: "regex is required"}
		}
		if len(e.Regex) > MaxPatternLength {
			return &EntryError{
				Index: i, ID: e.ID, Field: "regex",
				Message: fmt.Sprintf("pattern too long: %d bytes (max %d)", len(e.Regex), MaxPatternLength),
			}
		}
		if prev, exists := seenIDs[e.ID]; exists {
			return &EntryError{
				Index: i, ID: e.ID, Field: "id",
				Message: fmt.Sprintf("duplicate id (previously defined at pattern[%d])", prev),
			}
		}
		seenIDs[e.ID] = i

		if _, err := repart.ParseFlags(e.Flags); err != nil {
			return &EntryError{Index: i, ID: e.ID, Field: "flags", Message: err.Error(), Cause: err}
		}
		for key, name := range e.Transforms {
			if key == "" {
				return &EntryError{Index: i, ID: e.ID, Field: "transforms", Message: "empty transform key"}
			}
			if _, ok := namedTransforms[name]; !ok {
				return &EntryError{
					Index: i, ID: e.ID, Field: "transforms",
					Message: fmt.Sprintf("unknown transformation %q for group %q", name, key),
				}
			}
		}
	}
	return nil
}

// Compile builds every entry into a Pattern, keyed by entry ID.
func (f *File) Compile() (map[string]*repart.Pattern, error) {
	out := make(map[string]*repart.Pattern, len(f.Patterns))
	for i, e := range f.Patterns {
		p, err := e.Compile()
		if err != nil {
			return nil, &EntryError{
				Index: i, ID: e.ID, Field: "regex",
				Message: "invalid pattern", Cause: err,
			}
		}
		out[e.ID] = p
	}
	return out, nil
}

// Compile builds a single entry into a Pattern.
func (e *Entry) Compile() (*repart.Pattern, error) {
	flags, err := repart.ParseFlags(e.Flags)
	if err != nil {
		return nil, err
	}
	opts := []repart.Option{repart.WithFlags(flags)}
	for key, name := range e.Transforms {
		t, ok := namedTransforms[name]
		if !ok {
			return nil, fmt.Errorf("unknown transformation %q for group %q", name, key)
		}
		opts = append(opts, repart.WithTransform(key, t))
	}
	return repart.Compile(e.Regex, opts...)
}

// namedTransforms maps the transformation names available in pattern
// files to their implementations.
var namedTransforms = map[string]repart.Transform{
	"int":    repart.Func(patterns.ToInt),
	"float":  repart.Func(patterns.ToFloat),
	"bool":   repart.Func(patterns.ToBool),
	"trim":   repart.Func(patterns.Trim),
	"lower":  repart.Func(patterns.Lower),
	"upper":  repart.Func(patterns.Upper),
	"json":   repart.Func(decodeJSON),
	"pass":   repart.PassThrough(),
	"ignore": repart.Ignore(),
}

func decodeJSON(raw string, _ repart.TransformContext) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}
