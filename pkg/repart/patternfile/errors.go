package patternfile

import "fmt"

// ValidationError represents a schema-level validation error: the file
// as a whole violates structural requirements (wrong version, no
// patterns, too many patterns).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// EntryError represents an error specific to an individual pattern
// entry (missing fields, duplicate ID, a regex that fails to compile,
// an unknown transformation name).
type EntryError struct {
	Index   int    // 0-based index of the entry in the file
	ID      string // entry ID (may be empty if the id field is missing)
	Field   string
	Message string
	Cause   error
}

func (e *EntryError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("pattern %q: %s: %s", e.ID, e.Field, e.Message)
	}
	return fmt.Sprintf("pattern[%d]: %s: %s", e.Index, e.Field, e.Message)
}

// Unwrap returns the underlying cause of the error.
// This enables errors.Is() and errors.As() to work with EntryError.
func (e *EntryError) Unwrap() error {
	return e.Cause
}
