package repart

import "fmt"

// StructureError reports an unmatched group delimiter found while scanning
// a pattern's source text. A pattern with a structure error cannot be used.
type StructureError struct {
	Pos     int // byte offset of the offending delimiter
	Message string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("pattern structure error at %d: %s", e.Pos, e.Message)
}

// FormatError reports malformed group syntax, such as a brace quantifier
// missing its closing brace or an unterminated group name.
type FormatError struct {
	Pos     int
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("pattern format error at %d: %s", e.Pos, e.Message)
}

// NameError reports a duplicate, reserved, or invalid group name during a
// rename or compose operation. Name errors surface at construction time,
// before any matching is attempted.
type NameError struct {
	Name    string
	Message string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("group name %q: %s", e.Name, e.Message)
}

// TransformError wraps an error returned by a caller-supplied
// transformation function. It is not handled anywhere in the pipeline and
// propagates to the top-level caller.
type TransformError struct {
	Group string // name of the group whose transformation failed
	Err   error
}

func (e *TransformError) Error() string {
	if e.Group == "" {
		return fmt.Sprintf("transformation failed: %v", e.Err)
	}
	return fmt.Sprintf("transformation of group %q failed: %v", e.Group, e.Err)
}

// Unwrap returns the underlying transformation error.
// This enables errors.Is() and errors.As() to work with TransformError.
func (e *TransformError) Unwrap() error {
	return e.Err
}
