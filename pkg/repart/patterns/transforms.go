package patterns

import (
	"strconv"
	"strings"

	"github.com/modularizer/repart-go/pkg/repart"
)

// ToInt parses the raw text as a base-10 integer.
func ToInt(raw string, _ repart.TransformContext) (any, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}

// ToFloat parses the raw text as a floating-point number.
func ToFloat(raw string, _ repart.TransformContext) (any, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

// ToBool parses the raw text as a boolean.
func ToBool(raw string, _ repart.TransformContext) (any, error) {
	return strconv.ParseBool(strings.TrimSpace(raw))
}

// Trim strips surrounding whitespace from the raw text.
func Trim(raw string, _ repart.TransformContext) (any, error) {
	return strings.TrimSpace(raw), nil
}

// Lower lowercases the raw text.
func Lower(raw string, _ repart.TransformContext) (any, error) {
	return strings.ToLower(raw), nil
}

// Upper uppercases the raw text.
func Upper(raw string, _ repart.TransformContext) (any, error) {
	return strings.ToUpper(raw), nil
}
