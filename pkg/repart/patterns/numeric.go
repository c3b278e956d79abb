package patterns

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/modularizer/repart-go/pkg/repart"
)

// numericLocale describes how a locale writes grouped numbers.
type numericLocale struct {
	group   string // thousands separator
	decimal string // decimal separator
}

var numericLocales = map[string]numericLocale{
	"en": {group: ",", decimal: "."},
	"eu": {group: ".", decimal: ","},
	"ch": {group: "'", decimal: "."},
}

// Locales lists the supported numeric locale codes.
func Locales() []string {
	return []string{"ch", "en", "eu"}
}

// Integer returns a pattern matching a whole number in the given locale,
// with or without grouping separators (en: 1,234,567). The "integer"
// group carries a transformation to int.
func Integer(locale string) (*repart.Pattern, error) {
	loc, ok := numericLocales[locale]
	if !ok {
		return nil, fmt.Errorf("unknown numeric locale %q", locale)
	}
	src := fmt.Sprintf(`(?<integer>-?\d{1,3}(?:%s\d{3})+|-?\d+)`, escapeSeparator(loc.group))
	return repart.Compile(src, repart.WithTransform("integer", repart.Func(parseGrouped(loc, false))))
}

// Decimal returns a pattern matching a decimal number in the given
// locale (en: 1,234.56 / eu: 1.234,56). The "decimal" group carries a
// transformation to float64.
func Decimal(locale string) (*repart.Pattern, error) {
	loc, ok := numericLocales[locale]
	if !ok {
		return nil, fmt.Errorf("unknown numeric locale %q", locale)
	}
	src := fmt.Sprintf(
		`(?<decimal>-?\d{1,3}(?:%[1]s\d{3})*(?:%[2]s\d+)?)`,
		escapeSeparator(loc.group), escapeSeparator(loc.decimal),
	)
	return repart.Compile(src, repart.WithTransform("decimal", repart.Func(parseGrouped(loc, true))))
}

// parseGrouped builds a transformation that strips grouping separators,
// normalizes the decimal separator, and parses the number.
func parseGrouped(loc numericLocale, float bool) repart.TransformFunc {
	return func(raw string, _ repart.TransformContext) (any, error) {
		s := strings.ReplaceAll(raw, loc.group, "")
		s = strings.Replace(s, loc.decimal, ".", 1)
		if float {
			return strconv.ParseFloat(s, 64)
		}
		return strconv.Atoi(s)
	}
}

// escapeSeparator escapes separators that are regex metacharacters.
func escapeSeparator(sep string) string {
	if sep == "." {
		return `\.`
	}
	return sep
}
