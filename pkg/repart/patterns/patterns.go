// Package patterns is a library of prebuilt domain patterns: email and
// phone matching, postal codes, locale-aware numerics, and markdown
// structural markers. Every pattern is an ordinary [repart.Pattern] and
// composes with user patterns through repart.Sub, As and Nest.
//
// Parentheses inside character classes are escaped throughout; the
// composer's source scanner does not interpret classes, so a bare
// parenthesis inside one would make the pattern uncomposable.
package patterns

import "github.com/modularizer/repart-go/pkg/repart"

// Email matches an RFC-ish email address, exposing the user and domain
// halves alongside the whole address.
var Email = repart.MustCompile(
	`(?<email>(?<user>[\w.%+-]+)@(?<domain>[\w-]+(?:\.[\w-]+)+))`,
)

// Phone matches North American phone numbers in common spellings
// (555-867-5309, (555) 867-5309, +1 555.867.5309).
var Phone = repart.MustCompile(
	`(?<phone>(?:\+?(?<country>\d{1,3})[\s.-])?\(?(?<area>\d{3})\)?[\s.-]?(?<exchange>\d{3})[\s.-]?(?<line>\d{4}))`,
)

// ZipCode matches a US ZIP or ZIP+4 code.
var ZipCode = repart.MustCompile(
	`(?<zip>(?<zip5>\d{5})(?:-(?<plus4>\d{4}))?)`,
)

// UKPostcode matches a UK postcode, splitting outward and inward codes.
var UKPostcode = repart.MustCompile(
	`(?<postcode>(?<outward>[A-Za-z]{1,2}\d[A-Za-z\d]?)\s*(?<inward>\d[A-Za-z]{2}))`,
)

// KeyValue matches "key: value" and "key=value" entries in multi-match
// mode. Extracting it over a whole input collapses the matches into one
// object by the key/value heuristic.
var KeyValue = repart.MustCompile(
	`(?<key>[\w.-]+)\s*[=:]\s*(?<value>[^\s,;][^,;\r\n]*)`,
	repart.WithFlags(repart.Global),
)
