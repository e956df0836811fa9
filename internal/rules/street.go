package rules

import (
	"regexp"
	"slices"

	"github.com/dlclark/regexp2"
)

// Tag keys the normalizer rewrites.
const (
	KeyStreet   = "addr:street"
	KeyPostcode = "addr:postcode"

	AddressPrefix = "addr:"
)

// StreetTypePattern finds abbreviated street types. The last match in a
// street name is taken as its type.
var StreetTypePattern = regexp.MustCompile(
	`(?i)\b(?:st|av|ave|blvd|dr|ct|pl|square|ln|rd|trl|pkwy|cir|fwy|hwy|plz)\b\.?`)

// StreetTypes maps lower-cased abbreviations, without a trailing dot, to the
// full street type.
var StreetTypes = map[string]string{
	"st":   "Street",
	"av":   "Avenue",
	"ave":  "Avenue",
	"blvd": "Boulevard",
	"dr":   "Drive",
	"ct":   "Court",
	"pl":   "Place",
	"rd":   "Road",
	"trl":  "Trail",
	"pkwy": "Parkway",
	"ln":   "Lane",
	"cir":  "Circle",
	"fwy":  "Freeway",
	"hwy":  "Highway",
	"plz":  "Plaza",
}

// ExpectedStreetTypes are the full street types the audit accepts as a last word.
var ExpectedStreetTypes = []string{
	"Street", "Avenue", "Boulevard", "Drive", "Court", "Place",
	"Square", "Lane", "Road", "Trail", "Parkway", "Circle",
	"Freeway", "Highway", "Plaza", "Tollway", "Turnpike",
}

// DirectionRule rewrites one compass direction to its full word.
type DirectionRule struct {
	Name    string
	Pattern *regexp2.Regexp
}

// The lookbehind keeps names like "Green's Court" and "Post-N-Paddock" intact.
func direction(name, abbr string) DirectionRule {
	return DirectionRule{
		Name:    name,
		Pattern: regexp2.MustCompile(`(?<!['.\-])\b(?:`+abbr+`|`+name+`)\b\.?`, regexp2.IgnoreCase),
	}
}

// Directions are applied in this order.
var Directions = []DirectionRule{
	direction("North", "N"),
	direction("South", "S"),
	direction("West", "W"),
	direction("East", "E"),
	direction("Northwest", "NW"),
	direction("Northeast", "NE"),
	direction("Southwest", "SW"),
	direction("Southeast", "SE"),
}

// DirectionExemptions are names containing a letter that looks like a
// direction abbreviation. Street names containing one are left alone.
var DirectionExemptions = []string{
	"Avenue N",
	"John W. Elliott",
	"John W Carpenter",
}

// SuitePattern matches "#", "suite" or "ste", optionally followed by "#", with
// an optional leading comma and surrounding whitespace.
var SuitePattern = regexp.MustCompile(`(?i),?\s*(?:#|\b(?:suite|ste)\b\.?)(?:\s*#)?\s*`)

// SuiteReplacement is the canonical suite token.
const SuiteReplacement = " Suite "

// Rewrite is a named pattern replacement.
type Rewrite struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// NumberedRoads canonicalize highway names carrying a number. Order matters.
var NumberedRoads = []Rewrite{
	{
		Name:        "county road",
		Pattern:     regexp.MustCompile(`(?i)\bCR\b`),
		Replacement: "County Road",
	},
	{
		Name:        "farm to market",
		Pattern:     regexp.MustCompile(`(?i)\b(?:Farm[- ]to[- ]Market(?:\s+Road|\s+Rd\.?)?|F\.M\.|FM\b)`),
		Replacement: "FM",
	},
	{
		Name:        "state highway 121",
		Pattern:     regexp.MustCompile(`(?i)\b(?:State\s+(?:Hwy|Highway)|Highway|Hwy|SH)\s+121\b`),
		Replacement: "TX 121",
	},
	{
		Name:        "interstate",
		Pattern:     regexp.MustCompile(`\b(?:Interstate Highway|Interstate|I)[- ](\d+)`),
		Replacement: "I${1}",
	},
}

// PostcodePattern is a five digit ZIP code with an optional ZIP+4 suffix.
var PostcodePattern = regexp.MustCompile(`\d{5}(?:-\d{4})?`)

// ProblemChars matches tag keys that cannot be used as document keys.
var ProblemChars = regexp.MustCompile(`[=+/&<>;'"?%#$@,. \t\r\n]`)

// Provenance lists element attributes grouped under "created".
var Provenance = []string{"version", "changeset", "timestamp", "user", "uid"}

// IsProvenance reports whether name is a provenance attribute.
func IsProvenance(name string) bool {
	return slices.Contains(Provenance, name)
}
