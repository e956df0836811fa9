package normalizer

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"

	"osmclean/internal/rules"
)

// Transformer rewrites street names into a consistent form.
type Transformer struct {
	typePattern *regexp.Regexp
	types       map[string]string
	directions  []rules.DirectionRule
	exemptions  []string
	suite       *regexp.Regexp
	roads       []rules.Rewrite
}

// NewTransformer creates a transformer over the built-in street tables.
func NewTransformer() *Transformer {
	return &Transformer{
		typePattern: rules.StreetTypePattern,
		types:       rules.StreetTypes,
		directions:  rules.Directions,
		exemptions:  rules.DirectionExemptions,
		suite:       rules.SuitePattern,
		roads:       rules.NumberedRoads,
	}
}

// Street applies type, direction, suite and numbered-road rewrites in that
// order. Canonical names come back unchanged.
func (t *Transformer) Street(name string) string {
	name = t.expandType(name)
	name = t.expandDirection(name)
	name = t.normalizeSuite(name)
	name = t.normalizeNumberedRoad(name)

	return name
}

// expandType replaces the last abbreviated street type, e.g. "Rd." => "Road".
func (t *Transformer) expandType(name string) string {
	matches := t.typePattern.FindAllString(name, -1)
	if len(matches) == 0 {
		return name
	}

	token := matches[len(matches)-1]

	full, ok := t.types[strings.TrimSuffix(strings.ToLower(token), ".")]
	if !ok {
		return name
	}

	re, err := regexp2.Compile(`\b`+regexp2.Escape(token)+`(?=[\s,]|$)`, regexp2.None)
	if err != nil {
		return name
	}

	out, err := re.Replace(name, full, -1, -1)
	if err != nil {
		return name
	}

	return out
}

// expandDirection turns N/N./NW... into North/Northwest...
func (t *Transformer) expandDirection(name string) string {
	for _, exempt := range t.exemptions {
		if strings.Contains(name, exempt) {
			return name
		}
	}

	for _, d := range t.directions {
		out, err := d.Pattern.Replace(name, d.Name, -1, -1)
		if err != nil {
			continue
		}

		name = out
	}

	return name
}

// normalizeSuite makes "#40", ", Ste 40" and "suite 40" read "Suite 40".
func (t *Transformer) normalizeSuite(name string) string {
	if !t.suite.MatchString(name) {
		return name
	}

	return strings.TrimSpace(t.suite.ReplaceAllString(name, rules.SuiteReplacement))
}

// normalizeNumberedRoad canonicalizes county, farm-to-market, state and
// interstate road names.
func (t *Transformer) normalizeNumberedRoad(name string) string {
	for _, r := range t.roads {
		name = r.Pattern.ReplaceAllString(name, r.Replacement)
	}

	return name
}
