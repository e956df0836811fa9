package audit

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"osmclean/internal/models"
	"osmclean/internal/rules"
)

var (
	lastWordPattern = regexp.MustCompile(`\b\S+\.?\s*$`)
	digitsPattern   = regexp.MustCompile(`\d+`)
)

// StreetReport groups street names by what made them stand out.
type StreetReport struct {
	// Types buckets names whose last word is not an expected street type.
	Types []Bucket `yaml:"type"`
	// Directions buckets names by the direction token they contain.
	Directions []Bucket `yaml:"direction"`
	// Digits buckets names by the first run of digits in them.
	Digits []Bucket `yaml:"digits"`
}

// Bucket is a set of street names sharing a key.
type Bucket struct {
	Key     string   `yaml:"key"`
	Streets []string `yaml:"streets"`
}

type bucketSet map[string]map[string]struct{}

func (b bucketSet) add(key, street string) {
	if b[key] == nil {
		b[key] = make(map[string]struct{})
	}

	b[key][street] = struct{}{}
}

func (b bucketSet) sorted() []Bucket {
	out := make([]Bucket, 0, len(b))
	for _, key := range slices.Sorted(maps.Keys(b)) {
		out = append(out, Bucket{Key: key, Streets: slices.Sorted(maps.Keys(b[key]))})
	}

	return out
}

// StreetAudit inspects addr:street values of nodes and ways.
type StreetAudit struct {
	caser      cases.Caser
	types      bucketSet
	directions bucketSet
	digits     bucketSet
}

// NewStreetAudit creates an empty street audit.
func NewStreetAudit() *StreetAudit {
	return &StreetAudit{
		caser:      cases.Title(language.Und),
		types:      bucketSet{},
		directions: bucketSet{},
		digits:     bucketSet{},
	}
}

// Observe records the street names of elem.
func (a *StreetAudit) Observe(elem *models.Element) error {
	if !isAddressed(elem.Kind) {
		return nil
	}

	for _, tag := range elem.Tags() {
		if tag.Key != rules.KeyStreet {
			continue
		}

		if err := a.observe(tag.Value); err != nil {
			return err
		}
	}

	return nil
}

func (a *StreetAudit) observe(street string) error {
	if last := strings.TrimSpace(lastWordPattern.FindString(street)); last != "" {
		if !slices.Contains(rules.ExpectedStreetTypes, last) {
			a.types.add(last, street)
		}
	}

	for _, dir := range rules.Directions {
		m, err := dir.Pattern.FindStringMatch(street)
		if err != nil {
			return err
		}

		if m != nil {
			a.directions.add(a.caser.String(m.String()), street)
		}
	}

	if digits := digitsPattern.FindString(street); digits != "" {
		a.digits.add(digits, street)
	}

	return nil
}

// Fill sets rep.Street.
func (a *StreetAudit) Fill(rep *Report) {
	rep.Street = &StreetReport{
		Types:      a.types.sorted(),
		Directions: a.directions.sorted(),
		Digits:     a.digits.sorted(),
	}
}
