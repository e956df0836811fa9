// Package audit surveys an OSM document before it is cleaned: which street
// names look irregular, which postcodes occur, the coordinate range and how
// often each element name appears. All requested audits share one pass over
// the input.
package audit

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"osmclean/internal/models"
	"osmclean/internal/reader"
)

// Audit names accepted by Run.
const (
	Street   = "street"
	Postcode = "postcode"
	Position = "position"
	Tags     = "tags"
)

// Names lists every audit in report order.
var Names = []string{Street, Postcode, Position, Tags}

// ErrUnknownAudit is returned for an audit name not in Names.
var ErrUnknownAudit = errors.New("unknown audit")

// Auditor observes top-level elements and contributes its findings to a Report.
type Auditor interface {
	Observe(elem *models.Element) error
	Fill(rep *Report)
}

// Report holds the findings of one run. Sections of audits that were not
// requested are nil.
type Report struct {
	Street    *StreetReport   `yaml:"street,omitempty"`
	Postcodes []Count         `yaml:"postcodes,omitempty"`
	Position  *PositionReport `yaml:"position,omitempty"`
	Tags      []Count         `yaml:"tags,omitempty"`
}

// Count is a name with the number of times it was seen.
type Count struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// New returns the auditors for the given names. No names selects all of them.
func New(which ...string) ([]Auditor, error) {
	if len(which) == 0 {
		which = Names
	}

	auditors := make([]Auditor, 0, len(which))
	seen := make(map[string]bool, len(which))

	for _, name := range which {
		if seen[name] {
			continue
		}

		seen[name] = true

		switch name {
		case Street:
			auditors = append(auditors, NewStreetAudit())
		case Postcode:
			auditors = append(auditors, NewPostcodeAudit())
		case Position:
			auditors = append(auditors, NewPositionAudit())
		case Tags:
			auditors = append(auditors, NewTagCount())
		default:
			return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownAudit, name, Names)
		}
	}

	return auditors, nil
}

// Run reads r once and feeds every top-level element to the selected audits.
func Run(r io.Reader, which ...string) (*Report, error) {
	auditors, err := New(which...)
	if err != nil {
		return nil, err
	}

	rd := reader.New(r)

	for elem, err := range rd.All() {
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}

		for _, a := range auditors {
			if err := a.Observe(elem); err != nil {
				return nil, err
			}
		}
	}

	rep := &Report{}

	for _, a := range auditors {
		if tc, ok := a.(*TagCount); ok {
			tc.ObserveRoot(rd.Root())
		}

		a.Fill(rep)
	}

	return rep, nil
}

// sortedCounts orders counts by descending count, then name.
func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for name, n := range m {
		out = append(out, Count{Name: name, Count: n})
	}

	slices.SortFunc(out, func(a, b Count) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}

		if a.Name < b.Name {
			return -1
		}

		if a.Name > b.Name {
			return 1
		}

		return 0
	})

	return out
}

func isAddressed(kind string) bool {
	return kind == models.KindNode || kind == models.KindWay
}
