package audit

import (
	"osmclean/internal/models"
	"osmclean/internal/rules"
)

// PostcodeAudit collects the distinct addr:postcode values of nodes and ways.
type PostcodeAudit struct {
	seen map[string]int
}

// NewPostcodeAudit creates an empty postcode audit.
func NewPostcodeAudit() *PostcodeAudit {
	return &PostcodeAudit{seen: make(map[string]int)}
}

// Observe records the postcodes of elem.
func (a *PostcodeAudit) Observe(elem *models.Element) error {
	if !isAddressed(elem.Kind) {
		return nil
	}

	for _, tag := range elem.Tags() {
		if tag.Key == rules.KeyPostcode {
			a.seen[tag.Value]++
		}
	}

	return nil
}

// Fill sets rep.Postcodes, most frequent first.
func (a *PostcodeAudit) Fill(rep *Report) {
	rep.Postcodes = sortedCounts(a.seen)
}
