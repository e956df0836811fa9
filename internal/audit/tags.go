package audit

import "osmclean/internal/models"

// TagCount counts element names: the root, every top-level element and
// their direct children.
type TagCount struct {
	counts map[string]int
}

// NewTagCount creates an empty counter.
func NewTagCount() *TagCount {
	return &TagCount{counts: make(map[string]int)}
}

// Observe counts elem and its children.
func (c *TagCount) Observe(elem *models.Element) error {
	c.counts[elem.Kind]++

	for _, child := range elem.Children {
		c.counts[child.Name]++
	}

	return nil
}

// ObserveRoot counts the document root once. An empty name is ignored.
func (c *TagCount) ObserveRoot(name string) {
	if name != "" {
		c.counts[name]++
	}
}

// Fill sets rep.Tags, most frequent first.
func (c *TagCount) Fill(rep *Report) {
	rep.Tags = sortedCounts(c.counts)
}
