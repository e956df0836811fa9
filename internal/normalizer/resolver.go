package normalizer

import (
	"osmclean/internal/models"
	"osmclean/internal/rules"
)

// Resolver applies the exception table to the tags of an element.
type Resolver struct {
	table *rules.ExceptionTable
}

// NewResolver creates a resolver over table.
func NewResolver(table *rules.ExceptionTable) *Resolver {
	return &Resolver{table: table}
}

// Resolve replaces every matching tag with its replacement tags and returns
// one change per replacement. All original tags are matched before any
// replacement is added, so replacements are never matched again.
func (r *Resolver) Resolve(elem *models.Element) []models.Change {
	var (
		changes []models.Change
		added   []models.Child
		hits    int
	)

	id := elem.ID()
	kept := make([]models.Child, 0, len(elem.Children))

	for _, child := range elem.Children {
		tag, ok := child.Tag()
		if !ok || child.Synthetic {
			kept = append(kept, child)
			continue
		}

		pairs, hit := r.table.Lookup(tag.Key, tag.Value, id)
		if !hit {
			kept = append(kept, child)
			continue
		}

		hits++

		for _, p := range pairs {
			added = append(added, models.NewTagChild(p.Key, p.Value, true))
			changes = append(changes, models.Change{
				Stage:  models.StageException,
				Kind:   elem.Kind,
				ID:     id,
				OldKey: tag.Key,
				OldVal: tag.Value,
				NewKey: p.Key,
				NewVal: p.Value,
			})
		}
	}

	if hits > 0 {
		elem.Children = append(kept, added...)
	}

	return changes
}
