package models

import "fmt"

// Stage identifies which cleaning step produced a change.
type Stage string

// Cleaning stages.
const (
	StageException Stage = "exception"
	StageStreet    Stage = "street"
	StagePostcode  Stage = "postcode"
)

// Change describes a tag rewrite on one element.
type Change struct {
	Stage  Stage
	Kind   string
	ID     string
	OldKey string
	OldVal string
	NewKey string
	NewVal string
}

// String renders the change the way it appears in the diagnostic stream.
func (c Change) String() string {
	return fmt.Sprintf("%s-%s: <tag k=%q v=%q/> => <tag k=%q v=%q/>",
		c.Kind, c.ID, c.OldKey, c.OldVal, c.NewKey, c.NewVal)
}

// Warning is a non-fatal validation finding on a tag value.
type Warning struct {
	Kind    string
	ID      string
	Key     string
	Value   string
	Message string
}

// Reporter receives change notifications and warnings while elements are cleaned.
type Reporter interface {
	Change(c Change)
	Warn(w Warning)
}

// Discard is a Reporter that drops everything.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Change(Change) {}
func (discard) Warn(Warning)  {}
