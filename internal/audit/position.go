package audit

import (
	"strconv"

	"osmclean/internal/models"
	"osmclean/internal/shaper"
)

// PositionReport is the coordinate range of a document.
type PositionReport struct {
	Lat Range `yaml:"lat"`
	Lon Range `yaml:"lon"`
	// Bounds is the document's bounds element, if it has one.
	Bounds *Bounds `yaml:"bounds,omitempty"`
	// OutOfBounds counts elements positioned outside Bounds.
	OutOfBounds int `yaml:"out_of_bounds"`
}

// Range is the minimum and maximum of Count observed values.
type Range struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Count int     `yaml:"count"`
}

func (r *Range) add(v float64) {
	if r.Count == 0 || v < r.Min {
		r.Min = v
	}

	if r.Count == 0 || v > r.Max {
		r.Max = v
	}

	r.Count++
}

// Bounds is the box declared by a bounds element.
type Bounds struct {
	MinLat float64 `yaml:"minlat"`
	MinLon float64 `yaml:"minlon"`
	MaxLat float64 `yaml:"maxlat"`
	MaxLon float64 `yaml:"maxlon"`
}

// Contains reports whether the point lies inside b, edges included.
func (b *Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// PositionAudit tracks the lat/lon range of nodes and ways. Only elements
// read after the bounds element are checked against it; OSM exports put it
// first.
type PositionAudit struct {
	rep PositionReport
}

// NewPositionAudit creates an empty position audit.
func NewPositionAudit() *PositionAudit {
	return &PositionAudit{}
}

// Observe records the coordinates of elem. A coordinate that is not a
// number is returned as *shaper.FormatError.
func (a *PositionAudit) Observe(elem *models.Element) error {
	if elem.Kind == models.KindBounds {
		b, err := parseBounds(elem)
		if err != nil {
			return err
		}

		a.rep.Bounds = b

		return nil
	}

	if !isAddressed(elem.Kind) {
		return nil
	}

	lat, hasLat, err := floatAttr(elem, "lat")
	if err != nil {
		return err
	}

	lon, hasLon, err := floatAttr(elem, "lon")
	if err != nil {
		return err
	}

	if hasLat {
		a.rep.Lat.add(lat)
	}

	if hasLon {
		a.rep.Lon.add(lon)
	}

	if hasLat && hasLon && a.rep.Bounds != nil && !a.rep.Bounds.Contains(lat, lon) {
		a.rep.OutOfBounds++
	}

	return nil
}

// Fill sets rep.Position.
func (a *PositionAudit) Fill(rep *Report) {
	out := a.rep
	rep.Position = &out
}

func parseBounds(elem *models.Element) (*Bounds, error) {
	var b Bounds

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"minlat", &b.MinLat},
		{"minlon", &b.MinLon},
		{"maxlat", &b.MaxLat},
		{"maxlon", &b.MaxLon},
	} {
		v, ok, err := floatAttr(elem, f.name)
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, nil
		}

		*f.dst = v
	}

	return &b, nil
}

func floatAttr(elem *models.Element, name string) (float64, bool, error) {
	raw, ok := elem.Attr(name)
	if !ok {
		return 0, false, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, &shaper.FormatError{Kind: elem.Kind, ID: elem.ID(), Key: name, Value: raw, Err: err}
	}

	return v, true, nil
}
