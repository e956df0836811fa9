package shaper

import (
	"errors"

	"osmclean/internal/models"
)

// Shaper turns nodes and ways into Records.
type Shaper struct{}

// NewShaper creates a new shaper instance.
func NewShaper() *Shaper {
	return &Shaper{}
}

// Shape builds the record for elem. Kinds other than node and way give a nil record.
func (s *Shaper) Shape(elem *models.Element) (models.Record, error) {
	if elem == nil || (elem.Kind != models.KindNode && elem.Kind != models.KindWay) {
		return nil, nil
	}

	var (
		created = map[string]string{}
		address = map[string]string{}
		refs    []string

		lat, lon       float64
		hasLat, hasLon bool
	)

	rec := models.Record{models.KeyType: elem.Kind}

	for _, a := range elem.Attrs {
		f, err := Classify(FromAttr, a.Name.Local, a.Value)
		if err != nil {
			return nil, s.formatError(elem, err)
		}

		switch f.Class {
		case Provenance:
			created[f.Name] = f.Value
		case PositionLat:
			lat, hasLat = f.Float, true
		case PositionLon:
			lon, hasLon = f.Float, true
		case Generic:
			rec[f.Name] = f.Value
		}
	}

	for i := range elem.Children {
		f, err := ClassifyChild(&elem.Children[i])
		if err != nil {
			return nil, s.formatError(elem, err)
		}

		switch f.Class {
		case Address:
			address[f.Name] = f.Value
		case Generic:
			rec[f.Name] = f.Value
		case Reference:
			refs = append(refs, f.Value)
		}
	}

	if len(created) > 0 {
		rec[models.KeyCreated] = created
	}

	if hasLat && hasLon {
		rec[models.KeyPos] = [2]float64{lat, lon}
	}

	if len(address) > 0 {
		rec[models.KeyAddress] = address
	}

	if elem.Kind == models.KindWay && len(refs) > 0 {
		rec[models.KeyNodeRefs] = refs
	}

	return rec, nil
}

func (s *Shaper) formatError(elem *models.Element, err error) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		fe.Kind = elem.Kind
		fe.ID = elem.ID()
	}

	return err
}
