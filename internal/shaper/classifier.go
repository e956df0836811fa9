// Package shaper flattens OSM nodes and ways into JSON-ready records.
package shaper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"osmclean/internal/models"
	"osmclean/internal/rules"
)

// ErrFormat matches every FormatError.
var ErrFormat = errors.New("invalid number")

// FormatError reports a coordinate attribute that is not a number.
type FormatError struct {
	Kind  string
	ID    string
	Key   string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s %s: %s=%q: %s: %v", e.Kind, e.ID, e.Key, e.Value, ErrFormat, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// Class is the bucket a field ends up in.
type Class int

// Field classes.
const (
	Ignored Class = iota
	PositionLat
	PositionLon
	Provenance
	Address
	Generic
	Reference
)

func (c Class) String() string {
	switch c {
	case Ignored:
		return "ignored"
	case PositionLat:
		return "lat"
	case PositionLon:
		return "lon"
	case Provenance:
		return "provenance"
	case Address:
		return "address"
	case Generic:
		return "generic"
	case Reference:
		return "reference"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// Origin tells whether a key/value pair came from an element attribute or a tag child.
type Origin int

// Field origins.
const (
	FromAttr Origin = iota
	FromTag
)

// Field is a classified key/value pair. Name is the output key: the
// provenance name, the address sub-field, or the (possibly renamed) key.
type Field struct {
	Class Class
	Name  string
	Value string
	Float float64
}

// reserved keys a plain field may not overwrite.
var reserved = map[string]bool{
	models.KeyType:     true,
	models.KeyCreated:  true,
	models.KeyPos:      true,
	models.KeyAddress:  true,
	models.KeyNodeRefs: true,
}

// Classify decides where a key/value pair goes in the output record.
// A lat or lon attribute that is not a number yields a *FormatError.
func Classify(origin Origin, key, value string) (Field, error) {
	if rules.ProblemChars.MatchString(key) {
		return Field{Class: Ignored, Name: key}, nil
	}

	if origin == FromAttr {
		if rules.IsProvenance(key) {
			return Field{Class: Provenance, Name: key, Value: value}, nil
		}

		if key == "lat" || key == "lon" {
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Field{}, &FormatError{Key: key, Value: value, Err: err}
			}

			class := PositionLat
			if key == "lon" {
				class = PositionLon
			}

			return Field{Class: class, Name: key, Value: value, Float: f}, nil
		}
	}

	if origin == FromTag {
		if sub, ok := strings.CutPrefix(key, rules.AddressPrefix); ok {
			if sub == "" || strings.Contains(sub, ":") {
				return Field{Class: Ignored, Name: key}, nil
			}

			return Field{Class: Address, Name: sub, Value: value}, nil
		}
	}

	if key == models.KeyType {
		return Field{Class: Generic, Name: models.KeyTagType, Value: value}, nil
	}

	if reserved[key] {
		return Field{Class: Generic, Name: "tag_" + key, Value: value}, nil
	}

	return Field{Class: Generic, Name: key, Value: value}, nil
}

// ClassifyChild classifies a tag child or a node reference. Other children are ignored.
func ClassifyChild(c *models.Child) (Field, error) {
	switch c.Name {
	case models.ChildNodeRef:
		ref, ok := c.Attr("ref")
		if !ok {
			return Field{Class: Ignored}, nil
		}

		return Field{Class: Reference, Name: models.KeyNodeRefs, Value: ref}, nil

	case models.ChildTag:
		tag, ok := c.Tag()
		if !ok {
			return Field{Class: Ignored}, nil
		}

		return Classify(FromTag, tag.Key, tag.Value)

	default:
		return Field{Class: Ignored, Name: c.Name}, nil
	}
}
