// Package normalizer cleans the address tags of OSM elements: known-bad
// values are replaced from the exception table, street names and postcodes
// are rewritten into a consistent form.
package normalizer

import (
	"errors"
	"fmt"

	"osmclean/internal/models"
	"osmclean/internal/rules"
)

// ErrNilElement is returned when Process is called without an element.
var ErrNilElement = errors.New("element is nil")

// ErrUnknownPostcodeMode is returned for an unsupported PostcodeMode.
var ErrUnknownPostcodeMode = errors.New("unknown postcode mode")

// PostcodeMode decides what happens to a postcode that contains a ZIP code.
type PostcodeMode string

const (
	// PostcodeExtract replaces the value with the ZIP code found in it.
	PostcodeExtract PostcodeMode = "extract"
	// PostcodePreserve only validates; values are never rewritten.
	PostcodePreserve PostcodeMode = "preserve"
)

// ParsePostcodeMode validates s as a PostcodeMode. An empty string selects PostcodeExtract.
func ParsePostcodeMode(s string) (PostcodeMode, error) {
	switch PostcodeMode(s) {
	case "", PostcodeExtract:
		return PostcodeExtract, nil
	case PostcodePreserve:
		return PostcodePreserve, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPostcodeMode, s)
	}
}

// Config controls a Processor. Zero values select the defaults.
type Config struct {
	Exceptions   *rules.ExceptionTable
	PostcodeMode PostcodeMode
	// Kinds lists the element kinds that get cleaned. Defaults to node and way.
	Kinds []string
}

// Processor runs the exception table and then the street and postcode
// rewrites over one element at a time.
type Processor struct {
	resolver     *Resolver
	validator    *Validator
	transformer  *Transformer
	reporter     models.Reporter
	postcodeMode PostcodeMode
	kinds        map[string]bool
}

// NewProcessor creates a processor reporting to reporter.
func NewProcessor(cfg Config, reporter models.Reporter) *Processor {
	if cfg.Exceptions == nil {
		cfg.Exceptions = rules.Exceptions()
	}

	if cfg.PostcodeMode == "" {
		cfg.PostcodeMode = PostcodeExtract
	}

	if len(cfg.Kinds) == 0 {
		cfg.Kinds = []string{models.KindNode, models.KindWay}
	}

	if reporter == nil {
		reporter = models.Discard
	}

	kinds := make(map[string]bool, len(cfg.Kinds))
	for _, k := range cfg.Kinds {
		kinds[k] = true
	}

	return &Processor{
		resolver:     NewResolver(cfg.Exceptions),
		validator:    NewValidator(),
		transformer:  NewTransformer(),
		reporter:     reporter,
		postcodeMode: cfg.PostcodeMode,
		kinds:        kinds,
	}
}

// Handles reports whether elements of kind are cleaned.
func (p *Processor) Handles(kind string) bool {
	return p.kinds[kind]
}

// Process cleans elem in place. Elements of other kinds are left untouched.
func (p *Processor) Process(elem *models.Element) error {
	if elem == nil {
		return ErrNilElement
	}

	if !p.Handles(elem.Kind) {
		return nil
	}

	// 1. Exception table
	for _, c := range p.resolver.Resolve(elem) {
		p.reporter.Change(c)
	}

	// 2. Street and postcode rewrites; exception replacements are final
	for i := range elem.Children {
		child := &elem.Children[i]
		if child.Synthetic {
			continue
		}

		tag, ok := child.Tag()
		if !ok {
			continue
		}

		var (
			value string
			stage models.Stage
		)

		switch tag.Key {
		case rules.KeyStreet:
			value, stage = p.transformer.Street(tag.Value), models.StageStreet
		case rules.KeyPostcode:
			value, stage = p.postcode(elem, tag), models.StagePostcode
		default:
			continue
		}

		if value == tag.Value {
			continue
		}

		child.SetValue(value)
		p.reporter.Change(models.Change{
			Stage:  stage,
			Kind:   elem.Kind,
			ID:     elem.ID(),
			OldKey: tag.Key,
			OldVal: tag.Value,
			NewKey: tag.Key,
			NewVal: value,
		})
	}

	return nil
}

func (p *Processor) postcode(elem *models.Element, tag models.Tag) string {
	zip, err := p.validator.Postcode(tag.Value)
	if err != nil {
		p.reporter.Warn(models.Warning{
			Kind:    elem.Kind,
			ID:      elem.ID(),
			Key:     tag.Key,
			Value:   tag.Value,
			Message: err.Error(),
		})

		return tag.Value
	}

	if p.postcodeMode == PostcodePreserve {
		return tag.Value
	}

	return zip
}
