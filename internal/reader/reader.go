// Package reader streams top-level elements out of an OSM XML document
// without loading the whole document into memory.
package reader

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"

	"golang.org/x/net/html/charset"

	"osmclean/internal/models"
)

// ErrMalformedInput matches every MalformedInputError.
var ErrMalformedInput = errors.New("malformed input")

var (
	errNoRoot       = errors.New("document has no root element")
	errTrailingRoot = errors.New("content after root element")
	errUnclosedRoot = errors.New("unexpected end of document")
)

// MalformedInputError reports input that is not well-formed XML.
type MalformedInputError struct {
	Offset int64
	Err    error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", ErrMalformedInput, e.Offset, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedInput.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// Reader yields one top-level element at a time. Only the element being
// returned is held in memory; the reader keeps no reference to it.
type Reader struct {
	dec     *xml.Decoder
	kinds   map[string]bool
	root    string
	started bool
	done    bool
}

// New creates a reader over r that yields top-level elements whose name is
// in kinds. With no kinds every top-level element is yielded.
func New(r io.Reader, kinds ...string) *Reader {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	var set map[string]bool
	if len(kinds) > 0 {
		set = make(map[string]bool, len(kinds))
		for _, k := range kinds {
			set[k] = true
		}
	}

	return &Reader{dec: dec, kinds: set}
}

// Root returns the name of the root element once it has been read.
func (r *Reader) Root() string {
	return r.root
}

// Next returns the next matching element, or io.EOF once the root element
// has been closed. Any syntax error is returned as *MalformedInputError.
func (r *Reader) Next() (*models.Element, error) {
	if r.done {
		return nil, io.EOF
	}

	if !r.started {
		if err := r.readRoot(); err != nil {
			r.done = true
			return nil, err
		}
	}

	for {
		tok, err := r.dec.Token()
		if err != nil {
			r.done = true
			return nil, r.malformed(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !r.wants(t.Name.Local) {
				if err := r.dec.Skip(); err != nil {
					r.done = true
					return nil, r.malformed(err)
				}

				continue
			}

			elem, err := r.readElement(t)
			if err != nil {
				r.done = true
				return nil, err
			}

			return elem, nil

		case xml.EndElement:
			r.done = true
			if err := r.drain(); err != nil {
				return nil, err
			}

			return nil, io.EOF
		}
	}
}

// All returns the remaining elements as an iterator. Iteration stops after
// the first error.
func (r *Reader) All() iter.Seq2[*models.Element, error] {
	return func(yield func(*models.Element, error) bool) {
		for {
			elem, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}

			if !yield(elem, err) || err != nil {
				return
			}
		}
	}
}

func (r *Reader) wants(kind string) bool {
	return r.kinds == nil || r.kinds[kind]
}

func (r *Reader) readRoot() error {
	for {
		tok, err := r.dec.Token()
		if errors.Is(err, io.EOF) {
			return r.malformed(errNoRoot)
		}

		if err != nil {
			return r.malformed(err)
		}

		if start, ok := tok.(xml.StartElement); ok {
			r.root = start.Name.Local
			r.started = true

			return nil
		}
	}
}

// readElement collects the direct children of start. Anything nested deeper
// is skipped.
func (r *Reader) readElement(start xml.StartElement) (*models.Element, error) {
	elem := &models.Element{
		Kind:  start.Name.Local,
		Attrs: copyAttrs(start.Attr),
	}

	for {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, r.malformed(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			elem.Children = append(elem.Children, models.Child{
				Name:  t.Name.Local,
				Attrs: copyAttrs(t.Attr),
			})

			if err := r.dec.Skip(); err != nil {
				return nil, r.malformed(err)
			}

		case xml.EndElement:
			return elem, nil
		}
	}
}

// drain consumes whatever follows the root element so trailing garbage is
// reported instead of silently accepted.
func (r *Reader) drain() error {
	for {
		tok, err := r.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return r.malformed(err)
		}

		if _, ok := tok.(xml.StartElement); ok {
			return r.malformed(errTrailingRoot)
		}
	}
}

func (r *Reader) malformed(err error) error {
	if errors.Is(err, io.EOF) {
		err = errUnclosedRoot
	}

	return &MalformedInputError{Offset: r.dec.InputOffset(), Err: err}
}

func copyAttrs(attrs []xml.Attr) []xml.Attr {
	if len(attrs) == 0 {
		return nil
	}

	out := make([]xml.Attr, len(attrs))
	copy(out, attrs)

	return out
}
