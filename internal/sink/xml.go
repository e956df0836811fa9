// Package sink writes cleaned elements back out as OSM XML or as JSON lines.
package sink

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"osmclean/internal/models"
)

// ErrClosed is returned when writing to a closed sink.
var ErrClosed = errors.New("sink is closed")

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
	osmRoot   = "osm"
)

// XMLWriter writes elements inside an <osm> envelope in the order they are given.
type XMLWriter struct {
	w       *bufio.Writer
	started bool
	closed  bool
	count   int
}

// NewXMLWriter creates a writer over w. The envelope is opened on the first
// write and closed by Close.
func NewXMLWriter(w io.Writer) *XMLWriter {
	return &XMLWriter{w: bufio.NewWriter(w)}
}

// Count returns the number of elements written.
func (x *XMLWriter) Count() int {
	return x.count
}

// Write appends one element.
func (x *XMLWriter) Write(elem *models.Element) error {
	if x.closed {
		return ErrClosed
	}

	if err := x.open(); err != nil {
		return err
	}

	if err := x.writeElement(elem); err != nil {
		return fmt.Errorf("failed to write %s %s: %w", elem.Kind, elem.ID(), err)
	}

	x.count++

	return nil
}

// Close ends the envelope and flushes. It does not close the underlying writer.
func (x *XMLWriter) Close() error {
	if x.closed {
		return nil
	}

	if err := x.open(); err != nil {
		return err
	}

	x.closed = true

	if _, err := x.w.WriteString("</" + osmRoot + ">\n"); err != nil {
		return err
	}

	return x.w.Flush()
}

func (x *XMLWriter) open() error {
	if x.started {
		return nil
	}

	x.started = true

	_, err := x.w.WriteString(xmlHeader + "<" + osmRoot + ">\n")

	return err
}

func (x *XMLWriter) writeElement(elem *models.Element) error {
	x.w.WriteString("  <" + elem.Kind)

	if err := x.writeAttrs(elem.Attrs); err != nil {
		return err
	}

	if len(elem.Children) == 0 {
		_, err := x.w.WriteString("/>\n")
		return err
	}

	x.w.WriteString(">\n")

	for _, c := range elem.Children {
		x.w.WriteString("    <" + c.Name)

		if err := x.writeAttrs(c.Attrs); err != nil {
			return err
		}

		x.w.WriteString("/>\n")
	}

	_, err := x.w.WriteString("  </" + elem.Kind + ">\n")

	return err
}

func (x *XMLWriter) writeAttrs(attrs []xml.Attr) error {
	for _, a := range attrs {
		name := a.Name.Local
		if a.Name.Space != "" {
			name = a.Name.Space + ":" + name
		}

		x.w.WriteString(" " + name + `="`)

		if err := xml.EscapeText(x.w, []byte(a.Value)); err != nil {
			return err
		}

		if err := x.w.WriteByte('"'); err != nil {
			return err
		}
	}

	return nil
}
