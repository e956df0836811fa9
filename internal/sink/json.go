package sink

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/pretty"

	"osmclean/internal/models"
)

var prettyOptions = &pretty.Options{
	Width:    80,
	Indent:   "  ",
	SortKeys: true,
}

// JSONWriter writes one record per line, or one indented document per
// record when pretty printing.
type JSONWriter struct {
	w      *bufio.Writer
	buf    bytes.Buffer
	enc    *json.Encoder
	pretty bool
	closed bool
	count  int
}

// NewJSONWriter creates a writer over w.
func NewJSONWriter(w io.Writer, prettyPrint bool) *JSONWriter {
	j := &JSONWriter{w: bufio.NewWriter(w), pretty: prettyPrint}
	j.enc = json.NewEncoder(&j.buf)
	j.enc.SetEscapeHTML(false)

	return j
}

// Count returns the number of records written.
func (j *JSONWriter) Count() int {
	return j.count
}

// Write appends one record.
func (j *JSONWriter) Write(rec models.Record) error {
	if j.closed {
		return ErrClosed
	}

	j.buf.Reset()

	// Encode terminates the document with a newline.
	if err := j.enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	out := j.buf.Bytes()
	if j.pretty {
		out = pretty.PrettyOptions(out, prettyOptions)
	}

	if _, err := j.w.Write(out); err != nil {
		return err
	}

	j.count++

	return nil
}

// Close flushes buffered output. It does not close the underlying writer.
func (j *JSONWriter) Close() error {
	if j.closed {
		return nil
	}

	j.closed = true

	return j.w.Flush()
}
