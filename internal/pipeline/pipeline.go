// Package pipeline connects the reader, normalizer, shaper and sinks into
// the clean, shape and sample runs. Elements are processed one at a time
// and dropped as soon as they are written.
package pipeline

import (
	"errors"
	"fmt"
	"io"

	"osmclean/internal/models"
	"osmclean/internal/normalizer"
	"osmclean/internal/reader"
	"osmclean/internal/shaper"
	"osmclean/internal/sink"
)

// ErrInvalidSampleRate is returned when the sample interval is below 1.
var ErrInvalidSampleRate = errors.New("sample interval must be at least 1")

// DefaultCleanKinds are the top-level kinds written by Clean.
var DefaultCleanKinds = []string{models.KindNode, models.KindWay, models.KindRelation, models.KindBounds}

// DefaultSampleKinds are the top-level kinds considered by Sample.
var DefaultSampleKinds = []string{models.KindNode, models.KindWay, models.KindRelation}

// Stats summarizes a run.
type Stats struct {
	Read    int
	Written int
}

// CleanOptions configures Clean.
type CleanOptions struct {
	// Processor cleans the elements it handles; others pass through as read.
	Processor *normalizer.Processor
	// Kinds lists the top-level kinds copied to the output. Defaults to DefaultCleanKinds.
	Kinds []string
}

// Clean copies the elements of in to out as OSM XML, cleaning those the
// processor handles.
func Clean(in io.Reader, out io.Writer, opts CleanOptions) (Stats, error) {
	var stats Stats

	kinds := opts.Kinds
	if len(kinds) == 0 {
		kinds = DefaultCleanKinds
	}

	w := sink.NewXMLWriter(out)

	for elem, err := range reader.New(in, kinds...).All() {
		if err != nil {
			return stats, fmt.Errorf("failed to read input: %w", err)
		}

		stats.Read++

		if opts.Processor != nil {
			if err := opts.Processor.Process(elem); err != nil {
				return stats, fmt.Errorf("failed to clean %s %s: %w", elem.Kind, elem.ID(), err)
			}
		}

		if err := w.Write(elem); err != nil {
			return stats, err
		}

		stats.Written++
	}

	if err := w.Close(); err != nil {
		return stats, fmt.Errorf("failed to finish output: %w", err)
	}

	return stats, nil
}

// ShapeOptions configures Shape.
type ShapeOptions struct {
	// Processor cleans elements before they are shaped. Nil shapes the raw data.
	Processor *normalizer.Processor
	Pretty    bool
}

// Shape writes every node and way of in to out as a JSON record.
func Shape(in io.Reader, out io.Writer, opts ShapeOptions) (Stats, error) {
	var stats Stats

	s := shaper.NewShaper()
	w := sink.NewJSONWriter(out, opts.Pretty)

	for elem, err := range reader.New(in, models.KindNode, models.KindWay).All() {
		if err != nil {
			return stats, fmt.Errorf("failed to read input: %w", err)
		}

		stats.Read++

		if opts.Processor != nil {
			if err := opts.Processor.Process(elem); err != nil {
				return stats, fmt.Errorf("failed to clean %s %s: %w", elem.Kind, elem.ID(), err)
			}
		}

		rec, err := s.Shape(elem)
		if err != nil {
			return stats, err
		}

		if rec == nil {
			continue
		}

		if err := w.Write(rec); err != nil {
			return stats, err
		}

		stats.Written++
	}

	if err := w.Close(); err != nil {
		return stats, fmt.Errorf("failed to finish output: %w", err)
	}

	return stats, nil
}

// Sample writes every nth top-level element of in to out, starting with the
// first. With no kinds DefaultSampleKinds are used.
func Sample(in io.Reader, out io.Writer, every int, kinds ...string) (Stats, error) {
	var stats Stats

	if every < 1 {
		return stats, fmt.Errorf("%w: %d", ErrInvalidSampleRate, every)
	}

	if len(kinds) == 0 {
		kinds = DefaultSampleKinds
	}

	w := sink.NewXMLWriter(out)

	for elem, err := range reader.New(in, kinds...).All() {
		if err != nil {
			return stats, fmt.Errorf("failed to read input: %w", err)
		}

		stats.Read++

		if (stats.Read-1)%every != 0 {
			continue
		}

		if err := w.Write(elem); err != nil {
			return stats, err
		}

		stats.Written++
	}

	if err := w.Close(); err != nil {
		return stats, fmt.Errorf("failed to finish output: %w", err)
	}

	return stats, nil
}
