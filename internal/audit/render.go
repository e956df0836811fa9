package audit

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"osmclean/internal/formatter"
)

// Output formats for Render.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
)

// ErrUnknownFormat is returned by Render for an unsupported format.
var ErrUnknownFormat = errors.New("unknown report format")

// Render writes rep to w as markdown tables or YAML.
func Render(w io.Writer, rep *Report, format string) error {
	switch format {
	case FormatTable, "":
		_, err := io.WriteString(w, rep.Markdown())
		return err
	case FormatYAML:
		data, err := yaml.Marshal(rep)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}

		_, err = w.Write(data)

		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Markdown renders the report as one markdown section per audit.
func (r *Report) Markdown() string {
	var sections []string

	if r.Street != nil {
		sections = append(sections,
			section("Street types", bucketTable("Type", r.Street.Types)),
			section("Street directions", bucketTable("Direction", r.Street.Directions)),
			section("Streets with digits", bucketTable("Digits", r.Street.Digits)),
		)
	}

	if r.Postcodes != nil {
		sections = append(sections, section("Postcodes", countTable("Postcode", r.Postcodes)))
	}

	if p := r.Position; p != nil {
		rows := [][]string{
			{"lat", formatFloat(p.Lat.Min), formatFloat(p.Lat.Max), strconv.Itoa(p.Lat.Count)},
			{"lon", formatFloat(p.Lon.Min), formatFloat(p.Lon.Max), strconv.Itoa(p.Lon.Count)},
		}

		body := formatter.Table([]string{"Axis", "Min", "Max", "Count"}, rows)
		if p.Bounds != nil {
			body += fmt.Sprintf("\n%d element(s) outside bounds [%s, %s] x [%s, %s]\n",
				p.OutOfBounds,
				formatFloat(p.Bounds.MinLat), formatFloat(p.Bounds.MaxLat),
				formatFloat(p.Bounds.MinLon), formatFloat(p.Bounds.MaxLon))
		}

		sections = append(sections, section("Position", body))
	}

	if r.Tags != nil {
		sections = append(sections, section("Tags", countTable("Tag", r.Tags)))
	}

	return strings.Join(sections, "\n")
}

func section(title, body string) string {
	return "## " + title + "\n\n" + body
}

func bucketTable(keyHeader string, buckets []Bucket) string {
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []string{b.Key, strconv.Itoa(len(b.Streets)), strings.Join(b.Streets, "; ")})
	}

	return formatter.Table([]string{keyHeader, "Count", "Streets"}, rows)
}

func countTable(nameHeader string, counts []Count) string {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Name, strconv.Itoa(c.Count)})
	}

	return formatter.Table([]string{nameHeader, "Count"}, rows)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
