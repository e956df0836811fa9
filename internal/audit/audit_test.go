package audit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"osmclean/internal/models"
	"osmclean/internal/shaper"
)

const doc = `<?xml version="1.0" encoding="UTF-8"?>
<osm>
  <bounds minlat="32" minlon="-98" maxlat="33" maxlon="-96"/>
  <node id="1" lat="32.5" lon="-97">
    <tag k="addr:street" v="221 W. Lancaster Ave"/>
    <tag k="addr:postcode" v="75201"/>
  </node>
  <node id="2" lat="34" lon="-97.5">
    <tag k="addr:street" v="Main Street"/>
    <tag k="addr:postcode" v="75201"/>
  </node>
  <way id="3">
    <nd ref="1"/>
    <tag k="addr:street" v="I-30 Frontage Rd"/>
    <tag k="addr:postcode" v="TX"/>
  </way>
  <relation id="4">
    <tag k="addr:postcode" v="99999"/>
  </relation>
</osm>`

func TestRun_All(t *testing.T) {
	rep, err := Run(strings.NewReader(doc))
	require.NoError(t, err)

	require.NotNil(t, rep.Street)
	assert.Equal(t, []Bucket{
		{Key: "Ave", Streets: []string{"221 W. Lancaster Ave"}},
		{Key: "Rd", Streets: []string{"I-30 Frontage Rd"}},
	}, rep.Street.Types)
	assert.Equal(t, []Bucket{
		{Key: "W.", Streets: []string{"221 W. Lancaster Ave"}},
	}, rep.Street.Directions)
	assert.Equal(t, []Bucket{
		{Key: "221", Streets: []string{"221 W. Lancaster Ave"}},
		{Key: "30", Streets: []string{"I-30 Frontage Rd"}},
	}, rep.Street.Digits)

	assert.Equal(t, []Count{{Name: "75201", Count: 2}, {Name: "TX", Count: 1}}, rep.Postcodes)

	require.NotNil(t, rep.Position)
	assert.Equal(t, Range{Min: 32.5, Max: 34, Count: 2}, rep.Position.Lat)
	assert.Equal(t, Range{Min: -97.5, Max: -97, Count: 2}, rep.Position.Lon)
	assert.Equal(t, &Bounds{MinLat: 32, MinLon: -98, MaxLat: 33, MaxLon: -96}, rep.Position.Bounds)
	assert.Equal(t, 1, rep.Position.OutOfBounds)

	assert.Equal(t, []Count{
		{Name: "tag", Count: 7},
		{Name: "node", Count: 2},
		{Name: "bounds", Count: 1},
		{Name: "nd", Count: 1},
		{Name: "osm", Count: 1},
		{Name: "relation", Count: 1},
		{Name: "way", Count: 1},
	}, rep.Tags)
}

func TestRun_Selected(t *testing.T) {
	rep, err := Run(strings.NewReader(doc), Postcode, Postcode)
	require.NoError(t, err)

	assert.Nil(t, rep.Street)
	assert.Nil(t, rep.Position)
	assert.Nil(t, rep.Tags)
	assert.Len(t, rep.Postcodes, 2)
}

func TestRun_UnknownAudit(t *testing.T) {
	_, err := Run(strings.NewReader(doc), "speed")
	assert.ErrorIs(t, err, ErrUnknownAudit)
}

func TestRun_BadCoordinate(t *testing.T) {
	_, err := Run(strings.NewReader(`<osm><node id="9" lat="north" lon="1"/></osm>`), Position)
	require.Error(t, err)
	assert.ErrorIs(t, err, shaper.ErrFormat)

	var fe *shaper.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "9", fe.ID)
	assert.Equal(t, "lat", fe.Key)
}

func TestStreetAudit_DirectionCase(t *testing.T) {
	a := NewStreetAudit()

	for _, street := range []string{"north Main", "SOUTH Ervay St", "Green's Court"} {
		elem := &models.Element{
			Kind:     models.KindNode,
			Children: []models.Child{models.NewTagChild("addr:street", street, false)},
		}
		require.NoError(t, a.Observe(elem))
	}

	rep := &Report{}
	a.Fill(rep)

	assert.Equal(t, []Bucket{
		{Key: "North", Streets: []string{"north Main"}},
		{Key: "South", Streets: []string{"SOUTH Ervay St"}},
	}, rep.Street.Directions)
}

func TestPositionAudit_NoBounds(t *testing.T) {
	rep, err := Run(strings.NewReader(`<osm><node id="1" lat="40" lon="1"/><way id="2"/></osm>`), Position)
	require.NoError(t, err)

	assert.Nil(t, rep.Position.Bounds)
	assert.Zero(t, rep.Position.OutOfBounds)
	assert.Equal(t, Range{Min: 40, Max: 40, Count: 1}, rep.Position.Lat)
}

func TestRender(t *testing.T) {
	rep, err := Run(strings.NewReader(doc))
	require.NoError(t, err)

	var table bytes.Buffer
	require.NoError(t, Render(&table, rep, FormatTable))

	out := table.String()
	assert.Contains(t, out, "## Street types\n\n| Type | Count | Streets")
	assert.Contains(t, out, "| Postcode | Count |\n| -------- | ----- |\n| 75201    | 2     |\n| TX       | 1     |\n")
	assert.Contains(t, out, "1 element(s) outside bounds [32, 33] x [-98, -96]")
	assert.Contains(t, out, "## Tags")

	var yml bytes.Buffer
	require.NoError(t, Render(&yml, rep, FormatYAML))
	assert.Contains(t, yml.String(), "out_of_bounds: 1")
	assert.Contains(t, yml.String(), "postcodes:")

	assert.ErrorIs(t, Render(&bytes.Buffer{}, rep, "csv"), ErrUnknownFormat)
}
