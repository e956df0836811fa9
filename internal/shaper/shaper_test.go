package shaper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"osmclean/internal/models"
	"osmclean/internal/reader"
)

func readOne(t *testing.T, doc string) *models.Element {
	t.Helper()

	elem, err := reader.New(strings.NewReader(doc)).Next()
	require.NoError(t, err)

	return elem
}

func TestShaper_Shape_Node(t *testing.T) {
	elem := readOne(t, `<osm>
  <node id="2406124091" visible="true" version="2" changeset="17206049"
        timestamp="2013-08-03T16:43:42Z" user="linuxUser16" uid="1219059"
        lat="41.9757030" lon="-87.6921867">
    <tag k="addr:housenumber" v="5157"/>
    <tag k="addr:postcode" v="60625"/>
    <tag k="addr:street" v="North Lincoln Ave"/>
    <tag k="addr:street:name" v="Lincoln"/>
    <tag k="amenity" v="restaurant"/>
    <tag k="name" v="La Cabana De Don Luis"/>
    <tag k="type" v="multipolygon"/>
    <tag k="bad key" v="x"/>
    <tag k="tiger:county" v="Dallas, TX"/>
  </node>
</osm>`)

	rec, err := NewShaper().Shape(elem)
	require.NoError(t, err)

	assert.Equal(t, models.Record{
		"type":    "node",
		"id":      "2406124091",
		"visible": "true",
		"created": map[string]string{
			"version":   "2",
			"changeset": "17206049",
			"timestamp": "2013-08-03T16:43:42Z",
			"user":      "linuxUser16",
			"uid":       "1219059",
		},
		"pos": [2]float64{41.9757030, -87.6921867},
		"address": map[string]string{
			"housenumber": "5157",
			"postcode":    "60625",
			"street":      "North Lincoln Ave",
		},
		"amenity":      "restaurant",
		"name":         "La Cabana De Don Luis",
		"tag_type":     "multipolygon",
		"tiger:county": "Dallas, TX",
	}, rec)
}

func TestShaper_Shape_Way(t *testing.T) {
	t.Run("Should keep node refs in document order", func(t *testing.T) {
		elem := readOne(t, `<osm><way id="1"><nd ref="305896090"/><tag k="highway" v="service"/><nd ref="1719825889"/></way></osm>`)

		rec, err := NewShaper().Shape(elem)
		require.NoError(t, err)
		assert.Equal(t, []string{"305896090", "1719825889"}, rec.NodeRefs())
		assert.NotContains(t, rec, models.KeyPos)
		assert.NotContains(t, rec, models.KeyCreated)
	})

	t.Run("Should omit node refs when the way has none", func(t *testing.T) {
		elem := readOne(t, `<osm><way id="1"><tag k="highway" v="service"/></way></osm>`)

		rec, err := NewShaper().Shape(elem)
		require.NoError(t, err)
		assert.NotContains(t, rec, models.KeyNodeRefs)
		assert.NotContains(t, rec, models.KeyAddress)
		assert.Nil(t, rec.Address())
	})
}

func TestShaper_Shape_PartialPosition(t *testing.T) {
	elem := readOne(t, `<osm><node id="1" lat="32.5"/></osm>`)

	rec, err := NewShaper().Shape(elem)
	require.NoError(t, err)
	assert.NotContains(t, rec, models.KeyPos)
}

func TestShaper_Shape_FormatError(t *testing.T) {
	elem := readOne(t, `<osm><node id="9" lat="north" lon="-97.0"/></osm>`)

	_, err := NewShaper().Shape(elem)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "node", fe.Kind)
	assert.Equal(t, "9", fe.ID)
	assert.Equal(t, "lat", fe.Key)
}

func TestShaper_Shape_OtherKinds(t *testing.T) {
	elem := readOne(t, `<osm><relation id="1"><tag k="type" v="route"/></relation></osm>`)

	rec, err := NewShaper().Shape(elem)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestShaper_Shape_ProblemKeysNeverSurface(t *testing.T) {
	keys := []string{"a=b", "a+b", "a/b", "a&b", "a<b", "a;b", "a'b", "a?b", "a%b", "a#b", "a$b", "a@b", "a,b", "a.b", "a b", "addr:st reet"}

	elem := &models.Element{Kind: models.KindNode}
	for _, k := range keys {
		elem.Children = append(elem.Children, models.NewTagChild(k, "value", false))
	}

	rec, err := NewShaper().Shape(elem)
	require.NoError(t, err)
	assert.Equal(t, models.Record{"type": "node"}, rec)
}
