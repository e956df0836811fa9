package sink

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"osmclean/internal/models"
	"osmclean/internal/reader"
)

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func TestXMLWriter_Write(t *testing.T) {
	var buf bytes.Buffer

	w := NewXMLWriter(&buf)
	require.NoError(t, w.Write(&models.Element{
		Kind:  models.KindNode,
		Attrs: []xml.Attr{attr("id", "1"), attr("lat", "32.5")},
		Children: []models.Child{
			models.NewTagChild("name", `Joe's "Bar" & <Grill>`, false),
		},
	}))
	require.NoError(t, w.Write(&models.Element{
		Kind:  models.KindBounds,
		Attrs: []xml.Attr{attr("minlat", "32.1")},
	}))
	require.NoError(t, w.Close())

	assert.Equal(t, 2, w.Count())

	want := `<?xml version="1.0" encoding="UTF-8"?>
<osm>
  <node id="1" lat="32.5">
    <tag k="name" v="Joe&#39;s &#34;Bar&#34; &amp; &lt;Grill&gt;"/>
  </node>
  <bounds minlat="32.1"/>
</osm>
`
	assert.Equal(t, want, buf.String())

	assert.ErrorIs(t, w.Write(&models.Element{Kind: models.KindNode}), ErrClosed)
}

func TestXMLWriter_RoundTrip(t *testing.T) {
	doc := `<osm><way id="10"><nd ref="1"/><nd ref="2"/><tag k="name" v="A &amp; B"/></way><node id="1" lat="1" lon="2"/></osm>`

	var buf bytes.Buffer

	w := NewXMLWriter(&buf)

	for elem, err := range reader.New(strings.NewReader(doc)).All() {
		require.NoError(t, err)
		require.NoError(t, w.Write(elem))
	}

	require.NoError(t, w.Close())

	var elems []*models.Element

	for elem, err := range reader.New(&buf).All() {
		require.NoError(t, err)

		elems = append(elems, elem)
	}

	require.Len(t, elems, 2)
	assert.Equal(t, []string{"1", "2"}, elems[0].Refs())
	assert.Equal(t, "A & B", elems[0].Tags()[0].Value)
	assert.Equal(t, "1", elems[1].ID())
}

func TestXMLWriter_EmptyDocument(t *testing.T) {
	var buf bytes.Buffer

	w := NewXMLWriter(&buf)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<osm>\n</osm>\n", buf.String())
}

func TestJSONWriter_Compact(t *testing.T) {
	var buf bytes.Buffer

	w := NewJSONWriter(&buf, false)
	require.NoError(t, w.Write(models.Record{"type": "node", "name": "A & B", "pos": [2]float64{1.5, -2}}))
	require.NoError(t, w.Write(models.Record{"type": "way", "node_refs": []string{"1", "2"}}))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"name":"A & B","pos":[1.5,-2],"type":"node"}`, lines[0])
	assert.Equal(t, `{"node_refs":["1","2"],"type":"way"}`, lines[1])
	assert.Equal(t, 2, w.Count())
}

func TestJSONWriter_Pretty(t *testing.T) {
	var buf bytes.Buffer

	w := NewJSONWriter(&buf, true)
	require.NoError(t, w.Write(models.Record{
		"type":    "node",
		"address": map[string]string{"street": "Main Street"},
	}))
	require.NoError(t, w.Close())

	out := buf.String()
	assert.Contains(t, out, "\n  \"address\": {")
	assert.True(t, strings.HasSuffix(out, "}\n"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "node", decoded["type"])
}
