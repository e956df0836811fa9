package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"osmclean/internal/config"
)

const input = `<?xml version="1.0" encoding="UTF-8"?>
<osm>
  <bounds minlat="32" minlon="-98" maxlat="34" maxlon="-96"/>
  <node id="1" lat="32.5" lon="-97.0" user="a" uid="1">
    <tag k="addr:street" v="221 W. Lancaster Ave"/>
    <tag k="addr:postcode" v="TX 75050"/>
  </node>
  <node id="2" lat="32.6" lon="-97.1"/>
  <way id="3">
    <nd ref="1"/>
    <nd ref="2"/>
    <tag k="highway" v="residential"/>
  </way>
</osm>`

type harness struct {
	fs     afero.Fs
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{fs: afero.NewMemMapFs()}
	require.NoError(t, afero.WriteFile(h.fs, "/data/in.osm", []byte(input), 0644))

	return h
}

func (h *harness) run(args ...string) error {
	cmd := RootCmd(&App{Fs: h.fs, Stdout: &h.stdout, Stderr: &h.stderr})
	cmd.SetArgs(args)

	return cmd.Execute()
}

func (h *harness) read(t *testing.T, path string) string {
	t.Helper()

	data, err := afero.ReadFile(h.fs, path)
	require.NoError(t, err)

	return string(data)
}

func TestClean(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("clean", "/data/in.osm", "/out/clean.osm"))

	out := h.read(t, "/out/clean.osm")
	assert.Contains(t, out, `<tag k="addr:street" v="West Lancaster Ave"/>`)
	assert.Contains(t, out, `<tag k="addr:housenumber" v="221"/>`)
	assert.Contains(t, out, `<tag k="addr:postcode" v="75050"/>`)
	assert.Contains(t, out, "<bounds")

	logs := h.stderr.String()
	assert.Contains(t, logs, "clean finished")
	assert.Contains(t, logs, "run=")
	assert.Contains(t, logs, "sha256=")
}

func TestClean_PostcodeModeFlag(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("clean", "--postcode-mode", "preserve", "/data/in.osm", "/out/clean.osm"))
	assert.Contains(t, h.read(t, "/out/clean.osm"), `v="TX 75050"`)
}

func TestClean_ConfigFile(t *testing.T) {
	h := newHarness(t)

	cfg := config.Default()
	cfg.Cleaning.PassthroughKinds = []string{"node", "way"}
	require.NoError(t, cfg.SaveConfig(h.fs, "/etc/osmclean.yaml"))

	require.NoError(t, h.run("--config", "/etc/osmclean.yaml", "clean", "/data/in.osm", "/out/clean.osm"))
	assert.NotContains(t, h.read(t, "/out/clean.osm"), "<bounds")
}

func TestClean_InvalidPostcodeMode(t *testing.T) {
	h := newHarness(t)

	err := h.run("clean", "--postcode-mode", "drop", "/data/in.osm", "/out/clean.osm")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidPostcodeMode)
}

func TestClean_MissingInput(t *testing.T) {
	h := newHarness(t)

	err := h.run("clean", "/data/missing.osm", "/out/clean.osm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input")
}

func TestShape(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("shape", "/data/in.osm", "/out/records.jsonl"))

	lines := strings.Split(strings.TrimSpace(h.read(t, "/out/records.jsonl")), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"street":"West Lancaster Ave"`)
	assert.Contains(t, lines[2], `"node_refs":["1","2"]`)
}

func TestShape_NoCleanPretty(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("shape", "--no-clean", "--pretty", "/data/in.osm", "/out/records.json"))

	out := h.read(t, "/out/records.json")
	assert.Contains(t, out, `"street": "221 W. Lancaster Ave"`)
	assert.Contains(t, out, "\n  ")
}

func TestAudit(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("audit", "/data/in.osm"))

	out := h.stdout.String()
	assert.Contains(t, out, "## Street types")
	assert.Contains(t, out, "## Postcodes")
	assert.Contains(t, out, "## Position")
	assert.Contains(t, out, "## Tags")
}

func TestAudit_OnlyYAML(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("audit", "--only", "postcode", "--format", "yaml", "/data/in.osm"))

	out := h.stdout.String()
	assert.Contains(t, out, "postcodes:")
	assert.Contains(t, out, "TX 75050")
	assert.NotContains(t, out, "street:")
}

func TestSample(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("sample", "--every", "2", "/data/in.osm", "/out/sample.osm"))

	out := h.read(t, "/out/sample.osm")
	assert.Contains(t, out, `<node id="1"`)
	assert.NotContains(t, out, `<node id="2"`)
	assert.Contains(t, out, `<way id="3"`)
	assert.NotContains(t, out, "<bounds")
}

func TestArgs(t *testing.T) {
	h := newHarness(t)

	assert.Error(t, h.run("clean", "/data/in.osm"))
	assert.Error(t, h.run("audit"))
}
