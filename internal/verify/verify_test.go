package verify

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Miitto/gpx-separator/pkg/gpx"
)

const balanced = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1">
  <!-- exported -->
  <wpt lat="1" lon="2">
    <name>A</name>
  </wpt>
  <wpt lat="3" lon="4"/>
</gpx>`

func TestReader_Balanced(t *testing.T) {
	report, err := Reader(strings.NewReader(balanced))
	require.NoError(t, err)

	assert.True(t, report.Balanced())
	assert.Empty(t, report.Unbalanced())
	assert.Equal(t, 2, report.Opened["wpt"])
	assert.Equal(t, 2, report.Closed["wpt"])
	assert.Equal(t, 3, report.MaxDepth)
	assert.Zero(t, report.FinalDepth)
	assert.True(t, report.Contains("wpt"))
	assert.False(t, report.Contains("trk"))
	assert.Equal(t, []string{"gpx", "name", "wpt"}, report.Elements())
}

func TestReader_Unbalanced(t *testing.T) {
	report, err := Reader(strings.NewReader(`<gpx><trk><name>x</name></gpx>`))
	require.NoError(t, err)

	assert.False(t, report.Balanced())
	assert.Equal(t, []string{"trk"}, report.Unbalanced())
	assert.Equal(t, 1, report.FinalDepth)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.gpx")
	require.NoError(t, os.WriteFile(good, []byte(balanced), 0600))
	_, err := Check(good)
	require.NoError(t, err)

	bad := filepath.Join(dir, "bad.gpx")
	require.NoError(t, os.WriteFile(bad, []byte(`<gpx><rte></gpx>`), 0600))
	_, err = Check(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnbalanced))
	assert.Contains(t, err.Error(), "rte")

	_, err = Check(filepath.Join(dir, "missing.gpx"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReader_SplitOutputs(t *testing.T) {
	src := `<?xml version="1.0"
    encoding="UTF-8"?>
<gpx version="1.1"
    creator="test">
<metadata><name>Walk</name></metadata>
<wpt lat="1" lon="2"/>
<wpt lat="3" lon="4"><name>B</name></wpt>
<rte><name>R</name><rtept lat="1" lon="2"/></rte>
<trk><name>T</name><trkseg><trkpt lat="1" lon="2"><ele>3</ele></trkpt></trkseg></trk>
</gpx>`

	tokens, err := gpx.Tokenize(strings.NewReader(src))
	require.NoError(t, err)

	var wpt, rte, trk bytes.Buffer
	_, err = gpx.Split(tokens, gpx.Writers{Waypoints: &wpt, Routes: &rte, Tracks: &trk})
	require.NoError(t, err)

	for name, doc := range map[string]*bytes.Buffer{"wpt": &wpt, "rte": &rte, "trk": &trk} {
		report, err := Reader(bytes.NewReader(doc.Bytes()))
		require.NoError(t, err, name)
		assert.True(t, report.Balanced(), "%s: %v", name, report.Unbalanced())
		assert.True(t, report.Contains(name), name)
		assert.True(t, report.Contains("metadata"), name)
	}
}
