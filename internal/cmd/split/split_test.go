package split

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const walk = `<?xml version="1.0"?>
<gpx version="1.1">
<metadata><name>Walk</name></metadata>
<wpt lat="1" lon="2"><name>Start</name></wpt>
<rte><rtept lat="1" lon="2"/></rte>
<trk><trkseg><trkpt lat="1" lon="2"/></trkseg></trk>
</gpx>
`

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(walk), 0600))
	return path
}

func newOpts(stdin string) (*splitOptions, *bytes.Buffer) {
	logger, _ := test.NewNullLogger()
	var out bytes.Buffer
	return &splitOptions{
		noColor: true,
		logger:  logger,
		stdin:   strings.NewReader(stdin),
		stdout:  &out,
	}, &out
}

func TestRunSplit_WritesOutputs(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "walk.gpx")

	opts, out := newOpts("")
	require.NoError(t, runSplit([]string{src}, opts))

	for _, name := range []string{"walk_wpt.gpx", "walk_rte.gpx", "walk_trk.gpx", "walk_tokens.txt"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.Contains(t, out.String(), "✓ Split "+src)

	wpt, err := os.ReadFile(filepath.Join(dir, "walk_wpt.gpx"))
	require.NoError(t, err)
	assert.Contains(t, string(wpt), "<wpt")
	assert.NotContains(t, string(wpt), "<trk>")
	assert.Contains(t, string(wpt), "<metadata>")
}

func TestRunSplit_OutputDir(t *testing.T) {
	src := writeSource(t, t.TempDir(), "walk.gpx")
	outDir := filepath.Join(t.TempDir(), "split")

	opts, _ := newOpts("")
	opts.dir = outDir
	require.NoError(t, runSplit([]string{src}, opts))

	assert.FileExists(t, filepath.Join(outDir, "walk_trk.gpx"))
}

func TestRunSplit_ConfirmYes(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "walk.gpx")
	stale := filepath.Join(dir, "walk_wpt.gpx")
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0600))

	opts, out := newOpts("y\n")
	require.NoError(t, runSplit([]string{src}, opts))

	assert.Contains(t, out.String(), "Overwrite? [y/N]")
	data, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(data))
}

func TestRunSplit_ConfirmNo(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "walk.gpx")
	stale := filepath.Join(dir, "walk_wpt.gpx")
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0600))

	opts, out := newOpts("n\n")
	require.NoError(t, runSplit([]string{src}, opts))

	assert.Contains(t, out.String(), "! Split cancelled: "+src)
	assert.NotContains(t, out.String(), "✓")

	data, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.Equal(t, "stale", string(data))
	assert.FileExists(t, filepath.Join(dir, "walk_tokens.txt"), "token dump precedes the overwrite check")
}

func TestRunSplit_EmptyAnswerDeclines(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "walk.gpx")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "walk_trk.gpx"), []byte("stale"), 0600))

	opts, out := newOpts("")
	require.NoError(t, runSplit([]string{src}, opts))
	assert.Contains(t, out.String(), "Split cancelled")
}

func TestRunSplit_Force(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "walk.gpx")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "walk_rte.gpx"), []byte("stale"), 0600))

	opts, out := newOpts("")
	opts.force = true
	require.NoError(t, runSplit([]string{src}, opts))

	assert.NotContains(t, out.String(), "Overwrite?")
	assert.Contains(t, out.String(), "✓ Split")
}

func TestRunSplit_Verify(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "walk.gpx")

	opts, out := newOpts("")
	opts.verify = true
	require.NoError(t, runSplit([]string{src}, opts))
	assert.NotContains(t, out.String(), "✗")
}

func TestRunSplit_MissingSource(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "walk.gpx")
	missing := filepath.Join(dir, "missing.gpx")

	opts, _ := newOpts("")
	err := runSplit([]string{missing, good}, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)

	assert.FileExists(t, filepath.Join(dir, "walk_wpt.gpx"), "other sources still split")
}

func TestRunSplit_JSON(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "walk.gpx")

	opts, out := newOpts("")
	opts.output = "json"
	require.NoError(t, runSplit([]string{src}, opts))

	var summaries []fileSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summaries))
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, src, s.Source)
	assert.Equal(t, filepath.Join(dir, "walk"), s.Path)
	assert.Len(t, s.Files, 3)
	assert.Equal(t, 1, s.Captures["waypoints"])
	assert.Equal(t, 1, s.Captures["routes"])
	assert.Equal(t, 1, s.Captures["tracks"])
	assert.False(t, s.Cancelled)
	assert.Positive(t, s.Tokens)
}

func TestRunSplit_LogsDecline(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "walk.gpx")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "walk_wpt.gpx"), []byte("stale"), 0600))

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	opts, _ := newOpts("n\n")
	opts.logger = logger
	require.NoError(t, runSplit([]string{src}, opts))

	var found bool
	for _, e := range hook.AllEntries() {
		if e.Message == "overwrite declined" {
			found = true
			assert.Equal(t, src, e.Data["file"])
		}
	}
	assert.True(t, found)
}

func TestNewCmdSplit_Flags(t *testing.T) {
	cmd := NewCmdSplit()

	for _, name := range []string{"dir", "force", "verify", "reveal", "jobs"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "d", cmd.Flags().Lookup("dir").Shorthand)
	assert.Equal(t, "f", cmd.Flags().Lookup("force").Shorthand)
	assert.Error(t, cmd.Args(cmd, nil))
}
