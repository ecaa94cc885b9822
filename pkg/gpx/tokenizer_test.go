package gpx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_EmptyInput(t *testing.T) {
	tokens, err := Tokenize(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestTokenize_NoTags(t *testing.T) {
	tokens, err := Tokenize(strings.NewReader("just text"))
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestTokenize_SplitsTagsAndText(t *testing.T) {
	tokens, err := Tokenize(strings.NewReader("<a><tag>trailingtext</a>"))
	require.NoError(t, err)
	assert.Equal(t, []Token{"<a>", "<tag>", "trailingtext", "</a>"}, tokens)
}

func TestTokenize_DropsBlankParts(t *testing.T) {
	input := "<?xml version=\"1.0\"?>\n<gpx>\n  <wpt lat=\"1\" lon=\"2\"/>\n\t\n</gpx>\n"
	tokens, err := Tokenize(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Token{`<?xml version="1.0"?>`, "<gpx>", `<wpt lat="1" lon="2"/>`, "</gpx>"}, tokens)
}

func TestTokenize_DropsLeadingArtifact(t *testing.T) {
	tokens, err := Tokenize(strings.NewReader("junk before<gpx></gpx>"))
	require.NoError(t, err)
	assert.Equal(t, []Token{"<gpx>", "</gpx>"}, tokens)
}

func TestTokenize_KeepsTextWhitespace(t *testing.T) {
	tokens, err := Tokenize(strings.NewReader("<gpx><name> Trail  Head </name></gpx>"))
	require.NoError(t, err)
	require.Len(t, tokens, 5)
	assert.Equal(t, Token(" Trail  Head "), tokens[2])
}

func TestTokenize_MultiLineTag(t *testing.T) {
	input := "<?xml version=\"1.0\"?>\n<gpx version=\"1.1\"\n  creator=\"me\">\n</gpx>"
	tokens, err := Tokenize(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, Token("<gpx version=\"1.1\"\n  creator=\"me\">"), tokens[1])
}

func TestTokenize_InvalidUTF8(t *testing.T) {
	_, err := Tokenize(strings.NewReader("<gpx><name>\xff\xfe</name></gpx>"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEncoding))
	assert.Contains(t, err.Error(), "byte 6")
}

func TestTokenize_UTF8Text(t *testing.T) {
	tokens, err := Tokenize(strings.NewReader("<gpx><name>Zürich – Café</name></gpx>"))
	require.NoError(t, err)
	require.Len(t, tokens, 5)
	assert.Equal(t, Token("Zürich – Café"), tokens[2])
}

func TestTokenizeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.gpx")
	require.NoError(t, os.WriteFile(path, []byte("<gpx><trk></trk></gpx>"), 0600))

	tokens, err := TokenizeFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Token{"<gpx>", "<trk>", "</trk>", "</gpx>"}, tokens)
}

func TestTokenizeFile_Missing(t *testing.T) {
	_, err := TokenizeFile(filepath.Join(t.TempDir(), "missing.gpx"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceOpen))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
