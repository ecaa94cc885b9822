package view

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"empty (default)", "", false},
		{"table", "table", false},
		{"json", "json", false},
		{"plain", "plain", false},
		{"invalid", "invalid", true},
		{"xml", "xml", true},
		{"TABLE uppercase", "TABLE", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid output format")
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidFormats(t *testing.T) {
	assert.Equal(t, []string{"table", "json", "plain"}, ValidFormats())
}

func TestNewRenderer_DefaultFormat(t *testing.T) {
	assert.Equal(t, FormatTable, NewRenderer("", true).Format())
	assert.Equal(t, FormatJSON, NewRenderer(FormatJSON, true).Format())
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string", "<wpt>", 10, "<wpt>"},
		{"exact length", "<wpt>", 5, "<wpt>"},
		{"truncate with ellipsis", `<wpt lat="1">`, 8, "<wpt ..."},
		{"very short max", "<wpt>", 3, "<wp"},
		{"empty string", "", 10, ""},
		{"keeps runes whole", "Zürich", 5, "Z..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.maxLen))
		})
	}
}

func TestRenderer_RenderTable_Table(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatTable, true)
	r.SetWriter(&buf)

	r.RenderTable([]string{"#", "KIND", "TOKEN"}, [][]string{
		{"1", "opening", "<gpx>"},
		{"12", "self-closing", `<wpt lat="1"/>`},
	})

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "#   KIND          TOKEN", lines[0])
	assert.Equal(t, "1   opening       <gpx>", lines[1])
	assert.Equal(t, `12  self-closing  <wpt lat="1"/>`, lines[2])
}

func TestRenderer_RenderTable_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatJSON, true)
	r.SetWriter(&buf)

	r.RenderTable([]string{"FILE", "ELEMENTS"}, [][]string{
		{"walk_wpt.gpx", "3"},
		{"walk_rte.gpx"},
	})

	var result []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result, 2)
	assert.Equal(t, "walk_wpt.gpx", result[0]["file"])
	assert.Equal(t, "3", result[0]["elements"])
	_, exists := result[1]["elements"]
	assert.False(t, exists)
}

func TestRenderer_RenderTable_Plain(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatPlain, true)
	r.SetWriter(&buf)

	r.RenderTable([]string{"ID", "NAME"}, [][]string{{"1", "First"}, {"2", "Second"}})

	assert.Equal(t, "1\tFirst\n2\tSecond\n", buf.String())
}

func TestRenderer_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatTable, true)
	r.SetWriter(&buf)

	r.RenderTable([]string{"ID", "NAME"}, nil)
	assert.Equal(t, "ID  NAME\n", buf.String())
}

func TestRenderer_RenderJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatJSON, true)
	r.SetWriter(&buf)

	require.NoError(t, r.RenderJSON(map[string]int{"tokens": 5}))

	var result map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, 5, result["tokens"])
}

func TestRenderer_RenderKeyValue(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatTable, "Tokens: 12\n"},
		{FormatPlain, "Tokens\t12\n"},
		{FormatJSON, `{"Tokens":"12"}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRenderer(tt.format, true)
			r.SetWriter(&buf)

			r.RenderKeyValue("Tokens", "12")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderer_Messages(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatTable, true)
	r.SetWriter(&buf)

	r.Success("Split walk.gpx")
	r.Warning("Split cancelled")
	r.Error("failed")
	r.RenderText("done")

	assert.Equal(t, "✓ Split walk.gpx\n! Split cancelled\n✗ failed\ndone\n", buf.String())
}
