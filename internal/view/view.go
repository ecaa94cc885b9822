// Package view provides output formatting for gpxsep commands.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// ValidFormats returns the accepted --output values.
func ValidFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatPlain)}
}

// ValidateFormat rejects unknown output formats. Empty selects the table format.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	for _, f := range ValidFormats() {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (valid: %s)", format, strings.Join(ValidFormats(), ", "))
}

// Renderer renders data in a specific format.
type Renderer struct {
	format Format
	writer io.Writer
}

// NewRenderer creates a new renderer with the specified format.
func NewRenderer(format Format, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	if format == "" {
		format = FormatTable
	}
	return &Renderer{
		format: format,
		writer: os.Stdout,
	}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format { return r.format }

// RenderTable renders rows under headers. Table output pads columns to the
// widest cell; plain output is tab separated without headers.
func (r *Renderer) RenderTable(headers []string, rows [][]string) {
	switch r.format {
	case FormatJSON:
		r.renderTableAsJSON(headers, rows)
		return
	case FormatPlain:
		r.renderTableAsPlain(rows)
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(widths) && len(val) > widths[i] {
				widths[i] = len(val)
			}
		}
	}

	bold := color.New(color.Bold)
	for i, h := range headers {
		_, _ = bold.Fprint(r.writer, pad(h, widths[i], i == len(headers)-1))
	}
	fmt.Fprintln(r.writer)

	for _, row := range rows {
		for i, val := range row {
			if i >= len(widths) {
				break
			}
			fmt.Fprint(r.writer, pad(val, widths[i], i == len(row)-1))
		}
		fmt.Fprintln(r.writer)
	}
}

func pad(s string, width int, last bool) string {
	if last {
		return s
	}
	return s + strings.Repeat(" ", width-len(s)+2)
}

func (r *Renderer) renderTableAsJSON(headers []string, rows [][]string) {
	var result []map[string]string
	for _, row := range rows {
		item := make(map[string]string)
		for i, header := range headers {
			if i < len(row) {
				item[strings.ToLower(header)] = row[i]
			}
		}
		result = append(result, item)
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(r.writer, string(data))
}

func (r *Renderer) renderTableAsPlain(rows [][]string) {
	for _, row := range rows {
		fmt.Fprintln(r.writer, strings.Join(row, "\t"))
	}
}

// RenderJSON renders an object as JSON.
func (r *Renderer) RenderJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(r.writer, string(data))
	return nil
}

// RenderText renders plain text.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, text)
}

// RenderKeyValue renders a key-value pair.
func (r *Renderer) RenderKeyValue(key, value string) {
	switch r.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]string{key: value})
		fmt.Fprintln(r.writer, string(data))
	case FormatPlain:
		fmt.Fprintf(r.writer, "%s\t%s\n", key, value)
	default:
		bold := color.New(color.Bold)
		_, _ = bold.Fprintf(r.writer, "%s: ", key)
		fmt.Fprintln(r.writer, value)
	}
}

// Success prints a success message.
func (r *Renderer) Success(msg string) {
	green := color.New(color.FgGreen)
	_, _ = green.Fprintln(r.writer, "✓ "+msg)
}

// Warning prints a warning message.
func (r *Renderer) Warning(msg string) {
	yellow := color.New(color.FgYellow)
	_, _ = yellow.Fprintln(r.writer, "! "+msg)
}

// Error prints an error message.
func (r *Renderer) Error(msg string) {
	red := color.New(color.FgRed)
	_, _ = red.Fprintln(r.writer, "✗ "+msg)
}

// Truncate shortens s to at most maxLen bytes, ending in "..." when cut.
// It never splits a multi-byte character.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:runeBoundary(s, maxLen)]
	}
	return s[:runeBoundary(s, maxLen-3)] + "..."
}

func runeBoundary(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
