// printer.go writes tokens with canonical indentation.
package gpx

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrWrite is returned when an output stream rejects bytes.
var ErrWrite = errors.New("failed to write output")

// delimiters closes a tag, longest first so "/>" and "?>" win over ">".
var delimiters = []string{"/>", "?>", ">"}

// Print writes tok to every writer and advances the shared state once.
//
// Shared marks a token written to every category. Such tags are reflowed when
// their raw text spans several lines: continuation lines sit one level deeper
// and the closing delimiter sits on its own line at the tag's level.
func Print(state *IndentState, tok Token, shared bool, ws ...io.Writer) error {
	state.BeforeWrite(tok)

	var b strings.Builder
	if state.NeedsBreak(tok, shared) {
		b.WriteString(Indent(state.Level))
	}
	if shared && tok.IsTag() && strings.Contains(string(tok), "\n") {
		b.WriteString(Reflow(tok, state.Level))
	} else {
		b.WriteString(string(tok))
	}

	out := b.String()
	for _, w := range ws {
		if _, err := io.WriteString(w, out); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}

	state.AfterWrite(tok)
	return nil
}

// Reflow re-derives line breaks for a tag spanning several source lines written
// at depth level. Applying it to its own output returns the same text.
func Reflow(tok Token, level int) string {
	lines := strings.Split(string(tok), "\n")

	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if i == 0 {
			line = strings.TrimRight(line, " \t")
		} else {
			line = strings.TrimSpace(line)
		}
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}

	var b strings.Builder
	for i, line := range kept {
		delim := closingDelimiter(line)
		switch {
		case i > 0 && line == delim:
			b.WriteString(Indent(level))
			b.WriteString(line)
			continue
		case i > 0:
			b.WriteString(Indent(level + 1))
		}

		if i < len(kept)-1 || delim == "" || line == delim {
			b.WriteString(line)
			continue
		}
		b.WriteString(strings.TrimRight(strings.TrimSuffix(line, delim), " \t"))
		b.WriteString(Indent(level))
		b.WriteString(delim)
	}
	return b.String()
}

func closingDelimiter(line string) string {
	for _, d := range delimiters {
		if strings.HasSuffix(line, d) {
			return d
		}
	}
	return ""
}
