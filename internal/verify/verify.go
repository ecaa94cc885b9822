// Package verify checks that split outputs are well formed and tag-balanced.
package verify

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/muktihari/xmltokenizer"
	"golang.org/x/exp/maps"
)

// ErrUnbalanced is returned by Check when a document's tags do not pair up.
var ErrUnbalanced = errors.New("unbalanced tags")

// Report tallies the element tags of one document.
type Report struct {
	Opened     map[string]int
	Closed     map[string]int
	MaxDepth   int
	FinalDepth int
}

// File reads the document at path.
func File(path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Reader(f)
}

// Reader streams r and counts opening and closing tags per element name.
// Self-closing elements count as both; declarations, comments and processing
// instructions are skipped.
func Reader(r io.Reader) (Report, error) {
	report := Report{
		Opened: make(map[string]int),
		Closed: make(map[string]int),
	}

	tok := xmltokenizer.New(r)
	depth := 0
	for {
		token, err := tok.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return report, fmt.Errorf("failed to read document: %w", err)
		}

		full := string(token.Name.Full)
		if full == "" || strings.HasPrefix(full, "?") || strings.HasPrefix(full, "!") {
			continue
		}

		switch {
		case token.IsEndElement:
			report.Closed[strings.TrimPrefix(full, "/")]++
			depth--
		case token.SelfClosing:
			report.Opened[full]++
			report.Closed[full]++
		default:
			report.Opened[full]++
			depth++
			report.MaxDepth = max(report.MaxDepth, depth)
		}
	}
	report.FinalDepth = depth

	return report, nil
}

// Balanced reports whether every element closes as often as it opens.
func (r Report) Balanced() bool {
	return r.FinalDepth == 0 && len(r.Unbalanced()) == 0
}

// Unbalanced returns the sorted names whose open and close counts differ.
func (r Report) Unbalanced() []string {
	seen := make(map[string]struct{})
	for name := range r.Opened {
		seen[name] = struct{}{}
	}
	for name := range r.Closed {
		seen[name] = struct{}{}
	}

	var names []string
	for _, name := range maps.Keys(seen) {
		if r.Opened[name] != r.Closed[name] {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Contains reports whether the document has at least one name element.
func (r Report) Contains(name string) bool {
	return r.Opened[name] > 0
}

// Elements returns every element name seen, sorted.
func (r Report) Elements() []string {
	names := maps.Keys(r.Opened)
	slices.Sort(names)
	return names
}

// Check verifies the document at path and fails when it is unbalanced.
func Check(path string) (Report, error) {
	report, err := File(path)
	if err != nil {
		return report, err
	}
	if !report.Balanced() {
		return report, fmt.Errorf("%w in %s: %s", ErrUnbalanced, path, strings.Join(report.Unbalanced(), ", "))
	}
	return report, nil
}
