// tokenizer.go splits a GPX source into a flat token sequence.
package gpx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Tokenizing errors.
var (
	ErrSourceOpen      = errors.New("failed to open source")
	ErrSourceRead      = errors.New("failed to read source")
	ErrInvalidEncoding = errors.New("invalid UTF-8 in source")
)

// Tokenize reads all of r and returns its tokens in source order.
//
// The source is split on '<', each fragment gets its '<' back and is split again
// after every '>'. Empty and whitespace-only pieces are dropped, and so is the
// first token, which is whatever precedes the first '<'.
func Tokenize(r io.Reader) ([]Token, error) {
	reader := bufio.NewReader(r)

	var (
		tokens []Token
		offset int
	)
	for {
		chunk, readErr := reader.ReadBytes('<')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("%w: %w", ErrSourceRead, readErr)
		}
		if len(chunk) == 0 && readErr == io.EOF {
			break
		}

		fragment := chunk
		if readErr == nil {
			// Trim the delimiter that ReadBytes keeps; it belongs to the next fragment.
			fragment = chunk[:len(chunk)-1]
		}
		if !utf8.Valid(fragment) {
			return nil, fmt.Errorf("%w: fragment at byte %d", ErrInvalidEncoding, offset)
		}
		tokens = appendParts(tokens, "<"+string(fragment))
		offset += len(chunk)

		if readErr == io.EOF {
			break
		}
	}

	if len(tokens) == 0 {
		fLogger.Debug("source holds no tokens")
		return nil, nil
	}

	fLogger.WithField("tokens", len(tokens)-1).Debug("tokenized source")
	return tokens[1:], nil
}

// TokenizeFile opens path and tokenizes its content.
func TokenizeFile(path string) ([]Token, error) {
	fLogger.WithField("file", path).Debug("tokenizing file")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceOpen, err)
	}
	defer func() { _ = f.Close() }()

	return Tokenize(f)
}

// appendParts splits fragment inclusively on '>' and keeps the non-blank parts.
func appendParts(tokens []Token, fragment string) []Token {
	rest := fragment
	for len(rest) > 0 {
		part := rest
		if i := strings.IndexByte(rest, '>'); i >= 0 {
			part = rest[:i+1]
		}
		rest = rest[len(part):]

		if isBlank(part) {
			continue
		}
		tokens = append(tokens, Token(part))
	}
	return tokens
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
