// token.go defines lexical tokens and the tag classifier.
package gpx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind classifies a token. It is derived from the token text and never stored.
type TokenKind int

const (
	Text           TokenKind = iota // run of plain text, comments and declarations
	OpeningTag                      // <name ...>
	ClosingTag                      // </name>
	SelfClosingTag                  // <name .../> or <?name ...?>
)

// String returns the kind name.
func (k TokenKind) String() string {
	switch k {
	case OpeningTag:
		return "opening"
	case ClosingTag:
		return "closing"
	case SelfClosingTag:
		return "self-closing"
	default:
		return "text"
	}
}

// Token is a fragment exactly as it appeared in the source, delimiters included.
type Token string

// TagInfo describes the tag part of a token.
type TagInfo struct {
	Name        string // element name; processing instructions keep their leading '?'
	Closing     bool
	SelfClosing bool
}

// IsOpeningTag reports whether t opens an element.
func (t Token) IsOpeningTag() bool {
	s := string(t)
	return strings.HasPrefix(s, "<") &&
		!strings.HasPrefix(s, "</") &&
		!strings.HasPrefix(s, "<!") &&
		!strings.HasPrefix(s, "<?") &&
		!t.IsSelfClosingTag()
}

// IsClosingTag reports whether t closes an element.
func (t Token) IsClosingTag() bool {
	return strings.HasPrefix(string(t), "</")
}

// IsSelfClosingTag reports whether t is an empty element or a processing instruction.
func (t Token) IsSelfClosingTag() bool {
	s := string(t)
	if strings.HasPrefix(s, "<?") && strings.HasSuffix(s, "?>") {
		return true
	}
	return strings.HasPrefix(s, "<") &&
		strings.HasSuffix(s, "/>") &&
		!strings.HasPrefix(s, "</") &&
		!strings.HasPrefix(s, "<!")
}

// IsTag reports whether t is any kind of tag.
func (t Token) IsTag() bool {
	return t.IsOpeningTag() || t.IsClosingTag() || t.IsSelfClosingTag()
}

// Kind returns the classification of t.
func (t Token) Kind() TokenKind {
	switch {
	case t.IsClosingTag():
		return ClosingTag
	case t.IsSelfClosingTag():
		return SelfClosingTag
	case t.IsOpeningTag():
		return OpeningTag
	default:
		return Text
	}
}

// Delta is the change in nesting depth caused by t.
func (t Token) Delta() int {
	switch t.Kind() {
	case OpeningTag:
		return 1
	case ClosingTag:
		return -1
	default:
		return 0
	}
}

// Tag extracts the tag descriptor. It returns false for text tokens.
func (t Token) Tag() (TagInfo, bool) {
	kind := t.Kind()
	if kind == Text {
		return TagInfo{}, false
	}

	s := strings.TrimPrefix(string(t), "<")
	info := TagInfo{
		Closing:     kind == ClosingTag,
		SelfClosing: kind == SelfClosingTag,
	}
	if info.Closing {
		s = s[1:]
	}

	end := 0
	if strings.HasPrefix(s, "?") {
		end = 1
	}
	for end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if unicode.IsSpace(r) || r == '/' || r == '>' || r == '?' {
			break
		}
		end += size
	}
	info.Name = s[:end]

	return info, true
}

// Is reports whether the tag names the element name. The name must match as a
// prefix and must not continue with a letter, so "wptx" is not "wpt".
func (i TagInfo) Is(name string) bool {
	return hasName(i.Name, name)
}

func hasName(s, name string) bool {
	if !strings.HasPrefix(s, name) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[len(name):])
	return r == utf8.RuneError || !unicode.IsLetter(r)
}
