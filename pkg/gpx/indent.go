// indent.go holds the nesting depth shared by every output stream.
package gpx

import "strings"

const indentUnit = "  "

// IndentState tracks the single nesting depth of the source document.
//
// Level is the depth for the next token written. Closing tags lower it before
// they are written and opening tags raise it afterwards.
type IndentState struct {
	Level       int
	LastLevel   int
	LastWasText bool
}

// NewIndentState returns the state for the start of a pass. The first token
// counts as following text so it is never preceded by a line break.
func NewIndentState() *IndentState {
	return &IndentState{LastWasText: true}
}

// BeforeWrite applies the pre-write rule: closing tags step the level down.
func (s *IndentState) BeforeWrite(tok Token) {
	if tok.IsClosingTag() {
		s.LastLevel = s.Level
		s.Level += tok.Delta()
	}
}

// NeedsBreak reports whether tok starts on a new, indented line. Tags following
// text stay on the text's line. A tag breaks when the level changed; shared
// writes also separate top-level siblings, captured writes do not.
func (s *IndentState) NeedsBreak(tok Token, shared bool) bool {
	if !tok.IsTag() || s.LastWasText {
		return false
	}
	return s.Level != s.LastLevel || (shared && s.Level == 0)
}

// AfterWrite records the token kind and steps the level up after opening tags.
func (s *IndentState) AfterWrite(tok Token) {
	s.LastWasText = !tok.IsTag()
	if tok.IsOpeningTag() {
		s.LastLevel = s.Level
		s.Level += tok.Delta()
	}
}

// Indent returns the line break and indentation for depth level.
func Indent(level int) string {
	if level < 0 {
		level = 0
	}
	return "\n" + strings.Repeat(indentUnit, level)
}
