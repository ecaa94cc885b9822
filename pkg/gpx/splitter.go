// splitter.go drives the single pass that routes tokens to the category outputs.
package gpx

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

type (
	// Writers holds the destinations of a pass. A nil category writer discards
	// its output. Tokens is optional and receives every token verbatim, one per line.
	Writers struct {
		Waypoints io.Writer
		Routes    io.Writer
		Tracks    io.Writer
		Tokens    io.Writer
	}

	// Stats summarises a finished pass.
	Stats struct {
		Tokens     int
		Captures   map[Category]int
		Broadcast  int
		FinalLevel int
	}

	// Splitter routes a materialized token sequence to the category writers.
	//
	// It owns the cursor into the tokens and the indent state; capture handlers
	// advance the same cursor as the main loop.
	Splitter struct {
		tokens  []Token
		pos     int
		state   *IndentState
		writers Writers
		stats   Stats
		logger  logrus.FieldLogger
		trace   func(Trace)
	}

	// Trace describes one routed token: its cursor position, destination and
	// the depth it is written at.
	Trace struct {
		Pos   int
		Token Token
		Dest  Destination
		Level int
	}

	// Option defines the Splitter functional option type.
	Option func(*Splitter)
)

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(s *Splitter) { s.logger = logger } }

// WithTrace registers fn to be called for every token before it is written.
func WithTrace(fn func(Trace)) Option { return func(s *Splitter) { s.trace = fn } }

// WithState replaces the initial indent state.
func WithState(state *IndentState) Option { return func(s *Splitter) { s.state = state } }

// NewSplitter creates a Splitter over tokens.
func NewSplitter(tokens []Token, writers Writers, opts ...Option) *Splitter {
	s := &Splitter{
		tokens:  tokens,
		state:   NewIndentState(),
		writers: writers,
		stats:   Stats{Captures: make(map[Category]int)},
		logger:  fLogger,
	}

	for _, w := range []*io.Writer{&s.writers.Waypoints, &s.writers.Routes, &s.writers.Tracks} {
		if *w == nil {
			*w = io.Discard
		}
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Pos returns the number of tokens consumed so far.
func (s *Splitter) Pos() int { return s.pos }

// State returns the shared indent state.
func (s *Splitter) State() *IndentState { return s.state }

// Run consumes every token once, left to right. The first write error aborts
// the pass.
func (s *Splitter) Run() (Stats, error) {
	for s.pos < len(s.tokens) {
		tok := s.tokens[s.pos]

		if c, ok := Route(tok).Category(); ok {
			if err := s.capture(c); err != nil {
				return s.finish(), err
			}
			continue
		}

		if err := s.broadcast(tok); err != nil {
			return s.finish(), err
		}
	}

	return s.finish(), nil
}

// capture writes tokens to c's output until the category element ends.
//
// Termination matches the first literal closing tag of the category; nested
// elements of the same name are not tracked.
func (s *Splitter) capture(c Category) error {
	w := s.writer(c)
	log := s.logger.WithFields(logrus.Fields{"category": c.String(), "pos": s.pos})
	log.Debug("capture started")
	s.stats.Captures[c]++

	for s.pos < len(s.tokens) {
		tok := s.next()
		if err := s.emit(tok, Destination(c)); err != nil {
			return err
		}
		if err := Print(s.state, tok, false, w); err != nil {
			return fmt.Errorf("%s: %w", c, err)
		}
		if c.ends(tok) {
			log.WithField("end", s.pos).Debugf("capture ended at %s", tok)
			return nil
		}
	}

	log.Debug("capture ran out of tokens")
	return nil
}

func (s *Splitter) broadcast(tok Token) error {
	s.next()
	s.stats.Broadcast++
	if err := s.emit(tok, Shared); err != nil {
		return err
	}
	return Print(s.state, tok, true, s.writers.Waypoints, s.writers.Routes, s.writers.Tracks)
}

func (s *Splitter) next() Token {
	tok := s.tokens[s.pos]
	s.pos++
	return tok
}

// emit reports tok to the tracer and the token dump.
func (s *Splitter) emit(tok Token, dest Destination) error {
	if s.trace != nil {
		level := s.state.Level
		if tok.IsClosingTag() {
			level += tok.Delta()
		}
		s.trace(Trace{Pos: s.pos - 1, Token: tok, Dest: dest, Level: level})
	}

	if s.writers.Tokens == nil {
		return nil
	}
	if _, err := io.WriteString(s.writers.Tokens, string(tok)+"\n"); err != nil {
		return fmt.Errorf("%w: tokens: %w", ErrWrite, err)
	}
	return nil
}

func (s *Splitter) writer(c Category) io.Writer {
	switch c {
	case Waypoints:
		return s.writers.Waypoints
	case Routes:
		return s.writers.Routes
	default:
		return s.writers.Tracks
	}
}

func (s *Splitter) finish() Stats {
	s.stats.Tokens = s.pos
	s.stats.FinalLevel = s.state.Level
	s.logger.Debugf("pass finished: %s", spew.Sdump(s.stats))
	return s.stats
}

// Split routes tokens to writers with a fresh Splitter.
func Split(tokens []Token, writers Writers, opts ...Option) (Stats, error) {
	return NewSplitter(tokens, writers, opts...).Run()
}

// WriteTokens writes every token followed by a newline.
func WriteTokens(w io.Writer, tokens []Token) error {
	for _, tok := range tokens {
		if _, err := io.WriteString(w, string(tok)+"\n"); err != nil {
			return fmt.Errorf("%w: tokens: %w", ErrWrite, err)
		}
	}
	return nil
}
