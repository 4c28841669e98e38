// Package anylog splits a single line of free-form log text into a
// recognized timestamp and the remaining message. It tries a fixed catalog
// of timestamp grammars in priority order, so callers never declare which
// convention a line uses up front.
package anylog

import (
	"fmt"
	"time"

	"github.com/getsentry/anylog/pkg/grammar"
)

// Record is the result of splitting one line.
type Record struct {
	// Time is the resolved, zone-aware timestamp. Zero when Matched is
	// false; a line without a detectable timestamp is a valid input, not
	// an error.
	Time time.Time

	// Matched reports whether any grammar claimed a timestamp prefix.
	Matched bool

	// Grammar is the name of the grammar that matched, "" when none did.
	Grammar string

	// Prefix is the exact text consumed, separator included, so that
	// Prefix+Message reproduces the original line byte for byte.
	Prefix string

	// Message is the remainder of the line after the consumed prefix.
	// Equal to the whole line when Matched is false.
	Message string
}

// Splitter holds the configuration for splitting lines: the grammar catalog,
// the fallback zone for lines without an explicit offset, and the tolerance
// for the year-rollback heuristic. A Splitter is immutable after New and
// safe for concurrent use.
type Splitter struct {
	catalog   []*grammar.Grammar
	fallback  *time.Location
	tolerance time.Duration
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithFallbackZone sets the zone applied to timestamps that carry no
// explicit UTC offset. Defaults to time.Local.
func WithFallbackZone(loc *time.Location) Option {
	return func(s *Splitter) {
		if loc != nil {
			s.fallback = loc
		}
	}
}

// WithFutureTolerance sets how far ahead of the reference clock an inferred
// date may land before the year is rolled back. Defaults to
// DefaultFutureTolerance.
func WithFutureTolerance(d time.Duration) Option {
	return func(s *Splitter) {
		if d >= 0 {
			s.tolerance = d
		}
	}
}

// WithCatalog replaces the grammar catalog, e.g. with a reordered or reduced
// subset of grammar.Default.
func WithCatalog(catalog []*grammar.Grammar) Option {
	return func(s *Splitter) {
		if len(catalog) > 0 {
			s.catalog = catalog
		}
	}
}

// New creates a Splitter with the default catalog, time.Local fallback, and
// default future tolerance.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		catalog:   grammar.Default(),
		fallback:  time.Local,
		tolerance: DefaultFutureTolerance,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split splits line using the ambient clock as the reference time.
func (s *Splitter) Split(line string) (Record, error) {
	return s.SplitAt(line, time.Now())
}

// SplitAt splits line using an explicit reference time, which makes year
// inference deterministic. The error is non-nil only when a grammar fully
// matched yet produced an impossible calendar date at resolution, which
// indicates a grammar bug rather than an unrecognized line.
func (s *Splitter) SplitAt(line string, now time.Time) (Record, error) {
	raw, g, consumed, ok := matchLine(line, s.catalog)
	if !ok {
		return Record{Message: line}, nil
	}

	t, err := resolve(raw, now, s.fallback, s.tolerance)
	if err != nil {
		return Record{Message: line}, fmt.Errorf("grammar %s: %w", g.Name, err)
	}

	return Record{
		Time:    t,
		Matched: true,
		Grammar: g.Name,
		Prefix:  line[:consumed],
		Message: line[consumed:],
	}, nil
}

var defaultSplitter = New()

// Parse is the convenience entry point: it splits line using the ambient
// current time and the local zone as fallback. Callers that need
// determinism, or a pinned fallback zone, use ParseWith or a Splitter.
func Parse(line string) Record {
	rec, err := defaultSplitter.Split(line)
	if err != nil {
		return Record{Message: line}
	}
	return rec
}

// ParseWith splits line with an explicit reference time and fallback zone.
func ParseWith(line string, now time.Time, fallback *time.Location) (Record, error) {
	return New(WithFallbackZone(fallback)).SplitAt(line, now)
}
