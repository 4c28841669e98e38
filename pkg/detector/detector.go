// Package detector reports which timestamp grammars recognize a log file's
// lines, with confidence scores, so users can see how a file will split
// before processing it.
package detector

import (
	"bufio"
	"context"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/getsentry/anylog/pkg/anylog"
	"github.com/getsentry/anylog/pkg/grammar"
)

// Result holds the outcome of analyzing a sample of log lines.
type Result struct {
	Matches      []GrammarMatch // grammars that matched, sorted by confidence descending
	SampledLines int            // number of non-empty lines sampled
	ParsedLines  int            // lines claimed by some grammar in catalog order
}

// GrammarMatch is one grammar's score over the sample.
type GrammarMatch struct {
	Name       string    // grammar name
	Rank       int       // 0-based priority rank in the catalog
	Confidence float64   // fraction of sampled lines this grammar matched
	MatchCount int       // number of lines this grammar matched
	SampleLine string    // example line that matched
	SampleTime time.Time // resolved timestamp of the example line
}

// Detector analyzes log lines against the grammar catalog.
type Detector struct {
	catalog    []*grammar.Grammar
	sampleSize int
	now        time.Time
	fallback   *time.Location
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithReferenceTime pins the reference clock used to resolve sample
// timestamps, for deterministic output.
func WithReferenceTime(now time.Time) Option {
	return func(d *Detector) {
		d.now = now
	}
}

// WithFallbackZone sets the zone applied to sample timestamps without an
// explicit offset (default time.Local).
func WithFallbackZone(loc *time.Location) Option {
	return func(d *Detector) {
		if loc != nil {
			d.fallback = loc
		}
	}
}

// WithCatalog replaces the grammar catalog under test.
func WithCatalog(catalog []*grammar.Grammar) Option {
	return func(d *Detector) {
		if len(catalog) > 0 {
			d.catalog = catalog
		}
	}
}

// New creates a Detector over the default grammar catalog.
func New(opts ...Option) *Detector {
	d := &Detector{
		catalog:    grammar.Default(),
		sampleSize: 100,
		now:        time.Now(),
		fallback:   time.Local,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile analyzes a sample of lines from a log file.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*Result, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines analyzes a slice of log lines. Every grammar is scored
// independently so ambiguity between grammars stays visible; ParsedLines
// counts winners only, i.e. lines claimed by the highest-priority matching
// grammar.
func (d *Detector) DetectFromLines(lines []string) *Result {
	result := &Result{SampledLines: len(lines)}
	if len(lines) == 0 {
		return result
	}

	stats := make(map[string]*GrammarMatch)

	for _, line := range lines {
		claimed := false
		for rank, g := range d.catalog {
			raw, _, ok := g.TryParse(line)
			if !ok {
				continue
			}
			if !claimed {
				claimed = true
				result.ParsedLines++
			}

			m := stats[g.Name]
			if m == nil {
				m = &GrammarMatch{Name: g.Name, Rank: rank, SampleLine: line}
				if t, err := anylog.Resolve(raw, d.now, d.fallback); err == nil {
					m.SampleTime = t
				}
				stats[g.Name] = m
			}
			m.MatchCount++
		}
	}

	for _, m := range stats {
		m.Confidence = float64(m.MatchCount) / float64(len(lines))
		result.Matches = append(result.Matches, *m)
	}

	// Highest confidence first; catalog rank breaks ties, mirroring how
	// the matcher itself decides.
	sort.Slice(result.Matches, func(i, j int) bool {
		if result.Matches[i].Confidence != result.Matches[j].Confidence {
			return result.Matches[i].Confidence > result.Matches[j].Confidence
		}
		return result.Matches[i].Rank < result.Matches[j].Rank
	})

	return result
}

// sampleFile reads up to sampleSize non-empty lines from the head of a file.
func (d *Detector) sampleFile(_ context.Context, path string) ([]string, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() && len(lines) < d.sampleSize {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *Result) BestMatch() *GrammarMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one grammar matched.
func (r *Result) HasMatch() bool {
	return len(r.Matches) > 0
}
