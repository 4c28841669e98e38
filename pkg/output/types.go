// Package output provides formatting for split results.
package output

import (
	"time"

	"github.com/getsentry/anylog/pkg/stream"
)

// Report is the complete split output for a run.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Entries contains one entry per processed line.
	Entries []Entry `json:"entries"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Entry is one split line as it appears in a report.
type Entry struct {
	// Source is the file (or reader name) the line came from.
	Source string `json:"source,omitempty"`

	// Line is the 1-based line number in the source.
	Line int `json:"line"`

	// Timestamp is the resolved timestamp in RFC 3339 form, empty when
	// no grammar recognized one.
	Timestamp string `json:"timestamp,omitempty"`

	// Grammar names the grammar that claimed the timestamp prefix.
	Grammar string `json:"grammar,omitempty"`

	// Message is the remainder of the line after the timestamp prefix.
	Message string `json:"message"`
}

// Summary provides aggregate statistics.
type Summary struct {
	// LinesProcessed is the total number of lines read.
	LinesProcessed int `json:"lines_processed"`

	// LinesMatched is the number of lines with a recognized timestamp.
	LinesMatched int `json:"lines_matched"`
}

// Metadata provides context about the run.
type Metadata struct {
	// Sources lists the inputs that were processed.
	Sources []string `json:"sources,omitempty"`

	// ReferenceTime is the clock value used for year inference.
	ReferenceTime time.Time `json:"reference_time"`

	// FallbackZone names the zone applied to offset-less timestamps.
	FallbackZone string `json:"fallback_zone"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration"`
}

// NewReport builds a Report from stream entries.
func NewReport(entries []*stream.Entry, meta Metadata) *Report {
	report := &Report{
		Entries:  make([]Entry, 0, len(entries)),
		Metadata: meta,
	}

	for _, e := range entries {
		out := Entry{
			Source:  e.Source,
			Line:    e.LineNum,
			Message: e.Record.Message,
		}
		if e.Record.Matched {
			out.Timestamp = e.Record.Time.Format(time.RFC3339Nano)
			out.Grammar = e.Record.Grammar
			report.Summary.LinesMatched++
		}
		report.Entries = append(report.Entries, out)
		report.Summary.LinesProcessed++
	}

	return report
}
