// Package stream provides line sources that feed log files or readers
// through a Splitter and yield records with their origin. The splitting
// engine itself does no I/O; everything here is plumbing around it.
package stream

import (
	"context"

	"github.com/getsentry/anylog/pkg/anylog"
)

// Entry is one split line together with where it came from.
type Entry struct {
	// Record is the split result for this line.
	Record anylog.Record

	// Source is the file path (or reader name) this line came from.
	Source string

	// LineNum is the 1-based line number in the source.
	LineNum int
}

// Source provides an iterator over split log lines.
// Implementations must be safe for sequential access (not concurrent).
type Source interface {
	// Next returns the next entry. Returns io.EOF when no more lines are
	// available. Lines without a recognized timestamp are still yielded,
	// with Record.Matched false, unless the source is configured to skip
	// them.
	Next(ctx context.Context) (*Entry, error)

	// Close releases any resources held by the source.
	Close() error
}
