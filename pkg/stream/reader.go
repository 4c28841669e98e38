package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/getsentry/anylog/pkg/anylog"
)

// ReaderSource implements Source over an arbitrary io.Reader, typically
// stdin.
type ReaderSource struct {
	name     string
	splitter *anylog.Splitter
	now      time.Time
	scanner  *bufio.Scanner

	// SkipUnmatched drops lines without a recognized timestamp. Set
	// before the first call to Next.
	SkipUnmatched bool

	lineNum int
}

// NewReaderSource creates a Source over r. The name labels entries, e.g.
// "-" for stdin.
func NewReaderSource(name string, r io.Reader, splitter *anylog.Splitter, now time.Time) *ReaderSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	return &ReaderSource{
		name:     name,
		splitter: splitter,
		now:      now,
		scanner:  scanner,
	}
}

// Next returns the next split line, or io.EOF once r is drained.
func (s *ReaderSource) Next(ctx context.Context) (*Entry, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, fmt.Errorf("reading %s: %w", s.name, err)
			}
			return nil, io.EOF
		}
		s.lineNum++
		line := s.scanner.Text()

		rec, err := s.splitter.SplitAt(line, s.now)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", s.name, s.lineNum, err)
		}
		if s.SkipUnmatched && !rec.Matched {
			continue
		}

		return &Entry{
			Record:  rec,
			Source:  s.name,
			LineNum: s.lineNum,
		}, nil
	}
}

// Close is a no-op; the caller owns the underlying reader.
func (s *ReaderSource) Close() error {
	return nil
}
