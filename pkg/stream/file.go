package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/getsentry/anylog/pkg/anylog"
)

// FileSource implements Source for reading from log files in sequence.
type FileSource struct {
	files    []string
	splitter *anylog.Splitter
	now      time.Time

	// SkipUnmatched drops lines without a recognized timestamp instead of
	// yielding them. Set before the first call to Next. Chronological
	// merging requires it.
	SkipUnmatched bool

	currentFile    *os.File
	currentScanner *bufio.Scanner
	currentSource  string
	currentLine    int
	fileIndex      int
}

// NewFileSource creates a Source that reads the given files in order. Every
// line is split with the same reference time so that year inference is
// consistent across the whole run.
func NewFileSource(files []string, splitter *anylog.Splitter, now time.Time) *FileSource {
	return &FileSource{
		files:     files,
		splitter:  splitter,
		now:       now,
		fileIndex: -1,
	}
}

// Next returns the next split line.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*Entry, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.currentScanner == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		if s.currentScanner.Scan() {
			s.currentLine++
			line := s.currentScanner.Text()

			rec, err := s.splitter.SplitAt(line, s.now)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", s.currentSource, s.currentLine, err)
			}
			if s.SkipUnmatched && !rec.Matched {
				continue
			}

			return &Entry{
				Record:  rec,
				Source:  s.currentSource,
				LineNum: s.currentLine,
			}, nil
		}

		if err := s.currentScanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		// Current file exhausted, try next
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
		s.currentScanner = nil
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}

	s.currentFile = f
	s.currentScanner = bufio.NewScanner(f)
	s.currentScanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		s.currentScanner = nil
		return err
	}
	return nil
}
