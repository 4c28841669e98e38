package output

import (
	"context"
	"fmt"
	"io"
)

// TextFormatter renders reports as human-readable text, one line per input
// line.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatSummary(report, w)
	}

	for i := range report.Entries {
		if err := f.formatEntry(&report.Entries[i], w); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "---")
	return f.formatSummary(report, w)
}

func (f *TextFormatter) formatEntry(e *Entry, w io.Writer) error {
	ts := e.Timestamp
	if ts == "" {
		ts = "-"
	}

	if f.opts.Verbose {
		grammar := e.Grammar
		if grammar == "" {
			grammar = "none"
		}
		_, err := fmt.Fprintf(w, "%s:%d [%s] %s  %s\n", e.Source, e.Line, grammar, ts, e.Message)
		return err
	}

	_, err := fmt.Fprintf(w, "%s  %s\n", ts, e.Message)
	return err
}

func (f *TextFormatter) formatSummary(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "anylog: %d lines processed, %d with timestamps\n",
		report.Summary.LinesProcessed,
		report.Summary.LinesMatched)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Reference time: %s\n", report.Metadata.ReferenceTime.Format("2006-01-02 15:04:05 MST"))
		fmt.Fprintf(w, "Fallback zone: %s\n", report.Metadata.FallbackZone)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}
