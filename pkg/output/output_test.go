package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/getsentry/anylog/pkg/anylog"
	"github.com/getsentry/anylog/pkg/stream"
)

func sampleReport() *Report {
	ts := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	entries := []*stream.Entry{
		{
			Record: anylog.Record{
				Time:    ts,
				Matched: true,
				Grammar: "syslog",
				Prefix:  "Jun  1 12:00:00 ",
				Message: "boot ok",
			},
			Source:  "app.log",
			LineNum: 1,
		},
		{
			Record:  anylog.Record{Message: "no timestamp here"},
			Source:  "app.log",
			LineNum: 2,
		},
	}

	return NewReport(entries, Metadata{
		Sources:       []string{"app.log"},
		ReferenceTime: time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC),
		FallbackZone:  "UTC",
		Duration:      42 * time.Millisecond,
	})
}

func TestNewReport(t *testing.T) {
	report := sampleReport()

	if report.Summary.LinesProcessed != 2 {
		t.Errorf("lines processed = %d, want 2", report.Summary.LinesProcessed)
	}
	if report.Summary.LinesMatched != 1 {
		t.Errorf("lines matched = %d, want 1", report.Summary.LinesMatched)
	}
	if got := report.Entries[0].Timestamp; got != "2024-06-01T12:00:00Z" {
		t.Errorf("timestamp = %q", got)
	}
	if report.Entries[1].Timestamp != "" || report.Entries[1].Grammar != "" {
		t.Errorf("unmatched entry carries timestamp fields: %+v", report.Entries[1])
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{})

	if err := f.Format(context.Background(), sampleReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	wantLines := []string{
		"2024-06-01T12:00:00Z  boot ok",
		"-  no timestamp here",
		"---",
		"anylog: 2 lines processed, 1 with timestamps",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextFormatter_Verbose(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{Verbose: true})

	if err := f.Format(context.Background(), sampleReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"app.log:1 [syslog] 2024-06-01T12:00:00Z  boot ok",
		"app.log:2 [none] -  no timestamp here",
		"Reference time: 2024-06-03 00:00:00 UTC",
		"Fallback zone: UTC",
		"Duration: 42ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextFormatter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{Quiet: true})

	if err := f.Format(context.Background(), sampleReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "boot ok") {
		t.Errorf("quiet output contains entries:\n%s", out)
	}
	if !strings.Contains(out, "anylog: 2 lines processed, 1 with timestamps") {
		t.Errorf("quiet output missing summary:\n%s", out)
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(FormatOptions{})

	if err := f.Format(context.Background(), sampleReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.Summary.LinesProcessed != 2 || decoded.Summary.LinesMatched != 1 {
		t.Errorf("summary = %+v", decoded.Summary)
	}
	if len(decoded.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(decoded.Entries))
	}
	if decoded.Entries[0].Grammar != "syslog" {
		t.Errorf("grammar = %q", decoded.Entries[0].Grammar)
	}
	if decoded.Metadata.FallbackZone != "UTC" {
		t.Errorf("metadata = %+v", decoded.Metadata)
	}

	// Omitted fields stay out of the wire format for unmatched lines.
	raw := buf.String()
	if strings.Count(raw, `"grammar"`) != 1 {
		t.Errorf("grammar key should appear once:\n%s", raw)
	}
}

func TestJSONFormatter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(FormatOptions{Quiet: true})

	if err := f.Format(context.Background(), sampleReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var summary Summary
	if err := json.Unmarshal(buf.Bytes(), &summary); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if summary.LinesProcessed != 2 || summary.LinesMatched != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if strings.Contains(buf.String(), "entries") {
		t.Errorf("quiet output contains entries:\n%s", buf.String())
	}
}

func TestFormatterNames(t *testing.T) {
	if got := NewTextFormatter(FormatOptions{}).Name(); got != "text" {
		t.Errorf("text formatter name = %q", got)
	}
	if got := NewJSONFormatter(FormatOptions{}).Name(); got != "json" {
		t.Errorf("json formatter name = %q", got)
	}
}
