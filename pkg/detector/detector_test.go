package detector

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var detRef = time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)

func findMatch(r *Result, name string) *GrammarMatch {
	for i := range r.Matches {
		if r.Matches[i].Name == name {
			return &r.Matches[i]
		}
	}
	return nil
}

func TestDetectFromLines(t *testing.T) {
	lines := []string{
		"Jun  1 12:00:00 host starting up",
		"Jun  1 12:00:01 host listening on :8080",
		"Jun  1 12:00:02 host ready",
		"2024-01-15T10:30:00Z odd one out",
		"completely plain line",
	}

	d := New(WithReferenceTime(detRef), WithFallbackZone(time.UTC))
	result := d.DetectFromLines(lines)

	if result.SampledLines != 5 {
		t.Errorf("sampled = %d, want 5", result.SampledLines)
	}
	if result.ParsedLines != 4 {
		t.Errorf("parsed = %d, want 4", result.ParsedLines)
	}
	if !result.HasMatch() {
		t.Fatal("HasMatch() = false")
	}

	best := result.BestMatch()
	if best.Name != "syslog" {
		t.Errorf("best match = %s, want syslog", best.Name)
	}
	if best.MatchCount != 3 {
		t.Errorf("best match count = %d, want 3", best.MatchCount)
	}
	if got, want := best.Confidence, 3.0/5.0; got != want {
		t.Errorf("best confidence = %f, want %f", got, want)
	}
	if best.SampleLine != lines[0] {
		t.Errorf("sample line = %q", best.SampleLine)
	}
	wantTime := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	if !best.SampleTime.Equal(wantTime) {
		t.Errorf("sample time = %v, want %v", best.SampleTime, wantTime)
	}

	iso := findMatch(result, "iso8601")
	if iso == nil {
		t.Fatal("iso8601 missing from matches")
	}
	if iso.MatchCount != 1 {
		t.Errorf("iso8601 count = %d, want 1", iso.MatchCount)
	}
}

// A datetime with a trailing offset is recognized by both the offset-aware
// grammar and the plain one; both scores stay visible and catalog rank breaks
// the tie.
func TestDetectFromLines_AmbiguityVisible(t *testing.T) {
	lines := []string{
		"2015-05-13 17:39:16 +0200: Repaired 'CNQ9601'",
	}

	d := New(WithReferenceTime(detRef), WithFallbackZone(time.UTC))
	result := d.DetectFromLines(lines)

	withOffset := findMatch(result, "datetime-offset")
	plain := findMatch(result, "datetime")
	if withOffset == nil || plain == nil {
		t.Fatalf("expected both datetime grammars, got %+v", result.Matches)
	}
	if withOffset.Confidence != plain.Confidence {
		t.Fatalf("confidences differ: %f vs %f", withOffset.Confidence, plain.Confidence)
	}
	if result.BestMatch().Name != "datetime-offset" {
		t.Errorf("best = %s, rank should break the tie", result.BestMatch().Name)
	}

	// Only one grammar wins the line.
	if result.ParsedLines != 1 {
		t.Errorf("parsed = %d, want 1", result.ParsedLines)
	}
}

func TestDetectFromLines_Empty(t *testing.T) {
	d := New(WithReferenceTime(detRef))

	result := d.DetectFromLines(nil)
	if result.SampledLines != 0 || result.ParsedLines != 0 {
		t.Errorf("result = %+v, want zeroes", result)
	}
	if result.HasMatch() {
		t.Error("HasMatch() = true on empty input")
	}
	if result.BestMatch() != nil {
		t.Error("BestMatch() != nil on empty input")
	}
}

func TestDetectFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.log")
	content := "Jun  1 12:00:00 one\n" +
		"\n" + // blank lines are not sampled
		"Jun  1 12:00:01 two\n" +
		"plain\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	d := New(WithReferenceTime(detRef), WithFallbackZone(time.UTC))
	result, err := d.DetectFromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("DetectFromFile() error = %v", err)
	}

	if result.SampledLines != 3 {
		t.Errorf("sampled = %d, want 3 (blank line excluded)", result.SampledLines)
	}
	if result.BestMatch().Name != "syslog" {
		t.Errorf("best = %s", result.BestMatch().Name)
	}
}

func TestDetectFromFile_Missing(t *testing.T) {
	d := New()
	if _, err := d.DetectFromFile(context.Background(), filepath.Join(t.TempDir(), "nope.log")); err == nil {
		t.Error("DetectFromFile() = nil, want error")
	}
}

func TestWithSampleSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.log")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		if _, err := f.WriteString("Jun  1 12:00:00 line\n"); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	d := New(WithSampleSize(10), WithReferenceTime(detRef))
	result, err := d.DetectFromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("DetectFromFile() error = %v", err)
	}
	if result.SampledLines != 10 {
		t.Errorf("sampled = %d, want 10", result.SampledLines)
	}
}

func TestWithReferenceTime_Deterministic(t *testing.T) {
	lines := []string{"Jun  1 12:00:00 repeatable"}

	a := New(WithReferenceTime(detRef), WithFallbackZone(time.UTC)).DetectFromLines(lines)
	b := New(WithReferenceTime(detRef), WithFallbackZone(time.UTC)).DetectFromLines(lines)

	if !a.BestMatch().SampleTime.Equal(b.BestMatch().SampleTime) {
		t.Errorf("sample times differ: %v vs %v",
			a.BestMatch().SampleTime, b.BestMatch().SampleTime)
	}
	if a.BestMatch().SampleTime.Year() != 2024 {
		t.Errorf("year = %d, want 2024 from the pinned clock", a.BestMatch().SampleTime.Year())
	}
}
