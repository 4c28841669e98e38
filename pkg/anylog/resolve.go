package anylog

import (
	"fmt"
	"time"

	"github.com/getsentry/anylog/pkg/grammar"
)

// ErrInvalidDate reports a matched timestamp whose field values form an
// impossible calendar date. Test with errors.Is.
var ErrInvalidDate = grammar.ErrInvalidDate

// DefaultFutureTolerance is how far ahead of the reference clock an inferred
// date may land before the year rolls back by one. A "Dec 31" line processed
// shortly after midnight on Jan 1 belongs to the previous year; seven days
// absorbs producer clock skew and multi-day processing lag without touching
// genuinely current lines.
const DefaultFutureTolerance = 7 * 24 * time.Hour

// Resolve turns a grammar's raw parse result into an absolute, zone-aware
// instant, using DefaultFutureTolerance for year inference.
//
// Rules: an absent year is inferred from now, rolling back one year when the
// date would land too far in the future; an absent offset takes the fallback
// zone; a present offset is used verbatim; an absent fraction is exactly
// zero.
func Resolve(raw grammar.RawTimestamp, now time.Time, fallback *time.Location) (time.Time, error) {
	return resolve(raw, now, fallback, DefaultFutureTolerance)
}

func resolve(raw grammar.RawTimestamp, now time.Time, fallback *time.Location, tolerance time.Duration) (time.Time, error) {
	if err := raw.Validate(); err != nil {
		return time.Time{}, err
	}

	loc := fallback
	if loc == nil {
		loc = time.UTC
	}
	if raw.HasOffset {
		loc = fixedZone(raw.OffsetSeconds)
	}

	if !raw.HasDate {
		// Time-only conventions: the whole date comes from the
		// reference clock, viewed in the effective zone.
		y, mo, d := now.In(loc).Date()
		return time.Date(y, mo, d, raw.Hour, raw.Minute, raw.Second, raw.Nanosecond, loc), nil
	}

	if raw.HasYear {
		return time.Date(raw.Year, raw.Month, raw.Day, raw.Hour, raw.Minute, raw.Second, raw.Nanosecond, loc), nil
	}

	// The candidate year comes from the reference instant, not from its
	// wall clock in the effective zone. Otherwise the same offset-less
	// line would resolve into different years near a year boundary
	// depending on the fallback zone.
	year := now.UTC().Year()
	t, ok := makeDate(year, raw, loc)
	if !ok || t.Sub(now) > tolerance {
		if prev, okPrev := makeDate(year-1, raw, loc); okPrev {
			t, ok = prev, true
		}
	}
	if !ok {
		// Feb 29 with neither the reference year nor the one before
		// it a leap year.
		return time.Time{}, fmt.Errorf("%w: %s %d does not exist near year %d",
			ErrInvalidDate, raw.Month, raw.Day, year)
	}
	return t, nil
}

// makeDate builds the timestamp in a specific year and reports whether the
// day actually exists in that year. time.Date normalizes Feb 29 of a
// non-leap year into Mar 1, which must not pass silently.
func makeDate(year int, raw grammar.RawTimestamp, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, raw.Month, raw.Day, raw.Hour, raw.Minute, raw.Second, raw.Nanosecond, loc)
	return t, t.Month() == raw.Month && t.Day() == raw.Day
}

// fixedZone names a fixed offset the way it prints in RFC 3339, e.g.
// "+02:00".
func fixedZone(offsetSeconds int) *time.Location {
	sign, s := "+", offsetSeconds
	if s < 0 {
		sign, s = "-", -s
	}
	return time.FixedZone(fmt.Sprintf("%s%02d:%02d", sign, s/3600, (s%3600)/60), offsetSeconds)
}
