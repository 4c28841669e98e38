// Package grammar defines the timestamp conventions recognized at the start
// of log lines. Each grammar knows how to claim one textual timestamp shape
// and produce a partially-specified RawTimestamp from it; year and zone
// resolution happen later, in the anylog package.
package grammar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate reports field values that form an impossible calendar date
// or time, e.g. month 13 or hour 25.
var ErrInvalidDate = errors.New("invalid calendar date")

// RawTimestamp holds the time fields a grammar extracted from a line, before
// year inference and zone resolution. Fields a convention omits are marked
// absent via the Has* flags rather than zeroed.
type RawTimestamp struct {
	// Year is the four-digit year. Only meaningful when HasYear is true;
	// syslog-style conventions omit it.
	Year    int
	HasYear bool

	// Month and Day are only meaningful when HasDate is true. Time-only
	// conventions (e.g. "22:07:10") carry no date at all.
	Month   time.Month
	Day     int
	HasDate bool

	Hour   int
	Minute int
	Second int

	// Nanosecond holds the sub-second fraction. Conventions without a
	// fraction leave it at zero.
	Nanosecond int

	// OffsetSeconds is the explicit UTC offset, east positive. Only
	// meaningful when HasOffset is true; when false the caller's fallback
	// zone applies.
	OffsetSeconds int
	HasOffset     bool
}

// Validate checks that the extracted fields form a possible calendar date
// and time. A RawTimestamp without a year accepts February 29, since leap
// status is unknown until a year is inferred.
func (r RawTimestamp) Validate() error {
	if r.HasDate {
		if r.Month < time.January || r.Month > time.December {
			return fmt.Errorf("%w: month %d", ErrInvalidDate, int(r.Month))
		}
		if r.Day < 1 || r.Day > daysIn(r.Month, r.Year, r.HasYear) {
			return fmt.Errorf("%w: day %d of %s", ErrInvalidDate, r.Day, r.Month)
		}
	}
	if r.Hour < 0 || r.Hour > 23 {
		return fmt.Errorf("%w: hour %d", ErrInvalidDate, r.Hour)
	}
	if r.Minute < 0 || r.Minute > 59 {
		return fmt.Errorf("%w: minute %d", ErrInvalidDate, r.Minute)
	}
	if r.Second < 0 || r.Second > 59 {
		return fmt.Errorf("%w: second %d", ErrInvalidDate, r.Second)
	}
	if r.HasOffset && (r.OffsetSeconds <= -24*3600 || r.OffsetSeconds >= 24*3600) {
		return fmt.Errorf("%w: UTC offset %ds out of range", ErrInvalidDate, r.OffsetSeconds)
	}
	return nil
}

func daysIn(m time.Month, year int, hasYear bool) int {
	switch m {
	case time.February:
		if !hasYear || isLeap(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
