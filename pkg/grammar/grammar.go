package grammar

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Grammar recognizes one timestamp convention anchored at the start of a
// line. Grammars are immutable after package init and safe for concurrent
// use.
type Grammar struct {
	// Name identifies the convention, e.g. "syslog" or "iso8601".
	Name string

	// pattern is anchored at line start. Its last capture group is always
	// the message remainder, so the consumed prefix length is the start
	// offset of that group.
	pattern *regexp.Regexp

	// build maps the capture groups (index 0 is the whole match) onto a
	// RawTimestamp.
	build func(caps []string) RawTimestamp
}

// TryParse attempts to claim a timestamp prefix of line. On success it
// returns the extracted fields and the prefix length consumed, including the
// grammar-defined separator. Failure is silent: an unrecognized or
// calendar-invalid prefix returns ok=false, never an error.
func (g *Grammar) TryParse(line string) (raw RawTimestamp, consumed int, ok bool) {
	idx := g.pattern.FindStringSubmatchIndex(line)
	if idx == nil {
		return RawTimestamp{}, 0, false
	}

	n := g.pattern.NumSubexp()
	caps := make([]string, n+1)
	for i := 0; i <= n; i++ {
		if idx[2*i] >= 0 {
			caps[i] = line[idx[2*i]:idx[2*i+1]]
		}
	}

	raw = g.build(caps)
	if err := raw.Validate(); err != nil {
		// Shape matched but the digits are impossible; let a lower
		// priority grammar have a go.
		return RawTimestamp{}, 0, false
	}

	// The message group always participates, so idx[2*n] is its start.
	return raw, idx[2*n], true
}

var monthsByName = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

// atoi converts a digits-only capture. Captures are constrained by the
// patterns, so conversion cannot fail; out-of-range values are caught by
// RawTimestamp.Validate.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// fracNanos converts a captured sub-second fraction ("005", "043123448")
// into nanoseconds. An empty capture means no fraction was present.
func fracNanos(s string) int {
	if s == "" {
		return 0
	}
	if len(s) > 9 {
		s = s[:9]
	}
	n := atoi(s)
	for i := len(s); i < 9; i++ {
		n *= 10
	}
	return n
}

// zoneSeconds converts an ISO-8601 zone capture ("Z", "+02:00", "-0700")
// into a UTC offset in seconds east.
func zoneSeconds(s string) int {
	if s == "Z" {
		return 0
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	digits := strings.Replace(s[1:], ":", "", 1)
	return sign * (atoi(digits[:2])*3600 + atoi(digits[2:])*60)
}

// signedOffset converts separate sign/hour/minute captures ("+", "02", "00")
// into a UTC offset in seconds east.
func signedOffset(sign, hh, mm string) int {
	sec := atoi(hh)*3600 + atoi(mm)*60
	if sign == "-" {
		return -sec
	}
	return sec
}
