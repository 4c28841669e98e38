package grammar

import (
	"regexp"
	"time"
)

// Shared pattern fragments. Month names capture; weekday names never do.
const (
	monthName = `(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`
	weekday   = `(?:(?:Mon|Tue|Wed|Thu|Fri|Sat|Sun) )?`
)

// Default returns the built-in grammar catalog in priority order, most
// specific first. The ordering is hand-curated and load-bearing: several
// grammars are structural prefixes of one another, so a year-bearing
// month-name grammar must outrank the no-year syslog grammar and a
// zone-bearing numeric grammar must outrank its zone-less twin. Callers
// must not mutate the returned slice or its grammars.
func Default() []*Grammar {
	return defaultCatalog
}

var defaultCatalog = []*Grammar{
	// <34>1 2003-10-11T22:14:15.003Z mymachine su: 'su root' failed
	{
		Name: "rfc5424",
		pattern: regexp.MustCompile(
			`^<\d{1,3}>\d{1,2} (\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})(?:\.(\d+))?(Z|[+-]\d{2}:\d{2}) (.*)$`),
		build: func(caps []string) RawTimestamp {
			return RawTimestamp{
				Year: atoi(caps[1]), HasYear: true,
				Month: time.Month(atoi(caps[2])), Day: atoi(caps[3]), HasDate: true,
				Hour: atoi(caps[4]), Minute: atoi(caps[5]), Second: atoi(caps[6]),
				Nanosecond:    fracNanos(caps[7]),
				OffsetSeconds: zoneSeconds(caps[8]), HasOffset: true,
			}
		},
	},
	// Tue Nov 21 00:30:05 2017 msg / [Sun Feb 25 06:11:12.043 2018] msg
	{
		Name: "asctime",
		pattern: regexp.MustCompile(
			`^\[?` + weekday + monthName + ` +(\d{1,2}) (\d{2}):(\d{2}):(\d{2})(?:\.(\d+))? (\d{4})\]?[\t ](.*)$`),
		build: func(caps []string) RawTimestamp {
			return RawTimestamp{
				Year: atoi(caps[7]), HasYear: true,
				Month: monthsByName[caps[1]], Day: atoi(caps[2]), HasDate: true,
				Hour: atoi(caps[3]), Minute: atoi(caps[4]), Second: atoi(caps[5]),
				Nanosecond: fracNanos(caps[6]),
			}
		},
	},
	// Jan 03, 2016 22:29:55 msg
	{
		Name: "us-date",
		pattern: regexp.MustCompile(
			`^\[?` + weekday + monthName + ` +(\d{1,2}),? (\d{4}) (\d{2}):(\d{2}):(\d{2})(?:\.(\d+))?\]?[\t ](.*)$`),
		build: func(caps []string) RawTimestamp {
			return RawTimestamp{
				Year: atoi(caps[3]), HasYear: true,
				Month: monthsByName[caps[1]], Day: atoi(caps[2]), HasDate: true,
				Hour: atoi(caps[4]), Minute: atoi(caps[5]), Second: atoi(caps[6]),
				Nanosecond: fracNanos(caps[7]),
			}
		},
	},
	// Jun  1 12:00:00 host msg (BSD syslog: no year, no zone, padded day)
	{
		Name: "syslog",
		pattern: regexp.MustCompile(
			`^\[?` + weekday + monthName + ` +(\d{1,2}) (\d{2}):(\d{2}):(\d{2})(?:\.(\d+))?\]?[\t ](.*)$`),
		build: func(caps []string) RawTimestamp {
			return RawTimestamp{
				Month: monthsByName[caps[1]], Day: atoi(caps[2]), HasDate: true,
				Hour: atoi(caps[3]), Minute: atoi(caps[4]), Second: atoi(caps[5]),
				Nanosecond: fracNanos(caps[6]),
			}
		},
	},
	// 2024-01-15T10:30:00.123+02:00 msg / [2024-01-15T10:30:00Z] msg
	{
		Name: "iso8601",
		pattern: regexp.MustCompile(
			`^\[?(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})(?:[.,](\d+))?(Z|[+-]\d{2}:?\d{2})\]?[\t ](.*)$`),
		build: func(caps []string) RawTimestamp {
			return RawTimestamp{
				Year: atoi(caps[1]), HasYear: true,
				Month: time.Month(atoi(caps[2])), Day: atoi(caps[3]), HasDate: true,
				Hour: atoi(caps[4]), Minute: atoi(caps[5]), Second: atoi(caps[6]),
				Nanosecond:    fracNanos(caps[7]),
				OffsetSeconds: zoneSeconds(caps[8]), HasOffset: true,
			}
		},
	},
	// 2015-05-13 17:39:16 +0200: msg
	{
		Name: "datetime-offset",
		pattern: regexp.MustCompile(
			`^\[?(\d{4})-(\d{2})-(\d{2}) (\d{2}):(\d{2}):(\d{2})(?:[.,](\d+))? ([+-])(\d{2}):?(\d{2}):?\]?[\t ](.*)$`),
		build: func(caps []string) RawTimestamp {
			return RawTimestamp{
				Year: atoi(caps[1]), HasYear: true,
				Month: time.Month(atoi(caps[2])), Day: atoi(caps[3]), HasDate: true,
				Hour: atoi(caps[4]), Minute: atoi(caps[5]), Second: atoi(caps[6]),
				Nanosecond:    fracNanos(caps[7]),
				OffsetSeconds: signedOffset(caps[8], caps[9], caps[10]), HasOffset: true,
			}
		},
	},
	// 2024-01-15 10:30:00,123 msg / [2024-01-15 10:30:00] msg (no zone)
	{
		Name: "datetime",
		pattern: regexp.MustCompile(
			`^\[?(\d{4})-(\d{2})-(\d{2})[T ](\d{2}):(\d{2}):(\d{2})(?:[.,](\d+))?\]?[\t ](.*)$`),
		build: func(caps []string) RawTimestamp {
			return RawTimestamp{
				Year: atoi(caps[1]), HasYear: true,
				Month: time.Month(atoi(caps[2])), Day: atoi(caps[3]), HasDate: true,
				Hour: atoi(caps[4]), Minute: atoi(caps[5]), Second: atoi(caps[6]),
				Nanosecond: fracNanos(caps[7]),
			}
		},
	},
	// [10/Oct/2000:13:55:36 -0700] msg (common log format)
	{
		Name: "clf",
		pattern: regexp.MustCompile(
			`^\[?(\d{1,2})/` + monthName + `/(\d{4}):(\d{2}):(\d{2}):(\d{2}) ([+-])(\d{2})(\d{2})\]?[\t ](.*)$`),
		build: func(caps []string) RawTimestamp {
			return RawTimestamp{
				Year: atoi(caps[3]), HasYear: true,
				Month: monthsByName[caps[2]], Day: atoi(caps[1]), HasDate: true,
				Hour: atoi(caps[4]), Minute: atoi(caps[5]), Second: atoi(caps[6]),
				OffsetSeconds: signedOffset(caps[7], caps[8], caps[9]), HasOffset: true,
			}
		},
	},
	// [2018.10.29-16.56.37:542][  0]LogInit: msg (Unreal Engine, UTC)
	{
		Name: "ue4",
		pattern: regexp.MustCompile(
			`^\[(\d{4})\.(\d{2})\.(\d{2})-(\d{2})\.(\d{2})\.(\d{2}):(\d{3})\]\[ *\d+\](.*)$`),
		build: func(caps []string) RawTimestamp {
			return RawTimestamp{
				Year: atoi(caps[1]), HasYear: true,
				Month: time.Month(atoi(caps[2])), Day: atoi(caps[3]), HasDate: true,
				Hour: atoi(caps[4]), Minute: atoi(caps[5]), Second: atoi(caps[6]),
				Nanosecond: atoi(caps[7]) * int(time.Millisecond),
				HasOffset:  true, // UE4 logs in UTC
			}
		},
	},
	// 22:07:10 msg (no date at all)
	{
		Name: "time-only",
		pattern: regexp.MustCompile(
			`^\[?(\d{1,2}):(\d{2}):(\d{2})(?:[.,](\d+))?\]?[\t ](.*)$`),
		build: func(caps []string) RawTimestamp {
			return RawTimestamp{
				Hour: atoi(caps[1]), Minute: atoi(caps[2]), Second: atoi(caps[3]),
				Nanosecond: fracNanos(caps[4]),
			}
		},
	},
}
