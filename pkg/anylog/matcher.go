package anylog

import "github.com/getsentry/anylog/pkg/grammar"

// matchLine tries each grammar in catalog order and returns the first
// success. A grammar whose shape matches but whose digits form an impossible
// date fails silently inside TryParse, so matching continues past it. Pure
// function of its inputs: same line and catalog always yield the same match.
func matchLine(line string, catalog []*grammar.Grammar) (grammar.RawTimestamp, *grammar.Grammar, int, bool) {
	for _, g := range catalog {
		if raw, consumed, ok := g.TryParse(line); ok {
			return raw, g, consumed, true
		}
	}
	return grammar.RawTimestamp{}, nil, 0, false
}
