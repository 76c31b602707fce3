// Package dateparse recognizes and rewrites date prefixes embedded in
// filenames. Two grammars are supported, both anchored at the start of the
// name and followed by whitespace: dotted (2020.03.14) and hyphenated
// (2020-03-14). Month and day ranges are deliberately not validated; a name
// like "9999.99.99 x" counts as dated and is left alone.
package dateparse

import (
	"regexp"
	"time"
)

// DatePrefix holds the captured groups of a leading date token.
type DatePrefix struct {
	Year  string
	Month string
	Day   string
	Rest  string // remainder after the separating whitespace, verbatim
}

var (
	dottedPattern     = regexp.MustCompile(`^(\d{4})\.(\d{2})\.(\d{2})\s+(.+)$`)
	hyphenatedPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})\s+(.+)$`)
)

// MatchDotted reports whether name starts with a YYYY.MM.DD prefix and
// returns its components.
func MatchDotted(name string) (DatePrefix, bool) {
	return match(dottedPattern, name)
}

// MatchHyphenated reports whether name starts with a YYYY-MM-DD prefix and
// returns its components.
func MatchHyphenated(name string) (DatePrefix, bool) {
	return match(hyphenatedPattern, name)
}

func match(re *regexp.Regexp, name string) (DatePrefix, bool) {
	m := re.FindStringSubmatch(name)
	if m == nil {
		return DatePrefix{}, false
	}
	return DatePrefix{Year: m[1], Month: m[2], Day: m[3], Rest: m[4]}, true
}

// Dotted re-emits the prefix in dotted form followed by a single space and
// the untouched rest.
func (p DatePrefix) Dotted() string {
	return p.Year + "." + p.Month + "." + p.Day + " " + p.Rest
}

// Convert rewrites a hyphenated date prefix to dotted form. The rest of the
// name, including any further whitespace or punctuation, passes through
// verbatim. Returns false if name does not match the hyphenated grammar.
func Convert(name string) (string, bool) {
	p, ok := MatchHyphenated(name)
	if !ok {
		return name, false
	}
	return p.Dotted(), true
}

// AddPrefix prepends a dotted date taken from date to the entire original
// name, extension included.
func AddPrefix(name string, date time.Time) string {
	return date.Format("2006.01.02") + " " + name
}
