// Package classify decides, per file, whether a rename and/or a
// modification-time refresh is required. It never touches the filesystem.
package classify

import (
	"strings"
	"time"

	"refresher/internal/dateparse"
	"refresher/internal/scan"
)

// RenameReason explains why (or why not) a rename is required.
type RenameReason string

const (
	ReasonNone              RenameReason = "none"               // extension not in rename set
	ReasonAlreadyDated      RenameReason = "already_dated"      // dotted prefix present, never rewritten
	ReasonConvertSeparators RenameReason = "convert_separators" // hyphenated prefix, swap to dots
	ReasonAddDatePrefix     RenameReason = "add_date_prefix"    // no prefix, add one
)

// Decision is the classifier's output for one descriptor. Computed fresh on
// every call; never cached across runs.
type Decision struct {
	RenameNeeded      bool
	RenameReason      RenameReason
	DateRefreshNeeded bool
}

// Options carries the caller-supplied classification configuration.
type Options struct {
	RenameExtensions map[string]bool // lower-cased, dot-prefixed; empty set disables renaming
	DaysThreshold    int             // non-negative
}

// NewOptions normalizes an extension list (lower-case, ensure leading dot)
// into classifier options.
func NewOptions(extensions []string, daysThreshold int) Options {
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return Options{RenameExtensions: set, DaysThreshold: daysThreshold}
}

// NeedsDateRefresh reports whether the file is stale: strictly older than
// the threshold. A file exactly threshold days old is not refreshed.
func NeedsDateRefresh(modifiedAt time.Time, daysThreshold int, now time.Time) bool {
	return now.Sub(modifiedAt) > time.Duration(daysThreshold)*24*time.Hour
}

// NeedsRename reports whether the filename needs a rename and why.
// The dotted-grammar check deliberately precedes the hyphenated one: a name
// satisfying both (not possible under the current grammars, kept as an
// explicit ordering contract) counts as already dated.
func NeedsRename(name, extension string, renameExtensions map[string]bool) (bool, RenameReason) {
	if !renameExtensions[strings.ToLower(extension)] {
		return false, ReasonNone
	}
	if _, ok := dateparse.MatchDotted(name); ok {
		return false, ReasonAlreadyDated
	}
	if _, ok := dateparse.MatchHyphenated(name); ok {
		return true, ReasonConvertSeparators
	}
	return true, ReasonAddDatePrefix
}

// Classify bundles both checks for one descriptor.
func Classify(d *scan.Descriptor, opts Options, now time.Time) Decision {
	needed, reason := NeedsRename(d.Name(), d.Extension, opts.RenameExtensions)
	return Decision{
		RenameNeeded:      needed,
		RenameReason:      reason,
		DateRefreshNeeded: NeedsDateRefresh(d.ModifiedAt, opts.DaysThreshold, now),
	}
}
