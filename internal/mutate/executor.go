// Package mutate applies classification decisions to the real filesystem:
// renaming files to carry a dotted date prefix and refreshing their
// access/modification timestamps. Per-file failures never abort the run; a
// Result materializes for every input descriptor and failures come back as
// plain strings for the caller's warning list.
package mutate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"refresher/internal/classify"
	"refresher/internal/dateparse"
	"refresher/internal/scan"
)

// maxNameBytes is the conventional filesystem limit for a single name
// component.
const maxNameBytes = 255

// Executor performs renames and timestamp updates. In dry-run mode it
// computes and records what would happen without touching the filesystem;
// the resulting ledger rows are shaped identically to a live run.
type Executor struct {
	DryRun bool
	Now    func() time.Time // wall clock; nil means time.Now
}

// Result is one row of the outcome ledger. Renamed and DateUpdated reflect
// what actually happened, not merely what was needed.
type Result struct {
	OriginalPath     string
	NewPath          string
	OriginalModified time.Time
	NewModified      time.Time
	Extension        string // without leading dot
	SizeBytes        uint64
	Renamed          bool
	DateUpdated      bool
}

func (e *Executor) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Apply executes the decision for one descriptor. On a successful (or
// simulated) rename the descriptor's path is updated in place so the
// date-refresh step acts on the new location. Returned strings are
// non-fatal errors for the run's warning list.
func (e *Executor) Apply(d *scan.Descriptor, dec classify.Decision) (Result, []string) {
	res := Result{
		OriginalPath:     d.Path,
		NewPath:          d.Path,
		OriginalModified: d.ModifiedAt,
		NewModified:      d.ModifiedAt,
		Extension:        strings.TrimPrefix(d.Extension, "."),
		SizeBytes:        d.SizeBytes,
	}
	var errs []string

	if dec.RenameNeeded {
		if msg := e.rename(d, dec.RenameReason, &res); msg != "" {
			errs = append(errs, msg)
		}
	}

	if dec.DateRefreshNeeded {
		if msg := e.refresh(d, &res); msg != "" {
			errs = append(errs, msg)
		}
	}

	return res, errs
}

// rename computes the target name for the decision's reason and performs the
// move. Renames stay within the file's parent directory. Returns a non-fatal
// error message, or "" on success/no-op.
func (e *Executor) rename(d *scan.Descriptor, reason classify.RenameReason, res *Result) string {
	newName := NewFilename(d.Name(), d.ModifiedAt, reason)
	target := filepath.Join(filepath.Dir(d.Path), newName)
	if target == d.Path {
		// Idempotent no-op: the file already carries the desired name.
		// Deliberately not an error, and not counted as a rename either.
		return ""
	}

	if _, err := os.Stat(target); err == nil {
		return fmt.Sprintf("target file already exists: %s", target)
	}
	if len(newName) > maxNameBytes {
		return fmt.Sprintf("filename too long (%d bytes): %s", len(newName), newName)
	}

	if !e.DryRun {
		if err := os.Rename(d.Path, target); err != nil {
			return fmt.Sprintf("error renaming %s: %v", d.Path, err)
		}
	}

	d.SetPath(target)
	res.NewPath = target
	res.Renamed = true
	return ""
}

// refresh sets both access and modification timestamps to the wall clock at
// the moment of mutation. Returns a non-fatal error message, or "" on
// success.
func (e *Executor) refresh(d *scan.Descriptor, res *Result) string {
	now := e.now()
	if !e.DryRun {
		if err := refreshTimes(d.Path, now); err != nil {
			return fmt.Sprintf("error updating date for %s: %v", d.Path, err)
		}
	}
	res.NewModified = now
	res.DateUpdated = true
	return ""
}

// refreshTimes updates atime and mtime. A file without owner-write gets the
// bit granted temporarily; restoring the original mode afterwards is
// best-effort and never fails the operation.
func refreshTimes(path string, now time.Time) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	perm := fi.Mode().Perm()
	if perm&0o200 == 0 {
		if err := os.Chmod(path, perm|0o200); err != nil {
			return fmt.Errorf("cannot grant write permission: %w", err)
		}
		defer os.Chmod(path, perm)
	}
	return os.Chtimes(path, now, now)
}

// NewFilename returns the name the file should carry for the given rename
// reason. For add_date_prefix the prefix comes from the file's original
// modification date, so the pre-refresh date survives in the name.
func NewFilename(name string, modifiedAt time.Time, reason classify.RenameReason) string {
	switch reason {
	case classify.ReasonConvertSeparators:
		converted, _ := dateparse.Convert(name)
		return converted
	case classify.ReasonAddDatePrefix:
		return dateparse.AddPrefix(name, modifiedAt)
	}
	return name
}
