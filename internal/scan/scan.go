// Package scan discovers files under a target directory and carries the
// per-file metadata the rest of the pipeline operates on.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Descriptor is one file under consideration. Path is mutated in place when
// a rename occurs; Extension is always derived from the final name component
// and resynced on every path change.
type Descriptor struct {
	Path       string    // absolute filesystem path
	SizeBytes  uint64    // size at scan time
	ModifiedAt time.Time // mtime at scan time, or as loaded from a ledger
	Extension  string    // lower-cased, with leading dot; empty if none
}

// New builds a descriptor from stat data, deriving the extension from path.
func New(path string, sizeBytes uint64, modifiedAt time.Time) Descriptor {
	return Descriptor{
		Path:       path,
		SizeBytes:  sizeBytes,
		ModifiedAt: modifiedAt,
		Extension:  strings.ToLower(filepath.Ext(path)),
	}
}

// SetPath updates the descriptor's path and resyncs the extension.
func (d *Descriptor) SetPath(path string) {
	d.Path = path
	d.Extension = strings.ToLower(filepath.Ext(path))
}

// Name returns the final path component.
func (d *Descriptor) Name() string {
	return filepath.Base(d.Path)
}

// Directory walks root recursively and returns a descriptor for every
// regular file, sorted lexicographically for deterministic processing order.
// A missing or non-directory root is a fatal error; a stat failure on an
// individual file is recorded as a warning and the file is skipped.
func Directory(root string) ([]Descriptor, []string, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("directory does not exist: %s", root)
	}
	if !fi.IsDir() {
		return nil, nil, fmt.Errorf("path is not a directory: %s", root)
	}

	var descs []Descriptor
	var warnings []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("error reading %s: %v", path, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("error reading file %s: %v", path, err))
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		descs = append(descs, New(abs, uint64(info.Size()), info.ModTime()))
		return nil
	})
	if err != nil {
		return nil, warnings, err
	}

	sort.Slice(descs, func(i, j int) bool { return descs[i].Path < descs[j].Path })
	return descs, warnings, nil
}
