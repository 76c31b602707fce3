// Package prune removes every file under a target directory except those
// listed in a keep-list CSV. Files are never deleted outright: they are
// moved into a timestamped trash directory beside the target, preserving
// their relative layout, and a report CSV records every move.
package prune

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrKeepOutsideTarget aborts the whole run: a keep-list row points outside
// the target directory, which would make the prune walk unsafe to trust.
var ErrKeepOutsideTarget = errors.New("keep-list path is outside the target directory")

// Stats summarizes one prune run.
type Stats struct {
	Total int // files examined
	Moved int // files moved to trash
}

// LoadKeepSet reads the keep-list CSV (first row is a header) and returns
// the canonical absolute paths to preserve. pathCol is zero-based. Every
// listed path must canonicalize to a location inside targetRoot (itself
// canonical); any violation aborts with ErrKeepOutsideTarget.
func LoadKeepSet(csvPath, targetRoot string, pathCol int) (map[string]bool, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open keep CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	if _, err := r.Read(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("cannot read keep CSV header: %w", err)
	}

	keep := make(map[string]bool)
	for {
		row, err := r.Read()
		if err != nil {
			break
		}
		if len(row) <= pathCol {
			continue
		}
		raw := strings.Trim(strings.TrimSpace(row[pathCol]), `"'`)
		if raw == "" {
			continue
		}
		p, err := Canonicalize(raw)
		if err != nil {
			continue
		}
		if !Within(targetRoot, p) {
			return nil, fmt.Errorf("%w: %s", ErrKeepOutsideTarget, p)
		}
		keep[p] = true
	}
	return keep, nil
}

// Run walks targetRoot and moves every file not in keep into trashDir,
// preserving the path relative to targetRoot. It writes a report CSV
// (deleted_path, error) and a diagnostics CSV (type, file_path, in_keep).
// Per-file move failures are recorded in the report and do not stop the walk.
func Run(targetRoot string, keep map[string]bool, trashDir, reportCSV, diagCSV string) (Stats, error) {
	var stats Stats

	diag, err := os.Create(diagCSV)
	if err != nil {
		return stats, fmt.Errorf("cannot open diagnostics CSV: %w", err)
	}
	defer diag.Close()
	dw := csv.NewWriter(diag)
	_ = dw.Write([]string{"type", "file_path", "in_keep"})

	keptSorted := make([]string, 0, len(keep))
	for kp := range keep {
		keptSorted = append(keptSorted, kp)
	}
	sort.Strings(keptSorted)
	for _, kp := range keptSorted {
		_ = dw.Write([]string{"keep", kp, ""})
	}

	var deletedRows [][]string
	err = filepath.WalkDir(targetRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		stats.Total++

		full, cerr := Canonicalize(path)
		if cerr != nil {
			full = path
		}
		inKeep := keep[full]
		_ = dw.Write([]string{"file", full, fmt.Sprintf("%t", inKeep)})
		if inKeep {
			return nil
		}

		if merr := moveToTrash(targetRoot, path, trashDir); merr != nil {
			deletedRows = append(deletedRows, []string{full, merr.Error()})
			return nil
		}
		stats.Moved++
		deletedRows = append(deletedRows, []string{full, ""})
		return nil
	})
	dw.Flush()
	if err != nil {
		return stats, err
	}

	report, err := os.Create(reportCSV)
	if err != nil {
		return stats, fmt.Errorf("cannot open report CSV: %w", err)
	}
	defer report.Close()
	rw := csv.NewWriter(report)
	_ = rw.Write([]string{"deleted_path", "error"})
	_ = rw.WriteAll(deletedRows)
	rw.Flush()
	return stats, rw.Error()
}

// TrashDirFor returns a timestamped trash directory path beside root.
func TrashDirFor(root string, now time.Time) string {
	return filepath.Join(filepath.Dir(root),
		filepath.Base(root)+".trash."+now.Format("20060102-150405"))
}

// moveToTrash renames path into trashDir, preserving its location relative
// to root.
func moveToTrash(root, path, trashDir string) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	dest := filepath.Join(trashDir, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.Rename(path, dest)
}
