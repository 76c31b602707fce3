// Package ledger persists per-file outcomes as a CSV report and loads prior
// reports back into descriptors for replay runs. The CSV doubles as a human
// report and a replayable input for later runs.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"refresher/internal/mutate"
	"refresher/internal/scan"
)

// TimeLayout is the fixed timestamp format used in report columns: local
// wall-clock, no timezone.
const TimeLayout = "2006-01-02 15:04:05"

// Columns is the fixed CSV header, in order.
var Columns = []string{"new_path", "original_modified", "new_modified", "extension", "size_bytes"}

// Sentinel errors for fatal ledger conditions.
var (
	ErrNotCSV        = errors.New("replay input must be a .csv file")
	ErrMissingHeader = errors.New("replay CSV is missing the required header columns")
)

// Write serializes results into dir using the filename pattern, which must
// contain a "{date}" placeholder. If the derived name is taken, a two-digit
// zero-padded counter is inserted before the extension until a free name is
// found, so every run produces a distinct report. Returns the written path.
func Write(results []mutate.Result, dir, pattern string, now time.Time) (string, error) {
	name := strings.Replace(pattern, "{date}", now.Format("2006.01.02"), 1)
	path, err := resolveReportPath(dir, name)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("cannot open report for writing: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return "", err
	}
	for _, r := range results {
		row := []string{
			r.NewPath,
			r.OriginalModified.Format(TimeLayout),
			r.NewModified.Format(TimeLayout),
			r.Extension,
			strconv.FormatUint(r.SizeBytes, 10),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, nil
}

// resolveReportPath returns the first non-existing path for name within dir,
// appending ".01", ".02", ... before the extension as needed.
func resolveReportPath(dir, name string) (string, error) {
	candidate := filepath.Join(dir, name)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; n < 100; n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s.%02d%s", stem, n, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free report filename for %s in %s", name, dir)
}

// Load reads a previously written report and reconstructs descriptors for a
// replay run. Each descriptor's ModifiedAt is the row's original_modified
// timestamp, not the file's current on-disk mtime, so the engine re-runs
// against exactly the "before" state the report recorded.
//
// A missing file, a wrong extension, or a bad header is fatal. A row whose
// path no longer exists on disk or whose timestamps fail to parse is
// skipped with a warning.
func Load(path string) ([]scan.Descriptor, []string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return nil, nil, ErrNotCSV
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open replay CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read replay CSV header: %w", err)
	}
	if !headerValid(header) {
		return nil, nil, ErrMissingHeader
	}

	var descs []scan.Descriptor
	var warnings []string
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			// A malformed record skips like any other bad row; the reader
			// continues with the next one.
			warnings = append(warnings, fmt.Sprintf("row %d: malformed row, skipping: %v", line, err))
			continue
		}
		if len(row) < len(Columns) {
			warnings = append(warnings, fmt.Sprintf("row %d: expected %d columns, got %d", line, len(Columns), len(row)))
			continue
		}

		newPath := strings.TrimSpace(row[0])
		if _, err := os.Stat(newPath); err != nil {
			warnings = append(warnings, fmt.Sprintf("row %d: file not found, skipping: %s", line, newPath))
			continue
		}

		originalModified, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(row[1]), time.Local)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("row %d: bad original_modified %q, skipping", line, row[1]))
			continue
		}
		if _, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(row[2]), time.Local); err != nil {
			warnings = append(warnings, fmt.Sprintf("row %d: bad new_modified %q, skipping", line, row[2]))
			continue
		}

		sizeBytes, err := strconv.ParseUint(strings.TrimSpace(row[4]), 10, 64)
		if err != nil {
			sizeBytes = 0
		}

		d := scan.New(newPath, sizeBytes, originalModified)
		if ext := normalizeExtension(row[3]); ext != "" {
			d.Extension = ext
		}
		descs = append(descs, d)
	}

	return descs, warnings, nil
}

func headerValid(header []string) bool {
	if len(header) < len(Columns) {
		return false
	}
	for i, want := range Columns {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return false
		}
	}
	return true
}

// normalizeExtension turns a report extension (stored without separator)
// back into the descriptor form: lower-cased with a leading dot.
func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
