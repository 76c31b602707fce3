package ledger

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"refresher/internal/mutate"
)

func sampleResults(dir string, now time.Time) []mutate.Result {
	return []mutate.Result{
		{
			OriginalPath:     filepath.Join(dir, "Budget Report.xlsx"),
			NewPath:          filepath.Join(dir, "2025.04.12 Budget Report.xlsx"),
			OriginalModified: now.AddDate(0, 0, -90),
			NewModified:      now,
			Extension:        "xlsx",
			SizeBytes:        1234,
			Renamed:          true,
			DateUpdated:      true,
		},
		{
			OriginalPath:     filepath.Join(dir, "readme.txt"),
			NewPath:          filepath.Join(dir, "readme.txt"),
			OriginalModified: now.AddDate(0, 0, -400),
			NewModified:      now,
			Extension:        "txt",
			SizeBytes:        17,
			DateUpdated:      true,
		},
	}
}

func TestWrite_ColumnsAndFormat(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 7, 11, 14, 30, 5, 0, time.Local)

	path, err := Write(sampleResults(dir, now), dir, "file_refresh_report_{date}.csv", now)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "file_refresh_report_2025.07.11.csv" {
		t.Errorf("report name = %q", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if strings.Join(rows[0], ",") != "new_path,original_modified,new_modified,extension,size_bytes" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][2] != "2025-07-11 14:30:05" {
		t.Errorf("new_modified = %q, want fixed local format", rows[1][2])
	}
	if rows[1][3] != "xlsx" || rows[1][4] != "1234" {
		t.Errorf("extension/size = %q/%q", rows[1][3], rows[1][4])
	}
}

func TestWrite_CounterSuffixOnExistingReport(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 7, 11, 9, 0, 0, 0, time.Local)

	var got []string
	for i := 0; i < 3; i++ {
		path, err := Write(nil, dir, "report_{date}.csv", now)
		if err != nil {
			t.Fatalf("Write #%d: %v", i, err)
		}
		got = append(got, filepath.Base(path))
	}

	want := []string{
		"report_2025.07.11.csv",
		"report_2025.07.11.01.csv",
		"report_2025.07.11.02.csv",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("report #%d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 7, 11, 14, 30, 5, 0, time.Local)
	results := sampleResults(dir, now)

	// The replayed paths must exist on disk.
	for _, r := range results {
		if err := os.WriteFile(r.NewPath, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	path, err := Write(results, dir, "report_{date}.csv", now)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	descs, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(descs) != 2 {
		t.Fatalf("got %d descriptors, want 2", len(descs))
	}

	d := descs[0]
	if d.Path != results[0].NewPath {
		t.Errorf("path = %q, want %q", d.Path, results[0].NewPath)
	}
	// ModifiedAt is the recorded "before" timestamp, not the on-disk mtime.
	wantMod := results[0].OriginalModified.Truncate(time.Second)
	if !d.ModifiedAt.Equal(wantMod) {
		t.Errorf("modifiedAt = %v, want %v", d.ModifiedAt, wantMod)
	}
	if d.Extension != ".xlsx" {
		t.Errorf("extension = %q, want .xlsx (leading dot restored)", d.Extension)
	}
	if d.SizeBytes != 1234 {
		t.Errorf("size = %d, want 1234", d.SizeBytes)
	}
}

func TestLoad_RejectsNonCSV(t *testing.T) {
	if _, _, err := Load("/tmp/report.txt"); !errors.Is(err, ErrNotCSV) {
		t.Errorf("err = %v, want ErrNotCSV", err)
	}
}

func TestLoad_RejectsBadHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(path, []byte("path,when\n/x,2020\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(path); !errors.Is(err, ErrMissingHeader) {
		t.Errorf("err = %v, want ErrMissingHeader", err)
	}
}

func TestLoad_MalformedRowDoesNotDropRemainder(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "kept.pdf")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A stray quote makes the middle record unparseable; the row after it
	// must still load.
	content := strings.Join([]string{
		strings.Join(Columns, ","),
		`bad"row,2025-04-12 10:00:00,2025-07-11 09:00:00,pdf,99`,
		existing + ",2025-04-12 10:00:00,2025-07-11 09:00:00,pdf,99",
	}, "\n") + "\n"

	path := filepath.Join(dir, "report.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	descs, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(descs) != 1 || descs[0].Path != existing {
		t.Errorf("rows after a malformed record were dropped: %+v", descs)
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1 for the malformed record: %v", len(warnings), warnings)
	}
}

func TestLoad_SkipsBadRows(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "kept.pdf")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	content := strings.Join([]string{
		strings.Join(Columns, ","),
		existing + ",2025-04-12 10:00:00,2025-07-11 09:00:00,pdf,99",
		filepath.Join(dir, "missing.pdf") + ",2025-04-12 10:00:00,2025-07-11 09:00:00,pdf,99",
		existing + ",not-a-timestamp,2025-07-11 09:00:00,pdf,99",
		existing + ",2025-04-12 10:00:00,12/31/2025,pdf,99",
	}, "\n") + "\n"

	path := filepath.Join(dir, "report.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	descs, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(descs) != 1 {
		t.Errorf("got %d descriptors, want 1 (bad rows skipped)", len(descs))
	}
	if len(warnings) != 3 {
		t.Errorf("got %d warnings, want 3: %v", len(warnings), warnings)
	}
}
