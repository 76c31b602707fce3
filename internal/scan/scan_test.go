package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDescriptor_ExtensionSync(t *testing.T) {
	d := New("/data/Budget Report.XLSX", 10, time.Now())
	if d.Extension != ".xlsx" {
		t.Errorf("extension = %q, want .xlsx", d.Extension)
	}

	d.SetPath("/data/2020.03.14 Budget Report.pdf")
	if d.Extension != ".pdf" {
		t.Errorf("extension after SetPath = %q, want .pdf", d.Extension)
	}
	if d.Name() != "2020.03.14 Budget Report.pdf" {
		t.Errorf("Name() = %q", d.Name())
	}
}

func TestDescriptor_NoExtension(t *testing.T) {
	d := New("/data/README", 10, time.Now())
	if d.Extension != "" {
		t.Errorf("extension = %q, want empty", d.Extension)
	}
}

func TestDirectory_FatalCases(t *testing.T) {
	if _, _, err := Directory(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("missing root should be fatal")
	}

	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Directory(file); err == nil {
		t.Error("non-directory root should be fatal")
	}
}

func TestDirectory_RecursiveAndSorted(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "sub", "deep"), 0o755)
	for _, name := range []string{"b.docx", "a.pdf"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "deep", "c.xlsx"), []byte("xy"), 0o644); err != nil {
		t.Fatal(err)
	}

	descs, warnings, err := Directory(dir)
	if err != nil {
		t.Fatalf("Directory: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(descs) != 3 {
		t.Fatalf("got %d descriptors, want 3", len(descs))
	}
	for i := 1; i < len(descs); i++ {
		if descs[i].Path < descs[i-1].Path {
			t.Errorf("not sorted: %q before %q", descs[i-1].Path, descs[i].Path)
		}
	}
	for _, d := range descs {
		if !filepath.IsAbs(d.Path) {
			t.Errorf("path not absolute: %q", d.Path)
		}
		if d.SizeBytes == 0 {
			t.Errorf("size not captured for %q", d.Path)
		}
	}
}

func TestDirectory_CapturesMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old.docx")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}
	stamp := time.Now().AddDate(0, 0, -90).Truncate(time.Second)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	descs, _, err := Directory(dir)
	if err != nil {
		t.Fatalf("Directory: %v", err)
	}
	if len(descs) != 1 {
		t.Fatalf("got %d descriptors, want 1", len(descs))
	}
	d := descs[0]
	if d.SizeBytes != 7 {
		t.Errorf("size = %d, want 7", d.SizeBytes)
	}
	if !d.ModifiedAt.Equal(stamp) {
		t.Errorf("mtime = %v, want %v", d.ModifiedAt, stamp)
	}
	if d.Extension != ".docx" {
		t.Errorf("extension = %q, want .docx", d.Extension)
	}
}
