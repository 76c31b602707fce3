package classify

import (
	"testing"
	"time"

	"refresher/internal/scan"
)

var officeExts = []string{".docx", ".doc", ".xlsx", ".xls", ".pptx", ".ppt", ".pdf"}

func TestNeedsRename(t *testing.T) {
	opts := NewOptions(officeExts, 30)

	tests := []struct {
		name       string
		filename   string
		ext        string
		wantNeeded bool
		wantReason RenameReason
	}{
		{"extension not in set", "report.csv", ".csv", false, ReasonNone},
		{"no extension", "README", "", false, ReasonNone},
		{"already dotted", "2019.06.15 Meeting Notes.docx", ".docx", false, ReasonAlreadyDated},
		{"permissive dotted date kept", "9999.99.99 x.docx", ".docx", false, ReasonAlreadyDated},
		{"hyphenated needs conversion", "2020-03-14 Budget Draft.xlsx", ".xlsx", true, ReasonConvertSeparators},
		{"plain name needs prefix", "Budget Report.xlsx", ".xlsx", true, ReasonAddDatePrefix},
		{"dotted but excluded extension", "2019.06.15 data.csv", ".csv", false, ReasonNone},
		{"case-insensitive extension", "Manual.pdf", ".PDF", true, ReasonAddDatePrefix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			needed, reason := NeedsRename(tt.filename, tt.ext, opts.RenameExtensions)
			if needed != tt.wantNeeded || reason != tt.wantReason {
				t.Errorf("NeedsRename(%q, %q) = (%v, %q), want (%v, %q)",
					tt.filename, tt.ext, needed, reason, tt.wantNeeded, tt.wantReason)
			}
		})
	}
}

func TestNeedsRename_EmptySetDisablesRenaming(t *testing.T) {
	opts := NewOptions(nil, 30)
	needed, reason := NeedsRename("Budget Report.xlsx", ".xlsx", opts.RenameExtensions)
	if needed || reason != ReasonNone {
		t.Errorf("empty extension set: got (%v, %q), want (false, none)", needed, reason)
	}
}

func TestNeedsDateRefresh(t *testing.T) {
	now := time.Date(2025, 7, 11, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name       string
		modifiedAt time.Time
		threshold  int
		want       bool
	}{
		{"older than threshold", now.AddDate(0, 0, -60), 30, true},
		{"just over threshold", now.Add(-30*24*time.Hour - time.Second), 30, true},
		{"exactly threshold old is kept", now.Add(-30 * 24 * time.Hour), 30, false},
		{"recent file", now.AddDate(0, 0, -5), 30, false},
		{"zero threshold refreshes anything older than now", now.Add(-time.Second), 0, true},
		{"zero threshold, same instant", now, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NeedsDateRefresh(tt.modifiedAt, tt.threshold, now)
			if got != tt.want {
				t.Errorf("NeedsDateRefresh = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewOptions_Normalization(t *testing.T) {
	opts := NewOptions([]string{"DOCX", ".Xlsx", " pdf ", ""}, 30)
	for _, want := range []string{".docx", ".xlsx", ".pdf"} {
		if !opts.RenameExtensions[want] {
			t.Errorf("expected %q in normalized set %v", want, opts.RenameExtensions)
		}
	}
	if len(opts.RenameExtensions) != 3 {
		t.Errorf("got %d extensions, want 3", len(opts.RenameExtensions))
	}
}

func TestClassify(t *testing.T) {
	now := time.Date(2025, 7, 11, 12, 0, 0, 0, time.Local)
	opts := NewOptions(officeExts, 30)

	t.Run("aged hyphenated spreadsheet", func(t *testing.T) {
		d := scan.New("/data/2020-03-14 Budget Draft.xlsx", 100, now.AddDate(0, 0, -60))
		dec := Classify(&d, opts, now)
		if !dec.RenameNeeded || dec.RenameReason != ReasonConvertSeparators {
			t.Errorf("rename decision = (%v, %q), want (true, convert_separators)", dec.RenameNeeded, dec.RenameReason)
		}
		if !dec.DateRefreshNeeded {
			t.Error("60-day-old file with 30-day threshold should need a refresh")
		}
	})

	t.Run("recent undated document", func(t *testing.T) {
		d := scan.New("/data/Recent Document.docx", 100, now.AddDate(0, 0, -5))
		dec := Classify(&d, opts, now)
		if !dec.RenameNeeded || dec.RenameReason != ReasonAddDatePrefix {
			t.Errorf("rename decision = (%v, %q), want (true, add_date_prefix)", dec.RenameNeeded, dec.RenameReason)
		}
		if dec.DateRefreshNeeded {
			t.Error("5-day-old file should not need a refresh")
		}
	})

	t.Run("csv never renamed regardless of age", func(t *testing.T) {
		d := scan.New("/data/report.csv", 100, now.AddDate(0, 0, -500))
		dec := Classify(&d, opts, now)
		if dec.RenameNeeded || dec.RenameReason != ReasonNone {
			t.Errorf("rename decision = (%v, %q), want (false, none)", dec.RenameNeeded, dec.RenameReason)
		}
		if !dec.DateRefreshNeeded {
			t.Error("old csv still gets its date refreshed")
		}
	})
}
