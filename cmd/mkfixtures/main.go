// Command mkfixtures creates a directory of test files covering the
// classification scenarios: undated office files of varying age, dotted and
// hyphenated date prefixes, non-office extensions, and recent files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type fixture struct {
	name    string
	daysOld int
}

var fixtures = []fixture{
	// Files needing a date prefix.
	{"Budget Report.xlsx", 90},
	{"Project Plan.docx", 365},
	{"Presentation.pptx", 180},
	{"Manual.pdf", 500},

	// Files with existing dotted dates.
	{"2019.06.15 Meeting Notes.docx", 45},
	{"2018.12.25 Holiday Schedule.xlsx", 100},

	// Files with hyphenated dates (need conversion).
	{"2020-03-14 Budget Draft.xlsx", 60},
	{"2019-11-30 Year End Report.pdf", 200},

	// Non-office files (never renamed).
	{"readme.txt", 400},
	{"data.csv", 90},
	{"image.png", 50},

	// Recent files (no date refresh).
	{"Recent Document.docx", 5},
	{"New Spreadsheet.xlsx", 10},
}

func main() {
	dir := flag.String("dir", "test_files", "directory to create fixtures in")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkfixtures: %v\n", err)
		os.Exit(1)
	}

	for _, fx := range fixtures {
		path := filepath.Join(*dir, fx.name)
		if err := os.WriteFile(path, []byte("Test file: "+fx.name), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "mkfixtures: %v\n", err)
			os.Exit(1)
		}
		stamp := time.Now().AddDate(0, 0, -fx.daysOld)
		if err := os.Chtimes(path, stamp, stamp); err != nil {
			fmt.Fprintf(os.Stderr, "mkfixtures: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created: %s (%d days old)\n", fx.name, fx.daysOld)
	}

	fmt.Printf("\nTest files created in %s\n", *dir)
}
