// Package wizard implements the interactive terminal flow: welcome screen,
// directory selection, configuration review, and the pre-scan summary with
// its proceed confirmation. All engine work stays in the pipeline; this
// package only prompts and prints.
package wizard

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"refresher/internal/classify"
	"refresher/internal/config"
	"refresher/internal/dateparse"
	"refresher/internal/display"
	"refresher/internal/scan"
	"refresher/internal/term"
)

// Wizard drives the interactive prompts. Reader and Writer default to
// stdin/stdout; tests substitute buffers.
type Wizard struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// New returns a wizard bound to stdin/stdout.
func New() *Wizard {
	return &Wizard{In: os.Stdin, Out: os.Stdout}
}

func (w *Wizard) input() *bufio.Reader {
	if w.reader == nil {
		w.reader = bufio.NewReader(w.In)
	}
	return w.reader
}

func (w *Wizard) printf(format string, args ...interface{}) {
	fmt.Fprintf(w.Out, format, args...)
}

// ShowWelcome prints the intro text below the banner and waits for ENTER.
func (w *Wizard) ShowWelcome() {
	w.printf("%sRefresh file dates while preserving original dates in filenames%s\n\n", term.Green, term.NC)
	w.printf("Press ENTER to continue...")
	_, _ = w.input().ReadString('\n')
}

// PromptDirectory asks for a directory path until a valid one is entered.
// Empty input selects the current working directory.
func (w *Wizard) PromptDirectory() (string, error) {
	w.printf("\n%sDIRECTORY SELECTION%s\n", term.Green, term.NC)
	w.printf("%s\n", strings.Repeat("-", 50))

	for {
		wd, _ := os.Getwd()
		w.printf("\n> Select directory [%s]: ", wd)
		line, err := w.input().ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		dir := strings.TrimSpace(line)
		if dir == "" {
			dir = wd
		}

		abs, err := filepath.Abs(dir)
		if err == nil {
			if fi, statErr := os.Stat(abs); statErr == nil && fi.IsDir() {
				w.printf("\n%s* Directory confirmed: %s%s\n", term.Cyan, abs, term.NC)
				return abs, nil
			}
		}
		w.printf("\n%sx Invalid directory: %s%s\n", term.Red, dir, term.NC)
		w.printf("%sPlease enter a valid directory path%s\n", term.Yellow, term.NC)
	}
}

// ConfirmSettings shows the configuration review screen and asks whether to
// continue.
func (w *Wizard) ConfirmSettings(cfg *config.Config) bool {
	w.printf("\n%sCONFIGURATION REVIEW%s\n", term.Green, term.NC)
	w.printf("%s\n\n", strings.Repeat("-", 50))

	w.printf("Rename settings:\n")
	for _, ext := range cfg.RenameExtensions {
		w.printf("  %-8s %s\n", ext, extensionLabel(ext))
	}
	w.printf("\nModification date update:\n")
	w.printf("  all files older than %d days\n", cfg.DaysThreshold)
	w.printf("  will be updated to: %s\n", time.Now().Format("2006.01.02"))
	if cfg.DryRun {
		w.printf("\n%sDRY RUN: nothing will be modified%s\n", term.Yellow, term.NC)
	}
	w.printf("\n[ To modify these settings, edit %s ]\n", cfg.ConfigPath)

	return w.confirm("\nContinue with these settings?", true)
}

// extension labels shown on the review screen.
var extensionLabels = map[string]string{
	".docx": "Word Documents",
	".doc":  "Legacy Word",
	".xlsx": "Excel Spreadsheets",
	".xls":  "Legacy Excel",
	".pptx": "PowerPoint Presentations",
	".ppt":  "Legacy PowerPoint",
	".pdf":  "PDF Documents",
}

func extensionLabel(ext string) string {
	if label, ok := extensionLabels[ext]; ok {
		return label
	}
	return "Custom File Type"
}

// ConfirmPreScan prints the file-type summary and predicted actions for the
// scanned descriptors, then asks whether to proceed.
func (w *Wizard) ConfirmPreScan(descs []scan.Descriptor, cfg *config.Config) bool {
	opts := classify.NewOptions(cfg.RenameExtensions, cfg.DaysThreshold)
	now := time.Now()

	perExt := make(map[string]int)
	sizePerExt := make(map[string]uint64)
	var alreadyDotted, alreadyHyphenated, willRename, willRefresh, oldestDays int
	for i := range descs {
		d := &descs[i]
		perExt[d.Extension]++
		sizePerExt[d.Extension] += d.SizeBytes
		if age := int(now.Sub(d.ModifiedAt).Hours() / 24); age > oldestDays {
			oldestDays = age
		}

		name := d.Name()
		if _, ok := dateparse.MatchDotted(name); ok {
			alreadyDotted++
		} else if _, ok := dateparse.MatchHyphenated(name); ok {
			alreadyHyphenated++
		}
		if needed, _ := classify.NeedsRename(name, d.Extension, opts.RenameExtensions); needed {
			willRename++
		}
		if classify.NeedsDateRefresh(d.ModifiedAt, cfg.DaysThreshold, now) {
			willRefresh++
		}
	}

	w.printf("\n%sFILE TYPE SUMMARY%s\n", term.Green, term.NC)
	exts := make([]string, 0, len(perExt))
	for ext := range perExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		label := ext
		if label == "" {
			label = "(none)"
		}
		w.printf("  %-8s %-5d %s\n", label, perExt[ext], display.FormatBytes(int64(sizePerExt[ext])))
	}

	w.printf("\n%sPROCESSING SUMMARY%s\n", term.Green, term.NC)
	w.printf("  Files already dated (YYYY.MM.DD): %d\n", alreadyDotted)
	w.printf("  Files already dated (YYYY-MM-DD): %d\n", alreadyHyphenated)
	w.printf("  Files to rename:                  %d\n", willRename)
	w.printf("  Dates to update:                  %d\n", willRefresh)
	w.printf("  Oldest file age:                  %s\n", display.FormatAge(oldestDays))
	w.printf("  TOTAL FILES:                      %d\n", len(descs))

	return w.confirm("\nProceed with file processing?", true)
}

// confirm asks a yes/no question; empty input selects def.
func (w *Wizard) confirm(prompt string, def bool) bool {
	suffix := "[Y/n]"
	if !def {
		suffix = "[y/N]"
	}
	w.printf("%s %s: ", prompt, suffix)
	line, err := w.input().ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def
	case "y", "yes":
		return true
	default:
		return false
	}
}
