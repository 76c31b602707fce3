// Package config holds runtime configuration: defaults, YAML config file
// loading, environment overrides, CLI flag parsing, and validation.
// Precedence, lowest to highest: defaults < config.yaml < REFRESHER_* env
// vars < CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// layered by [LoadFile] and [ApplyEnv], and finally mutated by [ParseFlags]
// before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args / flags).
	TargetDir string // directory to process
	ReplayCSV string // prior report to replay instead of scanning

	// Engine settings.
	RenameExtensions []string // lower-cased, dot-prefixed; empty disables renaming
	DaysThreshold    int      // staleness threshold in days, non-negative

	// Report settings.
	ReportPattern   string // must contain "{date}"
	SaveInTargetDir bool   // write the report into TargetDir (default: true)

	// Behavior flags.
	DryRun      bool
	Interactive bool // run the terminal wizard; cleared by --no-ui or a dir arg

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.

	// Config file path (flag-only; not itself configurable from YAML).
	ConfigPath string
}

// DefaultConfig returns the built-in settings: the office extension set, a
// 30-day staleness threshold, and a dated report name.
func DefaultConfig() Config {
	return Config{
		RenameExtensions: []string{".docx", ".doc", ".xlsx", ".xls", ".pptx", ".ppt", ".pdf"},
		DaysThreshold:    30,
		ReportPattern:    "file_refresh_report_{date}.csv",
		SaveInTargetDir:  true,
		ColorMode:        ColorAuto,
		ConfigPath:       "config.yaml",
		Interactive:      true,
	}
}

// EnvConfigPath returns the REFRESHER_CONFIG override, or def when unset.
// Split out from [ApplyEnv] so the config file path resolves before the file
// loads, while the remaining env overrides apply after it.
func EnvConfigPath(def string) string {
	if v := os.Getenv("REFRESHER_CONFIG"); v != "" {
		return v
	}
	return def
}

// ApplyEnv overlays REFRESHER_* environment variables onto cfg. A .env file
// is honored when the caller imports godotenv/autoload. Unset or malformed
// values leave the current setting untouched. Call after [LoadFile] so env
// values override the config file.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("REFRESHER_CONFIG"); v != "" {
		cfg.ConfigPath = v
	}
	if v := os.Getenv("REFRESHER_DAYS_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DaysThreshold = n
		}
	}
	if v := os.Getenv("REFRESHER_EXTENSIONS"); v != "" {
		cfg.RenameExtensions = splitExtensions(v)
	}
	if v := os.Getenv("REFRESHER_REPORT_PATTERN"); v != "" {
		cfg.ReportPattern = v
	}
	if v := os.Getenv("REFRESHER_LOG"); v != "" {
		cfg.LogFile = v
	}
}

// splitExtensions parses a comma-separated extension list.
func splitExtensions(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// NormalizeExtensions lower-cases the configured extensions and guarantees
// the leading dot, in place.
func (c *Config) NormalizeExtensions() {
	for i, ext := range c.RenameExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.RenameExtensions[i] = ext
	}
}

// Validate checks field constraints. When not in CheckOnly or interactive
// mode it also requires either a target directory or a replay CSV, but not
// both.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.DaysThreshold < 0 {
		return fmt.Errorf("days threshold must be non-negative (got %d)", c.DaysThreshold)
	}
	if !strings.Contains(c.ReportPattern, "{date}") {
		return fmt.Errorf("report pattern must contain the {date} placeholder (got %q)", c.ReportPattern)
	}
	c.NormalizeExtensions()

	if c.CheckOnly || c.Interactive {
		return nil
	}
	if c.TargetDir == "" && c.ReplayCSV == "" {
		return errors.New("need a target directory or a replay CSV")
	}
	if c.TargetDir != "" && c.ReplayCSV != "" {
		return errors.New("target directory and replay CSV are mutually exclusive")
	}
	return nil
}
