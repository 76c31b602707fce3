package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into engine, report, behavior, display, and utility.
// Negated flags (e.g. --no-ui) are applied after Parse so Config defaults
// hold unless set.

import (
	"flag"
	"fmt"
	"os"
)

// version is shown in --version and help; override at build time with -ldflags "-X ...config.version=...".
var version = "1.0.0-dev"

// Version returns the build version string.
func Version() string { return version }

// ParseFlags parses args (os.Args[1:]) into cfg. On --help or --version it
// prints and exits. On error it returns non-nil (e.g. unknown flag).
func ParseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("refresher", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags

	defineEngineFlags(fs, cfg)
	defineReportFlags(fs, cfg, &negated)
	defineBehaviorFlags(fs, cfg, &negated)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "refresher v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	noUI        bool
	saveHere    bool // report next to the invocation cwd instead of the target dir
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
	extensions  string // comma-separated override for RenameExtensions
}

// defineEngineFlags registers --config, --days, --extensions, --replay.
func defineEngineFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Path to YAML configuration file")
	fs.IntVar(&cfg.DaysThreshold, "days", cfg.DaysThreshold, "Staleness threshold in days")
	fs.StringVar(&cfg.ReplayCSV, "replay", "", "Re-run against a previously written report CSV")
	fs.StringVar(&cfg.ReplayCSV, "r", "", "Same as --replay")
}

// defineReportFlags registers --report-pattern and --save-here.
func defineReportFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.StringVar(&cfg.ReportPattern, "report-pattern", cfg.ReportPattern, "Report filename pattern containing {date}")
	fs.BoolVar(&n.saveHere, "save-here", false, "Write the report to the current directory instead of the target")
	fs.StringVar(&n.extensions, "extensions", "", "Comma-separated rename extensions (e.g. .docx,.pdf)")
}

// defineBehaviorFlags registers --dry-run and --no-ui.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not rename or touch files")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&n.noUI, "no-ui", false, "Skip the interactive wizard")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run environment diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noUI {
		cfg.Interactive = false
	}
	if n.saveHere {
		cfg.SaveInTargetDir = false
	}
	if n.extensions != "" {
		cfg.RenameExtensions = splitExtensions(n.extensions)
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets TargetDir from the optional positional argument.
// Passing a directory implies batch mode (no wizard); so does --replay.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if len(args) > 1 {
		return fmt.Errorf("at most one target directory expected, got %d arguments", len(args))
	}
	if len(args) == 1 {
		cfg.TargetDir = NormalizeDirArg(args[0])
		cfg.Interactive = false
	}
	if cfg.ReplayCSV != "" {
		cfg.Interactive = false
	}
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Refresher v" + version + " - refresh file dates, preserving original dates in filenames"},
		{"", ""},
		{"  refresher [OPTIONS] [target_dir]", ""},
		{"", ""},
		{"Engine", ""},
		{"  --config <path>", "YAML configuration file (default: config.yaml)"},
		{"  --days <n>", "Staleness threshold in days (default: 30)"},
		{"  --extensions <list>", "Comma-separated rename extensions (e.g. .docx,.pdf)"},
		{"  -r, --replay <csv>", "Re-run against a previously written report"},
		{"", ""},
		{"Report", ""},
		{"  --report-pattern <pat>", "Report filename pattern with {date} placeholder"},
		{"  --save-here", "Write report to the current directory, not the target"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Preview only; do not rename or touch files"},
		{"  --no-ui", "Skip the interactive wizard"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Environment diagnostics (config, target, timestamps)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
