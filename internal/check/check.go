// Package check provides environment diagnostics (--check mode): config file
// status, target directory access, and filesystem capability probes for the
// rename and timestamp operations the engine depends on.
package check

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"refresher/internal/config"
)

// Sentinel errors returned by probe helpers.
var (
	ErrTargetMissing  = errors.New("target directory does not exist")
	ErrTargetNotDir   = errors.New("target path is not a directory")
	ErrTargetReadOnly = errors.New("target directory is not writable")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the --check flow: config file status, engine settings echo,
// and (when a target directory is configured) write/rename/timestamp
// capability probes. Informational only; it does not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== Environment Check ===")

	checkConfigFile(cfg, log)
	checkSettings(cfg, log)
	if cfg.TargetDir != "" {
		checkTarget(cfg.TargetDir, log)
	} else {
		log.Info("No target directory given; skipping filesystem probes")
	}
}

// checkConfigFile reports whether the YAML config exists and parses.
func checkConfigFile(cfg *config.Config, log Logger) {
	probe := config.DefaultConfig()
	probe.ConfigPath = cfg.ConfigPath
	found, err := config.LoadFile(&probe)
	switch {
	case err != nil:
		log.Error("Config %s: %v", cfg.ConfigPath, err)
	case !found:
		log.Warn("Config %s not found; defaults in effect", cfg.ConfigPath)
	default:
		log.Success("Config %s: OK", cfg.ConfigPath)
	}
}

// checkSettings echoes the effective engine settings.
func checkSettings(cfg *config.Config, log Logger) {
	log.Info("Rename extensions: %s", strings.Join(cfg.RenameExtensions, ", "))
	log.Info("Staleness threshold: %d days", cfg.DaysThreshold)
	log.Info("Report pattern: %s", cfg.ReportPattern)
}

// checkTarget verifies the target directory and probes the operations the
// engine performs: create, rename, and timestamp update.
func checkTarget(dir string, log Logger) {
	if err := ProbeDir(dir); err != nil {
		log.Error("Target %s: %v", dir, err)
		return
	}
	log.Success("Target %s: exists and is writable", dir)

	if err := probeMutations(dir); err != nil {
		log.Error("Mutation probe failed: %v", err)
		return
	}
	log.Success("Rename and timestamp operations work")
}

// ProbeDir verifies that dir exists, is a directory, and accepts a new file.
func ProbeDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return ErrTargetMissing
	}
	if !fi.IsDir() {
		return ErrTargetNotDir
	}
	f, err := os.CreateTemp(dir, ".refresher-probe-*")
	if err != nil {
		return ErrTargetReadOnly
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// probeMutations creates a scratch file and exercises os.Rename and
// os.Chtimes against it, cleaning up afterwards.
func probeMutations(dir string) error {
	f, err := os.CreateTemp(dir, ".refresher-probe-*")
	if err != nil {
		return err
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	renamed := filepath.Join(dir, filepath.Base(path)+".renamed")
	if err := os.Rename(path, renamed); err != nil {
		return err
	}
	defer os.Remove(renamed)
	path = renamed

	stamp := time.Now().Add(-time.Hour)
	return os.Chtimes(path, stamp, stamp)
}
