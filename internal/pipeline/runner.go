// Package pipeline orchestrates descriptor collection, per-file
// classification and mutation, and report writing. Processing is strictly
// sequential: every file is classified and mutated before the next begins.
package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"

	"refresher/internal/classify"
	"refresher/internal/config"
	"refresher/internal/ledger"
	"refresher/internal/logging"
	"refresher/internal/mutate"
	"refresher/internal/scan"
)

// Run is the top-level batch entry point: collect descriptors (directory
// scan or replay CSV), process them, and write the report.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	descs, warnings, err := Collect(cfg, log)
	if err != nil {
		return RunStats{}, err
	}
	return Process(ctx, cfg, log, descs, warnings)
}

// Collect produces the descriptor list for one run: a recursive scan of the
// target directory, or rows loaded from a prior report when replaying.
// Fatal errors (missing root, unreadable or malformed CSV) return to the
// caller; per-file problems come back as warnings.
func Collect(cfg *config.Config, log *logging.Logger) ([]scan.Descriptor, []string, error) {
	if cfg.ReplayCSV != "" {
		log.Info("Replaying report: %s", cfg.ReplayCSV)
		return ledger.Load(cfg.ReplayCSV)
	}
	log.Info("Scanning directory: %s", cfg.TargetDir)
	return scan.Directory(cfg.TargetDir)
}

// Process classifies and mutates every descriptor in order, then writes the
// report. Context cancellation stops between files; an interrupted run does
// not write a report. The returned error is fatal (report could not be
// written); everything recoverable lands in stats.Warnings.
func Process(ctx context.Context, cfg *config.Config, log *logging.Logger, descs []scan.Descriptor, warnings []string) (RunStats, error) {
	stats := RunStats{Total: len(descs), Warnings: warnings}
	for _, w := range warnings {
		log.Warn("%s", w)
	}

	runID := uuid.NewString()
	logBatchHeader(cfg, log, &stats, runID)

	opts := classify.NewOptions(cfg.RenameExtensions, cfg.DaysThreshold)
	exec := &mutate.Executor{DryRun: cfg.DryRun, Now: time.Now}

	interrupted := false
	for i := range descs {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			interrupted = true
			break
		}
		stats.Current = i + 1
		processFile(cfg, log, &descs[i], opts, exec, &stats)
	}

	if !interrupted {
		if err := writeReport(cfg, log, &stats); err != nil {
			return stats, err
		}
	}

	logSummary(cfg, log, &stats, runID)
	return stats, nil
}

// processFile handles one descriptor: classify, mutate, record the result.
func processFile(
	cfg *config.Config,
	log *logging.Logger,
	d *scan.Descriptor,
	opts classify.Options,
	exec *mutate.Executor,
	stats *RunStats,
) {
	name := d.Name()
	log.Debug(cfg.Verbose, "[%d/%d] %s", stats.Current, stats.Total, name)

	dec := classify.Classify(d, opts, time.Now())
	result, errs := exec.Apply(d, dec)

	if dec.RenameReason == classify.ReasonAlreadyDated {
		log.Debug(cfg.Verbose, "  already dated, name kept")
	}
	if result.Renamed {
		stats.Renamed++
		log.Info("  renamed: %s -> %s", name, d.Name())
	}
	if result.DateUpdated {
		stats.DateUpdated++
		log.Debug(cfg.Verbose, "  date refreshed: %s", result.NewModified.Format(ledger.TimeLayout))
	}
	for _, e := range errs {
		log.Warn("  %s", e)
		stats.Warnings = append(stats.Warnings, e)
	}

	stats.Results = append(stats.Results, result)
}

// writeReport serializes the run's results. An unwritable report is the one
// fatal error of the processing phase.
func writeReport(cfg *config.Config, log *logging.Logger, stats *RunStats) error {
	dir := cfg.TargetDir
	if !cfg.SaveInTargetDir || dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		dir = wd
	}

	path, err := ledger.Write(stats.Results, dir, cfg.ReportPattern, time.Now())
	if err != nil {
		return err
	}
	stats.ReportPath = path
	log.Info("Report written: %s", path)
	return nil
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, stats *RunStats, runID string) {
	log.Info("Run %s", runID)
	log.Info("Found %d files", stats.Total)
	log.Info("Rename extensions: %v", cfg.RenameExtensions)
	log.Info("Staleness threshold: %d days", cfg.DaysThreshold)
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be modified")
	}
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats, runID string) {
	log.Info("==============================")
	log.Info("Done: %d processed, %d renamed, %d dates updated, %d errors",
		stats.Current, stats.Renamed, stats.DateUpdated, stats.ErrorCount())
	if stats.ErrorCount() > 0 {
		log.Warn("Files already bearing the desired name are deliberate skips, not errors")
	}
	if cfg.DryRun {
		log.Info("Dry run: filesystem untouched (run %s)", runID)
	}
}
