// Command refresher is the entrypoint for the file retention refresher CLI.
// It layers configuration (defaults, YAML, env, flags), then either runs the
// environment check, the interactive wizard, or the batch pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"refresher/internal/check"
	"refresher/internal/config"
	"refresher/internal/display"
	"refresher/internal/logging"
	"refresher/internal/pipeline"
	"refresher/internal/wizard"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Layer configuration: defaults < YAML file < env < flags.
	// The config path resolves first (env, then a raw-args peek for
	// --config) so the YAML loads before the env and flag overrides apply.
	cfg := config.DefaultConfig()
	cfg.ConfigPath = config.EnvConfigPath(cfg.ConfigPath)
	cfg.ConfigPath = configPathFromArgs(os.Args[1:], cfg.ConfigPath)

	fileFound, err := config.LoadFile(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "refresher: %v\n", err)
		return 1
	}
	config.ApplyEnv(&cfg)
	if err := config.ParseFlags(&cfg, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "refresher: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "refresher: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "refresher: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()
	if !fileFound {
		log.Warn("Config %s not found; using default settings", cfg.ConfigPath)
	}

	// 2. Check mode: diagnostics only, always exits successfully.
	if cfg.CheckOnly {
		check.RunCheck(&cfg, log)
		return 0
	}

	// 3. Interrupt handling: mutations already committed stay committed; the
	// pipeline stops between files and skips the final report.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := runMode(ctx, &cfg, log); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}

// configPathFromArgs peeks at the raw arguments for a --config value without
// running full flag parsing.
func configPathFromArgs(args []string, def string) string {
	for i, a := range args {
		switch {
		case a == "--config" || a == "-config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		case strings.HasPrefix(a, "-config="):
			return strings.TrimPrefix(a, "-config=")
		}
	}
	return def
}

// runMode dispatches between the wizard flow and the direct batch flow.
func runMode(ctx context.Context, cfg *config.Config, log *logging.Logger) (pipeline.RunStats, error) {
	if !cfg.Interactive {
		return pipeline.Run(ctx, cfg, log)
	}

	w := wizard.New()
	w.ShowWelcome()

	dir, err := w.PromptDirectory()
	if err != nil {
		return pipeline.RunStats{}, err
	}
	cfg.TargetDir = dir

	if !w.ConfirmSettings(cfg) {
		log.Warn("Operation cancelled by user")
		return pipeline.RunStats{}, nil
	}

	descs, warnings, err := pipeline.Collect(cfg, log)
	if err != nil {
		return pipeline.RunStats{}, err
	}
	if !w.ConfirmPreScan(descs, cfg) {
		log.Warn("Operation cancelled by user")
		return pipeline.RunStats{}, nil
	}

	start := time.Now()
	stats, err := pipeline.Process(ctx, cfg, log, descs, warnings)
	if err != nil {
		return stats, err
	}
	log.Debug(cfg.Verbose, "Completed in %s", time.Since(start).Round(time.Millisecond))
	return stats, nil
}
