package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"

	"github.com/hoopsarchive/hoopsarchive/internal/app"
	"github.com/hoopsarchive/hoopsarchive/internal/config"
	"github.com/hoopsarchive/hoopsarchive/internal/domain/validation"
	"github.com/hoopsarchive/hoopsarchive/internal/platform/logging"
	"github.com/hoopsarchive/hoopsarchive/internal/usecase"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline, err := app.NewPipeline(ctx, cfg, logger)
	if err != nil {
		logger.Error("build pipeline", "error", err)
		os.Exit(1)
	}
	defer func() { _ = pipeline.Close() }()

	verbose := hasFlag(os.Args[2:], "-v")

	cmd := strings.ToLower(strings.TrimSpace(os.Args[1]))
	switch cmd {
	case "ingest":
		err = runIngest(ctx, pipeline, logger)
	case "curate":
		err = runCurate(ctx, pipeline, logger)
	case "validate":
		err = runValidate(ctx, pipeline, logger, verbose)
	case "run":
		if err = runIngest(ctx, pipeline, logger); err == nil {
			if err = runCurate(ctx, pipeline, logger); err == nil {
				err = runValidate(ctx, pipeline, logger, verbose)
			}
		}
	default:
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error("pipeline command failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

func runIngest(ctx context.Context, pipeline *app.Pipeline, logger *logging.Logger) error {
	results, err := pipeline.Ingestion.Run(ctx)
	if err != nil {
		return err
	}

	var loaded, skipped, failed int
	for _, r := range results {
		switch r.Status {
		case usecase.LoadStatusLoaded:
			loaded++
		case usecase.LoadStatusSkipped:
			skipped++
		case usecase.LoadStatusFailed:
			failed++
		}
	}
	logger.Info("ingest finished", "loaded", loaded, "skipped", skipped, "failed", failed)
	return nil
}

func runCurate(ctx context.Context, pipeline *app.Pipeline, logger *logging.Logger) error {
	results, err := pipeline.Curation.Run(ctx)
	if err != nil {
		return err
	}

	var total int64
	for _, r := range results {
		total += r.Rows
	}
	logger.Info("curate finished", "steps", len(results), "rows", total)
	return nil
}

func runValidate(ctx context.Context, pipeline *app.Pipeline, logger *logging.Logger, verbose bool) error {
	report, err := pipeline.Validation.RunAll(ctx)
	if err != nil {
		return err
	}

	for _, check := range []string{
		validation.CheckTablePresence,
		validation.CheckFKOrphans,
		validation.CheckUniqueness,
		validation.CheckTOTConsistency,
		validation.CheckReconciliation,
	} {
		fmt.Printf("%-24s %d issue(s)\n", check, report.Counts()[check])
	}

	if verbose {
		body, err := sonic.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(body))
	}

	if report.Clean() {
		logger.Info("validation clean")
	} else {
		logger.Warn("validation found issues", "total", totalIssues(report))
	}
	return nil
}

func totalIssues(report validation.Report) int {
	var n int
	for _, count := range report.Counts() {
		n += count
	}
	return n
}

func hasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Println("usage: pipeline <command> [-v]")
	fmt.Println()
	fmt.Println("commands:")
	fmt.Println("  ingest    load source CSVs into staging tables")
	fmt.Println("  curate    rebuild every curated table from staging")
	fmt.Println("  validate  run integrity and accuracy checks (use -v for issue detail)")
	fmt.Println("  run       ingest, curate and validate in sequence")
}
