package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/fulldump/goconfig"
	"github.com/plus3/idvs/ecs"
)

func main() {
	cfg := defaultConfig()
	goconfig.Read(&cfg)

	logger := newLogger(cfg.LogLevel)
	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Error("stress test failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger, out io.Writer) error {
	duration, err := cfg.duration()
	if err != nil {
		return err
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	kinds, err := cfg.kinds()
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting storage stress test", "seed", seed, "duration", duration, "entities", cfg.Entities, "span", cfg.Span)

	for _, kind := range kinds {
		report, err := runKind(cfg, kind, duration, seed, logger)
		if err != nil {
			return fmt.Errorf("%s storage: %w", kind, err)
		}

		fmt.Fprintln(out, "\n\n--- Stress Test Report ---")
		if err := report.Generate(out); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
		fmt.Fprintln(out, "--- End of Report ---")
	}

	logger.Info("stress test complete")
	return nil
}

func runKind(cfg Config, kind ecs.StorageKind, duration time.Duration, seed int64, logger *slog.Logger) (*Report, error) {
	w := newWorkload(cfg, kind, seed, logger)

	// 1. Populate storage with initial entities
	w.log.Info("populating storage", "entities", cfg.Entities)
	for range cfg.Entities {
		w.issue()
	}

	report := &Report{
		Kind:           kind,
		Duration:       duration,
		Entities:       cfg.Entities,
		Span:           cfg.Span,
		Churn:          cfg.Churn,
		CleanEvery:     cfg.CleanEvery,
		GCPauseMetrics: cfg.GcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	// 2. Run the simulation loop
	w.log.Info("running simulation", "duration", duration)
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := startTime

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			cleanup := w.step(float32(deltaTime.Seconds()))
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			if cleanup > 0 {
				report.CleanupTime.Samples = append(report.CleanupTime.Samples, cleanup)
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = int64(w.scheduler.Frames())
	report.UpdateTime.Finalize()
	report.CleanupTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	if err := w.verify(); err != nil {
		return nil, err
	}
	report.StorageStats = w.storage.CollectStats()
	report.SchedulerStats = w.scheduler.GetStats()

	w.log.Info("simulation finished", "frames", report.TotalUpdates)
	return report, nil
}
