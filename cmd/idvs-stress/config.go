package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/plus3/idvs/ecs"
)

// Config is read from flags and environment by goconfig.
type Config struct {
	Duration       string `usage:"how long each storage kind is exercised (Go duration)"`
	Entities       int    `usage:"number of live entities kept in the working set"`
	Span           int64  `usage:"entity indices are drawn from [0, span)"`
	Churn          int    `usage:"entities retired and reissued per frame"`
	CleanEvery     int    `usage:"frames between bulk cleanups of retired entities"`
	Storage        string `usage:"storage kind to exercise: idv | vec | all"`
	Seed           int64  `usage:"random seed, 0 picks one from the clock"`
	LogLevel       string `usage:"log level: debug | info | warn | error"`
	GcPauseMetrics bool   `usage:"include GC pause metrics in the report"`
}

func defaultConfig() Config {
	return Config{
		Duration:   "10s",
		Entities:   10000,
		Span:       1 << 20,
		Churn:      100,
		CleanEvery: 10,
		Storage:    "all",
		LogLevel:   "info",
	}
}

func (c Config) duration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Duration)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", c.Duration, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", d)
	}
	return d, nil
}

func (c Config) kinds() ([]ecs.StorageKind, error) {
	switch strings.ToLower(c.Storage) {
	case "all":
		return []ecs.StorageKind{ecs.KindIDV, ecs.KindVec}, nil
	case string(ecs.KindIDV):
		return []ecs.StorageKind{ecs.KindIDV}, nil
	case string(ecs.KindVec):
		return []ecs.StorageKind{ecs.KindVec}, nil
	default:
		return nil, fmt.Errorf("unknown storage kind %q", c.Storage)
	}
}

func (c Config) validate() error {
	if c.Entities <= 0 {
		return fmt.Errorf("entities must be positive, got %d", c.Entities)
	}
	if c.Churn < 0 || c.Churn > c.Entities {
		return fmt.Errorf("churn must be within [0, %d], got %d", c.Entities, c.Churn)
	}
	if c.CleanEvery <= 0 {
		return fmt.Errorf("clean every must be positive, got %d", c.CleanEvery)
	}
	// Retired indices stay reserved until the next cleanup.
	reserved := int64(c.Entities) + int64(c.Churn)*int64(c.CleanEvery)
	if c.Span < 2*reserved || c.Span > 1<<32 {
		return fmt.Errorf("span must be within [%d, %d], got %d", 2*reserved, int64(1)<<32, c.Span)
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
