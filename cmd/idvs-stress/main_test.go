package main

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/plus3/idvs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := defaultConfig()
	cfg.Duration = "50ms"
	cfg.Entities = 200
	cfg.Span = 1 << 16
	cfg.Churn = 10
	cfg.CleanEvery = 3
	cfg.Seed = 7
	return cfg
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, run(testConfig(), logger, &out))

	report := out.String()
	assert.Contains(t, report, "Component Storage Stress Test Report (idv)")
	assert.Contains(t, report, "Component Storage Stress Test Report (vec)")
	assert.Contains(t, report, "main.Position: 200 components")
	assert.Contains(t, report, "- CleanupSystem: avg")
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"bad duration", func(c *Config) { c.Duration = "soon" }},
		{"negative duration", func(c *Config) { c.Duration = "-1s" }},
		{"no entities", func(c *Config) { c.Entities = 0 }},
		{"churn above entities", func(c *Config) { c.Churn = c.Entities + 1 }},
		{"no cleanup", func(c *Config) { c.CleanEvery = 0 }},
		{"span too small", func(c *Config) { c.Span = int64(c.Entities) }},
		{"unknown storage", func(c *Config) { c.Storage = "btree" }},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(&cfg)
			assert.Error(t, run(cfg, logger, io.Discard))
		})
	}
}

func TestWorkloadKeepsStorageConsistent(t *testing.T) {
	for _, kind := range []ecs.StorageKind{ecs.KindIDV, ecs.KindVec} {
		t.Run(string(kind), func(t *testing.T) {
			cfg := testConfig()
			w := newWorkload(cfg, kind, 42, slog.New(slog.NewTextHandler(io.Discard, nil)))
			for range cfg.Entities {
				w.issue()
			}
			cleanups := 0
			for range 20 {
				if w.step(0.016) > 0 {
					cleanups++
				}
			}
			assert.Equal(t, 20/cfg.CleanEvery, cleanups)
			require.NoError(t, w.verify())
			assert.Equal(t, cfg.Entities, w.alive.Len())
			assert.Equal(t, 0, w.pending.Len())
		})
	}
}
