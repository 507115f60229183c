package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// frameQuery is implemented by *Query[T] for every T.
type frameQuery interface {
	Init(storage *Storage)
	Execute()
}

// Scheduler manages and executes systems in order.
type Scheduler struct {
	storage     *Storage
	commands    *Commands
	frames      int
	systems     []System
	queries     [][]frameQuery
	systemStats []*systemStatsInternal
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: NewCommands(),
		systems:  make([]System, 0),
	}
}

// Register adds a system to the scheduler and initializes its Query fields.
func (s *Scheduler) Register(system System) {
	s.queries = append(s.queries, s.initializeQueries(system))
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	systemName := systemType.Name()

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemName,
		minDuration: time.Duration(1<<63 - 1),
	})
}

func (s *Scheduler) initializeQueries(system System) []frameQuery {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []frameQuery
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		q, ok := field.Addr().Interface().(frameQuery)
		if !ok {
			continue
		}
		q.Init(s.storage)
		queries = append(queries, q)
	}
	return queries
}

// Once executes all registered systems once with the given delta time, then
// flushes the commands they queued.
func (s *Scheduler) Once(dt float64) {
	s.frames++
	frame := newUpdateFrame(s.frames, dt, s.commands, s.storage)

	for i, system := range s.systems {
		start := time.Now()
		for _, q := range s.queries[i] {
			q.Execute()
		}
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.commands.Flush(s.storage)
}

// Frames returns the number of completed calls to Once.
func (s *Scheduler) Frames() int {
	return s.frames
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
