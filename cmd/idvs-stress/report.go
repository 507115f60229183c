package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/idvs/ecs"
)

type Report struct {
	// Configuration
	Kind       ecs.StorageKind
	Duration   time.Duration
	Entities   int
	Span       int64
	Churn      int
	CleanEvery int

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	CleanupTime    Stats
	StorageStats   ecs.StorageStats
	SchedulerStats *ecs.SchedulerStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Component Storage Stress Test Report ({{.Kind}})

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Live Entities:** {{.Entities}}
- **Index Span:** {{.Span}}
- **Churn Per Frame:** {{.Churn}}
- **Cleanup Every:** {{.CleanEvery}} frames

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
- **Cleanup Time ({{len .CleanupTime.Samples}} passes):**
  - **Avg:** {{.CleanupTime.Avg}}
  - **Min:** {{.CleanupTime.Min}}
  - **Max:** {{.CleanupTime.Max}}

## Systems
{{range .SchedulerStats.Systems}}- {{.Name}}: avg {{.AvgDuration}}, min {{.MinDuration}}, max {{.MaxDuration}} over {{.ExecutionCount}} runs
{{end}}
## Storage Footprint
{{range .StorageStats.ComponentBreakdown}}- {{.Type}}: {{.Count}} components, {{.Occupied}}/{{.Slots}} slots occupied ({{pct .Occupied .Slots}})
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"pct": func(part, whole int) string {
			if whole == 0 {
				return "n/a"
			}
			return fmt.Sprintf("%.1f%%", 100*float64(part)/float64(whole))
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
