package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/gallery/ecs"
	"github.com/plus3/gallery/gallery"
)

type Report struct {
	// Configuration
	Duration  time.Duration
	Frames    int
	FireEvery int

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	RenderTime     Stats
	Shots          int
	Restarts       int
	Board          gallery.ScoreBoard
	Storage        ecs.StorageStats
	Scheduler      *ecs.SchedulerStats
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
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Shooting Gallery Soak Report

## Run Configuration
- **Wall Clock Limit:** {{.Duration}}
- **Frame Limit:** {{if .Frames}}{{.Frames}}{{else}}none{{end}}
- **Pilot Fires Every:** {{.FireEvery}} frames

## Game Results
- **Shots Fired:** {{.Shots}}
- **Rounds Played:** {{.Board.Rounds}} ({{.Restarts}} restarts)
- **Top Score:** {{.Board.Top}}
- **Last Score:** {{.Board.Last}}
- **Current Score:** {{.Board.Current}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Run Time:** {{.TotalTime}}
- **Update Time (Once):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
- **Pre-render Time:**
  - **Avg:** {{.RenderTime.Avg}}
  - **Min:** {{.RenderTime.Min}}
  - **Max:** {{.RenderTime.Max}}

## Storage
- **Live Entities:** {{.Storage.TotalEntityCount}}
- **Archetypes:** {{.Storage.ArchetypeCount}}
- **Singletons:** {{.Storage.SingletonCount}}
{{range .Storage.ArchetypeBreakdown}}  - archetype {{.ID}}: {{.EntityCount}} entities {{.ComponentTypes}}
{{end}}
## Systems
- **Events Handled:** {{.Scheduler.EventsHandled}}
- **Events Dropped:** {{.Scheduler.EventsDropped}}

| System | Stage | Runs | Avg | Max |
|---|---|---|---|---|
{{range .Scheduler.Systems}}| {{.Name}} | {{.Stage}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}
## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MiB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MiB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}} bytes
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
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
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
