package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/holeio/ecs"
	"github.com/plus3/holeio/hole"
)

type Report struct {
	// Configuration
	Variant  hole.Variant
	Seed     int64
	SimTime  time.Duration
	Step     time.Duration
	MaxRound int

	// Results
	TotalSteps     int64
	WallTime       time.Duration
	Final          hole.Snapshot
	StepTime       Stats
	Systems        *ecs.SchedulerStats
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
# Hole Simulation Report

## Configuration
- **Variant:** {{.Variant}}
- **Seed:** {{.Seed}}
- **Simulated Time Limit:** {{.SimTime}}
- **Step:** {{.Step}}
{{- if .MaxRound}}
- **Round Limit:** {{.MaxRound}}
{{- end}}

## Outcome
- **Rounds Finished:** {{add .Final.Wins .Final.Losses}}
- **Wins:** {{.Final.Wins}}
- **Losses:** {{.Final.Losses}}
- **Win Rate:** {{pct .Final.Wins (add .Final.Wins .Final.Losses)}}
- **Last Round:** {{.Final.Round}} ({{.Final.Status}}, radius {{printf "%.1f" .Final.Hole.Radius}}, eaten {{.Final.Eaten}})

## Performance Results
- **Total Steps:** {{.TotalSteps}}
- **Wall Time:** {{.WallTime}}
- **Step Time:**
  - **Avg:** {{.StepTime.Avg}}
  - **Min:** {{.StepTime.Min}}
  - **Max:** {{.StepTime.Max}}
{{- with .Systems}}

## Systems
| System | Runs | Avg | Max |
|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}
{{- end}}

## Memory Usage (MiB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"pct": func(part, total int) string {
			if total == 0 {
				return "n/a"
			}
			return fmt.Sprintf("%.1f%%", 100*float64(part)/float64(total))
		},
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
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
