package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/gallery/gallery"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Wall clock limit for the run.")
	frames := flag.Int("frames", 0, "Stop after this many simulated frames (0 means no limit).")
	fireEvery := flag.Int("fire-every", 12, "Frames between the pilot's shots.")
	configPath := flag.String("config", "", "Path to a YAML config file.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting gallery soak run...")

	cfg, err := gallery.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	world, err := gallery.NewWorld(cfg, gallery.NewMemoryStore(gallery.Scores{}))
	if err != nil {
		log.Fatalf("Failed to build world: %v", err)
	}
	p := newPilot(world, *fireEvery)

	report := &Report{
		Duration:       *duration,
		Frames:         *frames,
		FireEvery:      *fireEvery,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	const dt = 1.0 / 60.0
	startTime := time.Now()
	var totalUpdates int64

Loop:
	for *frames == 0 || totalUpdates < int64(*frames) {
		select {
		case <-ctx.Done():
			break Loop
		default:
			p.step()

			updateStart := time.Now()
			world.Scheduler.Once(dt)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

			renderStart := time.Now()
			world.Scheduler.PreRender()
			report.RenderTime.Samples = append(report.RenderTime.Samples, time.Since(renderStart))

			totalUpdates++
		}
	}

	if err := world.Close(); err != nil {
		log.Printf("Warning: %v", err)
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.RenderTime.Finalize()
	report.Shots = p.shots
	report.Restarts = p.restarts
	report.Board = *world.Board()
	report.Storage = world.Storage.CollectStats()
	report.Scheduler = world.Scheduler.GetStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Printf("Soak run finished after %d frames.", totalUpdates)

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
