// Command holeio-sim plays the hole game headlessly with a simple autopilot
// and prints a Markdown report of outcomes and step timings.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/holeio/hole"
)

func main() {
	configPath := flag.String("config", "", "YAML config file.")
	variantName := flag.String("variant", "basic", "Rule set when no config file is given: basic or advanced.")
	seed := flag.Int64("seed", 0, "Random seed, overrides the config file when not 0.")
	simTime := flag.Duration("duration", 30*time.Minute, "Simulated time to run for.")
	step := flag.Duration("step", time.Second/60, "Length of one simulation step.")
	rounds := flag.Int("rounds", 0, "Stop after this many finished rounds. 0 means no limit.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if *step <= 0 {
		log.Fatalf("Step must be positive, got %s", *step)
	}

	cfg, err := loadConfig(*configPath, *variantName, *seed)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	game, err := hole.NewGame(cfg)
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}

	report := &Report{
		Variant:        cfg.Variant,
		Seed:           cfg.Seed,
		SimTime:        *simTime,
		Step:           *step,
		MaxRound:       *rounds,
		GCPauseMetrics: *gcPauseMetrics,
		StepTime: Stats{
			Samples: make([]time.Duration, 0, int(*simTime / *step)),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Simulating %s of %s play...", *simTime, cfg.Variant)
	startTime := time.Now()
	report.TotalSteps = run(game, pilot{margin: 10}, *simTime, *step, *rounds, &report.StepTime)
	report.WallTime = time.Since(startTime)
	report.StepTime.Finalize()
	report.Final = game.Snapshot()
	report.Systems = game.Stats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// run steps game until simTime has been simulated or maxRounds rounds have
// finished, recording the wall time of each step.
func run(game *hole.Game, p pilot, simTime, step time.Duration, maxRounds int, samples *Stats) int64 {
	var steps int64
	for elapsed := time.Duration(0); elapsed < simTime; elapsed += step {
		snap := game.Snapshot()
		if maxRounds > 0 && snap.Wins+snap.Losses >= maxRounds {
			break
		}

		in := p.next(snap)
		start := time.Now()
		game.Step(in, step)
		samples.Samples = append(samples.Samples, time.Since(start))
		steps++
	}
	return steps
}

// loadConfig reads path, or the defaults for variantName when path is empty.
// A non-zero seed replaces the configured one.
func loadConfig(path, variantName string, seed int64) (hole.Config, error) {
	var cfg hole.Config
	if path != "" {
		var err error
		if cfg, err = hole.LoadConfig(path); err != nil {
			return hole.Config{}, err
		}
	} else {
		variant, err := hole.ParseVariant(variantName)
		if err != nil {
			return hole.Config{}, err
		}
		cfg = hole.DefaultConfig(variant)
	}

	if seed != 0 {
		cfg.Seed = seed
	}
	return cfg, nil
}
