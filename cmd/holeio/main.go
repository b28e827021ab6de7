// Command holeio opens a window and plays the hole game.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/plus3/holeio/hole"
	"github.com/plus3/holeio/host"
)

func main() {
	configPath := flag.String("config", "", "YAML config file. Flags below override it.")
	variantName := flag.String("variant", "", "Rule set: basic or advanced.")
	seed := flag.Int64("seed", 0, "Random seed. 0 picks one from the clock.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug overlay.")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *variantName)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	game, err := hole.NewGame(cfg)
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}
	log.Printf("Starting %s game with seed %d", cfg.Variant, cfg.Seed)

	const title = "hole.io"

	var overlay host.Overlay
	if *debug {
		overlay = host.NewDebugOverlay(game, title)
	}

	if err := host.Run(host.NewApp(game, overlay), title); err != nil {
		log.Fatalf("Game exited with error: %v", err)
	}
}

func loadConfig(path, variantName string) (hole.Config, error) {
	var (
		cfg hole.Config
		err error
	)

	if path != "" {
		cfg, err = hole.LoadConfig(path)
		if err != nil {
			return hole.Config{}, err
		}
	} else {
		cfg = hole.DefaultConfig(hole.VariantBasic)
	}

	if variantName == "" {
		return cfg, nil
	}

	variant, err := hole.ParseVariant(variantName)
	if err != nil {
		return hole.Config{}, err
	}
	if path == "" {
		return hole.DefaultConfig(variant), nil
	}
	cfg.Variant = variant
	return cfg, cfg.Validate()
}
