package main

import (
	"flag"
	"log"

	"github.com/plus3/gallery/display"
	"github.com/plus3/gallery/gallery"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	debug := flag.Bool("debug", false, "Show the ImGui debug overlay.")
	noSave := flag.Bool("no-save", false, "Do not load or save high scores.")
	flag.Parse()

	cfg, err := gallery.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *configPath != "" {
		log.Printf("Loaded config from %s", *configPath)
	}
	if *noSave {
		cfg.Storage.Disabled = true
	}

	world, err := gallery.NewWorld(cfg, gallery.OpenScoreStore(cfg.Storage))
	if err != nil {
		log.Fatalf("Failed to build world: %v", err)
	}

	runErr := display.Run(world, display.Options{Debug: *debug})
	if err := world.Close(); err != nil {
		log.Printf("Warning: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}

	board := world.Board()
	log.Printf("Final score %d (best %d)", board.Current, board.Top)
}
