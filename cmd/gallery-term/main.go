package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/gallery/gallery"
	"github.com/plus3/gallery/terminal"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	mute := flag.Bool("mute", false, "Disable sound.")
	volume := flag.Float64("volume", -1, "Sound volume, base 2 (0 is full, -1 is half).")
	noSave := flag.Bool("no-save", false, "Do not load or save high scores.")
	logPath := flag.String("log", "", "Write logs to this file (the terminal is owned by the game).")
	flag.Parse()

	if err := run(*configPath, *logPath, *mute, *volume, *noSave); err != nil {
		fmt.Fprintf(os.Stderr, "gallery-term: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string, mute bool, volume float64, noSave bool) error {
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := gallery.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if noSave {
		cfg.Storage.Disabled = true
	}

	world, err := gallery.NewWorld(cfg, gallery.OpenScoreStore(cfg.Storage))
	if err != nil {
		return err
	}
	defer func() {
		if err := world.Close(); err != nil {
			log.Printf("Warning: %v", err)
		}
	}()

	var sound *terminal.Sound
	if !mute {
		sound, err = terminal.NewSound(volume)
		if err != nil {
			// Non-fatal, the game runs without sound
			log.Printf("Audio initialization failed: %v", err)
		}
		defer sound.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return terminal.NewFrontend(screen, world, terminal.Options{Sound: sound}).Run(ctx)
}
