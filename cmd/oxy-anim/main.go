// Command oxy-anim runs a particle animation configured from a YAML or TOML file.
//
// Drag with the left mouse button to attract particles, press space to scatter them again,
// P to pause and Escape to quit. With an output_video the presented frames are recorded.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine"
	"github.com/Carmen-Shannon/oxy-anim/engine/config"
	"github.com/gogpu/gg"
	"github.com/mattn/go-isatty"
)

func main() {
	configPath := flag.String("config", "", "animation config file (.yaml, .yml or .toml)")
	count := flag.Int("particles", 512, "number of particles")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for the initial particles")
	verbose := flag.Bool("verbose", false, "log debug messages")
	flag.Parse()

	logger := newLogger(*verbose)
	common.SetLogger(logger)
	gg.SetLogger(logger)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logger.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
	}

	opts, err := cfg.Options()
	if err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	sim := newParticles(*count, *seed, cfg.Frames)
	sim.uncapped = cfg.Window.Uncapped
	opts = append(opts, engine.WithPoints(sim.points))

	anim, err := engine.NewAnimation(sim.hooks(), opts...)
	if err != nil {
		logger.Error("failed to create animation", "error", err)
		os.Exit(1)
	}

	// Interrupt finishes the current frame and tears down normally, so a recording is still finalized.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		logger.Info("interrupted, stopping")
		anim.Stop()
	}()

	if err := anim.Start(); err != nil {
		logger.Error("animation failed", "error", err)
		if cerr := anim.Close(); cerr != nil {
			logger.Error("cleanup failed", "error", cerr)
		}
		os.Exit(1)
	}
}

// newLogger writes human readable logs to terminals and JSON everywhere else.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
