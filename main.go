package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/pthm-cable/trails/config"
	"github.com/pthm-cable/trails/game"
	"github.com/pthm-cable/trails/logging"
	"github.com/pthm-cable/trails/tui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	termView := flag.Bool("tui", false, "Show the field as a heat map in the terminal")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config, snapshots and image")
	dbPath := flag.String("db", "", "SQLite file for run telemetry (empty = disabled)")
	imagePath := flag.String("image", "", "Final image path (empty = use config)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = run.seed from config, then time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = use config, -1 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 0, "Simulation ticks per update call (0 = use config)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "json", "Log format: json or text")

	flag.Parse()

	// Logs would scribble over the terminal viewer, so they go to a file there.
	var logOut io.Writer = os.Stdout
	if *termView {
		logOut = io.Discard
		if *outputDir != "" {
			if err := os.MkdirAll(*outputDir, 0o755); err == nil {
				if f, err := os.Create(filepath.Join(*outputDir, "run.log")); err == nil {
					defer f.Close()
					logOut = f
				}
			}
		}
	}
	slog.SetDefault(logging.NewLogger(*logLevel, *logFormat, logOut))

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Run.Seed
	}
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	opts := game.Options{
		Config:         cfg,
		Seed:           rngSeed,
		MaxTicks:       *maxTicks,
		OutputDir:      *outputDir,
		DBPath:         *dbPath,
		ImagePath:      *imagePath,
		StepsPerUpdate: *stepsPerUpdate,
		LogStats:       *logStats,
	}

	var err error
	switch {
	case *termView:
		err = runTerminal(opts)
	case *headless:
		err = runHeadless(opts)
	default:
		err = runWindow(opts)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps the simulation to its tick limit with no display.
func runHeadless(opts game.Options) error {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"steps_per_update", g.Speed(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for !g.Done() && ctx.Err() == nil {
		if err := g.UpdateHeadless(); err != nil {
			return err
		}
	}
	if ctx.Err() != nil {
		slog.Info("interrupted", "tick", g.Tick())
	}
	return g.Finish()
}

// runTerminal shows the field in the terminal until the run ends or the
// user quits.
func runTerminal(opts game.Options) error {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	cfg := g.Config()
	v, err := tui.Open(time.Second / time.Duration(max(cfg.Screen.TargetFPS, 1)))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runErr := v.Run(ctx, g)
	v.Close()
	if runErr != nil {
		return runErr
	}
	return g.Finish()
}
