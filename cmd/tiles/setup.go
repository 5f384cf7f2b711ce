package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/grid"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Loaded by setup before any subcommand runs.
var (
	cfg    config.Config
	logger *log.Logger
)

// setup loads the config, applies flag overrides, configures logging and
// registers configured variants.
func setup(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagFPS > 0 {
		loaded.TUI.TickRate = flagFPS
	}
	if flagDBPath != "" {
		loaded.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		loaded.Log.Level = flagLogLevel
	}
	if flagDifficulty != "" {
		p, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
		loaded.Difficulty = p
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	if err := loaded.ExpandPaths(); err != nil {
		return err
	}
	cfg = loaded

	level, _ := log.ParseLevel(cfg.Log.Level)
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tiles",
		Level:           level,
	})
	log.SetDefault(logger)

	registerVariants(cfg.Variants)
	return nil
}

// registerVariants adds config-declared boards. Invalid or duplicate ones are
// skipped with a warning.
func registerVariants(variants []config.VariantConfig) {
	for _, vc := range variants {
		vc = vc.WithDefaults()
		v := registry.Variant{
			ID:          vc.ID,
			Title:       vc.Title,
			Description: vc.Description,
			Rows:        vc.Rows,
			Cols:        vc.Cols,
			StartTiles:  vc.StartTiles,
			Goal:        vc.Goal,
			SpawnFour:   vc.SpawnFourProbability(),
		}
		if registry.Exists(v.ID) {
			logger.Debug("variant already registered", "variant", v.ID)
			continue
		}
		if err := registry.Add(v); err != nil {
			logger.Warn("skipping variant", "variant", v.ID, "error", err)
		}
	}
}

// gameOptions returns the engine options every game gets from the
// difficulty preset. Normal keeps each variant's own probability.
func gameOptions() []grid.Option {
	if cfg.Difficulty == config.DifficultyNormal || cfg.Difficulty == "" {
		return nil
	}
	return []grid.Option{grid.WithSpawnFourProbability(cfg.Difficulty.SpawnFour(0))}
}

// resolveVariant returns args[0] or the configured default.
func resolveVariant(args []string) (registry.Variant, error) {
	id := cfg.DefaultVariant
	if len(args) > 0 {
		id = args[0]
	}
	return registry.Get(id)
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = cfg.TUI.TickRate
	rc.Seed = flagSeed
	return rc
}

func boardOptions() tui.BoardOptions {
	return tui.BoardOptions{
		SlideTicks: cfg.TUI.SlideTicks,
		PopTicks:   cfg.TUI.PopTicks,
	}
}

// openStore opens the results database. Games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open results database", "path", cfg.Storage.DBPath, "error", err)
		return nil
	}
	return store
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
