package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a board",
	Long: `Start the game in the terminal.

Without a variant the board picker opens; with one the game starts
straight away. Esc returns to the picker.

Controls:
  Arrows/WASD/HJKL  - Slide tiles
  C/Enter           - Keep going after reaching the goal
  R                 - Try again
  P/Space           - Pause
  Ctrl+S            - Save a screenshot
  ?                 - Toggle help
  Q/Ctrl+C          - Quit

Examples:
  tiles play
  tiles play mini
  tiles play big --difficulty hard
  tiles play --seed 42 --fps 30`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	variant := ""
	if len(args) > 0 {
		v, err := registry.Get(args[0])
		if err != nil {
			return err
		}
		variant = v.ID
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.RunApp(tui.AppConfig{
		Runtime: runtimeConfig(),
		Board:   boardOptions(),
		Store:   store,
		Logger:  logger,
		Player:  currentUser(),
		Variant: variant,
		Default: cfg.DefaultVariant,
		Options: gameOptions(),
	})
}
