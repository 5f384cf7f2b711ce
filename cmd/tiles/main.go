// tiles is a sliding-tile merge game (2048 and friends) for the terminal.
//
// Usage:
//
//	tiles play [variant]      - Play a board, or pick one from the menu
//	tiles headless [variant]  - Play with typed commands on stdin/stdout
//	tiles variants            - List available boards
//	tiles scores [variant]    - Show the best recorded games
//	tiles serve               - Start the SSH server (and spectator API)
//
// Global flags:
//
//	--config <path>      - Config file (default: ~/.tiles/config.yaml, ./configs/tiles.yaml)
//	--fps <rate>         - Animation frame rate
//	--seed <value>       - RNG seed for reproducible games
//	--db <path>          - Results database path
//	--log-level <level>  - debug, info, warn or error
//	--difficulty <name>  - easy, normal or hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tiles",
	Short: "Slide and merge numbered tiles in your terminal",
	Long: `tiles is a terminal take on the 2048 sliding-tile puzzle.

Slide the board in one of four directions. Equal tiles that collide merge
into their sum. Reach the goal tile to win, then keep going for the next one.

Available commands:
  play      - Play a board (menu when no variant is given)
  headless  - Line-oriented play for scripts and dumb terminals
  variants  - Show all available boards
  scores    - View the best recorded games
  serve     - Start SSH server for remote play

Examples:
  tiles play
  tiles play big --difficulty hard
  tiles headless mini --seed 42
  tiles serve --spectate :8080`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Animation frame rate (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
