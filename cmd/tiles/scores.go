package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the best recorded games",
	Long: `Display the best games for a board, ranked by highest tile and then
by fewest moves. Without a variant the default board is shown.

Examples:
  tiles scores
  tiles scores big --limit 20
  tiles scores mini --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of games to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded games for the board")
}

func runScores(_ *cobra.Command, args []string) error {
	v, err := resolveVariant(args)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearGames(v.ID); err != nil {
			return err
		}
		fmt.Printf("Cleared recorded games for %s.\n", v.Title)
		return nil
	}

	games, err := store.TopGames(v.ID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Games - %s (%s, goal %d)\n", v.Title, v.Size(), v.Goal)
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tiles play %s' to set the first record!\n", v.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-10s  %-12s  %s\n", "Rank", "Tile", "Moves", "Result", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-10s  %-12s  %s\n", "----", "----", "-----", "------", "------", "----")

	for i, g := range games {
		result := string(g.Outcome)
		if g.GoalReached > 0 {
			result = fmt.Sprintf("won %d", g.GoalReached)
		}
		fmt.Printf("  %-4d  %-6d  %-6d  %-10s  %-12s  %s\n",
			i+1, g.MaxTile, g.Moves, result, g.Player, g.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.VariantStats(v.ID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Games: %d  Wins: %d  Best tile: %d  Avg tile: %.0f  Total moves: %d\n",
			stats.GamesCount, stats.Wins, stats.BestTile, stats.AvgTile, stats.TotalMoves)
	}
	return nil
}
