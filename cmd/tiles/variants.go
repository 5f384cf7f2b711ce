package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
)

var variantsCmd = &cobra.Command{
	Use:     "variants",
	Aliases: []string{"list"},
	Short:   "List all available boards",
	Long:    `Shows the built-in boards and those declared in the config file.`,
	Run:     runVariants,
}

func runVariants(_ *cobra.Command, _ []string) {
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Println("No boards available.")
		return
	}

	fmt.Println("Available boards:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		maxIDLen = max(maxIDLen, len(v.ID))
	}

	fmt.Printf("  %-*s  %-5s  %-5s  %-5s  %-4s  %s\n", maxIDLen, "ID", "Size", "Goal", "Start", "4s", "Title")
	fmt.Printf("  %-*s  %-5s  %-5s  %-5s  %-4s  %s\n", maxIDLen, "--", "----", "----", "-----", "--", "-----")

	for _, v := range variants {
		marker := ""
		if v.ID == cfg.DefaultVariant {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %-5s  %-5d  %-5d  %-4s  %s%s\n",
			maxIDLen, v.ID, v.Size(), v.Goal, v.StartTiles,
			fmt.Sprintf("%.0f%%", v.SpawnFour*100), v.Title, marker)
	}

	fmt.Println()
	fmt.Println("Run 'tiles play <id>' to play a board.")
}
