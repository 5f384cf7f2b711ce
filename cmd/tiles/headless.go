package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"os/user"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/headless"
	"github.com/vovakirdan/tui-2048/internal/session"
)

var flagVerbose bool

var headlessCmd = &cobra.Command{
	Use:   "headless [variant]",
	Short: "Play with typed commands",
	Long: `Play without a full-screen UI. Each line on stdin is one command:

  w/a/s/d, h/j/k/l or up/down/left/right  - Slide tiles
  c                                       - Keep going after a win
  p                                       - Pause / resume
  r                                       - Try again
  q                                       - Quit

The board is printed after every effective move, which makes the mode
suitable for scripts:

  printf 'a\nw\nq\n' | tiles headless --seed 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHeadless,
}

func init() {
	headlessCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print every tile event")
}

func runHeadless(_ *cobra.Command, args []string) error {
	v, err := resolveVariant(args)
	if err != nil {
		return err
	}

	store := openStore()
	var saver session.ResultSaver
	if store != nil {
		defer store.Close()
		saver = store
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s, err := session.New(session.Config{
		Variant: v,
		Display: headless.NewTextDisplay(os.Stdout, rand.New(rand.NewSource(seed)), flagVerbose),
		Saver:   saver,
		Logger:  logger,
		Player:  currentUser(),
		Seed:    seed,
		Options: gameOptions(),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := headless.Run(ctx, s, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		return fmt.Errorf("headless: %w", err)
	}
	return nil
}

// currentUser names the local player in recorded games.
func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}
