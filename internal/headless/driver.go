package headless

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/grid"
	"github.com/vovakirdan/tui-2048/internal/session"
)

// Controls is the help line printed at start and after unknown input.
const Controls = "Controls: w/a/s/d, h/j/k/l or up/down/left/right to move, c=continue, p=pause, r=restart, q=quit"

const endedHint = "No moves left. [r] try again  [q] quit"

// Summary is returned by Run when the player leaves.
type Summary struct {
	MaxTile  int
	Moves    int
	BestGoal int
	State    grid.State
}

// Run starts a game on s and plays it with commands read from r until the
// player quits, input ends or ctx is cancelled. The session is closed on
// return.
func Run(ctx context.Context, s *session.Session, r io.Reader, w io.Writer) (Summary, error) {
	defer s.Close()

	if err := s.Start(); err != nil {
		return Summary{}, err
	}

	v := s.Variant()
	fmt.Fprintf(w, "=== %s (%s, goal %d) ===\n", v.Title, v.Size(), v.Goal)
	fmt.Fprintln(w, Controls)
	fmt.Fprintln(w)
	printBoard(w, s)

	scanner := bufio.NewScanner(r)
	for {
		if err := ctx.Err(); err != nil {
			return summarize(s), err
		}

		fmt.Fprint(w, "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		action, ok := core.ParseAction(line)
		if !ok {
			fmt.Fprintf(w, "unknown command %q\n%s\n", line, Controls)
			continue
		}
		if action == core.ActionQuit {
			break
		}

		changed, err := s.Apply(action)
		if err != nil {
			return summarize(s), err
		}
		if !changed {
			fmt.Fprintln(w, noChangeReason(action, s.State()))
			continue
		}
		printBoard(w, s)
		if s.State() == grid.StateEnded {
			fmt.Fprintln(w, endedHint)
		}
	}

	if err := scanner.Err(); err != nil {
		return summarize(s), fmt.Errorf("headless: read input: %w", err)
	}

	sum := summarize(s)
	fmt.Fprintf(w, "\nBye! Highest tile %d in %d moves.\n", sum.MaxTile, sum.Moves)
	return sum, nil
}

func summarize(s *session.Session) Summary {
	snap := s.Snapshot()
	return Summary{
		MaxTile:  snap.MaxTile,
		Moves:    snap.Moves,
		BestGoal: s.BestGoal(),
		State:    s.State(),
	}
}

func printBoard(w io.Writer, s *session.Session) {
	snap := s.Snapshot()
	fmt.Fprint(w, s.Grid())
	fmt.Fprintf(w, "Goal: %d  Moves: %d  State: %s\n", snap.Goal, snap.Moves, snap.State)
}

func noChangeReason(a core.Action, st grid.State) string {
	switch {
	case st == grid.StateEnded:
		return endedHint
	case st == grid.StatePaused && a.IsMove():
		return "Paused. [c] keep going  [p] resume"
	case a.IsMove():
		return "Nothing moves that way."
	}
	return "Nothing to do."
}
