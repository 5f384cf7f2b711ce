package core

import "strings"

// Action is a semantic input, abstracted from physical key presses.
// Front ends translate keys or text commands into actions and hand them to
// a session.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, K, Up arrow
	ActionDown            // S, J, Down arrow
	ActionLeft            // A, H, Left arrow
	ActionRight           // D, L, Right arrow
	ActionContinue        // C, Enter - keep going after reaching the goal
	ActionRestart         // R - start a new game
	ActionPause           // P - pause/unpause
	ActionQuit            // Q, Ctrl+C - leave the game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionContinue:
		return "Continue"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMove returns true for the four directional actions.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionRight
}

// ParseAction maps a text command to an action. Matching is case-insensitive
// and ignores surrounding whitespace. Unknown input yields ActionNone, false.
func ParseAction(s string) (Action, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "k", "up":
		return ActionUp, true
	case "s", "j", "down":
		return ActionDown, true
	case "a", "h", "left":
		return ActionLeft, true
	case "d", "l", "right":
		return ActionRight, true
	case "c", "continue", "keep going":
		return ActionContinue, true
	case "r", "restart", "try again":
		return ActionRestart, true
	case "p", "pause":
		return ActionPause, true
	case "q", "quit", "exit":
		return ActionQuit, true
	}
	return ActionNone, false
}
