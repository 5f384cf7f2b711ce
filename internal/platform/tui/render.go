package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// styleCache memoizes lipgloss styles per colour pair. Only the Bubble Tea
// goroutine renders, so it needs no locking.
type styleCache map[colorPair]lipgloss.Style

func (c styleCache) get(fg, bg core.Color) lipgloss.Style {
	key := colorPair{fg, bg}
	if st, ok := c[key]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if fg != core.ColorDefault {
		st = st.Foreground(lipgloss.Color(fg))
	}
	if bg != core.ColorDefault {
		st = st.Background(lipgloss.Color(bg))
	}
	c[key] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return renderScreen(s, make(styleCache))
}

func renderScreen(s *core.Screen, styles styleCache) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Fg == core.ColorDefault && start.Bg == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styles.get(start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
