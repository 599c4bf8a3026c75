package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/reflex/internal/game"
	"github.com/naveenspark/reflex/pkg/domain"
)

// Game screen layout. The arena's first cell sits at
// (arenaLeft+1, arenaTop+1) on screen because of the border.
const (
	arenaLeft = 2 // margin before the left border
	arenaTop  = 3 // logo, attempt line, blank line
)

// arenaCell maps a screen position to an arena cell.
func arenaCell(x, y int) (int, int) {
	return x - arenaLeft - 1, y - arenaTop - 1
}

// renderArena draws the arena with the target colored by round status.
func renderArena(th theme, width, height int, tg game.Target, hasTarget bool, status domain.Status) string {
	bg := lipgloss.NewStyle().Background(th.arena)
	color := waitingColor
	if status == domain.StatusReady {
		color = readyColor
	}
	fill := lipgloss.NewStyle().Foreground(color).Background(th.arena)

	rows := make([]string, height)
	for y := 0; y < height; y++ {
		var row strings.Builder
		x := 0
		for x < width {
			// Emit runs of equal cells so each row needs few style calls.
			in := hasTarget && tg.Contains(x, y)
			start := x
			for x < width && (hasTarget && tg.Contains(x, y)) == in {
				x++
			}
			if in {
				row.WriteString(fill.Render(strings.Repeat("█", x-start)))
			} else {
				row.WriteString(bg.Render(strings.Repeat(" ", x-start)))
			}
		}
		rows[y] = row.String()
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.border).
		Render(strings.Join(rows, "\n"))

	margin := strings.Repeat(" ", arenaLeft)
	lines := strings.Split(box, "\n")
	for i := range lines {
		lines[i] = margin + lines[i]
	}
	return strings.Join(lines, "\n")
}
