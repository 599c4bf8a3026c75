package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/naveenspark/reflex/pkg/domain"
)

// statValue formats a duration stat, or a dash before any valid click.
func statValue(ok bool, s string) string {
	if !ok {
		return "—"
	}
	return s
}

// statsLine renders "last 0.210s  best 0.150s  avg 0.208s".
func statsLine(th theme, stats domain.Stats, ok bool) string {
	parts := []string{
		th.dim.Render("last ") + th.text.Render(statValue(ok, domain.Seconds(stats.Last))),
		th.dim.Render("best ") + th.accent.Render(statValue(ok, domain.Seconds(stats.Best))),
		th.dim.Render("avg ") + th.text.Render(statValue(ok, domain.Seconds(stats.Average))),
	}
	return strings.Join(parts, "  ")
}

// resultsText is the plain-text summary copied to the clipboard.
func resultsText(id uuid.UUID, attempts int, stats domain.Stats, err error) string {
	if errors.Is(err, domain.ErrNoTimes) {
		return fmt.Sprintf("reflex: no valid attempts out of %d (session %s)", attempts, id)
	}
	return fmt.Sprintf("reflex: %s out of %d (session %s)", stats.Summary(), attempts, id)
}

// copyCmd writes text to the system clipboard.
func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: clipboard.WriteAll(text)}
	}
}
