package tui

import tea "github.com/charmbracelet/bubbletea"

// isPrimaryPress reports whether a mouse event is a left-button press.
// Releases and motion are ignored so one physical click counts once.
func isPrimaryPress(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}

// isClickKey reports whether a key stands in for clicking the target.
func isClickKey(key string) bool {
	return key == " "
}

// isStartKey reports whether a key starts (or restarts) a game.
func isStartKey(key string) bool {
	switch key {
	case "enter", " ", "r":
		return true
	}
	return false
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}
