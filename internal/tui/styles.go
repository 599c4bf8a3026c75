package tui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Target colors: red while waiting, green once ready.
const (
	waitingColor = lipgloss.Color("#f44336")
	readyColor   = lipgloss.Color("#4CAF50")
)

// theme is a palette. The dark/light toggle is purely cosmetic.
type theme struct {
	name   string
	text   lipgloss.Style
	dim    lipgloss.Style
	meta   lipgloss.Style
	accent lipgloss.Style
	bold   lipgloss.Style
	flash  lipgloss.Style
	border lipgloss.Color
	arena  lipgloss.Color // arena background

	helpKey   lipgloss.Style
	helpLabel lipgloss.Style

	// logo gradient endpoints
	logoDeep   [3]float64
	logoBright [3]float64
}

var darkTheme = theme{
	name: "dark",
	text: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#c0c4d0")),
	dim: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8890a0")),
	meta: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#505868")),
	accent: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#34d474")),
	bold: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#e4e4ec")).
		Bold(true),
	flash: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f0944a")).
		Bold(true),
	border: lipgloss.Color("#2a2a3a"),
	arena:  lipgloss.Color("#111118"),

	helpKey: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8890a0")),
	helpLabel: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#505868")),

	// #1a3a24 -> #4ade80
	logoDeep:   [3]float64{26, 58, 36},
	logoBright: [3]float64{74, 222, 128},
}

var lightTheme = theme{
	name: "light",
	text: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#303440")),
	dim: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#606878")),
	meta: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8890a0")),
	accent: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#15803d")),
	bold: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#111118")).
		Bold(true),
	flash: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#b45309")).
		Bold(true),
	border: lipgloss.Color("#c0c4d0"),
	arena:  lipgloss.Color("#f4f4f8"),

	helpKey: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#303440")),
	helpLabel: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8890a0")),

	// #14532d -> #22c55e
	logoDeep:   [3]float64{20, 83, 45},
	logoBright: [3]float64{34, 197, 94},
}

// themeFor returns the named theme, falling back to dark.
func themeFor(name string) theme {
	if name == "light" {
		return lightTheme
	}
	return darkTheme
}

// toggled returns the other theme.
func (t theme) toggled() theme {
	if t.name == "dark" {
		return lightTheme
	}
	return darkTheme
}

// helpEntry renders a single "key label" pair for help bars.
func (t theme) helpEntry(key, label string) string {
	return t.helpKey.Render(key) + " " + t.helpLabel.Render(label)
}

// renderLogo renders "REFLEX" as a wave of light moving across the letters.
func (t theme) renderLogo(frame int) string {
	const text = "REFLEX"
	n := len(text)
	tt := float64(frame)

	var out string
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := tt*0.1 - x*3.0
		phase += math.Sin(tt*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)
		b = b*0.75 + math.Sin(tt*0.035)*0.12 + 0.18
		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(t.logoDeep[0] + b*(t.logoBright[0]-t.logoDeep[0]))
		g := clampByte(t.logoDeep[1] + b*(t.logoBright[1]-t.logoDeep[1]))
		bl := clampByte(t.logoDeep[2] + b*(t.logoBright[2]-t.logoDeep[2]))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out += s.Render(string(text[i]))

		if i < n-1 {
			out += "  "
		}
	}
	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}
