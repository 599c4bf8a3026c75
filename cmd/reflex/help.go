package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/naveenspark/reflex/internal/config"
)

var tips = [...]string{
	"Watch the whole target, not one corner of it.",
	"Anticipation is a guess. Guesses count as early.",
	"Most people land between 0.200s and 0.300s. Most people.",
	"The delay is random. Counting in your head will not help.",
	"Rest a finger on the button. Travel time is reaction time too.",
	"Blinking at the wrong moment costs about a tenth of a second.",
	"Your best time matters. Your average tells the truth.",
	"Red means wait. You knew that. Your hand did not.",
}

func printHelp(w io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80")).
		Bold(true).
		Render("R E F L E X")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Wait for green. Then click.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)

	commands := []struct{ cmd, desc string }{
		{"reflex", "Play (interactive TUI)"},
		{"reflex config", "Print the effective configuration"},
		{"reflex --version", "Show version"},
	}
	env := []struct{ name, desc string }{
		{"REFLEX_CONFIG", "Config file (default ~/.reflex/config.yaml)"},
		{"REFLEX_ATTEMPTS", "Attempts per game"},
		{"REFLEX_READY_MIN", "Shortest delay before green, e.g. 1s"},
		{"REFLEX_READY_MAX", "Longest delay before green, e.g. 3s"},
		{"REFLEX_TIMEOUT", "Time allowed per attempt, e.g. 10s"},
		{"REFLEX_THEME", "dark or light"},
		{"REFLEX_SEED", "Fixed random seed"},
		{"REFLEX_LOG_FILE", "Write logs to this file"},
		{"REFLEX_LOG_LEVEL", "debug, info, warn, error"},
	}

	fmt.Fprintf(w, "\n  %s\n  %s\n\n", title, tagline)
	fmt.Fprintf(w, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	fmt.Fprintf(w, "\n  %s\n", sectionStyle.Render("Environment"))
	for _, e := range env {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", e.name)), descStyle.Render(e.desc))
	}
	fmt.Fprintln(w)
}

// printConfig writes cfg as YAML, in the same shape the config file uses.
func printConfig(w io.Writer, cfg config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// printTip prints a random parting tip after the TUI exits.
func printTip(w io.Writer) {
	tip := tips[rand.IntN(len(tips))]
	fmt.Fprintf(w, "%s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")).Italic(true).Render(tip))
}
