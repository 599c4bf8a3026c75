package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/naveenspark/reflex/internal/config"
	"github.com/naveenspark/reflex/internal/logging"
	"github.com/naveenspark/reflex/internal/tui"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Println("reflex " + version)
			return nil
		case "help", "--help", "-h":
			printHelp(os.Stdout)
			return nil
		case "config":
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return printConfig(os.Stdout, cfg)
		default:
			return fmt.Errorf("unknown command %q (try reflex help)", args[0])
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck

	logger.Info().Str("version", version).Msg("reflex starting")

	app := tui.NewApp(cfg, clockwork.NewRealClock(), logger)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	printTip(os.Stdout)
	return nil
}

// loadConfig reads .env from the working directory, then the config file and
// environment.
func loadConfig() (config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return config.Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
