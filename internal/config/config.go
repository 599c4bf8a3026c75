package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the tunable parameters of the game. The three original web
// variants disagree on timeout, delay range and box size, so all of them live here.
type Config struct {
	Attempts      int           `yaml:"attempts"`
	ReadyDelayMin time.Duration `yaml:"ready_delay_min"`
	ReadyDelayMax time.Duration `yaml:"ready_delay_max"`
	Timeout       time.Duration `yaml:"timeout"`
	Arena         Arena         `yaml:"arena"`
	Target        Target        `yaml:"target"`
	Theme         string        `yaml:"theme"` // "dark" or "light"
	Seed          int64         `yaml:"seed"`  // 0 = seeded from the clock
	LogFile       string        `yaml:"log_file"`
	LogLevel      string        `yaml:"log_level"`
}

// Arena is the play area in terminal cells.
type Arena struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Target bounds the target's height in rows. Its width is twice that in
// columns so it looks square in a terminal.
type Target struct {
	MinSize int `yaml:"min_size"`
	MaxSize int `yaml:"max_size"`
}

// Default returns the configuration of the main web variant scaled to a terminal.
func Default() Config {
	return Config{
		Attempts:      5,
		ReadyDelayMin: 1 * time.Second,
		ReadyDelayMax: 3 * time.Second,
		Timeout:       10 * time.Second,
		Arena:         Arena{Width: 60, Height: 18},
		Target:        Target{MinSize: 3, MaxSize: 8},
		Theme:         "dark",
		LogLevel:      "info",
	}
}

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// DefaultPath returns ~/.reflex/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".reflex", "config.yaml"), nil
}

// Load builds the config using precedence: env vars > file > defaults.
// The file is REFLEX_CONFIG if set, otherwise DefaultPath when it exists.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	path := getenv("REFLEX_CONFIG")
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	cfg.applyEnv(getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if raw := getenv("REFLEX_ATTEMPTS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			c.Attempts = value
		}
	}
	if raw := getenv("REFLEX_READY_MIN"); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil {
			c.ReadyDelayMin = value
		}
	}
	if raw := getenv("REFLEX_READY_MAX"); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil {
			c.ReadyDelayMax = value
		}
	}
	if raw := getenv("REFLEX_TIMEOUT"); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil {
			c.Timeout = value
		}
	}
	if raw := getenv("REFLEX_THEME"); raw != "" {
		c.Theme = raw
	}
	if raw := getenv("REFLEX_SEED"); raw != "" {
		if value, err := strconv.ParseInt(raw, 10, 64); err == nil {
			c.Seed = value
		}
	}
	if raw := getenv("REFLEX_LOG_FILE"); raw != "" {
		c.LogFile = raw
	}
	if raw := getenv("REFLEX_LOG_LEVEL"); raw != "" {
		c.LogLevel = raw
	}
}

// Validate checks that a round can always become ready before it times out
// and that every target fits inside the arena.
func (c Config) Validate() error {
	switch {
	case c.Attempts <= 0:
		return fmt.Errorf("%w: attempts must be positive, got %d", ErrInvalid, c.Attempts)
	case c.ReadyDelayMin <= 0:
		return fmt.Errorf("%w: ready_delay_min must be positive, got %s", ErrInvalid, c.ReadyDelayMin)
	case c.ReadyDelayMax < c.ReadyDelayMin:
		return fmt.Errorf("%w: ready_delay_max %s is below ready_delay_min %s", ErrInvalid, c.ReadyDelayMax, c.ReadyDelayMin)
	case c.Timeout <= c.ReadyDelayMax:
		return fmt.Errorf("%w: timeout %s must exceed ready_delay_max %s", ErrInvalid, c.Timeout, c.ReadyDelayMax)
	case c.Target.MinSize <= 0 || c.Target.MaxSize < c.Target.MinSize:
		return fmt.Errorf("%w: target size range %d..%d", ErrInvalid, c.Target.MinSize, c.Target.MaxSize)
	case c.Target.MaxSize > c.Arena.Height || 2*c.Target.MaxSize > c.Arena.Width:
		return fmt.Errorf("%w: target max_size %d does not fit arena %dx%d", ErrInvalid, c.Target.MaxSize, c.Arena.Width, c.Arena.Height)
	case c.Theme != "dark" && c.Theme != "light":
		return fmt.Errorf("%w: theme must be dark or light, got %q", ErrInvalid, c.Theme)
	}
	return nil
}
