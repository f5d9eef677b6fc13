// Package config loads the settings shared by the chronal commands.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/akita/v4/sim"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/chronal/core"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// Config holds the machine and logging settings.
type Config struct {
	// Registers is the size of the register file of a machine.
	Registers int `yaml:"registers"`

	// MaxSteps bounds a run. Zero runs until the program halts.
	MaxSteps uint64 `yaml:"max_steps"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// LogFile receives the log instead of stderr when set.
	LogFile string `yaml:"log_file"`

	// Clocked runs machines as ticking components on a serial engine.
	Clocked bool    `yaml:"clocked"`
	FreqGHz float64 `yaml:"freq_ghz"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Registers: core.DefaultRegisterCount,
		LogLevel:  "info",
		LogFormat: "text",
		FreqGHz:   1,
	}
}

// Load reads a YAML file over the defaults, applies CHRONAL_* environment
// overrides and validates the result. An empty or missing path yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := loadEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

func loadEnv(cfg *Config) error {
	if v := os.Getenv("CHRONAL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CHRONAL_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("CHRONAL_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("CHRONAL_MAX_STEPS"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: CHRONAL_MAX_STEPS=%q: %v", ErrInvalid, v, err)
		}
		cfg.MaxSteps = n
	}
	if v := os.Getenv("CHRONAL_CLOCKED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: CHRONAL_CLOCKED=%q: %v", ErrInvalid, v, err)
		}
		cfg.Clocked = b
	}
	return nil
}

var levels = map[string]slog.Level{
	"trace": core.LevelTrace,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Registers < 1 {
		return fmt.Errorf("%w: registers must be >= 1", ErrInvalid)
	}
	if _, ok := levels[strings.ToLower(c.LogLevel)]; !ok {
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalid, c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q",
			ErrInvalid, c.LogFormat)
	}
	if c.FreqGHz <= 0 {
		return fmt.Errorf("%w: freq_ghz must be > 0", ErrInvalid)
	}
	return nil
}

// SlogLevel returns the configured log level. Unknown names map to info.
func (c Config) SlogLevel() slog.Level {
	if l, ok := levels[strings.ToLower(c.LogLevel)]; ok {
		return l
	}
	return slog.LevelInfo
}

// Freq returns the clock frequency of a clocked core.
func (c Config) Freq() sim.Freq {
	return sim.Freq(c.FreqGHz) * sim.GHz
}
