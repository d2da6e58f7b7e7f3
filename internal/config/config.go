package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/modalkeys/internal/config/loader"
)

// Config errors.
var (
	// ErrInvalidLogLevel is returned for an unrecognized log level.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidHookScript is returned when the hook script is not a .lua file.
	ErrInvalidHookScript = errors.New("hook script must be a .lua file")
)

// Config is the complete application configuration.
type Config struct {
	Log       LogConfig       `toml:"log" yaml:"log"`
	Settings  SettingsConfig  `toml:"settings" yaml:"settings"`
	Clipboard ClipboardConfig `toml:"clipboard" yaml:"clipboard"`
	Hooks     HooksConfig     `toml:"hooks" yaml:"hooks"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// File receives log output. Empty means stderr, which the
	// interactive terminal hides.
	File string `toml:"file" yaml:"file"`
}

// SettingsConfig locates the persisted enabled flag.
type SettingsConfig struct {
	// Path of settings.json. Empty means the user config dir.
	Path string `toml:"path" yaml:"path"`

	// Watch reloads the flag when the file is edited externally.
	Watch bool `toml:"watch" yaml:"watch"`
}

// ClipboardConfig configures the system clipboard.
type ClipboardConfig struct {
	// Unnamedplus mirrors the unnamed register to the clipboard.
	Unnamedplus bool `toml:"unnamedplus" yaml:"unnamedplus"`
}

// HooksConfig configures Lua hooks.
type HooksConfig struct {
	// Script is a Lua file defining on_mode_change and on_action.
	Script string `toml:"script" yaml:"script"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Settings: SettingsConfig{
			Watch: true,
		},
	}
}

// DefaultPath returns <user config dir>/modalkeys/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "modalkeys", "config.toml"), nil
}

// Load reads the config file at path (skipped when empty or missing),
// applies environment overrides and validates the result.
func Load(fsys loader.FileSystem, path string, env *loader.Env) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := loader.LoadFile(fsys, path, cfg); err != nil {
			return nil, err
		}
	}

	if env != nil {
		cfg.applyEnv(env)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(env *loader.Env) {
	if v, ok := env.String("MODALKEYS_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := env.String("MODALKEYS_LOG_FILE"); ok {
		c.Log.File = v
	}
	if v, ok := env.String("MODALKEYS_SETTINGS"); ok {
		c.Settings.Path = v
	}
	if v, ok := env.Bool("MODALKEYS_WATCH"); ok {
		c.Settings.Watch = v
	}
	if v, ok := env.Bool("MODALKEYS_UNNAMEDPLUS"); ok {
		c.Clipboard.Unnamedplus = v
	}
	if v, ok := env.String("MODALKEYS_HOOKS"); ok {
		c.Hooks.Script = v
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}

	if c.Hooks.Script != "" && !strings.EqualFold(filepath.Ext(c.Hooks.Script), ".lua") {
		return fmt.Errorf("%w: %s", ErrInvalidHookScript, c.Hooks.Script)
	}
	return nil
}
