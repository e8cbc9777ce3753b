package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultVolume       = 100
	defaultSeekStep     = 10
	defaultSeekStepLong = 60
	defaultResumeMargin = 5
)

type Config struct {
	Volume       int  `koanf:"volume"`         // initial volume, 0-100
	SeekStep     int  `koanf:"seek_step"`      // seconds, arrow keys
	SeekStepLong int  `koanf:"seek_step_long"` // seconds, shift+arrow keys
	ResumeMargin int  `koanf:"resume_margin"`  // seconds subtracted from the saved position
	MPRIS        bool `koanf:"mpris"`          // publish the OS media session
	// Notifications sends a desktop notification on chapter change.
	Notifications bool `koanf:"notifications"`

	LogFile  string `koanf:"log_file"`  // empty means $XDG_STATE_HOME/uap/uap.log
	LogLevel string `koanf:"log_level"` // zerolog level name
}

// Default returns the configuration used when no file sets a key.
func Default() *Config {
	return &Config{
		Volume:       defaultVolume,
		SeekStep:     defaultSeekStep,
		SeekStepLong: defaultSeekStepLong,
		ResumeMargin: defaultResumeMargin,
		MPRIS:        true,
		LogLevel:     "info",
	}
}

// Load reads ~/.config/uap/config.toml then ./config.toml. Later files win.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files in order, skipping missing ones.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.LogFile != "" {
		cfg.LogFile = expandPath(cfg.LogFile)
	}
	cfg.normalize()

	return cfg, nil
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	if c.Volume < 0 || c.Volume > 100 {
		c.Volume = defaultVolume
	}
	if c.SeekStep <= 0 {
		c.SeekStep = defaultSeekStep
	}
	if c.SeekStepLong <= 0 {
		c.SeekStepLong = defaultSeekStepLong
	}
	if c.ResumeMargin < 0 {
		c.ResumeMargin = defaultResumeMargin
	}
}

// SeekSteps returns the short and long seek offsets.
func (c *Config) SeekSteps() (time.Duration, time.Duration) {
	return time.Duration(c.SeekStep) * time.Second, time.Duration(c.SeekStepLong) * time.Second
}

// ResumeMarginDuration returns the margin subtracted when saving a position.
func (c *Config) ResumeMarginDuration() time.Duration {
	return time.Duration(c.ResumeMargin) * time.Second
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/uap/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "uap", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
