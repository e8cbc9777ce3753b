//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/music",
			expected: filepath.Join(home, "music"),
		},
		{
			name:     "tilde with nested path",
			input:    "~/music/library/albums",
			expected: filepath.Join(home, "music", "library", "albums"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/usr/local/music",
			expected: "/usr/local/music",
		},
		{
			name:     "relative path unchanged",
			input:    "music/albums",
			expected: "music/albums",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
		{
			name:     "tilde with slash",
			input:    "~/",
			expected: filepath.Join(home, ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	// Should have at least one path
	if len(paths) == 0 {
		t.Error("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	// If we have home dir, first path should be ~/.config/uap/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "uap", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}


func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	want := Default()
	if *cfg != *want {
		t.Errorf("LoadFrom() = %+v, want defaults %+v", cfg, want)
	}

	short, long := cfg.SeekSteps()
	if short != 10*time.Second || long != time.Minute {
		t.Errorf("SeekSteps() = %v, %v", short, long)
	}
	if cfg.ResumeMarginDuration() != 5*time.Second {
		t.Errorf("ResumeMarginDuration() = %v, want 5s", cfg.ResumeMarginDuration())
	}
}

func TestLoadFrom_Values(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
volume = 70
seek_step = 15
seek_step_long = 120
resume_margin = 0
mpris = false
notifications = true
log_level = "debug"
log_file = "~/uap.log"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Volume != 70 {
		t.Errorf("Volume = %d, want 70", cfg.Volume)
	}
	if cfg.SeekStep != 15 || cfg.SeekStepLong != 120 {
		t.Errorf("seek steps = %d/%d, want 15/120", cfg.SeekStep, cfg.SeekStepLong)
	}
	if cfg.ResumeMargin != 0 {
		t.Errorf("ResumeMargin = %d, want 0", cfg.ResumeMargin)
	}
	if cfg.MPRIS {
		t.Error("MPRIS should be disabled")
	}
	if !cfg.Notifications {
		t.Error("Notifications should be enabled")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if home, err := os.UserHomeDir(); err == nil {
		if want := filepath.Join(home, "uap.log"); cfg.LogFile != want {
			t.Errorf("LogFile = %q, want %q", cfg.LogFile, want)
		}
	}
}

func TestLoadFrom_LaterFileWins(t *testing.T) {
	first := writeConfig(t, t.TempDir(), "volume = 40\nseek_step = 20\n")
	second := writeConfig(t, t.TempDir(), "volume = 60\n")

	cfg, err := LoadFrom(first, second)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Volume != 60 {
		t.Errorf("Volume = %d, want 60", cfg.Volume)
	}
	if cfg.SeekStep != 20 {
		t.Errorf("SeekStep = %d, want 20", cfg.SeekStep)
	}
}

func TestLoadFrom_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(*Config) bool
	}{
		{"volume above 100", "volume = 150", func(c *Config) bool { return c.Volume == 100 }},
		{"negative volume", "volume = -1", func(c *Config) bool { return c.Volume == 100 }},
		{"zero seek step", "seek_step = 0", func(c *Config) bool { return c.SeekStep == 10 }},
		{"negative long seek", "seek_step_long = -4", func(c *Config) bool { return c.SeekStepLong == 60 }},
		{"negative margin", "resume_margin = -2", func(c *Config) bool { return c.ResumeMargin == 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(writeConfig(t, t.TempDir(), tt.body))
			if err != nil {
				t.Fatalf("LoadFrom() error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("unexpected config %+v", cfg)
			}
		})
	}
}

func TestLoadFrom_MalformedFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "volume = [")
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() should fail on malformed TOML")
	}
}
