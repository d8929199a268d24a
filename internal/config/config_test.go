package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.TUI.Theme != "default" {
		t.Errorf("TUI.Theme = %q, want %q", cfg.TUI.Theme, "default")
	}
	if !cfg.TUI.ShowLocals || !cfg.TUI.ShowPlan {
		t.Error("locals and plan panels should be shown by default")
	}
	if cfg.Lesson.Name != "pokemon" {
		t.Errorf("Lesson.Name = %q, want pokemon", cfg.Lesson.Name)
	}
	if cfg.Lesson.Watch {
		t.Error("Lesson.Watch should be false by default")
	}
	if !cfg.Lesson.SuggestHints {
		t.Error("Lesson.SuggestHints should be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.MaxSessions != 100 {
		t.Errorf("Server.MaxSessions = %d, want 100", cfg.Server.MaxSessions)
	}

	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default() should validate, got %v", errs)
	}
}

func TestSetDefaultsAndLoad(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	viper.Set("server.max_sessions", 5)
	viper.Set("lesson.path", "/tmp/l.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.MaxSessions != 5 {
		t.Errorf("Server.MaxSessions = %d, want 5", cfg.Server.MaxSessions)
	}
	if cfg.Lesson.Path != "/tmp/l.yaml" {
		t.Errorf("Lesson.Path = %q", cfg.Lesson.Path)
	}
	if cfg.TUI.HintPrefix != Default().TUI.HintPrefix {
		t.Errorf("TUI.HintPrefix = %q, want default", cfg.TUI.HintPrefix)
	}
}

func TestLoadInvalidFallsBackInGet(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	viper.Set("logging.level", "loud")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail for an invalid level")
	}
	if got := Get(); got.Logging.Level != "info" {
		t.Errorf("Get() Logging.Level = %q, want default", got.Logging.Level)
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("respects XDG_CONFIG_HOME", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)

		want := filepath.Join(xdg, "stepthrough")
		if got := ConfigDir(); got != want {
			t.Errorf("ConfigDir() = %q, want %q", got, want)
		}
		if got := ConfigFile(); got != filepath.Join(want, "config.yaml") {
			t.Errorf("ConfigFile() = %q", got)
		}
	})

	t.Run("falls back to home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", home)

		want := filepath.Join(home, ".config", "stepthrough")
		if got := ConfigDir(); got != want {
			t.Errorf("ConfigDir() = %q, want %q", got, want)
		}
	})
}

func TestLogDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	cfg := Default()
	if got := cfg.Logging.LogDir(); got != filepath.Join("/xdg", "stepthrough") {
		t.Errorf("LogDir() = %q", got)
	}
	cfg.Logging.Dir = "/var/log/st"
	if got := cfg.Logging.LogDir(); got != "/var/log/st" {
		t.Errorf("LogDir() = %q", got)
	}
}
