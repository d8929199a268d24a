package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"empty theme", func(c *Config) { c.TUI.Theme = " " }, "tui.theme"},
		{"no lesson", func(c *Config) { c.Lesson.Name = "" }, "lesson.name"},
		{"watch without path", func(c *Config) { c.Lesson.Watch = true }, "lesson.watch"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"zero log size", func(c *Config) { c.Logging.MaxSizeMB = 0 }, "logging.max_size_mb"},
		{"huge log size", func(c *Config) { c.Logging.MaxSizeMB = 5000 }, "logging.max_size_mb"},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging.max_backups"},
		{"bad addr", func(c *Config) { c.Server.Addr = "8080" }, "server.addr"},
		{"zero sessions", func(c *Config) { c.Server.MaxSessions = 0 }, "server.max_sessions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			errs := cfg.Validate()
			if len(errs) != 1 {
				t.Fatalf("Validate() returned %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}
}

func TestValidateAllowsWatchWithPath(t *testing.T) {
	cfg := Default()
	cfg.Lesson.Path = "lesson.yaml"
	cfg.Lesson.Name = ""
	cfg.Lesson.Watch = true
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Validate() = %v, want none", errs)
	}
}

func TestValidationErrorsFormatting(t *testing.T) {
	single := ValidationErrors{{Field: "a", Value: 1, Message: "bad"}}
	if got := single.Error(); got != "a: bad (got: 1)" {
		t.Errorf("single Error() = %q", got)
	}

	multi := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: "x", Message: "worse"},
	}
	got := multi.Error()
	if !strings.HasPrefix(got, "2 validation errors:") {
		t.Errorf("multi Error() = %q", got)
	}
	if !strings.Contains(got, "2. b: worse (got: x)") {
		t.Errorf("multi Error() missing second entry: %q", got)
	}

	if (ValidationErrors{}).Error() != "" {
		t.Error("empty ValidationErrors should format as empty string")
	}
}
