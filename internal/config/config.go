package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete stepthrough configuration
type Config struct {
	TUI     TUIConfig     `mapstructure:"tui"`
	Lesson  LessonConfig  `mapstructure:"lesson"`
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// Theme is the color theme (default: "default").
	// Built-in options: "default", "monokai", "dracula", "nord"; custom
	// themes are loaded from the themes directory.
	Theme string `mapstructure:"theme"`
	// ShowLocals shows the variables panel under the trace
	ShowLocals bool `mapstructure:"show_locals"`
	// ShowPlan shows the plan panel
	ShowPlan bool `mapstructure:"show_plan"`
	// HintPrefix is printed before the hint under the current line
	HintPrefix string `mapstructure:"hint_prefix"`
}

// LessonConfig selects the walkthrough content
type LessonConfig struct {
	// Path is a lesson YAML file. Empty means use the built-in named by Name.
	Path string `mapstructure:"path"`
	// Name is the built-in lesson used when Path is empty (default: "pokemon")
	Name string `mapstructure:"name"`
	// Watch reloads Path when it changes on disk
	Watch bool `mapstructure:"watch"`
	// SuggestHints fills empty hints from the source line
	SuggestHints bool `mapstructure:"suggest_hints"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir holds debug.log. Empty means the config directory.
	Dir string `mapstructure:"dir"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
	// Stderr mirrors log records to standard error as text
	Stderr bool `mapstructure:"stderr"`
}

// ServerConfig controls `stepthrough serve`
type ServerConfig struct {
	// Addr is the listen address (default: ":8080")
	Addr string `mapstructure:"addr"`
	// MaxSessions caps concurrent walkthrough sessions; the oldest is
	// evicted when a new one would exceed it (default: 100)
	MaxSessions int `mapstructure:"max_sessions"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		TUI: TUIConfig{
			Theme:      "default",
			ShowLocals: true,
			ShowPlan:   true,
			HintPrefix: "💡",
		},
		Lesson: LessonConfig{
			Name:         "pokemon",
			SuggestHints: true,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Server: ServerConfig{
			Addr:        ":8080",
			MaxSessions: 100,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.show_locals", defaults.TUI.ShowLocals)
	viper.SetDefault("tui.show_plan", defaults.TUI.ShowPlan)
	viper.SetDefault("tui.hint_prefix", defaults.TUI.HintPrefix)

	// Lesson defaults
	viper.SetDefault("lesson.path", defaults.Lesson.Path)
	viper.SetDefault("lesson.name", defaults.Lesson.Name)
	viper.SetDefault("lesson.watch", defaults.Lesson.Watch)
	viper.SetDefault("lesson.suggest_hints", defaults.Lesson.SuggestHints)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.stderr", defaults.Logging.Stderr)

	// Server defaults
	viper.SetDefault("server.addr", defaults.Server.Addr)
	viper.SetDefault("server.max_sessions", defaults.Server.MaxSessions)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stepthrough")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stepthrough"
	}
	return filepath.Join(home, ".config", "stepthrough")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LogDir returns the directory debug.log is written to.
func (c *LoggingConfig) LogDir() string {
	if c.Dir != "" {
		return c.Dir
	}
	return ConfigDir()
}
