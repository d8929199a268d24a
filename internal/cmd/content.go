package cmd

import (
	"fmt"

	appconfig "github.com/Iron-Ham/stepthrough/internal/config"
	"github.com/Iron-Ham/stepthrough/internal/lesson"
	"github.com/Iron-Ham/stepthrough/internal/logging"
	"github.com/Iron-Ham/stepthrough/internal/walkthrough"
	"github.com/spf13/cobra"
)

// loadConfig reads and validates the merged configuration.
func loadConfig() (*appconfig.Config, error) {
	cfg, err := appconfig.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadContent resolves the lesson for cmd: an explicit file argument wins,
// then lesson.path, then the built-in named by lesson.name.
func loadContent(cmd *cobra.Command, cfg *appconfig.Config, args []string) (*walkthrough.Content, error) {
	path, name := cfg.Lesson.Path, cfg.Lesson.Name
	// An explicit --builtin beats a lesson path from the config file.
	if flags := cmd.Flags(); flags.Changed("builtin") && !flags.Changed("lesson") {
		path = ""
	}
	if len(args) > 0 {
		path = args[0]
	}
	return lesson.Resolve(path, name, lesson.WithSuggestedHints(cfg.Lesson.SuggestHints))
}

// newLogger builds the logger described by cfg. With the file disabled and
// no stderr mirror the logger discards everything.
func newLogger(cfg *appconfig.Config) (*logging.Logger, error) {
	opts := logging.Options{
		Level: cfg.Logging.Level,
		Rotation: logging.RotationConfig{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		},
		Stderr: cfg.Logging.Stderr,
	}
	if cfg.Logging.Enabled {
		opts.Dir = cfg.Logging.LogDir()
	}
	return logging.New(opts)
}
