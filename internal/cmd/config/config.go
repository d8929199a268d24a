// Package config provides CLI commands for managing stepthrough configuration.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	appconfig "github.com/Iron-Ham/stepthrough/internal/config"
	"github.com/Iron-Ham/stepthrough/internal/lesson"
	tuiconfig "github.com/Iron-Ham/stepthrough/internal/tui/config"
	"github.com/Iron-Ham/stepthrough/internal/tui/styles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify stepthrough configuration",
	Long: `View or modify stepthrough configuration.

Without arguments, opens an interactive configuration UI.
Use 'config show' to display configuration non-interactively.`,
	RunE: runConfigInteractive,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  stepthrough config set tui.theme dracula
  stepthrough config set lesson.path ~/lessons/loops.yaml
  stepthrough config set logging.level debug

Run 'stepthrough config show' to see every key.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset configuration to defaults",
	Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that key.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configInitCmd, configPathCmd, configResetCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

func runConfigInteractive(cmd *cobra.Command, args []string) error {
	_ = discoverThemes()
	return tuiconfig.Run()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := appconfig.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# Config file: %s\n", used)
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	data, err := yaml.Marshal(configDocument(cfg))
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// configDocument renders cfg with the same keys as the config file.
func configDocument(cfg *appconfig.Config) map[string]any {
	return map[string]any{
		"tui": map[string]any{
			"theme":       cfg.TUI.Theme,
			"show_locals": cfg.TUI.ShowLocals,
			"show_plan":   cfg.TUI.ShowPlan,
			"hint_prefix": cfg.TUI.HintPrefix,
		},
		"lesson": map[string]any{
			"path":          cfg.Lesson.Path,
			"name":          cfg.Lesson.Name,
			"watch":         cfg.Lesson.Watch,
			"suggest_hints": cfg.Lesson.SuggestHints,
		},
		"logging": map[string]any{
			"enabled":     cfg.Logging.Enabled,
			"level":       cfg.Logging.Level,
			"dir":         cfg.Logging.Dir,
			"max_size_mb": cfg.Logging.MaxSizeMB,
			"max_backups": cfg.Logging.MaxBackups,
			"stderr":      cfg.Logging.Stderr,
		},
		"server": map[string]any{
			"addr":         cfg.Server.Addr,
			"max_sessions": cfg.Server.MaxSessions,
		},
	}
}

// itemFor finds the editor item for key, which carries its type.
func itemFor(key string) (tuiconfig.ConfigItem, bool) {
	for _, cat := range tuiconfig.Categories() {
		for _, item := range cat.Items {
			if item.Key == key {
				return item, true
			}
		}
	}
	return tuiconfig.ConfigItem{}, false
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if key == "tui.theme" {
		_ = discoverThemes()
	}
	item, ok := itemFor(key)
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'stepthrough config show' to see valid keys", key)
	}

	var typed any
	switch item.Type {
	case tuiconfig.TypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typed = b
	case tuiconfig.TypeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		typed = n
	case tuiconfig.TypeSelect:
		if !slices.Contains(item.Options, value) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(item.Options, ", "))
		}
		typed = value
	default:
		typed = value
	}

	previous := viper.Get(key)
	viper.Set(key, typed)
	if _, err := appconfig.Load(); err != nil {
		viper.Set(key, previous)
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := writeConfig(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\nConfig saved to %s\n", key, typed, appconfig.ConfigFile())
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'stepthrough config set' to modify values", configFile)
	}
	if err := os.MkdirAll(appconfig.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	d := appconfig.Default()
	content := fmt.Sprintf(`# stepthrough configuration

# Viewer settings
tui:
  # Color theme: %s, or a custom theme name
  theme: %s
  # Show the variables section of the trace panel
  show_locals: %v
  # Show the plan panel
  show_plan: %v
  # Printed before the hint under the current line
  hint_prefix: %q

# Which lesson to open
lesson:
  # Lesson YAML file; leave empty to use a built-in lesson
  path: ""
  # Built-in lesson: %s
  name: %s
  # Reload the lesson file when it changes (needs path)
  watch: %v
  # Fill empty hints from the source line
  suggest_hints: %v

# Debug logging
logging:
  enabled: %v
  # debug, info, warn or error
  level: %s
  # Directory for debug.log; empty means the config directory
  dir: ""
  max_size_mb: %d
  max_backups: %d
  stderr: %v

# stepthrough serve
server:
  addr: %q
  max_sessions: %d
`,
		strings.Join(styles.BuiltinThemes(), ", "), d.TUI.Theme, d.TUI.ShowLocals, d.TUI.ShowPlan, d.TUI.HintPrefix,
		strings.Join(lesson.BuiltinNames(), ", "), d.Lesson.Name, d.Lesson.Watch, d.Lesson.SuggestHints,
		d.Logging.Enabled, d.Logging.Level, d.Logging.MaxSizeMB, d.Logging.MaxBackups, d.Logging.Stderr,
		d.Server.Addr, d.Server.MaxSessions)

	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "Active config: %s\n", used)
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", appconfig.ConfigFile())
	fmt.Fprintln(out, "  2. ./config.yaml (current directory)")
	fmt.Fprintln(out, "\nEnvironment variables: STEPTHROUGH_* (e.g., STEPTHROUGH_LESSON_PATH)")
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, cat := range tuiconfig.Categories() {
			for _, item := range cat.Items {
				v, _ := tuiconfig.DefaultValue(item.Key)
				viper.Set(item.Key, v)
			}
		}
		fmt.Fprintln(out, "Reset all configuration to defaults.")
	} else {
		key := args[0]
		v, ok := tuiconfig.DefaultValue(key)
		if !ok {
			return fmt.Errorf("unknown configuration key: %s\nRun 'stepthrough config show' to see valid keys", key)
		}
		viper.Set(key, v)
		fmt.Fprintf(out, "Reset %s to default: %v\n", key, v)
	}

	if err := writeConfig(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Config saved to %s\n", appconfig.ConfigFile())
	return nil
}

func writeConfig() error {
	if err := os.MkdirAll(appconfig.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(appconfig.ConfigFile()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
