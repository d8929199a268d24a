package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Iron-Ham/stepthrough/internal/tui/styles"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage color themes",
	Long: `Manage color themes for the stepthrough viewer.

Built-in themes ship with the binary. Custom themes are YAML files in
~/.config/stepthrough/themes/ and are picked up on the next start.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available themes",
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a theme to YAML",
	Long: `Export a theme to YAML, as a starting point for a custom theme.

Examples:
  stepthrough config theme export default
  stepthrough config theme export dracula my-theme.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

var themeInfoCmd = &cobra.Command{
	Use:   "info <theme-name>",
	Short: "Show the colors of a theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeInfo,
}

var themePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the custom themes directory path",
	RunE:  runThemePath,
}

var themeCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new custom theme from the default palette",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeCreate,
}

func init() {
	themeCmd.AddCommand(themeListCmd, themeExportCmd, themeInfoCmd, themePathCmd, themeCreateCmd)
	configCmd.AddCommand(themeCmd)
}

// discoverThemes loads custom themes and returns the load errors.
func discoverThemes() []error {
	_, errs := styles.DiscoverCustomThemes(styles.ThemesDir())
	return errs
}

// checkTheme reports why name is not a usable theme.
func checkTheme(name string, loadErrs []error) error {
	if styles.IsValidTheme(name) {
		return nil
	}
	for _, err := range loadErrs {
		msg := err.Error()
		if strings.HasPrefix(msg, name+".yaml:") || strings.HasPrefix(msg, name+".yml:") {
			return fmt.Errorf("theme '%s' exists but failed to load: %v", name, err)
		}
	}
	return fmt.Errorf("unknown theme: %s\n\nRun 'stepthrough config theme list' to see available themes.\nCustom themes should be placed in: %s",
		name, styles.ThemesDir())
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if loadErrs := discoverThemes(); len(loadErrs) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: Some themes failed to load:")
		for _, err := range loadErrs {
			fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", err)
		}
	}

	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		fmt.Fprintf(out, "  - %s\n", name)
	}

	if custom := styles.CustomThemeNames(); len(custom) > 0 {
		sort.Strings(custom)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Custom themes:")
		for _, name := range custom {
			if theme := styles.GetCustomTheme(styles.ThemeName(name)); theme != nil && theme.Author != "" {
				fmt.Fprintf(out, "  - %s (by %s)\n", name, theme.Author)
			} else {
				fmt.Fprintf(out, "  - %s\n", name)
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Custom themes directory: %s\n", styles.ThemesDir())
	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := checkTheme(name, discoverThemes()); err != nil {
		return err
	}

	data, err := styles.ExportTheme(styles.ThemeName(name))
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	if len(args) > 1 {
		if err := os.WriteFile(args[1], data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", args[1], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme exported to: %s\n", args[1])
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := checkTheme(name, discoverThemes()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Theme: %s\n", name)
	if styles.IsBuiltinTheme(name) {
		fmt.Fprintln(out, "Type: Built-in")
	} else {
		fmt.Fprintln(out, "Type: Custom")
		if theme := styles.GetCustomTheme(styles.ThemeName(name)); theme != nil {
			if theme.Author != "" {
				fmt.Fprintf(out, "Author: %s\n", theme.Author)
			}
			if theme.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", theme.Description)
			}
		}
	}

	p := styles.GetPalette(styles.ThemeName(name))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Colors:")
	fmt.Fprintf(out, "  Primary:   %s\n", p.Primary)
	fmt.Fprintf(out, "  Secondary: %s\n", p.Secondary)
	fmt.Fprintf(out, "  Warning:   %s\n", p.Warning)
	fmt.Fprintf(out, "  Error:     %s\n", p.Error)
	fmt.Fprintf(out, "  Muted:     %s\n", p.Muted)
	fmt.Fprintf(out, "  Surface:   %s\n", p.Surface)
	fmt.Fprintf(out, "  Text:      %s\n", p.Text)
	fmt.Fprintf(out, "  Border:    %s\n", p.Border)
	fmt.Fprintf(out, "  Variable:  %s\n", p.Variable)
	return nil
}

func runThemePath(cmd *cobra.Command, args []string) error {
	dir := styles.ThemesDir()
	fmt.Fprintln(cmd.OutOrStdout(), dir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		fmt.Fprintln(cmd.OutOrStdout(), "\nNote: This directory does not exist yet.")
	}
	return nil
}

func runThemeCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	if name == "" {
		return fmt.Errorf("theme name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\:*?\"<>|") {
		return fmt.Errorf("theme name contains invalid characters")
	}
	if styles.IsBuiltinTheme(name) {
		return fmt.Errorf("cannot create custom theme with built-in name '%s'", name)
	}

	dir := styles.ThemesDir()
	path := filepath.Join(dir, name+".yaml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("theme '%s' already exists at %s", name, path)
	}

	var theme styles.ThemeFile
	base, err := styles.ExportTheme(styles.ThemeDefault)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(base, &theme); err != nil {
		return err
	}
	theme.Name = capitalizeFirst(name)
	theme.Description = "A custom stepthrough theme"

	data, err := yaml.Marshal(&theme)
	if err != nil {
		return fmt.Errorf("encoding theme: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating themes directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing theme: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created new theme: %s\n", path)
	fmt.Fprintf(out, "To use it, run:\n  stepthrough config set tui.theme %s\n", name)
	return nil
}

// capitalizeFirst capitalizes the first character of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
