package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Iron-Ham/stepthrough/internal/tui/styles"
	"github.com/spf13/cobra"
)

const testTheme = `name: "Test Theme"
author: "Tester"
version: "1"
colors:
  primary: "#A78BFA"
  secondary: "#10B981"
  warning: "#F59E0B"
  error: "#F87171"
  muted: "#9CA3AF"
  surface: "#1F2937"
  text: "#F9FAFB"
  border: "#6B7280"
`

// setupThemesDir points the config directory at a temp dir and returns the
// themes directory inside it.
func setupThemesDir(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	styles.ClearCustomThemes()
	t.Cleanup(styles.ClearCustomThemes)

	dir := styles.ThemesDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func capture(c *cobra.Command) *bytes.Buffer {
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetErr(&buf)
	return &buf
}

func TestRunThemeList(t *testing.T) {
	dir := setupThemesDir(t)
	if err := os.WriteFile(filepath.Join(dir, "testtheme.yaml"), []byte(testTheme), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("colors: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	buf := capture(themeListCmd)
	if err := runThemeList(themeListCmd, nil); err != nil {
		t.Fatalf("runThemeList() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"default", "dracula", "testtheme (by Tester)", "broken.yaml", dir} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunThemeExport(t *testing.T) {
	setupThemesDir(t)
	outputPath := filepath.Join(t.TempDir(), "exported.yaml")

	capture(themeExportCmd)
	if err := runThemeExport(themeExportCmd, []string{"nord", outputPath}); err != nil {
		t.Fatalf("runThemeExport() error = %v", err)
	}

	theme, err := styles.LoadThemeFile(outputPath)
	if err != nil {
		t.Fatalf("exported theme does not load: %v", err)
	}
	if theme.Colors.Primary != string(styles.NordPalette().Primary) {
		t.Errorf("Primary = %q", theme.Colors.Primary)
	}
}

func TestRunThemeExportInvalidTheme(t *testing.T) {
	setupThemesDir(t)
	if err := runThemeExport(themeExportCmd, []string{"nonexistent"}); err == nil {
		t.Error("Expected error for invalid theme, got nil")
	}
}

func TestRunThemeExportBrokenCustomTheme(t *testing.T) {
	dir := setupThemesDir(t)
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("colors: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	err := runThemeExport(themeExportCmd, []string{"broken"})
	if err == nil || !strings.Contains(err.Error(), "failed to load") {
		t.Errorf("runThemeExport(broken) error = %v", err)
	}
}

func TestRunThemeInfo(t *testing.T) {
	setupThemesDir(t)
	buf := capture(themeInfoCmd)
	if err := runThemeInfo(themeInfoCmd, []string{"default"}); err != nil {
		t.Fatalf("runThemeInfo() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Type: Built-in") {
		t.Errorf("output:\n%s", buf.String())
	}

	if err := runThemeInfo(themeInfoCmd, []string{"nonexistent"}); err == nil {
		t.Error("Expected error for invalid theme, got nil")
	}
}

func TestRunThemeCreate(t *testing.T) {
	dir := setupThemesDir(t)
	capture(themeCreateCmd)

	if err := runThemeCreate(themeCreateCmd, []string{"newtheme"}); err != nil {
		t.Fatalf("runThemeCreate() error = %v", err)
	}
	theme, err := styles.LoadThemeFile(filepath.Join(dir, "newtheme.yaml"))
	if err != nil {
		t.Fatalf("Created theme is invalid: %v", err)
	}
	if theme.Name != "Newtheme" {
		t.Errorf("Name = %q, want Newtheme", theme.Name)
	}

	if err := runThemeCreate(themeCreateCmd, []string{"newtheme"}); err == nil {
		t.Error("Expected error when theme already exists")
	}
}

func TestRunThemeCreateInvalidName(t *testing.T) {
	setupThemesDir(t)

	tests := []struct {
		name    string
		errText string
	}{
		{"", "empty"},
		{"my/theme", "invalid characters"},
		{"my\\theme", "invalid characters"},
		{"default", "built-in"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runThemeCreate(themeCreateCmd, []string{tt.name})
			if err == nil || !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("runThemeCreate(%q) error = %v, want %q", tt.name, err, tt.errText)
			}
		})
	}
}

func TestCapitalizeFirst(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello", "Hello"},
		{"HELLO", "HELLO"},
		{"h", "H"},
		{"", ""},
		{"myTheme", "MyTheme"},
	}
	for _, tt := range tests {
		if got := capitalizeFirst(tt.input); got != tt.expected {
			t.Errorf("capitalizeFirst(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
