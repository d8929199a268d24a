package config

import (
	"os"
	"strings"
	"testing"

	"github.com/Iron-Ham/stepthrough/internal/config"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
)

// setupViper gives each test fresh defaults and a private config directory.
func setupViper(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	viper.Reset()
	config.SetDefaults()
	t.Cleanup(viper.Reset)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

// selectKey moves the cursor to key.
func selectKey(t *testing.T, m Model, key string) Model {
	t.Helper()
	for ci, cat := range m.categories {
		for ii, item := range cat.Items {
			if item.Key == key {
				m.categoryIndex, m.itemIndex = ci, ii
				return m
			}
		}
	}
	t.Fatalf("no item with key %q", key)
	return m
}

func TestTotalLines(t *testing.T) {
	setupViper(t)
	m := New()

	expected := 0
	for _, cat := range m.categories {
		expected += 1 + len(cat.Items) + 1
	}
	if got := m.totalLines(); got != expected {
		t.Errorf("totalLines() = %d, want %d", got, expected)
	}
	if got := len(m.listLines()); got != expected {
		t.Errorf("len(listLines()) = %d, want %d", got, expected)
	}
}

func TestCurrentSelectionLine(t *testing.T) {
	setupViper(t)
	m := New()

	tests := []struct {
		name          string
		categoryIndex int
		itemIndex     int
		wantLine      int
	}{
		{"first item in first category", 0, 0, 1},
		{"second item in first category", 0, 1, 2},
		{"first item in second category", 1, 0, len(m.categories[0].Items) + 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.categoryIndex = tt.categoryIndex
			m.itemIndex = tt.itemIndex
			if got := m.currentSelectionLine(); got != tt.wantLine {
				t.Errorf("currentSelectionLine() = %d, want %d", got, tt.wantLine)
			}
		})
	}
}

func TestEnsureSelectionVisible(t *testing.T) {
	setupViper(t)

	tests := []struct {
		name           string
		scrollOffset   int
		categoryIndex  int
		itemIndex      int
		availableLines int
	}{
		{"selection at top stays visible", 0, 0, 0, 10},
		{"scroll down when selection below viewport", 0, 3, 1, 5},
		{"scroll up when selection above viewport", 20, 0, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.scrollOffset = tt.scrollOffset
			m.categoryIndex = tt.categoryIndex
			m.itemIndex = tt.itemIndex

			m.ensureSelectionVisible(tt.availableLines)

			if m.scrollOffset < 0 {
				t.Errorf("scrollOffset should not be negative, got %d", m.scrollOffset)
			}
			line := m.currentSelectionLine()
			if line < m.scrollOffset || line >= m.scrollOffset+tt.availableLines {
				t.Errorf("selection line %d not in viewport [%d, %d)",
					line, m.scrollOffset, m.scrollOffset+tt.availableLines)
			}
		})
	}
}

func TestNavigationWraps(t *testing.T) {
	setupViper(t)
	m := New()

	m = press(t, m, "k")
	last := len(m.categories) - 1
	if m.categoryIndex != last || m.itemIndex != len(m.categories[last].Items)-1 {
		t.Errorf("up from top = (%d, %d), want last item", m.categoryIndex, m.itemIndex)
	}

	m = press(t, m, "j")
	if m.categoryIndex != 0 || m.itemIndex != 0 {
		t.Errorf("down from bottom = (%d, %d), want (0, 0)", m.categoryIndex, m.itemIndex)
	}

	m = press(t, m, "tab", "tab")
	if m.categoryIndex != 2 || m.itemIndex != 0 {
		t.Errorf("tab twice = (%d, %d), want (2, 0)", m.categoryIndex, m.itemIndex)
	}
}

func TestNavigationUpdatesScroll(t *testing.T) {
	setupViper(t)
	m := New()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = next.(Model)

	for i := 0; i < 15; i++ {
		m = press(t, m, "j")
	}
	if m.scrollOffset == 0 {
		t.Error("scrollOffset should have been updated after navigating down")
	}

	for i := 0; i < 15; i++ {
		m = press(t, m, "k")
	}
	if m.scrollOffset > 1 {
		t.Errorf("scrollOffset should be near top after navigating up, got %d", m.scrollOffset)
	}
}

func TestToggleBoolSaves(t *testing.T) {
	setupViper(t)
	m := selectKey(t, New(), "tui.show_plan")

	m = press(t, m, "enter")
	if viper.GetBool("tui.show_plan") {
		t.Fatal("show_plan still true after toggle")
	}
	if m.infoMsg != "Saved!" {
		t.Errorf("infoMsg = %q, errorMsg = %q", m.infoMsg, m.errorMsg)
	}

	data, err := os.ReadFile(config.ConfigFile())
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "show_plan: false") {
		t.Errorf("config file missing show_plan: false\n%s", data)
	}
}

func TestToggleRejectedByValidation(t *testing.T) {
	setupViper(t)
	m := selectKey(t, New(), "lesson.watch")

	// Watching needs a lesson file.
	m = press(t, m, "enter")
	if viper.GetBool("lesson.watch") {
		t.Error("lesson.watch enabled without a lesson path")
	}
	if m.errorMsg == "" {
		t.Error("expected a validation error")
	}
}

func TestEditInt(t *testing.T) {
	setupViper(t)
	m := selectKey(t, New(), "server.max_sessions")

	m = press(t, m, "enter")
	if !m.editing {
		t.Fatal("enter did not open the editor")
	}
	if got := m.textInput.Value(); got != "100" {
		t.Errorf("editor value = %q, want current value 100", got)
	}

	m.textInput.SetValue("abc")
	m = press(t, m, "enter")
	if !m.editing || m.errorMsg != "expected integer value" {
		t.Errorf("non-integer accepted: editing=%v err=%q", m.editing, m.errorMsg)
	}

	m.textInput.SetValue("0")
	m = press(t, m, "enter")
	if !m.editing || m.errorMsg == "" {
		t.Error("max_sessions 0 accepted")
	}
	if got := viper.GetInt("server.max_sessions"); got != 100 {
		t.Errorf("rejected value leaked: max_sessions = %d", got)
	}

	m.textInput.SetValue("7")
	m = press(t, m, "enter")
	if m.editing {
		t.Errorf("editor still open: %q", m.errorMsg)
	}
	if got := viper.GetInt("server.max_sessions"); got != 7 {
		t.Errorf("max_sessions = %d, want 7", got)
	}
}

func TestEditSelect(t *testing.T) {
	setupViper(t)
	m := selectKey(t, New(), "logging.level")

	m = press(t, m, "enter")
	if m.selectIndex != 1 {
		t.Fatalf("selectIndex = %d, want index of info", m.selectIndex)
	}
	m = press(t, m, "j", "enter")
	if got := viper.GetString("logging.level"); got != "warn" {
		t.Errorf("logging.level = %q, want warn", got)
	}

	m = press(t, m, "enter", "esc")
	if m.editing {
		t.Error("esc did not close the selector")
	}
}

func TestResetToDefault(t *testing.T) {
	setupViper(t)
	viper.Set("tui.hint_prefix", ">>")
	m := selectKey(t, New(), "tui.hint_prefix")

	m = press(t, m, "r")
	if got := viper.GetString("tui.hint_prefix"); got != config.Default().TUI.HintPrefix {
		t.Errorf("hint_prefix = %q after reset", got)
	}
	if !strings.HasPrefix(m.infoMsg, "Reset Hint Prefix") {
		t.Errorf("infoMsg = %q", m.infoMsg)
	}
}

func TestDefaultValueCoversEveryItem(t *testing.T) {
	for _, cat := range Categories() {
		for _, item := range cat.Items {
			if _, ok := DefaultValue(item.Key); !ok {
				t.Errorf("no default for %s", item.Key)
			}
			if item.Type == TypeSelect && len(item.Options) == 0 {
				t.Errorf("%s is a select with no options", item.Key)
			}
		}
	}
}

func TestViewShowsValues(t *testing.T) {
	setupViper(t)
	m := New()
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() before size = %q", got)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	view := next.(Model).View()
	for _, want := range []string{"[ TUI ]", "[ Server ]", "Theme", ":8080", "(unset)"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
