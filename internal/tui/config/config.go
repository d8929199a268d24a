// Package config is the interactive editor behind `stepthrough config`.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/Iron-Ham/stepthrough/internal/config"
	"github.com/Iron-Ham/stepthrough/internal/lesson"
	"github.com/Iron-Ham/stepthrough/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
)

// ItemType is how an item's value is edited.
type ItemType string

const (
	TypeString ItemType = "string"
	TypeBool   ItemType = "bool"
	TypeInt    ItemType = "int"
	TypeSelect ItemType = "select"
)

// ConfigItem represents a single configuration item
type ConfigItem struct {
	Key         string
	Label       string
	Description string
	Type        ItemType
	Options     []string // For select type
}

// Category represents a group of config items
type Category struct {
	Name  string
	Items []ConfigItem
}

// Model is the Bubbletea model for the interactive config UI
type Model struct {
	categories    []Category
	categoryIndex int
	itemIndex     int
	scrollOffset  int
	width         int
	height        int
	editing       bool
	textInput     textinput.Model
	selectIndex   int
	styles        *styles.Styles
	errorMsg      string
	infoMsg       string
	quitting      bool
}

// Categories returns the editable settings, grouped as in the config file.
func Categories() []Category {
	return []Category{
		{
			Name: "TUI",
			Items: []ConfigItem{
				{Key: "tui.theme", Label: "Theme", Description: "Color theme for the viewer", Type: TypeSelect, Options: styles.ValidThemes()},
				{Key: "tui.show_locals", Label: "Show Variables", Description: "Show the variables section of the trace panel", Type: TypeBool},
				{Key: "tui.show_plan", Label: "Show Plan", Description: "Show the plan panel", Type: TypeBool},
				{Key: "tui.hint_prefix", Label: "Hint Prefix", Description: "Text printed before the hint under the current line", Type: TypeString},
			},
		},
		{
			Name: "Lesson",
			Items: []ConfigItem{
				{Key: "lesson.path", Label: "Lesson File", Description: "Lesson YAML file; empty uses the built-in lesson", Type: TypeString},
				{Key: "lesson.name", Label: "Built-in Lesson", Description: "Built-in lesson used when no file is set", Type: TypeSelect, Options: lesson.BuiltinNames()},
				{Key: "lesson.watch", Label: "Watch File", Description: "Reload the lesson file when it changes", Type: TypeBool},
				{Key: "lesson.suggest_hints", Label: "Suggest Hints", Description: "Fill empty hints from the source line", Type: TypeBool},
			},
		},
		{
			Name: "Logging",
			Items: []ConfigItem{
				{Key: "logging.enabled", Label: "Enabled", Description: "Write debug.log", Type: TypeBool},
				{Key: "logging.level", Label: "Level", Description: "Minimum level written to the log", Type: TypeSelect, Options: config.ValidLogLevels()},
				{Key: "logging.dir", Label: "Directory", Description: "Directory for debug.log; empty uses the config directory", Type: TypeString},
				{Key: "logging.max_size_mb", Label: "Max Size (MB)", Description: "Rotate debug.log past this size", Type: TypeInt},
				{Key: "logging.max_backups", Label: "Max Backups", Description: "Rotated log files to keep", Type: TypeInt},
				{Key: "logging.stderr", Label: "Mirror to Stderr", Description: "Also write log records to standard error", Type: TypeBool},
			},
		},
		{
			Name: "Server",
			Items: []ConfigItem{
				{Key: "server.addr", Label: "Listen Address", Description: "host:port for `stepthrough serve`", Type: TypeString},
				{Key: "server.max_sessions", Label: "Max Sessions", Description: "Oldest session is evicted past this count", Type: TypeInt},
			},
		},
	}
}

// New creates a new config model
func New() Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 40

	return Model{
		categories: Categories(),
		textInput:  ti,
		styles:     styles.ForTheme(viper.GetString("tui.theme")),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureSelectionVisible(m.availableLines())
		return m, nil

	case tea.KeyMsg:
		m.errorMsg = ""
		m.infoMsg = ""

		if m.editing {
			return m.handleEditingKeypress(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			m.itemIndex--
			if m.itemIndex < 0 {
				m.categoryIndex = (m.categoryIndex - 1 + len(m.categories)) % len(m.categories)
				m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1
			}

		case "down", "j":
			m.itemIndex++
			if m.itemIndex >= len(m.categories[m.categoryIndex].Items) {
				m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
				m.itemIndex = 0
			}

		case "tab":
			m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
			m.itemIndex = 0

		case "shift+tab":
			m.categoryIndex = (m.categoryIndex - 1 + len(m.categories)) % len(m.categories)
			m.itemIndex = 0

		case "enter", " ":
			item := m.currentItem()
			switch item.Type {
			case TypeBool:
				if err := m.validateAndSet(item, strconv.FormatBool(!viper.GetBool(item.Key))); err != nil {
					m.errorMsg = err.Error()
					break
				}
				m.saveConfig()
			case TypeSelect:
				m.editing = true
				m.selectIndex = m.getCurrentSelectIndex()
			default:
				m.editing = true
				m.textInput.SetValue(m.getDisplayValue(item))
				m.textInput.Focus()
			}

		case "r":
			m.resetCurrentToDefault()
		}
		m.ensureSelectionVisible(m.availableLines())
	}

	return m, nil
}

func (m Model) handleEditingKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.currentItem()

	switch msg.String() {
	case "esc":
		m.editing = false
		m.textInput.SetValue("")
		return m, nil

	case "enter":
		value := m.textInput.Value()
		if item.Type == TypeSelect {
			value = item.Options[m.selectIndex]
		}
		if err := m.validateAndSet(item, value); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.saveConfig()
		m.editing = false
		m.textInput.SetValue("")
		return m, nil

	case "up", "k":
		if item.Type == TypeSelect {
			m.selectIndex = (m.selectIndex - 1 + len(item.Options)) % len(item.Options)
			return m, nil
		}

	case "down", "j":
		if item.Type == TypeSelect {
			m.selectIndex = (m.selectIndex + 1) % len(item.Options)
			return m, nil
		}
	}

	if item.Type != TypeSelect {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) currentItem() ConfigItem {
	return m.categories[m.categoryIndex].Items[m.itemIndex]
}

func (m Model) getDisplayValue(item ConfigItem) string {
	switch item.Type {
	case TypeBool:
		return strconv.FormatBool(viper.GetBool(item.Key))
	case TypeInt:
		return strconv.Itoa(viper.GetInt(item.Key))
	default:
		return viper.GetString(item.Key)
	}
}

func (m Model) getCurrentSelectIndex() int {
	item := m.currentItem()
	if i := slices.Index(item.Options, viper.GetString(item.Key)); i >= 0 {
		return i
	}
	return 0
}

// validateAndSet applies value to item after checking it against the same
// rules config.Load enforces.
func (m *Model) validateAndSet(item ConfigItem, value string) error {
	var parsed any
	switch item.Type {
	case TypeInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("expected integer value")
		}
		parsed = n
	case TypeBool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("expected true or false")
		}
		parsed = b
	case TypeSelect:
		if !slices.Contains(item.Options, value) {
			return fmt.Errorf("invalid option: %s", value)
		}
		parsed = value
	default:
		parsed = value
	}

	previous := viper.Get(item.Key)
	viper.Set(item.Key, parsed)
	if _, err := config.Load(); err != nil {
		viper.Set(item.Key, previous)
		return err
	}
	return nil
}

func (m *Model) saveConfig() {
	if err := os.MkdirAll(config.ConfigDir(), 0755); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to create config directory: %v", err)
		return
	}
	if err := viper.WriteConfigAs(config.ConfigFile()); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to save config: %v", err)
		return
	}
	m.infoMsg = "Saved!"
}

func (m *Model) resetCurrentToDefault() {
	item := m.currentItem()
	value, ok := DefaultValue(item.Key)
	if !ok {
		return
	}
	viper.Set(item.Key, value)
	m.saveConfig()
	if m.errorMsg == "" {
		m.infoMsg = fmt.Sprintf("Reset %s to default", item.Label)
	}
}

// DefaultValue returns the built-in default for a config key.
func DefaultValue(key string) (any, bool) {
	d := config.Default()
	defaults := map[string]any{
		"tui.theme":            d.TUI.Theme,
		"tui.show_locals":      d.TUI.ShowLocals,
		"tui.show_plan":        d.TUI.ShowPlan,
		"tui.hint_prefix":      d.TUI.HintPrefix,
		"lesson.path":          d.Lesson.Path,
		"lesson.name":          d.Lesson.Name,
		"lesson.watch":         d.Lesson.Watch,
		"lesson.suggest_hints": d.Lesson.SuggestHints,
		"logging.enabled":      d.Logging.Enabled,
		"logging.level":        d.Logging.Level,
		"logging.dir":          d.Logging.Dir,
		"logging.max_size_mb":  d.Logging.MaxSizeMB,
		"logging.max_backups":  d.Logging.MaxBackups,
		"logging.stderr":       d.Logging.Stderr,
		"server.addr":          d.Server.Addr,
		"server.max_sessions":  d.Server.MaxSessions,
	}
	v, ok := defaults[key]
	return v, ok
}

// Run starts the interactive config UI
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
