// Package keymap provides key binding definitions and lookup for the TUI.
// Bindings are declared per mode and resolved to named commands, so Update
// never switches on raw keys.
package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode of the TUI.
type Mode string

const (
	ModeNormal Mode = "normal" // Stepping through the walkthrough
	ModeHelp   Mode = "help"   // Full key help overlay
)

// Command represents a named action that can be triggered by a key binding.
type Command string

const (
	// Stepping
	CmdAdvance Command = "advance"
	CmdRetreat Command = "retreat"
	CmdReset   Command = "reset"
	CmdFirst   Command = "first"
	CmdLast    Command = "last"

	// Scrolling the code panel
	CmdScrollUp   Command = "scroll_up"
	CmdScrollDown Command = "scroll_down"

	// View
	CmdToggleLocals Command = "toggle_locals"
	CmdTogglePlan   Command = "toggle_plan"
	CmdToggleHelp   Command = "toggle_help"

	CmdQuit Command = "quit"
)

// KeyBinding maps one key to a command.
type KeyBinding struct {
	// KeyType is the key; for printable keys use tea.KeyRunes and set Rune.
	KeyType tea.KeyType
	Rune    rune

	Command     Command
	Description string
	Category    string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	if msg.Alt {
		return false
	}
	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}
	return msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] == kb.Rune
}

// String returns the key as bubbletea names it.
func (kb KeyBinding) String() string {
	if kb.KeyType != tea.KeyRunes {
		return kb.KeyType.String()
	}
	return string(kb.Rune)
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up a command for a key in this mode.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	Name  string
	Modes map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// GetBindingsForCommand returns all bindings that trigger cmd in mode.
func (km *Keymap) GetBindingsForCommand(cmd Command, mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	var result []KeyBinding
	for _, binding := range mb.Bindings {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// GetCategories returns the categories of a mode in declaration order.
func (km *Keymap) GetCategories(mode Mode) []string {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var categories []string
	for _, binding := range mb.Bindings {
		if binding.Category != "" && !seen[binding.Category] {
			seen[binding.Category] = true
			categories = append(categories, binding.Category)
		}
	}
	return categories
}

// HelpBinding folds every binding of cmd in mode into one bubbles key.Binding,
// for rendering with the bubbles help component.
func (km *Keymap) HelpBinding(cmd Command, mode Mode) key.Binding {
	bindings := km.GetBindingsForCommand(cmd, mode)
	if len(bindings) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	keys := make([]string, len(bindings))
	for i, b := range bindings {
		keys[i] = displayKey(b.String())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), bindings[0].Description),
	)
}

func displayKey(k string) string {
	switch k {
	case "right":
		return "→"
	case "left":
		return "←"
	case "up":
		return "↑"
	case "down":
		return "↓"
	case " ":
		return "space"
	}
	return k
}
