package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the built-in key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name: "default",
		Modes: map[Mode]*ModeBindings{
			ModeNormal: defaultNormalBindings(),
			ModeHelp:   defaultHelpBindings(),
		},
	}
}

func defaultNormalBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeNormal,
		Bindings: []KeyBinding{
			// Stepping
			{KeyType: tea.KeyRight, Command: CmdAdvance, Description: "next step", Category: "Stepping"},
			{KeyType: tea.KeyRunes, Rune: 'l', Command: CmdAdvance, Description: "next step", Category: "Stepping"},
			{KeyType: tea.KeyRunes, Rune: 'n', Command: CmdAdvance, Description: "next step", Category: "Stepping"},
			{KeyType: tea.KeySpace, Command: CmdAdvance, Description: "next step", Category: "Stepping"},
			{KeyType: tea.KeyLeft, Command: CmdRetreat, Description: "previous step", Category: "Stepping"},
			{KeyType: tea.KeyRunes, Rune: 'h', Command: CmdRetreat, Description: "previous step", Category: "Stepping"},
			{KeyType: tea.KeyRunes, Rune: 'p', Command: CmdRetreat, Description: "previous step", Category: "Stepping"},
			{KeyType: tea.KeyRunes, Rune: 'r', Command: CmdReset, Description: "reset", Category: "Stepping"},
			{KeyType: tea.KeyRunes, Rune: 'g', Command: CmdFirst, Description: "first step", Category: "Stepping"},
			{KeyType: tea.KeyHome, Command: CmdFirst, Description: "first step", Category: "Stepping"},
			{KeyType: tea.KeyRunes, Rune: 'G', Command: CmdLast, Description: "last step", Category: "Stepping"},
			{KeyType: tea.KeyEnd, Command: CmdLast, Description: "last step", Category: "Stepping"},

			// Scrolling
			{KeyType: tea.KeyUp, Command: CmdScrollUp, Description: "scroll up", Category: "Scrolling"},
			{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdScrollUp, Description: "scroll up", Category: "Scrolling"},
			{KeyType: tea.KeyDown, Command: CmdScrollDown, Description: "scroll down", Category: "Scrolling"},
			{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdScrollDown, Description: "scroll down", Category: "Scrolling"},

			// View
			{KeyType: tea.KeyRunes, Rune: 'v', Command: CmdToggleLocals, Description: "toggle variables", Category: "View"},
			{KeyType: tea.KeyRunes, Rune: 'P', Command: CmdTogglePlan, Description: "toggle plan", Category: "View"},
			{KeyType: tea.KeyRunes, Rune: '?', Command: CmdToggleHelp, Description: "help", Category: "View"},

			// Exit
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "quit", Category: "Application"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "quit", Category: "Application"},
		},
	}
}

func defaultHelpBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeHelp,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyRunes, Rune: '?', Command: CmdToggleHelp, Description: "close help", Category: "Control"},
			{KeyType: tea.KeyEsc, Command: CmdToggleHelp, Description: "close help", Category: "Control"},
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "quit", Category: "Control"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "quit", Category: "Control"},
		},
	}
}
