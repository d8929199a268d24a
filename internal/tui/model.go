package tui

import (
	"github.com/Iron-Ham/stepthrough/internal/lesson"
	"github.com/Iron-Ham/stepthrough/internal/logging"
	"github.com/Iron-Ham/stepthrough/internal/tui/keymap"
	"github.com/Iron-Ham/stepthrough/internal/tui/styles"
	"github.com/Iron-Ham/stepthrough/internal/walkthrough"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Layout constants.
const (
	minPanelWidth = 24
	statusHeight  = 2 // status line + one help line
)

// ReloadMsg delivers the result of re-reading a watched lesson file.
type ReloadMsg lesson.Reload

// Options configures the model.
type Options struct {
	Theme      string
	ShowLocals bool
	ShowPlan   bool
	HintPrefix string
	Logger     *logging.Logger
}

// Model is the Bubbletea model for stepping through a walkthrough.
type Model struct {
	wt     *walkthrough.Walkthrough
	frame  walkthrough.Frame
	keymap *keymap.Keymap
	mode   keymap.Mode
	styles *styles.Styles
	help   help.Model
	code   viewport.Model
	logger *logging.Logger

	showLocals bool
	showPlan   bool
	hintPrefix string

	// reloadErr is the last failed reload; the previous content stays active.
	reloadErr string

	width    int
	height   int
	quitting bool
}

// NewModel creates a model positioned at the walkthrough's current position.
func NewModel(wt *walkthrough.Walkthrough, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	st := styles.ForTheme(opts.Theme)
	h := help.New()
	h.Styles.ShortKey = st.HelpKey
	h.Styles.ShortDesc = st.HelpDesc
	h.Styles.FullKey = st.HelpKey
	h.Styles.FullDesc = st.HelpDesc

	m := Model{
		wt:         wt,
		keymap:     keymap.DefaultKeymap(),
		mode:       keymap.ModeNormal,
		styles:     st,
		help:       h,
		code:       viewport.New(0, 0),
		logger:     logger,
		showLocals: opts.ShowLocals,
		showPlan:   opts.ShowPlan,
		hintPrefix: opts.HintPrefix,
	}
	m.refresh()
	return m
}

// Frame returns the frame currently on screen.
func (m Model) Frame() walkthrough.Frame {
	return m.frame
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case ReloadMsg:
		return m.handleReload(msg), nil

	case tea.KeyMsg:
		cmd, ok := m.keymap.GetBinding(msg, m.mode)
		if !ok {
			return m, nil
		}
		return m.execute(cmd)
	}

	return m, nil
}

func (m Model) execute(cmd keymap.Command) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdAdvance:
		m.step(m.wt.Advance())
	case keymap.CmdRetreat:
		m.step(m.wt.Retreat())
	case keymap.CmdReset:
		m.wt.Reset()
		m.step(true)
	case keymap.CmdFirst:
		m.wt.Seek(0)
		m.step(true)
	case keymap.CmdLast:
		m.wt.Seek(len(m.wt.Content().Trace) - 1)
		m.step(true)

	case keymap.CmdScrollUp:
		m.code.ScrollUp(1)
	case keymap.CmdScrollDown:
		m.code.ScrollDown(1)

	case keymap.CmdToggleLocals:
		m.showLocals = !m.showLocals
		m.resize()
	case keymap.CmdTogglePlan:
		m.showPlan = !m.showPlan
		m.resize()
	case keymap.CmdToggleHelp:
		if m.mode == keymap.ModeHelp {
			m.mode = keymap.ModeNormal
		} else {
			m.mode = keymap.ModeHelp
		}
		m.help.ShowAll = m.mode == keymap.ModeHelp
		m.resize()

	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// step re-projects after a cursor command. Moves at a boundary are no-ops.
func (m *Model) step(moved bool) {
	if !moved {
		return
	}
	m.refresh()
	pos := m.wt.Position()
	m.logger.Debug("step", "trace_index", pos.TraceIndex, "plan_index", pos.PlanIndex)
}

func (m Model) handleReload(msg ReloadMsg) Model {
	if msg.Err != nil {
		m.reloadErr = msg.Err.Error()
		return m
	}
	wt, err := walkthrough.New(msg.Content)
	if err != nil {
		m.reloadErr = err.Error()
		return m
	}
	m.wt = wt
	m.reloadErr = ""
	m.refresh()
	m.logger.Info("walkthrough reloaded", "trace_entries", len(msg.Content.Trace))
	return m
}

// refresh recomputes the frame and the code panel content.
func (m *Model) refresh() {
	m.frame = m.wt.Frame()
	m.code.SetContent(m.renderCodeLines())
	m.followCurrentLine()
}

// followCurrentLine scrolls the code panel so the current line and its hint
// are visible.
func (m *Model) followCurrentLine() {
	if m.code.Height <= 0 {
		return
	}
	row := m.frame.CurrentLine - 1
	last := row
	if m.frame.CurrentHint != "" {
		last++
	}
	switch {
	case row < m.code.YOffset:
		m.code.SetYOffset(row)
	case last >= m.code.YOffset+m.code.Height:
		m.code.SetYOffset(last - m.code.Height + 1)
	}
}

// layout is the computed size of each panel's content area.
type layout struct {
	planWidth, codeWidth, traceWidth int
	bodyHeight                       int
}

func (m Model) computeLayout() layout {
	helpHeight := lipgloss.Height(m.help.View(m.helpKeys()))
	l := layout{bodyHeight: max(m.height-statusHeight-helpHeight+1, 3)}

	remaining := m.width
	if m.showPlan {
		l.planWidth = max(m.width/4, minPanelWidth)
		remaining -= l.planWidth
	}
	l.traceWidth = max(m.width/4, minPanelWidth)
	l.codeWidth = max(remaining-l.traceWidth, minPanelWidth)
	return l
}

func (m *Model) resize() {
	l := m.computeLayout()
	// Panel chrome: border (2) + padding (2) horizontally, border (2) + title (1) vertically.
	m.code.Width = max(l.codeWidth-4, 1)
	m.code.Height = max(l.bodyHeight-3, 1)
	m.code.SetContent(m.renderCodeLines())
	m.followCurrentLine()
}
