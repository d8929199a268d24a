package tui

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/stepthrough/internal/tui/keymap"
	"github.com/Iron-Ham/stepthrough/internal/walkthrough"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// helpKeys adapts the keymap to the bubbles help.KeyMap interface.
type helpKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h helpKeys) ShortHelp() []key.Binding  { return h.short }
func (h helpKeys) FullHelp() [][]key.Binding { return h.full }

func (m Model) helpKeys() helpKeys {
	b := func(cmd keymap.Command) key.Binding {
		return m.keymap.HelpBinding(cmd, keymap.ModeNormal)
	}
	return helpKeys{
		short: []key.Binding{
			b(keymap.CmdAdvance), b(keymap.CmdRetreat), b(keymap.CmdReset),
			b(keymap.CmdToggleHelp), b(keymap.CmdQuit),
		},
		full: [][]key.Binding{
			{b(keymap.CmdAdvance), b(keymap.CmdRetreat), b(keymap.CmdReset), b(keymap.CmdFirst), b(keymap.CmdLast)},
			{b(keymap.CmdScrollUp), b(keymap.CmdScrollDown)},
			{b(keymap.CmdToggleLocals), b(keymap.CmdTogglePlan), b(keymap.CmdToggleHelp), b(keymap.CmdQuit)},
		},
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	l := m.computeLayout()
	var panels []string
	if m.showPlan {
		panels = append(panels, m.renderPlanPanel(l.planWidth, l.bodyHeight))
	}
	panels = append(panels,
		m.renderCodePanel(l.codeWidth, l.bodyHeight),
		m.renderTracePanel(l.traceWidth, l.bodyHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, panels...),
		m.renderStatus(),
		m.help.View(m.helpKeys()),
	)
}

// panel draws a bordered box of exactly width x height cells.
func (m Model) panel(title, body string, width, height int, active bool) string {
	style := m.styles.Panel
	if active {
		style = m.styles.ActivePanel
	}
	inner := max(width-4, 1)
	content := m.styles.PanelTitle.Render(truncate(title, inner)) + "\n" + body
	return style.
		Width(width - 2).
		Height(height - 2).
		MaxHeight(height).
		Render(content)
}

func (m Model) renderPlanPanel(width, height int) string {
	f := m.frame
	inner := max(width-4, 1)
	wrap := lipgloss.NewStyle().Width(inner)

	var b strings.Builder
	if f.Request != "" {
		b.WriteString(m.styles.Subtitle.Render(wrap.Render(f.Request)))
		b.WriteString("\n\n")
	}
	for i, step := range f.Plan {
		text := fmt.Sprintf("%d. %s", step.Index+1, step.Description)
		var style lipgloss.Style
		switch {
		case i < f.ActivePlanIndex:
			style = m.styles.PlanDone
		case i == f.ActivePlanIndex:
			style = m.styles.PlanActive
			text = "▶ " + text
		default:
			style = m.styles.PlanPending
		}
		b.WriteString(style.Render(wrap.Render(text)))
		b.WriteString("\n")
	}

	title := fmt.Sprintf("Plan %d/%d", f.ActivePlanIndex+1, f.TotalPlanSteps)
	return m.panel(title, strings.TrimRight(b.String(), "\n"), width, height, false)
}

func (m Model) renderCodePanel(width, height int) string {
	title := m.frame.Title
	if title == "" {
		title = "Code"
	}
	return m.panel(title, m.code.View(), width, height, true)
}

// renderCodeLines renders the revealed source, one row per line, with the
// current entry's hint on the row below the current line.
func (m Model) renderCodeLines() string {
	f := m.frame
	numWidth := len(fmt.Sprint(len(m.wt.Content().Source)))
	width := m.code.Width

	var b strings.Builder
	for i, rl := range f.RevealedLines {
		if i > 0 {
			b.WriteString("\n")
		}
		gutter := fmt.Sprintf("%*d ", numWidth, rl.Number)
		marker := "  "
		style := m.styles.Code
		if rl.IsCurrent {
			marker = "→ "
			style = m.styles.CurrentLine
		}
		line := m.styles.LineNumber.Render(gutter) + marker + style.Render(rl.Text)
		b.WriteString(truncate(line, width))

		if rl.IsCurrent && rl.Hint != "" {
			indent := strings.Repeat(" ", numWidth+3)
			hint := strings.TrimSpace(m.hintPrefix + " " + rl.Hint)
			b.WriteString("\n")
			b.WriteString(truncate(indent+m.styles.Hint.Render(hint), width))
		}
	}
	return b.String()
}

func (m Model) renderTracePanel(width, height int) string {
	f := m.frame
	inner := max(width-4, 1)

	var b strings.Builder
	fmt.Fprintf(&b, "Step %d/%d · line %d\n", f.TraceIndex+1, f.TotalTraceSteps, f.CurrentLine)

	if m.showLocals {
		b.WriteString("\n")
		b.WriteString(m.styles.PanelTitle.Render("Variables"))
		b.WriteString("\n")
		if len(f.CurrentLocals) == 0 {
			b.WriteString(m.styles.Muted.Render("(none)"))
			b.WriteString("\n")
		}
		for _, v := range f.CurrentLocals {
			row := m.styles.LocalName.Render(v.Name) + " = " + m.styles.LocalValue.Render(v.Value)
			b.WriteString(truncate(row, inner))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.PanelTitle.Render("Output"))
	b.WriteString("\n")
	if f.OutputText == "" {
		b.WriteString(m.styles.Muted.Render("(no output yet)"))
	} else {
		for i, line := range strings.Split(f.OutputText, "\n") {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(truncate(m.styles.Output.Render(line), inner))
		}
	}

	return m.panel("Trace", b.String(), width, height, false)
}

func (m Model) renderStatus() string {
	f := m.frame
	var parts []string
	switch {
	case f.AtStart && f.AtEnd:
		parts = append(parts, "only step")
	case f.AtStart:
		parts = append(parts, "start")
	case f.AtEnd:
		parts = append(parts, "end")
	}
	parts = append(parts, fmt.Sprintf("step %d of %d", f.TraceIndex+1, f.TotalTraceSteps))
	parts = append(parts, fmt.Sprintf("plan %d of %d", f.ActivePlanIndex+1, f.TotalPlanSteps))

	status := m.styles.StatusBar.Render(strings.Join(parts, " · "))
	if m.reloadErr != "" {
		status += "  " + m.styles.Error.Render(truncate("reload failed: "+m.reloadErr, max(m.width/2, 10)))
	}
	return truncate(status, m.width)
}

// truncate cuts s to width terminal cells, keeping ANSI styling intact.
// A non-positive width leaves s untouched.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// RenderPlain renders a frame as unstyled text, for non-interactive output.
func RenderPlain(f walkthrough.Frame, hintPrefix string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", f.Title)
	fmt.Fprintf(&b, "Step %d/%d · Plan %d/%d: %s\n\n",
		f.TraceIndex+1, f.TotalTraceSteps,
		f.ActivePlanIndex+1, f.TotalPlanSteps, f.ActivePlanStep().Description)

	for _, rl := range f.RevealedLines {
		marker := "  "
		if rl.IsCurrent {
			marker = "→ "
		}
		fmt.Fprintf(&b, "%3d %s%s\n", rl.Number, marker, rl.Text)
		if rl.IsCurrent && rl.Hint != "" {
			fmt.Fprintf(&b, "      %s\n", strings.TrimSpace(hintPrefix+" "+rl.Hint))
		}
	}

	if len(f.CurrentLocals) > 0 {
		b.WriteString("\nVariables:\n")
		for _, v := range f.CurrentLocals {
			fmt.Fprintf(&b, "  %s = %s\n", v.Name, v.Value)
		}
	}

	b.WriteString("\nOutput:\n")
	if f.OutputText == "" {
		b.WriteString("  (no output yet)\n")
	} else {
		for _, line := range strings.Split(f.OutputText, "\n") {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	return b.String()
}
