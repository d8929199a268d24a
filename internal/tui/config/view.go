package config

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/stepthrough/internal/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

// chromeLines is everything View draws outside the scrolling item list:
// header, path, blank, description or edit box, message and help.
const chromeLines = 12

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("stepthrough configuration"))
	b.WriteString("\n")
	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		configPath = config.ConfigFile()
	}
	b.WriteString(m.styles.Muted.Render("Config file: " + configPath))
	b.WriteString("\n\n")

	lines := m.listLines()
	end := min(m.scrollOffset+m.availableLines(), len(lines))
	b.WriteString(strings.Join(lines[m.scrollOffset:end], "\n"))
	b.WriteString("\n")

	if m.editing {
		b.WriteString(m.renderEditOverlay())
	} else {
		b.WriteString(m.styles.Muted.Render(m.currentItem().Description))
	}
	b.WriteString("\n")

	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Error: " + m.errorMsg))
	}
	if m.infoMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.PlanDone.Render(m.infoMsg))
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

// listLines renders every category header, item and separator.
func (m Model) listLines() []string {
	var lines []string
	for ci, cat := range m.categories {
		active := ci == m.categoryIndex
		catStyle := m.styles.Muted.Bold(true)
		if active {
			catStyle = m.styles.PlanActive
		}
		lines = append(lines, catStyle.Render(fmt.Sprintf("[ %s ]", cat.Name)))
		for ii, item := range cat.Items {
			lines = append(lines, m.renderItem(item, active && ii == m.itemIndex))
		}
		lines = append(lines, "")
	}
	return lines
}

func (m Model) renderItem(item ConfigItem, selected bool) string {
	label := item.Label
	if len(label) > 25 {
		label = label[:22] + "..."
	}
	padded := fmt.Sprintf("%-25s", label)
	value := m.getDisplayValue(item)
	if value == "" {
		value = "(unset)"
	}

	if selected {
		return fmt.Sprintf("  %s %s  %s",
			m.styles.HelpKey.Render(">"),
			m.styles.PanelTitle.Render(padded),
			m.styles.PlanActive.Render(value))
	}
	return fmt.Sprintf("    %s  %s", m.styles.Muted.Render(padded), m.styles.Code.Render(value))
}

func (m Model) renderEditOverlay() string {
	item := m.currentItem()
	box := m.styles.ActivePanel.Padding(1, 2).Width(50)

	var b strings.Builder
	if item.Type == TypeSelect {
		fmt.Fprintf(&b, "Select %s:\n\n", item.Label)
		for i, opt := range item.Options {
			if i == m.selectIndex {
				b.WriteString(m.styles.PlanActive.Render(" > " + opt))
			} else {
				b.WriteString(m.styles.Code.Render("   " + opt))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n" + m.styles.Muted.Render("j/k or arrows to select, enter to confirm, esc to cancel"))
	} else {
		fmt.Fprintf(&b, "Edit %s:\n\n", item.Label)
		b.WriteString(m.textInput.View())
		b.WriteString("\n\n" + m.styles.Muted.Render("enter to save, esc to cancel"))
	}
	return box.Render(b.String())
}

func (m Model) renderHelp() string {
	k := m.styles.HelpKey.Render
	d := m.styles.HelpDesc.Render
	if m.editing {
		return k("enter") + d(" save  ") + k("esc") + d(" cancel")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		k("j/k"), d(" navigate  "),
		k("tab"), d(" next category  "),
		k("enter/space"), d(" edit  "),
		k("r"), d(" reset  "),
		k("q"), d(" quit"),
	)
}

// totalLines is the length of the rendered item list.
func (m Model) totalLines() int {
	n := 0
	for _, cat := range m.categories {
		n += len(cat.Items) + 2
	}
	return n
}

// currentSelectionLine is the list line holding the selected item.
func (m Model) currentSelectionLine() int {
	line := 0
	for ci := 0; ci < m.categoryIndex; ci++ {
		line += len(m.categories[ci].Items) + 2
	}
	return line + 1 + m.itemIndex
}

func (m Model) availableLines() int {
	if m.height == 0 {
		return m.totalLines()
	}
	return max(m.height-chromeLines, 3)
}

// ensureSelectionVisible adjusts scrollOffset so the selection lies within a
// window of available lines.
func (m *Model) ensureSelectionVisible(available int) {
	line := m.currentSelectionLine()
	if line < m.scrollOffset {
		m.scrollOffset = line
	}
	if line >= m.scrollOffset+available {
		m.scrollOffset = line - available + 1
	}
	m.scrollOffset = max(0, min(m.scrollOffset, m.totalLines()-1))
}
