package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/stefanpenner/duedate/pkg/store"
)

const minWidth = 40
const minHeight = 10

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}

	if m.showCompleteConfirm {
		return placeOverlay(m.renderCompleteModal(), w, h)
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	headerLines := 2
	footerLines := 2
	if m.isSearching {
		headerLines++
	}
	contentHeight := h - headerLines - footerLines

	if m.isSearching {
		b.WriteString(m.renderSearchBar())
		b.WriteString("\n")
	}

	leftWidth := listWidth(w)
	rightWidth := detailWidth(w)

	leftPanel := m.renderListPanel(leftWidth, contentHeight)
	var rightPanel string
	if m.isAdding {
		rightPanel = m.renderAddForm(rightWidth, contentHeight)
	} else {
		rightPanel = m.renderDetailPanel(rightWidth, contentHeight)
	}

	sepColor := ColorGrayDim
	if m.focusedPane == 1 || m.isAdding {
		sepColor = ColorPurple
	}
	sep := lipgloss.NewStyle().Foreground(sepColor).Render("│")
	for i := 0; i < contentHeight; i++ {
		b.WriteString(getLine(leftPanel, i, leftWidth))
		b.WriteString(sep)
		b.WriteString(getLine(rightPanel, i, rightWidth))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func listWidth(total int) int {
	w := total * 2 / 5
	if w < 20 {
		w = 20
	}
	return w
}

func detailWidth(total int) int {
	w := total - listWidth(total) - 1 // 1 char for divider
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) renderHeader(width int) string {
	title := HeaderStyle.Render("Coursework")

	stats := HeaderCountStyle.Render(fmt.Sprintf("%d tasks", m.taskCount))
	if bad := InvalidDeadlines(m.rows); bad > 0 {
		stats = WarningStyle.Render(fmt.Sprintf("%d bad deadline(s)  ", bad)) + stats
	}

	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = "  " + StatusStyle.Render(m.statusMsg)
	} else if m.seedChanged {
		status = "  " + WarningStyle.Render("seed changed, R to reload")
	}

	gap := width - lipgloss.Width(title) - lipgloss.Width(stats) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}

	return title + status + strings.Repeat(" ", gap) + stats
}

func (m Model) renderSearchBar() string {
	return InputPromptStyle.Render(" / ") + m.searchInput.View()
}

func (m Model) renderListPanel(width, height int) string {
	var lines []string

	if len(m.rows) == 0 {
		lines = append(lines, FooterStyle.Render("No tasks yet. Press 'a' to add one."))
		return strings.Join(lines, "\n")
	}

	// Scrolling window
	startIdx := 0
	endIdx := len(m.rows)
	if len(m.rows) > height {
		startIdx = m.cursor - height/2
		if startIdx < 0 {
			startIdx = 0
		}
		endIdx = startIdx + height
		if endIdx > len(m.rows) {
			endIdx = len(m.rows)
			startIdx = endIdx - height
		}
	}

	for i := startIdx; i < endIdx; i++ {
		lines = append(lines, m.renderRow(m.rows[i], i == m.cursor, width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(row Row, isSelected bool, width int) string {
	var icon string
	if row.Task.IsComplete() {
		icon = CompleteStyle.Render(IconComplete)
	} else {
		icon = PendingStyle.Render(IconPending)
	}

	var deadline string
	if row.ValidDeadline {
		deadline = DeadlineStyle.Render(row.Task.Deadline)
	} else {
		deadline = InvalidDeadlineStyle.Render(IconInvalid + " " + row.Task.Deadline)
	}

	index := IndexStyle.Render(fmt.Sprintf("%2d.", row.Index))
	left := index + " " + icon + " " + row.Task.CourseName

	gap := width - lipgloss.Width(left) - lipgloss.Width(deadline) - 1
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + deadline

	switch {
	case row.Task.ID == m.matchID && !isSelected:
		line = MatchStyle.Render(line)
	case isSelected:
		line = SelectedStyle.Render(line)
	}
	return line
}

func (m Model) renderDetailPanel(width, height int) string {
	if len(m.rows) == 0 || m.cursor >= len(m.rows) {
		return FooterStyle.Render(" Select a task to view details")
	}
	row := m.rows[m.cursor]

	md := taskMarkdown(row)
	rendered := md
	if m.glamourRenderer != nil {
		if out, err := m.glamourRenderer.Render(md); err == nil {
			rendered = out
		}
	}

	rendered = strings.TrimRight(rendered, "\n ")
	lines := strings.Split(rendered, "\n")

	scroll := m.detailScroll
	if scroll > len(lines)-1 {
		scroll = len(lines) - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	lines = lines[scroll:]

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// taskMarkdown builds the markdown shown in the detail pane.
func taskMarkdown(row Row) string {
	var md strings.Builder
	t := row.Task

	md.WriteString(fmt.Sprintf("# %d. %s\n\n", row.Index, t.CourseName))

	meta := []string{"**Deadline:** " + t.Deadline, "**Status:** " + t.StatusLabel()}
	if key, err := store.DeadlineKey(t.Deadline); err == nil {
		meta = append(meta, fmt.Sprintf("**Key:** %d", key))
	} else {
		meta = append(meta, "**Key:** invalid, expected DD-MM-YYYY")
	}
	md.WriteString(strings.Join(meta, " | ") + "\n\n")

	if t.Description != "" {
		md.WriteString(t.Description)
		if !strings.HasSuffix(t.Description, "\n") {
			md.WriteString("\n")
		}
	}
	return md.String()
}

func (m Model) renderAddForm(width, height int) string {
	var lines []string
	lines = append(lines, ModalTitleStyle.Render(" New task"), "")

	label := func(field int, text string) string {
		if m.formField == field {
			return FormLabelActiveStyle.Render(" " + text)
		}
		return FormLabelStyle.Render(" " + text)
	}

	lines = append(lines, label(fieldCourse, "Course")+m.courseInput.View(), "")

	descLines := strings.Split(m.descInput.View(), "\n")
	for i, l := range descLines {
		if i == 0 {
			lines = append(lines, label(fieldDescription, "Description")+l)
		} else {
			lines = append(lines, FormLabelStyle.Render("")+l)
		}
	}
	lines = append(lines, "")

	lines = append(lines, label(fieldDeadline, "Deadline")+m.deadlineInput.View())

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	help := m.keys.ShortHelp()
	switch {
	case m.isAdding:
		help = "tab next field  shift+tab previous  enter on deadline to save  esc cancel"
	case m.isSearching:
		help = "type a course name  enter search  esc cancel"
	case m.matchID != "":
		help = "esc clear match  " + help
	case m.focusedPane == 1:
		help = "↑↓ scroll details  tab tasks  ? help"
	}
	return FooterStyle.Render(help)
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorBlue).Width(12)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderCompleteModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Complete Task"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Mark #%d '%s' complete?\n", m.completeRow.Index, m.completeRow.Task.CourseName))
	b.WriteString(FooterStyle.Render("All completed tasks will be removed from the list."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorGreen).Render("[y]") + " Yes  ")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorRed).Render("[n]") + " No")

	return ModalStyle.Render(b.String())
}

// Helper functions

func getLine(block string, idx int, width int) string {
	lines := strings.Split(block, "\n")
	if idx < len(lines) {
		line := lines[idx]
		lineWidth := lipgloss.Width(line)
		if lineWidth < width {
			return line + strings.Repeat(" ", width-lineWidth)
		}
		return line
	}
	return strings.Repeat(" ", width)
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
