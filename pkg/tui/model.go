package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/stefanpenner/duedate/pkg/session"
	"github.com/stefanpenner/duedate/pkg/store"
)

// SeedChangedMsg is sent when the watcher sees the seed file change.
type SeedChangedMsg struct{}

// Add form fields, in tab order.
const (
	fieldCourse = iota
	fieldDescription
	fieldDeadline
	fieldCount
)

// Model is the Bubble Tea model for the task menu.
type Model struct {
	session      *session.Session
	keys         KeyMap
	width        int
	height       int
	rows         []Row
	taskCount    int // recursive count, refreshed with rows
	cursor       int
	focusedPane  int // 0 = tasks, 1 = details
	detailScroll int

	// Modal state
	showHelpModal       bool
	showCompleteConfirm bool
	completeRow         Row

	// Add form
	isAdding      bool
	formField     int
	courseInput   textinput.Model
	descInput     textarea.Model
	deadlineInput textinput.Model

	// Search state
	isSearching bool
	searchInput textinput.Model
	matchID     string // ID of the last search hit, highlighted in the list

	seedChanged bool

	// Status message
	statusMsg     string
	statusTimeout time.Time

	// Cached glamour renderer (expensive to create)
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int
}

// NewModel creates a new TUI model driving s.
func NewModel(s *session.Session) Model {
	course := textinput.New()
	course.Placeholder = "CS101"
	course.CharLimit = 64

	desc := textarea.New()
	desc.Placeholder = "What needs to be done (markdown)"
	desc.ShowLineNumbers = false
	desc.SetHeight(4)

	deadline := textinput.New()
	deadline.Placeholder = "DD-MM-YYYY"
	deadline.CharLimit = 10

	search := textinput.New()
	search.Placeholder = "course name"
	search.CharLimit = 64

	m := Model{
		session:       s,
		keys:          DefaultKeyMap(),
		courseInput:   course,
		descInput:     desc,
		deadlineInput: deadline,
		searchInput:   search,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.getGlamourRenderer(detailWidth(msg.Width) - 2)
		m.descInput.SetWidth(detailWidth(msg.Width) - 14)
		return m, tea.ClearScreen

	case SeedChangedMsg:
		m.seedChanged = true
		m.setStatus("Seed file changed on disk. Press R to reload.")
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.isAdding {
		return m.updateFormInput(msg)
	}
	if m.isSearching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.isAdding {
		return m.handleAddForm(msg)
	}

	if m.isSearching {
		return m.handleSearchInput(msg)
	}

	// Help modal
	if m.showHelpModal {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelpModal = false
		}
		return m, nil
	}

	// Completion confirmation
	if m.showCompleteConfirm {
		switch msg.String() {
		case "y", "Y":
			m.completeSelected()
			m.showCompleteConfirm = false
		case "n", "N", "esc":
			m.showCompleteConfirm = false
		}
		return m, nil
	}

	// Esc clears a highlighted search hit
	if m.matchID != "" && msg.Type == tea.KeyEsc {
		m.matchID = ""
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.focusedPane == 1 {
			if m.detailScroll > 0 {
				m.detailScroll--
			}
		} else if m.cursor > 0 {
			m.cursor--
			m.detailScroll = 0
		}

	case key.Matches(msg, m.keys.Down):
		if m.focusedPane == 1 {
			m.detailScroll++
		} else if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.detailScroll = 0
		}

	case key.Matches(msg, m.keys.Tab):
		m.focusedPane = (m.focusedPane + 1) % 2

	case key.Matches(msg, m.keys.Add):
		cmd := m.openAddForm()
		return m, cmd

	case key.Matches(msg, m.keys.Sort):
		m.sortTasks()

	case key.Matches(msg, m.keys.Search):
		m.isSearching = true
		m.searchInput.Reset()
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Count):
		m.setStatus(fmt.Sprintf("Total tasks: %d", m.session.Count()))

	case key.Matches(msg, m.keys.Complete):
		if len(m.rows) == 0 {
			m.setError(store.ErrEmptyStore)
			break
		}
		m.completeRow = m.rows[m.cursor]
		m.showCompleteConfirm = true

	case key.Matches(msg, m.keys.Reload):
		m.reloadSeed()

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = !m.showHelpModal
	}

	return m, nil
}

// handleAddForm handles key messages while the add form is open.
func (m Model) handleAddForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeAddForm()
		return m, nil

	case tea.KeyTab:
		m.focusField((m.formField + 1) % fieldCount)
		return m, nil

	case tea.KeyShiftTab:
		m.focusField((m.formField + fieldCount - 1) % fieldCount)
		return m, nil

	case tea.KeyEnter:
		switch m.formField {
		case fieldCourse:
			m.focusField(fieldDescription)
			return m, nil
		case fieldDeadline:
			m.submitAddForm()
			return m, nil
		}
		// Enter inserts a newline in the description
	}

	return m.updateFormInput(msg)
}

func (m Model) updateFormInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.formField {
	case fieldCourse:
		m.courseInput, cmd = m.courseInput.Update(msg)
	case fieldDescription:
		m.descInput, cmd = m.descInput.Update(msg)
	case fieldDeadline:
		m.deadlineInput, cmd = m.deadlineInput.Update(msg)
	}
	return m, cmd
}

// handleSearchInput handles key messages while typing a search query.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.isSearching = false
		m.searchInput.Blur()
		return m, nil

	case tea.KeyEnter:
		m.isSearching = false
		m.searchInput.Blur()
		m.runSearch(m.searchInput.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) openAddForm() tea.Cmd {
	m.isAdding = true
	m.courseInput.Reset()
	m.descInput.Reset()
	m.deadlineInput.Reset()
	m.focusField(fieldCourse)
	return textinput.Blink
}

func (m *Model) closeAddForm() {
	m.isAdding = false
	m.courseInput.Blur()
	m.descInput.Blur()
	m.deadlineInput.Blur()
}

func (m *Model) focusField(field int) {
	m.courseInput.Blur()
	m.descInput.Blur()
	m.deadlineInput.Blur()

	m.formField = field
	switch field {
	case fieldCourse:
		m.courseInput.Focus()
	case fieldDescription:
		m.descInput.Focus()
	case fieldDeadline:
		m.deadlineInput.Focus()
	}
}

func (m *Model) submitAddForm() {
	course := strings.TrimSpace(m.courseInput.Value())
	desc := strings.TrimSpace(m.descInput.Value())
	deadline := strings.TrimSpace(m.deadlineInput.Value())

	t, err := m.session.Add(course, desc, deadline)
	if err != nil {
		// Keep the form open so the deadline can be fixed.
		m.setError(err)
		m.focusField(fieldDeadline)
		return
	}

	m.closeAddForm()
	m.refresh()
	m.moveCursorTo(t.ID)
	if store.ValidDeadline(t.Deadline) {
		m.setStatus("Added: " + t.CourseName)
	} else {
		m.setStatus("Added: " + t.CourseName + " (deadline is not DD-MM-YYYY; sorting will fail)")
	}
}

func (m *Model) sortTasks() {
	var curID string
	if m.cursor < len(m.rows) {
		curID = m.rows[m.cursor].Task.ID
	}

	if _, err := m.session.Sort(); err != nil {
		m.setError(err)
		return
	}

	m.refresh()
	m.moveCursorTo(curID)
	m.setStatus("Sorted by deadline, earliest first")
}

func (m *Model) runSearch(query string) {
	task, found, err := m.session.Search(query)
	if err != nil {
		m.setError(err)
		return
	}
	if !found {
		m.matchID = ""
		m.setStatus(fmt.Sprintf("Not found: %q", query))
		return
	}

	m.matchID = task.ID
	m.moveCursorTo(task.ID)
	m.setStatus(fmt.Sprintf("Found #%d: %s", m.cursor+1, task.CourseName))
}

func (m *Model) completeSelected() {
	row := m.completeRow
	removed, err := m.session.MarkCompleteAndCompact(row.Index)
	if err != nil {
		m.setError(err)
		return
	}

	m.refresh()
	if removed > 1 {
		m.setStatus(fmt.Sprintf("Completed %s and removed %d completed tasks", row.Task.CourseName, removed))
	} else {
		m.setStatus("Completed: " + row.Task.CourseName)
	}
}

func (m *Model) reloadSeed() {
	if m.session.SeedPath() == "" {
		m.setStatus("No seed file configured")
		return
	}

	n, err := m.session.Reload()
	if err != nil {
		m.setError(err)
		return
	}
	m.seedChanged = false
	m.matchID = ""
	m.cursor = 0
	m.refresh()
	m.setStatus(fmt.Sprintf("Reloaded %d tasks", n))
}

// refresh re-reads the session's tasks and count and clamps the cursor.
func (m *Model) refresh() {
	m.rows = BuildRows(m.session.List())
	m.taskCount = m.session.Count()
	if FindRow(m.rows, m.matchID) < 0 {
		m.matchID = ""
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) moveCursorTo(id string) {
	if i := FindRow(m.rows, id); i >= 0 {
		m.cursor = i
		m.detailScroll = 0
	}
}

// getGlamourRenderer returns a cached glamour renderer, creating one if needed
// or if the width changed.
func (m *Model) getGlamourRenderer(width int) *glamour.TermRenderer {
	if m.glamourRenderer != nil && m.glamourWidth == width {
		return m.glamourRenderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	m.glamourRenderer = r
	m.glamourWidth = width
	return r
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(3 * time.Second)
}

func (m *Model) setError(err error) {
	switch {
	case errors.Is(err, store.ErrEmptyStore):
		m.setStatus("No tasks yet. Press 'a' to add one.")
	case errors.Is(err, store.ErrTooFewRecords):
		m.setStatus("Too few tasks to sort.")
	case errors.Is(err, store.ErrInvalidDateFormat):
		m.setStatus("Invalid deadline: " + err.Error())
	case errors.Is(err, store.ErrIndexOutOfRange):
		m.setStatus("No such task: " + err.Error())
	default:
		m.setStatus("Error: " + err.Error())
	}
}
