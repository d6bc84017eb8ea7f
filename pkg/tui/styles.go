package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPurple      = lipgloss.Color("#7D56F4")
	ColorGreen       = lipgloss.Color("#25A065")
	ColorBlue        = lipgloss.Color("#4285F4")
	ColorRed         = lipgloss.Color("#E05252")
	ColorYellow      = lipgloss.Color("#E5C07B")
	ColorGray        = lipgloss.Color("#626262")
	ColorGrayDim     = lipgloss.Color("#404040")
	ColorWhite       = lipgloss.Color("#FFFFFF")
	ColorOffWhite    = lipgloss.Color("#D0D0D0")
	ColorSelectionBg = lipgloss.Color("#2D3B4D")
	ColorCyan        = lipgloss.Color("#56B6C2")
	ColorMatchBg     = lipgloss.Color("#2E2545")
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	HeaderCountStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)
)

// Task row styles
var (
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorSelectionBg)

	MatchStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple).
			Background(ColorMatchBg)

	CompleteStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	PendingStyle = lipgloss.NewStyle().
			Foreground(ColorOffWhite)

	DeadlineStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	InvalidDeadlineStyle = lipgloss.NewStyle().
				Foreground(ColorRed)

	IndexStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)
)

// Input styles
var (
	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorPurple).
				Bold(true)

	FormLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(12)

	FormLabelActiveStyle = lipgloss.NewStyle().
				Foreground(ColorPurple).
				Bold(true).
				Width(12)
)

// Status icons
const (
	IconComplete = "✓"
	IconPending  = "○"
	IconInvalid  = "!"
)
