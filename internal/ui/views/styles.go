package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Count         lipgloss.Style
	CountFull     lipgloss.Style
	Confirm       lipgloss.Style
	Prompt        lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Card          lipgloss.Style
	CardSelected  lipgloss.Style
	Badge         lipgloss.Style
	Icon          lipgloss.Style
	Name          lipgloss.Style
	Size          lipgloss.Style
	Button        lipgloss.Style
	ButtonOff     lipgloss.Style
	PickerBox     lipgloss.Style
	MessageBox    lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Count:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		CountFull: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // yellow
		Confirm:   lipgloss.NewStyle().Bold(true),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Dim:       lipgloss.NewStyle().Faint(true),
		Help:      lipgloss.NewStyle().Faint(true),
		Main:      lipgloss.NewStyle().Padding(1, 2),
		Scroll:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 1),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("62")).
			Bold(true).
			Padding(0, 1),
		Icon:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Name:      lipgloss.NewStyle().Bold(true),
		Size:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Button:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		ButtonOff: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		PickerBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1),
		MessageBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("241")).
			MarginTop(1),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

// KindColor returns the badge background for a media kind
func KindColor(kind string) string {
	switch kind {
	case "image":
		return "62" // purple
	case "video":
		return "167" // orange
	default:
		return "31" // blue
	}
}
