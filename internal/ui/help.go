package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"dropzone/internal/format"
	"dropzone/internal/messages"
	"dropzone/internal/selection"
)

// HelpRenderer handles help and log content rendering
type HelpRenderer struct {
	titleStyle   lipgloss.Style
	sectionStyle lipgloss.Style
	keyStyle     lipgloss.Style
	descStyle    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		sectionStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		keyStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		descStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// renderHelpContent renders the help information
func (r *HelpRenderer) renderHelpContent(policy selection.Policy) string {
	var help strings.Builder

	help.WriteString(r.titleStyle.Render("dropzone help"))
	help.WriteString("\n")

	r.section(&help, "Navigation", [][2]string{
		{"↑/↓, j/k", "Previous/next file"},
		{"g/G", "First/last file"},
	})
	r.section(&help, "Selection", [][2]string{
		{"K, Shift+↑", "Move file towards the front"},
		{"J, Shift+↓", "Move file towards the back"},
		{"x, Delete", "Remove file"},
		{"C", "Clear all files (asks first)"},
	})
	r.section(&help, "Adding files", [][2]string{
		{"o, Enter, Space", "Choose files in the file picker"},
		{"a", "Type a path, directory or file:// URI"},
		{"p, Ctrl+V", "Paste paths from the clipboard"},
		{"drop", "Drag files onto the terminal"},
	})
	r.section(&help, "Other", [][2]string{
		{"u", "Upload (simulated)"},
		{"L", "Show the message log"},
		{"?", "Show this help"},
		{"q", "Quit"},
	})

	help.WriteString("\n")
	help.WriteString(r.sectionStyle.Render("Limits"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %d files, %s per file, types: %s\n",
		policy.MaxFiles, format.Bytes(policy.MaxBytes), strings.Join(policy.AllowedTypePrefixes, ", ")))

	return help.String()
}

func (r *HelpRenderer) section(help *strings.Builder, title string, rows [][2]string) {
	help.WriteString(r.sectionStyle.Render(title))
	help.WriteString("\n")
	for _, row := range rows {
		help.WriteString(fmt.Sprintf("  %s  %s\n",
			r.keyStyle.Render(fmt.Sprintf("%-12s", row[0])), r.descStyle.Render(row[1])))
	}
}

// renderLogContent renders the full message log, newest first
func (r *HelpRenderer) renderLogContent(msgs []messages.Message) string {
	var out strings.Builder
	out.WriteString(r.titleStyle.Render(fmt.Sprintf("Messages (%d)", len(msgs))))
	out.WriteString("\n")
	for _, msg := range msgs {
		marker := "  "
		if msg.Level == messages.LevelError {
			marker = "! "
		}
		out.WriteString(marker)
		out.WriteString(msg.String())
		out.WriteString("\n")
	}
	return out.String()
}

// PagerOps shows long content in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// Show hands the terminal to ov until the user quits it
func (p *PagerOps) Show(content string) error {
	if p == nil || p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Give ov time to leave the alternate screen before we take it back
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
