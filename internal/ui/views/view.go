package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dropzone/internal/messages"
	"dropzone/internal/preview"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Cards         []CardView
	SelectedIndex int
	MaxFiles      int
	Uploading     bool
	Spinner       string
	Messages      []messages.Message
	MessageLines  int
	InputMode     string // "", "path", "picker" or "clear-confirm"
	Prompt        string
	TextInput     string
	PickerDir     string
	PickerView    string
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles     *Styles
	cardRender *CardRenderer
}

// NewRenderer creates a new renderer for cards thumbWidth cells wide
func NewRenderer(thumbWidth int) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:     styles,
		cardRender: NewCardRenderer(styles, preview.ThumbnailWidth(thumbWidth)),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")
	content.WriteString(r.renderButtons(state))
	content.WriteString("\n\n")

	switch state.InputMode {
	case "clear-confirm":
		content.WriteString(r.styles.Confirm.Render(
			fmt.Sprintf("Clear all %d file(s)? (y/n): ", len(state.Cards))))
		content.WriteString("\n\n")
	case "path":
		content.WriteString(r.styles.Prompt.Render(state.Prompt))
		content.WriteString(state.TextInput)
		content.WriteString("\n\n")
	}

	if state.InputMode == "picker" {
		content.WriteString(r.renderPicker(state))
	} else {
		content.WriteString(r.renderGrid(state))
	}

	content.WriteString("\n")
	content.WriteString(r.renderMessages(state))

	if state.HelpView != "" {
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		if pad := availableLines - currentLines - 1; pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		}
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	return r.styles.Main.MaxHeight(maxInt(state.Height, 1)).Render(content.String())
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("dropzone")

	countStyle := r.styles.Count
	if state.MaxFiles > 0 && len(state.Cards) >= state.MaxFiles {
		countStyle = r.styles.CountFull
	}
	right := countStyle.Render(fmt.Sprintf("%d/%d files", len(state.Cards), state.MaxFiles))
	if state.Uploading {
		right = r.styles.StatusLoading.Render(state.Spinner+" Uploading…") + "  " + right
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

// renderButtons draws the action bar. Clear and upload are disabled while
// the selection is empty or an upload is running.
func (r *Renderer) renderButtons(state ViewState) string {
	busy := len(state.Cards) == 0 || state.Uploading
	button := func(key, label string, enabled bool) string {
		style := r.styles.Button
		if !enabled {
			style = r.styles.ButtonOff
		}
		return style.Render(fmt.Sprintf("[%s] %s", key, label))
	}
	return strings.Join([]string{
		button("o", "Choose", true),
		button("a", "Path", true),
		button("p", "Paste", true),
		button("C", "Clear", !busy),
		button("u", "Upload", !busy),
	}, "  ")
}

// renderGrid lays the cards out in rows and scrolls so the selected card's
// row stays visible.
func (r *Renderer) renderGrid(state ViewState) string {
	if len(state.Cards) == 0 {
		return r.styles.Dim.Render("No files yet. Drop files here, press o to choose or p to paste paths.")
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	perRow := (termWidth - 4) / (r.cardRender.OuterWidth() + 1)
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for start := 0; start < len(state.Cards); start += perRow {
		end := minInt(start+perRow, len(state.Cards))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			card := r.cardRender.RenderCard(state.Cards[i], i == state.SelectedIndex, i == 0, i == len(state.Cards)-1)
			cards = append(cards, card, " ")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	visible := r.visibleRows(state, rows)
	selectedRow := state.SelectedIndex / perRow
	offset := 0
	if selectedRow >= visible {
		offset = selectedRow - visible + 1
	}
	end := minInt(offset+visible, len(rows))

	var lines []string
	if offset > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", offset*perRow)))
	}
	lines = append(lines, rows[offset:end]...)
	if end < len(rows) {
		below := len(state.Cards) - end*perRow
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}
	return strings.Join(lines, "\n")
}

// visibleRows estimates how many card rows fit above the message panel
func (r *Renderer) visibleRows(state ViewState, rows []string) int {
	if len(rows) == 0 || state.Height <= 0 {
		return maxInt(len(rows), 1)
	}
	rowHeight := lipgloss.Height(rows[0])
	reserved := 8 + state.MessageLines // chrome, messages and help
	return maxInt((state.Height-reserved)/rowHeight, 1)
}

func (r *Renderer) renderPicker(state ViewState) string {
	header := r.styles.Prompt.Render("Choose files") +
		r.styles.Dim.Render(fmt.Sprintf("  %s  (enter to add, esc to close)", state.PickerDir))
	return r.styles.PickerBox.Render(header + "\n" + state.PickerView)
}

// renderMessages shows the newest messages first
func (r *Renderer) renderMessages(state ViewState) string {
	limit := state.MessageLines
	if limit <= 0 {
		limit = 4
	}

	var lines []string
	for i, msg := range state.Messages {
		if i >= limit {
			break
		}
		style := r.styles.StatusSuccess
		if msg.Level == messages.LevelError {
			style = r.styles.StatusError
		}
		lines = append(lines, r.styles.Dim.Render(msg.Time.Format("15:04:05"))+"  "+style.Render(msg.Text))
	}
	if len(lines) == 0 {
		lines = append(lines, r.styles.Dim.Render("No messages."))
	}
	if extra := len(state.Messages) - limit; extra > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("… %d older, press L for the full log", extra)))
	}
	return r.styles.MessageBox.Render(strings.Join(lines, "\n"))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
