package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dropzone/internal/domain"
	"dropzone/internal/format"
	"dropzone/internal/preview"
)

// CardView pairs an entry with its preview handle for rendering
type CardView struct {
	Entry  domain.Entry
	Handle *preview.Handle
}

// CardRenderer draws one preview card per entry
type CardRenderer struct {
	styles *Styles
	width  int // inner width in cells
}

// NewCardRenderer creates a card renderer whose body is width cells wide
func NewCardRenderer(styles *Styles, width int) *CardRenderer {
	if width < 12 {
		width = 12
	}
	return &CardRenderer{styles: styles, width: width}
}

// OuterWidth is the rendered card width including border and padding
func (r *CardRenderer) OuterWidth() int {
	return r.width + 4
}

// RenderCard renders a card. first and last disable the move affordance that
// would run off the end of the selection.
func (r *CardRenderer) RenderCard(card CardView, selected, first, last bool) string {
	lines := []string{r.renderBadge(card)}
	lines = append(lines, r.renderBody(card)...)
	lines = append(lines,
		r.styles.Name.Render(truncate(card.Entry.Name(), r.width)),
		r.styles.Size.Render(format.Bytes(card.Entry.Size())),
		r.renderAffordances(first, last),
	)

	style := r.styles.Card
	if selected {
		style = r.styles.CardSelected
	}
	return style.Width(r.width + 2).Render(strings.Join(lines, "\n"))
}

func (r *CardRenderer) renderBadge(card CardView) string {
	kind := card.Entry.Kind()
	return r.styles.Badge.
		Background(lipgloss.Color(KindColor(kind.String()))).
		Render(domain.Badge(card.Entry.MediaType()))
}

// renderBody shows the thumbnail when one was decoded, otherwise a kind icon
// padded to the same height so cards in a row line up.
func (r *CardRenderer) renderBody(card CardView) []string {
	height := r.width / 2
	if card.Handle != nil && len(card.Handle.Thumbnail) > 0 {
		rows := append([]string(nil), card.Handle.Thumbnail...)
		for len(rows) < height {
			rows = append(rows, "")
		}
		return rows
	}

	icon := kindIcon(card.Entry.Kind())
	rows := make([]string, height)
	mid := height / 2
	rows[mid] = lipgloss.PlaceHorizontal(r.width, lipgloss.Center, r.styles.Icon.Render(icon))
	return rows
}

func (r *CardRenderer) renderAffordances(first, last bool) string {
	up := r.styles.Button.Render("▲")
	if first {
		up = r.styles.ButtonOff.Render("▲")
	}
	down := r.styles.Button.Render("▼")
	if last {
		down = r.styles.ButtonOff.Render("▼")
	}
	remove := r.styles.StatusError.Render("✕")
	return lipgloss.PlaceHorizontal(r.width, lipgloss.Center, up+"  "+remove+"  "+down)
}

func kindIcon(kind domain.MediaKind) string {
	switch kind {
	case domain.KindImage:
		return "▣ image"
	case domain.KindVideo:
		return "▶ video"
	default:
		return "▤ document"
	}
}

// truncate shortens s to limit cells, marking the cut with an ellipsis
func truncate(s string, limit int) string {
	if lipgloss.Width(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
