package preview

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"

	"dropzone/internal/domain"
)

const halfBlock = "▀"

// Thumbnail decodes an image file and renders it as rows of half-block
// cells, each cell carrying two vertically stacked pixels.
func Thumbnail(f domain.File, width int) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name(), err)
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Name(), err)
	}
	return RenderImage(img, width), nil
}

// RenderImage scales img to fit a width x width pixel box and renders it
func RenderImage(img image.Image, width int) []string {
	size := uint(width)
	thumb := resize.Thumbnail(size, size, img, resize.Lanczos3)
	b := thumb.Bounds()

	rows := make([]string, 0, (b.Dy()+1)/2)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var row strings.Builder
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(hex(thumb.At(x, y))))
			if y+1 < b.Max.Y {
				style = style.Background(lipgloss.Color(hex(thumb.At(x, y+1))))
			}
			row.WriteString(style.Render(halfBlock))
		}
		rows = append(rows, row.String())
	}
	return rows
}

func hex(c interface{ RGBA() (r, g, b, a uint32) }) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
