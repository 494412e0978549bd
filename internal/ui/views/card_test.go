package views

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropzone/internal/domain"
	"dropzone/internal/preview"
)

type imageFile struct {
	data []byte
}

func (f imageFile) Name() string      { return "shot.png" }
func (f imageFile) MediaType() string { return "image/png" }
func (f imageFile) Size() int64       { return int64(len(f.data)) }
func (f imageFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func squarePNG(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{G: 180, B: uint8(x * 4), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestThumbnailFitsCardForAnyConfiguredWidth(t *testing.T) {
	entry := domain.Entry{ID: "e1", File: imageFile{data: squarePNG(t, 64)}}

	for _, width := range []int{-3, 0, 8, 24} {
		renderer := NewRenderer(width)
		cache := preview.NewCache(preview.WithThumbnailWidth(width))
		handle := cache.Acquire(entry)
		require.NotEmpty(t, handle.Thumbnail)

		for _, row := range handle.Thumbnail {
			assert.LessOrEqual(t, lipgloss.Width(row), renderer.cardRender.width, "width %d", width)
		}

		card := renderer.cardRender.RenderCard(CardView{Entry: entry, Handle: handle}, false, true, true)
		for _, line := range strings.Split(card, "\n") {
			assert.Equal(t, renderer.cardRender.OuterWidth(), lipgloss.Width(line), "width %d", width)
		}
	}
}
