package ui

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"
)

// decodeCover decodes raw cover bytes into an image.
func decodeCover(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode cover: %w", err)
	}
	return img, nil
}

// renderArt renders an image as a square block of width terminal cells.
// Each cell is a half-block rune carrying two pixels: the upper pixel as
// the foreground and the lower as the background. A cell is roughly
// twice as tall as wide, so width cells by width/2 rows comes out
// square on screen.
func renderArt(img image.Image, width int) string {
	rows := width / 2
	if width < 2 || rows < 1 {
		return ""
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, rows*2))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < width; x++ {
			top := dst.RGBAAt(x, 2*y)
			bottom := dst.RGBAAt(x, 2*y+1)
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", top.R, top.G, top.B))).
				Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", bottom.R, bottom.G, bottom.B)))
			b.WriteString(cell.Render("▀"))
		}
		if y < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// renderArtPlaceholder fills the art area with a note glyph, used while
// no cover is available.
func renderArtPlaceholder(width int, style lipgloss.Style) string {
	rows := width / 2
	if width < 2 || rows < 1 {
		return ""
	}
	return lipgloss.Place(width, rows, lipgloss.Center, lipgloss.Center, style.Render("♪"))
}
