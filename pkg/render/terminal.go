package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalRenderer owns a framebuffer sized for a terminal and the
// rasterizer painting into it. It implements uv.Drawable.
type TerminalRenderer struct {
	fb   *Framebuffer
	rast *Rasterizer
}

var _ uv.Drawable = (*TerminalRenderer)(nil)

// NewTerminalRenderer creates a renderer for a terminal of cols x rows
// cells. The framebuffer is cols x 2*rows pixels.
func NewTerminalRenderer(cols, rows int) *TerminalRenderer {
	fb := NewFramebuffer(cols, rows*2)
	return &TerminalRenderer{fb: fb, rast: NewRasterizer(fb)}
}

// Resize adapts the framebuffer and depth buffer to a new terminal size.
func (t *TerminalRenderer) Resize(cols, rows int) {
	t.fb.Resize(cols, rows*2)
	t.rast.Resize()
}

// FramebufferSize returns the framebuffer dimensions in pixels.
func (t *TerminalRenderer) FramebufferSize() (w, h int) {
	return t.fb.Width, t.fb.Height
}

func (t *TerminalRenderer) Framebuffer() *Framebuffer { return t.fb }
func (t *TerminalRenderer) Rasterizer() *Rasterizer   { return t.rast }

// Begin clears color and depth for a new frame.
func (t *TerminalRenderer) Begin(bg Color) {
	t.rast.Clear(bg)
	t.rast.ResetStats()
}

// Draw presents the framebuffer.
func (t *TerminalRenderer) Draw(scr uv.Screen, area uv.Rectangle) {
	t.fb.Draw(scr, area)
}

// Draw converts the internal framebuffer to terminal cells and draws them on
// the screen.
// The framebuffer height should be 2x the terminal height.
func (r *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1
		if topY >= r.Height {
			break
		}

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < r.Width; col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(r.GetPixel(x, topY)),
					Bg: rgbaToColor(r.GetPixel(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) color.RGBA {
	return color.RGBA{r, g, b, a}
}
