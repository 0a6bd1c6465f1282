package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"

	_ "golang.org/x/image/bmp" // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterNearest  FilterMode = iota // Nearest-neighbor (pixelated)
	FilterBilinear                   // Bilinear interpolation (smooth)
)

// Texture is an RGBA image sampled by normalized coordinates. V runs down
// the image, so v=0 is the first pixel row. It satisfies pipeline.Texture.
type Texture struct {
	Image  *image.RGBA
	WrapU  WrapMode
	WrapV  WrapMode
	Filter FilterMode
}

// NewTexture creates a transparent texture of the given size.
func NewTexture(width, height int) *Texture {
	return &Texture{Image: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// LoadTexture loads a texture from a PNG, JPEG, BMP, TIFF or WebP file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage copies img into a new texture with its origin at (0,0).
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	tex := NewTexture(b.Dx(), b.Dy())
	draw.Draw(tex.Image, tex.Image.Bounds(), img, b.Min, draw.Src)
	return tex
}

// Fit returns a copy scaled down so neither side exceeds maxSize, keeping
// the aspect ratio. Textures already small enough are returned as is.
// Sampling modes carry over.
func (t *Texture) Fit(maxSize int) *Texture {
	w, h := t.Size()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return t
	}
	k := float64(maxSize) / float64(max(w, h))
	nw := max(1, int(math.Round(float64(w)*k)))
	nh := max(1, int(math.Round(float64(h)*k)))

	out := NewTexture(nw, nh)
	draw.CatmullRom.Scale(out.Image, out.Image.Bounds(), t.Image, t.Image.Bounds(), draw.Src, nil)
	out.WrapU, out.WrapV, out.Filter = t.WrapU, t.WrapV, t.Filter
	return out
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			c := c2
			if (x/checkSize+y/checkSize)%2 == 0 {
				c = c1
			}
			tex.Image.SetRGBA(x, y, c)
		}
	}
	return tex
}

// NewGradientTexture creates a horizontal gradient texture.
func NewGradientTexture(width, height int, left, right Color) *Texture {
	tex := NewTexture(width, height)
	for x := range width {
		t := 0.0
		if width > 1 {
			t = float64(x) / float64(width-1)
		}
		c := lerpColor(left, right, t)
		for y := range height {
			tex.Image.SetRGBA(x, y, c)
		}
	}
	return tex
}

// Size returns the texture dimensions in texels.
func (t *Texture) Size() (w, h int) {
	if t.Image == nil {
		return 0, 0
	}
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}

// GetPixel returns the texel at (x, y), or transparent black outside.
func (t *Texture) GetPixel(x, y int) Color {
	if t.Image == nil {
		return Color{}
	}
	return t.Image.RGBAAt(x, y)
}

// Sample returns the color at (u, v) using the wrap and filter modes.
func (t *Texture) Sample(u, v float64) Color {
	w, h := t.Size()
	if w == 0 || h == 0 {
		return Color{}
	}
	fx, fy := u*float64(w), v*float64(h)
	if t.Filter == FilterBilinear {
		return t.bilinear(fx-0.5, fy-0.5, w, h)
	}
	return t.GetPixel(wrap(int(math.Floor(fx)), w, t.WrapU), wrap(int(math.Floor(fy)), h, t.WrapV))
}

// bilinear blends the four texels around the texel-space point (fx, fy).
func (t *Texture) bilinear(fx, fy float64, w, h int) Color {
	x0, y0 := math.Floor(fx), math.Floor(fy)
	tx, ty := fx-x0, fy-y0

	xa, xb := wrap(int(x0), w, t.WrapU), wrap(int(x0)+1, w, t.WrapU)
	ya, yb := wrap(int(y0), h, t.WrapV), wrap(int(y0)+1, h, t.WrapV)

	top := lerpColor(t.GetPixel(xa, ya), t.GetPixel(xb, ya), tx)
	bot := lerpColor(t.GetPixel(xa, yb), t.GetPixel(xb, yb), tx)
	return lerpColor(top, bot, ty)
}

// wrap maps a texel index into [0, n).
func wrap(i, n int, mode WrapMode) int {
	if mode == WrapClamp {
		return min(max(i, 0), n-1)
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// lerpColor linearly interpolates between two colors.
func lerpColor(a, b Color, t float64) Color {
	l := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return Color{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}
