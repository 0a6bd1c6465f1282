package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
)

func TestFramebufferBlendPixel(t *testing.T) {
	tests := []struct {
		name string
		dst  Color
		src  Color
		want Color
	}{
		{"opaque replaces", RGB(10, 20, 30), RGB(200, 100, 50), RGB(200, 100, 50)},
		{"transparent keeps", RGB(10, 20, 30), RGBA(200, 100, 50, 0), RGB(10, 20, 30)},
		{"half over black", RGB(0, 0, 0), RGBA(255, 255, 255, 128), RGB(128, 128, 128)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(1, 1)
			fb.Clear(tc.dst)
			fb.BlendPixel(0, 0, tc.src)
			if got := fb.GetPixel(0, 0); got != tc.want {
				t.Errorf("BlendPixel = %v, want %v", got, tc.want)
			}
		})
	}

	fb := NewFramebuffer(1, 1)
	fb.BlendPixel(-1, 5, RGB(1, 2, 3)) // out of bounds is ignored
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Resize(3, 4)
	if fb.Width != 3 || fb.Height != 4 || len(fb.Pixels) != 12 {
		t.Errorf("Resize gave %dx%d with %d pixels", fb.Width, fb.Height, len(fb.Pixels))
	}
}

func TestFramebufferSavePNG(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.Clear(RGB(30, 30, 40))
	fb.SetPixel(2, 1, RGB(255, 0, 0))

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("bounds = %v, want 4x3", b)
	}
	r, g, b, _ := img.At(2, 1).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("pixel (2,1) = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
}

func TestFramebufferSavePNGBadPath(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestTerminalRendererDraw(t *testing.T) {
	tr := NewTerminalRenderer(3, 2)
	if w, h := tr.FramebufferSize(); w != 3 || h != 4 {
		t.Fatalf("FramebufferSize = %dx%d, want 3x4", w, h)
	}
	tr.Begin(RGB(0, 0, 0))
	tr.Framebuffer().SetPixel(1, 2, RGB(255, 0, 0)) // top half of row 1
	tr.Framebuffer().SetPixel(1, 3, RGB(0, 0, 255)) // bottom half of row 1

	scr := uv.NewScreenBuffer(3, 2)
	tr.Draw(scr, scr.Bounds())

	cell := scr.CellAt(1, 1)
	if cell == nil {
		t.Fatal("no cell drawn")
	}
	if cell.Content != "▀" {
		t.Errorf("content = %q, want upper half block", cell.Content)
	}
	if cell.Style.Fg != RGB(255, 0, 0) {
		t.Errorf("fg = %v, want red", cell.Style.Fg)
	}
	if cell.Style.Bg != RGB(0, 0, 255) {
		t.Errorf("bg = %v, want blue", cell.Style.Bg)
	}
}

func TestTerminalRendererResize(t *testing.T) {
	tr := NewTerminalRenderer(2, 2)
	tr.Resize(5, 3)
	if w, h := tr.FramebufferSize(); w != 5 || h != 6 {
		t.Errorf("FramebufferSize = %dx%d, want 5x6", w, h)
	}
	if tr.Rasterizer().Width() != 5 || len(tr.Rasterizer().zbuffer) != 30 {
		t.Error("rasterizer depth buffer not resized")
	}
}
