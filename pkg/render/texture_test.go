package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestTextureSize(t *testing.T) {
	tex := NewTexture(7, 3)
	if w, h := tex.Size(); w != 7 || h != 3 {
		t.Errorf("Size = %dx%d, want 7x3", w, h)
	}
}

func TestTextureSampleNearest(t *testing.T) {
	c1, c2 := RGB(255, 255, 255), RGB(0, 0, 0)
	tex := NewCheckerTexture(4, 4, 2, c1, c2)

	tests := []struct {
		name string
		u, v float64
		want Color
	}{
		{"top left", 0.1, 0.1, c1},
		{"top right", 0.9, 0.1, c2},
		{"bottom left", 0.1, 0.9, c2},
		{"wraps past one", 1.1, 0.1, c1},
		{"wraps below zero", -0.1, 0.1, c2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tex.Sample(tc.u, tc.v); got != tc.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}
}

func TestTextureSampleClamp(t *testing.T) {
	tex := NewGradientTexture(2, 1, RGB(0, 0, 0), RGB(255, 255, 255))
	tex.WrapU = WrapClamp
	if got := tex.Sample(1.5, 0); got != RGB(255, 255, 255) {
		t.Errorf("clamped sample = %v, want right edge", got)
	}
	if got := tex.Sample(-3, 0); got != RGB(0, 0, 0) {
		t.Errorf("clamped sample = %v, want left edge", got)
	}
}

func TestTextureSampleBilinear(t *testing.T) {
	tex := NewGradientTexture(2, 1, RGB(0, 0, 0), RGB(200, 200, 200))
	tex.Filter = FilterBilinear
	tex.WrapU = WrapClamp
	got := tex.Sample(0.5, 0.5)
	if absInt(int(got.R)-100) > 1 {
		t.Errorf("bilinear midpoint = %v, want about 100", got)
	}
}

func TestTextureFit(t *testing.T) {
	tex := NewCheckerTexture(400, 100, 50, RGB(255, 255, 255), RGB(0, 0, 0))
	tex.WrapU = WrapClamp

	small := tex.Fit(200)
	if w, h := small.Size(); w != 200 || h != 50 {
		t.Fatalf("Fit(200) size = %dx%d, want 200x50", w, h)
	}
	if small.WrapU != WrapClamp {
		t.Error("Fit dropped the wrap mode")
	}
	// Centers of the first two checks keep their colors.
	if got := small.GetPixel(12, 12); got.R < 200 {
		t.Errorf("first check = %v, want near white", got)
	}
	if got := small.GetPixel(37, 12); got.R > 55 {
		t.Errorf("second check = %v, want near black", got)
	}

	if tex.Fit(400) != tex || tex.Fit(0) != tex {
		t.Error("Fit should return the texture unchanged when it already fits")
	}
}

func TestTextureSampleEmpty(t *testing.T) {
	var tex Texture
	if got := tex.Sample(0.5, 0.5); got != (Color{}) {
		t.Errorf("empty texture sample = %v, want zero", got)
	}
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{255, 255, 255, 255})
	return img
}

func TestLoadTexture(t *testing.T) {
	dir := t.TempDir()
	encoders := []struct {
		name   string
		encode func(f *os.File) error
	}{
		{"tex.png", func(f *os.File) error { return png.Encode(f, testImage()) }},
		{"tex.bmp", func(f *os.File) error { return bmp.Encode(f, testImage()) }},
	}
	for _, enc := range encoders {
		t.Run(enc.name, func(t *testing.T) {
			path := filepath.Join(dir, enc.name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := enc.encode(f); err != nil {
				t.Fatal(err)
			}
			f.Close()

			tex, err := LoadTexture(path)
			if err != nil {
				t.Fatalf("LoadTexture: %v", err)
			}
			if w, h := tex.Size(); w != 2 || h != 2 {
				t.Fatalf("Size = %dx%d, want 2x2", w, h)
			}
			if got := tex.GetPixel(1, 0); got != RGB(0, 255, 0) {
				t.Errorf("pixel (1,0) = %v, want green", got)
			}
			if got := tex.Sample(0.25, 0.75); got != RGB(0, 0, 255) {
				t.Errorf("Sample(0.25, 0.75) = %v, want blue (v runs down)", got)
			}
		})
	}
}

func TestLoadTextureErrors(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(path); err == nil {
		t.Error("expected decode error")
	}
}
