package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestBufferToImage(t *testing.T) {
	// 2x2: red, green on the top row; blue, white on the bottom row
	buffer := []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 255, 255, 255,
	}

	img, err := BufferToImage(buffer, 2, 2)
	if err != nil {
		t.Fatalf("BufferToImage failed: %v", err)
	}

	tests := []struct {
		x, y     int
		expected color.RGBA
	}{
		{0, 0, color.RGBA{255, 0, 0, 255}},
		{1, 0, color.RGBA{0, 255, 0, 255}},
		{0, 1, color.RGBA{0, 0, 255, 255}},
		{1, 1, color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.expected {
			t.Errorf("Pixel (%d,%d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestBufferToImage_DimensionMismatch(t *testing.T) {
	tests := []struct {
		name          string
		size          int
		width, height int
	}{
		{"short buffer", 11, 2, 2},
		{"long buffer", 13, 2, 2},
		{"zero width", 0, 0, 2},
		{"negative height", 6, 2, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BufferToImage(make([]byte, tt.size), tt.width, tt.height)
			if !errors.Is(err, ErrDimensionMismatch) {
				t.Errorf("Expected ErrDimensionMismatch, got %v", err)
			}
		})
	}
}

func solidImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestSave_ByExtension(t *testing.T) {
	img := solidImage(4, 3, color.RGBA{10, 20, 30, 255})
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "out.png")
	if err := Save(pngPath, img); err != nil {
		t.Fatalf("Save png failed: %v", err)
	}
	decodeWith(t, pngPath, png.Decode)

	jpgPath := filepath.Join(dir, "out.jpg")
	if err := Save(jpgPath, img); err != nil {
		t.Fatalf("Save jpg failed: %v", err)
	}
	decodeWith(t, jpgPath, jpeg.Decode)
}

func decodeWith(t *testing.T, path string, decode func(r io.Reader) (image.Image, error)) {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer file.Close()

	decoded, err := decode(file)
	if err != nil {
		t.Fatalf("Failed to decode %s: %v", path, err)
	}
	if decoded.Bounds().Dx() != 4 || decoded.Bounds().Dy() != 3 {
		t.Errorf("Expected 4x3 image, got %v", decoded.Bounds())
	}
}

func TestSave_Errors(t *testing.T) {
	img := solidImage(1, 1, color.RGBA{A: 255})
	dir := t.TempDir()

	if err := Save(filepath.Join(dir, "out.xyz"), img); err == nil {
		t.Error("Expected error for unsupported extension")
	}
	if err := Save(filepath.Join(dir, "missing", "out.png"), img); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestEncodePNG(t *testing.T) {
	img := solidImage(3, 2, color.RGBA{200, 100, 50, 255})

	data, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	r, g, b, _ := decoded.At(1, 1).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 {
		t.Errorf("Expected (200,100,50), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name             string
		width, height    int
		maxEdge          int
		expectW, expectH int
	}{
		{"landscape", 300, 200, 150, 150, 100},
		{"portrait", 200, 400, 100, 50, 100},
		{"already small", 40, 30, 100, 40, 30},
		{"disabled", 300, 200, 0, 300, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := solidImage(tt.width, tt.height, color.RGBA{1, 2, 3, 255})
			thumb := Thumbnail(img, tt.maxEdge)

			if thumb.Bounds().Dx() != tt.expectW || thumb.Bounds().Dy() != tt.expectH {
				t.Errorf("Expected %dx%d, got %v", tt.expectW, tt.expectH, thumb.Bounds())
			}
		})
	}
}
