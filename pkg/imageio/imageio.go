// Package imageio converts raw render buffers into images and writes them out.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// ErrDimensionMismatch is returned when a buffer does not hold width*height RGB pixels
var ErrDimensionMismatch = errors.New("buffer size does not match image dimensions")

// BufferToImage wraps row-major RGB bytes, top row first, in an opaque RGBA image
func BufferToImage(buffer []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensionMismatch, width, height)
	}
	if len(buffer) != width*height*3 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrDimensionMismatch, len(buffer), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 3
			img.SetRGBA(x, y, color.RGBA{R: buffer[i], G: buffer[i+1], B: buffer[i+2], A: 255})
		}
	}
	return img, nil
}

// Save writes img to path, picking the encoder from the file extension
// (.png, .jpg, .jpeg, .gif, .tif, .tiff or .bmp). The parent directory must exist.
func Save(path string, img image.Image) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return imaging.Save(img, path)
}

// Encode writes img to w as a PNG
func Encode(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// EncodePNG returns img encoded as PNG bytes
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Thumbnail scales img down so its longer edge is at most maxEdge pixels,
// preserving the aspect ratio. Images already small enough are returned unchanged.
func Thumbnail(img image.Image, maxEdge int) image.Image {
	bounds := img.Bounds()
	if maxEdge <= 0 || (bounds.Dx() <= maxEdge && bounds.Dy() <= maxEdge) {
		return img
	}

	// A zero dimension tells resize to keep the aspect ratio
	if bounds.Dx() >= bounds.Dy() {
		return resize.Resize(uint(maxEdge), 0, img, resize.Bilinear)
	}
	return resize.Resize(0, uint(maxEdge), img, resize.Bilinear)
}
