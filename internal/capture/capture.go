// Package capture turns framebuffer read-backs into image files.
package capture

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an output encoding for captures.
type Format int

const (
	None Format = iota
	PNG
	JPEG
	BMP
	TIFF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	}
	return "none"
}

var ErrFormat = errors.New("unsupported capture format")

// FormatFromExt maps a file extension, with or without the leading dot,
// to a Format.
func FormatFromExt(ext string) (Format, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return None, fmt.Errorf("%w: %q", ErrFormat, ext)
}

// FromBottomUp wraps w*h RGBA8 pixels stored bottom row first, as GL reads
// them back, into a top-down image.
func FromBottomUp(pix []byte, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid capture size %dx%d", w, h)
	}
	if want := w * h * 4; len(pix) != want {
		return nil, fmt.Errorf("capture %dx%d: got %d bytes, want %d", w, h, len(pix), want)
	}
	src := &image.RGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	return transform.FlipV(src), nil
}

// Save encodes img into filename, choosing the format from its extension.
func Save(img image.Image, filename string) error {
	f, err := FormatFromExt(filepath.Ext(filename))
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(file)
	if err := Write(img, bw, f); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func Write(img image.Image, w io.Writer, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, nil)
	}
	return fmt.Errorf("%w: %v", ErrFormat, f)
}

// PixelReader reads RGBA8 pixels from the current framebuffer, bottom row
// first.
type PixelReader interface {
	ReadPixels(w, h int) []byte
}

// Screenshot reads a w*h framebuffer through r and saves it top-down to
// filename.
func Screenshot(r PixelReader, w, h int, filename string) error {
	img, err := FromBottomUp(r.ReadPixels(w, h), w, h)
	if err != nil {
		return err
	}
	return Save(img, filename)
}
