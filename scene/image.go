package scene

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrImageLoad is wrapped by every LoadImage failure.
var ErrImageLoad = errors.New("image load failed")

// Image holds CPU-side RGBA8 pixels of the background picture.
type Image struct {
	Name string
	rgba *image.RGBA
}

// LoadImage reads a png, jpeg, gif, bmp, tiff or webp file and converts it
// to RGBA8.
func LoadImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %w", ErrImageLoad, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %q: %w", ErrImageLoad, path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %q has no pixels", ErrImageLoad, path)
	}
	return NewImage(path, img), nil
}

// NewImage wraps an already decoded image.
func NewImage(name string, img image.Image) *Image {
	return &Image{Name: name, rgba: clone.AsRGBA(img)}
}

func (im *Image) Width() int  { return im.rgba.Bounds().Dx() }
func (im *Image) Height() int { return im.rgba.Bounds().Dy() }

// Pixels returns the RGBA8 rows top to bottom.
func (im *Image) Pixels() []byte { return im.rgba.Pix }

// FlippedPixels returns the RGBA8 rows bottom to top, the order
// glTexImage2D expects for UV (0,0) at the lower-left corner.
func (im *Image) FlippedPixels() []byte {
	return transform.FlipV(im.rgba).Pix
}
