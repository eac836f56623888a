package capture

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// within reports whether every channel of a and b differs by at most tol.
func within(a, b color.RGBA, tol int) bool {
	d := func(x, y uint8) bool {
		v := int(x) - int(y)
		return v >= -tol && v <= tol
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

// framebuffer fakes a window whose bottom half is red and top half blue,
// laid out bottom row first.
type framebuffer struct {
	w, h int
}

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func (fb framebuffer) ReadPixels(w, h int) []byte {
	pix := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		c := red
		if y >= h/2 {
			c = blue
		}
		for x := 0; x < w; x++ {
			pix = append(pix, c.R, c.G, c.B, c.A)
		}
	}
	return pix
}

func TestFromBottomUp(t *testing.T) {
	fb := framebuffer{w: 4, h: 6}
	img, err := FromBottomUp(fb.ReadPixels(fb.w, fb.h), fb.w, fb.h)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 6), img.Bounds())
	assert.Equal(t, blue, img.RGBAAt(0, 0), "top row comes from the end of the buffer")
	assert.Equal(t, red, img.RGBAAt(3, 5))
}

func TestFromBottomUpErrors(t *testing.T) {
	_, err := FromBottomUp(make([]byte, 10), 2, 2)
	assert.Error(t, err)
	_, err = FromBottomUp(nil, 0, 2)
	assert.Error(t, err)
}

func TestFormatFromExt(t *testing.T) {
	tests := []struct {
		ext  string
		want Format
	}{
		{".png", PNG},
		{"PNG", PNG},
		{".jpg", JPEG},
		{"jpeg", JPEG},
		{".bmp", BMP},
		{".tif", TIFF},
		{"tiff", TIFF},
	}
	for _, tt := range tests {
		f, err := FormatFromExt(tt.ext)
		require.NoError(t, err, tt.ext)
		assert.Equal(t, tt.want, f, tt.ext)
	}

	_, err := FormatFromExt(".gif")
	assert.ErrorIs(t, err, ErrFormat)
	_, err = FormatFromExt("")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestScreenshotRoundTrip(t *testing.T) {
	fb := framebuffer{w: 8, h: 4}
	for _, name := range []string{"shot.png", "shot.bmp", "shot.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Screenshot(fb, fb.w, fb.h, path))

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()
			img, _, err := image.Decode(f)
			require.NoError(t, err)
			require.Equal(t, fb.w, img.Bounds().Dx())
			require.Equal(t, fb.h, img.Bounds().Dy())

			top := color.RGBAModel.Convert(img.At(4, 0)).(color.RGBA)
			bottom := color.RGBAModel.Convert(img.At(4, 3)).(color.RGBA)
			assert.True(t, within(blue, top, 0), "top %v", top)
			assert.True(t, within(red, bottom, 0), "bottom %v", bottom)
		})
	}
}

func TestSaveJPEG(t *testing.T) {
	fb := framebuffer{w: 16, h: 16}
	path := filepath.Join(t.TempDir(), "shot.jpeg")
	require.NoError(t, Screenshot(fb, fb.w, fb.h, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())

	top := color.RGBAModel.Convert(img.At(8, 2)).(color.RGBA)
	assert.True(t, within(blue, top, 64), "lossy top %v", top)
}

func TestSaveUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.xyz")
	err := Save(image.NewRGBA(image.Rect(0, 0, 1, 1)), path)
	assert.ErrorIs(t, err, ErrFormat)
	assert.NoFileExists(t, path)
}

func TestWriteNone(t *testing.T) {
	var buf bytes.Buffer
	err := Write(image.NewRGBA(image.Rect(0, 0, 1, 1)), &buf, None)
	assert.ErrorIs(t, err, ErrFormat)
}
