package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.3-core/gl"

	"rain-engine/scene"
)

// Texture is an uploaded picture.
type Texture struct {
	Handle
	Width  int
	Height int
}

// UploadImage uploads img with rows flipped so UV (0,0) is the picture's
// lower-left corner, and builds mipmaps. The GL context must be current.
func UploadImage(img *scene.Image) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	w, h := img.Width(), img.Height()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("image %q has no pixel data", img.Name)
	}
	pixels := img.FlippedPixels()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(w),
		int32(h),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pixels),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{Handle: NewHandle(id, deleteTexture), Width: w, Height: h}, nil
}
