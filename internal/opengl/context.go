package opengl

import (
	"fmt"
	"log/slog"

	gl "github.com/go-gl/gl/v4.3-core/gl"
)

// Init loads GL entry points for the current context and sets the blend
// state shared by every pass. Must be called after the window's context
// is made current.
func Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	slog.Info("OpenGL context",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"vendor", gl.GoStr(gl.GetString(gl.VENDOR)))

	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.BLEND)
	return nil
}

// WindowReader reads the window's back buffer.
type WindowReader struct{}

// ReadPixels returns w*h RGBA8 pixels, bottom row first.
func (WindowReader) ReadPixels(w, h int) []byte {
	return readPixels(0, gl.BACK, w, h)
}

// TargetReader reads the colour attachment of an off-screen target. Unlike
// the back buffer its contents are defined for hidden windows.
type TargetReader struct {
	Target *RenderTarget
}

// ReadPixels returns w*h RGBA8 pixels, bottom row first.
func (r TargetReader) ReadPixels(w, h int) []byte {
	return readPixels(r.Target.fbo.ID(), gl.COLOR_ATTACHMENT0, w, h)
}

func readPixels(fbo, buffer uint32, w, h int) []byte {
	pix := make([]byte, w*h*4)
	if len(pix) == 0 {
		return pix
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fbo)
	gl.ReadBuffer(buffer)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return pix
}
