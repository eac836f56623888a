package opengl

import (
	"errors"
	"fmt"

	gl "github.com/go-gl/gl/v4.3-core/gl"
)

var ErrFramebufferIncomplete = errors.New("framebuffer incomplete")

// RenderTarget is an off-screen RGBA8 colour buffer whose texture can be
// sampled by a later pass.
type RenderTarget struct {
	fbo    Handle
	tex    Handle
	Width  int32
	Height int32
}

func NewRenderTarget(width, height int) (*RenderTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render target size %dx%d", width, height)
	}
	rt := &RenderTarget{Width: int32(width), Height: int32(height)}

	var tex uint32
	gl.GenTextures(1, &tex)
	rt.tex = NewHandle(tex, deleteTexture)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		rt.Width, rt.Height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	rt.fbo = NewHandle(fbo, deleteFramebuffer)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.FramebufferTexture(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, tex, 0)
	drawBuffers := []uint32{gl.COLOR_ATTACHMENT0}
	gl.DrawBuffers(1, &drawBuffers[0])

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		rt.Release()
		return nil, fmt.Errorf("%w (0x%X)", ErrFramebufferIncomplete, status)
	}
	return rt, nil
}

// Bind makes the target the draw framebuffer and sets the viewport to
// its full size.
func (rt *RenderTarget) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo.ID())
	gl.Viewport(0, 0, rt.Width, rt.Height)
}

// Texture is the colour attachment's texture name.
func (rt *RenderTarget) Texture() uint32 { return rt.tex.ID() }

func (rt *RenderTarget) Release() {
	rt.tex.Release()
	rt.fbo.Release()
	rt.Width = 0
	rt.Height = 0
}
