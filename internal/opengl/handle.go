package opengl

import (
	gl "github.com/go-gl/gl/v4.3-core/gl"
)

// Handle names one GL object together with the call that deletes it.
// The zero Handle names nothing; releasing it is a no-op.
type Handle struct {
	id  uint32
	del func(id uint32)
}

func NewHandle(id uint32, del func(id uint32)) Handle {
	return Handle{id: id, del: del}
}

func (h Handle) ID() uint32  { return h.id }
func (h Handle) Valid() bool { return h.id != 0 }

// Release deletes the object and invalidates h. Safe to call repeatedly.
func (h *Handle) Release() {
	if h.id == 0 {
		return
	}
	if h.del != nil {
		h.del(h.id)
	}
	h.id = 0
}

func deleteProgram(id uint32)     { gl.DeleteProgram(id) }
func deleteTexture(id uint32)     { gl.DeleteTextures(1, &id) }
func deleteBuffer(id uint32)      { gl.DeleteBuffers(1, &id) }
func deleteVertexArray(id uint32) { gl.DeleteVertexArrays(1, &id) }
func deleteFramebuffer(id uint32) { gl.DeleteFramebuffers(1, &id) }
