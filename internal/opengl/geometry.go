package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.3-core/gl"

	"rain-engine/scene"
)

// Geometry owns the two vertex-array configurations of the frame: the
// static image quads and the dynamic rain quads.
type Geometry struct {
	imageVAO Handle
	imageVBO Handle
	imageEBO Handle

	rainVAO Handle
	rainVBO Handle
	rainEBO Handle

	rainCap int // capacity of rainVBO in quads
}

// NewGeometry uploads the image quads for a width x height picture and the
// full rain buffer. The rain vertex buffer is marked DYNAMIC_DRAW since
// UploadRain rewrites it every frame.
func NewGeometry(width, height int, rain []scene.RainQuad, rainIndices []uint32) (geo *Geometry, err error) {
	if len(rain) == 0 || len(rainIndices) != len(rain)*scene.IndicesPerQuad {
		return nil, fmt.Errorf("rain buffers: %d quads with %d indices", len(rain), len(rainIndices))
	}

	g := &Geometry{rainCap: len(rain)}
	defer func() {
		if err != nil {
			g.Release()
		}
	}()

	g.imageVAO, g.imageVBO, g.imageEBO = genVertexArray()
	g.rainVAO, g.rainVBO, g.rainEBO = genVertexArray()

	vertices, indices := scene.ImageQuads(width, height)
	var tv scene.TextureVertex
	texStride := int32(unsafe.Sizeof(tv))

	gl.BindVertexArray(g.imageVAO.ID())
	gl.BindBuffer(gl.ARRAY_BUFFER, g.imageVBO.ID())
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(texStride), gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.imageEBO.ID())
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, texStride, gl.PtrOffset(int(unsafe.Offsetof(tv.Pos))))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, texStride, gl.PtrOffset(int(unsafe.Offsetof(tv.UV))))

	var rv scene.RainVertex
	rainStride := int32(unsafe.Sizeof(rv))

	gl.BindVertexArray(g.rainVAO.ID())
	gl.BindBuffer(gl.ARRAY_BUFFER, g.rainVBO.ID())
	gl.BufferData(gl.ARRAY_BUFFER, len(rain)*int(unsafe.Sizeof(scene.RainQuad{})), gl.Ptr(rain), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.rainEBO.ID())
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(rainIndices)*4, gl.Ptr(rainIndices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, rainStride, gl.PtrOffset(int(unsafe.Offsetof(rv.Pos))))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, rainStride, gl.PtrOffset(int(unsafe.Offsetof(rv.Color))))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		return nil, fmt.Errorf("geometry upload: GL error 0x%X", e)
	}
	return g, nil
}

func genVertexArray() (vao, vbo, ebo Handle) {
	var va, vb, eb uint32
	gl.GenVertexArrays(1, &va)
	gl.GenBuffers(1, &vb)
	gl.GenBuffers(1, &eb)
	return NewHandle(va, deleteVertexArray), NewHandle(vb, deleteBuffer), NewHandle(eb, deleteBuffer)
}

// UploadRain rewrites the start of the rain vertex buffer with quads.
// Anything past len(quads) keeps its previous contents.
func (g *Geometry) UploadRain(quads []scene.RainQuad) {
	n := min(len(quads), g.rainCap)
	if n == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, g.rainVBO.ID())
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, n*int(unsafe.Sizeof(scene.RainQuad{})), gl.Ptr(quads[:n]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// DrawImage draws one image quad starting at the given index offset
// (scene.FullQuadOffset or scene.CenterQuadOffset).
func (g *Geometry) DrawImage(offset int) {
	gl.BindVertexArray(g.imageVAO.ID())
	gl.DrawElements(gl.TRIANGLES, scene.QuadIndexCount, gl.UNSIGNED_INT, gl.PtrOffset(offset*4))
	gl.BindVertexArray(0)
}

// DrawRain draws the first n rain quads.
func (g *Geometry) DrawRain(n int) {
	n = min(n, g.rainCap)
	if n <= 0 {
		return
	}
	gl.BindVertexArray(g.rainVAO.ID())
	gl.DrawElements(gl.TRIANGLES, int32(n*scene.IndicesPerQuad), gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (g *Geometry) Release() {
	g.imageVAO.Release()
	g.imageVBO.Release()
	g.imageEBO.Release()
	g.rainVAO.Release()
	g.rainVBO.Release()
	g.rainEBO.Release()
}
