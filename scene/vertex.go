package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorBackdrop    = Color{0.1, 0.1, 0.1, 1}
)

// TextureVertex is a position + UV vertex used by the static image quads.
// Layout matches attribute locations 0 (in_pos) and 1 (in_uv).
type TextureVertex struct {
	Pos mgl32.Vec2
	UV  mgl32.Vec2
}

// RainVertex is a position + RGBA vertex of one rain streak corner.
// Layout matches attribute locations 0 (in_pos) and 1 (in_color).
type RainVertex struct {
	Pos   mgl32.Vec2
	Color mgl32.Vec4
}

const (
	// VerticesPerQuad and IndicesPerQuad describe the atomic drawable unit:
	// two triangles sharing a diagonal.
	VerticesPerQuad = 4
	IndicesPerQuad  = 6
)

// QuadPattern is the index pattern of one quad relative to its first vertex.
var QuadPattern = [IndicesPerQuad]uint32{0, 1, 3, 1, 2, 3}
