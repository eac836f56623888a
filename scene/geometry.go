package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Index offsets into the static image quad element buffer.
const (
	FullQuadOffset   = 0
	CenterQuadOffset = IndicesPerQuad
	QuadIndexCount   = IndicesPerQuad
)

// ImageQuads builds the two static quads used to blit pictures: a quad
// covering the whole viewport and a centred quad whose half-width is
// 0.5*width/height so a unit-height viewport shows the picture undistorted.
func ImageQuads(width, height int) ([]TextureVertex, []uint32) {
	half := float32(0.5)
	if height > 0 {
		half = 0.5 * float32(width) / float32(height)
	}

	vertices := []TextureVertex{
		// whole viewport
		{Pos: mgl32.Vec2{1, 1}, UV: mgl32.Vec2{1, 1}},
		{Pos: mgl32.Vec2{1, -1}, UV: mgl32.Vec2{1, 0}},
		{Pos: mgl32.Vec2{-1, -1}, UV: mgl32.Vec2{0, 0}},
		{Pos: mgl32.Vec2{-1, 1}, UV: mgl32.Vec2{0, 1}},

		// centre of viewport
		{Pos: mgl32.Vec2{half, 0.5}, UV: mgl32.Vec2{1, 1}},
		{Pos: mgl32.Vec2{half, -0.5}, UV: mgl32.Vec2{1, 0}},
		{Pos: mgl32.Vec2{-half, -0.5}, UV: mgl32.Vec2{0, 0}},
		{Pos: mgl32.Vec2{-half, 0.5}, UV: mgl32.Vec2{0, 1}},
	}
	return vertices, QuadIndices(2)
}

// QuadIndices returns 6*n indices, two triangles per quad of 4 vertices.
func QuadIndices(n int) []uint32 {
	if n <= 0 {
		return nil
	}
	indices := make([]uint32, 0, n*IndicesPerQuad)
	for i := 0; i < n; i++ {
		base := uint32(i * VerticesPerQuad)
		for _, idx := range QuadPattern {
			indices = append(indices, base+idx)
		}
	}
	return indices
}

// ScreenScale returns the screen program's scale uniform: x is squeezed by
// height/width so the centred quad keeps the picture's aspect ratio.
func ScreenScale(width, height int) mgl32.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{1, 1}
	}
	return mgl32.Vec2{float32(height) / float32(width), 1}
}
