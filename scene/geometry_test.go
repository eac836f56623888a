package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageQuads(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		half float32
	}{
		{"square", 512, 512, 0.5},
		{"wide", 1920, 1080, 0.5 * 1920.0 / 1080.0},
		{"tall", 600, 1200, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verts, idx := ImageQuads(tt.w, tt.h)
			require.Len(t, verts, 8)
			require.Equal(t, []uint32{0, 1, 3, 1, 2, 3, 4, 5, 7, 5, 6, 7}, idx)

			for _, v := range verts[:4] {
				assert.Equal(t, float32(1), abs(v.Pos[0]))
				assert.Equal(t, float32(1), abs(v.Pos[1]))
			}
			for _, v := range verts[4:] {
				assert.InDelta(t, tt.half, abs(v.Pos[0]), 1e-6)
				assert.Equal(t, float32(0.5), abs(v.Pos[1]))
			}
			// UVs cover the full image on both quads
			for i := 0; i < 4; i++ {
				assert.Equal(t, verts[i].UV, verts[i+4].UV)
			}
		})
	}
}

func TestQuadIndices(t *testing.T) {
	assert.Nil(t, QuadIndices(0))

	idx := QuadIndices(3)
	require.Len(t, idx, 18)
	for q := 0; q < 3; q++ {
		base := uint32(4 * q)
		assert.Equal(t, []uint32{base, base + 1, base + 3, base + 1, base + 2, base + 3}, idx[6*q:6*q+6])
	}
}

func TestScreenScale(t *testing.T) {
	assert.Equal(t, mgl32.Vec2{0.75, 1}, ScreenScale(800, 600))
	assert.Equal(t, mgl32.Vec2{1, 1}, ScreenScale(0, 600))
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
