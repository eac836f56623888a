package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rain-engine/internal/capture"
)

var (
	_ capture.PixelReader = WindowReader{}
	_ capture.PixelReader = TargetReader{}
)

func testCompositor() (*Compositor, *Resources) {
	res := &Resources{
		Shaders: &ShaderSet{
			Texture: NewHandle(1, nil),
			Rain:    NewHandle(2, nil),
			Screen:  NewHandle(3, nil),
			Droplet: NewHandle(4, nil),
		},
		Targets: [2]*RenderTarget{{Width: 4, Height: 2}, {Width: 4, Height: 2}},
	}
	return NewCompositor(res), res
}

func TestFinalTarget(t *testing.T) {
	c, res := testCompositor()
	assert.Same(t, res.Targets[TargetDroplet], c.FinalTarget(true))
	assert.Same(t, res.Targets[TargetScene], c.FinalTarget(false))
}

func TestDropletProgramsOrder(t *testing.T) {
	c, _ := testCompositor()
	assert.Equal(t, []uint32{1, 4}, c.dropletPrograms(), "scene copy first, distortion last")
}
