package opengl

import (
	gl "github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"rain-engine/scene"
)

// Frame is the per-frame input of the compositor.
type Frame struct {
	ScreenW    int
	ScreenH    int
	Pan        mgl32.Vec2
	Time       float32 // seconds, drives the droplet animation
	ActiveRain int
	Droplets   bool
}

// Compositor issues the draw sequence of one frame:
//
//	picture + rain        → Targets[TargetScene]
//	droplets (optional)   → Targets[TargetDroplet]
//	final target          → window, scaled and panned
type Compositor struct {
	res *Resources
}

func NewCompositor(res *Resources) *Compositor {
	return &Compositor{res: res}
}

// FinalTarget is the target the window pass samples.
func (c *Compositor) FinalTarget(droplets bool) *RenderTarget {
	if droplets {
		return c.res.Targets[TargetDroplet]
	}
	return c.res.Targets[TargetScene]
}

func (c *Compositor) Draw(f Frame) {
	c.drawScene(f.ActiveRain)
	if f.Droplets {
		c.drawDroplets(f.Time)
	}
	c.drawScreen(f)
}

func (c *Compositor) drawScene(activeRain int) {
	res := c.res
	res.Targets[TargetScene].Bind()
	clearTo(scene.ColorTransparent)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.UseProgram(res.Shaders.Texture.ID())
	gl.BindTexture(gl.TEXTURE_2D, res.Image.ID())
	res.Geometry.DrawImage(scene.FullQuadOffset)

	gl.UseProgram(res.Shaders.Rain.ID())
	res.Geometry.DrawRain(activeRain)
}

func (c *Compositor) drawDroplets(time float32) {
	res := c.res
	res.Targets[TargetDroplet].Bind()
	clearTo(scene.ColorTransparent)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, res.Targets[TargetScene].Texture())

	gl.ProgramUniform1f(res.Shaders.Droplet.ID(), DropletTimeLocation, time)
	for _, prog := range c.dropletPrograms() {
		gl.UseProgram(prog)
		res.Geometry.DrawImage(scene.FullQuadOffset)
	}
}

// dropletPrograms lists the programs of the droplet pass in draw order:
// a sharp copy of the scene target, then the distortion on top.
func (c *Compositor) dropletPrograms() []uint32 {
	return []uint32{c.res.Shaders.Texture.ID(), c.res.Shaders.Droplet.ID()}
}

func (c *Compositor) drawScreen(f Frame) {
	res := c.res
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(f.ScreenW), int32(f.ScreenH))
	clearTo(scene.ColorBackdrop)

	scale := scene.ScreenScale(f.ScreenW, f.ScreenH)
	gl.UseProgram(res.Shaders.Screen.ID())
	gl.Uniform2f(ScreenScaleLocation, scale[0], scale[1])
	gl.Uniform2f(ScreenPanLocation, f.Pan[0], f.Pan[1])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, c.FinalTarget(f.Droplets).Texture())
	res.Geometry.DrawImage(scene.CenterQuadOffset)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func clearTo(c scene.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}
