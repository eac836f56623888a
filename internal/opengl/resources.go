package opengl

import (
	"fmt"

	"rain-engine/scene"
)

// Render target slots. The scene pass always writes Targets[TargetScene];
// the droplet pass reads it and writes Targets[TargetDroplet].
const (
	TargetScene = iota
	TargetDroplet
)

// Resources owns every GPU object of the program. It is built all at once
// by NewResources and released all at once by Destroy.
type Resources struct {
	Image    *Texture
	Shaders  *ShaderSet
	Geometry *Geometry
	Targets  [2]*RenderTarget
}

// buildSteps are the constructors NewResources runs, in order.
type buildSteps struct {
	texture  func(img *scene.Image) (*Texture, error)
	shaders  func(c ProgramCompiler) (*ShaderSet, error)
	geometry func(width, height int, rain []scene.RainQuad, rainIndices []uint32) (*Geometry, error)
	target   func(width, height int) (*RenderTarget, error)
}

var glSteps = buildSteps{
	texture:  UploadImage,
	shaders:  NewShaderSet,
	geometry: NewGeometry,
	target:   NewRenderTarget,
}

// NewResources uploads img, compiles the programs, uploads the rain and
// image geometry and creates both render targets at the picture's size.
// If any step fails everything created so far is released.
func NewResources(img *scene.Image, rain *scene.Rain, compiler ProgramCompiler) (*Resources, error) {
	return glSteps.build(img, rain, compiler)
}

func (s buildSteps) build(img *scene.Image, rain *scene.Rain, compiler ProgramCompiler) (res *Resources, err error) {
	r := &Resources{}
	defer func() {
		if err != nil {
			r.Destroy()
		}
	}()

	if r.Image, err = s.texture(img); err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	if r.Shaders, err = s.shaders(compiler); err != nil {
		return nil, fmt.Errorf("shaders: %w", err)
	}
	if r.Geometry, err = s.geometry(img.Width(), img.Height(), rain.Quads(), rain.Indices()); err != nil {
		return nil, fmt.Errorf("buffers: %w", err)
	}
	for i := range r.Targets {
		if r.Targets[i], err = s.target(img.Width(), img.Height()); err != nil {
			return nil, fmt.Errorf("render target %d: %w", i, err)
		}
	}
	return r, nil
}

// Destroy releases buffers, then programs, then the picture, then the
// render targets. Members that were never created are skipped.
func (r *Resources) Destroy() {
	if r.Geometry != nil {
		r.Geometry.Release()
		r.Geometry = nil
	}
	if r.Shaders != nil {
		r.Shaders.Release()
		r.Shaders = nil
	}
	if r.Image != nil {
		r.Image.Release()
		r.Image = nil
	}
	for i, rt := range r.Targets {
		if rt != nil {
			rt.Release()
			r.Targets[i] = nil
		}
	}
}
