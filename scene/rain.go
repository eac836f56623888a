package scene

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Source supplies uniform random numbers in [0,1). *math/rand.Rand
// satisfies it, so a seeded generator makes the simulation reproducible.
type Source interface {
	Float32() float32
}

// uniform draws from [lo, hi).
func uniform(src Source, lo, hi float32) float32 {
	return lo + src.Float32()*(hi-lo)
}

// Corner order of a RainQuad. The top-right corner is the reference vertex
// whose position stands for the whole streak.
const (
	cornerTopRight = iota
	cornerBottomRight
	cornerBottomLeft
	cornerTopLeft
)

// RainQuad is one rain streak: an axis-aligned rectangle of 4 vertices.
// The top corners share AlphaTop, the bottom corners share AlphaBottom.
type RainQuad [VerticesPerQuad]RainVertex

// NewRainQuad returns a width x height streak with its top-right corner at
// the origin.
func NewRainQuad(width, height float32, tint Tint) RainQuad {
	top, bottom := tint.top(), tint.bottom()
	return RainQuad{
		cornerTopRight:    {Pos: mgl32.Vec2{0, 0}, Color: top},
		cornerBottomRight: {Pos: mgl32.Vec2{0, -height}, Color: bottom},
		cornerBottomLeft:  {Pos: mgl32.Vec2{-width, -height}, Color: bottom},
		cornerTopLeft:     {Pos: mgl32.Vec2{-width, 0}, Color: top},
	}
}

// Top is the y coordinate of the streak's top edge.
func (q *RainQuad) Top() float32 { return q[cornerTopRight].Pos[1] }

// X is the x coordinate of the streak's right edge.
func (q *RainQuad) X() float32 { return q[cornerTopRight].Pos[0] }

func (q *RainQuad) Width() float32 {
	return math32.Abs(q[cornerTopRight].Pos[0] - q[cornerTopLeft].Pos[0])
}

func (q *RainQuad) Height() float32 {
	return math32.Abs(q[cornerTopRight].Pos[1] - q[cornerBottomRight].Pos[1])
}

// SetTop moves the streak vertically so its top edge sits at y.
func (q *RainQuad) SetTop(y float32) {
	h := q.Height()
	q[cornerTopRight].Pos[1] = y
	q[cornerTopLeft].Pos[1] = y
	q[cornerBottomRight].Pos[1] = y - h
	q[cornerBottomLeft].Pos[1] = y - h
}

// SetX moves the streak horizontally so its right edge sits at x.
func (q *RainQuad) SetX(x float32) {
	w := q.Width()
	q[cornerTopRight].Pos[0] = x
	q[cornerBottomRight].Pos[0] = x
	q[cornerTopLeft].Pos[0] = x - w
	q[cornerBottomLeft].Pos[0] = x - w
}

func (q *RainQuad) TranslateY(dy float32) {
	for i := range q {
		q[i].Pos[1] += dy
	}
}

// RainConfig describes the particle buffer. Capacity is fixed for the
// lifetime of a Rain; Active may change at runtime.
type RainConfig struct {
	Capacity     int
	Active       int
	Speed        float32
	StreakWidth  float32
	StreakHeight float32
	Tint         Tint
}

// Rain simulates falling streaks in normalized device coordinates. Only the
// first Active quads are updated and drawn; the rest of the buffer is left
// untouched.
type Rain struct {
	quads   []RainQuad
	indices []uint32
	active  int
	speed   float32
	src     Source
}

// NewRain scatters Capacity streaks over the view. The streak width is
// scaled by imgHeight/imgWidth so streaks stay thin once the target is
// stretched to the picture's aspect ratio.
func NewRain(cfg RainConfig, imgWidth, imgHeight int, src Source) (*Rain, error) {
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("rain capacity must be positive, got %d", cfg.Capacity)
	}
	if imgWidth <= 0 || imgHeight <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", imgWidth, imgHeight)
	}
	if !(cfg.StreakWidth > 0) || !(cfg.StreakHeight > 0) {
		return nil, fmt.Errorf("invalid streak size %gx%g", cfg.StreakWidth, cfg.StreakHeight)
	}
	if src == nil {
		return nil, errors.New("nil random source")
	}

	width := cfg.StreakWidth * float32(imgHeight) / float32(imgWidth)
	r := &Rain{
		quads:   make([]RainQuad, cfg.Capacity),
		indices: QuadIndices(cfg.Capacity),
		speed:   cfg.Speed,
		src:     src,
	}
	for i := range r.quads {
		q := NewRainQuad(width, cfg.StreakHeight, cfg.Tint)
		q.SetTop(uniform(src, -1, 1))
		q.SetX(uniform(src, -1, 1))
		r.quads[i] = q
	}
	r.SetActive(cfg.Active)
	return r, nil
}

// Update advances every active streak by dt seconds. A streak whose top
// edge has reached the bottom of the view is respawned above the top at a
// random height so respawns don't line up.
func (r *Rain) Update(dt float32) {
	for i := range r.quads[:r.active] {
		q := &r.quads[i]
		if q.Top() <= -1.0 {
			r.recycle(q)
			continue
		}
		q.TranslateY(-r.speed * dt)
	}
}

func (r *Rain) recycle(q *RainQuad) {
	q.SetTop(1.0 + (uniform(r.src, -1, 1) + 1.0) + q.Height())
	q.SetX(uniform(r.src, -1, 1))
}

// SetActive clamps n to [0, Capacity] and returns the value applied.
func (r *Rain) SetActive(n int) int {
	r.active = max(0, min(n, len(r.quads)))
	return r.active
}

// SetSpeed changes the fall speed and returns the speed in effect. Values
// that are not positive (NaN included) are ignored.
func (r *Rain) SetSpeed(speed float32) float32 {
	if speed > 0 {
		r.speed = speed
	}
	return r.speed
}

func (r *Rain) Speed() float32 { return r.speed }
func (r *Rain) Active() int    { return r.active }
func (r *Rain) Capacity() int  { return len(r.quads) }

// Quad returns a copy of the i-th streak.
func (r *Rain) Quad(i int) RainQuad { return r.quads[i] }

// Quads exposes the whole buffer, including inactive streaks.
func (r *Rain) Quads() []RainQuad { return r.quads }

// ActiveQuads is the prefix that is simulated and uploaded each frame.
func (r *Rain) ActiveQuads() []RainQuad { return r.quads[:r.active] }

// Indices covers the whole capacity; draw calls use the first 6*Active.
func (r *Rain) Indices() []uint32 { return r.indices }
