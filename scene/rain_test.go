package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	eps      = 1e-5
	shapeEps = 1e-4
)

// fixedSource replays values in order, wrapping around.
type fixedSource struct {
	vals []float32
	i    int
}

func (s *fixedSource) Float32() float32 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func testRainConfig() RainConfig {
	return RainConfig{
		Capacity:     64,
		Active:       64,
		Speed:        1.0,
		StreakWidth:  0.01,
		StreakHeight: 0.16,
		Tint:         Tint{R: 0.5, G: 0.6, B: 0.7, AlphaTop: 0.1, AlphaBottom: 0.9},
	}
}

func newTestRain(t *testing.T, cfg RainConfig, seed int64) *Rain {
	t.Helper()
	r, err := NewRain(cfg, 1600, 900, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return r
}

func assertShape(t *testing.T, q RainQuad, width, height float32) {
	t.Helper()
	assert.InDelta(t, width, q.Width(), shapeEps, "width")
	assert.InDelta(t, height, q.Height(), shapeEps, "height")
	// axis-aligned rectangle
	assert.InDelta(t, q[cornerTopRight].Pos[1], q[cornerTopLeft].Pos[1], eps)
	assert.InDelta(t, q[cornerBottomRight].Pos[1], q[cornerBottomLeft].Pos[1], eps)
	assert.InDelta(t, q[cornerTopRight].Pos[0], q[cornerBottomRight].Pos[0], eps)
	assert.InDelta(t, q[cornerTopLeft].Pos[0], q[cornerBottomLeft].Pos[0], eps)
}

func TestNewRainQuad(t *testing.T) {
	tint := Tint{R: 1, G: 0.5, B: 0.25, AlphaTop: 0.2, AlphaBottom: 0.8}
	q := NewRainQuad(0.02, 0.16, tint)

	assertShape(t, q, 0.02, 0.16)
	assert.Equal(t, float32(0), q.Top())
	assert.Equal(t, float32(0), q.X())

	for _, c := range []int{cornerTopRight, cornerTopLeft} {
		assert.Equal(t, float32(0.2), q[c].Color[3])
	}
	for _, c := range []int{cornerBottomRight, cornerBottomLeft} {
		assert.Equal(t, float32(0.8), q[c].Color[3])
	}
	for i := range q {
		assert.Equal(t, float32(1), q[i].Color[0])
		assert.Equal(t, float32(0.5), q[i].Color[1])
		assert.Equal(t, float32(0.25), q[i].Color[2])
	}
}

func TestRainQuadMoves(t *testing.T) {
	q := NewRainQuad(0.02, 0.16, DefaultTint())

	q.SetTop(0.5)
	q.SetX(-0.3)
	assert.InDelta(t, 0.5, q.Top(), eps)
	assert.InDelta(t, -0.3, q.X(), eps)
	assertShape(t, q, 0.02, 0.16)

	q.TranslateY(-0.25)
	assert.InDelta(t, 0.25, q.Top(), eps)
	assert.InDelta(t, -0.3, q.X(), eps)
	assertShape(t, q, 0.02, 0.16)
}

func TestNewRainValidation(t *testing.T) {
	src := rand.New(rand.NewSource(1))
	cfg := testRainConfig()

	bad := cfg
	bad.Capacity = 0
	_, err := NewRain(bad, 100, 100, src)
	assert.Error(t, err)

	bad = cfg
	bad.StreakHeight = 0
	_, err = NewRain(bad, 100, 100, src)
	assert.Error(t, err)

	bad = cfg
	bad.StreakWidth = float32(math.NaN())
	_, err = NewRain(bad, 100, 100, src)
	assert.Error(t, err)

	_, err = NewRain(cfg, 0, 100, src)
	assert.Error(t, err)

	_, err = NewRain(cfg, 100, 100, nil)
	assert.Error(t, err)
}

func TestNewRainPlacement(t *testing.T) {
	cfg := testRainConfig()
	r := newTestRain(t, cfg, 7)

	require.Equal(t, cfg.Capacity, r.Capacity())
	require.Len(t, r.Indices(), 6*cfg.Capacity)

	width := cfg.StreakWidth * 900 / 1600
	for i, q := range r.Quads() {
		assert.GreaterOrEqual(t, q.Top(), float32(-1), "quad %d", i)
		assert.Less(t, q.Top(), float32(1), "quad %d", i)
		assert.GreaterOrEqual(t, q.X(), float32(-1), "quad %d", i)
		assert.Less(t, q.X(), float32(1), "quad %d", i)
		assertShape(t, q, width, cfg.StreakHeight)
	}
}

func TestRainSpeedScenario(t *testing.T) {
	cfg := testRainConfig()
	cfg.Speed = 2.0
	r := newTestRain(t, cfg, 1)

	q := &r.quads[0]
	q.SetTop(0.0)
	r.Update(0.5)
	got := r.Quad(0)
	assert.InDelta(t, -1.0, got.Top(), eps)
}

func TestRainRecycle(t *testing.T) {
	cfg := testRainConfig()
	cfg.Capacity = 1
	cfg.Active = 1
	r, err := NewRain(cfg, 100, 100, &fixedSource{vals: []float32{0.5}})
	require.NoError(t, err)

	// y draw: U(-1,1) = 0.5*2-1 = 0 -> top = 1 + (0+1) + height
	// x draw: U(-1,1) = 0.5*2-1 = 0
	r.src = &fixedSource{vals: []float32{0.5, 0.75}}
	r.quads[0].SetTop(-1.0)
	r.Update(0.016)

	q := r.Quad(0)
	assert.InDelta(t, 2.0+cfg.StreakHeight, q.Top(), eps)
	assert.InDelta(t, 0.5, q.X(), eps)
	assertShape(t, q, cfg.StreakWidth, cfg.StreakHeight)
}

func TestRainRecyclingInvariant(t *testing.T) {
	cfg := testRainConfig()
	cfg.Speed = 3.0
	r := newTestRain(t, cfg, 42)
	width := cfg.StreakWidth * 900 / 1600

	for frame := 0; frame < 500; frame++ {
		before := make([]RainQuad, r.Active())
		copy(before, r.ActiveQuads())

		r.Update(1.0 / 30)

		for i, q := range r.ActiveQuads() {
			assertShape(t, q, width, cfg.StreakHeight)
			if before[i].Top() <= -1.0 {
				// recycled: above the view by at most 2 + height
				assert.Greater(t, q.Top(), float32(1)+cfg.StreakHeight-eps, "frame %d quad %d", frame, i)
				assert.LessOrEqual(t, q.Top(), float32(3)+cfg.StreakHeight+eps, "frame %d quad %d", frame, i)
				assert.GreaterOrEqual(t, q.X(), float32(-1))
				assert.LessOrEqual(t, q.X(), float32(1))
			} else {
				assert.InDelta(t, before[i].Top()-cfg.Speed/30, q.Top(), eps, "frame %d quad %d", frame, i)
				assert.Equal(t, before[i].X(), q.X())
			}
			// colours never change
			for c := range q {
				assert.Equal(t, before[i][c].Color, q[c].Color)
			}
		}
	}
}

func TestRainActiveCountBound(t *testing.T) {
	cfg := testRainConfig()
	cfg.Active = 10
	r := newTestRain(t, cfg, 3)

	inactive := make([]RainQuad, r.Capacity()-10)
	copy(inactive, r.Quads()[10:])

	for i := 0; i < 100; i++ {
		r.Update(0.05)
	}

	assert.Len(t, r.ActiveQuads(), 10)
	assert.Equal(t, inactive, r.Quads()[10:])
}

func TestRainSetActive(t *testing.T) {
	r := newTestRain(t, testRainConfig(), 1)

	tests := []struct {
		in, want int
	}{
		{0, 0},
		{10, 10},
		{64, 64},
		{65, 64},
		{-3, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.SetActive(tt.in))
		assert.Equal(t, tt.want, r.Active())
		assert.Len(t, r.ActiveQuads(), tt.want)
	}
}

func TestRainSetSpeed(t *testing.T) {
	r := newTestRain(t, testRainConfig(), 1)
	require.Equal(t, float32(1.0), r.Speed())

	assert.Equal(t, float32(2.5), r.SetSpeed(2.5))
	assert.Equal(t, float32(2.5), r.SetSpeed(0))
	assert.Equal(t, float32(2.5), r.SetSpeed(-1))
	assert.Equal(t, float32(2.5), r.SetSpeed(float32(math.NaN())))
	assert.Equal(t, float32(2.5), r.Speed())

	before := r.Quad(0)
	top := before.Top()
	r.Update(0.1)
	if top > -1 {
		after := r.Quad(0)
		assert.InDelta(t, top-0.25, after.Top(), eps)
	}
}

func TestRainDeterministic(t *testing.T) {
	cfg := testRainConfig()
	a := newTestRain(t, cfg, 99)
	b := newTestRain(t, cfg, 99)
	for i := 0; i < 200; i++ {
		a.Update(0.1)
		b.Update(0.1)
	}
	assert.Equal(t, a.Quads(), b.Quads())
}
