package renderer

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"rain-engine/core"
	"rain-engine/internal/capture"
	"rain-engine/internal/config"
	"rain-engine/internal/opengl"
	"rain-engine/scene"
)

// Steps applied by one key press.
const (
	RainCountStep   = 64
	SpeedStepFactor = float32(1.25)
)

// Engine is the high-level renderer: it owns the rain simulation, the GPU
// resources and the pan state of one window.
type Engine struct {
	window     *core.Window
	rain       *scene.Rain
	res        *opengl.Resources
	compositor *opengl.Compositor
	pan        scene.Pan
	droplets   bool
}

// NewEngine loads the picture named by cfg and builds everything the frame
// needs. The window's GL context must be current and opengl.Init called.
func NewEngine(window *core.Window, cfg config.Config) (*Engine, error) {
	picture, err := scene.LoadImage(cfg.Picture)
	if err != nil {
		return nil, err
	}
	slog.Info("picture loaded", "path", cfg.Picture, "width", picture.Width(), "height", picture.Height())

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	slog.Debug("rain seed", "seed", seed)

	rain, err := scene.NewRain(cfg.RainConfig(), picture.Width(), picture.Height(), rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("rain: %w", err)
	}

	res, err := opengl.NewResources(picture, rain, opengl.GLCompiler{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GPU resources: %w", err)
	}

	return &Engine{
		window:     window,
		rain:       rain,
		res:        res,
		compositor: opengl.NewCompositor(res),
		droplets:   cfg.Droplets,
	}, nil
}

// Update advances the rain by dt seconds and uploads the active streaks.
func (e *Engine) Update(dt float32) {
	e.rain.Update(dt)
	e.res.Geometry.UploadRain(e.rain.ActiveQuads())
}

// Render draws one frame into the window's back buffer. elapsed drives the
// droplet animation. A held left mouse button drags the picture.
func (e *Engine) Render(elapsed float32) {
	w, h := e.window.GetFramebufferSize()
	x, y := e.window.GetCursorPos()
	pan := e.pan.Update(e.window.IsMouseButtonPressed(core.MouseButtonLeft), x, y, w, h)

	e.compositor.Draw(opengl.Frame{
		ScreenW:    w,
		ScreenH:    h,
		Pan:        pan,
		Time:       elapsed,
		ActiveRain: e.rain.Active(),
		Droplets:   e.droplets,
	})
}

// Capture saves the back buffer to filename. Call it after Render and
// before the buffers are swapped.
func (e *Engine) Capture(filename string) error {
	w, h := e.window.GetFramebufferSize()
	if err := capture.Screenshot(opengl.WindowReader{}, w, h, filename); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	slog.Info("screenshot saved", "path", filename, "width", w, "height", h)
	return nil
}

// CaptureFrame saves the last composited frame at the picture's size. It
// reads the off-screen target, so it works for hidden windows too.
func (e *Engine) CaptureFrame(filename string) error {
	rt := e.compositor.FinalTarget(e.droplets)
	w, h := int(rt.Width), int(rt.Height)
	if err := capture.Screenshot(opengl.TargetReader{Target: rt}, w, h, filename); err != nil {
		return fmt.Errorf("frame capture: %w", err)
	}
	slog.Info("frame saved", "path", filename, "width", w, "height", h)
	return nil
}

func (e *Engine) ToggleDroplets() bool {
	e.droplets = !e.droplets
	return e.droplets
}

func (e *Engine) ResetPan() { e.pan.Reset() }

// SetRainCount changes how many streaks fall, clamped to the buffer
// capacity, and returns the count applied.
func (e *Engine) SetRainCount(n int) int {
	return e.rain.SetActive(n)
}

func (e *Engine) RainCount() int { return e.rain.Active() }

// SetSpeed changes the fall speed; non-positive values are ignored. It
// returns the speed in effect.
func (e *Engine) SetSpeed(speed float32) float32 {
	return e.rain.SetSpeed(speed)
}

func (e *Engine) Speed() float32 { return e.rain.Speed() }

// Status is a one-line summary for the window title.
func (e *Engine) Status() string {
	return fmt.Sprintf("%d drops | speed %.2f | droplets %s",
		e.rain.Active(), e.rain.Speed(), onOff(e.droplets))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Destroy releases all GPU resources. The engine must not be used after.
func (e *Engine) Destroy() {
	if e.res != nil {
		e.res.Destroy()
		e.res = nil
	}
}
