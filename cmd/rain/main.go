package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"rain-engine/core"
	"rain-engine/internal/config"
	"rain-engine/internal/opengl"
	"rain-engine/renderer"
	"rain-engine/scene"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	level := new(slog.LevelVar)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		slog.Error("invalid arguments", "err", err)
		return -1
	}
	if cfg.Verbose {
		level.Set(slog.LevelDebug)
	}
	slog.Info("starting",
		"picture", cfg.Picture,
		"count", cfg.RainCount,
		"speed", cfg.Speed,
		"color", cfg.Color.String(),
		"droplets", cfg.Droplets)

	windowConfig := core.DefaultWindowConfig()
	windowConfig.Width = cfg.Window.Width
	windowConfig.Height = cfg.Window.Height
	windowConfig.Title = cfg.Window.Title
	windowConfig.VSync = cfg.Window.VSync

	window, err := core.NewWindow(windowConfig)
	if err != nil {
		slog.Error("failed to create window", "err", err)
		return -1
	}
	defer window.Destroy()

	if err := opengl.Init(); err != nil {
		slog.Error("failed to initialize OpenGL", "err", err)
		return -1
	}

	engine, err := renderer.NewEngine(window, cfg)
	if err != nil {
		slog.Error("failed to create render engine", "err", err)
		return -1
	}
	defer engine.Destroy()

	printControls()

	updateTitle := func() {
		window.SetTitle(cfg.Window.Title + " | " + engine.Status())
	}
	updateTitle()

	captureRequested := false
	window.SetKeyCallback(func(key int) {
		switch key {
		case core.KeyEscape, core.KeyQ:
			window.SetShouldClose(true)
		case core.KeyF12, core.KeyP:
			captureRequested = true
		case core.KeyD:
			engine.ToggleDroplets()
		case core.KeyR:
			engine.ResetPan()
		case core.KeyUp:
			engine.SetRainCount(engine.RainCount() + renderer.RainCountStep)
		case core.KeyDown:
			engine.SetRainCount(engine.RainCount() - renderer.RainCountStep)
		case core.KeyRight:
			engine.SetSpeed(engine.Speed() * renderer.SpeedStepFactor)
		case core.KeyLeft:
			engine.SetSpeed(engine.Speed() / renderer.SpeedStepFactor)
		default:
			return
		}
		slog.Debug("state", "status", engine.Status())
		updateTitle()
	})

	clock := scene.NewClock()
	for !window.ShouldClose() {
		window.PollEvents()

		dt := clock.Tick()
		engine.Update(dt)
		engine.Render(clock.Elapsed())

		if captureRequested {
			captureRequested = false
			if err := engine.Capture(cfg.Screenshot); err != nil {
				slog.Error("capture failed", "err", err)
			}
		}

		window.SwapBuffers()
	}
	return 0
}

func printControls() {
	slog.Info("controls",
		"drag", "left mouse button pans the picture",
		"R", "reset pan",
		"D", "toggle droplets",
		"Up/Down", "more/less rain",
		"Left/Right", "slower/faster rain",
		"F12/P", "save screenshot",
		"Esc/Q", "quit")
}
