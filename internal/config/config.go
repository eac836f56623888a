// Package config resolves the program's settings from built-in defaults,
// an optional TOML file and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"

	"rain-engine/scene"
)

// MaxRainCount is the number of rain quads allocated on the GPU. The
// active count can move freely below it.
const MaxRainCount = 4096

const (
	DefaultPicture    = "assets/default.png"
	DefaultScreenshot = "screenshot.png"
)

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type Config struct {
	Picture      string     `toml:"picture"`
	RainCount    int        `toml:"rain_count"`
	Speed        float32    `toml:"speed"`
	Color        scene.Tint `toml:"color"`
	StreakWidth  float32    `toml:"streak_width"`
	StreakHeight float32    `toml:"streak_height"`
	Droplets     bool       `toml:"droplets"`
	Screenshot   string     `toml:"screenshot"`
	Seed         int64      `toml:"seed"` // 0 seeds from the clock
	Verbose      bool       `toml:"verbose"`
	Window       Window     `toml:"window"`
}

func Default() Config {
	return Config{
		Picture:      DefaultPicture,
		RainCount:    256,
		Speed:        1.0,
		Color:        scene.DefaultTint(),
		StreakWidth:  0.01,
		StreakHeight: 0.16,
		Droplets:     true,
		Screenshot:   DefaultScreenshot,
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "Rain",
			VSync:  true,
		},
	}
}

// Load reads a TOML file over the defaults. Keys the file leaves out keep
// their default value; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("config %s: %s", path, strict.String())
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate brings out-of-range values back into range, logging a warning
// for each, and rejects values that have no sensible fallback.
func (c *Config) Validate() error {
	switch {
	case c.RainCount > MaxRainCount:
		slog.Warn("rain count exceeds capacity", "requested", c.RainCount, "max", MaxRainCount)
		c.RainCount = MaxRainCount
	case c.RainCount < 0:
		slog.Warn("rain count cannot be negative", "requested", c.RainCount)
		c.RainCount = 0
	}
	if !(c.Speed > 0) {
		slog.Warn("speed must be greater than 0", "requested", c.Speed, "using", 1.0)
		c.Speed = 1.0
	}
	if !(c.StreakWidth > 0) || !(c.StreakHeight > 0) {
		return fmt.Errorf("streak size must be positive, got %gx%g", c.StreakWidth, c.StreakHeight)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Picture == "" {
		return errors.New("no picture given")
	}
	return nil
}

// Parse resolves the configuration for the command line args (without the
// program name). The last positional argument is the picture. Flags win
// over the file named by --config, which wins over the defaults.
func Parse(args []string) (Config, error) {
	fs := pflag.NewFlagSet("rain", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rain [flags] [picture]\n\n%s", fs.FlagUsages())
	}

	var configPath string
	f := Default()
	fs.StringVar(&configPath, "config", "", "TOML file with settings; flags override it")
	fs.IntVarP(&f.RainCount, "count", "n", f.RainCount, fmt.Sprintf("number of rain streaks (max %d)", MaxRainCount))
	fs.Float32VarP(&f.Speed, "speed", "s", f.Speed, "fall speed in viewport heights per second")
	fs.VarP(&f.Color, "color", "c", "rain colour and edge alphas")
	fs.BoolVar(&f.Droplets, "droplets", f.Droplets, "run the droplet distortion pass")
	fs.StringVar(&f.Screenshot, "screenshot", f.Screenshot, "file written by the capture key (png, jpg, bmp, tif)")
	fs.Int64Var(&f.Seed, "seed", f.Seed, "random seed, 0 for time based")
	fs.IntVar(&f.Window.Width, "width", f.Window.Width, "initial window width")
	fs.IntVar(&f.Window.Height, "height", f.Window.Height, "initial window height")
	fs.BoolVar(&f.Window.VSync, "vsync", f.Window.VSync, "wait for vertical sync")
	fs.BoolVarP(&f.Verbose, "verbose", "v", f.Verbose, "debug logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if configPath != "" {
		var err error
		if cfg, err = Load(configPath); err != nil {
			return Config{}, err
		}
	}
	if n := fs.NArg(); n > 0 {
		cfg.Picture = fs.Arg(n - 1)
	}

	fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "count":
			cfg.RainCount = f.RainCount
		case "speed":
			cfg.Speed = f.Speed
		case "color":
			cfg.Color = f.Color
		case "droplets":
			cfg.Droplets = f.Droplets
		case "screenshot":
			cfg.Screenshot = f.Screenshot
		case "seed":
			cfg.Seed = f.Seed
		case "width":
			cfg.Window.Width = f.Window.Width
		case "height":
			cfg.Window.Height = f.Window.Height
		case "vsync":
			cfg.Window.VSync = f.Window.VSync
		case "verbose":
			cfg.Verbose = f.Verbose
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RainConfig is the simulator configuration for c.
func (c Config) RainConfig() scene.RainConfig {
	return scene.RainConfig{
		Capacity:     MaxRainCount,
		Active:       c.RainCount,
		Speed:        c.Speed,
		StreakWidth:  c.StreakWidth,
		StreakHeight: c.StreakHeight,
		Tint:         c.Color,
	}
}
