// Package config loads animation settings from YAML or TOML files and turns them into builder options.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine"
	"github.com/Carmen-Shannon/oxy-anim/engine/renderer"
	"github.com/Carmen-Shannon/oxy-anim/engine/window"
	"gopkg.in/yaml.v3"
)

// Config is the file representation of an animation. Zero values keep the animation defaults.
type Config struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`

	// Background and PointColor are hex colors: "#rrggbb", "#rrggbbaa" or "0xrrggbb".
	Background  string  `yaml:"background" toml:"background"`
	PointColor  string  `yaml:"point_color" toml:"point_color"`
	PointRadius float32 `yaml:"point_radius" toml:"point_radius"`

	ScreenshotDirectory string `yaml:"screenshot_directory" toml:"screenshot_directory"`
	OutputVideo         string `yaml:"output_video" toml:"output_video"`
	FrameRate           int    `yaml:"frame_rate" toml:"frame_rate"`

	// Frames stops the animation after this many frames; 0 runs until closed.
	Frames    int  `yaml:"frames" toml:"frames"`
	Profiling bool `yaml:"profiling" toml:"profiling"`

	Window Window `yaml:"window" toml:"window"`
}

// Window configures the display.
type Window struct {
	// Headless renders offscreen without opening a window.
	Headless  bool `yaml:"headless" toml:"headless"`
	Scale     int  `yaml:"scale" toml:"scale"`
	Resizable bool `yaml:"resizable" toml:"resizable"`
	// Uncapped presents without waiting for vertical sync.
	Uncapped bool `yaml:"uncapped" toml:"uncapped"`
	Software bool `yaml:"software" toml:"software"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Title:       "Animation",
		Width:       512,
		Height:      512,
		Background:  "#000000",
		PointColor:  "#ffffff",
		PointRadius: 1,
		FrameRate:   24,
		Window: Window{
			Scale: 1,
		},
	}
}

// Load reads a configuration file on top of Default. The format follows the extension:
// .yaml or .yml for YAML, .toml for TOML.
//
// Parameters:
//   - path: the configuration file
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q: expected .yaml, .yml or .toml", ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks sizes, rates and colors.
func (c Config) Validate() error {
	var errs []error
	if c.Width < 0 || c.Height < 0 {
		errs = append(errs, fmt.Errorf("resolution %dx%d must not be negative", c.Width, c.Height))
	}
	if c.FrameRate < 0 {
		errs = append(errs, fmt.Errorf("frame_rate %d must not be negative", c.FrameRate))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames %d must not be negative", c.Frames))
	}
	if c.PointRadius < 0 {
		errs = append(errs, fmt.Errorf("point_radius %v must not be negative", c.PointRadius))
	}
	for name, s := range map[string]string{"background": c.Background, "point_color": c.PointColor} {
		if s == "" {
			continue
		}
		if _, err := common.ParseHexColor(s); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Options converts the configuration into animation options, including the display from Display.
//
// Returns:
//   - []engine.AnimationBuilderOption: options for engine.NewAnimation
//   - error: error if a color does not parse
func (c Config) Options() ([]engine.AnimationBuilderOption, error) {
	opts := []engine.AnimationBuilderOption{
		engine.WithProfiling(c.Profiling),
	}
	if c.Title != "" {
		opts = append(opts, engine.WithTitle(c.Title))
	}
	if c.Width > 0 && c.Height > 0 {
		opts = append(opts, engine.WithResolution(c.Width, c.Height))
	}
	if c.Background != "" {
		bg, err := common.ParseHexColor(c.Background)
		if err != nil {
			return nil, err
		}
		opts = append(opts, engine.WithBackgroundColor(bg))
	}
	if c.PointColor != "" {
		pc, err := common.ParseHexColor(c.PointColor)
		if err != nil {
			return nil, err
		}
		opts = append(opts, engine.WithPointColor(pc))
	}
	if c.PointRadius > 0 {
		opts = append(opts, engine.WithPointRadius(c.PointRadius))
	}
	if c.ScreenshotDirectory != "" {
		opts = append(opts, engine.WithScreenshotDirectory(c.ScreenshotDirectory))
	}
	if c.OutputVideo != "" {
		opts = append(opts, engine.WithOutputVideo(c.OutputVideo, c.FrameRate))
	}
	opts = append(opts, engine.WithDisplay(c.Display()))
	return opts, nil
}

// Display creates the display described by the window section.
func (c Config) Display() window.Display {
	if c.Window.Headless {
		return window.NewHeadless()
	}

	presentMode := renderer.PresentModeVSync
	if c.Window.Uncapped {
		presentMode = renderer.PresentModeUncapped
	}
	return window.NewWindow(
		window.WithScale(c.Window.Scale),
		window.WithResizable(c.Window.Resizable),
		window.WithRendererOptions(
			renderer.WithPresentMode(presentMode),
			renderer.WithForceSoftwareRenderer(c.Window.Software),
		),
	)
}
