// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Shaders ShaderConfig  `yaml:"shaders"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Samples    int    `yaml:"samples"` // MSAA samples, 0 disables
}

// MeshConfig holds the geometry file location.
type MeshConfig struct {
	Path string `yaml:"path"`
}

// ShaderConfig holds shader source paths.
// Empty paths use the built-in shaders.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// RenderConfig holds per-frame rendering settings.
type RenderConfig struct {
	Wireframe            bool       `yaml:"wireframe"`
	ClearColor           [4]float32 `yaml:"clear_color"`
	SpinDegreesPerSecond float32    `yaml:"spin_degrees_per_second"`
	ScreenshotDir        string     `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Config validation errors.
var (
	ErrInvalidWindowSize = errors.New("window size must be positive")
	ErrInvalidSamples    = errors.New("sample count must not be negative")
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "meshview",
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
			Samples:    4,
		},
		Mesh: MeshConfig{
			Path: "data/objs/cube_tris.obj",
		},
		Render: RenderConfig{
			Wireframe:            true,
			ClearColor:           [4]float32{0.2, 0.3, 0.3, 1.0},
			SpinDegreesPerSecond: 15,
			ScreenshotDir:        "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that would break window or context creation.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidWindowSize, c.Window.Width, c.Window.Height)
	}
	if c.Window.Samples < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSamples, c.Window.Samples)
	}
	return nil
}
