// Package config loads the runtime configuration of the SDF renderer from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-sdf/common"
	"github.com/Carmen-Shannon/oxy-sdf/engine/frame"
	"github.com/Carmen-Shannon/oxy-sdf/engine/noise"
	"gopkg.in/yaml.v3"
)

// Present mode names accepted in the renderer section.
const (
	PresentModeVSync    = "vsync"
	PresentModeUncapped = "uncapped"
)

// Config is the complete runtime configuration.
type Config struct {
	Window       WindowConfig       `yaml:"window"`
	Renderer     RendererConfig     `yaml:"renderer"`
	Capabilities CapabilitiesConfig `yaml:"capabilities"`
	Noise        NoiseConfig        `yaml:"noise"`
	Frame        FrameConfig        `yaml:"frame"`
	// Profiling logs per-second frame statistics at debug level.
	Profiling bool `yaml:"profiling"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// WindowConfig configures the platform window.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
}

// RendererConfig configures the GPU backend.
type RendererConfig struct {
	// PresentMode is "vsync" or "uncapped".
	PresentMode string `yaml:"present_mode"`
	// MSAA is the sample count, 1 or 4.
	MSAA uint32 `yaml:"msaa"`
	// ForceSoftware requests the fallback (CPU) adapter.
	ForceSoftware bool `yaml:"force_software"`
}

// CapabilitiesConfig selects the rendering stages.
type CapabilitiesConfig struct {
	Uniforms     bool `yaml:"uniforms"`
	NoiseTexture bool `yaml:"noise_texture"`
}

// NoiseConfig configures the noise field generated at startup.
type NoiseConfig struct {
	// Size is the edge length of the square field in texels.
	Size int `yaml:"size"`
	// Workers above 1 generates rows on a worker pool.
	Workers int `yaml:"workers"`
}

// FrameConfig configures the frame loop.
type FrameConfig struct {
	// Limit caps the frame rate in frames per second, 0 is uncapped.
	Limit float64 `yaml:"limit"`
	// ExitKey is the key name that stops the loop.
	ExitKey string `yaml:"exit_key"`
	// ClearColour is the RGBA colour the render target is cleared to every frame.
	ClearColour [4]float64 `yaml:"clear_colour"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "SDF",
			Width:     int(frame.DefaultWidth),
			Height:    int(frame.DefaultHeight),
			Resizable: true,
		},
		Renderer: RendererConfig{
			PresentMode: PresentModeVSync,
			MSAA:        1,
		},
		Capabilities: CapabilitiesConfig{
			Uniforms:     true,
			NoiseTexture: true,
		},
		Noise: NoiseConfig{
			Size:    noise.DefaultFieldSize,
			Workers: 1,
		},
		Frame: FrameConfig{
			ExitKey:     common.KeyEsc.String(),
			ClearColour: [4]float64{0, 0, 0, 1},
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults and validates the result.
// An empty path returns the defaults.
//
// Parameters:
//   - path: the YAML file to read, or ""
//
// Returns:
//   - Config: the loaded configuration
//   - error: error if the file cannot be read, has unknown fields, or fails validation
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown fields are rejected.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the parsed configuration
//   - error: error if decoding or validation fails
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem with the configuration.
//
// Returns:
//   - error: the joined validation errors, or nil
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	switch strings.ToLower(c.Renderer.PresentMode) {
	case PresentModeVSync, PresentModeUncapped:
	default:
		errs = append(errs, fmt.Errorf("unknown present mode %q", c.Renderer.PresentMode))
	}
	if c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4 {
		errs = append(errs, fmt.Errorf("msaa must be 1 or 4, got %d", c.Renderer.MSAA))
	}
	if err := c.Caps().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Capabilities.NoiseTexture && (c.Noise.Size <= 0 || c.Noise.Size > noise.MaxFieldSize) {
		errs = append(errs, fmt.Errorf("noise size %d must be in 1..%d", c.Noise.Size, noise.MaxFieldSize))
	}
	if c.Noise.Workers < 1 {
		errs = append(errs, fmt.Errorf("noise workers %d must be at least 1", c.Noise.Workers))
	}
	if c.Frame.Limit < 0 {
		errs = append(errs, fmt.Errorf("frame limit %v must not be negative", c.Frame.Limit))
	}
	if _, err := c.ExitKey(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Caps returns the capability bitset selected by the capabilities section.
func (c Config) Caps() frame.Capabilities {
	var caps frame.Capabilities
	if c.Capabilities.Uniforms {
		caps |= frame.HasUniforms
	}
	if c.Capabilities.NoiseTexture {
		caps |= frame.HasNoiseTexture
	}
	return caps
}

// ExitKey parses the configured exit key.
func (c Config) ExitKey() (common.Key, error) {
	return common.ParseKey(c.Frame.ExitKey)
}

// Level parses the configured log level.
//
// Returns:
//   - slog.Level: the level
//   - error: error if the name is not a slog level
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}
