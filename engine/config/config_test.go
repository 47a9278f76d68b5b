package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-sdf/common"
	"github.com/Carmen-Shannon/oxy-sdf/engine/frame"
	"github.com/Carmen-Shannon/oxy-sdf/engine/noise"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Window.Title != "SDF" || cfg.Window.Width != 1280 || cfg.Window.Height != 800 {
		t.Errorf("window = %+v, want SDF 1280x800", cfg.Window)
	}
	if cfg.Caps() != frame.CapabilitiesAll {
		t.Errorf("Caps() = %v, want all", cfg.Caps())
	}
	if cfg.Noise.Size != 256 || cfg.Noise.Workers != 1 {
		t.Errorf("noise = %+v, want size 256 workers 1", cfg.Noise)
	}
	if cfg.Frame.ClearColour != [4]float64{0, 0, 0, 1} {
		t.Errorf("clear colour = %v, want opaque black", cfg.Frame.ClearColour)
	}
	if key, _ := cfg.ExitKey(); key != common.KeyEsc {
		t.Errorf("ExitKey() = %v, want Escape", key)
	}
	if level, _ := cfg.Level(); level != slog.LevelInfo {
		t.Errorf("Level() = %v, want info", level)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdf.yaml")
	doc := `
window:
  title: Field
  width: 640
capabilities:
  noise_texture: false
noise:
  workers: 4
frame:
  limit: 30
  exit_key: q
log_level: debug
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Window.Title != "Field" || cfg.Window.Width != 640 || cfg.Window.Height != 800 {
		t.Errorf("window = %+v, want Field 640x800", cfg.Window)
	}
	if cfg.Caps() != frame.HasUniforms {
		t.Errorf("Caps() = %v, want uniforms", cfg.Caps())
	}
	if cfg.Noise.Workers != 4 || cfg.Noise.Size != 256 {
		t.Errorf("noise = %+v", cfg.Noise)
	}
	if cfg.Frame.Limit != 30 {
		t.Errorf("frame limit = %v, want 30", cfg.Frame.Limit)
	}
	if key, _ := cfg.ExitKey(); key != common.KeyQ {
		t.Errorf("ExitKey() = %v, want Q", key)
	}
	if level, _ := cfg.Level(); level != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", level)
	}
	if cfg.Renderer.PresentMode != PresentModeVSync {
		t.Errorf("present mode = %q, want default vsync", cfg.Renderer.PresentMode)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want ErrNotExist", err)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Error("empty document did not yield defaults")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte("window:\n  colour: red\n")); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"negative height", func(c *Config) { c.Window.Height = -1 }, "window size"},
		{"present mode", func(c *Config) { c.Renderer.PresentMode = "mailbox" }, "present mode"},
		{"msaa", func(c *Config) { c.Renderer.MSAA = 2 }, "msaa"},
		{"noise without uniforms", func(c *Config) { c.Capabilities.Uniforms = false }, frame.ErrNoiseWithoutUniforms.Error()},
		{"noise size", func(c *Config) { c.Noise.Size = 0 }, "noise size"},
		{"noise size too large", func(c *Config) { c.Noise.Size = noise.MaxFieldSize + 1 }, "noise size"},
		{"workers", func(c *Config) { c.Noise.Workers = 0 }, "workers"},
		{"frame limit", func(c *Config) { c.Frame.Limit = -1 }, "frame limit"},
		{"exit key", func(c *Config) { c.Frame.ExitKey = "hyper" }, "unknown key"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestValidateAcceptsMaxNoiseSize(t *testing.T) {
	cfg := Default()
	cfg.Noise.Size = noise.MaxFieldSize
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for size %d", err, noise.MaxFieldSize)
	}
}

func TestValidateColourOnlyIgnoresNoiseSize(t *testing.T) {
	cfg := Default()
	cfg.Capabilities = CapabilitiesConfig{}
	cfg.Noise.Size = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for colour-only", err)
	}
	if cfg.Caps() != frame.CapabilitiesColour {
		t.Errorf("Caps() = %v, want colour", cfg.Caps())
	}
}
