package frame

import (
	"errors"
	"strings"
)

// Capabilities is the feature set of the renderer. Each stage of the program adds one flag on top
// of the plain colour quad.
type Capabilities uint8

const (
	// HasUniforms uploads the resolution uniform block before every draw.
	HasUniforms Capabilities = 1 << iota
	// HasNoiseTexture binds the noise texture generated once at startup.
	HasNoiseTexture
)

const (
	// CapabilitiesColour draws the per-vertex colour quad only.
	CapabilitiesColour Capabilities = 0
	// CapabilitiesAll enables every stage.
	CapabilitiesAll = HasUniforms | HasNoiseTexture
)

// ErrNoiseWithoutUniforms is returned when the noise stage is requested without the uniform stage it builds on.
var ErrNoiseWithoutUniforms = errors.New("noise texture capability requires uniforms")

// Has reports whether every flag in f is set.
func (c Capabilities) Has(f Capabilities) bool {
	return c&f == f
}

// Validate rejects combinations the shaders do not provide.
func (c Capabilities) Validate() error {
	if c.Has(HasNoiseTexture) && !c.Has(HasUniforms) {
		return ErrNoiseWithoutUniforms
	}
	if c&^CapabilitiesAll != 0 {
		return errors.New("unknown capability flags")
	}
	return nil
}

func (c Capabilities) String() string {
	if c == CapabilitiesColour {
		return "colour"
	}
	var parts []string
	if c.Has(HasUniforms) {
		parts = append(parts, "uniforms")
	}
	if c.Has(HasNoiseTexture) {
		parts = append(parts, "noise")
	}
	return strings.Join(parts, "+")
}
