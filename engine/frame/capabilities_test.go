package frame

import (
	"errors"
	"testing"
)

func TestCapabilities(t *testing.T) {
	tests := []struct {
		caps    Capabilities
		str     string
		wantErr error
	}{
		{CapabilitiesColour, "colour", nil},
		{HasUniforms, "uniforms", nil},
		{CapabilitiesAll, "uniforms+noise", nil},
		{HasNoiseTexture, "noise", ErrNoiseWithoutUniforms},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if got := tt.caps.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if err := tt.caps.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCapabilitiesUnknownFlag(t *testing.T) {
	if err := Capabilities(1 << 6).Validate(); err == nil {
		t.Error("Validate() accepted an unknown flag")
	}
}

func TestCapabilitiesHas(t *testing.T) {
	if !CapabilitiesAll.Has(HasUniforms) || !CapabilitiesAll.Has(HasNoiseTexture) {
		t.Error("CapabilitiesAll is missing a flag")
	}
	if CapabilitiesColour.Has(HasUniforms) {
		t.Error("CapabilitiesColour reports uniforms")
	}
}
