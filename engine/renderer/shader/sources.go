package shader

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-sdf/engine/frame"
)

var (
	//go:embed assets/quad.vert.wgsl
	quadVertexSource string

	//go:embed assets/colour.frag.wgsl
	colourFragmentSource string

	//go:embed assets/resolution.frag.wgsl
	resolutionFragmentSource string

	//go:embed assets/noise.frag.wgsl
	noiseFragmentSource string
)

// FragmentSource returns the embedded fragment stage matching a capability set.
// Colour-only pipelines pass the interpolated vertex colour through, HasUniforms adds the
// resolution-driven distance field, and HasNoiseTexture additionally samples the noise texture.
//
// Parameters:
//   - caps: the validated capability set
//
// Returns:
//   - string: the shader key
//   - string: the raw WGSL source
func FragmentSource(caps frame.Capabilities) (string, string) {
	switch {
	case caps.Has(frame.HasNoiseTexture):
		return "noise.frag", noiseFragmentSource
	case caps.Has(frame.HasUniforms):
		return "resolution.frag", resolutionFragmentSource
	default:
		return "colour.frag", colourFragmentSource
	}
}

// ForCapabilities builds the vertex and fragment shaders for a capability set.
//
// Parameters:
//   - caps: the capability set the pipeline is built for
//
// Returns:
//   - Shader: the quad vertex shader
//   - Shader: the fragment shader for caps
//   - error: error if caps are invalid or a source fails to parse
func ForCapabilities(caps frame.Capabilities) (Shader, Shader, error) {
	if err := caps.Validate(); err != nil {
		return nil, nil, err
	}
	vs, err := NewShader("quad.vert", ShaderTypeVertex, quadVertexSource)
	if err != nil {
		return nil, nil, err
	}
	key, src := FragmentSource(caps)
	fs, err := NewShader(key, ShaderTypeFragment, src)
	if err != nil {
		return nil, nil, err
	}
	if len(vs.VertexLayouts()) != 1 {
		return nil, nil, fmt.Errorf("shader %s: expected one vertex buffer layout, found %d", vs.Key(), len(vs.VertexLayouts()))
	}
	return vs, fs, nil
}
