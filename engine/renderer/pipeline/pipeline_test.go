package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sdf/engine/frame"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("sdf")
	if p.PipelineKey() != "sdf" {
		t.Errorf("PipelineKey() = %q", p.PipelineKey())
	}
	if p.DepthTestEnabled() || p.DepthWriteEnabled() || p.BlendEnabled() {
		t.Error("depth or blending enabled by default")
	}
	if p.CullMode() != wgpu.CullModeNone {
		t.Errorf("CullMode() = %v, want none", p.CullMode())
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList {
		t.Errorf("Topology() = %v, want triangle list", p.Topology())
	}
	if p.RenderPipeline() != nil || p.BindGroupLayout(0) != nil {
		t.Error("GPU objects present before creation")
	}
	if p.Shader(shader.ShaderTypeVertex) != nil || p.Shader(shader.ShaderTypeFragment) != nil {
		t.Error("shaders set without options")
	}
}

func TestPipelineOptions(t *testing.T) {
	vs, fs, err := shader.ForCapabilities(frame.CapabilitiesAll)
	if err != nil {
		t.Fatalf("ForCapabilities() error = %v", err)
	}
	p := NewPipeline("sdf",
		WithVertexShader(vs),
		WithFragmentShader(fs),
		WithCullMode(wgpu.CullModeBack),
		WithFrontFace(wgpu.FrontFaceCW),
		WithBlendEnabled(true),
		WithBlendState(nil),
	)
	if p.Shader(shader.ShaderTypeVertex) != vs || p.Shader(shader.ShaderTypeFragment) != fs {
		t.Error("shaders not stored")
	}
	if p.CullMode() != wgpu.CullModeBack || p.FrontFace() != wgpu.FrontFaceCW {
		t.Error("primitive state options not applied")
	}
	if !p.BlendEnabled() || p.BlendState() == nil {
		t.Error("WithBlendState(nil) cleared the default blend state")
	}
}
