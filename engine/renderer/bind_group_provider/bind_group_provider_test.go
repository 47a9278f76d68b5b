package bind_group_provider

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestEntryForMissingResources(t *testing.T) {
	p := NewBindGroupProvider("sdf bindings")
	tests := []struct {
		name  string
		entry wgpu.BindGroupLayoutEntry
		want  string
	}{
		{
			name:  "uniform buffer",
			entry: wgpu.BindGroupLayoutEntry{Binding: 0, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}},
			want:  "buffer binding 0",
		},
		{
			name:  "texture",
			entry: wgpu.BindGroupLayoutEntry{Binding: 1, Texture: wgpu.TextureBindingLayout{SampleType: wgpu.TextureSampleTypeFloat}},
			want:  "texture binding 1",
		},
		{
			name:  "sampler",
			entry: wgpu.BindGroupLayoutEntry{Binding: 2, Sampler: wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering}},
			want:  "sampler binding 2",
		},
		{
			name:  "unsupported",
			entry: wgpu.BindGroupLayoutEntry{Binding: 3},
			want:  "unsupported",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.EntryFor(tt.entry)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("EntryFor() error = %v, want mention of %q", err, tt.want)
			}
			if err != nil && !strings.HasPrefix(err.Error(), "sdf bindings:") {
				t.Errorf("error %q is not prefixed with the provider label", err)
			}
		})
	}
}

func TestNewBindGroupProviderEmpty(t *testing.T) {
	p := NewBindGroupProvider("quad")
	if p.Label() != "quad" {
		t.Errorf("Label() = %q, want quad", p.Label())
	}
	if p.BindGroup() != nil || p.VertexBuffer() != nil || p.IndexBuffer() != nil || p.IndexCount() != 0 {
		t.Error("new provider holds resources")
	}
	p.Release()
}

func TestWithBuffer(t *testing.T) {
	buf := &wgpu.Buffer{}
	p := NewBindGroupProvider("uniforms", WithBuffer(0, buf))
	if p.Buffer(0) != buf {
		t.Fatal("WithBuffer did not store the buffer")
	}
	e, err := p.EntryFor(wgpu.BindGroupLayoutEntry{Binding: 0, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}})
	if err != nil {
		t.Fatalf("EntryFor() error = %v", err)
	}
	if e.Buffer != buf || e.Size != wgpu.WholeSize {
		t.Errorf("entry = %+v, want whole-size binding of the stored buffer", e)
	}
}
