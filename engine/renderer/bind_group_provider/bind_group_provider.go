package bind_group_provider

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label prefixes the labels of every GPU object created for this provider.
	label string

	// bindGroup is the GPU bind group created for this provider, or nil if not built yet.
	bindGroup *wgpu.BindGroup
	// buffers holds the GPU buffers created for this provider, keyed by binding index.
	buffers map[int]*wgpu.Buffer
	// textures holds the textures behind textureViews so they can be released, keyed by binding index.
	textures map[int]*wgpu.Texture
	// textureViews holds the GPU texture views created for this provider, keyed by binding index.
	textureViews map[int]*wgpu.TextureView
	// samplers holds the GPU samplers created for this provider, keyed by binding index.
	samplers map[int]*wgpu.Sampler

	// vertexBuffer, indexBuffer and indexCount describe static geometry drawn with this provider.
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

// BindGroupProvider holds the GPU resources behind one bind group or one piece of geometry.
// The renderer creates the resources and stores them here; draws read them back.
type BindGroupProvider interface {
	// Release releases every GPU resource held by this provider.
	Release()

	// Label returns the debug label for this provider.
	Label() string

	// BindGroup returns the created bind group, or nil if it has not been built.
	BindGroup() *wgpu.BindGroup

	// Buffer returns the buffer at a binding index, or nil.
	Buffer(binding int) *wgpu.Buffer

	// TextureView returns the texture view at a binding index, or nil.
	TextureView(binding int) *wgpu.TextureView

	// Sampler returns the sampler at a binding index, or nil.
	Sampler(binding int) *wgpu.Sampler

	// VertexBuffer returns the vertex buffer, or nil if no geometry was uploaded.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the index buffer, or nil if no geometry was uploaded.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices for indexed draws.
	IndexCount() int

	// SetBindGroup stores the built bind group, releasing any previous one.
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBuffer stores a buffer for a binding index, releasing any previous one.
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTexture stores a texture and its view for a binding index, releasing any previous pair.
	//
	// Parameters:
	//   - binding: the binding index
	//   - tex: the texture backing the view
	//   - tv: the view bound to the shader
	SetTexture(binding int, tex *wgpu.Texture, tv *wgpu.TextureView)

	// SetSampler stores a sampler for a binding index, releasing any previous one.
	SetSampler(binding int, s *wgpu.Sampler)

	// SetGeometry stores uploaded vertex and index buffers.
	//
	// Parameters:
	//   - vertices: the vertex buffer
	//   - indices: the index buffer
	//   - indexCount: the number of uint32 indices in the index buffer
	SetGeometry(vertices, indices *wgpu.Buffer, indexCount int)

	// EntryFor builds the bind group entry for a layout entry from the stored resources.
	//
	// Parameters:
	//   - entry: the layout entry to satisfy
	//
	// Returns:
	//   - wgpu.BindGroupEntry: the entry referencing the stored resource
	//   - error: error if no resource of the required kind is stored at the binding
	EntryFor(entry wgpu.BindGroupLayoutEntry) (wgpu.BindGroupEntry, error)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty BindGroupProvider.
//
// Parameters:
//   - label: debug label used for every GPU object created for this provider
//   - options: functional options to configure the provider
//
// Returns:
//   - BindGroupProvider: the provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textures:     make(map[int]*wgpu.Texture),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	if p.bindGroup != nil && p.bindGroup != bg {
		p.bindGroup.Release()
	}
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if old := p.buffers[binding]; old != nil && old != buf {
		old.Release()
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTexture(binding int, tex *wgpu.Texture, tv *wgpu.TextureView) {
	if old := p.textureViews[binding]; old != nil && old != tv {
		old.Release()
	}
	if old := p.textures[binding]; old != nil && old != tex {
		old.Release()
	}
	p.textures[binding] = tex
	p.textureViews[binding] = tv
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	if old := p.samplers[binding]; old != nil && old != s {
		old.Release()
	}
	p.samplers[binding] = s
}

func (p *bindGroupProvider) SetGeometry(vertices, indices *wgpu.Buffer, indexCount int) {
	if p.vertexBuffer != nil && p.vertexBuffer != vertices {
		p.vertexBuffer.Release()
	}
	if p.indexBuffer != nil && p.indexBuffer != indices {
		p.indexBuffer.Release()
	}
	p.vertexBuffer = vertices
	p.indexBuffer = indices
	p.indexCount = indexCount
}

func (p *bindGroupProvider) EntryFor(entry wgpu.BindGroupLayoutEntry) (wgpu.BindGroupEntry, error) {
	binding := int(entry.Binding)
	switch {
	case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
		tv := p.textureViews[binding]
		if tv == nil {
			return wgpu.BindGroupEntry{}, fmt.Errorf("%s: texture binding %d has no texture view", p.label, binding)
		}
		return wgpu.BindGroupEntry{Binding: entry.Binding, TextureView: tv}, nil
	case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
		s := p.samplers[binding]
		if s == nil {
			return wgpu.BindGroupEntry{}, fmt.Errorf("%s: sampler binding %d has no sampler", p.label, binding)
		}
		return wgpu.BindGroupEntry{Binding: entry.Binding, Sampler: s}, nil
	case entry.Buffer.Type != wgpu.BufferBindingTypeUndefined:
		buf := p.buffers[binding]
		if buf == nil {
			return wgpu.BindGroupEntry{}, fmt.Errorf("%s: buffer binding %d has no buffer", p.label, binding)
		}
		return wgpu.BindGroupEntry{Binding: entry.Binding, Buffer: buf, Offset: 0, Size: wgpu.WholeSize}, nil
	default:
		return wgpu.BindGroupEntry{}, fmt.Errorf("%s: binding %d has an unsupported resource type", p.label, binding)
	}
}

func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	for i, tv := range p.textureViews {
		if tv != nil {
			tv.Release()
		}
		delete(p.textureViews, i)
	}
	for i, tex := range p.textures {
		if tex != nil {
			tex.Release()
		}
		delete(p.textures, i)
	}
	for i, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, i)
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}
