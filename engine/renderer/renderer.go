package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-sdf/common"
	"github.com/Carmen-Shannon/oxy-sdf/engine/frame"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// bindingsGroup is the only bind group index the quad shaders declare resources in.
const bindingsGroup = 0

// ErrNoPipeline is returned by resource operations issued before CreatePipeline.
var ErrNoPipeline = errors.New("renderer: no pipeline created")

// Surface is the window side the renderer presents into.
type Surface interface {
	// SurfaceDescriptor returns the platform surface descriptor for wgpu.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	// Width returns the framebuffer width in pixels.
	Width() int
	// Height returns the framebuffer height in pixels.
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	sampleCount          MSAASampleCount

	pipeline pipeline.Pipeline
	layouts  map[int]wgpu.BindGroupLayoutDescriptor

	// mesh holds the static quad geometry, bindings holds every group 0 resource.
	mesh     bind_group_provider.BindGroupProvider
	bindings bind_group_provider.BindGroupProvider

	// Binding indices resolved from the fragment shader declarations, -1 when not declared.
	uniformBinding int
	textureBinding int
	samplerBinding int

	// minimised is set while the framebuffer is empty. The surface is not acquired or presented
	// until a non-empty ReconfigureViews clears it.
	minimised bool
}

// Renderer draws the full-screen quad through a single render pipeline.
//
// Setup runs once: CreatePipeline, UploadStaticGeometry, then CreateUniformBuffer and CreateNoiseTexture
// as the pipeline requires, then BuildBindings. Afterwards the Renderer is driven frame by frame through
// the frame.Device operations it embeds.
type Renderer interface {
	frame.Device

	// CreatePipeline creates the GPU render pipeline for the given configuration and resolves which
	// bindings carry the uniform block, the noise texture and its sampler.
	//
	// Parameters:
	//   - p: the pipeline holding the vertex and fragment shaders
	//
	// Returns:
	//   - error: error if shaders are missing, declare resources outside group 0, or GPU creation fails
	CreatePipeline(p pipeline.Pipeline) error

	// UploadStaticGeometry creates the vertex and index buffers drawn every frame.
	//
	// Parameters:
	//   - vertices: interleaved vertex bytes
	//   - indices: little-endian uint32 index bytes
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: error if the data is empty or buffer creation fails
	UploadStaticGeometry(vertices, indices []byte, indexCount int) error

	// CreateUniformBuffer creates the uniform buffer at the binding the pipeline declared for the uniform block.
	//
	// Parameters:
	//   - size: the buffer size in bytes
	//
	// Returns:
	//   - error: error if the pipeline declares no uniform binding, size is below the declared minimum, or creation fails
	CreateUniformBuffer(size uint64) error

	// CreateNoiseTexture uploads staged texels as a 2D texture and creates its repeat/nearest sampler.
	//
	// Parameters:
	//   - stagingData: the texels to upload
	//
	// Returns:
	//   - error: error if the pipeline declares no noise texture, the data is inconsistent, or creation fails
	CreateNoiseTexture(stagingData common.TextureStagingData) error

	// BuildBindings creates the group 0 bind group from the resources created so far.
	// A pipeline that declares no bindings needs no bind group and BuildBindings is a no-op.
	//
	// Returns:
	//   - error: error if a declared binding has no resource or creation fails
	BuildBindings() error

	// Pipeline returns the pipeline passed to CreatePipeline, or nil.
	Pipeline() pipeline.Pipeline

	// Release releases every GPU resource held by the renderer and its backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the renderer and its wgpu backend for the given surface, then configures
// the surface at the surface's current size.
//
// Parameters:
//   - surface: the window to present into
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the created renderer
//   - error: error if the sample count is invalid or any GPU object fails to be created
func NewRenderer(surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:             &sync.Mutex{},
		presentMode:    PresentModeVSync,
		sampleCount:    MSAAOff,
		uniformBinding: -1,
		textureBinding: -1,
		samplerBinding: -1,
		mesh:           bind_group_provider.NewBindGroupProvider("SDF Quad"),
		bindings:       bind_group_provider.NewBindGroupProvider("SDF Bindings"),
	}

	for _, opt := range options {
		opt(r)
	}

	if !r.sampleCount.Valid() {
		return nil, fmt.Errorf("renderer: unsupported MSAA sample count %d", r.sampleCount)
	}

	if r.backend == nil {
		if surface == nil || surface.SurfaceDescriptor() == nil {
			return nil, errors.New("renderer: surface is not initialised")
		}
		backend, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.sampleCount)
		if err != nil {
			return nil, fmt.Errorf("renderer: %w", err)
		}
		r.backend = backend
	}

	r.backend.SetPresentMode(r.presentMode)

	width, height := frame.DefaultWidth, frame.DefaultHeight
	if surface != nil && surface.Width() > 0 && surface.Height() > 0 {
		width, height = float32(surface.Width()), float32(surface.Height())
	}
	if err := r.backend.ConfigureSurface(int(width), int(height)); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("renderer: configure surface: %w", err)
	}

	common.Logger().Info("renderer created",
		"present_mode", r.presentMode.String(),
		"msaa", uint32(r.sampleCount),
		"width", int(width),
		"height", int(height),
	)
	return r, nil
}

func (r *renderer) Pipeline() pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipeline
}

func (r *renderer) CreatePipeline(p pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)
	if vertexShader == nil || fragmentShader == nil {
		return errors.New("both vertex and fragment shaders must be set to create a render pipeline")
	}

	merged := mergeBindGroupLayouts(vertexShader.BindGroupLayoutDescriptors(), fragmentShader.BindGroupLayoutDescriptors())
	for g := range merged {
		if g != bindingsGroup {
			return fmt.Errorf("pipeline %q declares bind group %d, only group %d is supported", p.PipelineKey(), g, bindingsGroup)
		}
	}

	uniformBinding, textureBinding, samplerBinding := resolveBindings(vertexShader, fragmentShader)

	if err := r.backend.RegisterRenderPipeline(p, merged); err != nil {
		return fmt.Errorf("pipeline %q: %w", p.PipelineKey(), err)
	}

	r.pipeline = p
	r.layouts = merged
	r.uniformBinding = uniformBinding
	r.textureBinding = textureBinding
	r.samplerBinding = samplerBinding
	return nil
}

// resolveBindings finds the binding indices that carry the uniform block, noise texture and sampler
// from the annotations of both shader stages.
//
// Parameters:
//   - shaders: the shader stages to inspect
//
// Returns:
//   - int: the uniform binding, or -1
//   - int: the noise texture binding, or -1
//   - int: the noise sampler binding, or -1
func resolveBindings(shaders ...shader.Shader) (int, int, int) {
	uniform, texture, sampler := -1, -1, -1
	for _, s := range shaders {
		for _, a := range s.Declarations() {
			if a.Binding == nil || a.Group == nil || *a.Group != bindingsGroup {
				continue
			}
			switch a.Type {
			case shader.AnnotationTypeBindingGroup:
				if len(a.Args) > 2 && a.Args[2] == shader.AnnotationArgSdfUniforms {
					uniform = *a.Binding
				}
			case shader.AnnotationTypeProvider:
				switch a.Role() {
				case shader.AnnotationArgNoiseTexture:
					texture = *a.Binding
				case shader.AnnotationArgNoiseSampler:
					sampler = *a.Binding
				}
			}
		}
	}
	return uniform, texture, sampler
}

func (r *renderer) UploadStaticGeometry(vertices, indices []byte, indexCount int) error {
	if len(vertices) == 0 || len(indices) == 0 || indexCount <= 0 {
		return errors.New("static geometry requires vertices and indices")
	}
	if len(indices) < indexCount*4 {
		return fmt.Errorf("index data holds %d bytes, %d indices need %d", len(indices), indexCount, indexCount*4)
	}
	return r.backend.InitMeshBuffers(r.mesh, vertices, indices, indexCount)
}

func (r *renderer) CreateUniformBuffer(size uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pipeline == nil {
		return ErrNoPipeline
	}
	if r.uniformBinding < 0 {
		return fmt.Errorf("pipeline %q declares no uniform binding", r.pipeline.PipelineKey())
	}
	if minSize := r.minBindingSize(r.uniformBinding); size < minSize {
		return fmt.Errorf("uniform buffer of %d bytes is below the declared minimum %d", size, minSize)
	}
	return r.backend.InitUniformBuffer(r.bindings, r.uniformBinding, size)
}

// minBindingSize returns the declared minimum buffer size for a binding in the bindings group.
func (r *renderer) minBindingSize(binding int) uint64 {
	for _, e := range r.layouts[bindingsGroup].Entries {
		if int(e.Binding) == binding {
			return e.Buffer.MinBindingSize
		}
	}
	return 0
}

func (r *renderer) CreateNoiseTexture(stagingData common.TextureStagingData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pipeline == nil {
		return ErrNoPipeline
	}
	if r.textureBinding < 0 {
		return fmt.Errorf("pipeline %q declares no noise texture binding", r.pipeline.PipelineKey())
	}
	if err := stagingData.Validate(); err != nil {
		return fmt.Errorf("noise texture: %w", err)
	}
	if err := r.backend.InitTextureView(r.bindings, r.textureBinding, stagingData); err != nil {
		return err
	}
	if r.samplerBinding >= 0 {
		if err := r.backend.InitSampler(r.bindings, r.samplerBinding); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) BuildBindings() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pipeline == nil {
		return ErrNoPipeline
	}
	descriptor, ok := r.layouts[bindingsGroup]
	if !ok || len(descriptor.Entries) == 0 {
		return nil
	}
	return r.backend.InitBindGroup(r.bindings, r.pipeline.BindGroupLayout(bindingsGroup), descriptor)
}

func (r *renderer) ReconfigureViews(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width <= 0 || height <= 0 {
		common.Logger().Debug("suspending frames for empty framebuffer", "width", width, "height", height)
		r.minimised = true
		return nil
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return err
	}
	r.minimised = false
	return nil
}

// Minimised reports whether frames are suspended for an empty framebuffer.
func (r *renderer) Minimised() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.minimised
}

func (r *renderer) RecordClear(colour [4]float64) {
	r.backend.SetClearColour(colour)
}

func (r *renderer) RecordUpdateUniform(block frame.UniformBlock) error {
	r.mu.Lock()
	binding := r.uniformBinding
	r.mu.Unlock()

	if binding < 0 || r.bindings.Buffer(binding) == nil {
		return errors.New("no uniform buffer created")
	}
	return r.backend.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: r.bindings,
		Binding:  binding,
		Offset:   0,
		Data:     block.Marshal(),
	}})
}

func (r *renderer) RecordDraw() error {
	r.mu.Lock()
	p, minimised := r.pipeline, r.minimised
	r.mu.Unlock()

	if p == nil {
		return ErrNoPipeline
	}
	if minimised {
		return nil
	}
	if r.mesh.IndexCount() == 0 {
		return errors.New("no static geometry uploaded")
	}

	var groups []bind_group_provider.BindGroupProvider
	if r.bindings.BindGroup() != nil {
		groups = append(groups, r.bindings)
	}

	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	return r.backend.DrawCall(p, r.mesh, groups)
}

func (r *renderer) Flush() error {
	if r.Minimised() {
		return nil
	}
	return r.backend.EndFrame()
}

func (r *renderer) Present() error {
	if r.Minimised() {
		return nil
	}
	return r.backend.Present()
}

func (r *renderer) Cleanup() {
	r.backend.ReleaseFrame()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backend.ReleaseFrame()
	r.bindings.Release()
	r.mesh.Release()
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
	r.backend.Release()
}
