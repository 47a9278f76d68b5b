package frame

import "github.com/Carmen-Shannon/oxy-sdf/common"

// Fallback drawable size used whenever the window cannot report its size.
const (
	DefaultWidth  float32 = 1280
	DefaultHeight float32 = 800
)

// UniformBlockSize is the byte size of the GPU uniform buffer, padded to 16 bytes.
const UniformBlockSize = 16

// WindowSize is the drawable size of the window in pixels.
type WindowSize struct {
	Width, Height float32
}

// UniformBlock is the per-frame shader uniform state.
// Matches the WGSL SdfUniforms struct: resolution vec2<f32> at offset 0, padded to 16 bytes.
type UniformBlock struct {
	Resolution [2]float32
}

// BuildUniforms derives the uniform block from the current window size.
// A nil size (backend query failed, window minimised) falls back to DefaultResolution.
//
// Parameters:
//   - size: the current window size, or nil if unavailable
//
// Returns:
//   - UniformBlock: the uniform values for this frame
func BuildUniforms(size *WindowSize) UniformBlock {
	if size == nil {
		return UniformBlock{Resolution: DefaultResolution()}
	}
	return UniformBlock{Resolution: [2]float32{size.Width, size.Height}}
}

// DefaultResolution returns the fallback resolution (DefaultWidth, DefaultHeight).
func DefaultResolution() [2]float32 {
	return [2]float32{DefaultWidth, DefaultHeight}
}

// Marshal serializes the UniformBlock into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: UniformBlockSize little-endian bytes
func (u UniformBlock) Marshal() []byte {
	buf := make([]byte, UniformBlockSize)
	common.PutFloat32s(buf, 0, u.Resolution[0], u.Resolution[1])
	return buf
}
