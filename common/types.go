// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "fmt"

// TextureFormat identifies the texel layout of staged texture data independently of the GPU API.
// The renderer maps it onto the backend's native format.
type TextureFormat int

const (
	// TextureFormatRGBA8UnormSrgb is 4 bytes per texel, sRGB encoded. This is the zero value.
	TextureFormatRGBA8UnormSrgb TextureFormat = iota
	// TextureFormatRGBA8Unorm is 4 bytes per texel, linear.
	TextureFormatRGBA8Unorm
)

// BytesPerPixel returns the texel stride for the format. Every staged format is RGBA8.
func (f TextureFormat) BytesPerPixel() uint32 {
	return 4
}

// TextureStagingData holds pixel data for a texture binding pending GPU upload.
// This is primarily used in the BindGroupProvider to stage texture data before creating the GPU texture and bind group.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture, row-major with Format.BytesPerPixel() bytes per texel.
	Pixels []byte
	// Width is the width of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Width uint32
	// Height is the height of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Height uint32
	// Format is the texel layout of Pixels.
	Format TextureFormat
}

// Validate checks that the pixel buffer length matches the declared dimensions.
//
// Returns:
//   - error: an error describing the mismatch, or nil if the staging data is consistent
func (t TextureStagingData) Validate() error {
	if t.Width == 0 || t.Height == 0 {
		return fmt.Errorf("texture has zero extent %dx%d", t.Width, t.Height)
	}
	want := int(t.Width) * int(t.Height) * int(t.Format.BytesPerPixel())
	if len(t.Pixels) != want {
		return fmt.Errorf("texture %dx%d expects %d bytes, got %d", t.Width, t.Height, want, len(t.Pixels))
	}
	return nil
}
