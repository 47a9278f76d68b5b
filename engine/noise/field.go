package noise

import (
	"bytes"

	"github.com/Carmen-Shannon/oxy-sdf/common"
)

// Field is an immutable square grid of noise bytes.
// Cells are stored column-major: cells[x*size+y] holds the sample for (x, y).
type Field struct {
	size  int
	cells []byte
}

func newField(size int) *Field {
	if size < 0 {
		size = 0
	}
	return &Field{size: size, cells: make([]byte, size*size)}
}

// Size returns the side length of the field.
func (f *Field) Size() int {
	return f.size
}

// At returns the sample for (x, y). Coordinates outside the field panic like a slice index would.
func (f *Field) At(x, y int) byte {
	if x < 0 || x >= f.size || y < 0 || y >= f.size {
		panic("noise: field coordinate out of range")
	}
	return f.cells[x*f.size+y]
}

// Grid returns a copy of the field as grid[x][y].
func (f *Field) Grid() [][]byte {
	grid := make([][]byte, f.size)
	for x := range grid {
		grid[x] = bytes.Clone(f.cells[x*f.size : (x+1)*f.size])
	}
	return grid
}

// Bytes returns a copy of the column-major cell data.
func (f *Field) Bytes() []byte {
	return bytes.Clone(f.cells)
}

// Equal reports whether two fields have the same size and identical cells.
func (f *Field) Equal(other *Field) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.size == other.size && bytes.Equal(f.cells, other.cells)
}

// StagingData lays the field out as an opaque grey RGBA8 texture ready for GPU upload.
// The texel in column x, row y carries At(x, y) in its red, green and blue channels.
//
// Returns:
//   - common.TextureStagingData: row-major RGBA8 linear pixels of Size() x Size()
func (f *Field) StagingData() common.TextureStagingData {
	pixels := make([]byte, f.size*f.size*4)
	for x := 0; x < f.size; x++ {
		for y := 0; y < f.size; y++ {
			v := f.cells[x*f.size+y]
			i := (y*f.size + x) * 4
			pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = v, v, v, 0xFF
		}
	}
	return common.TextureStagingData{
		Pixels: pixels,
		Width:  uint32(f.size),
		Height: uint32(f.size),
		Format: common.TextureFormatRGBA8Unorm,
	}
}
