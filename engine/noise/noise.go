// Package noise generates a deterministic 2-D hash noise field from a fixed permutation table.
//
// Each sample costs two table lookups: the x coordinate is hashed, the y coordinate is added
// with 8-bit wraparound, and the sum is hashed again. The same table and size always produce
// the same field, so the texture built from it is stable across frames and runs.
package noise

// DefaultFieldSize is the side length of the field uploaded as the noise texture.
const DefaultFieldSize = 256

// MaxFieldSize is the largest side length accepted for the noise texture, the WebGPU default
// maxTextureDimension2D limit.
const MaxFieldSize = 8192

// Point returns the noise byte for (x, y): hash(uint8(hash(x) + y)).
// The addition wraps modulo 256 rather than saturating.
func (t *Table) Point(x, y int) byte {
	a := t.Hash(x)
	b := a + byte(y)
	return t.Hash(int(b))
}

// GenerateField fills a size x size grid with Point(x, y).
// A non-positive size yields an empty field.
func (t *Table) GenerateField(size int) *Field {
	f := newField(size)
	for x := 0; x < f.size; x++ {
		t.fillColumn(f, x)
	}
	return f
}

// fillColumn writes every cell of column x. Columns are contiguous in Field.cells.
func (t *Table) fillColumn(f *Field, x int) {
	col := f.cells[x*f.size : (x+1)*f.size]
	a := t.Hash(x)
	for y := range col {
		col[y] = t.Hash(int(a + byte(y)))
	}
}

// Point samples Permutation at (x, y).
func Point(x, y int) byte {
	return Permutation.Point(x, y)
}

// GenerateField builds a size x size field from Permutation.
func GenerateField(size int) *Field {
	return Permutation.GenerateField(size)
}
