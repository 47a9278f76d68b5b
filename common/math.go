package common

import (
	"encoding/binary"
	"math"
)

// PutFloat32s writes each value as a little-endian IEEE-754 float32 into buf starting at offset.
// buf must hold at least offset+4*len(values) bytes.
//
// Parameters:
//   - buf: destination byte buffer
//   - offset: byte offset of the first value
//   - values: the floats to encode
//
// Returns:
//   - int: the byte offset immediately after the last written value
func PutFloat32s(buf []byte, offset int, values ...float32) int {
	for _, v := range values {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
		offset += 4
	}
	return offset
}

// Uint32sToBytes encodes a uint32 slice as a freshly allocated little-endian byte slice.
func Uint32sToBytes(values []uint32) []byte {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}
