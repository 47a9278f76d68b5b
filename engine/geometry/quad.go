// Package geometry holds the static full-screen quad drawn every frame.
package geometry

import (
	"unsafe"

	"github.com/Carmen-Shannon/oxy-sdf/common"
)

// Vertex is a single quad corner: clip-space position and RGBA colour.
// Layout matches the vertex shader's VertexInput (24 bytes, tightly packed).
type Vertex struct {
	Position [2]float32 // offset 0: @location(0) vec2<f32>, NDC in [-1, 1]
	Colour   [4]float32 // offset 8: @location(1) vec4<f32>, RGBA in [0, 1]
}

// VertexStride is the byte size of one Vertex.
const VertexStride = uint64(unsafe.Sizeof(Vertex{}))

var white = [4]float32{1, 1, 1, 1}

// quadVertices are the four corners of the clip-space square, starting bottom-right and
// walking clockwise in screen space: (1,-1), (-1,-1), (-1,1), (1,1).
var quadVertices = [4]Vertex{
	{Position: [2]float32{1, -1}, Colour: white},
	{Position: [2]float32{-1, -1}, Colour: white},
	{Position: [2]float32{-1, 1}, Colour: white},
	{Position: [2]float32{1, 1}, Colour: white},
}

// quadIndices is the triangle list for quadVertices. Both triangles share the v0-v2 diagonal.
var quadIndices = [6]uint32{0, 1, 2, 2, 3, 0}

// VertexCount is the number of quad corners.
const VertexCount = len(quadVertices)

// IndexCount is the number of indices issued by the quad draw call.
const IndexCount = len(quadIndices)

// Vertices returns a copy of the quad corners.
func Vertices() [VertexCount]Vertex {
	return quadVertices
}

// Indices returns a copy of the quad triangle list.
func Indices() [IndexCount]uint32 {
	return quadIndices
}

// Attribute offsets within Vertex, matching @location(0) and @location(1) of the vertex shader.
const (
	PositionOffset = uint64(unsafe.Offsetof(Vertex{}.Position))
	ColourOffset   = uint64(unsafe.Offsetof(Vertex{}.Colour))
)

// VertexBytes encodes the quad vertices little-endian for upload.
func VertexBytes() []byte {
	buf := make([]byte, int(VertexStride)*VertexCount)
	off := 0
	for _, v := range quadVertices {
		off = common.PutFloat32s(buf, off, v.Position[:]...)
		off = common.PutFloat32s(buf, off, v.Colour[:]...)
	}
	return buf
}

// IndexBytes encodes the quad indices as little-endian uint32 for upload.
func IndexBytes() []byte {
	return common.Uint32sToBytes(quadIndices[:])
}

// Triangles groups the quad indices into vertex index triples.
func Triangles() [][3]uint32 {
	tris := make([][3]uint32, 0, IndexCount/3)
	for i := 0; i+2 < IndexCount; i += 3 {
		tris = append(tris, [3]uint32{quadIndices[i], quadIndices[i+1], quadIndices[i+2]})
	}
	return tris
}

// SignedArea returns twice the signed area of a triangle of the quad.
// Positive is counter-clockwise in clip space, negative is clockwise.
func SignedArea(tri [3]uint32) float32 {
	a := quadVertices[tri[0]].Position
	b := quadVertices[tri[1]].Position
	c := quadVertices[tri[2]].Position
	return (b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1])
}
