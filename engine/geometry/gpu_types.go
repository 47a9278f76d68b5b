package geometry

import _ "embed"

// GPUVertexSource is the WGSL vertex input struct matching the Vertex memory layout.
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string
