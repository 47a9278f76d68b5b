package frame

import _ "embed"

// GPUUniformsSource is the WGSL definition of the uniform block written by UniformBlock.Marshal.
//
//go:embed assets/sdf_uniforms.wgsl
var GPUUniformsSource string
