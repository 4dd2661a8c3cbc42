// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcore

import (
	"fmt"

	"github.com/gogpu/naga"
)

// fullscreenTriangleWGSL is the shared vertex shader used by render
// passes that draw without vertex data: a six-vertex fullscreen pair.
const fullscreenTriangleWGSL = `
@vertex
fn main(@builtin(vertex_index) vi: u32) -> @builtin(position) vec4<f32> {
    var pos = array<vec2<f32>, 6>(
        vec2<f32>(-1.0, -1.0), vec2<f32>(1.0, -1.0), vec2<f32>(-1.0, 1.0),
        vec2<f32>(-1.0,  1.0), vec2<f32>(1.0, -1.0), vec2<f32>(1.0, 1.0),
    );
    return vec4<f32>(pos[vi], 0.0, 1.0);
}
`

// fullscreenVSGlobal keys the shared vertex shader in the device globals.
const fullscreenVSGlobal = "vkcore.fullscreenVS"

// fullscreenVertexShader compiles (once) and returns the shared
// fullscreen-triangle vertex shader, registered in the device globals.
func (d *Device) fullscreenVertexShader() (*Shader, error) {
	if s, ok := d.Global(fullscreenVSGlobal); ok {
		return s.(*Shader), nil
	}

	spv, err := naga.Compile(fullscreenTriangleWGSL)
	if err != nil {
		return nil, fmt.Errorf("%w: builtin vertex shader: %v", ErrShaderCompile, err)
	}
	vs, err := NewShader(d, spv)
	if err != nil {
		return nil, err
	}
	d.RegisterGlobal(fullscreenVSGlobal, vs)
	return vs, nil
}
