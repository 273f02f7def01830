// Package wgpuhost adapts a wgpu device to the generator's host boundary.
// Generated WGSL is submitted as a shader module; the compiled module handle
// satisfies host.GpuProgram so a wgpu-backed engine can consume generated
// techniques directly. The package also carries the preview plumbing the
// examples use: a GLFW window with a wgpu surface, the device chain over it,
// and a matrix-backed auto-parameter source.
package wgpuhost

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/host"
	"github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"
)

// Program is a compiled shader module handle.
type Program struct {
	name   string
	module *wgpu.ShaderModule
}

var _ host.GpuProgram = &Program{}

// Name retrieves the program name derived from the content fingerprint.
//
// Returns:
//   - string: the program name
func (p *Program) Name() string {
	return p.name
}

// Module retrieves the underlying shader module for pipeline creation.
//
// Returns:
//   - *wgpu.ShaderModule: the compiled module
func (p *Program) Module() *wgpu.ShaderModule {
	return p.module
}

// compiler is the implementation of host.ProgramCompiler over a wgpu device.
type compiler struct {
	device *wgpu.Device
}

var _ host.ProgramCompiler = &compiler{}

// NewCompiler creates a program compiler over a wgpu device. Only the "wgsl"
// language tag is accepted; pair it with the wgsl writer.
//
// Parameters:
//   - device: the device shader modules are created on; must not be nil
//
// Returns:
//   - host.ProgramCompiler: the new compiler
func NewCompiler(device *wgpu.Device) host.ProgramCompiler {
	if device == nil {
		panic("wgpuhost: device is required")
	}
	return &compiler{device: device}
}

func (c *compiler) Compile(stage ir.Stage, language, profile, name, source string) (host.GpuProgram, error) {
	if language != "wgsl" {
		return nil, fmt.Errorf("wgpuhost: unsupported language %q, want wgsl", language)
	}
	module, err := c.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpuhost: %s stage %s: %w", stage, name, err)
	}
	return &Program{name: name, module: module}, nil
}
