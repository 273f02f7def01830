package wgpuhost

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Display bundles the wgpu objects a preview needs: instance, adapter, device,
// queue, and the window surface. It owns surface configuration so resize
// handling is a single call.
type Display struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface
	format   wgpu.TextureFormat
}

// NewDisplay creates the wgpu device chain over a window surface.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor from the window
//
// Returns:
//   - *Display: the initialized display
//   - error: error if adapter or device acquisition fails
func NewDisplay(surfaceDescriptor *wgpu.SurfaceDescriptor) (*Display, error) {
	d := &Display{instance: wgpu.CreateInstance(nil)}
	d.surface = d.instance.CreateSurface(surfaceDescriptor)

	adapter, err := d.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: d.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpuhost: requesting adapter: %w", err)
	}
	d.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Shader Preview Device",
	})
	if err != nil {
		return nil, fmt.Errorf("wgpuhost: requesting device: %w", err)
	}
	d.device = device
	d.queue = device.GetQueue()
	return d, nil
}

// Configure sizes the surface for the current framebuffer. Call once after
// creation and again on every resize.
//
// Parameters:
//   - width: framebuffer width in pixels
//   - height: framebuffer height in pixels
func (d *Display) Configure(width, height int) {
	capabilities := d.surface.GetCapabilities(d.adapter)
	d.format = capabilities.Formats[0]
	d.surface.Configure(d.adapter, d.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      d.format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   capabilities.AlphaModes[0],
	})
}

// Device retrieves the wgpu device, the input for NewCompiler.
//
// Returns:
//   - *wgpu.Device: the device
func (d *Display) Device() *wgpu.Device {
	return d.device
}

// Queue retrieves the device's default queue.
//
// Returns:
//   - *wgpu.Queue: the queue
func (d *Display) Queue() *wgpu.Queue {
	return d.queue
}

// Surface retrieves the configured window surface.
//
// Returns:
//   - *wgpu.Surface: the surface
func (d *Display) Surface() *wgpu.Surface {
	return d.surface
}

// Format retrieves the surface texture format chosen at configuration.
//
// Returns:
//   - wgpu.TextureFormat: the surface format
func (d *Display) Format() wgpu.TextureFormat {
	return d.format
}
