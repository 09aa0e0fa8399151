package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// RendererBackend is the GPU-facing half of the Renderer.
type RendererBackend interface {
	// ConfigureSurface (re)configures the presentation surface for the given size in pixels.
	ConfigureSurface(width, height int) error

	// Clear acquires the next surface image, clears it to color and presents it.
	Clear(color wgpu.Color) error

	// SetPresentMode selects the present mode used by the next ConfigureSurface call.
	SetPresentMode(mode PresentMode)

	// Release frees every GPU object owned by the backend.
	Release()
}
