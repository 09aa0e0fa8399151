package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/orbitcontrols/common"
	"github.com/Carmen-Shannon/orbitcontrols/engine/camera"
	"github.com/cogentcore/webgpu/wgpu"
)

// Surface is the presentation target a Renderer draws into.
// window.Window satisfies it.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// Renderer presents camera frames to a window surface.
// Each frame is cleared to a backdrop tinted by the camera's view direction, which makes
// orbiting visible without a scene graph.
type Renderer interface {
	// Render presents one frame for the given camera.
	//
	// Parameters:
	//   - cam: the camera whose orientation picks the backdrop colour
	//
	// Returns:
	//   - error: error if the surface image cannot be acquired or submitted
	Render(cam camera.Camera) error

	// Resize reconfigures the surface for a new framebuffer size.
	// Zero sizes are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: error if the surface cannot be configured
	Resize(width, height int) error

	// SetPresentMode changes the present mode and reconfigures the surface at its current size.
	SetPresentMode(mode PresentMode) error

	// Frames returns the number of frames presented so far.
	Frames() uint64

	// Release frees the GPU resources. The Renderer must not be used afterwards.
	Release()
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	width, height int
	frames        uint64

	// pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the given surface and configures it at the surface's size.
// Options are applied before the backend requests a GPU adapter.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - surface: the presentation target, usually a window.Window
//   - options: functional options for renderer configuration
//
// Returns:
//   - Renderer: the configured renderer
//   - error: error if the backend cannot be created or configured
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
	}
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter)
		if err != nil {
			return nil, fmt.Errorf("create wgpu backend: %w", err)
		}
		r.backend = b
	}

	if err := r.init(surface.Width(), surface.Height()); err != nil {
		r.backend.Release()
		return nil, err
	}
	return r, nil
}

// init applies pending options to a fresh backend and configures the surface.
func (r *renderer) init(width, height int) error {
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if err := r.Resize(width, height); err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}
	return nil
}

func (r *renderer) Render(cam camera.Camera) error {
	if err := r.backend.Clear(BackdropColor(cam)); err != nil {
		return err
	}
	r.mu.Lock()
	r.frames++
	r.mu.Unlock()
	return nil
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) error {
	r.backend.SetPresentMode(mode)
	r.mu.Lock()
	width, height := r.width, r.height
	r.mu.Unlock()
	return r.Resize(width, height)
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *renderer) Release() {
	r.backend.Release()
}

// BackdropColor maps the camera's viewing direction onto an opaque RGB colour.
// Each channel is centred on 0.5 and shifted by the matching component of the unit
// forward vector, so opposite views get complementary tints. Orthographic zoom
// brightens the colour slightly.
//
// Parameters:
//   - cam: the camera to sample
//
// Returns:
//   - wgpu.Color: the clear colour for the frame
func BackdropColor(cam camera.Camera) wgpu.Color {
	forward := cam.Matrix().Col(2).Vec3().Mul(-1)
	if l := forward.Len(); l > 0 {
		forward = forward.Mul(1 / l)
	}
	gain := 1.0
	if cam.Projection() == camera.ProjectionOrthographic && cam.Zoom() > 0 {
		gain = common.Clamp(0.9+0.1*cam.Zoom(), 0.9, 1.2)
	}
	channel := func(v float64) float64 {
		return common.Clamp((0.5+0.35*v)*gain, 0, 1)
	}
	return wgpu.Color{
		R: channel(forward.X()),
		G: channel(forward.Y()),
		B: channel(forward.Z()),
		A: 1,
	}
}
