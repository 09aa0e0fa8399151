package renderer

import (
	"errors"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/orbitcontrols/engine/camera"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	configured [][2]int
	cleared    []wgpu.Color
	mode       PresentMode
	clearErr   error
	released   bool
}

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	f.configured = append(f.configured, [2]int{width, height})
	return nil
}

func (f *fakeBackend) Clear(color wgpu.Color) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = append(f.cleared, color)
	return nil
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.mode = mode }
func (f *fakeBackend) Release()                        { f.released = true }

func newFakeRenderer(t *testing.T, width, height int, options ...RendererBuilderOption) (*renderer, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{mode: PresentModeVSync}
	r := &renderer{mu: &sync.Mutex{}, backend: fb}
	for _, opt := range options {
		opt(r)
	}
	require.NoError(t, r.init(width, height))
	return r, fb
}

func TestRendererInit(t *testing.T) {
	t.Parallel()

	_, fb := newFakeRenderer(t, 640, 480, WithPresentMode(PresentModeUncapped))
	assert.Equal(t, PresentModeUncapped, fb.mode)
	assert.Equal(t, [][2]int{{640, 480}}, fb.configured)
}

func TestRendererResizeIgnoresZero(t *testing.T) {
	t.Parallel()

	r, fb := newFakeRenderer(t, 640, 480)
	require.NoError(t, r.Resize(0, 300))
	require.NoError(t, r.Resize(300, 0))
	require.NoError(t, r.Resize(1024, 768))
	assert.Equal(t, [][2]int{{640, 480}, {1024, 768}}, fb.configured)
}

func TestRendererSetPresentModeReconfigures(t *testing.T) {
	t.Parallel()

	r, fb := newFakeRenderer(t, 640, 480)
	require.NoError(t, r.SetPresentMode(PresentModeUncapped))
	assert.Equal(t, PresentModeUncapped, fb.mode)
	assert.Equal(t, [][2]int{{640, 480}, {640, 480}}, fb.configured)
}

func TestRendererRender(t *testing.T) {
	t.Parallel()

	r, fb := newFakeRenderer(t, 640, 480)
	cam := camera.NewCamera(camera.WithPosition(0, 0, 10))

	require.NoError(t, r.Render(cam))
	assert.Equal(t, uint64(1), r.Frames())
	require.Len(t, fb.cleared, 1)
	assert.Equal(t, BackdropColor(cam), fb.cleared[0])

	fb.clearErr = errors.New("surface lost")
	assert.ErrorIs(t, r.Render(cam), fb.clearErr)
	assert.Equal(t, uint64(1), r.Frames())

	r.Release()
	assert.True(t, fb.released)
}

func TestBackdropColor(t *testing.T) {
	t.Parallel()

	// looking down -Z
	c := BackdropColor(camera.NewCamera(camera.WithPosition(0, 0, 10)))
	assert.InDelta(t, 0.5, c.R, 1e-9)
	assert.InDelta(t, 0.5, c.G, 1e-9)
	assert.InDelta(t, 0.15, c.B, 1e-9)
	assert.Equal(t, 1.0, c.A)

	// looking down -X
	c = BackdropColor(camera.NewCamera(camera.WithPosition(4, 0, 0)))
	assert.InDelta(t, 0.15, c.R, 1e-9)
	assert.InDelta(t, 0.5, c.B, 1e-9)

	// opposite views are complementary
	front := BackdropColor(camera.NewCamera(camera.WithPosition(0, 0, 10)))
	back := BackdropColor(camera.NewCamera(camera.WithPosition(0, 0, -10)))
	assert.InDelta(t, 1.0, front.B+back.B, 1e-9)
}

func TestBackdropColorOrthographicZoom(t *testing.T) {
	t.Parallel()

	cam := camera.NewCamera(camera.WithPosition(0, 0, 10), camera.WithOrthographic(-1, 1, 1, -1))
	base := BackdropColor(cam)
	cam.SetZoom(3)
	zoomed := BackdropColor(cam)
	assert.Greater(t, zoomed.R, base.R)
	assert.LessOrEqual(t, zoomed.R, 1.0)
}
