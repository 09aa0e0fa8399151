package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Carmen-Shannon/orbitcontrols/common"
	"github.com/Carmen-Shannon/orbitcontrols/engine/camera"
	"github.com/Carmen-Shannon/orbitcontrols/engine/renderer"
	"github.com/Carmen-Shannon/orbitcontrols/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow records callbacks so tests can fire them as the platform would.
type fakeWindow struct {
	width, height int

	onUpdate      func()
	onResize      func(width, height int)
	onScroll      func(dy float64)
	onKeyDown     func(keyCode int, mods common.ModifierKey)
	onKeyUp       func(keyCode int, mods common.ModifierKey)
	onMouseButton func(button int, pressed bool, x, y float64, mods common.ModifierKey)
	onMouseMove   func(x, y float64)
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) SetUpdateCallback(cb func())                    { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int))    { w.onResize = cb }
func (w *fakeWindow) SetScrollCallback(cb func(dy float64))           { w.onScroll = cb }
func (w *fakeWindow) SetMouseMoveCallback(cb func(x, y float64))      { w.onMouseMove = cb }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor      { return nil }
func (w *fakeWindow) IsRunning() bool                                 { return false }
func (w *fakeWindow) Close() error                                    { return nil }
func (w *fakeWindow) ProcessMessages()                                {}
func (w *fakeWindow) Width() int                                      { return w.width }
func (w *fakeWindow) Height() int                                     { return w.height }
func (w *fakeWindow) SetKeyDownCallback(cb func(int, common.ModifierKey)) { w.onKeyDown = cb }
func (w *fakeWindow) SetKeyUpCallback(cb func(int, common.ModifierKey))   { w.onKeyUp = cb }
func (w *fakeWindow) SetMouseButtonCallback(cb func(int, bool, float64, float64, common.ModifierKey)) {
	w.onMouseButton = cb
}

type fakeRenderer struct {
	renders   int
	resizes   [][2]int
	renderErr error
}

func (r *fakeRenderer) Render(camera.Camera) error {
	if r.renderErr != nil {
		return r.renderErr
	}
	r.renders++
	return nil
}

func (r *fakeRenderer) Resize(width, height int) error {
	r.resizes = append(r.resizes, [2]int{width, height})
	return nil
}

func (r *fakeRenderer) SetPresentMode(renderer.PresentMode) error { return nil }
func (r *fakeRenderer) Frames() uint64                             { return uint64(r.renders) }
func (r *fakeRenderer) Release()                                   {}

var _ renderer.Renderer = &fakeRenderer{}

func newTestEngine(t *testing.T, options ...EngineBuilderOption) (*engine, *fakeWindow) {
	t.Helper()
	fw := &fakeWindow{width: 800, height: 500}
	e, ok := NewEngine(append([]EngineBuilderOption{WithWindow(fw)}, options...)...).(*engine)
	require.True(t, ok)
	return e, fw
}

func attachTestControls(t *testing.T, e *engine) (camera.Camera, camera.OrbitControls) {
	t.Helper()
	cam := camera.NewCamera(camera.WithPosition(0, 0, 10), camera.WithAspect(800.0/500.0))
	controls := camera.NewOrbitControls(cam, e.Viewport(),
		camera.WithDamping(false),
		camera.WithWarningHandler(t.Logf),
	)
	e.AttachControls(controls)
	return cam, controls
}

func TestWindowCallbacksQueueEvents(t *testing.T) {
	t.Parallel()

	e, fw := newTestEngine(t)
	var got []camera.InputEvent
	e.Input().Subscribe(func(ev camera.InputEvent) bool {
		got = append(got, ev)
		return false
	})

	fw.onMouseButton(common.ButtonLeft, true, 10, 20, common.ModControl|common.ModShift)
	fw.onMouseMove(15, 20)
	fw.onScroll(1)
	fw.onKeyDown(common.KeyUp, 0)
	fw.onMouseButton(common.ButtonLeft, false, 15, 20, 0)

	assert.Empty(t, got, "events are delivered on tick, not from the window thread")
	e.tick(0)

	want := []camera.InputEvent{
		camera.PointerDownEvent{Button: common.ButtonLeft, X: 10, Y: 20, Ctrl: true, Shift: true},
		camera.PointerMoveEvent{X: 15, Y: 20},
		camera.WheelEvent{DeltaY: -1},
		camera.KeyDownEvent{KeyCode: common.KeyUp},
		camera.PointerUpEvent{Button: common.ButtonLeft, X: 15, Y: 20},
	}
	assert.Equal(t, want, got)
}

func TestInputQueueDropsWhenFull(t *testing.T) {
	t.Parallel()

	var logs []string
	q := newInputQueue(2, func(format string, args ...any) {
		logs = append(logs, fmt.Sprintf(format, args...))
	})

	assert.True(t, q.push(camera.KeyDownEvent{KeyCode: 1}))
	assert.True(t, q.push(camera.KeyDownEvent{KeyCode: 2}))
	assert.False(t, q.push(camera.KeyDownEvent{KeyCode: 3}))
	assert.Equal(t, uint64(1), q.dropped.Load())
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0], "[Engine] input queue full")

	var codes []int
	q.Subscribe(func(ev camera.InputEvent) bool {
		codes = append(codes, ev.(camera.KeyDownEvent).KeyCode)
		return true
	})
	assert.Equal(t, 2, q.drain())
	assert.Equal(t, []int{1, 2}, codes)
	assert.Equal(t, 0, q.drain())
}

func TestInputQueueSubscribers(t *testing.T) {
	t.Parallel()

	q := newInputQueue(8, t.Logf)
	var order []string

	var unsubscribeFirst func()
	unsubscribeFirst = q.Subscribe(func(camera.InputEvent) bool {
		order = append(order, "first")
		unsubscribeFirst()
		return false
	})
	unsubscribeSecond := q.Subscribe(func(camera.InputEvent) bool {
		order = append(order, "second")
		return false
	})

	q.push(camera.ContextMenuEvent{})
	q.push(camera.ContextMenuEvent{})
	q.drain()
	assert.Equal(t, []string{"first", "second", "second"}, order)

	unsubscribeSecond()
	unsubscribeSecond()
	q.push(camera.ContextMenuEvent{})
	q.drain()
	assert.Len(t, order, 3)
	assert.Empty(t, q.handlers)
}

func TestTickDrivesControls(t *testing.T) {
	t.Parallel()

	e, fw := newTestEngine(t)
	cam, controls := attachTestControls(t, e)
	assert.Same(t, controls, e.Controls())

	var calls []bool
	e.SetTickCallback(func(_ float32, changed bool) {
		calls = append(calls, changed)
	})

	e.redraw.Store(false)
	assert.False(t, e.tick(0.016))
	assert.False(t, e.redraw.Load())

	before := cam.Position()
	fw.onMouseButton(common.ButtonLeft, true, 100, 100, 0)
	fw.onMouseMove(200, 100)
	assert.True(t, e.tick(0.016))
	assert.True(t, e.redraw.Load())
	assert.Equal(t, []bool{false, true}, calls)

	after := cam.Position()
	assert.False(t, before.ApproxEqualThreshold(after, 1e-9))
	assert.InDelta(t, before.Len(), after.Len(), 1e-9)
	assert.Equal(t, camera.GestureRotate, controls.State())

	fw.onMouseButton(common.ButtonLeft, false, 200, 100, 0)
	e.tick(0.016)
	assert.Equal(t, camera.GestureNone, controls.State())
}

func TestHomeKeySubscriberRunsOnTick(t *testing.T) {
	t.Parallel()

	e, fw := newTestEngine(t)
	cam, controls := attachTestControls(t, e)
	e.Input().Subscribe(func(ev camera.InputEvent) bool {
		if k, ok := ev.(camera.KeyDownEvent); ok && k.KeyCode == common.KeyHome {
			controls.Reset()
			return true
		}
		return false
	})
	home := cam.Position()

	fw.onScroll(-1)
	e.tick(0.016)
	require.False(t, home.ApproxEqualThreshold(cam.Position(), 1e-9))

	fw.onKeyDown(common.KeyHome, 0)
	e.tick(0.016)
	assert.True(t, home.ApproxEqualThreshold(cam.Position(), 1e-9))
}

func TestResizeAppliedOnTick(t *testing.T) {
	t.Parallel()

	e, fw := newTestEngine(t)
	cam, _ := attachTestControls(t, e)
	e.surfaceStale.Store(false)

	fw.onResize(1000, 500)
	assert.Equal(t, 1000, e.Viewport().Width())
	assert.Equal(t, 500, e.Viewport().Height())
	assert.InDelta(t, 800.0/500.0, cam.Aspect(), 1e-12)

	e.tick(0.016)
	assert.InDelta(t, 2.0, cam.Aspect(), 1e-12)
	assert.True(t, e.surfaceStale.Load())
	assert.True(t, e.redraw.Load())
}

func TestRenderFrame(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	fr := &fakeRenderer{}

	// nothing to draw without controls
	e.SetRenderer(fr)
	assert.False(t, e.renderFrame())

	attachTestControls(t, e)
	assert.True(t, e.renderFrame())
	assert.Equal(t, 1, fr.renders)
	assert.Equal(t, [][2]int{{800, 500}}, fr.resizes)

	assert.False(t, e.renderFrame(), "no redraw pending")

	e.RequestRedraw()
	assert.True(t, e.renderFrame())
	assert.Equal(t, 2, fr.renders)

	fr.renderErr = errors.New("surface lost")
	e.RequestRedraw()
	assert.False(t, e.renderFrame())
	assert.Len(t, fr.resizes, 1)
}

func TestAttachControlsDisposesPrevious(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	_, first := attachTestControls(t, e)
	_, second := attachTestControls(t, e)

	assert.True(t, first.Disposed())
	assert.False(t, second.Disposed())
	assert.Same(t, second, e.Controls())
}

func TestSwapControlsAndRendererWhileTicking(t *testing.T) {
	t.Parallel()

	e, fw := newTestEngine(t)
	_, first := attachTestControls(t, e)
	e.SetRenderer(&fakeRenderer{})

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
				e.tick(0.016)
				e.renderFrame()
			}
		}
	}()

	var last camera.OrbitControls
	var previous []camera.OrbitControls
	for i := 0; i < 20; i++ {
		fw.onMouseButton(common.ButtonLeft, true, 100, 100, 0)
		fw.onMouseMove(100+float64(i), 100)
		fw.onMouseButton(common.ButtonLeft, false, 100+float64(i), 100, 0)
		if last != nil {
			previous = append(previous, last)
		}
		_, last = attachTestControls(t, e)
		e.SetRenderer(&fakeRenderer{})
	}
	close(stop)
	<-done

	assert.True(t, first.Disposed())
	for _, c := range previous {
		assert.True(t, c.Disposed())
	}
	assert.Same(t, last, e.Controls())
	assert.False(t, last.Disposed())
}

func TestHeadlessRunStopsOnQuit(t *testing.T) {
	t.Parallel()

	e, ok := NewEngine(WithTickRate(240)).(*engine)
	require.True(t, ok)

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	require.Eventually(t, e.running.Load, time.Second, time.Millisecond)
	e.Quit()
	e.Quit()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
	assert.False(t, e.running.Load())
}

func TestSetTickRate(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	e.SetTickRate(120)
	assert.Equal(t, time.Second/120, e.engineTickRate)

	e.SetTickRate(0)
	assert.Equal(t, time.Second/60, e.engineTickRate)

	e.running.Store(true)
	e.SetTickRate(30)
	e.SetTickRate(20)
	assert.Equal(t, time.Second/20, <-e.tickRateChannel)
}
