package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/orbitcontrols/common"
	"github.com/Carmen-Shannon/orbitcontrols/engine/camera"
	"github.com/Carmen-Shannon/orbitcontrols/engine/profiler"
	"github.com/Carmen-Shannon/orbitcontrols/engine/renderer"
	"github.com/Carmen-Shannon/orbitcontrols/engine/window"
)

// idleRenderSleep is how long the render loop sleeps when no redraw is pending.
const idleRenderSleep = 2 * time.Millisecond

// engine implements the Engine interface.
// Coordinates the tick, render, and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	// renderMu guards renderer and is held for a whole frame, so a replaced renderer is idle
	// once SetRenderer returns.
	renderMu *sync.Mutex
	renderer renderer.Renderer

	// controlsMu guards controls and is held while the tick goroutine drives them.
	controlsMu *sync.Mutex
	controls   camera.OrbitControls

	input          *inputQueue
	inputQueueSize int
	viewport       *viewport

	// set on the window thread, consumed on the tick goroutine
	resized atomic.Bool
	// set on the tick goroutine, consumed on the render goroutine
	surfaceStale atomic.Bool
	redraw       atomic.Bool

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32, changed bool)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the host loop for an orbit-controlled camera.
// Window callbacks are queued as controller input events; the tick goroutine drains the queue,
// advances the controls and flags a redraw when the camera changed; the render goroutine
// presents flagged frames.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil for a headless engine
	Window() window.Window

	// Input returns the event source fed by the window callbacks.
	// Subscribers run on the tick goroutine, in registration order, while the controls are
	// locked; they must not call Controls or AttachControls.
	//
	// Returns:
	//   - camera.InputSource: the engine's input queue
	Input() camera.InputSource

	// Viewport returns the current framebuffer size, safe to read from any goroutine.
	//
	// Returns:
	//   - camera.Viewport: the live viewport
	Viewport() camera.Viewport

	// AttachControls sets the controls advanced each tick and subscribes them to Input.
	// Any previously attached controls are disposed. Safe to call while running, but not from
	// an input subscriber, which already runs inside the tick.
	//
	// Parameters:
	//   - controls: the orbit controls to drive
	AttachControls(controls camera.OrbitControls)

	// Controls returns the attached controls, or nil.
	Controls() camera.OrbitControls

	// SetRenderer sets the renderer used by the render goroutine.
	// It waits for an in-flight frame, after which the previous renderer may be released.
	//
	// Parameters:
	//   - r: the renderer (or nil to stop presenting)
	SetRenderer(r renderer.Renderer)

	// RequestRedraw flags the next render loop iteration to present a frame.
	RequestRedraw()

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called after each tick's controls update.
	//
	// Parameters:
	//   - callback: receives the delta time in seconds and whether the camera changed this tick
	SetTickCallback(callback func(deltaTime float32, changed bool))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the tick and render goroutines and runs the window message loop.
	// Blocks until the window closes or Quit is called, then waits for the goroutines to exit.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// When a window is configured its input and resize callbacks are bound to the engine.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		inputQueueSize:  256,
		viewport:        &viewport{},
		renderMu:        &sync.Mutex{},
		controlsMu:      &sync.Mutex{},
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	e.input = newInputQueue(e.inputQueueSize, log.Printf)
	if e.window != nil {
		e.viewport.set(e.window.Width(), e.window.Height())
		e.bindWindow(e.window)
	}
	e.redraw.Store(true)

	return e
}

// bindWindow translates raw window callbacks into queued controller events.
// The callbacks run on the window thread and never touch the controls directly.
func (e *engine) bindWindow(w window.Window) {
	w.SetMouseButtonCallback(func(button int, pressed bool, x, y float64, mods common.ModifierKey) {
		p := camera.PointerEvent{
			Button: button,
			X:      x,
			Y:      y,
			Ctrl:   mods.Has(common.ModControl),
			Meta:   mods.Has(common.ModSuper),
			Shift:  mods.Has(common.ModShift),
		}
		if pressed {
			e.input.push(camera.PointerDownEvent(p))
			return
		}
		e.input.push(camera.PointerUpEvent(p))
	})

	w.SetMouseMoveCallback(func(x, y float64) {
		e.input.push(camera.PointerMoveEvent{X: x, Y: y})
	})

	// positive offsets push the wheel away from the user, which is a negative DOM deltaY
	w.SetScrollCallback(func(dy float64) {
		e.input.push(camera.WheelEvent{DeltaY: -dy})
	})

	w.SetKeyDownCallback(func(keyCode int, _ common.ModifierKey) {
		e.input.push(camera.KeyDownEvent{KeyCode: keyCode})
	})

	w.SetResizeCallback(func(width, height int) {
		e.viewport.set(width, height)
		e.resized.Store(true)
	})
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Input() camera.InputSource {
	return e.input
}

func (e *engine) Viewport() camera.Viewport {
	return e.viewport
}

func (e *engine) AttachControls(controls camera.OrbitControls) {
	e.controlsMu.Lock()
	defer e.controlsMu.Unlock()

	if e.controls != nil && e.controls != controls {
		e.controls.Dispose()
	}
	e.controls = controls
	if controls != nil {
		controls.Attach(e.input)
	}
	e.redraw.Store(true)
}

func (e *engine) Controls() camera.OrbitControls {
	e.controlsMu.Lock()
	defer e.controlsMu.Unlock()
	return e.controls
}

func (e *engine) SetRenderer(r renderer.Renderer) {
	e.renderMu.Lock()
	e.renderer = r
	e.renderMu.Unlock()
	e.surfaceStale.Store(true)
	e.redraw.Store(true)
}

func (e *engine) RequestRedraw() {
	e.redraw.Store(true)
}

func (e *engine) Run() {
	e.running.Store(true)
	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// handle launches the tick and render goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleRender()
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Listens for dynamic rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.tick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// tick drains queued input, applies a pending resize, and advances the controls.
//
// Returns:
//   - bool: true if the camera changed this tick
func (e *engine) tick(dt float32) bool {
	changed := e.advance()
	if changed {
		e.redraw.Store(true)
	}

	if e.tickCallback != nil {
		e.tickCallback(dt, changed)
	}
	return changed
}

// advance runs the input, resize, and update steps of a tick with the controls locked.
func (e *engine) advance() bool {
	e.controlsMu.Lock()
	defer e.controlsMu.Unlock()

	e.input.drain()

	if e.resized.Swap(false) {
		e.applyResize()
	}

	if e.controls == nil {
		return false
	}
	return e.controls.Update()
}

// applyResize refreshes the camera projection for the new viewport and marks the surface stale.
// The caller holds controlsMu.
func (e *engine) applyResize() {
	width, height := e.viewport.Width(), e.viewport.Height()
	if e.controls != nil && width > 0 && height > 0 {
		cam := e.controls.Camera()
		aspect := float64(width) / float64(height)
		switch cam.Projection() {
		case camera.ProjectionPerspective:
			cam.SetAspect(aspect)
		case camera.ProjectionOrthographic:
			// keep the vertical extent and centre, widen or narrow horizontally
			left, right, top, bottom := cam.Frustum()
			centre, half := (left+right)/2, (top-bottom)/2*aspect
			cam.SetFrustum(centre-half, centre+half, top, bottom)
		}
		cam.UpdateProjectionMatrix()
	}
	e.surfaceStale.Store(true)
	e.redraw.Store(true)
}

// handleRender runs the render loop in its own goroutine.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			start := time.Now()
			drawn := e.renderFrame()

			if e.profilingEnabled.Load() && e.profiler != nil {
				e.profiler.Tick(drawn)
			}

			if !drawn {
				time.Sleep(idleRenderSleep)
				continue
			}
			if e.renderFrameLimit > 0 {
				if remaining := e.renderFrameLimit - time.Since(start); remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// renderFrame reconfigures a stale surface and presents a frame if one was requested.
//
// Returns:
//   - bool: true if a frame was presented
func (e *engine) renderFrame() bool {
	e.renderMu.Lock()
	defer e.renderMu.Unlock()

	r := e.renderer
	e.controlsMu.Lock()
	controls := e.controls
	e.controlsMu.Unlock()
	if r == nil || controls == nil {
		return false
	}

	if e.surfaceStale.Swap(false) {
		if err := r.Resize(e.viewport.Width(), e.viewport.Height()); err != nil {
			log.Printf("[Engine] resize surface: %v", err)
		}
	}

	if !e.redraw.Swap(false) {
		return false
	}
	if err := r.Render(controls.Camera()); err != nil {
		log.Printf("[Engine] render: %v", err)
		return false
	}
	return true
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if !e.running.Load() {
		e.engineTickRate = newRate
		return
	}

	// replace any pending update rather than block
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32, changed bool)) {
	e.tickCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
