package camera

import "github.com/go-gl/mathgl/mgl64"

// OrbitControls orbits, dollies, and pans a Camera around a target point in response to
// pointer, wheel, keyboard, and touch input. It maintains the camera's up direction.
//
//	Orbit - left mouse / one-finger move
//	Zoom  - middle mouse, mouse wheel / two-finger spread or squish
//	Pan   - right mouse, left mouse + ctrl/meta/shift, arrow keys / two-finger move
//
// Input handlers only accumulate deltas; Update applies them. The host must call Update once
// per frame and must call every method from a single goroutine. While attached, OrbitControls
// is the only writer of the camera's position, orientation, and zoom.
type OrbitControls interface {
	orbitControlsConfig

	// Update advances the camera by one frame: it applies pending rotation, pan, and dolly,
	// enforces all bounds, decays damped deltas, and notifies EventChange listeners when the
	// camera moved. Damping is per call, so its feel depends on the host's frame rate.
	//
	// Returns:
	//   - bool: true if the camera position, orientation, or zoom changed
	Update() bool

	// HandleEvent feeds one input event through the gesture state machine.
	//
	// Parameters:
	//   - ev: the raw input event
	//
	// Returns:
	//   - bool: true if the event was consumed and the host should suppress its default action
	HandleEvent(ev InputEvent) bool

	// Attach subscribes HandleEvent to src, detaching from any previous source first.
	//
	// Parameters:
	//   - src: the input source to listen to
	Attach(src InputSource)

	// Dispose detaches from the input source. Events and Update calls after Dispose are ignored.
	Dispose()

	// Disposed reports whether Dispose has been called.
	Disposed() bool

	// SaveState captures the current target, camera position, and zoom as the Reset baseline.
	SaveState()

	// Reset restores the baseline captured at construction or by the last SaveState,
	// clears pending deltas, and ends any active gesture with an EventEnd notification.
	Reset()

	// State returns the active gesture.
	State() GestureState

	// PolarAngle returns the current polar angle φ in radians, measured from the up axis.
	PolarAngle() float64

	// AzimuthalAngle returns the current azimuthal angle θ in radians.
	AzimuthalAngle() float64

	// Target returns the point the camera orbits around.
	Target() mgl64.Vec3

	// SetTarget moves the orbit point. Takes effect on the next Update.
	SetTarget(target mgl64.Vec3)

	// Camera returns the controlled camera.
	Camera() Camera

	// AddListener registers fn for notifications of the given kind.
	//
	// Parameters:
	//   - kind: EventStart, EventChange, or EventEnd
	//   - fn: callback receiving the event kind
	//
	// Returns:
	//   - ListenerID: handle for RemoveListener
	AddListener(kind EventKind, fn func(EventKind)) ListenerID

	// RemoveListener unregisters a listener. Unknown IDs are ignored.
	RemoveListener(id ListenerID)
}

// orbitControlsConfig is the runtime-mutable configuration surface of OrbitControls.
type orbitControlsConfig interface {
	Enabled() bool
	SetEnabled(enabled bool)

	EnableDamping() bool
	SetEnableDamping(enabled bool)
	DampingFactor() float64
	SetDampingFactor(factor float64)

	EnableZoom() bool
	SetEnableZoom(enabled bool)
	ZoomSpeed() float64
	SetZoomSpeed(speed float64)

	EnableRotate() bool
	SetEnableRotate(enabled bool)
	RotateSpeed() float64
	SetRotateSpeed(speed float64)

	EnablePan() bool
	SetEnablePan(enabled bool)
	PanSpeed() float64
	SetPanSpeed(speed float64)
	ScreenSpacePanning() bool
	SetScreenSpacePanning(enabled bool)

	EnableKeys() bool
	SetEnableKeys(enabled bool)
	KeyPanSpeed() float64
	SetKeyPanSpeed(pixels float64)

	AutoRotate() bool
	SetAutoRotate(enabled bool)
	AutoRotateSpeed() float64
	SetAutoRotateSpeed(speed float64)

	// DistanceBounds returns the dolly limits for perspective cameras.
	DistanceBounds() (min, max float64)
	SetDistanceBounds(min, max float64)

	// ZoomBounds returns the zoom limits for orthographic cameras.
	ZoomBounds() (min, max float64)
	SetZoomBounds(min, max float64)

	// PolarBounds returns the polar angle limits, a sub-interval of [0, π].
	PolarBounds() (min, max float64)
	SetPolarBounds(min, max float64)

	// AzimuthBounds returns the azimuth limits. Infinite bounds disable azimuth clamping.
	AzimuthBounds() (min, max float64)
	SetAzimuthBounds(min, max float64)

	MouseButtons() MouseButtons
	SetMouseButtons(buttons MouseButtons)
	Touches() Touches
	SetTouches(touches Touches)
	Keys() Keys
	SetKeys(keys Keys)
}
