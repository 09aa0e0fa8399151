package camera

import "github.com/go-gl/mathgl/mgl64"

// OrbitControlsOption is a functional option for configuring OrbitControls.
type OrbitControlsOption func(*orbitControls)

// WithTarget sets the point the camera orbits around.
//
// Parameters:
//   - x: X coordinate of the target
//   - y: Y coordinate of the target
//   - z: Z coordinate of the target
//
// Returns:
//   - OrbitControlsOption: functional option to set the orbit target
func WithTarget(x, y, z float64) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.target = mgl64.Vec3{x, y, z}
	}
}

// WithDamping enables or disables inertia.
//
// Parameters:
//   - enabled: true to decay deltas over several frames instead of applying them at once
//
// Returns:
//   - OrbitControlsOption: functional option to toggle damping
func WithDamping(enabled bool) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.enableDamping = enabled
	}
}

// WithDampingFactor sets the fraction of each pending delta applied per Update while damping.
//
// Parameters:
//   - factor: a value in (0, 1]
//
// Returns:
//   - OrbitControlsOption: functional option to set the damping factor
func WithDampingFactor(factor float64) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.dampingFactor = factor
	}
}

// WithZoomControl toggles zooming and sets its speed.
//
// Parameters:
//   - enabled: whether dolly and zoom input is handled
//   - speed: zoom speed multiplier (1 = default)
//
// Returns:
//   - OrbitControlsOption: functional option to configure zoom
func WithZoomControl(enabled bool, speed float64) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.enableZoom = enabled
		oc.zoomSpeed = speed
	}
}

// WithRotateControl toggles rotation and sets its speed.
//
// Parameters:
//   - enabled: whether rotate input is handled
//   - speed: rotate speed multiplier (1 = default)
//
// Returns:
//   - OrbitControlsOption: functional option to configure rotation
func WithRotateControl(enabled bool, speed float64) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.enableRotate = enabled
		oc.rotateSpeed = speed
	}
}

// WithPanControl toggles panning and sets its speed.
//
// Parameters:
//   - enabled: whether pan input is handled
//   - speed: pan speed multiplier (1 = default)
//
// Returns:
//   - OrbitControlsOption: functional option to configure panning
func WithPanControl(enabled bool, speed float64) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.enablePan = enabled
		oc.panSpeed = speed
	}
}

// WithScreenSpacePanning pans in the camera's screen plane instead of the plane orthogonal to the up axis.
func WithScreenSpacePanning(enabled bool) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.screenSpacePanning = enabled
	}
}

// WithKeyControl toggles arrow-key panning and sets the pan step.
//
// Parameters:
//   - enabled: whether key input is handled
//   - pixels: pan distance per key press, in pixels
//
// Returns:
//   - OrbitControlsOption: functional option to configure key panning
func WithKeyControl(enabled bool, pixels float64) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.enableKeys = enabled
		oc.keyPanSpeed = pixels
	}
}

// WithAutoRotate spins the camera around the target on every Update.
//
// Parameters:
//   - enabled: whether auto-rotation runs
//   - speed: 2.0 is one orbit every 30 seconds at 60 updates per second
//
// Returns:
//   - OrbitControlsOption: functional option to configure auto-rotation
func WithAutoRotate(enabled bool, speed float64) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.autoRotate = enabled
		oc.autoRotateSpeed = speed
	}
}

// WithDistanceBounds limits how far a perspective camera can dolly.
func WithDistanceBounds(min, max float64) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.minDistance, oc.maxDistance = min, max
	}
}

// WithZoomBounds limits how far an orthographic camera can zoom.
func WithZoomBounds(min, max float64) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.minZoom, oc.maxZoom = min, max
	}
}

// WithPolarBounds limits the vertical orbit, in radians within [0, π].
func WithPolarBounds(min, max float64) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.minPolarAngle, oc.maxPolarAngle = min, max
	}
}

// WithAzimuthBounds limits the horizontal orbit, in radians.
// Both bounds must lie within [-2π, 2π] and max - min must be below 2π; pass infinities to disable.
func WithAzimuthBounds(min, max float64) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.minAzimuthAngle, oc.maxAzimuthAngle = min, max
	}
}

// WithMouseButtons remaps the mouse buttons.
func WithMouseButtons(buttons MouseButtons) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.mouseButtons = buttons
	}
}

// WithTouches remaps one- and two-finger gestures.
func WithTouches(touches Touches) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.touches = touches
	}
}

// WithKeys remaps the arrow keys.
func WithKeys(keys Keys) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.keys = keys
	}
}

// WithEnabled sets whether the controls react to input.
func WithEnabled(enabled bool) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.enabled = enabled
	}
}

// WithWarningHandler replaces the diagnostics hook used for non-fatal problems such as an
// unknown projection. Passing nil silences warnings.
//
// Parameters:
//   - warnf: printf-style sink, log.Printf by default
//
// Returns:
//   - OrbitControlsOption: functional option to set the warning handler
func WithWarningHandler(warnf func(format string, v ...any)) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.warnf = warnf
	}
}

// WithTouchIdentifierRecovery turns on the workaround for platforms that report a second finger
// only through TouchEvent.Identifier and TouchEvent.Location. When a move arrives whose first
// touch differs from the reporting identifier, the controls jump into a two-finger dolly-rotate.
func WithTouchIdentifierRecovery(enabled bool) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.touchIdentifierRecovery = enabled
	}
}
