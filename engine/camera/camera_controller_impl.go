package camera

import (
	"log"
	"math"

	"github.com/Carmen-Shannon/orbitcontrols/common"
	"github.com/go-gl/mathgl/mgl64"
)

// orbitControls is the single implementation of OrbitControls.
// It carries no lock: the host serialises input and Update on one goroutine.
type orbitControls struct {
	camera   Camera
	viewport Viewport

	// Configuration
	enabled            bool
	enableDamping      bool
	dampingFactor      float64
	enableZoom         bool
	zoomSpeed          float64
	enableRotate       bool
	rotateSpeed        float64
	enablePan          bool
	panSpeed           float64
	screenSpacePanning bool
	enableKeys         bool
	keyPanSpeed        float64
	autoRotate         bool
	autoRotateSpeed    float64

	minDistance, maxDistance         float64
	minZoom, maxZoom                 float64
	minPolarAngle, maxPolarAngle     float64
	minAzimuthAngle, maxAzimuthAngle float64

	mouseButtons MouseButtons
	touches      Touches
	keys         Keys

	touchIdentifierRecovery bool
	warnf                   func(format string, v ...any)

	// Orbit state
	target         mgl64.Vec3
	spherical      Spherical
	sphericalDelta Spherical
	panOffset      mgl64.Vec3
	scale          float64
	zoomChanged    bool
	state          GestureState

	// Gesture anchors in screen space
	rotateStart, rotateEnd mgl64.Vec2
	panStart, panEnd       mgl64.Vec2
	dollyStart, dollyEnd   mgl64.Vec2

	// Rotation into and out of "y-axis-is-up" space, fixed at construction from camera.Up()
	upQuat        mgl64.Quat
	upQuatInverse mgl64.Quat

	// Change detection baseline
	lastPosition   mgl64.Vec3
	lastQuaternion mgl64.Quat

	// Reset baseline
	target0   mgl64.Vec3
	position0 mgl64.Vec3
	zoom0     float64

	listeners      []listener
	nextListenerID ListenerID

	unsubscribe func()
	disposed    bool
}

// Compile-time interface compliance check
var _ OrbitControls = &orbitControls{}

// NewOrbitControls creates controls for cam. The reset baseline is captured from the camera's
// state after options are applied, and one Update runs so the camera faces the target.
//
// Parameters:
//   - cam: the camera to control
//   - viewport: the input surface size, used to convert pixels into angles and distances
//   - options: functional options to configure the controls
//
// Returns:
//   - OrbitControls: the newly created controls
func NewOrbitControls(cam Camera, viewport Viewport, options ...OrbitControlsOption) OrbitControls {
	oc := &orbitControls{
		camera:   cam,
		viewport: viewport,

		enabled:         true,
		enableDamping:   true,
		dampingFactor:   0.05,
		enableZoom:      true,
		zoomSpeed:       1.0,
		enableRotate:    true,
		rotateSpeed:     1.0,
		enablePan:       false,
		panSpeed:        1.0,
		enableKeys:      true,
		keyPanSpeed:     7.0, // pixels per arrow key push
		autoRotateSpeed: 2.0, // 30 seconds per orbit at 60 updates per second

		minDistance:     0,
		maxDistance:     math.Inf(1),
		minZoom:         0,
		maxZoom:         100,
		minPolarAngle:   0,
		maxPolarAngle:   math.Pi,
		minAzimuthAngle: math.Inf(-1),
		maxAzimuthAngle: math.Inf(1),

		mouseButtons: MouseButtons{Left: MouseRotate, Middle: MouseDolly, Right: MousePan},
		touches:      Touches{One: TouchRotate, Two: TouchDollyPan},
		keys:         Keys{Left: common.KeyLeft, Up: common.KeyUp, Right: common.KeyRight, Bottom: common.KeyDown},

		warnf: log.Printf,

		scale:          1,
		state:          GestureNone,
		lastQuaternion: mgl64.QuatIdent(),
	}

	for _, option := range options {
		option(oc)
	}

	oc.upQuat = mgl64.QuatBetweenVectors(cam.Up(), mgl64.Vec3{0, 1, 0})
	oc.upQuatInverse = oc.upQuat.Inverse()

	oc.SaveState()
	oc.Update()
	return oc
}

// --- lifecycle ---

func (oc *orbitControls) Attach(src InputSource) {
	if oc.disposed || src == nil {
		return
	}
	if oc.unsubscribe != nil {
		oc.unsubscribe()
	}
	oc.unsubscribe = src.Subscribe(oc.HandleEvent)
}

func (oc *orbitControls) Dispose() {
	if oc.unsubscribe != nil {
		oc.unsubscribe()
		oc.unsubscribe = nil
	}
	oc.disposed = true
}

func (oc *orbitControls) Disposed() bool {
	return oc.disposed
}

func (oc *orbitControls) SaveState() {
	oc.target0 = oc.target
	oc.position0 = oc.camera.Position()
	oc.zoom0 = oc.camera.Zoom()
}

func (oc *orbitControls) Reset() {
	if oc.disposed {
		return
	}
	oc.target = oc.target0
	oc.camera.SetPosition(oc.position0)
	oc.camera.SetZoom(oc.zoom0)
	oc.camera.UpdateProjectionMatrix()

	oc.sphericalDelta = Spherical{}
	oc.panOffset = mgl64.Vec3{}
	oc.scale = 1
	oc.zoomChanged = false

	oc.notify(EventChange)
	oc.Update()
	oc.finish()
}

// --- notifications ---

func (oc *orbitControls) AddListener(kind EventKind, fn func(EventKind)) ListenerID {
	oc.nextListenerID++
	oc.listeners = append(oc.listeners, listener{id: oc.nextListenerID, kind: kind, fn: fn})
	return oc.nextListenerID
}

func (oc *orbitControls) RemoveListener(id ListenerID) {
	for i, l := range oc.listeners {
		if l.id == id {
			oc.listeners = append(oc.listeners[:i], oc.listeners[i+1:]...)
			return
		}
	}
}

// notify calls every listener registered for kind, in registration order.
// Listeners added or removed during a notification take effect from the next one.
func (oc *orbitControls) notify(kind EventKind) {
	listeners := make([]listener, len(oc.listeners))
	copy(listeners, oc.listeners)
	for _, l := range listeners {
		if l.kind == kind && l.fn != nil {
			l.fn(kind)
		}
	}
}

// warn reports a non-fatal problem through the diagnostics hook.
func (oc *orbitControls) warn(format string, v ...any) {
	if oc.warnf != nil {
		oc.warnf("[OrbitControls] "+format, v...)
	}
}

// --- state accessors ---

func (oc *orbitControls) State() GestureState {
	return oc.state
}

func (oc *orbitControls) PolarAngle() float64 {
	return oc.spherical.Phi
}

func (oc *orbitControls) AzimuthalAngle() float64 {
	return oc.spherical.Theta
}

func (oc *orbitControls) Target() mgl64.Vec3 {
	return oc.target
}

func (oc *orbitControls) SetTarget(target mgl64.Vec3) {
	oc.target = target
}

func (oc *orbitControls) Camera() Camera {
	return oc.camera
}

// --- configuration ---

func (oc *orbitControls) Enabled() bool                     { return oc.enabled }
func (oc *orbitControls) SetEnabled(enabled bool)           { oc.enabled = enabled }
func (oc *orbitControls) EnableDamping() bool               { return oc.enableDamping }
func (oc *orbitControls) SetEnableDamping(enabled bool)     { oc.enableDamping = enabled }
func (oc *orbitControls) DampingFactor() float64            { return oc.dampingFactor }
func (oc *orbitControls) SetDampingFactor(factor float64)   { oc.dampingFactor = factor }
func (oc *orbitControls) EnableZoom() bool                  { return oc.enableZoom }
func (oc *orbitControls) SetEnableZoom(enabled bool)        { oc.enableZoom = enabled }
func (oc *orbitControls) ZoomSpeed() float64                { return oc.zoomSpeed }
func (oc *orbitControls) SetZoomSpeed(speed float64)        { oc.zoomSpeed = speed }
func (oc *orbitControls) EnableRotate() bool                { return oc.enableRotate }
func (oc *orbitControls) SetEnableRotate(enabled bool)      { oc.enableRotate = enabled }
func (oc *orbitControls) RotateSpeed() float64              { return oc.rotateSpeed }
func (oc *orbitControls) SetRotateSpeed(speed float64)      { oc.rotateSpeed = speed }
func (oc *orbitControls) EnablePan() bool                   { return oc.enablePan }
func (oc *orbitControls) SetEnablePan(enabled bool)         { oc.enablePan = enabled }
func (oc *orbitControls) PanSpeed() float64                 { return oc.panSpeed }
func (oc *orbitControls) SetPanSpeed(speed float64)         { oc.panSpeed = speed }
func (oc *orbitControls) ScreenSpacePanning() bool          { return oc.screenSpacePanning }
func (oc *orbitControls) SetScreenSpacePanning(enabled bool) { oc.screenSpacePanning = enabled }
func (oc *orbitControls) EnableKeys() bool                  { return oc.enableKeys }
func (oc *orbitControls) SetEnableKeys(enabled bool)        { oc.enableKeys = enabled }
func (oc *orbitControls) KeyPanSpeed() float64              { return oc.keyPanSpeed }
func (oc *orbitControls) SetKeyPanSpeed(pixels float64)     { oc.keyPanSpeed = pixels }
func (oc *orbitControls) AutoRotate() bool                  { return oc.autoRotate }
func (oc *orbitControls) SetAutoRotate(enabled bool)        { oc.autoRotate = enabled }
func (oc *orbitControls) AutoRotateSpeed() float64          { return oc.autoRotateSpeed }
func (oc *orbitControls) SetAutoRotateSpeed(speed float64)  { oc.autoRotateSpeed = speed }

func (oc *orbitControls) DistanceBounds() (min, max float64) {
	return oc.minDistance, oc.maxDistance
}

func (oc *orbitControls) SetDistanceBounds(min, max float64) {
	oc.minDistance, oc.maxDistance = min, max
}

func (oc *orbitControls) ZoomBounds() (min, max float64) {
	return oc.minZoom, oc.maxZoom
}

func (oc *orbitControls) SetZoomBounds(min, max float64) {
	oc.minZoom, oc.maxZoom = min, max
}

func (oc *orbitControls) PolarBounds() (min, max float64) {
	return oc.minPolarAngle, oc.maxPolarAngle
}

func (oc *orbitControls) SetPolarBounds(min, max float64) {
	oc.minPolarAngle, oc.maxPolarAngle = min, max
}

func (oc *orbitControls) AzimuthBounds() (min, max float64) {
	return oc.minAzimuthAngle, oc.maxAzimuthAngle
}

func (oc *orbitControls) SetAzimuthBounds(min, max float64) {
	oc.minAzimuthAngle, oc.maxAzimuthAngle = min, max
}

func (oc *orbitControls) MouseButtons() MouseButtons           { return oc.mouseButtons }
func (oc *orbitControls) SetMouseButtons(buttons MouseButtons) { oc.mouseButtons = buttons }
func (oc *orbitControls) Touches() Touches                     { return oc.touches }
func (oc *orbitControls) SetTouches(touches Touches)           { oc.touches = touches }
func (oc *orbitControls) Keys() Keys                           { return oc.keys }
func (oc *orbitControls) SetKeys(keys Keys)                    { oc.keys = keys }
