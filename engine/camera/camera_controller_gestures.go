package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// --- mouse ---

func (oc *orbitControls) handleMouseDownRotate(ev PointerEvent) {
	oc.rotateStart = ev.point()
}

func (oc *orbitControls) handleMouseDownDolly(ev PointerEvent) {
	oc.dollyStart = ev.point()
}

func (oc *orbitControls) handleMouseDownPan(ev PointerEvent) {
	oc.panStart = ev.point()
}

func (oc *orbitControls) handleMouseMoveRotate(ev PointerEvent) {
	oc.rotateEnd = ev.point()
	oc.applyRotateDelta()
}

func (oc *orbitControls) handleMouseMoveDolly(ev PointerEvent) {
	oc.dollyEnd = ev.point()
	dy := oc.dollyEnd.Y() - oc.dollyStart.Y()
	if dy > 0 {
		oc.dollyIn(oc.zoomScale())
	} else if dy < 0 {
		oc.dollyOut(oc.zoomScale())
	}
	oc.dollyStart = oc.dollyEnd
}

func (oc *orbitControls) handleMouseMovePan(ev PointerEvent) {
	oc.panEnd = ev.point()
	oc.applyPanDelta()
}

func (oc *orbitControls) handleMouseWheel(ev WheelEvent) {
	if ev.DeltaY < 0 {
		oc.dollyOut(oc.zoomScale())
	} else if ev.DeltaY > 0 {
		oc.dollyIn(oc.zoomScale())
	}
}

// handleKeyDown pans one step for an arrow key and reports whether the key was one.
func (oc *orbitControls) handleKeyDown(ev KeyDownEvent) bool {
	switch ev.KeyCode {
	case oc.keys.Up:
		oc.pan(0, oc.keyPanSpeed)
	case oc.keys.Bottom:
		oc.pan(0, -oc.keyPanSpeed)
	case oc.keys.Left:
		oc.pan(oc.keyPanSpeed, 0)
	case oc.keys.Right:
		oc.pan(-oc.keyPanSpeed, 0)
	default:
		return false
	}
	return true
}

// applyRotateDelta folds rotateEnd - rotateStart into the pending rotation and advances the anchor.
// Both axes are normalised by the viewport height so rotation speed ignores aspect ratio.
func (oc *orbitControls) applyRotateDelta() {
	height := float64(oc.viewport.Height())
	if height > 0 {
		delta := oc.rotateEnd.Sub(oc.rotateStart).Mul(oc.rotateSpeed)
		oc.rotateLeft(twoPI * delta.X() / height)
		oc.rotateUp(twoPI * delta.Y() / height)
	}
	oc.rotateStart = oc.rotateEnd
}

func (oc *orbitControls) applyPanDelta() {
	delta := oc.panEnd.Sub(oc.panStart).Mul(oc.panSpeed)
	oc.pan(delta.X(), delta.Y())
	oc.panStart = oc.panEnd
}

// --- touch ---

// touchAnchor returns the single touch point or the midpoint of the first two.
func touchAnchor(touches []TouchPoint) (mgl64.Vec2, bool) {
	switch len(touches) {
	case 0:
		return mgl64.Vec2{}, false
	case 1:
		return touches[0].point(), true
	default:
		return touches[0].point().Add(touches[1].point()).Mul(0.5), true
	}
}

// pinchPoints returns the two contacts a pinch is measured between. With identifier recovery on,
// a single reported touch that is not the changed contact pairs with the event Location.
func (oc *orbitControls) pinchPoints(ev TouchEvent) (mgl64.Vec2, mgl64.Vec2, bool) {
	if len(ev.Touches) > 1 {
		return ev.Touches[0].point(), ev.Touches[1].point(), true
	}
	if oc.touchIdentifierRecovery && len(ev.Touches) == 1 && ev.Identifier != ev.Touches[0].ID {
		return ev.Location, ev.Touches[0].point(), true
	}
	return mgl64.Vec2{}, mgl64.Vec2{}, false
}

func (oc *orbitControls) handleTouchStartRotate(ev TouchEvent) {
	if p, ok := touchAnchor(ev.Touches); ok {
		oc.rotateStart = p
	}
}

func (oc *orbitControls) handleTouchStartPan(ev TouchEvent) {
	if p, ok := touchAnchor(ev.Touches); ok {
		oc.panStart = p
	}
}

func (oc *orbitControls) handleTouchStartDolly(ev TouchEvent) {
	a, b, ok := oc.pinchPoints(ev)
	if !ok {
		return
	}
	oc.dollyStart = mgl64.Vec2{0, a.Sub(b).Len()}
}

func (oc *orbitControls) handleTouchStartDollyPan(ev TouchEvent) {
	if oc.enableZoom {
		oc.handleTouchStartDolly(ev)
	}
	if oc.enablePan {
		oc.handleTouchStartPan(ev)
	}
}

func (oc *orbitControls) handleTouchStartDollyRotate(ev TouchEvent) {
	if oc.enableZoom {
		oc.handleTouchStartDolly(ev)
	}
	if oc.enableRotate {
		oc.handleTouchStartRotate(ev)
	}
}

func (oc *orbitControls) handleTouchMoveRotate(ev TouchEvent) {
	p, ok := touchAnchor(ev.Touches)
	if !ok {
		return
	}
	oc.rotateEnd = p
	oc.applyRotateDelta()
}

func (oc *orbitControls) handleTouchMovePan(ev TouchEvent) {
	p, ok := touchAnchor(ev.Touches)
	if !ok {
		return
	}
	oc.panEnd = p
	oc.applyPanDelta()
}

// handleTouchMoveDolly dollies by the ratio of the current pinch distance to the previous one.
func (oc *orbitControls) handleTouchMoveDolly(ev TouchEvent) {
	a, b, ok := oc.pinchPoints(ev)
	if !ok {
		return
	}
	distance := a.Sub(b).Len()
	if distance <= 0 || oc.dollyStart.Y() <= 0 {
		// no usable previous distance; rebase so the next move has one
		oc.dollyStart = mgl64.Vec2{0, distance}
		return
	}
	oc.dollyEnd = mgl64.Vec2{0, distance}
	oc.dollyIn(math.Pow(oc.dollyEnd.Y()/oc.dollyStart.Y(), oc.zoomSpeed))
	oc.dollyStart = oc.dollyEnd
}

func (oc *orbitControls) handleTouchMoveDollyPan(ev TouchEvent) {
	if oc.enableZoom {
		oc.handleTouchMoveDolly(ev)
	}
	if oc.enablePan {
		oc.handleTouchMovePan(ev)
	}
}

func (oc *orbitControls) handleTouchMoveDollyRotate(ev TouchEvent) {
	if oc.enableZoom {
		oc.handleTouchMoveDolly(ev)
	}
	if oc.enableRotate {
		oc.handleTouchMoveRotate(ev)
	}
}
