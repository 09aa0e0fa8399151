package camera

// HandleEvent routes one input event through the gesture state machine.
func (oc *orbitControls) HandleEvent(ev InputEvent) bool {
	if oc.disposed || !oc.enabled {
		return false
	}

	switch e := ev.(type) {
	case PointerDownEvent:
		return oc.onPointerDown(PointerEvent(e))
	case PointerMoveEvent:
		return oc.onPointerMove(PointerEvent(e))
	case PointerUpEvent:
		return oc.onPointerUp()
	case WheelEvent:
		return oc.onWheel(e)
	case KeyDownEvent:
		return oc.onKeyDown(e)
	case TouchStartEvent:
		return oc.onTouchStart(TouchEvent(e))
	case TouchMoveEvent:
		return oc.onTouchMove(TouchEvent(e))
	case TouchEndEvent:
		return oc.onTouchEnd()
	case ContextMenuEvent:
		return true
	default:
		return false
	}
}

// begin moves the state machine into g and notifies start listeners.
// An active gesture is ended first so two gestures are never live at once.
func (oc *orbitControls) begin(g GestureState) {
	if oc.state != GestureNone {
		oc.finish()
	}
	next, ok := nextGestureState(oc.state, beginGesture(g))
	if !ok {
		return
	}
	oc.state = next
	oc.notify(EventStart)
}

// finish returns the state machine to GestureNone, notifying end listeners if a gesture was active.
func (oc *orbitControls) finish() {
	previous := oc.state
	oc.state, _ = nextGestureState(oc.state, finishGesture())
	if previous != GestureNone {
		oc.notify(EventEnd)
	}
}

// --- pointer ---

// mouseGesture resolves the gesture a button starts. A held ctrl, meta, or shift swaps rotate and pan.
func (oc *orbitControls) mouseGesture(ev PointerEvent) GestureState {
	action := oc.mouseButtons.action(ev.Button)
	if ev.modified() {
		switch action {
		case MouseRotate:
			action = MousePan
		case MousePan:
			action = MouseRotate
		}
	}

	switch action {
	case MouseRotate:
		if oc.enableRotate {
			return GestureRotate
		}
	case MouseDolly:
		if oc.enableZoom {
			return GestureDolly
		}
	case MousePan:
		if oc.enablePan {
			return GesturePan
		}
	}
	return GestureNone
}

func (oc *orbitControls) onPointerDown(ev PointerEvent) bool {
	gesture := oc.mouseGesture(ev)
	if gesture == GestureNone {
		return false
	}

	switch gesture {
	case GestureRotate:
		oc.handleMouseDownRotate(ev)
	case GestureDolly:
		oc.handleMouseDownDolly(ev)
	case GesturePan:
		oc.handleMouseDownPan(ev)
	}
	oc.begin(gesture)
	return true
}

func (oc *orbitControls) onPointerMove(ev PointerEvent) bool {
	switch oc.state {
	case GestureRotate:
		if !oc.enableRotate {
			return false
		}
		oc.handleMouseMoveRotate(ev)
	case GestureDolly:
		if !oc.enableZoom {
			return false
		}
		oc.handleMouseMoveDolly(ev)
	case GesturePan:
		if !oc.enablePan {
			return false
		}
		oc.handleMouseMovePan(ev)
	default:
		return false
	}
	return true
}

// onPointerUp ends whatever gesture is active.
func (oc *orbitControls) onPointerUp() bool {
	handled := oc.state != GestureNone
	oc.finish()
	return handled
}

// onWheel applies one dolly step. It is ignored while panning or dollying by drag, and leaves a
// rotate gesture in progress untouched.
func (oc *orbitControls) onWheel(ev WheelEvent) bool {
	if !oc.enableZoom || (oc.state != GestureNone && oc.state != GestureRotate) {
		return false
	}
	oc.notify(EventStart)
	oc.handleMouseWheel(ev)
	oc.notify(EventEnd)
	return true
}

func (oc *orbitControls) onKeyDown(ev KeyDownEvent) bool {
	if !oc.enableKeys || !oc.enablePan {
		return false
	}
	return oc.handleKeyDown(ev)
}

// --- touch ---

// touchGesture resolves the gesture a finger count starts.
// One finger supports rotate and pan; two fingers support every action.
func (oc *orbitControls) touchGesture(fingers int) GestureState {
	var action TouchAction
	switch fingers {
	case 1:
		action = oc.touches.One
		if action != TouchRotate && action != TouchPan {
			return GestureNone
		}
	case 2:
		action = oc.touches.Two
	default:
		return GestureNone
	}

	switch action {
	case TouchRotate:
		if oc.enableRotate {
			return GestureTouchRotate
		}
	case TouchPan:
		if oc.enablePan {
			return GestureTouchPan
		}
	case TouchDollyPan:
		if oc.enableZoom || oc.enablePan {
			return GestureTouchDollyPan
		}
	case TouchDollyRotate:
		if oc.enableZoom || oc.enableRotate {
			return GestureTouchDollyRotate
		}
	}
	return GestureNone
}

func (oc *orbitControls) onTouchStart(ev TouchEvent) bool {
	gesture := oc.touchGesture(len(ev.Touches))
	if gesture == GestureNone {
		return false
	}

	switch gesture {
	case GestureTouchRotate:
		oc.handleTouchStartRotate(ev)
	case GestureTouchPan:
		oc.handleTouchStartPan(ev)
	case GestureTouchDollyPan:
		oc.handleTouchStartDollyPan(ev)
	case GestureTouchDollyRotate:
		oc.handleTouchStartDollyRotate(ev)
	}
	oc.begin(gesture)
	return true
}

// identifierMismatch reports whether the reporting contact differs from the first listed touch.
// Zero identifiers are treated as absent.
func identifierMismatch(ev TouchEvent) bool {
	if ev.Identifier == 0 || len(ev.Touches) == 0 || ev.Touches[0].ID == 0 {
		return false
	}
	return ev.Identifier != ev.Touches[0].ID
}

func (oc *orbitControls) onTouchMove(ev TouchEvent) bool {
	if oc.touchIdentifierRecovery && identifierMismatch(ev) {
		return oc.recoverDollyRotate(ev)
	}

	switch oc.state {
	case GestureTouchRotate:
		if !oc.enableRotate {
			return false
		}
		oc.handleTouchMoveRotate(ev)
	case GestureTouchPan:
		if !oc.enablePan {
			return false
		}
		oc.handleTouchMovePan(ev)
	case GestureTouchDollyPan:
		if !oc.enableZoom && !oc.enablePan {
			return false
		}
		oc.handleTouchMoveDollyPan(ev)
	case GestureTouchDollyRotate:
		if !oc.enableZoom && !oc.enableRotate {
			return false
		}
		oc.handleTouchMoveDollyRotate(ev)
	default:
		return false
	}
	return true
}

// recoverDollyRotate forces a two-finger dolly-rotate when a platform reports the second finger
// only through the event identifier. Entering the gesture seeds the anchors from this event;
// later mismatched moves apply their deltas.
func (oc *orbitControls) recoverDollyRotate(ev TouchEvent) bool {
	if !oc.enableZoom && !oc.enableRotate {
		return false
	}
	previous := oc.state
	oc.state, _ = nextGestureState(oc.state, forceGesture(GestureTouchDollyRotate))
	if previous == GestureTouchDollyRotate {
		oc.handleTouchMoveDollyRotate(ev)
		return true
	}
	if previous == GestureNone {
		oc.notify(EventStart)
	}
	oc.handleTouchStartDollyRotate(ev)
	return true
}

func (oc *orbitControls) onTouchEnd() bool {
	handled := oc.state != GestureNone
	oc.finish()
	return handled
}
