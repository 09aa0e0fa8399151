package camera

import "fmt"

// GestureState is the gesture currently driving OrbitControls.
// GestureNone is the idle, initial, and terminal state.
type GestureState int

const (
	GestureNone GestureState = iota
	GestureRotate
	GestureDolly
	GesturePan
	GestureTouchRotate
	GestureTouchPan
	GestureTouchDollyPan
	GestureTouchDollyRotate
)

// String returns a human-readable name for the gesture state.
func (g GestureState) String() string {
	switch g {
	case GestureNone:
		return "none"
	case GestureRotate:
		return "rotate"
	case GestureDolly:
		return "dolly"
	case GesturePan:
		return "pan"
	case GestureTouchRotate:
		return "touch-rotate"
	case GestureTouchPan:
		return "touch-pan"
	case GestureTouchDollyPan:
		return "touch-dolly-pan"
	case GestureTouchDollyRotate:
		return "touch-dolly-rotate"
	default:
		return fmt.Sprintf("GestureState(%d)", int(g))
	}
}

// IsTouch reports whether the gesture was started by a touch event.
func (g GestureState) IsTouch() bool {
	switch g {
	case GestureTouchRotate, GestureTouchPan, GestureTouchDollyPan, GestureTouchDollyRotate:
		return true
	default:
		return false
	}
}

type transitionKind int

const (
	// transitionBegin starts a gesture from idle.
	transitionBegin transitionKind = iota
	// transitionFinish ends whatever gesture is active.
	transitionFinish
	// transitionForce jumps straight into a gesture. Only touch identifier recovery uses it.
	transitionForce
)

type gestureTransition struct {
	kind transitionKind
	to   GestureState
}

func beginGesture(g GestureState) gestureTransition {
	return gestureTransition{kind: transitionBegin, to: g}
}

func finishGesture() gestureTransition {
	return gestureTransition{kind: transitionFinish, to: GestureNone}
}

func forceGesture(g GestureState) gestureTransition {
	return gestureTransition{kind: transitionForce, to: g}
}

// nextGestureState is the transition function of the gesture state machine.
// It returns the next state and whether the transition was accepted; rejected transitions
// leave the state unchanged. A gesture can only begin from GestureNone, so two gestures can
// never be active at once.
func nextGestureState(current GestureState, t gestureTransition) (GestureState, bool) {
	switch t.kind {
	case transitionBegin:
		if current != GestureNone || t.to == GestureNone {
			return current, false
		}
		return t.to, true
	case transitionFinish:
		return GestureNone, true
	case transitionForce:
		return t.to, true
	default:
		return current, false
	}
}

// MouseAction is the gesture a mouse button starts.
type MouseAction int

const (
	MouseNone MouseAction = iota
	MouseRotate
	MouseDolly
	MousePan
)

// TouchAction is the gesture a finger count starts.
type TouchAction int

const (
	TouchNone TouchAction = iota
	TouchRotate
	TouchPan
	TouchDollyPan
	TouchDollyRotate
)

// MouseButtons maps the three pointer buttons to actions.
type MouseButtons struct {
	Left   MouseAction
	Middle MouseAction
	Right  MouseAction
}

// action returns the action mapped to a DOM-order button index.
func (m MouseButtons) action(button int) MouseAction {
	switch button {
	case 0:
		return m.Left
	case 1:
		return m.Middle
	case 2:
		return m.Right
	default:
		return MouseNone
	}
}

// Touches maps one- and two-finger contacts to actions.
// One finger supports TouchRotate and TouchPan; two fingers support every action.
type Touches struct {
	One TouchAction
	Two TouchAction
}

// Keys holds the key codes that pan the view.
type Keys struct {
	Left   int
	Up     int
	Right  int
	Bottom int
}
