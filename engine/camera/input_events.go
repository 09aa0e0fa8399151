package camera

import "github.com/go-gl/mathgl/mgl64"

// InputEvent is a raw input event forwarded by the host to OrbitControls.HandleEvent.
// The concrete types are PointerDownEvent, PointerMoveEvent, PointerUpEvent, WheelEvent,
// KeyDownEvent, TouchStartEvent, TouchMoveEvent, TouchEndEvent, and ContextMenuEvent.
type InputEvent interface {
	inputEvent()
}

// PointerEvent carries the fields shared by pointer down/move/up events.
// X and Y are client coordinates in pixels; Button uses DOM order (0 left, 1 middle, 2 right).
type PointerEvent struct {
	Button int
	X, Y   float64
	Ctrl   bool
	Meta   bool
	Shift  bool
}

func (p PointerEvent) point() mgl64.Vec2 {
	return mgl64.Vec2{p.X, p.Y}
}

func (p PointerEvent) modified() bool {
	return p.Ctrl || p.Meta || p.Shift
}

type (
	PointerDownEvent PointerEvent
	PointerMoveEvent PointerEvent
	PointerUpEvent   PointerEvent
)

// WheelEvent is a scroll step. Negative DeltaY scrolls up (toward the user).
type WheelEvent struct {
	DeltaY float64
}

// KeyDownEvent is a key press identified by its key code.
type KeyDownEvent struct {
	KeyCode int
}

// ContextMenuEvent is a request to open the platform context menu.
type ContextMenuEvent struct{}

// TouchPoint is one active contact in page coordinates.
type TouchPoint struct {
	ID           int
	PageX, PageY float64
}

func (t TouchPoint) point() mgl64.Vec2 {
	return mgl64.Vec2{t.PageX, t.PageY}
}

// TouchEvent carries the ordered list of active touches.
// Identifier and Location describe the contact that changed; some platform bindings report
// them separately from Touches, and touch identifier recovery relies on them.
type TouchEvent struct {
	Touches    []TouchPoint
	Identifier int
	Location   mgl64.Vec2
}

type (
	TouchStartEvent TouchEvent
	TouchMoveEvent  TouchEvent
	TouchEndEvent   TouchEvent
)

func (PointerDownEvent) inputEvent() {}
func (PointerMoveEvent) inputEvent() {}
func (PointerUpEvent) inputEvent()   {}
func (WheelEvent) inputEvent()       {}
func (KeyDownEvent) inputEvent()     {}
func (ContextMenuEvent) inputEvent() {}
func (TouchStartEvent) inputEvent()  {}
func (TouchMoveEvent) inputEvent()   {}
func (TouchEndEvent) inputEvent()    {}

// InputSource delivers input events to a subscriber.
// The handler's return value tells the source whether to suppress the platform default.
type InputSource interface {
	// Subscribe registers handler and returns a function that removes it.
	//
	// Parameters:
	//   - handler: called once per event, in delivery order
	//
	// Returns:
	//   - func(): unsubscribes the handler; safe to call more than once
	Subscribe(handler func(InputEvent) bool) (unsubscribe func())
}

// Viewport reports the size of the input surface in pixels.
type Viewport interface {
	Width() int
	Height() int
}

// FixedViewport is a Viewport with a constant size.
type FixedViewport struct {
	W, H int
}

func (v FixedViewport) Width() int  { return v.W }
func (v FixedViewport) Height() int { return v.H }

// EventKind identifies an OrbitControls notification.
type EventKind int

const (
	// EventChange fires when Update moves the camera or changes its zoom.
	EventChange EventKind = iota
	// EventStart fires when a gesture begins.
	EventStart
	// EventEnd fires when a gesture ends.
	EventEnd
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventChange:
		return "change"
	case EventStart:
		return "start"
	case EventEnd:
		return "end"
	default:
		return "unknown"
	}
}

// ListenerID identifies a registered listener for RemoveListener.
type ListenerID uint64

type listener struct {
	id   ListenerID
	kind EventKind
	fn   func(EventKind)
}
