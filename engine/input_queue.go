package engine

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/orbitcontrols/engine/camera"
)

// inputQueue carries input events from window callbacks to the tick goroutine.
// Producers push without blocking; the tick goroutine drains the queue and dispatches
// each event to every subscriber in registration order.
type inputQueue struct {
	events chan camera.InputEvent

	mu       sync.Mutex
	handlers []inputHandler
	nextID   uint64

	dropped atomic.Uint64
	logf    func(format string, args ...any)
}

type inputHandler struct {
	id uint64
	fn func(camera.InputEvent) bool
}

var _ camera.InputSource = &inputQueue{}

func newInputQueue(size int, logf func(string, ...any)) *inputQueue {
	return &inputQueue{
		events: make(chan camera.InputEvent, size),
		logf:   logf,
	}
}

// Subscribe registers handler. Handlers run on the goroutine that drains the queue.
func (q *inputQueue) Subscribe(handler func(camera.InputEvent) bool) func() {
	q.mu.Lock()
	q.nextID++
	id := q.nextID
	q.handlers = append(q.handlers, inputHandler{id: id, fn: handler})
	q.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { q.unsubscribe(id) })
	}
}

func (q *inputQueue) unsubscribe(id uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, h := range q.handlers {
		if h.id == id {
			q.handlers = append(q.handlers[:i], q.handlers[i+1:]...)
			return
		}
	}
}

// push enqueues ev, dropping it when the queue is full.
//
// Returns:
//   - bool: false if the event was dropped
func (q *inputQueue) push(ev camera.InputEvent) bool {
	select {
	case q.events <- ev:
		return true
	default:
		if n := q.dropped.Add(1); n == 1 || n%100 == 0 {
			q.logf("[Engine] input queue full, dropped %d events (latest %T)", n, ev)
		}
		return false
	}
}

// drain dispatches every queued event and returns how many were dispatched.
func (q *inputQueue) drain() int {
	n := 0
	for {
		select {
		case ev := <-q.events:
			q.dispatch(ev)
			n++
		default:
			return n
		}
	}
}

// dispatch delivers ev to a snapshot of the handlers, so a handler may unsubscribe itself.
func (q *inputQueue) dispatch(ev camera.InputEvent) {
	q.mu.Lock()
	handlers := make([]inputHandler, len(q.handlers))
	copy(handlers, q.handlers)
	q.mu.Unlock()

	for _, h := range handlers {
		h.fn(ev)
	}
}

// viewport is a camera.Viewport updated from the window thread and read from the tick goroutine.
type viewport struct {
	width  atomic.Int64
	height atomic.Int64
}

var _ camera.Viewport = &viewport{}

func (v *viewport) set(width, height int) {
	v.width.Store(int64(width))
	v.height.Store(int64(height))
}

func (v *viewport) Width() int  { return int(v.width.Load()) }
func (v *viewport) Height() int { return int(v.height.Load()) }
