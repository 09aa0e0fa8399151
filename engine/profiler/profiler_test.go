package profiler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newTestProfiler() (*Profiler, *fakeClock, *[]string) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	lines := &[]string{}
	p := NewProfiler()
	p.lastTime = clock.t
	p.now = clock.now
	p.logf = func(format string, args ...any) {
		*lines = append(*lines, fmt.Sprintf(format, args...))
	}
	return p, clock, lines
}

func TestProfilerReportsOncePerInterval(t *testing.T) {
	t.Parallel()

	p, clock, lines := newTestProfiler()
	for i := 0; i < 9; i++ {
		clock.t = clock.t.Add(100 * time.Millisecond)
		assert.False(t, p.Tick(i%3 == 0))
	}
	clock.t = clock.t.Add(100 * time.Millisecond)
	assert.True(t, p.Tick(false))

	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], "[Profiler] FPS: 10.00")
	assert.Contains(t, (*lines)[0], "Redraw: 30%")
}

func TestProfilerResetsWindow(t *testing.T) {
	t.Parallel()

	p, clock, lines := newTestProfiler()
	clock.t = clock.t.Add(2 * time.Second)
	assert.True(t, p.Tick(true))
	assert.Zero(t, p.frameCount)
	assert.Zero(t, p.redrawCount)

	clock.t = clock.t.Add(500 * time.Millisecond)
	assert.False(t, p.Tick(true))
	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], "Redraw: 100%")
}
