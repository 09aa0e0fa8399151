package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextGestureState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		current    GestureState
		transition gestureTransition
		want       GestureState
		accepted   bool
	}{
		{"begin from none", GestureNone, beginGesture(GestureRotate), GestureRotate, true},
		{"begin touch from none", GestureNone, beginGesture(GestureTouchDollyPan), GestureTouchDollyPan, true},
		{"begin while active is rejected", GestureRotate, beginGesture(GesturePan), GestureRotate, false},
		{"begin none is rejected", GestureNone, beginGesture(GestureNone), GestureNone, false},
		{"finish from active", GesturePan, finishGesture(), GestureNone, true},
		{"finish from none", GestureNone, finishGesture(), GestureNone, true},
		{"force from active", GestureTouchRotate, forceGesture(GestureTouchDollyRotate), GestureTouchDollyRotate, true},
		{"force from none", GestureNone, forceGesture(GestureTouchDollyRotate), GestureTouchDollyRotate, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := nextGestureState(tt.current, tt.transition)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.accepted, ok)
		})
	}
}

func TestGestureStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", GestureNone.String())
	assert.Equal(t, "touch-dolly-rotate", GestureTouchDollyRotate.String())
	assert.Equal(t, "GestureState(42)", GestureState(42).String())
}

func TestGestureStateIsTouch(t *testing.T) {
	t.Parallel()

	assert.False(t, GestureNone.IsTouch())
	assert.False(t, GesturePan.IsTouch())
	assert.True(t, GestureTouchPan.IsTouch())
	assert.True(t, GestureTouchDollyRotate.IsTouch())
}

func TestMouseButtonsAction(t *testing.T) {
	t.Parallel()

	buttons := MouseButtons{Left: MouseRotate, Middle: MouseDolly, Right: MousePan}
	assert.Equal(t, MouseRotate, buttons.action(0))
	assert.Equal(t, MouseDolly, buttons.action(1))
	assert.Equal(t, MousePan, buttons.action(2))
	assert.Equal(t, MouseNone, buttons.action(3))
	assert.Equal(t, MouseNone, buttons.action(-1))
}
