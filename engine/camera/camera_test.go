package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestNewCameraDefaults(t *testing.T) {
	t.Parallel()

	c := NewCamera()
	assert.Equal(t, ProjectionPerspective, c.Projection())
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, c.Position())
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, c.Up())
	assert.Equal(t, 1.0, c.Zoom())
	assert.InDelta(t, 45*math.Pi/180, c.Fov(), 1e-12)
}

func TestCameraLookAt(t *testing.T) {
	t.Parallel()

	c := NewCamera(WithPosition(3, 4, 5))
	target := mgl64.Vec3{1, 0, 0}
	c.LookAt(target)

	// the view matrix takes the target onto the camera's -Z axis
	inView := mgl64.TransformCoordinate(target, c.ViewMatrix())
	assert.InDelta(t, 0, inView.X(), 1e-9)
	assert.InDelta(t, 0, inView.Y(), 1e-9)
	assert.InDelta(t, -c.Position().Sub(target).Len(), inView.Z(), 1e-9)

	// the camera's right axis stays horizontal with a +Y up axis
	right := c.Matrix().Col(0).Vec3()
	assert.InDelta(t, 0, right.Y(), 1e-9)
}

func TestCameraLookAtAlongUp(t *testing.T) {
	t.Parallel()

	c := NewCamera(WithPosition(0, 10, 0))
	q := c.Quaternion()
	for _, v := range []float64{q.W, q.V.X(), q.V.Y(), q.V.Z()} {
		assert.False(t, math.IsNaN(v))
	}
}

func TestCameraSetPositionKeepsOrientation(t *testing.T) {
	t.Parallel()

	c := NewCamera(WithPosition(0, 0, 10))
	before := c.Quaternion()
	c.SetPosition(mgl64.Vec3{1, 2, 3})
	assert.Equal(t, before, c.Quaternion())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, c.Matrix().Col(3).Vec3())
}

func TestCameraOrthographicZoom(t *testing.T) {
	t.Parallel()

	c := NewCamera(WithOrthographic(-2, 2, 1, -1), WithNear(0.1), WithFar(100))
	assert.Equal(t, ProjectionOrthographic, c.Projection())

	unzoomed := c.ProjectionMatrix()
	c.SetZoom(2)
	// the matrix is stale until refreshed
	assert.Equal(t, unzoomed, c.ProjectionMatrix())

	c.UpdateProjectionMatrix()
	zoomed := c.ProjectionMatrix()
	assert.InDelta(t, 2*unzoomed.At(0, 0), zoomed.At(0, 0), 1e-12)
	assert.InDelta(t, 2*unzoomed.At(1, 1), zoomed.At(1, 1), 1e-12)
}

func TestCameraPerspectiveZoomNarrowsFov(t *testing.T) {
	t.Parallel()

	c := NewCamera(WithFov(math.Pi/2), WithAspect(1))
	before := c.ProjectionMatrix().At(1, 1)
	c.SetZoom(2)
	c.UpdateProjectionMatrix()
	assert.Greater(t, c.ProjectionMatrix().At(1, 1), before)
}

func TestProjectionKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "perspective", ProjectionPerspective.String())
	assert.Equal(t, "orthographic", ProjectionOrthographic.String())
	assert.Equal(t, "unknown", ProjectionKind(7).String())
}
