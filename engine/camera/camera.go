package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// ProjectionKind discriminates how a Camera maps view space to clip space.
type ProjectionKind int

const (
	// ProjectionPerspective is a field-of-view based frustum.
	ProjectionPerspective ProjectionKind = iota
	// ProjectionOrthographic is a box bounded by left/right/top/bottom extents.
	ProjectionOrthographic
)

// String returns a human-readable name for the projection kind.
func (k ProjectionKind) String() string {
	switch k {
	case ProjectionPerspective:
		return "perspective"
	case ProjectionOrthographic:
		return "orthographic"
	default:
		return "unknown"
	}
}

type cameraImpl struct {
	mu *sync.Mutex

	position   mgl64.Vec3
	quaternion mgl64.Quat
	up         mgl64.Vec3

	projection ProjectionKind
	zoom       float64

	// perspective
	fov    float64
	aspect float64

	// orthographic extents before zoom
	left, right, top, bottom float64

	near float64
	far  float64

	matrix               mgl64.Mat4
	viewMatrix           mgl64.Mat4
	projectionMatrix     mgl64.Mat4
	viewProjectionMatrix mgl64.Mat4
}

// Camera defines the host camera consumed by OrbitControls.
// It holds a world transform (position + orientation), an up axis, and either perspective
// or orthographic projection parameters. All methods are safe for concurrent use so a render
// goroutine may read matrices while the controller goroutine writes the transform.
type Camera interface {
	// Position returns the world-space camera position.
	//
	// Returns:
	//   - mgl64.Vec3: the camera position
	Position() mgl64.Vec3

	// SetPosition moves the camera without changing its orientation.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p mgl64.Vec3)

	// Up returns the camera's up axis. The orbit axis of OrbitControls follows it.
	//
	// Returns:
	//   - mgl64.Vec3: the up axis
	Up() mgl64.Vec3

	// SetUp sets the camera's up axis.
	//
	// Parameters:
	//   - up: the new up axis
	SetUp(up mgl64.Vec3)

	// Quaternion returns the camera orientation as a rotation from local to world space.
	//
	// Returns:
	//   - mgl64.Quat: the orientation
	Quaternion() mgl64.Quat

	// LookAt orients the camera so its local -Z axis points at target with the configured up axis.
	//
	// Parameters:
	//   - target: world-space point to face
	LookAt(target mgl64.Vec3)

	// Matrix returns the local-to-world transform. Column 0 is the camera's right axis,
	// column 1 its up axis, and column 2 its backward axis.
	//
	// Returns:
	//   - mgl64.Mat4: the world matrix
	Matrix() mgl64.Mat4

	// Projection returns the projection kind.
	//
	// Returns:
	//   - ProjectionKind: perspective or orthographic
	Projection() ProjectionKind

	// Fov returns the vertical field of view in radians (perspective only).
	Fov() float64

	// SetFov sets the vertical field of view in radians. Call UpdateProjectionMatrix afterwards.
	SetFov(fov float64)

	// Aspect returns the aspect ratio (width / height).
	Aspect() float64

	// SetAspect sets the aspect ratio. Call UpdateProjectionMatrix afterwards.
	SetAspect(aspect float64)

	// Frustum returns the orthographic extents before zoom is applied.
	//
	// Returns:
	//   - left, right, top, bottom: view-space extents
	Frustum() (left, right, top, bottom float64)

	// SetFrustum sets the orthographic extents. Call UpdateProjectionMatrix afterwards.
	SetFrustum(left, right, top, bottom float64)

	// Zoom returns the zoom factor (1 = unzoomed).
	Zoom() float64

	// SetZoom sets the zoom factor. Call UpdateProjectionMatrix afterwards.
	SetZoom(zoom float64)

	// Near returns the near clipping plane distance.
	Near() float64

	// Far returns the far clipping plane distance.
	Far() float64

	// UpdateProjectionMatrix recomputes the projection matrix from fov/aspect/extents/zoom/near/far.
	UpdateProjectionMatrix()

	// ViewMatrix returns the world-to-view transform (inverse of Matrix).
	ViewMatrix() mgl64.Mat4

	// ProjectionMatrix returns the last computed projection matrix.
	ProjectionMatrix() mgl64.Mat4

	// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
	ViewProjectionMatrix() mgl64.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new perspective Camera at (0, 0, 1) facing the origin.
// Use WithOrthographic to build an orthographic camera instead.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		position:   mgl64.Vec3{0, 0, 1},
		quaternion: mgl64.QuatIdent(),
		up:         mgl64.Vec3{0, 1, 0},
		projection: ProjectionPerspective,
		zoom:       1,
		fov:        45.0 * (math.Pi / 180.0), // radians
		aspect:     1.0,
		left:       -1,
		right:      1,
		top:        1,
		bottom:     -1,
		near:       0.1,
		far:        2000.0,
	}
	for _, option := range options {
		option(c)
	}
	c.lookAt(mgl64.Vec3{})
	c.updateProjection()
	return c
}

func (c *cameraImpl) Position() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(p mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.updateMatrices()
}

func (c *cameraImpl) Up() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(up mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
}

func (c *cameraImpl) Quaternion() mgl64.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quaternion
}

func (c *cameraImpl) LookAt(target mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookAt(target)
}

func (c *cameraImpl) Matrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matrix
}

func (c *cameraImpl) Projection() ProjectionKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) Fov() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) SetFov(fov float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
}

func (c *cameraImpl) Aspect() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
}

func (c *cameraImpl) Frustum() (left, right, top, bottom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.left, c.right, c.top, c.bottom
}

func (c *cameraImpl) SetFrustum(left, right, top, bottom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.left, c.right, c.top, c.bottom = left, right, top, bottom
}

func (c *cameraImpl) Zoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) SetZoom(zoom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = zoom
}

func (c *cameraImpl) Near() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) UpdateProjectionMatrix() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateProjection()
}

func (c *cameraImpl) ViewMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

// lookAt rebuilds the orientation from the basis z = normalize(position - target),
// x = normalize(up × z), y = z × x. Degenerate inputs are nudged so the basis stays orthonormal.
// Caller must hold the mutex.
func (c *cameraImpl) lookAt(target mgl64.Vec3) {
	z := c.position.Sub(target)
	if z.Dot(z) == 0 {
		z = mgl64.Vec3{0, 0, 1}
	}
	z = z.Normalize()

	x := c.up.Cross(z)
	if x.Dot(x) == 0 {
		// up and z are parallel
		if math.Abs(c.up.Z()) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = z.Normalize()
		x = c.up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	rotation := mgl64.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
	c.quaternion = mgl64.Mat4ToQuat(rotation).Normalize()
	c.updateMatrices()
}

// updateMatrices recomputes the world, view, and view-projection matrices from position and orientation.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.matrix = mgl64.Translate3D(c.position.X(), c.position.Y(), c.position.Z()).Mul4(c.quaternion.Mat4())
	c.viewMatrix = c.matrix.Inv()
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

// updateProjection recomputes the projection matrix, applying zoom to the field of view
// (perspective) or to the extents around their centre (orthographic).
// Caller must hold the mutex.
func (c *cameraImpl) updateProjection() {
	zoom := c.zoom
	if zoom <= 0 {
		zoom = 1
	}
	switch c.projection {
	case ProjectionOrthographic:
		dx := (c.right - c.left) / (2 * zoom)
		dy := (c.top - c.bottom) / (2 * zoom)
		cx := (c.right + c.left) / 2
		cy := (c.top + c.bottom) / 2
		c.projectionMatrix = mgl64.Ortho(cx-dx, cx+dx, cy-dy, cy+dy, c.near, c.far)
	default:
		fov := 2 * math.Atan(math.Tan(c.fov/2)/zoom)
		c.projectionMatrix = mgl64.Perspective(fov, c.aspect, c.near, c.far)
	}
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
