package camera

import (
	"math"

	"github.com/Carmen-Shannon/orbitcontrols/common"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	twoPI = 2 * math.Pi

	// changeEpsilon is the squared displacement, or the small-angle rotation measure, above
	// which Update reports a change.
	changeEpsilon = 0.000001
)

// Update advances the camera by one frame.
// Pending rotation, dolly, and pan are applied, every bound is enforced, and damped deltas decay.
func (oc *orbitControls) Update() bool {
	if oc.disposed {
		return false
	}

	position := oc.camera.Position()

	// rotate offset to "y-axis-is-up" space
	offset := oc.upQuat.Rotate(position.Sub(oc.target))
	oc.spherical = SphericalFromVec3(offset)

	if oc.autoRotate && oc.state == GestureNone {
		oc.rotateLeft(oc.autoRotationAngle())
	}

	if oc.enableDamping {
		oc.spherical.Theta += oc.sphericalDelta.Theta * oc.dampingFactor
		oc.spherical.Phi += oc.sphericalDelta.Phi * oc.dampingFactor
	} else {
		oc.spherical.Theta += oc.sphericalDelta.Theta
		oc.spherical.Phi += oc.sphericalDelta.Phi
	}

	oc.spherical.Theta = clampAzimuth(oc.spherical.Theta, oc.minAzimuthAngle, oc.maxAzimuthAngle)
	oc.spherical.Phi = common.Clamp(oc.spherical.Phi, oc.minPolarAngle, oc.maxPolarAngle)
	oc.spherical.MakeSafe()

	oc.spherical.Radius *= oc.scale
	oc.spherical.Radius = common.Clamp(oc.spherical.Radius, oc.minDistance, oc.maxDistance)

	// move target to panned location
	if oc.enableDamping {
		oc.target = oc.target.Add(oc.panOffset.Mul(oc.dampingFactor))
	} else {
		oc.target = oc.target.Add(oc.panOffset)
	}

	// rotate offset back to "camera-up-vector-is-up" space
	offset = oc.upQuatInverse.Rotate(oc.spherical.Vec3())
	oc.camera.SetPosition(oc.target.Add(offset))
	oc.camera.LookAt(oc.target)

	if oc.enableDamping {
		oc.sphericalDelta.Theta *= 1 - oc.dampingFactor
		oc.sphericalDelta.Phi *= 1 - oc.dampingFactor
		oc.panOffset = oc.panOffset.Mul(1 - oc.dampingFactor)
	} else {
		oc.sphericalDelta = Spherical{}
		oc.panOffset = mgl64.Vec3{}
	}
	oc.scale = 1

	if oc.zoomChanged {
		oc.camera.UpdateProjectionMatrix()
	}

	// update condition is:
	// min(camera displacement, camera rotation in radians)^2 > changeEpsilon
	// using small-angle approximation cos(x/2) = 1 - x^2 / 8
	newPosition := oc.camera.Position()
	newQuaternion := oc.camera.Quaternion()
	displacement := newPosition.Sub(oc.lastPosition)
	if oc.zoomChanged ||
		displacement.Dot(displacement) > changeEpsilon ||
		8*(1-oc.lastQuaternion.Dot(newQuaternion)) > changeEpsilon {

		oc.notify(EventChange)
		oc.lastPosition = newPosition
		oc.lastQuaternion = newQuaternion
		oc.zoomChanged = false
		return true
	}
	return false
}

// clampAzimuth restricts theta to [min, max]. Infinite bounds disable clamping. Theta and bounds outside
// (-π, π] are wrapped first; when the wrapped interval passes through ±π, theta is clamped
// toward whichever bound lies on its side of the interval's midpoint.
func clampAzimuth(theta, min, max float64) float64 {
	if math.IsInf(min, 0) || math.IsInf(max, 0) || math.IsNaN(min) || math.IsNaN(max) {
		return theta
	}

	if min < -math.Pi {
		min += twoPI
	} else if min > math.Pi {
		min -= twoPI
	}

	if max < -math.Pi {
		max += twoPI
	} else if max > math.Pi {
		max -= twoPI
	}

	theta = wrapAngle(theta)
	if min <= max {
		return common.Clamp(theta, min, max)
	}
	if theta > (min+max)/2 {
		return math.Max(min, theta)
	}
	return math.Min(max, theta)
}

// wrapAngle maps an angle of any magnitude into (-π, π].
func wrapAngle(angle float64) float64 {
	angle = math.Remainder(angle, twoPI)
	if angle <= -math.Pi {
		angle += twoPI
	}
	return angle
}

func (oc *orbitControls) autoRotationAngle() float64 {
	return twoPI / 60 / 60 * oc.autoRotateSpeed
}

func (oc *orbitControls) zoomScale() float64 {
	return math.Pow(0.95, oc.zoomSpeed)
}

func (oc *orbitControls) rotateLeft(angle float64) {
	oc.sphericalDelta.Theta -= angle
}

func (oc *orbitControls) rotateUp(angle float64) {
	oc.sphericalDelta.Phi -= angle
}

// panLeft moves the target along the camera's local -X axis.
func (oc *orbitControls) panLeft(distance float64, cameraMatrix mgl64.Mat4) {
	v := cameraMatrix.Col(0).Vec3()
	oc.panOffset = oc.panOffset.Add(v.Mul(-distance))
}

// panUp moves the target along the camera's local +Y axis in screen-space mode, otherwise
// along the direction orthogonal to both the camera's X axis and the up axis.
func (oc *orbitControls) panUp(distance float64, cameraMatrix mgl64.Mat4) {
	var v mgl64.Vec3
	if oc.screenSpacePanning {
		v = cameraMatrix.Col(1).Vec3()
	} else {
		v = oc.camera.Up().Cross(cameraMatrix.Col(0).Vec3())
	}
	oc.panOffset = oc.panOffset.Add(v.Mul(distance))
}

// pan converts a pixel delta (right and down positive) into a target translation.
func (oc *orbitControls) pan(deltaX, deltaY float64) {
	width, height := float64(oc.viewport.Width()), float64(oc.viewport.Height())
	if width <= 0 || height <= 0 {
		return
	}
	cameraMatrix := oc.camera.Matrix()

	switch oc.camera.Projection() {
	case ProjectionPerspective:
		offset := oc.camera.Position().Sub(oc.target)
		// half of the fov is center to top of screen
		targetDistance := offset.Len() * math.Tan(oc.camera.Fov()/2)

		// height only, so aspect ratio does not distort speed
		oc.panLeft(2*deltaX*targetDistance/height, cameraMatrix)
		oc.panUp(2*deltaY*targetDistance/height, cameraMatrix)
	case ProjectionOrthographic:
		left, right, top, bottom := oc.camera.Frustum()
		zoom := oc.camera.Zoom()
		oc.panLeft(deltaX*(right-left)/zoom/width, cameraMatrix)
		oc.panUp(deltaY*(top-bottom)/zoom/height, cameraMatrix)
	default:
		oc.warn("WARNING: unknown camera projection %v - pan disabled", oc.camera.Projection())
		oc.enablePan = false
	}
}

func (oc *orbitControls) dollyIn(dollyScale float64) {
	switch oc.camera.Projection() {
	case ProjectionPerspective:
		oc.scale /= dollyScale
	case ProjectionOrthographic:
		oc.setOrthographicZoom(oc.camera.Zoom() * dollyScale)
	default:
		oc.warn("WARNING: unknown camera projection %v - dolly/zoom disabled", oc.camera.Projection())
		oc.enableZoom = false
	}
}

func (oc *orbitControls) dollyOut(dollyScale float64) {
	switch oc.camera.Projection() {
	case ProjectionPerspective:
		oc.scale *= dollyScale
	case ProjectionOrthographic:
		oc.setOrthographicZoom(oc.camera.Zoom() / dollyScale)
	default:
		oc.warn("WARNING: unknown camera projection %v - dolly/zoom disabled", oc.camera.Projection())
		oc.enableZoom = false
	}
}

// setOrthographicZoom clamps zoom into the zoom bounds and flags a projection refresh for the
// next Update if the clamped value differs from the camera's current zoom.
func (oc *orbitControls) setOrthographicZoom(zoom float64) {
	zoom = common.Clamp(zoom, oc.minZoom, oc.maxZoom)
	if zoom == oc.camera.Zoom() {
		return
	}
	oc.camera.SetZoom(zoom)
	oc.zoomChanged = true
}
