package scene

import (
	"math"

	"github.com/wavepath/tracer/pkg/geom"
)

// Camera generates primary rays and is the one part of an otherwise
// immutable View that a UI can mutate between frames. It holds a
// camera->world transform (GenerateRay maps raster to camera space
// itself) plus an optional thin lens, so a scene's
// lensradius/focaldistance parameters have somewhere to go.
type Camera struct {
	cameraToWorld geom.Transform
	rasterToWorld geom.Transform // not set by rebuild and not read by GenerateRay
	eye, look, up geom.Vec3
	fovY          float64 // degrees
	width, height int
	lensRadius    float64
	focalDistance float64
}

// NewCamera builds a camera looking from eye toward look with up as the
// up vector, a vertical field of view in degrees, and raster resolution
// width x height.
func NewCamera(eye, look, up geom.Vec3, fovY float64, width, height int, lensRadius, focalDistance float64) *Camera {
	c := &Camera{
		eye: eye, look: look, up: up,
		fovY: fovY, width: width, height: height,
		lensRadius: lensRadius, focalDistance: focalDistance,
	}
	c.rebuild()
	return c
}

func (c *Camera) rebuild() {
	forward := c.look.Sub(c.eye).Normalize()
	right := forward.Cross(c.up.Normalize()).Normalize()
	newUp := right.Cross(forward)

	m := [4][4]float64{
		{right.X, newUp.X, -forward.X, c.eye.X},
		{right.Y, newUp.Y, -forward.Y, c.eye.Y},
		{right.Z, newUp.Z, -forward.Z, c.eye.Z},
		{0, 0, 0, 1},
	}
	c.cameraToWorld = geom.Transform{M: m, MInv: invertAffine(m)}
}

// GenerateRay maps a continuous raster coordinate (x+xi1, y+xi2) to a
// world-space ray. lensU/lensV are additional canonical uniforms
// consumed only when the camera has a non-zero lens radius (depth of
// field), following the thin-lens camera model.
func (c *Camera) GenerateRay(px, py float64, lensU, lensV float64) geom.Ray {
	aspect := float64(c.width) / float64(c.height)
	tanHalfFov := math.Tan(c.fovY * math.Pi / 360.0)

	ndcX := (2*(px/float64(c.width)) - 1) * aspect * tanHalfFov
	ndcY := (1 - 2*(py/float64(c.height))) * tanHalfFov

	dirCamera := geom.Vec3{X: ndcX, Y: ndcY, Z: -1}.Normalize()
	origin := c.eye
	direction := c.cameraToWorld.Vector(dirCamera).Normalize()

	if c.lensRadius > 0 {
		lx, ly := sampleConcentricDisk(lensU, lensV)
		lensOffset := geom.Vec3{X: lx * c.lensRadius, Y: ly * c.lensRadius}
		focusPoint := origin.Add(direction.Mul(c.focalDistance))
		origin = origin.Add(c.cameraToWorld.Vector(lensOffset))
		direction = focusPoint.Sub(origin).Normalize()
	}

	return geom.NewRay(origin, direction)
}

func sampleConcentricDisk(u, v float64) (float64, float64) {
	ox, oy := 2*u-1, 2*v-1
	if ox == 0 && oy == 0 {
		return 0, 0
	}
	var r, theta float64
	if math.Abs(ox) > math.Abs(oy) {
		r = ox
		theta = (math.Pi / 4) * (oy / ox)
	} else {
		r = oy
		theta = math.Pi/2 - (math.Pi/4)*(ox/oy)
	}
	return r * math.Cos(theta), r * math.Sin(theta)
}

// Translate, Rotate, Zoom and Resize implement the public engine API's
// camera mutations, each invalidating the owning film's accumulation.
// The renderer façade (pkg/engine) is responsible for calling
// Film.Reset after any of these.

func (c *Camera) Translate(dx, dy float64) {
	right := c.look.Sub(c.eye).Cross(c.up).Normalize()
	offset := right.Mul(dx).Add(c.up.Normalize().Mul(dy))
	c.eye = c.eye.Add(offset)
	c.look = c.look.Add(offset)
	c.rebuild()
}

func (c *Camera) Rotate(yawDeg, pitchDeg float64) {
	yaw := yawDeg * math.Pi / 180
	pitch := pitchDeg * math.Pi / 180
	forward := c.look.Sub(c.eye)
	dist := forward.Length()
	forward = forward.Normalize()

	right := forward.Cross(c.up.Normalize()).Normalize()
	forward = rotateAroundAxis(forward, c.up.Normalize(), yaw)
	forward = rotateAroundAxis(forward, right, pitch)

	c.look = c.eye.Add(forward.Normalize().Mul(dist))
	c.rebuild()
}

func (c *Camera) Zoom(delta float64) {
	c.fovY = math.Max(1, math.Min(175, c.fovY-delta))
	c.rebuild()
}

func (c *Camera) Resize(width, height int) {
	c.width, c.height = width, height
	c.rebuild()
}

func (c *Camera) Resolution() (int, int) { return c.width, c.height }

func rotateAroundAxis(v, axis geom.Vec3, angle float64) geom.Vec3 {
	cosA, sinA := math.Cos(angle), math.Sin(angle)
	return v.Mul(cosA).Add(axis.Cross(v).Mul(sinA)).Add(axis.Mul(axis.Dot(v) * (1 - cosA)))
}

// invertAffine inverts a rigid rotation+translation matrix via transpose
// of the rotation block, avoiding full Gauss-Jordan for the common case.
func invertAffine(m [4][4]float64) [4][4]float64 {
	var inv [4][4]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			inv[i][j] = m[j][i]
		}
	}
	t := geom.Vec3{X: m[0][3], Y: m[1][3], Z: m[2][3]}
	negRT := geom.Vec3{
		X: inv[0][0]*-t.X + inv[0][1]*-t.Y + inv[0][2]*-t.Z,
		Y: inv[1][0]*-t.X + inv[1][1]*-t.Y + inv[1][2]*-t.Z,
		Z: inv[2][0]*-t.X + inv[2][1]*-t.Y + inv[2][2]*-t.Z,
	}
	inv[0][3], inv[1][3], inv[2][3] = negRT.X, negRT.Y, negRT.Z
	inv[3][3] = 1
	return inv
}
