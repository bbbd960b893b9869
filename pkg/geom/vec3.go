// Package geom provides the ray-tracing math primitives: vectors, rays,
// axis-aligned bounds, transforms and triangles.
package geom

import (
	"fmt"
	"math"
)

// Vec3 represents a 3D vector or RGB color.
type Vec3 struct {
	X, Y, Z float64
}

// Vec2 represents a 2D vector, used for barycentrics and texture coordinates.
type Vec2 struct {
	X, Y float64
}

func NewVec3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }
func NewVec2(x, y float64) Vec2    { return Vec2{X: x, Y: y} }

func (v Vec3) String() string {
	return fmt.Sprintf("{%.4g, %.4g, %.4g}", v.X, v.Y, v.Z)
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s float64) Vec3   { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) MulVec(o Vec3) Vec3   { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Negate() Vec3         { return Vec3{-v.X, -v.Y, -v.Z} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) AbsDot(o Vec3) float64 { return math.Abs(v.Dot(o)) }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vec3) Length() float64        { return math.Sqrt(v.LengthSquared()) }

func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1.0 / l)
}

// MaxComponent returns the largest of the three channels.
func (v Vec3) MaxComponent() float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

// Luminance returns the perceptual luminance of an RGB triple.
func (v Vec3) Luminance() float64 {
	return 0.2126*v.X + 0.7152*v.Y + 0.0722*v.Z
}

// IsFinite reports whether every component is finite (neither NaN nor
// infinite). It does not check the sign; see ClampNonNegative.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// ClampNonNegative zeroes any negative or non-finite component, the clamp
// rule a film applies to incoming radiance contributions.
func (v Vec3) ClampNonNegative() Vec3 {
	clamp := func(x float64) float64 {
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			return 0
		}
		return x
	}
	return Vec3{clamp(v.X), clamp(v.Y), clamp(v.Z)}
}

func (v Vec3) Clamp(lo, hi float64) Vec3 {
	c := func(x float64) float64 { return math.Max(lo, math.Min(hi, x)) }
	return Vec3{c(v.X), c(v.Y), c(v.Z)}
}

// Faceforward flips n so it lies in the same hemisphere as ref.
func Faceforward(n, ref Vec3) Vec3 {
	if n.Dot(ref) < 0 {
		return n.Negate()
	}
	return n
}

// CoordinateSystem builds an orthonormal basis {b1, b2} given a unit n.
// Uses Duff et al.'s branchless construction.
func CoordinateSystem(n Vec3) (b1, b2 Vec3) {
	sign := math.Copysign(1.0, n.Z)
	a := -1.0 / (sign + n.Z)
	b := n.X * n.Y * a
	b1 = Vec3{1.0 + sign*n.X*n.X*a, sign * b, -sign * n.X}
	b2 = Vec3{b, sign + n.Y*n.Y*a, -n.Y}
	return b1, b2
}
