// Package cullgeom is the minimal linear-algebra surface the culling engine
// needs in place of a host engine's Vec3/Plane types: dot/cross/add/sub/scale
// /normalize plus a signed-distance Plane primitive.
package cullgeom

import "math"

// Vec3 is a point or direction in world space.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a-b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale returns a*s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Dot returns the scalar dot product.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns a×b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Length returns the Euclidean norm.
func (a Vec3) Length() float64 {
	return math.Sqrt(a.Dot(a))
}

// Normalize returns a unit vector in the direction of a. The zero vector is
// returned unchanged; callers dealing with the degenerate camera→enemy case
// (spec.md §7) must guard before calling this.
func (a Vec3) Normalize() Vec3 {
	length := a.Length()
	if length == 0 {
		return a
	}
	return a.Scale(1.0 / length)
}

// Epsilon bounds the "faces between" strict inequality comparisons (spec.md
// §4.4) so a face that is exactly edge-on to the peek or the enemy center is
// treated as "not between" rather than flickering on floating point noise.
const Epsilon = 1e-9

// Plane is a plane in point-normal form with a precomputed offset so that
// PlaneDot(p) = Normal.Dot(p) + Offset is the signed distance from p to the
// plane along Normal, positive on the side Normal points toward.
type Plane struct {
	Normal Vec3
	Offset float64
}

// PlaneFromPoints builds the plane through p0, p1, p2. The normal is
// (p1-p0)×(p2-p0), normalized; callers are responsible for supplying points
// in the winding order that yields the desired normal direction.
func PlaneFromPoints(p0, p1, p2 Vec3) Plane {
	normal := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	return Plane{
		Normal: normal,
		Offset: -normal.Dot(p0),
	}
}

// PlaneDot returns the signed distance from point to the plane: positive on
// the side the normal points toward, matching the "PlaneDot(point) <= 0"
// containment convention used throughout spec.md §4.4.
func (p Plane) PlaneDot(point Vec3) float64 {
	return p.Normal.Dot(point) + p.Offset
}
