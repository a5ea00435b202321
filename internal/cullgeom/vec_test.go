package cullgeom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestVec3_AddSub(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: -1, Z: 2}

	sum := a.Add(b)
	if sum != (Vec3{X: 5, Y: 1, Z: 5}) {
		t.Fatalf("Add: got %+v", sum)
	}

	diff := a.Sub(b)
	if diff != (Vec3{X: -3, Y: 3, Z: 1}) {
		t.Fatalf("Sub: got %+v", diff)
	}
}

func TestVec3_DotCross(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}

	if got := x.Dot(y); got != 0 {
		t.Fatalf("expected orthogonal unit axes to have zero dot product, got %v", got)
	}

	z := x.Cross(y)
	if z != (Vec3{Z: 1}) {
		t.Fatalf("expected X cross Y = Z, got %+v", z)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := Vec3{X: 3, Y: 4}
	n := v.Normalize()
	if !almostEqual(n.Length(), 1) {
		t.Fatalf("expected unit length, got %v", n.Length())
	}
	if !almostEqual(n.X, 0.6) || !almostEqual(n.Y, 0.8) {
		t.Fatalf("expected (0.6,0.8), got %+v", n)
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	v := Vec3{}
	if got := v.Normalize(); got != v {
		t.Fatalf("expected the zero vector unchanged, got %+v", got)
	}
}

func TestPlaneFromPoints_SignConvention(t *testing.T) {
	// The XY plane through the origin with points wound so the normal
	// points toward +Z.
	plane := PlaneFromPoints(Vec3{}, Vec3{X: 1}, Vec3{Y: 1})
	if !almostEqual(plane.Normal.Z, 1) {
		t.Fatalf("expected normal pointing toward +Z, got %+v", plane.Normal)
	}

	above := Vec3{Z: 5}
	below := Vec3{Z: -5}
	if plane.PlaneDot(above) <= 0 {
		t.Fatalf("expected a point above the plane to have a positive signed distance, got %v", plane.PlaneDot(above))
	}
	if plane.PlaneDot(below) >= 0 {
		t.Fatalf("expected a point below the plane to have a negative signed distance, got %v", plane.PlaneDot(below))
	}
	if !almostEqual(plane.PlaneDot(Vec3{X: 3, Y: -2}), 0) {
		t.Fatalf("expected a coplanar point to have zero signed distance")
	}
}
