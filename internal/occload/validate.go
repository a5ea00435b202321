package occload

import (
	"fmt"

	"loscull/internal/cullgeom"
	"loscull/internal/culling"
)

// cuboidFacePerimeters is the fixed face layout derived from the 8-vertex
// convention named in spec.md §9: vertices 0-3 are the top face wound CCW as
// seen from above, 4-7 are the bottom face wound CCW as seen from above
// (with 4 directly below 0, 5 below 1, and so on), and the 4 side faces
// connect corresponding top/bottom edges. Every perimeter below is wound so
// its face normal already points outward; checkConvex checks that this
// actually holds for the authored vertices rather than trusting it.
var cuboidFacePerimeters = [6][4]int{
	{0, 1, 2, 3}, // top
	{4, 7, 6, 5}, // bottom
	{0, 4, 5, 1}, // side y-
	{1, 5, 6, 2}, // side x+
	{2, 6, 7, 3}, // side y+
	{3, 7, 4, 0}, // side x-
}

func toVec3(d Vec3Doc) cullgeom.Vec3 {
	return cullgeom.Vec3{X: d.X, Y: d.Y, Z: d.Z}
}

// buildCuboid derives face normals from the 8 authored vertices and
// validates the convexity/winding invariant spec.md §8 requires at load
// time: "malformed cuboid (non-convex, wrong vertex count, non-CCW
// perimeter) — fail initialization with a descriptive diagnostic."
func buildCuboid(doc CuboidDoc) (culling.Cuboid, error) {
	var vertices [8]cullgeom.Vec3
	for i, v := range doc.Vertices {
		vertices[i] = toVec3(v)
	}

	var faces [6]culling.Face
	for fi, perimeter := range cuboidFacePerimeters {
		p0, p1, p2 := vertices[perimeter[0]], vertices[perimeter[1]], vertices[perimeter[2]]
		plane := cullgeom.PlaneFromPoints(p0, p1, p2)
		if plane.Normal.Length() < cullgeom.Epsilon {
			return culling.Cuboid{}, fmt.Errorf("occluder %q: face %d vertices %v are collinear or coincident", doc.ID, fi, perimeter)
		}
		faces[fi] = culling.Face{Normal: plane.Normal, Perimeter: perimeter}
	}

	if err := checkConvex(doc.ID, vertices, faces); err != nil {
		return culling.Cuboid{}, err
	}

	return culling.Cuboid{Vertices: vertices, Faces: faces}, nil
}

// checkConvex verifies every vertex lies on the inner side of every face
// plane (PlaneDot ≤ 0), which holds iff the hull is convex and every face
// perimeter above is actually wound outward for these particular vertices.
// A vertex that authored a concave or inward-wound box fails this check
// with the offending face and vertex named in the diagnostic.
func checkConvex(id string, vertices [8]cullgeom.Vec3, faces [6]culling.Face) error {
	const tolerance = 1e-6
	for fi, face := range faces {
		plane := cullgeom.Plane{Normal: face.Normal, Offset: -face.Normal.Dot(vertices[face.Perimeter[0]])}
		for vi, v := range vertices {
			if plane.PlaneDot(v) > tolerance {
				return fmt.Errorf("occluder %q: vertex %d lies outside face %d's plane by %g; vertices must form a convex hull with the documented winding convention", id, vi, fi, plane.PlaneDot(v))
			}
		}
	}
	return nil
}

func buildSphere(doc SphereDoc) (culling.Sphere, error) {
	if doc.Radius <= 0 {
		return culling.Sphere{}, fmt.Errorf("occluder %q: radius must be positive, got %g", doc.ID, doc.Radius)
	}
	return culling.Sphere{Center: toVec3(doc.Center), Radius: doc.Radius}, nil
}
