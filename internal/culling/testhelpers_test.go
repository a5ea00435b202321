package culling

import "loscull/internal/cullgeom"

// boxCuboid builds an axis-aligned convex cuboid occluder centered at
// center with the given half-extents, using the same 8-vertex convention
// (0-3 top CCW from above, 4-7 bottom CCW from above, 4 directly below 0)
// and outward-wound face perimeters that internal/occload derives from
// designer-authored vertices, for use in tests that need occluders without
// going through the file-loading path.
func boxCuboid(center, halfExtents cullgeom.Vec3) Cuboid {
	corners := [4]cullgeom.Vec3{
		{X: -halfExtents.X, Y: -halfExtents.Y},
		{X: halfExtents.X, Y: -halfExtents.Y},
		{X: halfExtents.X, Y: halfExtents.Y},
		{X: -halfExtents.X, Y: halfExtents.Y},
	}

	var vertices [8]cullgeom.Vec3
	for k, c := range corners {
		vertices[k] = cullgeom.Vec3{X: center.X + c.X, Y: center.Y + c.Y, Z: center.Z + halfExtents.Z}
		vertices[4+k] = cullgeom.Vec3{X: center.X + c.X, Y: center.Y + c.Y, Z: center.Z - halfExtents.Z}
	}

	perimeters := [6][4]int{
		{0, 1, 2, 3},
		{4, 7, 6, 5},
		{0, 4, 5, 1},
		{1, 5, 6, 2},
		{2, 6, 7, 3},
		{3, 7, 4, 0},
	}

	var faces [6]Face
	for fi, perim := range perimeters {
		p0, p1, p2 := vertices[perim[0]], vertices[perim[1]], vertices[perim[2]]
		plane := cullgeom.PlaneFromPoints(p0, p1, p2)
		faces[fi] = Face{Normal: plane.Normal, Perimeter: perim}
	}

	return Cuboid{Vertices: vertices, Faces: faces}
}

func standingBounds(camera, position cullgeom.Vec3) CharacterBounds {
	return buildOne(Pose{Camera: camera, Position: position, Alive: true})
}
