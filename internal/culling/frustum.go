package culling

import "loscull/internal/cullgeom"

// EdgeSet is the scratch 8x8 directed-edge adjacency matrix reused across
// peeks within a single bundle/cuboid evaluation (spec.md §3, §4.4). It is
// cleared with a zero-value assignment rather than a byte-width-sensitive
// memset, sidestepping the source's `memset(EdgeSet, false, 64)` assumption
// (spec.md §9).
type EdgeSet [8][8]bool

func (e *EdgeSet) clear() {
	*e = EdgeSet{}
}

// peekOffsets returns the 4 peek displacement vectors in the order fixed by
// spec.md §4.4: (+H,+V), (-H,+V), (-H,-V), (+H,-V). Peeks 0-1 are "upper",
// 2-3 are "lower".
func peekOffsets(cameraToEnemy cullgeom.Vec3, maxDeltaH, maxDeltaV float64) [4]cullgeom.Vec3 {
	dir := cullgeom.Vec3{X: cameraToEnemy.X, Y: cameraToEnemy.Y}
	dir = dir.Normalize()
	if dir.X == 0 && dir.Y == 0 {
		// Degenerate zero-length camera→enemy vector (spec.md §7): fall back
		// to an axis-aligned horizontal basis instead of propagating NaN.
		dir = cullgeom.Vec3{X: 1, Y: 0}
	}

	h := cullgeom.Vec3{X: -dir.Y, Y: dir.X}.Scale(maxDeltaH)
	v := cullgeom.Vec3{Z: maxDeltaV}

	return [4]cullgeom.Vec3{
		h.Add(v),
		h.Scale(-1).Add(v),
		h.Scale(-1).Sub(v),
		h.Sub(v),
	}
}

// IsBlockingCuboid implements the shadow-frustum cuboid test of spec.md
// §4.4: cuboid occludes the bundle iff every one of the 4 peek-adjusted
// camera positions has its enemy fully contained in the shadow frustum cast
// by the cuboid from that peek.
func IsBlockingCuboid(cuboid Cuboid, viewerCamera cullgeom.Vec3, enemy CharacterBounds, maxDeltaH, maxDeltaV float64, edges *EdgeSet) bool {
	offsets := peekOffsets(enemy.Center.Sub(viewerCamera), maxDeltaH, maxDeltaV)

	for peekIdx, offset := range offsets {
		peekCamera := viewerCamera.Add(offset)
		upper := peekIdx < 2

		between := facesBetween(cuboid, peekCamera, enemy.Center)
		if len(between) == 0 {
			return false
		}

		edges.clear()
		for _, faceIdx := range between {
			perim := cuboid.Faces[faceIdx].Perimeter
			for k := 0; k < 4; k++ {
				a := perim[k]
				b := perim[(k+1)%4]
				edges[a][b] = true
			}
		}

		planes := silhouettePlanes(cuboid, edges, peekCamera)
		if len(planes) == 0 {
			return false
		}

		if !enemyContained(planes, enemy, upper) {
			return false
		}
	}

	return true
}

// facesBetween returns the indices of the faces of cuboid that are visible
// to the peek camera and hidden from the enemy center — the occluding
// silhouette candidates (spec.md §4.4 step 1). Ties at the epsilon boundary
// are treated as "not between": a face that is exactly edge-on contributes
// no useful occlusion.
func facesBetween(cuboid Cuboid, peekCamera, enemyCenter cullgeom.Vec3) []int {
	var between []int
	for idx, face := range cuboid.Faces {
		v := cuboid.Vertices[face.Perimeter[0]]
		toCamera := v.Sub(peekCamera).Dot(face.Normal)
		toEnemy := v.Sub(enemyCenter).Dot(face.Normal)
		if toCamera < -cullgeom.Epsilon && toEnemy > cullgeom.Epsilon {
			between = append(between, idx)
		}
	}
	return between
}

// silhouettePlanes builds one shadow-frustum plane per silhouette edge: an
// edge (a,b) is a silhouette edge iff EdgeSet[a][b] is set and EdgeSet[b][a]
// is not — interior edges shared by two "between" faces cancel because
// adjacent faces reference the shared edge in opposite directions
// (spec.md §4.4 step 2-3).
func silhouettePlanes(cuboid Cuboid, edges *EdgeSet, peekCamera cullgeom.Vec3) []cullgeom.Plane {
	var planes []cullgeom.Plane
	for a := 0; a < 8; a++ {
		for b := 0; b < 8; b++ {
			if !edges[a][b] || edges[b][a] {
				continue
			}
			va := cuboid.Vertices[a]
			vb := cuboid.Vertices[b]
			planes = append(planes, cullgeom.PlaneFromPoints(peekCamera, va, vb))
		}
	}
	return planes
}

// enemyContained runs the sphere-reject/accept and box-check sub-tests of
// spec.md §4.4 step 4. upper selects TopVertices for peeks 0-1 and
// BottomVertices for peeks 2-3 — safe because BottomVertices sit directly
// below TopVertices, so a peek from above has every bottom vertex contained
// whenever every top vertex is, and symmetrically from below.
func enemyContained(planes []cullgeom.Plane, enemy CharacterBounds, upper bool) bool {
	var clipping []cullgeom.Plane
	for _, plane := range planes {
		d := -plane.PlaneDot(enemy.Center)
		if d > enemy.OuterRadius {
			continue
		}
		if d < enemy.InnerRadius {
			return false
		}
		clipping = append(clipping, plane)
	}

	if len(clipping) == 0 {
		return true
	}

	verts := enemy.BottomVertices
	if upper {
		verts = enemy.TopVertices
	}

	for _, plane := range clipping {
		for _, vertex := range verts {
			if plane.PlaneDot(vertex) > 0 {
				return false
			}
		}
	}
	return true
}
