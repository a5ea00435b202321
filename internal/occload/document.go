// Package occload loads the static world geometry a culling engine needs at
// startup: convex cuboid and sphere occluders, authored as JSON and
// validated against the load-bearing vertex/winding conventions spec.md §3
// and §9 require (no dynamic occluders, no mid-tick reloads).
package occload

// Vec3Doc is the on-disk representation of a 3-component vector.
type Vec3Doc struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// CuboidDoc is the designer-authored form of a convex cuboid occluder: only
// the 8 vertices are supplied, in the fixed convention documented on the
// Vertices field. Faces (normals + perimeters) are derived at load time,
// never authored directly, so there is exactly one way to get them wrong
// and it is caught by checkConvex.
type CuboidDoc struct {
	ID       string    `json:"id" jsonschema:"title=Occluder id,pattern=^[a-z0-9-]+$,description=Designer-facing identifier for diagnostics"`
	Vertices [8]Vec3Doc `json:"vertices" jsonschema:"title=Box vertices,description=8 corners: 0-3 top face CCW from above, 4-7 bottom face CCW from above, with vertex 4 directly below vertex 0"`
}

// SphereDoc is the designer-authored form of a sphere occluder.
type SphereDoc struct {
	ID     string  `json:"id" jsonschema:"title=Occluder id,pattern=^[a-z0-9-]+$"`
	Center Vec3Doc `json:"center"`
	Radius float64 `json:"radius" jsonschema:"minimum=0"`
}

// FileDefinitions is the contents of a world's occluder geometry file: the
// static, load-once-at-startup cuboid and sphere lists of spec.md §3's
// "World snapshot" input. The culling engine never mutates or reloads this
// after New.
type FileDefinitions struct {
	Cuboids []CuboidDoc `json:"cuboids,omitempty" jsonschema:"description=Convex hexahedron occluders tested by the cuboid stage"`
	Spheres []SphereDoc `json:"spheres,omitempty" jsonschema:"description=Sphere occluders tested by the optional sphere stage"`
}
