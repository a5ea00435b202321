package occload

import (
	"encoding/json"
	"fmt"
	"os"

	"loscull/internal/culling"
)

// World is the fully validated, load-once occluder set a culling.Engine is
// constructed over.
type World struct {
	Cuboids []culling.Cuboid
	Spheres []culling.Sphere
}

// LoadFile reads and validates an occluder geometry file from disk.
func LoadFile(path string) (World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return World{}, fmt.Errorf("occload: read %s: %w", path, err)
	}
	return Load(data)
}

// Load parses and validates occluder geometry from an in-memory document.
// Any malformed occluder fails the whole load (spec.md §8: "fail
// initialization with a descriptive diagnostic; do not start the tick
// loop"), since a culling engine missing even one occluder is a security
// regression, not a degraded-but-safe state.
func Load(data []byte) (World, error) {
	var doc FileDefinitions
	if err := json.Unmarshal(data, &doc); err != nil {
		return World{}, fmt.Errorf("occload: parse geometry: %w", err)
	}

	world := World{
		Cuboids: make([]culling.Cuboid, 0, len(doc.Cuboids)),
		Spheres: make([]culling.Sphere, 0, len(doc.Spheres)),
	}

	seen := make(map[string]bool, len(doc.Cuboids)+len(doc.Spheres))
	for _, cuboidDoc := range doc.Cuboids {
		if cuboidDoc.ID != "" {
			if seen[cuboidDoc.ID] {
				return World{}, fmt.Errorf("occload: duplicate occluder id %q", cuboidDoc.ID)
			}
			seen[cuboidDoc.ID] = true
		}
		cuboid, err := buildCuboid(cuboidDoc)
		if err != nil {
			return World{}, err
		}
		world.Cuboids = append(world.Cuboids, cuboid)
	}

	for _, sphereDoc := range doc.Spheres {
		if sphereDoc.ID != "" {
			if seen[sphereDoc.ID] {
				return World{}, fmt.Errorf("occload: duplicate occluder id %q", sphereDoc.ID)
			}
			seen[sphereDoc.ID] = true
		}
		sphere, err := buildSphere(sphereDoc)
		if err != nil {
			return World{}, err
		}
		world.Spheres = append(world.Spheres, sphere)
	}

	return world, nil
}
