package culling

import (
	"testing"

	"loscull/internal/cullgeom"
)

// A large sphere sitting directly between camera and enemy, with the enemy
// well inside its tangent-cone shadow, must block.
func TestSphereBlocks_DirectlyBetween(t *testing.T) {
	spheres := []Sphere{{Center: cullgeom.Vec3{X: 100}, Radius: 80}}
	enemy := standingBounds(cullgeom.Vec3{}, cullgeom.Vec3{X: 1000})

	if !sphereBlocks(spheres, cullgeom.Vec3{}, enemy, 20, 5) {
		t.Fatal("expected a large sphere squarely between camera and enemy to block")
	}
}

// A sphere behind the enemy (farther from the camera) must never block,
// regardless of its size.
func TestSphereBlocks_BehindEnemyNeverBlocks(t *testing.T) {
	spheres := []Sphere{{Center: cullgeom.Vec3{X: 2000}, Radius: 500}}
	enemy := standingBounds(cullgeom.Vec3{}, cullgeom.Vec3{X: 1000})

	if sphereBlocks(spheres, cullgeom.Vec3{}, enemy, 20, 5) {
		t.Fatal("a sphere beyond the enemy must not block")
	}
}

// A sphere sitting strictly between camera and enemy by distance, but
// displaced far off the sightline, must not block: its tangent cone cannot
// cover an angular offset that large.
func TestSphereBlocks_OffToTheSideNeverBlocks(t *testing.T) {
	spheres := []Sphere{{Center: cullgeom.Vec3{X: 300, Y: 900}, Radius: 50}}
	enemy := standingBounds(cullgeom.Vec3{}, cullgeom.Vec3{X: 1000})

	if sphereBlocks(spheres, cullgeom.Vec3{}, enemy, 20, 5) {
		t.Fatal("a sphere far off the sightline must not block")
	}
}

// A sphere whose tangent cone only marginally covers the enemy's silhouette
// (close to the same angular size) must not block once the peek margin is
// accounted for — the stage must stay conservative rather than risk a
// false block.
func TestSphereBlocks_MarginalCaseStaysConservative(t *testing.T) {
	// Occluder sphere much smaller than the enemy's outer radius, positioned
	// close to the camera: its tangent cone cannot possibly cover the
	// enemy's own silhouette cone plus peek margin.
	spheres := []Sphere{{Center: cullgeom.Vec3{X: 50}, Radius: 5}}
	enemy := standingBounds(cullgeom.Vec3{}, cullgeom.Vec3{X: 1000})

	if sphereBlocks(spheres, cullgeom.Vec3{}, enemy, 20, 5) {
		t.Fatal("expected a narrow-angle occluder to not block once the peek margin widens the enemy's silhouette cone")
	}
}
