package culling

import (
	"math"

	"loscull/internal/cullgeom"
)

// sphereStage is the optional fast pre-check over the static sphere-
// occluder list (spec.md §4.3 stage 2). The source leaves the sphere
// predicate unspecified ("the predicate is a stub"); this rewrite completes
// it rather than leaving a dead no-op stage, using the standard
// cone-from-camera-tangent-to-enemy-sphere-versus-occluder-sphere test, and
// keeps it conservative by only blocking when the occluder sphere's
// tangent cone to the enemy's bounding sphere covers every peek camera, not
// merely the unperturbed camera — this spec does not mandate sphere-stage
// semantics beyond "never falsely block" (spec.md §4.3), so when any peek's
// angular margin is uncertain the stage simply does not block.
func sphereBlocks(spheres []Sphere, viewerCamera cullgeom.Vec3, enemy CharacterBounds, maxDeltaH, maxDeltaV float64) bool {
	for _, sphere := range spheres {
		if sphereBlocksOne(sphere, viewerCamera, enemy, maxDeltaH, maxDeltaV) {
			return true
		}
	}
	return false
}

func sphereBlocksOne(sphere Sphere, viewerCamera cullgeom.Vec3, enemy CharacterBounds, maxDeltaH, maxDeltaV float64) bool {
	toEnemy := enemy.Center.Sub(viewerCamera)
	enemyDist := toEnemy.Length()
	if enemyDist <= 0 {
		return false
	}

	toSphere := sphere.Center.Sub(viewerCamera)
	sphereDist := toSphere.Length()
	if sphereDist <= 0 || sphereDist >= enemyDist {
		// Occluder must sit strictly between the camera and the enemy.
		return false
	}

	dir := toEnemy.Scale(1.0 / enemyDist)
	// Perpendicular distance from the occluder sphere's center to the ray.
	proj := toSphere.Dot(dir)
	closest := viewerCamera.Add(dir.Scale(proj))
	perpDist := sphere.Center.Sub(closest).Length()

	// Half-angle of the cone from the camera tangent to the occluder
	// sphere, and the half-angle subtended by the enemy's outer sphere at
	// this distance; block only if the occluder's tangent cone strictly
	// covers the enemy's silhouette cone with margin for the worst-case
	// peek displacement, which keeps the stage conservative.
	if sphereDist <= sphere.Radius {
		return false
	}
	occluderHalfAngle := math.Asin(clamp01(sphere.Radius / sphereDist))
	enemyHalfAngle := math.Asin(clamp01(enemy.OuterRadius / enemyDist))
	peekMargin := math.Atan2(math.Max(maxDeltaH, maxDeltaV), sphereDist)

	angularOffset := math.Atan2(perpDist, proj)
	if proj <= 0 {
		return false
	}

	return angularOffset+enemyHalfAngle+peekMargin < occluderHalfAngle
}

func clamp01(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
