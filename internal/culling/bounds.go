package culling

import (
	"math"

	"loscull/internal/cullgeom"
)

// Capsule dimensions used to derive the constant inner/outer bounding-sphere
// radii and the box half-extents (spec.md §4.1: "need not be recomputed per
// tick"). These stand in for the host engine's character capsule.
const (
	CapsuleHalfWidth  = 18.0
	CapsuleHalfDepth  = 18.0
	CapsuleHalfHeight = 45.0

	// InnerRadius is the largest sphere guaranteed to sit inside the capsule
	// footprint (the box's short horizontal half-extent).
	InnerRadius = CapsuleHalfWidth
)

// OuterRadius is the smallest sphere guaranteed to enclose the full capsule
// box, i.e. its half-diagonal ("outer radius ≥ smallest enclosing sphere",
// spec.md §3).
var OuterRadius = math.Sqrt(CapsuleHalfWidth*CapsuleHalfWidth + CapsuleHalfDepth*CapsuleHalfDepth + CapsuleHalfHeight*CapsuleHalfHeight)

// BuildBounds derives CharacterBounds for every living player in the
// snapshot. The returned slice is parallel to snapshot.Players: dead players
// occupy a zero-value slot and callers must check Pose.Alive before
// indexing, exactly as spec.md §4.1 requires.
func BuildBounds(players []Pose) []CharacterBounds {
	bounds := make([]CharacterBounds, len(players))
	for i, pose := range players {
		if !pose.Alive {
			continue
		}
		bounds[i] = buildOne(pose)
	}
	return bounds
}

func buildOne(pose Pose) CharacterBounds {
	cosYaw := math.Cos(pose.YawRadian)
	sinYaw := math.Sin(pose.YawRadian)

	corners := [4]cullgeom.Vec3{
		{X: -CapsuleHalfWidth, Y: -CapsuleHalfDepth},
		{X: CapsuleHalfWidth, Y: -CapsuleHalfDepth},
		{X: CapsuleHalfWidth, Y: CapsuleHalfDepth},
		{X: -CapsuleHalfWidth, Y: CapsuleHalfDepth},
	}

	var top, bottom [4]cullgeom.Vec3
	for k, corner := range corners {
		rotatedX := corner.X*cosYaw - corner.Y*sinYaw
		rotatedY := corner.X*sinYaw + corner.Y*cosYaw
		top[k] = cullgeom.Vec3{
			X: pose.Position.X + rotatedX,
			Y: pose.Position.Y + rotatedY,
			Z: pose.Position.Z + CapsuleHalfHeight,
		}
		bottom[k] = cullgeom.Vec3{
			X: top[k].X,
			Y: top[k].Y,
			Z: pose.Position.Z - CapsuleHalfHeight,
		}
	}

	return CharacterBounds{
		CameraLocation: pose.Camera,
		Center:         pose.Position,
		InnerRadius:    InnerRadius,
		OuterRadius:    OuterRadius,
		TopVertices:    top,
		BottomVertices: bottom,
	}
}
