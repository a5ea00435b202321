package broadphase

import (
	"testing"

	"loscull/internal/cullgeom"
)

func TestAll_ReturnsEveryIndex(t *testing.T) {
	all := NewAll(5)
	got := all.Candidates(cullgeom.Vec3{}, cullgeom.Vec3{X: 100}, 10)
	if len(got) != 5 {
		t.Fatalf("expected 5 candidates, got %d", len(got))
	}
	for i, idx := range got {
		if idx != i {
			t.Fatalf("expected All to return indices in order, got %v", got)
		}
	}
}

// The grid must never produce a false negative: a box sitting squarely on
// the query segment must always appear among the candidates, regardless of
// cell size relative to the box.
func TestGrid_ConservativeOverTheSegment(t *testing.T) {
	boxes := []AABB{
		{Min: cullgeom.Vec3{X: 90, Y: -10, Z: -10}, Max: cullgeom.Vec3{X: 110, Y: 10, Z: 10}},
	}
	grid := NewGrid(boxes, 32)

	got := grid.Candidates(cullgeom.Vec3{}, cullgeom.Vec3{X: 200}, 5)
	found := false
	for _, idx := range got {
		if idx == 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the box on the segment to be a candidate, got %v", got)
	}
}

func TestGrid_DeduplicatesAcrossCells(t *testing.T) {
	// A box spanning many cells must appear only once in the result.
	boxes := []AABB{
		{Min: cullgeom.Vec3{X: -200, Y: -200, Z: -200}, Max: cullgeom.Vec3{X: 200, Y: 200, Z: 200}},
	}
	grid := NewGrid(boxes, 16)

	got := grid.Candidates(cullgeom.Vec3{}, cullgeom.Vec3{X: 50}, 5)
	count := 0
	for _, idx := range got {
		if idx == 0 {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected box 0 to appear exactly once, got %d times in %v", count, got)
	}
}

func TestGrid_FarBoxExcluded(t *testing.T) {
	boxes := []AABB{
		{Min: cullgeom.Vec3{X: 10000, Y: 10000, Z: 10000}, Max: cullgeom.Vec3{X: 10010, Y: 10010, Z: 10010}},
	}
	grid := NewGrid(boxes, 32)

	got := grid.Candidates(cullgeom.Vec3{}, cullgeom.Vec3{X: 100}, 5)
	for _, idx := range got {
		if idx == 0 {
			t.Fatalf("expected a far-away box to be excluded, got %v", got)
		}
	}
}
