package culling

import (
	"context"
	"math/rand"
	"testing"

	"loscull/internal/cullconfig"
	"loscull/internal/cullgeom"
)

func twoTeamSnapshot(tick uint64) Snapshot {
	return Snapshot{
		Tick: tick,
		Players: []Pose{
			{Camera: cullgeom.Vec3{Z: 10}, Position: cullgeom.Vec3{}, Alive: true, Team: 0},
			{Camera: cullgeom.Vec3{X: 1000, Z: 10}, Position: cullgeom.Vec3{X: 1000}, Alive: true, Team: 1},
		},
	}
}

// S1 open field: two opposing-team players with no occluders between them
// must be revealed to each other on the very first tick.
func TestEngine_OpenFieldAlwaysReveals(t *testing.T) {
	engine := New(cullconfig.Default(), nil, nil, 2, Deps{Rand: rand.New(rand.NewSource(1))})

	seen := map[[2]int]bool{}
	engine.Tick(context.Background(), twoTeamSnapshot(1), func(viewer, target int) {
		seen[[2]int{viewer, target}] = true
	})

	if !seen[[2]int{0, 1}] || !seen[[2]int{1, 0}] {
		t.Fatalf("expected both directions revealed in the open field, got %v", seen)
	}
}

// Team gating at the engine level: same-team players must never be revealed
// to each other, regardless of occlusion outcome.
func TestEngine_NeverRevealsSameTeam(t *testing.T) {
	engine := New(cullconfig.Default(), nil, nil, 2, Deps{Rand: rand.New(rand.NewSource(1))})

	snapshot := twoTeamSnapshot(1)
	snapshot.Players[1].Team = 0 // force same team

	engine.Tick(context.Background(), snapshot, func(viewer, target int) {
		t.Fatalf("unexpected reveal(%d,%d) between same-team players", viewer, target)
	})
}

// A viewer that dies carries a stale positive VisibilityTimer into
// subsequent ticks (ScheduleBundles skips dead viewers, so the timer never
// decrements on its own). emit must not leak that pair's reveal once either
// side is dead, even though the timer row itself is still positive.
func TestEngine_StopsRevealingOnceViewerDies(t *testing.T) {
	engine := New(cullconfig.Default(), nil, nil, 2, Deps{Rand: rand.New(rand.NewSource(1))})

	snapshot := twoTeamSnapshot(1)
	engine.Tick(context.Background(), snapshot, func(int, int) {})

	snapshot = twoTeamSnapshot(2)
	snapshot.Players[0].Alive = false
	engine.Tick(context.Background(), snapshot, func(viewer, target int) {
		t.Fatalf("unexpected reveal(%d,%d) with a dead viewer", viewer, target)
	})
}

// S4 smoke-clear storm: when many pairs simultaneously clear occlusion in
// one tick, every newly opened visibility timer is within the jitter bound
// (TimerIncrement or TimerIncrement+1), never beyond it.
func TestEngine_JitterStaysWithinBounds(t *testing.T) {
	const n = 10
	players := make([]Pose, n)
	for i := range players {
		team := uint8(0)
		if i >= n/2 {
			team = 1
		}
		players[i] = Pose{
			Camera:   cullgeom.Vec3{X: float64(i) * 500, Z: 10},
			Position: cullgeom.Vec3{X: float64(i) * 500},
			Alive:    true,
			Team:     team,
		}
	}

	engine := New(cullconfig.Default(), nil, nil, n, Deps{Rand: rand.New(rand.NewSource(7))})
	engine.Tick(context.Background(), Snapshot{Players: players, Tick: 1}, func(int, int) {})

	base := engine.window.TimerIncrement()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			timer := engine.pairs.visibilityTimer[i][j]
			if timer == 0 {
				continue
			}
			if timer != base && timer != base+1 {
				t.Fatalf("pair (%d,%d) timer %d outside jitter bound [%d,%d]", i, j, timer, base, base+1)
			}
		}
	}
}

// Cache idempotence: with a static snapshot (no movement), a pair already
// revealed on tick N stays revealed on tick N+1 without re-running the
// occlusion pipeline, since the visibility timer has not yet expired.
func TestEngine_StaticSnapshotStaysRevealedAcrossTicks(t *testing.T) {
	engine := New(cullconfig.Default(), nil, nil, 2, Deps{Rand: rand.New(rand.NewSource(1))})
	snapshot := twoTeamSnapshot(1)

	firstReveals := map[[2]int]bool{}
	engine.Tick(context.Background(), snapshot, func(viewer, target int) {
		firstReveals[[2]int{viewer, target}] = true
	})

	snapshot.Tick = 2
	secondReveals := map[[2]int]bool{}
	engine.Tick(context.Background(), snapshot, func(viewer, target int) {
		secondReveals[[2]int{viewer, target}] = true
	})

	for pair := range firstReveals {
		if !secondReveals[pair] {
			t.Fatalf("pair %v revealed on tick 1 vanished on tick 2 with no movement", pair)
		}
	}
}

// S6 load adaptation: once a rolling window's maximum recorded cull
// duration exceeds the configured load threshold, the next window's timer
// increment becomes MaxTimerIncrement.
func TestRollingWindow_AdaptsUnderLoad(t *testing.T) {
	const length = 4
	const threshold = int64(2000)
	window := NewRollingWindow(length, threshold, 4, 12)

	if got := window.TimerIncrement(); got != 4 {
		t.Fatalf("expected initial TimerIncrement to be MinTimerIncrement 4, got %d", got)
	}

	var changed bool
	for i := 0; i < length; i++ {
		changed = window.Record(3000)
	}

	if !changed {
		t.Fatal("expected Record to report a change once the window fills over threshold")
	}
	if got := window.TimerIncrement(); got != 12 {
		t.Fatalf("expected TimerIncrement to adapt to MaxTimerIncrement 12, got %d", got)
	}
}

// S5 LRU: lruSlot always selects the cache slot with the least-recently-set
// CacheTimer, the mechanism the cuboid stage uses to retain only the most
// recently successful occluders per pair.
func TestPairState_LRUSlotPicksOldest(t *testing.T) {
	ps := newPairState(2, 3)
	ps.cacheTimer[0][1] = []uint64{5, 10, 3}

	if slot := ps.lruSlot(0, 1); slot != 2 {
		t.Fatalf("expected slot 2 (timer 3, the minimum) to be LRU, got %d", slot)
	}

	ps.cacheTimer[0][1] = []uint64{5, 10, 3}
	ps.cacheTimer[0][1][2] = 20 // slot 2 freshly validated
	if slot := ps.lruSlot(0, 1); slot != 0 {
		t.Fatalf("expected slot 0 (timer 5, now the minimum) to be LRU, got %d", slot)
	}
}
