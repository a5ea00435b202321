package culling

// RevealFunc is the host-supplied reveal callback: called zero or more
// times per tick, once per (viewerIndex, targetIndex) pair whose visibility
// timer is currently positive. No ordering between pairs is guaranteed
// (spec.md §4.6, §6).
type RevealFunc func(viewerIndex, targetIndex int)

// emit walks every pair with a positive visibility timer and invokes fn,
// guarded on both indices' current liveness. A viewer that has since died
// is skipped by ScheduleBundles, so its row of timers never decrements back
// to zero on its own (scheduler.go), and a dead target's timer stays
// positive until it counts down — without this guard those stale positive
// timers would keep firing reveal callbacks, leaking the positions of or to
// dead players.
func (e *Engine) emit(fn RevealFunc, alive []bool) {
	if fn == nil {
		return
	}
	for i := range e.pairs.visibilityTimer {
		if i >= len(alive) || !alive[i] {
			continue
		}
		for j, timer := range e.pairs.visibilityTimer[i] {
			if timer > 0 && j < len(alive) && alive[j] {
				fn(i, j)
			}
		}
	}
}
