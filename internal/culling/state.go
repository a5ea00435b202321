package culling

import "loscull/internal/cullconfig"

// pairState is the per-(viewer,target) bookkeeping from spec.md §3:
// VisibilityTimer, CuboidCache and CacheTimer, allocated once to the
// maximum character count and indexed [viewerI][targetI].
type pairState struct {
	visibilityTimer [][]int
	cuboidCache     [][][]int
	cacheTimer      [][][]uint64
	cacheSize       int
}

func newPairState(maxCharacters, cacheSize int) *pairState {
	if cacheSize <= 0 {
		cacheSize = cullconfig.DefaultCuboidCacheSize
	}
	ps := &pairState{
		visibilityTimer: make([][]int, maxCharacters),
		cuboidCache:     make([][][]int, maxCharacters),
		cacheTimer:      make([][][]uint64, maxCharacters),
		cacheSize:       cacheSize,
	}
	for i := 0; i < maxCharacters; i++ {
		ps.visibilityTimer[i] = make([]int, maxCharacters)
		ps.cuboidCache[i] = make([][]int, maxCharacters)
		ps.cacheTimer[i] = make([][]uint64, maxCharacters)
		for j := 0; j < maxCharacters; j++ {
			slots := make([]int, cacheSize)
			for k := range slots {
				slots[k] = -1
			}
			ps.cuboidCache[i][j] = slots
			ps.cacheTimer[i][j] = make([]uint64, cacheSize)
		}
	}
	return ps
}

func (ps *pairState) ensureCapacity(maxCharacters int) {
	if len(ps.visibilityTimer) >= maxCharacters {
		return
	}
	grown := newPairState(maxCharacters, ps.cacheSize)
	for i := range ps.visibilityTimer {
		copy(grown.visibilityTimer[i], ps.visibilityTimer[i])
		for j := range ps.cuboidCache[i] {
			copy(grown.cuboidCache[i][j], ps.cuboidCache[i][j])
			copy(grown.cacheTimer[i][j], ps.cacheTimer[i][j])
		}
	}
	*ps = *grown
}

// lruSlot returns the index of the cache slot with the minimum CacheTimer
// value for pair (i,j) — the least-recently-validated slot (spec.md §4.3).
func (ps *pairState) lruSlot(i, j int) int {
	timers := ps.cacheTimer[i][j]
	slot := 0
	min := timers[0]
	for k := 1; k < len(timers); k++ {
		if timers[k] < min {
			min = timers[k]
			slot = k
		}
	}
	return slot
}
