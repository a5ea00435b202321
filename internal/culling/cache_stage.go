package culling

import (
	"context"

	culllog "loscull/logging/culling"
)

// cacheStage probes each bundle's small per-pair occluder cache before
// falling back to the full pipeline (spec.md §4.3 stage 1). On the first
// blocking slot it refreshes that slot's CacheTimer and reports the pair as
// culled; bundles that survive (no cached occluder still blocks) continue
// to the next stage. This exploits temporal coherence: the occluder that
// hid a pair last tick overwhelmingly likely hides it again this tick.
func (e *Engine) cacheStage(ctx context.Context, bundles []Bundle, bounds []CharacterBounds, edges *EdgeSet) []Bundle {
	survivors := bundles[:0:0]
	for _, b := range bundles {
		if e.cacheBlocks(ctx, b, bounds, edges) {
			e.internalMetrics.cacheHits++
			continue
		}
		survivors = append(survivors, b)
	}
	return survivors
}

func (e *Engine) cacheBlocks(ctx context.Context, b Bundle, bounds []CharacterBounds, edges *EdgeSet) bool {
	slots := e.pairs.cuboidCache[b.PlayerI][b.EnemyI]
	for slot, cuboidIdx := range slots {
		if cuboidIdx < 0 || cuboidIdx >= len(e.cuboids) {
			continue
		}
		viewer := bounds[b.PlayerI]
		enemy := bounds[b.EnemyI]
		if IsBlockingCuboid(e.cuboids[cuboidIdx], viewer.CameraLocation, enemy, e.config.MaxDeltaHorizontal, e.config.MaxDeltaVertical, edges) {
			e.pairs.cacheTimer[b.PlayerI][b.EnemyI][slot] = e.totalTicks
			culllog.Hide(ctx, e.publisher, e.totalTicks, e.viewerID(b.PlayerI), e.viewerID(b.EnemyI), cuboidIdx, true)
			return true
		}
	}
	return false
}
