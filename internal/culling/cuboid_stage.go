package culling

import (
	"context"

	"loscull/internal/broadphase"
	culllog "loscull/logging/culling"
)

// cuboidStage runs the full shadow-frustum test over the broad phase's
// candidate set for each surviving bundle (spec.md §4.3 stage 3). On a
// block it LRU-replaces a cache slot; on a clean pass it opens the
// visibility timer for TimerIncrement + jitter ticks.
func (e *Engine) cuboidStage(ctx context.Context, bundles []Bundle, bounds []CharacterBounds, edges *EdgeSet, bp broadphase.Query, timerIncrement int) {
	for _, b := range bundles {
		viewer := bounds[b.PlayerI]
		enemy := bounds[b.EnemyI]

		margin := enemy.OuterRadius + e.config.MaxDeltaHorizontal
		candidates := bp.Candidates(viewer.CameraLocation, enemy.Center, margin)

		blockingIdx := -1
		for _, idx := range candidates {
			if idx < 0 || idx >= len(e.cuboids) {
				continue
			}
			if IsBlockingCuboid(e.cuboids[idx], viewer.CameraLocation, enemy, e.config.MaxDeltaHorizontal, e.config.MaxDeltaVertical, edges) {
				blockingIdx = idx
				break
			}
		}

		if blockingIdx >= 0 {
			slot := e.pairs.lruSlot(b.PlayerI, b.EnemyI)
			e.pairs.cuboidCache[b.PlayerI][b.EnemyI][slot] = blockingIdx
			e.pairs.cacheTimer[b.PlayerI][b.EnemyI][slot] = e.totalTicks
			culllog.Hide(ctx, e.publisher, e.totalTicks, e.viewerID(b.PlayerI), e.viewerID(b.EnemyI), blockingIdx, false)
			continue
		}

		jitter := e.jitter()
		timer := timerIncrement + jitter
		e.pairs.visibilityTimer[b.PlayerI][b.EnemyI] = timer
		culllog.Reveal(ctx, e.publisher, e.totalTicks, e.viewerID(b.PlayerI), e.viewerID(b.EnemyI), timer)
	}
}
