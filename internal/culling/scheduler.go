package culling

// ScheduleBundles walks every ordered (viewer, target) pair, decrementing
// running visibility timers and enumerating bundles whose timer has just
// expired (spec.md §4.2). While a timer is positive the pair is already
// revealed; re-evaluating it would be wasted work and would cause flicker,
// so only expired pairs are re-checked — the timer doubles as a reveal TTL
// and as the pipeline's natural amortizer.
func ScheduleBundles(teams []uint8, alive []bool, ps *pairState) []Bundle {
	var bundles []Bundle
	for i, viewerAlive := range alive {
		if !viewerAlive {
			continue
		}
		for j := range alive {
			if i == j {
				continue
			}
			if ps.visibilityTimer[i][j] > 0 {
				ps.visibilityTimer[i][j]--
				if ps.visibilityTimer[i][j] > 0 {
					continue
				}
			}
			if !alive[j] {
				continue
			}
			if teams[i] == teams[j] {
				continue
			}
			bundles = append(bundles, Bundle{PlayerI: i, EnemyI: j})
		}
	}
	return bundles
}
