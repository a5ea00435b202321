package culling

import (
	"context"
	"math/rand"
	"strconv"

	"loscull/internal/broadphase"
	"loscull/internal/cullconfig"
	"loscull/internal/telemetry"
	"loscull/logging"
	culllog "loscull/logging/culling"
)

// engineMetrics are the counters this package reports through the injected
// telemetry.Metrics seam (spec.md §9: adaptive backpressure, cache
// effectiveness), mirroring the teacher's Deps{Logger,Metrics} pattern.
type engineMetrics struct {
	cacheHits int
	scheduled int
}

// Deps are the engine's injected collaborators, in the shape of the
// teacher's internal/sim.Deps{Logger,Metrics,Clock}.
type Deps struct {
	Logger    telemetry.Logger
	Metrics   telemetry.Metrics
	Publisher logging.Publisher
	Rand      *rand.Rand
	ViewerIDs []string
}

// Engine is the explicit, host-owned culling engine replacing the source's
// engine-actor singleton (spec.md §9: "new/tick/drop lifecycle").
type Engine struct {
	config    cullconfig.Config
	cuboids   []Cuboid
	spheres   []Sphere
	pairs     *pairState
	window    *RollingWindow
	broadpha  broadphase.Query
	logger    telemetry.Logger
	metrics   telemetry.Metrics
	publisher logging.Publisher
	rand      *rand.Rand
	viewerIDs []string

	totalTicks uint64

	internalMetrics engineMetrics
	edges           EdgeSet
}

// New constructs an Engine over the given static occluder tables, sized for
// up to maxCharacters living players. Cuboids/spheres are loaded once and
// immutable thereafter (spec.md §3 "Lifecycles").
func New(cfg cullconfig.Config, cuboids []Cuboid, spheres []Sphere, maxCharacters int, deps Deps) *Engine {
	cfg = cfg.Normalized()
	logger := deps.Logger
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	return &Engine{
		config:    cfg,
		cuboids:   append([]Cuboid(nil), cuboids...),
		spheres:   append([]Sphere(nil), spheres...),
		pairs:     newPairState(maxCharacters, cfg.CuboidCacheSize),
		window:    NewRollingWindow(cfg.RollingWindowLength, cfg.TimerLoadThreshold, cfg.MinTimerIncrement, cfg.MaxTimerIncrement),
		broadpha:  broadphase.NewAll(len(cuboids)),
		logger:    logger,
		metrics:   deps.Metrics,
		publisher: publisher,
		rand:      rng,
		viewerIDs: deps.ViewerIDs,
	}
}

// SetBroadPhase overrides the candidate-cuboid query (default: "return
// all", spec.md §4.5).
func (e *Engine) SetBroadPhase(bp broadphase.Query) {
	if e == nil || bp == nil {
		return
	}
	e.broadpha = bp
}

// Close releases engine resources. The engine holds no file handles or
// goroutines of its own (spec.md §5: "no cancellation ... a tick either
// completes or the process is torn down"), so this is a no-op kept for
// lifecycle symmetry with New.
func (e *Engine) Close() {}

// Tick advances the culling engine by one server tick: bounds, scheduler,
// cache/sphere/cuboid pipeline stages, then emits reveal callbacks for every
// pair whose timer is currently positive (spec.md §2).
func (e *Engine) Tick(ctx context.Context, snapshot Snapshot, reveal RevealFunc) {
	e.totalTicks = snapshot.Tick
	e.pairs.ensureCapacity(len(snapshot.Players))

	teams := make([]uint8, len(snapshot.Players))
	alive := make([]bool, len(snapshot.Players))
	for i, p := range snapshot.Players {
		teams[i] = p.Team
		alive[i] = p.Alive
	}

	bounds := BuildBounds(snapshot.Players)

	bundles := ScheduleBundles(teams, alive, e.pairs)
	e.internalMetrics.scheduled = len(bundles)

	bundles = e.cacheStage(ctx, bundles, bounds, &e.edges)
	bundles = e.sphereStageFilter(bundles, bounds)

	timerIncrement := e.window.TimerIncrement()
	e.cuboidStage(ctx, bundles, bounds, &e.edges, e.broadpha, timerIncrement)

	e.emit(reveal, alive)

	e.reportMetrics()
}

// RecordCullDuration feeds one tick's measured cull wall-time into the
// rolling window that drives the adaptive TimerIncrement (spec.md §4.3).
// Hosts call this with the duration they measured wrapping Tick; it is kept
// separate from Tick so tests can drive the window deterministically
// without a real clock.
func (e *Engine) RecordCullDuration(ctx context.Context, microseconds int64) {
	if e.window.Record(microseconds) {
		e.logger.Printf(
			"[culling] timer increment adapted to %d (window max %dus, threshold %dus)",
			e.window.TimerIncrement(), e.window.WindowMax(), e.config.TimerLoadThreshold,
		)
		culllog.LoadAdapted(ctx, e.publisher, e.totalTicks, e.window.WindowMax(), e.config.TimerLoadThreshold, e.window.TimerIncrement())
	}
}

func (e *Engine) sphereStageFilter(bundles []Bundle, bounds []CharacterBounds) []Bundle {
	if len(e.spheres) == 0 {
		return bundles
	}
	survivors := bundles[:0:0]
	for _, b := range bundles {
		viewer := bounds[b.PlayerI]
		enemy := bounds[b.EnemyI]
		if sphereBlocks(e.spheres, viewer.CameraLocation, enemy, e.config.MaxDeltaHorizontal, e.config.MaxDeltaVertical) {
			continue
		}
		survivors = append(survivors, b)
	}
	return survivors
}

// jitter returns 0 or 1, staggering simultaneous reveal expirations so a
// smoke clearing does not spike every pair's re-check onto the same tick
// (spec.md §4.3).
func (e *Engine) jitter() int {
	return e.rand.Intn(2)
}

func (e *Engine) viewerID(index int) string {
	if index >= 0 && index < len(e.viewerIDs) {
		if id := e.viewerIDs[index]; id != "" {
			return id
		}
	}
	return strconv.Itoa(index)
}

func (e *Engine) reportMetrics() {
	if e.metrics != nil {
		e.metrics.Store("culling.cache_hits", uint64(e.internalMetrics.cacheHits))
		if e.internalMetrics.scheduled > 0 {
			rate := float64(e.internalMetrics.cacheHits) / float64(e.internalMetrics.scheduled)
			e.metrics.Gauge("culling.cache_hit_rate", rate)
		}
	}
	e.internalMetrics = engineMetrics{}
}
