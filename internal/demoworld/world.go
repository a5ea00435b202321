// Package demoworld is a synthetic two-team world that drives the culling
// engine for the demo host. Actor spawning, movement and meshes are named
// explicitly in spec.md as external collaborators the core does not own;
// this package is that collaborator, not a part of the core itself.
package demoworld

import (
	"context"
	"fmt"
	"math"
	"time"

	"loscull/internal/broadphase"
	"loscull/internal/cullconfig"
	"loscull/internal/cullgeom"
	"loscull/internal/culling"
	"loscull/internal/net/ws"
	"loscull/internal/occload"
	"loscull/internal/telemetry"
)

// Config configures the synthetic world.
type Config struct {
	PlayersPerTeam int
	ArenaRadius    float64
	TickInterval   time.Duration
	Engine         cullconfig.Config
}

func (c Config) normalized() Config {
	if c.PlayersPerTeam <= 0 {
		c.PlayersPerTeam = 4
	}
	if c.ArenaRadius <= 0 {
		c.ArenaRadius = 600
	}
	if c.TickInterval <= 0 {
		c.TickInterval = 33 * time.Millisecond
	}
	return c
}

// World owns the engine, the synthetic player roster and the per-tick
// movement that feeds it.
type World struct {
	cfg     Config
	engine  *culling.Engine
	ids     []string
	teams   []uint8
	tick    uint64
	logger  telemetry.Logger
	lastCullMicros int64
}

// New builds a world with 2*cfg.PlayersPerTeam players orbiting the arena
// on opposing teams, and a culling.Engine constructed over geometry.
func New(cfg Config, geometry occload.World, deps culling.Deps) *World {
	cfg = cfg.normalized()
	total := cfg.PlayersPerTeam * 2

	ids := make([]string, total)
	teams := make([]uint8, total)
	for i := 0; i < total; i++ {
		team := uint8(0)
		if i >= cfg.PlayersPerTeam {
			team = 1
		}
		ids[i] = fmt.Sprintf("p%d", i)
		teams[i] = team
	}
	deps.ViewerIDs = ids

	cuboids := make([]culling.Cuboid, len(geometry.Cuboids))
	copy(cuboids, geometry.Cuboids)
	spheres := make([]culling.Sphere, len(geometry.Spheres))
	copy(spheres, geometry.Spheres)

	engine := culling.New(cfg.Engine, cuboids, spheres, total, deps)
	engine.SetBroadPhase(broadphase.NewAll(len(cuboids)))

	logger := deps.Logger
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}

	return &World{cfg: cfg, engine: engine, ids: ids, teams: teams, logger: logger}
}

// Run drives the world on a ticker until ctx is canceled, pushing reveal
// messages for each pair the engine reveals this tick to the viewer's own
// websocket connection.
func (w *World) Run(ctx context.Context, hub *ws.Hub) error {
	ticker := time.NewTicker(w.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.step(ctx, hub)
		}
	}
}

func (w *World) step(ctx context.Context, hub *ws.Hub) {
	w.tick++
	snapshot := w.snapshot()

	start := time.Now()
	w.engine.Tick(ctx, snapshot, func(viewerIndex, targetIndex int) {
		pose := snapshot.Players[targetIndex]
		hub.Reveal(w.ids[viewerIndex], ws.RevealMessage{
			Type:     "reveal",
			Tick:     snapshot.Tick,
			TargetID: w.ids[targetIndex],
			X:        pose.Position.X,
			Y:        pose.Position.Y,
			Z:        pose.Position.Z,
		})
	})
	w.lastCullMicros = time.Since(start).Microseconds()
	w.engine.RecordCullDuration(ctx, w.lastCullMicros)
}

// snapshot computes this tick's player poses: every player orbits the arena
// center at a phase offset derived from its index, so viewers on opposing
// teams periodically cross each other's lines of sight.
func (w *World) snapshot() culling.Snapshot {
	players := make([]culling.Pose, len(w.ids))
	angularStep := 2 * math.Pi / float64(len(w.ids))
	phase := float64(w.tick) * 0.02

	for i := range players {
		angle := phase + angularStep*float64(i)
		radius := w.cfg.ArenaRadius
		if w.teams[i] == 1 {
			radius *= 0.5
		}
		position := cullgeom.Vec3{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
			Z: 90,
		}
		camera := position.Add(cullgeom.Vec3{Z: 80})
		yaw := angle + math.Pi

		players[i] = culling.Pose{
			Camera:    camera,
			Position:  position,
			YawRadian: yaw,
			Alive:     true,
			Team:      w.teams[i],
		}
	}

	return culling.Snapshot{Players: players, Tick: w.tick}
}

// DiagnosticsSnapshot reports a small JSON-able summary for the /diagnostics
// endpoint.
func (w *World) DiagnosticsSnapshot() any {
	return struct {
		Tick           uint64 `json:"tick"`
		Players        int    `json:"players"`
		LastCullMicros int64  `json:"lastCullMicros"`
	}{
		Tick:           w.tick,
		Players:        len(w.ids),
		LastCullMicros: w.lastCullMicros,
	}
}
