package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"loscull/internal/cullconfig"
	"loscull/internal/culling"
	"loscull/internal/demoworld"
	servernet "loscull/internal/net"
	"loscull/internal/net/ws"
	"loscull/internal/occload"
	"loscull/internal/telemetry"
	"loscull/logging"
	loggingSinks "loscull/logging/sinks"
)

// Config is the demo host's top-level configuration seam, in the shape of
// the teacher's own app.Config{Logger, ...}: the teacher's separate
// observability sub-struct is folded directly onto this one since it only
// ever carried a single bool.
type Config struct {
	Logger telemetry.Logger
	// EnablePprofTrace mounts net/http/pprof routes under /debug/pprof.
	EnablePprofTrace bool
}

// Run wires the logging router, loads occluder geometry, constructs the
// culling engine over a synthetic two-team world, and serves it over HTTP
// until ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	telemetryLogger := cfg.Logger
	if telemetryLogger == nil {
		telemetryLogger = telemetry.WrapLogger(log.Default())
	}

	logConfig := logging.DefaultConfig()
	if raw := os.Getenv("LOG_USE_COLOR"); raw != "" {
		if value, convErr := strconv.ParseBool(raw); convErr == nil {
			logConfig.Console.UseColor = value
		} else {
			telemetryLogger.Printf("invalid LOG_USE_COLOR=%q: %v", raw, convErr)
		}
	}
	namedSinks := []logging.NamedSink{
		{Name: "console", Sink: loggingSinks.NewConsoleSink(os.Stdout, logConfig.Console)},
	}

	router, err := logging.NewRouter(logging.SystemClock{}, logConfig, namedSinks)
	if err != nil {
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := router.Close(closeCtx); cerr != nil {
			telemetryLogger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	var metrics logging.Metrics

	geometryPath := os.Getenv("OCCLUDER_GEOMETRY_PATH")
	var geometry occload.World
	if geometryPath != "" {
		geometry, err = occload.LoadFile(geometryPath)
		if err != nil {
			return fmt.Errorf("failed to load occluder geometry: %w", err)
		}
	}

	engineCfg := cullconfig.Default()
	if raw := os.Getenv("CUBOID_CACHE_SIZE"); raw != "" {
		if value, convErr := strconv.Atoi(raw); convErr == nil {
			engineCfg.CuboidCacheSize = value
		} else {
			telemetryLogger.Printf("invalid CUBOID_CACHE_SIZE=%q: %v", raw, convErr)
		}
	}

	worldCfg := demoworld.Config{Engine: engineCfg}
	if raw := os.Getenv("PLAYERS_PER_TEAM"); raw != "" {
		if value, convErr := strconv.Atoi(raw); convErr == nil {
			worldCfg.PlayersPerTeam = value
		} else {
			telemetryLogger.Printf("invalid PLAYERS_PER_TEAM=%q: %v", raw, convErr)
		}
	}

	deps := culling.Deps{
		Logger:    telemetryLogger,
		Metrics:   telemetry.WrapMetrics(&metrics),
		Publisher: router,
	}
	world := demoworld.New(worldCfg, geometry, deps)

	wsHub := ws.NewHub(telemetryLogger)

	enablePprofTrace := cfg.EnablePprofTrace
	if raw := os.Getenv("ENABLE_PPROF_TRACE"); raw != "" {
		if value, convErr := strconv.ParseBool(raw); convErr == nil {
			enablePprofTrace = value
		} else {
			telemetryLogger.Printf("invalid ENABLE_PPROF_TRACE=%q: %v", raw, convErr)
		}
	}

	handler := servernet.NewHTTPHandler(wsHub, world, servernet.HTTPHandlerConfig{
		Logger:           telemetryLogger,
		EnablePprofTrace: enablePprofTrace,
	})

	addr := ":8080"
	if raw := os.Getenv("DEMO_HOST_ADDR"); raw != "" {
		addr = raw
	}
	srv := &http.Server{Addr: addr, Handler: handler}

	worldErr := make(chan error, 1)
	go func() {
		worldErr <- world.Run(ctx, wsHub)
	}()

	serveErr := make(chan error, 1)
	go func() {
		telemetryLogger.Printf("demo host listening on %s", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			telemetryLogger.Printf("server shutdown error: %v", err)
		}
		<-worldErr
		return ctx.Err()
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case err := <-worldErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("world loop exited: %w", err)
		}
		return nil
	}
}
