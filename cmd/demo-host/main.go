// Command demo-host runs a synthetic two-team world against the culling
// engine on a ticker, relaying each pair's reveal decisions to that
// viewer's own websocket connection. It stands in for the render/transport/
// spawning "external collaborators" spec.md explicitly places outside the
// culling core.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"loscull/internal/app"
	"loscull/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := app.Config{
		Logger:           telemetry.WrapLogger(log.Default()),
		EnablePprofTrace: os.Getenv("ENABLE_PPROF_TRACE") == "true",
	}

	if err := app.Run(ctx, cfg); err != nil {
		log.Fatalf("%v", err)
	}
}
