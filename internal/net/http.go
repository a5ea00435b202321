// Package net assembles the demo host's HTTP surface: health/diagnostics
// endpoints and the websocket upgrade route, in the shape of the teacher's
// own internal/net http_handlers.go mux.
package net

import (
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"time"

	"loscull/internal/net/ws"
	"loscull/internal/telemetry"
)

// HTTPHandlerConfig configures the demo host's HTTP surface.
type HTTPHandlerConfig struct {
	Logger telemetry.Logger
	// EnablePprofTrace mounts net/http/pprof routes under /debug/pprof. Off
	// by default: the culling tick loop runs on its own dedicated thread
	// (spec.md §5), so profiling it means opting in explicitly rather than
	// always paying for the pprof mux.
	EnablePprofTrace bool
}

// DiagnosticsSource is whatever the host uses to report engine health; the
// demo host's world satisfies this.
type DiagnosticsSource interface {
	DiagnosticsSnapshot() any
}

// NewHTTPHandler builds the demo host's HTTP mux: /health, /diagnostics, and
// /ws (delegated to the websocket hub). When cfg.EnablePprofTrace is set it
// also mounts the standard net/http/pprof routes under /debug/pprof.
func NewHTTPHandler(wsHub *ws.Hub, diagnostics DiagnosticsSource, cfg HTTPHandlerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/diagnostics", func(w http.ResponseWriter, r *http.Request) {
		payload := struct {
			Status     string `json:"status"`
			ServerTime int64  `json:"serverTime"`
			Engine     any    `json:"engine"`
		}{
			Status:     "ok",
			ServerTime: time.Now().UnixMilli(),
		}
		if diagnostics != nil {
			payload.Engine = diagnostics.DiagnosticsSnapshot()
		}

		data, err := json.Marshal(payload)
		if err != nil {
			http.Error(w, "failed to encode", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	mux.HandleFunc("/ws", wsHub.Handle)

	if cfg.EnablePprofTrace {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
		logger.Printf("pprof trace endpoints mounted under /debug/pprof")
	}

	return mux
}
