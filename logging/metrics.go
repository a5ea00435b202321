package logging

import "sync"

// Metrics is a small thread-safe counter table used for engine telemetry
// (cuboids tested per tick, load-threshold trips, ...) plus a separate
// gauge table for values that are naturally fractional — cache hit rate
// chief among them, which swings every tick and is not a running total.
type Metrics struct {
	mu     sync.Mutex
	values map[string]uint64
	gauges map[string]float64
}

// TelemetryAdd increments the named counter by delta.
func (m *Metrics) TelemetryAdd(key string, delta uint64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]uint64)
	}
	m.values[key] += delta
}

// TelemetryStore overwrites the named counter.
func (m *Metrics) TelemetryStore(key string, value uint64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]uint64)
	}
	m.values[key] = value
}

// Snapshot returns a copy of the current counter table.
func (m *Metrics) Snapshot() map[string]uint64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]uint64, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// TelemetryGauge overwrites the named gauge with a fractional value.
func (m *Metrics) TelemetryGauge(key string, value float64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gauges == nil {
		m.gauges = make(map[string]float64)
	}
	m.gauges[key] = value
}

// GaugeSnapshot returns a copy of the current gauge table.
func (m *Metrics) GaugeSnapshot() map[string]float64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]float64, len(m.gauges))
	for k, v := range m.gauges {
		out[k] = v
	}
	return out
}
