package logging

import "time"

// Config tunes the router that fans culling events out to sinks. The
// culling engine emits one Reveal or Hide event for each pair it evaluates
// in a tick, at SeverityDebug (spec.md §4.3) — at a few hundred live pairs
// and a tick rate in the tens of Hertz that dwarfs any rare SeverityWarn+
// event, so the priority fields below exist to keep the latter from
// queuing behind the former.
type Config struct {
	EnabledSinks []string
	BufferSize   int
	// PriorityBufferSize sizes a second, small backlog reserved for events
	// at or above PriorityThreshold so a burst of cache/reveal churn
	// cannot delay or drop them (see Router.forward).
	PriorityBufferSize int
	// PriorityThreshold is the minimum Severity routed onto the priority
	// backlog instead of the main one.
	PriorityThreshold Severity
	MinimumSeverity   Severity
	Fields            map[string]any
	Console           ConsoleConfig
	DropWarnInterval  time.Duration
}

type ConsoleConfig struct {
	// UseColor wraps each line's severity label in an ANSI color code.
	// Left off for log-aggregator-piped output where escape codes are
	// noise; on for an interactive terminal watching a live match.
	UseColor bool
}

func DefaultConfig() Config {
	return Config{
		EnabledSinks:       []string{"console"},
		BufferSize:         512,
		PriorityBufferSize: 64,
		PriorityThreshold:  SeverityWarn,
		MinimumSeverity:    SeverityInfo,
		DropWarnInterval:   5 * time.Second,
	}
}

func (c Config) HasSink(name string) bool {
	for _, s := range c.EnabledSinks {
		if s == name {
			return true
		}
	}
	return false
}

func (c Config) CloneFields() map[string]any {
	if len(c.Fields) == 0 {
		return nil
	}
	cloned := make(map[string]any, len(c.Fields))
	for k, v := range c.Fields {
		cloned[k] = v
	}
	return cloned
}
