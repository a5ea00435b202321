// Package culling provides structured logging.Event constructors for the
// visibility engine, in the shape of the teacher's per-domain logging
// helper packages (logging/combat, logging/economy, ...).
package culling

import (
	"context"

	"loscull/logging"
)

const (
	// EventReveal fires each time the pipeline finds no occluder for a pair
	// and opens its visibility timer.
	EventReveal logging.EventType = "culling.reveal"
	// EventHide fires each time a cached or candidate occluder blocks a pair
	// under evaluation.
	EventHide logging.EventType = "culling.hide"
	// EventLoadAdapted fires whenever the rolling window flips the timer
	// increment between its min and max bounds.
	EventLoadAdapted logging.EventType = "culling.load_adapted"
)

// RevealPayload captures why a pair became visible.
type RevealPayload struct {
	TimerTicks int `json:"timerTicks"`
}

// HidePayload captures the occluder (if any) that caused a pair to go dark.
type HidePayload struct {
	CuboidIndex int  `json:"cuboidIndex"`
	FromCache   bool `json:"fromCache"`
}

// LoadAdaptedPayload reports the new adaptive timer increment.
type LoadAdaptedPayload struct {
	WindowMaxMicros  int64 `json:"windowMaxMicros"`
	ThresholdMicros  int64 `json:"thresholdMicros"`
	NewTimerIncrease int   `json:"newTimerIncrement"`
}

func actorRef(viewerID string) logging.EntityRef {
	return logging.EntityRef{ID: viewerID, Kind: logging.EntityKindPlayer}
}

func targetRef(targetID string) logging.EntityRef {
	return logging.EntityRef{ID: targetID, Kind: logging.EntityKindPlayer}
}

// Reveal publishes a culling.reveal event for a pair whose visibility timer
// was just opened.
func Reveal(ctx context.Context, pub logging.Publisher, tick uint64, viewerID, targetID string, timerTicks int) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventReveal,
		Tick:     tick,
		Actor:    actorRef(viewerID),
		Targets:  []logging.EntityRef{targetRef(targetID)},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCulling,
		Payload:  RevealPayload{TimerTicks: timerTicks},
	})
}

// Hide publishes a culling.hide event when an occluder blocks a pair.
func Hide(ctx context.Context, pub logging.Publisher, tick uint64, viewerID, targetID string, cuboidIndex int, fromCache bool) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventHide,
		Tick:     tick,
		Actor:    actorRef(viewerID),
		Targets:  []logging.EntityRef{targetRef(targetID)},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCulling,
		Payload:  HidePayload{CuboidIndex: cuboidIndex, FromCache: fromCache},
	})
}

// LoadAdapted publishes a culling.load_adapted event whenever the rolling
// window flips the adaptive timer increment.
func LoadAdapted(ctx context.Context, pub logging.Publisher, tick uint64, windowMax, threshold int64, newIncrement int) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventLoadAdapted,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindUnknown},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLoad,
		Payload: LoadAdaptedPayload{
			WindowMaxMicros:  windowMax,
			ThresholdMicros:  threshold,
			NewTimerIncrease: newIncrement,
		},
	})
}
