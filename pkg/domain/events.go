package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart  EventType = "run_start"
	EventRunFinish EventType = "run_finish"
	EventItem      EventType = "item"
	EventFontLoad  EventType = "font_load"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// RunEvent marks the start or end of a reattach run.
type RunEvent struct {
	EventBase
	DocumentID string  `json:"document_id"`
	Mode       Mode    `json:"mode"`
	Selected   int     `json:"selected"`
	Report     *Report `json:"report,omitempty"` // set on finish
}

// ItemEvent reports the outcome of one selected node.
type ItemEvent struct {
	EventBase
	Item ItemResult `json:"item"`
}

// FontEvent reports one font load request.
type FontEvent struct {
	EventBase
	Font     FontName      `json:"font"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// OnFontLoad is called from concurrent goroutines and must be safe for that.
type LifecycleHooks struct {
	OnRunStart  func(context.Context, *RunEvent)
	OnRunFinish func(context.Context, *RunEvent)
	OnItem      func(context.Context, *ItemEvent)
	OnFontLoad  func(context.Context, *FontEvent)
}

// Merge returns hooks calling h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart:  chain(h.OnRunStart, other.OnRunStart),
		OnRunFinish: chain(h.OnRunFinish, other.OnRunFinish),
		OnItem:      chain(h.OnItem, other.OnItem),
		OnFontLoad:  chain(h.OnFontLoad, other.OnFontLoad),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
