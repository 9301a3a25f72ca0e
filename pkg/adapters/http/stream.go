package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/reattach/internal/logging"
	"github.com/aretw0/reattach/pkg/domain"
)

// message is one server-sent event.
type message struct {
	Event string
	Data  []byte
}

// StreamManager fans run events out to SSE subscribers.
//
// Subscribers pick a document ID; the empty ID receives every event.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- message]struct{} // DocumentID -> Set of Channels
	runs        map[string]string                      // RunID -> DocumentID
	logger      *slog.Logger
}

// NewStreamManager creates an empty StreamManager.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- message]struct{}),
		runs:        make(map[string]string),
		logger:      logger,
	}
}

// Subscribe registers a listener for documentID and returns its channel and
// a cancel function that must be called to unsubscribe.
func (sm *StreamManager) Subscribe(documentID string) (<-chan message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan message, 16)
	if _, ok := sm.subscribers[documentID]; !ok {
		sm.subscribers[documentID] = make(map[chan<- message]struct{})
	}
	sm.subscribers[documentID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[documentID]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, documentID)
			}
		}
	}
}

// Broadcast sends an event to the subscribers of documentID and to global subscribers.
func (sm *StreamManager) Broadcast(documentID string, event domain.EventType, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		sm.logger.Error("StreamManager: encode event", "event", event, "err", err)
		return
	}
	msg := message{Event: string(event), Data: data}

	sm.mu.RLock()
	defer sm.mu.RUnlock()

	topics := []string{""}
	if documentID != "" {
		topics = append(topics, documentID)
	}
	for _, topic := range topics {
		for ch := range sm.subscribers[topic] {
			select {
			case ch <- msg:
			default:
				// Drop message if channel is full (slow client)
				sm.logger.Warn("SSE: Client buffer full, dropping message", "document_id", topic)
			}
		}
	}
}

// Hooks returns lifecycle hooks that broadcast run, item and font events.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(_ context.Context, e *domain.RunEvent) {
			sm.mu.Lock()
			sm.runs[e.RunID] = e.DocumentID
			sm.mu.Unlock()
			sm.Broadcast(e.DocumentID, e.Type, e)
		},
		OnItem: func(_ context.Context, e *domain.ItemEvent) {
			sm.Broadcast(sm.documentOf(e.RunID), e.Type, e)
		},
		OnFontLoad: func(_ context.Context, e *domain.FontEvent) {
			payload := struct {
				*domain.FontEvent
				Error string `json:"error,omitempty"`
			}{FontEvent: e}
			if e.Err != nil {
				payload.Error = e.Err.Error()
			}
			sm.Broadcast(sm.documentOf(e.RunID), e.Type, payload)
		},
		OnRunFinish: func(_ context.Context, e *domain.RunEvent) {
			sm.Broadcast(e.DocumentID, e.Type, e)
			sm.mu.Lock()
			delete(sm.runs, e.RunID)
			sm.mu.Unlock()
		},
	}
}

func (sm *StreamManager) documentOf(runID string) string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.runs[runID]
}
