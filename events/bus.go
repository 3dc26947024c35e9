// Package events implements the EventBus: ordered, per-request fan-out of
// pipeline stage events to subscribers.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/tech-psycho95/ai-council/core"
)

// Type tags the 8 stage events the orchestrator emits, per spec §4.10.
type Type string

const (
	TypeProcessingStarted Type = "processing_started"
	TypeAnalysisComplete  Type = "analysis_complete"
	TypeRoutingComplete   Type = "routing_complete"
	TypeExecutionProgress Type = "execution_progress"
	TypeArbitrationResult Type = "arbitration_decision"
	TypeSynthesisProgress Type = "synthesis_progress"
	TypeFinalResponse     Type = "final_response"
	TypeError             Type = "error"
)

// Event is one published stage notification.
type Event struct {
	Type      Type
	RequestID string
	Payload   map[string]interface{}
	Sequence  uint64
}

// publishTimeout bounds how long Publish blocks on a slow subscriber before
// disconnecting it, matching the spec's "publisher blocks only bounded
// time; slow subscribers are disconnected with an error event."
const publishTimeout = 200 * time.Millisecond

// subscriberBuffer is the per-subscriber channel capacity.
const subscriberBuffer = 64

type subscription struct {
	ch     chan Event
	closed bool
}

// Bus fans out events to subscribers, ordered per request_id. Missed
// events when no subscriber is attached yet are dropped silently, matching
// the spec's at-least-once-to-live-subscribers semantics.
type Bus struct {
	logger core.Logger

	mu    sync.Mutex
	subs  map[string][]*subscription
	seq   map[string]uint64
}

// NewBus builds an empty Bus. A nil logger defaults to NoOpLogger.
func NewBus(logger core.Logger) *Bus {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Bus{
		logger: logger,
		subs:   make(map[string][]*subscription),
		seq:    make(map[string]uint64),
	}
}

// Subscribe attaches a new listener for requestID and returns a receive-only
// channel of its events. Call Unsubscribe (via the returned cancel func)
// once the caller is done to release the channel.
func (b *Bus) Subscribe(requestID string) (<-chan Event, func()) {
	sub := &subscription{ch: make(chan Event, subscriberBuffer)}

	b.mu.Lock()
	b.subs[requestID] = append(b.subs[requestID], sub)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[requestID]
		for i, s := range subs {
			if s == sub {
				b.subs[requestID] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		if !sub.closed {
			sub.closed = true
			close(sub.ch)
		}
	}
	return sub.ch, cancel
}

// Publish delivers event to every live subscriber of requestID, assigning
// it the next monotonically increasing sequence number for that request.
// A subscriber that doesn't drain within publishTimeout is disconnected and
// sent a synthetic error event on a best-effort basis.
func (b *Bus) Publish(requestID string, eventType Type, payload map[string]interface{}) {
	b.mu.Lock()
	b.seq[requestID]++
	seq := b.seq[requestID]
	subs := append([]*subscription(nil), b.subs[requestID]...)
	b.mu.Unlock()

	evt := Event{Type: eventType, RequestID: requestID, Payload: payload, Sequence: seq}

	for _, sub := range subs {
		b.deliver(requestID, sub, evt)
	}
}

func (b *Bus) deliver(requestID string, sub *subscription, evt Event) {
	select {
	case sub.ch <- evt:
		return
	default:
	}

	timer := time.NewTimer(publishTimeout)
	defer timer.Stop()
	select {
	case sub.ch <- evt:
	case <-timer.C:
		b.logger.Warn("subscriber too slow, disconnecting", map[string]interface{}{
			"request_id": requestID,
			"event_type": string(evt.Type),
		})
		b.disconnectSlow(requestID, sub)
	}
}

func (b *Bus) disconnectSlow(requestID string, sub *subscription) {
	b.mu.Lock()
	subs := b.subs[requestID]
	for i, s := range subs {
		if s == sub {
			b.subs[requestID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	closed := sub.closed
	sub.closed = true
	b.mu.Unlock()

	if closed {
		return
	}
	select {
	case sub.ch <- Event{Type: TypeError, RequestID: requestID, Payload: map[string]interface{}{"message": "subscriber disconnected: too slow"}}:
	default:
	}
	close(sub.ch)
}

// Retire releases all per-request bookkeeping (subscriber list and
// sequence counter) once a request's processing completes, matching the
// spec's "entities live only for the request's processing and the
// retention period of the event bus for that request_id."
func (b *Bus) Retire(requestID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs[requestID] {
		if !sub.closed {
			sub.closed = true
			close(sub.ch)
		}
	}
	delete(b.subs, requestID)
	delete(b.seq, requestID)
}

// WaitForContext blocks until ctx is done or ch is closed, handing each
// received event to handle; a convenience for subscribers
// that want to stop draining on cancellation rather than polling the
// channel in a bare for-range.
func WaitForContext(ctx context.Context, ch <-chan Event, handle func(Event)) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-ch:
			if !ok {
				return
			}
			handle(evt)
		}
	}
}
