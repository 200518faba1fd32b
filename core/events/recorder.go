package events

import (
	"sync"

	"creatorpass/core/types"
)

// payloadCarrier is satisfied by emitted envelopes that expose their raw
// event payload, such as the platform module's event wrapper.
type payloadCarrier interface {
	Event() *types.Event
}

// Recorder retains the most recent events in memory so they can be served to
// RPC clients. It keeps at most capacity entries, discarding the oldest first.
type Recorder struct {
	mu       sync.Mutex
	capacity int
	entries  []*types.Event
}

// NewRecorder constructs a recorder bounded to the supplied capacity. A
// non-positive capacity falls back to a small default.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = 128
	}
	return &Recorder{capacity: capacity}
}

// Emit implements the Emitter interface, retaining the event payload when the
// envelope exposes one.
func (r *Recorder) Emit(evt Event) {
	if r == nil || evt == nil {
		return
	}
	carrier, ok := evt.(payloadCarrier)
	if !ok {
		return
	}
	payload := carrier.Event()
	if payload == nil {
		return
	}
	stored := payload.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, stored)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[len(r.entries)-r.capacity:]
	}
}

// Recent returns up to limit of the most recent events, newest last. A
// non-positive limit returns everything retained.
func (r *Recorder) Recent(limit int) []*types.Event {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*types.Event, 0, n)
	for _, evt := range r.entries[len(r.entries)-n:] {
		out = append(out, evt.Clone())
	}
	return out
}

// Fanout forwards every event to each configured emitter in order.
type Fanout []Emitter

// Emit implements the Emitter interface.
func (f Fanout) Emit(evt Event) {
	for _, emitter := range f {
		if emitter != nil {
			emitter.Emit(evt)
		}
	}
}
