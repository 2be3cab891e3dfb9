package session

import "sync"

// Aggregator accumulates the live transcript. Entries are ordered by first
// appearance; a non-final entry is updated in place, a final one is immutable.
type Aggregator struct {
	mu    sync.Mutex
	order []string
	byId  map[string]*TranscriptMessage
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		byId: make(map[string]*TranscriptMessage),
	}
}

// Ingest applies one transcript event.
func (a *Aggregator) Ingest(msg TranscriptMessage) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if existing, ok := a.byId[msg.Id]; ok {
		if existing.IsFinal {
			// Final entries never change, late duplicates are dropped
			return
		}
		existing.Text = msg.Text
		existing.Timestamp = msg.Timestamp
		existing.IsFinal = msg.IsFinal
		return
	}

	copied := msg
	a.byId[msg.Id] = &copied
	a.order = append(a.order, msg.Id)
}

// Messages returns the sequence in first-appearance order.
func (a *Aggregator) Messages() []TranscriptMessage {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]TranscriptMessage, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, *a.byId[id])
	}
	return out
}

func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.order)
}

// Clear drops everything. Called when a new session begins.
func (a *Aggregator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.order = nil
	a.byId = make(map[string]*TranscriptMessage)
}
