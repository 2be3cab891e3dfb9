package session

import (
	"legal-intake-be/internal/pkg/logger"
	"legal-intake-be/pkg/media"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Runtime bundles one case's live session components. One runtime exists
// per active intake session; the registry tears it down on eviction.
type Runtime struct {
	Machine     *Machine
	Media       *MediaController
	Transcript  *Aggregator
	Draft       *DraftStore
	Gate        *Gate
	Coordinator *Coordinator
	Ticker      *ElapsedTicker
}

// NewRuntime wires a fresh session runtime around the given backend.
func NewRuntime(backend Backend, transport media.Transport, publisher message.Publisher, log logger.ILogger) *Runtime {
	mediaCtrl := NewMediaController(transport, log)
	transcript := NewAggregator()
	gate := NewGate(backend, log)
	draft := NewDraftStore(backend, gate, log)
	ticker := NewElapsedTicker()
	machine := NewMachine(backend, mediaCtrl, transcript, draft, gate, ticker, log)
	coordinator := NewCoordinator(backend, gate, draft, publisher, log)
	machine.SetCaseBoundHook(coordinator.BindCase)

	return &Runtime{
		Machine:     machine,
		Media:       mediaCtrl,
		Transcript:  transcript,
		Draft:       draft,
		Gate:        gate,
		Coordinator: coordinator,
		Ticker:      ticker,
	}
}

// BindCase points the per-case components at the created case.
func (r *Runtime) BindCase(caseId string) {
	r.Draft.BindCase(caseId)
	r.Gate.BindCase(caseId)
	r.Coordinator.BindCase(caseId)
}

// Close releases timers, the debounce cycle and media resources.
func (r *Runtime) Close() {
	r.Machine.Close()
}
