package session

import (
	"context"
	"sync"
	"time"

	"legal-intake-be/internal/apperror"
	"legal-intake-be/internal/pkg/logger"
)

const defaultDebounce = 3000 * time.Millisecond

// DraftStore owns the case draft. Edits land in memory immediately; a
// debounce timer persists the full draft after a quiet period, then the
// validation gate is refreshed. Persist failures are logged and superseded
// by the next cycle.
type DraftStore struct {
	mu       sync.Mutex
	backend  Backend
	gate     *Gate
	log      logger.ILogger
	interval time.Duration

	caseId  string
	draft   CaseDraft
	dirty   map[string]bool
	status  SaveStatus
	timer   *time.Timer
	closed  bool
	editGen uint64

	// saveMu serializes persist calls so payloads go out in the order
	// their quiet periods settled.
	saveMu sync.Mutex
}

func NewDraftStore(backend Backend, gate *Gate, log logger.ILogger) *DraftStore {
	return &DraftStore{
		backend:  backend,
		gate:     gate,
		log:      log,
		interval: defaultDebounce,
		dirty:    make(map[string]bool),
		status:   SaveIdle,
	}
}

func (s *DraftStore) BindCase(caseId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caseId = caseId
}

// OnFieldChange applies one edit immediately and restarts the quiet-period
// timer. Unknown field names are ignored with a warning.
func (s *DraftStore) OnFieldChange(field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if !s.draft.SetField(field, value) {
		s.log.Warn("draft", "ignoring unknown field", map[string]interface{}{
			"field": field,
		})
		return
	}
	s.dirty[field] = true
	s.status = SavePending
	s.editGen++

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.interval, s.flush)
}

// flush persists the full current draft once the quiet period elapsed.
func (s *DraftStore) flush() {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	caseId := s.caseId
	payload := s.draft.Fields()
	gen := s.editGen
	s.status = SaveSaving
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	snap, err := s.backend.PersistCaseFields(ctx, caseId, payload)
	if err != nil {
		warn := &apperror.PersistenceWarning{Err: err}
		s.log.Warn("draft", warn.Error(), map[string]interface{}{
			"case_id": caseId,
		})
		s.mu.Lock()
		if !s.closed && s.editGen == gen {
			s.status = SaveFailed
		}
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	// A field edited again while the request was in flight stays dirty;
	// everything else is now in sync with the server.
	for field, value := range payload {
		if current, ok := s.draft.GetField(field); ok && current == value {
			delete(s.dirty, field)
		}
	}
	if snap != nil {
		s.mergeSnapshotLocked(snap)
	}
	// An edit that landed while the request was in flight already moved
	// status back to pending; its own cycle reports the save.
	if s.editGen == gen {
		s.status = SaveSaved
	}
	s.mu.Unlock()

	if _, err := s.gate.Refresh(ctx); err != nil {
		s.log.Warn("draft", "validation refresh after autosave failed", map[string]interface{}{
			"case_id": caseId,
			"error":   err.Error(),
		})
	}
}

// LoadSnapshot merges a server snapshot into the draft. Fields with pending
// local edits win; the server never silently overwrites them.
func (s *DraftStore) LoadSnapshot(snap *CaseSnapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.mergeSnapshotLocked(snap)
}

func (s *DraftStore) mergeSnapshotLocked(snap *CaseSnapshot) {
	for field, value := range snap.Fields {
		if s.dirty[field] {
			continue
		}
		s.draft.SetField(field, value)
	}
}

// Draft returns a copy of the current draft.
func (s *DraftStore) Draft() CaseDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *DraftStore) Status() SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Closed reports whether the store stopped accepting edits.
func (s *DraftStore) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close cancels the pending timer and rejects further edits. Responses from
// in-flight persists are discarded.
func (s *DraftStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
