package session

import (
	"context"
	"errors"
	"sync"

	"legal-intake-be/internal/apperror"
	"legal-intake-be/internal/pkg/logger"
	"legal-intake-be/pkg/media"
)

// State of the intake session.
type State string

const (
	StatePreCall    State = "PRE_CALL"
	StateInSession  State = "IN_SESSION"
	StateProcessing State = "PROCESSING"
	StateReview     State = "REVIEW"
	StateError      State = "ERROR"
	StateClosed     State = "CLOSED"
)

var (
	errTransitionInProgress = errors.New("a transition is already running")
	errGenerationInProgress = errors.New("a generation request is already running")

	// ErrInvalidState means the requested transition is not legal from the
	// current state.
	ErrInvalidState = errors.New("invalid session state for this operation")
)

// Machine is the top-level session coordinator. It owns the session
// identity and drives the media controller, aggregator, draft store and
// gate through its transitions. Single writer of Session state.
type Machine struct {
	mu      sync.Mutex
	backend Backend
	log     logger.ILogger

	media      *MediaController
	transcript *Aggregator
	draft      *DraftStore
	gate       *Gate
	ticker     *ElapsedTicker

	state        State
	caseId       string
	creds        *media.Credentials
	errorMessage string
	conversation []ConversationMessage

	// epoch stamps every in-flight transition; a response whose epoch no
	// longer matches is discarded instead of applied.
	epoch         uint64
	transitioning bool

	// onCaseBound is notified once the case identity is known.
	onCaseBound func(caseId string)
}

func NewMachine(backend Backend, mediaCtrl *MediaController, transcript *Aggregator, draft *DraftStore, gate *Gate, ticker *ElapsedTicker, log logger.ILogger) *Machine {
	m := &Machine{
		backend:    backend,
		log:        log,
		media:      mediaCtrl,
		transcript: transcript,
		draft:      draft,
		gate:       gate,
		ticker:     ticker,
		state:      StatePreCall,
	}
	mediaCtrl.SetPresenceHook(m.onAvatarPresence)
	return m
}

// SetCaseBoundHook registers the observer notified when the case identity
// becomes known during StartSession.
func (m *Machine) SetCaseBoundHook(hook func(caseId string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onCaseBound = hook
}

// onAvatarPresence gates the elapsed ticker: it runs only while the session
// is live and the avatar is present.
func (m *Machine) onAvatarPresence(connected bool) {
	m.mu.Lock()
	live := m.state == StateInSession
	m.mu.Unlock()

	if connected && live {
		m.ticker.Start()
	} else {
		m.ticker.Pause()
	}
}

// StartSession creates the case, acquires media credentials and connects.
// Any failure lands the machine in ERROR with a retry message; it never
// stays in PRE_CALL after being invoked.
func (m *Machine) StartSession(ctx context.Context) error {
	m.mu.Lock()
	if m.transitioning {
		m.mu.Unlock()
		return errTransitionInProgress
	}
	if m.state != StatePreCall {
		m.mu.Unlock()
		return ErrInvalidState
	}
	m.transitioning = true
	epoch := m.epoch
	m.mu.Unlock()

	defer m.clearTransitioning()

	caseId, err := m.backend.CreateCase(ctx)
	if err != nil {
		wrapped := apperror.NewConnectionError("create case", err)
		m.fail(epoch, wrapped, "No pudimos iniciar la sesión. Intenta de nuevo.")
		return wrapped
	}

	creds, err := m.backend.AcquireMediaCredentials(ctx, caseId)
	if err != nil {
		wrapped := apperror.NewConnectionError("acquire media credentials", err)
		m.fail(epoch, wrapped, "No pudimos conectar el audio y video. Intenta de nuevo.")
		return wrapped
	}

	if err := m.media.Connect(ctx, *creds); err != nil {
		wrapped := apperror.NewConnectionError("connect media", err)
		m.fail(epoch, wrapped, "No pudimos conectar el audio y video. Intenta de nuevo.")
		return wrapped
	}

	m.mu.Lock()
	if m.epoch != epoch {
		// Session was torn down while we were connecting
		m.mu.Unlock()
		_ = m.media.Disconnect()
		return ErrInvalidState
	}
	m.caseId = caseId
	m.creds = creds
	m.state = StateInSession
	m.mu.Unlock()

	m.transcript.Clear()
	m.draft.BindCase(caseId)
	m.gate.BindCase(caseId)
	if m.onCaseBound != nil {
		m.onCaseBound(caseId)
	}

	m.log.Info("session", "session started", map[string]interface{}{
		"case_id": caseId,
	})
	return nil
}

// FinalizeSession disconnects media, ends the server-side session, runs
// extraction and lands in REVIEW with the snapshot and conversation loaded.
func (m *Machine) FinalizeSession(ctx context.Context) error {
	m.mu.Lock()
	if m.transitioning {
		m.mu.Unlock()
		return errTransitionInProgress
	}
	if m.state != StateInSession {
		m.mu.Unlock()
		return ErrInvalidState
	}
	m.transitioning = true
	m.state = StateProcessing
	epoch := m.epoch
	caseId := m.caseId
	m.mu.Unlock()

	defer m.clearTransitioning()

	m.ticker.Pause()
	if err := m.media.Disconnect(); err != nil {
		m.log.Warn("session", "media disconnect reported an error", map[string]interface{}{
			"case_id": caseId,
			"error":   err.Error(),
		})
	}

	if err := m.backend.FinalizeSession(ctx, caseId); err != nil {
		wrapped := apperror.NewConnectionError("finalize session", err)
		m.fail(epoch, wrapped, "No pudimos cerrar la sesión. Intenta de nuevo.")
		return wrapped
	}

	snap, err := m.backend.ProcessTranscript(ctx, caseId, m.transcript.Messages())
	if err != nil {
		wrapped := apperror.NewProcessingError("process transcript", err)
		m.fail(epoch, wrapped, "No pudimos procesar la conversación. Intenta de nuevo.")
		return wrapped
	}

	conversation, err := m.backend.FetchConversation(ctx, caseId)
	if err != nil {
		wrapped := apperror.NewProcessingError("fetch conversation", err)
		m.fail(epoch, wrapped, "No pudimos recuperar la conversación. Intenta de nuevo.")
		return wrapped
	}

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		return ErrInvalidState
	}
	m.conversation = conversation
	m.state = StateReview
	m.mu.Unlock()

	m.draft.LoadSnapshot(snap)
	if _, err := m.gate.Refresh(ctx); err != nil {
		m.log.Warn("session", "initial validation refresh failed", map[string]interface{}{
			"case_id": caseId,
			"error":   err.Error(),
		})
	}

	m.log.Info("session", "session finalized", map[string]interface{}{
		"case_id":         caseId,
		"elapsed_seconds": m.ticker.Elapsed(),
	})
	return nil
}

// AbandonSession deletes the in-progress case best-effort and closes the
// machine. It never raises ERROR, even when deletion fails, and is safe to
// call before IN_SESSION was ever reached.
func (m *Machine) AbandonSession(ctx context.Context) {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	caseId := m.caseId
	m.state = StateClosed
	m.epoch++
	m.mu.Unlock()

	m.teardown()

	if caseId == "" {
		return
	}
	if err := m.backend.DeleteCase(ctx, caseId); err != nil {
		m.log.Warn("session", "case deletion on abandon failed", map[string]interface{}{
			"case_id": caseId,
			"error":   err.Error(),
		})
	}
}

// Reset closes an errored machine. The only way out of ERROR is a full
// restart with a fresh machine.
func (m *Machine) Reset() error {
	m.mu.Lock()
	if m.state != StateError {
		m.mu.Unlock()
		return ErrInvalidState
	}
	m.state = StateClosed
	m.epoch++
	m.mu.Unlock()

	m.teardown()
	return nil
}

// Close releases everything regardless of state. Used on registry eviction.
func (m *Machine) Close() {
	m.mu.Lock()
	m.state = StateClosed
	m.epoch++
	m.mu.Unlock()
	m.teardown()
}

func (m *Machine) teardown() {
	m.ticker.Stop()
	m.draft.Close()
	m.transcript.Clear()
	if err := m.media.Disconnect(); err != nil {
		m.log.Warn("session", "media disconnect during teardown failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// fail escalates to ERROR unless the session was already torn down, in
// which case the late result is discarded.
func (m *Machine) fail(epoch uint64, err error, userMessage string) {
	m.mu.Lock()
	if m.epoch != epoch || m.state == StateClosed {
		m.mu.Unlock()
		m.log.Info("session", "discarding stale failure", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	m.state = StateError
	m.errorMessage = userMessage
	m.mu.Unlock()

	m.ticker.Pause()
	if derr := m.media.Disconnect(); derr != nil {
		m.log.Warn("session", "media disconnect during error unwinding failed", map[string]interface{}{
			"error": derr.Error(),
		})
	}

	m.log.Error("session", "session escalated to error", map[string]interface{}{
		"case_id": m.CaseId(),
		"error":   err.Error(),
	})
}

func (m *Machine) clearTransitioning() {
	m.mu.Lock()
	m.transitioning = false
	m.mu.Unlock()
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) CaseId() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.caseId
}

func (m *Machine) Credentials() *media.Credentials {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds
}

func (m *Machine) ErrorMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errorMessage
}

// Conversation returns the ordered conversation loaded at finalize.
func (m *Machine) Conversation() []ConversationMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ConversationMessage(nil), m.conversation...)
}

// Elapsed returns the accumulated live-session seconds.
func (m *Machine) Elapsed() int {
	return m.ticker.Elapsed()
}
