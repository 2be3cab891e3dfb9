package session

import (
	"context"
	"testing"
	"time"

	"legal-intake-be/internal/apperror"

	"github.com/stretchr/testify/assert"
)

func TestStartSessionHappyPath(t *testing.T) {
	backend := newFakeBackend()
	rt := newTestRuntime(backend)
	defer rt.Close()

	err := rt.Machine.StartSession(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, StateInSession, rt.Machine.State())
	assert.Equal(t, "case-1", rt.Machine.CaseId())
	assert.NotEmpty(t, rt.Machine.Credentials().Token)
}

func TestStartSessionNeverStaysPreCall(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *fakeBackend)
	}{
		{
			name:  "case creation fails",
			setup: func(b *fakeBackend) { b.createErr = assert.AnError },
		},
		{
			name:  "credential acquisition fails",
			setup: func(b *fakeBackend) { b.credsErr = assert.AnError },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFakeBackend()
			tt.setup(backend)
			rt := newTestRuntime(backend)
			defer rt.Close()

			err := rt.Machine.StartSession(context.Background())
			assert.Error(t, err)
			assert.True(t, apperror.IsFatal(err))
			assert.Equal(t, StateError, rt.Machine.State())
			assert.NotEmpty(t, rt.Machine.ErrorMessage())
		})
	}
}

func TestStartSessionDuplicateInvocationGuarded(t *testing.T) {
	backend := newFakeBackend()
	rt := newTestRuntime(backend)
	defer rt.Close()

	assert.NoError(t, rt.Machine.StartSession(context.Background()))
	err := rt.Machine.StartSession(context.Background())
	assert.ErrorIs(t, err, ErrInvalidState)

	backend.mu.Lock()
	calls := backend.createCalls
	backend.mu.Unlock()
	assert.Equal(t, 1, calls, "case must be created exactly once")
}

func TestFinalizeSessionReachesReview(t *testing.T) {
	backend := newFakeBackend()
	backend.snapshot = &CaseSnapshot{
		CaseId: "case-1",
		Fields: map[string]string{
			FieldAccusedEntity: "EPS Salud Total",
			FieldFacts:         "negaron la entrega de medicamentos",
		},
	}
	rt := newTestRuntime(backend)
	defer rt.Close()

	assert.NoError(t, rt.Machine.StartSession(context.Background()))
	rt.Transcript.Ingest(TranscriptMessage{Id: "A", Role: "user", Text: "hola", IsFinal: true})

	assert.NoError(t, rt.Machine.FinalizeSession(context.Background()))
	assert.Equal(t, StateReview, rt.Machine.State())
	assert.False(t, rt.Media.IsConnected(), "media released on finalize")

	backend.mu.Lock()
	processed := backend.processedMsgs
	backend.mu.Unlock()
	assert.Len(t, processed, 1)

	draft := rt.Draft.Draft()
	assert.Equal(t, "EPS Salud Total", draft.AccusedEntity)
	assert.Len(t, rt.Machine.Conversation(), 1)
}

func TestFinalizeExtractionFailureEscalates(t *testing.T) {
	backend := newFakeBackend()
	backend.processErr = assert.AnError
	rt := newTestRuntime(backend)
	defer rt.Close()

	assert.NoError(t, rt.Machine.StartSession(context.Background()))
	err := rt.Machine.FinalizeSession(context.Background())
	assert.Error(t, err)
	assert.True(t, apperror.IsFatal(err))
	assert.Equal(t, StateError, rt.Machine.State())
}

func TestAbandonBeforeInSession(t *testing.T) {
	backend := newFakeBackend()
	rt := newTestRuntime(backend)

	// No case exists yet, abandon must neither crash nor error
	rt.Machine.AbandonSession(context.Background())
	assert.Equal(t, StateClosed, rt.Machine.State())

	backend.mu.Lock()
	deletes := backend.deleteCalls
	backend.mu.Unlock()
	assert.Equal(t, 0, deletes)
}

func TestAbandonDeletesCaseBestEffort(t *testing.T) {
	backend := newFakeBackend()
	backend.deleteErr = assert.AnError
	rt := newTestRuntime(backend)

	assert.NoError(t, rt.Machine.StartSession(context.Background()))
	rt.Machine.AbandonSession(context.Background())

	// Deletion was attempted; its failure never escalates to ERROR
	backend.mu.Lock()
	deletes := backend.deleteCalls
	backend.mu.Unlock()
	assert.Equal(t, 1, deletes)
	assert.Equal(t, StateClosed, rt.Machine.State())
}

func TestResetOnlyFromError(t *testing.T) {
	backend := newFakeBackend()
	backend.createErr = assert.AnError
	rt := newTestRuntime(backend)

	assert.Error(t, rt.Machine.StartSession(context.Background()))
	assert.Equal(t, StateError, rt.Machine.State())
	assert.NoError(t, rt.Machine.Reset())
	assert.Equal(t, StateClosed, rt.Machine.State())

	healthy := newTestRuntime(newFakeBackend())
	defer healthy.Close()
	assert.ErrorIs(t, healthy.Machine.Reset(), ErrInvalidState)
}

func TestElapsedTickerFollowsAvatarPresence(t *testing.T) {
	backend := newFakeBackend()
	rt := newTestRuntime(backend)
	defer rt.Close()
	rt.Ticker.interval = 10 * time.Millisecond

	assert.NoError(t, rt.Machine.StartSession(context.Background()))
	assert.False(t, rt.Ticker.Running(), "no ticking before the avatar joins")

	rt.Media.HandleAvatarConnected()
	assert.True(t, rt.Ticker.Running())
	waitFor(t, time.Second, func() bool { return rt.Machine.Elapsed() >= 2 })

	rt.Media.HandleAvatarDisconnected()
	assert.False(t, rt.Ticker.Running())
	frozen := rt.Machine.Elapsed()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, frozen, rt.Machine.Elapsed(), "paused ticker must not advance")

	// Reconnecting resumes from the accumulated count
	rt.Media.HandleAvatarConnected()
	waitFor(t, time.Second, func() bool { return rt.Machine.Elapsed() > frozen })
}
