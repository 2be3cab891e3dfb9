package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestDraftStore(backend *fakeBackend, interval time.Duration) *DraftStore {
	gate := NewGate(backend, noopLogger{})
	gate.BindCase("case-1")
	store := NewDraftStore(backend, gate, noopLogger{})
	store.interval = interval
	store.BindCase("case-1")
	return store
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestDraftDebounceCoalescesEdits(t *testing.T) {
	backend := newFakeBackend()
	store := newTestDraftStore(backend, 40*time.Millisecond)
	defer store.Close()

	store.OnFieldChange(FieldFacts, "el")
	store.OnFieldChange(FieldFacts, "el hospital")
	store.OnFieldChange(FieldFacts, "el hospital negó la cita")

	waitFor(t, time.Second, func() bool { return backend.persistCount() == 1 })

	payload := backend.lastPersisted()
	assert.Equal(t, "el hospital negó la cita", payload[FieldFacts])

	// Nothing else should fire after the quiet period
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, backend.persistCount())
}

func TestDraftEveryEditVisibleImmediately(t *testing.T) {
	backend := newFakeBackend()
	store := newTestDraftStore(backend, time.Hour)
	defer store.Close()

	store.OnFieldChange(FieldAccusedEntity, "EPS Salud Total")
	assert.Equal(t, "EPS Salud Total", store.Draft().AccusedEntity)
	assert.Equal(t, SavePending, store.Status())
}

func TestDraftPersistTriggersValidationRefresh(t *testing.T) {
	backend := newFakeBackend()
	store := newTestDraftStore(backend, 30*time.Millisecond)
	defer store.Close()

	store.OnFieldChange(FieldClaims, "ordenar la cita médica")

	waitFor(t, time.Second, func() bool {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		return backend.validationCalls >= 1
	})
	assert.Equal(t, SaveSaved, store.Status())
}

func TestDraftPersistFailureIsSuperseded(t *testing.T) {
	backend := newFakeBackend()
	backend.persistErr = assert.AnError
	store := newTestDraftStore(backend, 30*time.Millisecond)
	defer store.Close()

	store.OnFieldChange(FieldFacts, "primer intento")
	waitFor(t, time.Second, func() bool { return store.Status() == SaveFailed })

	// Further edits still work and the next cycle wins
	backend.mu.Lock()
	backend.persistErr = nil
	backend.mu.Unlock()

	store.OnFieldChange(FieldFacts, "segundo intento")
	waitFor(t, time.Second, func() bool { return backend.persistCount() == 1 })
	assert.Equal(t, "segundo intento", backend.lastPersisted()[FieldFacts])
}

func TestDraftSnapshotMergeKeepsDirtyFields(t *testing.T) {
	backend := newFakeBackend()
	store := newTestDraftStore(backend, time.Hour)
	defer store.Close()

	store.OnFieldChange(FieldFacts, "texto editado localmente")

	store.LoadSnapshot(&CaseSnapshot{
		CaseId: "case-1",
		Fields: map[string]string{
			FieldFacts:         "texto viejo del servidor",
			FieldAccusedEntity: "Alcaldía de Bogotá",
		},
	})

	draft := store.Draft()
	assert.Equal(t, "texto editado localmente", draft.Facts)
	assert.Equal(t, "Alcaldía de Bogotá", draft.AccusedEntity)
}

func TestDraftEditDuringSaveStaysPending(t *testing.T) {
	backend := newFakeBackend()
	backend.persistEntered = make(chan struct{}, 2)
	backend.persistHold = make(chan struct{})
	store := newTestDraftStore(backend, time.Hour)
	defer store.Close()

	store.OnFieldChange(FieldFacts, "primera versión")
	go store.flush()
	<-backend.persistEntered

	// A correction lands while the save request is still in flight
	store.OnFieldChange(FieldFacts, "versión corregida")
	assert.Equal(t, SavePending, store.Status())

	close(backend.persistHold)
	waitFor(t, time.Second, func() bool { return backend.persistCount() == 1 })

	// The settled cycle carried the stale payload; the newer edit still
	// awaits its own quiet period and must keep reporting pending.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, SavePending, store.Status())

	store.flush()
	assert.Equal(t, SaveSaved, store.Status())
	assert.Equal(t, 2, backend.persistCount())
	assert.Equal(t, "versión corregida", backend.lastPersisted()[FieldFacts])
}

func TestDraftCloseCancelsPendingTimer(t *testing.T) {
	backend := newFakeBackend()
	store := newTestDraftStore(backend, 30*time.Millisecond)

	store.OnFieldChange(FieldFacts, "no debe guardarse")
	store.Close()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, backend.persistCount())

	// Callers can see the store is gone and must route edits elsewhere
	assert.True(t, store.Closed())
	store.OnFieldChange(FieldFacts, "llega tarde")
	assert.Equal(t, "no debe guardarse", store.Draft().Facts)
}
