package session

import (
	"context"
	"testing"

	"legal-intake-be/internal/apperror"

	"github.com/stretchr/testify/assert"
)

func newReviewRuntime(t *testing.T, backend *fakeBackend) *Runtime {
	t.Helper()
	rt := newTestRuntime(backend)
	t.Cleanup(rt.Close)
	assert.NoError(t, rt.Machine.StartSession(context.Background()))
	assert.NoError(t, rt.Machine.FinalizeSession(context.Background()))
	return rt
}

func TestGenerateBlockedByFreshVerdict(t *testing.T) {
	backend := newFakeBackend()
	backend.validation = &ValidationResult{
		GenerationAllowed:     false,
		BlockingMissingFields: []string{"entidad_accionada", "hechos"},
	}
	rt := newReviewRuntime(t, backend)

	snap, err := rt.Coordinator.Generate(context.Background())
	assert.Nil(t, snap)

	ve, ok := apperror.AsValidation(err)
	assert.True(t, ok, "blocked generation must fail with a validation error")
	assert.Equal(t, []string{"entidad_accionada", "hechos"}, ve.BlockingMissingFields)

	backend.mu.Lock()
	calls := backend.generateCalls
	backend.mu.Unlock()
	assert.Equal(t, 0, calls, "no generation call may be issued")
}

func TestGenerateAllowedStoresSnapshot(t *testing.T) {
	backend := newFakeBackend()
	rt := newReviewRuntime(t, backend)

	snap, err := rt.Coordinator.Generate(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, snap)
	assert.True(t, snap.HasGeneratedDocument)
	assert.NotEmpty(t, snap.GeneratedDocument)
	if assert.NotNil(t, snap.QualityScore, "generation result must carry the quality score") {
		assert.Equal(t, 0.82, *snap.QualityScore)
	}
	assert.NotEmpty(t, snap.Suggestions, "generation result must carry improvement suggestions")
	assert.Equal(t, snap, rt.Coordinator.Snapshot())

	backend.mu.Lock()
	calls := backend.generateCalls
	backend.mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestGenerateRefreshesVerdictAtCallTime(t *testing.T) {
	backend := newFakeBackend()
	rt := newReviewRuntime(t, backend)

	backend.mu.Lock()
	before := backend.validationCalls
	// The earlier verdict said allowed; the server changed its mind since
	backend.validation = &ValidationResult{
		GenerationAllowed:     false,
		BlockingMissingFields: []string{"pretensiones"},
	}
	backend.mu.Unlock()

	_, err := rt.Coordinator.Generate(context.Background())
	ve, ok := apperror.AsValidation(err)
	assert.True(t, ok)
	assert.Equal(t, []string{"pretensiones"}, ve.BlockingMissingFields)

	backend.mu.Lock()
	after := backend.validationCalls
	backend.mu.Unlock()
	assert.Equal(t, before+1, after, "generate must refresh exactly once")
}

func TestGenerateRefreshFailureFailsSafe(t *testing.T) {
	backend := newFakeBackend()
	rt := newReviewRuntime(t, backend)

	backend.mu.Lock()
	backend.validationErr = assert.AnError
	backend.mu.Unlock()

	_, err := rt.Coordinator.Generate(context.Background())
	_, ok := apperror.AsValidation(err)
	assert.True(t, ok, "unknown verdict must behave as not allowed")

	backend.mu.Lock()
	calls := backend.generateCalls
	backend.mu.Unlock()
	assert.Equal(t, 0, calls)
}

func TestServerRejectionConvergesWithGatePath(t *testing.T) {
	backend := newFakeBackend()
	backend.generateFn = func() (*CaseSnapshot, error) {
		return nil, &apperror.ValidationError{
			BlockingMissingFields: []string{"derechos_vulnerados"},
		}
	}
	rt := newReviewRuntime(t, backend)

	_, err := rt.Coordinator.Generate(context.Background())
	ve, ok := apperror.AsValidation(err)
	assert.True(t, ok)
	assert.Equal(t, []string{"derechos_vulnerados"}, ve.BlockingMissingFields)

	// The gate now reflects the server rejection, same as a refresh would
	assert.False(t, rt.Gate.CanGenerate())
	assert.Equal(t, []string{"derechos_vulnerados"}, rt.Gate.BlockingFields())
}

func TestGenerateUnstructuredFailureIsTransient(t *testing.T) {
	backend := newFakeBackend()
	backend.generateFn = func() (*CaseSnapshot, error) {
		return nil, assert.AnError
	}
	rt := newReviewRuntime(t, backend)

	_, err := rt.Coordinator.Generate(context.Background())
	var ge *apperror.GenerationError
	assert.ErrorAs(t, err, &ge)
	assert.Equal(t, StateReview, rt.Machine.State(), "generation failures never change session state")
}

func TestAnalyzeStrengthIndependentOfGeneration(t *testing.T) {
	backend := newFakeBackend()
	backend.strength = &StrengthReport{Score: 0.82, Weaknesses: []string{"faltan pruebas documentales"}}
	rt := newReviewRuntime(t, backend)

	report, err := rt.Coordinator.AnalyzeStrength(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0.82, report.Score)
	assert.Equal(t, report, rt.Coordinator.Strength())
}
