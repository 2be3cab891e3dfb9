package session

import (
	"context"
	"sync"

	"legal-intake-be/internal/pkg/logger"
)

// Gate holds the last server verdict on whether generation may proceed.
// The verdict is stale after every persisted change; callers that are about
// to generate must Refresh first.
type Gate struct {
	mu      sync.Mutex
	backend Backend
	log     logger.ILogger
	caseId  string
	result  *ValidationResult
}

func NewGate(backend Backend, log logger.ILogger) *Gate {
	return &Gate{
		backend: backend,
		log:     log,
	}
}

func (g *Gate) BindCase(caseId string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.caseId = caseId
	g.result = nil
}

// Refresh fetches a fresh verdict, overwriting the previous one. A failed
// fetch is fail-safe: generation is treated as not allowed.
func (g *Gate) Refresh(ctx context.Context) (*ValidationResult, error) {
	g.mu.Lock()
	caseId := g.caseId
	g.mu.Unlock()

	result, err := g.backend.FetchValidation(ctx, caseId)
	if err != nil {
		g.log.Warn("validation", "refresh failed, treating generation as not allowed", map[string]interface{}{
			"case_id": caseId,
			"error":   err.Error(),
		})
		result = &ValidationResult{GenerationAllowed: false}
	}

	g.mu.Lock()
	g.result = result
	g.mu.Unlock()
	return g.copyResult(), err
}

// Apply overwrites the verdict with a server-provided rejection, so a
// structured generation refusal and a refresh converge on the same state.
func (g *Gate) Apply(result *ValidationResult) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.result = result
}

// CanGenerate returns the last known verdict. False when never refreshed.
func (g *Gate) CanGenerate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.result != nil && g.result.GenerationAllowed
}

// BlockingFields returns the last known blocking field names.
func (g *Gate) BlockingFields() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result == nil {
		return nil
	}
	return append([]string(nil), g.result.BlockingMissingFields...)
}

// Result returns a copy of the last verdict, or nil when never refreshed.
func (g *Gate) Result() *ValidationResult {
	return g.copyResult()
}

func (g *Gate) copyResult() *ValidationResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result == nil {
		return nil
	}
	return &ValidationResult{
		GenerationAllowed:     g.result.GenerationAllowed,
		BlockingMissingFields: append([]string(nil), g.result.BlockingMissingFields...),
		Warnings:              append([]string(nil), g.result.Warnings...),
	}
}
