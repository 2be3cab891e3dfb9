package session

import (
	"context"
	"sync"

	"legal-intake-be/internal/apperror"
	"legal-intake-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// TopicStrengthAnalysis is the queue topic for background strength jobs.
const TopicStrengthAnalysis = "strength.analyze"

// Coordinator sequences document generation: refresh the gate, stop on a
// blocking verdict, otherwise generate, store the snapshot and queue a
// non-blocking strength analysis.
type Coordinator struct {
	mu        sync.Mutex
	backend   Backend
	gate      *Gate
	draft     *DraftStore
	publisher message.Publisher
	log       logger.ILogger

	caseId     string
	generating bool
	snapshot   *CaseSnapshot
	strength   *StrengthReport
}

func NewCoordinator(backend Backend, gate *Gate, draft *DraftStore, publisher message.Publisher, log logger.ILogger) *Coordinator {
	return &Coordinator{
		backend:   backend,
		gate:      gate,
		draft:     draft,
		publisher: publisher,
		log:       log,
	}
}

func (c *Coordinator) BindCase(caseId string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.caseId = caseId
	c.snapshot = nil
	c.strength = nil
}

// Generate runs the gated generation sequence. It refreshes the verdict at
// the moment of the call; a stale earlier verdict is never trusted.
func (c *Coordinator) Generate(ctx context.Context) (*CaseSnapshot, error) {
	c.mu.Lock()
	if c.generating {
		c.mu.Unlock()
		return nil, apperror.NewGenerationError(errGenerationInProgress)
	}
	c.generating = true
	caseId := c.caseId
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.generating = false
		c.mu.Unlock()
	}()

	verdict, _ := c.gate.Refresh(ctx)
	if verdict == nil || !verdict.GenerationAllowed {
		ve := &apperror.ValidationError{}
		if verdict != nil {
			ve.BlockingMissingFields = verdict.BlockingMissingFields
			ve.Warnings = verdict.Warnings
		}
		return nil, ve
	}

	snap, err := c.backend.GenerateDocument(ctx, caseId)
	if err != nil {
		// A structured server rejection converges with the local gate path
		if ve, ok := apperror.AsValidation(err); ok {
			c.gate.Apply(&ValidationResult{
				GenerationAllowed:     false,
				BlockingMissingFields: ve.BlockingMissingFields,
				Warnings:              ve.Warnings,
			})
			return nil, ve
		}
		if _, ok := err.(*apperror.GenerationError); ok {
			return nil, err
		}
		return nil, apperror.NewGenerationError(err)
	}

	c.draft.LoadSnapshot(snap)
	c.mu.Lock()
	c.snapshot = snap
	c.mu.Unlock()

	c.queueStrengthAnalysis(caseId)
	return snap, nil
}

// queueStrengthAnalysis publishes a background job. Failures are logged and
// never block generation.
func (c *Coordinator) queueStrengthAnalysis(caseId string) {
	if c.publisher == nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), []byte(caseId))
	if err := c.publisher.Publish(TopicStrengthAnalysis, msg); err != nil {
		c.log.Warn("generation", "failed to queue strength analysis", map[string]interface{}{
			"case_id": caseId,
			"error":   err.Error(),
		})
	}
}

// AnalyzeStrength runs the scoring call directly. Its failure never affects
// generation or session state.
func (c *Coordinator) AnalyzeStrength(ctx context.Context) (*StrengthReport, error) {
	c.mu.Lock()
	caseId := c.caseId
	c.mu.Unlock()

	report, err := c.backend.AnalyzeStrength(ctx, caseId)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.strength = report
	c.mu.Unlock()
	return report, nil
}

// Download fetches the rendered document in the requested format.
func (c *Coordinator) Download(ctx context.Context, format string) ([]byte, string, error) {
	c.mu.Lock()
	caseId := c.caseId
	c.mu.Unlock()
	return c.backend.DownloadDocument(ctx, caseId, format)
}

// Snapshot returns the last stored generation result, if any.
func (c *Coordinator) Snapshot() *CaseSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Strength returns the last stored strength report, if any.
func (c *Coordinator) Strength() *StrengthReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strength
}
