package drafting

import "context"

// ConversationTurn is one utterance handed to the drafting backend.
type ConversationTurn struct {
	Role    string // "user", "assistant"
	Content string
}

// Extraction carries the structured fields the backend pulled out of the
// conversation, keyed by wire field name (entidad_accionada, hechos, ...).
type Extraction struct {
	Fields map[string]string
}

// DraftRequest asks for a full legal document from the collected fields.
type DraftRequest struct {
	DocumentType string
	Fields       map[string]string
	Citations    []string
}

// DraftResult is the full generation outcome: the document text plus the
// quality assessment the backend produces alongside it.
type DraftResult struct {
	Content      string
	QualityScore float64
	Suggestions  []string
}

// StrengthRequest asks for an assessment of how solid a case is.
type StrengthRequest struct {
	DocumentType string
	Fields       map[string]string
}

type StrengthResult struct {
	Score       float64
	Summary     string
	Weaknesses  []string
	Suggestions []string
}

// Option allows for optional parameters like Temperature or Model override.
type Option func(*Options)

type Options struct {
	Temperature float64
	Model       string
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider defines the contract for the drafting backend.
type Provider interface {
	// ExtractCase pulls structured case fields out of the conversation.
	// currentFields is merged server-side state, so the backend only needs
	// to return what it learned from the new turns.
	ExtractCase(ctx context.Context, turns []ConversationTurn, currentFields map[string]string, options ...Option) (*Extraction, error)

	// DraftDocument produces the final document text.
	DraftDocument(ctx context.Context, req DraftRequest, options ...Option) (*DraftResult, error)

	// AnalyzeStrength scores the case and names its weak points.
	AnalyzeStrength(ctx context.Context, req StrengthRequest, options ...Option) (*StrengthResult, error)
}
