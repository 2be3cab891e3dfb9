package session

import (
	"context"

	"legal-intake-be/pkg/media"
)

// Backend is the server-side collaborator contract the session core drives.
// Implementations wrap the case, document and media services; the core never
// talks to storage or transports directly.
type Backend interface {
	// CreateCase opens a new case for the intake session.
	CreateCase(ctx context.Context) (caseId string, err error)

	// AcquireMediaCredentials mints join credentials for the case's room.
	AcquireMediaCredentials(ctx context.Context, caseId string) (*media.Credentials, error)

	// FinalizeSession tells the server the live session has ended.
	FinalizeSession(ctx context.Context, caseId string) error

	// ProcessTranscript runs extraction over the collected transcript and
	// returns the updated case snapshot.
	ProcessTranscript(ctx context.Context, caseId string, messages []TranscriptMessage) (*CaseSnapshot, error)

	// FetchConversation returns the ordered persisted conversation.
	FetchConversation(ctx context.Context, caseId string) ([]ConversationMessage, error)

	// FetchValidation returns the current generation verdict.
	FetchValidation(ctx context.Context, caseId string) (*ValidationResult, error)

	// PersistCaseFields saves the draft and returns the updated snapshot.
	PersistCaseFields(ctx context.Context, caseId string, fields map[string]string) (*CaseSnapshot, error)

	// AnalyzeStrength scores the case.
	AnalyzeStrength(ctx context.Context, caseId string) (*StrengthReport, error)

	// GenerateDocument produces the final document. A structured server
	// rejection comes back as *apperror.ValidationError.
	GenerateDocument(ctx context.Context, caseId string) (*CaseSnapshot, error)

	// DownloadDocument returns the rendered document and its filename.
	DownloadDocument(ctx context.Context, caseId string, format string) ([]byte, string, error)

	// DeleteCase removes an abandoned case.
	DeleteCase(ctx context.Context, caseId string) error
}
