package service

import (
	"context"
	"fmt"

	"legal-intake-be/pkg/media"
	"legal-intake-be/pkg/session"

	"github.com/google/uuid"
)

// sessionBackend adapts the case and document services to the session
// core's collaborator contract, scoped to one user and document type.
type sessionBackend struct {
	userId         uuid.UUID
	documentType   string
	cases          ICaseService
	docs           IDocumentService
	minter         *media.TokenMinter
	mediaServerURL string

	// elapsedFn reports the accumulated session seconds; set once the
	// runtime exists.
	elapsedFn func() int
}

var _ session.Backend = &sessionBackend{}

func newSessionBackend(userId uuid.UUID, documentType string, cases ICaseService, docs IDocumentService, minter *media.TokenMinter, mediaServerURL string) *sessionBackend {
	return &sessionBackend{
		userId:         userId,
		documentType:   documentType,
		cases:          cases,
		docs:           docs,
		minter:         minter,
		mediaServerURL: mediaServerURL,
	}
}

func (b *sessionBackend) CreateCase(ctx context.Context) (string, error) {
	resp, err := b.cases.Create(ctx, b.userId, b.documentType)
	if err != nil {
		return "", err
	}
	return resp.Id.String(), nil
}

func (b *sessionBackend) AcquireMediaCredentials(ctx context.Context, caseId string) (*media.Credentials, error) {
	identity := media.IdentityCitizen + "-" + b.userId.String()
	room := "intake-" + caseId
	token, expiresAt, err := b.minter.Mint(identity, room)
	if err != nil {
		return nil, err
	}
	return &media.Credentials{
		ServerURL: b.mediaServerURL,
		RoomName:  room,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (b *sessionBackend) FinalizeSession(ctx context.Context, caseId string) error {
	id, err := b.parse(caseId)
	if err != nil {
		return err
	}
	elapsed := 0
	if b.elapsedFn != nil {
		elapsed = b.elapsedFn()
	}
	return b.cases.Finalize(ctx, b.userId, id, elapsed)
}

func (b *sessionBackend) ProcessTranscript(ctx context.Context, caseId string, messages []session.TranscriptMessage) (*session.CaseSnapshot, error) {
	id, err := b.parse(caseId)
	if err != nil {
		return nil, err
	}
	resp, err := b.cases.ProcessTranscript(ctx, b.userId, id, messages)
	if err != nil {
		return nil, err
	}
	return snapshotFromResponse(resp), nil
}

func (b *sessionBackend) FetchConversation(ctx context.Context, caseId string) ([]session.ConversationMessage, error) {
	id, err := b.parse(caseId)
	if err != nil {
		return nil, err
	}
	resp, err := b.cases.GetConversation(ctx, b.userId, id)
	if err != nil {
		return nil, err
	}
	out := make([]session.ConversationMessage, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		out = append(out, session.ConversationMessage{Role: msg.Role, Text: msg.Text})
	}
	return out, nil
}

func (b *sessionBackend) FetchValidation(ctx context.Context, caseId string) (*session.ValidationResult, error) {
	id, err := b.parse(caseId)
	if err != nil {
		return nil, err
	}
	resp, err := b.cases.Validate(ctx, b.userId, id)
	if err != nil {
		return nil, err
	}
	return &session.ValidationResult{
		GenerationAllowed:     resp.CanGenerate,
		BlockingMissingFields: resp.BlockingMissingFields,
		Warnings:              resp.Warnings,
	}, nil
}

func (b *sessionBackend) PersistCaseFields(ctx context.Context, caseId string, fields map[string]string) (*session.CaseSnapshot, error) {
	id, err := b.parse(caseId)
	if err != nil {
		return nil, err
	}
	resp, err := b.cases.UpdateFields(ctx, b.userId, id, fields)
	if err != nil {
		return nil, err
	}
	return snapshotFromResponse(resp), nil
}

func (b *sessionBackend) AnalyzeStrength(ctx context.Context, caseId string) (*session.StrengthReport, error) {
	id, err := b.parse(caseId)
	if err != nil {
		return nil, err
	}
	resp, err := b.docs.AnalyzeStrength(ctx, b.userId, id)
	if err != nil {
		return nil, err
	}
	return &session.StrengthReport{
		Score:       resp.Score,
		Summary:     resp.Summary,
		Weaknesses:  resp.Weaknesses,
		Suggestions: resp.Suggestions,
	}, nil
}

func (b *sessionBackend) GenerateDocument(ctx context.Context, caseId string) (*session.CaseSnapshot, error) {
	id, err := b.parse(caseId)
	if err != nil {
		return nil, err
	}
	resp, err := b.docs.Generate(ctx, b.userId, id)
	if err != nil {
		// ValidationError passes through untouched
		return nil, err
	}
	return snapshotFromResponse(&resp.Case), nil
}

func (b *sessionBackend) DownloadDocument(ctx context.Context, caseId string, format string) ([]byte, string, error) {
	id, err := b.parse(caseId)
	if err != nil {
		return nil, "", err
	}
	return b.docs.Download(ctx, b.userId, id, format)
}

func (b *sessionBackend) DeleteCase(ctx context.Context, caseId string) error {
	id, err := b.parse(caseId)
	if err != nil {
		return err
	}
	return b.cases.Delete(ctx, b.userId, id)
}

func (b *sessionBackend) parse(caseId string) (uuid.UUID, error) {
	id, err := uuid.Parse(caseId)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid case id %q: %w", caseId, err)
	}
	return id, nil
}
