package service

import (
	"context"
	"fmt"
	"time"

	"legal-intake-be/internal/apperror"
	"legal-intake-be/internal/dto"
	"legal-intake-be/internal/entity"
	"legal-intake-be/internal/pkg/logger"
	"legal-intake-be/internal/repository/specification"
	"legal-intake-be/internal/repository/unitofwork"
	"legal-intake-be/pkg/drafting"
	"legal-intake-be/pkg/embedding"
	"legal-intake-be/pkg/events"
	pktNats "legal-intake-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	citationLimit     = 3
	citationThreshold = 0.35
)

type IDocumentService interface {
	Generate(ctx context.Context, userId uuid.UUID, caseId uuid.UUID) (*dto.GenerateDocumentResponse, error)
	AnalyzeStrength(ctx context.Context, userId uuid.UUID, caseId uuid.UUID) (*dto.StrengthReportResponse, error)
	AnalyzeStrengthInternal(ctx context.Context, caseId uuid.UUID) error
	LatestStrength(ctx context.Context, userId uuid.UUID, caseId uuid.UUID) (*dto.StrengthReportResponse, error)
	Download(ctx context.Context, userId uuid.UUID, caseId uuid.UUID, format string) ([]byte, string, error)
}

// DocumentDrafter is the slice of the drafting backend this service needs.
type DocumentDrafter interface {
	DraftDocument(ctx context.Context, req drafting.DraftRequest, options ...drafting.Option) (*drafting.DraftResult, error)
	AnalyzeStrength(ctx context.Context, req drafting.StrengthRequest, options ...drafting.Option) (*drafting.StrengthResult, error)
}

type documentService struct {
	uowFactory        unitofwork.RepositoryFactory
	drafter           DocumentDrafter
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	drafter DocumentDrafter,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:        uowFactory,
		drafter:           drafter,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		logger:            log,
	}
}

// Generate re-validates the case server-side, drafts the document with
// jurisprudence citations and stores the result. A blocking verdict comes
// back as a ValidationError, never as a generic failure.
func (s *documentService) Generate(ctx context.Context, userId uuid.UUID, caseId uuid.UUID) (*dto.GenerateDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	kase, err := findOwnedCase(ctx, uow, userId, caseId)
	if err != nil {
		return nil, err
	}

	verdict := computeValidation(kase)
	if !verdict.CanGenerate {
		return nil, &apperror.ValidationError{
			BlockingMissingFields: verdict.BlockingMissingFields,
			Warnings:              verdict.Warnings,
		}
	}

	citations := s.findCitations(ctx, kase)

	result, err := s.drafter.DraftDocument(ctx, drafting.DraftRequest{
		DocumentType: kase.DocumentType,
		Fields:       caseFieldMap(kase),
		Citations:    citations,
	})
	if err != nil {
		return nil, apperror.NewGenerationError(err)
	}

	now := time.Now()
	kase.HasGeneratedDocument = true
	kase.GeneratedDocument = result.Content
	kase.GeneratedAt = &now
	kase.Citations = citations
	kase.UpdatedAt = &now
	// The drafter's own assessment lands with the document; the strength
	// worker overwrites it later with the fuller report.
	score := result.QualityScore
	kase.QualityScore = &score
	kase.Suggestions = result.Suggestions

	if err := uow.CaseRepository().Update(ctx, kase); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewDocumentGenerated(kase.Id.String(), userId.String(), kase.DocumentType)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("document", "failed to publish DOCUMENT_GENERATED", map[string]interface{}{
				"case_id": kase.Id.String(),
				"error":   err.Error(),
			})
		}
	}

	return &dto.GenerateDocumentResponse{Case: *caseToResponse(kase)}, nil
}

// findCitations embeds the facts and searches the jurisprudence corpus.
// Citation lookup is advisory: any failure returns an empty list.
func (s *documentService) findCitations(ctx context.Context, kase *entity.Case) []string {
	if s.embeddingProvider == nil {
		return nil
	}

	query := kase.Facts
	if kase.ViolatedRights != "" {
		query += "\n" + kase.ViolatedRights
	}
	if query == "" {
		return nil
	}

	embedded, err := s.embeddingProvider.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		s.logger.Warn("document", "citation embedding failed", map[string]interface{}{
			"case_id": kase.Id.String(),
			"error":   err.Error(),
		})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.JurisprudenceRepository().SearchSimilarWithScore(ctx, embedded.Embedding.Values, citationLimit, citationThreshold)
	if err != nil {
		s.logger.Warn("document", "jurisprudence search failed", map[string]interface{}{
			"case_id": kase.Id.String(),
			"error":   err.Error(),
		})
		return nil
	}

	citations := make([]string, 0, len(scored))
	for _, match := range scored {
		citations = append(citations, fmt.Sprintf("%s — %s", match.Document.Reference, match.Document.Court))
	}
	return citations
}

func (s *documentService) AnalyzeStrength(ctx context.Context, userId uuid.UUID, caseId uuid.UUID) (*dto.StrengthReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	kase, err := findOwnedCase(ctx, uow, userId, caseId)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, uow, kase)
}

// AnalyzeStrengthInternal is the queue-worker path: no ownership check.
func (s *documentService) AnalyzeStrengthInternal(ctx context.Context, caseId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	kase, err := uow.CaseRepository().FindOne(ctx, specification.ByID{ID: caseId})
	if err != nil {
		return err
	}
	if kase == nil {
		return fmt.Errorf("case %s not found", caseId)
	}
	_, err = s.analyze(ctx, uow, kase)
	return err
}

func (s *documentService) analyze(ctx context.Context, uow unitofwork.UnitOfWork, kase *entity.Case) (*dto.StrengthReportResponse, error) {
	result, err := s.drafter.AnalyzeStrength(ctx, drafting.StrengthRequest{
		DocumentType: kase.DocumentType,
		Fields:       caseFieldMap(kase),
	})
	if err != nil {
		return nil, err
	}

	report := entity.StrengthReport{
		Id:         uuid.New(),
		CaseId:     kase.Id,
		Score:      result.Score,
		Summary:    result.Summary,
		Weaknesses: result.Weaknesses,
		CreatedAt:  time.Now(),
	}
	if err := uow.StrengthRepository().Create(ctx, &report); err != nil {
		return nil, err
	}

	now := time.Now()
	kase.QualityScore = &result.Score
	kase.Suggestions = result.Suggestions
	kase.UpdatedAt = &now
	if err := uow.CaseRepository().Update(ctx, kase); err != nil {
		return nil, err
	}

	return &dto.StrengthReportResponse{
		Score:       result.Score,
		Summary:     result.Summary,
		Weaknesses:  result.Weaknesses,
		Suggestions: result.Suggestions,
	}, nil
}

// LatestStrength returns the most recent stored report without calling the
// drafting backend again. The queue worker may still be running; a missing
// report is a 404, not an error.
func (s *documentService) LatestStrength(ctx context.Context, userId uuid.UUID, caseId uuid.UUID) (*dto.StrengthReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	kase, err := findOwnedCase(ctx, uow, userId, caseId)
	if err != nil {
		return nil, err
	}

	report, err := uow.StrengthRepository().FindLatestByCaseId(ctx, kase.Id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "the case has no strength report yet")
	}

	return &dto.StrengthReportResponse{
		Score:       report.Score,
		Summary:     report.Summary,
		Weaknesses:  report.Weaknesses,
		Suggestions: kase.Suggestions,
	}, nil
}

// Download serves the stored document text under the requested extension.
// Binary rendering lives in the export pipeline; this endpoint hands the
// reviewed text to the client.
func (s *documentService) Download(ctx context.Context, userId uuid.UUID, caseId uuid.UUID, format string) ([]byte, string, error) {
	switch format {
	case "pdf", "docx", "txt":
	default:
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "unsupported format: "+format)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	kase, err := findOwnedCase(ctx, uow, userId, caseId)
	if err != nil {
		return nil, "", err
	}
	if !kase.HasGeneratedDocument {
		return nil, "", fiber.NewError(fiber.StatusConflict, "the case has no generated document yet")
	}

	filename := fmt.Sprintf("%s_%s.%s", kase.DocumentType, kase.Id.String()[:8], format)
	return []byte(kase.GeneratedDocument), filename, nil
}
