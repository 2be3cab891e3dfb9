package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"legal-intake-be/internal/dto"
	"legal-intake-be/internal/entity"
	"legal-intake-be/internal/repository/specification"
	"legal-intake-be/internal/repository/unitofwork"
	"legal-intake-be/pkg/drafting"
	"legal-intake-be/pkg/events"
	pktNats "legal-intake-be/pkg/nats"
	"legal-intake-be/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICaseService interface {
	Create(ctx context.Context, userId uuid.UUID, documentType string) (*dto.CaseResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.CaseResponse, error)
	List(ctx context.Context, userId uuid.UUID) (*dto.ListCasesResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	UpdateFields(ctx context.Context, userId uuid.UUID, id uuid.UUID, fields map[string]string) (*dto.CaseResponse, error)
	Validate(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ValidationResponse, error)
	ProcessTranscript(ctx context.Context, userId uuid.UUID, id uuid.UUID, msgs []session.TranscriptMessage) (*dto.CaseResponse, error)
	GetConversation(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ConversationResponse, error)
	Finalize(ctx context.Context, userId uuid.UUID, id uuid.UUID, elapsedSeconds int) error
}

type caseService struct {
	uowFactory       unitofwork.RepositoryFactory
	draftingProvider DraftingProvider
	eventPublisher   *pktNats.Publisher
}

// DraftingProvider is the slice of the drafting backend the case service
// needs for extraction.
type DraftingProvider interface {
	ExtractCase(ctx context.Context, turns []drafting.ConversationTurn, currentFields map[string]string, options ...drafting.Option) (*drafting.Extraction, error)
}

func NewCaseService(
	uowFactory unitofwork.RepositoryFactory,
	draftingProvider DraftingProvider,
	eventPublisher *pktNats.Publisher,
) ICaseService {
	return &caseService{
		uowFactory:       uowFactory,
		draftingProvider: draftingProvider,
		eventPublisher:   eventPublisher,
	}
}

func (c *caseService) Create(ctx context.Context, userId uuid.UUID, documentType string) (*dto.CaseResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "user profile not found")
	}

	kase := entity.Case{
		Id:           uuid.New(),
		UserId:       userId,
		DocumentType: documentType,

		// Applicant data is copied once and stays read-only on the case
		ApplicantName:           profile.Name,
		ApplicantIdentification: profile.Identification,
		ApplicantAddress:        profile.Address,
		ApplicantPhone:          profile.Phone,
		ApplicantEmail:          profile.Email,

		CreatedAt: time.Now(),
	}

	if err := uow.CaseRepository().Create(ctx, &kase); err != nil {
		return nil, err
	}

	if c.eventPublisher != nil {
		evt := events.NewCaseCreated(kase.Id.String(), userId.String(), documentType)
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("Warn: failed to publish CASE_CREATED: %v\n", err)
		}
	}

	return caseToResponse(&kase), nil
}

func (c *caseService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.CaseResponse, error) {
	kase, err := c.ownedCase(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	return caseToResponse(kase), nil
}

func (c *caseService) List(ctx context.Context, userId uuid.UUID) (*dto.ListCasesResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	cases, err := uow.CaseRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	total, err := uow.CaseRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	resp := &dto.ListCasesResponse{Total: total, Cases: make([]dto.CaseResponse, 0, len(cases))}
	for _, kase := range cases {
		resp.Cases = append(resp.Cases, *caseToResponse(kase))
	}
	return resp, nil
}

func (c *caseService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	kase, err := c.ownedCase(ctx, userId, id)
	if err != nil {
		return err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.TranscriptRepository().DeleteByCaseId(ctx, kase.Id); err != nil {
		return err
	}
	if err := uow.StrengthRepository().DeleteByCaseId(ctx, kase.Id); err != nil {
		return err
	}
	if err := uow.CaseRepository().Delete(ctx, kase.Id); err != nil {
		return err
	}

	if c.eventPublisher != nil {
		evt := events.NewCaseDeleted(kase.Id.String(), userId.String())
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("Warn: failed to publish CASE_DELETED: %v\n", err)
		}
	}
	return nil
}

func (c *caseService) UpdateFields(ctx context.Context, userId uuid.UUID, id uuid.UUID, fields map[string]string) (*dto.CaseResponse, error) {
	kase, err := c.ownedCase(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	applyFields(kase, fields)
	now := time.Now()
	kase.UpdatedAt = &now

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CaseRepository().Update(ctx, kase); err != nil {
		return nil, err
	}
	return caseToResponse(kase), nil
}

func (c *caseService) Validate(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ValidationResponse, error) {
	kase, err := c.ownedCase(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	return computeValidation(kase), nil
}

// ProcessTranscript persists the session transcript, runs extraction over
// the final utterances and merges the extracted fields into the case.
func (c *caseService) ProcessTranscript(ctx context.Context, userId uuid.UUID, id uuid.UUID, msgs []session.TranscriptMessage) (*dto.CaseResponse, error) {
	kase, err := c.ownedCase(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	records := make([]*entity.TranscriptMessage, 0, len(msgs))
	turns := make([]drafting.ConversationTurn, 0, len(msgs))
	for i, msg := range msgs {
		records = append(records, &entity.TranscriptMessage{
			Id:         uuid.New(),
			CaseId:     kase.Id,
			ExternalId: msg.Id,
			Role:       msg.Role,
			Text:       msg.Text,
			Timestamp:  msg.Timestamp,
			IsFinal:    msg.IsFinal,
			Position:   i,
			CreatedAt:  time.Now(),
		})
		if msg.IsFinal {
			turns = append(turns, drafting.ConversationTurn{Role: msg.Role, Content: msg.Text})
		}
	}
	if len(records) > 0 {
		if err := uow.TranscriptRepository().CreateBatch(ctx, records); err != nil {
			return nil, err
		}
	}

	extraction, err := c.draftingProvider.ExtractCase(ctx, turns, caseFieldMap(kase))
	if err != nil {
		return nil, err
	}

	applyFields(kase, extraction.Fields)
	now := time.Now()
	kase.UpdatedAt = &now
	if err := uow.CaseRepository().Update(ctx, kase); err != nil {
		return nil, err
	}

	return caseToResponse(kase), nil
}

func (c *caseService) GetConversation(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ConversationResponse, error) {
	kase, err := c.ownedCase(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	msgs, err := uow.TranscriptRepository().FindAll(ctx,
		specification.ByCaseID{CaseID: kase.Id},
		specification.FinalOnly{},
		specification.OrderBy{Field: "position"},
	)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Position < msgs[j].Position })

	resp := &dto.ConversationResponse{Messages: make([]dto.ConversationMessageResponse, 0, len(msgs))}
	for _, msg := range msgs {
		resp.Messages = append(resp.Messages, dto.ConversationMessageResponse{
			Role: msg.Role,
			Text: msg.Text,
		})
	}
	return resp, nil
}

func (c *caseService) Finalize(ctx context.Context, userId uuid.UUID, id uuid.UUID, elapsedSeconds int) error {
	kase, err := c.ownedCase(ctx, userId, id)
	if err != nil {
		return err
	}

	if c.eventPublisher != nil {
		evt := events.NewSessionFinalized(kase.Id.String(), userId.String(), elapsedSeconds)
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("Warn: failed to publish SESSION_FINALIZED: %v\n", err)
		}
	}
	return nil
}

func (c *caseService) ownedCase(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*entity.Case, error) {
	return findOwnedCase(ctx, c.uowFactory.NewUnitOfWork(ctx), userId, id)
}
