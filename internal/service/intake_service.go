package service

import (
	"context"

	"legal-intake-be/internal/dto"
	"legal-intake-be/internal/pkg/logger"
	"legal-intake-be/internal/repository/memory"
	"legal-intake-be/internal/websocket"
	"legal-intake-be/pkg/media"
	"legal-intake-be/pkg/session"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IIntakeService drives the live intake sessions. One runtime exists per
// active case; everything here routes through it.
type IIntakeService interface {
	Start(ctx context.Context, userId uuid.UUID, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error)
	Status(ctx context.Context, userId uuid.UUID, caseId string) (*dto.SessionStatusResponse, error)
	SetMute(ctx context.Context, userId uuid.UUID, caseId string, muted bool) (*dto.SessionStatusResponse, error)
	Shortcut(ctx context.Context, userId uuid.UUID, caseId string, req *dto.ShortcutRequest) (*dto.SessionStatusResponse, error)
	MediaEvent(ctx context.Context, userId uuid.UUID, caseId string, req *dto.MediaEventRequest) error
	TranscriptEvent(ctx context.Context, userId uuid.UUID, caseId string, req *dto.TranscriptEventRequest) error
	Transcript(ctx context.Context, userId uuid.UUID, caseId string) ([]dto.TranscriptMessageResponse, error)
	Finalize(ctx context.Context, userId uuid.UUID, caseId string) (*dto.FinalizeSessionResponse, error)
	Abandon(ctx context.Context, userId uuid.UUID, caseId string) error
	Reset(ctx context.Context, userId uuid.UUID, caseId string) error
	EditFields(ctx context.Context, userId uuid.UUID, caseId string, fields map[string]string) (*dto.CaseResponse, error)
	Generate(ctx context.Context, userId uuid.UUID, caseId string) (*dto.GenerateDocumentResponse, error)
	HasViewableSession(userId uuid.UUID, caseId string) bool
}

type intakeService struct {
	sessions       *memory.SessionRepository
	cases          ICaseService
	docs           IDocumentService
	minter         *media.TokenMinter
	mediaServerURL string
	transport      media.Transport
	jobPublisher   message.Publisher
	hub            *websocket.Hub
	logger         logger.ILogger
}

func NewIntakeService(
	sessions *memory.SessionRepository,
	cases ICaseService,
	docs IDocumentService,
	minter *media.TokenMinter,
	mediaServerURL string,
	transport media.Transport,
	jobPublisher message.Publisher,
	hub *websocket.Hub,
	log logger.ILogger,
) IIntakeService {
	return &intakeService{
		sessions:       sessions,
		cases:          cases,
		docs:           docs,
		minter:         minter,
		mediaServerURL: mediaServerURL,
		transport:      transport,
		jobPublisher:   jobPublisher,
		hub:            hub,
		logger:         log,
	}
}

func (s *intakeService) Start(ctx context.Context, userId uuid.UUID, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error) {
	backend := newSessionBackend(userId, req.DocumentType, s.cases, s.docs, s.minter, s.mediaServerURL)
	rt := session.NewRuntime(backend, s.transport, s.jobPublisher, s.logger)
	backend.elapsedFn = rt.Ticker.Elapsed

	if err := rt.Machine.StartSession(ctx); err != nil {
		rt.Close()
		return nil, err
	}

	caseId := rt.Machine.CaseId()
	s.sessions.Save(caseId, rt, userId)

	creds := rt.Machine.Credentials()
	return &dto.StartSessionResponse{
		CaseId:         caseId,
		State:          string(rt.Machine.State()),
		MediaServerUrl: creds.ServerURL,
		MediaToken:     creds.Token,
		RoomName:       creds.RoomName,
		TokenExpiresAt: creds.ExpiresAt,
	}, nil
}

func (s *intakeService) Status(ctx context.Context, userId uuid.UUID, caseId string) (*dto.SessionStatusResponse, error) {
	rt, err := s.runtime(userId, caseId)
	if err != nil {
		return nil, err
	}
	return s.statusOf(caseId, rt), nil
}

func (s *intakeService) SetMute(ctx context.Context, userId uuid.UUID, caseId string, muted bool) (*dto.SessionStatusResponse, error) {
	rt, err := s.runtime(userId, caseId)
	if err != nil {
		return nil, err
	}
	rt.Media.SetMuted(muted)
	return s.statusOf(caseId, rt), nil
}

func (s *intakeService) Shortcut(ctx context.Context, userId uuid.UUID, caseId string, req *dto.ShortcutRequest) (*dto.SessionStatusResponse, error) {
	rt, err := s.runtime(userId, caseId)
	if err != nil {
		return nil, err
	}
	rt.Media.HandleShortcut(req.Key, req.FocusInInput)
	return s.statusOf(caseId, rt), nil
}

func (s *intakeService) MediaEvent(ctx context.Context, userId uuid.UUID, caseId string, req *dto.MediaEventRequest) error {
	rt, err := s.runtime(userId, caseId)
	if err != nil {
		return err
	}
	switch req.Event {
	case "avatar_connected":
		rt.Media.HandleAvatarConnected()
	case "avatar_disconnected":
		rt.Media.HandleAvatarDisconnected()
	case "speaking_changed":
		rt.Media.HandleSpeakingChanged(req.Participant, req.Speaking)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unknown media event: "+req.Event)
	}
	return nil
}

func (s *intakeService) TranscriptEvent(ctx context.Context, userId uuid.UUID, caseId string, req *dto.TranscriptEventRequest) error {
	rt, err := s.runtime(userId, caseId)
	if err != nil {
		return err
	}
	if rt.Machine.State() != session.StateInSession {
		return fiber.NewError(fiber.StatusConflict, "session is not live")
	}

	rt.Transcript.Ingest(session.TranscriptMessage{
		Id:        req.Id,
		Role:      req.Role,
		Text:      req.Text,
		Timestamp: req.Timestamp,
		IsFinal:   req.IsFinal,
	})

	if s.hub != nil {
		s.hub.BroadcastTranscript(caseId, dto.TranscriptMessageResponse{
			Id:        req.Id,
			Role:      req.Role,
			Text:      req.Text,
			Timestamp: req.Timestamp,
			IsFinal:   req.IsFinal,
		})
	}
	return nil
}

func (s *intakeService) Transcript(ctx context.Context, userId uuid.UUID, caseId string) ([]dto.TranscriptMessageResponse, error) {
	rt, err := s.runtime(userId, caseId)
	if err != nil {
		return nil, err
	}
	msgs := rt.Transcript.Messages()
	out := make([]dto.TranscriptMessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, dto.TranscriptMessageResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Text:      msg.Text,
			Timestamp: msg.Timestamp,
			IsFinal:   msg.IsFinal,
		})
	}
	return out, nil
}

func (s *intakeService) Finalize(ctx context.Context, userId uuid.UUID, caseId string) (*dto.FinalizeSessionResponse, error) {
	rt, err := s.runtime(userId, caseId)
	if err != nil {
		return nil, err
	}
	if err := rt.Machine.FinalizeSession(ctx); err != nil {
		return nil, err
	}

	id, _ := uuid.Parse(caseId)
	kase, err := s.cases.Show(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	return &dto.FinalizeSessionResponse{
		CaseId: caseId,
		State:  string(rt.Machine.State()),
		Case:   *kase,
	}, nil
}

func (s *intakeService) Abandon(ctx context.Context, userId uuid.UUID, caseId string) error {
	rt, err := s.runtime(userId, caseId)
	if err != nil {
		return err
	}
	rt.Machine.AbandonSession(ctx)
	s.sessions.Delete(caseId)
	return nil
}

// Reset dismisses an errored session. The runtime leaves the registry so
// the user can start a fresh one; the case record stays untouched.
func (s *intakeService) Reset(ctx context.Context, userId uuid.UUID, caseId string) error {
	rt, err := s.runtime(userId, caseId)
	if err != nil {
		return err
	}
	if err := rt.Machine.Reset(); err != nil {
		return fiber.NewError(fiber.StatusConflict, "session is not in an error state")
	}
	s.sessions.Delete(caseId)
	return nil
}

// EditFields routes edits through the runtime's debounced draft when the
// session is still alive; otherwise they persist immediately.
func (s *intakeService) EditFields(ctx context.Context, userId uuid.UUID, caseId string, fields map[string]string) (*dto.CaseResponse, error) {
	id, err := uuid.Parse(caseId)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid case id")
	}

	entry, found := s.sessions.Get(caseId)
	if !found || entry.OwnerId != userId || entry.Runtime.Draft.Closed() {
		// No live draft store (or a torn-down one); persist directly
		return s.cases.UpdateFields(ctx, userId, id, fields)
	}

	for field, value := range fields {
		entry.Runtime.Draft.OnFieldChange(field, value)
	}

	// Reflect the local draft over the stored record so the caller sees
	// every edit immediately, before the autosave settles.
	resp, err := s.cases.Show(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	overlayDraft(resp, entry.Runtime.Draft.Draft())
	return resp, nil
}

func (s *intakeService) Generate(ctx context.Context, userId uuid.UUID, caseId string) (*dto.GenerateDocumentResponse, error) {
	id, err := uuid.Parse(caseId)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid case id")
	}

	entry, found := s.sessions.Get(caseId)
	if found && entry.OwnerId == userId {
		if _, err := entry.Runtime.Coordinator.Generate(ctx); err != nil {
			return nil, err
		}
		kase, err := s.cases.Show(ctx, userId, id)
		if err != nil {
			return nil, err
		}
		return &dto.GenerateDocumentResponse{Case: *kase}, nil
	}

	// No live runtime; the document service re-validates on its own
	return s.docs.Generate(ctx, userId, id)
}

// HasViewableSession reports whether the user may attach a transcript
// viewer to this case.
func (s *intakeService) HasViewableSession(userId uuid.UUID, caseId string) bool {
	entry, found := s.sessions.Get(caseId)
	return found && entry.OwnerId == userId
}

func (s *intakeService) runtime(userId uuid.UUID, caseId string) (*session.Runtime, error) {
	entry, found := s.sessions.Get(caseId)
	if !found || entry.OwnerId != userId {
		return nil, fiber.NewError(fiber.StatusNotFound, "no active session for this case")
	}
	return entry.Runtime, nil
}

func (s *intakeService) statusOf(caseId string, rt *session.Runtime) *dto.SessionStatusResponse {
	return &dto.SessionStatusResponse{
		CaseId:          caseId,
		State:           string(rt.Machine.State()),
		ErrorMessage:    rt.Machine.ErrorMessage(),
		Muted:           rt.Media.IsMuted(),
		MicEnabled:      rt.Media.MicrophoneEnabled(),
		AvatarConnected: rt.Media.IsAvatarConnected(),
		AvatarSpeaking:  rt.Media.Speaking(media.IdentityAvatar),
		LocalSpeaking:   rt.Media.Speaking(media.IdentityCitizen),
		ElapsedSeconds:  rt.Machine.Elapsed(),
		SaveStatus:      string(rt.Draft.Status()),
	}
}

// overlayDraft writes the runtime draft's values over a stored response.
func overlayDraft(resp *dto.CaseResponse, draft session.CaseDraft) {
	if draft.DocumentType != "" {
		resp.DocumentType = draft.DocumentType
	}
	resp.AccusedEntity = draft.AccusedEntity
	resp.EntityAddress = draft.EntityAddress
	resp.Facts = draft.Facts
	resp.FactsCity = draft.FactsCity
	resp.ViolatedRights = draft.ViolatedRights
	resp.Claims = draft.Claims
	resp.LegalGrounds = draft.LegalGrounds
	resp.Evidence = draft.Evidence
	resp.ActsInRepresentation = draft.ActsInRepresentation
	resp.RepresentedName = draft.RepresentedName
	resp.RepresentedIdentification = draft.RepresentedIdentification
	resp.RepresentedRelation = draft.RepresentedRelation
	resp.RepresentedType = draft.RepresentedType
}
