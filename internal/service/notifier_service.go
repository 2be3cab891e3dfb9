package service

import (
	"context"
	"strings"

	"legal-intake-be/internal/pkg/logger"
	"legal-intake-be/internal/pkg/mailer"
	"legal-intake-be/internal/repository/specification"
	"legal-intake-be/internal/repository/unitofwork"
	"legal-intake-be/pkg/events"
	pktNats "legal-intake-be/pkg/nats"

	"github.com/google/uuid"
)

// NotifierService listens for intake events on the bus and sends the
// applicant-facing emails. Delivery is best-effort: a failed send is
// logged and the event acked so it is not retried forever.
type NotifierService struct {
	uowFactory   unitofwork.RepositoryFactory
	subscriber   *pktNats.Subscriber
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewNotifierService(uowFactory unitofwork.RepositoryFactory, sub *pktNats.Subscriber, emailService mailer.IEmailService, log logger.ILogger) *NotifierService {
	return &NotifierService{
		uowFactory:   uowFactory,
		subscriber:   sub,
		emailService: emailService,
		logger:       log,
	}
}

// Start begins listening to the event bus.
func (s *NotifierService) Start() {
	err := s.subscriber.Subscribe("intake."+events.TypeDocumentGenerated, "intake-notifier-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotifierService", "Failed to start notifier subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotifierService", "Notifier started, listening for generated documents", nil)
}

func (s *NotifierService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "intake.")
	if typeCode != events.TypeDocumentGenerated {
		return nil
	}

	payload := event.Payload()
	caseIdStr, _ := payload["case_id"].(string)
	caseId, err := uuid.Parse(caseIdStr)
	if err != nil {
		s.logger.Warn("NotifierService", "Event carried an invalid case id", map[string]interface{}{"case_id": caseIdStr})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	// Only mail for cases whose document actually landed; a stale or
	// replayed event for a reset case is dropped.
	kase, err := uow.CaseRepository().FindOne(ctx, specification.ByID{ID: caseId}, specification.WithGeneratedDocument{})
	if err != nil {
		return err // transient DB failure, let the consumer retry
	}
	if kase == nil || kase.ApplicantEmail == "" {
		return nil
	}

	if err := s.emailService.SendDocumentReady(kase.ApplicantEmail, kase.ApplicantName, kase.DocumentType); err != nil {
		s.logger.Warn("NotifierService", "Document-ready email failed", map[string]interface{}{
			"case_id": caseIdStr,
			"error":   err.Error(),
		})
	}
	return nil
}
