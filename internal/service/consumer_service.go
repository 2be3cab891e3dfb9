package service

import (
	"context"
	"log"

	"legal-intake-be/pkg/session"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the strength-analysis queue. Jobs are queued by
// the generation coordinator and must never block generation itself.
type consumerService struct {
	pubSub *gochannel.GoChannel
	docs   IDocumentService
}

func NewConsumerService(pubSub *gochannel.GoChannel, docs IDocumentService) IConsumerService {
	return &consumerService{
		pubSub: pubSub,
		docs:   docs,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, session.TopicStrengthAnalysis)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	caseId, err := uuid.Parse(string(msg.Payload))
	if err != nil {
		log.Printf("[ERROR] Invalid strength job payload %q: %v", string(msg.Payload), err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Running strength analysis for case %s", caseId)

	if err := cs.docs.AnalyzeStrengthInternal(ctx, caseId); err != nil {
		// Strength analysis is advisory; a failed job is dropped, the
		// user can still trigger it explicitly
		log.Printf("[ERROR] Strength analysis failed for case %s: %v", caseId, err)
		msg.Ack()
		return
	}

	msg.Ack()
}
