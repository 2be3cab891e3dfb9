package bootstrap

import (
	"context"
	"log"
	"time"

	"legal-intake-be/internal/config"
	"legal-intake-be/internal/controller"
	"legal-intake-be/internal/pkg/logger"
	"legal-intake-be/internal/pkg/mailer"
	"legal-intake-be/internal/repository/memory"
	"legal-intake-be/internal/repository/unitofwork"
	"legal-intake-be/internal/service"
	"legal-intake-be/internal/websocket"
	"legal-intake-be/pkg/drafting"
	"legal-intake-be/pkg/embedding"
	"legal-intake-be/pkg/media"

	pktNats "legal-intake-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController  controller.ISessionController
	CaseController     controller.ICaseController
	DocumentController controller.IDocumentController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus (in-process job queue for strength analysis)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
	)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)

	draftingProvider := drafting.NewHTTPProvider(cfg.Ai.DraftingBaseURL, cfg.Ai.DraftingModel)
	log.Printf("[INFO] Using Drafting Backend: %s (%s)", cfg.Ai.DraftingBaseURL, cfg.Ai.DraftingModel)

	// In-memory session registry
	sessionRepo := memory.NewSessionRepository()

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub for live transcript viewers
	wsLogger := logger.NewIsolatedLogger("logs/transcript.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Media room grants
	tokenMinter := media.NewTokenMinter(
		cfg.Media.APIKey,
		cfg.Media.APISecret,
		time.Duration(cfg.Media.TokenTTLHours)*time.Hour,
	)
	mediaTransport := media.NewBridgeTransport()

	// 5. Services
	caseService := service.NewCaseService(uowFactory, draftingProvider, natsPub)
	documentService := service.NewDocumentService(
		uowFactory,
		draftingProvider,
		embeddingProvider,
		natsPub,
		sysLogger,
	)
	intakeService := service.NewIntakeService(
		sessionRepo,
		caseService,
		documentService,
		tokenMinter,
		cfg.Media.ServerURL,
		mediaTransport,
		pubSub,
		wsHub,
		sysLogger,
	)
	consumerService := service.NewConsumerService(pubSub, documentService)

	// Applicant email notifier (worker), driven by the event bus
	if natsSub != nil {
		notifierService := service.NewNotifierService(uowFactory, natsSub, emailService, sysLogger)
		go notifierService.Start()
	}

	// 6. Controllers
	return &Container{
		SessionController:  controller.NewSessionController(intakeService, wsHub, sysLogger),
		CaseController:     controller.NewCaseController(caseService, intakeService),
		DocumentController: controller.NewDocumentController(documentService, intakeService),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
	}
}
