package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"ai-companion-be/internal/config"
	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/internal/repository/memory"
	"ai-companion-be/internal/repository/unitofwork"
	"ai-companion-be/internal/service"
	"ai-companion-be/pkg/extract"
	"ai-companion-be/pkg/llm"
	"ai-companion-be/pkg/llm/factory"
	pkgNats "ai-companion-be/pkg/nats"
	"ai-companion-be/pkg/provider"
)

type Container struct {
	DreamService       service.IDreamService
	SyncService        service.ISyncService
	ProgressionService service.IProgressionService

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	// Per-item audit chatter stays out of the main log.
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogPath)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM provider. "none" skips the model entirely and every
	// extraction runs on the deterministic fallback.
	var llmProvider llm.LLMProvider
	if cfg.Ai.LLMProvider != "none" {
		p, err := factory.NewLLMProvider(
			cfg.Ai.LLMProvider,
			cfg.Ai.LLMModel,
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.LLMApiKey,
		)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
		}
		llmProvider = p
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	} else {
		log.Printf("[INFO] LLM disabled, extraction uses the deterministic fallback")
	}

	var primary extract.Strategy
	if llmProvider != nil {
		primary = extract.NewModelStrategy(llmProvider)
	}
	extractor := extract.NewExtractor(primary, sysLogger)

	// 4. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	runStamps := memory.NewRunStampRepository()
	providerRegistry := provider.NewRegistry()

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Sync.AuditTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Sync.AuditTopic, uowFactory, auditLogger)

	syncService := service.NewSyncService(uowFactory, providerRegistry, publisherService, natsPub, cfg.Sync, sysLogger)
	extractionService := service.NewExtractionService(uowFactory, extractor, sysLogger)
	reflectionService := service.NewReflectionService(uowFactory, sysLogger)
	planningService := service.NewPlanningService(uowFactory, sysLogger)
	accountabilityService := service.NewAccountabilityService(uowFactory)
	progressionService := service.NewProgressionService(uowFactory, cfg.Dream, sysLogger)

	dreamService := service.NewDreamService(
		uowFactory,
		syncService,
		extractionService,
		reflectionService,
		planningService,
		accountabilityService,
		progressionService,
		runStamps,
		natsPub,
		cfg.Dream,
		sysLogger,
	)

	return &Container{
		DreamService:       dreamService,
		SyncService:        syncService,
		ProgressionService: progressionService,
		ConsumerService:    consumerService,
		Logger:             sysLogger,
	}
}
