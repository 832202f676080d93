package bootstrap

import (
	"context"
	"log"

	"huddleup-faq-be/internal/config"
	"huddleup-faq-be/internal/controller"
	"huddleup-faq-be/internal/knowledge"
	"huddleup-faq-be/internal/pkg/logger"
	"huddleup-faq-be/internal/repository/unitofwork"
	"huddleup-faq-be/internal/service"
	"huddleup-faq-be/pkg/assistant"
	"huddleup-faq-be/pkg/assistant/discovery"
	"huddleup-faq-be/pkg/assistant/engagement"
	"huddleup-faq-be/pkg/assistant/resolver"
	"huddleup-faq-be/pkg/embedding"
	"huddleup-faq-be/pkg/events"
	"huddleup-faq-be/pkg/llm/factory"
	pktNats "huddleup-faq-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	FaqController       controller.IFaqController
	DiscoveryController controller.IDiscoveryController
	KnowledgeController controller.IKnowledgeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared infrastructure for one-shot commands such as the seeder
	UowFactory unitofwork.RepositoryFactory
	EmbedQueue knowledge.Enqueuer
	Logger     logger.ILogger

	closers []func()
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	// 3. Providers. A missing provider degrades the assistant instead of
	// stopping the server.
	embeddingProvider, err := embedding.NewProvider(ctx, embedding.Params{
		Provider:   cfg.Ai.EmbeddingProvider,
		Model:      cfg.Ai.EmbeddingModel,
		BaseURL:    cfg.Ai.EmbeddingBaseURL,
		APIKey:     apiKey(cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingAPIKey, cfg.Ai.GoogleGemini),
		Dimensions: cfg.Ai.EmbeddingDimensions,
	})
	if err != nil {
		log.Printf("[WARN] Embedding provider unavailable, semantic search disabled: %v", err)
		embeddingProvider = nil
	} else {
		log.Printf("[INFO] Using Embedding Provider: %s (%s)", cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingModel)
	}

	var completer assistant.Completer
	llmProvider, err := factory.NewLLMProvider(ctx, factory.Params{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.LLMBaseURL,
		APIKey:   apiKey(cfg.Ai.LLMProvider, cfg.Ai.LLMAPIKey, cfg.Ai.GoogleGemini),
	})
	if err != nil {
		log.Printf("[WARN] LLM provider unavailable, generation disabled: %v", err)
	} else {
		completer = llmProvider
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	// NATS
	var eventPublisher events.Publisher
	var closers []func()
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
		closers = append(closers, natsPub.Close)
	}
	closers = append(closers, func() { _ = pubSub.Close() })

	// 4. Knowledge access
	embedQueue := knowledge.NewEmbedQueue(pubSub, cfg.App.EmbedTopic)
	keywordStore := knowledge.NewKeywordStore(uowFactory)

	// Without an embedder nothing could consume the jobs, so none are queued.
	var jobs knowledge.Enqueuer
	var vectors resolver.VectorIndex
	if embeddingProvider != nil {
		jobs = embedQueue
		vectors = knowledge.NewVectorIndex(uowFactory, embeddingProvider, sysLogger)
	}
	historyStore := knowledge.NewHistoryStore(uowFactory, jobs, sysLogger)

	// 5. Assistant
	resolverCfg := resolver.DefaultConfig()
	resolverCfg.SemanticThreshold = cfg.Assistant.SemanticThreshold
	resolverCfg.PricingThresholdDrop = cfg.Assistant.PricingThresholdDrop
	resolverCfg.PricingThresholdFloor = cfg.Assistant.PricingThresholdFloor
	resolverCfg.TopK = cfg.Assistant.SemanticTopK
	resolverCfg.KeywordLimit = cfg.Assistant.KeywordLimit

	answerResolver := resolver.New(resolver.Deps{
		Vectors:   vectors,
		Keywords:  keywordStore,
		Completer: completer,
		Recorder:  historyStore,
		Logger:    sysLogger,
	}, resolverCfg)

	orchestrator := discovery.New(discovery.Deps{
		Completer: completer,
		History:   historyStore,
		Recorder:  historyStore,
		Logger:    sysLogger,
	})

	// 6. Services
	faqService := service.NewFaqService(service.FaqServiceDeps{
		UowFactory:     uowFactory,
		Resolver:       answerResolver,
		Orchestrator:   orchestrator,
		Tracker:        engagement.NewTracker(historyStore, sysLogger),
		Vectors:        vectors,
		Keywords:       keywordStore,
		History:        historyStore,
		Queue:          jobs,
		EventPublisher: eventPublisher,
		Logger:         sysLogger,
		TopK:           cfg.Assistant.SemanticTopK,
	})

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EmbedTopic,
		uowFactory,
		embeddingProvider,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		FaqController:       controller.NewFaqController(faqService),
		DiscoveryController: controller.NewDiscoveryController(faqService),
		KnowledgeController: controller.NewKnowledgeController(faqService),

		ConsumerService: consumerService,

		UowFactory: uowFactory,
		EmbedQueue: embedQueue,
		Logger:     sysLogger,

		closers: closers,
	}
}

// Close releases broker connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// apiKey falls back to GOOGLE_GEMINI_API_KEY for the gemini backends only.
func apiKey(provider, key, geminiKey string) string {
	if key == "" && provider == "gemini" {
		return geminiKey
	}
	return key
}
