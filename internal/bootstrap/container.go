package bootstrap

import (
	"context"
	"log"
	"strings"

	"pdf-qa-be/internal/config"
	"pdf-qa-be/internal/controller"
	"pdf-qa-be/internal/pkg/logger"
	"pdf-qa-be/internal/repository/contract"
	"pdf-qa-be/internal/repository/memory"
	"pdf-qa-be/internal/repository/rediscache"
	"pdf-qa-be/internal/repository/unitofwork"
	"pdf-qa-be/internal/service"
	"pdf-qa-be/pkg/chunker"
	"pdf-qa-be/pkg/embedding"
	"pdf-qa-be/pkg/embedding/jina"
	"pdf-qa-be/pkg/llm/factory"
	"pdf-qa-be/pkg/pdf"
	"pdf-qa-be/pkg/rag/session"

	pktNats "pdf-qa-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	QAController       controller.IQAController
	ArtifactController controller.IArtifactController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := logger.NewIsolatedLogger(cfg.App.LLMLogFilePath)

	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. AI Providers
	embedder := newEmbedder(cfg)

	generator, err := factory.NewLLMProvider(factory.Settings{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		GeminiAPIKey:  cfg.Keys.GoogleGemini,
		OpenAIAPIKey:  cfg.Keys.OpenAI,
		OpenAIBaseURL: cfg.Ai.OpenAIBaseURL,
		HFAPIKey:      cfg.Keys.HuggingFace,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Retrieval State
	retrievalSession := session.New()

	indexBuilder, err := service.NewIndexBuilder(cfg.Rag.VectorIndexBackend, uowFactory)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize vector index: %v", err)
	}
	log.Printf("[INFO] Using Vector Index Backend: %s", cfg.Rag.VectorIndexBackend)

	artifactCache := c.newArtifactCache(cfg, sysLogger)

	// 5. Infrastructure
	// NATS is optional; without it events stay on the in-process bus.
	var forwarder service.EventForwarder
	if cfg.Messaging.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Messaging.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Messaging.EventTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Messaging.EventTopic,
		forwarder,
		sysLogger,
	)

	documentService := service.NewDocumentService(
		uowFactory,
		retrievalSession,
		pdf.NewFitzExtractor(),
		embedder,
		indexBuilder,
		publisherService,
		sysLogger,
		service.UploadOptions{
			UploadDir: cfg.App.UploadDir,
			Chunking: chunker.Config{
				Size:    cfg.Rag.ChunkSize,
				Overlap: cfg.Rag.ChunkOverlap,
			},
			EmbeddingTimeout: cfg.Ai.EmbeddingTimeout,
		},
	)

	qaService := service.NewQAService(
		uowFactory,
		retrievalSession,
		embedder,
		generator,
		sysLogger,
		llmLogger,
		service.QAOptions{
			TopK:              cfg.Rag.TopK,
			EmbeddingTimeout:  cfg.Ai.EmbeddingTimeout,
			GenerationTimeout: cfg.Ai.GenerationTimeout,
		},
	)

	artifactService := service.NewArtifactService(
		uowFactory,
		retrievalSession,
		generator,
		artifactCache,
		pdf.NewFpdfRenderer(),
		publisherService,
		sysLogger,
		llmLogger,
		service.ArtifactOptions{
			ContextChunks:     cfg.Rag.ArtifactContextChunks,
			GenerationTimeout: cfg.Ai.GenerationTimeout,
			ExportDir:         cfg.App.ExportDir,
		},
	)

	// 7. Controllers
	c.DocumentController = controller.NewDocumentController(documentService)
	c.QAController = controller.NewQAController(qaService)
	c.ArtifactController = controller.NewArtifactController(artifactService)

	return c
}

// Close releases the bus and broker connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func newEmbedder(cfg *config.Config) embedding.Embedder {
	switch strings.ToLower(cfg.Ai.EmbeddingProvider) {
	case "ollama":
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	case "jina":
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
		return jina.NewJinaProvider(cfg.Keys.Jina)
	case "openai":
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
		return embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
	case "gemini":
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
		return embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	default:
		log.Fatalf("[FATAL] Unknown embedding provider %q", cfg.Ai.EmbeddingProvider)
		return nil
	}
}

func (c *Container) newArtifactCache(cfg *config.Config, log logger.ILogger) contract.ArtifactCache {
	if cfg.Cache.ArtifactBackend != "redis" {
		return memory.NewArtifactCache(cfg.Cache.TTL)
	}

	opt, err := redis.ParseURL(cfg.Cache.RedisURL)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{
			"error": err.Error(),
		})
		opt = &redis.Options{
			Addr: cfg.Cache.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Warn("BOOTSTRAP", "Failed to connect to Redis, artifact lookups will fall through to the database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	c.closers = append(c.closers, func() { _ = rdb.Close() })

	return rediscache.NewArtifactCache(rdb, cfg.Cache.TTL, log)
}
