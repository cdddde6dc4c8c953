package bootstrap

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/namhkse/recomending-system/internal/config"
	"github.com/namhkse/recomending-system/internal/controller"
	"github.com/namhkse/recomending-system/internal/pkg/logger"
	"github.com/namhkse/recomending-system/internal/repository/contract"
	"github.com/namhkse/recomending-system/internal/repository/implementation"
	"github.com/namhkse/recomending-system/internal/repository/memory"
	"github.com/namhkse/recomending-system/internal/service"
	"github.com/namhkse/recomending-system/pkg/catalog"
	"github.com/namhkse/recomending-system/pkg/embedding"
	"github.com/namhkse/recomending-system/pkg/events"
	"github.com/namhkse/recomending-system/pkg/index"
	"github.com/namhkse/recomending-system/pkg/llm/factory"
	pktNats "github.com/namhkse/recomending-system/pkg/nats"
	"github.com/namhkse/recomending-system/pkg/recsys/extract"
	"github.com/namhkse/recomending-system/pkg/recsys/pipeline"
	"github.com/namhkse/recomending-system/pkg/recsys/rank"
	"github.com/namhkse/recomending-system/pkg/recsys/response"
	"github.com/namhkse/recomending-system/pkg/recsys/state"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	CatalogController controller.ICatalogController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	CatalogService  service.ICatalogService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	engineLogger := log.New(os.Stdout, "", log.LstdFlags)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	embeddingProvider := buildEmbeddingProvider(cfg)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	if llmProvider != nil {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	} else {
		log.Printf("[INFO] No LLM provider configured, replies use templates")
	}

	// Redis (embedding cache)
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis, embedding cache disabled: %v", err)
	} else {
		embeddingProvider = embedding.NewCachedProvider(embeddingProvider, rdb, engineLogger)
	}

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}

	// 4. Serving Index
	var productRepo contract.ProductRepository
	var backend index.Backend
	usingMemoryBackend := true

	if db != nil {
		productRepo = implementation.NewProductRepository(db)
	}
	if cfg.Engine.IndexBackend == "pgvector" && productRepo != nil {
		backend = index.NewPgvectorBackend(productRepo)
		usingMemoryBackend = false
		log.Printf("[INFO] Using index backend: PGVECTOR")
	} else {
		backend = index.NewMemoryBackend()
		log.Printf("[INFO] Using index backend: MEMORY")
	}
	idx := index.New(backend, cfg.Engine.PoolRetries, engineLogger)

	// 5. Engine
	// brand vocabulary is richer when the stored catalog is known at boot
	var vocabProducts []catalog.Product
	if productRepo != nil {
		if stored, err := productRepo.FindAll(context.Background()); err == nil {
			for _, p := range stored {
				if p != nil {
					vocabProducts = append(vocabProducts, *p)
				}
			}
		}
	}
	vocab := extract.NewVocabulary(vocabProducts)
	extractor := extract.NewExtractor(vocab, engineLogger)
	stateManager := state.NewManager(cfg.Engine.MaxTurns, engineLogger)

	engine := pipeline.New(
		extractor,
		stateManager,
		idx,
		embeddingProvider,
		pipeline.Config{
			TopK: cfg.Engine.TopK,
			Weights: rank.Weights{
				Similarity: cfg.Engine.SimilarityWeight,
				Filter:     cfg.Engine.FilterWeight,
			},
			MaxRelaxations:  cfg.Engine.MaxRelaxations,
			ProviderTimeout: time.Duration(cfg.Engine.ProviderTimeout) * time.Second,
		},
		engineLogger,
	)
	generator := response.NewGenerator(llmProvider, engineLogger)

	// 6. Session Storage
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Engine.SessionTTL) * time.Minute)

	// 7. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedProductTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedProductTopic,
		productRepo,
		embeddingProvider,
		idx,
		natsPub,
	)

	catalogService := service.NewCatalogService(
		productRepo,
		idx,
		publisherService,
		embeddingProvider,
		sysLogger,
	)

	recommendationService := service.NewRecommendationService(
		sessionRepo,
		engine,
		generator,
		time.Duration(cfg.Engine.SessionTTL)*time.Minute,
		sysLogger,
	)

	// An in-memory index served from Postgres goes stale when another
	// instance reindexes; the NATS broadcast keeps replicas converged.
	if usingMemoryBackend && productRepo != nil {
		if err := catalogService.Reload(context.Background()); err != nil {
			log.Printf("[WARN] Initial index load failed: %v", err)
		}
		if natsSub != nil {
			err := natsSub.Subscribe("events."+events.CatalogReindexed, "catalog-refresh",
				func(ctx context.Context, e events.Event) error {
					return catalogService.Reload(ctx)
				})
			if err != nil {
				log.Printf("[WARN] Failed to subscribe to reindex events: %v", err)
			}
		}
	}

	// 8. Controllers
	return &Container{
		SessionController: controller.NewSessionController(recommendationService),
		CatalogController: controller.NewCatalogController(catalogService),

		ConsumerService: consumerService,
		CatalogService:  catalogService,
	}
}

func buildEmbeddingProvider(cfg *config.Config) embedding.EmbeddingProvider {
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	case "hash":
		// deterministic vectors for demos and offline development
		log.Printf("[INFO] Using Embedding Provider: HASH (dim %d)", cfg.Ai.EmbeddingDimension)
		return embedding.NewHashProvider(cfg.Ai.EmbeddingDimension)
	default:
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
		return embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}
}
