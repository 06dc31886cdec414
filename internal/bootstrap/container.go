package bootstrap

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"ai-resume-be/internal/config"
	"ai-resume-be/internal/controller"
	"ai-resume-be/internal/pkg/logger"
	"ai-resume-be/internal/repository/memory"
	"ai-resume-be/internal/repository/redisstore"
	"ai-resume-be/internal/repository/unitofwork"
	"ai-resume-be/internal/service"
	"ai-resume-be/internal/websocket"
	"ai-resume-be/pkg/facts"
	"ai-resume-be/pkg/generate"
	"ai-resume-be/pkg/intent"
	"ai-resume-be/pkg/layout"
	"ai-resume-be/pkg/llm/factory"
	"ai-resume-be/pkg/orchestrator"
	"ai-resume-be/pkg/planner"
	"ai-resume-be/pkg/render"
	"ai-resume-be/pkg/store"

	pktNats "ai-resume-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	ChatController    controller.IChatController

	// Background services (exposed for main.go to run)
	TranscriptConsumer service.ITranscriptConsumer
	Orchestrator       *orchestrator.Orchestrator
	WebSocketHub       *websocket.Hub
	EventNotifier      *service.EventNotifierService

	// Held for shutdown
	NatsPublisher *pktNats.Publisher
	SysLogger     logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus (in-process persistence pipeline)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// 3. LLM provider
	llmProvider, err := factory.NewProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		providerBaseURL(cfg.Ai),
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// 4. Infrastructure
	// NATS (optional: the loop runs fine without the event bus)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
	}
	var natsSub *pktNats.Subscriber
	if natsPub != nil {
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS subscriber: %v", err)
		}
	}

	// Redis
	sessionTTL := time.Duration(cfg.Pipeline.SessionTTLMinutes) * time.Minute
	var rdb *redis.Client
	var sessions store.SessionStore
	if opt, err := redis.ParseURL(cfg.App.RedisURL); err == nil {
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to in-memory sessions", err)
			rdb = nil
		}
	} else {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Falling back to in-memory sessions", err)
	}
	if rdb != nil {
		sessions = redisstore.NewSessionRepository(rdb, sessionTTL, sysLogger)
	} else {
		sessions = memory.NewSessionRepository(sessionTTL)
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)

	// 5. Assistant pipeline
	loopLogger := newLoopLogger(cfg.App.LoopLogFilePath)

	classifier := intent.NewClassifier(
		intent.DefaultTaxonomy(),
		intent.NewLLMClassifier(llmProvider),
		intent.Config{FastPathThreshold: cfg.Pipeline.FastPathThreshold},
		loopLogger,
	)

	plan := planner.NewPlanner(planner.DefaultImpactKeywords(), planner.Config{
		MinConfidence: cfg.Pipeline.PlannerMinConfidence,
		MaxWordDelta:  cfg.Pipeline.MaxWordDelta,
	})

	fitters := newFitters(layout.Profile(cfg.Pipeline.SensitivityProfile))

	// 6. Notifier chain: websocket push, decorated with transcript persistence
	transcripts := service.NewTranscriptPublisher(pubSub)
	var notifier orchestrator.Notifier = websocket.NewHubNotifier(wsHub)
	notifier = service.NewTranscriptNotifier(notifier, transcripts, sessions, sysLogger)

	var bus orchestrator.EventPublisher
	if natsPub != nil {
		bus = natsPub
	}

	orch := orchestrator.New(orchestrator.Deps{
		Classifier: classifier,
		Planner:    plan,
		Fitters:    fitters,
		Generator:  generate.NewLLMGenerator(llmProvider),
		Extractor:  facts.NewExtractor(llmProvider),
		Renderer:   render.NewHTTPRenderer(cfg.Render.ServiceURL),
		Sessions:   sessions,
		Notifier:   notifier,
		Bus:        bus,
		Logger:     loopLogger,
	}, orchestrator.Config{
		QueueCapacity: cfg.Pipeline.QueueCapacity,
	})

	// 7. Services
	assistantService := service.NewAssistantService(uowFactory, sessions, orch, transcripts, bus, sysLogger)
	consumerService := service.NewTranscriptConsumer(pubSub, uowFactory)

	var eventNotifier *service.EventNotifierService
	if natsSub != nil {
		eventNotifier = service.NewEventNotifierService(natsSub, wsHub, sysLogger)
	}

	// 8. Controllers
	sessionController := controller.NewSessionController(assistantService)
	chatController := controller.NewChatController(assistantService, wsHub, sysLogger)

	return &Container{
		SessionController:  sessionController,
		ChatController:     chatController,
		TranscriptConsumer: consumerService,
		Orchestrator:       orch,
		WebSocketHub:       wsHub,
		EventNotifier:      eventNotifier,
		NatsPublisher:      natsPub,
		SysLogger:          sysLogger,
	}
}

// providerBaseURL picks the endpoint matching the configured provider; an
// empty OpenAI base URL keeps the client on the official API.
func providerBaseURL(ai config.AIConfig) string {
	if ai.Provider == "openai" {
		return ai.OpenAIBaseURL
	}
	return ai.OllamaBaseURL
}

// newLoopLogger writes the orchestration trace to its own plain log file so
// the per-message decision trail is easy to tail.
func newLoopLogger(logPath string) *log.Logger {
	if dir := filepath.Dir(logPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Printf("Failed to create logs directory: %v", err)
		}
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LOOP] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func newFitters(profile layout.Profile) map[layout.Target]*layout.Fitter {
	fitters := make(map[layout.Target]*layout.Fitter, 2)
	for _, target := range []layout.Target{layout.TargetPDF, layout.TargetDOCX} {
		cfg, err := layout.DefaultConfig(target)
		if err != nil {
			log.Fatalf("[FATAL] Unknown layout target %q: %v", target, err)
		}
		cfg.Profile = profile
		fitter, err := layout.NewFitter(cfg)
		if err != nil {
			log.Fatalf("[FATAL] Invalid layout policy for %q: %v", target, err)
		}
		fitters[target] = fitter
	}
	return fitters
}
