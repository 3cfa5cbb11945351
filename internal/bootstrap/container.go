package bootstrap

import (
	"context"
	"log"

	"voicenote-be/internal/config"
	"voicenote-be/internal/controller"
	"voicenote-be/internal/pkg/logger"
	"voicenote-be/internal/pkg/serverutils"
	"voicenote-be/internal/service"
	"voicenote-be/internal/websocket"
	"voicenote-be/pkg/audio"
	"voicenote-be/pkg/dialog"
	"voicenote-be/pkg/genai/openai"
	"voicenote-be/pkg/outline"
	"voicenote-be/pkg/session"
	"voicenote-be/pkg/speech/whisper"

	pktNats "voicenote-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	AssistantController controller.IAssistantController

	// Exposed for main.go to run and shut down.
	WebSocketHub  *websocket.Hub
	NatsPublisher *pktNats.Publisher
	Logger        logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Infrastructure
	// Redis backs both the session store and cross-instance frame fan-out.
	// The service degrades to in-process equivalents when it is unreachable.
	var rdb *redis.Client
	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.Redis.URL,
		}
	}
	rdb = redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Sessions are in-memory only", err)
		rdb = nil
	}

	var sessionStore session.Store
	if rdb != nil {
		sessionStore = session.NewRedisStore(rdb)
	} else {
		sessionStore = session.NewMemoryStore()
	}

	// NATS (optional)
	var natsPub *pktNats.Publisher
	if cfg.Nats.Enabled {
		natsPub, err = pktNats.NewPublisher(cfg.Nats.URL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// 3. Gateways
	provider := openai.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)
	transcriber := whisper.NewWhisperTranscriber(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)
	converter := audio.NewConverter(cfg.Assistant.FfmpegPath)
	classifier := outline.NewClassifier(provider, cfg.Assistant.DefaultModel, sysLogger)

	// 4. Conversation Machine
	machine := dialog.NewMachine(
		dialog.Config{
			DefaultModel:        cfg.Assistant.DefaultModel,
			StyleModel:          cfg.Assistant.StyleModel,
			StreamEditThreshold: cfg.Assistant.StreamEditThreshold,
			MessageCharCap:      cfg.Assistant.MessageCharCap,
			OutlineIntentMaxLen: cfg.Assistant.OutlineIntentMaxLen,
			LanguageHint:        cfg.Assistant.LanguageHint,
			ClassifyTags:        cfg.Assistant.ClassifyTags,
			StreamReplies:       cfg.Assistant.StreamReplies,
		},
		transcriber,
		provider,
		classifier,
		sysLogger,
		publisherOrNil(natsPub),
	)

	// 5. WebSocket Hub & Service
	wsHub := websocket.NewHub(rdb, sysLogger)

	channelFactory := func(userID uuid.UUID) dialog.Channel {
		return websocket.NewUserChannel(wsHub, userID)
	}

	assistantService := service.NewAssistantService(
		machine,
		sessionStore,
		converter,
		channelFactory,
		cfg.Assistant,
		sysLogger,
	)
	wsHub.SetHandler(assistantService)

	jwtMiddleware := serverutils.NewJwtMiddleware(cfg.App.JwtSecret)

	return &Container{
		AssistantController: controller.NewAssistantController(assistantService, wsHub, jwtMiddleware),
		WebSocketHub:        wsHub,
		NatsPublisher:       natsPub,
		Logger:              sysLogger,
	}
}

// publisherOrNil avoids handing the machine a typed-nil EventPublisher.
func publisherOrNil(p *pktNats.Publisher) dialog.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}
