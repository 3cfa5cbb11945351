package main

import (
	"context"
	"log"

	"voicenote-be/internal/bootstrap"
	"voicenote-be/internal/config"
	"voicenote-be/internal/server"
	"voicenote-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer (no-op unless OTEL_ENABLED)
	shutdownTracer := tracer.InitTracer("voicenote-be", cfg.App.Environment)
	defer shutdownTracer(context.Background())

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()
	if container.NatsPublisher != nil {
		defer container.NatsPublisher.Close()
	}

	// 4. Start WebSocket Hub
	go container.WebSocketHub.Run()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
