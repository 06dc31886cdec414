package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ai-resume-be/internal/bootstrap"
	"ai-resume-be/internal/config"
	"ai-resume-be/internal/model"
	"ai-resume-be/internal/server"
	"ai-resume-be/internal/tracer"
	"ai-resume-be/pkg/database"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	// 2. Initialize tracer
	if cfg.App.OtelEnabled {
		shutdownTracer := tracer.InitTracer()
		defer shutdownTracer(context.Background())
	}

	// 3. Initialize database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.ResumeSession{}, &model.ChatMessage{}); err != nil {
		log.Panicf("Unable to migrate schema: %v", err)
	}

	// 4. Bootstrap dependencies
	container := bootstrap.NewContainer(gormDB, cfg)

	// 5. Start background services
	go container.WebSocketHub.Run()

	if err := container.TranscriptConsumer.Consume(context.Background()); err != nil {
		log.Panicf("Unable to start transcript consumer: %v", err)
	}
	if container.EventNotifier != nil {
		container.EventNotifier.Start()
	}

	// 6. Run server
	srv := server.New(cfg, container)
	go func() {
		if err := srv.Run(); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// 7. Graceful shutdown: drain queued messages before closing connections
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	if err := srv.Shutdown(); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	container.Orchestrator.Shutdown()
	if container.EventNotifier != nil {
		container.EventNotifier.Close()
	}
	if container.NatsPublisher != nil {
		container.NatsPublisher.Close()
	}
	container.SysLogger.Sync()
}
