package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"schedule-server/config"
	"schedule-server/di"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[MAIN] Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("[MAIN] Failed to initialize: %v", err)
	}

	log.Println("[MAIN] Loading schedule")
	if _, err := container.ScheduleRefresherService.RefreshScheduleData(ctx, false); err != nil {
		// Serve anyway; endpoints answer 503 until a refresh succeeds.
		log.Printf("[MAIN] Initial schedule load failed: %v", err)
	}

	log.Printf("[MAIN] Starting periodic refresh every %s", cfg.RefreshInterval)
	container.ScheduleRefresherService.StartPeriodicJob(ctx, cfg.RefreshInterval)

	if err := container.ScheduleHttpServer.Start(ctx); err != nil {
		log.Fatalf("[MAIN] Server error: %v", err)
	}
}
