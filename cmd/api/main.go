package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/markdave123-py/delulu-meter/internal/app"
	"github.com/markdave123-py/delulu-meter/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer application.Close()

	log.Println("delulu-meter API is running.")
	if err := application.Run(ctx, cfg.JobWorkers); err != nil {
		log.Printf("server error: %v", err)
	}
	log.Println("shutting down...")
}
