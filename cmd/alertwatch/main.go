// Command alertwatch tails the emergency alert channel.  It prints each
// consultation ID published by the server, for use in an ops terminal or
// as the basis of a paging hook.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"medassist/internal/config"
	"medassist/internal/db"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	alerts, err := db.ListenAlerts(ctx, cfg.DatabaseURL, cfg.NotifyChannel)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", cfg.NotifyChannel, err)
	}

	log.Printf("watching channel %s for emergency consultations", cfg.NotifyChannel)
	for id := range alerts {
		log.Printf("EMERGENCY consultation recorded: %s", id)
	}
}
