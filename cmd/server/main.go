package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"medassist/internal/config"
	"medassist/internal/core"
	"medassist/internal/db"
	httpserver "medassist/internal/http"
	"medassist/internal/llm"
	"medassist/internal/metrics"
)

func main() {
	// Load .env from the working directory if present; real environment
	// variables take precedence.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}
	cfg := config.Load()
	if cfg.HFAPIKey == "" {
		log.Fatal("HF_API_KEY must be set")
	}

	// The HTTP client timeout bounds a single model invocation; slow
	// calls must not hold up unrelated requests.
	llmClient := llm.NewHFClient(cfg.HFAPIKey, cfg.HFModelID, cfg.HFBaseURL, &http.Client{
		Timeout: cfg.LLMTimeout,
	})
	askService := core.NewAskService(llmClient)

	// The audit store is optional: without DATABASE_URL the server runs
	// fully stateless.
	var repo *db.Repository
	var alerter *db.Alerter
	if cfg.DatabaseURL != "" {
		dbConn, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := dbConn.PingContext(ctx); err != nil {
			log.Fatalf("failed to ping database: %v", err)
		}
		if err := db.Migrate(context.Background(), dbConn); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		repo = db.NewRepository(dbConn)
		alerter = db.NewAlerter(dbConn, cfg.NotifyChannel)
		log.Println("consultation auditing enabled")
	}

	srv := httpserver.NewServer(askService, repo, alerter, metrics.New(), cfg.StaticDir)

	addr := cfg.Addr()
	log.Printf("Listening on %s (model %s)", addr, cfg.HFModelID)
	if err := http.ListenAndServe(addr, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
