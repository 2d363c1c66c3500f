package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/heygoodlife/chat-assistant/internal/ai"
	"github.com/heygoodlife/chat-assistant/internal/assistant"
	"github.com/heygoodlife/chat-assistant/internal/auth"
	"github.com/heygoodlife/chat-assistant/internal/config"
	"github.com/heygoodlife/chat-assistant/internal/history"
	"github.com/heygoodlife/chat-assistant/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.Dev)
	defer func() { _ = logger.Sync() }()

	// --- DB ---
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db open error", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("db ping error", zap.Error(err))
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Type", "Authorization"},
	}))

	// --- Assistant module wiring ---
	engine := ai.NewOpenAIClient(cfg.OpenAIKey, logger)
	dashboard := assistant.NewDashboardHandler(engine, logger)
	settings := assistant.NewSettingsHandler(engine, logger)
	extension := assistant.NewExtensionHandler(engine, logger)
	router := assistant.NewRouter(dashboard, settings, extension, logger)
	chatHandler := assistant.NewHTTPHandler(router, cfg.MaxQueryLength, cfg.RequestTimeout, logger)
	assistant.RegisterRoutes(r, chatHandler)

	// --- History module wiring ---
	historyRepo := history.NewRepo(db)
	historyService := history.NewService(historyRepo, logger)
	historyHandler := history.NewHTTPHandler(historyService, logger)
	history.RegisterRoutes(r, historyHandler, auth.Middleware(cfg.JWTSecret, logger))

	// Retention: the store has no TTL of its own, so purge on a ticker.
	go purgeLoop(historyRepo, logger)

	// --- health ---
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Chat Assistant Service is running"}`))
	})

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func purgeLoop(repo history.Repo, logger *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := repo.PurgeExpired(ctx)
		cancel()
		if err != nil {
			logger.Warn("purge failed", zap.Error(err))
			continue
		}
		if n > 0 {
			logger.Info("purged expired turns", zap.Int64("count", n))
		}
	}
}
