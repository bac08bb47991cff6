package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/user/newsingest/internal/adapter/anthropic"
	"github.com/user/newsingest/internal/adapter/chromedp_fetcher"
	"github.com/user/newsingest/internal/adapter/elastic"
	"github.com/user/newsingest/internal/adapter/postgres"
	redis_adapter "github.com/user/newsingest/internal/adapter/redis"
	"github.com/user/newsingest/internal/delivery/http/handler"
	"github.com/user/newsingest/internal/delivery/http/router"
	"github.com/user/newsingest/internal/repository"
	"github.com/user/newsingest/internal/usecase"
	"github.com/user/newsingest/pkg/config"
	"github.com/user/newsingest/pkg/logger"
	"github.com/user/newsingest/pkg/metrics"
	"github.com/user/newsingest/pkg/sysmem"
)

func main() {
	// --- Configuration ---
	_ = godotenv.Load()
	cfg := config.Load()

	// --- Logger ---
	logger.Init(os.Stdout, logger.Level(cfg.LogLevel))
	slog.Info("Logger initialized", "level", cfg.LogLevel)

	// --- Metrics ---
	metrics.Init()

	ctx := context.Background()

	// --- Stores ---
	var chunkStore repository.ChunkStore
	if cfg.BackendEnabled("elastic") {
		esClient, err := es.NewClient(es.Config{
			Addresses: []string{cfg.ElasticsearchURL},
			Username:  cfg.ElasticsearchUser,
			Password:  cfg.ElasticsearchPassword,
		})
		if err != nil {
			slog.Error("Unable to create Elasticsearch client", "error", err)
			os.Exit(1)
		}
		store := elastic.NewChunkStore(esClient, cfg.ElasticsearchIndex)
		if err := store.EnsureIndex(ctx); err != nil {
			slog.Error("Unable to ensure chunk index", "error", err)
			os.Exit(1)
		}
		chunkStore = store
	}

	var newsStore repository.NewsStore
	if cfg.BackendEnabled("postgres") {
		pgConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
		dbpool, err := pgxpool.New(ctx, pgConnString)
		if err != nil {
			slog.Error("Unable to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbpool.Close()
		store := postgres.NewNewsStore(dbpool)
		if err := store.EnsureSchema(ctx); err != nil {
			slog.Error("Unable to ensure news table", "error", err)
			os.Exit(1)
		}
		newsStore = store
	}

	if chunkStore == nil && newsStore == nil {
		slog.Error("No store backend enabled, set STORE_BACKENDS to elastic and/or postgres")
		os.Exit(1)
	}

	var visited repository.VisitedStore
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			slog.Error("Unable to connect to Redis", "error", err)
			os.Exit(1)
		}
		visited = redis_adapter.NewVisitedStore(rdb)
	}

	// --- Pipeline ---
	fetcher, err := chromedp_fetcher.New(cfg.MaxConcurrency, cfg.PageLoadTimeout)
	if err != nil {
		slog.Error("Unable to create page fetcher", "error", err)
		os.Exit(1)
	}

	gate := sysmem.NewMonitor(cfg.MemoryThresholdPercent, cfg.MemoryCheckInterval)
	dispatcher := usecase.NewDispatcher(fetcher, gate, cfg.MaxConcurrency)

	llm := anthropic.New(anthropic.Config{
		APIKey:              cfg.AnthropicAPIKey,
		Model:               cfg.LLMModel,
		Temperature:         cfg.LLMTemperature,
		MaxTokens:           cfg.LLMMaxTokens,
		ChunkTokenThreshold: cfg.ChunkTokenThreshold,
		OverlapRate:         cfg.ChunkOverlapRate,
	})

	writer := usecase.NewStoreWriter(chunkStore, newsStore, cfg.ChunkSize)
	ingester := usecase.NewIngestUseCase(dispatcher, llm, writer, visited, cfg.BaseURL, cfg.VisitedTTL)

	var reporter usecase.Reporter
	if chunkStore != nil {
		reporter = usecase.NewReportUseCase(chunkStore, llm)
	}

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(ingester, reporter, newsStore)
	httpRouter := router.New(apiHandler)

	server := &http.Server{
		Addr:        ":" + cfg.ServerPort,
		Handler:     httpRouter,
		ReadTimeout: 5 * time.Second,
		// Report generation waits on an LLM round trip; give writes room.
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
		os.Exit(1)
	}
}
