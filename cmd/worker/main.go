package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/ascleon/ascleon-backend/internal/config"
	"github.com/ascleon/ascleon-backend/internal/database"
	"github.com/ascleon/ascleon-backend/internal/document"
	"github.com/ascleon/ascleon-backend/internal/llm"
	"github.com/ascleon/ascleon-backend/internal/queue"
	"github.com/ascleon/ascleon-backend/internal/queue/workers"
	"github.com/ascleon/ascleon-backend/internal/rag"
	"github.com/ascleon/ascleon-backend/internal/storage"
	"github.com/ascleon/ascleon-backend/internal/vectorstore"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	gemini, err := llm.NewGeminiClient(ctx, cfg.Gemini)
	if err != nil {
		slog.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}

	store := storage.NewSupabaseStorage(cfg.Storage.SupabaseURL, cfg.Storage.ServiceKey, cfg.Storage.Bucket)
	docSvc := document.NewService(db, store)
	extractor := document.NewExtractor(gemini)
	vs := vectorstore.NewPgStore(db)
	ingestor := rag.NewIngestor(extractor, gemini, vs, docSvc, cfg.RAG.ChunkSize)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()

	ingestWorker := workers.NewIngestWorker(docSvc, ingestor)
	mux.HandleFunc(queue.TypeDocumentIngest, ingestWorker.ProcessTask)

	slog.Info("starting worker", "concurrency", 5)
	if err := srv.Run(mux); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
