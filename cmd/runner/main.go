package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agenthands/mirage/internal/config"
	"github.com/agenthands/mirage/internal/groundtruth"
	"github.com/agenthands/mirage/internal/llm"
	"github.com/agenthands/mirage/internal/prompts"
	"github.com/agenthands/mirage/internal/record"
	"github.com/agenthands/mirage/internal/retry"
	"github.com/agenthands/mirage/internal/runner"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.ApplyEnv()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.LLM.APIKey == "" {
		logger.Fatal("no API key configured (set llm.api_key or LLM_API_KEY / OPENAI_API_KEY)")
	}
	if !llm.Known(cfg.LLM.Model) {
		logger.Warn("model has no capability entry, guessing token parameters by family",
			zap.String("model", cfg.LLM.Model))
	}

	ctx := context.Background()

	entries, err := groundtruth.Load(cfg.Dataset.GroundTruth)
	if err != nil {
		logger.Fatal("failed to load ground truth", zap.Error(err))
	}

	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		logger.Fatal("failed to initialize vision client", zap.Error(err))
	}

	catalog := prompts.Default()
	catalog.Merge(cfg.PromptTemplates)

	dispatcher := runner.NewDispatcher(client, retry.New(cfg.Run.MaxAttempts, logger), catalog)
	store := record.NewStore(cfg.Output.ResultsDir)
	r := runner.New(dispatcher, store, entries, cfg.Dataset.ImageRoot, cfg.Dataset.TargetFolders, logger)

	start := time.Now()
	for _, variant := range cfg.Run.Prompts {
		if _, err := r.Run(ctx, variant); err != nil {
			logger.Fatal("run aborted",
				zap.String("prompt", variant),
				zap.Error(err))
		}
	}
	logger.Info("sweep complete",
		zap.Strings("prompts", cfg.Run.Prompts),
		zap.Duration("elapsed", time.Since(start)))
}
