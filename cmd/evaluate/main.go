package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agenthands/mirage/internal/config"
	"github.com/agenthands/mirage/internal/eval"
	"github.com/agenthands/mirage/internal/record"
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

	store := record.NewStore(cfg.Output.ResultsDir)
	records, err := store.LoadAll()
	if err != nil {
		logger.Fatal("failed to load result collections", zap.Error(err))
	}
	logger.Info("loaded records", zap.Int("count", len(records)))

	if err := os.MkdirAll(cfg.Output.EvalDir, 0o755); err != nil {
		logger.Fatal("failed to create eval output dir", zap.Error(err))
	}

	tables := []struct {
		file  string
		rows  []eval.RateRow
		write func(string, []eval.RateRow) error
	}{
		{"overall_metrics.csv", eval.Overall(records), eval.WriteOverallCSV},
		{"object_level_metrics.csv", eval.ByObject(records), eval.WriteObjectCSV},
		{"folder_level_metrics.csv", eval.ByFolder(records), eval.WriteFolderCSV},
	}
	for _, t := range tables {
		path := filepath.Join(cfg.Output.EvalDir, t.file)
		if err := t.write(path, t.rows); err != nil {
			logger.Fatal("failed to write metrics table", zap.String("file", path), zap.Error(err))
		}
		logger.Info("wrote metrics table", zap.String("file", path), zap.Int("rows", len(t.rows)))
	}
}
