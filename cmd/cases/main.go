package main

import (
	"flag"
	"fmt"
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
	base := flag.String("base", "baseline", "base prompt variant")
	misleading := flag.String("misleading", "misleading1", "variant for induced-hallucination cases")
	mitigate := flag.String("mitigate", "mitigate1", "variant for corrected-hallucination cases")
	limit := flag.Int("limit", 5, "examples to print per case")
	flag.Parse()

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

	model := cfg.LLM.Model
	store := record.NewStore(cfg.Output.ResultsDir)

	baseRecords, err := store.Load(model, *base)
	if err != nil {
		logger.Fatal("failed to load base collection", zap.String("prompt", *base), zap.Error(err))
	}
	misleadingRecords, err := store.Load(model, *misleading)
	if err != nil {
		logger.Fatal("failed to load misleading collection", zap.String("prompt", *misleading), zap.Error(err))
	}
	mitigateRecords, err := store.Load(model, *mitigate)
	if err != nil {
		logger.Fatal("failed to load mitigation collection", zap.String("prompt", *mitigate), zap.Error(err))
	}

	caseA, _ := eval.FindTransitions(baseRecords, misleadingRecords)
	_, caseB := eval.FindTransitions(baseRecords, mitigateRecords)

	printCases(fmt.Sprintf("CASE A: %s correct, %s hallucinated", *base, *misleading), caseA, *limit)
	printCases(fmt.Sprintf("CASE B: %s hallucinated, %s fixed it", *base, *mitigate), caseB, *limit)

	if err := os.MkdirAll(cfg.Output.EvalDir, 0o755); err != nil {
		logger.Fatal("failed to create eval output dir", zap.Error(err))
	}
	pathA := filepath.Join(cfg.Output.EvalDir, "typical_caseA_misleading.csv")
	if err := eval.WriteTransitionsCSV(pathA, caseA); err != nil {
		logger.Fatal("failed to write case A CSV", zap.Error(err))
	}
	pathB := filepath.Join(cfg.Output.EvalDir, "typical_caseB_mitigation.csv")
	if err := eval.WriteTransitionsCSV(pathB, caseB); err != nil {
		logger.Fatal("failed to write case B CSV", zap.Error(err))
	}
	logger.Info("saved typical cases",
		zap.String("case_a", pathA), zap.Int("case_a_count", len(caseA)),
		zap.String("case_b", pathB), zap.Int("case_b_count", len(caseB)))
}

func printCases(title string, cases []eval.Transition, limit int) {
	fmt.Println()
	fmt.Println("==============================")
	fmt.Println(title)
	fmt.Println("==============================")
	if len(cases) == 0 {
		fmt.Println("No example found.")
		return
	}
	for i, c := range cases {
		if i >= limit {
			break
		}
		fmt.Printf("%s/%s object=%q: %s -> %s\n",
			c.Foldername, c.Filename, c.Object, c.BaseAnswer, c.VariantAnswer)
	}
}
