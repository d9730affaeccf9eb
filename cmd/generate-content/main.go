package main

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ducroq/sanderveen.art/internal/config"
	"github.com/ducroq/sanderveen.art/internal/content"
	"github.com/ducroq/sanderveen.art/internal/manifest"
	"github.com/ducroq/sanderveen.art/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	paintings, err := manifest.Read(cfg.Output.ManifestPath)
	if err != nil {
		if errors.Is(err, manifest.ErrManifestMissing) {
			logger.Error("No manifest found, run the scrape first", "path", cfg.Output.ManifestPath, "hint", "go run ./cmd/scrape")
			os.Exit(1)
		}
		logger.Error("Failed to load manifest", "error", err)
		os.Exit(1)
	}

	logger.Info("Loaded paintings from manifest", "count", len(paintings))

	generator := content.NewGenerator(cfg.Content, logger)
	written, err := generator.Generate(paintings)
	if err != nil {
		logger.Error("Content generation failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Content generation completed", "painting_files", written, "index_files", 2)
}
