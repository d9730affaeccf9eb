package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ducroq/sanderveen.art/internal/config"
	"github.com/ducroq/sanderveen.art/internal/crawler"
	"github.com/ducroq/sanderveen.art/internal/downloader"
	"github.com/ducroq/sanderveen.art/internal/fetcher"
	"github.com/ducroq/sanderveen.art/internal/parser"
	"github.com/ducroq/sanderveen.art/internal/ratelimit"
	"github.com/ducroq/sanderveen.art/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Starting sanderveen.art scrape", "base_url", cfg.Site.BaseURL, "categories", len(cfg.Site.Categories))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received")
		cancel()
	}()

	f := fetcher.NewHTTPFetcher(fetcher.Options{
		UserAgent:   cfg.Scraper.UserAgent,
		Timeout:     cfg.Scraper.RequestTimeout,
		MaxAttempts: cfg.Scraper.MaxAttempts,
		RetryDelay:  cfg.Scraper.RetryDelay,
	}, logger)

	d := downloader.NewImageDownloader(cfg.Scraper.UserAgent, cfg.Scraper.RequestTimeout, logger)
	limiter := ratelimit.NewIntervalLimiter(cfg.Scraper.PolitenessDelay)

	c := crawler.New(cfg, f, parser.NewSanderveenParser(), d, limiter, logger)

	if err := c.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Scrape interrupted, no manifest written")
			os.Exit(1)
		}
		logger.Error("Scrape failed", "error", err)
		os.Exit(1)
	}
}
