// Package app assembles the cleaning pipeline from configuration.
package app

import (
	"context"
	"strings"

	"github.com/pakbuy/backend/config"
	"github.com/pakbuy/backend/internal/domain"
	"github.com/pakbuy/backend/internal/infrastructure/cache"
	"github.com/pakbuy/backend/internal/infrastructure/gemini"
	"github.com/pakbuy/backend/internal/usecase"
	"github.com/rs/zerolog"
)

// Options adjust wiring for a particular entry point
type Options struct {
	// RegexOnly skips the AI provider entirely
	RegexOnly bool
	// Completer replaces the Gemini client, mainly for tests
	Completer domain.TextCompleter
}

// Components are the long-lived objects shared by the HTTP server and the CLI
type Components struct {
	Cache    *cache.MemoryCache
	AIClient *usecase.AIClient
	Cleaner  *usecase.CleaningService
}

// Build wires cache, AI client and cleaner. When the AI is configured and
// self_test is on, the provider is probed once; a failed probe leaves the
// service running in regex-only mode.
func Build(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts Options) *Components {
	memoryCache := cache.NewMemoryCache(cfg.Cache.Capacity)

	debug := isDebugLevel(cfg.Log.Level)
	extractor := usecase.NewPatternExtractor(logger, debug)

	completer := opts.Completer
	switch {
	case opts.RegexOnly:
		completer = nil
		logger.Info().Msg("regex-only mode, AI cleaning off")
	case completer != nil:
	case cfg.AI.Available():
		geminiClient, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:            cfg.AI.APIKey,
			BaseURL:           cfg.AI.BaseURL,
			Model:             cfg.AI.Model,
			RequestsPerMinute: cfg.RateLimit.AI,
		}, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Gemini client setup failed, using regex only")
			break
		}
		geminiClient.SetDebug(debug)
		completer = geminiClient
		logger.Info().Str("model", geminiClient.Model()).Msg("Gemini AI configured")
	case !cfg.AI.Enabled:
		logger.Info().Msg("AI cleaning disabled by configuration")
	default:
		logger.Warn().Msg("AI API key not configured (set PAKBUY_AI_API_KEY or GEMINI_API_KEY), using regex only")
	}

	aiClient := usecase.NewAIClient(completer, cfg.AI.Timeout, logger)
	if aiClient.Enabled() && cfg.AI.SelfTest {
		if err := aiClient.SelfTest(ctx); err != nil {
			logger.Warn().Err(err).Msg("AI self-test failed, using regex only")
		}
	}

	aiCleaner := usecase.NewAICleaner(aiClient, memoryCache, logger)
	cleaner := usecase.NewCleaningService(aiCleaner, extractor, usecase.CleaningServiceConfig{
		DefaultBudget:    cfg.Cleaning.DefaultBudget,
		BatchConcurrency: cfg.Cleaning.BatchConcurrency,
	}, logger)

	return &Components{
		Cache:    memoryCache,
		AIClient: aiClient,
		Cleaner:  cleaner,
	}
}

func isDebugLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "trace":
		return true
	}
	return false
}
