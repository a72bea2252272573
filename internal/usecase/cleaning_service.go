package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pakbuy/backend/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Self-test placeholders for the AI column
const (
	aiUnavailableText = "AI not available"
	aiFailedText      = "AI failed"
)

// CleaningServiceConfig holds configuration for the cleaning service
type CleaningServiceConfig struct {
	DefaultBudget    time.Duration
	BatchConcurrency int
}

// CleaningService is the hybrid cleaner: AI first, pattern extractor as fallback.
// It never returns an error to its caller.
type CleaningService struct {
	aiCleaner        *AICleaner
	extractor        domain.TitleExtractor
	defaultBudget    time.Duration
	batchConcurrency int
	logger           zerolog.Logger
}

// NewCleaningService creates a new cleaning service with dependencies.
// A nil aiCleaner runs the service in regex-only mode.
func NewCleaningService(
	aiCleaner *AICleaner,
	extractor domain.TitleExtractor,
	config CleaningServiceConfig,
	logger zerolog.Logger,
) *CleaningService {
	budget := config.DefaultBudget
	if budget <= 0 {
		budget = DefaultAITimeout
	}

	concurrency := config.BatchConcurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	return &CleaningService{
		aiCleaner:        aiCleaner,
		extractor:        extractor,
		defaultBudget:    budget,
		batchConcurrency: concurrency,
		logger:           logger.With().Str("component", "cleaner").Logger(),
	}
}

// DefaultBudget returns the budget used when callers pass none
func (s *CleaningService) DefaultBudget() time.Duration {
	return s.defaultBudget
}

// Clean cleans a single title within budget. A zero budget uses the default;
// a negative one skips AI.
// Flow: AI (cached) -> pattern extractor -> original title
func (s *CleaningService) Clean(ctx context.Context, title string, budget time.Duration) (result domain.CleaningResult) {
	start := time.Now()
	if budget == 0 {
		budget = s.defaultBudget
	}

	defer func() {
		if r := recover(); r != nil {
			fault := fmt.Errorf("%w: %v", domain.ErrUnexpectedFault, r)
			s.logger.Error().Err(fault).Str("title", truncateTitle(title)).Msg("cleaning failed, returning original title")
			result = domain.CleaningResult{
				Original:   title,
				Cleaned:    title,
				Method:     domain.MethodNone,
				Confidence: domain.ConfidenceFallback,
				Elapsed:    time.Since(start),
				Error:      fault.Error(),
			}
		}
	}()

	if budget > 0 && s.aiCleaner.Enabled() {
		cleaned, err := s.tryAI(ctx, title, budget)
		elapsed := time.Since(start)

		switch {
		case err != nil:
			s.logger.Debug().Err(err).Str("title", truncateTitle(title)).Msg("AI failed, using regex")
		case elapsed > budget:
			s.logger.Warn().Dur("elapsed", elapsed).Dur("budget", budget).Msg("AI too slow, using regex")
		default:
			return domain.CleaningResult{
				Original:   title,
				Cleaned:    cleaned,
				Method:     domain.MethodAI,
				Confidence: domain.ConfidenceAI,
				Elapsed:    elapsed,
			}
		}
	}

	cleaned := s.extractor.CleanWithPatterns(title)
	return domain.CleaningResult{
		Original:   title,
		Cleaned:    cleaned,
		Method:     domain.MethodRegex,
		Confidence: domain.ConfidenceRegex,
		Elapsed:    time.Since(start),
	}
}

// tryAI runs the cached AI cleaner under budget. Panics become errors so the
// caller still falls back to the extractor.
func (s *CleaningService) tryAI(ctx context.Context, title string, budget time.Duration) (cleaned string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrUnexpectedFault, r)
		}
	}()

	aiCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	return s.aiCleaner.GetOrCompute(aiCtx, title)
}

// CleanBatch cleans each title independently. A failure on one title falls back
// to the extractor for that title only; results keep input order.
func (s *CleaningService) CleanBatch(ctx context.Context, titles []string) []domain.BatchItem {
	results := make([]domain.BatchItem, len(titles))

	var g errgroup.Group
	g.SetLimit(s.batchConcurrency)

	for i, title := range titles {
		g.Go(func() error {
			results[i] = domain.BatchItem{
				Original: title,
				Cleaned:  s.cleanBatchItem(ctx, title),
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *CleaningService) cleanBatchItem(ctx context.Context, title string) (cleaned string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn().Interface("panic", r).Str("title", truncateTitle(title)).Msg("batch item failed, using regex")
			cleaned = s.safeExtract(title)
		}
	}()

	if s.aiCleaner.Enabled() {
		if aiCleaned, err := s.tryAI(ctx, title, s.defaultBudget); err == nil && aiCleaned != "" {
			return aiCleaned
		}
	}
	return s.extractor.CleanWithPatterns(title)
}

// safeExtract runs the extractor and returns the title itself if it panics
func (s *CleaningService) safeExtract(title string) (cleaned string) {
	defer func() {
		if r := recover(); r != nil {
			cleaned = title
		}
	}()
	return s.extractor.CleanWithPatterns(title)
}

// Health reports AI availability and cache counters
func (s *CleaningService) Health() domain.HealthStatus {
	stats := s.aiCleaner.Stats()
	return domain.HealthStatus{
		AIAvailable: s.aiCleaner.Enabled(),
		CacheSize:   stats.Size,
		CacheHits:   stats.Hits,
		CacheMisses: stats.Misses,
	}
}

// SelfTest runs both strategies independently over SampleTitles
func (s *CleaningService) SelfTest(ctx context.Context) []domain.SelfTestResult {
	results := make([]domain.SelfTestResult, 0, len(SampleTitles))

	for _, title := range SampleTitles {
		aiCleaned := aiUnavailableText
		if s.aiCleaner.Enabled() {
			cleaned, err := s.aiCleaner.CleanUncached(ctx, title)
			if err != nil {
				aiCleaned = aiFailedText
			} else {
				aiCleaned = cleaned
			}
		}

		results = append(results, domain.SelfTestResult{
			Original:     title,
			AICleaned:    aiCleaned,
			RegexCleaned: s.safeExtract(title),
		})
	}

	return results
}
