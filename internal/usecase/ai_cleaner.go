package usecase

import (
	"context"
	"fmt"

	"github.com/pakbuy/backend/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// AICleaner memoizes successful AI cleanings by exact title
type AICleaner struct {
	client *AIClient
	cache  domain.TitleCache
	group  singleflight.Group
	logger zerolog.Logger
}

// NewAICleaner creates a memoizing cleaner over client
func NewAICleaner(client *AIClient, cache domain.TitleCache, logger zerolog.Logger) *AICleaner {
	return &AICleaner{
		client: client,
		cache:  cache,
		logger: logger.With().Str("component", "ai_cleaner").Logger(),
	}
}

// Enabled reports whether the underlying AI capability is available
func (a *AICleaner) Enabled() bool {
	return a != nil && a.client.Enabled()
}

// GetOrCompute returns the cached AI cleaning of title or asks the provider.
// Only successful completions are stored. Concurrent misses for the same title
// share one provider call, which runs under the client timeout regardless of
// the caller; each caller stops waiting when its own ctx is done.
func (a *AICleaner) GetOrCompute(ctx context.Context, title string) (string, error) {
	if !a.Enabled() {
		return "", domain.ErrCapabilityDisabled
	}

	if cached, err := a.cache.Get(ctx, title); err == nil {
		return cached, nil
	}

	detached := context.WithoutCancel(ctx)
	ch := a.group.DoChan(title, func() (interface{}, error) {
		cleaned, err := a.client.Complete(detached, buildCleaningPrompt(title), 0)
		if err != nil {
			return "", err
		}
		if err := a.cache.Set(detached, title, cleaned); err != nil {
			a.logger.Warn().Err(err).Msg("failed to cache AI result")
		}
		a.logger.Debug().Str("title", truncateTitle(title)).Str("cleaned", cleaned).Msg("AI cleaned")
		return cleaned, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", domain.ErrTimeout, ctx.Err())
	}
}

// CleanUncached asks the provider directly, bypassing the cache
func (a *AICleaner) CleanUncached(ctx context.Context, title string) (string, error) {
	if !a.Enabled() {
		return "", domain.ErrCapabilityDisabled
	}
	return a.client.Complete(ctx, buildCleaningPrompt(title), 0)
}

// Stats returns the cache counters
func (a *AICleaner) Stats() domain.CacheStats {
	if a == nil {
		return domain.CacheStats{}
	}
	return a.cache.Stats()
}

// truncateTitle shortens a title for log lines
func truncateTitle(title string) string {
	const maxLen = 60
	runes := []rune(title)
	if len(runes) <= maxLen {
		return title
	}
	return string(runes[:maxLen]) + "..."
}
