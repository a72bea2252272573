package domain

import "context"

// TitleCache defines the interface for memoizing AI-cleaned titles.
// Keys are the literal title string; no normalization is applied.
type TitleCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Stats() CacheStats
}

// TextCompleter is the external text-generation capability.
// Implementations should honour ctx cancellation where their transport allows it.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// TitleExtractor is a deterministic title cleaner that never fails
type TitleExtractor interface {
	CleanWithPatterns(title string) string
}
