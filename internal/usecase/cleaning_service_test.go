package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pakbuy/backend/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// panickingCache fails every lookup with a panic
type panickingCache struct{ *MockTitleCache }

func (p *panickingCache) Get(ctx context.Context, key string) (string, error) {
	panic("cache exploded")
}

func newTestService(completer *MockCompleter, extractor domain.TitleExtractor) *CleaningService {
	var aiCleaner *AICleaner
	if completer != nil {
		aiCleaner = newTestAICleaner(completer, NewMockTitleCache())
	}
	return NewCleaningService(aiCleaner, extractor, CleaningServiceConfig{
		DefaultBudget:    time.Second,
		BatchConcurrency: 2,
	}, zerolog.Nop())
}

func TestNewCleaningService_Defaults(t *testing.T) {
	s := NewCleaningService(nil, NewMockExtractor(), CleaningServiceConfig{}, zerolog.Nop())

	assert.Equal(t, DefaultAITimeout, s.DefaultBudget())
	assert.Equal(t, 4, s.batchConcurrency)
}

func TestCleaningService_Clean(t *testing.T) {
	ctx := context.Background()
	title := "Samsung Galaxy A15 8GB/256GB PTA Approved Official Warranty Fast Shipping"

	t.Run("AI success", func(t *testing.T) {
		s := newTestService(NewMockCompleter("Samsung Galaxy A15 8GB 256GB"), NewMockExtractor())

		result := s.Clean(ctx, title, 0)

		assert.Equal(t, title, result.Original)
		assert.Equal(t, "Samsung Galaxy A15 8GB 256GB", result.Cleaned)
		assert.Equal(t, domain.MethodAI, result.Method)
		assert.Equal(t, domain.ConfidenceAI, result.Confidence)
		assert.Empty(t, result.Error)
	})

	t.Run("AI disabled uses regex", func(t *testing.T) {
		extractor := NewMockExtractor()
		s := newTestService(nil, extractor)

		result := s.Clean(ctx, title, 0)

		assert.Equal(t, "regex:"+title, result.Cleaned)
		assert.Equal(t, domain.MethodRegex, result.Method)
		assert.Equal(t, domain.ConfidenceRegex, result.Confidence)
		assert.Equal(t, int32(1), extractor.calls.Load())
	})

	t.Run("AI failure uses regex", func(t *testing.T) {
		completer := NewMockCompleter("")
		completer.err = errors.New("HTTP 503")
		s := newTestService(completer, NewMockExtractor())

		result := s.Clean(ctx, title, 0)

		assert.Equal(t, domain.MethodRegex, result.Method)
		assert.Equal(t, "regex:"+title, result.Cleaned)
	})

	t.Run("AI slower than budget uses regex", func(t *testing.T) {
		completer := NewMockCompleter("late")
		completer.block = true
		completer.ignoreContext = true
		defer close(completer.release)
		s := newTestService(completer, NewMockExtractor())

		start := time.Now()
		result := s.Clean(ctx, title, 50*time.Millisecond)

		assert.Equal(t, domain.MethodRegex, result.Method)
		assert.Equal(t, domain.ConfidenceRegex, result.Confidence)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("no AI budget skips the completer", func(t *testing.T) {
		completer := NewMockCompleter("Samsung Galaxy A15 8GB 256GB")
		s := newTestService(completer, NewMockExtractor())

		result := s.Clean(ctx, title, domain.NoAIBudget)

		assert.Equal(t, domain.MethodRegex, result.Method)
		assert.Equal(t, "regex:"+title, result.Cleaned)
		assert.Equal(t, int32(0), completer.calls.Load())
	})

	t.Run("extractor panic returns original title", func(t *testing.T) {
		extractor := NewMockExtractor()
		extractor.panicOn[title] = true
		s := newTestService(nil, extractor)

		result := s.Clean(ctx, title, 0)

		assert.Equal(t, title, result.Cleaned)
		assert.Equal(t, domain.MethodNone, result.Method)
		assert.Equal(t, domain.ConfidenceFallback, result.Confidence)
		assert.Contains(t, result.Error, "extractor exploded")
	})

	t.Run("AI pipeline panic falls back to regex", func(t *testing.T) {
		cache := &panickingCache{MockTitleCache: NewMockTitleCache()}
		aiCleaner := NewAICleaner(NewAIClient(NewMockCompleter("x"), time.Second, zerolog.Nop()), cache, zerolog.Nop())
		s := NewCleaningService(aiCleaner, NewMockExtractor(), CleaningServiceConfig{}, zerolog.Nop())

		result := s.Clean(ctx, title, 0)

		assert.Equal(t, domain.MethodRegex, result.Method)
		assert.Equal(t, "regex:"+title, result.Cleaned)
	})
}

func TestCleaningService_Clean_Total(t *testing.T) {
	s := newTestService(nil, NewPatternExtractor(zerolog.Nop(), false))

	inputs := []string{"", "   ", "سام سنگ", strings.Repeat("x", 10000), "PTA Approved"}
	for _, in := range inputs {
		result := s.Clean(context.Background(), in, 0)
		assert.Equal(t, in, result.Original)
		assert.Contains(t, []domain.Method{domain.MethodAI, domain.MethodRegex, domain.MethodNone}, result.Method)
	}

	result := s.Clean(context.Background(), "PTA Approved", 0)
	assert.Equal(t, "", result.Cleaned)
	assert.Equal(t, domain.MethodRegex, result.Method)
}

func TestCleaningService_CleanBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps order and length", func(t *testing.T) {
		s := newTestService(nil, NewMockExtractor())
		titles := []string{"a", "b", "c", "d", "e"}

		results := s.CleanBatch(ctx, titles)

		require.Len(t, results, len(titles))
		for i, title := range titles {
			assert.Equal(t, title, results[i].Original)
			assert.Equal(t, "regex:"+title, results[i].Cleaned)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		s := newTestService(nil, NewMockExtractor())
		assert.Empty(t, s.CleanBatch(ctx, nil))
	})

	t.Run("AI failure on one item falls back for that item only", func(t *testing.T) {
		completer := NewMockCompleter("AI cleaned")
		cache := NewMockTitleCache()
		cache.data["second"] = "cached second"
		aiCleaner := newTestAICleaner(completer, cache)
		extractor := NewMockExtractor()
		s := NewCleaningService(aiCleaner, extractor, CleaningServiceConfig{BatchConcurrency: 1}, zerolog.Nop())

		// fail every provider call from now on; "second" is served from cache
		completer.err = errors.New("HTTP 500")
		results := s.CleanBatch(ctx, []string{"first", "second", "third"})

		require.Len(t, results, 3)
		assert.Equal(t, "regex:first", results[0].Cleaned)
		assert.Equal(t, "cached second", results[1].Cleaned)
		assert.Equal(t, "regex:third", results[2].Cleaned)
	})

	t.Run("extractor panic on one item returns that title", func(t *testing.T) {
		extractor := NewMockExtractor()
		extractor.panicOn["bad"] = true
		s := newTestService(nil, extractor)

		results := s.CleanBatch(ctx, []string{"good", "bad", "fine"})

		assert.Equal(t, []domain.BatchItem{
			{Original: "good", Cleaned: "regex:good"},
			{Original: "bad", Cleaned: "bad"},
			{Original: "fine", Cleaned: "regex:fine"},
		}, results)
	})

	t.Run("item equals extractor output on AI failure", func(t *testing.T) {
		completer := NewMockCompleter("")
		completer.err = errors.New("provider down")
		extractor := NewPatternExtractor(zerolog.Nop(), false)
		s := newTestService(completer, extractor)

		title := "HP Pavilion Gaming Laptop i5 11th Gen 8GB RAM 512GB SSD Official Warranty"
		results := s.CleanBatch(ctx, []string{"x", title})

		assert.Equal(t, extractor.CleanWithPatterns(title), results[1].Cleaned)
	})
}

func TestCleaningService_Health(t *testing.T) {
	t.Run("AI disabled", func(t *testing.T) {
		s := newTestService(nil, NewMockExtractor())
		assert.Equal(t, domain.HealthStatus{}, s.Health())
	})

	t.Run("reports cache counters", func(t *testing.T) {
		s := newTestService(NewMockCompleter("cleaned"), NewMockExtractor())
		s.Clean(context.Background(), "t", 0)
		s.Clean(context.Background(), "t", 0)

		health := s.Health()
		assert.True(t, health.AIAvailable)
		assert.Equal(t, 1, health.CacheSize)
		assert.Equal(t, int64(1), health.CacheHits)
		assert.Equal(t, int64(1), health.CacheMisses)
	})
}

func TestCleaningService_SelfTest(t *testing.T) {
	ctx := context.Background()

	t.Run("AI unavailable", func(t *testing.T) {
		s := newTestService(nil, NewMockExtractor())

		results := s.SelfTest(ctx)

		require.Len(t, results, len(SampleTitles))
		for i, r := range results {
			assert.Equal(t, SampleTitles[i], r.Original)
			assert.Equal(t, aiUnavailableText, r.AICleaned)
			assert.Equal(t, "regex:"+SampleTitles[i], r.RegexCleaned)
		}
	})

	t.Run("AI failure per sample", func(t *testing.T) {
		completer := NewMockCompleter("")
		completer.err = errors.New("boom")
		s := newTestService(completer, NewMockExtractor())

		for _, r := range s.SelfTest(ctx) {
			assert.Equal(t, aiFailedText, r.AICleaned)
		}
		assert.Equal(t, len(SampleTitles), completer.Calls())
	})

	t.Run("AI bypasses cache", func(t *testing.T) {
		completer := NewMockCompleter("cleaned")
		s := newTestService(completer, NewMockExtractor())

		s.SelfTest(ctx)
		s.SelfTest(ctx)

		assert.Equal(t, 2*len(SampleTitles), completer.Calls())
		assert.Equal(t, 0, s.Health().CacheSize)
	})
}
