package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pakbuy/backend/internal/domain"
)

// MockCompleter is a mock implementation of domain.TextCompleter
type MockCompleter struct {
	response string
	err      error
	// block makes Complete wait until the context is done or release is closed
	block bool
	// ignoreContext makes a blocked call wait for release only
	ignoreContext bool
	release       chan struct{}
	panics        bool
	calls         atomic.Int32

	mu      sync.Mutex
	prompts []string
}

func NewMockCompleter(response string) *MockCompleter {
	return &MockCompleter{response: response, release: make(chan struct{})}
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.panics {
		panic("completer exploded")
	}
	if m.block && m.ignoreContext {
		<-m.release
	} else if m.block {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-m.release:
		}
	}
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *MockCompleter) Calls() int {
	return int(m.calls.Load())
}

// MockExtractor is a mock implementation of domain.TitleExtractor
type MockExtractor struct {
	panicOn map[string]bool
	calls   atomic.Int32
}

func NewMockExtractor() *MockExtractor {
	return &MockExtractor{panicOn: make(map[string]bool)}
}

func (m *MockExtractor) CleanWithPatterns(title string) string {
	m.calls.Add(1)
	if m.panicOn[title] {
		panic("extractor exploded")
	}
	return "regex:" + title
}

// MockTitleCache is a mock implementation of domain.TitleCache
type MockTitleCache struct {
	mu       sync.Mutex
	data     map[string]string
	setError error
	hits     int64
	misses   int64
}

func NewMockTitleCache() *MockTitleCache {
	return &MockTitleCache{data: make(map[string]string)}
}

func (m *MockTitleCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if value, ok := m.data[key]; ok {
		m.hits++
		return value, nil
	}
	m.misses++
	return "", domain.ErrCacheMiss
}

func (m *MockTitleCache) Set(ctx context.Context, key string, value string) error {
	if m.setError != nil {
		return m.setError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockTitleCache) Stats() domain.CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.CacheStats{Size: len(m.data), Hits: m.hits, Misses: m.misses}
}
