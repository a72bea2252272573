package domain

import "time"

// Method identifies which strategy produced a cleaned title
type Method string

const (
	MethodAI    Method = "ai"
	MethodRegex Method = "regex"
	MethodNone  Method = "none"
)

// Static confidence scores attached to each strategy
const (
	ConfidenceAI       = 0.95
	ConfidenceRegex    = 0.75
	ConfidenceFallback = 0.5
)

// NoAIBudget asks the cleaning pipeline to skip the AI step entirely
const NoAIBudget time.Duration = -1

// CleaningResult is the outcome of cleaning a single product title
type CleaningResult struct {
	Original   string        `json:"original"`
	Cleaned    string        `json:"cleaned"`
	Method     Method        `json:"method"`
	Confidence float64       `json:"confidence"`
	Elapsed    time.Duration `json:"-"`
	Error      string        `json:"error,omitempty"` // Set only by the ultimate fallback
}

// BatchItem is a single entry of a batch cleaning response
type BatchItem struct {
	Original string `json:"original"`
	Cleaned  string `json:"cleaned"`
}

// HealthStatus reports AI availability and cache counters
type HealthStatus struct {
	AIAvailable bool  `json:"ai_available"`
	CacheSize   int   `json:"cache_size"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
}

// SelfTestResult compares both strategies on one sample title
type SelfTestResult struct {
	Original     string `json:"original"`
	AICleaned    string `json:"ai_cleaned"`
	RegexCleaned string `json:"regex_cleaned"`
}

// CacheStats holds observability counters for a title cache
type CacheStats struct {
	Size   int
	Hits   int64
	Misses int64
}
