package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pakbuy/backend/internal/domain"
	"github.com/rs/zerolog"
)

const (
	serviceName    = "Pak Buy Pro AI Server"
	serviceVersion = "1.0.0"
)

// TitleCleaner is the cleaning pipeline used by the handlers
type TitleCleaner interface {
	Clean(ctx context.Context, title string, budget time.Duration) domain.CleaningResult
	CleanBatch(ctx context.Context, titles []string) []domain.BatchItem
	Health() domain.HealthStatus
	SelfTest(ctx context.Context) []domain.SelfTestResult
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	cleaner      TitleCleaner
	maxBatchSize int
	startedAt    time.Time
	logger       zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(cleaner TitleCleaner, maxBatchSize int, logger zerolog.Logger) *Handler {
	return &Handler{
		cleaner:      cleaner,
		maxBatchSize: maxBatchSize,
		startedAt:    time.Now(),
		logger:       logger.With().Str("component", "http").Logger(),
	}
}

type cleanTitleRequest struct {
	Title string `json:"title"`
	// Timeout is the AI budget in seconds
	Timeout *float64 `json:"timeout"`
}

type cleanTitleResponse struct {
	Success    bool          `json:"success"`
	Original   string        `json:"original"`
	Cleaned    string        `json:"cleaned"`
	Method     domain.Method `json:"method"`
	Confidence float64       `json:"confidence"`
	TimeMs     int64         `json:"time_ms"`
	Error      string        `json:"error,omitempty"`
}

type cleanBatchRequest struct {
	Titles []string `json:"titles"`
}

type cleanBatchResponse struct {
	Success bool               `json:"success"`
	Results []domain.BatchItem `json:"results"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Index describes the service and its endpoints
func (h *Handler) Index(c *gin.Context) {
	aiStatus := "disabled (fallback active)"
	if h.cleaner.Health().AIAvailable {
		aiStatus = "enabled"
	}

	c.JSON(http.StatusOK, gin.H{
		"service":   serviceName,
		"version":   serviceVersion,
		"status":    "running",
		"ai_status": aiStatus,
		"endpoints": gin.H{
			"/health":      "Health check",
			"/clean-title": "Clean single title (POST)",
			"/clean-batch": "Clean multiple titles (POST)",
			"/test":        "Test with sample data",
		},
	})
}

// HealthCheck returns AI availability and cache counters
func (h *Handler) HealthCheck(c *gin.Context) {
	health := h.cleaner.Health()

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"service":      serviceName,
		"version":      serviceVersion,
		"ai_available": health.AIAvailable,
		"cache_size":   health.CacheSize,
		"cache_hits":   health.CacheHits,
		"cache_misses": health.CacheMisses,
		"uptime":       time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// CleanTitle cleans one title: AI first, regex fallback
func (h *Handler) CleanTitle(c *gin.Context) {
	var req cleanTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "No title provided"})
		return
	}

	// absent timeout uses the default budget; zero or negative means no time for AI
	var budget time.Duration
	if req.Timeout != nil {
		budget = domain.NoAIBudget
		if *req.Timeout > 0 {
			budget = time.Duration(*req.Timeout * float64(time.Second))
		}
	}

	result := h.cleaner.Clean(c.Request.Context(), req.Title, budget)

	h.logger.Debug().
		Str("method", string(result.Method)).
		Dur("elapsed", result.Elapsed).
		Str("request_id", c.GetString(requestIDKey)).
		Msg("title cleaned")

	c.JSON(http.StatusOK, cleanTitleResponse{
		Success:    true,
		Original:   result.Original,
		Cleaned:    result.Cleaned,
		Method:     result.Method,
		Confidence: result.Confidence,
		TimeMs:     result.Elapsed.Milliseconds(),
		Error:      result.Error,
	})
}

// CleanBatch cleans several titles, keeping input order
func (h *Handler) CleanBatch(c *gin.Context) {
	var req cleanBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if h.maxBatchSize > 0 && len(req.Titles) > h.maxBatchSize {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("Too many titles: %d (max %d)", len(req.Titles), h.maxBatchSize),
		})
		return
	}

	results := h.cleaner.CleanBatch(c.Request.Context(), req.Titles)
	if results == nil {
		results = []domain.BatchItem{}
	}

	c.JSON(http.StatusOK, cleanBatchResponse{
		Success: true,
		Results: results,
	})
}

// Test runs both strategies on the built-in sample titles
func (h *Handler) Test(c *gin.Context) {
	results := h.cleaner.SelfTest(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"test_results": results,
		"ai_enabled":   h.cleaner.Health().AIAvailable,
	})
}
