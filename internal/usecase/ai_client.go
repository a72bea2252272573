package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pakbuy/backend/internal/domain"
	"github.com/rs/zerolog"
)

// DefaultAITimeout is the hard deadline for a single completion
const DefaultAITimeout = 3 * time.Second

// minSelfTestTimeout gives the startup probe room for a cold connection
const minSelfTestTimeout = 10 * time.Second

var (
	codeFencePattern    = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*|\\s*```$")
	outputLabelPattern  = regexp.MustCompile(`(?i)^(?:output|cleaned(?: title)?)\s*:\s*`)
	surroundingQuoteSet = "\"'`“”‘’"
)

// AIClient wraps the external text-completion capability with a hard
// deadline, response sanitation and a process-wide enabled flag.
type AIClient struct {
	completer domain.TextCompleter
	timeout   time.Duration
	enabled   atomic.Bool
	logger    zerolog.Logger
}

// NewAIClient creates a client; it starts enabled when a completer is given
func NewAIClient(completer domain.TextCompleter, timeout time.Duration, logger zerolog.Logger) *AIClient {
	if timeout <= 0 {
		timeout = DefaultAITimeout
	}
	c := &AIClient{
		completer: completer,
		timeout:   timeout,
		logger:    logger.With().Str("component", "ai_client").Logger(),
	}
	c.enabled.Store(completer != nil)
	return c
}

// Enabled reports whether AI cleaning is available for this process
func (c *AIClient) Enabled() bool {
	return c != nil && c.enabled.Load()
}

// Timeout returns the default completion deadline
func (c *AIClient) Timeout() time.Duration {
	return c.timeout
}

// Disable turns the capability off for the rest of the process lifetime
func (c *AIClient) Disable(reason error) {
	if c.enabled.Swap(false) {
		c.logger.Warn().Err(reason).Msg("AI cleaning disabled, regex fallback active")
	}
}

// SelfTest probes the provider once. On failure the client is disabled
// and never re-enabled.
func (c *AIClient) SelfTest(ctx context.Context) error {
	if !c.Enabled() {
		return domain.ErrCapabilityDisabled
	}

	timeout := c.timeout
	if timeout < minSelfTestTimeout {
		timeout = minSelfTestTimeout
	}

	if _, err := c.Complete(ctx, selfTestPrompt, timeout); err != nil {
		c.Disable(err)
		return err
	}

	c.logger.Info().Msg("AI provider connected")
	return nil
}

type completion struct {
	text string
	err  error
}

// Complete sends prompt to the provider and waits at most timeout for the answer.
// The provider call runs on its own goroutine; when the deadline fires first the
// call is abandoned and ErrTimeout returned. The provider receives a context with
// the same deadline, so transports that honour it stop early.
func (c *AIClient) Complete(ctx context.Context, prompt string, timeout time.Duration) (string, error) {
	if !c.Enabled() {
		return "", domain.ErrCapabilityDisabled
	}
	if timeout <= 0 {
		timeout = c.timeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan completion, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- completion{err: fmt.Errorf("%w: provider panic: %v", domain.ErrProviderError, r)}
			}
		}()
		text, err := c.completer.Complete(callCtx, prompt)
		done <- completion{text: text, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		if res.err != nil {
			return "", classifyProviderError(res.err)
		}
		cleaned := sanitizeCompletion(res.text)
		if cleaned == "" {
			return "", fmt.Errorf("%w: empty completion", domain.ErrProviderError)
		}
		return cleaned, nil
	case <-timer.C:
		c.logger.Warn().Dur("timeout", timeout).Msg("AI timeout exceeded")
		return "", fmt.Errorf("%w: no response within %s", domain.ErrTimeout, timeout)
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", domain.ErrTimeout, ctx.Err())
	}
}

// classifyProviderError maps provider failures onto the timeout / provider taxonomy
func classifyProviderError(err error) error {
	switch {
	case errors.Is(err, domain.ErrTimeout), errors.Is(err, domain.ErrProviderError):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrProviderError, err)
	}
}

// sanitizeCompletion keeps the first non-empty line of a completion and strips
// code fences, an "Output:" label and surrounding quotes.
func sanitizeCompletion(text string) string {
	text = strings.TrimSpace(codeFencePattern.ReplaceAllString(strings.TrimSpace(text), ""))

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = outputLabelPattern.ReplaceAllString(line, "")
		line = strings.TrimSpace(strings.Trim(line, surroundingQuoteSet))
		if line != "" {
			return line
		}
	}
	return ""
}
