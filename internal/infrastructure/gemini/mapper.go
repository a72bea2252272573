package gemini

import (
	"fmt"
	"strings"

	"github.com/pakbuy/backend/internal/domain"
	"google.golang.org/genai"
)

// Generation settings for title cleaning: short, near-deterministic output
const (
	defaultTemperature     float32 = 0.1
	defaultMaxOutputTokens int32   = 64
)

func newGenerateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(defaultTemperature),
		MaxOutputTokens: defaultMaxOutputTokens,
	}
}

// extractText joins the text parts of the first candidate, skipping thoughts
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: empty response", domain.ErrProviderError)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", domain.ErrProviderError, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates in response", domain.ErrProviderError)
	}

	candidate := resp.Candidates[0]
	var b strings.Builder
	if candidate.Content != nil {
		for _, p := range candidate.Content.Parts {
			if p == nil || p.Thought {
				continue
			}
			b.WriteString(p.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty completion (finish reason %q)", domain.ErrProviderError, candidate.FinishReason)
	}
	return text, nil
}
