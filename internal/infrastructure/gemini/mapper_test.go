package gemini

import (
	"testing"

	"github.com/pakbuy/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewGenerateConfig(t *testing.T) {
	cfg := newGenerateConfig()

	require.NotNil(t, cfg.Temperature)
	assert.Equal(t, defaultTemperature, *cfg.Temperature)
	assert.Equal(t, defaultMaxOutputTokens, cfg.MaxOutputTokens)
}

func candidate(parts ...*genai.Part) *genai.Candidate {
	return &genai.Candidate{
		Content:      &genai.Content{Role: genai.RoleModel, Parts: parts},
		FinishReason: genai.FinishReasonStop,
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr error
	}{
		{
			name: "single part",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				candidate(genai.NewPartFromText("HP Pavilion Gaming i5 11th Gen 8GB 512GB")),
			}},
			want: "HP Pavilion Gaming i5 11th Gen 8GB 512GB",
		},
		{
			name: "multiple parts are joined",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				candidate(genai.NewPartFromText("iPhone 13 "), genai.NewPartFromText("Pro Max 256GB")),
			}},
			want: "iPhone 13 Pro Max 256GB",
		},
		{
			name: "thought parts are skipped",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				candidate(&genai.Part{Text: "brand is Vivo", Thought: true}, genai.NewPartFromText("Vivo Y17s 4GB 128GB")),
			}},
			want: "Vivo Y17s 4GB 128GB",
		},
		{
			name:    "nil response",
			resp:    nil,
			wantErr: domain.ErrProviderError,
		},
		{
			name: "blocked prompt",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
			},
			wantErr: domain.ErrProviderError,
		},
		{
			name:    "no candidates",
			resp:    &genai.GenerateContentResponse{},
			wantErr: domain.ErrProviderError,
		},
		{
			name: "whitespace only",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				candidate(genai.NewPartFromText("  \n ")),
			}},
			wantErr: domain.ErrProviderError,
		},
		{
			name: "candidate without content",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{FinishReason: genai.FinishReasonMaxTokens},
			}},
			wantErr: domain.ErrProviderError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractText(tt.resp)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
