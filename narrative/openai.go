package narrative

import (
	"context"
	"fmt"
	"strings"

	"crisis-insights-backend/models"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider generates comparisons and reports through the OpenAI chat
// completion API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a provider on an already-constructed OpenAI client.
func NewOpenAIProvider(client *openai.Client, model string) *OpenAIProvider {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIProvider{client: client, model: model}
}

func (p *OpenAIProvider) generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := p.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: p.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: analystSystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: temperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Compare returns a short narrative contrasting two regions.
func (p *OpenAIProvider) Compare(ctx context.Context, a, b *models.CrisisRegion) (string, error) {
	return p.generate(ctx, buildComparePrompt(a, b), 0.5)
}

// Report returns the raw structured-report text for a region.
func (p *OpenAIProvider) Report(ctx context.Context, region *models.CrisisRegion) (string, error) {
	return p.generate(ctx, buildReportPrompt(region), 0.3)
}
