package narrative

import (
	"context"
	"fmt"
	"strings"

	"crisis-insights-backend/models"

	"github.com/google/generative-ai-go/genai"
)

const defaultGeminiModel = "gemini-1.5-pro-latest"

// GeminiProvider generates comparisons and reports through the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a provider on an already-constructed Gemini client.
func NewGeminiProvider(client *genai.Client, model string) *GeminiProvider {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{client: client, model: model}
}

func (p *GeminiProvider) generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(temperature)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(analystSystemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	var out strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				out.WriteString(string(text))
			}
		}
	}

	result := strings.TrimSpace(out.String())
	if result == "" {
		return "", fmt.Errorf("gemini returned no text candidates")
	}
	return result, nil
}

// Compare returns a short narrative contrasting two regions.
func (p *GeminiProvider) Compare(ctx context.Context, a, b *models.CrisisRegion) (string, error) {
	return p.generate(ctx, buildComparePrompt(a, b), 0.5)
}

// Report returns the raw structured-report text for a region.
func (p *GeminiProvider) Report(ctx context.Context, region *models.CrisisRegion) (string, error) {
	return p.generate(ctx, buildReportPrompt(region), 0.3)
}
