package describer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"drip-backend/internal/domain/entity"
	"drip-backend/internal/domain/port"
)

const systemPrompt = `You are a friendly fashion assistant inside a virtual try-on app.
Given the current weather and the user's preferred style, suggest one concrete outfit
in two or three short sentences. Mention fabrics or layers when the weather calls for it.
Plain text only, no lists, no markdown.`

// GeminiDescriber описывает образ через Gemini
type GeminiDescriber struct {
	APIKey string
	Model  string
}

// NewGeminiDescriber создаёт описатель, модель по умолчанию gemini-2.5-flash
func NewGeminiDescriber(key, model string) *GeminiDescriber {
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiDescriber{APIKey: key, Model: model}
}

// Describe генерирует развёрнутый совет
func (d *GeminiDescriber) Describe(ctx context.Context, weather entity.Weather, style string) (string, error) {
	if d.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(d.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(strings.TrimSpace(d.Model))
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.SetTemperature(0.7)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(buildPrompt(weather, style)))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	return firstText(resp), nil
}

func buildPrompt(w entity.Weather, style string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Temperature: %.1f°C\n", w.Temperature)
	fmt.Fprintf(&b, "Condition: %s\n", w.Condition)
	if w.City != "" {
		fmt.Fprintf(&b, "City: %s\n", w.City)
	}
	fmt.Fprintf(&b, "Style: %s\n", style)
	return b.String()
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String())
}

var _ port.OutfitDescriber = (*GeminiDescriber)(nil)
