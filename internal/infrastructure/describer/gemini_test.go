package describer

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/require"

	"drip-backend/internal/domain/entity"
)

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt(entity.Weather{Temperature: 12.34, Condition: "Rain", City: "Riga"}, "street")
	require.Contains(t, p, "Temperature: 12.3°C")
	require.Contains(t, p, "Condition: Rain")
	require.Contains(t, p, "City: Riga")
	require.Contains(t, p, "Style: street")

	p = buildPrompt(entity.Weather{Condition: "Clear"}, "casual")
	require.NotContains(t, p, "City:")
}

func TestFirstText(t *testing.T) {
	require.Empty(t, firstText(nil))
	require.Empty(t, firstText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(" Wear a coat. "), genai.Text("Take an umbrella.")}},
		}},
	}
	require.Equal(t, "Wear a coat. Take an umbrella.", firstText(resp))
}

func TestDescribe_NoKey(t *testing.T) {
	d := NewGeminiDescriber("", "")
	require.Equal(t, "gemini-2.5-flash", d.Model)

	_, err := d.Describe(context.Background(), entity.Weather{}, "casual")
	require.Error(t, err)
}
