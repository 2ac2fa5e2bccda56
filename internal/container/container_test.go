package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"drip-backend/internal/domain/entity"
	"drip-backend/internal/infrastructure/storage"
	"drip-backend/internal/infrastructure/vision"
	"drip-backend/internal/infrastructure/weather"
)

func TestNew_WiresServices(t *testing.T) {
	c := New(Deps{
		UserRepo: storage.NewMemoryUserRepository(),
		Codec:    vision.NewStdCodec(90),
		Weather:  weather.DemoProvider{},
		Rules:    entity.DefaultOutfitRules(),
	})
	require.NotNil(t, c.UserService)
	require.NotNil(t, c.TryOnService)
	require.NotNil(t, c.SessionService)

	w, err := c.WeatherService.Analyze(context.Background(), 10, 10)
	require.NoError(t, err)
	require.Equal(t, "Perfect weather for light clothing", w.Recommendation)

	s := c.OutfitService.Suggest(context.Background(), entity.WeatherInput{Temperature: &w.Temperature}, "")
	require.Equal(t, "Warm weather: T-shirt and light clothing perfect - Style: casual - Condition: Clear", s.Suggestion)
}
