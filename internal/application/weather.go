package app

import (
	"context"
	"errors"
	"fmt"
	"math"

	"drip-backend/internal/domain/entity"
	"drip-backend/internal/domain/port"
)

// WeatherService отдаёт погоду с рекомендацией по одежде.
type WeatherService struct {
	provider port.WeatherProvider
	rules    entity.OutfitRules
}

func NewWeatherService(provider port.WeatherProvider, rules entity.OutfitRules) *WeatherService {
	return &WeatherService{provider: provider, rules: rules}
}

// Analyze проверяет координаты, берёт погоду и дописывает рекомендацию.
func (s *WeatherService) Analyze(ctx context.Context, lat, lon float64) (*entity.Weather, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: lat=%v lon=%v", entity.ErrInvalidCoordinates, lat, lon)
	}
	if s.provider == nil {
		return nil, errors.New("weather provider is not configured")
	}

	w, err := s.provider.Current(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	if w.Recommendation == "" {
		w.Recommendation = s.rules.Band(w.Temperature).Recommendation
	}
	return w, nil
}
