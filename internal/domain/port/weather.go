package port

import (
	"context"

	"drip-backend/internal/domain/entity"
)

// WeatherProvider источник текущей погоды
type WeatherProvider interface {
	// Current возвращает погоду в точке (lat, lon)
	Current(ctx context.Context, lat, lon float64) (*entity.Weather, error)
}
