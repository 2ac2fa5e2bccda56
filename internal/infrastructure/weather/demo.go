package weather

import (
	"context"

	"drip-backend/internal/domain/entity"
	"drip-backend/internal/domain/port"
)

// DemoProvider отдаёт фиксированную погоду, когда ключ API не задан
type DemoProvider struct{}

// Current всегда возвращает ясные +22.5 в демо-городе
func (DemoProvider) Current(ctx context.Context, lat, lon float64) (*entity.Weather, error) {
	return &entity.Weather{
		Temperature: 22.5,
		Condition:   "Clear",
		City:        "Demo City",
	}, nil
}

var _ port.WeatherProvider = DemoProvider{}
