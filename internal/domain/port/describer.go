package port

import (
	"context"

	"drip-backend/internal/domain/entity"
)

// OutfitDescriber интерфейс описателя образа
type OutfitDescriber interface {
	// Describe генерирует развёрнутый совет по одежде для погоды и стиля
	Describe(ctx context.Context, weather entity.Weather, style string) (string, error)
}
