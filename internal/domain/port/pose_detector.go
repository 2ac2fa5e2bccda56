package port

import (
	"context"
	"image"

	"drip-backend/internal/domain/entity"
)

// PoseDetector интерфейс детектора позы
type PoseDetector interface {
	// Detect ищет скелет человека на изображении.
	// Если человека нет, возвращает entity.ErrNoBodyDetected.
	Detect(ctx context.Context, img image.Image) (entity.Pose, error)
}
