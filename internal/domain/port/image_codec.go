package port

import (
	"image"

	"drip-backend/internal/domain/entity"
)

// ImageCodec превращает байты загрузки в изображение и обратно
type ImageCodec interface {
	// Decode декодирует изображение, ошибки оборачивают entity.ErrDecodeFailure
	Decode(data []byte) (image.Image, error)

	// Encode кодирует изображение в заданный формат
	Encode(img image.Image, format entity.ImageFormat) ([]byte, error)
}
