package entity

import "errors"

var (
	// ErrMissingLandmark нет обязательной точки скелета (плеча).
	ErrMissingLandmark = errors.New("missing landmark")
	// ErrOutOfBounds прямоугольник наложения целиком вне кадра.
	ErrOutOfBounds = errors.New("placement out of bounds")
	// ErrDecodeFailure не удалось декодировать изображение.
	ErrDecodeFailure = errors.New("failed to decode image")
	// ErrNoBodyDetected детектор не нашёл человека на фото.
	ErrNoBodyDetected = errors.New("no body detected")
	// ErrInvalidCoordinates широта или долгота вне допустимого диапазона.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	// ErrWeatherUnavailable внешний погодный сервис не ответил.
	ErrWeatherUnavailable = errors.New("weather service unavailable")
)
