package rest

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"drip-backend/internal/domain/entity"
)

// requestError ошибка запроса с готовым текстом для клиента
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(msg string) error {
	return &requestError{status: http.StatusBadRequest, message: msg}
}

// statusFor переводит ошибку в код ответа и текст, не раскрывая подробностей.
func statusFor(err error) (int, string) {
	var re *requestError
	switch {
	case errors.As(err, &re):
		return re.status, re.message
	case errors.Is(err, entity.ErrNoBodyDetected), errors.Is(err, entity.ErrMissingLandmark):
		return http.StatusBadRequest, "No body detected"
	case errors.Is(err, entity.ErrDecodeFailure):
		return http.StatusBadRequest, "Invalid image"
	case errors.Is(err, entity.ErrInvalidCoordinates):
		return http.StatusBadRequest, "Invalid coordinates"
	case errors.Is(err, entity.ErrOutOfBounds):
		return http.StatusUnprocessableEntity, "Clothing does not fit the photo"
	case errors.Is(err, entity.ErrWeatherUnavailable):
		return http.StatusBadGateway, "Weather service unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] %s %s: %v", middleware.GetReqID(r.Context()), r.Method, r.URL.Path, err)
	}
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": msg})
}
