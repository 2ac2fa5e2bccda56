package rest

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/render"

	"drip-backend/internal/domain/entity"
)

// TryOner примеряет одежду на фото
type TryOner interface {
	TryOn(ctx context.Context, userImage, clothingImage []byte) (*entity.TryOnResult, error)
}

// WeatherAnalyzer отдаёт погоду с рекомендацией
type WeatherAnalyzer interface {
	Analyze(ctx context.Context, lat, lon float64) (*entity.Weather, error)
}

// OutfitSuggester подбирает образ
type OutfitSuggester interface {
	Suggest(ctx context.Context, in entity.WeatherInput, style string) *entity.OutfitSuggestion
}

const apiVersion = "1.0.0"

type Handler struct {
	tryOn          TryOner
	weather        WeatherAnalyzer
	outfit         OutfitSuggester
	maxUploadBytes int64
}

func NewHandler(tryOn TryOner, weather WeatherAnalyzer, outfit OutfitSuggester, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 20 << 20
	}
	return &Handler{
		tryOn:          tryOn,
		weather:        weather,
		outfit:         outfit,
		maxUploadBytes: maxUploadBytes,
	}
}

// Root GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"message": "Drip AI Backend is LIVE!",
		"status":  "success",
	})
}

// TestConnection GET /test-connection
func (h *Handler) TestConnection(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"status":  "success",
		"message": "Backend is fully operational!",
		"version": apiVersion,
	})
}

// Health GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

type tryOnResponse struct {
	Success           bool                 `json:"success"`
	ID                string               `json:"id"`
	TryOnImage        string               `json:"try_on_image"`
	Message           string               `json:"message"`
	Placement         entity.PlacementRect `json:"placement"`
	Width             int                  `json:"width"`
	Height            int                  `json:"height"`
	UserImageSize     int                  `json:"user_image_size"`
	ClothingImageSize int                  `json:"clothing_image_size"`
}

// VirtualTryOn POST /virtual-try-on, multipart с полями user_image и clothing_image
func (h *Handler) VirtualTryOn(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		respondError(w, r, badRequest("Failed to parse form"))
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	userData, err := readFormFile(r, "user_image")
	if err != nil {
		respondError(w, r, err)
		return
	}
	clothingData, err := readFormFile(r, "clothing_image")
	if err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.tryOn.TryOn(r.Context(), userData, clothingData)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, tryOnResponse{
		Success:           true,
		ID:                result.ID,
		TryOnImage:        base64.StdEncoding.EncodeToString(result.Image),
		Message:           "Virtual try-on completed",
		Placement:         result.Placement,
		Width:             result.Width,
		Height:            result.Height,
		UserImageSize:     len(userData),
		ClothingImageSize: len(clothingData),
	})
}

// AnalyzeWeather GET /analyze-weather?lat=..&lon=..
func (h *Handler) AnalyzeWeather(w http.ResponseWriter, r *http.Request) {
	lat, err := queryFloat(r, "lat")
	if err != nil {
		respondError(w, r, err)
		return
	}
	lon, err := queryFloat(r, "lon")
	if err != nil {
		respondError(w, r, err)
		return
	}

	weather, err := h.weather.Analyze(r.Context(), lat, lon)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, weather)
}

// SuggestOutfit POST /suggest-outfit?style=casual, в теле данные о погоде
func (h *Handler) SuggestOutfit(w http.ResponseWriter, r *http.Request) {
	var in entity.WeatherInput
	if err := render.DecodeJSON(r.Body, &in); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, r, badRequest("bad json"))
		return
	}

	render.JSON(w, r, h.outfit.Suggest(r.Context(), in, r.URL.Query().Get("style")))
}

func readFormFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, badRequest(fmt.Sprintf("No %s uploaded", field))
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if len(data) == 0 {
		return nil, badRequest(fmt.Sprintf("Empty %s", field))
	}
	return data, nil
}

func queryFloat(r *http.Request, key string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, badRequest(fmt.Sprintf("missing query parameter %s", key))
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, badRequest(fmt.Sprintf("invalid query parameter %s", key))
	}
	return v, nil
}
