package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"drip-backend/internal/domain/entity"
	"drip-backend/internal/domain/port"
)

// RemotePoseDetector отправляет кадр во внешний сервис позы (MediaPipe)
// и разбирает ответ с нормализованными точками.
type RemotePoseDetector struct {
	inferenceURL  string
	codec         port.ImageCodec
	client        *http.Client
	MinVisibility float64
}

// NewRemotePoseDetector создаёт детектор для сервиса по адресу inferenceURL.
func NewRemotePoseDetector(inferenceURL string, codec port.ImageCodec, timeout time.Duration) *RemotePoseDetector {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RemotePoseDetector{
		inferenceURL: strings.TrimRight(inferenceURL, "/"),
		codec:        codec,
		client:       &http.Client{Timeout: timeout},
	}
}

type remoteLandmark struct {
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Visibility *float64 `json:"visibility"`
}

type remotePoseResponse struct {
	Landmarks map[string]remoteLandmark `json:"landmarks"`
}

// Detect выполняет inference через внешний сервис
func (d *RemotePoseDetector) Detect(ctx context.Context, img image.Image) (entity.Pose, error) {
	imageData, err := d.codec.Encode(img, entity.FormatJPEG)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}

	// Создаём multipart запрос
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "frame.jpg")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(imageData)); err != nil {
		return nil, fmt.Errorf("copy image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.inferenceURL+"/pose", body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnprocessableEntity {
		return nil, entity.ErrNoBodyDetected
	}
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("pose service %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var out remotePoseResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	pose := make(entity.Pose, len(out.Landmarks))
	for name, lm := range out.Landmarks {
		vis := 1.0
		if lm.Visibility != nil {
			vis = *lm.Visibility
		}
		if vis < d.MinVisibility {
			continue
		}
		pose[entity.PartID(strings.ToUpper(name))] = entity.Landmark{X: lm.X, Y: lm.Y, Visibility: vis}
	}
	if len(pose) == 0 {
		return nil, entity.ErrNoBodyDetected
	}
	return pose, nil
}

// CheckHealth проверяет доступность сервиса позы
func (d *RemotePoseDetector) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.inferenceURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pose service unhealthy: %d", resp.StatusCode)
	}
	return nil
}

var _ port.PoseDetector = (*RemotePoseDetector)(nil)
