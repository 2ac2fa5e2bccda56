//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"
	"image"

	"drip-backend/internal/domain/entity"
)

var errNoGoCV = errors.New("gocv build tag is not enabled")

// OpenPoseDetector заглушка детектора позы (без OpenCV).
type OpenPoseDetector struct {
	InputSize     int
	MinConfidence float32
}

// NewOpenPoseDetector возвращает ошибку, если сборка без тега gocv.
func NewOpenPoseDetector(modelPath, configPath string) (*OpenPoseDetector, error) {
	_ = modelPath
	_ = configPath
	return nil, errNoGoCV
}

// Detect возвращает ошибку, если сборка без тега gocv.
func (d *OpenPoseDetector) Detect(ctx context.Context, img image.Image) (entity.Pose, error) {
	_ = ctx
	_ = img
	return nil, errNoGoCV
}

// Close ничего не делает.
func (d *OpenPoseDetector) Close() error {
	return nil
}
