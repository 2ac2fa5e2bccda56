package app

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"drip-backend/internal/domain/entity"
	"drip-backend/internal/domain/overlay"
	"drip-backend/internal/domain/port"
)

// TryOnService собирает примерку: декодирование, поза, наложение, кодирование.
type TryOnService struct {
	codec    port.ImageCodec
	detector port.PoseDetector
	format   entity.ImageFormat
}

// NewTryOnService создаёт сервис примерки. Результат кодируется в JPEG.
func NewTryOnService(codec port.ImageCodec, detector port.PoseDetector) *TryOnService {
	return &TryOnService{
		codec:    codec,
		detector: detector,
		format:   entity.FormatJPEG,
	}
}

// TryOn кладёт одежду с clothingImage на человека с userImage.
func (s *TryOnService) TryOn(ctx context.Context, userImage, clothingImage []byte) (*entity.TryOnResult, error) {
	if s.codec == nil {
		return nil, errors.New("image codec is not configured")
	}
	if s.detector == nil {
		return nil, errors.New("pose detector is not configured")
	}

	var subject, garment image.Image
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		img, err := s.codec.Decode(userImage)
		if err != nil {
			return fmt.Errorf("user image: %w", err)
		}
		subject = img
		return nil
	})
	g.Go(func() error {
		img, err := s.codec.Decode(clothingImage)
		if err != nil {
			return fmt.Errorf("clothing image: %w", err)
		}
		garment = img
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pose, err := s.detector.Detect(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("detect pose: %w", err)
	}
	if len(pose) == 0 {
		return nil, entity.ErrNoBodyDetected
	}

	composed, rect, err := overlay.Composite(subject, garment, pose)
	if err != nil {
		return nil, err
	}

	encoded, err := s.codec.Encode(composed, s.format)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	return &entity.TryOnResult{
		ID:        uuid.NewString(),
		Image:     encoded,
		Format:    s.format,
		Placement: rect,
		Width:     composed.Bounds().Dx(),
		Height:    composed.Bounds().Dy(),
	}, nil
}
