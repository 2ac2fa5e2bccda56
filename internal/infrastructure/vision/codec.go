package vision

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // регистрируем декодер
	"image/jpeg"
	"image/png"

	"drip-backend/internal/domain/entity"
	"drip-backend/internal/domain/port"
)

// StdCodec кодек на стандартной библиотеке: JPEG, PNG, GIF.
type StdCodec struct {
	JPEGQuality int
}

// NewStdCodec создаёт кодек с заданным качеством JPEG.
func NewStdCodec(quality int) *StdCodec {
	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	return &StdCodec{JPEGQuality: quality}
}

// Decode декодирует изображение любого зарегистрированного формата.
func (c *StdCodec) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", entity.ErrDecodeFailure)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDecodeFailure, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", entity.ErrDecodeFailure)
	}
	return img, nil
}

// Encode кодирует изображение в JPEG или PNG.
func (c *StdCodec) Encode(img image.Image, format entity.ImageFormat) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case entity.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case entity.FormatJPEG, "":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: c.JPEGQuality}); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	return buf.Bytes(), nil
}

var _ port.ImageCodec = (*StdCodec)(nil)
