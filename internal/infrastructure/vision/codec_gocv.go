//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"drip-backend/internal/domain/entity"
	"drip-backend/internal/domain/port"
)

// GoCVCodec кодек на OpenCV: понимает больше форматов (WebP, TIFF, BMP).
type GoCVCodec struct {
	JPEGQuality int
}

// NewCodec возвращает кодек для текущей сборки. С тегом gocv это GoCVCodec.
func NewCodec(quality int) port.ImageCodec {
	if quality <= 0 || quality > 100 {
		quality = 90
	}
	return &GoCVCodec{JPEGQuality: quality}
}

// Decode превращает байты изображения в image.Image через gocv.Mat.
func (c *GoCVCodec) Decode(data []byte) (image.Image, error) {
	mat, err := decodeToMat(data)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDecodeFailure, err)
	}
	return img, nil
}

// Encode кодирует изображение в JPEG или PNG.
func (c *GoCVCodec) Encode(img image.Image, format entity.ImageFormat) ([]byte, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	var (
		ext    gocv.FileExt
		params []int
	)
	switch format {
	case entity.FormatPNG:
		ext = gocv.PNGFileExt
	case entity.FormatJPEG, "":
		ext = gocv.JPEGFileExt
		params = []int{gocv.IMWriteJpegQuality, c.JPEGQuality}
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}

	buf, err := gocv.IMEncodeWithParams(ext, mat, params)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	return bytes.Clone(buf.GetBytes()), nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("%w: %v", entity.ErrDecodeFailure, err)
	}
	mat.Close()
	return gocv.Mat{}, fmt.Errorf("%w: empty image", entity.ErrDecodeFailure)
}

var _ port.ImageCodec = (*GoCVCodec)(nil)
