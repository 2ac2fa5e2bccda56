//go:build !gocv
// +build !gocv

package vision

import "drip-backend/internal/domain/port"

// NewCodec возвращает кодек для текущей сборки. Без OpenCV это StdCodec.
func NewCodec(quality int) port.ImageCodec {
	return NewStdCodec(quality)
}
