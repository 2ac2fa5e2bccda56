package app

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"

	"drip-backend/internal/domain/entity"
)

// fakeCodec «декодирует» байты в однотонную картинку: первый байт задаёт цвет,
// размер фиксирован.
type fakeCodec struct {
	w, h    int
	encoded []image.Image
	mu      sync.Mutex
}

func (c *fakeCodec) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, entity.ErrDecodeFailure
	}
	img := image.NewRGBA(image.Rect(0, 0, c.w, c.h))
	fill := color.RGBA{R: data[0], G: data[0], B: data[0], A: 255}
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	return img, nil
}

func (c *fakeCodec) Encode(img image.Image, format entity.ImageFormat) ([]byte, error) {
	c.mu.Lock()
	c.encoded = append(c.encoded, img)
	c.mu.Unlock()
	return []byte("encoded:" + string(format)), nil
}

type fakeDetector struct {
	pose entity.Pose
	err  error
}

func (d fakeDetector) Detect(ctx context.Context, img image.Image) (entity.Pose, error) {
	return d.pose, d.err
}

type fakeWeather struct {
	weather entity.Weather
	err     error
	calls   int
}

func (f *fakeWeather) Current(ctx context.Context, lat, lon float64) (*entity.Weather, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	w := f.weather
	return &w, nil
}

type fakeDescriber struct {
	text string
	err  error
}

func (f fakeDescriber) Describe(ctx context.Context, w entity.Weather, style string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

var errBoom = errors.New("boom")

func shoulderPose() entity.Pose {
	return entity.Pose{
		entity.PartLeftShoulder:  {X: 0.40, Y: 0.30},
		entity.PartRightShoulder: {X: 0.60, Y: 0.30},
	}
}
