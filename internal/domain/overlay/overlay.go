// Package overlay кладёт плоское фото одежды на фото человека по точкам плеч.
// Пакет не делает ввода-вывода и не хранит состояния: функции можно звать
// из любого числа горутин.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"drip-backend/internal/domain/entity"
)

// Эмпирические множители относительно ширины плеч.
// Пропорции самой одежды не учитываются, она растягивается.
const (
	WidthFactor  = 1.5
	HeightFactor = 2.0
	LeftMargin   = 0.2
)

// maxCoord ограничивает координаты прямоугольника, чтобы X+Width не переполнял int.
const maxCoord = 1 << 28

// Estimate считает прямоугольник наложения для кадра width x height.
func Estimate(width, height int, pose entity.Pose) (entity.PlacementRect, error) {
	left, right, err := pose.Shoulders()
	if err != nil {
		return entity.PlacementRect{}, err
	}

	shoulderPx := math.Abs(right.X-left.X) * float64(width)

	return entity.PlacementRect{
		X:      roundClamp(left.X*float64(width) - shoulderPx*LeftMargin),
		Y:      roundClamp(left.Y * float64(height)),
		Width:  roundClamp(shoulderPx * WidthFactor),
		Height: roundClamp(shoulderPx * HeightFactor),
	}, nil
}

func roundClamp(v float64) int {
	switch {
	case v > maxCoord:
		return maxCoord
	case v < -maxCoord:
		return -maxCoord
	}
	return int(math.Round(v))
}

// Resize растягивает src ровно до w x h ближайшим соседом.
func Resize(src image.Image, w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw == 0 || sh == 0 {
		return dst
	}

	for y := 0; y < h; y++ {
		sy := sb.Min.Y + y*sh/h
		for x := 0; x < w; x++ {
			sx := sb.Min.X + x*sw/w
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}

// Clone копирует изображение в новый RGBA-буфер с началом в (0,0).
func Clone(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Composite кладёт garment на копию subject в прямоугольник по плечам.
// Пиксели заменяются целиком, без смешивания и без учёта альфы.
// Часть прямоугольника за пределами кадра отбрасывается.
// Возвращает результат и прямоугольник до обрезки.
func Composite(subject, garment image.Image, pose entity.Pose) (*image.RGBA, entity.PlacementRect, error) {
	sb := subject.Bounds()
	rect, err := Estimate(sb.Dx(), sb.Dy(), pose)
	if err != nil {
		return nil, entity.PlacementRect{}, err
	}

	out := Clone(subject)
	paste(out, garment, rect)
	return out, rect, nil
}

// CompositeStrict как Composite, но возвращает ErrOutOfBounds,
// если после обрезки от прямоугольника ничего не осталось.
func CompositeStrict(subject, garment image.Image, pose entity.Pose) (*image.RGBA, entity.PlacementRect, error) {
	sb := subject.Bounds()
	rect, err := Estimate(sb.Dx(), sb.Dy(), pose)
	if err != nil {
		return nil, entity.PlacementRect{}, err
	}
	if rect.Clip(image.Rect(0, 0, sb.Dx(), sb.Dy())).Empty() {
		return nil, rect, fmt.Errorf("%w: %+v on %dx%d", entity.ErrOutOfBounds, rect, sb.Dx(), sb.Dy())
	}
	return Composite(subject, garment, pose)
}

// paste переписывает пиксели dst внутри rect пикселями garment,
// растянутого до размера rect ближайшим соседом. Выборка идёт только
// по видимой части rect, поэтому память не зависит от размера rect.
func paste(dst *image.RGBA, garment image.Image, rect entity.PlacementRect) {
	clipped := rect.Clip(dst.Bounds())
	if clipped.Empty() {
		return
	}
	gb := garment.Bounds()
	sw, sh := gb.Dx(), gb.Dy()
	if sw == 0 || sh == 0 {
		return
	}

	// сдвиг внутри rect, если он обрезан слева или сверху
	offX, offY := clipped.X-rect.X, clipped.Y-rect.Y
	for y := 0; y < clipped.Height; y++ {
		sy := gb.Min.Y + (offY+y)*sh/rect.Height
		for x := 0; x < clipped.Width; x++ {
			sx := gb.Min.X + (offX+x)*sw/rect.Width
			c := color.RGBAModel.Convert(garment.At(sx, sy)).(color.RGBA)
			dst.SetRGBA(clipped.X+x, clipped.Y+y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
}
