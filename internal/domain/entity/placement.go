package entity

import "image"

// PlacementRect прямоугольник на фото пользователя, куда кладётся одежда
type PlacementRect struct {
	X      int `json:"x"`      // координата X левого верхнего угла
	Y      int `json:"y"`      // координата Y левого верхнего угла
	Width  int `json:"width"`  // ширина в пикселях
	Height int `json:"height"` // высота в пикселях
}

// Rect переводит прямоугольник в image.Rectangle
func (r PlacementRect) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Clip обрезает прямоугольник по границам изображения.
// Если пересечения нет, возвращается пустой прямоугольник.
func (r PlacementRect) Clip(bounds image.Rectangle) PlacementRect {
	c := r.Rect().Intersect(bounds)
	if c.Empty() {
		return PlacementRect{}
	}
	return PlacementRect{X: c.Min.X, Y: c.Min.Y, Width: c.Dx(), Height: c.Dy()}
}

// Empty сообщает, что в прямоугольник не попадает ни одного пикселя
func (r PlacementRect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center возвращает координаты центра прямоугольника
func (r PlacementRect) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}
