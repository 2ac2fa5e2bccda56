package entity

// ImageFormat формат кодирования результата.
type ImageFormat string

const (
	FormatJPEG ImageFormat = "jpeg"
	FormatPNG  ImageFormat = "png"
)

// TryOnResult хранит итог примерки.
type TryOnResult struct {
	ID        string        // идентификатор результата
	Image     []byte        // закодированное изображение
	Format    ImageFormat   // формат Image
	Placement PlacementRect // куда положили одежду (до обрезки по кадру)
	Width     int           // ширина результата
	Height    int           // высота результата
}
