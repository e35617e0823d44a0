package port

import (
	"image"

	"medvision/internal/domain/entity"
)

// Renderer примитивы рисования поверх рабочего растра
type Renderer interface {
	// Order возвращает порядок каналов, в котором работают примитивы
	Order() entity.ChannelOrder

	// DrawBox рисует контур прямоугольника с обрезкой по границам растра
	DrawBox(dst *entity.Raster, box entity.Box, style entity.Style) error

	// DrawLabel рисует подпись от базовой линии origin, не выше строки 0
	DrawLabel(dst *entity.Raster, text string, origin image.Point, style entity.Style) error

	// FillBlob заливает эллипс цветом примитива
	FillBlob(dst *entity.Raster, blob entity.Blob) error

	// Blend возвращает base*(1-alpha) + overlay*alpha, исходные растры не меняются
	Blend(base, overlay *entity.Raster, alpha float64) (*entity.Raster, error)
}
