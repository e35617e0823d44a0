package app

import (
	"image/color"

	"medvision/internal/domain/entity"
)

// Normalize приводит растр к трёхканальному рабочему виду в порядке order.
// Серый канал размножается, альфа отбрасывается, размеры не меняются.
func Normalize(r *entity.Raster, order entity.ChannelOrder) (*entity.Raster, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if order != entity.OrderRGB && order != entity.OrderBGR {
		return nil, &entity.InvalidImageError{
			Reason:   "working order must be rgb or bgr, got " + order.String(),
			Width:    r.Width,
			Height:   r.Height,
			Channels: r.Channels,
		}
	}

	out := entity.NewRaster(r.Width, r.Height, order)
	convert(r, out)
	return out, nil
}

// Denormalize переводит рабочий растр в раскладку target.
// Для серого используется целочисленная яркость, поэтому
// Denormalize(Normalize(gray), gray.Layout()) восстанавливает исходник побайтно.
func Denormalize(w *entity.Raster, target entity.Layout) (*entity.Raster, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if w.Channels != 3 {
		return nil, &entity.InvalidImageError{
			Reason:   "working raster must have 3 channels",
			Width:    w.Width,
			Height:   w.Height,
			Channels: w.Channels,
		}
	}
	if target.Order.Channels() == 0 || target.Order.Channels() != target.Channels {
		return nil, &entity.InvalidImageError{
			Reason:   "invalid target layout " + target.Order.String(),
			Width:    w.Width,
			Height:   w.Height,
			Channels: target.Channels,
		}
	}

	out := entity.NewRaster(w.Width, w.Height, target.Order)
	convert(w, out)
	return out, nil
}

// convert копирует пиксели между растрами одинакового размера с разной раскладкой.
func convert(src, dst *entity.Raster) {
	if src.Order == dst.Order {
		copy(dst.Pix, src.Pix)
		return
	}

	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			dst.SetRGB(x, y, opaque(src.RGBAt(x, y)))
		}
	}
}

// opaque отбрасывает альфу исходника: при показе RGBA-снимок считается непрозрачным.
func opaque(c color.RGBA) color.RGBA {
	c.A = 0xff
	return c
}
