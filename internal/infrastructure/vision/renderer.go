package vision

import (
	"fmt"
	"math"

	"medvision/internal/domain/entity"
	"medvision/internal/domain/port"
)

const (
	RendererSoftware = "software"
	RendererGoCV     = "gocv"
)

// NewRenderer создаёт рендерер по имени из конфигурации.
func NewRenderer(kind string) (port.Renderer, error) {
	switch kind {
	case "", RendererSoftware:
		return NewSoftwareRenderer(), nil
	case RendererGoCV:
		r, err := NewGoCVRenderer()
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown renderer %q", kind)
	}
}

// checkBlendable проверяет, что растры можно смешивать поканально.
func checkBlendable(base, overlay *entity.Raster, alpha float64) error {
	if err := base.Validate(); err != nil {
		return err
	}
	if err := overlay.Validate(); err != nil {
		return err
	}
	if !base.Compatible(overlay) || base.Layout() != overlay.Layout() {
		return &entity.InvalidImageError{
			Reason:   fmt.Sprintf("cannot blend %dx%d %s with %dx%d %s", base.Width, base.Height, base.Order, overlay.Width, overlay.Height, overlay.Order),
			Width:    overlay.Width,
			Height:   overlay.Height,
			Channels: overlay.Channels,
		}
	}
	if alpha < 0 || alpha > 1 || math.IsNaN(alpha) {
		return fmt.Errorf("blend alpha %v is outside [0,1]", alpha)
	}
	return nil
}

// checkWorking проверяет, что растр трёхканальный и в нужном порядке.
func checkWorking(dst *entity.Raster, order entity.ChannelOrder) error {
	if err := dst.Validate(); err != nil {
		return err
	}
	if dst.Order != order {
		return &entity.InvalidImageError{
			Reason:   "raster is in " + dst.Order.String() + " order, renderer expects " + order.String(),
			Width:    dst.Width,
			Height:   dst.Height,
			Channels: dst.Channels,
		}
	}
	return nil
}
