//go:build !gocv
// +build !gocv

package vision

import (
	"errors"
	"image"

	"medvision/internal/domain/entity"
)

var errGoCVDisabled = errors.New("gocv build tag is not enabled")

// GoCVRenderer заглушка без OpenCV.
type GoCVRenderer struct{}

// NewGoCVRenderer возвращает ошибку, если сборка без тега gocv.
func NewGoCVRenderer() (*GoCVRenderer, error) {
	return nil, errGoCVDisabled
}

// Order возвращает порядок каналов OpenCV.
func (r *GoCVRenderer) Order() entity.ChannelOrder {
	return entity.OrderBGR
}

// DrawBox возвращает ошибку, если сборка без тега gocv.
func (r *GoCVRenderer) DrawBox(dst *entity.Raster, box entity.Box, style entity.Style) error {
	_ = dst
	_ = box
	_ = style
	return errGoCVDisabled
}

// DrawLabel возвращает ошибку, если сборка без тега gocv.
func (r *GoCVRenderer) DrawLabel(dst *entity.Raster, text string, origin image.Point, style entity.Style) error {
	_ = dst
	_ = text
	_ = origin
	_ = style
	return errGoCVDisabled
}

// FillBlob возвращает ошибку, если сборка без тега gocv.
func (r *GoCVRenderer) FillBlob(dst *entity.Raster, blob entity.Blob) error {
	_ = dst
	_ = blob
	return errGoCVDisabled
}

// Blend возвращает ошибку, если сборка без тега gocv.
func (r *GoCVRenderer) Blend(base, overlay *entity.Raster, alpha float64) (*entity.Raster, error) {
	_ = base
	_ = overlay
	_ = alpha
	return nil, errGoCVDisabled
}
