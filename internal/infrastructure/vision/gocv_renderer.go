//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"medvision/internal/domain/entity"
	"medvision/internal/domain/port"
)

// GoCVRenderer рисует примитивы через OpenCV.
type GoCVRenderer struct {
	Font gocv.HersheyFont
}

// NewGoCVRenderer создаёт рендерер на OpenCV.
func NewGoCVRenderer() (*GoCVRenderer, error) {
	return &GoCVRenderer{Font: gocv.FontHersheySimplex}, nil
}

// Order OpenCV ожидает BGR.
func (r *GoCVRenderer) Order() entity.ChannelOrder {
	return entity.OrderBGR
}

// DrawBox рисует контур прямоугольника, OpenCV сам обрезает его по границам.
func (r *GoCVRenderer) DrawBox(dst *entity.Raster, box entity.Box, style entity.Style) error {
	lo, hi := box.Corners()
	thickness := style.Thickness
	if thickness < 1 {
		thickness = 1
	}
	return r.withMat(dst, func(mat *gocv.Mat) {
		gocv.Rectangle(mat, image.Rectangle{Min: lo, Max: hi}, style.Color, thickness)
	})
}

// DrawLabel рисует подпись шрифтом Hershey не выше строки 0.
func (r *GoCVRenderer) DrawLabel(dst *entity.Raster, text string, origin image.Point, style entity.Style) error {
	if text == "" {
		return checkWorking(dst, r.Order())
	}
	scale := style.FontScale
	if scale <= 0 {
		scale = entity.LabelFontScale
	}
	thickness := style.TextThickness
	if thickness < 1 {
		thickness = 1
	}

	size := gocv.GetTextSize(text, r.Font, scale, thickness)
	if origin.Y-size.Y < 0 {
		origin.Y = size.Y
	}

	return r.withMat(dst, func(mat *gocv.Mat) {
		gocv.PutText(mat, text, origin, r.Font, scale, style.Color, thickness)
	})
}

// FillBlob заливает эллипс (толщина -1).
func (r *GoCVRenderer) FillBlob(dst *entity.Raster, blob entity.Blob) error {
	if blob.Axes.X <= 0 || blob.Axes.Y <= 0 {
		return checkWorking(dst, r.Order())
	}
	return r.withMat(dst, func(mat *gocv.Mat) {
		gocv.Ellipse(mat, blob.Center, blob.Axes, float64(blob.Angle), 0, 360, blob.Fill, -1)
	})
}

// Blend смешивает растры через AddWeighted.
func (r *GoCVRenderer) Blend(base, overlay *entity.Raster, alpha float64) (*entity.Raster, error) {
	if err := checkBlendable(base, overlay, alpha); err != nil {
		return nil, err
	}
	if base.Channels != 3 {
		return nil, errors.New("gocv blend supports 3-channel rasters only")
	}

	src1, err := gocv.NewMatFromBytes(base.Height, base.Width, gocv.MatTypeCV8UC3, base.Pix)
	if err != nil {
		return nil, fmt.Errorf("wrap base raster: %w", err)
	}
	defer src1.Close()

	src2, err := gocv.NewMatFromBytes(overlay.Height, overlay.Width, gocv.MatTypeCV8UC3, overlay.Pix)
	if err != nil {
		return nil, fmt.Errorf("wrap overlay raster: %w", err)
	}
	defer src2.Close()

	blended := gocv.NewMat()
	defer blended.Close()
	gocv.AddWeighted(src1, 1-alpha, src2, alpha, 0, &blended)

	out := entity.NewRaster(base.Width, base.Height, base.Order)
	copy(out.Pix, blended.ToBytes())
	return out, nil
}

// withMat оборачивает растр в gocv.Mat, рисует и копирует результат обратно.
func (r *GoCVRenderer) withMat(dst *entity.Raster, draw func(mat *gocv.Mat)) error {
	if err := checkWorking(dst, r.Order()); err != nil {
		return err
	}

	mat, err := gocv.NewMatFromBytes(dst.Height, dst.Width, gocv.MatTypeCV8UC3, dst.Pix)
	if err != nil {
		return fmt.Errorf("wrap raster: %w", err)
	}
	defer mat.Close()

	draw(&mat)
	copy(dst.Pix, mat.ToBytes())
	return nil
}

// Проверка реализации интерфейса
var _ port.Renderer = (*GoCVRenderer)(nil)
