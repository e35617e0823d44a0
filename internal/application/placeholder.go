package app

import (
	"image"
	"image/color"

	"medvision/internal/domain/entity"
	"medvision/internal/domain/port"
)

const (
	placeholderWidth  = 600
	placeholderHeight = 400
)

// RenderPlaceholder рисует заставку, которая показывается до загрузки снимка.
func RenderPlaceholder(renderer port.Renderer) (*entity.Raster, error) {
	canvas := entity.NewRaster(placeholderWidth, placeholderHeight, renderer.Order())
	canvas.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})

	lines := []struct {
		text   string
		origin image.Point
		scale  float64
	}{
		{"Medical Image Preview", image.Pt(150, 200), 1},
		{"Upload an image to begin analysis", image.Pt(120, 250), 0.7},
	}
	for _, l := range lines {
		style := entity.TextStyle(entity.TextColor, l.scale, 2)
		if err := renderer.DrawLabel(canvas, l.text, l.origin, style); err != nil {
			return nil, err
		}
	}
	return canvas, nil
}
