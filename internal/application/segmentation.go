package app

import (
	"image"
	"image/color"
	"strconv"

	"medvision/internal/domain/entity"
	"medvision/internal/domain/port"
)

const (
	centerMargin = 100
	minSemiAxis  = 30
	maxSemiAxis  = 100
	maxAngle     = 180
)

// segment рисует случайные эллипсы на нулевой маске и смешивает её с растром.
// Непокрытые пиксели тоже темнеют в (1-alpha) раз.
func (a *Annotator) segment(working *entity.Raster, rnd port.RandomSource) (*entity.Raster, *entity.ResultRecord, error) {
	mask := entity.NewRaster(working.Width, working.Height, working.Order)

	regions := make([]entity.Region, 0, a.regionCount)
	for i := 0; i < a.regionCount; i++ {
		regions = append(regions, randomBlob(working.Width, working.Height, rnd))
	}
	if err := a.render(mask, regions); err != nil {
		return nil, nil, err
	}

	out, err := a.renderer.Blend(working, mask, a.alpha)
	if err != nil {
		return nil, nil, err
	}

	return out, segmentationResult(a.regionCount), nil
}

// randomBlob порядок выборки фиксирован: центр, полуоси, угол, цвет.
func randomBlob(width, height int, rnd port.RandomSource) entity.Blob {
	cxLo, cxHi := centerRange(width)
	cyLo, cyHi := centerRange(height)

	return entity.Blob{
		Center: image.Pt(uniform(rnd, cxLo, cxHi), uniform(rnd, cyLo, cyHi)),
		Axes:   image.Pt(uniform(rnd, minSemiAxis, maxSemiAxis), uniform(rnd, minSemiAxis, maxSemiAxis)),
		Angle:  uniform(rnd, 0, maxAngle),
		Fill: color.RGBA{
			R: uint8(rnd.IntN(256)),
			G: uint8(rnd.IntN(256)),
			B: uint8(rnd.IntN(256)),
			A: 0xff,
		},
	}
}

// centerRange диапазон центра [100, dim-100); при dim <= 200 берётся точка dim/2.
func centerRange(dim int) (int, int) {
	lo, hi := centerMargin, dim-centerMargin
	if hi <= lo {
		return dim / 2, dim/2 + 1
	}
	return lo, hi
}

func segmentationResult(regions int) *entity.ResultRecord {
	return NewResultBuilder(entity.ModeSegmentation).
		Note(strconv.Itoa(regions) + " distinct tissue regions identified").
		Note("Region boundaries clearly demarcated").
		Note("Volume calculations available upon request").
		Number(MetricRegions, float64(regions), "").
		Text(MetricBoundaries, "Clearly demarcated").
		Unavailable(MetricVolume, "available upon request").
		Build()
}
