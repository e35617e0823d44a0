package entity

import "image/color"

var (
	PrimaryColor   = color.RGBA{R: 255, A: 255}         // красный
	SecondaryColor = color.RGBA{R: 255, G: 165, A: 255} // оранжевый
	TextColor      = color.RGBA{A: 255}                 // чёрный
)

const (
	PrimaryThickness   = 4
	SecondaryThickness = 2
	LabelFontScale     = 0.7
	LabelThickness     = 2
)

// Style правила отрисовки примитива
type Style struct {
	Color         color.RGBA // цвет в RGB-семантике
	Thickness     int        // толщина контура, для заливки не используется
	Filled        bool
	FontScale     float64
	TextThickness int
}

// StyleFor выводит стиль из вида и ранга примитива.
func StyleFor(r Region) Style {
	switch v := r.(type) {
	case Box:
		return BoxStyle(v.Rank)
	case Blob:
		return Style{Color: v.Fill, Filled: true}
	default:
		return Style{}
	}
}

// BoxStyle стиль прямоугольника по рангу: ранг 0 толще и красный.
func BoxStyle(rank int) Style {
	s := Style{
		Color:         SecondaryColor,
		Thickness:     SecondaryThickness,
		FontScale:     LabelFontScale,
		TextThickness: LabelThickness,
	}
	if rank == 0 {
		s.Color = PrimaryColor
		s.Thickness = PrimaryThickness
	}
	return s
}

// TextStyle стиль надписи без рамки.
func TextStyle(c color.RGBA, scale float64, thickness int) Style {
	return Style{Color: c, FontScale: scale, TextThickness: thickness}
}
