package entity

import (
	"image"
	"image/color"
)

// RegionKind тип геометрического примитива аннотации
type RegionKind int

const (
	KindBox  RegionKind = iota // прямоугольник с подписью
	KindBlob                   // залитый повёрнутый эллипс
)

// Region примитив аннотации: Box или Blob
type Region interface {
	Kind() RegionKind
	region()
}

// Box прямоугольная область с подписью. Углы включительные.
type Box struct {
	TopLeft     image.Point
	BottomRight image.Point
	Label       string
	Rank        int // 0 для основной находки
}

// Kind реализует Region.
func (Box) Kind() RegionKind { return KindBox }

func (Box) region() {}

// Corners возвращает углы, упорядоченные так, что min <= max по обеим осям.
func (b Box) Corners() (lo, hi image.Point) {
	lo, hi = b.TopLeft, b.BottomRight
	if lo.X > hi.X {
		lo.X, hi.X = hi.X, lo.X
	}
	if lo.Y > hi.Y {
		lo.Y, hi.Y = hi.Y, lo.Y
	}
	return lo, hi
}

// LabelAnchor точка привязки подписи: на 10 пикселей выше левого верхнего угла.
func (b Box) LabelAnchor() image.Point {
	lo, _ := b.Corners()
	return image.Pt(lo.X, lo.Y-10)
}

// Blob залитый эллипс сегментационной маски
type Blob struct {
	Center image.Point
	Axes   image.Point // полуоси, положительные
	Angle  int         // поворот в градусах, [0,180)
	Fill   color.RGBA
}

// Kind реализует Region.
func (Blob) Kind() RegionKind { return KindBlob }

func (Blob) region() {}

// Reach радиус квадрата, в который гарантированно помещается эллипс.
func (b Blob) Reach() int {
	if b.Axes.X > b.Axes.Y {
		return b.Axes.X
	}
	return b.Axes.Y
}

var (
	_ Region = Box{}
	_ Region = Blob{}
)
