package entity

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
)

// ChannelOrder порядок хранения цветовых компонент в растре
type ChannelOrder int

const (
	OrderGray ChannelOrder = iota // один канал яркости
	OrderRGB                      // красный, зелёный, синий
	OrderBGR                      // синий, зелёный, красный (порядок OpenCV)
	OrderRGBA                     // RGB с альфа-каналом
)

// String возвращает короткое имя порядка каналов.
func (o ChannelOrder) String() string {
	switch o {
	case OrderGray:
		return "gray"
	case OrderRGB:
		return "rgb"
	case OrderBGR:
		return "bgr"
	case OrderRGBA:
		return "rgba"
	default:
		return "unknown"
	}
}

// Channels возвращает число каналов для порядка, 0 для неизвестного.
func (o ChannelOrder) Channels() int {
	switch o {
	case OrderGray:
		return 1
	case OrderRGB, OrderBGR:
		return 3
	case OrderRGBA:
		return 4
	default:
		return 0
	}
}

// Layout описывает раскладку растра без самих пикселей.
type Layout struct {
	Channels int
	Order    ChannelOrder
}

// DisplayLayout раскладка, в которой растр отдаётся на показ.
var DisplayLayout = Layout{Channels: 3, Order: OrderRGB}

// Raster представляет изображение H×W×C с 8-битными отсчётами
type Raster struct {
	Width    int          // ширина в пикселях
	Height   int          // высота в пикселях
	Channels int          // число каналов
	Order    ChannelOrder // порядок каналов
	Pix      []uint8      // отсчёты построчно, каналы чередуются
}

// NewRaster создаёт растр, заполненный нулями.
func NewRaster(width, height int, order ChannelOrder) *Raster {
	channels := order.Channels()
	size := 0
	if width > 0 && height > 0 {
		size = width * height * channels
	}
	return &Raster{
		Width:    width,
		Height:   height,
		Channels: channels,
		Order:    order,
		Pix:      make([]uint8, size),
	}
}

// Validate проверяет размеры, число каналов и длину буфера.
func (r *Raster) Validate() error {
	if r == nil {
		return &InvalidImageError{Reason: "raster is nil"}
	}
	if r.Width <= 0 || r.Height <= 0 {
		return r.invalid("non-positive dimensions")
	}
	switch r.Channels {
	case 1, 3, 4:
	default:
		return r.invalid("unsupported channel count")
	}
	if r.Order.Channels() != r.Channels {
		return r.invalid("channel order " + r.Order.String() + " does not match channel count")
	}
	if len(r.Pix) != r.Width*r.Height*r.Channels {
		return r.invalid("pixel buffer length mismatch")
	}
	return nil
}

func (r *Raster) invalid(reason string) *InvalidImageError {
	return &InvalidImageError{Reason: reason, Width: r.Width, Height: r.Height, Channels: r.Channels}
}

// Layout возвращает раскладку растра.
func (r *Raster) Layout() Layout {
	return Layout{Channels: r.Channels, Order: r.Order}
}

// Bounds возвращает прямоугольник растра.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// Compatible сообщает, совпадают ли размеры двух растров.
func (r *Raster) Compatible(other *Raster) bool {
	return other != nil && r.Width == other.Width && r.Height == other.Height
}

// Clone возвращает независимую копию растра.
func (r *Raster) Clone() *Raster {
	c := *r
	c.Pix = append([]uint8(nil), r.Pix...)
	return &c
}

// Equal сравнивает раскладку и отсчёты побайтно.
func (r *Raster) Equal(other *Raster) bool {
	if other == nil {
		return false
	}
	return r.Width == other.Width && r.Height == other.Height &&
		r.Channels == other.Channels && r.Order == other.Order &&
		bytes.Equal(r.Pix, other.Pix)
}

// In сообщает, лежит ли точка внутри растра.
func (r *Raster) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.Width && y < r.Height
}

func (r *Raster) offset(x, y int) int {
	return (y*r.Width + x) * r.Channels
}

// RGBAt возвращает цвет пикселя в RGB-семантике независимо от порядка каналов.
func (r *Raster) RGBAt(x, y int) color.RGBA {
	if !r.In(x, y) {
		return color.RGBA{}
	}
	i := r.offset(x, y)
	p := r.Pix[i : i+r.Channels : i+r.Channels]
	switch r.Order {
	case OrderGray:
		return color.RGBA{R: p[0], G: p[0], B: p[0], A: 0xff}
	case OrderBGR:
		return color.RGBA{R: p[2], G: p[1], B: p[0], A: 0xff}
	case OrderRGBA:
		return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	default:
		return color.RGBA{R: p[0], G: p[1], B: p[2], A: 0xff}
	}
}

// SetRGB записывает цвет в RGB-семантике. Точки вне растра игнорируются.
func (r *Raster) SetRGB(x, y int, c color.RGBA) {
	if !r.In(x, y) {
		return
	}
	i := r.offset(x, y)
	p := r.Pix[i : i+r.Channels : i+r.Channels]
	switch r.Order {
	case OrderGray:
		p[0] = luma(c.R, c.G, c.B)
	case OrderBGR:
		p[0], p[1], p[2] = c.B, c.G, c.R
	case OrderRGBA:
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	default:
		p[0], p[1], p[2] = c.R, c.G, c.B
	}
}

// Fill заливает весь растр одним цветом.
func (r *Raster) Fill(c color.RGBA) {
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			r.SetRGB(x, y, c)
		}
	}
}

// Image возвращает draw.Image поверх растра без копирования пикселей.
func (r *Raster) Image() draw.Image {
	return rasterImage{r: r}
}

// luma считает яркость по BT.601 в целых числах, для равных каналов результат точный.
func luma(r, g, b uint8) uint8 {
	return uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b) + 500) / 1000)
}

// Luma экспортирует целочисленную яркость для преобразований раскладки.
func Luma(c color.RGBA) uint8 {
	return luma(c.R, c.G, c.B)
}

type rasterImage struct {
	r *Raster
}

// Отсчёты RGBA хранятся без предумножения, поэтому наружу они отдаются как color.NRGBA.
func (i rasterImage) ColorModel() color.Model {
	if i.r.Order == OrderRGBA {
		return color.NRGBAModel
	}
	return color.RGBAModel
}

func (i rasterImage) Bounds() image.Rectangle { return i.r.Bounds() }

func (i rasterImage) At(x, y int) color.Color {
	c := i.r.RGBAt(x, y)
	if i.r.Order == OrderRGBA {
		return color.NRGBA(c)
	}
	return c
}

func (i rasterImage) Set(x, y int, c color.Color) {
	if i.r.Order == OrderRGBA {
		i.r.SetRGB(x, y, color.RGBA(color.NRGBAModel.Convert(c).(color.NRGBA)))
		return
	}
	i.r.SetRGB(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}
