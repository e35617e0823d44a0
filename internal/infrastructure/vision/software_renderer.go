package vision

import (
	"fmt"
	"image"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"medvision/internal/domain/entity"
	"medvision/internal/domain/port"
)

// hersheyHeight высота строки шрифта Hershey Simplex при масштабе 1.
const hersheyHeight = 22.0

var (
	fontsOnce   sync.Once
	boldFont    *opentype.Font
	regularFont *opentype.Font
	fontsErr    error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if boldFont, fontsErr = opentype.Parse(gobold.TTF); fontsErr != nil {
			return
		}
		regularFont, fontsErr = opentype.Parse(goregular.TTF)
	})
	return fontsErr
}

// SoftwareRenderer рисует примитивы на чистом Go без OpenCV.
// Работает в порядке BGR, как и GoCVRenderer, поэтому взаимозаменяем с ним.
type SoftwareRenderer struct{}

// NewSoftwareRenderer создаёт рендерер.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{}
}

// Order возвращает порядок каналов рабочих растров.
func (r *SoftwareRenderer) Order() entity.ChannelOrder {
	return entity.OrderBGR
}

// DrawBox рисует контур толщиной style.Thickness вокруг каждой стороны.
// Невидимые после обрезки прямоугольники не рисуются.
func (r *SoftwareRenderer) DrawBox(dst *entity.Raster, box entity.Box, style entity.Style) error {
	if err := checkWorking(dst, r.Order()); err != nil {
		return err
	}

	lo, hi := box.Corners()
	t := style.Thickness
	if t < 1 {
		t = 1
	}
	before, after := t/2, t-1-t/2

	outer := image.Rectangle{
		Min: image.Pt(lo.X-before, lo.Y-before),
		Max: image.Pt(hi.X+after+1, hi.Y+after+1),
	}
	inner := image.Rectangle{
		Min: image.Pt(lo.X+after+1, lo.Y+after+1),
		Max: image.Pt(hi.X-before, hi.Y-before),
	}

	visible := outer.Intersect(dst.Bounds())
	if visible.Empty() {
		return nil
	}

	for y := visible.Min.Y; y < visible.Max.Y; y++ {
		for x := visible.Min.X; x < visible.Max.X; x++ {
			if image.Pt(x, y).In(inner) {
				continue
			}
			dst.SetRGB(x, y, style.Color)
		}
	}
	return nil
}

// DrawLabel рисует текст с базовой линией в origin.
// Если верх глифов оказался бы выше строки 0, базовая линия опускается.
func (r *SoftwareRenderer) DrawLabel(dst *entity.Raster, text string, origin image.Point, style entity.Style) error {
	if err := checkWorking(dst, r.Order()); err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	if err := loadFonts(); err != nil {
		return fmt.Errorf("load fonts: %w", err)
	}

	f := regularFont
	if style.TextThickness > 1 {
		f = boldFont
	}
	scale := style.FontScale
	if scale <= 0 {
		scale = entity.LabelFontScale
	}

	// Face не потокобезопасен: один на вызов.
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    scale * hersheyHeight,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("create font face: %w", err)
	}
	defer face.Close()

	bounds, _ := font.BoundString(face, text)
	if top := origin.Y + bounds.Min.Y.Floor(); top < 0 {
		origin.Y -= top
	}

	d := font.Drawer{
		Dst:  dst.Image(),
		Src:  image.NewUniform(style.Color),
		Face: face,
		Dot:  fixed.P(origin.X, origin.Y),
	}
	d.DrawString(text)
	return nil
}

// FillBlob заливает повёрнутый эллипс: (u/a)² + (v/b)² <= 1.
func (r *SoftwareRenderer) FillBlob(dst *entity.Raster, blob entity.Blob) error {
	if err := checkWorking(dst, r.Order()); err != nil {
		return err
	}
	if blob.Axes.X <= 0 || blob.Axes.Y <= 0 {
		return nil
	}

	a, b := float64(blob.Axes.X), float64(blob.Axes.Y)
	theta := float64(blob.Angle) * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)

	reach := blob.Reach()
	c := blob.Center
	area := image.Rect(c.X-reach, c.Y-reach, c.X+reach+1, c.Y+reach+1).Intersect(dst.Bounds())

	for y := area.Min.Y; y < area.Max.Y; y++ {
		dy := float64(y - c.Y)
		for x := area.Min.X; x < area.Max.X; x++ {
			dx := float64(x - c.X)
			u := dx*cos + dy*sin
			v := -dx*sin + dy*cos
			if (u*u)/(a*a)+(v*v)/(b*b) <= 1 {
				dst.SetRGB(x, y, blob.Fill)
			}
		}
	}
	return nil
}

// Blend смешивает растры поканально с округлением до ближайшего.
func (r *SoftwareRenderer) Blend(base, overlay *entity.Raster, alpha float64) (*entity.Raster, error) {
	if err := checkBlendable(base, overlay, alpha); err != nil {
		return nil, err
	}

	out := entity.NewRaster(base.Width, base.Height, base.Order)
	beta := 1 - alpha
	for i, v := range base.Pix {
		out.Pix[i] = saturate(float64(v)*beta + float64(overlay.Pix[i])*alpha)
	}
	return out, nil
}

func saturate(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

// Проверка реализации интерфейса
var _ port.Renderer = (*SoftwareRenderer)(nil)
