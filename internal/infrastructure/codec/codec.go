package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"medvision/internal/domain/entity"
	"medvision/internal/domain/port"
)

const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
)

// acceptedExtensions расширения, которые принимаются при загрузке.
// .dcm принимается, но декодируется как обычный файл.
var acceptedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".dcm":  true,
}

// DefaultMaxPixels предел площади декодируемого изображения.
const DefaultMaxPixels = 40_000_000

// Codec декодирует JPEG/PNG в растр и кодирует растр обратно.
type Codec struct {
	JPEGQuality int
	MaxPixels   int64 // изображения большей площади отклоняются до декодирования
}

// New создаёт кодек с заданным качеством JPEG.
func New(jpegQuality int) *Codec {
	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = 90
	}
	return &Codec{JPEGQuality: jpegQuality, MaxPixels: DefaultMaxPixels}
}

// Accepts проверяет расширение имени файла.
func (c *Codec) Accepts(filename string) bool {
	return acceptedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Decode превращает байты в растр в исходной раскладке: Gray, RGB или RGBA.
func (c *Codec) Decode(data []byte) (*entity.Raster, error) {
	if len(data) == 0 {
		return nil, &entity.UnsupportedFormatError{}
	}

	header, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, &entity.UnsupportedFormatError{}
		}
		return nil, fmt.Errorf("read image header: %w", err)
	}
	if format != FormatJPEG && format != FormatPNG {
		return nil, &entity.UnsupportedFormatError{Format: format}
	}
	if err := c.checkSize(header.Width, header.Height); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	return FromImage(img), nil
}

// checkSize отклоняет пустые и слишком большие изображения по заголовку.
func (c *Codec) checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return &entity.InvalidImageError{Reason: "image has no pixels", Width: width, Height: height}
	}
	if c.MaxPixels > 0 && int64(width)*int64(height) > c.MaxPixels {
		return &entity.InvalidImageError{
			Reason: fmt.Sprintf("image has %d pixels, limit is %d", int64(width)*int64(height), c.MaxPixels),
			Width:  width,
			Height: height,
		}
	}
	return nil
}

// Encode кодирует растр в jpeg или png.
func (c *Codec) Encode(r *entity.Raster, format string) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case FormatJPEG, "jpg", "":
		if err := imaging.Encode(&buf, r.Image(), imaging.JPEG, imaging.JPEGQuality(c.JPEGQuality)); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case FormatPNG:
		if err := imaging.Encode(&buf, r.Image(), imaging.PNG); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	default:
		return nil, &entity.UnsupportedFormatError{Format: format}
	}
	return buf.Bytes(), nil
}

// FromImage копирует image.Image в растр. Серые изображения дают один канал,
// изображения с прозрачностью четыре, остальные три (RGB).
func FromImage(img image.Image) *entity.Raster {
	b := img.Bounds()

	switch src := img.(type) {
	case *image.Gray:
		r := entity.NewRaster(b.Dx(), b.Dy(), entity.OrderGray)
		for y := 0; y < b.Dy(); y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			copy(r.Pix[y*r.Width:(y+1)*r.Width], row[:b.Dx()])
		}
		return r
	}

	order := entity.OrderRGB
	if o, ok := img.(interface{ Opaque() bool }); ok && !o.Opaque() {
		order = entity.OrderRGBA
	}

	r := entity.NewRaster(b.Dx(), b.Dy(), order)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := (y*r.Width + x) * r.Channels
			r.Pix[i], r.Pix[i+1], r.Pix[i+2] = c.R, c.G, c.B
			if order == entity.OrderRGBA {
				r.Pix[i+3] = c.A
			}
		}
	}
	return r
}

// Проверка реализации интерфейса
var _ port.ImageCodec = (*Codec)(nil)
