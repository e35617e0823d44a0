package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"medvision/internal/domain/entity"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeGrayPNG(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(2, 1, color.Gray{Y: 77})

	r, err := New(90).Decode(encodePNG(t, img))
	require.NoError(t, err)
	require.Equal(t, entity.OrderGray, r.Order)
	require.Equal(t, 1, r.Channels)
	require.Equal(t, 3, r.Width)
	require.Equal(t, 2, r.Height)
	require.Equal(t, uint8(77), r.Pix[1*3+2])
}

func TestDecodeOpaquePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}

	r, err := New(90).Decode(encodePNG(t, img))
	require.NoError(t, err)
	require.Equal(t, entity.OrderRGB, r.Order)
	require.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, r.RGBAt(3, 3))
}

func TestDecodeTransparentPNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, A: 128})

	r, err := New(90).Decode(encodePNG(t, img))
	require.NoError(t, err)
	require.Equal(t, entity.OrderRGBA, r.Order)
	require.Equal(t, []uint8{200, 0, 0, 128}, r.Pix[:4])
}

func TestDecodeRejectsOtherFormats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White}), nil))

	var unsupported *entity.UnsupportedFormatError
	_, err := New(90).Decode(buf.Bytes())
	require.True(t, errors.As(err, &unsupported))
	require.Equal(t, "gif", unsupported.Format)

	_, err = New(90).Decode([]byte("DICM not really an image"))
	require.True(t, errors.As(err, &unsupported))

	_, err = New(90).Decode(nil)
	require.True(t, errors.As(err, &unsupported))
}

func TestEncodeRoundTripDimensions(t *testing.T) {
	c := New(85)
	r := entity.NewRaster(40, 30, entity.OrderRGB)
	r.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})

	for _, format := range []string{FormatJPEG, FormatPNG} {
		data, err := c.Encode(r, format)
		require.NoError(t, err, format)

		back, err := c.Decode(data)
		require.NoError(t, err, format)
		require.Equal(t, 40, back.Width)
		require.Equal(t, 30, back.Height)
	}

	data, err := c.Encode(r, FormatPNG)
	require.NoError(t, err)
	back, err := c.Decode(data)
	require.NoError(t, err)
	require.True(t, r.Equal(back))
}

func TestEncodeUnknownFormat(t *testing.T) {
	_, err := New(90).Encode(entity.NewRaster(1, 1, entity.OrderRGB), "tiff")
	var unsupported *entity.UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
}

func TestAccepts(t *testing.T) {
	c := New(90)
	for _, name := range []string{"scan.jpg", "scan.JPEG", "xray.png", "ct.dcm"} {
		require.True(t, c.Accepts(name), name)
	}
	for _, name := range []string{"scan.gif", "notes.txt", "noext"} {
		require.False(t, c.Accepts(name), name)
	}
}

// pngHeader собирает сигнатуру PNG и один чанк IHDR без данных изображения.
func pngHeader(width, height uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], width)
	binary.BigEndian.PutUint32(ihdr[4:], height)
	ihdr[8], ihdr[9] = 8, 2 // 8 бит, truecolor

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDecodeRejectsOversizedHeader(t *testing.T) {
	_, err := New(90).Decode(pngHeader(30000, 30000))
	var invalid *entity.InvalidImageError
	require.True(t, errors.As(err, &invalid), "got %v", err)
	require.Equal(t, 30000, invalid.Width)
	require.Equal(t, 30000, invalid.Height)
}

func TestDecodeRespectsMaxPixels(t *testing.T) {
	c := New(90)
	c.MaxPixels = 100
	data := encodePNG(t, image.NewRGBA(image.Rect(0, 0, 20, 20)))

	_, err := c.Decode(data)
	var invalid *entity.InvalidImageError
	require.True(t, errors.As(err, &invalid))

	c.MaxPixels = 400
	r, err := c.Decode(data)
	require.NoError(t, err)
	require.Equal(t, 20, r.Width)
}
