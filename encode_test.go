package wings

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			m.SetRGBA(x, y, color.RGBA{uint8(x * 60), uint8(y * 100), 0x80, 0xff})
		}
	}
	return m
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"png": FormatPNG,
		"PNG": FormatPNG,
		"gif": FormatGIF,
		"Bmp": FormatBMP,
	}
	for s, want := range tests {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, want, f, "%s", s)
	}

	_, err := ParseFormat("tga")
	assert.ErrorIs(t, err, errUnknownFormat)
}

func TestFormatExt(t *testing.T) {
	assert.Equal(t, ".PNG", FormatPNG.Ext())
	assert.Equal(t, ".GIF", FormatGIF.Ext())
	assert.Equal(t, ".BMP", FormatBMP.Ext())
}

func TestEncode(t *testing.T) {
	m := testImage()

	tests := []struct {
		format Format
		exact  bool
		decode func(*bytes.Buffer) (image.Image, error)
	}{
		{FormatPNG, true, func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) }},
		{FormatGIF, false, func(b *bytes.Buffer) (image.Image, error) { return gif.Decode(b) }},
		{FormatBMP, true, func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) }},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			b := new(bytes.Buffer)
			require.NoError(t, Encode(b, m, tt.format))

			got, err := tt.decode(b)
			require.NoError(t, err)
			assert.Equal(t, m.Bounds(), got.Bounds())

			if !tt.exact {
				_, ok := got.(*image.Paletted)
				assert.True(t, ok)
				return
			}

			for y := 0; y < 3; y++ {
				for x := 0; x < 4; x++ {
					r1, g1, b1, _ := m.At(x, y).RGBA()
					r2, g2, b2, _ := got.At(x, y).RGBA()
					assert.Equal(t, []uint32{r1 >> 8, g1 >> 8, b1 >> 8}, []uint32{r2 >> 8, g2 >> 8, b2 >> 8}, "(%d, %d)", x, y)
				}
			}
		})
	}

	assert.ErrorIs(t, Encode(new(bytes.Buffer), m, Format(42)), errUnknownFormat)
}
