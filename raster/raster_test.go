package raster

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/wings/bitmap"
	"github.com/bodgit/wings/font"
	"github.com/bodgit/wings/internal/fixture"
	"github.com/bodgit/wings/palette"
	"github.com/bodgit/wings/ship"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPalette(t *testing.T) *palette.Palette {
	t.Helper()
	p, err := palette.Decode(bytes.NewReader(fixture.Palette(0)), false)
	require.NoError(t, err)
	return p
}

func gray(v uint8) color.RGBA {
	return color.RGBA{v, v, v, 0xff}
}

func TestGlyphs(t *testing.T) {
	f, err := font.Decode(bytes.NewReader(fixture.Font(8, 8)))
	require.NoError(t, err)

	m := Glyphs(f)
	assert.Equal(t, image.Rect(0, 0, 128, 128), m.Bounds())

	// Glyph 5 sits in column 5 of the first row, its pixel (2, 3) is at
	// flat offset 19 and lands in sheet column 5*8+3, row 2
	assert.Equal(t, gray(5+19), m.RGBAAt(43, 2))
	// Glyph 17 is the second glyph of the second row
	assert.Equal(t, gray(17), m.RGBAAt(8, 8))
	// The last pixel of the last glyph, (255+63)&0xff
	assert.Equal(t, gray(62), m.RGBAAt(127, 127))

	for y := 0; y < 128; y++ {
		for x := 0; x < 128; x++ {
			i := (y/8)*16 + x/8
			o := (y%8)*8 + x%8
			require.Equal(t, gray(byte(i+o)), m.RGBAAt(x, y), "(%d, %d)", x, y)
		}
	}
}

func TestGlyphsNonSquare(t *testing.T) {
	f, err := font.Decode(bytes.NewReader(fixture.Font(4, 2)))
	require.NoError(t, err)

	m := Glyphs(f)
	assert.Equal(t, image.Rect(0, 0, 64, 32), m.Bounds())
}

func TestIndexed(t *testing.T) {
	p := testPalette(t)
	m := &bitmap.Image{Width: 3, Height: 2, Pix: []byte{0, 1, 2, 10, 20, 255}}

	dst := Indexed(m, p)
	assert.Equal(t, image.Rect(0, 0, 3, 2), dst.Bounds())
	assert.Equal(t, color.RGBA{0, 0, 255, 0xff}, dst.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{2, 1, 253, 0xff}, dst.RGBAAt(2, 0))
	assert.Equal(t, color.RGBA{10, 5, 245, 0xff}, dst.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{255, 127, 0, 0xff}, dst.RGBAAt(2, 1))
}

func TestPaletted(t *testing.T) {
	p := testPalette(t)
	m := &bitmap.Image{Width: 2, Height: 2, Pix: []byte{7, 8, 9, 200}}

	dst := Paletted(m, p)
	assert.Equal(t, uint8(200), dst.ColorIndexAt(1, 1))
	assert.Equal(t, p.At(9), dst.At(0, 1))

	// The bitmap is not shared with the result
	dst.SetColorIndex(0, 0, 1)
	assert.Equal(t, byte(7), m.Pix[0])
}

func TestFrameStrip(t *testing.T) {
	p := testPalette(t)
	s, err := ship.Decode(bytes.NewReader(fixture.Ship(ship.Magic, []byte("Camel"), [7]uint32{}, fixture.Frames(ship.NumFrames, 5, 3))))
	require.NoError(t, err)

	dst := FrameStrip(s, p)
	assert.Equal(t, image.Rect(0, 0, 5*72, 3), dst.Bounds())

	for i := 0; i < ship.NumFrames; i++ {
		pix := fixture.Pattern(5, 3, i)
		for y := 0; y < 3; y++ {
			for x := 0; x < 5; x++ {
				require.Equal(t, p.At(pix[y*5+x]), dst.RGBAAt(i*5+x, y), "frame %d (%d, %d)", i, x, y)
			}
		}
	}
}

func TestScale(t *testing.T) {
	p := testPalette(t)
	m := &bitmap.Image{Width: 2, Height: 2, Pix: []byte{1, 2, 3, 4}}

	src := Indexed(m, p)
	assert.Same(t, src, Scale(src, 1))
	assert.Same(t, src, Scale(src, 0))

	dst := Scale(src, 3)
	assert.Equal(t, image.Rect(0, 0, 6, 6), dst.Bounds())
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			assert.Equal(t, src.At(x/3, y/3), dst.At(x, y), "(%d, %d)", x, y)
		}
	}

	pm, ok := Scale(Paletted(m, p), 2).(*image.Paletted)
	require.True(t, ok)
	assert.Equal(t, uint8(4), pm.ColorIndexAt(3, 3))
	assert.Equal(t, uint8(2), pm.ColorIndexAt(2, 1))
}

func TestPalettedFrameStrip(t *testing.T) {
	p := testPalette(t)
	s, err := ship.Decode(bytes.NewReader(fixture.Ship(ship.Magic, nil, [7]uint32{}, fixture.Frames(ship.NumFrames, 4, 2))))
	require.NoError(t, err)

	rgb := FrameStrip(s, p)
	pm := PalettedFrameStrip(s, p)
	require.Equal(t, rgb.Bounds(), pm.Bounds())

	for y := 0; y < 2; y++ {
		for x := 0; x < 4*72; x++ {
			require.Equal(t, rgb.At(x, y), pm.At(x, y), "(%d, %d)", x, y)
		}
	}
	assert.Equal(t, fixture.Pattern(4, 2, 71)[5], pm.ColorIndexAt(71*4+1, 1))
}
