/*
Package font implements the bitmap font format used by Wings, such as
VGAFONT1.PIC.

A font is exactly 256 uncompressed glyph records with nothing following
them. Each record is the glyph width and height as little-endian 16-bit
values followed by width*height bytes of grayscale intensity. Every glyph in
a font has the same dimensions.
*/
package font

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bodgit/wings/wire"
)

const (
	// NumGlyphs is the number of glyphs in every font
	NumGlyphs = 256

	// GridSize is the number of glyphs along each side of the font sheet
	GridSize = 16
)

// Glyph is a single character bitmap of grayscale intensities.
type Glyph struct {
	Width  uint16
	Height uint16
	Pix    []byte
}

// Font is a set of 256 glyphs sharing the same dimensions.
type Font struct {
	GlyphWidth  int
	GlyphHeight int

	glyphs [NumGlyphs]Glyph
}

// New returns a Font holding glyphs, which must have exactly 256 entries
// all of the same size with enough pixel data for that size.
func New(glyphs []Glyph) (*Font, error) {
	if len(glyphs) != NumGlyphs {
		return nil, fmt.Errorf("%w: font has %d glyphs, want %d", wire.ErrVerify, len(glyphs), NumGlyphs)
	}

	f := &Font{
		GlyphWidth:  int(glyphs[0].Width),
		GlyphHeight: int(glyphs[0].Height),
	}
	for i, g := range glyphs {
		if int(g.Width) != f.GlyphWidth || int(g.Height) != f.GlyphHeight {
			return nil, fmt.Errorf("%w: glyph %d is %dx%d, want %dx%d", wire.ErrVerify, i, g.Width, g.Height, f.GlyphWidth, f.GlyphHeight)
		}
		if len(g.Pix) != int(g.Width)*int(g.Height) {
			return nil, fmt.Errorf("%w: glyph %d has %d pixels, want %d", wire.ErrVerify, i, len(g.Pix), int(g.Width)*int(g.Height))
		}
		f.glyphs[i] = g
	}
	return f, nil
}

// NumGlyphs returns the number of glyphs, which is always 256.
func (f *Font) NumGlyphs() int {
	return NumGlyphs
}

// Glyph returns glyph i, or false if i is out of range.
func (f *Font) Glyph(i int) (Glyph, bool) {
	if i < 0 || i >= NumGlyphs {
		return Glyph{}, false
	}
	return f.glyphs[i], true
}

// GlyphPixel returns the intensity of the pixel at (x, y) in glyph i, or
// false if any argument is out of range. Glyph data is addressed as
// x*GlyphWidth + y which matches how the game lays out its font sheet.
func (f *Font) GlyphPixel(i, x, y int) (uint8, bool) {
	if i < 0 || i >= NumGlyphs || x < 0 || y < 0 || x >= f.GlyphWidth || y >= f.GlyphHeight {
		return 0, false
	}
	o := x*f.GlyphWidth + y
	pix := f.glyphs[i].Pix
	// Only reachable when glyphs are wider than they are tall
	if o >= len(pix) {
		return 0, false
	}
	return pix[o], true
}

func readGlyph(r io.Reader) (Glyph, error) {
	width, err := wire.Uint16(r)
	if err != nil {
		return Glyph{}, err
	}
	height, err := wire.Uint16(r)
	if err != nil {
		return Glyph{}, err
	}
	pix, err := wire.Bytes(r, int64(width)*int64(height))
	if err != nil {
		return Glyph{}, err
	}
	return Glyph{
		Width:  width,
		Height: height,
		Pix:    pix,
	}, nil
}

// Decode reads a font from r, which must contain nothing else.
func Decode(r io.Reader) (*Font, error) {
	glyphs := make([]Glyph, NumGlyphs)
	for i := range glyphs {
		g, err := readGlyph(r)
		if err != nil {
			return nil, fmt.Errorf("font: glyph %d: %w", i, err)
		}
		glyphs[i] = g
	}

	if err := wire.ExpectEOF(r); err != nil {
		return nil, fmt.Errorf("font: %w", err)
	}

	return New(glyphs)
}

// UnmarshalBinary decodes a font from b.
func (f *Font) UnmarshalBinary(b []byte) error {
	dec, err := Decode(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*f = *dec
	return nil
}
