/*
Package palette implements the 256 color palettes used by Wings.

A palette is stored as 768 bytes of R, G, B triples. Palettes embedded in
level files use VGA DAC values of 6 bits per component which are scaled up
to 8 bits when decoded. Palettes taken from the tail of a PCX image are
already 8 bits per component.
*/
package palette

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/bodgit/wings/wire"
)

const (
	// NumColors is the number of entries in every palette
	NumColors = 256

	// Size is the encoded size of a palette in bytes
	Size = NumColors * 3
)

// Palette is an immutable table of 256 colors.
type Palette struct {
	colors [NumColors]color.RGBA
}

// New returns a Palette holding colors, which must have exactly 256 entries.
func New(colors []color.RGBA) (*Palette, error) {
	if len(colors) != NumColors {
		return nil, fmt.Errorf("%w: palette has %d colors, want %d", wire.ErrVerify, len(colors), NumColors)
	}
	p := new(Palette)
	copy(p.colors[:], colors)
	return p, nil
}

// At returns the color for index i.
func (p *Palette) At(i uint8) color.RGBA {
	return p.colors[i]
}

// Len returns the number of colors, which is always 256.
func (p *Palette) Len() int {
	return NumColors
}

// ColorPalette returns a copy of the palette suitable for an
// image.Paletted.
func (p *Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, NumColors)
	for i, c := range p.colors {
		cp[i] = c
	}
	return cp
}

// Decode reads a palette from r. If scale is set, each component is
// treated as a 6-bit value and multiplied by four.
func Decode(r io.Reader, scale bool) (*Palette, error) {
	var tmp [Size]byte
	if err := wire.ReadFull(r, tmp[:]); err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}

	p := new(Palette)
	for i := range p.colors {
		rgb := tmp[i*3 : i*3+3]
		if scale {
			// Components are assumed to be no more than 63
			p.colors[i] = color.RGBA{rgb[0] * 4, rgb[1] * 4, rgb[2] * 4, 0xff}
		} else {
			p.colors[i] = color.RGBA{rgb[0], rgb[1], rgb[2], 0xff}
		}
	}
	return p, nil
}

// UnmarshalBinary decodes an unscaled palette from exactly 768 bytes.
func (p *Palette) UnmarshalBinary(b []byte) error {
	r := bytes.NewReader(b)
	dec, err := Decode(r, false)
	if err != nil {
		return err
	}
	if err := wire.ExpectEOF(r); err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	*p = *dec
	return nil
}

// ReadPCX reads the 8-bit palette stored in the last 768 bytes of a PCX
// image.
func ReadPCX(r io.ReadSeeker) (*Palette, error) {
	if _, err := r.Seek(-Size, io.SeekEnd); err != nil {
		return nil, fmt.Errorf("palette: %w: %v", wire.ErrTruncated, err)
	}
	p, err := Decode(r, false)
	if err != nil {
		return nil, err
	}
	if err := wire.ExpectEOF(r); err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	return p, nil
}

// LoadPCX opens the PCX image at path and reads its palette.
func LoadPCX(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadPCX(f)
}
