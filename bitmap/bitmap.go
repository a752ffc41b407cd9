/*
Package bitmap implements the RLE compressed, palette indexed bitmap that
Wings uses for level backgrounds, parallax layers and ship frames.

The format is a header of the width and height as 16-bit values and the
length of the compressed pixel data as a 32-bit value, all little-endian,
followed by that many bytes of run-length encoded pixel indices. Pixels are
stored in row-major order starting from the top-left corner; runs may cross
row boundaries.
*/
package bitmap

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bodgit/wings/rle"
	"github.com/bodgit/wings/wire"
)

// Image is a decoded indexed bitmap. Each pixel is an index into a palette
// supplied separately.
type Image struct {
	Width  uint16
	Height uint16
	Pix    []byte
}

// ColorIndexAt returns the palette index of the pixel at (x, y), or false
// if the coordinate is outside the image.
func (m *Image) ColorIndexAt(x, y int) (uint8, bool) {
	if x < 0 || y < 0 || x >= int(m.Width) || y >= int(m.Height) {
		return 0, false
	}
	return m.Pix[y*int(m.Width)+x], true
}

// SameSize reports whether m and o have the same dimensions.
func (m *Image) SameSize(o *Image) bool {
	return m.Width == o.Width && m.Height == o.Height
}

// Decode reads one bitmap from r. Any data following the bitmap is left
// unread.
func Decode(r io.Reader) (*Image, error) {
	width, err := wire.Uint16(r)
	if err != nil {
		return nil, fmt.Errorf("bitmap: width: %w", err)
	}
	height, err := wire.Uint16(r)
	if err != nil {
		return nil, fmt.Errorf("bitmap: height: %w", err)
	}
	length, err := wire.Uint32(r)
	if err != nil {
		return nil, fmt.Errorf("bitmap: length: %w", err)
	}

	data, err := wire.Bytes(r, int64(length))
	if err != nil {
		return nil, fmt.Errorf("bitmap: pixel data: %w", err)
	}

	pix, err := rle.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("bitmap: %w", err)
	}

	if want := int(width) * int(height); len(pix) != want {
		return nil, fmt.Errorf("%w: bitmap: %dx%d decoded to %d pixels, want %d", wire.ErrVerify, width, height, len(pix), want)
	}

	return &Image{
		Width:  width,
		Height: height,
		Pix:    pix,
	}, nil
}

// UnmarshalBinary decodes the bitmap held at the start of b.
func (m *Image) UnmarshalBinary(b []byte) error {
	dec, err := Decode(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*m = *dec
	return nil
}
