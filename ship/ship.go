/*
Package ship implements the Wings ship file format.

A ship file starts with the four byte tag "WSHP" and four reserved bytes.
Then comes the ship name as a 32-bit length followed by that many bytes of
text, seven 32-bit properties, and finally 72 RLE compressed bitmaps, one
per rotation frame, all the same size. All integers are little-endian and
nothing may follow the last frame.
*/
package ship

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bodgit/wings/bitmap"
	"github.com/bodgit/wings/wire"
	"golang.org/x/text/encoding/unicode"
)

const (
	// Magic is the tag every ship file starts with
	Magic = "WSHP"

	// NumFrames is the number of rotation frames in every ship
	NumFrames = 72

	// NumProperties is the number of numeric properties in every ship
	NumProperties = 7

	reservedSize = 4
)

// Ship is a decoded ship with its name, properties and rotation frames.
type Ship struct {
	Name       string
	Properties [NumProperties]uint32

	frames [NumFrames]*bitmap.Image
}

// New returns a Ship built from frames, which must have exactly 72 entries
// all of the same size.
func New(name string, properties [NumProperties]uint32, frames []*bitmap.Image) (*Ship, error) {
	if len(frames) != NumFrames {
		return nil, fmt.Errorf("%w: ship has %d frames, want %d", wire.ErrVerify, len(frames), NumFrames)
	}

	s := &Ship{
		Name:       name,
		Properties: properties,
	}
	for i, f := range frames {
		if !f.SameSize(frames[0]) {
			return nil, fmt.Errorf("%w: frame %d is %dx%d, want %dx%d", wire.ErrVerify, i, f.Width, f.Height, frames[0].Width, frames[0].Height)
		}
		s.frames[i] = f
	}
	return s, nil
}

// NumFrames returns the number of frames, which is always 72.
func (s *Ship) NumFrames() int {
	return NumFrames
}

// Frame returns frame i, or nil if i is out of range.
func (s *Ship) Frame(i int) *bitmap.Image {
	if i < 0 || i >= NumFrames {
		return nil
	}
	return s.frames[i]
}

// FrameWidth returns the width shared by every frame.
func (s *Ship) FrameWidth() int {
	return int(s.frames[0].Width)
}

// FrameHeight returns the height shared by every frame.
func (s *Ship) FrameHeight() int {
	return int(s.frames[0].Height)
}

// decodeName converts the raw name to UTF-8, replacing anything that isn't
// valid rather than failing.
func decodeName(b []byte) string {
	s, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return string(bytes.ToValidUTF8(b, []byte("�")))
	}
	return string(s)
}

// Decode reads a ship from r, which must contain nothing else.
func Decode(r io.Reader) (*Ship, error) {
	if err := wire.Expect(r, []byte(Magic)); err != nil {
		return nil, fmt.Errorf("ship: %w", err)
	}

	if err := wire.Skip(r, reservedSize); err != nil {
		return nil, fmt.Errorf("ship: reserved: %w", err)
	}

	length, err := wire.Uint32(r)
	if err != nil {
		return nil, fmt.Errorf("ship: name length: %w", err)
	}
	name, err := wire.Bytes(r, int64(length))
	if err != nil {
		return nil, fmt.Errorf("ship: name: %w", err)
	}

	var properties [NumProperties]uint32
	for i := range properties {
		if properties[i], err = wire.Uint32(r); err != nil {
			return nil, fmt.Errorf("ship: property %d: %w", i, err)
		}
	}

	frames := make([]*bitmap.Image, NumFrames)
	for i := range frames {
		if frames[i], err = bitmap.Decode(r); err != nil {
			return nil, fmt.Errorf("ship: frame %d: %w", i, err)
		}
	}

	if err := wire.ExpectEOF(r); err != nil {
		return nil, fmt.Errorf("ship: %w", err)
	}

	return New(decodeName(name), properties, frames)
}

// UnmarshalBinary decodes a ship from b.
func (s *Ship) UnmarshalBinary(b []byte) error {
	dec, err := Decode(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*s = *dec
	return nil
}
