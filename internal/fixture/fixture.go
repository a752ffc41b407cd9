// Package fixture builds encoded Wings resources for tests.
package fixture

import (
	"bytes"
	"encoding/binary"
)

const maxRun = 0x3f

// RLE run-length encodes pix the way the game's own tools would.
func RLE(pix []byte) []byte {
	b := new(bytes.Buffer)
	for i := 0; i < len(pix); {
		n := 1
		for i+n < len(pix) && pix[i+n] == pix[i] && n < maxRun {
			n++
		}
		// Values that look like run markers must always be wrapped in a run
		if n > 1 || pix[i]&0xc0 == 0xc0 {
			b.WriteByte(0xc0 | byte(n))
			b.WriteByte(pix[i])
		} else {
			b.WriteByte(pix[i])
		}
		i += n
	}
	return b.Bytes()
}

// RawBitmap returns a bitmap header for width by height followed by the
// already compressed body.
func RawBitmap(width, height uint16, body []byte) []byte {
	b := new(bytes.Buffer)
	_ = binary.Write(b, binary.LittleEndian, width)
	_ = binary.Write(b, binary.LittleEndian, height)
	_ = binary.Write(b, binary.LittleEndian, uint32(len(body)))
	b.Write(body)
	return b.Bytes()
}

// Bitmap returns an encoded bitmap holding pix.
func Bitmap(width, height uint16, pix []byte) []byte {
	return RawBitmap(width, height, RLE(pix))
}

// Pattern returns width*height pixels where each value is derived from its
// coordinate and seed.
func Pattern(width, height uint16, seed int) []byte {
	pix := make([]byte, int(width)*int(height))
	for y := 0; y < int(height); y++ {
		for x := 0; x < int(width); x++ {
			pix[y*int(width)+x] = byte(x*7 + y*13 + seed)
		}
	}
	return pix
}

// Palette returns 768 palette bytes where color i is (i, i/2, 255-i),
// each component shifted right by shift.
func Palette(shift uint) []byte {
	b := make([]byte, 768)
	for i := 0; i < 256; i++ {
		b[i*3+0] = byte(i) >> shift
		b[i*3+1] = byte(i/2) >> shift
		b[i*3+2] = byte(255-i) >> shift
	}
	return b
}

// Glyph returns an uncompressed glyph record.
func Glyph(width, height uint16, pix []byte) []byte {
	b := new(bytes.Buffer)
	_ = binary.Write(b, binary.LittleEndian, width)
	_ = binary.Write(b, binary.LittleEndian, height)
	b.Write(pix)
	return b.Bytes()
}

// Font returns a 256 glyph font where every glyph is width by height and
// the pixel at flat offset o of glyph g has the value byte(g+o).
func Font(width, height uint16) []byte {
	b := new(bytes.Buffer)
	for g := 0; g < 256; g++ {
		pix := make([]byte, int(width)*int(height))
		for o := range pix {
			pix[o] = byte(g + o)
		}
		b.Write(Glyph(width, height, pix))
	}
	return b.Bytes()
}

// Ship returns a ship file with the given name, properties and encoded
// frames.
func Ship(magic string, name []byte, properties [7]uint32, frames [][]byte) []byte {
	b := new(bytes.Buffer)
	b.WriteString(magic)
	b.Write([]byte{0xde, 0xad, 0xbe, 0xef})
	_ = binary.Write(b, binary.LittleEndian, uint32(len(name)))
	b.Write(name)
	_ = binary.Write(b, binary.LittleEndian, properties)
	for _, f := range frames {
		b.Write(f)
	}
	return b.Bytes()
}

// Frames returns n width by height bitmaps, each with its own pattern.
func Frames(n int, width, height uint16) [][]byte {
	frames := make([][]byte, n)
	for i := range frames {
		frames[i] = Bitmap(width, height, Pattern(width, height, i))
	}
	return frames
}

// Level describes the contents of a level file.
type Level struct {
	Palette    []byte
	Background []byte
	Parallax   []byte // nil for none
	Stars      byte
	Selector   uint16
	Params     [5]uint16
	Trailer    []byte
}

// Bytes encodes the level.
func (l Level) Bytes() []byte {
	b := new(bytes.Buffer)
	b.Write(l.Palette)
	b.Write(l.Background)
	if l.Parallax != nil {
		b.WriteByte(1)
		b.Write(l.Parallax)
	} else {
		b.WriteByte(0)
	}
	b.WriteByte(l.Stars)
	_ = binary.Write(b, binary.LittleEndian, l.Selector)
	if l.Selector == 2 {
		_ = binary.Write(b, binary.LittleEndian, l.Params)
	}
	b.Write(l.Trailer)
	return b.Bytes()
}
