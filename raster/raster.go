/*
Package raster turns decoded Wings resources into ordinary Go images.

Fonts become a 16 by 16 sheet of grayscale glyphs, bitmaps are mapped
through a palette, and ships are laid out as a horizontal strip of all 72
rotation frames. Every function returns a new image and never modifies its
arguments, so a palette can be shared between concurrent callers.
*/
package raster

import (
	"image"
	"image/color"

	"github.com/bodgit/wings/bitmap"
	"github.com/bodgit/wings/font"
	"github.com/bodgit/wings/palette"
	"github.com/bodgit/wings/ship"
	"golang.org/x/image/draw"
)

// Glyphs renders all 256 glyphs of f into a single font sheet of
// 16*GlyphWidth by 16*GlyphHeight pixels.
//
// Glyphs are placed, and their pixels addressed, exactly as the game's own
// font sheet does it. For square glyphs this gives the usual layout of
// glyph row*16+col in grid cell (col, row).
func Glyphs(f *font.Font) *image.RGBA {
	gw, gh := f.GlyphWidth, f.GlyphHeight
	m := image.NewRGBA(image.Rect(0, 0, gw*font.GridSize, gh*font.GridSize))

	i := 0
	for gx := 0; gx < font.GridSize; gx++ {
		for gy := 0; gy < font.GridSize; gy++ {
			for x := 0; x < gw; x++ {
				for y := 0; y < gh; y++ {
					v, _ := f.GlyphPixel(i, x, y)
					// Deliberately transposed, points outside the
					// sheet (non-square glyphs) are dropped
					m.SetRGBA(gy*gh+y, gx*gw+x, color.RGBA{v, v, v, 0xff})
				}
			}
			i++
		}
	}

	return m
}

func drawIndexed(dst *image.RGBA, ox int, m *bitmap.Image, p *palette.Palette) {
	w := int(m.Width)
	for y := 0; y < int(m.Height); y++ {
		for x := 0; x < w; x++ {
			dst.SetRGBA(ox+x, y, p.At(m.Pix[y*w+x]))
		}
	}
}

// Indexed maps every pixel of m through p.
func Indexed(m *bitmap.Image, p *palette.Palette) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, int(m.Width), int(m.Height)))
	drawIndexed(dst, 0, m, p)
	return dst
}

// Paletted returns m as an image.Paletted using p, without losing the
// original color indices.
func Paletted(m *bitmap.Image, p *palette.Palette) *image.Paletted {
	dst := image.NewPaletted(image.Rect(0, 0, int(m.Width), int(m.Height)), p.ColorPalette())
	copy(dst.Pix, m.Pix)
	return dst
}

// FrameStrip lays out all frames of s left to right, each mapped through
// p, giving an image 72 frames wide and one frame high.
func FrameStrip(s *ship.Ship, p *palette.Palette) *image.RGBA {
	fw, fh := s.FrameWidth(), s.FrameHeight()
	dst := image.NewRGBA(image.Rect(0, 0, fw*s.NumFrames(), fh))
	for i := 0; i < s.NumFrames(); i++ {
		drawIndexed(dst, i*fw, s.Frame(i), p)
	}
	return dst
}

// PalettedFrameStrip is FrameStrip keeping the original color indices.
func PalettedFrameStrip(s *ship.Ship, p *palette.Palette) *image.Paletted {
	fw, fh := s.FrameWidth(), s.FrameHeight()
	dst := image.NewPaletted(image.Rect(0, 0, fw*s.NumFrames(), fh), p.ColorPalette())
	for i := 0; i < s.NumFrames(); i++ {
		f := s.Frame(i)
		for y := 0; y < fh; y++ {
			copy(dst.Pix[dst.PixOffset(i*fw, y):], f.Pix[y*fw:(y+1)*fw])
		}
	}
	return dst
}

// Scale enlarges src by an integer factor without smoothing. A factor of
// one or less returns src unchanged.
func Scale(src image.Image, factor int) image.Image {
	if factor <= 1 {
		return src
	}

	b := src.Bounds()
	r := image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor)

	var dst draw.Image
	if pm, ok := src.(*image.Paletted); ok {
		dst = image.NewPaletted(r, pm.Palette)
	} else {
		dst = image.NewRGBA(r)
	}
	draw.NearestNeighbor.Scale(dst, r, src, b, draw.Src, nil)
	return dst
}
