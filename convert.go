package wings

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/wings/bitmap"
	"github.com/bodgit/wings/font"
	"github.com/bodgit/wings/level"
	"github.com/bodgit/wings/palette"
	"github.com/bodgit/wings/raster"
	"github.com/bodgit/wings/ship"
)

const (
	parallaxSuffix = "_PARALLAX"
	infoExt        = ".TXT"
)

// LevelPaths returns the paths of the background, parallax and info files
// written for a level using base as the common prefix.
func LevelPaths(base string, f Format) (string, string, string) {
	return base + f.Ext(), base + parallaxSuffix + f.Ext(), base + infoExt
}

func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

func (w *Wings) writeImage(file string, m image.Image) error {
	m = raster.Scale(m, w.opts.Scale)

	b := new(bytes.Buffer)
	if err := Encode(b, m, w.opts.Format); err != nil {
		return err
	}

	return os.WriteFile(file, b.Bytes(), 0o644)
}

func (w *Wings) levelImage(l *level.Level, m *bitmap.Image) image.Image {
	if w.opts.Format == FormatGIF {
		return raster.Paletted(m, l.Palette)
	}
	return raster.Indexed(m, l.Palette)
}

// ConvertFont converts the font in file to a font sheet image written to
// out.
func (w *Wings) ConvertFont(file, out string) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	f, err := font.Decode(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	if err := w.writeImage(out, raster.Glyphs(f)); err != nil {
		return err
	}
	w.logger.Printf("Wrote %d glyphs of %dx%d from \"%s\" to \"%s\"\n", f.NumGlyphs(), f.GlyphWidth, f.GlyphHeight, file, out)

	if w.db != nil {
		return w.db.AddFont(Asset{
			Path:     file,
			Kind:     KindFont,
			Checksum: checksum(b),
			Width:    f.GlyphWidth,
			Height:   f.GlyphHeight,
		})
	}
	return nil
}

// ConvertShip converts the ship in file to a strip of all of its frames
// colored with p and written to out.
func (w *Wings) ConvertShip(file, out string, p *palette.Palette) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	s, err := ship.Decode(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	var m image.Image
	if w.opts.Format == FormatGIF {
		m = raster.PalettedFrameStrip(s, p)
	} else {
		m = raster.FrameStrip(s, p)
	}
	if err := w.writeImage(out, m); err != nil {
		return err
	}
	w.logger.Printf("Wrote ship \"%s\" with %d frames of %dx%d from \"%s\" to \"%s\"\n", s.Name, s.NumFrames(), s.FrameWidth(), s.FrameHeight(), file, out)

	if w.db != nil {
		return w.db.AddShip(Asset{
			Path:     file,
			Kind:     KindShip,
			Checksum: checksum(b),
			Width:    s.FrameWidth(),
			Height:   s.FrameHeight(),
		}, s)
	}
	return nil
}

// ConvertLevel converts the level in file. The background, the parallax
// layer if there is one, and a text summary of the level parameters are
// written next to each other using base as the common prefix, see
// LevelPaths.
func (w *Wings) ConvertLevel(file, base string) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	l, err := level.Decode(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	background, parallax, info := LevelPaths(base, w.opts.Format)

	if err := w.writeImage(background, w.levelImage(l, l.Background)); err != nil {
		return err
	}

	if l.Parallax != nil {
		if err := w.writeImage(parallax, w.levelImage(l, l.Parallax)); err != nil {
			return err
		}
	} else {
		w.logger.Printf("No parallax layer in \"%s\"\n", file)
	}

	text, err := l.MarshalText()
	if err != nil {
		return err
	}
	if err := os.WriteFile(info, text, 0o644); err != nil {
		return err
	}
	w.logger.Printf("Wrote level %dx%d from \"%s\" to \"%s\"\n", l.Background.Width, l.Background.Height, file, background)

	if w.db != nil {
		return w.db.AddLevel(Asset{
			Path:     file,
			Kind:     KindLevel,
			Checksum: checksum(b),
			Width:    int(l.Background.Width),
			Height:   int(l.Background.Height),
		}, l)
	}
	return nil
}
