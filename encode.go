package wings

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"io"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
)

// Format is an output image format.
type Format int

// Supported output image formats
const (
	FormatPNG Format = iota
	FormatGIF
	FormatBMP
)

var errUnknownFormat = errors.New("wings: unknown image format")

var formats = map[Format]string{
	FormatPNG: "png",
	FormatGIF: "gif",
	FormatBMP: "bmp",
}

// ParseFormat returns the Format named by s, such as "png".
func ParseFormat(s string) (Format, error) {
	for f, name := range formats {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return FormatPNG, fmt.Errorf("%w: %q", errUnknownFormat, s)
}

func (f Format) String() string {
	return formats[f]
}

// Ext returns the file extension for f, including the leading dot.
func (f Format) Ext() string {
	return "." + strings.ToUpper(f.String())
}

// Encode writes m to w in format f. Images that aren't already paletted
// are reduced with a median cut quantizer when writing a GIF.
func Encode(w io.Writer, m image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, m)
	case FormatGIF:
		return gif.Encode(w, m, &gif.Options{
			NumColors: 256,
			Quantizer: &quantize.MedianCutQuantizer{},
		})
	case FormatBMP:
		return bmp.Encode(w, m)
	default:
		return fmt.Errorf("%w: %d", errUnknownFormat, int(f))
	}
}
