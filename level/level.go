/*
Package level implements the Wings level file format.

A level file holds a 6-bit VGA palette, the level background bitmap, an
optional parallax bitmap and the environment parameters for the mission:

	768 bytes  palette, 6 bits per component
	bitmap     background
	u8         1 if a parallax bitmap follows
	bitmap     parallax, only if flagged
	u8         1 if stars are shown
	u16        2 if the five parameters below follow, otherwise defaults
	u16 x5     rain, snow, bombing, civilians, armed civilians %

All integers are little-endian.
*/
package level

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bodgit/wings/bitmap"
	"github.com/bodgit/wings/palette"
	"github.com/bodgit/wings/wire"
)

const (
	flagSet = 1

	// explicitParameters is the only selector value that means the
	// parameters are stored in the file
	explicitParameters = 2
)

// Defaults used when a level doesn't store its own parameters
const (
	DefaultRainProbability          = 0
	DefaultSnowProbability          = 0
	DefaultBombingProbability       = 4
	DefaultNumCivilians             = 50
	DefaultArmedCiviliansPercentage = 100
)

// Level is a decoded level.
type Level struct {
	Palette    *palette.Palette
	Background *bitmap.Image
	Parallax   *bitmap.Image // nil if the level has no parallax layer

	ShowStars                bool
	RainProbability          uint32
	SnowProbability          uint32
	BombingProbability       uint32
	NumCivilians             uint32
	ArmedCiviliansPercentage uint32
}

func (l *Level) setDefaults() {
	l.RainProbability = DefaultRainProbability
	l.SnowProbability = DefaultSnowProbability
	l.BombingProbability = DefaultBombingProbability
	l.NumCivilians = DefaultNumCivilians
	l.ArmedCiviliansPercentage = DefaultArmedCiviliansPercentage
}

func (l *Level) readParameters(r io.Reader) error {
	for _, p := range []*uint32{
		&l.RainProbability,
		&l.SnowProbability,
		&l.BombingProbability,
		&l.NumCivilians,
		&l.ArmedCiviliansPercentage,
	} {
		v, err := wire.Uint16(r)
		if err != nil {
			return err
		}
		*p = uint32(v)
	}
	return nil
}

// Decode reads a level from r. Anything following the level is ignored.
func Decode(r io.Reader) (*Level, error) {
	var (
		l   Level
		err error
	)

	if l.Palette, err = palette.Decode(r, true); err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}

	if l.Background, err = bitmap.Decode(r); err != nil {
		return nil, fmt.Errorf("level: background: %w", err)
	}

	parallax, err := wire.Uint8(r)
	if err != nil {
		return nil, fmt.Errorf("level: parallax flag: %w", err)
	}
	if parallax == flagSet {
		if l.Parallax, err = bitmap.Decode(r); err != nil {
			return nil, fmt.Errorf("level: parallax: %w", err)
		}
	}

	stars, err := wire.Uint8(r)
	if err != nil {
		return nil, fmt.Errorf("level: stars flag: %w", err)
	}
	l.ShowStars = stars == flagSet

	selector, err := wire.Uint16(r)
	if err != nil {
		return nil, fmt.Errorf("level: parameter selector: %w", err)
	}
	if selector == explicitParameters {
		if err := l.readParameters(r); err != nil {
			return nil, fmt.Errorf("level: parameters: %w", err)
		}
	} else {
		l.setDefaults()
	}

	return &l, nil
}

// UnmarshalBinary decodes a level from b.
func (l *Level) UnmarshalBinary(b []byte) error {
	dec, err := Decode(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*l = *dec
	return nil
}

// MarshalText renders the level parameters as the plain text summary
// written alongside the extracted images.
func (l *Level) MarshalText() ([]byte, error) {
	b := new(bytes.Buffer)
	fmt.Fprintf(b, "show_stars: %t\n", l.ShowStars)
	fmt.Fprintf(b, "rain_probability: %d\n", l.RainProbability)
	fmt.Fprintf(b, "snow_probability: %d\n", l.SnowProbability)
	fmt.Fprintf(b, "bombing_probability: %d\n", l.BombingProbability)
	fmt.Fprintf(b, "num_civilians: %d\n", l.NumCivilians)
	fmt.Fprintf(b, "armed_civilians_percentage: %d\n", l.ArmedCiviliansPercentage)
	return b.Bytes(), nil
}
