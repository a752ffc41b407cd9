package ship

import (
	"bytes"
	"testing"

	"github.com/bodgit/wings/bitmap"
	"github.com/bodgit/wings/internal/fixture"
	"github.com/bodgit/wings/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var properties = [NumProperties]uint32{1, 2, 3, 400, 500000, 0xffffffff, 7}

func TestDecode(t *testing.T) {
	s, err := Decode(bytes.NewReader(fixture.Ship(Magic, []byte("Sopwith Camel"), properties, fixture.Frames(NumFrames, 6, 4))))
	require.NoError(t, err)

	assert.Equal(t, "Sopwith Camel", s.Name)
	assert.Equal(t, properties, s.Properties)
	assert.Equal(t, NumFrames, s.NumFrames())
	assert.Equal(t, 6, s.FrameWidth())
	assert.Equal(t, 4, s.FrameHeight())

	for i := 0; i < NumFrames; i++ {
		require.NotNil(t, s.Frame(i))
		assert.Equal(t, fixture.Pattern(6, 4, i), s.Frame(i).Pix, "frame %d", i)
	}
	assert.Nil(t, s.Frame(NumFrames))
	assert.Nil(t, s.Frame(-1))
}

func TestDecodeLossyName(t *testing.T) {
	s, err := Decode(bytes.NewReader(fixture.Ship(Magic, []byte{'F', 0xff, 'k', 'k', 0xe9}, properties, fixture.Frames(NumFrames, 1, 1))))
	require.NoError(t, err)
	assert.Equal(t, "F�kk�", s.Name)
}

func TestDecodeBadMagic(t *testing.T) {
	r := bytes.NewReader(fixture.Ship("WSHQ", []byte("x"), properties, fixture.Frames(NumFrames, 1, 1)))
	total := r.Len()

	s, err := Decode(r)
	assert.ErrorIs(t, err, wire.ErrVerify)
	assert.Nil(t, s)
	// Nothing past the tag has been read
	assert.Equal(t, total-len(Magic), r.Len())
}

func TestDecodeMismatchedFrames(t *testing.T) {
	frames := fixture.Frames(NumFrames, 6, 4)
	frames[40] = fixture.Bitmap(4, 6, fixture.Pattern(4, 6, 0))

	_, err := Decode(bytes.NewReader(fixture.Ship(Magic, nil, properties, frames)))
	assert.ErrorIs(t, err, wire.ErrVerify)
}

func TestDecodeFrameCount(t *testing.T) {
	_, err := Decode(bytes.NewReader(fixture.Ship(Magic, nil, properties, fixture.Frames(NumFrames-1, 2, 2))))
	assert.ErrorIs(t, err, wire.ErrTruncated)

	_, err = Decode(bytes.NewReader(fixture.Ship(Magic, nil, properties, fixture.Frames(NumFrames+1, 2, 2))))
	assert.ErrorIs(t, err, wire.ErrVerify)
}

func TestDecodeTruncated(t *testing.T) {
	b := fixture.Ship(Magic, []byte("Fokker"), properties, fixture.Frames(NumFrames, 2, 2))
	for _, n := range []int{2, 6, 10, 14, 20, 30, len(b) - 1} {
		_, err := Decode(bytes.NewReader(b[:n]))
		assert.ErrorIs(t, err, wire.ErrTruncated, "truncated to %d bytes", n)
	}
}

func TestNew(t *testing.T) {
	frames := make([]*bitmap.Image, NumFrames)
	for i := range frames {
		frames[i] = &bitmap.Image{Width: 1, Height: 1, Pix: []byte{byte(i)}}
	}

	_, err := New("a", properties, frames[1:])
	assert.ErrorIs(t, err, wire.ErrVerify)

	s, err := New("a", properties, frames)
	require.NoError(t, err)
	assert.Equal(t, []byte{71}, s.Frame(71).Pix)
}

func TestUnmarshalBinary(t *testing.T) {
	var s Ship
	require.NoError(t, s.UnmarshalBinary(fixture.Ship(Magic, []byte("Spad"), properties, fixture.Frames(NumFrames, 3, 3))))
	assert.Equal(t, "Spad", s.Name)

	var bad Ship
	assert.Error(t, bad.UnmarshalBinary([]byte("WSHP")))
	assert.Empty(t, bad.Name)
}
