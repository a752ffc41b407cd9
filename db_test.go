package wings

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/bodgit/wings/internal/fixture"
	"github.com/bodgit/wings/level"
	"github.com/bodgit/wings/ship"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexDB(t *testing.T) {
	file := filepath.Join(t.TempDir(), "index.db")

	db, err := NewIndexDB(file)
	require.NoError(t, err)

	a, err := db.FindAsset("nothing")
	require.NoError(t, err)
	assert.Nil(t, a)

	s, err := ship.Decode(bytes.NewReader(fixture.Ship(ship.Magic, []byte("Spad"), shipProperties, fixture.Frames(ship.NumFrames, 2, 2))))
	require.NoError(t, err)

	asset := Asset{Path: "SPAD.SHP", Kind: KindShip, Checksum: "0123456789ABCDEF", Width: 2, Height: 2}
	require.NoError(t, db.AddShip(asset, s))

	// Recording the same path again replaces it
	asset.Checksum = "FEDCBA9876543210"
	require.NoError(t, db.AddShip(asset, s))

	ships, err := db.Ships()
	require.NoError(t, err)
	require.Len(t, ships, 1)
	assert.Equal(t, ShipRecord{Path: "SPAD.SHP", Name: "Spad", Properties: shipProperties}, ships[0])

	l, err := level.Decode(bytes.NewReader(testLevel()))
	require.NoError(t, err)
	require.NoError(t, db.AddLevel(Asset{Path: "M1.LEV", Kind: KindLevel, Checksum: "X", Width: 40, Height: 25}, l))
	require.NoError(t, db.Close())

	// Everything survives reopening
	db, err = NewIndexDB(file)
	require.NoError(t, err)
	defer db.Close()

	a, err = db.FindAsset("SPAD.SHP")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, Asset{Path: "SPAD.SHP", Kind: KindShip, Checksum: "FEDCBA9876543210", Width: 2, Height: 2}, *a)

	r, err := db.FindLevel("M1.LEV")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, LevelRecord{
		Path:                     "M1.LEV",
		Parallax:                 true,
		ShowStars:                true,
		RainProbability:          5,
		SnowProbability:          6,
		BombingProbability:       7,
		NumCivilians:             8,
		ArmedCiviliansPercentage: 9,
	}, *r)

	r, err = db.FindLevel("SPAD.SHP")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, "EF46DB3751D8E999", checksum(nil))
	assert.NotEqual(t, checksum([]byte("a")), checksum([]byte("b")))
}
