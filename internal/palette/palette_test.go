package palette_test

import (
	"testing"

	"github.com/ostafen/lemdat/internal/palette"
	"github.com/stretchr/testify/require"
)

func TestS5EGAAllBitsSet(t *testing.T) {
	pal := palette.FromEGA([]uint8{0x3F})
	require.Equal(t, palette.RGB{R: 255, G: 255, B: 255}, pal.Entries[0])
}

func TestS5VGAFullRed(t *testing.T) {
	pal := palette.FromVGA([][3]uint8{{63, 0, 0}})
	require.Equal(t, palette.RGB{R: 252, G: 0, B: 0}, pal.Entries[0])
}

func TestEGAByteRoundTrip(t *testing.T) {
	for b := 0; b < 16; b++ {
		rgb := palette.FromEGA([]uint8{uint8(b)}).Entries[0]
		got, err := palette.RGBToEGAByte(rgb)
		require.NoError(t, err)
		require.EqualValues(t, b, got)
	}
}

func TestRGBToEGAByteRejectsInconsistentIntensity(t *testing.T) {
	_, err := palette.RGBToEGAByte(palette.RGB{R: 255, G: 0, B: 0})
	require.Error(t, err)
}

func TestRGBToEGAByteRejectsInvalidLevel(t *testing.T) {
	_, err := palette.RGBToEGAByte(palette.RGB{R: 42, G: 0, B: 0})
	require.Error(t, err)
}

func TestCombinedRequiresEightEntries(t *testing.T) {
	_, err := palette.Combined(palette.New(7), palette.New(8))
	require.Error(t, err)
}

func TestCombinedOrdering(t *testing.T) {
	standard := palette.New(8)
	standard.Entries[3] = palette.RGB{R: 1}
	custom := palette.New(8)
	custom.Entries[2] = palette.RGB{G: 1}

	p, err := palette.Combined(standard, custom)
	require.NoError(t, err)
	require.Equal(t, palette.RGB{R: 1}, p.Entries[3])
	require.Equal(t, palette.RGB{G: 1}, p.Entries[10])
}
