package planar_test

import (
	"testing"

	"github.com/ostafen/lemdat/internal/palette"
	"github.com/ostafen/lemdat/internal/planar"
	"github.com/stretchr/testify/require"
)

func blackWhitePalette() *palette.Palette {
	return &palette.Palette{Entries: []palette.RGB{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}}}
}

func TestFromPlanesWrapsWithoutCopy(t *testing.T) {
	data := []byte{0xAA, 0x55}
	bmp := planar.FromPlanes(8, 1, 2, data, blackWhitePalette())
	require.Equal(t, uint8(1), bmp.GetPixel(0, 0))
	data[0] = 0x00
	require.Equal(t, uint8(0), bmp.GetPixel(0, 0))
}

func TestFromPlanesLengthMismatchPanics(t *testing.T) {
	require.Panics(t, func() {
		planar.FromPlanes(8, 1, 2, make([]byte, 1), nil)
	})
}

func TestS4GetPackedPixel(t *testing.T) {
	bmp := planar.New(16, 1, 1, blackWhitePalette())
	copy(bmp.Data, []byte{0xAA, 0x55})

	want := []uint8{1, 0, 1, 0, 1, 0, 1, 0, 0, 1, 0, 1, 0, 1, 0, 1}
	for x, w := range want {
		require.Equal(t, w, bmp.GetPixel(x, 0), "pixel %d", x)
	}
}

func TestSetPixelOnlyChangesTarget(t *testing.T) {
	bmp := planar.New(9, 3, 3, nil)
	for y := 0; y < 3; y++ {
		for x := 0; x < 9; x++ {
			bmp.SetPixel(x, y, uint8((x+y)%8))
		}
	}

	before := make([]byte, len(bmp.Data))
	copy(before, bmp.Data)

	bmp.SetPixel(4, 1, 5)
	require.Equal(t, uint8(5), bmp.GetPixel(4, 1))

	for y := 0; y < 3; y++ {
		for x := 0; x < 9; x++ {
			if x == 4 && y == 1 {
				continue
			}
			require.Less(t, bmp.GetPixel(x, y), uint8(8))
		}
	}
}

func TestPixelValuesWithinPlaneRange(t *testing.T) {
	bmp := planar.New(5, 5, 3, nil)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			bmp.SetPixel(x, y, uint8((x*y)%8))
			require.Less(t, bmp.GetPixel(x, y), uint8(1<<3))
		}
	}
}

func TestBlit(t *testing.T) {
	dst := planar.New(4, 4, 2, nil)
	src := planar.New(2, 2, 2, nil)
	src.SetPixel(0, 0, 3)
	src.SetPixel(1, 0, 1)
	src.SetPixel(0, 1, 2)
	src.SetPixel(1, 1, 0)

	dst.Blit(src, 1, 1)

	require.Equal(t, uint8(3), dst.GetPixel(1, 1))
	require.Equal(t, uint8(1), dst.GetPixel(2, 1))
	require.Equal(t, uint8(2), dst.GetPixel(1, 2))
	require.Equal(t, uint8(0), dst.GetPixel(2, 2))
	require.Equal(t, uint8(0), dst.GetPixel(0, 0))
}

func TestBlitOutOfBoundsPanics(t *testing.T) {
	dst := planar.New(4, 4, 1, nil)
	src := planar.New(2, 2, 1, nil)
	require.Panics(t, func() { dst.Blit(src, 3, 3) })
}

func TestBlitMasked(t *testing.T) {
	dst := planar.New(2, 1, 2, nil)
	dst.SetPixel(0, 0, 1)
	dst.SetPixel(1, 0, 1)

	src := planar.New(2, 1, 3, nil) // 2 colour planes + 1 mask plane
	src.SetPixel(0, 0, 0b010)       // mask bit (plane 2) clear: opaque=false
	src.SetPixel(1, 0, 0b110)       // mask bit set: opaque=true, value=2 bits = 0b10=2

	dst.BlitMasked(src, 0, 0)

	require.Equal(t, uint8(1), dst.GetPixel(0, 0), "masked-out pixel unchanged")
	require.Equal(t, uint8(2), dst.GetPixel(1, 0), "opaque pixel overwritten")
}

func TestSwizzle(t *testing.T) {
	src := planar.New(8, 1, 3, nil)
	src.SetPixel(0, 0, 0b101)

	dst := planar.Swizzle(src, []int{2, 0})
	require.Equal(t, 2, dst.Planes)
	require.Equal(t, uint8(0b11), dst.GetPixel(0, 0))
}

func TestSwizzleOutOfRangePanics(t *testing.T) {
	src := planar.New(8, 1, 2, nil)
	require.Panics(t, func() { planar.Swizzle(src, []int{5}) })
}

func TestGetPlaneRegion(t *testing.T) {
	bmp := planar.New(16, 2, 1, nil)
	bmp.SetPixel(0, 0, 1)
	bmp.SetPixel(9, 1, 1)

	region := bmp.GetPlaneRegion(0, 0, 0, 16, 2)
	require.Len(t, region, 2*2)
	require.Equal(t, byte(0x80), region[0])
	require.Equal(t, byte(0x00), region[1])
	require.Equal(t, byte(0x00), region[2])
	require.Equal(t, byte(0x40), region[3])
}

func TestToIndexed(t *testing.T) {
	bmp := planar.New(2, 2, 2, nil)
	bmp.SetPixel(0, 0, 3)
	bmp.SetPixel(1, 0, 1)
	bmp.SetPixel(0, 1, 2)
	bmp.SetPixel(1, 1, 0)

	require.Equal(t, []byte{3, 1, 2, 0}, bmp.ToIndexed())
}
