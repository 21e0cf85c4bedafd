package maindat_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/lemdat/internal/bmpfile"
	"github.com/ostafen/lemdat/internal/maindat"
	"github.com/ostafen/lemdat/internal/palette"
	"github.com/ostafen/lemdat/internal/planar"
	"github.com/stretchr/testify/require"
)

func writeTestBMP(t *testing.T, path string, width, height, planes int) {
	t.Helper()
	pal := palette.New(1 << uint(planes))
	bmp := planar.New(width, height, planes, pal)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			bmp.SetPixel(x, y, uint8((x+y)%(1<<uint(planes))))
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, bmpfile.WriteFile(f, bmp, planar.AutoBPP(planes)))
}

func TestCreateThenExtractRoundTrip(t *testing.T) {
	tables := []maindat.SectionTable{
		{
			{Name: "sprite", Frames: 3, Width: 8, Height: 4, Planes: 2, Kind: maindat.KindAnimation},
		},
		{
			{Name: "blob", Frames: 5, Kind: maindat.KindOpaque},
		},
	}

	dir := t.TempDir()
	writeTestBMP(t, filepath.Join(dir, "tag_sprite.bmp"), 8, 12, 2)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tag_blob.bin"), []byte{1, 2, 3, 4, 5}, 0o644))

	dataPath := filepath.Join(dir, "main.dat")
	require.NoError(t, maindat.Create(maindat.CreateOptions{
		InDir:    dir,
		DataPath: dataPath,
		Tag:      "tag",
		Tables:   tables,
	}))

	outDir := t.TempDir()
	require.NoError(t, maindat.Extract(maindat.ExtractOptions{
		DataPath: dataPath,
		OutDir:   outDir,
		Tag:      "tag",
		Tables:   tables,
	}))

	gotBlob, err := os.ReadFile(filepath.Join(outDir, "tag_blob.bin"))
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4, 5}, gotBlob)

	f, err := os.Open(filepath.Join(outDir, "tag_sprite.bmp"))
	require.NoError(t, err)
	defer f.Close()
	gotBmp, err := bmpfile.ReadFile(f)
	require.NoError(t, err)
	require.Equal(t, 8, gotBmp.Width)
	require.Equal(t, 12, gotBmp.Height)

	wf, err := os.Open(filepath.Join(dir, "tag_sprite.bmp"))
	require.NoError(t, err)
	defer wf.Close()
	wantBmp, err := bmpfile.ReadFile(wf)
	require.NoError(t, err)
	require.Equal(t, wantBmp.ToIndexed(), gotBmp.ToIndexed())
}

func TestDescriptorSizes(t *testing.T) {
	d := maindat.AnimationDescriptor{Width: 16, Height: 10, Planes: 2, Frames: 4, Kind: maindat.KindAnimation}
	require.Equal(t, 2*10*2, d.FrameSize())
	require.Equal(t, 4*2*10*2, d.TotalSize())

	blob := maindat.AnimationDescriptor{Frames: 100, Kind: maindat.KindOpaque}
	require.Equal(t, 100, blob.TotalSize())
}
