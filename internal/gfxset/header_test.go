package gfxset

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestS6TerrainHeaderRoundTrip(t *testing.T) {
	h := TerrainHeader{Width: 32, Height: 40, GfxOffset: 0x1234, MaskOffset: 0x5678, Reserved: 0}

	var buf bytes.Buffer
	require.NoError(t, writeTerrainHeader(&buf, h))
	require.Equal(t, []byte{0x20, 0x28, 0x34, 0x12, 0x78, 0x56, 0x00, 0x00}, buf.Bytes())

	got, err := readTerrainHeader(&buf)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestObjectHeaderRoundTrip(t *testing.T) {
	h := ObjectHeader{
		AnimationFlags:     0x0102,
		FrameStart:         1,
		FrameEnd:           8,
		Width:              32,
		Height:             24,
		FrameDataSize:      96,
		MaskOffset:         48,
		Trigger:            Trigger{X: 10, Y: 20, W: 4, H: 4},
		TriggerEffect:      3,
		AnimationOffset:    1024,
		PreviewFrameOffset: 1024 + 96*2,
		TrapSound:          7,
	}

	var buf bytes.Buffer
	require.NoError(t, writeObjectHeader(&buf, h))
	require.Equal(t, objectHeaderSize, buf.Len())

	got, err := readObjectHeader(&buf)
	require.NoError(t, err)
	require.Equal(t, h, got)
	require.EqualValues(t, 2, got.PreviewFrameNumber())
}

func TestObjectHeaderZeroFrameDataSizePreviewNumber(t *testing.T) {
	h := ObjectHeader{}
	require.EqualValues(t, 0, h.PreviewFrameNumber())
	require.True(t, h.IsTerminal())
}

func TestHeaderFileRoundTrip(t *testing.T) {
	hf := &HeaderFile{}
	hf.Objects[0] = ObjectHeader{Width: 16, Height: 10, FrameEnd: 4, FrameDataSize: 40}
	hf.Terrains[0] = TerrainHeader{Width: 20, Height: 8, GfxOffset: 0, MaskOffset: 160}
	hf.Palettes.EGAStandard[0] = 0x3F
	hf.Palettes.VGACustom[1] = [3]uint8{63, 0, 0}

	var buf bytes.Buffer
	require.NoError(t, WriteHeaderFile(&buf, hf))
	require.Equal(t, numObjectSlots*objectHeaderSize+numTerrainSlots*terrainHeaderSize+paletteBlockSize, buf.Len())

	got, err := ReadHeaderFile(&buf)
	require.NoError(t, err)
	require.Equal(t, hf, got)
}

func TestBuildPaletteVGAAndEGA(t *testing.T) {
	var pb PaletteBlock
	pb.VGAStandard[0] = [3]uint8{63, 0, 0}
	pb.EGACustom[0] = 0x3F

	vga, err := pb.BuildPalette(false)
	require.NoError(t, err)
	require.Equal(t, uint8(252), vga.Entries[0].R)

	ega, err := pb.BuildPalette(true)
	require.NoError(t, err)
	require.Equal(t, uint8(255), ega.Entries[8].R)
	require.Equal(t, uint8(255), ega.Entries[8].G)
	require.Equal(t, uint8(255), ega.Entries[8].B)
}
