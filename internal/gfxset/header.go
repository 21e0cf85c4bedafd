// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package gfxset orchestrates a graphics-set's header file and data file:
// 16 object slots, 64 terrain slots, a 96-byte palette block, and the two
// compressed DAT sections (terrain planes, object planes) that the header
// offsets index into.
package gfxset

import (
	"fmt"
	"io"

	"github.com/ostafen/lemdat/internal/bin"
	"github.com/ostafen/lemdat/internal/palette"
)

const (
	numObjectSlots  = 16
	numTerrainSlots = 64

	objectHeaderSize  = 28
	terrainHeaderSize = 8
	paletteBlockSize  = 96
)

// Trigger is the object header's interactive rectangle.
type Trigger struct {
	X, Y uint16
	W, H uint8
}

// ObjectHeader is the 28-byte, little-endian on-disk object record.
type ObjectHeader struct {
	AnimationFlags     uint16
	FrameStart         uint8
	FrameEnd           uint8
	Width              uint8
	Height             uint8
	FrameDataSize      uint16
	MaskOffset         uint16
	Reserved1          uint16
	Reserved2          uint16
	Trigger            Trigger
	TriggerEffect      uint8
	AnimationOffset    uint16
	PreviewFrameOffset uint16
	Reserved3          uint16
	TrapSound          uint8
}

// PreviewFrameNumber derives the preview frame index from the two offsets,
// or 0 when FrameDataSize is zero (an unused or degenerate slot).
func (h ObjectHeader) PreviewFrameNumber() uint16 {
	if h.FrameDataSize == 0 {
		return 0
	}
	return (h.PreviewFrameOffset - h.AnimationOffset) / h.FrameDataSize
}

// IsTerminal reports whether this slot marks the end of the used range.
func (h ObjectHeader) IsTerminal() bool { return h.Width == 0 }

func readObjectHeader(r io.Reader) (ObjectHeader, error) {
	var h ObjectHeader
	var err error
	if h.AnimationFlags, err = bin.ReadU16LE(r); err != nil {
		return h, fmt.Errorf("gfxset: object header animation_flags: %w", err)
	}
	if h.FrameStart, err = bin.ReadU8(r); err != nil {
		return h, fmt.Errorf("gfxset: object header frame_start: %w", err)
	}
	if h.FrameEnd, err = bin.ReadU8(r); err != nil {
		return h, fmt.Errorf("gfxset: object header frame_end: %w", err)
	}
	if h.Width, err = bin.ReadU8(r); err != nil {
		return h, fmt.Errorf("gfxset: object header width: %w", err)
	}
	if h.Height, err = bin.ReadU8(r); err != nil {
		return h, fmt.Errorf("gfxset: object header height: %w", err)
	}
	if h.FrameDataSize, err = bin.ReadU16LE(r); err != nil {
		return h, fmt.Errorf("gfxset: object header frame_data_size: %w", err)
	}
	if h.MaskOffset, err = bin.ReadU16LE(r); err != nil {
		return h, fmt.Errorf("gfxset: object header mask_offset: %w", err)
	}
	if h.Reserved1, err = bin.ReadU16LE(r); err != nil {
		return h, fmt.Errorf("gfxset: object header reserved1: %w", err)
	}
	if h.Reserved2, err = bin.ReadU16LE(r); err != nil {
		return h, fmt.Errorf("gfxset: object header reserved2: %w", err)
	}
	if h.Trigger.X, err = bin.ReadU16LE(r); err != nil {
		return h, fmt.Errorf("gfxset: object header trigger.x: %w", err)
	}
	if h.Trigger.Y, err = bin.ReadU16LE(r); err != nil {
		return h, fmt.Errorf("gfxset: object header trigger.y: %w", err)
	}
	if h.Trigger.W, err = bin.ReadU8(r); err != nil {
		return h, fmt.Errorf("gfxset: object header trigger.w: %w", err)
	}
	if h.Trigger.H, err = bin.ReadU8(r); err != nil {
		return h, fmt.Errorf("gfxset: object header trigger.h: %w", err)
	}
	if h.TriggerEffect, err = bin.ReadU8(r); err != nil {
		return h, fmt.Errorf("gfxset: object header trigger_effect: %w", err)
	}
	if h.AnimationOffset, err = bin.ReadU16LE(r); err != nil {
		return h, fmt.Errorf("gfxset: object header animation_offset: %w", err)
	}
	if h.PreviewFrameOffset, err = bin.ReadU16LE(r); err != nil {
		return h, fmt.Errorf("gfxset: object header preview_frame_offset: %w", err)
	}
	if h.Reserved3, err = bin.ReadU16LE(r); err != nil {
		return h, fmt.Errorf("gfxset: object header reserved3: %w", err)
	}
	if h.TrapSound, err = bin.ReadU8(r); err != nil {
		return h, fmt.Errorf("gfxset: object header trap_sound: %w", err)
	}
	return h, nil
}

func writeObjectHeader(w io.Writer, h ObjectHeader) error {
	for _, step := range []func() error{
		func() error { return bin.WriteU16LE(w, h.AnimationFlags) },
		func() error { return bin.WriteU8(w, h.FrameStart) },
		func() error { return bin.WriteU8(w, h.FrameEnd) },
		func() error { return bin.WriteU8(w, h.Width) },
		func() error { return bin.WriteU8(w, h.Height) },
		func() error { return bin.WriteU16LE(w, h.FrameDataSize) },
		func() error { return bin.WriteU16LE(w, h.MaskOffset) },
		func() error { return bin.WriteU16LE(w, h.Reserved1) },
		func() error { return bin.WriteU16LE(w, h.Reserved2) },
		func() error { return bin.WriteU16LE(w, h.Trigger.X) },
		func() error { return bin.WriteU16LE(w, h.Trigger.Y) },
		func() error { return bin.WriteU8(w, h.Trigger.W) },
		func() error { return bin.WriteU8(w, h.Trigger.H) },
		func() error { return bin.WriteU8(w, h.TriggerEffect) },
		func() error { return bin.WriteU16LE(w, h.AnimationOffset) },
		func() error { return bin.WriteU16LE(w, h.PreviewFrameOffset) },
		func() error { return bin.WriteU16LE(w, h.Reserved3) },
		func() error { return bin.WriteU8(w, h.TrapSound) },
	} {
		if err := step(); err != nil {
			return fmt.Errorf("gfxset: writing object header: %w", err)
		}
	}
	return nil
}

// TerrainHeader is the 8-byte, little-endian on-disk terrain record.
type TerrainHeader struct {
	Width      uint8
	Height     uint8
	GfxOffset  uint16
	MaskOffset uint16
	Reserved   uint16
}

// IsTerminal reports whether this slot marks the end of the used range.
func (h TerrainHeader) IsTerminal() bool { return h.Width == 0 }

func readTerrainHeader(r io.Reader) (TerrainHeader, error) {
	var h TerrainHeader
	var err error
	if h.Width, err = bin.ReadU8(r); err != nil {
		return h, fmt.Errorf("gfxset: terrain header width: %w", err)
	}
	if h.Height, err = bin.ReadU8(r); err != nil {
		return h, fmt.Errorf("gfxset: terrain header height: %w", err)
	}
	if h.GfxOffset, err = bin.ReadU16LE(r); err != nil {
		return h, fmt.Errorf("gfxset: terrain header gfx_offset: %w", err)
	}
	if h.MaskOffset, err = bin.ReadU16LE(r); err != nil {
		return h, fmt.Errorf("gfxset: terrain header mask_offset: %w", err)
	}
	if h.Reserved, err = bin.ReadU16LE(r); err != nil {
		return h, fmt.Errorf("gfxset: terrain header reserved: %w", err)
	}
	return h, nil
}

func writeTerrainHeader(w io.Writer, h TerrainHeader) error {
	for _, step := range []func() error{
		func() error { return bin.WriteU8(w, h.Width) },
		func() error { return bin.WriteU8(w, h.Height) },
		func() error { return bin.WriteU16LE(w, h.GfxOffset) },
		func() error { return bin.WriteU16LE(w, h.MaskOffset) },
		func() error { return bin.WriteU16LE(w, h.Reserved) },
	} {
		if err := step(); err != nil {
			return fmt.Errorf("gfxset: writing terrain header: %w", err)
		}
	}
	return nil
}

// PaletteBlock is the 96-byte on-disk palette block: six 8-entry tables,
// EGA (1 byte/entry) then VGA (3 bytes/entry).
type PaletteBlock struct {
	EGACustom, EGAStandard, EGAPreview [8]uint8
	VGACustom, VGAStandard, VGAPreview [8][3]uint8
}

func readPaletteBlock(r io.Reader) (PaletteBlock, error) {
	var b PaletteBlock
	for _, tbl := range []*[8]uint8{&b.EGACustom, &b.EGAStandard, &b.EGAPreview} {
		for i := range tbl {
			v, err := bin.ReadU8(r)
			if err != nil {
				return b, fmt.Errorf("gfxset: reading ega palette byte: %w", err)
			}
			tbl[i] = v
		}
	}
	for _, tbl := range []*[8][3]uint8{&b.VGACustom, &b.VGAStandard, &b.VGAPreview} {
		for i := range tbl {
			var triple [3]byte
			if _, err := io.ReadFull(r, triple[:]); err != nil {
				return b, fmt.Errorf("gfxset: reading vga palette triple: %w", err)
			}
			tbl[i] = [3]uint8{triple[0], triple[1], triple[2]}
		}
	}
	return b, nil
}

func writePaletteBlock(w io.Writer, b PaletteBlock) error {
	for _, tbl := range [][8]uint8{b.EGACustom, b.EGAStandard, b.EGAPreview} {
		for _, v := range tbl {
			if err := bin.WriteU8(w, v); err != nil {
				return fmt.Errorf("gfxset: writing ega palette byte: %w", err)
			}
		}
	}
	for _, tbl := range [][8][3]uint8{b.VGACustom, b.VGAStandard, b.VGAPreview} {
		for _, v := range tbl {
			if _, err := w.Write([]byte{v[0], v[1], v[2]}); err != nil {
				return fmt.Errorf("gfxset: writing vga palette triple: %w", err)
			}
		}
	}
	return nil
}

// BuildPalette constructs a 16-color palette from this block: colors 0..7
// from the standard table, 8..15 from the custom table, using VGA entries
// unless useEGA is set.
func (b PaletteBlock) BuildPalette(useEGA bool) (*palette.Palette, error) {
	if useEGA {
		return palette.Combined(palette.FromEGA(b.EGAStandard[:]), palette.FromEGA(b.EGACustom[:]))
	}
	return palette.Combined(palette.FromVGA(b.VGAStandard[:]), palette.FromVGA(b.VGACustom[:]))
}

// HeaderFile is the fully parsed header file: 16 object slots, 64 terrain
// slots, and the palette block.
type HeaderFile struct {
	Objects  [numObjectSlots]ObjectHeader
	Terrains [numTerrainSlots]TerrainHeader
	Palettes PaletteBlock
}

// ReadHeaderFile parses the 16+64+96-byte fixed layout: object slots,
// then terrain slots, then the palette block.
func ReadHeaderFile(r io.Reader) (*HeaderFile, error) {
	hf := &HeaderFile{}
	for i := range hf.Objects {
		h, err := readObjectHeader(r)
		if err != nil {
			return nil, fmt.Errorf("gfxset: reading object slot %d: %w", i, err)
		}
		hf.Objects[i] = h
	}
	for i := range hf.Terrains {
		h, err := readTerrainHeader(r)
		if err != nil {
			return nil, fmt.Errorf("gfxset: reading terrain slot %d: %w", i, err)
		}
		hf.Terrains[i] = h
	}
	pb, err := readPaletteBlock(r)
	if err != nil {
		return nil, fmt.Errorf("gfxset: reading palette block: %w", err)
	}
	hf.Palettes = pb
	return hf, nil
}

// WriteHeaderFile serialises hf in the canonical 16+64+96-byte order.
func WriteHeaderFile(w io.Writer, hf *HeaderFile) error {
	for i, h := range hf.Objects {
		if err := writeObjectHeader(w, h); err != nil {
			return fmt.Errorf("gfxset: writing object slot %d: %w", i, err)
		}
	}
	for i, h := range hf.Terrains {
		if err := writeTerrainHeader(w, h); err != nil {
			return fmt.Errorf("gfxset: writing terrain slot %d: %w", i, err)
		}
	}
	return writePaletteBlock(w, hf.Palettes)
}
