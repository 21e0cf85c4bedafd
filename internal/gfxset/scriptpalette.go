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
package gfxset

import (
	"fmt"

	"github.com/ostafen/lemdat/internal/palette"
	"github.com/ostafen/lemdat/internal/script"
)

// toScriptPaletteSpec renders a raw palette block for the text script.
// EGA tables are decoded to display RGB (their on-disk form is a single
// packed byte, but the grammar always writes 3-tuples); VGA tables keep
// their raw 6-bit-per-channel on-disk components, since they are already
// stored as three separate bytes and decoding them is lossy to round trip.
func toScriptPaletteSpec(b PaletteBlock) script.PaletteSpec {
	ega := func(tbl [8]uint8) script.PaletteHalf {
		var half script.PaletteHalf
		decoded := palette.FromEGA(tbl[:])
		copy(half[:], decoded.Entries)
		return half
	}
	vga := func(tbl [8][3]uint8) script.PaletteHalf {
		var half script.PaletteHalf
		for i, t := range tbl {
			half[i] = palette.RGB{R: t[0], G: t[1], B: t[2]}
		}
		return half
	}
	return script.PaletteSpec{
		EGACustom:    ega(b.EGACustom),
		EGAStandard:  ega(b.EGAStandard),
		EGAPreview:   ega(b.EGAPreview),
		VGACustom:    vga(b.VGACustom),
		VGAStandard:  vga(b.VGAStandard),
		VGAPreview:   vga(b.VGAPreview),
	}
}

// fromScriptPaletteSpec is the inverse of toScriptPaletteSpec, used on
// create to rebuild the on-disk palette block from a parsed script.
func fromScriptPaletteSpec(spec script.PaletteSpec) (PaletteBlock, error) {
	var b PaletteBlock
	ega := func(half script.PaletteHalf, dst *[8]uint8) error {
		for i, rgb := range half {
			v, err := palette.RGBToEGAByte(rgb)
			if err != nil {
				return fmt.Errorf("gfxset: palette entry %d: %w", i, err)
			}
			dst[i] = v
		}
		return nil
	}
	vga := func(half script.PaletteHalf, dst *[8][3]uint8) error {
		for i, rgb := range half {
			if rgb.R > 63 || rgb.G > 63 || rgb.B > 63 {
				return fmt.Errorf("gfxset: VGA palette entry %d out of 6-bit range: (%d,%d,%d)", i, rgb.R, rgb.G, rgb.B)
			}
			dst[i] = [3]uint8{rgb.R, rgb.G, rgb.B}
		}
		return nil
	}

	if err := ega(spec.EGACustom, &b.EGACustom); err != nil {
		return b, err
	}
	if err := ega(spec.EGAStandard, &b.EGAStandard); err != nil {
		return b, err
	}
	if err := ega(spec.EGAPreview, &b.EGAPreview); err != nil {
		return b, err
	}
	if err := vga(spec.VGACustom, &b.VGACustom); err != nil {
		return b, err
	}
	if err := vga(spec.VGAStandard, &b.VGAStandard); err != nil {
		return b, err
	}
	if err := vga(spec.VGAPreview, &b.VGAPreview); err != nil {
		return b, err
	}
	return b, nil
}
