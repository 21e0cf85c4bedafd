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

// Package palette holds the RGB colour tables the planar bitmap engine
// and BMP file frame both read and write, and knows how to construct
// them from the two native EGA/VGA on-disk encodings.
package palette

import "fmt"

// RGB is a single 8-bit-per-channel colour table entry.
type RGB struct {
	R, G, B uint8
}

// Palette is an ordered sequence of colour entries, index 0 first.
type Palette struct {
	Entries []RGB
}

// New returns a palette with n black entries.
func New(n int) *Palette {
	return &Palette{Entries: make([]RGB, n)}
}

func (p *Palette) Len() int { return len(p.Entries) }

// FromVGA builds a palette from packed 6-bit VGA (R, G, B) triples, one
// triple per entry. Each channel is left-shifted to 8-bit range by a
// factor of 4 (VGA DACs use 6 significant bits per channel).
func FromVGA(triples [][3]uint8) *Palette {
	p := New(len(triples))
	for i, t := range triples {
		p.Entries[i] = RGB{R: t[0] * 4, G: t[1] * 4, B: t[2] * 4}
	}
	return p
}

// FromEGA builds a palette from packed EGA bytes in IRGB bit order: bit 3
// = intensity, bit 2 = R, bit 1 = G, bit 0 = B. Each channel maps to
// ((intensity<<1)|channelBit)*85, yielding the four levels {0, 85, 170,
// 255}.
func FromEGA(bytes []uint8) *Palette {
	p := New(len(bytes))
	for i, b := range bytes {
		p.Entries[i] = egaByteToRGB(b)
	}
	return p
}

// RGBToEGAByte inverts egaByteToRGB: c's channels must each be one of the
// four levels {0, 85, 170, 255} produced by that formula, and the high bit
// they imply (0 or 1) must agree across all three channels, since a single
// shared intensity bit produced them. Returns an error otherwise.
func RGBToEGAByte(c RGB) (uint8, error) {
	level := func(v uint8) (intensity, low uint8, err error) {
		switch v {
		case 0:
			return 0, 0, nil
		case 85:
			return 0, 1, nil
		case 170:
			return 1, 0, nil
		case 255:
			return 1, 1, nil
		default:
			return 0, 0, fmt.Errorf("palette: %d is not a valid EGA channel level", v)
		}
	}
	ri, rb, err := level(c.R)
	if err != nil {
		return 0, err
	}
	gi, gb, err := level(c.G)
	if err != nil {
		return 0, err
	}
	bi, bb, err := level(c.B)
	if err != nil {
		return 0, err
	}
	if ri != gi || gi != bi {
		return 0, fmt.Errorf("palette: EGA colour (%d,%d,%d) implies inconsistent intensity bits across channels", c.R, c.G, c.B)
	}
	return (ri << 3) | (rb << 2) | (gb << 1) | bb, nil
}

func egaByteToRGB(b uint8) RGB {
	intensity := (b >> 3) & 1
	r := (b >> 2) & 1
	g := (b >> 1) & 1
	bl := b & 1
	ch := func(bit uint8) uint8 {
		return ((intensity << 1) | bit) * 85
	}
	return RGB{R: ch(r), G: ch(g), B: ch(bl)}
}

// RGBQuad returns the BMP-native (B, G, R, 0) encoding of a palette entry.
func (c RGB) RGBQuad() [4]byte {
	return [4]byte{c.B, c.G, c.R, 0}
}

// Combined builds a 16-colour palette from a "standard" and a "custom"
// eight-entry half, as used throughout the graphics-set orchestrator:
// colours 0..7 come from standard, 8..15 from custom.
func Combined(standard, custom *Palette) (*Palette, error) {
	if standard.Len() != 8 || custom.Len() != 8 {
		return nil, fmt.Errorf("palette: combined halves must each have 8 entries, got %d and %d", standard.Len(), custom.Len())
	}
	p := New(16)
	copy(p.Entries[0:8], standard.Entries)
	copy(p.Entries[8:16], custom.Entries)
	return p, nil
}
