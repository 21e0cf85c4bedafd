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

// Package planar implements the in-memory plane-major bitmap used
// throughout the Lemmings graphics pipeline: a width x height image
// stored as N 1-bpp planes, convertible to and from packed BMP
// scanlines and 8-bit indexed pixels.
package planar

import (
	"fmt"

	"github.com/ostafen/lemdat/internal/palette"
)

// maxPlanes is the hard ceiling on plane count: a pixel's packed value
// is built bit-by-bit across planes, and a byte holds at most 8 bits.
const maxPlanes = 8

// Bitmap is a plane-major 1-bpp-per-plane image.
type Bitmap struct {
	Width, Height int
	Planes        int
	Pitch         int // bytes per scanline of a single plane: ceil(width/8)
	Data          []byte
	Palette       *palette.Palette
}

// New allocates a zeroed bitmap. It panics if planes exceeds maxPlanes —
// a programming-invariant violation, not a recoverable error.
func New(width, height, planes int, pal *palette.Palette) *Bitmap {
	if planes > maxPlanes {
		panic(fmt.Sprintf("planar: planes %d exceeds maximum of %d", planes, maxPlanes))
	}
	pitch := (width + 7) / 8
	return &Bitmap{
		Width:   width,
		Height:  height,
		Planes:  planes,
		Pitch:   pitch,
		Data:    make([]byte, pitch*height*planes),
		Palette: pal,
	}
}

func (b *Bitmap) planeSize() int {
	return b.Pitch * b.Height
}

// FromPlanes wraps an existing plane-major buffer as a bitmap without
// copying. It panics if data's length doesn't match width/height/planes
// exactly, since a mismatched slice points at a structural bug upstream,
// not a recoverable input error.
func FromPlanes(width, height, planes int, data []byte, pal *palette.Palette) *Bitmap {
	pitch := (width + 7) / 8
	want := pitch * height * planes
	if len(data) != want {
		panic(fmt.Sprintf("planar: FromPlanes: data length %d, want %d (%dx%dx%d)", len(data), want, width, height, planes))
	}
	return &Bitmap{Width: width, Height: height, Planes: planes, Pitch: pitch, Data: data, Palette: pal}
}

// GetPixel gathers bit (x, y) from each plane and places plane p at bit p
// of the returned packed value.
func (b *Bitmap) GetPixel(x, y int) uint8 {
	var v uint8
	for p := 0; p < b.Planes; p++ {
		byteIdx := p*b.planeSize() + y*b.Pitch + x/8
		bit := (b.Data[byteIdx] >> uint(7-x%8)) & 1
		v |= bit << uint(p)
	}
	return v
}

// SetPixel sets or clears, for each plane, the bit at (x, y) according to
// bit p of v.
func (b *Bitmap) SetPixel(x, y int, v uint8) {
	for p := 0; p < b.Planes; p++ {
		byteIdx := p*b.planeSize() + y*b.Pitch + x/8
		mask := byte(1) << uint(7-x%8)
		if (v>>uint(p))&1 != 0 {
			b.Data[byteIdx] |= mask
		} else {
			b.Data[byteIdx] &^= mask
		}
	}
}

// Blit copies src into b at (dx, dy), pixel by pixel. Both bitmaps must
// have the same plane count and the destination region must fit.
func (b *Bitmap) Blit(src *Bitmap, dx, dy int) {
	if src.Planes != b.Planes {
		panic(fmt.Sprintf("planar: blit plane-count mismatch: dst=%d src=%d", b.Planes, src.Planes))
	}
	if dx+src.Width > b.Width || dy+src.Height > b.Height {
		panic("planar: blit out of bounds")
	}
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			b.SetPixel(dx+x, dy+y, src.GetPixel(x, y))
		}
	}
}

// BlitMasked copies src into b at (dx, dy); src carries one extra "mask"
// plane on top of b's plane count, and only pixels whose mask bit is set
// are written.
func (b *Bitmap) BlitMasked(src *Bitmap, dx, dy int) {
	if src.Planes != b.Planes+1 {
		panic(fmt.Sprintf("planar: blit-masked plane-count mismatch: dst=%d src=%d", b.Planes, src.Planes))
	}
	if dx+src.Width > b.Width || dy+src.Height > b.Height {
		panic("planar: blit out of bounds")
	}
	maskPlane := b.Planes
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			maskByteIdx := maskPlane*src.planeSize() + y*src.Pitch + x/8
			opaque := (src.Data[maskByteIdx]>>uint(7-x%8))&1 != 0
			if !opaque {
				continue
			}
			v := src.GetPixel(x, y) & ((1 << uint(b.Planes)) - 1)
			b.SetPixel(dx+x, dy+y, v)
		}
	}
}

// GetPlaneRegion packs plane's bits for the rectangle (x, y, w, h),
// row-major, MSB-leftmost, ceil(w/8) bytes per row. A row that doesn't
// end on a byte boundary flushes its partial byte.
func (b *Bitmap) GetPlaneRegion(plane, x, y, w, h int) []byte {
	rowBytes := (w + 7) / 8
	out := make([]byte, rowBytes*h)
	for ry := 0; ry < h; ry++ {
		for rx := 0; rx < w; rx++ {
			srcX, srcY := x+rx, y+ry
			byteIdx := plane*b.planeSize() + srcY*b.Pitch + srcX/8
			bit := (b.Data[byteIdx] >> uint(7-srcX%8)) & 1
			if bit != 0 {
				out[ry*rowBytes+rx/8] |= 1 << uint(7-rx%8)
			}
		}
	}
	return out
}

// Swizzle produces a new bitmap whose i-th plane is a copy of
// src.Plane[planeMap[i]]. It panics if any index is out of range.
func Swizzle(src *Bitmap, planeMap []int) *Bitmap {
	dst := New(src.Width, src.Height, len(planeMap), src.Palette)
	ps := src.planeSize()
	for i, srcPlane := range planeMap {
		if srcPlane < 0 || srcPlane >= src.Planes {
			panic(fmt.Sprintf("planar: swizzle plane index %d out of range [0,%d)", srcPlane, src.Planes))
		}
		copy(dst.Data[i*ps:(i+1)*ps], src.Data[srcPlane*ps:(srcPlane+1)*ps])
	}
	return dst
}

// ToIndexed emits one byte per pixel, top-down, row-major.
func (b *Bitmap) ToIndexed() []byte {
	out := make([]byte, b.Width*b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			out[y*b.Width+x] = b.GetPixel(x, y)
		}
	}
	return out
}
