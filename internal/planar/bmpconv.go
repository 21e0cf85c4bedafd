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
package planar

import (
	"fmt"

	"github.com/ostafen/lemdat/internal/palette"
)

// RowStride returns the BMP scanline byte count for width pixels packed
// at bpp bits per pixel, padded to a 4-byte multiple.
func RowStride(width, bpp int) int {
	return ((bpp*width + 31) / 32) * 4
}

// FromPacked interprets data as a bottom-up BMP pixel payload at bpp bits
// per pixel (1, 4 or 8) and returns the equivalent plane-major bitmap.
func FromPacked(data []byte, width, height, bpp int, pal *palette.Palette) (*Bitmap, error) {
	planes, err := planesForBPP(bpp)
	if err != nil {
		return nil, err
	}

	stride := RowStride(width, bpp)
	if len(data) < stride*height {
		return nil, fmt.Errorf("planar: packed data too short: have %d bytes, need %d", len(data), stride*height)
	}

	bmp := New(width, height, planes, pal)
	for y := 0; y < height; y++ {
		// Bottom-up: the BMP's first scanline is the bitmap's last row.
		row := data[(height-1-y)*stride : (height-1-y)*stride+stride]
		for x := 0; x < width; x++ {
			var v uint8
			switch bpp {
			case 1:
				byteIdx := x / 8
				bit := (row[byteIdx] >> uint(7-x%8)) & 1
				v = bit
			case 4:
				byteIdx := x / 2
				if x%2 == 0 {
					v = row[byteIdx] >> 4
				} else {
					v = row[byteIdx] & 0x0F
				}
			case 8:
				v = row[x]
			}
			bmp.SetPixel(x, y, v)
		}
	}
	return bmp, nil
}

// ToPacked packs the bitmap's pixels into a bottom-up BMP pixel payload
// at bpp bits per pixel (1, 4 or 8), 4-byte-aligned scanlines.
func (b *Bitmap) ToPacked(bpp int) ([]byte, error) {
	if _, err := planesForBPP(bpp); err != nil {
		return nil, err
	}

	stride := RowStride(b.Width, bpp)
	out := make([]byte, stride*b.Height)
	for y := 0; y < b.Height; y++ {
		row := out[(b.Height-1-y)*stride : (b.Height-1-y)*stride+stride]
		for x := 0; x < b.Width; x++ {
			v := b.GetPixel(x, y)
			switch bpp {
			case 1:
				if v&1 != 0 {
					row[x/8] |= 1 << uint(7-x%8)
				}
			case 4:
				if x%2 == 0 {
					row[x/2] |= (v & 0x0F) << 4
				} else {
					row[x/2] |= v & 0x0F
				}
			case 8:
				row[x] = v
			}
		}
	}
	return out, nil
}

// AutoBPP picks the narrowest BMP bit depth that can hold planes
// colour planes: 1-bpp when planes==1, 4-bpp when planes is 2..4, else
// 8-bpp.
func AutoBPP(planes int) int {
	switch {
	case planes == 1:
		return 1
	case planes >= 2 && planes <= 4:
		return 4
	default:
		return 8
	}
}

func planesForBPP(bpp int) (int, error) {
	switch bpp {
	case 1, 4, 8:
		return bpp, nil
	default:
		return 0, fmt.Errorf("planar: unsupported bit depth %d (must be 1, 4 or 8)", bpp)
	}
}
