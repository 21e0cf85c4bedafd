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

// Package bmpfile reads and writes the Windows BMP container: the
// 14-byte file header, 40-byte BITMAPINFOHEADER, and RGBQUAD colour
// table, wrapping a github.com/ostafen/lemdat/internal/planar.Bitmap.
//
// Supported: uncompressed, bottom-up, 1/4/8 bits per pixel. Anything
// else is an integrity error.
package bmpfile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ostafen/lemdat/internal/bin"
	"github.com/ostafen/lemdat/internal/palette"
	"github.com/ostafen/lemdat/internal/planar"
)

const (
	signature      = 0x4D42 // "BM"
	fileHeaderSize = 14
	infoHeaderSize = 40
)

// ReadFile parses a full BMP file into a planar bitmap.
func ReadFile(r io.Reader) (*planar.Bitmap, error) {
	sig, err := bin.ReadU16LE(r)
	if err != nil {
		return nil, fmt.Errorf("bmpfile: reading signature: %w", err)
	}
	if sig != signature {
		return nil, fmt.Errorf("bmpfile: bad signature 0x%04x, want 0x%04x", sig, signature)
	}
	if _, err := bin.ReadU32LE(r); err != nil { // file size, unused on read
		return nil, fmt.Errorf("bmpfile: reading file size: %w", err)
	}
	if _, err := bin.ReadU16LE(r); err != nil { // reserved1
		return nil, fmt.Errorf("bmpfile: reading reserved1: %w", err)
	}
	if _, err := bin.ReadU16LE(r); err != nil { // reserved2
		return nil, fmt.Errorf("bmpfile: reading reserved2: %w", err)
	}
	dataOffset, err := bin.ReadU32LE(r)
	if err != nil {
		return nil, fmt.Errorf("bmpfile: reading data offset: %w", err)
	}

	headerSize, err := bin.ReadU32LE(r)
	if err != nil {
		return nil, fmt.Errorf("bmpfile: reading info header size: %w", err)
	}
	if headerSize < infoHeaderSize {
		return nil, fmt.Errorf("bmpfile: info header size %d smaller than %d", headerSize, infoHeaderSize)
	}

	width, err := readInt32LE(r)
	if err != nil {
		return nil, fmt.Errorf("bmpfile: reading width: %w", err)
	}
	height, err := readInt32LE(r)
	if err != nil {
		return nil, fmt.Errorf("bmpfile: reading height: %w", err)
	}
	if _, err := bin.ReadU16LE(r); err != nil { // planes (BMP semantics, always 1)
		return nil, fmt.Errorf("bmpfile: reading planes: %w", err)
	}
	bitCount, err := bin.ReadU16LE(r)
	if err != nil {
		return nil, fmt.Errorf("bmpfile: reading bit count: %w", err)
	}
	compression, err := bin.ReadU32LE(r)
	if err != nil {
		return nil, fmt.Errorf("bmpfile: reading compression: %w", err)
	}
	if compression != 0 {
		return nil, fmt.Errorf("bmpfile: unsupported compression %d, only BI_RGB (0) is supported", compression)
	}
	for i := 0; i < 5; i++ { // image size + 2 pels-per-meter + 2 colour counts
		if _, err := bin.ReadU32LE(r); err != nil {
			return nil, fmt.Errorf("bmpfile: reading info header tail: %w", err)
		}
	}
	if extra := int64(headerSize) - infoHeaderSize; extra > 0 {
		if _, err := io.CopyN(io.Discard, r, extra); err != nil {
			return nil, fmt.Errorf("bmpfile: skipping extended info header: %w", err)
		}
	}

	if height < 0 {
		return nil, fmt.Errorf("bmpfile: top-down bitmaps (negative height) are not supported")
	}
	if width <= 0 || height == 0 {
		return nil, fmt.Errorf("bmpfile: invalid dimensions %dx%d", width, height)
	}

	bpp := int(bitCount)
	numColors := 0
	switch bpp {
	case 1:
		numColors = 2
	case 4:
		numColors = 16
	case 8:
		numColors = 256
	default:
		return nil, fmt.Errorf("bmpfile: unsupported bit depth %d (must be 1, 4 or 8)", bpp)
	}

	pal := palette.New(numColors)
	for i := 0; i < numColors; i++ {
		var quad [4]byte
		if _, err := io.ReadFull(r, quad[:]); err != nil {
			return nil, fmt.Errorf("bmpfile: reading palette entry %d: %w", i, err)
		}
		pal.Entries[i] = palette.RGB{B: quad[0], G: quad[1], R: quad[2]}
	}

	_ = dataOffset // header framing is self-describing; pixel data follows immediately

	stride := planar.RowStride(width, bpp)
	pixelData := make([]byte, stride*height)
	if _, err := io.ReadFull(r, pixelData); err != nil {
		return nil, fmt.Errorf("bmpfile: reading pixel data: %w", err)
	}

	return planar.FromPacked(pixelData, width, height, bpp, pal)
}

func readInt32LE(r io.Reader) (int, error) {
	v, err := bin.ReadU32LE(r)
	return int(int32(v)), err
}

// WriteFile writes bmp as a file with the given bit depth (1, 4 or 8).
func WriteFile(w io.Writer, bmp *planar.Bitmap, bpp int) error {
	pixelData, err := bmp.ToPacked(bpp)
	if err != nil {
		return err
	}

	numColors := 1 << uint(bpp)
	paletteBytes := make([]byte, 4*numColors)
	for i := 0; i < numColors; i++ {
		var c palette.RGB
		if bmp.Palette != nil && i < bmp.Palette.Len() {
			c = bmp.Palette.Entries[i]
		}
		q := c.RGBQuad()
		copy(paletteBytes[i*4:i*4+4], q[:])
	}

	dataOffset := uint32(fileHeaderSize + infoHeaderSize + len(paletteBytes))
	fileSize := dataOffset + uint32(len(pixelData))

	var buf bytes.Buffer
	if err := bin.WriteU16LE(&buf, signature); err != nil {
		return err
	}
	if err := bin.WriteU32LE(&buf, fileSize); err != nil {
		return err
	}
	if err := bin.WriteU16LE(&buf, 0); err != nil {
		return err
	}
	if err := bin.WriteU16LE(&buf, 0); err != nil {
		return err
	}
	if err := bin.WriteU32LE(&buf, dataOffset); err != nil {
		return err
	}

	if err := bin.WriteU32LE(&buf, infoHeaderSize); err != nil {
		return err
	}
	if err := bin.WriteU32LE(&buf, uint32(int32(bmp.Width))); err != nil {
		return err
	}
	if err := bin.WriteU32LE(&buf, uint32(int32(bmp.Height))); err != nil {
		return err
	}
	if err := bin.WriteU16LE(&buf, 1); err != nil { // planes, BMP semantics
		return err
	}
	if err := bin.WriteU16LE(&buf, uint16(bpp)); err != nil {
		return err
	}
	if err := bin.WriteU32LE(&buf, 0); err != nil { // compression = BI_RGB
		return err
	}
	if err := bin.WriteU32LE(&buf, uint32(len(pixelData))); err != nil {
		return err
	}
	if err := bin.WriteU32LE(&buf, 0); err != nil { // x pels/meter
		return err
	}
	if err := bin.WriteU32LE(&buf, 0); err != nil { // y pels/meter
		return err
	}
	if err := bin.WriteU32LE(&buf, uint32(numColors)); err != nil { // colors used
		return err
	}
	if err := bin.WriteU32LE(&buf, 0); err != nil { // colors important
		return err
	}

	buf.Write(paletteBytes)
	buf.Write(pixelData)

	_, err = w.Write(buf.Bytes())
	return err
}
