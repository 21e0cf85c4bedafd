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
package maindat

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ostafen/lemdat/internal/bmpfile"
	"github.com/ostafen/lemdat/internal/datcodec"
	"github.com/ostafen/lemdat/internal/logger"
	"github.com/ostafen/lemdat/internal/palette"
	"github.com/ostafen/lemdat/internal/planar"
)

// ExtractOptions configures Extract.
type ExtractOptions struct {
	DataPath string
	OutDir   string
	Tag      string // file name prefix, e.g. "main"
	Tables   []SectionTable
	Palette  *palette.Palette // used to tag sprite-sheet BMPs; nil is fine, AutoBPP doesn't need color
	Log      *logger.Logger
}

// Extract decompresses main.dat's sections in order and, per section,
// slices out every table slot: animation slots become a vertical
// filmstrip BMP named "<tag>_<name>.bmp", opaque slots pass through as
// "<tag>_<name>.bin".
func Extract(opts ExtractOptions) error {
	log := opts.Log
	if log == nil {
		log = logger.New(os.Stderr, logger.InfoLevel)
	}

	f, err := os.Open(opts.DataPath)
	if err != nil {
		return fmt.Errorf("maindat: opening data file: %w", err)
	}
	defer f.Close()

	written := 0
	for i, table := range opts.Tables {
		sec, err := datcodec.ReadSection(f)
		if err != nil {
			return fmt.Errorf("maindat: reading section %d: %w", i, err)
		}
		buf := sec.Decompress()

		offset := 0
		for _, d := range table {
			if offset+d.TotalSize() > len(buf) {
				return fmt.Errorf("maindat: section %d slot %q: needs %d bytes at offset %d, section has %d", i, d.Name, d.TotalSize(), offset, len(buf))
			}
			chunk := buf[offset : offset+d.TotalSize()]
			offset += d.TotalSize()

			if d.Kind == KindOpaque {
				name := fmt.Sprintf("%s_%s.bin", opts.Tag, d.Name)
				if err := os.WriteFile(filepath.Join(opts.OutDir, name), chunk, 0o644); err != nil {
					return fmt.Errorf("maindat: writing %s: %w", name, err)
				}
				written++
				continue
			}

			filmstrip := planar.New(d.Width, d.Height*d.Frames, d.Planes, opts.Palette)
			for fr := 0; fr < d.Frames; fr++ {
				frameBuf := chunk[fr*d.FrameSize() : (fr+1)*d.FrameSize()]
				frame := planar.FromPlanes(d.Width, d.Height, d.Planes, append([]byte{}, frameBuf...), opts.Palette)
				filmstrip.Blit(frame, 0, fr*d.Height)
			}

			name := fmt.Sprintf("%s_%s.bmp", opts.Tag, d.Name)
			of, err := os.Create(filepath.Join(opts.OutDir, name))
			if err != nil {
				return fmt.Errorf("maindat: creating %s: %w", name, err)
			}
			err = bmpfile.WriteFile(of, filmstrip, planar.AutoBPP(d.Planes))
			of.Close()
			if err != nil {
				return fmt.Errorf("maindat: writing %s: %w", name, err)
			}
			written++
		}
	}

	log.Infof("extracted %d slots from %d sections of %s", written, len(opts.Tables), opts.DataPath)
	return nil
}

// CreateOptions configures Create.
type CreateOptions struct {
	InDir    string // directory the extracted BMPs/bins live in
	DataPath string
	Tag      string
	Tables   []SectionTable
	Log      *logger.Logger
}

// Create is the inverse of Extract: it reads the filmstrip BMPs and
// opaque blobs named "<tag>_<name>.{bmp,bin}" back into section buffers
// and compresses one section per table entry, in order.
func Create(opts CreateOptions) error {
	log := opts.Log
	if log == nil {
		log = logger.New(os.Stderr, logger.InfoLevel)
	}

	f, err := os.Create(opts.DataPath)
	if err != nil {
		return fmt.Errorf("maindat: creating data file: %w", err)
	}
	defer f.Close()

	for i, table := range opts.Tables {
		var buf []byte
		for _, d := range table {
			if d.Kind == KindOpaque {
				name := fmt.Sprintf("%s_%s.bin", opts.Tag, d.Name)
				chunk, err := os.ReadFile(filepath.Join(opts.InDir, name))
				if err != nil {
					return fmt.Errorf("maindat: reading %s: %w", name, err)
				}
				if len(chunk) != d.TotalSize() {
					return fmt.Errorf("maindat: %s is %d bytes, want %d", name, len(chunk), d.TotalSize())
				}
				buf = append(buf, chunk...)
				continue
			}

			name := fmt.Sprintf("%s_%s.bmp", opts.Tag, d.Name)
			bf, err := os.Open(filepath.Join(opts.InDir, name))
			if err != nil {
				return fmt.Errorf("maindat: opening %s: %w", name, err)
			}
			bmp, err := bmpfile.ReadFile(bf)
			bf.Close()
			if err != nil {
				return fmt.Errorf("maindat: reading %s: %w", name, err)
			}
			// Extract stores d.Planes planes at planar.AutoBPP's bit depth, and
			// a BMP reads back with one plane per bit of depth.
			wantPlanes := planar.AutoBPP(d.Planes)
			if bmp.Width != d.Width || bmp.Planes != wantPlanes || bmp.Height != d.Height*d.Frames {
				return fmt.Errorf("maindat: %s is %dx%dx%d, want %dx%dx%d", name, bmp.Width, bmp.Height, bmp.Planes, d.Width, d.Height*d.Frames, wantPlanes)
			}

			for fr := 0; fr < d.Frames; fr++ {
				for p := 0; p < d.Planes; p++ {
					buf = append(buf, bmp.GetPlaneRegion(p, 0, fr*d.Height, d.Width, d.Height)...)
				}
			}
		}

		if err := datcodec.WriteSection(f, datcodec.FromData(buf)); err != nil {
			return fmt.Errorf("maindat: writing section %d: %w", i, err)
		}
	}

	log.Infof("created %d sections into %s", len(opts.Tables), opts.DataPath)
	return nil
}
