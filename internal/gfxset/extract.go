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
	"os"
	"path/filepath"

	"github.com/ostafen/lemdat/internal/bmpfile"
	"github.com/ostafen/lemdat/internal/datcodec"
	"github.com/ostafen/lemdat/internal/logger"
	"github.com/ostafen/lemdat/internal/palette"
	"github.com/ostafen/lemdat/internal/planar"
	"github.com/ostafen/lemdat/internal/script"
)

const colorPlanes = 4 // every terrain/object frame carries 4 colour planes plus 1 mask plane

// ExtractOptions configures Extract.
type ExtractOptions struct {
	HeaderPath string
	DataPath   string
	OutDir     string
	Tag        string // file name prefix, e.g. "set1"
	// ScriptName is the script file's name, written under OutDir. Defaults
	// to Tag+".txt" when empty; the CLI's extract-set sets this explicitly
	// since the script name ("themeN.txt") and the BMP tag ("setN") differ.
	ScriptName string
	UseEGA     bool
	// CombinedMask selects single-BMP export: the mask is expanded to
	// colorPlanes and blitted beside the image in one file (a bare
	// "Terrain"/"Object" script line, no Mask clause), instead of writing
	// the image and its 1-bpp mask as two separate files.
	CombinedMask bool
	Log          *logger.Logger
}

// Extract reads one graphics set (header file + data file) and writes one
// filmstrip/mask BMP pair per terrain and object slot, plus a script that
// drives Create back to the original files.
func Extract(opts ExtractOptions) error {
	log := opts.Log
	if log == nil {
		log = logger.New(os.Stderr, logger.InfoLevel)
	}

	hf, err := readHeaderFileFromPath(opts.HeaderPath)
	if err != nil {
		return err
	}

	terrainBuf, objectBuf, err := readDataSections(opts.DataPath)
	if err != nil {
		return err
	}

	pal, err := hf.Palettes.BuildPalette(opts.UseEGA)
	if err != nil {
		return fmt.Errorf("gfxset: building palette: %w", err)
	}

	doc := &script.Document{
		HeaderFile: filepath.Base(opts.HeaderPath),
		DataFile:   filepath.Base(opts.DataPath),
		Palettes:   toScriptPaletteSpec(hf.Palettes),
	}

	terrainCount := 0
	for i, th := range hf.Terrains {
		if th.IsTerminal() {
			break
		}
		terrainCount++
		d, err := extractTerrain(opts, i, th, terrainBuf, pal)
		if err != nil {
			return err
		}
		doc.Terrains = append(doc.Terrains, *d)
	}

	objectCount := 0
	for i, oh := range hf.Objects {
		if oh.IsTerminal() {
			break
		}
		objectCount++
		d, err := extractObject(opts, i, oh, objectBuf, pal)
		if err != nil {
			return err
		}
		doc.Objects = append(doc.Objects, *d)
	}

	scriptName := opts.ScriptName
	if scriptName == "" {
		scriptName = opts.Tag + ".txt"
	}
	scriptPath := filepath.Join(opts.OutDir, scriptName)
	f, err := os.Create(scriptPath)
	if err != nil {
		return fmt.Errorf("gfxset: creating script file: %w", err)
	}
	defer f.Close()
	if err := script.Write(f, doc); err != nil {
		return fmt.Errorf("gfxset: writing script: %w", err)
	}

	log.Infof("extracted %d terrains and %d objects from %s", terrainCount, objectCount, opts.DataPath)
	return nil
}

func readHeaderFileFromPath(path string) (*HeaderFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gfxset: opening header file: %w", err)
	}
	defer f.Close()
	return ReadHeaderFile(f)
}

// readDataSections reads exactly two DAT sections from the data file: the
// terrain plane section followed by the object plane section. Create
// writes the two sections in this same order.
func readDataSections(path string) (terrain, object []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("gfxset: opening data file: %w", err)
	}
	defer f.Close()

	ts, err := datcodec.ReadSection(f)
	if err != nil {
		return nil, nil, fmt.Errorf("gfxset: reading terrain section: %w", err)
	}
	os_, err := datcodec.ReadSection(f)
	if err != nil {
		return nil, nil, fmt.Errorf("gfxset: reading object section: %w", err)
	}
	return ts.Decompress(), os_.Decompress(), nil
}

func planeBytes(width, height int) int {
	pitch := (width + 7) / 8
	return pitch * height
}

func extractTerrain(opts ExtractOptions, idx int, th TerrainHeader, buf []byte, pal *palette.Palette) (*script.TerrainDirective, error) {
	width, height := int(th.Width), int(th.Height)
	pb := planeBytes(width, height)

	gfx := buf[th.GfxOffset : int(th.GfxOffset)+colorPlanes*pb]
	mask := buf[th.MaskOffset : int(th.MaskOffset)+pb]

	img := planar.FromPlanes(width, height, colorPlanes, append([]byte{}, gfx...), pal)
	maskBmp := planar.FromPlanes(width, height, 1, append([]byte{}, mask...), nil)

	imgName := fmt.Sprintf("%s_terrain%03d.bmp", opts.Tag, idx)

	if opts.CombinedMask {
		combined := planar.New(width*2, height, colorPlanes, pal)
		combined.Blit(img, 0, 0)
		combined.Blit(planar.Swizzle(maskBmp, []int{0, 0, 0, 0}), width, 0)
		if err := writeBMPFile(filepath.Join(opts.OutDir, imgName), combined, 4); err != nil {
			return nil, err
		}
		return &script.TerrainDirective{Image: imgName}, nil
	}

	maskName := fmt.Sprintf("%s_terrain%03d_mask.bmp", opts.Tag, idx)
	if err := writeBMPFile(filepath.Join(opts.OutDir, imgName), img, 4); err != nil {
		return nil, err
	}
	if err := writeBMPFile(filepath.Join(opts.OutDir, maskName), maskBmp, 1); err != nil {
		return nil, err
	}

	return &script.TerrainDirective{Image: imgName, Mask: maskName}, nil
}

func extractObject(opts ExtractOptions, idx int, oh ObjectHeader, buf []byte, pal *palette.Palette) (*script.ObjectDirective, error) {
	width, height := int(oh.Width), int(oh.Height)
	pb := planeBytes(width, height)
	frames := int(oh.FrameEnd)

	filmstripWidth := width
	if opts.CombinedMask {
		filmstripWidth = width * 2
	}
	filmstrip := planar.New(filmstripWidth, height*frames, colorPlanes, pal)
	var maskStrip *planar.Bitmap
	if !opts.CombinedMask {
		maskStrip = planar.New(width, height*frames, 1, nil)
	}

	for f := 0; f < frames; f++ {
		off := int(oh.AnimationOffset) + f*int(oh.FrameDataSize)
		gfx := buf[off : off+colorPlanes*pb]
		mask := buf[off+int(oh.MaskOffset) : off+int(oh.MaskOffset)+pb]

		frame := planar.FromPlanes(width, height, colorPlanes, append([]byte{}, gfx...), pal)
		maskFrame := planar.FromPlanes(width, height, 1, append([]byte{}, mask...), nil)

		filmstrip.Blit(frame, 0, f*height)
		if opts.CombinedMask {
			filmstrip.Blit(planar.Swizzle(maskFrame, []int{0, 0, 0, 0}), width, f*height)
		} else {
			maskStrip.Blit(maskFrame, 0, f*height)
		}
	}

	imgName := fmt.Sprintf("%s_object%03d.bmp", opts.Tag, idx)
	spec := script.ObjectSpec{
		AnimationFlags: oh.AnimationFlags,
		FrameStart:     oh.FrameStart,
		FrameEnd:       oh.FrameEnd,
		Trigger:        script.Trigger{X: oh.Trigger.X, Y: oh.Trigger.Y, W: oh.Trigger.W, H: oh.Trigger.H},
		TriggerEffect:  oh.TriggerEffect,
		PreviewFrame:   oh.PreviewFrameNumber(),
		TrapSound:      oh.TrapSound,
	}

	if opts.CombinedMask {
		if err := writeBMPFile(filepath.Join(opts.OutDir, imgName), filmstrip, 4); err != nil {
			return nil, err
		}
		return &script.ObjectDirective{Image: imgName, Spec: spec}, nil
	}

	maskName := fmt.Sprintf("%s_object%03d_mask.bmp", opts.Tag, idx)
	if err := writeBMPFile(filepath.Join(opts.OutDir, imgName), filmstrip, 4); err != nil {
		return nil, err
	}
	if err := writeBMPFile(filepath.Join(opts.OutDir, maskName), maskStrip, 1); err != nil {
		return nil, err
	}

	return &script.ObjectDirective{Image: imgName, Mask: maskName, Spec: spec}, nil
}

func writeBMPFile(path string, bmp *planar.Bitmap, bpp int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gfxset: creating %s: %w", path, err)
	}
	defer f.Close()
	if err := bmpfile.WriteFile(f, bmp, bpp); err != nil {
		return fmt.Errorf("gfxset: writing %s: %w", path, err)
	}
	return nil
}
