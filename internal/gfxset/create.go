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
	"github.com/ostafen/lemdat/internal/planar"
	"github.com/ostafen/lemdat/internal/script"
)

// CreateOptions configures Create.
type CreateOptions struct {
	ScriptPath string
	OutDir     string // directory the script's BMP references are resolved against
	// HeaderPath and DataPath override where the header/data files are
	// written; when empty they default to doc.HeaderFile/doc.DataFile
	// (the paths the script itself names), resolved under OutDir.
	HeaderPath string
	DataPath   string
	Log        *logger.Logger
}

// Create parses a script and its referenced BMPs and rebuilds the header
// file and data file it describes — the inverse of Extract.
func Create(opts CreateOptions) error {
	log := opts.Log
	if log == nil {
		log = logger.New(os.Stderr, logger.InfoLevel)
	}

	src, err := os.ReadFile(opts.ScriptPath)
	if err != nil {
		return fmt.Errorf("gfxset: reading script: %w", err)
	}
	doc, err := script.Parse(string(src))
	if err != nil {
		return fmt.Errorf("gfxset: parsing script: %w", err)
	}

	headerPath := opts.HeaderPath
	if headerPath == "" {
		headerPath = filepath.Join(opts.OutDir, doc.HeaderFile)
	}
	dataPath := opts.DataPath
	if dataPath == "" {
		dataPath = filepath.Join(opts.OutDir, doc.DataFile)
	}

	if len(doc.Terrains) > numTerrainSlots {
		return fmt.Errorf("gfxset: %d terrain directives exceed the %d-slot limit", len(doc.Terrains), numTerrainSlots)
	}
	if len(doc.Objects) > numObjectSlots {
		return fmt.Errorf("gfxset: %d object directives exceed the %d-slot limit", len(doc.Objects), numObjectSlots)
	}

	hf := &HeaderFile{}
	var terrainBuf, objectBuf []byte

	for i, t := range doc.Terrains {
		th, chunk, err := buildTerrain(opts.OutDir, t, len(terrainBuf))
		if err != nil {
			return fmt.Errorf("gfxset: terrain %d (%s): %w", i, t.Image, err)
		}
		hf.Terrains[i] = *th
		terrainBuf = append(terrainBuf, chunk...)
	}

	for i, o := range doc.Objects {
		oh, chunk, err := buildObject(opts.OutDir, o, len(objectBuf))
		if err != nil {
			return fmt.Errorf("gfxset: object %d (%s): %w", i, o.Image, err)
		}
		hf.Objects[i] = *oh
		objectBuf = append(objectBuf, chunk...)
	}

	pb, err := fromScriptPaletteSpec(doc.Palettes)
	if err != nil {
		return fmt.Errorf("gfxset: %w", err)
	}
	hf.Palettes = pb

	if err := writeHeaderFileToPath(headerPath, hf); err != nil {
		return err
	}
	if err := writeDataSections(dataPath, terrainBuf, objectBuf); err != nil {
		return err
	}

	log.Infof("created %d terrains and %d objects into %s", len(doc.Terrains), len(doc.Objects), dataPath)
	return nil
}

// buildTerrain reads the terrain's image and mask BMPs and returns its
// header record plus the bytes to append to the growing terrain buffer.
//
// When the script gives no separate Mask file, the image BMP is the
// combined form extract writes in that mode: the real terrain occupies
// the left half and a 4-plane-expanded mask occupies the right half, so
// the effective terrain width is half the BMP's, and the mask is plane 0
// of the right half.
func buildTerrain(dir string, t script.TerrainDirective, bufLen int) (*TerrainHeader, []byte, error) {
	img, err := readBMPFile(filepath.Join(dir, t.Image))
	if err != nil {
		return nil, nil, err
	}
	if img.Planes != colorPlanes {
		return nil, nil, fmt.Errorf("image has %d planes, want %d", img.Planes, colorPlanes)
	}

	terrainWidth := img.Width
	if t.Mask == "" {
		terrainWidth = img.Width / 2
	}

	gfx := concatPlanes(img, 0, 0, terrainWidth, img.Height)

	th := &TerrainHeader{
		Width:     uint8(terrainWidth),
		Height:    uint8(img.Height),
		GfxOffset: uint16(bufLen),
	}
	chunk := append([]byte{}, gfx...)
	th.MaskOffset = uint16(bufLen + len(chunk))

	if t.Mask != "" {
		mask, err := readBMPFile(filepath.Join(dir, t.Mask))
		if err != nil {
			return nil, nil, err
		}
		if mask.Planes != 1 {
			return nil, nil, fmt.Errorf("mask image has %d planes, want 1", mask.Planes)
		}
		if mask.Width != terrainWidth || mask.Height != img.Height {
			return nil, nil, fmt.Errorf("mask dimensions %dx%d do not match terrain %dx%d", mask.Width, mask.Height, terrainWidth, img.Height)
		}
		chunk = append(chunk, concatPlanes(mask, 0, 0, terrainWidth, mask.Height)...)
	} else {
		// No separate mask file: the mask is plane 0 of the image's right half.
		chunk = append(chunk, img.GetPlaneRegion(0, terrainWidth, 0, terrainWidth, img.Height)...)
	}

	return th, chunk, nil
}

// buildObject reads the object's filmstrip and mask-strip BMPs and returns
// its header record plus the bytes to append to the growing object buffer.
//
// When the script gives no separate Mask file, the filmstrip BMP is the
// combined form extract writes in that mode: each frame's real width is
// half the BMP's, with a 4-plane-expanded mask occupying the right half,
// and the per-frame mask plane is plane 0 of that right half.
func buildObject(dir string, o script.ObjectDirective, bufLen int) (*ObjectHeader, []byte, error) {
	img, err := readBMPFile(filepath.Join(dir, o.Image))
	if err != nil {
		return nil, nil, err
	}
	if img.Planes != colorPlanes {
		return nil, nil, fmt.Errorf("image has %d planes, want %d", img.Planes, colorPlanes)
	}

	frames := int(o.Spec.FrameEnd)
	if frames <= 0 || img.Height%frames != 0 {
		return nil, nil, fmt.Errorf("filmstrip height %d is not a multiple of frame count %d", img.Height, frames)
	}
	frameHeight := img.Height / frames

	width := img.Width
	if o.Mask == "" {
		width = img.Width / 2
	}

	pb := planeBytes(width, frameHeight)
	frameDataSize := colorPlanes*pb + pb

	var mask *planar.Bitmap
	if o.Mask != "" {
		mask, err = readBMPFile(filepath.Join(dir, o.Mask))
		if err != nil {
			return nil, nil, err
		}
		if mask.Planes != 1 {
			return nil, nil, fmt.Errorf("mask image has %d planes, want 1", mask.Planes)
		}
		if mask.Height != img.Height || mask.Width != width {
			return nil, nil, fmt.Errorf("mask dimensions %dx%d do not match image %dx%d", mask.Width, mask.Height, width, img.Height)
		}
	}

	animationOffset := bufLen
	chunk := make([]byte, 0, frames*frameDataSize)
	for f := 0; f < frames; f++ {
		chunk = append(chunk, concatPlanes(img, 0, f*frameHeight, width, frameHeight)...)
		if mask != nil {
			chunk = append(chunk, concatPlanes(mask, 0, f*frameHeight, width, frameHeight)...)
		} else {
			// No separate mask file: the mask is plane 0 of the filmstrip's right half.
			chunk = append(chunk, img.GetPlaneRegion(0, width, f*frameHeight, width, frameHeight)...)
		}
	}

	oh := &ObjectHeader{
		AnimationFlags: o.Spec.AnimationFlags,
		FrameStart:     o.Spec.FrameStart,
		FrameEnd:       o.Spec.FrameEnd,
		Width:          uint8(width),
		Height:         uint8(frameHeight),
		FrameDataSize:  uint16(frameDataSize),
		// Always literally 0 rather than the real in-frame mask offset —
		// see DESIGN.md's Open Question note.
		MaskOffset:         0,
		Trigger:            TriggerFromScript(o.Spec.Trigger),
		TriggerEffect:      o.Spec.TriggerEffect,
		AnimationOffset:    uint16(animationOffset),
		PreviewFrameOffset: uint16(animationOffset + int(o.Spec.PreviewFrame)*frameDataSize),
		TrapSound:          o.Spec.TrapSound,
	}
	return oh, chunk, nil
}

// TriggerFromScript converts a parsed script trigger to the on-disk form.
func TriggerFromScript(t script.Trigger) Trigger {
	return Trigger{X: t.X, Y: t.Y, W: t.W, H: t.H}
}

// concatPlanes returns the colour-plane-major byte slice for the
// rectangle [x0, y0, w, h) of every plane of bmp, in plane order. This is
// the on-disk layout a gfx_offset or per-frame chunk expects.
func concatPlanes(bmp *planar.Bitmap, x0, y0, w, h int) []byte {
	out := make([]byte, 0, bmp.Planes*((w+7)/8)*h)
	for p := 0; p < bmp.Planes; p++ {
		out = append(out, bmp.GetPlaneRegion(p, x0, y0, w, h)...)
	}
	return out
}

func readBMPFile(path string) (*planar.Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gfxset: opening %s: %w", path, err)
	}
	defer f.Close()
	bmp, err := bmpfile.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("gfxset: reading %s: %w", path, err)
	}
	return bmp, nil
}

func writeHeaderFileToPath(path string, hf *HeaderFile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gfxset: creating header file: %w", err)
	}
	defer f.Close()
	if err := WriteHeaderFile(f, hf); err != nil {
		return fmt.Errorf("gfxset: writing header file: %w", err)
	}
	return nil
}

// writeDataSections compresses and writes the terrain section followed by
// the object section, matching the order readDataSections expects.
func writeDataSections(path string, terrainBuf, objectBuf []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gfxset: creating data file: %w", err)
	}
	defer f.Close()

	if err := datcodec.WriteSection(f, datcodec.FromData(terrainBuf)); err != nil {
		return fmt.Errorf("gfxset: writing terrain section: %w", err)
	}
	if err := datcodec.WriteSection(f, datcodec.FromData(objectBuf)); err != nil {
		return fmt.Errorf("gfxset: writing object section: %w", err)
	}
	return nil
}
