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

// Package maindat orchestrates main.dat: a sequence of compressed DAT
// sections, each holding a fixed table of named animation-sprite slots
// (or, for a handful of slots, an opaque blob such as the PC speaker
// sound data) at a running offset.
package maindat

// Kind distinguishes an animated sprite-sheet slot from an opaque blob
// that passes through extract/create unparsed.
type Kind int

const (
	KindAnimation Kind = iota
	KindOpaque
)

// AnimationDescriptor is one named slot within a section's table:
// {name, num_frames, width, height, planes}, plus a Kind so opaque
// slots don't need to be inferred from zero dimensions.
type AnimationDescriptor struct {
	Name   string
	Frames int
	Width  int
	Height int
	Planes int
	Kind   Kind
}

func (d AnimationDescriptor) planeBytes() int {
	pitch := (d.Width + 7) / 8
	return pitch * d.Height
}

// FrameSize is the byte size of a single frame: width*height/8 bytes per
// plane, one plane's worth of pitch*height bytes times Planes.
func (d AnimationDescriptor) FrameSize() int {
	if d.Kind == KindOpaque {
		return d.Frames
	}
	return d.planeBytes() * d.Planes
}

// TotalSize is the descriptor's full byte span within its section:
// num_frames * (width*height/8) * planes for an animation slot, or the
// literal byte count stored in Frames for an opaque slot.
func (d AnimationDescriptor) TotalSize() int {
	if d.Kind == KindOpaque {
		return d.Frames
	}
	return d.Frames * d.FrameSize()
}

// SectionTable is the ordered list of slots packed into one main.dat
// section.
type SectionTable []AnimationDescriptor

// DefaultTables is a placeholder animation-geometry configuration: a
// minimal table exercising both slot kinds. The real main.dat table
// (matching the original game's monolithic file) is data, not part of
// this package's design — callers supply their own via
// ExtractOptions.Tables / CreateOptions.Tables.
var DefaultTables = []SectionTable{
	{
		{Name: "lemming_walk", Frames: 8, Width: 16, Height: 10, Planes: 2, Kind: KindAnimation},
		{Name: "lemming_fall", Frames: 4, Width: 16, Height: 10, Planes: 2, Kind: KindAnimation},
	},
	{
		{Name: "pcspkr", Frames: 1024, Kind: KindOpaque},
	},
}

// XmasTables is the placeholder alternative table selected by the CLI's
// --xmas/--christmas flag. Like DefaultTables, the real christmas-release
// geometry is caller-supplied configuration, not part of this package's
// design.
var XmasTables = DefaultTables
