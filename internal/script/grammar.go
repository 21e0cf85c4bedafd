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
package script

import (
	"fmt"
	"io"

	"github.com/ostafen/lemdat/internal/palette"
)

// Trigger mirrors the object header's {x,y,w,h} trigger rectangle.
type Trigger struct {
	X, Y uint16
	W, H uint8
}

// ObjectSpec is the `{ key = value, ... }` block following an Object directive.
type ObjectSpec struct {
	AnimationFlags uint16
	FrameStart     uint8
	FrameEnd       uint8
	Trigger        Trigger
	TriggerEffect  uint8
	PreviewFrame   uint16
	TrapSound      uint8
}

// TerrainDirective is `Terrain "<bmp>" [Mask "<bmp>"]`.
type TerrainDirective struct {
	Image string
	Mask  string // empty if no separate mask file
}

// ObjectDirective is `Object "<bmp>" [Mask "<bmp>"] = <object_spec>`.
type ObjectDirective struct {
	Image string
	Mask  string
	Spec  ObjectSpec
}

// PaletteHalf is one 8-entry EGA or VGA palette table.
type PaletteHalf [8]palette.RGB

// PaletteSpec is the `Palettes = { ... }` block.
type PaletteSpec struct {
	EGACustom, EGAStandard, EGAPreview PaletteHalf
	VGACustom, VGAStandard, VGAPreview PaletteHalf
}

// Document is a fully parsed script: header/data file paths, then the
// ordered terrain and object directives, then the palette block.
type Document struct {
	HeaderFile string
	DataFile   string
	Terrains   []TerrainDirective
	Objects    []ObjectDirective
	Palettes   PaletteSpec
}

// Parse reads a complete script: the header/data file directives followed
// by an ordered sequence of Terrain, Object, and Palettes directives.
func Parse(src string) (*Document, error) {
	l := New(src)
	doc := &Document{}

	if err := l.ExpectIdent("HeaderFile"); err != nil {
		return nil, err
	}
	hf, err := l.GetStringLiteral()
	if err != nil {
		return nil, err
	}
	doc.HeaderFile = hf

	if err := l.ExpectIdent("DataFile"); err != nil {
		return nil, err
	}
	df, err := l.GetStringLiteral()
	if err != nil {
		return nil, err
	}
	doc.DataFile = df

	for {
		tok, err := l.PeekToken()
		if err != nil {
			break // EOF
		}
		if tok.Kind != TokenIdent {
			return nil, fmt.Errorf("script:%d: expected a directive, got %s", tok.Line, describe(tok))
		}

		switch tok.Ident {
		case "Terrain":
			t, err := parseTerrain(l)
			if err != nil {
				return nil, err
			}
			doc.Terrains = append(doc.Terrains, *t)
		case "Object":
			o, err := parseObject(l)
			if err != nil {
				return nil, err
			}
			doc.Objects = append(doc.Objects, *o)
		case "Palettes":
			p, err := parsePalettes(l)
			if err != nil {
				return nil, err
			}
			doc.Palettes = *p
		default:
			return nil, fmt.Errorf("script:%d: unknown directive %q", tok.Line, tok.Ident)
		}
	}

	return doc, nil
}

func parseMaskSuffix(l *Lexer) (string, error) {
	if !l.IsNextIdent("Mask") {
		return "", nil
	}
	if err := l.ExpectIdent("Mask"); err != nil {
		return "", err
	}
	return l.GetStringLiteral()
}

func parseTerrain(l *Lexer) (*TerrainDirective, error) {
	if err := l.ExpectIdent("Terrain"); err != nil {
		return nil, err
	}
	img, err := l.GetStringLiteral()
	if err != nil {
		return nil, err
	}
	mask, err := parseMaskSuffix(l)
	if err != nil {
		return nil, err
	}
	return &TerrainDirective{Image: img, Mask: mask}, nil
}

func parseObject(l *Lexer) (*ObjectDirective, error) {
	if err := l.ExpectIdent("Object"); err != nil {
		return nil, err
	}
	img, err := l.GetStringLiteral()
	if err != nil {
		return nil, err
	}
	mask, err := parseMaskSuffix(l)
	if err != nil {
		return nil, err
	}
	if err := l.ExpectSymbol('='); err != nil {
		return nil, err
	}

	spec, err := parseObjectSpec(l)
	if err != nil {
		return nil, err
	}
	return &ObjectDirective{Image: img, Mask: mask, Spec: *spec}, nil
}

func parseObjectSpec(l *Lexer) (*ObjectSpec, error) {
	spec := &ObjectSpec{}
	if err := l.ExpectSymbol('{'); err != nil {
		return nil, err
	}
	first := true
	for {
		tok, err := l.PeekToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenSymbol && tok.Symbol == '}' {
			l.NextToken()
			break
		}
		if !first {
			if err := l.ExpectSymbol(','); err != nil {
				return nil, err
			}
		}
		first = false

		key, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if key.Kind != TokenIdent {
			return nil, fmt.Errorf("script:%d: expected a property name, got %s", key.Line, describe(key))
		}
		if err := l.ExpectSymbol('='); err != nil {
			return nil, err
		}

		switch key.Ident {
		case "animation_flags":
			v, err := l.GetIntLiteral()
			if err != nil {
				return nil, err
			}
			spec.AnimationFlags = uint16(v)
		case "frames":
			a, b, err := parseIntPair(l)
			if err != nil {
				return nil, err
			}
			spec.FrameStart, spec.FrameEnd = uint8(a), uint8(b)
		case "trigger":
			tr, err := parseTriggerQuad(l)
			if err != nil {
				return nil, err
			}
			spec.Trigger = *tr
		case "trigger_effect":
			v, err := l.GetIntLiteral()
			if err != nil {
				return nil, err
			}
			spec.TriggerEffect = uint8(v)
		case "preview_frame":
			v, err := l.GetIntLiteral()
			if err != nil {
				return nil, err
			}
			spec.PreviewFrame = uint16(v)
		case "trap_sound":
			v, err := l.GetIntLiteral()
			if err != nil {
				return nil, err
			}
			spec.TrapSound = uint8(v)
		default:
			return nil, fmt.Errorf("script:%d: unknown object property %q", key.Line, key.Ident)
		}
	}
	return spec, nil
}

func parseIntPair(l *Lexer) (int64, int64, error) {
	if err := l.ExpectSymbol('('); err != nil {
		return 0, 0, err
	}
	a, err := l.GetIntLiteral()
	if err != nil {
		return 0, 0, err
	}
	if err := l.ExpectSymbol(','); err != nil {
		return 0, 0, err
	}
	b, err := l.GetIntLiteral()
	if err != nil {
		return 0, 0, err
	}
	if err := l.ExpectSymbol(')'); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func parseTriggerQuad(l *Lexer) (*Trigger, error) {
	if err := l.ExpectSymbol('('); err != nil {
		return nil, err
	}
	x, err := l.GetIntLiteral()
	if err != nil {
		return nil, err
	}
	if err := l.ExpectSymbol(','); err != nil {
		return nil, err
	}
	y, err := l.GetIntLiteral()
	if err != nil {
		return nil, err
	}
	if err := l.ExpectSymbol(','); err != nil {
		return nil, err
	}
	w, err := l.GetIntLiteral()
	if err != nil {
		return nil, err
	}
	if err := l.ExpectSymbol(','); err != nil {
		return nil, err
	}
	h, err := l.GetIntLiteral()
	if err != nil {
		return nil, err
	}
	if err := l.ExpectSymbol(')'); err != nil {
		return nil, err
	}
	return &Trigger{X: uint16(x), Y: uint16(y), W: uint8(w), H: uint8(h)}, nil
}

func parseRGBTriple(l *Lexer) (palette.RGB, error) {
	if err := l.ExpectSymbol('('); err != nil {
		return palette.RGB{}, err
	}
	r, err := l.GetIntLiteral()
	if err != nil {
		return palette.RGB{}, err
	}
	if err := l.ExpectSymbol(','); err != nil {
		return palette.RGB{}, err
	}
	g, err := l.GetIntLiteral()
	if err != nil {
		return palette.RGB{}, err
	}
	if err := l.ExpectSymbol(','); err != nil {
		return palette.RGB{}, err
	}
	b, err := l.GetIntLiteral()
	if err != nil {
		return palette.RGB{}, err
	}
	if err := l.ExpectSymbol(')'); err != nil {
		return palette.RGB{}, err
	}
	return palette.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

func parsePaletteHalf(l *Lexer) (PaletteHalf, error) {
	var half PaletteHalf
	if err := l.ExpectSymbol('{'); err != nil {
		return half, err
	}
	for i := 0; i < 8; i++ {
		if i > 0 {
			if err := l.ExpectSymbol(','); err != nil {
				return half, err
			}
		}
		rgb, err := parseRGBTriple(l)
		if err != nil {
			return half, err
		}
		half[i] = rgb
	}
	if err := l.ExpectSymbol('}'); err != nil {
		return half, err
	}
	return half, nil
}

func parsePalettes(l *Lexer) (*PaletteSpec, error) {
	if err := l.ExpectIdent("Palettes"); err != nil {
		return nil, err
	}
	if err := l.ExpectSymbol('='); err != nil {
		return nil, err
	}
	if err := l.ExpectSymbol('{'); err != nil {
		return nil, err
	}

	spec := &PaletteSpec{}
	first := true
	for {
		tok, err := l.PeekToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenSymbol && tok.Symbol == '}' {
			l.NextToken()
			break
		}
		if !first {
			if err := l.ExpectSymbol(','); err != nil {
				return nil, err
			}
		}
		first = false

		key, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if key.Kind != TokenIdent {
			return nil, fmt.Errorf("script:%d: expected a palette key, got %s", key.Line, describe(key))
		}
		if err := l.ExpectSymbol('='); err != nil {
			return nil, err
		}

		half, err := parsePaletteHalf(l)
		if err != nil {
			return nil, err
		}

		switch key.Ident {
		case "ega_custom":
			spec.EGACustom = half
		case "ega_standard":
			spec.EGAStandard = half
		case "ega_preview":
			spec.EGAPreview = half
		case "vga_custom":
			spec.VGACustom = half
		case "vga_standard":
			spec.VGAStandard = half
		case "vga_preview":
			spec.VGAPreview = half
		default:
			return nil, fmt.Errorf("script:%d: unknown palette key %q", key.Line, key.Ident)
		}
	}
	return spec, nil
}

// Write emits doc in the directive grammar Parse accepts, in the order a
// round trip of Parse(Write(doc)) would reproduce.
func Write(w io.Writer, doc *Document) error {
	if _, err := fmt.Fprintf(w, "HeaderFile %q\n", doc.HeaderFile); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "DataFile %q\n", doc.DataFile); err != nil {
		return err
	}
	for _, t := range doc.Terrains {
		if t.Mask != "" {
			if _, err := fmt.Fprintf(w, "Terrain %q Mask %q\n", t.Image, t.Mask); err != nil {
				return err
			}
		} else if _, err := fmt.Fprintf(w, "Terrain %q\n", t.Image); err != nil {
			return err
		}
	}
	for _, o := range doc.Objects {
		if err := writeObject(w, o); err != nil {
			return err
		}
	}
	return writePalettes(w, doc.Palettes)
}

func writeObject(w io.Writer, o ObjectDirective) error {
	if o.Mask != "" {
		if _, err := fmt.Fprintf(w, "Object %q Mask %q = {\n", o.Image, o.Mask); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintf(w, "Object %q = {\n", o.Image); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w,
		"  animation_flags = %d,\n  frames = (%d, %d),\n  trigger = (%d, %d, %d, %d),\n  trigger_effect = %d,\n  preview_frame = %d,\n  trap_sound = %d\n}\n",
		o.Spec.AnimationFlags,
		o.Spec.FrameStart, o.Spec.FrameEnd,
		o.Spec.Trigger.X, o.Spec.Trigger.Y, o.Spec.Trigger.W, o.Spec.Trigger.H,
		o.Spec.TriggerEffect, o.Spec.PreviewFrame, o.Spec.TrapSound,
	)
	return err
}

func writePaletteHalf(w io.Writer, name string, half PaletteHalf) error {
	if _, err := fmt.Fprintf(w, "  %s = {", name); err != nil {
		return err
	}
	for i, c := range half {
		sep := ", "
		if i == 0 {
			sep = ""
		}
		if _, err := fmt.Fprintf(w, "%s(%d, %d, %d)", sep, c.R, c.G, c.B); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "}")
	return err
}

func writePalettes(w io.Writer, p PaletteSpec) error {
	if _, err := fmt.Fprint(w, "Palettes = {\n"); err != nil {
		return err
	}
	halves := []struct {
		name string
		half PaletteHalf
	}{
		{"ega_custom", p.EGACustom},
		{"ega_standard", p.EGAStandard},
		{"ega_preview", p.EGAPreview},
		{"vga_custom", p.VGACustom},
		{"vga_standard", p.VGAStandard},
		{"vga_preview", p.VGAPreview},
	}
	for i, h := range halves {
		if err := writePaletteHalf(w, h.name, h.half); err != nil {
			return err
		}
		if i < len(halves)-1 {
			if _, err := fmt.Fprint(w, ",\n"); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprint(w, "\n"); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprint(w, "}\n")
	return err
}
