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

// Package datsplit implements the generic DAT split/join: peel every
// section off a ".dat" file into "NAME.000, .001, ..." and the inverse.
// Unlike gfxset and maindat, this doesn't interpret the decompressed
// bytes at all — it's a raw, format-agnostic escape hatch for any
// container built from framed DAT sections.
package datsplit

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ostafen/lemdat/internal/datcodec"
	"github.com/ostafen/lemdat/internal/logger"
)

// Extract reads name+".dat" and writes each decompressed section to
// name+".000", name+".001", and so on, stopping at the first read that
// reports end of file. No sentinel lives in the stream itself.
func Extract(name string, log *logger.Logger) error {
	if log == nil {
		log = logger.New(os.Stderr, logger.InfoLevel)
	}

	f, err := os.Open(name + ".dat")
	if err != nil {
		return fmt.Errorf("datsplit: opening %s.dat: %w", name, err)
	}
	defer f.Close()

	n := 0
	for {
		sec, err := datcodec.ReadSection(f)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("datsplit: reading section %d of %s.dat: %w", n, name, err)
		}

		partName := fmt.Sprintf("%s.%03d", name, n)
		if err := os.WriteFile(partName, sec.Decompress(), 0o644); err != nil {
			return fmt.Errorf("datsplit: writing %s: %w", partName, err)
		}
		n++
	}

	log.Infof("split %s.dat into %d sections", name, n)
	return nil
}

// Create reads name+".000", name+".001", ... until one is missing, and
// concatenates their compressed forms into name+".dat" (the inverse of
// Extract).
func Create(name string, log *logger.Logger) error {
	if log == nil {
		log = logger.New(os.Stderr, logger.InfoLevel)
	}

	out, err := os.Create(name + ".dat")
	if err != nil {
		return fmt.Errorf("datsplit: creating %s.dat: %w", name, err)
	}
	defer out.Close()

	n := 0
	for {
		partName := fmt.Sprintf("%s.%03d", name, n)
		data, err := os.ReadFile(partName)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				break
			}
			return fmt.Errorf("datsplit: reading %s: %w", partName, err)
		}

		if err := datcodec.WriteSection(out, datcodec.FromData(data)); err != nil {
			return fmt.Errorf("datsplit: writing section %d to %s.dat: %w", n, name, err)
		}
		n++
	}

	log.Infof("joined %d sections into %s.dat", n, name)
	return nil
}
