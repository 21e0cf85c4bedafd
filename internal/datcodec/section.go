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
package datcodec

import (
	"errors"
	"fmt"
	"io"

	"github.com/ostafen/lemdat/internal/bin"
)

// headerSize is the fixed 10-byte framing prefix on every section.
const headerSize = 10

// Section is a framed compressed blob: the 10-byte on-disk header plus
// its compressed payload.
type Section struct {
	UncompSize    uint32
	FirstByteBits uint8 // canonicalised to 8 if the stored value was 0
	Checksum      uint8
	Payload       []byte
}

// FromData compresses data into a new Section ready to be written.
func FromData(data []byte) *Section {
	payload, bits := compress(data)
	return &Section{
		UncompSize:    uint32(len(data)),
		FirstByteBits: uint8(bits),
		Checksum:      xorChecksum(payload),
		Payload:       payload,
	}
}

// Decompress expands the section's payload back into the original bytes.
func (s *Section) Decompress() []byte {
	return decompress(s.Payload, int(s.FirstByteBits), int(s.UncompSize))
}

// CompSize is the total on-disk size of the section, header included.
func (s *Section) CompSize() uint32 {
	return uint32(headerSize + len(s.Payload))
}

func xorChecksum(payload []byte) uint8 {
	var c uint8
	for _, b := range payload {
		c ^= b
	}
	return c
}

// ReadSection reads one framed section from r, verifying its checksum.
// Returning io.EOF (unwrapped) signals a clean end of the containing
// .dat file; callers loop until they see it rather than relying on any
// in-stream sentinel.
func ReadSection(r io.Reader) (*Section, error) {
	firstByteBits, err := bin.ReadU8(r)
	if err != nil {
		if err2 := firstReadEOF(err); err2 != nil {
			return nil, err2
		}
		return nil, io.EOF
	}
	checksum, err := bin.ReadU8(r)
	if err != nil {
		return nil, fmt.Errorf("dat section: reading checksum: %w", err)
	}
	uncompSize, err := bin.ReadU32BE(r)
	if err != nil {
		return nil, fmt.Errorf("dat section: reading uncomp_size: %w", err)
	}
	compSize, err := bin.ReadU32BE(r)
	if err != nil {
		return nil, fmt.Errorf("dat section: reading comp_size: %w", err)
	}
	if compSize < headerSize {
		return nil, fmt.Errorf("dat section: comp_size %d smaller than header", compSize)
	}

	payload := make([]byte, compSize-headerSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("dat section: reading payload: %w", err)
	}

	if firstByteBits == 0 {
		firstByteBits = 8
	}

	if got := xorChecksum(payload); got != checksum {
		return nil, fmt.Errorf("dat section: checksum invalid: got 0x%02x, want 0x%02x", got, checksum)
	}

	return &Section{
		UncompSize:    uncompSize,
		FirstByteBits: firstByteBits,
		Checksum:      checksum,
		Payload:       payload,
	}, nil
}

// firstReadEOF distinguishes a clean end-of-stream (no bytes at all read
// for this section) from a genuinely truncated header.
func firstReadEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("dat section: reading first_byte_bits: %w", err)
}

// WriteSection writes the section's 10-byte header followed by its payload.
func WriteSection(w io.Writer, s *Section) error {
	if err := bin.WriteU8(w, s.FirstByteBits); err != nil {
		return err
	}
	if err := bin.WriteU8(w, s.Checksum); err != nil {
		return err
	}
	if err := bin.WriteU32BE(w, s.UncompSize); err != nil {
		return err
	}
	if err := bin.WriteU32BE(w, s.CompSize()); err != nil {
		return err
	}
	if _, err := w.Write(s.Payload); err != nil {
		return fmt.Errorf("dat section: writing payload: %w", err)
	}
	return nil
}
