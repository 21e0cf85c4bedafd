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

// Package datcodec implements the bit-packed, reverse-order LZ-style
// compressor and decompressor used by Lemmings DAT sections, plus the
// 10-byte framed section header that wraps a compressed payload on disk.
package datcodec

// maxMatchDistance bounds how far back the encoder looks for a candidate
// match: the long-form back-reference offset is 12 bits wide.
const maxMatchDistance = 4095

// maxMatchLen caps the length counted for any single candidate match.
const maxMatchLen = 256

// compress encodes src into a reverse-order bitstream payload. It returns
// the payload bytes and the number of valid bits in the last byte
// appended (which becomes first_byte_bits, since reversed reading visits
// that byte first).
//
// It walks src forward, i from 0, and searches for matches ahead of i —
// decompress fills output from its high end down, so a back-reference
// always points at a position the decoder has already produced, which is
// one with a higher index than the one being decoded. Because bitWriter
// and bitReader together reverse the entire stream bit-for-bit, each
// token's atoms are written data/length first and command prefix last: a
// token's prefix, written last, becomes the first thing decompress reads
// for that token, and the last token written here is the first one
// decompress consumes.
func compress(src []byte) ([]byte, int) {
	bw := newBitWriter()
	n := len(src)

	var pending []byte
	flush := func() {
		for len(pending) > 0 {
			// The long-literal length field is 8 bits holding L-9, so a
			// single literal token carries at most 264 bytes.
			take := len(pending)
			if take > 264 {
				take = 264
			}
			chunk := pending[:take]
			for _, b := range chunk {
				bw.writeByte(b)
			}
			if take <= 8 {
				bw.writeBits(3, uint(take-1))
				bw.writeBits(2, 0b00)
			} else {
				bw.writeBits(8, uint(take-9))
				bw.writeBits(3, 0b111)
			}
			pending = pending[take:]
		}
		pending = nil
	}

	i := 0
	for i < n {
		longestLen, longestJ := 0, -1
		match2J, match3J, match4J := -1, -1, -1

		maxJ := i + maxMatchDistance
		if maxJ > n-1 {
			maxJ = n - 1
		}

		for j := i + 1; j <= maxJ; j++ {
			l := 0
			for l < maxMatchLen && i+l < n && j+l < n && src[i+l] == src[j+l] {
				l++
			}
			if l > longestLen {
				longestLen, longestJ = l, j
			}

			o := j - i - 1
			if match2J == -1 && l >= 2 && o < (1<<8) {
				match2J = j
			}
			if match3J == -1 && l >= 3 && o < (1<<9) {
				match3J = j
			}
			if match4J == -1 && l >= 4 && o < (1<<10) {
				match4J = j
			}
		}

		worth := longestLen > 4 || match4J != -1 || match3J != -1 || match2J != -1
		if !worth {
			pending = append(pending, src[i])
			i++
			continue
		}

		flush()

		switch {
		case longestLen > 4:
			o := longestJ - i - 1
			bw.writeBits(12, uint(o))
			bw.writeBits(8, uint(longestLen-1))
			bw.writeBits(3, 0b110)
			i += longestLen
		case match4J != -1:
			o := match4J - i - 1
			bw.writeBits(10, uint(o))
			bw.writeBits(3, 0b101)
			i += 4
		case match3J != -1:
			o := match3J - i - 1
			bw.writeBits(9, uint(o))
			bw.writeBits(3, 0b100)
			i += 3
		case match2J != -1:
			o := match2J - i - 1
			bw.writeBits(8, uint(o))
			bw.writeBits(2, 0b01)
			i += 2
		default:
			// Unreachable: worth is true only when one of the branches above
			// holds a qualifying candidate.
			panic("datcodec: encoder invariant violated: no match selected though one was expected")
		}
	}
	flush()

	return bw.finish()
}

// decompress reverses compress, producing exactly uncompSize bytes.
func decompress(payload []byte, firstByteBits, uncompSize int) []byte {
	out := make([]byte, uncompSize)
	if uncompSize == 0 {
		return out
	}

	br := newBitReader(payload, firstByteBits)

	// copyBack fills L bytes starting at out[i] and decreasing, each byte
	// sourced from o+1 positions ahead of itself, then returns the next
	// free output index.
	copyBack := func(i, o, l int) int {
		for k := 0; k < l; k++ {
			pos := i - k
			out[pos] = out[pos+1+o]
		}
		return i - l
	}

	i := uncompSize - 1
	for i >= 0 {
		if br.readBit() == 0 {
			if br.readBit() == 0 {
				// 00: short literal
				l := int(br.readBits(3)) + 1
				for k := 0; k < l; k++ {
					out[i] = br.readByte()
					i--
				}
			} else {
				// 01: 2-byte back-reference
				o := int(br.readBits(8))
				i = copyBack(i, o, 2)
			}
		} else {
			if br.readBit() == 0 {
				if br.readBit() == 0 {
					// 100: 3-byte back-reference
					o := int(br.readBits(9))
					i = copyBack(i, o, 3)
				} else {
					// 101: 4-byte back-reference
					o := int(br.readBits(10))
					i = copyBack(i, o, 4)
				}
			} else {
				if br.readBit() == 0 {
					// 110: long back-reference
					l := int(br.readBits(8)) + 1
					o := int(br.readBits(12))
					i = copyBack(i, o, l)
				} else {
					// 111: long literal
					l := int(br.readBits(8)) + 9
					for k := 0; k < l; k++ {
						out[i] = br.readByte()
						i--
					}
				}
			}
		}
	}
	return out
}
