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

// bitReader consumes a payload from its last byte toward its first, and
// within each byte from the least significant bit toward the most
// significant. The first byte read yields only firstByteBits valid bits;
// every following byte yields 8.
type bitReader struct {
	payload       []byte
	bytePos       int // index into payload of the byte currently being read
	bitPos        int // next bit to read within payload[bytePos], 0 = LSB
	firstByteBits int // valid bits in payload[len(payload)-1]
}

func newBitReader(payload []byte, firstByteBits int) *bitReader {
	return &bitReader{
		payload:       payload,
		bytePos:       len(payload) - 1,
		bitPos:        0,
		firstByteBits: firstByteBits,
	}
}

func (r *bitReader) validBits() int {
	if r.bytePos == len(r.payload)-1 {
		return r.firstByteBits
	}
	return 8
}

// readBit returns the next bit of the stream, advancing the cursor toward
// the start of the payload as each byte is exhausted.
func (r *bitReader) readBit() uint {
	if r.bitPos >= r.validBits() {
		r.bytePos--
		r.bitPos = 0
	}
	bit := (r.payload[r.bytePos] >> uint(r.bitPos)) & 1
	r.bitPos++
	return uint(bit)
}

// readBits accumulates n bits MSB-first into the returned value.
func (r *bitReader) readBits(n int) uint {
	var v uint
	for i := 0; i < n; i++ {
		v = (v << 1) | r.readBit()
	}
	return v
}

func (r *bitReader) readByte() byte {
	return byte(r.readBits(8))
}

// bitWriter accumulates bits into a growing byte array by shifting each
// new bit into a byte's low end, pushing earlier bits toward its high
// end. Combined with bitReader's LSB-first, last-byte-first consumption,
// this makes the written stream read back in exactly the reverse of the
// order bits were fed to writeBit: the first bit written ends up the last
// bit read.
type bitWriter struct {
	bytes   []byte
	bitPos  int // number of bits already packed into the current (last) byte
	started bool
}

func newBitWriter() *bitWriter {
	return &bitWriter{}
}

func (w *bitWriter) writeBit(bit uint) {
	if !w.started || w.bitPos == 8 {
		w.bytes = append(w.bytes, 0)
		w.bitPos = 0
		w.started = true
	}
	last := len(w.bytes) - 1
	w.bytes[last] = (w.bytes[last] << 1) | byte(bit)
	w.bitPos++
}

// writeBits feeds the low n bits of v into writeBit LSB first, so that
// bitReader's accumulation (MSB-first over an LSB-first read order)
// reconstructs v exactly.
func (w *bitWriter) writeBits(n int, v uint) {
	for i := 0; i < n; i++ {
		w.writeBit(v & 1)
		v >>= 1
	}
}

func (w *bitWriter) writeByte(b byte) {
	w.writeBits(8, uint(b))
}

// finish returns the accumulated bytes and the number of valid bits in the
// last one (this becomes first_byte_bits, since reversed reading visits
// that byte first).
func (w *bitWriter) finish() ([]byte, int) {
	if !w.started {
		return nil, 8
	}
	bits := w.bitPos
	if bits == 0 {
		bits = 8
	}
	return w.bytes, bits
}
