package datcodec

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTripProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	cases := [][]byte{
		{0x5A},
		bytes.Repeat([]byte{0x00}, 100),
		bytes.Repeat([]byte{0x01, 0x02}, 50),
	}
	for n := 1; n <= 300; n += 17 {
		buf := make([]byte, n)
		rng.Read(buf)
		cases = append(cases, buf)
	}
	for n := 1; n <= 20; n++ {
		buf := make([]byte, n*50)
		for i := range buf {
			buf[i] = byte(i % 5)
		}
		cases = append(cases, buf)
	}

	for _, c := range cases {
		payload, bits := compress(c)
		got := decompress(payload, bits, len(c))
		require.Equal(t, c, got)
	}
}

func TestS1EmptySection(t *testing.T) {
	s := FromData(nil)
	require.Equal(t, uint32(0), s.UncompSize)
	require.Equal(t, uint32(10+len(s.Payload)), s.CompSize())
	require.Empty(t, s.Decompress())
}

func TestS2SingleByteShortLiteral(t *testing.T) {
	payload, bits := compress([]byte{0x5A})
	br := newBitReader(payload, bits)

	require.EqualValues(t, 0, br.readBit(), "prefix bit 1")
	require.EqualValues(t, 0, br.readBit(), "prefix bit 2")
	require.EqualValues(t, 0, br.readBits(3), "length field encodes L=1")
	require.EqualValues(t, 0x5A, br.readByte())

	got := decompress(payload, bits, 1)
	require.Equal(t, []byte{0x5A}, got)
}

func TestS3HighlyRepetitive(t *testing.T) {
	src := bytes.Repeat([]byte{0x00}, 100)
	payload, bits := compress(src)
	require.Less(t, len(payload)+10, 100+10)
	require.Equal(t, src, decompress(payload, bits, 100))
}

func TestDecompressExactLength(t *testing.T) {
	src := []byte("the quick brown fox jumps over the lazy dog, the quick brown fox")
	payload, bits := compress(src)
	got := decompress(payload, bits, len(src))
	require.Equal(t, src, got)
}
