package datcodec_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/ostafen/lemdat/internal/datcodec"
	"github.com/stretchr/testify/require"
)

func TestSectionRoundTrip(t *testing.T) {
	data := []byte("some lemmings terrain plane bytes, repeated repeated repeated")

	s := datcodec.FromData(data)

	var buf bytes.Buffer
	require.NoError(t, datcodec.WriteSection(&buf, s))

	got, err := datcodec.ReadSection(&buf)
	require.NoError(t, err)
	require.Equal(t, data, got.Decompress())
}

func TestSectionChecksumInvariant(t *testing.T) {
	s := datcodec.FromData([]byte("abcabcabcabcabc"))

	var c uint8
	for _, b := range s.Payload {
		c ^= b
	}
	require.Equal(t, c, s.Checksum)
}

func TestSectionChecksumMismatchRejected(t *testing.T) {
	s := datcodec.FromData([]byte("abcabcabcabcabc"))

	var buf bytes.Buffer
	require.NoError(t, datcodec.WriteSection(&buf, s))

	corrupted := buf.Bytes()
	if len(corrupted) > 10 {
		corrupted[10] ^= 0xFF
	}

	_, err := datcodec.ReadSection(bytes.NewReader(corrupted))
	require.Error(t, err)
}

func TestReadSectionEOF(t *testing.T) {
	_, err := datcodec.ReadSection(bytes.NewReader(nil))
	require.ErrorIs(t, err, io.EOF)
}
