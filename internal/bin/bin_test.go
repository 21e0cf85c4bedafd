package bin_test

import (
	"bytes"
	"testing"

	"github.com/ostafen/lemdat/internal/bin"
	"github.com/stretchr/testify/require"
)

func TestRoundTripLE(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bin.WriteU16LE(&buf, 0xABCD))
	require.NoError(t, bin.WriteU32LE(&buf, 0xDEADBEEF))

	v16, err := bin.ReadU16LE(&buf)
	require.NoError(t, err)
	require.Equal(t, uint16(0xABCD), v16)

	v32, err := bin.ReadU32LE(&buf)
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), v32)
}

func TestRoundTripBE(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bin.WriteU16BE(&buf, 0xABCD))
	require.NoError(t, bin.WriteU32BE(&buf, 0xDEADBEEF))

	v16, err := bin.ReadU16BE(&buf)
	require.NoError(t, err)
	require.Equal(t, uint16(0xABCD), v16)

	v32, err := bin.ReadU32BE(&buf)
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), v32)
}

func TestShortReadFails(t *testing.T) {
	_, err := bin.ReadU32BE(bytes.NewReader([]byte{1, 2}))
	require.Error(t, err)
}

func TestByteOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bin.WriteU32BE(&buf, 0x01020304))
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf.Bytes())

	buf.Reset()
	require.NoError(t, bin.WriteU32LE(&buf, 0x01020304))
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf.Bytes())
}
