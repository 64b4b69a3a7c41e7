package scale_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paritytech/frame-decode/scale"
)

func TestReadCompactUint64_Modes(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want uint64
	}{
		{"single byte 0", []byte{0x00}, 0},
		{"single byte 63", []byte{0b11111100}, 63},
		{"two byte", []byte{0b00000001, 0x01}, 64},
		{"four byte", []byte{0b00000010, 0x00, 0x00, 0x01}, 1 << 22},
		{"big mode u64 max", []byte{0b00010011, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, ^uint64(0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := scale.NewCursor(tc.in)
			got, err := c.ReadCompactUint64()
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
			require.Equal(t, len(tc.in), c.Offset())
		})
	}
}

func TestReadCompactUint_Truncated(t *testing.T) {
	c := scale.NewCursor([]byte{0b00000001}) // two-byte mode, missing second byte
	_, err := c.ReadCompactUint64()
	require.Error(t, err)
	require.True(t, errors.Is(err, scale.ErrTruncated))
	require.Equal(t, 0, c.Offset(), "a failed read must not advance the cursor")
}

func TestReadCompactUint_InvalidCompact(t *testing.T) {
	// big mode with byte_count = (0xff>>2)+4 = 67, out of range for a 64-bit target.
	c := scale.NewCursor([]byte{0b11111111})
	_, err := c.ReadCompactUint64()
	require.Error(t, err)
	require.True(t, errors.Is(err, scale.ErrInvalidCompact))
	require.Equal(t, 0, c.Offset())
}

func TestReadCompactUint32_RejectsOversize(t *testing.T) {
	c := scale.NewCursor([]byte{0b00010011, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00})
	_, err := c.ReadCompactUint32()
	require.Error(t, err)
	require.True(t, errors.Is(err, scale.ErrInvalidCompact))
	require.Equal(t, 0, c.Offset())
}

func TestReadFixedInts(t *testing.T) {
	c := scale.NewCursor([]byte{0x01, 0x02, 0x00, 0x03, 0x00, 0x00, 0x00})
	b, err := c.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint8(1), b)

	u16, err := c.ReadU16()
	require.NoError(t, err)
	require.Equal(t, uint16(2), u16)

	u32, err := c.ReadU32()
	require.NoError(t, err)
	require.Equal(t, uint32(3), u32)
}

func TestReadBytes_Truncated(t *testing.T) {
	c := scale.NewCursor([]byte{0x01, 0x02})
	_, err := c.ReadBytes(3)
	require.Error(t, err)
	require.True(t, errors.Is(err, scale.ErrTruncated))
	require.Equal(t, 0, c.Offset())
}

func TestConsumedRange(t *testing.T) {
	c := scale.NewCursor([]byte{0x00, 0x01, 0x02, 0x03})
	start := c.Offset()
	_, err := c.ReadBytes(2)
	require.NoError(t, err)
	r := c.ConsumedRange(start)
	require.Equal(t, scale.Range{Start: 0, End: 2}, r)
}
