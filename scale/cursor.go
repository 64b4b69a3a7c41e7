// Package scale implements the primitive SCALE codec: fixed-width integer
// reads, compact (variable-length) integer reads, and a range-tracking
// cursor over an immutable byte buffer. It is the lowest-level component
// of the decoder (component A) - everything else in this module consumes
// bytes through a Cursor.
package scale

import (
	"encoding/binary"
	"math/bits"
)

// Range is a half-open [Start, End) span over an input buffer. Every named
// sub-artifact the decoder produces carries one of these instead of a copy
// of the bytes, so callers may re-slice and re-decode independently
// (spec §3, §5 "the decoder must not copy buffer bytes").
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes the range covers.
func (r Range) Len() int { return r.End - r.Start }

// Slice returns buf[r.Start:r.End]. Panics if the range is out of bounds -
// callers only ever hold ranges produced against the same buffer.
func (r Range) Slice(buf []byte) []byte { return buf[r.Start:r.End] }

// Cursor reads sequentially from an immutable byte buffer, tracking the
// current offset. A failed read never partially advances the cursor: every
// method that can fail either checks bounds before mutating c.offset or,
// like the compact readers, restores c.offset before returning an error.
type Cursor struct {
	buf    []byte
	offset int
}

// NewCursor wraps buf for sequential reading starting at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Offset returns the current read position.
func (c *Cursor) Offset() int { return c.offset }

// Len returns the number of unread bytes remaining.
func (c *Cursor) Len() int { return len(c.buf) - c.offset }

// Remaining returns the unread tail of the buffer without advancing.
func (c *Cursor) Remaining() []byte { return c.buf[c.offset:] }

// ConsumedRange returns [start, c.offset) - the bytes read since start.
func (c *Cursor) ConsumedRange(start int) Range {
	return Range{Start: start, End: c.offset}
}

// ReadBytes borrows the next n bytes and advances past them. Fails
// KindTruncated if fewer than n bytes remain.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || c.Len() < n {
		return nil, NewError(KindTruncated, "not enough bytes remaining", nil)
	}
	b := c.buf[c.offset : c.offset+n]
	c.offset += n
	return b, nil
}

// ReadU8 reads one byte.
func (c *Cursor) ReadU8() (uint8, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads a little-endian uint16.
func (c *Cursor) ReadU16() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32 reads a little-endian uint32.
func (c *Cursor) ReadU32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadU64 reads a little-endian uint64.
func (c *Cursor) ReadU64() (uint64, error) {
	b, err := c.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// U128 is an unsigned 128-bit integer, little-endian halves.
type U128 struct {
	Lo uint64
	Hi uint64
}

// ReadU128 reads a little-endian uint128.
func (c *Cursor) ReadU128() (U128, error) {
	b, err := c.ReadBytes(16)
	if err != nil {
		return U128{}, err
	}
	return U128{
		Lo: binary.LittleEndian.Uint64(b[0:8]),
		Hi: binary.LittleEndian.Uint64(b[8:16]),
	}, nil
}

// U256 is an unsigned 256-bit integer, little-endian limbs (lowest first).
type U256 [4]uint64

// ReadU256 reads a little-endian uint256.
func (c *Cursor) ReadU256() (U256, error) {
	b, err := c.ReadBytes(32)
	if err != nil {
		return U256{}, err
	}
	var out U256
	for i := 0; i < 4; i++ {
		out[i] = binary.LittleEndian.Uint64(b[i*8 : i*8+8])
	}
	return out, nil
}

// compactMode is the low two bits of a compact integer's first byte.
const (
	compactModeSingle = 0b00
	compactModeTwo    = 0b01
	compactModeFour   = 0b10
	compactModeBig    = 0b11
)

// ReadCompactUint64 reads a SCALE compact-encoded unsigned integer (§4.1):
// the low two bits of the first byte select single/two/four-byte or "big"
// mode; big mode's remaining six high bits hold byte_count-4, followed by
// that many little-endian bytes. Fails KindTruncated on a short read and
// KindInvalidCompact if big mode claims a byte_count that would overflow
// 64 bits.
func (c *Cursor) ReadCompactUint64() (uint64, error) {
	start := c.offset
	first, err := c.ReadU8()
	if err != nil {
		return 0, err
	}
	switch first & 0b11 {
	case compactModeSingle:
		return uint64(first >> 2), nil
	case compactModeTwo:
		rest, err := c.ReadU8()
		if err != nil {
			c.offset = start
			return 0, err
		}
		v := uint16(first) | uint16(rest)<<8
		return uint64(v >> 2), nil
	case compactModeFour:
		rest, err := c.ReadBytes(3)
		if err != nil {
			c.offset = start
			return 0, err
		}
		v := uint32(first) | uint32(rest[0])<<8 | uint32(rest[1])<<16 | uint32(rest[2])<<24
		return uint64(v >> 2), nil
	default: // big
		byteCount := int(first>>2) + 4
		if byteCount > 8 {
			c.offset = start
			return 0, NewError(KindInvalidCompact, "big-mode compact integer exceeds 64 bits", nil)
		}
		rest, err := c.ReadBytes(byteCount)
		if err != nil {
			c.offset = start
			return 0, err
		}
		var v uint64
		for i := byteCount - 1; i >= 0; i-- {
			v = v<<8 | uint64(rest[i])
		}
		return v, nil
	}
}

// ReadCompactUint32 is ReadCompactUint64 narrowed to 32 bits, failing
// KindInvalidCompact if the decoded value or byte_count doesn't fit.
func (c *Cursor) ReadCompactUint32() (uint32, error) {
	start := c.offset
	if c.Len() > 0 && c.buf[c.offset]&0b11 == compactModeBig && c.buf[c.offset]>>2 > 0 {
		return 0, NewError(KindInvalidCompact, "big-mode compact integer byte_count exceeds 32 bits", nil)
	}
	v, err := c.ReadCompactUint64()
	if err != nil {
		return 0, err
	}
	if bits.Len64(v) > 32 {
		c.offset = start
		return 0, NewError(KindInvalidCompact, "compact integer exceeds 32 bits", nil)
	}
	return uint32(v), nil
}

// ReadCompactUint128 reads a compact integer into a U128, supporting
// big-mode byte_count up to 16.
func (c *Cursor) ReadCompactUint128() (U128, error) {
	start := c.offset
	first, err := c.ReadU8()
	if err != nil {
		return U128{}, err
	}
	switch first & 0b11 {
	case compactModeSingle:
		return U128{Lo: uint64(first >> 2)}, nil
	case compactModeTwo:
		rest, err := c.ReadU8()
		if err != nil {
			c.offset = start
			return U128{}, err
		}
		v := uint16(first) | uint16(rest)<<8
		return U128{Lo: uint64(v >> 2)}, nil
	case compactModeFour:
		rest, err := c.ReadBytes(3)
		if err != nil {
			c.offset = start
			return U128{}, err
		}
		v := uint32(first) | uint32(rest[0])<<8 | uint32(rest[1])<<16 | uint32(rest[2])<<24
		return U128{Lo: uint64(v >> 2)}, nil
	default:
		byteCount := int(first>>2) + 4
		if byteCount > 16 {
			c.offset = start
			return U128{}, NewError(KindInvalidCompact, "big-mode compact integer exceeds 128 bits", nil)
		}
		rest, err := c.ReadBytes(byteCount)
		if err != nil {
			c.offset = start
			return U128{}, err
		}
		var padded [16]byte
		copy(padded[:], rest)
		return U128{
			Lo: binary.LittleEndian.Uint64(padded[0:8]),
			Hi: binary.LittleEndian.Uint64(padded[8:16]),
		}, nil
	}
}
