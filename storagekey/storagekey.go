// Package storagekey implements the storage-key decoder and encoder
// (component G, spec §4.7 and §4.9): the twox128(pallet)++twox128(entry)
// prefixed, per-part-hashed key format used by every storage map.
package storagekey

import (
	"fmt"

	"github.com/paritytech/frame-decode/hashers"
	"github.com/paritytech/frame-decode/metadata"
	"github.com/paritytech/frame-decode/scale"
	"github.com/paritytech/frame-decode/scaleinfo"
)

// Part is one decoded key part: the hash bytes, and, for concat hashers,
// the decoded pre-image value and its type.
type Part[T comparable] struct {
	Hasher    hashers.Kind
	HashRange scale.Range
	// Value and ValueRange are only populated when Hasher.IsConcat().
	Value      *scaleinfo.Value
	ValueRange scale.Range
	ValueType  T
}

// Info is the fully decoded shape of one storage key.
type Info[T comparable] struct {
	Pallet      string
	Entry       string
	PrefixRange scale.Range
	Parts       []Part[T]
	// TrailingBytes holds anything left after the last part, valid only
	// when decoding as a prefix query (spec §4.7 step 3).
	TrailingBytes []byte
}

// KeyValue is one typed key value supplied to Encode, addressed to the
// entry's Nth key part.
type KeyValue[T comparable] struct {
	Type  T
	Value []byte // the SCALE pre-encoded value
}

// Decode parses a storage key for the named pallet/entry (spec §4.7).
// Any bytes left after the last part are a TrailingBytes error; use
// DecodePrefix for a prefix query.
func Decode[T comparable](pallet, entry string, buf []byte, md metadata.Info[T], resolver scaleinfo.TypeResolver[T]) (*Info[T], error) {
	return decode(pallet, entry, buf, md, resolver, false)
}

// DecodePrefix is like Decode but tolerates a shorter buffer: decoding
// stops as soon as the buffer is exhausted, and any remaining full parts
// are simply omitted (a partial/prefix storage key query).
func DecodePrefix[T comparable](pallet, entry string, buf []byte, md metadata.Info[T], resolver scaleinfo.TypeResolver[T]) (*Info[T], error) {
	return decode(pallet, entry, buf, md, resolver, true)
}

func decode[T comparable](pallet, entry string, buf []byte, md metadata.Info[T], resolver scaleinfo.TypeResolver[T], asPrefix bool) (*Info[T], error) {
	shape, err := md.StorageEntry(pallet, entry)
	if err != nil {
		return nil, err
	}

	if len(buf) < 32 {
		return nil, scale.NewError(scale.KindWrongPrefix, "buffer shorter than the 32-byte pallet/entry prefix", nil)
	}
	wantPrefix := append(append([]byte{}, hashers.Sum(hashers.Twox128, []byte(pallet))...), hashers.Sum(hashers.Twox128, []byte(entry))...)
	for i := 0; i < 32; i++ {
		if buf[i] != wantPrefix[i] {
			return nil, scale.NewError(scale.KindWrongPrefix, fmt.Sprintf("prefix mismatch at byte %d", i), nil)
		}
	}

	c := scale.NewCursor(buf)
	if _, err := c.ReadBytes(32); err != nil {
		return nil, err
	}

	info := &Info[T]{Pallet: pallet, Entry: entry, PrefixRange: scale.Range{Start: 0, End: 32}}

	if sharesOneHasher(shape) {
		h := shape.Hashers[0]
		if !(asPrefix && c.Len() < h.OutputWidth()) {
			hashBytes, err := c.ReadBytes(h.OutputWidth())
			if err != nil {
				return nil, fmt.Errorf("storage key tuple hash: %w", err)
			}
			part := Part[T]{Hasher: h, HashRange: c.ConsumedRange(c.Offset() - len(hashBytes))}
			if h.IsConcat() {
				val, err := scaleinfo.WalkTuple(c, resolver, shape.KeyTypes, scaleinfo.ValueVisitor{})
				if err != nil {
					return nil, fmt.Errorf("storage key tuple value: %w", err)
				}
				part.Value = val
				part.ValueRange = val.Range
			}
			info.Parts = append(info.Parts, part)
		}
	} else {
		for i, h := range shape.Hashers {
			if asPrefix && c.Len() < h.OutputWidth() {
				break
			}
			hashBytes, err := c.ReadBytes(h.OutputWidth())
			if err != nil {
				return nil, fmt.Errorf("storage key part %d hash: %w", i, err)
			}
			part := Part[T]{Hasher: h, HashRange: c.ConsumedRange(c.Offset() - len(hashBytes))}
			if h.IsConcat() {
				if i >= len(shape.KeyTypes) {
					return nil, scale.NewError(scale.KindTypeNotFound, fmt.Sprintf("no key type for part %d", i), nil)
				}
				val, err := scaleinfo.Walk(c, resolver, shape.KeyTypes[i], scaleinfo.ValueVisitor{})
				if err != nil {
					return nil, fmt.Errorf("storage key part %d value: %w", i, err)
				}
				part.Value = val
				part.ValueRange = val.Range
				part.ValueType = shape.KeyTypes[i]
			}
			info.Parts = append(info.Parts, part)
		}
	}

	if c.Len() > 0 {
		if !asPrefix {
			return nil, scale.NewError(scale.KindTrailingBytes, fmt.Sprintf("%d bytes remaining", c.Len()), nil)
		}
		rest, _ := c.ReadBytes(c.Len())
		info.TrailingBytes = rest
	}
	return info, nil
}

// sharesOneHasher reports the legacy "one hasher over a tuple" shape
// (spec §4.7, §9): a single declared hasher over multiple key types means
// the hasher is taken once over the concatenated SCALE encoding of the
// whole tuple, not once per key type.
func sharesOneHasher[T comparable](shape metadata.StorageEntryShape[T]) bool {
	return len(shape.Hashers) == 1 && len(shape.KeyTypes) > 1
}

// Encode mirrors Decode: it emits the pallet/entry prefix followed by,
// for each key value, hash(value) and, for concat hashers, the raw
// encoded value bytes (spec §4.9). For the shared-hasher tuple shape, it
// instead hashes the concatenation of every key value once.
func Encode[T comparable](pallet, entry string, keys []KeyValue[T], md metadata.Info[T], resolver scaleinfo.TypeResolver[T]) ([]byte, error) {
	shape, err := md.StorageEntry(pallet, entry)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 32+len(keys)*16)
	out = append(out, hashers.Sum(hashers.Twox128, []byte(pallet))...)
	out = append(out, hashers.Sum(hashers.Twox128, []byte(entry))...)

	if sharesOneHasher(shape) {
		if len(keys) != len(shape.KeyTypes) {
			return nil, scale.NewError(scale.KindTypeNotFound,
				fmt.Sprintf("expected %d key values, got %d", len(shape.KeyTypes), len(keys)), nil)
		}
		h := shape.Hashers[0]
		concat := make([]byte, 0, 32)
		for _, k := range keys {
			concat = append(concat, k.Value...)
		}
		out = append(out, hashers.Sum(h, concat)...)
		if h.IsConcat() {
			out = append(out, concat...)
		}
		return out, nil
	}

	if len(keys) != len(shape.Hashers) {
		return nil, scale.NewError(scale.KindTypeNotFound,
			fmt.Sprintf("expected %d key values, got %d", len(shape.Hashers), len(keys)), nil)
	}
	for i, h := range shape.Hashers {
		out = append(out, hashers.Sum(h, keys[i].Value)...)
		if h.IsConcat() {
			out = append(out, keys[i].Value...)
		}
	}
	return out, nil
}
