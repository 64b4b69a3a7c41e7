// Package storagevalue implements the storage-value decoder (component
// H, spec §4.8): looking up an entry's value type and walking it.
package storagevalue

import (
	"fmt"

	"github.com/paritytech/frame-decode/metadata"
	"github.com/paritytech/frame-decode/scale"
	"github.com/paritytech/frame-decode/scaleinfo"
)

// Decode looks up the entry's value type and decodes buf against it
// using visitor. Failure to find the entry yields *StorageEntryNotFound
// (spec §4.8).
func Decode[T comparable, V any](pallet, entry string, buf []byte, md metadata.Info[T], resolver scaleinfo.TypeResolver[T], visitor scaleinfo.Visitor[V]) (V, error) {
	var zero V
	shape, err := md.StorageEntry(pallet, entry)
	if err != nil {
		return zero, err
	}
	c := scale.NewCursor(buf)
	val, err := scaleinfo.Walk(c, resolver, shape.ValueType, visitor)
	if err != nil {
		return zero, fmt.Errorf("storage value %s.%s: %w", pallet, entry, err)
	}
	if c.Len() > 0 {
		return zero, scale.NewError(scale.KindTrailingBytes, fmt.Sprintf("%d bytes remaining", c.Len()), nil)
	}
	return val, nil
}

// Default decodes an entry's default value bytes the same way, for
// entries that define one (spec §4.4 "StorageEntryShape.Default").
func Default[T comparable, V any](pallet, entry string, md metadata.Info[T], resolver scaleinfo.TypeResolver[T], visitor scaleinfo.Visitor[V]) (V, error) {
	var zero V
	shape, err := md.StorageEntry(pallet, entry)
	if err != nil {
		return zero, err
	}
	if shape.Default == nil {
		return zero, scale.NewError(scale.KindStorageEntryNotFound, fmt.Sprintf("%s.%s has no default value", pallet, entry), nil)
	}
	return Decode(pallet, entry, shape.Default, md, resolver, visitor)
}
