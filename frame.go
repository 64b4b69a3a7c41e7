// Package frame decodes the on-chain binary wire format shared by a family
// of modular blockchain runtimes: extrinsics, storage keys, and storage
// values. It unifies two metadata dialects - a modern self-describing one
// and a family of historic ones that resolve type names against a
// supplementary registry - behind a single set of entry points.
//
// The package performs no I/O and holds no state; every function is a pure
// transform over (metadata, buffer, resolver) inputs, safe to call
// concurrently across independent buffers.
package frame

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/paritytech/frame-decode/extrinsic"
	"github.com/paritytech/frame-decode/frameinfo"
	"github.com/paritytech/frame-decode/metadata"
	"github.com/paritytech/frame-decode/scale"
	"github.com/paritytech/frame-decode/scaleinfo"
	"github.com/paritytech/frame-decode/storagekey"
	"github.com/paritytech/frame-decode/storagevalue"
)

// Kind and Error re-export the scale package's error taxonomy (spec §7)
// at the root so callers that only import "frame" don't also need to
// import the leaf "scale" package just to inspect a failure's Kind.
type (
	Kind  = scale.Kind
	Error = scale.Error
)

// Sentinel kinds for use with errors.Is, re-exported from package scale.
var (
	ErrTruncated                  = scale.ErrTruncated
	ErrTrailingBytes              = scale.ErrTrailingBytes
	ErrInvalidCompact             = scale.ErrInvalidCompact
	ErrUnknownVariant             = scale.ErrUnknownVariant
	ErrBadUtf8                    = scale.ErrBadUtf8
	ErrTypeNotFound               = scale.ErrTypeNotFound
	ErrPalletNotFound             = scale.ErrPalletNotFound
	ErrCallNotFound               = scale.ErrCallNotFound
	ErrStorageEntryNotFound       = scale.ErrStorageEntryNotFound
	ErrWrongPrefix                = scale.ErrWrongPrefix
	ErrUnsupportedMetadataVersion = scale.ErrUnsupportedMetadataVersion
	ErrVisitor                    = scale.ErrVisitor
)

// DecodeExtrinsic decodes a single length-prefixed extrinsic blob.
func DecodeExtrinsic[T comparable](buf []byte, md metadata.Info[T], resolver scaleinfo.TypeResolver[T]) (*extrinsic.Info[T], error) {
	return extrinsic.Decode(buf, md, resolver)
}

// DecodeStorageKey decodes a storage key for the given pallet/entry pair.
func DecodeStorageKey[T comparable](pallet, entry string, buf []byte, md metadata.Info[T], resolver scaleinfo.TypeResolver[T]) (*storagekey.Info[T], error) {
	return storagekey.Decode(pallet, entry, buf, md, resolver)
}

// EncodeStorageKey is the mirror of DecodeStorageKey: given typed key
// values it emits the prefix and hashed/concatenated key parts.
func EncodeStorageKey[T comparable](pallet, entry string, keys []storagekey.KeyValue[T], md metadata.Info[T], resolver scaleinfo.TypeResolver[T]) ([]byte, error) {
	return storagekey.Encode(pallet, entry, keys, md, resolver)
}

// DecodeStorageValue decodes a raw storage value payload, driving visitor
// against the shape registered for pallet.entry's value type.
func DecodeStorageValue[T comparable, V any](pallet, entry string, buf []byte, md metadata.Info[T], resolver scaleinfo.TypeResolver[T], visitor scaleinfo.Visitor[V]) (V, error) {
	return storagevalue.Decode(pallet, entry, buf, md, resolver, visitor)
}

// TypeRegistryFromMetadata projects a metadata instance into a
// frameinfo.Registry: its spec version plus each pallet's storage entry
// names. The result holds no type definitions; it is not the name-keyed
// baseline overlay that package registry builds for historic metadata.
func TypeRegistryFromMetadata[T comparable](md metadata.Info[T]) (frameinfo.Registry, error) {
	return frameinfo.RegistryFromMetadata(md)
}

// ListPallets returns the pallet names declared in md, in declaration order.
func ListPallets[T comparable](md metadata.Info[T]) []string {
	return frameinfo.Pallets(md)
}

// ListStorageEntries returns the storage entry names declared for pallet,
// in declaration order.
func ListStorageEntries[T comparable](md metadata.Info[T], pallet string) ([]string, error) {
	return frameinfo.StorageEntries(md, pallet)
}

// ParallelDecodeExtrinsics decodes each buffer in bufs concurrently. It
// exercises the "trivially parallelizable across independent buffers"
// property from spec §5 - metadata and resolver are immutable and may be
// shared freely across goroutines. The result slice preserves input order;
// the first error encountered cancels the remaining work and is returned.
func ParallelDecodeExtrinsics[T comparable](ctx context.Context, bufs [][]byte, md metadata.Info[T], resolver scaleinfo.TypeResolver[T]) ([]*extrinsic.Info[T], error) {
	out := make([]*extrinsic.Info[T], len(bufs))
	g, gctx := errgroup.WithContext(ctx)
	for i, buf := range bufs {
		i, buf := i, buf
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info, err := extrinsic.Decode(buf, md, resolver)
			if err != nil {
				return fmt.Errorf("extrinsic %d: %w", i, err)
			}
			out[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
