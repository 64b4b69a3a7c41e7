// Package metadata defines the capability interfaces (component D) that
// every supported metadata dialect implements: extrinsic shape, storage
// entry shape, and the minor runtime-api/constant/custom/view-function
// shapes. Two concrete dialects implement these - package
// metadata/modern for V14+ and metadata/legacy for V8-V13 - but callers
// and the rest of this module only ever see the interfaces here (spec
// §4.4, §9 "Polymorphic metadata").
package metadata

import "github.com/paritytech/frame-decode/hashers"

// Info bundles every capability a dialect adapter must provide. T is the
// type-identifier representation for this dialect (uint32 for modern,
// a name-based type for legacy).
type Info[T comparable] interface {
	ExtrinsicInfo
	ExtrinsicShapeProvider[T]
	StorageInfo[T]
	RuntimeApiInfo[T]
	ConstantInfo[T]
	CustomValueInfo[T]
	ViewFunctionInfo[T]

	// SpecVersion reports the runtime spec version this metadata
	// instance describes, used to select historic type-registry
	// overlays (spec §6, §9).
	SpecVersion() uint32
}

// ExtrinsicShape describes how to decode one supported extrinsic version's
// signed payload and how to resolve its calls.
type ExtrinsicShape[T comparable] struct {
	Version         uint8
	AddressType     T
	SignatureType   T
	ExtensionsByVer map[uint8][]ExtensionEntry[T]
	// HasExtensionVersionByte reports whether this dialect prefixes the
	// extension list with its own version byte on the wire (true for
	// modern V14+ metadata; the historic dialect has one fixed,
	// unversioned extension list, spec §4.6 "Modern variant").
	HasExtensionVersionByte bool
	Calls                   CallResolver[T]
}

// ExtensionEntry names one transaction-extension slot (spec §3,
// "Extension set").
type ExtensionEntry[T comparable] struct {
	Name string
	Type T
}

// CallResolver maps (pallet_index, call_index) to the pallet/call name and
// ordered, named argument types (spec §4.4, "ExtrinsicInfo").
type CallResolver[T comparable] interface {
	ResolveCall(palletIndex, callIndex uint8) (palletName, callName string, args []ArgType[T], err error)
}

// ArgType names one call argument and its type identifier.
type ArgType[T comparable] struct {
	Name string
	Type T
}

// ExtrinsicInfo reports which extrinsic versions this metadata instance
// supports and how to decode each (spec §4.4, §4.6).
type ExtrinsicInfo interface {
	SupportedExtrinsicVersions() []uint8
}

// ExtrinsicShapeProvider is implemented alongside ExtrinsicInfo by every
// dialect; it is a separate interface because ExtrinsicShapeFor's result
// depends on the type parameter T, which ExtrinsicInfo does not carry.
type ExtrinsicShapeProvider[T comparable] interface {
	ExtrinsicShapeFor(version uint8) (ExtrinsicShape[T], error)
}

// StorageEntryShape describes one storage entry: its hashers, key types,
// and value type (spec §4.4, "StorageInfo"). Invariant: either
// len(KeyTypes) == len(Hashers), or len(Hashers) == 1 and that hasher
// applies to the whole key tuple (the legacy "one hasher over a tuple"
// shape, spec §9).
type StorageEntryShape[T comparable] struct {
	Name      string
	Hashers   []hashers.Kind
	KeyTypes  []T
	ValueType T
	Default   []byte
}

// StorageInfo iterates pallets and their storage entries.
type StorageInfo[T comparable] interface {
	Pallets() []string
	StorageEntries(pallet string) ([]StorageEntryShape[T], error)
	StorageEntry(pallet, entry string) (StorageEntryShape[T], error)
}

// RuntimeApiInfo resolves a runtime API method's argument and return types.
type RuntimeApiInfo[T comparable] interface {
	RuntimeApiMethod(apiTrait, method string) (args []ArgType[T], returnType T, err error)
}

// ConstantInfo resolves a pallet constant's type and raw encoded value.
type ConstantInfo[T comparable] interface {
	Constant(pallet, name string) (typ T, value []byte, err error)
}

// CustomValueInfo resolves one of metadata's free-form custom values.
type CustomValueInfo[T comparable] interface {
	CustomValue(name string) (typ T, value []byte, err error)
}

// ViewFunctionInfo resolves a pallet view function's signature.
type ViewFunctionInfo[T comparable] interface {
	ViewFunction(pallet, name string) (args []ArgType[T], returnType T, err error)
}
