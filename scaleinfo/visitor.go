package scaleinfo

import "github.com/paritytech/frame-decode/scale"

// Field pairs a decoded child value with the name it was decoded under
// and the byte range it came from - the materialized form of a
// CompositeField or VariantCase field once EndComposite/EndVariant runs.
type Field[V any] struct {
	Name  string
	Value V
	Range scale.Range
}

// Visitor is the minimal structural-value protocol the walker drives
// (spec §9, "Visitor contract"). It is independent of any particular
// output representation: V is whatever the caller wants to build. The
// Begin*/Field/End* split mirrors a streaming parser so implementations
// that only care about tracking position (package errtrace) don't need to
// build any value at all until the matching End* call.
type Visitor[V any] interface {
	VisitBool(r scale.Range, v bool) (V, error)
	VisitChar(r scale.Range, v rune) (V, error)
	VisitStr(r scale.Range, v string) (V, error)

	VisitU8(r scale.Range, v uint8) (V, error)
	VisitU16(r scale.Range, v uint16) (V, error)
	VisitU32(r scale.Range, v uint32) (V, error)
	VisitU64(r scale.Range, v uint64) (V, error)
	VisitU128(r scale.Range, v scale.U128) (V, error)
	VisitU256(r scale.Range, v scale.U256) (V, error)

	VisitI8(r scale.Range, v int8) (V, error)
	VisitI16(r scale.Range, v int16) (V, error)
	VisitI32(r scale.Range, v int32) (V, error)
	VisitI64(r scale.Range, v int64) (V, error)
	// VisitI128/VisitI256 receive the raw two's-complement bit pattern;
	// interpreting the sign is left to the caller (e.g. via math/big).
	VisitI128(r scale.Range, bits scale.U128) (V, error)
	VisitI256(r scale.Range, bits scale.U256) (V, error)

	VisitCompact(r scale.Range, inner V) (V, error)
	VisitBitSequence(r scale.Range, bitLen uint64, raw []byte) (V, error)

	BeginComposite(r scale.Range, numFields int) error
	Field(index int, name string) error
	EndComposite(r scale.Range, fields []Field[V]) (V, error)

	BeginVariant(r scale.Range, index uint8, name string, numFields int) error
	EndVariant(r scale.Range, index uint8, name string, fields []Field[V]) (V, error)

	BeginSequence(r scale.Range, length int) error
	Element(index int) error
	EndSequence(r scale.Range, elements []V) (V, error)

	BeginArray(r scale.Range, length int) error
	EndArray(r scale.Range, elements []V) (V, error)

	BeginTuple(r scale.Range, length int) error
	EndTuple(r scale.Range, elements []V) (V, error)
}
