// Package scaleinfo defines the type-resolver abstraction (component B)
// and the structural walker that drives a cursor against a resolved shape
// (component C). Both are generic over T, the type-identifier
// representation, so the same walker serves the modern registry-id
// dialect and the historic name-based dialect without code duplication
// (spec §9, "Polymorphic metadata").
package scaleinfo

// ShapeTag discriminates the resolved-shape union (spec §3).
type ShapeTag int

const (
	TagComposite ShapeTag = iota
	TagVariant
	TagSequence
	TagArray
	TagTuple
	TagPrimitive
	TagCompact
	TagBitSequence
)

func (t ShapeTag) String() string {
	switch t {
	case TagComposite:
		return "composite"
	case TagVariant:
		return "variant"
	case TagSequence:
		return "sequence"
	case TagArray:
		return "array"
	case TagTuple:
		return "tuple"
	case TagPrimitive:
		return "primitive"
	case TagCompact:
		return "compact"
	case TagBitSequence:
		return "bitsequence"
	default:
		return "unknown"
	}
}

// PrimitiveKind enumerates the leaf primitive types (spec §3).
type PrimitiveKind int

const (
	PrimBool PrimitiveKind = iota
	PrimChar
	PrimStr
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimU128
	PrimU256
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimI128
	PrimI256
)

// CompositeField is one named, typed field of a Composite shape or a
// Variant case.
type CompositeField[T comparable] struct {
	Name string
	ID   T
}

// VariantCase is one tagged case of a Variant shape, selected by Index.
type VariantCase[T comparable] struct {
	Index  uint8
	Name   string
	Fields []CompositeField[T]
}

// ResolvedShape is the tagged variant a TypeResolver produces for a given
// type identifier (spec §3). Only the fields relevant to Tag are
// populated; the rest are zero.
type ResolvedShape[T comparable] struct {
	Tag ShapeTag

	// Composite
	Fields []CompositeField[T]

	// Variant
	Cases []VariantCase[T]

	// Sequence, Array, Compact
	Element  T
	ArrayLen int // Array only

	// Tuple
	Elements []T

	// Primitive
	Primitive PrimitiveKind

	// Bitsequence
	StoreType T
	OrderType T
}

// TypeResolver resolves a type identifier into its structural shape. It is
// a capability the caller supplies - the walker never interprets T beyond
// passing it back to Resolve (spec §4.2, §4.3).
type TypeResolver[T comparable] interface {
	Resolve(id T) (ResolvedShape[T], error)
}

// ResolverFunc adapts a plain function to TypeResolver.
type ResolverFunc[T comparable] func(id T) (ResolvedShape[T], error)

func (f ResolverFunc[T]) Resolve(id T) (ResolvedShape[T], error) { return f(id) }
