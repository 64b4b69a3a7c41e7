package scaleinfo

import "github.com/paritytech/frame-decode/scale"

// Value is a concrete, representation-agnostic structural value: the
// default output type most callers reach for instead of writing their own
// Visitor[V] from scratch. It mirrors the shapes in ResolvedShape.
type Value struct {
	Tag ShapeTag

	Bool   bool
	Char   rune
	Str    string
	UInt   uint64
	UInt128 scale.U128
	UInt256 scale.U256
	Int    int64
	Int128 scale.U128
	Int256 scale.U256

	VariantIndex uint8
	VariantName  string

	Fields   []Field[*Value]
	Elements []*Value

	BitLen uint64
	Bits   []byte

	Range scale.Range
}

// ValueVisitor builds Value trees. It is the "NullVisitor"-style default
// implementation every caller who doesn't need a bespoke output type can
// use directly, analogous to a hand-rolled no-op visitor kept around for
// copy/paste into a real one.
type ValueVisitor struct{}

var _ Visitor[*Value] = ValueVisitor{}

func (ValueVisitor) VisitBool(r scale.Range, v bool) (*Value, error) {
	return &Value{Tag: TagPrimitive, Bool: v, Range: r}, nil
}
func (ValueVisitor) VisitChar(r scale.Range, v rune) (*Value, error) {
	return &Value{Tag: TagPrimitive, Char: v, Range: r}, nil
}
func (ValueVisitor) VisitStr(r scale.Range, v string) (*Value, error) {
	return &Value{Tag: TagPrimitive, Str: v, Range: r}, nil
}
func (ValueVisitor) VisitU8(r scale.Range, v uint8) (*Value, error) {
	return &Value{Tag: TagPrimitive, UInt: uint64(v), Range: r}, nil
}
func (ValueVisitor) VisitU16(r scale.Range, v uint16) (*Value, error) {
	return &Value{Tag: TagPrimitive, UInt: uint64(v), Range: r}, nil
}
func (ValueVisitor) VisitU32(r scale.Range, v uint32) (*Value, error) {
	return &Value{Tag: TagPrimitive, UInt: uint64(v), Range: r}, nil
}
func (ValueVisitor) VisitU64(r scale.Range, v uint64) (*Value, error) {
	return &Value{Tag: TagPrimitive, UInt: v, Range: r}, nil
}
func (ValueVisitor) VisitU128(r scale.Range, v scale.U128) (*Value, error) {
	return &Value{Tag: TagPrimitive, UInt128: v, Range: r}, nil
}
func (ValueVisitor) VisitU256(r scale.Range, v scale.U256) (*Value, error) {
	return &Value{Tag: TagPrimitive, UInt256: v, Range: r}, nil
}
func (ValueVisitor) VisitI8(r scale.Range, v int8) (*Value, error) {
	return &Value{Tag: TagPrimitive, Int: int64(v), Range: r}, nil
}
func (ValueVisitor) VisitI16(r scale.Range, v int16) (*Value, error) {
	return &Value{Tag: TagPrimitive, Int: int64(v), Range: r}, nil
}
func (ValueVisitor) VisitI32(r scale.Range, v int32) (*Value, error) {
	return &Value{Tag: TagPrimitive, Int: int64(v), Range: r}, nil
}
func (ValueVisitor) VisitI64(r scale.Range, v int64) (*Value, error) {
	return &Value{Tag: TagPrimitive, Int: v, Range: r}, nil
}
func (ValueVisitor) VisitI128(r scale.Range, bits scale.U128) (*Value, error) {
	return &Value{Tag: TagPrimitive, Int128: bits, Range: r}, nil
}
func (ValueVisitor) VisitI256(r scale.Range, bits scale.U256) (*Value, error) {
	return &Value{Tag: TagPrimitive, Int256: bits, Range: r}, nil
}
func (ValueVisitor) VisitCompact(r scale.Range, inner *Value) (*Value, error) {
	inner.Tag = TagCompact
	inner.Range = r
	return inner, nil
}
func (ValueVisitor) VisitBitSequence(r scale.Range, bitLen uint64, raw []byte) (*Value, error) {
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return &Value{Tag: TagBitSequence, BitLen: bitLen, Bits: cp, Range: r}, nil
}

func (ValueVisitor) BeginComposite(scale.Range, int) error  { return nil }
func (ValueVisitor) Field(int, string) error                { return nil }
func (ValueVisitor) EndComposite(r scale.Range, fields []Field[*Value]) (*Value, error) {
	return &Value{Tag: TagComposite, Fields: fields, Range: r}, nil
}

func (ValueVisitor) BeginVariant(scale.Range, uint8, string, int) error { return nil }
func (ValueVisitor) EndVariant(r scale.Range, index uint8, name string, fields []Field[*Value]) (*Value, error) {
	return &Value{Tag: TagVariant, VariantIndex: index, VariantName: name, Fields: fields, Range: r}, nil
}

func (ValueVisitor) BeginSequence(scale.Range, int) error { return nil }
func (ValueVisitor) EndSequence(r scale.Range, elements []*Value) (*Value, error) {
	return &Value{Tag: TagSequence, Elements: elements, Range: r}, nil
}

func (ValueVisitor) BeginArray(scale.Range, int) error { return nil }
func (ValueVisitor) EndArray(r scale.Range, elements []*Value) (*Value, error) {
	return &Value{Tag: TagArray, Elements: elements, Range: r}, nil
}

func (ValueVisitor) BeginTuple(scale.Range, int) error { return nil }
func (ValueVisitor) EndTuple(r scale.Range, elements []*Value) (*Value, error) {
	return &Value{Tag: TagTuple, Elements: elements, Range: r}, nil
}

func (ValueVisitor) Element(int) error { return nil }
