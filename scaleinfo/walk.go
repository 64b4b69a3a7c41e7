package scaleinfo

import (
	"unicode/utf8"

	"github.com/paritytech/frame-decode/scale"
)

// Walk consumes bytes from c according to the shape id resolves to,
// driving visitor at each leaf and composite boundary. It is purely
// structural: it never inspects semantics beyond what the shape dictates,
// which is what lets the same machinery service both the name-resolved
// historic dialect and the registry-id modern dialect (spec §4.3).
func Walk[T comparable, V any](c *scale.Cursor, resolver TypeResolver[T], id T, visitor Visitor[V]) (V, error) {
	var zero V
	shape, err := resolver.Resolve(id)
	if err != nil {
		return zero, err
	}
	return walkShape(c, resolver, shape, visitor)
}

// WalkTuple walks elems as a synthesized Tuple shape, without requiring the
// resolver to carry an entry for the tuple itself. Used where a wire format
// groups several independently-typed fields under one TID-less tuple, e.g.
// the legacy storage-key shape where several key parts share one hasher and
// are hashed as a single concatenated SCALE encoding (spec §4.7, §9).
func WalkTuple[T comparable, V any](c *scale.Cursor, resolver TypeResolver[T], elems []T, visitor Visitor[V]) (V, error) {
	return walkShape(c, resolver, ResolvedShape[T]{Tag: TagTuple, Elements: elems}, visitor)
}

func walkShape[T comparable, V any](c *scale.Cursor, resolver TypeResolver[T], shape ResolvedShape[T], visitor Visitor[V]) (V, error) {
	var zero V
	switch shape.Tag {
	case TagComposite:
		return walkComposite(c, resolver, shape.Fields, visitor)

	case TagVariant:
		start := c.Offset()
		idx, err := c.ReadU8()
		if err != nil {
			return zero, err
		}
		var chosen *VariantCase[T]
		for i := range shape.Cases {
			if shape.Cases[i].Index == idx {
				chosen = &shape.Cases[i]
				break
			}
		}
		if chosen == nil {
			return zero, scale.NewError(scale.KindUnknownVariant, "no variant case matches index", nil)
		}
		if err := visitor.BeginVariant(scale.Range{Start: start, End: c.Offset()}, chosen.Index, chosen.Name, len(chosen.Fields)); err != nil {
			return zero, scale.NewError(scale.KindVisitor, "BeginVariant", err)
		}
		fields, err := walkFields(c, resolver, chosen.Fields, visitor)
		if err != nil {
			return zero, err
		}
		v, err := visitor.EndVariant(c.ConsumedRange(start), chosen.Index, chosen.Name, fields)
		if err != nil {
			return zero, scale.NewError(scale.KindVisitor, "EndVariant", err)
		}
		return v, nil

	case TagSequence:
		start := c.Offset()
		n, err := c.ReadCompactUint32()
		if err != nil {
			return zero, err
		}
		if err := visitor.BeginSequence(scale.Range{Start: start, End: c.Offset()}, int(n)); err != nil {
			return zero, scale.NewError(scale.KindVisitor, "BeginSequence", err)
		}
		elems := make([]V, 0, n)
		for i := 0; i < int(n); i++ {
			if err := visitor.Element(i); err != nil {
				return zero, scale.NewError(scale.KindVisitor, "Element", err)
			}
			v, err := Walk(c, resolver, shape.Element, visitor)
			if err != nil {
				return zero, err
			}
			elems = append(elems, v)
		}
		v, err := visitor.EndSequence(c.ConsumedRange(start), elems)
		if err != nil {
			return zero, scale.NewError(scale.KindVisitor, "EndSequence", err)
		}
		return v, nil

	case TagArray:
		start := c.Offset()
		if err := visitor.BeginArray(scale.Range{Start: start, End: start}, shape.ArrayLen); err != nil {
			return zero, scale.NewError(scale.KindVisitor, "BeginArray", err)
		}
		elems := make([]V, 0, shape.ArrayLen)
		for i := 0; i < shape.ArrayLen; i++ {
			if err := visitor.Element(i); err != nil {
				return zero, scale.NewError(scale.KindVisitor, "Element", err)
			}
			v, err := Walk(c, resolver, shape.Element, visitor)
			if err != nil {
				return zero, err
			}
			elems = append(elems, v)
		}
		v, err := visitor.EndArray(c.ConsumedRange(start), elems)
		if err != nil {
			return zero, scale.NewError(scale.KindVisitor, "EndArray", err)
		}
		return v, nil

	case TagTuple:
		start := c.Offset()
		if err := visitor.BeginTuple(scale.Range{Start: start, End: start}, len(shape.Elements)); err != nil {
			return zero, scale.NewError(scale.KindVisitor, "BeginTuple", err)
		}
		elems := make([]V, 0, len(shape.Elements))
		for i, el := range shape.Elements {
			if err := visitor.Element(i); err != nil {
				return zero, scale.NewError(scale.KindVisitor, "Element", err)
			}
			v, err := Walk(c, resolver, el, visitor)
			if err != nil {
				return zero, err
			}
			elems = append(elems, v)
		}
		v, err := visitor.EndTuple(c.ConsumedRange(start), elems)
		if err != nil {
			return zero, scale.NewError(scale.KindVisitor, "EndTuple", err)
		}
		return v, nil

	case TagPrimitive:
		return walkPrimitive(c, shape.Primitive, visitor)

	case TagCompact:
		return walkCompact(c, resolver, shape.Element, visitor)

	case TagBitSequence:
		start := c.Offset()
		bitLen, err := c.ReadCompactUint64()
		if err != nil {
			return zero, err
		}
		nbytes := int((bitLen + 7) / 8)
		raw, err := c.ReadBytes(nbytes)
		if err != nil {
			return zero, err
		}
		v, err := visitor.VisitBitSequence(c.ConsumedRange(start), bitLen, raw)
		if err != nil {
			return zero, scale.NewError(scale.KindVisitor, "VisitBitSequence", err)
		}
		return v, nil

	default:
		return zero, scale.NewError(scale.KindTypeNotFound, "resolver returned an unrecognised shape tag", nil)
	}
}

func walkComposite[T comparable, V any](c *scale.Cursor, resolver TypeResolver[T], fields []CompositeField[T], visitor Visitor[V]) (V, error) {
	var zero V
	start := c.Offset()
	if err := visitor.BeginComposite(scale.Range{Start: start, End: start}, len(fields)); err != nil {
		return zero, scale.NewError(scale.KindVisitor, "BeginComposite", err)
	}
	out, err := walkFields(c, resolver, fields, visitor)
	if err != nil {
		return zero, err
	}
	v, err := visitor.EndComposite(c.ConsumedRange(start), out)
	if err != nil {
		return zero, scale.NewError(scale.KindVisitor, "EndComposite", err)
	}
	return v, nil
}

func walkFields[T comparable, V any](c *scale.Cursor, resolver TypeResolver[T], fields []CompositeField[T], visitor Visitor[V]) ([]Field[V], error) {
	out := make([]Field[V], 0, len(fields))
	for i, f := range fields {
		if err := visitor.Field(i, f.Name); err != nil {
			return nil, scale.NewError(scale.KindVisitor, "Field", err)
		}
		fieldStart := c.Offset()
		v, err := Walk(c, resolver, f.ID, visitor)
		if err != nil {
			return nil, err
		}
		out = append(out, Field[V]{Name: f.Name, Value: v, Range: c.ConsumedRange(fieldStart)})
	}
	return out, nil
}

func walkPrimitive[V any](c *scale.Cursor, kind PrimitiveKind, visitor Visitor[V]) (V, error) {
	var zero V
	start := c.Offset()
	switch kind {
	case PrimBool:
		b, err := c.ReadU8()
		if err != nil {
			return zero, err
		}
		v, err := visitor.VisitBool(c.ConsumedRange(start), b != 0)
		return v, wrapVisitor(err)
	case PrimChar:
		u, err := c.ReadU32()
		if err != nil {
			return zero, err
		}
		v, err := visitor.VisitChar(c.ConsumedRange(start), rune(u))
		return v, wrapVisitor(err)
	case PrimStr:
		n, err := c.ReadCompactUint32()
		if err != nil {
			return zero, err
		}
		raw, err := c.ReadBytes(int(n))
		if err != nil {
			return zero, err
		}
		if !utf8.Valid(raw) {
			return zero, scale.NewError(scale.KindBadUtf8, "string field was not valid utf-8", nil)
		}
		v, err := visitor.VisitStr(c.ConsumedRange(start), string(raw))
		return v, wrapVisitor(err)
	case PrimU8:
		x, err := c.ReadU8()
		if err != nil {
			return zero, err
		}
		v, err := visitor.VisitU8(c.ConsumedRange(start), x)
		return v, wrapVisitor(err)
	case PrimU16:
		x, err := c.ReadU16()
		if err != nil {
			return zero, err
		}
		v, err := visitor.VisitU16(c.ConsumedRange(start), x)
		return v, wrapVisitor(err)
	case PrimU32:
		x, err := c.ReadU32()
		if err != nil {
			return zero, err
		}
		v, err := visitor.VisitU32(c.ConsumedRange(start), x)
		return v, wrapVisitor(err)
	case PrimU64:
		x, err := c.ReadU64()
		if err != nil {
			return zero, err
		}
		v, err := visitor.VisitU64(c.ConsumedRange(start), x)
		return v, wrapVisitor(err)
	case PrimU128:
		x, err := c.ReadU128()
		if err != nil {
			return zero, err
		}
		v, err := visitor.VisitU128(c.ConsumedRange(start), x)
		return v, wrapVisitor(err)
	case PrimU256:
		x, err := c.ReadU256()
		if err != nil {
			return zero, err
		}
		v, err := visitor.VisitU256(c.ConsumedRange(start), x)
		return v, wrapVisitor(err)
	case PrimI8:
		x, err := c.ReadU8()
		if err != nil {
			return zero, err
		}
		v, err := visitor.VisitI8(c.ConsumedRange(start), int8(x))
		return v, wrapVisitor(err)
	case PrimI16:
		x, err := c.ReadU16()
		if err != nil {
			return zero, err
		}
		v, err := visitor.VisitI16(c.ConsumedRange(start), int16(x))
		return v, wrapVisitor(err)
	case PrimI32:
		x, err := c.ReadU32()
		if err != nil {
			return zero, err
		}
		v, err := visitor.VisitI32(c.ConsumedRange(start), int32(x))
		return v, wrapVisitor(err)
	case PrimI64:
		x, err := c.ReadU64()
		if err != nil {
			return zero, err
		}
		v, err := visitor.VisitI64(c.ConsumedRange(start), int64(x))
		return v, wrapVisitor(err)
	case PrimI128:
		x, err := c.ReadU128()
		if err != nil {
			return zero, err
		}
		v, err := visitor.VisitI128(c.ConsumedRange(start), x)
		return v, wrapVisitor(err)
	case PrimI256:
		x, err := c.ReadU256()
		if err != nil {
			return zero, err
		}
		v, err := visitor.VisitI256(c.ConsumedRange(start), x)
		return v, wrapVisitor(err)
	default:
		return zero, scale.NewError(scale.KindTypeNotFound, "unrecognised primitive kind", nil)
	}
}

func walkCompact[T comparable, V any](c *scale.Cursor, resolver TypeResolver[T], elem T, visitor Visitor[V]) (V, error) {
	var zero V
	innerShape, err := resolver.Resolve(elem)
	if err != nil {
		return zero, err
	}
	// Follow compact<compact<...>> / alias chains down to the underlying
	// unsigned primitive, per spec §3 ("must ultimately resolve to an
	// unsigned integer").
	for innerShape.Tag == TagCompact {
		innerShape, err = resolver.Resolve(innerShape.Element)
		if err != nil {
			return zero, err
		}
	}
	if innerShape.Tag != TagPrimitive {
		return zero, scale.NewError(scale.KindTypeNotFound, "compact element does not resolve to a primitive", nil)
	}

	start := c.Offset()
	var inner V
	switch innerShape.Primitive {
	case PrimU8:
		x, err := c.ReadCompactUint32()
		if err != nil {
			return zero, err
		}
		if x > 0xff {
			return zero, scale.NewError(scale.KindInvalidCompact, "compact u8 overflow", nil)
		}
		inner, err = visitor.VisitU8(c.ConsumedRange(start), uint8(x))
		if err != nil {
			return zero, wrapVisitor(err)
		}
	case PrimU16:
		x, err := c.ReadCompactUint32()
		if err != nil {
			return zero, err
		}
		if x > 0xffff {
			return zero, scale.NewError(scale.KindInvalidCompact, "compact u16 overflow", nil)
		}
		inner, err = visitor.VisitU16(c.ConsumedRange(start), uint16(x))
		if err != nil {
			return zero, wrapVisitor(err)
		}
	case PrimU32:
		x, err := c.ReadCompactUint32()
		if err != nil {
			return zero, err
		}
		inner, err = visitor.VisitU32(c.ConsumedRange(start), x)
		if err != nil {
			return zero, wrapVisitor(err)
		}
	case PrimU64:
		x, err := c.ReadCompactUint64()
		if err != nil {
			return zero, err
		}
		inner, err = visitor.VisitU64(c.ConsumedRange(start), x)
		if err != nil {
			return zero, wrapVisitor(err)
		}
	case PrimU128:
		x, err := c.ReadCompactUint128()
		if err != nil {
			return zero, err
		}
		inner, err = visitor.VisitU128(c.ConsumedRange(start), x)
		if err != nil {
			return zero, wrapVisitor(err)
		}
	default:
		return zero, scale.NewError(scale.KindTypeNotFound, "compact element is not an unsigned integer primitive", nil)
	}

	v, err := visitor.VisitCompact(c.ConsumedRange(start), inner)
	return v, wrapVisitor(err)
}

func wrapVisitor(err error) error {
	if err == nil {
		return nil
	}
	return scale.NewError(scale.KindVisitor, "visitor rejected value", err)
}

