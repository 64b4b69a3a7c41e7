// Package errtrace implements the optional visitor-trace capability
// (component J, spec §7 "error-tracing capability"): a decorating
// scaleinfo.Visitor that records the path of field names/indices from
// the root shape to the visitor call that failed, plus a JSON rendering
// mode for that trace.
package errtrace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/paritytech/frame-decode/scale"
	"github.com/paritytech/frame-decode/scaleinfo"
)

// Tracer wraps another visitor, annotating any error it returns with the
// field path and cursor offset active at the point of failure. Wrap the
// visitor passed to scaleinfo.Walk with this when a failure needs to
// explain where in a nested shape it happened; skip it for the common
// case of a bare *scale.Error. Only errors returned by the wrapped
// visitor are annotated: failures scaleinfo.Walk detects itself (a short
// read, invalid UTF-8, an unknown variant index) do not pass through the
// Tracer and carry no path or offset.
type Tracer[V any] struct {
	inner scaleinfo.Visitor[V]
	path  []string
	// elemBase records, per open Composite/Variant/Sequence/Array/Tuple, the
	// path length to truncate back to before appending each field's name or
	// element's own "[i]" segment - otherwise successive siblings would keep
	// appending onto each other's labels instead of replacing them.
	elemBase []int
}

// Wrap returns a Tracer decorating inner.
func Wrap[V any](inner scaleinfo.Visitor[V]) *Tracer[V] {
	return &Tracer[V]{inner: inner}
}

var _ scaleinfo.Visitor[any] = (*Tracer[any])(nil)

func (t *Tracer[V]) currentPath() string {
	return strings.Join(t.path, ".")
}

func (t *Tracer[V]) annotate(r scale.Range, err error) error {
	if err == nil {
		return nil
	}
	var se *scale.Error
	if errors.As(err, &se) {
		return se.WithTrace(t.currentPath(), r.Start)
	}
	return scale.NewError(scale.KindVisitor, fmt.Sprintf("at %s", t.currentPath()), err).WithTrace(t.currentPath(), r.Start)
}

func (t *Tracer[V]) VisitBool(r scale.Range, v bool) (V, error) {
	out, err := t.inner.VisitBool(r, v)
	return out, t.annotate(r, err)
}
func (t *Tracer[V]) VisitChar(r scale.Range, v rune) (V, error) {
	out, err := t.inner.VisitChar(r, v)
	return out, t.annotate(r, err)
}
func (t *Tracer[V]) VisitStr(r scale.Range, v string) (V, error) {
	out, err := t.inner.VisitStr(r, v)
	return out, t.annotate(r, err)
}
func (t *Tracer[V]) VisitU8(r scale.Range, v uint8) (V, error) {
	out, err := t.inner.VisitU8(r, v)
	return out, t.annotate(r, err)
}
func (t *Tracer[V]) VisitU16(r scale.Range, v uint16) (V, error) {
	out, err := t.inner.VisitU16(r, v)
	return out, t.annotate(r, err)
}
func (t *Tracer[V]) VisitU32(r scale.Range, v uint32) (V, error) {
	out, err := t.inner.VisitU32(r, v)
	return out, t.annotate(r, err)
}
func (t *Tracer[V]) VisitU64(r scale.Range, v uint64) (V, error) {
	out, err := t.inner.VisitU64(r, v)
	return out, t.annotate(r, err)
}
func (t *Tracer[V]) VisitU128(r scale.Range, v scale.U128) (V, error) {
	out, err := t.inner.VisitU128(r, v)
	return out, t.annotate(r, err)
}
func (t *Tracer[V]) VisitU256(r scale.Range, v scale.U256) (V, error) {
	out, err := t.inner.VisitU256(r, v)
	return out, t.annotate(r, err)
}
func (t *Tracer[V]) VisitI8(r scale.Range, v int8) (V, error) {
	out, err := t.inner.VisitI8(r, v)
	return out, t.annotate(r, err)
}
func (t *Tracer[V]) VisitI16(r scale.Range, v int16) (V, error) {
	out, err := t.inner.VisitI16(r, v)
	return out, t.annotate(r, err)
}
func (t *Tracer[V]) VisitI32(r scale.Range, v int32) (V, error) {
	out, err := t.inner.VisitI32(r, v)
	return out, t.annotate(r, err)
}
func (t *Tracer[V]) VisitI64(r scale.Range, v int64) (V, error) {
	out, err := t.inner.VisitI64(r, v)
	return out, t.annotate(r, err)
}
func (t *Tracer[V]) VisitI128(r scale.Range, bits scale.U128) (V, error) {
	out, err := t.inner.VisitI128(r, bits)
	return out, t.annotate(r, err)
}
func (t *Tracer[V]) VisitI256(r scale.Range, bits scale.U256) (V, error) {
	out, err := t.inner.VisitI256(r, bits)
	return out, t.annotate(r, err)
}
func (t *Tracer[V]) VisitCompact(r scale.Range, inner V) (V, error) {
	out, err := t.inner.VisitCompact(r, inner)
	return out, t.annotate(r, err)
}
func (t *Tracer[V]) VisitBitSequence(r scale.Range, bitLen uint64, raw []byte) (V, error) {
	out, err := t.inner.VisitBitSequence(r, bitLen, raw)
	return out, t.annotate(r, err)
}

func (t *Tracer[V]) BeginComposite(r scale.Range, numFields int) error {
	t.pushElemBase()
	return t.annotate(r, t.inner.BeginComposite(r, numFields))
}
func (t *Tracer[V]) Field(index int, name string) error {
	if name == "" {
		name = strconv.Itoa(index)
	}
	if n := len(t.elemBase); n > 0 {
		t.path = t.path[:t.elemBase[n-1]]
	}
	t.path = append(t.path, name)
	return t.inner.Field(index, name)
}
func (t *Tracer[V]) EndComposite(r scale.Range, fields []scaleinfo.Field[V]) (V, error) {
	t.popElemBase()
	out, err := t.inner.EndComposite(r, fields)
	return out, t.annotate(r, err)
}

func (t *Tracer[V]) BeginVariant(r scale.Range, index uint8, name string, numFields int) error {
	t.path = append(t.path, name)
	t.pushElemBase()
	return t.annotate(r, t.inner.BeginVariant(r, index, name, numFields))
}
func (t *Tracer[V]) EndVariant(r scale.Range, index uint8, name string, fields []scaleinfo.Field[V]) (V, error) {
	t.popElemBase()
	if len(t.path) > 0 {
		t.path = t.path[:len(t.path)-1]
	}
	out, err := t.inner.EndVariant(r, index, name, fields)
	return out, t.annotate(r, err)
}

func (t *Tracer[V]) BeginSequence(r scale.Range, length int) error {
	t.pushElemBase()
	return t.annotate(r, t.inner.BeginSequence(r, length))
}
func (t *Tracer[V]) Element(index int) error {
	if n := len(t.elemBase); n > 0 {
		t.path = t.path[:t.elemBase[n-1]]
	}
	t.path = append(t.path, "["+strconv.Itoa(index)+"]")
	return t.inner.Element(index)
}
func (t *Tracer[V]) EndSequence(r scale.Range, elements []V) (V, error) {
	t.popElemBase()
	out, err := t.inner.EndSequence(r, elements)
	return out, t.annotate(r, err)
}

func (t *Tracer[V]) BeginArray(r scale.Range, length int) error {
	t.pushElemBase()
	return t.annotate(r, t.inner.BeginArray(r, length))
}
func (t *Tracer[V]) EndArray(r scale.Range, elements []V) (V, error) {
	t.popElemBase()
	out, err := t.inner.EndArray(r, elements)
	return out, t.annotate(r, err)
}

func (t *Tracer[V]) BeginTuple(r scale.Range, length int) error {
	t.pushElemBase()
	return t.annotate(r, t.inner.BeginTuple(r, length))
}
func (t *Tracer[V]) EndTuple(r scale.Range, elements []V) (V, error) {
	t.popElemBase()
	out, err := t.inner.EndTuple(r, elements)
	return out, t.annotate(r, err)
}

func (t *Tracer[V]) pushElemBase() { t.elemBase = append(t.elemBase, len(t.path)) }
func (t *Tracer[V]) popElemBase() {
	if n := len(t.elemBase); n > 0 {
		t.path = t.path[:t.elemBase[n-1]]
		t.elemBase = t.elemBase[:n-1]
	}
}

// renderedError is the JSON shape one traced error renders to.
type renderedError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Offset  int    `json:"offset"`
	Cause   string `json:"cause,omitempty"`
}

// RenderJSON pretty-prints a traced *scale.Error as JSON, for debug
// logging or an error-reporting endpoint. Any other error type is
// wrapped with an empty path/offset.
func RenderJSON(err error) (string, error) {
	var se *scale.Error
	if !errors.As(err, &se) {
		se = &scale.Error{Kind: scale.KindVisitor, Message: err.Error()}
	}
	out := renderedError{
		Kind:    se.Kind.String(),
		Message: se.Message,
		Path:    se.Path,
		Offset:  se.Offset,
	}
	if se.Cause != nil {
		out.Cause = se.Cause.Error()
	}
	b, jerr := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(out, "", "  ")
	if jerr != nil {
		return "", jerr
	}
	return string(b), nil
}
