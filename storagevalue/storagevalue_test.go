package storagevalue_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paritytech/frame-decode/metadata"
	"github.com/paritytech/frame-decode/scale"
	"github.com/paritytech/frame-decode/scaleinfo"
	"github.com/paritytech/frame-decode/storagevalue"
)

type mapResolver map[string]scaleinfo.ResolvedShape[string]

func (m mapResolver) Resolve(id string) (scaleinfo.ResolvedShape[string], error) {
	s, ok := m[id]
	if !ok {
		return scaleinfo.ResolvedShape[string]{}, scale.NewError(scale.KindTypeNotFound, id, nil)
	}
	return s, nil
}

type testMetadata struct{ shape metadata.StorageEntryShape[string] }

func (m testMetadata) SpecVersion() uint32                 { return 0 }
func (m testMetadata) SupportedExtrinsicVersions() []uint8 { return nil }
func (m testMetadata) ExtrinsicShapeFor(uint8) (metadata.ExtrinsicShape[string], error) {
	return metadata.ExtrinsicShape[string]{}, nil
}
func (m testMetadata) Pallets() []string { return nil }
func (m testMetadata) StorageEntries(string) ([]metadata.StorageEntryShape[string], error) {
	return nil, nil
}
func (m testMetadata) StorageEntry(pallet, entry string) (metadata.StorageEntryShape[string], error) {
	return m.shape, nil
}
func (m testMetadata) RuntimeApiMethod(string, string) ([]metadata.ArgType[string], string, error) {
	return nil, "", nil
}
func (m testMetadata) Constant(string, string) (string, []byte, error) { return "", nil, nil }
func (m testMetadata) CustomValue(string) (string, []byte, error)      { return "", nil, nil }
func (m testMetadata) ViewFunction(string, string) ([]metadata.ArgType[string], string, error) {
	return nil, "", nil
}

func TestDecode_PrimitiveValue(t *testing.T) {
	md := testMetadata{shape: metadata.StorageEntryShape[string]{Name: "Count", ValueType: "u32"}}
	resolver := mapResolver{"u32": {Tag: scaleinfo.TagPrimitive, Primitive: scaleinfo.PrimU32}}

	v, err := storagevalue.Decode[string]("System", "Count", []byte{0x2a, 0, 0, 0}, md, resolver, scaleinfo.ValueVisitor{})
	require.NoError(t, err)
	require.Equal(t, uint64(42), v.UInt)
}

func TestDecode_TrailingBytes(t *testing.T) {
	md := testMetadata{shape: metadata.StorageEntryShape[string]{Name: "Count", ValueType: "u32"}}
	resolver := mapResolver{"u32": {Tag: scaleinfo.TagPrimitive, Primitive: scaleinfo.PrimU32}}

	_, err := storagevalue.Decode[string]("System", "Count", []byte{0x2a, 0, 0, 0, 0xff}, md, resolver, scaleinfo.ValueVisitor{})
	require.Error(t, err)
}

func TestDefault_UsesEntryDefaultBytes(t *testing.T) {
	md := testMetadata{shape: metadata.StorageEntryShape[string]{Name: "Count", ValueType: "u32", Default: []byte{0, 0, 0, 0}}}
	resolver := mapResolver{"u32": {Tag: scaleinfo.TagPrimitive, Primitive: scaleinfo.PrimU32}}

	v, err := storagevalue.Default[string]("System", "Count", md, resolver, scaleinfo.ValueVisitor{})
	require.NoError(t, err)
	require.Equal(t, uint64(0), v.UInt)
}
