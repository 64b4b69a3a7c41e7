package extrinsic_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paritytech/frame-decode/extrinsic"
	"github.com/paritytech/frame-decode/metadata"
	"github.com/paritytech/frame-decode/scale"
	"github.com/paritytech/frame-decode/scaleinfo"
)

type mapResolver map[string]scaleinfo.ResolvedShape[string]

func (m mapResolver) Resolve(id string) (scaleinfo.ResolvedShape[string], error) {
	s, ok := m[id]
	if !ok {
		return scaleinfo.ResolvedShape[string]{}, scale.NewError(scale.KindTypeNotFound, id, nil)
	}
	return s, nil
}

type callResolver struct{}

func (callResolver) ResolveCall(palletIndex, callIndex uint8) (string, string, []metadata.ArgType[string], error) {
	if palletIndex == 5 && callIndex == 1 {
		return "Balances", "transfer", []metadata.ArgType[string]{
			{Name: "dest", Type: "u32"},
			{Name: "value", Type: "u64"},
		}, nil
	}
	return "", "", nil, scale.NewError(scale.KindCallNotFound, "unknown", nil)
}

type testMetadata struct{}

func (testMetadata) SpecVersion() uint32                    { return 9000 }
func (testMetadata) SupportedExtrinsicVersions() []uint8    { return []uint8{4} }
func (testMetadata) Pallets() []string                      { return nil }
func (testMetadata) StorageEntries(string) ([]metadata.StorageEntryShape[string], error) {
	return nil, nil
}
func (testMetadata) StorageEntry(string, string) (metadata.StorageEntryShape[string], error) {
	return metadata.StorageEntryShape[string]{}, nil
}
func (testMetadata) RuntimeApiMethod(string, string) ([]metadata.ArgType[string], string, error) {
	return nil, "", nil
}
func (testMetadata) Constant(string, string) (string, []byte, error)      { return "", nil, nil }
func (testMetadata) CustomValue(string) (string, []byte, error)           { return "", nil, nil }
func (testMetadata) ViewFunction(string, string) ([]metadata.ArgType[string], string, error) {
	return nil, "", nil
}
func (testMetadata) ExtrinsicShapeFor(version uint8) (metadata.ExtrinsicShape[string], error) {
	return metadata.ExtrinsicShape[string]{
		Version:       4,
		AddressType:   "u32",
		SignatureType: "u64",
		ExtensionsByVer: map[uint8][]metadata.ExtensionEntry[string]{
			0: {{Name: "era", Type: "u8"}},
		},
		Calls: callResolver{},
	}, nil
}

var resolver = mapResolver{
	"u8":  {Tag: scaleinfo.TagPrimitive, Primitive: scaleinfo.PrimU8},
	"u32": {Tag: scaleinfo.TagPrimitive, Primitive: scaleinfo.PrimU32},
	"u64": {Tag: scaleinfo.TagPrimitive, Primitive: scaleinfo.PrimU64},
}

func TestDecode_EmptyExtrinsic(t *testing.T) {
	info, err := extrinsic.Decode[string]([]byte{0x00}, testMetadata{}, resolver)
	require.NoError(t, err)
	require.True(t, info.Empty)
}

func TestDecode_UnsignedCall(t *testing.T) {
	// length prefix computed for: version(1) + pallet(1) + call(1) + dest u32(4) + value u64(8) = 15 bytes
	body := []byte{
		0x04,                   // version 4, unsigned
		0x05, 0x01,             // pallet 5, call 1
		0x07, 0x00, 0x00, 0x00, // dest = 7
		0x09, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // value = 9
	}
	buf := append([]byte{byte(len(body) << 2)}, body...)

	info, err := extrinsic.Decode[string](buf, testMetadata{}, resolver)
	require.NoError(t, err)
	require.False(t, info.Signed)
	require.Equal(t, "Balances", info.PalletName)
	require.Equal(t, "transfer", info.CallName)
	require.Len(t, info.Args, 2)
	require.Equal(t, uint64(7), info.Args[0].Value.UInt)
	require.Equal(t, uint64(9), info.Args[1].Value.UInt)
	// call_range runs from the pallet-index byte to the end of the last
	// arg; call_args_range is just the arg bytes (spec §8 Coverage).
	require.Equal(t, scale.Range{Start: 2, End: 16}, info.CallRange)
	require.Equal(t, scale.Range{Start: 4, End: 16}, info.CallArgsRange)
}

func TestDecode_SignedCall(t *testing.T) {
	body := []byte{
		0x84,       // version 4, signed
		0x2a, 0x00, 0x00, 0x00, // address u32 = 42
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // signature u64 = 0
		0x01,       // extension "era" u8 = 1
		0x05, 0x01, // pallet 5, call 1
		0x07, 0x00, 0x00, 0x00,
		0x09, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	buf := append([]byte{byte(len(body) << 2)}, body...)

	info, err := extrinsic.Decode[string](buf, testMetadata{}, resolver)
	require.NoError(t, err)
	require.True(t, info.Signed)
	require.Equal(t, "u32", info.AddressType)
	require.Equal(t, uint64(42), info.Address.UInt)
	require.Equal(t, "u64", info.SignatureType)
	require.Len(t, info.Extensions, 1)
	require.Equal(t, "era", info.Extensions[0].Name)
	require.Equal(t, scale.Range{Start: 15, End: 29}, info.CallRange)
	require.Equal(t, scale.Range{Start: 17, End: 29}, info.CallArgsRange)
}

func TestDecode_TrailingBytes(t *testing.T) {
	body := []byte{0x04, 0x05, 0x01, 0x07, 0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	buf := append([]byte{byte((len(body) + 1) << 2)}, body...)
	buf = append(buf, 0x00)

	_, err := extrinsic.Decode[string](buf, testMetadata{}, resolver)
	require.Error(t, err)
}

func TestDecode_UnknownCall(t *testing.T) {
	body := []byte{0x04, 0x09, 0x09}
	buf := append([]byte{byte(len(body) << 2)}, body...)
	_, err := extrinsic.Decode[string](buf, testMetadata{}, resolver)
	require.Error(t, err)
	require.True(t, errors.Is(err, scale.ErrCallNotFound))
}
