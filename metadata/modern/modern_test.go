package modern_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paritytech/frame-decode/metadata/modern"
	"github.com/paritytech/frame-decode/scaleinfo"
)

func TestMetadata_ResolverAndPallets(t *testing.T) {
	m := &modern.Metadata{
		Spec: 9110,
		Types: map[uint32]modern.TypeDef{
			1: {ID: 1, Shape: scaleinfo.ResolvedShape[uint32]{Tag: scaleinfo.TagPrimitive, Primitive: scaleinfo.PrimU32}},
		},
		Pallets_: []modern.Pallet{
			{Name: "Staking", Index: 5, Storage: nil, CallTypeID: 10},
		},
	}
	shape, err := m.Resolver().Resolve(1)
	require.NoError(t, err)
	require.Equal(t, scaleinfo.TagPrimitive, shape.Tag)

	require.Equal(t, []string{"Staking"}, m.Pallets())
}

func TestMetadata_ExtrinsicShapeFor_RejectsOtherVersions(t *testing.T) {
	m := &modern.Metadata{}
	_, err := m.ExtrinsicShapeFor(5)
	require.Error(t, err)

	shape, err := m.ExtrinsicShapeFor(4)
	require.NoError(t, err)
	require.True(t, shape.HasExtensionVersionByte)
}

func TestMetadata_ResolveCall(t *testing.T) {
	m := &modern.Metadata{
		Types: map[uint32]modern.TypeDef{
			10: {ID: 10, Shape: scaleinfo.ResolvedShape[uint32]{
				Tag: scaleinfo.TagVariant,
				Cases: []scaleinfo.VariantCase[uint32]{
					{Index: 1, Name: "bond", Fields: []scaleinfo.CompositeField[uint32]{{Name: "value", ID: 1}}},
				},
			}},
		},
		Pallets_: []modern.Pallet{{Name: "Staking", Index: 5, CallTypeID: 10}},
	}
	shape, _ := m.ExtrinsicShapeFor(4)
	pallet, call, args, err := shape.Calls.ResolveCall(5, 1)
	require.NoError(t, err)
	require.Equal(t, "Staking", pallet)
	require.Equal(t, "bond", call)
	require.Len(t, args, 1)
}
