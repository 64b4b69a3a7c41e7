package legacy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paritytech/frame-decode/hashers"
	"github.com/paritytech/frame-decode/metadata/legacy"
)

func TestExtrinsicShapeFor_FixedExtensionList(t *testing.T) {
	m := &legacy.Metadata{
		Spec:        1020,
		AddressType: "Address",
		SigType:     "Signature",
	}
	shape, err := m.ExtrinsicShapeFor(4)
	require.NoError(t, err)
	require.False(t, shape.HasExtensionVersionByte)
	require.Contains(t, shape.ExtensionsByVer, uint8(0))
}

func TestExtrinsicShapeFor_RejectsVersion5(t *testing.T) {
	m := &legacy.Metadata{}
	_, err := m.ExtrinsicShapeFor(5)
	require.Error(t, err)
}

func TestResolveCall(t *testing.T) {
	m := &legacy.Metadata{
		Pallets_: []legacy.Pallet{
			{Name: "Staking", Index: 5, Calls: []legacy.Call{
				{Index: 0, Name: "bond", Args: []legacy.CallArg{{Name: "controller", Type: "Address"}}},
			}},
		},
	}
	shape, _ := m.ExtrinsicShapeFor(4)
	pallet, call, args, err := shape.Calls.ResolveCall(5, 0)
	require.NoError(t, err)
	require.Equal(t, "Staking", pallet)
	require.Equal(t, "bond", call)
	require.Len(t, args, 1)
}

func TestStorageEntry(t *testing.T) {
	m := &legacy.Metadata{
		Pallets_: []legacy.Pallet{
			{Name: "Staking", Storage: []legacy.StorageEntry{
				{
					Name:       "Validators",
					HasherKeys: []string{"Blake2_128Concat"},
					KeyTypes:   []legacy.Name{"AccountId"},
					ValueType:  "ValidatorPrefs",
				},
			}},
		},
	}
	shape, err := m.StorageEntry("Staking", "Validators")
	require.NoError(t, err)
	require.Equal(t, legacy.Name("ValidatorPrefs"), shape.ValueType)
	require.Equal(t, []hashers.Kind{hashers.Blake2_128Concat}, shape.Hashers)
}

func TestStorageEntry_UnknownHasherFails(t *testing.T) {
	m := &legacy.Metadata{
		Pallets_: []legacy.Pallet{
			{Name: "Staking", Storage: []legacy.StorageEntry{
				{Name: "Validators", HasherKeys: []string{"NotAHasher"}},
			}},
		},
	}
	_, err := m.StorageEntry("Staking", "Validators")
	require.Error(t, err)
}
