package frameinfo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paritytech/frame-decode/frameinfo"
	"github.com/paritytech/frame-decode/metadata"
)

type testMetadata struct{}

func (testMetadata) SpecVersion() uint32                 { return 9110 }
func (testMetadata) SupportedExtrinsicVersions() []uint8 { return []uint8{4} }
func (testMetadata) ExtrinsicShapeFor(uint8) (metadata.ExtrinsicShape[string], error) {
	return metadata.ExtrinsicShape[string]{}, nil
}
func (testMetadata) Pallets() []string { return []string{"System", "Staking"} }
func (testMetadata) StorageEntries(pallet string) ([]metadata.StorageEntryShape[string], error) {
	if pallet == "Staking" {
		return []metadata.StorageEntryShape[string]{{Name: "Validators"}, {Name: "Bonded"}}, nil
	}
	return []metadata.StorageEntryShape[string]{{Name: "Account"}}, nil
}
func (testMetadata) StorageEntry(pallet, entry string) (metadata.StorageEntryShape[string], error) {
	return metadata.StorageEntryShape[string]{Name: entry}, nil
}
func (testMetadata) RuntimeApiMethod(string, string) ([]metadata.ArgType[string], string, error) {
	return nil, "", nil
}
func (testMetadata) Constant(string, string) (string, []byte, error) { return "", nil, nil }
func (testMetadata) CustomValue(string) (string, []byte, error)      { return "", nil, nil }
func (testMetadata) ViewFunction(string, string) ([]metadata.ArgType[string], string, error) {
	return nil, "", nil
}

func TestRegistryFromMetadata(t *testing.T) {
	reg, err := frameinfo.RegistryFromMetadata[string](testMetadata{})
	require.NoError(t, err)
	require.Equal(t, uint32(9110), reg.SpecVersion)
	require.Len(t, reg.Pallets, 2)
}

func TestListPalletsAndStorageEntries(t *testing.T) {
	require.Equal(t, []string{"System", "Staking"}, frameinfo.Pallets[string](testMetadata{}))
	entries, err := frameinfo.StorageEntries[string](testMetadata{}, "Staking")
	require.NoError(t, err)
	require.Equal(t, []string{"Validators", "Bonded"}, entries)
}

func TestDisplayAddress(t *testing.T) {
	id := make([]byte, 32)
	id[0] = 1
	s := frameinfo.DisplayAddress(id)
	require.NotEmpty(t, s)
}
