package registry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paritytech/frame-decode/registry"
	"github.com/paritytech/frame-decode/scaleinfo"
)

const sampleYAML = `
global:
  types:
    AccountId: "[u8; 32]"
    Balance: u128
forSpec:
  - range: [1000, 1999]
    types:
      Balance: u64
  - range: [2000, null]
    types:
      Vec<T>:
        _enum:
          - Old
`

func TestLoad_ParsesGlobalAndForSpec(t *testing.T) {
	f, err := registry.Load([]byte(sampleYAML))
	require.NoError(t, err)
	require.Contains(t, f.Global.Types, "AccountId")
	require.Len(t, f.ForSpec, 2)
}

func TestOverlay_LaterForSpecShadowsGlobal(t *testing.T) {
	f, err := registry.Load([]byte(sampleYAML))
	require.NoError(t, err)

	ov := f.Overlay(nil, 1500)
	require.Equal(t, "u64", ov["Balance"].Alias)

	ov2 := f.Overlay(nil, 500)
	require.Equal(t, "u128", ov2["Balance"].Alias)
}

func TestResolver_ResolvesAliasChain(t *testing.T) {
	f, err := registry.Load([]byte(sampleYAML))
	require.NoError(t, err)
	ov := f.Overlay(nil, 1500)
	r := registry.Resolver(ov)

	shape, err := r.Resolve("Balance")
	require.NoError(t, err)
	require.Equal(t, scaleinfo.TagPrimitive, shape.Tag)
	require.Equal(t, scaleinfo.PrimU64, shape.Primitive)
}

func TestResolver_UnknownName(t *testing.T) {
	r := registry.Resolver(map[string]registry.RawDef{})
	_, err := r.Resolve("Nope")
	require.Error(t, err)
}

func TestResolver_GenericSubstitutionMatchesWholeTokensOnly(t *testing.T) {
	ov := map[string]registry.RawDef{
		"Wrapper<T>": {Fields: map[string]string{
			"value": "T",
			// "Timestamp" contains the letter "T" but must survive
			// substitution untouched - it is not the generic parameter.
			"at": "Timestamp",
		}},
	}
	r := registry.Resolver(ov)

	shape, err := r.Resolve("Wrapper<AccountId>")
	require.NoError(t, err)
	require.Equal(t, scaleinfo.TagComposite, shape.Tag)

	byName := map[string]string{}
	for _, f := range shape.Fields {
		byName[f.Name] = f.ID
	}
	require.Equal(t, "AccountId", byName["value"])
	require.Equal(t, "Timestamp", byName["at"])
}

func TestHasherByName(t *testing.T) {
	k, ok := registry.HasherByName("Twox128")
	require.True(t, ok)
	require.Equal(t, 16, k.OutputWidth())

	_, ok = registry.HasherByName("Nonsense")
	require.False(t, ok)
}
