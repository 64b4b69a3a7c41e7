package hashers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paritytech/frame-decode/hashers"
)

func TestOutputWidth(t *testing.T) {
	cases := map[hashers.Kind]int{
		hashers.Blake2_128:       16,
		hashers.Blake2_256:       32,
		hashers.Blake2_128Concat: 16,
		hashers.Twox128:          16,
		hashers.Twox256:          32,
		hashers.Twox64Concat:     8,
		hashers.Identity:         0,
	}
	for k, want := range cases {
		require.Equal(t, want, k.OutputWidth(), k.String())
	}
}

func TestIsConcat(t *testing.T) {
	require.True(t, hashers.Blake2_128Concat.IsConcat())
	require.True(t, hashers.Twox64Concat.IsConcat())
	require.True(t, hashers.Identity.IsConcat())
	require.False(t, hashers.Blake2_128.IsConcat())
	require.False(t, hashers.Twox128.IsConcat())
}

func TestSum_Width(t *testing.T) {
	data := []byte("Staking")
	require.Len(t, hashers.Sum(hashers.Twox128, data), 16)
	require.Len(t, hashers.Sum(hashers.Twox256, data), 32)
	require.Len(t, hashers.Sum(hashers.Twox64Concat, data), 8)
	require.Len(t, hashers.Sum(hashers.Blake2_128, data), 16)
	require.Len(t, hashers.Sum(hashers.Blake2_256, data), 32)
}

func TestSum_Deterministic(t *testing.T) {
	data := []byte("Validators")
	require.Equal(t, hashers.Sum(hashers.Twox128, data), hashers.Sum(hashers.Twox128, data))
	// Both are xxHash64 digests seeded 0, 1, ..., so Twox128 is exactly the
	// first two digests of Twox256.
	require.Equal(t, hashers.Sum(hashers.Twox128, data), hashers.Sum(hashers.Twox256, data)[:16])
}
