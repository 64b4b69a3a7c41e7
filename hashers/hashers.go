// Package hashers implements the storage-key hasher engine (component E):
// identifying a hasher kind, its fixed output width, and whether it embeds
// the hashed key's pre-image after the digest ("concat" hashers).
package hashers

import (
	"github.com/cespare/xxhash/v2"
	"github.com/minio/blake2b-simd"
)

// Kind identifies a storage-key hasher, per spec §4.5.
type Kind int

const (
	Blake2_128 Kind = iota
	Blake2_256
	Blake2_128Concat
	Twox128
	Twox256
	Twox64Concat
	Identity
)

// ByName maps the textual hasher names historic (V8-V13) metadata carries
// to a Kind, per spec §4.4's StorageHasher enum.
func ByName(name string) (Kind, bool) {
	switch name {
	case "Blake2_128":
		return Blake2_128, true
	case "Blake2_256":
		return Blake2_256, true
	case "Blake2_128Concat":
		return Blake2_128Concat, true
	case "Twox128":
		return Twox128, true
	case "Twox256":
		return Twox256, true
	case "Twox64Concat":
		return Twox64Concat, true
	case "Identity":
		return Identity, true
	default:
		return 0, false
	}
}

func (k Kind) String() string {
	switch k {
	case Blake2_128:
		return "Blake2_128"
	case Blake2_256:
		return "Blake2_256"
	case Blake2_128Concat:
		return "Blake2_128Concat"
	case Twox128:
		return "Twox128"
	case Twox256:
		return "Twox256"
	case Twox64Concat:
		return "Twox64Concat"
	case Identity:
		return "Identity"
	default:
		return "Unknown"
	}
}

// OutputWidth returns the fixed hash output width in bytes (spec §4.5
// table). Identity's "hash" is the pre-image itself, so its own width is
// zero - the key's encoded length determines how many bytes it occupies.
func (k Kind) OutputWidth() int {
	switch k {
	case Blake2_128, Blake2_128Concat:
		return 16
	case Blake2_256:
		return 32
	case Twox128:
		return 16
	case Twox256:
		return 32
	case Twox64Concat:
		return 8
	case Identity:
		return 0
	default:
		return 0
	}
}

// IsConcat reports whether this hasher's output is followed by the raw
// SCALE-encoded pre-image of the key (spec §4.5).
func (k Kind) IsConcat() bool {
	switch k {
	case Blake2_128Concat, Twox64Concat, Identity:
		return true
	default:
		return false
	}
}

// Sum hashes data under the given hasher kind, returning exactly
// OutputWidth(k) bytes. For Identity it returns an empty slice: the caller
// is expected to treat the entire pre-image as the "hash".
func Sum(k Kind, data []byte) []byte {
	switch k {
	case Blake2_128, Blake2_128Concat:
		return blake2bSum(data, 16)
	case Blake2_256:
		return blake2bSum(data, 32)
	case Twox128:
		return twox(data, 2)
	case Twox256:
		return twox(data, 4)
	case Twox64Concat:
		return twox(data, 1)
	case Identity:
		return nil
	default:
		return nil
	}
}

func blake2bSum(data []byte, size int) []byte {
	h, err := blake2b.New(&blake2b.Config{Size: uint8(size)})
	if err != nil {
		// Only invalid sizes (>64 or 0) return an error, and size is
		// always one of our two fixed constants above.
		panic(err)
	}
	_, _ = h.Write(data)
	return h.Sum(nil)
}

// twox reproduces the chain's "twox" hasher: n concatenated xxHash64
// digests of data, seeded 0, 1, 2, ... (Twox128 = 2 digests = 16 bytes,
// Twox256 = 4 digests = 32 bytes, Twox64Concat = 1 digest = 8 bytes).
func twox(data []byte, rounds int) []byte {
	out := make([]byte, 0, rounds*8)
	for seed := uint64(0); int(seed) < rounds; seed++ {
		d := xxhash.NewWithSeed(seed)
		_, _ = d.Write(data)
		sum := d.Sum64()
		out = appendLE64(out, sum)
	}
	return out
}

func appendLE64(dst []byte, v uint64) []byte {
	return append(dst,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56),
	)
}
