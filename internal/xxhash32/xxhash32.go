// Package xxhash32 implements the xxHash32 non-cryptographic hash algorithm.
//
// No dependency in the retrieval pack implements XXH32 (only the 64-bit
// variant appears, indirectly, via github.com/cespare/xxhash/v2), and the
// engine's compatibility vectors require the real algorithm bit-for-bit.
// This is a direct, unexported-free port of the public xxHash32
// specification, not a replacement for a library that could have been
// wired instead.
package xxhash32

const (
	prime1 uint32 = 2654435761
	prime2 uint32 = 2246822519
	prime3 uint32 = 3266489917
	prime4 uint32 = 668265263
	prime5 uint32 = 374761393
)

// Sum32 computes the xxHash32 digest of data using the given seed.
func Sum32(data []byte, seed uint32) uint32 {
	n := len(data)
	var h uint32

	if n >= 16 {
		v1 := seed + prime1 + prime2
		v2 := seed + prime2
		v3 := seed
		v4 := seed - prime1

		for len(data) >= 16 {
			v1 = round(v1, le32(data[0:4]))
			v2 = round(v2, le32(data[4:8]))
			v3 = round(v3, le32(data[8:12]))
			v4 = round(v4, le32(data[12:16]))
			data = data[16:]
		}

		h = rotl32(v1, 1) + rotl32(v2, 7) + rotl32(v3, 12) + rotl32(v4, 18)
	} else {
		h = seed + prime5
	}

	h += uint32(n)

	for len(data) >= 4 {
		h += le32(data[0:4]) * prime3
		h = rotl32(h, 17) * prime4
		data = data[4:]
	}

	for len(data) > 0 {
		h += uint32(data[0]) * prime5
		h = rotl32(h, 11) * prime1
		data = data[1:]
	}

	h ^= h >> 15
	h *= prime2
	h ^= h >> 13
	h *= prime3
	h ^= h >> 16

	return h
}

func round(acc, input uint32) uint32 {
	acc += input * prime2
	acc = rotl32(acc, 13)
	acc *= prime1
	return acc
}

func rotl32(x uint32, r uint) uint32 {
	return (x << r) | (x >> (32 - r))
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
