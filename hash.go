package chashmap

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// DefaultHasher returns a Hasher for any comparable key type, seeded
// once per call so that repeated construction of tables does not share
// a hash seed (mirrors hash_map's per-instance seeding in
// original_source/include/hash_map.hpp, and aristanetworks-gomap's
// per-Map maphash.Seed).
//
// It is built on hash/maphash.Comparable, which hashes arbitrary
// comparable values without requiring the caller to know their byte
// layout.
func DefaultHasher[K comparable]() Hasher[K] {
	seed := maphash.MakeSeed()
	return func(key K) uint64 {
		return maphash.Comparable(seed, key)
	}
}

// DefaultKeyEqual returns a KeyEqual built on Go's built-in ==, suitable
// for any comparable key type.
func DefaultKeyEqual[K comparable]() KeyEqual[K] {
	return func(a, b K) bool { return a == b }
}

// mix applies a 64-bit avalanche finisher (splitmix64's) so that a
// seed XORed into a hash doesn't just cancel out in the low bits.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// StringHasher returns a Hasher[string] built on xxhash, the hash
// function github.com/cespare/xxhash/v2 — the same library
// holmberd-go-cmap's concurrent map (in the retrieval pack) uses for its
// default string hasher. It is substantially faster than
// hash/maphash.Comparable for long strings.
func StringHasher(seed uint64) Hasher[string] {
	return func(key string) uint64 {
		return mix(xxhash.Sum64String(key) ^ seed)
	}
}

// BytesHasher returns a Hasher for any string-like or []byte-like key
// type, built on the same xxhash primitive as StringHasher.
func BytesHasher[K ~string | ~[]byte](seed uint64) Hasher[K] {
	return func(key K) uint64 {
		return mix(xxhash.Sum64([]byte(key)) ^ seed)
	}
}
