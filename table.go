package chashmap

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Hasher computes a deterministic, total hash for a key. Equal keys
// (per the paired KeyEqual) must hash equally.
type Hasher[K any] func(K) uint64

// KeyEqual is an equivalence relation over keys, consistent with the
// Hasher a table was constructed with.
type KeyEqual[K any] func(a, b K) bool

// table is the BucketArray of spec.md: a fixed-size, immutable-after-
// construction array of buckets plus the hasher/key-equality pair and an
// atomic element counter. Bucket i's sentinel links forward to bucket
// i+1's bucket struct (nil for the last), so the whole table is one
// chained list for the purposes of global iteration.
type table[K comparable, V any] struct {
	buckets     []bucket[K, V]
	bucketCount int
	hasher      Hasher[K]
	keyEqual    KeyEqual[K]
	seeded      bool

	// Separates the (read-mostly) configuration above from the
	// (write-heavy) counter below to avoid false sharing between
	// readers snapshotting the table and writers updating nodeCount.
	_ cpu.CacheLinePad

	nodeCount atomic.Int64
}

func newTable[K comparable, V any](bucketCount int, hasher Hasher[K], keyEqual KeyEqual[K]) *table[K, V] {
	return newTableSeeded[K, V](bucketCount, hasher, keyEqual, false)
}

func newTableSeeded[K comparable, V any](bucketCount int, hasher Hasher[K], keyEqual KeyEqual[K], seeded bool) *table[K, V] {
	if bucketCount <= 0 {
		panic("chashmap: bucket count must be positive")
	}

	t := &table[K, V]{
		buckets:     make([]bucket[K, V], bucketCount),
		bucketCount: bucketCount,
		hasher:      hasher,
		keyEqual:    keyEqual,
		seeded:      seeded,
	}
	for i := bucketCount - 1; i >= 0; i-- {
		var next *bucket[K, V]
		if i+1 < bucketCount {
			next = &t.buckets[i+1]
		}
		t.buckets[i].sentinel = newSentinel[K, V](next)
	}
	return t
}

// cloneEmpty allocates a fresh, empty table with the same configuration.
func (t *table[K, V]) cloneEmpty() *table[K, V] {
	return newTableSeeded[K, V](t.bucketCount, t.hasher, t.keyEqual, t.seeded)
}

// comparableWith reports whether t and other can be compared bucket-by-
// bucket instead of gathering both maps whole: they need the same
// bucket count, and both must use a non-seeded (caller-supplied,
// presumed pure) Hasher that happens to be the identical function
// value. A seeded (default, randomized) Hasher never qualifies, since
// two instances of it are indistinguishable by code pointer alone
// despite hashing differently.
func (t *table[K, V]) comparableWith(other *table[K, V]) bool {
	if t.seeded || other.seeded {
		return false
	}
	return t.bucketCount == other.bucketCount && sameHasher(t.hasher, other.hasher)
}

func (t *table[K, V]) bucketIndex(key K) int {
	return int(t.hasher(key) % uint64(t.bucketCount))
}

func (t *table[K, V]) bucketForKey(key K) *bucket[K, V] {
	return &t.buckets[t.bucketIndex(key)]
}

func (t *table[K, V]) find(key K) (prev, cur *node[K, V], found bool) {
	return t.bucketForKey(key).find(key, t.keyEqual)
}

func (t *table[K, V]) size() int64 {
	return t.nodeCount.Load()
}
