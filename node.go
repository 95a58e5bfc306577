package chashmap

import "sync/atomic"

// node is a single link in a bucket chain. It is either a data node,
// holding a key/value pair, or a sentinel marking the end of one bucket
// and the start of the next.
//
// next is read and written exclusively through atomic.Pointer: every
// traversal, insertion and erasure coordinates through compare-and-swap
// on this field, never through a lock.
type node[K comparable, V any] struct {
	next atomic.Pointer[node[K, V]]

	key K
	// value is boxed behind an atomic.Pointer so that InsertOrAssign can
	// replace it with a single atomic store. A plain struct field would
	// race with concurrent readers under the Go memory model — unlike
	// the C++ original, where a bare in-place assignment is merely
	// "not atomic" but not formally a detected race.
	value atomic.Pointer[V]

	// nextBucket is only meaningful on a sentinel; it is nil for the
	// sentinel of the last bucket. It never changes after the table
	// that owns it is constructed.
	nextBucket *bucket[K, V]

	isSentinel bool
}

func newSentinel[K comparable, V any](nextBucket *bucket[K, V]) *node[K, V] {
	n := &node[K, V]{isSentinel: true, nextBucket: nextBucket}
	n.next.Store(n) // empty bucket: sentinel loops back to itself
	return n
}

func newDataNode[K comparable, V any](key K, value V) *node[K, V] {
	n := &node[K, V]{key: key}
	n.value.Store(&value)
	return n
}

// loadValue returns the node's current value. Only valid on a data node.
func (n *node[K, V]) loadValue() V {
	return *n.value.Load()
}

// storeValue replaces the node's value with a single atomic store.
// Only valid on a data node.
func (n *node[K, V]) storeValue(value V) {
	n.value.Store(&value)
}
