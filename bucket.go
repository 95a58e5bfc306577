package chashmap

import "runtime"

// bucket is a circular singly-linked list anchored by a permanent
// sentinel node. A non-empty bucket chains data nodes between the
// sentinel and itself; an empty bucket's sentinel points to itself.
//
// find, insert and erase are lock-free: progress is coordinated entirely
// through compare-and-swap on each node's next pointer. See
// DESIGN.md for the grounding of this protocol.
type bucket[K comparable, V any] struct {
	sentinel *node[K, V]
}

// find locates key in the bucket.
//
// On success it returns the node preceding the match, the match itself,
// and true. On failure it returns the last node before the sentinel
// (so that cur is always the bucket's sentinel) and false.
//
// A concurrent erase reserving a node (setting its next to nil) forces
// find to yield and restart the scan from the sentinel; retrying is the
// only correct response, since the reserved node may be unlinked by the
// time a caller acts on a stale prev/cur pair.
func (b *bucket[K, V]) find(key K, equal KeyEqual[K]) (prev, cur *node[K, V], found bool) {
	for {
		prev = b.sentinel
		restart := false
		for {
			cur = prev.next.Load()
			if cur == nil {
				restart = true
				break
			}
			if cur.isSentinel {
				return prev, cur, false
			}
			if equal(key, cur.key) {
				return prev, cur, true
			}
			prev = cur
		}
		if !restart {
			break
		}
		runtime.Gosched()
	}
	return prev, cur, false
}

// insert appends a data node for key/value at the tail of the bucket,
// unless key is already present. It reports the node with that key
// (either the pre-existing one or the newly inserted one) and whether
// an insertion actually happened.
func (b *bucket[K, V]) insert(key K, value V, equal KeyEqual[K]) (n *node[K, V], inserted bool) {
	var newNode *node[K, V]
	for {
		prev, cur, found := b.find(key, equal)
		if found {
			return cur, false
		}
		// cur is the sentinel: the tail of the bucket.
		if newNode == nil {
			newNode = newDataNode[K, V](key, value)
		}
		newNode.next.Store(cur)
		if prev.next.CompareAndSwap(cur, newNode) {
			return newNode, true
		}
		runtime.Gosched()
	}
}

// insertOrAssign behaves like insert, but on a hit it assigns the
// existing node's value instead of reporting a collision.
func (b *bucket[K, V]) insertOrAssign(key K, value V, equal KeyEqual[K]) (n *node[K, V], inserted bool) {
	var newNode *node[K, V]
	for {
		prev, cur, found := b.find(key, equal)
		if found {
			cur.storeValue(value)
			return cur, false
		}
		if newNode == nil {
			newNode = newDataNode[K, V](key, value)
		}
		newNode.next.Store(cur)
		if prev.next.CompareAndSwap(cur, newNode) {
			return newNode, true
		}
		runtime.Gosched()
	}
}

// erase removes key from the bucket using the two-phase sever/unlink
// protocol: a node is first "reserved" for deletion by atomically
// swapping its next to nil, then unlinked by CAS-ing the predecessor's
// next past it. See DESIGN.md and spec.md §4.2 for why this is safe.
func (b *bucket[K, V]) erase(key K, equal KeyEqual[K]) bool {
	for {
		prev, cur, found := b.find(key, equal)
		if !found {
			return false
		}

		next := cur.next.Swap(nil)
		if next == nil {
			// Someone else already reserved this node; let them finish.
			runtime.Gosched()
			continue
		}

		if prev.next.CompareAndSwap(cur, next) {
			return true
		}

		// The only legitimate reason the CAS above can fail is that prev
		// itself was concurrently erased (reserved, then restored during
		// its own unlink). Roll back our reservation and retry.
		cur.next.Store(next)
		runtime.Gosched()
	}
}

// size counts the data nodes currently in the bucket. It is used by the
// bucket interface (BucketSize) and is O(n) in the bucket's length.
func (b *bucket[K, V]) size() int {
	count := 0
	cur := b.sentinel.next.Load()
	for cur != nil && !cur.isSentinel {
		count++
		cur = cur.next.Load()
	}
	return count
}
