package chashmap

// Option configures a Map at construction time. The functional-options
// shape follows the configuration surface llxisdsh-pb's MapOf exposes
// (WithPresize, WithShrinkEnabled, ...), rather than exporting mutable
// struct fields.
type Option[K comparable, V any] func(*config[K, V])

type config[K comparable, V any] struct {
	hasher   Hasher[K]
	keyEqual KeyEqual[K]

	// seeded is true for the default hasher, whose closure captures a
	// random per-instance seed. Two default hashers produce the same
	// reflect.Value.Pointer() (they come from the same closure literal)
	// despite hashing differently, so comparing them by code pointer
	// alone is unsound — seeded disables that comparison. See
	// table.comparableWith.
	seeded bool
}

// WithHasher overrides the hash function used for keys. The default is
// DefaultHasher[K](), a per-table-seeded hash/maphash.Comparable.
//
// A Hasher passed to WithHasher must be a pure function of its key
// argument: the same Hasher value used across two tables is what lets
// Map.Equal take its cheaper bucket-wise comparison path (see
// table.comparableWith). A closure that captures per-instance state
// defeats that, the same way the built-in default hasher does.
func WithHasher[K comparable, V any](hasher Hasher[K]) Option[K, V] {
	return func(c *config[K, V]) {
		c.hasher = hasher
		c.seeded = false
	}
}

// WithKeyEqual overrides the key-equality predicate. It must be
// consistent with the configured Hasher: equal keys must hash equally.
// The default is DefaultKeyEqual[K](), built on Go's ==.
func WithKeyEqual[K comparable, V any](keyEqual KeyEqual[K]) Option[K, V] {
	return func(c *config[K, V]) { c.keyEqual = keyEqual }
}

func newConfig[K comparable, V any](opts []Option[K, V]) config[K, V] {
	c := config[K, V]{
		hasher:   DefaultHasher[K](),
		keyEqual: DefaultKeyEqual[K](),
		seeded:   true,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
