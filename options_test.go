package chashmap

import "testing"

func TestNewConfigDefaults(t *testing.T) {
	cfg := newConfig[int, string](nil)
	if cfg.hasher == nil || cfg.keyEqual == nil {
		t.Fatal("newConfig with no options should still populate defaults")
	}
}

func TestWithHasherOverridesDefault(t *testing.T) {
	m := New[int, string](8, WithHasher[int, string](intHasher))
	// intHasher(key) == key, so every key lands in bucket key%8.
	if m.Bucket(5) != 5%8 {
		t.Fatalf("Bucket(5) = %d, want %d", m.Bucket(5), 5%8)
	}
}

func TestWithKeyEqualOverridesDefault(t *testing.T) {
	// A key-equal that folds case lets "A" and "a" collide even though
	// Go's == would treat them as distinct strings.
	caseless := func(a, b string) bool {
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			ca, cb := a[i], b[i]
			if ca >= 'A' && ca <= 'Z' {
				ca += 'a' - 'A'
			}
			if cb >= 'A' && cb <= 'Z' {
				cb += 'a' - 'A'
			}
			if ca != cb {
				return false
			}
		}
		return true
	}
	caselessHasher := func(s string) uint64 {
		return StringHasher(0)(lower(s))
	}

	m := New[string, int](4, WithHasher[string, int](caselessHasher), WithKeyEqual[string, int](caseless))
	m.Insert("Key", 1)
	if _, inserted := m.Insert("key", 2); inserted {
		t.Fatal("case-insensitive key-equal should treat \"Key\" and \"key\" as the same key")
	}
	v, err := m.At("KEY")
	if err != nil || v != 1 {
		t.Fatalf("At(\"KEY\") = %v, %v; want 1, nil", v, err)
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
