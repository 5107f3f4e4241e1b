package derive

// KeySet is an insertion-ordered mapping from derived public keys to their
// derivation metadata. Iteration order reflects derivation traversal order,
// which downstream signing logic relies on; keys are unique. Every keyset
// returned by this module is freshly allocated and exclusively owned by the
// caller.
type KeySet[K comparable, V any] struct {
	order []K
	items map[K]V
}

func NewKeySet[K comparable, V any]() *KeySet[K, V] {
	return &KeySet[K, V]{items: make(map[K]V)}
}

// Insert adds or replaces the value for a key. A key keeps its original
// position when re-inserted.
func (s *KeySet[K, V]) Insert(key K, value V) {
	if _, ok := s.items[key]; !ok {
		s.order = append(s.order, key)
	}
	s.items[key] = value
}

func (s *KeySet[K, V]) Get(key K) (V, bool) {
	value, ok := s.items[key]
	return value, ok
}

func (s *KeySet[K, V]) Contains(key K) bool {
	_, ok := s.items[key]
	return ok
}

func (s *KeySet[K, V]) Len() int { return len(s.order) }

// Keys returns the keys in insertion order. The returned slice is a copy.
func (s *KeySet[K, V]) Keys() []K {
	return append([]K(nil), s.order...)
}

// ForEach visits every entry in insertion order until fn returns false.
func (s *KeySet[K, V]) ForEach(fn func(key K, value V) bool) {
	for _, key := range s.order {
		if !fn(key, s.items[key]) {
			return
		}
	}
}

// Equal reports whether two keysets hold the same keys in the same order
// with values equal under eq.
func (s *KeySet[K, V]) Equal(other *KeySet[K, V], eq func(a, b V) bool) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i, key := range s.order {
		if other.order[i] != key {
			return false
		}
		if !eq(s.items[key], other.items[key]) {
			return false
		}
	}
	return true
}

// ComprKeyset maps compressed public keys to their origins.
type ComprKeyset = KeySet[CompressedPk, KeyOrigin]

// XOnlyKeyset maps x-only public keys to their taproot derivation metadata.
type XOnlyKeyset = KeySet[XOnlyPk, TapDerivation]
