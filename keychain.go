package httpsig

// Keychain is an ordered collection of keys with a cursor. All narrowing
// operations are value-returning: Discard and FilterAlgorithms build a new
// keychain and leave the receiver untouched, so a holder of an earlier
// keychain value is unaffected by later narrowing.
type Keychain interface {
	// IsEmpty reports whether any keys remain.
	IsEmpty() bool

	// Len returns the number of remaining keys.
	Len() int

	// Current returns the cursor key. Precondition: the keychain is
	// non-empty.
	Current() Key

	// Discard returns a new keychain with the current key removed. The new
	// keychain's current key is the next key in the original order. Discard
	// of an empty keychain returns an empty keychain.
	Discard() Keychain

	// FilterAlgorithms returns a new keychain restricted to keys supporting
	// at least one of algos, preserving the relative order of the keys that
	// remain.
	FilterAlgorithms(algos []Algorithm) Keychain

	// Keys returns the remaining keys in order.
	Keys() []Key
}

// DefaultKeychain is an immutable view over a shared backing slice. Discard
// advances an offset into the backing slice rather than copying it, so views
// are cheap and never alias mutable state with previously returned views.
type DefaultKeychain struct {
	keys []Key // shared backing; never mutated after construction
	off  int
}

// NewKeychain builds a keychain over the given keys in order.
func NewKeychain(keys ...Key) *DefaultKeychain {
	backing := make([]Key, len(keys))
	copy(backing, keys)
	return &DefaultKeychain{keys: backing}
}

func (kc *DefaultKeychain) IsEmpty() bool {
	return kc.off >= len(kc.keys)
}

func (kc *DefaultKeychain) Len() int {
	return len(kc.keys) - kc.off
}

// Current returns the cursor key. It panics on an empty keychain; callers
// must check IsEmpty first.
func (kc *DefaultKeychain) Current() Key {
	return kc.keys[kc.off]
}

func (kc *DefaultKeychain) Discard() Keychain {
	if kc.IsEmpty() {
		return kc
	}
	return &DefaultKeychain{keys: kc.keys, off: kc.off + 1}
}

func (kc *DefaultKeychain) FilterAlgorithms(algos []Algorithm) Keychain {
	accepted := make(map[Algorithm]bool, len(algos))
	for _, algo := range algos {
		accepted[algo] = true
	}

	filtered := []Key{}
	for _, key := range kc.keys[kc.off:] {
		for _, algo := range key.Algorithms() {
			if accepted[algo] {
				filtered = append(filtered, key)
				break
			}
		}
	}
	return &DefaultKeychain{keys: filtered}
}

func (kc *DefaultKeychain) Keys() []Key {
	remaining := make([]Key, kc.Len())
	copy(remaining, kc.keys[kc.off:])
	return remaining
}
