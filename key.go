package httpsig

// Key is a single signing identity. A key declares which algorithms it
// supports, whether it currently holds the material needed to sign or
// verify, and performs the raw signing and verification primitives.
type Key interface {
	// ID returns the key's own identifier. DefaultKeyID uses it verbatim.
	ID() string

	// Algorithms lists the algorithms this key supports, in the key's
	// preference order. Negotiation picks the first entry also accepted by
	// the active challenge.
	Algorithms() []Algorithm

	// CanSign reports whether private material is present.
	CanSign() bool

	// CanVerify reports whether public material is present.
	CanVerify() bool

	// Sign signs payload with algo and returns the raw signature bytes.
	Sign(algo Algorithm, payload []byte) ([]byte, error)

	// Verify checks signature over payload with algo. Returns nil on
	// success.
	Verify(algo Algorithm, payload, signature []byte) error
}

// KeyID is the strategy for deriving the public key identifier placed in an
// Authorization token. Implementations must be deterministic: the same key
// always yields the same identifier.
type KeyID interface {
	GetID(key Key) string
}

// KeyIDFunc adapts a plain function to the KeyID interface.
type KeyIDFunc func(key Key) string

func (f KeyIDFunc) GetID(key Key) string {
	return f(key)
}

// DefaultKeyID identifies a key by its own ID.
var DefaultKeyID KeyID = KeyIDFunc(func(key Key) string {
	return key.ID()
})

// KeyFinder locates the key a given key identifier refers to. It is consumed
// by Verifier; the keyman package provides a keychain-backed implementation.
type KeyFinder interface {
	FindKey(keyID string) (Key, error)
}
