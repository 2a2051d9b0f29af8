package httpsig

import (
	"encoding/base64"
	"strings"
	"sync"
)

// Signer selects a usable key from a keychain, negotiates an algorithm
// against the server's challenge, and signs request content into
// Authorization tokens. When the caller reports a failed authentication, the
// Signer rotates to the next candidate key.
//
// A Signer is constructed once per signing identity and mutated in place
// across its lifetime. All state transitions and candidate reads are
// serialized on an instance mutex, so a single Signer may be shared across
// concurrent request attempts.
type Signer struct {
	mu         sync.Mutex
	keyID      KeyID
	keychain   Keychain   // the full set of configured keys; never narrowed
	candidates Keychain   // the live rotation cursor
	challenge  *Challenge // the challenge candidates was last filtered against
}

// NewSigner creates a Signer over the given keychain. A nil keychain is
// treated as empty: the Signer starts with no viable candidates and Sign
// returns nil. A nil keyID falls back to DefaultKeyID.
func NewSigner(keychain Keychain, keyID KeyID) *Signer {
	if keychain == nil {
		keychain = NewKeychain()
	}
	if keyID == nil {
		keyID = DefaultKeyID
	}
	s := &Signer{
		keyID:     keyID,
		keychain:  keychain,
		challenge: Preemptive,
	}
	s.candidates = keychain.FilterAlgorithms(Preemptive.Algorithms)
	s.skipIncapable()
	return s
}

// NewSingleKeySigner wraps key in a one-element keychain.
func NewSingleKeySigner(key Key, keyID KeyID) *Signer {
	return NewSigner(NewKeychain(key), keyID)
}

// skipIncapable discards candidate keys until the current one can sign or no
// candidates remain. It must run after every narrowing of candidates and
// before candidates is exposed. Callers must hold mu (or be the
// constructor, before the Signer escapes).
func (s *Signer) skipIncapable() {
	for !s.candidates.IsEmpty() && !s.candidates.Current().CanSign() {
		s.candidates = s.candidates.Discard()
	}
}

// Keychain returns the original keychain supplied to the Signer.
func (s *Signer) Keychain() Keychain {
	return s.keychain
}

// CandidateKeys returns the challenge-filtered and rotated keychain.
func (s *Signer) CandidateKeys() Keychain {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.candidates
}

// KeyID returns the key identifier strategy in use.
func (s *Signer) KeyID() KeyID {
	return s.keyID
}

// Reset is equivalent to Rotate(Preemptive, nil). When the active challenge
// differs from the preemptive one the candidates are re-derived from the
// full keychain; when the preemptive challenge is already in effect this is
// a no-op and does not restore discarded candidates. Returns true if at
// least one usable key remains.
func (s *Signer) Reset() bool {
	remaining, _ := s.Rotate(Preemptive, nil)
	return remaining
}

// Rotate advances the candidate keys in response to a failed request.
//
// When next is equal to the challenge already in effect, the failure was not
// caused by a change of server policy: the current candidate is discarded
// only if failed names it, meaning failed is non-nil and its key id equals
// the current candidate's id. Otherwise the candidates are left alone.
// When next differs, the candidates are re-derived from the full keychain
// against next's algorithms, discarding all prior rotation progress.
//
// failed may be nil when the previous Authorization is unknown. next must
// not be nil; passing nil is a caller error and returns an ErrInvalidChallenge
// SignatureError without mutating state.
//
// Returns true if at least one usable key remains after rotation.
func (s *Signer) Rotate(next *Challenge, failed *Authorization) (bool, error) {
	if next == nil {
		return false, newError(ErrInvalidChallenge, "next challenge cannot be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.challenge.Equal(next) {
		if !s.candidates.IsEmpty() && failed != nil &&
			s.keyID.GetID(s.candidates.Current()) == failed.GetKeyID() {
			s.candidates = s.candidates.Discard()
		}
	} else {
		s.candidates = s.keychain.FilterAlgorithms(next.Algorithms)
	}
	s.skipIncapable()
	s.challenge = next
	return !s.candidates.IsEmpty(), nil
}

// Sign signs content and returns an Authorization token. The signature
// covers every header name the content exposes, plus any headers the active
// challenge requires. Returns nil if no candidate key can produce a
// signature; absence of a signature is a legitimate outcome, not an error.
func (s *Signer) Sign(content RequestContent) *Authorization {
	return s.SignHeaders(content, content.HeaderNames())
}

// SignHeaders signs content covering the given elective headers plus the
// headers the active challenge requires. Elective order is preserved;
// required headers missing from the elective list are appended once.
// Returns nil if no candidate key can produce a signature.
func (s *Signer) SignHeaders(content RequestContent, electiveHeaders []string) *Authorization {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candidates.IsEmpty() {
		return nil
	}
	key := s.candidates.Current()

	// Negotiate: first key algorithm the challenge also accepts. When there
	// is no intersection the empty algorithm is passed through and the key
	// declines to sign.
	var algo Algorithm
	for _, a := range key.Algorithms() {
		if s.challenge.HasAlgorithm(a) {
			algo = a
			break
		}
	}

	headers := unionHeaders(electiveHeaders, s.challenge.Headers)

	payload, err := content.BytesToSign(headers)
	if err != nil {
		return nil
	}

	signature, err := key.Sign(algo, payload)
	if err != nil || signature == nil {
		return nil
	}

	return &Authorization{
		KeyID:     s.keyID.GetID(key),
		Signature: base64.StdEncoding.EncodeToString(signature),
		Headers:   headers,
		Algorithm: algo,
	}
}

// unionHeaders builds the insertion-ordered, duplicate-free union of the
// elective and required header names, normalized to lower case.
func unionHeaders(elective, required []string) []string {
	headers := []string{}
	seen := map[string]bool{}
	for _, name := range elective {
		name = strings.ToLower(name)
		if !seen[name] {
			seen[name] = true
			headers = append(headers, name)
		}
	}
	for _, name := range required {
		name = strings.ToLower(name)
		if !seen[name] {
			seen[name] = true
			headers = append(headers, name)
		}
	}
	return headers
}
