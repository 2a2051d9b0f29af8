package httpsig

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// Verifier is the server-side counterpart of Signer: it checks Authorization
// tokens against the keys a KeyFinder can locate and enforces the header
// coverage the active challenge requires.
type Verifier struct {
	keys      KeyFinder
	challenge *Challenge
}

// NewVerifier creates a Verifier enforcing challenge. A nil challenge falls
// back to the preemptive challenge.
func NewVerifier(keys KeyFinder, challenge *Challenge) *Verifier {
	if challenge == nil {
		challenge = Preemptive
	}
	return &Verifier{
		keys:      keys,
		challenge: challenge,
	}
}

// Challenge returns the challenge this Verifier enforces. Servers send its
// String form in the WWW-Authenticate header of a 401 response.
func (ver *Verifier) Challenge() *Challenge {
	return ver.challenge
}

// VerifyRequest parses the request's Authorization header and verifies it
// against the request content.
func (ver *Verifier) VerifyRequest(req *http.Request) error {
	header := req.Header.Get("Authorization")
	if header == "" {
		return newError(ErrInvalidAuthorization, "Missing Authorization header")
	}
	authz, err := ParseAuthorization(header)
	if err != nil {
		return err
	}
	return ver.Verify(authz, NewRequestContent(req))
}

// Verify checks that authz covers every header the challenge requires, uses
// an acceptable algorithm, and carries a signature that verifies under the
// key its key id names.
func (ver *Verifier) Verify(authz *Authorization, content RequestContent) error {
	if authz == nil {
		return newError(ErrInvalidAuthorization, "No authorization provided")
	}

	covered := map[string]bool{}
	for _, name := range authz.Headers {
		covered[strings.ToLower(name)] = true
	}
	for _, required := range ver.challenge.Headers {
		if !covered[strings.ToLower(required)] {
			return newError(ErrMissingHeader, fmt.Sprintf("Signature does not cover required header '%s'", required))
		}
	}

	if !ver.challenge.HasAlgorithm(authz.Algorithm) {
		return newError(ErrInvalidAlgorithm, fmt.Sprintf("Algorithm '%s' is not acceptable under the challenge", authz.Algorithm))
	}

	key, err := ver.keys.FindKey(authz.KeyID)
	if err != nil {
		return newError(ErrKeyNotFound, fmt.Sprintf("Failed to find key for keyid '%s'", authz.KeyID), err)
	}
	if !key.CanVerify() {
		return newError(ErrInvalidKey, fmt.Sprintf("Key for keyid '%s' has no public material", authz.KeyID))
	}

	signature, err := base64.StdEncoding.DecodeString(authz.Signature)
	if err != nil {
		return newError(ErrInvalidAuthorization, "Signature is not valid base64", err)
	}

	payload, err := content.BytesToSign(authz.Headers)
	if err != nil {
		return err
	}

	return key.Verify(authz.Algorithm, payload, signature)
}
