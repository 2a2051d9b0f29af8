// sigtest holds helpers shared by the httpsig test suites.
package sigtest

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signet-oss/httpsig-go"
)

// Diff fails the test when expected and actual differ, printing a go-cmp
// diff.
func Diff(t *testing.T, expected, actual any, msg string, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(expected, actual, opts...); diff != "" {
		t.Errorf("%s (-expected +actual):\n%s", msg, diff)
	}
}

// NewRSAKey generates a fresh 2048-bit RSA signing key.
func NewRSAKey(t *testing.T, id string) *httpsig.RSAKey {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	key, err := httpsig.NewRSAKey(id, priv)
	if err != nil {
		t.Fatal(err)
	}
	return key
}

// NewEd25519Key generates a fresh Ed25519 signing key.
func NewEd25519Key(t *testing.T, id string) *httpsig.Ed25519Key {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	key, err := httpsig.NewEd25519Key(id, priv)
	if err != nil {
		t.Fatal(err)
	}
	return key
}

// NewHMACKey creates an HMAC key with a fresh random 32-byte secret.
func NewHMACKey(t *testing.T, id string) *httpsig.HMACKey {
	t.Helper()
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		t.Fatal(err)
	}
	key, err := httpsig.NewHMACKey(id, secret)
	if err != nil {
		t.Fatal(err)
	}
	return key
}
