package httpsig_test

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/signet-oss/httpsig-go"
	"github.com/signet-oss/httpsig-go/sigtest"
)

func newECDSAKey(t *testing.T, id string) *httpsig.ECDSAKey {
	t.Helper()
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	key, err := httpsig.NewECDSAKey(id, priv)
	if err != nil {
		t.Fatal(err)
	}
	return key
}

func TestKeyRoundTrip(t *testing.T) {
	payload := []byte("(request-target): get /foo\ndate: Thu, 05 Jan 2014 21:31:40 GMT")

	testcases := []struct {
		Name string
		Key  httpsig.Key
		Algo httpsig.Algorithm
	}{
		{"RSA_SHA256", sigtest.NewRSAKey(t, "rsa"), httpsig.Algo_RSA_SHA256},
		{"RSA_SHA512", sigtest.NewRSAKey(t, "rsa"), httpsig.Algo_RSA_SHA512},
		{"HMAC_SHA256", sigtest.NewHMACKey(t, "hmac"), httpsig.Algo_HMAC_SHA256},
		{"HMAC_SHA512", sigtest.NewHMACKey(t, "hmac"), httpsig.Algo_HMAC_SHA512},
		{"ECDSA_P256_SHA256", newECDSAKey(t, "ec"), httpsig.Algo_ECDSA_P256_SHA256},
		{"ED25519", sigtest.NewEd25519Key(t, "ed"), httpsig.Algo_ED25519},
	}

	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			if !tc.Key.CanSign() || !tc.Key.CanVerify() {
				t.Fatal("Key built from private material should both sign and verify")
			}
			sig, err := tc.Key.Sign(tc.Algo, payload)
			if err != nil {
				t.Fatal(err)
			}
			if err := tc.Key.Verify(tc.Algo, payload, sig); err != nil {
				t.Fatalf("Signature did not verify: %v", err)
			}

			tampered := append([]byte("x"), payload...)
			if err := tc.Key.Verify(tc.Algo, tampered, sig); err == nil {
				t.Fatal("Expected verification failure on tampered payload")
			}
		})
	}
}

func TestKeyAlgorithmMismatch(t *testing.T) {
	key := sigtest.NewEd25519Key(t, "ed")
	if _, err := key.Sign(httpsig.Algo_RSA_SHA256, []byte("payload")); err == nil {
		t.Fatal("Expected sign error for unsupported algorithm")
	}
	if err := key.Verify(httpsig.Algo_HMAC_SHA256, []byte("payload"), nil); err == nil {
		t.Fatal("Expected verify error for unsupported algorithm")
	}
}

func TestVerifyOnlyKeys(t *testing.T) {
	payload := []byte("date: Thu, 05 Jan 2014 21:31:40 GMT")

	signKey := sigtest.NewEd25519Key(t, "ed")
	sig, err := signKey.Sign(httpsig.Algo_ED25519, payload)
	if err != nil {
		t.Fatal(err)
	}

	verifyKey, err := httpsig.NewEd25519VerifyKey("ed", signKey.PublicKey().(ed25519.PublicKey))
	if err != nil {
		t.Fatal(err)
	}
	if verifyKey.CanSign() {
		t.Fatal("Verify-only key should not report CanSign")
	}
	if !verifyKey.CanVerify() {
		t.Fatal("Verify-only key should report CanVerify")
	}
	if _, err := verifyKey.Sign(httpsig.Algo_ED25519, payload); err == nil {
		t.Fatal("Expected sign error from verify-only key")
	}
	if err := verifyKey.Verify(httpsig.Algo_ED25519, payload, sig); err != nil {
		t.Fatalf("Signature did not verify: %v", err)
	}
}

func TestKeyConstructorValidation(t *testing.T) {
	if _, err := httpsig.NewRSAKey("rsa", nil); err == nil {
		t.Error("Expected error for nil rsa private key")
	}
	if _, err := httpsig.NewHMACKey("hmac", []byte("too short")); err == nil {
		t.Error("Expected error for short hmac secret")
	}
	p384, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := httpsig.NewECDSAKey("ec", p384); err == nil {
		t.Error("Expected error for non P-256 curve")
	}
	if _, err := httpsig.NewEd25519Key("ed", make(ed25519.PrivateKey, 5)); err == nil {
		t.Error("Expected error for truncated ed25519 key")
	}
}
