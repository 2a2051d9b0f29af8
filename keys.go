package httpsig

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
)

// Minimum HMAC secret size in bytes.
const minHMACSecretBytes = 32

// --- RSA ---

// RSAKey signs with RSASSA-PKCS1-v1_5 over SHA-256 or SHA-512.
type RSAKey struct {
	id   string
	priv *rsa.PrivateKey
	pub  *rsa.PublicKey
}

// NewRSAKey creates a signing and verifying key from RSA private material.
func NewRSAKey(id string, priv *rsa.PrivateKey) (*RSAKey, error) {
	if priv == nil {
		return nil, newError(ErrInvalidKey, "rsa private key must not be nil")
	}
	return &RSAKey{id: id, priv: priv, pub: &priv.PublicKey}, nil
}

// NewRSAVerifyKey creates a verify-only key from RSA public material. Its
// CanSign reports false, so a Signer skips over it.
func NewRSAVerifyKey(id string, pub *rsa.PublicKey) (*RSAKey, error) {
	if pub == nil {
		return nil, newError(ErrInvalidKey, "rsa public key must not be nil")
	}
	return &RSAKey{id: id, pub: pub}, nil
}

func (k *RSAKey) ID() string { return k.id }

func (k *RSAKey) Algorithms() []Algorithm {
	return []Algorithm{Algo_RSA_SHA256, Algo_RSA_SHA512}
}

func (k *RSAKey) CanSign() bool   { return k.priv != nil }
func (k *RSAKey) CanVerify() bool { return k.pub != nil }

// PublicKey returns the public half for fingerprinting.
func (k *RSAKey) PublicKey() crypto.PublicKey { return k.pub }

func (k *RSAKey) Sign(algo Algorithm, payload []byte) ([]byte, error) {
	if k.priv == nil {
		return nil, newError(ErrInvalidKey, fmt.Sprintf("Key '%s' has no private material", k.id))
	}
	switch algo {
	case Algo_RSA_SHA256:
		digest := sha256.Sum256(payload)
		return rsa.SignPKCS1v15(rand.Reader, k.priv, crypto.SHA256, digest[:])
	case Algo_RSA_SHA512:
		digest := sha512.Sum512(payload)
		return rsa.SignPKCS1v15(rand.Reader, k.priv, crypto.SHA512, digest[:])
	default:
		return nil, newError(ErrInvalidAlgorithm, fmt.Sprintf("rsa key cannot sign with algorithm '%s'", algo))
	}
}

func (k *RSAKey) Verify(algo Algorithm, payload, signature []byte) error {
	if k.pub == nil {
		return newError(ErrInvalidKey, fmt.Sprintf("Key '%s' has no public material", k.id))
	}
	var err error
	switch algo {
	case Algo_RSA_SHA256:
		digest := sha256.Sum256(payload)
		err = rsa.VerifyPKCS1v15(k.pub, crypto.SHA256, digest[:], signature)
	case Algo_RSA_SHA512:
		digest := sha512.Sum512(payload)
		err = rsa.VerifyPKCS1v15(k.pub, crypto.SHA512, digest[:], signature)
	default:
		return newError(ErrInvalidAlgorithm, fmt.Sprintf("rsa key cannot verify with algorithm '%s'", algo))
	}
	if err != nil {
		return newError(ErrVerification, fmt.Sprintf("Signature did not verify for algo '%s'", algo), err)
	}
	return nil
}

// --- HMAC ---

// HMACKey signs and verifies with a shared secret over SHA-256 or SHA-512.
type HMACKey struct {
	id     string
	secret []byte
}

// NewHMACKey creates a symmetric key. The secret must be at least 32 bytes.
func NewHMACKey(id string, secret []byte) (*HMACKey, error) {
	if len(secret) < minHMACSecretBytes {
		return nil, newError(ErrInvalidKey, fmt.Sprintf("hmac secret must be at least %d bytes", minHMACSecretBytes))
	}
	secretCopy := make([]byte, len(secret))
	copy(secretCopy, secret)
	return &HMACKey{id: id, secret: secretCopy}, nil
}

func (k *HMACKey) ID() string { return k.id }

func (k *HMACKey) Algorithms() []Algorithm {
	return []Algorithm{Algo_HMAC_SHA256, Algo_HMAC_SHA512}
}

func (k *HMACKey) CanSign() bool   { return len(k.secret) > 0 }
func (k *HMACKey) CanVerify() bool { return len(k.secret) > 0 }

func (k *HMACKey) Sign(algo Algorithm, payload []byte) ([]byte, error) {
	switch algo {
	case Algo_HMAC_SHA256:
		mac := hmac.New(sha256.New, k.secret)
		mac.Write(payload) // write does not return an error per hash.Hash documentation
		return mac.Sum(nil), nil
	case Algo_HMAC_SHA512:
		mac := hmac.New(sha512.New, k.secret)
		mac.Write(payload)
		return mac.Sum(nil), nil
	default:
		return nil, newError(ErrInvalidAlgorithm, fmt.Sprintf("hmac key cannot sign with algorithm '%s'", algo))
	}
}

func (k *HMACKey) Verify(algo Algorithm, payload, signature []byte) error {
	expected, err := k.Sign(algo, payload)
	if err != nil {
		return err
	}
	if !hmac.Equal(expected, signature) {
		return newError(ErrVerification, fmt.Sprintf("Signature did not verify for algo '%s'", algo))
	}
	return nil
}

// --- ECDSA P-256 ---

// ECDSAKey signs with ECDSA over curve P-256 and SHA-256. Signatures are
// ASN.1 encoded.
type ECDSAKey struct {
	id   string
	priv *ecdsa.PrivateKey
	pub  *ecdsa.PublicKey
}

// NewECDSAKey creates a signing and verifying key from ECDSA private
// material. The key curve must be P-256.
func NewECDSAKey(id string, priv *ecdsa.PrivateKey) (*ECDSAKey, error) {
	if priv == nil {
		return nil, newError(ErrInvalidKey, "ecdsa private key must not be nil")
	}
	if priv.Curve != elliptic.P256() {
		return nil, newError(ErrInvalidKey, "ecdsa key curve must be P-256")
	}
	return &ECDSAKey{id: id, priv: priv, pub: &priv.PublicKey}, nil
}

// NewECDSAVerifyKey creates a verify-only key from ECDSA public material.
func NewECDSAVerifyKey(id string, pub *ecdsa.PublicKey) (*ECDSAKey, error) {
	if pub == nil {
		return nil, newError(ErrInvalidKey, "ecdsa public key must not be nil")
	}
	if pub.Curve != elliptic.P256() {
		return nil, newError(ErrInvalidKey, "ecdsa key curve must be P-256")
	}
	return &ECDSAKey{id: id, pub: pub}, nil
}

func (k *ECDSAKey) ID() string { return k.id }

func (k *ECDSAKey) Algorithms() []Algorithm {
	return []Algorithm{Algo_ECDSA_P256_SHA256}
}

func (k *ECDSAKey) CanSign() bool   { return k.priv != nil }
func (k *ECDSAKey) CanVerify() bool { return k.pub != nil }

// PublicKey returns the public half for fingerprinting.
func (k *ECDSAKey) PublicKey() crypto.PublicKey { return k.pub }

func (k *ECDSAKey) Sign(algo Algorithm, payload []byte) ([]byte, error) {
	if k.priv == nil {
		return nil, newError(ErrInvalidKey, fmt.Sprintf("Key '%s' has no private material", k.id))
	}
	if algo != Algo_ECDSA_P256_SHA256 {
		return nil, newError(ErrInvalidAlgorithm, fmt.Sprintf("ecdsa key cannot sign with algorithm '%s'", algo))
	}
	digest := sha256.Sum256(payload)
	return ecdsa.SignASN1(rand.Reader, k.priv, digest[:])
}

func (k *ECDSAKey) Verify(algo Algorithm, payload, signature []byte) error {
	if k.pub == nil {
		return newError(ErrInvalidKey, fmt.Sprintf("Key '%s' has no public material", k.id))
	}
	if algo != Algo_ECDSA_P256_SHA256 {
		return newError(ErrInvalidAlgorithm, fmt.Sprintf("ecdsa key cannot verify with algorithm '%s'", algo))
	}
	digest := sha256.Sum256(payload)
	if !ecdsa.VerifyASN1(k.pub, digest[:], signature) {
		return newError(ErrVerification, fmt.Sprintf("Signature did not verify for algo '%s'", algo))
	}
	return nil
}

// --- Ed25519 ---

// Ed25519Key signs with Ed25519. No prehash is applied.
type Ed25519Key struct {
	id   string
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// NewEd25519Key creates a signing and verifying key from Ed25519 private
// material.
func NewEd25519Key(id string, priv ed25519.PrivateKey) (*Ed25519Key, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, newError(ErrInvalidKey, fmt.Sprintf("ed25519 private key must be %d bytes", ed25519.PrivateKeySize))
	}
	return &Ed25519Key{id: id, priv: priv, pub: priv.Public().(ed25519.PublicKey)}, nil
}

// NewEd25519VerifyKey creates a verify-only key from Ed25519 public material.
func NewEd25519VerifyKey(id string, pub ed25519.PublicKey) (*Ed25519Key, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, newError(ErrInvalidKey, fmt.Sprintf("ed25519 public key must be %d bytes", ed25519.PublicKeySize))
	}
	return &Ed25519Key{id: id, pub: pub}, nil
}

func (k *Ed25519Key) ID() string { return k.id }

func (k *Ed25519Key) Algorithms() []Algorithm {
	return []Algorithm{Algo_ED25519}
}

func (k *Ed25519Key) CanSign() bool   { return k.priv != nil }
func (k *Ed25519Key) CanVerify() bool { return k.pub != nil }

// PublicKey returns the public half for fingerprinting.
func (k *Ed25519Key) PublicKey() crypto.PublicKey { return k.pub }

func (k *Ed25519Key) Sign(algo Algorithm, payload []byte) ([]byte, error) {
	if k.priv == nil {
		return nil, newError(ErrInvalidKey, fmt.Sprintf("Key '%s' has no private material", k.id))
	}
	if algo != Algo_ED25519 {
		return nil, newError(ErrInvalidAlgorithm, fmt.Sprintf("ed25519 key cannot sign with algorithm '%s'", algo))
	}
	return ed25519.Sign(k.priv, payload), nil
}

func (k *Ed25519Key) Verify(algo Algorithm, payload, signature []byte) error {
	if k.pub == nil {
		return newError(ErrInvalidKey, fmt.Sprintf("Key '%s' has no public material", k.id))
	}
	if algo != Algo_ED25519 {
		return newError(ErrInvalidAlgorithm, fmt.Sprintf("ed25519 key cannot verify with algorithm '%s'", algo))
	}
	if !ed25519.Verify(k.pub, payload, signature) {
		return newError(ErrVerification, fmt.Sprintf("Signature did not verify for algo '%s'", algo))
	}
	return nil
}
