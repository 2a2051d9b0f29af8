// Package keyutil reads key material from PEM and OpenSSH encodings and
// turns it into httpsig keys and keychains.
package keyutil

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/signet-oss/httpsig-go"
)

// Private or public key schema
type Format string

const (
	// Hints for reading key
	PKCS1 Format = "pkcs1"
	PKCS8 Format = "pkcs8"
	PKIX  Format = "pxix"
	ECC   Format = "ecc"
)

// MustReadPublicKeyFile reads a PEM encoded public key file or panics
func MustReadPublicKeyFile(pubkeyFile string, override ...Format) crypto.PublicKey {
	pk, err := ReadPublicKeyFile(pubkeyFile, override...)
	if err != nil {
		panic(err)
	}
	return pk
}

// ReadPublicKeyFile reads a PEM encdoded public key file and parses into crypto.PublicKey
func ReadPublicKeyFile(pubkeyFile string, override ...Format) (crypto.PublicKey, error) {
	keyBytes, err := os.ReadFile(pubkeyFile)
	if err != nil {
		return nil, fmt.Errorf("Failed to read public key file '%s': %w", pubkeyFile, err)
	}
	return ReadPublicKey(keyBytes, override...)
}

// ReadPublicKey decodes a PEM encoded public key and parses into crypto.PublicKey
func ReadPublicKey(encodedPubkey []byte, override ...Format) (crypto.PublicKey, error) {
	block, _ := pem.Decode(encodedPubkey)
	if block == nil {
		return nil, fmt.Errorf("Failed to PEM decode public key")
	}
	var key crypto.PublicKey
	var err error

	format := PKIX
	if len(override) > 0 {
		format = override[0]
	}
	switch format {
	case PKIX:
		key, err = x509.ParsePKIXPublicKey(block.Bytes)
	case PKCS1:
		key, err = x509.ParsePKCS1PublicKey(block.Bytes)
	default:
		return nil, fmt.Errorf("Unsupported pubkey format '%s'", format)
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to parse public key with format '%s': %w", format, err)
	}

	return key, nil
}

// MustReadPrivateKeyFile decodes a PEM encoded private key file and parses into a crypto.PrivateKey or panics.
func MustReadPrivateKeyFile(pkFile string, override ...Format) crypto.PrivateKey {
	pk, err := ReadPrivateKeyFile(pkFile, override...)
	if err != nil {
		panic(err)
	}
	return pk
}

// ReadPrivateKeyFile decodes a PEM encoded private key file and parses into a crypto.PrivateKey
func ReadPrivateKeyFile(pkFile string, override ...Format) (crypto.PrivateKey, error) {
	keyBytes, err := os.ReadFile(pkFile)
	if err != nil {
		return nil, fmt.Errorf("Failed to read private key file '%s': %w", pkFile, err)
	}
	return ReadPrivateKey(keyBytes, override...)
}

func ReadPrivateKey(encodedPrivateKey []byte, override ...Format) (crypto.PrivateKey, error) {
	block, _ := pem.Decode(encodedPrivateKey)

	if block == nil {
		return nil, fmt.Errorf("Failed to PEM decode private key")
	}

	var key crypto.PrivateKey
	var err error

	format := PKCS8 // PCKS8 handles all support algorithms. However older keys may be encoded in another format.
	if len(override) > 0 {
		format = override[0]
	}
	switch format {
	case PKCS8:
		key, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	case PKCS1:
		key, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	case ECC:
		key, err = x509.ParseECPrivateKey(block.Bytes)
	default:
		return nil, fmt.Errorf("Unsupported private key format '%s'", format)
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to parse private key with format '%s': %w", format, err)
	}
	return key, nil
}

// NewKey builds a signing httpsig.Key from parsed private key material.
func NewKey(id string, priv crypto.PrivateKey) (httpsig.Key, error) {
	switch pk := priv.(type) {
	case *rsa.PrivateKey:
		return httpsig.NewRSAKey(id, pk)
	case *ecdsa.PrivateKey:
		return httpsig.NewECDSAKey(id, pk)
	case ed25519.PrivateKey:
		return httpsig.NewEd25519Key(id, pk)
	default:
		return nil, fmt.Errorf("Unsupported private key type %T", priv)
	}
}

// NewVerifyKey builds a verify-only httpsig.Key from parsed public key
// material.
func NewVerifyKey(id string, pub crypto.PublicKey) (httpsig.Key, error) {
	switch pk := pub.(type) {
	case *rsa.PublicKey:
		return httpsig.NewRSAVerifyKey(id, pk)
	case *ecdsa.PublicKey:
		return httpsig.NewECDSAVerifyKey(id, pk)
	case ed25519.PublicKey:
		return httpsig.NewEd25519VerifyKey(id, pk)
	default:
		return nil, fmt.Errorf("Unsupported public key type %T", pub)
	}
}

// ReadKeyFile reads a PEM encoded private key file into a signing
// httpsig.Key with the given id.
func ReadKeyFile(id, pkFile string, override ...Format) (httpsig.Key, error) {
	priv, err := ReadPrivateKeyFile(pkFile, override...)
	if err != nil {
		return nil, err
	}
	return NewKey(id, priv)
}
