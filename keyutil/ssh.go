package keyutil

import (
	"bytes"
	"crypto"
	"fmt"
	"os"

	"github.com/signet-oss/httpsig-go"
	"golang.org/x/crypto/ssh"
)

// publicKeyer is implemented by the asymmetric key types in the root
// package. HMAC keys have no public half and fall back to their own id.
type publicKeyer interface {
	PublicKey() crypto.PublicKey
}

// SSHFingerprintKeyID derives key identifiers as OpenSSH SHA256
// fingerprints ("SHA256:..."), matching what ssh-keygen -lf prints. Keys
// without public material keep their own id.
var SSHFingerprintKeyID = httpsig.KeyIDFunc(FingerprintSHA256)

// FingerprintSHA256 returns the OpenSSH SHA256 fingerprint of the key's
// public half, or the key's own id when no public half exists.
func FingerprintSHA256(key httpsig.Key) string {
	pub, err := sshPublicKey(key)
	if err != nil {
		return key.ID()
	}
	return ssh.FingerprintSHA256(pub)
}

// FingerprintLegacyMD5 returns the legacy colon-separated hex MD5
// fingerprint of the key's public half, or the key's own id when no public
// half exists.
func FingerprintLegacyMD5(key httpsig.Key) string {
	pub, err := sshPublicKey(key)
	if err != nil {
		return key.ID()
	}
	return ssh.FingerprintLegacyMD5(pub)
}

func sshPublicKey(key httpsig.Key) (ssh.PublicKey, error) {
	pker, ok := key.(publicKeyer)
	if !ok {
		return nil, fmt.Errorf("key '%s' exposes no public material", key.ID())
	}
	return ssh.NewPublicKey(pker.PublicKey())
}

// ReadAuthorizedKeysFile reads an OpenSSH authorized_keys file into a
// keychain of verify-only keys, each identified by its SHA256 fingerprint.
func ReadAuthorizedKeysFile(path string) (httpsig.Keychain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Failed to read authorized keys file '%s': %w", path, err)
	}
	return ReadAuthorizedKeys(data)
}

// ReadAuthorizedKeys parses authorized_keys content into a keychain of
// verify-only keys in file order. Unsupported key types (e.g. ecdsa curves
// other than P-256) are skipped.
func ReadAuthorizedKeys(data []byte) (httpsig.Keychain, error) {
	keys := []httpsig.Key{}
	rest := bytes.TrimSpace(data)
	for len(rest) > 0 {
		pub, _, _, remaining, err := ssh.ParseAuthorizedKey(rest)
		if err != nil {
			return nil, fmt.Errorf("Failed to parse authorized key entry: %w", err)
		}
		rest = bytes.TrimSpace(remaining)

		cryptoPub, ok := pub.(ssh.CryptoPublicKey)
		if !ok {
			continue
		}
		key, err := NewVerifyKey(ssh.FingerprintSHA256(pub), cryptoPub.CryptoPublicKey())
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	return httpsig.NewKeychain(keys...), nil
}
