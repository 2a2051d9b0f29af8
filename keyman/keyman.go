// keyman provides key lookup over keychains
package keyman

import (
	"fmt"

	"github.com/signet-oss/httpsig-go"
)

// KeyFinder implements httpsig.KeyFinder over a keychain: every key is
// indexed by the identifier the given strategy derives for it.
type KeyFinder struct {
	keys map[string]httpsig.Key
}

// NewKeyFinder indexes the keychain's keys by keyID. A nil keyID falls back
// to httpsig.DefaultKeyID. Later keys win when two keys derive the same
// identifier.
func NewKeyFinder(keychain httpsig.Keychain, keyID httpsig.KeyID) *KeyFinder {
	if keyID == nil {
		keyID = httpsig.DefaultKeyID
	}
	keys := map[string]httpsig.Key{}
	for _, key := range keychain.Keys() {
		keys[keyID.GetID(key)] = key
	}
	return &KeyFinder{keys: keys}
}

func (kf *KeyFinder) FindKey(keyID string) (httpsig.Key, error) {
	key, found := kf.keys[keyID]
	if !found {
		return nil, fmt.Errorf("Key for keyid '%s' not found", keyID)
	}
	return key, nil
}
