package keyman

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/signet-oss/httpsig-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T, id string) httpsig.Key {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	key, err := httpsig.NewEd25519Key(id, priv)
	require.NoError(t, err)
	return key
}

func TestFindKey(t *testing.T) {
	k1 := newKey(t, "key-1")
	k2 := newKey(t, "key-2")
	finder := NewKeyFinder(httpsig.NewKeychain(k1, k2), nil)

	found, err := finder.FindKey("key-2")
	require.NoError(t, err)
	assert.Equal(t, k2, found)

	_, err = finder.FindKey("key-3")
	assert.Error(t, err)
}

func TestFindKeyCustomStrategy(t *testing.T) {
	key := newKey(t, "key-1")
	prefixed := httpsig.KeyIDFunc(func(k httpsig.Key) string {
		return "client/" + k.ID()
	})
	finder := NewKeyFinder(httpsig.NewKeychain(key), prefixed)

	found, err := finder.FindKey("client/key-1")
	require.NoError(t, err)
	assert.Equal(t, key, found)

	// The raw id is not indexed under a custom strategy.
	_, err = finder.FindKey("key-1")
	assert.Error(t, err)
}
