package weavetest

import (
	"testing"

	"github.com/iov-one/paychan/crypto"
)

// NewKey returns a new random private key. It panics on failure, which
// never happens with a working random source.
func NewKey() *crypto.PrivateKey {
	key, err := crypto.GenPrivateKey()
	if err != nil {
		panic(err)
	}
	return key
}

// KeyFromHex decodes a private key and fails the test on error.
func KeyFromHex(t testing.TB, enc string) *crypto.PrivateKey {
	t.Helper()
	key, err := crypto.PrivateKeyFromHex(enc)
	if err != nil {
		t.Fatalf("cannot decode private key: %s", err)
	}
	return key
}
