package weavetest

import (
	"crypto/rand"
	"encoding/binary"
	"testing"

	"github.com/iov-one/paychan"
)

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encodedAddress string) paychan.Address {
	t.Helper()
	addr, err := paychan.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// RandomAddr returns a valid random address generated on the fly.
func RandomAddr(t testing.TB) paychan.Address {
	t.Helper()
	raw := make([]byte, paychan.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	return paychan.Address(raw)
}

// SequenceID returns the 8 byte big endian representation of a sequence
// value.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
