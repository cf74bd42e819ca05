package crypto

import (
	"strconv"

	"golang.org/x/crypto/sha3"
)

// HashSize is the size of a Keccak-256 digest.
const HashSize = 32

// signedMessagePrefix is prepended to every message before it is signed so
// that a signature can never be replayed as a transaction.
const signedMessagePrefix = "\x19Ethereum Signed Message:\n"

// Keccak256 returns the legacy Keccak-256 hash of the concatenated data.
// This is not the NIST SHA3-256.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// SignedMessageHash returns the hash of the message with the signed message
// prefix and the decimal message length prepended.
func SignedMessageHash(msg []byte) []byte {
	prefix := signedMessagePrefix + strconv.Itoa(len(msg))
	return Keccak256([]byte(prefix), msg)
}
