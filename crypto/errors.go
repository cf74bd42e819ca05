package crypto

import "github.com/iov-one/paychan/errors"

var (
	// ErrInvalidSignature is returned when a signature is malformed or no
	// public key can be recovered from it.
	ErrInvalidSignature = errors.Register(1001, "invalid signature")

	// ErrInvalidKey is returned when a private key cannot be decoded.
	ErrInvalidKey = errors.Register(1002, "invalid private key")
)
