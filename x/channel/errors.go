package channel

import "github.com/iov-one/paychan/errors"

// channel takes 1030-1039
var (
	ErrDigestMismatch     = errors.Register(1031, "digest does not match the claim")
	ErrUnauthorizedSigner = errors.Register(1032, "claim not signed by the payee")
	ErrAlreadyClosed      = errors.Register(1033, "channel already closed")
	ErrNotTimedOut        = errors.Register(1034, "channel not timed out")
)
