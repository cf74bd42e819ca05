package channel

import (
	"math/big"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/coin"
	"github.com/iov-one/paychan/crypto"
	"github.com/iov-one/paychan/errors"
)

// ClaimHash returns keccak256(id || uint256(total)). The id must be a
// 20 byte address and total must fit in 256 bits.
func ClaimHash(id paychan.Address, total *big.Int) ([]byte, error) {
	if err := id.Validate(); err != nil {
		return nil, errors.Wrap(err, "channel id")
	}
	amount, err := coin.Uint256(total)
	if err != nil {
		return nil, errors.Wrap(err, "total")
	}
	return crypto.Keccak256(id, amount), nil
}

// ClaimDigest returns the digest the payee signs to claim total from the
// channel: the claim hash with the signed message prefix.
func ClaimDigest(id paychan.Address, total *big.Int) ([]byte, error) {
	h, err := ClaimHash(id, total)
	if err != nil {
		return nil, err
	}
	return crypto.SignedMessageHash(h), nil
}
