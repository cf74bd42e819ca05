package channel

import (
	"math/big"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/crypto"
	"github.com/iov-one/paychan/errors"
)

// Claim is the payee entitlement to a cumulative total of a channel.
// Claims are created and signed off the ledger.
type Claim struct {
	ChannelID paychan.Address
	Total     *big.Int
}

// NewClaim returns a claim of total from channel id.
func NewClaim(id paychan.Address, total *big.Int) *Claim {
	return &Claim{ChannelID: id, Total: total}
}

// Sign returns a message settling the channel with this claim. The signer
// must be the channel payee.
func (c *Claim) Sign(key crypto.Signer) (*CloseMsg, error) {
	digest, err := ClaimDigest(c.ChannelID, c.Total)
	if err != nil {
		return nil, err
	}
	sig, err := key.Sign(digest)
	if err != nil {
		return nil, errors.Wrap(err, "sign claim")
	}
	return &CloseMsg{
		ChannelID: c.ChannelID,
		Digest:    digest,
		Signature: sig,
		Payee:     key.Address(),
		Total:     new(big.Int).Set(c.Total),
	}, nil
}
