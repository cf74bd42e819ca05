package channel

import (
	"math/big"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/coin"
	"github.com/iov-one/paychan/crypto"
	"github.com/iov-one/paychan/errors"
)

const (
	pathOpenMsg   = "channel/open"
	pathCloseMsg  = "channel/close"
	pathExpireMsg = "channel/expire"
)

// OpenMsg escrows a deposit of the payer in a new channel.
type OpenMsg struct {
	// ChannelID is optional. If not set, an id is derived from the channel
	// sequence.
	ChannelID paychan.Address  `json:"channel_id,omitempty"`
	Payer     paychan.Address  `json:"payer"`
	Payee     paychan.Address  `json:"payee"`
	Deposit   *big.Int         `json:"deposit"`
	Timeout   paychan.UnixTime `json:"timeout"`
	Memo      string           `json:"memo,omitempty"`
}

var _ paychan.Msg = (*OpenMsg)(nil)

func (OpenMsg) Path() string {
	return pathOpenMsg
}

func (m *OpenMsg) Validate() error {
	var errs error
	if len(m.ChannelID) != 0 {
		errs = errors.AppendField(errs, "ChannelID", validateAddress(m.ChannelID))
		if m.ChannelID.Equals(m.Payer) || m.ChannelID.Equals(m.Payee) {
			errs = errors.Append(errs,
				errors.Field("ChannelID", errors.ErrInput, "channel cannot use a party address"))
		}
	}
	errs = errors.AppendField(errs, "Payer", validateAddress(m.Payer))
	errs = errors.AppendField(errs, "Payee", validateAddress(m.Payee))
	if !coin.IsPositive(m.Deposit) {
		errs = errors.Append(errs,
			errors.Field("Deposit", errors.ErrInvalidAmount, "deposit must be positive"))
	} else if err := coin.ValidateAmount(m.Deposit); err != nil {
		errs = errors.Append(errs,
			errors.Field("Deposit", errors.ErrInvalidAmount, err.Error()))
	}
	if err := m.Timeout.Validate(); err != nil {
		errs = errors.Append(errs, errors.Field("Timeout", errors.ErrInput, err.Error()))
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs,
			errors.Field("Memo", errors.ErrInput, "memo too long"))
	}
	return errs
}

// CloseMsg settles a channel with a claim signed by the payee. Anyone can
// submit it.
type CloseMsg struct {
	ChannelID paychan.Address `json:"channel_id"`
	// Digest is the signed claim hash, see ClaimDigest.
	Digest    paychan.HexBytes `json:"digest"`
	Signature crypto.Signature `json:"signature"`
	Payee     paychan.Address  `json:"payee"`
	// Total is the cumulative amount the payee is entitled to.
	Total *big.Int `json:"total"`
	// Caller is the submitter. It is informational only.
	Caller paychan.Address `json:"caller,omitempty"`
}

var _ paychan.Msg = (*CloseMsg)(nil)

func (CloseMsg) Path() string {
	return pathCloseMsg
}

func (m *CloseMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "ChannelID", validateAddress(m.ChannelID))
	if len(m.Digest) != crypto.HashSize {
		errs = errors.Append(errs,
			errors.Field("Digest", errors.ErrInput, "digest must be %d bytes", crypto.HashSize))
	}
	errs = errors.AppendField(errs, "Payee", validateAddress(m.Payee))
	if m.Total == nil {
		errs = errors.Append(errs,
			errors.Field("Total", errors.ErrInvalidAmount, "missing total"))
	} else if err := coin.ValidateAmount(m.Total); err != nil {
		errs = errors.Append(errs,
			errors.Field("Total", errors.ErrInvalidAmount, err.Error()))
	}
	if len(m.Caller) != 0 {
		errs = errors.AppendField(errs, "Caller", validateAddress(m.Caller))
	}
	return errs
}

// ExpireMsg returns the escrowed balance of a timed out channel to the
// payer.
type ExpireMsg struct {
	ChannelID paychan.Address `json:"channel_id"`
	Caller    paychan.Address `json:"caller,omitempty"`
}

var _ paychan.Msg = (*ExpireMsg)(nil)

func (ExpireMsg) Path() string {
	return pathExpireMsg
}

func (m *ExpireMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "ChannelID", validateAddress(m.ChannelID))
	if len(m.Caller) != 0 {
		errs = errors.AppendField(errs, "Caller", validateAddress(m.Caller))
	}
	return errs
}

func validateAddress(a paychan.Address) error {
	if err := a.Validate(); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
