package cash

import (
	"math/big"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/coin"
	"github.com/iov-one/paychan/errors"
)

// Controller is the functionality needed by other extensions to move
// funds between wallets.
type Controller interface {
	// MoveCoins moves the given amount from src to dest. If src does not
	// hold sufficient funds, it fails.
	MoveCoins(db paychan.KVStore, src, dest paychan.Address, amount *big.Int) error

	// IssueCoins adds the given amount to the destination wallet.
	IssueCoins(db paychan.KVStore, dest paychan.Address, amount *big.Int) error

	// Balance returns the amount held by given address. A missing wallet
	// holds zero.
	Balance(db paychan.ReadOnlyKVStore, addr paychan.Address) (*big.Int, error)
}

// BaseController is a simple implementation of the Controller.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db paychan.KVStore, src, dest paychan.Address, amount *big.Int) error {
	if !coin.IsPositive(amount) {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive move")
	}
	if err := coin.ValidateAmount(amount); err != nil {
		return err
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.bucket.GetOrCreate(db, src)
	if err != nil {
		return err
	}
	remaining, err := coin.Sub(sender.Amount(), amount)
	if err != nil {
		return errors.Wrapf(err, "wallet %s", src)
	}
	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	received, err := coin.Add(recipient.Amount(), amount)
	if err != nil {
		return errors.Wrapf(err, "wallet %s", dest)
	}

	sender.SetAmount(remaining)
	recipient.SetAmount(received)
	if err := c.bucket.Save(db, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db paychan.KVStore, dest paychan.Address, amount *big.Int) error {
	if err := coin.ValidateAmount(amount); err != nil {
		return err
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	received, err := coin.Add(recipient.Amount(), amount)
	if err != nil {
		return errors.Wrapf(err, "wallet %s", dest)
	}
	recipient.SetAmount(received)
	return c.bucket.Save(db, recipient)
}

// Balance returns the amount held by given address.
func (c BaseController) Balance(db paychan.ReadOnlyKVStore, addr paychan.Address) (*big.Int, error) {
	w, err := c.bucket.GetOrCreate(db, addr)
	if err != nil {
		return nil, err
	}
	return w.Amount(), nil
}
