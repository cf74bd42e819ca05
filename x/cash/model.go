package cash

import (
	"math/big"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/coin"
	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

var _ orm.Model = (*Wallet)(nil)

// NewWallet returns a wallet of given address holding given amount.
func NewWallet(addr paychan.Address, amount *big.Int) *Wallet {
	return &Wallet{
		Address: addr,
		Balance: coin.EncodeAmount(amount),
	}
}

// Validate ensures the wallet is valid.
func (w *Wallet) Validate() error {
	if err := w.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if _, err := coin.DecodeAmount(w.Balance); err != nil {
		return errors.Wrap(err, "balance")
	}
	if len(w.Balance) > 0 && w.Balance[0] == 0 {
		return errors.Wrap(errors.ErrModel, "balance is not minimally encoded")
	}
	return nil
}

// Amount returns the balance held by this wallet.
func (w *Wallet) Amount() *big.Int {
	// Validated models always decode.
	a, _ := coin.DecodeAmount(w.Balance)
	return a
}

// SetAmount updates the balance held by this wallet.
func (w *Wallet) SetAmount(a *big.Int) {
	w.Balance = coin.EncodeAmount(a)
}

// Bucket is a type-safe wrapper around orm.ModelBucket storing wallets
// under their address.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Wallet{}),
	}
}

// GetOrCreate loads the wallet of given address or returns a new, empty
// one if it does not exist yet. A new wallet is not saved.
func (b Bucket) GetOrCreate(db paychan.ReadOnlyKVStore, addr paychan.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return NewWallet(addr, new(big.Int)), nil
	default:
		return nil, err
	}
}

// Save persists given wallet under its address.
func (b Bucket) Save(db paychan.KVStore, w *Wallet) error {
	return b.Put(db, w.Address, w)
}
