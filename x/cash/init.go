package cash

import (
	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/coin"
	"github.com/iov-one/paychan/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file. Balance is a
// decimal string, as JSON numbers cannot hold 256 bit values.
type GenesisAccount struct {
	Address paychan.Address `json:"address"`
	Balance string          `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ paychan.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts paychan.Options, db paychan.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController(NewBucket())
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		amount, err := coin.ParseAmount(acct.Balance)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := ctrl.IssueCoins(db, acct.Address, amount); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
