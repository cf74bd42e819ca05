package channel

import (
	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/gconf"
)

// Initializer loads the channel configuration from the "conf" section of
// the genesis file.
type Initializer struct{}

var _ paychan.Initializer = Initializer{}

func (Initializer) FromGenesis(opts paychan.Options, db paychan.KVStore) error {
	return gconf.InitConfig(db, opts, confPkg, &Configuration{})
}
