package channel

import (
	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/gconf"
)

const confPkg = "channel"

var _ gconf.Configuration = (*Configuration)(nil)

// Validate has nothing to check, any combination of flags is valid.
func (c *Configuration) Validate() error {
	return nil
}

// loadConf returns the stored configuration or the defaults if none was
// stored.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}
