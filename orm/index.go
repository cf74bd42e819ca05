package orm

import (
	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/store"
)

const indexPrefix = "_i."

// Indexer calculates the secondary index key for a given model. Returning
// nil means the model is not indexed.
type Indexer func(Model) ([]byte, error)

// index is a non unique secondary index. Each indexed primary key is stored
// under its own entry, so updating one reference never rewrites the others.
//
//    _i.<bucket>_<name>:<len(value)><value><primary key>
type index struct {
	name    string
	prefix  []byte
	indexer Indexer
}

func newIndex(bucket, name string, indexer Indexer) index {
	return index{
		name:    name,
		prefix:  []byte(indexPrefix + bucket + "_" + name + ":"),
		indexer: indexer,
	}
}

func (ix index) valuePrefix(value []byte) ([]byte, error) {
	if len(value) > 255 {
		return nil, errors.Wrapf(ErrInvalidIndex, "%s: value too long", ix.name)
	}
	p := make([]byte, 0, len(ix.prefix)+1+len(value))
	p = append(p, ix.prefix...)
	p = append(p, byte(len(value)))
	return append(p, value...), nil
}

func (ix index) entry(m Model, key []byte) ([]byte, error) {
	value, err := ix.indexer(m)
	if err != nil {
		return nil, errors.Wrapf(err, "index %s", ix.name)
	}
	if value == nil {
		return nil, nil
	}
	p, err := ix.valuePrefix(value)
	if err != nil {
		return nil, err
	}
	return append(p, key...), nil
}

// update replaces the reference of prev with the one of next. Either may
// be nil.
func (ix index) update(db paychan.KVStore, key []byte, prev, next Model) error {
	var prevEntry, nextEntry []byte
	var err error
	if prev != nil {
		if prevEntry, err = ix.entry(prev, key); err != nil {
			return err
		}
	}
	if next != nil {
		if nextEntry, err = ix.entry(next, key); err != nil {
			return err
		}
	}
	if string(prevEntry) == string(nextEntry) {
		return nil
	}
	if prevEntry != nil {
		if err := db.Delete(prevEntry); err != nil {
			return errors.Wrap(err, "cannot delete index entry")
		}
	}
	if nextEntry != nil {
		if err := db.Set(nextEntry, key); err != nil {
			return errors.Wrap(err, "cannot set index entry")
		}
	}
	return nil
}

// keys returns all primary keys indexed under given value, in key order.
func (ix index) keys(db paychan.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	start, err := ix.valuePrefix(value)
	if err != nil {
		return nil, err
	}
	it, err := db.Iterator(start, prefixEnd(start))
	if err != nil {
		return nil, errors.Wrap(err, "cannot iterate index")
	}
	models, err := store.ReadAll(it)
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, len(models))
	for i, m := range models {
		keys[i] = m.Value
	}
	return keys, nil
}

// prefixEnd returns the smallest key greater than all keys starting with
// given prefix, or nil when no such key exists.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
