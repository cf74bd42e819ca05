package orm

import (
	"reflect"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/store"
)

// ModelBucket stores models of a single type under a common key prefix.
//
// The key of every stored model is:
//    <name>:<key>
type ModelBucket struct {
	name      string
	prefix    []byte
	modelType reflect.Type
	indexes   map[string]index
}

// NewModelBucket returns a bucket storing models of the same type as
// given example. The name must be unique within the application.
func NewModelBucket(name string, example Model) ModelBucket {
	t := reflect.TypeOf(example)
	if t.Kind() != reflect.Ptr {
		panic("model must be a pointer")
	}
	return ModelBucket{
		name:      name,
		prefix:    []byte(name + ":"),
		modelType: t.Elem(),
		indexes:   make(map[string]index),
	}
}

// WithIndex returns a copy of this bucket maintaining an additional
// secondary index.
func (b ModelBucket) WithIndex(name string, indexer Indexer) ModelBucket {
	if _, ok := b.indexes[name]; ok {
		panic("duplicated index name: " + name)
	}
	indexes := make(map[string]index, len(b.indexes)+1)
	for n, ix := range b.indexes {
		indexes[n] = ix
	}
	indexes[name] = newIndex(b.name, name, indexer)
	b.indexes = indexes
	return b
}

// Name returns the bucket name.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey is the full key used to store a model with given key.
func (b ModelBucket) DBKey(key []byte) []byte {
	return append(append([]byte{}, b.prefix...), key...)
}

// Sequence returns a sequence bound to this bucket.
func (b ModelBucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

func (b ModelBucket) newModel() Model {
	return reflect.New(b.modelType).Interface().(Model)
}

func (b ModelBucket) checkType(m Model) error {
	if reflect.TypeOf(m) != reflect.PtrTo(b.modelType) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", m, b.modelType)
	}
	return nil
}

// One query the database for a single model instance. Result is loaded into
// given destination model.
// This method returns ErrNotFound if the entity does not exist in the
// database.
func (b ModelBucket) One(db paychan.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := b.checkType(dest); err != nil {
		return err
	}
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return unmarshal(raw, dest)
}

// Has returns true if a model with given key exists.
func (b ModelBucket) Has(db paychan.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(err, "cannot read from the database")
	}
	return ok, nil
}

// Put validates and saves given model in the database, overwriting any
// previous value. Secondary indexes are updated.
func (b ModelBucket) Put(db paychan.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := b.checkType(m); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := marshal(m)
	if err != nil {
		return err
	}

	if len(b.indexes) > 0 {
		prev, err := b.load(db, key)
		if err != nil {
			return err
		}
		for _, ix := range b.indexes {
			if err := ix.update(db, key, prev, m); err != nil {
				return err
			}
		}
	}

	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Create works like Put, but fails with ErrDuplicate if a model with given
// key already exists.
func (b ModelBucket) Create(db paychan.KVStore, key []byte, m Model) error {
	switch ok, err := b.Has(db, key); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "%s %X", b.name, key)
	}
	return b.Put(db, key, m)
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (b ModelBucket) Delete(db paychan.KVStore, key []byte) error {
	prev, err := b.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	for _, ix := range b.indexes {
		if err := ix.update(db, key, prev, nil); err != nil {
			return err
		}
	}
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}

// load returns the stored model or nil.
func (b ModelBucket) load(db paychan.ReadOnlyKVStore, key []byte) (Model, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, errors.Wrap(err, "cannot read from the database")
	}
	if raw == nil {
		return nil, nil
	}
	m := b.newModel()
	if err := unmarshal(raw, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ByIndex loads all models indexed under given value into dest, which must
// be a pointer to a slice of models. Primary keys are returned in the same
// order.
func (b ModelBucket) ByIndex(db paychan.ReadOnlyKVStore, indexName string, value []byte, dest ModelSlicePtr) ([][]byte, error) {
	ix, ok := b.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "unknown index %q", indexName)
	}
	keys, err := ix.keys(db, value)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		raw, err := db.Get(b.DBKey(key))
		if err != nil {
			return nil, errors.Wrap(err, "cannot read from the database")
		}
		if raw == nil {
			return nil, errors.Wrapf(errors.ErrHuman, "index %s references missing %X", indexName, key)
		}
		if err := appendModel(dest, raw); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// All loads every model of this bucket into dest, which must be a pointer
// to a slice of models. Models are ordered by key.
func (b ModelBucket) All(db paychan.ReadOnlyKVStore, dest ModelSlicePtr) ([][]byte, error) {
	it, err := db.Iterator(b.prefix, prefixEnd(b.prefix))
	if err != nil {
		return nil, errors.Wrap(err, "cannot iterate")
	}
	entries, err := store.ReadAll(it)
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, 0, len(entries))
	for _, e := range entries {
		if err := appendModel(dest, e.Value); err != nil {
			return nil, err
		}
		keys = append(keys, e.Key[len(b.prefix):])
	}
	return keys, nil
}
