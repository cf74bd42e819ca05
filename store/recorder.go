package store

// RecordingStore wraps a KVStore and keeps track of every key written or
// deleted through it. Writes done through a batch or a cache wrap are
// recorded once they reach this store.
type RecordingStore struct {
	KVStore
	// changes maps a key to the written value, or nil for deletes
	changes map[string][]byte
}

var _ CacheableKVStore = (*RecordingStore)(nil)

// NewRecordingStore initializes a recording store wrapping this base store.
func NewRecordingStore(db KVStore) *RecordingStore {
	return &RecordingStore{
		KVStore: db,
		changes: make(map[string][]byte),
	}
}

// Changes returns all recorded modifications ordered by key. Value is the
// value written, or nil for a delete.
func (r *RecordingStore) Changes() []Model {
	res := make([]Model, 0, len(r.changes))
	for k, v := range r.changes {
		res = append(res, Pair([]byte(k), v))
	}
	SortModels(res)
	return res
}

// Set records the change while performing it.
func (r *RecordingStore) Set(key, value []byte) error {
	if err := r.KVStore.Set(key, value); err != nil {
		return err
	}
	r.changes[string(key)] = value
	return nil
}

// Delete records the change while performing it.
func (r *RecordingStore) Delete(key []byte) error {
	if err := r.KVStore.Delete(key); err != nil {
		return err
	}
	r.changes[string(key)] = nil
	return nil
}

// NewBatch makes sure all writes go through this one
func (r *RecordingStore) NewBatch() Batch {
	return NewNonAtomicBatch(r)
}

// CacheWrap makes sure all cached writes also go through this
func (r *RecordingStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(r, r.NewBatch(), nil)
}
