package store

import (
	"bytes"

	"github.com/google/btree"
)

// ascendBtree collects all cached items in [start, end) in ascending order.
// A nil boundary means unbounded.
func ascendBtree(bt *btree.BTree, start, end []byte) []keyer {
	var res []keyer
	collect := func(item btree.Item) bool {
		res = append(res, item.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return res
}

// descendBtree collects all cached items in [start, end) in descending
// order. A nil boundary means unbounded.
func descendBtree(bt *btree.BTree, start, end []byte) []keyer {
	var res []keyer
	collect := func(item btree.Item) bool {
		k := item.(keyer).Key()
		if start != nil && bytes.Compare(k, start) < 0 {
			return false
		}
		if end != nil && bytes.Compare(k, end) >= 0 {
			return true
		}
		res = append(res, item.(keyer))
		return true
	}
	bt.Descend(collect)
	return res
}

// mergeIterator combines cached items with the results of the parent
// store. Cached items shadow parent values with the same key and deleted
// items hide them.
type mergeIterator struct {
	cached    []keyer
	parent    Iterator
	ascending bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cached []keyer, parent Iterator, ascending bool) (*mergeIterator, error) {
	it := &mergeIterator{
		cached:    cached,
		parent:    parent,
		ascending: ascending,
	}
	if err := it.skipDeleted(); err != nil {
		parent.Close()
		return nil, err
	}
	return it, nil
}

// source marks where the current item comes from
type source int32

const (
	none source = iota
	us
	parent
	both
)

// Valid implements Iterator and returns true iff it can be read
func (i *mergeIterator) Valid() bool {
	return i.current() != none
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (i *mergeIterator) Next() error {
	switch i.current() {
	case us:
		i.cached = i.cached[1:]
	case both:
		i.cached = i.cached[1:]
		if err := i.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		panic("advanced past the end")
	}
	return i.skipDeleted()
}

// Key returns the key of the cursor.
func (i *mergeIterator) Key() []byte {
	switch i.current() {
	case us, both:
		return i.cached[0].Key()
	case parent:
		return i.parent.Key()
	default:
		panic("advanced past the end")
	}
}

// Value returns the value of the cursor.
func (i *mergeIterator) Value() []byte {
	switch i.current() {
	case us, both:
		return i.cached[0].(setItem).value
	case parent:
		return i.parent.Value()
	default:
		panic("advanced past the end")
	}
}

// Close releases the Iterator.
func (i *mergeIterator) Close() {
	i.parent.Close()
	i.cached = nil
}

// skipDeleted jumps over all deleted cache entries, together with the
// parent entries they shadow.
func (i *mergeIterator) skipDeleted() error {
	for {
		src := i.current()
		if src != us && src != both {
			return nil
		}
		if _, ok := i.cached[0].(deletedItem); !ok {
			return nil
		}
		i.cached = i.cached[1:]
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// current selects the source holding the next key in iteration order.
func (i *mergeIterator) current() source {
	hasParent := i.parent != nil && i.parent.Valid()
	hasCached := len(i.cached) > 0
	switch {
	case !hasParent && !hasCached:
		return none
	case !hasParent:
		return us
	case !hasCached:
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.cached[0].Key())
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}
