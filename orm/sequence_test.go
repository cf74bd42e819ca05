package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/store"
	"github.com/iov-one/paychan/weavetest/assert"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("channel", "id")

	latest, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), latest)

	first, err := s.NextVal(db)
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(1), first)

	second, err := s.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), second)

	if bytes.Compare(first, EncodeSequence(second)) >= 0 {
		t.Fatal("sequence values must grow")
	}

	// sequences with a different name are independent
	other, err := NewSequence("channel", "other").NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), other)
}

func TestSequenceOverflow(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("channel", "id")
	assert.Nil(t, db.Set(s.id, EncodeSequence(^uint64(0))))
	_, err := s.NextVal(db)
	assert.IsErr(t, errors.ErrOverflow, err)
}

func TestDecodeSequence(t *testing.T) {
	_, err := DecodeSequence([]byte{1, 2})
	assert.IsErr(t, errors.ErrInput, err)
}
