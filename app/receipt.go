package app

import (
	"encoding/binary"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/crypto"
	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/store"
)

// Receipt status values.
const (
	StatusFailure byte = 0x00
	StatusSuccess byte = 0x01
)

// Receipt is the outcome of a delivered message.
type Receipt struct {
	// Status is StatusSuccess or StatusFailure.
	Status byte `json:"status"`
	// Code is the registration code of the failure, zero on success.
	Code uint32 `json:"code"`
	Log  string `json:"log,omitempty"`
	// Data is set by the handler, for example the id of an opened
	// channel.
	Data paychan.HexBytes `json:"data,omitempty"`
	// Hash is the digest of all state changes the message made. It is
	// empty for failed messages, as those change nothing.
	Hash paychan.HexBytes `json:"hash,omitempty"`
}

// Succeeded returns true if the message was applied.
func (r Receipt) Succeeded() bool {
	return r.Status == StatusSuccess
}

func successReceipt(res *paychan.DeliverResult, changes []store.Model) Receipt {
	r := Receipt{
		Status: StatusSuccess,
		Code:   errors.SuccessCode,
		Hash:   ChangesHash(changes),
	}
	if res != nil {
		r.Data = res.Data
		r.Log = res.Log
	}
	return r
}

func failureReceipt(err error, debug bool) Receipt {
	code, log := errors.ReceiptInfo(err, debug)
	return Receipt{
		Status: StatusFailure,
		Code:   code,
		Log:    log,
	}
}

// ChangesHash returns keccak256 over the ordered list of changes. Each
// change is serialized as
//
//    <op byte> <uvarint key length> <key> [<uvarint value length> <value>]
//
// where op is 1 for a write, followed by the value, and 0 for a delete.
func ChangesHash(changes []store.Model) []byte {
	var buf []byte
	lenbuf := make([]byte, binary.MaxVarintLen64)
	putBytes := func(b []byte) {
		n := binary.PutUvarint(lenbuf, uint64(len(b)))
		buf = append(buf, lenbuf[:n]...)
		buf = append(buf, b...)
	}
	for _, c := range changes {
		if c.Value == nil {
			buf = append(buf, 0)
			putBytes(c.Key)
			continue
		}
		buf = append(buf, 1)
		putBytes(c.Key)
		putBytes(c.Value)
	}
	return crypto.Keccak256(buf)
}
