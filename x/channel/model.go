package channel

import (
	"encoding/binary"
	"math/big"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/coin"
	"github.com/iov-one/paychan/crypto"
	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/orm"
)

const (
	// BucketName is where channels are stored.
	BucketName = "channel"

	maxMemoSize = 128
)

var _ orm.Model = (*Channel)(nil)

// Validate ensures the channel is valid. The escrowed balance together with
// the settled and refunded amounts always accounts for the whole deposit.
func (c *Channel) Validate() error {
	if err := c.Payer.Validate(); err != nil {
		return errors.Wrap(errors.ErrModel, "payer: "+err.Error())
	}
	if err := c.Payee.Validate(); err != nil {
		return errors.Wrap(errors.ErrModel, "payee: "+err.Error())
	}
	if err := c.Timeout.Validate(); err != nil {
		return errors.Wrap(err, "timeout")
	}
	if err := c.ClosedAt.Validate(); err != nil {
		return errors.Wrap(err, "closed at")
	}
	if len(c.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrModel, "memo too long")
	}

	var amounts [4]*big.Int
	for i, raw := range [][]byte{c.Deposit, c.Balance, c.Settled, c.Refunded} {
		a, err := coin.DecodeAmount(raw)
		if err != nil {
			return err
		}
		amounts[i] = a
	}
	deposit, balance, settled, refunded := amounts[0], amounts[1], amounts[2], amounts[3]
	if !coin.IsPositive(deposit) {
		return errors.Wrap(errors.ErrModel, "deposit must be positive")
	}
	accounted := new(big.Int).Add(balance, settled)
	accounted.Add(accounted, refunded)
	if accounted.Cmp(deposit) != 0 {
		return errors.Wrap(errors.ErrModel, "balance does not account for the deposit")
	}

	switch c.Status {
	case Status_OPEN:
		if settled.Sign() != 0 || refunded.Sign() != 0 {
			return errors.Wrap(errors.ErrModel, "open channel paid out")
		}
	case Status_CLOSED:
		if balance.Sign() != 0 {
			return errors.Wrap(errors.ErrModel, "closed channel holds funds")
		}
	default:
		return errors.Wrapf(errors.ErrModel, "status %s", c.Status)
	}
	return nil
}

// DepositAmount returns the amount escrowed at open.
func (c *Channel) DepositAmount() *big.Int {
	return mustDecode(c.Deposit)
}

// BalanceAmount returns the amount that is still held in escrow.
func (c *Channel) BalanceAmount() *big.Int {
	return mustDecode(c.Balance)
}

// SettledAmount returns the amount paid to the payee.
func (c *Channel) SettledAmount() *big.Int {
	return mustDecode(c.Settled)
}

// RefundedAmount returns the amount returned to the payer.
func (c *Channel) RefundedAmount() *big.Int {
	return mustDecode(c.Refunded)
}

// IsOpen returns true if the channel was not settled or expired yet.
func (c *Channel) IsOpen() bool {
	return c.Status == Status_OPEN
}

func mustDecode(raw []byte) *big.Int {
	// Validated models always decode.
	a, _ := coin.DecodeAmount(raw)
	return a
}

// close zeroes the balance and moves the channel into its terminal state.
func (c *Channel) close(settled, refunded *big.Int, now paychan.UnixTime) {
	c.Balance = nil
	c.Settled = coin.EncodeAmount(settled)
	c.Refunded = coin.EncodeAmount(refunded)
	c.Status = Status_CLOSED
	c.ClosedAt = now
}

// Bucket is a type-safe wrapper around orm.ModelBucket storing channels
// under their id. Channels are indexed by the payer and the payee.
type Bucket struct {
	orm.ModelBucket
	idSeq orm.Sequence
}

// NewBucket returns a bucket for storing Channel state.
func NewBucket() Bucket {
	b := orm.NewModelBucket(BucketName, &Channel{}).
		WithIndex("payer", payerIndexer).
		WithIndex("payee", payeeIndexer)
	return Bucket{
		ModelBucket: b,
		idSeq:       b.Sequence("id"),
	}
}

func payerIndexer(m orm.Model) ([]byte, error) {
	c, ok := m.(*Channel)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return c.Payer, nil
}

func payeeIndexer(m orm.Model) ([]byte, error) {
	c, ok := m.(*Channel)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return c.Payee, nil
}

// NextID returns a new channel id, derived from the bucket sequence.
// Sequence values whose id is already stored, or reported by taken, are
// skipped. A nil taken only checks the bucket.
func (b Bucket) NextID(db paychan.KVStore, taken func(paychan.Address) (bool, error)) (paychan.Address, error) {
	for {
		seq, err := b.idSeq.NextInt(db)
		if err != nil {
			return nil, errors.Wrap(err, "channel sequence")
		}
		id := SequenceID(seq)
		switch exists, err := b.Has(db, id); {
		case err != nil:
			return nil, errors.Wrapf(err, "channel %s", id)
		case exists:
			continue
		}
		if taken == nil {
			return id, nil
		}
		switch used, err := taken(id); {
		case err != nil:
			return nil, err
		case !used:
			return id, nil
		}
	}
}

// SequenceID returns the id of the channel created with given sequence
// value, the last 20 bytes of keccak256("channel/seq/" || seq).
func SequenceID(seq uint64) paychan.Address {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, seq)
	return paychan.Address(crypto.Keccak256([]byte("channel/seq/"), raw)[12:])
}

// GetChannel returns the channel with given id.
func (b Bucket) GetChannel(db paychan.ReadOnlyKVStore, id paychan.Address) (*Channel, error) {
	var c Channel
	if err := b.One(db, id, &c); err != nil {
		return nil, errors.Wrapf(err, "channel %s", id)
	}
	return &c, nil
}

// ByPayer returns all channels funded by given address together with their
// ids.
func (b Bucket) ByPayer(db paychan.ReadOnlyKVStore, payer paychan.Address) ([][]byte, []*Channel, error) {
	var res []*Channel
	keys, err := b.ByIndex(db, "payer", payer, &res)
	return keys, res, err
}

// ByPayee returns all channels paying to given address together with their
// ids.
func (b Bucket) ByPayee(db paychan.ReadOnlyKVStore, payee paychan.Address) ([][]byte, []*Channel, error) {
	var res []*Channel
	keys, err := b.ByIndex(db, "payee", payee, &res)
	return keys, res, err
}
