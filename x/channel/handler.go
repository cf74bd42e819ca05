package channel

import (
	"bytes"
	"math/big"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/crypto"
	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/x/cash"
)

// RegisterRoutes registers the channel message handlers. Funds are moved
// using given cash controller.
func RegisterRoutes(r paychan.Registry, ctrl cash.Controller) {
	bucket := NewBucket()
	r.Handle(pathOpenMsg, &openHandler{bucket: bucket, cash: ctrl})
	r.Handle(pathCloseMsg, &closeHandler{bucket: bucket, cash: ctrl})
	r.Handle(pathExpireMsg, &expireHandler{bucket: bucket, cash: ctrl})
}

type openHandler struct {
	bucket Bucket
	cash   cash.Controller
}

var _ paychan.Handler = (*openHandler)(nil)

func (h *openHandler) Deliver(ctx paychan.Context, db paychan.KVStore, rmsg paychan.Msg) (*paychan.DeliverResult, error) {
	msg, ok := rmsg.(*OpenMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrType, rmsg)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if _, err := blockNow(ctx); err != nil {
		return nil, err
	}
	if conf.StrictTimeout && !paychan.InTheFuture(ctx, msg.Timeout) {
		return nil, errors.Field("Timeout", errors.ErrInput, "timeout %s is not in the future", msg.Timeout)
	}

	id := msg.ChannelID
	if len(id) == 0 {
		if id, err = h.bucket.NextID(db, h.escrowInUse(db)); err != nil {
			return nil, err
		}
	}

	ch := &Channel{
		Payer:   msg.Payer,
		Payee:   msg.Payee,
		Deposit: msg.Deposit.Bytes(),
		Balance: msg.Deposit.Bytes(),
		Timeout: msg.Timeout,
		Status:  Status_OPEN,
		Memo:    msg.Memo,
	}
	if err := h.bucket.Create(db, id, ch); err != nil {
		return nil, errors.Wrapf(err, "channel %s", id)
	}

	// The escrow account is the channel address. It must not hold funds
	// that do not belong to this channel.
	if used, err := h.escrowInUse(db)(id); err != nil {
		return nil, err
	} else if used {
		return nil, errors.Wrapf(errors.ErrDuplicate, "escrow account %s in use", id)
	}
	if err := h.cash.MoveCoins(db, msg.Payer, id, msg.Deposit); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}

	paychan.GetLogger(ctx).Info("channel opened",
		"channel", id, "payer", msg.Payer, "payee", msg.Payee, "deposit", msg.Deposit)
	return &paychan.DeliverResult{Data: id}, nil
}

// escrowInUse reports whether the escrow wallet at an address holds funds.
func (h *openHandler) escrowInUse(db paychan.ReadOnlyKVStore) func(paychan.Address) (bool, error) {
	return func(id paychan.Address) (bool, error) {
		held, err := h.cash.Balance(db, id)
		if err != nil {
			return false, err
		}
		return held.Sign() != 0, nil
	}
}

type closeHandler struct {
	bucket Bucket
	cash   cash.Controller
}

var _ paychan.Handler = (*closeHandler)(nil)

func (h *closeHandler) Deliver(ctx paychan.Context, db paychan.KVStore, rmsg paychan.Msg) (*paychan.DeliverResult, error) {
	msg, ok := rmsg.(*CloseMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrType, rmsg)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}

	ch, err := h.bucket.GetChannel(db, msg.ChannelID)
	if err != nil {
		return nil, err
	}
	if !ch.IsOpen() {
		return nil, errors.Wrapf(ErrAlreadyClosed, "channel %s", msg.ChannelID)
	}

	// The digest must bind the claimed total to this very channel.
	want, err := ClaimDigest(msg.ChannelID, msg.Total)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(want, msg.Digest) {
		return nil, ErrDigestMismatch
	}
	signer, err := crypto.RecoverSigner(msg.Digest, msg.Signature)
	if err != nil {
		return nil, err
	}
	if !signer.Equals(msg.Payee) || !msg.Payee.Equals(ch.Payee) {
		return nil, errors.Wrapf(ErrUnauthorizedSigner, "signed by %s", signer)
	}

	balance := ch.BalanceAmount()
	if msg.Total.Cmp(balance) > 0 {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "claim of %s exceeds balance %s", msg.Total, balance)
	}
	remainder := new(big.Int).Sub(balance, msg.Total)

	if msg.Total.Sign() > 0 {
		if err := h.cash.MoveCoins(db, msg.ChannelID, ch.Payee, msg.Total); err != nil {
			return nil, errors.Wrap(err, "settle")
		}
	}
	if remainder.Sign() > 0 {
		if err := h.cash.MoveCoins(db, msg.ChannelID, ch.Payer, remainder); err != nil {
			return nil, errors.Wrap(err, "refund")
		}
	}
	ch.close(msg.Total, remainder, now)
	if err := h.bucket.Put(db, msg.ChannelID, ch); err != nil {
		return nil, err
	}

	paychan.GetLogger(ctx).Info("channel closed",
		"channel", msg.ChannelID, "caller", msg.Caller, "settled", msg.Total, "refunded", remainder)
	return &paychan.DeliverResult{Data: msg.ChannelID}, nil
}

type expireHandler struct {
	bucket Bucket
	cash   cash.Controller
}

var _ paychan.Handler = (*expireHandler)(nil)

func (h *expireHandler) Deliver(ctx paychan.Context, db paychan.KVStore, rmsg paychan.Msg) (*paychan.DeliverResult, error) {
	msg, ok := rmsg.(*ExpireMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrType, rmsg)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}

	ch, err := h.bucket.GetChannel(db, msg.ChannelID)
	if err != nil {
		return nil, err
	}
	if !ch.IsOpen() {
		return nil, errors.Wrapf(ErrAlreadyClosed, "channel %s", msg.ChannelID)
	}
	if conf.PayerOnlyExpire && !msg.Caller.Equals(ch.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the payer can expire")
	}
	if !paychan.IsExpired(ctx, ch.Timeout) {
		return nil, errors.Wrapf(ErrNotTimedOut, "timeout at %s", ch.Timeout)
	}

	balance := ch.BalanceAmount()
	if balance.Sign() > 0 {
		if err := h.cash.MoveCoins(db, msg.ChannelID, ch.Payer, balance); err != nil {
			return nil, errors.Wrap(err, "refund")
		}
	}
	ch.close(new(big.Int), balance, now)
	if err := h.bucket.Put(db, msg.ChannelID, ch); err != nil {
		return nil, err
	}

	paychan.GetLogger(ctx).Info("channel expired",
		"channel", msg.ChannelID, "caller", msg.Caller, "refunded", balance)
	return &paychan.DeliverResult{Data: msg.ChannelID}, nil
}

// blockNow returns the execution time declared in the context.
func blockNow(ctx paychan.Context) (paychan.UnixTime, error) {
	now, ok := paychan.BlockTime(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrHuman, "block time not present in context")
	}
	return paychan.AsUnixTime(now), nil
}
