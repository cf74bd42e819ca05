package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/fatih/color"
	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/app"
	"github.com/iov-one/paychan/x/channel"
)

var (
	green = color.New(color.FgHiGreen).SprintFunc()
	red   = color.New(color.FgHiRed).SprintFunc()
)

// printReceipt writes the receipt status line followed by the receipt
// itself in JSON.
func printReceipt(w io.Writer, r app.Receipt) error {
	status := red("FAILURE")
	if r.Succeeded() {
		status = green("SUCCESS")
	}
	if _, err := fmt.Fprintln(w, status); err != nil {
		return err
	}
	return printJSON(w, r)
}

func printJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize: %s", err)
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}

// channelView is the printed form of a channel. Amounts are decimal
// strings.
type channelView struct {
	ID       paychan.Address  `json:"id"`
	Payer    paychan.Address  `json:"payer"`
	Payee    paychan.Address  `json:"payee"`
	Status   string           `json:"status"`
	Deposit  string           `json:"deposit"`
	Balance  string           `json:"balance"`
	Settled  string           `json:"settled"`
	Refunded string           `json:"refunded"`
	Timeout  paychan.UnixTime `json:"timeout"`
	ClosedAt paychan.UnixTime `json:"closed_at,omitempty"`
	Memo     string           `json:"memo,omitempty"`
}

func newChannelView(id paychan.Address, ch *channel.Channel) channelView {
	return channelView{
		ID:       id,
		Payer:    ch.Payer,
		Payee:    ch.Payee,
		Status:   ch.Status.String(),
		Deposit:  amountString(ch.DepositAmount()),
		Balance:  amountString(ch.BalanceAmount()),
		Settled:  amountString(ch.SettledAmount()),
		Refunded: amountString(ch.RefundedAmount()),
		Timeout:  ch.Timeout,
		ClosedAt: ch.ClosedAt,
		Memo:     ch.Memo,
	}
}

func amountString(a *big.Int) string {
	if a == nil {
		return "0"
	}
	return a.String()
}
