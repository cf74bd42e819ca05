package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/app"
	paychandapp "github.com/iov-one/paychan/cmd/paychand/app"
	"github.com/iov-one/paychan/coin"
	"github.com/iov-one/paychan/x/channel"
)

const signClaimLong = `
Sign a claim of the cumulative total the payee is entitled to. The key must
belong to the channel payee. The printed message can be submitted by anyone
using the close command.`

type signClaimCmd struct {
	env *environment
	KeyOptions
	Channel string `long:"channel" required:"true" description:"Channel address"`
	Total   string `long:"total" required:"true" description:"Cumulative total, in the smallest unit"`
}

func (c *signClaimCmd) Execute(args []string) error {
	id, err := paychan.ParseAddress(c.Channel)
	if err != nil {
		return fmt.Errorf("channel: %s", err)
	}
	total, err := coin.ParseAmount(c.Total)
	if err != nil {
		return fmt.Errorf("total: %s", err)
	}
	key, err := loadKey(c.env.inHome(c.Key, keyFileName))
	if err != nil {
		return err
	}
	msg, err := channel.NewClaim(id, total).Sign(key)
	if err != nil {
		return err
	}
	return printJSON(c.env.out, msg)
}

const openLong = `
Open a channel escrowing the deposit of the payer. When the channel address
is not given a new one is derived. The channel address is returned as the
receipt data.

The timeout is either a UNIX timestamp, an RFC3339 time or a duration from
now prefixed with +, for example +24h.`

type openCmd struct {
	env     *environment
	Channel string `long:"channel" description:"Channel address, derived if not set"`
	Payer   string `long:"payer" required:"true" description:"Payer address"`
	Payee   string `long:"payee" required:"true" description:"Payee address"`
	Deposit string `long:"deposit" required:"true" description:"Escrowed amount, in the smallest unit"`
	Timeout string `long:"timeout" required:"true" description:"Time after which the payer can be refunded"`
	Memo    string `long:"memo" description:"Free text attached to the channel"`
}

func (c *openCmd) Execute(args []string) error {
	msg := channel.OpenMsg{Memo: c.Memo}
	var err error
	if c.Channel != "" {
		if msg.ChannelID, err = paychan.ParseAddress(c.Channel); err != nil {
			return fmt.Errorf("channel: %s", err)
		}
	}
	if msg.Payer, err = paychan.ParseAddress(c.Payer); err != nil {
		return fmt.Errorf("payer: %s", err)
	}
	if msg.Payee, err = paychan.ParseAddress(c.Payee); err != nil {
		return fmt.Errorf("payee: %s", err)
	}
	if msg.Deposit, err = coin.ParseAmount(c.Deposit); err != nil {
		return fmt.Errorf("deposit: %s", err)
	}
	if msg.Timeout, err = parseTimeout(c.Timeout, time.Now()); err != nil {
		return fmt.Errorf("timeout: %s", err)
	}
	return c.env.deliver(&msg)
}

// parseTimeout accepts a UNIX timestamp, an RFC3339 time or a +duration
// relative to now.
func parseTimeout(s string, now time.Time) (paychan.UnixTime, error) {
	if strings.HasPrefix(s, "+") {
		d, err := time.ParseDuration(s[1:])
		if err != nil {
			return 0, err
		}
		return paychan.AsUnixTime(now.Add(d)), nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("time before epoch")
		}
		return paychan.UnixTime(n), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time format %q", s)
	}
	return paychan.AsUnixTime(t), nil
}

const closeLong = `
Settle a channel with a claim created by the sign-claim command. The claim
is read from the given file, or the standard input if the file is -.`

type closeCmd struct {
	env    *environment
	Claim  string `long:"claim" default:"-" description:"Path to the signed claim"`
	Caller string `long:"caller" description:"Address of the submitter"`
}

func (c *closeCmd) Execute(args []string) error {
	var r io.Reader = c.env.in
	if c.Claim != "-" {
		fd, err := os.Open(c.Claim)
		if err != nil {
			return fmt.Errorf("cannot open claim: %s", err)
		}
		defer fd.Close()
		r = fd
	}
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return fmt.Errorf("cannot read claim: %s", err)
	}
	var msg channel.CloseMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("cannot decode claim: %s", err)
	}
	if c.Caller != "" {
		if msg.Caller, err = paychan.ParseAddress(c.Caller); err != nil {
			return fmt.Errorf("caller: %s", err)
		}
	}
	return c.env.deliver(&msg)
}

const expireLong = `
Close a channel after its timeout, returning the escrowed balance to the
payer.`

type expireCmd struct {
	env     *environment
	Channel string `long:"channel" required:"true" description:"Channel address"`
	Caller  string `long:"caller" description:"Address of the submitter"`
}

func (c *expireCmd) Execute(args []string) error {
	var msg channel.ExpireMsg
	var err error
	if msg.ChannelID, err = paychan.ParseAddress(c.Channel); err != nil {
		return fmt.Errorf("channel: %s", err)
	}
	if c.Caller != "" {
		if msg.Caller, err = paychan.ParseAddress(c.Caller); err != nil {
			return fmt.Errorf("caller: %s", err)
		}
	}
	return c.env.deliver(&msg)
}

const channelLong = `
Print the state of a channel.`

type channelCmd struct {
	env     *environment
	Channel string `long:"channel" required:"true" description:"Channel address"`
}

func (c *channelCmd) Execute(args []string) error {
	id, err := paychan.ParseAddress(c.Channel)
	if err != nil {
		return fmt.Errorf("channel: %s", err)
	}
	return c.env.view(func(a *app.StoreApp) error {
		ch, err := paychandapp.Channel(a, id)
		if err != nil {
			return err
		}
		return printJSON(c.env.out, newChannelView(id, ch))
	})
}

const balanceLong = `
Print the amount held by an address. Use a channel address to print the
escrowed funds.`

type balanceCmd struct {
	env     *environment
	Address string `long:"address" required:"true" description:"Account address"`
}

func (c *balanceCmd) Execute(args []string) error {
	addr, err := paychan.ParseAddress(c.Address)
	if err != nil {
		return fmt.Errorf("address: %s", err)
	}
	return c.env.view(func(a *app.StoreApp) error {
		amount, err := paychandapp.Balance(a, addr)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.env.out, amount)
		return err
	})
}

const channelsLong = `
Print all channels of a payer or of a payee.`

type channelsCmd struct {
	env   *environment
	Payer string `long:"payer" description:"List channels funded by this address"`
	Payee string `long:"payee" description:"List channels paying to this address"`
}

func (c *channelsCmd) Execute(args []string) error {
	if (c.Payer == "") == (c.Payee == "") {
		return fmt.Errorf("exactly one of --payer and --payee is required")
	}
	bucket := channel.NewBucket()
	query := bucket.ByPayer
	enc := c.Payer
	if c.Payee != "" {
		query, enc = bucket.ByPayee, c.Payee
	}
	addr, err := paychan.ParseAddress(enc)
	if err != nil {
		return fmt.Errorf("address: %s", err)
	}
	return c.env.view(func(a *app.StoreApp) error {
		views := make([]channelView, 0)
		err := a.View(func(db paychan.ReadOnlyKVStore) error {
			keys, chans, err := query(db, addr)
			if err != nil {
				return err
			}
			for i, ch := range chans {
				views = append(views, newChannelView(keys[i], ch))
			}
			return nil
		})
		if err != nil {
			return err
		}
		return printJSON(c.env.out, views)
	})
}
