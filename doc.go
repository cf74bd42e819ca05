/*
Package paychan defines all common interfaces to tie together the various
subpackages of a unidirectional payment channel ledger, as well as
implementations of some of the simpler components (when interfaces would be
too much overhead).

A payer opens a channel by moving a deposit into the channel escrow account.
The payee may at any time close the channel by presenting a balance claim
signed with its secp256k1 key. The claim is bound to the channel address, so
it cannot be replayed against another channel. If the payee never settles,
the payer reclaims the deposit once the channel timeout has passed.

We pass context through context.Context between app, decorators, and
handlers. Each value that we want to support in a Context has a pair of
functions

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

Extensions live under x/. See x/cash for the escrow ledger and x/channel for
the channel lifecycle, settlement, and expiry handlers.
*/
package paychan
