/*
Package cash defines a simple escrow ledger of single currency wallets.

There is no logic in the coins, except that the balance of any wallet may
not go below zero. Payment channels use it to lock a deposit on the channel
account and release it at settlement or expiry.

codec.go is maintained by hand and must match codec.proto.
*/
package cash
