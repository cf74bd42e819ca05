/*
Package channel implements a two party, unidirectional payment channel.

A payer opens a channel by depositing funds into the channel escrow account.
Off the ledger the payee accumulates a balance. A claim, signed with the payee
key, binds that cumulative total to a single channel instance. At any point
the payee may submit its final claim to settle the channel. The claimed total is paid to the payee, the remainder is returned to
the payer and the channel is closed for good.

If the payee never settles, the deposit can be reclaimed once the channel
timeout is reached.

A claim digest is computed as

    keccak256(channel id (20 bytes) || total as uint256 (32 bytes))

and signed with the "\x19Ethereum Signed Message:\n32" prefix, so claims can be
produced by any wallet that signs personal messages.

codec.go is maintained by hand. Its struct tags, including the casttype
options, must match codec.proto.
*/
package channel
