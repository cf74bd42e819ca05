/*
Package coin implements the amount arithmetic of the ledger.

Amounts are unsigned integers that must fit in 256 bits. They are kept as
math/big values in memory and serialized as minimal big-endian bytes. The
digest preimage of a balance claim uses the 32 byte left padded form.
*/
package coin
