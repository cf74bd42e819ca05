/*
Package crypto implements the primitives used to bind a balance claim to a
channel: legacy Keccak-256 hashing, the Ethereum signed message prefix and
secp256k1 signing with public key recovery.

An identity is the last 20 bytes of the Keccak-256 hash of the uncompressed
public key, the same way externally owned accounts are derived.
*/
package crypto
