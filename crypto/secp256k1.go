package crypto

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec"
	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/errors"
)

const (
	// SignatureSize is the length of a serialized signature, R || S || V.
	SignatureSize = 65

	// recovery identifiers as used by compact signatures of
	// uncompressed keys
	vBase = 27
)

// Signature is a recoverable secp256k1 signature.
type Signature struct {
	R [32]byte
	S [32]byte
	V uint8
}

// Bytes returns the R || S || V serialization.
func (s Signature) Bytes() []byte {
	out := make([]byte, 0, SignatureSize)
	out = append(out, s.R[:]...)
	out = append(out, s.S[:]...)
	return append(out, s.V)
}

// String returns the hex encoded R || S || V serialization.
func (s Signature) String() string {
	return "0x" + hex.EncodeToString(s.Bytes())
}

// SignatureFromBytes decodes an R || S || V serialized signature.
func SignatureFromBytes(raw []byte) (Signature, error) {
	var sig Signature
	if len(raw) != SignatureSize {
		return sig, errors.Wrapf(ErrInvalidSignature, "want %d bytes, got %d", SignatureSize, len(raw))
	}
	copy(sig.R[:], raw[:32])
	copy(sig.S[:], raw[32:64])
	sig.V = raw[64]
	return sig, nil
}

// ParseSignature decodes a hex encoded, optionally 0x prefixed, signature.
func ParseSignature(enc string) (Signature, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(enc, "0x"))
	if err != nil {
		return Signature{}, errors.Wrap(ErrInvalidSignature, "cannot decode hex")
	}
	return SignatureFromBytes(raw)
}

func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Signature) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode json")
	}
	sig, err := ParseSignature(enc)
	if err != nil {
		return err
	}
	*s = sig
	return nil
}

// normalizedV returns the recovery byte in the {27, 28} range.
func (s Signature) normalizedV() (byte, error) {
	v := s.V
	if v < vBase {
		v += vBase
	}
	if v != vBase && v != vBase+1 {
		return 0, errors.Wrapf(ErrInvalidSignature, "recovery byte %d", s.V)
	}
	return v, nil
}

var zero32 [32]byte

// RecoverSigner returns the address of the key that produced the signature
// over the digest. A V value of 0 or 1 is accepted as 27 or 28.
func RecoverSigner(digest []byte, sig Signature) (paychan.Address, error) {
	if len(digest) != HashSize {
		return nil, errors.Wrapf(ErrInvalidSignature, "digest must be %d bytes", HashSize)
	}
	if bytes.Equal(sig.R[:], zero32[:]) || bytes.Equal(sig.S[:], zero32[:]) {
		return nil, errors.Wrap(ErrInvalidSignature, "zero component")
	}
	v, err := sig.normalizedV()
	if err != nil {
		return nil, err
	}

	compact := make([]byte, 0, SignatureSize)
	compact = append(compact, v)
	compact = append(compact, sig.R[:]...)
	compact = append(compact, sig.S[:]...)

	pub, _, err := btcec.RecoverCompact(btcec.S256(), compact, digest)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSignature, err.Error())
	}
	return PubKeyAddress(pub), nil
}

// PubKeyAddress derives the address of a public key, the last 20 bytes of
// the hash of the uncompressed key without its 0x04 prefix.
func PubKeyAddress(pub *btcec.PublicKey) paychan.Address {
	raw := pub.SerializeUncompressed()
	return paychan.Address(Keccak256(raw[1:])[12:])
}

// Signer is the functionality we use from a private key.
type Signer interface {
	Sign(digest []byte) (Signature, error)
	Address() paychan.Address
}

// PrivateKey is a secp256k1 private key.
type PrivateKey struct {
	key *btcec.PrivateKey
}

var _ Signer = (*PrivateKey)(nil)

// GenPrivateKey generates a new random key.
func GenPrivateKey() (*PrivateKey, error) {
	key, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromBytes decodes a 32 byte big-endian scalar.
func PrivateKeyFromBytes(raw []byte) (*PrivateKey, error) {
	if len(raw) != 32 {
		return nil, errors.Wrapf(ErrInvalidKey, "want 32 bytes, got %d", len(raw))
	}
	if bytes.Equal(raw, zero32[:]) {
		return nil, errors.Wrap(ErrInvalidKey, "zero key")
	}
	key, _ := btcec.PrivKeyFromBytes(btcec.S256(), raw)
	if key.D.Cmp(btcec.S256().N) >= 0 {
		return nil, errors.Wrap(ErrInvalidKey, "key out of range")
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromHex decodes a hex encoded key, with or without 0x prefix.
func PrivateKeyFromHex(enc string) (*PrivateKey, error) {
	if len(enc) > 1 && enc[:2] == "0x" {
		enc = enc[2:]
	}
	raw, err := hex.DecodeString(enc)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, "cannot decode hex")
	}
	return PrivateKeyFromBytes(raw)
}

// Bytes returns the 32 byte scalar.
func (p *PrivateKey) Bytes() []byte {
	return p.key.Serialize()
}

// Hex returns the hex encoded scalar.
func (p *PrivateKey) Hex() string {
	return hex.EncodeToString(p.Bytes())
}

// Address returns the identity of this key.
func (p *PrivateKey) Address() paychan.Address {
	return PubKeyAddress(p.key.PubKey())
}

// Sign returns a deterministic (RFC6979) recoverable signature of the
// digest. V is always 27 or 28.
func (p *PrivateKey) Sign(digest []byte) (Signature, error) {
	var sig Signature
	if len(digest) != HashSize {
		return sig, errors.Wrapf(errors.ErrInput, "digest must be %d bytes", HashSize)
	}
	compact, err := btcec.SignCompact(btcec.S256(), p.key, digest, false)
	if err != nil {
		return sig, errors.Wrap(ErrInvalidSignature, err.Error())
	}
	sig.V = compact[0]
	copy(sig.R[:], compact[1:33])
	copy(sig.S[:], compact[33:65])
	return sig, nil
}

// String never prints the key material.
func (p *PrivateKey) String() string {
	return fmt.Sprintf("PrivateKey(%s)", p.Address())
}
