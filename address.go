package paychan

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/paychan/errors"
	"golang.org/x/crypto/sha3"
)

const (
	// AddressLength is the length of all addresses.
	AddressLength = 20

	// AddressHRP is the human readable part used for the bech32
	// representation of an address.
	AddressHRP = "paychan"
)

// Address is an identity derived from a public key. Both channel
// participants and channel escrow accounts are represented by an address.
//
// It will be of size AddressLength
type Address []byte

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length %d", len(a))
	}
	return nil
}

// String returns a human readable string, the checksummed hex form.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return a.Hex()
}

// Hex returns the 0x prefixed, mixed case checksum encoding of the address
// (EIP-55).
func (a Address) Hex() string {
	enc := []byte(hex.EncodeToString(a))
	h := sha3.NewLegacyKeccak256()
	h.Write(enc)
	sum := h.Sum(nil)
	for i := range enc {
		if enc[i] < 'a' {
			continue
		}
		nibble := sum[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0xf > 7 {
			enc[i] -= 'a' - 'A'
		}
	}
	return "0x" + string(enc)
}

// Bech32 returns the bech32 representation of the address.
func (a Address) Bech32() (string, error) {
	data, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(err, "convert bits")
	}
	raw, err := bech32.Encode(AddressHRP, data)
	if err != nil {
		return "", errors.Wrap(err, "bech32 encode")
	}
	return raw, nil
}

// MarshalJSON provides a hex representation for JSON,
// to override the standard base64 []byte encoding
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(a.Hex())
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode json")
	}
	// No value zero the address.
	if len(enc) == 0 {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes an address from its text representation. Supported
// forms are hex (with or without the 0x prefix, any letter case) and bech32
// (optionally prefixed with "bech32:").
func ParseAddress(enc string) (Address, error) {
	// If the encoded string starts with a format prefix, cut it off and use
	// specified decoding method instead of default one.
	format := "hex"
	if chunks := strings.SplitN(enc, ":", 2); len(chunks) == 2 {
		format, enc = chunks[0], chunks[1]
	} else if strings.HasPrefix(enc, AddressHRP+"1") {
		format = "bech32"
	}

	var addr Address
	switch format {
	case "hex":
		enc = strings.TrimPrefix(strings.TrimPrefix(enc, "0x"), "0X")
		val, err := hex.DecodeString(enc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		addr = val
	case "bech32":
		hrp, data, err := bech32.Decode(enc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		if hrp != AddressHRP {
			return nil, errors.Wrapf(errors.ErrInput, "unexpected bech32 prefix %q", hrp)
		}
		payload, err := bech32.ConvertBits(data, 5, 8, false)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		addr = payload
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// MustParseAddress is ParseAddress that panics on failure. Use it only for
// constants and tests.
func MustParseAddress(enc string) Address {
	addr, err := ParseAddress(enc)
	if err != nil {
		panic(err)
	}
	return addr
}
