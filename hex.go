package paychan

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/paychan/errors"
)

// HexBytes is a byte slice that is represented in text form as a 0x
// prefixed hex string. It is used for digests and receipt data.
type HexBytes []byte

// ParseHex decodes a hex string. The 0x prefix is optional.
func ParseHex(enc string) (HexBytes, error) {
	enc = strings.TrimPrefix(strings.TrimPrefix(enc, "0x"), "0X")
	raw, err := hex.DecodeString(enc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
	}
	return raw, nil
}

func (b HexBytes) String() string {
	return "0x" + hex.EncodeToString(b)
}

func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *HexBytes) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode json")
	}
	if enc == "" {
		*b = nil
		return nil
	}
	val, err := ParseHex(enc)
	if err != nil {
		return err
	}
	*b = val
	return nil
}
