package coin

import (
	"math/big"
	"strings"

	"github.com/iov-one/paychan/errors"
)

// AmountSize is the size of a fixed width serialized amount.
const AmountSize = 32

// MaxAmount is the largest amount that can be represented, 2^256 - 1.
var MaxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// NewAmount returns an amount of given value.
func NewAmount(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

// ValidateAmount returns an error if given value is not a valid amount. Zero
// is a valid amount.
func ValidateAmount(a *big.Int) error {
	if a == nil {
		return errors.Wrap(errors.ErrEmpty, "amount")
	}
	if a.Sign() < 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "negative")
	}
	if a.Cmp(MaxAmount) > 0 {
		return errors.Wrap(errors.ErrOverflow, "amount exceeds 256 bits")
	}
	return nil
}

// IsPositive returns true if the amount is greater than zero.
func IsPositive(a *big.Int) bool {
	return a != nil && a.Sign() > 0
}

// ParseAmount reads a decimal, or 0x prefixed hexadecimal, amount.
func ParseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	a, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidAmount, "cannot parse %q", s)
	}
	if err := ValidateAmount(a); err != nil {
		return nil, err
	}
	return a, nil
}

// EncodeAmount returns the minimal big-endian representation. Zero is
// encoded as an empty slice.
func EncodeAmount(a *big.Int) []byte {
	if a == nil {
		return nil
	}
	return a.Bytes()
}

// DecodeAmount reads a big-endian amount. An empty input is zero.
func DecodeAmount(raw []byte) (*big.Int, error) {
	if len(raw) > AmountSize {
		return nil, errors.Wrapf(errors.ErrOverflow, "amount of %d bytes", len(raw))
	}
	return new(big.Int).SetBytes(raw), nil
}

// Uint256 returns the amount as a 32 byte, left zero padded, big-endian
// value.
func Uint256(a *big.Int) ([]byte, error) {
	if err := ValidateAmount(a); err != nil {
		return nil, err
	}
	out := make([]byte, AmountSize)
	raw := a.Bytes()
	copy(out[AmountSize-len(raw):], raw)
	return out, nil
}

// Add returns a + b. The result must fit in 256 bits.
func Add(a, b *big.Int) (*big.Int, error) {
	sum := new(big.Int).Add(a, b)
	if sum.Cmp(MaxAmount) > 0 {
		return nil, errors.Wrap(errors.ErrOverflow, "sum exceeds 256 bits")
	}
	return sum, nil
}

// Sub returns a - b, failing with ErrInsufficientAmount when b is greater
// than a.
func Sub(a, b *big.Int) (*big.Int, error) {
	if a.Cmp(b) < 0 {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "have %s, need %s", a, b)
	}
	return new(big.Int).Sub(a, b), nil
}
