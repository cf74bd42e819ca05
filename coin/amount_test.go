package coin

import (
	"math/big"
	"testing"

	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/weavetest/assert"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    *big.Int
		wantErr *errors.Error
	}{
		"decimal": {
			raw:  "1000",
			want: big.NewInt(1000),
		},
		"hex": {
			raw:  "0xff",
			want: big.NewInt(255),
		},
		"zero": {
			raw:  "0",
			want: big.NewInt(0),
		},
		"max value": {
			raw:  MaxAmount.String(),
			want: MaxAmount,
		},
		"above max value": {
			raw:     new(big.Int).Add(MaxAmount, big.NewInt(1)).String(),
			wantErr: errors.ErrOverflow,
		},
		"negative": {
			raw:     "-5",
			wantErr: errors.ErrInvalidAmount,
		},
		"garbage": {
			raw:     "ten",
			wantErr: errors.ErrInvalidAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAmount(tc.raw)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil && got.Cmp(tc.want) != 0 {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestUint256(t *testing.T) {
	raw, err := Uint256(big.NewInt(0x0102))
	assert.Nil(t, err)
	want := make([]byte, 32)
	want[30], want[31] = 0x01, 0x02
	assert.Equal(t, want, raw)

	raw, err = Uint256(MaxAmount)
	assert.Nil(t, err)
	for _, b := range raw {
		if b != 0xff {
			t.Fatalf("unexpected max encoding: %x", raw)
		}
	}

	_, err = Uint256(big.NewInt(-1))
	assert.IsErr(t, errors.ErrInvalidAmount, err)
}

func TestEncodeDecodeAmount(t *testing.T) {
	for _, a := range []*big.Int{big.NewInt(0), big.NewInt(1), MaxAmount} {
		got, err := DecodeAmount(EncodeAmount(a))
		assert.Nil(t, err)
		if got.Cmp(a) != 0 {
			t.Fatalf("want %s, got %s", a, got)
		}
	}
	_, err := DecodeAmount(make([]byte, 33))
	assert.IsErr(t, errors.ErrOverflow, err)
}

func TestArithmetic(t *testing.T) {
	sum, err := Add(big.NewInt(2), big.NewInt(3))
	assert.Nil(t, err)
	assert.Equal(t, 0, sum.Cmp(big.NewInt(5)))

	_, err = Add(MaxAmount, big.NewInt(1))
	assert.IsErr(t, errors.ErrOverflow, err)

	diff, err := Sub(big.NewInt(5), big.NewInt(5))
	assert.Nil(t, err)
	assert.Equal(t, 0, diff.Sign())

	_, err = Sub(big.NewInt(4), big.NewInt(5))
	assert.IsErr(t, errors.ErrInsufficientAmount, err)
}
