package amount

import (
	"math/big"
	"strings"
)

// COIN is 1 coin
var COIN = NewAmount(1, 0)

// FractionalCount represent the number of under the float point
const FractionalCount = 18

// FractionalMax represent the max value of under the float point
var FractionalMax = new(big.Int).Exp(big.NewInt(10), big.NewInt(FractionalCount), nil)

var zeroInt = big.NewInt(0)

// Amount is the precision float value based on the big.Int
type Amount struct {
	*big.Int
}

func newAmount(value int64) *Amount {
	return &Amount{
		Int: big.NewInt(value),
	}
}

// NewAmount returns the amount that is consisted of the integer and the fractional value
func NewAmount(i uint64, f uint64) *Amount {
	bi := new(big.Int).SetUint64(i)
	bi.Mul(bi, FractionalMax)
	bi.Add(bi, new(big.Int).SetUint64(f))
	return &Amount{Int: bi}
}

// NewAmountFromBytes parse the amount from the byte array
func NewAmountFromBytes(bs []byte) *Amount {
	b := newAmount(0)
	b.Int.SetBytes(bs)
	return b
}

// NewAmountFromBig wraps the copy of the base unit value
func NewAmountFromBig(bi *big.Int) *Amount {
	c := newAmount(0)
	if bi != nil {
		c.Int.Set(bi)
	}
	return c
}

// MarshalJSON is a marshaler function
func (am *Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + am.String() + `"`), nil
}

// UnmarshalJSON is a unmarshaler function
func (am *Amount) UnmarshalJSON(bs []byte) error {
	if len(bs) < 3 {
		return ErrInvalidAmountFormat
	}
	if bs[0] != '"' || bs[len(bs)-1] != '"' {
		return ErrInvalidAmountFormat
	}
	v, err := ParseAmount(string(bs[1 : len(bs)-1]))
	if err != nil {
		return err
	}
	am.Int = v.Int
	return nil
}

// Clone returns the clonend value of it
func (am *Amount) Clone() *Amount {
	return NewAmountFromBig(am.Int)
}

// Add returns a + b (*immutable)
func (am *Amount) Add(b *Amount) *Amount {
	c := newAmount(0)
	c.Int.Add(am.Int, b.Int)
	return c
}

// Sub returns a - b (*immutable)
func (am *Amount) Sub(b *Amount) *Amount {
	c := newAmount(0)
	c.Int.Sub(am.Int, b.Int)
	return c
}

// DivC returns a / b (*immutable)
func (am *Amount) DivC(b int64) *Amount {
	c := newAmount(0)
	c.Int.Quo(am.Int, big.NewInt(b))
	return c
}

// ModC returns a % b
func (am *Amount) ModC(b int64) *Amount {
	c := newAmount(0)
	c.Int.Rem(am.Int, big.NewInt(b))
	return c
}

// MulC returns a * b (*immutable)
func (am *Amount) MulC(b int64) *Amount {
	c := newAmount(0)
	c.Int.Mul(am.Int, big.NewInt(b))
	return c
}

// IsZero returns a == 0
func (am *Amount) IsZero() bool {
	return am.Int.Sign() == 0
}

// IsPlus returns a > 0
func (am *Amount) IsPlus() bool {
	return am.Int.Sign() > 0
}

// IsMinus returns a < 0
func (am *Amount) IsMinus() bool {
	return am.Int.Sign() < 0
}

// Less returns a < b
func (am *Amount) Less(b *Amount) bool {
	return am.Int.Cmp(b.Int) < 0
}

// Equal checks that two values is same or not
func (am *Amount) Equal(b *Amount) bool {
	return am.Int.Cmp(b.Int) == 0
}

// String returns the float string of the amount
func (am *Amount) String() string {
	if am.IsZero() {
		return "0"
	}
	sign := ""
	str := am.Int.String()
	if am.IsMinus() {
		sign = "-"
		str = str[1:]
	}
	if len(str) <= FractionalCount {
		return sign + "0." + strings.TrimRight(formatFractional(str), "0")
	}
	si := str[:len(str)-FractionalCount]
	sf := strings.TrimRight(str[len(str)-FractionalCount:], "0")
	if len(sf) > 0 {
		return sign + si + "." + sf
	}
	return sign + si
}

// ParseAmount parse the amount from the float string
func ParseAmount(str string) (*Amount, error) {
	ls := strings.SplitN(str, ".", 2)
	pi, ok := new(big.Int).SetString(ls[0], 10)
	if !ok || pi.Sign() < 0 {
		return nil, ErrInvalidAmountFormat
	}
	pi.Mul(pi, FractionalMax)
	if len(ls) == 1 {
		return &Amount{Int: pi}, nil
	}
	if len(ls[1]) == 0 || len(ls[1]) > FractionalCount {
		return nil, ErrInvalidAmountFormat
	}
	pf, ok := new(big.Int).SetString(padFractional(ls[1]), 10)
	if !ok || pf.Sign() < 0 {
		return nil, ErrInvalidAmountFormat
	}
	pi.Add(pi, pf)
	return &Amount{Int: pi}, nil
}

// MustParseAmount parse the amount from the float string
func MustParseAmount(str string) *Amount {
	am, err := ParseAmount(str)
	if err != nil {
		panic(err)
	}
	return am
}
