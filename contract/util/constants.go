package util

import (
	"math/big"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
)

var (
	ZeroAmount  = amount.NewAmount(0, 0)
	MaxUint256  = ToAmount(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)))
	ZeroAddress = common.Address{}
)

func ToAmount(b *big.Int) *amount.Amount {
	return amount.NewAmountFromBig(b)
}

// Ether returns the amount of n whole tokens
func Ether(n uint64) *amount.Amount {
	return amount.NewAmount(n, 0)
}
