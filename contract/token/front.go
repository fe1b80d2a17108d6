package token

import (
	"math/big"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/core/types"
)

func (cont *TokenContract) Front() interface{} {
	return NewFront(cont)
}

// Front exposes the callable methods of the token
// tokens built on TokenContract embed it and shadow the methods they change
type Front struct {
	cont *TokenContract
}

func NewFront(cont *TokenContract) *Front {
	return &Front{
		cont: cont,
	}
}

func (f *Front) Transfer(cc *types.ContractContext, To common.Address, Amount *amount.Amount) (bool, error) {
	err := f.cont.Transfer(cc, To, Amount)
	return err == nil, err
}

func (f *Front) TransferFrom(cc *types.ContractContext, From common.Address, To common.Address, Amount *amount.Amount) (bool, error) {
	err := f.cont.TransferFrom(cc, From, To, Amount)
	return err == nil, err
}

func (f *Front) Approve(cc *types.ContractContext, To common.Address, Amount *amount.Amount) (bool, error) {
	err := f.cont.Approve(cc, To, Amount)
	return err == nil, err
}

func (f *Front) Burn(cc *types.ContractContext, Amount *amount.Amount) error {
	return f.cont.Burn(cc, Amount)
}

func (f *Front) BurnFrom(cc *types.ContractContext, From common.Address, Amount *amount.Amount) error {
	return f.cont.BurnFrom(cc, From, Amount)
}

func (f *Front) Mint(cc *types.ContractContext, To common.Address, Amount *amount.Amount) error {
	return f.cont.Mint(cc, To, Amount)
}

func (f *Front) EnableMinter(cc *types.ContractContext, addrs []common.Address) error {
	return f.cont.EnableMinter(cc, addrs)
}

func (f *Front) DisableMinter(cc *types.ContractContext, addrs []common.Address) error {
	return f.cont.DisableMinter(cc, addrs)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *Front) Name(cc types.ContractLoader) string {
	return f.cont.Name(cc)
}

func (f *Front) Symbol(cc types.ContractLoader) string {
	return f.cont.Symbol(cc)
}

func (f *Front) Decimals(cc types.ContractLoader) *big.Int {
	return f.cont.Decimals(cc)
}

func (f *Front) TotalSupply(cc types.ContractLoader) *amount.Amount {
	return f.cont.TotalSupply(cc)
}

func (f *Front) BalanceOf(cc types.ContractLoader, from common.Address) *amount.Amount {
	return f.cont.BalanceOf(cc, from)
}

func (f *Front) Allowance(cc types.ContractLoader, _owner common.Address, _spender common.Address) *amount.Amount {
	return f.cont.Allowance(cc, _owner, _spender)
}

func (f *Front) IsMinter(cc types.ContractLoader, addr common.Address) bool {
	return f.cont.IsMinter(cc, addr)
}

func (f *Front) Owner(cc types.ContractLoader) common.Address {
	return f.cont.Owner(cc)
}
