package gwt

import (
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/contract/token"
	"github.com/meverselabs/dmcexchange/core/types"
)

func (cont *GWTContract) Front() interface{} {
	return &front{
		Front: token.NewFront(&cont.TokenContract),
		cont:  cont,
	}
}

type front struct {
	*token.Front
	cont *GWTContract
}

func (f *front) Transfer(cc *types.ContractContext, To common.Address, Amount *amount.Amount) (bool, error) {
	err := f.cont.Transfer(cc, To, Amount)
	return err == nil, err
}

func (f *front) TransferFrom(cc *types.ContractContext, From common.Address, To common.Address, Amount *amount.Amount) (bool, error) {
	err := f.cont.TransferFrom(cc, From, To, Amount)
	return err == nil, err
}

func (f *front) EnableTransfer(cc *types.ContractContext, addrs []common.Address) error {
	return f.cont.EnableTransfer(cc, addrs)
}

func (f *front) DisableTransfer(cc *types.ContractContext, addrs []common.Address) error {
	return f.cont.DisableTransfer(cc, addrs)
}

func (f *front) IsTransferAllowed(cc types.ContractLoader, addr common.Address) bool {
	return f.cont.IsTransferAllowed(cc, addr)
}
