package gwt

import (
	"bytes"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/contract/token"
	"github.com/meverselabs/dmcexchange/core/types"
)

const (
	Name   = "GWT Token"
	Symbol = "GWT"
)

// GWTContract is the token that moves only between the accounts on its transfer allow-list
// mint and burn are not gated
type GWTContract struct {
	token.TokenContract
}

// OnCreate accepts an empty construction
func (cont *GWTContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &token.TokenContractConstruction{}
	if len(Args) > 0 {
		if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
			return err
		}
	}
	if data.Name == "" {
		data.Name = Name
	}
	if data.Symbol == "" {
		data.Symbol = Symbol
	}
	return cont.Setup(cc, data)
}

func (cont *GWTContract) checkTransfer(cc types.ContractLoader, From common.Address, To common.Address) error {
	if cont.IsTransferAllowed(cc, From) || cont.IsTransferAllowed(cc, To) {
		return nil
	}
	return token.ErrTransferNotAllowed
}

func (cont *GWTContract) Transfer(cc *types.ContractContext, To common.Address, Amount *amount.Amount) error {
	if err := cont.checkTransfer(cc, cc.From(), To); err != nil {
		return err
	}
	return cont.TokenContract.Transfer(cc, To, Amount)
}

func (cont *GWTContract) TransferFrom(cc *types.ContractContext, From common.Address, To common.Address, Amount *amount.Amount) error {
	if err := cont.checkTransfer(cc, From, To); err != nil {
		return err
	}
	return cont.TokenContract.TransferFrom(cc, From, To, Amount)
}
