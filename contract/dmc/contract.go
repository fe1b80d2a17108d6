package dmc

import (
	"bytes"

	"github.com/meverselabs/dmcexchange/contract/token"
	"github.com/meverselabs/dmcexchange/core/types"
)

const (
	Name   = "DMC Token"
	Symbol = "DMC"
)

// DMCContract is the capped token minted by its minters
type DMCContract struct {
	token.TokenContract
}

func (cont *DMCContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &DMCContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	return cont.Setup(cc, &token.TokenContractConstruction{
		Name:   Name,
		Symbol: Symbol,
		Cap:    data.Cap,
	})
}
