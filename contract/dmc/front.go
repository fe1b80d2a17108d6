package dmc

import (
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/contract/token"
	"github.com/meverselabs/dmcexchange/core/types"
)

func (cont *DMCContract) Front() interface{} {
	return &front{
		Front: token.NewFront(&cont.TokenContract),
		cont:  cont,
	}
}

type front struct {
	*token.Front
	cont *DMCContract
}

func (f *front) Cap(cc types.ContractLoader) *amount.Amount {
	return f.cont.Cap(cc)
}
