package app

import (
	"math/big"
	"sync"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/bin"
	"github.com/meverselabs/dmcexchange/contract/dmc"
	"github.com/meverselabs/dmcexchange/contract/exchange"
	"github.com/meverselabs/dmcexchange/contract/gwt"
	"github.com/meverselabs/dmcexchange/core/types"
)

// DMCCap is the supply cap of the genesis DMC
var DMCCap = amount.NewAmount(1000000000, 0)

// ClassMap has the class ids of the contracts
type ClassMap struct {
	DMC      uint64
	GWT      uint64
	Exchange uint64
}

var (
	registerOnce sync.Once
	classMap     ClassMap
)

// RegisterContracts registers the contract classes and returns their ids
func RegisterContracts() ClassMap {
	registerOnce.Do(func() {
		classMap = ClassMap{
			DMC:      types.MustRegisterContractType(&dmc.DMCContract{}),
			GWT:      types.MustRegisterContractType(&gwt.GWTContract{}),
			Exchange: types.MustRegisterContractType(&exchange.ExchangeContract{}),
		}
	})
	return classMap
}

// Deployment has the addresses of the genesis contracts
type Deployment struct {
	Admin    common.Address
	DMC      common.Address
	GWT      common.Address
	Exchange common.Address
	Classes  ClassMap
}

// Genesis deploys the tokens and the initialized exchange by the admin
// and enables the exchange as the minter of both tokens
func Genesis(ChainID *big.Int, admin common.Address) (*types.ContextData, *Deployment, error) {
	classes := RegisterContracts()
	ctx := types.NewContext(types.NewEmptyLoader(ChainID))

	bs, _, err := bin.WriterToBytes(&dmc.DMCContractConstruction{Cap: DMCCap})
	if err != nil {
		return nil, nil, err
	}
	dmcCont, err := ctx.DeployContract(admin, classes.DMC, bs)
	if err != nil {
		return nil, nil, err
	}
	gwtCont, err := ctx.DeployContract(admin, classes.GWT, nil)
	if err != nil {
		return nil, nil, err
	}
	bs, _, err = bin.WriterToBytes(&exchange.ExchangeContractConstruction{
		DMC: dmcCont.Address(),
		GWT: gwtCont.Address(),
	})
	if err != nil {
		return nil, nil, err
	}
	exCont, err := ctx.DeployContract(admin, classes.Exchange, bs)
	if err != nil {
		return nil, nil, err
	}

	intr := types.NewInteractor(ctx)
	for _, cont := range []types.Contract{gwtCont, dmcCont} {
		cc := ctx.ContractContext(cont, admin)
		cc.Exec = intr.Exec
		if _, err := intr.Exec(cc, cont.Address(), "EnableMinter", []interface{}{[]common.Address{exCont.Address()}}); err != nil {
			return nil, nil, err
		}
	}
	return ctx.Top(), &Deployment{
		Admin:    admin,
		DMC:      dmcCont.Address(),
		GWT:      gwtCont.Address(),
		Exchange: exCont.Address(),
		Classes:  classes,
	}, nil
}
