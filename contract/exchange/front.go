package exchange

import (
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/meverselabs/dmcexchange/core/types"
)

func (cont *ExchangeContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *ExchangeContract
}

func (f *front) Initialize(cc *types.ContractContext, DMC common.Address, GWT common.Address) error {
	return f.cont.Initialize(cc, DMC, GWT)
}

func (f *front) MintDMC(cc *types.ContractContext, salt hash.Hash256, proof []byte) error {
	return f.cont.MintDMC(cc, salt, proof)
}

func (f *front) ExchangeGWT(cc *types.ContractContext, dmcAmount *amount.Amount) (*amount.Amount, error) {
	return f.cont.ExchangeGWT(cc, dmcAmount)
}

func (f *front) ExchangeDMC(cc *types.ContractContext, gwtAmount *amount.Amount) (*amount.Amount, error) {
	return f.cont.ExchangeDMC(cc, gwtAmount)
}

func (f *front) SetMintSigner(cc *types.ContractContext, signer common.Address) error {
	return f.cont.SetMintSigner(cc, signer)
}

func (f *front) UpgradeTo(cc *types.ContractContext, ClassID uint64) error {
	return f.cont.UpgradeTo(cc, ClassID)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) Initialized(cc types.ContractLoader) bool {
	return f.cont.Initialized(cc)
}

func (f *front) DMC(cc types.ContractLoader) common.Address {
	return f.cont.DMC(cc)
}

func (f *front) GWT(cc types.ContractLoader) common.Address {
	return f.cont.GWT(cc)
}

func (f *front) Rate(cc types.ContractLoader) uint64 {
	return Rate
}

func (f *front) MintAmount(cc types.ContractLoader) *amount.Amount {
	return MintAmount.Clone()
}

func (f *front) MintSigner(cc types.ContractLoader) common.Address {
	return f.cont.MintSigner(cc)
}

func (f *front) IsSaltUsed(cc types.ContractLoader, addr common.Address, salt hash.Hash256) bool {
	return f.cont.IsSaltUsed(cc, addr, salt)
}

func (f *front) Owner(cc types.ContractLoader) common.Address {
	return f.cont.Owner(cc)
}
