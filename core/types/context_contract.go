package types

import (
	"math/big"

	etypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/hash"
)

// ContractContext is an context for the contract
type ContractContext struct {
	cont common.Address
	from common.Address
	ctx  *Context
	Exec ExecFunc
}

// ChainID returns the id of the chain
func (cc *ContractContext) ChainID() *big.Int {
	return cc.ctx.ChainID()
}

// Height returns the height of the executing transaction
func (cc *ContractContext) Height() uint32 {
	return cc.ctx.Height()
}

// From returns the caller, the signer of the transaction or the calling contract
func (cc *ContractContext) From() common.Address {
	return cc.from
}

// Address returns the address of the executing contract
func (cc *ContractContext) Address() common.Address {
	return cc.cont
}

// ContractData returns the contract data from the top snapshot
func (cc *ContractContext) ContractData(name []byte) []byte {
	return cc.ctx.Top().Data(cc.cont, common.ZeroAddr, name)
}

// SetContractData inserts the contract data to the top snapshot
func (cc *ContractContext) SetContractData(name []byte, value []byte) {
	cc.ctx.Top().SetData(cc.cont, common.ZeroAddr, name, value)
}

// AccountData returns the account data from the top snapshot
func (cc *ContractContext) AccountData(addr common.Address, name []byte) []byte {
	return cc.ctx.Top().Data(cc.cont, addr, name)
}

// SetAccountData inserts the account data to the top snapshot
func (cc *ContractContext) SetAccountData(addr common.Address, name []byte, value []byte) {
	cc.ctx.Top().SetData(cc.cont, addr, name, value)
}

// IsContract returns is the contract
func (cc *ContractContext) IsContract(addr common.Address) bool {
	return cc.ctx.Top().IsContract(addr)
}

// AddLog emits the log of the executing contract
func (cc *ContractContext) AddLog(topics []hash.Hash256, data []byte) {
	cc.ctx.Top().AddLog(&etypes.Log{
		Address: cc.cont,
		Topics:  topics,
		Data:    data,
	})
}

// UpgradeContract replaces the class of the executing contract
func (cc *ContractContext) UpgradeContract(ClassID uint64) error {
	return cc.ctx.UpgradeContract(cc.cont, ClassID)
}
