package types

import (
	"math/big"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/pkg/errors"
)

// Loader defines functions that loads state data from the target chain
type Loader interface {
	ChainID() *big.Int
	Height() uint32
	AddrSeq(addr common.Address) uint64
	IsContract(addr common.Address) bool
	Contract(addr common.Address) (Contract, error)
	ContractDefine(addr common.Address) (*ContractDefine, error)
	Data(cont common.Address, addr common.Address, name []byte) []byte
}

type emptyLoader struct {
	chainID *big.Int
}

// NewEmptyLoader is used for generating genesis state
func NewEmptyLoader(chainID *big.Int) Loader {
	if chainID == nil {
		chainID = big.NewInt(0)
	}
	return &emptyLoader{chainID: chainID}
}

// ChainID returns the given chain id
func (st *emptyLoader) ChainID() *big.Int {
	return st.chainID
}

// Height returns 0
func (st *emptyLoader) Height() uint32 {
	return 0
}

// AddrSeq returns 0
func (st *emptyLoader) AddrSeq(addr common.Address) uint64 {
	return 0
}

// IsContract returns false
func (st *emptyLoader) IsContract(addr common.Address) bool {
	return false
}

// Contract returns ErrNotExistContract
func (st *emptyLoader) Contract(addr common.Address) (Contract, error) {
	return nil, errors.WithStack(ErrNotExistContract)
}

// ContractDefine returns ErrNotExistContract
func (st *emptyLoader) ContractDefine(addr common.Address) (*ContractDefine, error) {
	return nil, errors.WithStack(ErrNotExistContract)
}

// Data returns nil
func (st *emptyLoader) Data(cont common.Address, addr common.Address, name []byte) []byte {
	return nil
}
