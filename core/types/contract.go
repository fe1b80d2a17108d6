package types

import (
	"io"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/bin"
)

// Contract defines chain Contract functions
type Contract interface {
	Address() common.Address
	Master() common.Address
	Init(addr common.Address, master common.Address)
	OnCreate(cc *ContractContext, Args []byte) error
	Front() interface{}
}

// UpgradeableContract is implemented by the classes that can replace the class of a deployed contract
// the implementation keeps the upgrade entry point so an upgrade cannot lock the contract
type UpgradeableContract interface {
	Contract
	ProxiableID() string
}

// ContractLoader is the read only view used by the contract view functions
type ContractLoader interface {
	ContractData(name []byte) []byte
	AccountData(addr common.Address, name []byte) []byte
}

// ContractDefine is the stored record of a deployed contract
// UpgradeContract only replaces the ClassID
type ContractDefine struct {
	Address common.Address
	Owner   common.Address
	ClassID uint64
}

func (cd *ContractDefine) Clone() *ContractDefine {
	c := *cd
	return &c
}

func (cd *ContractDefine) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	for _, addr := range []common.Address{cd.Address, cd.Owner} {
		if sum, err := sw.Address(w, addr); err != nil {
			return sum, err
		}
	}
	if sum, err := sw.Uint64(w, cd.ClassID); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (cd *ContractDefine) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	for _, p := range []*common.Address{&cd.Address, &cd.Owner} {
		if sum, err := sr.Address(r, p); err != nil {
			return sum, err
		}
	}
	if sum, err := sr.Uint64(r, &cd.ClassID); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}
