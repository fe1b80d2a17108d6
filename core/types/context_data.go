package types

import (
	etypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/meverselabs/dmcexchange/common"
	"github.com/pkg/errors"
)

// ContextData is a state data of the context
type ContextData struct {
	cache             *contextCache
	Parent            *ContextData
	AddrSeqMap        map[common.Address]uint64
	ContractDefineMap map[common.Address]*ContractDefine
	DataMap           map[string][]byte
	DeletedDataMap    map[string]bool
	Logs              []*etypes.Log
}

// NewContextData returns a ContextData
func NewContextData(cache *contextCache, Parent *ContextData) *ContextData {
	return &ContextData{
		cache:             cache,
		Parent:            Parent,
		AddrSeqMap:        map[common.Address]uint64{},
		ContractDefineMap: map[common.Address]*ContractDefine{},
		DataMap:           map[string][]byte{},
		DeletedDataMap:    map[string]bool{},
		Logs:              []*etypes.Log{},
	}
}

// dataKey is cont(20) + addr(20) + name
func dataKey(cont common.Address, addr common.Address, name []byte) string {
	return string(cont[:]) + string(addr[:]) + string(name)
}

// SplitDataKey is the inverse of the key used in DataMap
func SplitDataKey(key string) (common.Address, common.Address, []byte) {
	var cont, addr common.Address
	copy(cont[:], key[:common.AddressLength])
	copy(addr[:], key[common.AddressLength:common.AddressLength*2])
	return cont, addr, []byte(key[common.AddressLength*2:])
}

// AddrSeq returns the sequence of the target account
func (ctd *ContextData) AddrSeq(addr common.Address) uint64 {
	if seq, has := ctd.AddrSeqMap[addr]; has {
		return seq
	} else if ctd.Parent != nil {
		return ctd.Parent.AddrSeq(addr)
	} else {
		return ctd.cache.AddrSeq(addr)
	}
}

// AddAddrSeq update the sequence of the target account
func (ctd *ContextData) AddAddrSeq(addr common.Address) {
	ctd.AddrSeqMap[addr] = ctd.AddrSeq(addr) + 1
}

// IsContract returns is the contract
func (ctd *ContextData) IsContract(addr common.Address) bool {
	if _, has := ctd.ContractDefineMap[addr]; has {
		return true
	} else if ctd.Parent != nil {
		return ctd.Parent.IsContract(addr)
	} else {
		return ctd.cache.IsContract(addr)
	}
}

// ContractDefine returns the define of the deployed contract
func (ctd *ContextData) ContractDefine(addr common.Address) (*ContractDefine, error) {
	if cd, has := ctd.ContractDefineMap[addr]; has {
		return cd, nil
	} else if ctd.Parent != nil {
		return ctd.Parent.ContractDefine(addr)
	} else {
		return ctd.cache.ContractDefine(addr)
	}
}

// Contract returns the contract
func (ctd *ContextData) Contract(addr common.Address) (Contract, error) {
	if cd, has := ctd.ContractDefineMap[addr]; has {
		return CreateContract(cd)
	} else if ctd.Parent != nil {
		return ctd.Parent.Contract(addr)
	} else {
		return ctd.cache.Contract(addr)
	}
}

// SetContractDefine inserts or replaces the contract define
func (ctd *ContextData) SetContractDefine(cd *ContractDefine) error {
	if !IsValidClassID(cd.ClassID) {
		return errors.WithStack(ErrInvalidClassID)
	}
	ctd.ContractDefineMap[cd.Address] = cd
	return nil
}

// Data returns the data
func (ctd *ContextData) Data(cont common.Address, addr common.Address, name []byte) []byte {
	key := dataKey(cont, addr, name)
	if ctd.DeletedDataMap[key] {
		return nil
	}
	if value, has := ctd.DataMap[key]; has {
		return value
	} else if ctd.Parent != nil {
		return ctd.Parent.Data(cont, addr, name)
	} else {
		return ctd.cache.Data(cont, addr, name)
	}
}

// SetData inserts the data, an empty value deletes it
func (ctd *ContextData) SetData(cont common.Address, addr common.Address, name []byte, value []byte) {
	key := dataKey(cont, addr, name)
	if len(value) == 0 {
		delete(ctd.DataMap, key)
		ctd.DeletedDataMap[key] = true
	} else {
		delete(ctd.DeletedDataMap, key)
		ctd.DataMap[key] = value
	}
}

// AddLog appends the log of the current call
func (ctd *ContextData) AddLog(l *etypes.Log) {
	ctd.Logs = append(ctd.Logs, l)
}

// merge moves the changes of the child into it
func (ctd *ContextData) merge(child *ContextData) {
	for addr, seq := range child.AddrSeqMap {
		ctd.AddrSeqMap[addr] = seq
	}
	for addr, cd := range child.ContractDefineMap {
		ctd.ContractDefineMap[addr] = cd
	}
	for key, value := range child.DataMap {
		delete(ctd.DeletedDataMap, key)
		ctd.DataMap[key] = value
	}
	for key := range child.DeletedDataMap {
		delete(ctd.DataMap, key)
		ctd.DeletedDataMap[key] = true
	}
	ctd.Logs = append(ctd.Logs, child.Logs...)
}
