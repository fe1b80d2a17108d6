package types

import (
	"github.com/meverselabs/dmcexchange/common"
)

// contextCache memoizes the loader reads of a context
type contextCache struct {
	loader      Loader
	SeqMap      map[common.Address]uint64
	ContractMap map[common.Address]Contract
	DataMap     map[string][]byte
}

func newContextCache(loader Loader) *contextCache {
	return &contextCache{
		loader:      loader,
		SeqMap:      map[common.Address]uint64{},
		ContractMap: map[common.Address]Contract{},
		DataMap:     map[string][]byte{},
	}
}

func (cc *contextCache) AddrSeq(addr common.Address) uint64 {
	if seq, has := cc.SeqMap[addr]; has {
		return seq
	}
	seq := cc.loader.AddrSeq(addr)
	cc.SeqMap[addr] = seq
	return seq
}

func (cc *contextCache) IsContract(addr common.Address) bool {
	if _, has := cc.ContractMap[addr]; has {
		return true
	}
	return cc.loader.IsContract(addr)
}

func (cc *contextCache) Contract(addr common.Address) (Contract, error) {
	if cont, has := cc.ContractMap[addr]; has {
		return cont, nil
	}
	cont, err := cc.loader.Contract(addr)
	if err != nil {
		return nil, err
	}
	cc.ContractMap[addr] = cont
	return cont, nil
}

func (cc *contextCache) ContractDefine(addr common.Address) (*ContractDefine, error) {
	return cc.loader.ContractDefine(addr)
}

func (cc *contextCache) Data(cont common.Address, addr common.Address, name []byte) []byte {
	key := dataKey(cont, addr, name)
	if value, has := cc.DataMap[key]; has {
		return value
	}
	value := cc.loader.Data(cont, addr, name)
	cc.DataMap[key] = value
	return value
}
