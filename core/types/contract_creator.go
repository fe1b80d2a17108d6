package types

import (
	"reflect"
	"sync"

	"github.com/meverselabs/dmcexchange/common/bin"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/pkg/errors"
)

var (
	gContractLock    sync.RWMutex
	gContractTypeMap = map[uint64]reflect.Type{}
	gContractNameMap = map[uint64]string{}
)

// ClassIDOf returns the class id of the contract type, the last 8 bytes of keccak(pkgPath.TypeName)
func ClassIDOf(cont Contract) (uint64, string) {
	rt := reflect.TypeOf(cont)
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	name := rt.Name()
	if pkgPath := rt.PkgPath(); len(pkgPath) > 0 {
		name = pkgPath + "." + name
	}
	h := hash.Hash([]byte(name))
	return bin.Uint64(h[len(h)-8:]), name
}

// RegisterContractType registers the class of the contract and returns its class id
// registering the same type twice returns the same id
func RegisterContractType(cont Contract) (uint64, error) {
	ClassID, name := ClassIDOf(cont)
	rt := reflect.TypeOf(cont)
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}

	gContractLock.Lock()
	defer gContractLock.Unlock()
	if v, has := gContractNameMap[ClassID]; has {
		if name != v {
			return 0, errors.WithStack(ErrExistContractType)
		}
		return ClassID, nil
	}
	gContractNameMap[ClassID] = name
	gContractTypeMap[ClassID] = rt
	return ClassID, nil
}

// MustRegisterContractType panics when the class id collides
func MustRegisterContractType(cont Contract) uint64 {
	ClassID, err := RegisterContractType(cont)
	if err != nil {
		panic(err)
	}
	return ClassID
}

// CreateContract instantiates the contract of the define
func CreateContract(cd *ContractDefine) (Contract, error) {
	gContractLock.RLock()
	rt, has := gContractTypeMap[cd.ClassID]
	gContractLock.RUnlock()
	if !has {
		return nil, errors.WithStack(ErrInvalidClassID)
	}
	cont := reflect.New(rt).Interface().(Contract)
	cont.Init(cd.Address, cd.Owner)
	return cont, nil
}

// IsValidClassID checks that the class is registered
func IsValidClassID(ClassID uint64) bool {
	gContractLock.RLock()
	defer gContractLock.RUnlock()
	_, has := gContractTypeMap[ClassID]
	return has
}

// ContractName returns pkgPath.TypeName of the class
func ContractName(ClassID uint64) string {
	gContractLock.RLock()
	defer gContractLock.RUnlock()
	return gContractNameMap[ClassID]
}
