package types

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/pkg/errors"
)

var (
	errType = reflect.TypeOf((*error)(nil)).Elem()
	ccType  = reflect.TypeOf(&ContractContext{})
)

type IInteractor interface {
	Exec(Cc *ContractContext, Addr common.Address, MethodName string, Args []interface{}) ([]interface{}, error)
}

type ExecFunc = func(Cc *ContractContext, Addr common.Address, MethodName string, Args []interface{}) ([]interface{}, error)

type interactor struct {
	ctx *Context
}

// NewInteractor returns the executor that dispatches calls to the contract fronts of the context
func NewInteractor(ctx *Context) IInteractor {
	return &interactor{
		ctx: ctx,
	}
}

// Exec calls the method of the contract at Addr
// a call from another contract sees that contract as From
func (i *interactor) Exec(Cc *ContractContext, Addr common.Address, MethodName string, Args []interface{}) ([]interface{}, error) {
	if MethodName == "" {
		return nil, errors.WithStack(ErrMethodNotGiven)
	}
	if !i.ctx.IsContract(Addr) {
		return nil, errors.Wrap(ErrNotExistContract, Addr.String())
	}
	cont, err := i.ctx.Contract(Addr)
	if err != nil {
		return nil, err
	}
	MethodName = strings.ToUpper(MethodName[:1]) + MethodName[1:]
	ecc := i.currentContractContext(Cc, Addr)
	return _exec(ecc, cont, MethodName, Args)
}

func (i *interactor) currentContractContext(Cc *ContractContext, Addr common.Address) *ContractContext {
	if Cc.cont == Addr {
		return Cc
	}
	return &ContractContext{
		cont: Addr,
		from: Cc.cont,
		ctx:  i.ctx,
		Exec: i.Exec,
	}
}

// _exec runs the method in its own snapshot, the snapshot is reverted when the method fails or panics
func _exec(ecc *ContractContext, cont Contract, MethodName string, Args []interface{}) ([]interface{}, error) {
	rMethod, err := methodByName(cont, MethodName)
	if err != nil {
		return nil, err
	}
	in, err := ContractInputsConv(Args, rMethod)
	if err != nil {
		return nil, err
	}
	in = append([]reflect.Value{reflect.ValueOf(ecc)}, in...)

	sn := ecc.ctx.Snapshot()
	vs, err := func() (vs []reflect.Value, err error) {
		defer func() {
			if v := recover(); v != nil {
				err = errors.Wrap(ErrPanicInContractCall, fmt.Sprintf("method(%v) of contract(%v): %v", MethodName, cont.Address().String(), v))
			}
		}()
		return rMethod.Call(in), nil
	}()
	if err != nil {
		ecc.ctx.Revert(sn)
		return nil, err
	}
	result, err := getResults(rMethod.Type(), vs)
	if err != nil {
		ecc.ctx.Revert(sn)
		return nil, err
	}
	ecc.ctx.Commit(sn)
	return result, nil
}

func methodByName(cont Contract, MethodName string) (reflect.Value, error) {
	front := cont.Front()
	vo := reflect.ValueOf(front)
	if !vo.IsValid() || (vo.Kind() == reflect.Ptr && vo.IsNil()) {
		return reflect.Value{}, errors.Wrap(ErrNotExistContract, cont.Address().String())
	}
	method := vo.MethodByName(MethodName)
	if !method.IsValid() {
		return reflect.Value{}, errors.Wrapf(ErrMethodNotExist, "%v of %v", MethodName, cont.Address().String())
	}
	mt := method.Type()
	if mt.NumIn() < 1 || !ccType.AssignableTo(mt.In(0)) {
		return reflect.Value{}, errors.Wrapf(ErrMethodNotExist, "%v of %v", MethodName, cont.Address().String())
	}
	return method, nil
}

// getResults splits the error out of the returned values
func getResults(mType reflect.Type, vs []reflect.Value) ([]interface{}, error) {
	result := []interface{}{}
	var err error
	for i, v := range vs {
		if mType.Out(i) == errType {
			if !v.IsNil() {
				err = v.Interface().(error)
			}
			continue
		}
		result = append(result, v.Interface())
	}
	return result, err
}
