package util

import (
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/core/types"
	"github.com/pkg/errors"
)

var ErrInvalidResult = errors.New("invalid result")

func GetCC(ctx *types.Context, contAddr common.Address, user common.Address) (*types.ContractContext, error) {
	cont, err := ctx.Contract(contAddr)
	if err != nil {
		return nil, err
	}
	cc := ctx.ContractContext(cont, user)
	intr := types.NewInteractor(ctx)
	cc.Exec = intr.Exec
	return cc, nil
}

func Exec(ctx *types.Context, user common.Address, contAddr common.Address, methodName string, args []interface{}) ([]interface{}, error) {
	cc, err := GetCC(ctx, contAddr, user)
	if err != nil {
		return nil, err
	}
	return cc.Exec(cc, contAddr, methodName, args)
}

// ExecWithLogs executes the method and returns the logs it emitted
func ExecWithLogs(ctx *types.Context, user common.Address, contAddr common.Address, methodName string, args []interface{}) ([]interface{}, []*Log, error) {
	before := len(ctx.Logs())
	is, err := Exec(ctx, user, contAddr, methodName, args)
	if err != nil {
		return nil, nil, err
	}
	return is, wrapLogs(ctx.Logs()[before:]), nil
}

func ViewAmount(ctx *types.Context, contAddr common.Address, methodName string, args ...interface{}) (*amount.Amount, error) {
	is, err := Exec(ctx, ZeroAddress, contAddr, methodName, args)
	if err != nil {
		return nil, err
	}
	if len(is) != 1 {
		return nil, errors.WithStack(ErrInvalidResult)
	}
	am, ok := is[0].(*amount.Amount)
	if !ok {
		return nil, errors.WithStack(ErrInvalidResult)
	}
	return am, nil
}

func ViewAddress(ctx *types.Context, contAddr common.Address, methodName string, args ...interface{}) (common.Address, error) {
	is, err := Exec(ctx, ZeroAddress, contAddr, methodName, args)
	if err != nil {
		return ZeroAddress, err
	}
	if len(is) != 1 {
		return ZeroAddress, errors.WithStack(ErrInvalidResult)
	}
	addr, ok := is[0].(common.Address)
	if !ok {
		return ZeroAddress, errors.WithStack(ErrInvalidResult)
	}
	return addr, nil
}

func ViewBool(ctx *types.Context, contAddr common.Address, methodName string, args ...interface{}) (bool, error) {
	is, err := Exec(ctx, ZeroAddress, contAddr, methodName, args)
	if err != nil {
		return false, err
	}
	if len(is) != 1 {
		return false, errors.WithStack(ErrInvalidResult)
	}
	v, ok := is[0].(bool)
	if !ok {
		return false, errors.WithStack(ErrInvalidResult)
	}
	return v, nil
}
