package util

import (
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/bin"
	"github.com/meverselabs/dmcexchange/contract/dmc"
	"github.com/meverselabs/dmcexchange/contract/exchange"
	"github.com/meverselabs/dmcexchange/core/types"
)

// DeployDMC deploys the DMC token with the cap
func DeployDMC(ctx *types.Context, classID uint64, deployer common.Address, cap *amount.Amount) (common.Address, error) {
	bs, _, err := bin.WriterToBytes(&dmc.DMCContractConstruction{Cap: cap})
	if err != nil {
		return ZeroAddress, err
	}
	cont, err := ctx.DeployContract(deployer, classID, bs)
	if err != nil {
		return ZeroAddress, err
	}
	return cont.Address(), nil
}

// DeployGWT deploys the GWT token with the default name
func DeployGWT(ctx *types.Context, classID uint64, deployer common.Address) (common.Address, error) {
	cont, err := ctx.DeployContract(deployer, classID, nil)
	if err != nil {
		return ZeroAddress, err
	}
	return cont.Address(), nil
}

// DeployExchange deploys the exchange initialized with the tokens
func DeployExchange(ctx *types.Context, classID uint64, deployer common.Address, DMC common.Address, GWT common.Address) (common.Address, error) {
	bs, _, err := bin.WriterToBytes(&exchange.ExchangeContractConstruction{DMC: DMC, GWT: GWT})
	if err != nil {
		return ZeroAddress, err
	}
	cont, err := ctx.DeployContract(deployer, classID, bs)
	if err != nil {
		return ZeroAddress, err
	}
	return cont.Address(), nil
}

// token.BalanceOf(from)
func TokenBalanceOf(ctx *types.Context, token, from common.Address) (*amount.Amount, error) {
	return ViewAmount(ctx, token, "BalanceOf", from)
}

// token.TotalSupply()
func TokenTotalSupply(ctx *types.Context, token common.Address) (*amount.Amount, error) {
	return ViewAmount(ctx, token, "TotalSupply")
}

// token.Allowance(owner, spender)
func TokenAllowance(ctx *types.Context, token, owner, spender common.Address) (*amount.Amount, error) {
	return ViewAmount(ctx, token, "Allowance", owner, spender)
}

// token.Approve(spender, am)
func TokenApprove(ctx *types.Context, signer, token, spender common.Address, am *amount.Amount) error {
	_, err := Exec(ctx, signer, token, "Approve", []interface{}{spender, am})
	return err
}

// token.Transfer(to, am)
func SafeTransfer(ctx *types.Context, signer, token, to common.Address, am *amount.Amount) error {
	_, err := Exec(ctx, signer, token, "Transfer", []interface{}{to, am})
	return err
}

// token.TransferFrom(from, to, am)
func SafeTransferFrom(ctx *types.Context, signer, token, from, to common.Address, am *amount.Amount) error {
	_, err := Exec(ctx, signer, token, "TransferFrom", []interface{}{from, to, am})
	return err
}

// token.EnableMinter(addrs)
func EnableMinter(ctx *types.Context, owner, token common.Address, addrs ...common.Address) error {
	_, err := Exec(ctx, owner, token, "EnableMinter", []interface{}{addrs})
	return err
}
