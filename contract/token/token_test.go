package token

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/bin"
	"github.com/meverselabs/dmcexchange/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tokenClassID = types.MustRegisterContractType(&TokenContract{})

	owner = common.HexToAddress("0x1000000000000000000000000000000000000001")
	alice = common.HexToAddress("0x2000000000000000000000000000000000000002")
	bob   = common.HexToAddress("0x3000000000000000000000000000000000000003")
)

func deployToken(t *testing.T, data *TokenContractConstruction) (*types.Context, common.Address) {
	ctx := types.NewContext(types.NewEmptyLoader(big.NewInt(1)))
	bs, _, err := bin.WriterToBytes(data)
	require.NoError(t, err)
	cont, err := ctx.DeployContract(owner, tokenClassID, bs)
	require.NoError(t, err)
	return ctx, cont.Address()
}

func exec(ctx *types.Context, from common.Address, addr common.Address, method string, args ...interface{}) ([]interface{}, error) {
	cont, err := ctx.Contract(addr)
	if err != nil {
		return nil, err
	}
	cc := ctx.ContractContext(cont, from)
	intr := types.NewInteractor(ctx)
	cc.Exec = intr.Exec
	return intr.Exec(cc, addr, method, args)
}

func balanceOf(t *testing.T, ctx *types.Context, addr common.Address, user common.Address) string {
	is, err := exec(ctx, user, addr, "BalanceOf", user)
	require.NoError(t, err)
	return is[0].(*amount.Amount).String()
}

func TestTokenConstruction(t *testing.T) {
	data := &TokenContractConstruction{
		Name:   "Test Token",
		Symbol: "TEST",
		Cap:    amount.NewAmount(100, 0),
		InitialSupplyMap: map[common.Address]*amount.Amount{
			alice: amount.NewAmount(10, 0),
			bob:   amount.NewAmount(5, 0),
		},
	}
	bs, _, err := bin.WriterToBytes(data)
	require.NoError(t, err)
	decoded := &TokenContractConstruction{}
	_, err = decoded.ReadFrom(bytes.NewReader(bs))
	require.NoError(t, err)
	assert.Equal(t, data.Name, decoded.Name)
	assert.Equal(t, data.Cap.String(), decoded.Cap.String())
	assert.Len(t, decoded.InitialSupplyMap, 2)

	ctx, addr := deployToken(t, data)
	is, err := exec(ctx, alice, addr, "Name")
	require.NoError(t, err)
	assert.Equal(t, "Test Token", is[0])
	is, err = exec(ctx, alice, addr, "TotalSupply")
	require.NoError(t, err)
	assert.Equal(t, amount.NewAmount(15, 0).String(), is[0].(*amount.Amount).String())
	assert.Equal(t, amount.NewAmount(10, 0).String(), balanceOf(t, ctx, addr, alice))
	assert.Len(t, ctx.Logs(), 2)
}

func TestTokenTransfer(t *testing.T) {
	ctx, addr := deployToken(t, &TokenContractConstruction{
		Name:             "Test Token",
		Symbol:           "TEST",
		InitialSupplyMap: map[common.Address]*amount.Amount{alice: amount.NewAmount(10, 0)},
	})

	before := len(ctx.Logs())
	is, err := exec(ctx, alice, addr, "Transfer", bob, amount.NewAmount(3, 0))
	require.NoError(t, err)
	assert.Equal(t, true, is[0])
	assert.Equal(t, amount.NewAmount(7, 0).String(), balanceOf(t, ctx, addr, alice))
	assert.Equal(t, amount.NewAmount(3, 0).String(), balanceOf(t, ctx, addr, bob))

	logs := ctx.Logs()[before:]
	require.Len(t, logs, 1)
	ev, err := ParseTransferLog(logs[0])
	require.NoError(t, err)
	assert.Equal(t, alice, ev.From)
	assert.Equal(t, bob, ev.To)
	assert.Equal(t, addr, ev.Token)
	assert.Equal(t, amount.NewAmount(3, 0).String(), ev.Amount.String())

	_, err = exec(ctx, alice, addr, "Transfer", bob, amount.NewAmount(8, 0))
	assert.Equal(t, ErrInsufficientBalance, err)
	_, err = exec(ctx, alice, addr, "Transfer", common.ZeroAddr, amount.NewAmount(1, 0))
	assert.EqualError(t, err, "transfer to the zero address")
	assert.Equal(t, amount.NewAmount(7, 0).String(), balanceOf(t, ctx, addr, alice))
}

func TestTokenAllowance(t *testing.T) {
	ctx, addr := deployToken(t, &TokenContractConstruction{
		Name:             "Test Token",
		Symbol:           "TEST",
		InitialSupplyMap: map[common.Address]*amount.Amount{alice: amount.NewAmount(10, 0)},
	})

	_, err := exec(ctx, bob, addr, "TransferFrom", alice, bob, amount.NewAmount(1, 0))
	assert.Equal(t, ErrInsufficientAllowance, err)

	before := len(ctx.Logs())
	_, err = exec(ctx, alice, addr, "Approve", bob, amount.NewAmount(4, 0))
	require.NoError(t, err)
	ev, err := ParseApprovalLog(ctx.Logs()[before])
	require.NoError(t, err)
	assert.Equal(t, alice, ev.From)
	assert.Equal(t, bob, ev.To)

	_, err = exec(ctx, bob, addr, "TransferFrom", alice, bob, amount.NewAmount(3, 0))
	require.NoError(t, err)
	is, err := exec(ctx, bob, addr, "Allowance", alice, bob)
	require.NoError(t, err)
	assert.Equal(t, amount.NewAmount(1, 0).String(), is[0].(*amount.Amount).String())

	_, err = exec(ctx, bob, addr, "BurnFrom", alice, amount.NewAmount(2, 0))
	assert.Equal(t, ErrInsufficientAllowance, err)
	_, err = exec(ctx, bob, addr, "BurnFrom", alice, amount.NewAmount(1, 0))
	require.NoError(t, err)
	is, err = exec(ctx, bob, addr, "TotalSupply")
	require.NoError(t, err)
	assert.Equal(t, amount.NewAmount(9, 0).String(), is[0].(*amount.Amount).String())
	assert.Equal(t, amount.NewAmount(6, 0).String(), balanceOf(t, ctx, addr, alice))

	_, err = exec(ctx, alice, addr, "Approve", common.ZeroAddr, amount.NewAmount(1, 0))
	assert.Equal(t, ErrApproveToZero, err)
}

func TestTokenMinter(t *testing.T) {
	ctx, addr := deployToken(t, &TokenContractConstruction{
		Name:   "Test Token",
		Symbol: "TEST",
		Cap:    amount.NewAmount(10, 0),
	})

	_, err := exec(ctx, owner, addr, "Mint", alice, amount.NewAmount(1, 0))
	assert.EqualError(t, err, "mint not allowed")
	_, err = exec(ctx, alice, addr, "EnableMinter", []common.Address{alice})
	assert.Equal(t, ErrNotOwner, err)

	_, err = exec(ctx, owner, addr, "EnableMinter", []common.Address{alice})
	require.NoError(t, err)
	is, err := exec(ctx, bob, addr, "IsMinter", alice)
	require.NoError(t, err)
	assert.Equal(t, true, is[0])

	_, err = exec(ctx, alice, addr, "Mint", bob, amount.NewAmount(10, 0))
	require.NoError(t, err)
	_, err = exec(ctx, alice, addr, "Mint", bob, amount.NewAmount(0, 1))
	assert.EqualError(t, err, "cap exceeded")

	_, err = exec(ctx, bob, addr, "Burn", amount.NewAmount(4, 0))
	require.NoError(t, err)
	_, err = exec(ctx, alice, addr, "Mint", bob, amount.NewAmount(4, 0))
	require.NoError(t, err)
	assert.Equal(t, amount.NewAmount(10, 0).String(), balanceOf(t, ctx, addr, bob))

	_, err = exec(ctx, owner, addr, "DisableMinter", []common.Address{alice})
	require.NoError(t, err)
	_, err = exec(ctx, alice, addr, "Mint", bob, amount.NewAmount(0, 1))
	assert.Equal(t, ErrMintNotAllowed, err)
}

func TestEnableMinterTwice(t *testing.T) {
	ctx, addr := deployToken(t, &TokenContractConstruction{
		Name:   "Test Token",
		Symbol: "TEST",
	})

	for i := 0; i < 2; i++ {
		_, err := exec(ctx, owner, addr, "EnableMinter", []common.Address{alice, alice})
		require.NoError(t, err)
		is, err := exec(ctx, bob, addr, "IsMinter", alice)
		require.NoError(t, err)
		assert.Equal(t, true, is[0])
	}
	assert.Equal(t, []byte{1}, ctx.Data(addr, alice, []byte{tagTokenMinter}))

	_, err := exec(ctx, owner, addr, "DisableMinter", []common.Address{alice})
	require.NoError(t, err)
	is, err := exec(ctx, bob, addr, "IsMinter", alice)
	require.NoError(t, err)
	assert.Equal(t, false, is[0])
	_, err = exec(ctx, alice, addr, "Mint", bob, amount.NewAmount(1, 0))
	assert.Equal(t, ErrMintNotAllowed, err)
}

func TestPackUint256s(t *testing.T) {
	data := PackUint256s(big.NewInt(1), big.NewInt(210))
	assert.Len(t, data, 64)
	vs, err := UnpackUint256s(data, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(210), vs[1].Int64())
	_, err = UnpackUint256s(data, 1)
	assert.Error(t, err)
}
