package types

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/bin"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/meverselabs/dmcexchange/common/key"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCounterLimit = errors.New("counter limit")

type counterContract struct {
	addr   common.Address
	master common.Address
}

func (cont *counterContract) Address() common.Address { return cont.addr }
func (cont *counterContract) Master() common.Address  { return cont.master }
func (cont *counterContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}
func (cont *counterContract) OnCreate(cc *ContractContext, Args []byte) error {
	cc.SetContractData([]byte("count"), bin.Uint64Bytes(10))
	return nil
}
func (cont *counterContract) Front() interface{} { return &counterFront{cont: cont} }

func (cont *counterContract) count(cc ContractLoader) uint64 {
	bs := cc.ContractData([]byte("count"))
	if len(bs) != 8 {
		return 0
	}
	return bin.Uint64(bs)
}

type counterFront struct {
	cont *counterContract
}

func (f *counterFront) Count(cc *ContractContext) uint64 {
	return f.cont.count(cc)
}

func (f *counterFront) Add(cc *ContractContext, n uint64) (uint64, error) {
	c := f.cont.count(cc) + n
	cc.SetContractData([]byte("count"), bin.Uint64Bytes(c))
	cc.AddLog([]hash.Hash256{hash.Hash([]byte("Add"))}, bin.Uint64Bytes(n))
	if c > 100 {
		return 0, errCounterLimit
	}
	return c, nil
}

func (f *counterFront) Caller(cc *ContractContext) common.Address {
	return cc.From()
}

func (f *counterFront) CallerOf(cc *ContractContext, other common.Address) (common.Address, error) {
	rets, err := cc.Exec(cc, other, "Caller", nil)
	if err != nil {
		return common.ZeroAddr, err
	}
	return rets[0].(common.Address), nil
}

func (f *counterFront) Crash(cc *ContractContext) {
	cc.SetContractData([]byte("count"), bin.Uint64Bytes(0))
	panic("crash")
}

type counterV2Contract struct {
	counterContract
}

func (cont *counterV2Contract) ProxiableID() string { return "counter" }

var (
	counterClassID   = MustRegisterContractType(&counterContract{})
	counterV2ClassID = MustRegisterContractType(&counterV2Contract{})
)

func deployCounter(t *testing.T, ctx *Context, owner common.Address) Contract {
	cont, err := ctx.DeployContract(owner, counterClassID, nil)
	require.NoError(t, err)
	return cont
}

func execCounter(ctx *Context, from common.Address, cont Contract, method string, args ...interface{}) ([]interface{}, error) {
	cc := ctx.ContractContext(cont, from)
	intr := NewInteractor(ctx)
	cc.Exec = intr.Exec
	return intr.Exec(cc, cont.Address(), method, args)
}

func TestContextSnapshot(t *testing.T) {
	ctx := NewEmptyContext()
	cont := common.HexToAddress("0x01")
	name := []byte("k")

	ctx.SetData(cont, common.ZeroAddr, name, []byte{1})
	sn := ctx.Snapshot()
	ctx.SetData(cont, common.ZeroAddr, name, []byte{2})
	sn2 := ctx.Snapshot()
	ctx.SetData(cont, common.ZeroAddr, name, nil)
	assert.Nil(t, ctx.Data(cont, common.ZeroAddr, name))

	ctx.Revert(sn2)
	assert.Equal(t, []byte{2}, ctx.Data(cont, common.ZeroAddr, name))
	ctx.Revert(sn)
	assert.Equal(t, []byte{1}, ctx.Data(cont, common.ZeroAddr, name))

	sn = ctx.Snapshot()
	ctx.SetData(cont, common.ZeroAddr, name, nil)
	ctx.Commit(sn)
	assert.Nil(t, ctx.Data(cont, common.ZeroAddr, name))
	assert.True(t, ctx.Top().DeletedDataMap[dataKey(cont, common.ZeroAddr, name)])
}

func TestContextDump(t *testing.T) {
	ctx := NewEmptyContext()
	deployCounter(t, ctx, common.HexToAddress("0x1000"))
	assert.Contains(t, ctx.Dump(), "ClassID")
}

func TestInteractorCommitAndRevert(t *testing.T) {
	ctx := NewEmptyContext()
	owner := common.HexToAddress("0x1000")
	cont := deployCounter(t, ctx, owner)

	rets, err := execCounter(ctx, owner, cont, "add", uint64(5))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{uint64(15)}, rets)
	assert.Len(t, ctx.Logs(), 1)

	_, err = execCounter(ctx, owner, cont, "Add", "100")
	assert.Equal(t, errCounterLimit, err)
	assert.Len(t, ctx.Logs(), 1)

	_, err = execCounter(ctx, owner, cont, "Crash")
	assert.Equal(t, ErrPanicInContractCall, errors.Cause(err))

	rets, err = execCounter(ctx, owner, cont, "Count")
	require.NoError(t, err)
	assert.Equal(t, uint64(15), rets[0])

	_, err = execCounter(ctx, owner, cont, "Missing")
	assert.Equal(t, ErrMethodNotExist, errors.Cause(err))
	_, err = execCounter(ctx, owner, cont, "Add")
	assert.Equal(t, ErrInvalidArgument, errors.Cause(err))
}

func TestInteractorNestedCaller(t *testing.T) {
	ctx := NewEmptyContext()
	owner := common.HexToAddress("0x1000")
	a := deployCounter(t, ctx, owner)
	b := deployCounter(t, ctx, owner)
	assert.NotEqual(t, a.Address(), b.Address())

	rets, err := execCounter(ctx, owner, a, "Caller")
	require.NoError(t, err)
	assert.Equal(t, owner, rets[0])

	rets, err = execCounter(ctx, owner, a, "CallerOf", b.Address().String())
	require.NoError(t, err)
	assert.Equal(t, a.Address(), rets[0])
}

func TestUpgradeContract(t *testing.T) {
	ctx := NewEmptyContext()
	owner := common.HexToAddress("0x1000")
	cont := deployCounter(t, ctx, owner)

	assert.Equal(t, ErrNotUpgradeable, errors.Cause(ctx.UpgradeContract(cont.Address(), counterClassID)))
	require.NoError(t, ctx.UpgradeContract(cont.Address(), counterV2ClassID))

	upgraded, err := ctx.Contract(cont.Address())
	require.NoError(t, err)
	_, ok := upgraded.(*counterV2Contract)
	assert.True(t, ok)

	rets, err := execCounter(ctx, owner, upgraded, "Count")
	require.NoError(t, err)
	assert.Equal(t, uint64(10), rets[0])
}

func TestTransactionSign(t *testing.T) {
	k, err := key.NewMemoryKey()
	require.NoError(t, err)

	tx, err := NewTransaction(big.NewInt(7), 1, 100, common.HexToAddress("0x01"), "Transfer", common.HexToAddress("0x02"), uint64(3))
	require.NoError(t, err)
	sig, err := k.Sign(tx.Hash())
	require.NoError(t, err)

	parsed, err := ParseTransaction(tx.String())
	require.NoError(t, err)
	assert.Equal(t, tx.Hash(), parsed.Hash())
	from, err := parsed.Sender(sig)
	require.NoError(t, err)
	assert.Equal(t, k.Address(), from)

	args, err := parsed.DecodeArgs()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{common.HexToAddress("0x02"), uint64(3)}, args)
}

func TestReceiptEncoding(t *testing.T) {
	ctx := NewEmptyContext()
	owner := common.HexToAddress("0x1000")
	cont := deployCounter(t, ctx, owner)
	_, err := execCounter(ctx, owner, cont, "Add", uint64(1))
	require.NoError(t, err)

	rc := &Receipt{
		TxHash: hash.Hash([]byte("tx")),
		Height: 3,
		Status: ReceiptStatusSuccessful,
		Logs:   ctx.Logs(),
	}
	var buffer bytes.Buffer
	_, err = rc.WriteTo(&buffer)
	require.NoError(t, err)

	var decoded Receipt
	_, err = decoded.ReadFrom(&buffer)
	require.NoError(t, err)
	assert.True(t, decoded.Succeeded())
	require.Len(t, decoded.Logs, 1)
	assert.Equal(t, cont.Address(), decoded.Logs[0].Address)
	assert.Equal(t, uint64(3), decoded.Logs[0].BlockNumber)
	assert.Equal(t, bin.Uint64Bytes(1), decoded.Logs[0].Data)
}
