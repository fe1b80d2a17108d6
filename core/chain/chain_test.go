package chain

import (
	"bytes"
	"math/big"
	"sync"
	"testing"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/bin"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/meverselabs/dmcexchange/common/key"
	"github.com/meverselabs/dmcexchange/core/backend"
	_ "github.com/meverselabs/dmcexchange/core/backend/leveldb_driver"
	_ "github.com/meverselabs/dmcexchange/core/backend/memory_driver"
	"github.com/meverselabs/dmcexchange/core/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTooLarge = errors.New("too large")

type noteContract struct {
	addr   common.Address
	master common.Address
}

func (cont *noteContract) Address() common.Address { return cont.addr }
func (cont *noteContract) Master() common.Address  { return cont.master }
func (cont *noteContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}
func (cont *noteContract) OnCreate(cc *types.ContractContext, Args []byte) error { return nil }
func (cont *noteContract) Front() interface{}                                    { return &noteFront{} }

type noteFront struct{}

func (f *noteFront) Set(cc *types.ContractContext, v uint64) error {
	cc.SetAccountData(cc.From(), []byte("v"), bin.Uint64Bytes(v))
	cc.AddLog([]hash.Hash256{hash.Hash([]byte("Set"))}, bin.Uint64Bytes(v))
	if v > 1000 {
		return errTooLarge
	}
	return nil
}

func (f *noteFront) SetPair(cc *types.ContractContext, v uint64) error {
	cc.SetAccountData(cc.From(), []byte("a"), bin.Uint64Bytes(v))
	cc.SetAccountData(cc.From(), []byte("b"), bin.Uint64Bytes(v))
	return nil
}

func (f *noteFront) PairMatched(cc *types.ContractContext, addr common.Address) bool {
	return bytes.Equal(cc.AccountData(addr, []byte("a")), cc.AccountData(addr, []byte("b")))
}

func (f *noteFront) Get(cc *types.ContractContext, addr common.Address) uint64 {
	bs := cc.AccountData(addr, []byte("v"))
	if len(bs) != 8 {
		return 0
	}
	return bin.Uint64(bs)
}

var noteClassID = types.MustRegisterContractType(&noteContract{})

var testChainID = big.NewInt(0xFFFF)

func genesis(t *testing.T, owner common.Address) (*types.Context, common.Address) {
	ctx := types.NewContext(types.NewEmptyLoader(testChainID))
	cont, err := ctx.DeployContract(owner, noteClassID, nil)
	require.NoError(t, err)
	return ctx, cont.Address()
}

func openChain(t *testing.T, driver string, path string, owner common.Address) (*Chain, common.Address) {
	db, err := backend.Create(driver, path)
	require.NoError(t, err)
	st, err := NewStore(db, testChainID)
	require.NoError(t, err)
	cn := NewChain(st)
	ctx, addr := genesis(t, owner)
	require.NoError(t, cn.Init(ctx.Top()))
	return cn, addr
}

func signedTx(t *testing.T, k key.Key, seq uint64, to common.Address, method string, args ...interface{}) (*types.Transaction, common.Signature) {
	tx, err := types.NewTransaction(testChainID, seq, seq, to, method, args...)
	require.NoError(t, err)
	sig, err := k.Sign(tx.Hash())
	require.NoError(t, err)
	return tx, sig
}

type recordService struct {
	types.ServiceBase
	receipts []*types.Receipt
}

func (s *recordService) Name() string { return "record" }
func (s *recordService) OnTransactionExecuted(tx *types.Transaction, receipt *types.Receipt) error {
	s.receipts = append(s.receipts, receipt)
	return nil
}

func TestExecuteTransaction(t *testing.T) {
	k, err := key.NewMemoryKey()
	require.NoError(t, err)
	cn, addr := openChain(t, "memory", "", k.Address())
	defer cn.Close()
	rs := &recordService{}
	cn.MustAddService(rs)

	tx, sig := signedTx(t, k, 1, addr, "set", uint64(7))
	rc, err := cn.ExecuteTransaction(tx, sig)
	require.NoError(t, err)
	assert.True(t, rc.Succeeded())
	assert.Equal(t, uint32(1), rc.Height)
	require.Len(t, rc.Logs, 1)
	assert.Equal(t, tx.Hash(), rc.Logs[0].TxHash)
	assert.Equal(t, uint64(1), cn.Seq(k.Address()))

	rets, err := cn.Call(k.Address(), addr, "Get", []interface{}{k.Address()})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), rets[0])

	_, err = cn.ExecuteTransaction(tx, sig)
	assert.Equal(t, ErrExistTransaction, errors.Cause(err))

	tx, sig = signedTx(t, k, 5, addr, "set", uint64(8))
	_, err = cn.ExecuteTransaction(tx, sig)
	assert.Equal(t, types.ErrInvalidSequence, errors.Cause(err))

	tx, sig = signedTx(t, k, 2, addr, "set", uint64(2000))
	rc, err = cn.ExecuteTransaction(tx, sig)
	assert.Equal(t, errTooLarge, err)
	require.NotNil(t, rc)
	assert.False(t, rc.Succeeded())
	assert.Equal(t, "too large", rc.Err)
	assert.Empty(t, rc.Logs)
	assert.Equal(t, uint64(2), cn.Seq(k.Address()))
	assert.Equal(t, uint32(2), cn.Height())

	rets, err = cn.Call(k.Address(), addr, "Get", []interface{}{k.Address()})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), rets[0])

	stored, err := cn.Receipt(tx.Hash())
	require.NoError(t, err)
	assert.Equal(t, "too large", stored.Err)
	assert.Len(t, rs.receipts, 2)
}

func TestDeployTransaction(t *testing.T) {
	k, err := key.NewMemoryKey()
	require.NoError(t, err)
	cn, _ := openChain(t, "memory", "", common.HexToAddress("0x1"))
	defer cn.Close()

	tx, sig := signedTx(t, k, 1, common.ZeroAddr, DeployMethod, noteClassID, []byte{})
	rc, err := cn.ExecuteTransaction(tx, sig)
	require.NoError(t, err)
	rets, err := rc.Results()
	require.NoError(t, err)
	addr := rets[0].(common.Address)
	assert.True(t, cn.Store().IsContract(addr))

	cd, err := cn.Store().ContractDefine(addr)
	require.NoError(t, err)
	assert.Equal(t, k.Address(), cd.Owner)
	assert.Equal(t, noteClassID, cd.ClassID)
}

func TestChainReopen(t *testing.T) {
	dir := t.TempDir()
	k, err := key.NewMemoryKey()
	require.NoError(t, err)

	cn, addr := openChain(t, "leveldb", dir, k.Address())
	tx, sig := signedTx(t, k, 1, addr, "Set", uint64(11))
	_, err = cn.ExecuteTransaction(tx, sig)
	require.NoError(t, err)
	cn.Close()

	_, err = cn.ExecuteTransaction(tx, sig)
	assert.Equal(t, ErrChainClosed, errors.Cause(err))

	cn, addr2 := openChain(t, "leveldb", dir, k.Address())
	defer cn.Close()
	assert.Equal(t, addr, addr2)
	assert.Equal(t, uint32(1), cn.Height())
	assert.Equal(t, uint64(1), cn.Seq(k.Address()))
	h, err := cn.Store().TxHash(1)
	require.NoError(t, err)
	assert.Equal(t, tx.Hash(), h)

	rets, err := cn.Call(common.ZeroAddr, addr, "Get", []interface{}{k.Address()})
	require.NoError(t, err)
	assert.Equal(t, uint64(11), rets[0])
}

func TestInitInvalidGenesis(t *testing.T) {
	db, err := backend.Create("memory", "")
	require.NoError(t, err)
	st, err := NewStore(db, testChainID)
	require.NoError(t, err)

	cn := NewChain(st)
	ctx, _ := genesis(t, common.HexToAddress("0x1"))
	require.NoError(t, cn.Init(ctx.Top()))

	other, _ := genesis(t, common.HexToAddress("0x2"))
	assert.Equal(t, ErrInvalidGenesisHash, errors.Cause(NewChain(st).Init(other.Top())))
}

func TestConcurrentReadDuringExecution(t *testing.T) {
	k, err := key.NewMemoryKey()
	require.NoError(t, err)
	cn, addr := openChain(t, "memory", "", k.Address())
	defer cn.Close()
	rs := &recordService{}
	cn.MustAddService(rs)

	const count = 50
	var wg sync.WaitGroup
	errCh := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := uint32(0)
			for j := 0; j < 200; j++ {
				h := cn.Height()
				if h < last || h > count {
					errCh <- errors.Errorf("height %v after %v", h, last)
					return
				}
				last = h
				if _, err := cn.ServiceByName(rs.Name()); err != nil {
					errCh <- err
					return
				}
				rets, err := cn.Call(k.Address(), addr, "PairMatched", []interface{}{k.Address()})
				if err != nil {
					errCh <- err
					return
				}
				if matched, ok := rets[0].(bool); !ok || !matched {
					errCh <- errors.New("pair is not matched")
					return
				}
			}
		}()
	}
	for i := 1; i <= count; i++ {
		tx, sig := signedTx(t, k, uint64(i), addr, "SetPair", uint64(i))
		rc, err := cn.ExecuteTransaction(tx, sig)
		require.NoError(t, err)
		require.True(t, rc.Succeeded())
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		assert.NoError(t, err)
	}
	assert.Equal(t, uint32(count), cn.Height())
	assert.Len(t, rs.receipts, count)
}
