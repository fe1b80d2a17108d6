package chain

import (
	"bytes"
	"log"
	"math/big"
	"sort"
	"sync"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/bin"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/meverselabs/dmcexchange/core/types"
	"github.com/pkg/errors"
)

// DeployMethod is the method of the transaction to the zero address that deploys a contract
// its arguments are the class id and the construction bytes
const DeployMethod = "Deploy"

// Chain executes signed transactions one by one on top of the store
// Call holds the read lock so it never sees a half stored transaction
type Chain struct {
	sync.RWMutex
	isInit     bool
	store      *Store
	services   []types.Service
	serviceMap map[string]types.Service
	closeLock  sync.RWMutex
	isClose    bool
}

// NewChain returns a Chain
func NewChain(store *Store) *Chain {
	return &Chain{
		store:      store,
		services:   []types.Service{},
		serviceMap: map[string]types.Service{},
	}
}

// Init stores the genesis context data or checks it against the stored one
func (cn *Chain) Init(genesisContextData *types.ContextData) error {
	cn.Lock()
	defer cn.Unlock()

	genHash := GenesisHash(cn.store.ChainID(), genesisContextData)
	if h, err := cn.store.GenesisHash(); err == nil {
		if h != genHash {
			return errors.WithStack(ErrInvalidGenesisHash)
		}
	} else if err := cn.store.StoreGenesis(genHash, genesisContextData); err != nil {
		return err
	}
	log.Println("Chain loaded", cn.store.Height(), genHash.String())

	cn.isInit = true
	return nil
}

// Close terminates the chain and the store
func (cn *Chain) Close() {
	cn.closeLock.Lock()
	defer cn.closeLock.Unlock()

	cn.Lock()
	defer cn.Unlock()

	cn.isClose = true
	cn.store.Close()
}

// MustAddService adds the service and panics when the name is already used
func (cn *Chain) MustAddService(s types.Service) {
	if err := cn.AddService(s); err != nil {
		panic(err)
	}
}

// AddService adds the service that is notified of executed transactions
func (cn *Chain) AddService(s types.Service) error {
	cn.Lock()
	defer cn.Unlock()

	if _, has := cn.serviceMap[s.Name()]; has {
		return errors.Wrap(ErrExistServiceName, s.Name())
	}
	cn.services = append(cn.services, s)
	cn.serviceMap[s.Name()] = s
	return nil
}

// ServiceByName returns the service by the name
func (cn *Chain) ServiceByName(name string) (types.Service, error) {
	cn.RLock()
	defer cn.RUnlock()

	s, has := cn.serviceMap[name]
	if !has {
		return nil, errors.Wrap(ErrNotExistService, name)
	}
	return s, nil
}

// Store returns the store of the chain
func (cn *Chain) Store() *Store {
	return cn.store
}

// ChainID returns the id of the chain
func (cn *Chain) ChainID() *big.Int {
	return cn.store.ChainID()
}

// Height returns the number of the executed transactions
func (cn *Chain) Height() uint32 {
	return cn.store.Height()
}

// Seq returns the sequence of the last transaction of the address
func (cn *Chain) Seq(addr common.Address) uint64 {
	return cn.store.AddrSeq(addr)
}

// Receipt returns the receipt of the transaction
func (cn *Chain) Receipt(TxHash hash.Hash256) (*types.Receipt, error) {
	return cn.store.Receipt(TxHash)
}

// NewContext returns a context on top of the stored state
func (cn *Chain) NewContext() *types.Context {
	return types.NewContext(cn.store)
}

// Call executes the method on a fresh context and discards every change
func (cn *Chain) Call(from common.Address, to common.Address, method string, args []interface{}) ([]interface{}, error) {
	cn.closeLock.RLock()
	defer cn.closeLock.RUnlock()
	if cn.isClose {
		return nil, errors.WithStack(ErrChainClosed)
	}

	cn.RLock()
	defer cn.RUnlock()

	ctx := cn.NewContext()
	sn := ctx.Snapshot()
	defer ctx.Revert(sn)

	cont, err := ctx.Contract(to)
	if err != nil {
		return nil, err
	}
	cc := ctx.ContractContext(cont, from)
	intr := types.NewInteractor(ctx)
	cc.Exec = intr.Exec
	return intr.Exec(cc, to, method, args)
}

// ExecuteTransaction executes the signed transaction and stores its receipt
// a failed transaction still advances the sequence of the sender and stores a failed receipt
// without any state change, the error of the execution is returned with the receipt
func (cn *Chain) ExecuteTransaction(tx *types.Transaction, sig common.Signature) (*types.Receipt, error) {
	cn.closeLock.RLock()
	defer cn.closeLock.RUnlock()
	if cn.isClose {
		return nil, errors.WithStack(ErrChainClosed)
	}

	cn.Lock()
	defer cn.Unlock()

	if !cn.isInit {
		return nil, errors.WithStack(ErrNotInitialized)
	}
	if tx.ChainID == nil || tx.ChainID.Cmp(cn.store.ChainID()) != 0 {
		return nil, errors.WithStack(types.ErrInvalidChainID)
	}
	from, err := tx.Sender(sig)
	if err != nil {
		return nil, err
	}
	TxHash := tx.Hash()
	if _, err := cn.store.Receipt(TxHash); err == nil {
		return nil, errors.WithStack(ErrExistTransaction)
	}

	ctx := cn.NewContext()
	if tx.Seq != ctx.AddrSeq(from)+1 {
		return nil, errors.Wrapf(types.ErrInvalidSequence, "seq %v want %v", tx.Seq, ctx.AddrSeq(from)+1)
	}
	ctx.AddAddrSeq(from)

	receipt := &types.Receipt{
		TxHash: TxHash,
		Height: ctx.Height(),
		From:   from,
		To:     tx.To,
		Method: tx.Method,
	}
	sn := ctx.Snapshot()
	results, execErr := cn.executeOnContext(ctx, from, tx)
	if execErr == nil {
		receipt.Result, execErr = bin.TypeWriteAll(results...)
	}
	if execErr != nil {
		ctx.Revert(sn)
		receipt.Status = types.ReceiptStatusFailed
		receipt.Err = execErr.Error()
	} else {
		ctx.Commit(sn)
		receipt.Status = types.ReceiptStatusSuccessful
		receipt.Logs = ctx.Logs()
	}
	for i, l := range receipt.Logs {
		l.TxHash = TxHash
		l.BlockNumber = uint64(receipt.Height)
		l.Index = uint(i)
	}

	if err := cn.store.StoreTransaction(ctx.Top(), receipt); err != nil {
		return nil, err
	}
	for _, s := range cn.services {
		if err := s.OnTransactionExecuted(tx, receipt); err != nil {
			log.Println("[service]", s.Name(), err)
		}
	}
	return receipt, execErr
}

func (cn *Chain) executeOnContext(ctx *types.Context, from common.Address, tx *types.Transaction) ([]interface{}, error) {
	args, err := tx.DecodeArgs()
	if err != nil {
		return nil, err
	}
	if tx.To == common.ZeroAddr {
		if tx.Method != DeployMethod {
			return nil, errors.Wrap(ErrUnknownDeployMethod, tx.Method)
		}
		if len(args) != 2 {
			return nil, errors.WithStack(types.ErrInvalidArgument)
		}
		ClassID, ok := args[0].(uint64)
		if !ok {
			return nil, errors.WithStack(types.ErrInvalidArgument)
		}
		bs, ok := args[1].([]byte)
		if !ok {
			return nil, errors.WithStack(types.ErrInvalidArgument)
		}
		cont, err := ctx.DeployContract(from, ClassID, bs)
		if err != nil {
			return nil, err
		}
		return []interface{}{cont.Address()}, nil
	}
	cont, err := ctx.Contract(tx.To)
	if err != nil {
		return nil, err
	}
	cc := ctx.ContractContext(cont, from)
	intr := types.NewInteractor(ctx)
	cc.Exec = intr.Exec
	return intr.Exec(cc, tx.To, tx.Method, args)
}

// GenesisHash returns the hash of the chain id and the sorted genesis state
func GenesisHash(ChainID *big.Int, ctd *types.ContextData) hash.Hash256 {
	var buffer bytes.Buffer
	if ChainID != nil {
		buffer.Write(ChainID.Bytes())
	}

	conts := make([]common.Address, 0, len(ctd.ContractDefineMap))
	for addr := range ctd.ContractDefineMap {
		conts = append(conts, addr)
	}
	sortAddresses(conts)
	for _, addr := range conts {
		ctd.ContractDefineMap[addr].WriteTo(&buffer)
	}

	keys := make([]string, 0, len(ctd.DataMap))
	for key := range ctd.DataMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		bin.WriteString(&buffer, key)
		bin.WriteBytes(&buffer, ctd.DataMap[key])
	}
	return hash.Hash(buffer.Bytes())
}

func sortAddresses(as []common.Address) {
	sort.Slice(as, func(i, j int) bool {
		return bytes.Compare(as[i][:], as[j][:]) < 0
	})
}
