package types

import (
	"math/big"

	"github.com/davecgh/go-spew/spew"
	etypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/bin"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/pkg/errors"
)

var tagDeployNonce = []byte{0xFF, 0x01}

// Context is an intermediate in-memory state using the context data stack between transactions
type Context struct {
	loader Loader
	cache  *contextCache
	stack  []*ContextData
}

// NewContext returns a Context
func NewContext(loader Loader) *Context {
	ctx := &Context{
		loader: loader,
		cache:  newContextCache(loader),
	}
	ctx.stack = []*ContextData{NewContextData(ctx.cache, nil)}
	return ctx
}

// NewEmptyContext returns a Context without any state
func NewEmptyContext() *Context {
	return NewContext(NewEmptyLoader(nil))
}

// ChainID returns the id of the chain
func (ctx *Context) ChainID() *big.Int {
	return ctx.loader.ChainID()
}

// Height returns the height that the context will be stored at
func (ctx *Context) Height() uint32 {
	return ctx.loader.Height() + 1
}

// Top returns the top snapshot
func (ctx *Context) Top() *ContextData {
	return ctx.stack[len(ctx.stack)-1]
}

// Snapshot push a snapshot and returns the snapshot number of it
func (ctx *Context) Snapshot() int {
	ctx.stack = append(ctx.stack, NewContextData(ctx.cache, ctx.Top()))
	return len(ctx.stack)
}

// Revert removes snapshots from the snapshot number
func (ctx *Context) Revert(sn int) {
	if sn < 2 {
		sn = 2
	}
	if len(ctx.stack) >= sn {
		ctx.stack = ctx.stack[:sn-1]
	}
}

// Commit merges snapshots from the snapshot number into their parents
func (ctx *Context) Commit(sn int) {
	if sn < 2 {
		sn = 2
	}
	for len(ctx.stack) >= sn {
		ctd := ctx.Top()
		ctx.stack = ctx.stack[:len(ctx.stack)-1]
		ctx.Top().merge(ctd)
	}
}

// AddrSeq returns the sequence of the target account
func (ctx *Context) AddrSeq(addr common.Address) uint64 {
	return ctx.Top().AddrSeq(addr)
}

// AddAddrSeq update the sequence of the target account
func (ctx *Context) AddAddrSeq(addr common.Address) {
	ctx.Top().AddAddrSeq(addr)
}

// IsContract returns is the contract
func (ctx *Context) IsContract(addr common.Address) bool {
	return ctx.Top().IsContract(addr)
}

// Contract returns the contract instance of the address
func (ctx *Context) Contract(addr common.Address) (Contract, error) {
	return ctx.Top().Contract(addr)
}

// ContractDefine returns the define of the contract
func (ctx *Context) ContractDefine(addr common.Address) (*ContractDefine, error) {
	return ctx.Top().ContractDefine(addr)
}

// Data returns the data from the top snapshot
func (ctx *Context) Data(cont common.Address, addr common.Address, name []byte) []byte {
	return ctx.Top().Data(cont, addr, name)
}

// SetData inserts the data to the top snapshot
func (ctx *Context) SetData(cont common.Address, addr common.Address, name []byte, value []byte) {
	ctx.Top().SetData(cont, addr, name, value)
}

// Logs returns the logs of the top snapshot
func (ctx *Context) Logs() []*etypes.Log {
	return ctx.Top().Logs
}

// ContractAddress returns the address of the next contract deployed by the owner
func (ctx *Context) ContractAddress(owner common.Address, ClassID uint64) common.Address {
	nonce := uint64(0)
	if bs := ctx.Data(common.ZeroAddr, owner, tagDeployNonce); len(bs) == 8 {
		nonce = bin.Uint64(bs)
	}
	h := hash.Hash([]byte{0xFF}, owner[:], bin.Uint64Bytes(ClassID), bin.Uint64Bytes(nonce))
	return common.BytesToAddress(h[12:])
}

// DeployContract creates the contract of the class and calls OnCreate with the args
// the whole deployment is reverted when OnCreate fails
func (ctx *Context) DeployContract(owner common.Address, ClassID uint64, Args []byte) (Contract, error) {
	addr := ctx.ContractAddress(owner, ClassID)
	if ctx.IsContract(addr) {
		return nil, errors.WithStack(ErrExistContract)
	}

	sn := ctx.Snapshot()
	cd := &ContractDefine{
		Address: addr,
		Owner:   owner,
		ClassID: ClassID,
	}
	if err := ctx.Top().SetContractDefine(cd); err != nil {
		ctx.Revert(sn)
		return nil, err
	}
	nonce := uint64(0)
	if bs := ctx.Data(common.ZeroAddr, owner, tagDeployNonce); len(bs) == 8 {
		nonce = bin.Uint64(bs)
	}
	ctx.SetData(common.ZeroAddr, owner, tagDeployNonce, bin.Uint64Bytes(nonce+1))

	cont, err := CreateContract(cd)
	if err != nil {
		ctx.Revert(sn)
		return nil, err
	}
	cc := ctx.ContractContext(cont, owner)
	intr := NewInteractor(ctx)
	cc.Exec = intr.Exec
	if err := cont.OnCreate(cc, Args); err != nil {
		ctx.Revert(sn)
		return nil, err
	}
	ctx.Commit(sn)
	return cont, nil
}

// UpgradeContract replaces the class of the deployed contract and keeps its storage
func (ctx *Context) UpgradeContract(addr common.Address, ClassID uint64) error {
	cd, err := ctx.ContractDefine(addr)
	if err != nil {
		return err
	}
	next := cd.Clone()
	next.ClassID = ClassID
	cont, err := CreateContract(next)
	if err != nil {
		return err
	}
	if _, ok := cont.(UpgradeableContract); !ok {
		return errors.WithStack(ErrNotUpgradeable)
	}
	return ctx.Top().SetContractDefine(next)
}

// ContractContext returns a ContractContext of the contract called by from
func (ctx *Context) ContractContext(cont Contract, from common.Address) *ContractContext {
	return &ContractContext{
		cont: cont.Address(),
		from: from,
		ctx:  ctx,
	}
}

// Dump prints the top context data of the context
func (ctx *Context) Dump() string {
	cfg := spew.ConfigState{Indent: "\t", DisablePointerAddresses: true, SortKeys: true}
	return cfg.Sdump(ctx.Top().ContractDefineMap, ctx.Top().DataMap, ctx.Top().DeletedDataMap, ctx.Top().Logs)
}
