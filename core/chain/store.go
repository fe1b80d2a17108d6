package chain

import (
	"bytes"
	"math/big"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/bluele/gcache"
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/bin"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/meverselabs/dmcexchange/core/backend"
	"github.com/meverselabs/dmcexchange/core/types"
	"github.com/pkg/errors"
)

// Store saves the chain state
// the state change of each transaction is written in one backend update
type Store struct {
	sync.Mutex
	db           backend.StoreBackend
	chainID      *big.Int
	closeLock    sync.RWMutex
	isClose      bool
	height       uint32
	contCache    gcache.Cache
	receiptCache gcache.Cache
}

// NewStore returns a Store
func NewStore(db backend.StoreBackend, ChainID *big.Int) (*Store, error) {
	st := &Store{
		db:           db,
		chainID:      ChainID,
		contCache:    gcache.New(500).LRU().Build(),
		receiptCache: gcache.New(500).LRU().Build(),
	}
	if err := st.db.View(func(txn backend.StoreReader) error {
		value, err := txn.Get(tagHeight)
		if err != nil {
			if errors.Cause(err) == backend.ErrNotExistKey {
				return nil
			}
			return err
		}
		atomic.StoreUint32(&st.height, bin.Uint32(value))
		return nil
	}); err != nil {
		return nil, err
	}
	return st, nil
}

// Close terminate and clean store
func (st *Store) Close() {
	st.closeLock.Lock()
	defer st.closeLock.Unlock()

	if st.isClose {
		return
	}
	st.isClose = true
	st.db.Shrink()
	st.db.Close()
	st.contCache.Purge()
	st.receiptCache.Purge()
}

// ChainID returns the chain id of the target chain
func (st *Store) ChainID() *big.Int {
	return st.chainID
}

// Height returns the number of the stored transactions
func (st *Store) Height() uint32 {
	return atomic.LoadUint32(&st.height)
}

// GenesisHash returns the hash of the stored genesis state
func (st *Store) GenesisHash() (hash.Hash256, error) {
	st.closeLock.RLock()
	defer st.closeLock.RUnlock()
	if st.isClose {
		return hash.Hash256{}, errors.WithStack(ErrStoreClosed)
	}

	var h hash.Hash256
	if err := st.db.View(func(txn backend.StoreReader) error {
		value, err := txn.Get(tagGenesisHash)
		if err != nil {
			return err
		}
		h = hash.BytesToHash(value)
		return nil
	}); err != nil {
		return hash.Hash256{}, err
	}
	return h, nil
}

// AddrSeq returns the sequence of the last transaction of the address
func (st *Store) AddrSeq(addr common.Address) uint64 {
	st.closeLock.RLock()
	defer st.closeLock.RUnlock()
	if st.isClose {
		return 0
	}

	var seq uint64
	if err := st.db.View(func(txn backend.StoreReader) error {
		value, err := txn.Get(toAddressSeqKey(addr))
		if err != nil {
			return err
		}
		seq = bin.Uint64(value)
		return nil
	}); err != nil {
		return 0
	}
	return seq
}

// IsContract returns the address is a deployed contract or not
func (st *Store) IsContract(addr common.Address) bool {
	if st.contCache.Has(addr) {
		return true
	}
	_, err := st.ContractDefine(addr)
	return err == nil
}

// ContractDefine returns the define of the contract
func (st *Store) ContractDefine(addr common.Address) (*types.ContractDefine, error) {
	st.closeLock.RLock()
	defer st.closeLock.RUnlock()
	if st.isClose {
		return nil, errors.WithStack(ErrStoreClosed)
	}

	cd := &types.ContractDefine{}
	if err := st.db.View(func(txn backend.StoreReader) error {
		value, err := txn.Get(toContractKey(addr))
		if err != nil {
			if errors.Cause(err) == backend.ErrNotExistKey {
				return errors.Wrap(types.ErrNotExistContract, addr.String())
			}
			return err
		}
		_, err = cd.ReadFrom(bytes.NewReader(value))
		return err
	}); err != nil {
		return nil, err
	}
	return cd, nil
}

// Contract returns the contract instance of the address
func (st *Store) Contract(addr common.Address) (types.Contract, error) {
	if v, err := st.contCache.Get(addr); err == nil {
		return v.(types.Contract), nil
	}
	cd, err := st.ContractDefine(addr)
	if err != nil {
		return nil, err
	}
	cont, err := types.CreateContract(cd)
	if err != nil {
		return nil, err
	}
	st.contCache.Set(addr, cont)
	return cont, nil
}

// Data returns the stored data of the contract
func (st *Store) Data(cont common.Address, addr common.Address, name []byte) []byte {
	st.closeLock.RLock()
	defer st.closeLock.RUnlock()
	if st.isClose {
		return nil
	}

	key := string(cont[:]) + string(addr[:]) + string(name)
	var data []byte
	if err := st.db.View(func(txn backend.StoreReader) error {
		value, err := txn.Get(toDataKey(key))
		if err != nil {
			return err
		}
		data = make([]byte, len(value))
		copy(data, value)
		return nil
	}); err != nil {
		return nil
	}
	return data
}

// Receipt returns the receipt of the transaction
func (st *Store) Receipt(TxHash hash.Hash256) (*types.Receipt, error) {
	if v, err := st.receiptCache.Get(TxHash); err == nil {
		return v.(*types.Receipt), nil
	}

	st.closeLock.RLock()
	defer st.closeLock.RUnlock()
	if st.isClose {
		return nil, errors.WithStack(ErrStoreClosed)
	}

	rc := &types.Receipt{}
	if err := st.db.View(func(txn backend.StoreReader) error {
		value, err := txn.Get(toReceiptKey(TxHash))
		if err != nil {
			if errors.Cause(err) == backend.ErrNotExistKey {
				return errors.Wrap(ErrNotExistReceipt, TxHash.String())
			}
			return err
		}
		_, err = rc.ReadFrom(bytes.NewReader(value))
		return err
	}); err != nil {
		return nil, err
	}
	st.receiptCache.Set(TxHash, rc)
	return rc, nil
}

// TxHash returns the hash of the transaction stored at the height
func (st *Store) TxHash(height uint32) (hash.Hash256, error) {
	st.closeLock.RLock()
	defer st.closeLock.RUnlock()
	if st.isClose {
		return hash.Hash256{}, errors.WithStack(ErrStoreClosed)
	}

	var h hash.Hash256
	if err := st.db.View(func(txn backend.StoreReader) error {
		value, err := txn.Get(toHeightHashKey(height))
		if err != nil {
			return err
		}
		h = hash.BytesToHash(value)
		return nil
	}); err != nil {
		return hash.Hash256{}, err
	}
	return h, nil
}

// StoreGenesis stores the genesis state
func (st *Store) StoreGenesis(genHash hash.Hash256, ctd *types.ContextData) error {
	st.closeLock.RLock()
	defer st.closeLock.RUnlock()
	if st.isClose {
		return errors.WithStack(ErrStoreClosed)
	}

	st.Lock()
	defer st.Unlock()

	if err := st.db.Update(func(txn backend.StoreWriter) error {
		if _, err := txn.Get(tagGenesisHash); err == nil {
			return errors.WithStack(ErrAlreadyGenesised)
		}
		if err := txn.Set(tagGenesisHash, genHash[:]); err != nil {
			return err
		}
		if err := txn.Set(tagHeight, bin.Uint32Bytes(0)); err != nil {
			return err
		}
		return applyContextData(txn, ctd)
	}); err != nil {
		return err
	}
	atomic.StoreUint32(&st.height, 0)
	st.purgeContracts(ctd)
	return nil
}

// StoreTransaction stores the state change and the receipt of the transaction at the next height
func (st *Store) StoreTransaction(ctd *types.ContextData, receipt *types.Receipt) error {
	st.closeLock.RLock()
	defer st.closeLock.RUnlock()
	if st.isClose {
		return errors.WithStack(ErrStoreClosed)
	}

	st.Lock()
	defer st.Unlock()

	height := atomic.LoadUint32(&st.height) + 1
	if receipt.Height != height {
		return errors.Wrapf(types.ErrInvalidReceipt, "height %v want %v", receipt.Height, height)
	}
	bsReceipt, _, err := bin.WriterToBytes(receipt)
	if err != nil {
		return err
	}
	if err := st.db.Update(func(txn backend.StoreWriter) error {
		if _, err := txn.Get(toReceiptKey(receipt.TxHash)); err == nil {
			return errors.WithStack(ErrExistTransaction)
		}
		if err := applyContextData(txn, ctd); err != nil {
			return err
		}
		if err := txn.Set(toReceiptKey(receipt.TxHash), bsReceipt); err != nil {
			return err
		}
		if err := txn.Set(toHeightHashKey(height), receipt.TxHash[:]); err != nil {
			return err
		}
		return txn.Set(tagHeight, bin.Uint32Bytes(height))
	}); err != nil {
		return err
	}
	atomic.StoreUint32(&st.height, height)
	st.purgeContracts(ctd)
	st.receiptCache.Set(receipt.TxHash, receipt)
	return nil
}

func (st *Store) purgeContracts(ctd *types.ContextData) {
	for addr := range ctd.ContractDefineMap {
		st.contCache.Remove(addr)
	}
}

// applyContextData writes the changes of the context data in sorted key order
func applyContextData(txn backend.StoreWriter, ctd *types.ContextData) error {
	seqs := make([]common.Address, 0, len(ctd.AddrSeqMap))
	for addr := range ctd.AddrSeqMap {
		seqs = append(seqs, addr)
	}
	sortAddresses(seqs)
	for _, addr := range seqs {
		if err := txn.Set(toAddressSeqKey(addr), bin.Uint64Bytes(ctd.AddrSeqMap[addr])); err != nil {
			return err
		}
	}

	conts := make([]common.Address, 0, len(ctd.ContractDefineMap))
	for addr := range ctd.ContractDefineMap {
		conts = append(conts, addr)
	}
	sortAddresses(conts)
	for _, addr := range conts {
		bs, _, err := bin.WriterToBytes(ctd.ContractDefineMap[addr])
		if err != nil {
			return err
		}
		if err := txn.Set(toContractKey(addr), bs); err != nil {
			return err
		}
	}

	keys := make([]string, 0, len(ctd.DataMap))
	for key := range ctd.DataMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := txn.Set(toDataKey(key), ctd.DataMap[key]); err != nil {
			return err
		}
	}

	deleted := make([]string, 0, len(ctd.DeletedDataMap))
	for key := range ctd.DeletedDataMap {
		deleted = append(deleted, key)
	}
	sort.Strings(deleted)
	for _, key := range deleted {
		if err := txn.Delete(toDataKey(key)); err != nil {
			return err
		}
	}
	return nil
}
