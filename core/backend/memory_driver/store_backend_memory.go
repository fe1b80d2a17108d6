package memory_driver

import (
	"bytes"
	"sync"

	"github.com/meverselabs/dmcexchange/core/backend"
	"github.com/tidwall/btree"
)

const btreeDegrees = 64

func init() {
	backend.RegisterDriver("memory", NewStoreBackendMemory)
}

type item struct {
	key   []byte
	value []byte
}

func (it *item) Less(than btree.Item, ctx interface{}) bool {
	return bytes.Compare(it.key, than.(*item).key) < 0
}

// StoreBackendMemory keeps the ordered keys in a btree, the path is ignored
type StoreBackendMemory struct {
	sync.RWMutex
	tree   *btree.BTree
	closed bool
}

func NewStoreBackendMemory(path string) (backend.StoreBackend, error) {
	return &StoreBackendMemory{
		tree: btree.New(btreeDegrees, nil),
	}, nil
}

func (st *StoreBackendMemory) Shrink() {}

func (st *StoreBackendMemory) Close() {
	st.Lock()
	defer st.Unlock()
	st.closed = true
}

func (st *StoreBackendMemory) View(fn func(txn backend.StoreReader) error) error {
	st.RLock()
	defer st.RUnlock()
	if st.closed {
		return backend.ErrClosed
	}
	return fn(&memoryTx{tree: st.tree})
}

// Update restores the previous values when fn fails
func (st *StoreBackendMemory) Update(fn func(txn backend.StoreWriter) error) error {
	st.Lock()
	defer st.Unlock()
	if st.closed {
		return backend.ErrClosed
	}
	tx := &memoryTx{tree: st.tree, undo: map[string]*item{}}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

type memoryTx struct {
	tree *btree.BTree
	undo map[string]*item
}

func (tx *memoryTx) Get(key []byte) ([]byte, error) {
	found := tx.tree.Get(&item{key: key})
	if found == nil {
		return nil, backend.ErrNotExistKey
	}
	return append([]byte{}, found.(*item).value...), nil
}

func (tx *memoryTx) Iterate(prefix []byte, fn func(key []byte, value []byte) error) error {
	var inner error
	tx.tree.AscendGreaterOrEqual(&item{key: prefix}, func(i btree.Item) bool {
		it := i.(*item)
		if !bytes.HasPrefix(it.key, prefix) {
			return false
		}
		if err := fn(append([]byte{}, it.key...), append([]byte{}, it.value...)); err != nil {
			inner = err
			return false
		}
		return true
	})
	if inner == backend.ErrStopIterate {
		return nil
	}
	return inner
}

func (tx *memoryTx) remember(key []byte) {
	sk := string(key)
	if _, has := tx.undo[sk]; has {
		return
	}
	if found := tx.tree.Get(&item{key: key}); found != nil {
		tx.undo[sk] = found.(*item)
	} else {
		tx.undo[sk] = nil
	}
}

func (tx *memoryTx) Set(key []byte, value []byte) error {
	tx.remember(key)
	tx.tree.ReplaceOrInsert(&item{
		key:   append([]byte{}, key...),
		value: append([]byte{}, value...),
	})
	return nil
}

func (tx *memoryTx) Delete(key []byte) error {
	tx.remember(key)
	tx.tree.Delete(&item{key: key})
	return nil
}

func (tx *memoryTx) rollback() {
	for k, prev := range tx.undo {
		if prev == nil {
			tx.tree.Delete(&item{key: []byte(k)})
		} else {
			tx.tree.ReplaceOrInsert(prev)
		}
	}
}
