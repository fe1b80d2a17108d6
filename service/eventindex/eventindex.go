package eventindex

import (
	"log"
	"sync"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/bin"
	"github.com/meverselabs/dmcexchange/contract/token"
	"github.com/meverselabs/dmcexchange/core/chain"
	"github.com/meverselabs/dmcexchange/core/types"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var TAG = "EVENTINDEX"

func plog(str ...interface{}) {
	ss := []interface{}{TAG}
	log.Println(append(ss, str...)...)
}

// EventIndex keeps the Transfer logs of the executed transactions by the address
type EventIndex struct {
	types.ServiceBase
	sync.Mutex
	db *leveldb.DB
	st *chain.Store
}

// NewEventIndex opens the index and reads the receipts it has not indexed yet
func NewEventIndex(Path string, st *chain.Store) (*EventIndex, error) {
	db, err := leveldb.OpenFile(Path, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	t := &EventIndex{
		db: db,
		st: st,
	}
	if err := t.initFromStore(); err != nil {
		db.Close()
		return nil, err
	}
	return t, nil
}

// Name returns the name of the service
func (t *EventIndex) Name() string {
	return "dmcexchange.eventindex"
}

// Close closes the index db
func (t *EventIndex) Close() error {
	return t.db.Close()
}

// OnTransactionExecuted indexes the Transfer logs of the receipt
func (t *EventIndex) OnTransactionExecuted(tx *types.Transaction, receipt *types.Receipt) error {
	t.Lock()
	defer t.Unlock()

	return t.readReceipt(receipt)
}

func (t *EventIndex) initFromStore() error {
	t.Lock()
	defer t.Unlock()

	plog(t.Height(), t.st.Height())
	for t.Height() < t.st.Height() {
		TxHash, err := t.st.TxHash(t.Height() + 1)
		if err != nil {
			return err
		}
		receipt, err := t.st.Receipt(TxHash)
		if err != nil {
			return err
		}
		if err := t.readReceipt(receipt); err != nil {
			return err
		}
	}
	return nil
}

// Height returns the height of the last indexed receipt
func (t *EventIndex) Height() uint32 {
	bs, err := t.db.Get([]byte{tagHeight}, nil)
	if err != nil {
		return 0
	}
	return bin.Uint32(bs)
}

func (t *EventIndex) readReceipt(receipt *types.Receipt) error {
	if receipt.Height <= t.Height() {
		return nil
	}
	if receipt.Height != t.Height()+1 {
		return errors.Wrapf(ErrIsNotNextHeight, "height %v want %v", receipt.Height, t.Height()+1)
	}

	batch := new(leveldb.Batch)
	for _, l := range receipt.Logs {
		ev, err := token.ParseTransferLog(l)
		if err != nil {
			continue
		}
		rec := &TransferRecord{
			Height: receipt.Height,
			Index:  uint32(l.Index),
			TxHash: receipt.TxHash,
			Token:  ev.Token,
			From:   ev.From,
			To:     ev.To,
			Amount: ev.Amount,
		}
		bs, _, err := bin.WriterToBytes(rec)
		if err != nil {
			return err
		}
		key := toTransferKey(rec.Height, rec.Index)
		batch.Put(key, bs)
		for _, addr := range []common.Address{rec.From, rec.To} {
			if addr != common.ZeroAddr {
				batch.Put(toAddressKey(addr, rec.Height, rec.Index), key)
			}
		}
	}
	batch.Put([]byte{tagHeight}, bin.Uint32Bytes(receipt.Height))
	if err := t.db.Write(batch, nil); err != nil {
		return &ErrCannotSetHeight{err, receipt.Height}
	}
	return nil
}

// Transfer returns the indexed transfer of the height and the log index
func (t *EventIndex) Transfer(height uint32, index uint32) (*TransferRecord, error) {
	bs, err := t.db.Get(toTransferKey(height, index), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, errors.WithStack(ErrNotExistTransfer)
		}
		return nil, errors.WithStack(err)
	}
	return decodeRecord(bs)
}

// Transfers returns the latest transfers from or to the address, newest first
// a zero token returns the transfers of every token
func (t *EventIndex) Transfers(addr common.Address, tokenAddr common.Address, limit int) ([]*TransferRecord, error) {
	iter := t.db.NewIterator(util.BytesPrefix(toAddressPrefix(addr)), nil)
	defer iter.Release()

	list := []*TransferRecord{}
	for ok := iter.Last(); ok; ok = iter.Prev() {
		bs, err := t.db.Get(iter.Value(), nil)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		rec, err := decodeRecord(bs)
		if err != nil {
			return nil, err
		}
		if tokenAddr != common.ZeroAddr && rec.Token != tokenAddr {
			continue
		}
		list = append(list, rec)
		if limit > 0 && len(list) >= limit {
			break
		}
	}
	if err := iter.Error(); err != nil {
		return nil, errors.WithStack(err)
	}
	return list, nil
}
