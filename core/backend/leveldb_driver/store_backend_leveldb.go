package leveldb_driver

import (
	"log"
	"time"

	"github.com/meverselabs/dmcexchange/core/backend"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

func init() {
	backend.RegisterDriver("leveldb", NewStoreBackendLevelDB)
}

type StoreBackendLevelDB struct {
	db *leveldb.DB
}

func NewStoreBackendLevelDB(path string) (backend.StoreBackend, error) {
	start := time.Now()
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	log.Println("LevelDB is opened in", time.Since(start))
	return &StoreBackendLevelDB{
		db: db,
	}, nil
}

func (st *StoreBackendLevelDB) Shrink() {
	if err := st.db.CompactRange(util.Range{}); err != nil {
		log.Println("LevelDB compaction failed", err)
	}
}

func (st *StoreBackendLevelDB) Close() {
	start := time.Now()
	st.db.Close()
	log.Println("LevelDB is closed in", time.Since(start))
}

// View reads from a snapshot so concurrent updates are not observed
func (st *StoreBackendLevelDB) View(fn func(txn backend.StoreReader) error) error {
	snap, err := st.db.GetSnapshot()
	if err != nil {
		return errors.WithStack(err)
	}
	defer snap.Release()
	return fn(&levelDBReader{
		get:  snap.Get,
		iter: snap.NewIterator,
	})
}

// Update applies every write of fn in one leveldb transaction
func (st *StoreBackendLevelDB) Update(fn func(txn backend.StoreWriter) error) error {
	txn, err := st.db.OpenTransaction()
	if err != nil {
		return errors.WithStack(err)
	}
	w := &levelDBWriter{
		levelDBReader: levelDBReader{
			get:  txn.Get,
			iter: txn.NewIterator,
		},
		txn: txn,
	}
	if err := fn(w); err != nil {
		txn.Discard()
		return err
	}
	if err := txn.Commit(); err != nil {
		txn.Discard()
		return errors.WithStack(err)
	}
	return nil
}
