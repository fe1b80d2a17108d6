package leveldb_driver

import (
	"github.com/meverselabs/dmcexchange/core/backend"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

type levelDBReader struct {
	get  func(key []byte, ro *opt.ReadOptions) ([]byte, error)
	iter func(slice *util.Range, ro *opt.ReadOptions) iterator.Iterator
}

func (r *levelDBReader) Get(key []byte) ([]byte, error) {
	value, err := r.get(key, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, backend.ErrNotExistKey
		}
		return nil, errors.WithStack(err)
	}
	return value, nil
}

func (r *levelDBReader) Iterate(prefix []byte, fn func(key []byte, value []byte) error) error {
	var rg *util.Range
	if len(prefix) > 0 {
		rg = &util.Range{Start: prefix, Limit: backend.PrefixEnd(prefix)}
	}
	it := r.iter(rg, nil)
	defer it.Release()
	for it.Next() {
		key := append([]byte{}, it.Key()...)
		value := append([]byte{}, it.Value()...)
		if err := fn(key, value); err != nil {
			if err == backend.ErrStopIterate {
				return nil
			}
			return err
		}
	}
	return errors.WithStack(it.Error())
}

type levelDBWriter struct {
	levelDBReader
	txn *leveldb.Transaction
}

func (w *levelDBWriter) Set(key []byte, value []byte) error {
	return errors.WithStack(w.txn.Put(key, value, nil))
}

func (w *levelDBWriter) Delete(key []byte) error {
	return errors.WithStack(w.txn.Delete(key, nil))
}
