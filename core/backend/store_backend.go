package backend

import (
	"sort"

	"github.com/pkg/errors"
)

// StoreBackend is the key value storage used by the chain store and the services
type StoreBackend interface {
	Shrink()
	Close()
	View(fn func(txn StoreReader) error) error
	Update(fn func(txn StoreWriter) error) error
}

type StoreReader interface {
	Get(key []byte) ([]byte, error)
	// Iterate visits keys with the prefix in ascending order, returning ErrStopIterate from fn ends the loop without an error
	Iterate(prefix []byte, fn func(key []byte, value []byte) error) error
}

type StoreWriter interface {
	StoreReader
	Set(key []byte, value []byte) error
	Delete(key []byte) error
}

type CreateBackend func(path string) (StoreBackend, error)

var gDriverMap = map[string]CreateBackend{}

// RegisterDriver is called from the init of each driver package
func RegisterDriver(name string, fn CreateBackend) {
	gDriverMap[name] = fn
}

// Create opens the backend of the registered driver
func Create(name string, path string) (StoreBackend, error) {
	fn, has := gDriverMap[name]
	if !has {
		return nil, errors.Wrap(ErrNotExistDriver, name)
	}
	return fn(path)
}

// Drivers returns the registered driver names
func Drivers() []string {
	names := make([]string, 0, len(gDriverMap))
	for k := range gDriverMap {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// PrefixEnd returns the smallest key that is greater than every key with the prefix
// nil means there is no upper bound
func PrefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
