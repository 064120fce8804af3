package drawstore

import "errors"

// ErrKeyNotFound is returned when a key has no value in the store.
var ErrKeyNotFound = errors.New("key not found")

// KVPair is one key-value entry returned from a prefix scan.
type KVPair struct {
	Key   string
	Value []byte
}

// KVStore is the persistence interface the draw store runs on.
type KVStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	List(prefix string) ([]KVPair, error)
	Close() error
}
