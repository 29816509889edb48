package store

import (
	"fmt"
	"sync"

	"github.com/mezonai/blackball/db"
	"github.com/mezonai/blackball/logx"
	"github.com/mezonai/blackball/types"
)

// BlackballStore is the flag store of outputs known to be spent.
type BlackballStore interface {
	MarkBlackballed(key types.PublicKey) error
	IsBlackballed(key types.PublicKey) (bool, error)
	Unblackball(key types.PublicKey) error
	ForEach(fn func(key types.PublicKey) bool) error
	Count() (int, error)
	MustClose()
}

var blackballedValue = []byte{1}

// GenericBlackballStore keeps flags in a key/value database. Keys are
// namespaced by the genesis hash of the chain, so one store directory can hold
// several networks.
type GenericBlackballStore struct {
	mu         sync.RWMutex
	dbProvider db.IterableProvider
	prefix     []byte
}

// NewGenericBlackballStore creates a flag store for the chain identified by genesis.
func NewGenericBlackballStore(dbProvider db.IterableProvider, genesis types.Hash) (*GenericBlackballStore, error) {
	if dbProvider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}

	return &GenericBlackballStore{
		dbProvider: dbProvider,
		prefix:     []byte(PrefixBlackball + genesis.String() + ":"),
	}, nil
}

// OpenBlackballStore opens the flag store on the given backend. An empty
// vendor means bbolt in options.Directory.
func OpenBlackballStore(vendor db.DBVendor, options db.DBOptions, genesis types.Hash) (*GenericBlackballStore, error) {
	if vendor == "" {
		vendor = db.BoltDB
	}
	provider, err := db.CreateDBProvider(vendor, options)
	if err != nil {
		return nil, fmt.Errorf("failed to open blackball store: %w", err)
	}
	bs, err := NewGenericBlackballStore(provider, genesis)
	if err != nil {
		_ = provider.Close()
		return nil, err
	}
	return bs, nil
}

// MarkBlackballed flags an output key as spent. Flagging twice is a no-op.
func (bs *GenericBlackballStore) MarkBlackballed(key types.PublicKey) error {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	if err := bs.dbProvider.Put(bs.getDbKey(key), blackballedValue); err != nil {
		return fmt.Errorf("failed to blackball %s: %w", key, err)
	}
	return nil
}

// IsBlackballed reports whether the key is flagged.
func (bs *GenericBlackballStore) IsBlackballed(key types.PublicKey) (bool, error) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	return bs.dbProvider.Has(bs.getDbKey(key))
}

// Unblackball removes a flag.
func (bs *GenericBlackballStore) Unblackball(key types.PublicKey) error {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	if err := bs.dbProvider.Delete(bs.getDbKey(key)); err != nil {
		return fmt.Errorf("failed to unblackball %s: %w", key, err)
	}
	return nil
}

// ForEach visits flagged keys in ascending order until fn returns false.
func (bs *GenericBlackballStore) ForEach(fn func(key types.PublicKey) bool) error {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	return bs.dbProvider.IteratePrefix(bs.prefix, func(k, _ []byte) bool {
		if len(k) != len(bs.prefix)+types.HashSize {
			logx.Warn("BLACKBALL", fmt.Sprintf("Skipping malformed key of size %d", len(k)))
			return true
		}
		var pk types.PublicKey
		copy(pk[:], k[len(bs.prefix):])
		return fn(pk)
	})
}

// Count returns the number of flagged keys.
func (bs *GenericBlackballStore) Count() (int, error) {
	n := 0
	err := bs.ForEach(func(types.PublicKey) bool {
		n++
		return true
	})
	return n, err
}

// MustClose closes the store and related resources
func (bs *GenericBlackballStore) MustClose() {
	if err := bs.dbProvider.Close(); err != nil {
		logx.Error("BLACKBALL", "Failed to close provider:", err)
	}
}

func (bs *GenericBlackballStore) getDbKey(key types.PublicKey) []byte {
	k := make([]byte, 0, len(bs.prefix)+types.HashSize)
	k = append(k, bs.prefix...)
	return append(k, key[:]...)
}
