package ledger

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/mezonai/blackball/db"
	"github.com/mezonai/blackball/logx"
	"github.com/mezonai/blackball/transaction"
	"github.com/mezonai/blackball/types"
)

const txMetaSize = types.HashSize + 8

// Ledger is an append-only transaction ledger. Transactions are numbered by a
// sequence that increases by one per stored transaction.
type Ledger struct {
	mu       sync.Mutex
	path     string
	provider db.IterableProvider
	txm      *db.DBTxManager
}

// New wraps an already opened provider.
func New(provider db.IterableProvider) *Ledger {
	return &Ledger{
		provider: provider,
		txm:      db.NewDBTxManager(provider),
	}
}

// Open opens the ledger database in dir. An empty vendor is detected from the
// directory contents.
func Open(dir string, vendor db.DBVendor, readOnly bool) (*Ledger, error) {
	dir = CanonicalPath(dir)
	if vendor == "" {
		detected, err := db.DetectDBVendor(dir)
		if err != nil {
			if readOnly {
				return nil, errors.Wrapf(ErrLedgerUnavailable, "%s: %s", dir, err)
			}
			detected = db.LevelDB
		}
		vendor = detected
	}

	provider, err := db.CreateDBProvider(vendor, db.DBOptions{Directory: dir, ReadOnly: readOnly})
	if err != nil {
		return nil, errors.Wrapf(ErrLedgerUnavailable, "%s: %s", dir, err)
	}

	l := New(provider)
	l.path = dir
	logx.Info("LEDGER", fmt.Sprintf("Opened %s ledger at %s (read-only: %t)", vendor, dir, readOnly))
	return l, nil
}

// CanonicalPath returns the absolute, symlink-resolved form of a ledger
// path without trailing separators. It is the identity of a ledger source in
// checkpoints.
func CanonicalPath(path string) string {
	path = strings.TrimRight(path, `/\`)
	if path == "" {
		path = "/"
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return path
}

// Path is the canonical path the ledger was opened from.
func (l *Ledger) Path() string {
	return l.path
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.provider.Close()
}

// MustClose closes the ledger and logs failures.
func (l *Ledger) MustClose() {
	if err := l.Close(); err != nil {
		logx.Error("LEDGER", "Failed to close ledger:", err)
	}
}

// GenesisHash returns the hash identifying the chain of this ledger.
func (l *Ledger) GenesisHash() (types.Hash, error) {
	var h types.Hash
	v, err := l.provider.Get([]byte(MetaKeyGenesis))
	if err != nil {
		return h, errors.Wrapf(ErrLedgerUnavailable, "read genesis: %s", err)
	}
	if len(v) != types.HashSize {
		return h, errors.Wrap(ErrLedgerUnavailable, "genesis hash not found")
	}
	copy(h[:], v)
	return h, nil
}

// NextSequence is the sequence number the next appended transaction gets,
// which is also the number of stored transactions.
func (l *Ledger) NextSequence() (uint64, error) {
	v, err := l.provider.Get([]byte(MetaKeyNextSeq))
	if err != nil {
		return 0, errors.Wrapf(ErrLedgerUnavailable, "read next sequence: %s", err)
	}
	if v == nil {
		return 0, nil
	}
	if len(v) != 8 {
		return 0, errors.Wrap(ErrLedgerUnavailable, "bad next sequence record")
	}
	return binary.BigEndian.Uint64(v), nil
}

// OutputKey resolves an output reference to its one-time public key.
func (l *Ledger) OutputKey(amount, index uint64) (types.PublicKey, error) {
	var pk types.PublicKey
	v, err := l.provider.Get(outputKey(amount, index))
	if err != nil {
		return pk, errors.Wrapf(ErrLedgerUnavailable, "read output %d/%d: %s", amount, index, err)
	}
	if len(v) != types.HashSize {
		return pk, errors.Wrapf(ErrOutputNotFound, "amount=%d, index=%d", amount, index)
	}
	copy(pk[:], v)
	return pk, nil
}

// ForEachTransaction visits transactions in ascending sequence order, starting
// at start. Returning false from visit stops the scan without an error.
// It returns the sequence number following the last visited transaction
// (start if none was visited) and whether no transaction follows it.
func (l *Ledger) ForEachTransaction(start uint64, visit func(seq uint64, tx *transaction.Transaction, txid types.Hash, height uint64) bool) (uint64, bool, error) {
	next := start
	completed := true
	stopped := false
	var innerErr error

	err := l.provider.IterateFrom([]byte(PrefixTx), txKey(start), func(key, value []byte) bool {
		if stopped {
			// one more transaction exists after the stop
			completed = false
			return false
		}
		seq, ok := seqFromTxKey(key)
		if !ok {
			innerErr = errors.Wrapf(ErrMalformedTransaction, "bad key size %d", len(key))
			return false
		}
		if seq < start {
			return true
		}

		tx, err := transaction.Decode(value)
		if err != nil {
			innerErr = errors.Wrapf(ErrMalformedTransaction, "sequence %d: %s", seq, err)
			return false
		}

		meta, err := l.provider.Get(txMetaKey(seq))
		if err != nil {
			innerErr = errors.Wrapf(ErrLedgerUnavailable, "read tx meta %d: %s", seq, err)
			return false
		}
		if len(meta) != txMetaSize {
			innerErr = errors.Wrapf(ErrMalformedTransaction, "sequence %d: bad tx meta size %d", seq, len(meta))
			return false
		}
		var txid types.Hash
		copy(txid[:], meta[:types.HashSize])
		height := binary.BigEndian.Uint64(meta[types.HashSize:])

		next = seq + 1
		if !visit(seq, tx, txid, height) {
			stopped = true
		}
		return true
	})
	if innerErr != nil {
		return next, false, innerErr
	}
	if err != nil {
		return next, false, errors.Wrapf(ErrLedgerUnavailable, "enumerate transactions: %s", err)
	}
	return next, completed, nil
}
